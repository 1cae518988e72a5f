package payment

import (
	"errors"
	"strings"
	"time"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/pkg/errs"
	"parceldelivery/internal/pkg/guard"
)

// StatusPaid is the snapshot recorded for gateway sessions reported as paid.
const StatusPaid = "paid"

var (
	// ErrTransactionIDIsRequired is returned for a payment without its gateway transaction id.
	ErrTransactionIDIsRequired = errs.NewValueIsRequiredError("transactionId")

	// ErrPaymentIsNotConstructed is returned when using an improperly initialized Payment.
	ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment constructor")
)

// Payment records one settled gateway transaction for a parcel. The gateway
// transaction id is its natural key: at most one Payment exists per
// transaction, and it is never changed after it is written.
type Payment struct {
	transactionID string
	parcelID      kernel.UUID
	trackingID    kernel.TrackingID
	amount        kernel.Money
	payer         kernel.Email
	status        string
	paidAt        time.Time
	guard         guard.ConstructorGuard
}

// NewPayment builds the record written by payment reconciliation.
func NewPayment(
	transactionID string,
	parcelID kernel.UUID,
	trackingID kernel.TrackingID,
	amount kernel.Money,
	payer kernel.Email,
	status string,
	paidAt time.Time,
) (*Payment, error) {
	p := &Payment{
		transactionID: strings.TrimSpace(transactionID),
		parcelID:      parcelID,
		trackingID:    trackingID,
		amount:        amount,
		payer:         payer,
		status:        strings.TrimSpace(status),
		paidAt:        paidAt.UTC(),
		guard:         guard.NewConstructorGuard(),
	}

	var errList []error
	if p.transactionID == "" {
		errList = append(errList, ErrTransactionIDIsRequired)
	}
	if p.status == "" {
		errList = append(errList, errs.NewValueIsRequiredError("status"))
	}
	errList = append(errList,
		parcelID.Validate(),
		trackingID.Validate(),
		amount.Validate(),
		payer.Validate(),
	)
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Payment) Validate() error {
	if p == nil {
		return ErrPaymentIsNotConstructed
	}
	return p.guard.Validate(ErrPaymentIsNotConstructed)
}

func (p *Payment) TransactionID() string { return p.transactionID }

func (p *Payment) ParcelID() kernel.UUID { return p.parcelID }

func (p *Payment) TrackingID() kernel.TrackingID { return p.trackingID }

func (p *Payment) Amount() kernel.Money { return p.amount }

func (p *Payment) Payer() kernel.Email { return p.payer }

// Status is the gateway's payment status at reconciliation time.
func (p *Payment) Status() string { return p.status }

func (p *Payment) PaidAt() time.Time { return p.paidAt }
