package queries

import (
	"errors"
	"time"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/pkg/guard"
)

var ErrGetPaymentHistoryQueryIsNotConstructed = errors.New(
	"GetPaymentHistoryQuery must be created via NewGetPaymentHistoryQuery constructor",
)

// GetPaymentHistoryQuery lists the payments made by one payer, newest first.
// Only the payer may read them; the handler returns ErrForbidden otherwise.
type GetPaymentHistoryQuery struct {
	owner  kernel.Email
	caller kernel.Email

	guard guard.ConstructorGuard
}

func NewGetPaymentHistoryQuery(ownerEmail, callerEmail string) (GetPaymentHistoryQuery, error) {
	owner, ownerErr := kernel.NewEmail(ownerEmail)
	caller, callerErr := kernel.NewEmail(callerEmail)
	if err := errors.Join(ownerErr, callerErr); err != nil {
		return GetPaymentHistoryQuery{}, err
	}

	return GetPaymentHistoryQuery{
		owner:  owner,
		caller: caller,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q GetPaymentHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetPaymentHistoryQueryIsNotConstructed)
}

func (q GetPaymentHistoryQuery) Owner() kernel.Email { return q.owner }

func (q GetPaymentHistoryQuery) Caller() kernel.Email { return q.caller }

type GetPaymentHistoryQueryResponse struct {
	TransactionID string
	ParcelID      kernel.UUID
	TrackingID    string
	Amount        int64
	Currency      string
	PayerEmail    string
	Status        string
	PaidAt        time.Time
}
