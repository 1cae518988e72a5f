package queries

import (
	"errors"
	"time"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/pkg/guard"
)

var ErrGetParcelQueryIsNotConstructed = errors.New(
	"GetParcelQuery must be created via NewGetParcelQuery constructor",
)

// GetParcelQuery reads one parcel. The sender and administrators may read it.
type GetParcelQuery struct {
	parcelID      kernel.UUID
	caller        kernel.Email
	callerIsAdmin bool

	guard guard.ConstructorGuard
}

func NewGetParcelQuery(parcelID kernel.UUID, callerEmail string, callerIsAdmin bool) (GetParcelQuery, error) {
	caller, callerErr := kernel.NewEmail(callerEmail)
	if err := errors.Join(parcelID.Validate(), callerErr); err != nil {
		return GetParcelQuery{}, err
	}

	return GetParcelQuery{
		parcelID:      parcelID,
		caller:        caller,
		callerIsAdmin: callerIsAdmin,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (q GetParcelQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelQueryIsNotConstructed)
}

func (q GetParcelQuery) ParcelID() kernel.UUID { return q.parcelID }

func (q GetParcelQuery) Caller() kernel.Email { return q.caller }

func (q GetParcelQuery) CallerIsAdmin() bool { return q.callerIsAdmin }

// GetParcelQueryResponse is the parcel read model. Optional fields are empty
// strings when unset.
type GetParcelQueryResponse struct {
	ID              kernel.UUID
	SenderEmail     string
	SenderName      string
	ReceiverName    string
	ReceiverAddress string
	District        string
	WeightGrams     int
	CostAmount      int64
	CostCurrency    string
	DeliveryStatus  string
	PaymentStatus   string
	TrackingID      string
	RiderID         string
	RiderName       string
	RiderEmail      string
	CreatedAt       time.Time
}
