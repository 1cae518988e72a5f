package commands

import (
	"errors"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/pkg/guard"
)

var ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
	"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
)

// CompleteDeliveryCommand marks a parcel delivered by the rider carrying it.
// The caller is the rider's own account unless callerIsAdmin is set.
type CompleteDeliveryCommand struct {
	parcelID      kernel.UUID
	riderID       kernel.UUID
	caller        kernel.Email
	callerIsAdmin bool

	guard guard.ConstructorGuard
}

func NewCompleteDeliveryCommand(
	parcelID, riderID kernel.UUID, callerEmail string, callerIsAdmin bool,
) (CompleteDeliveryCommand, error) {
	if err := errors.Join(parcelID.Validate(), riderID.Validate()); err != nil {
		return CompleteDeliveryCommand{}, err
	}
	caller, err := kernel.NewEmail(callerEmail)
	if err != nil {
		return CompleteDeliveryCommand{}, err
	}

	return CompleteDeliveryCommand{
		parcelID:      parcelID,
		riderID:       riderID,
		caller:        caller,
		callerIsAdmin: callerIsAdmin,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

func (c CompleteDeliveryCommand) ParcelID() kernel.UUID { return c.parcelID }

func (c CompleteDeliveryCommand) RiderID() kernel.UUID { return c.riderID }

func (c CompleteDeliveryCommand) Caller() kernel.Email { return c.caller }

func (c CompleteDeliveryCommand) CallerIsAdmin() bool { return c.callerIsAdmin }
