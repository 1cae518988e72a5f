package commands

import (
	"errors"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/pkg/guard"
)

var ErrAssignRiderCommandIsNotConstructed = errors.New(
	"AssignRiderCommand must be created via NewAssignRiderCommand constructor",
)

// AssignRiderCommand hands a paid parcel to an available rider.
//
// Example:
//
//	cmd, err := NewAssignRiderCommand(parcelID, riderID)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, rider.ErrRiderUnavailable):
//	    // rider is busy or not approved
//	case errors.Is(err, parcel.ErrInvalidTransition):
//	    // parcel is not waiting for pickup
//	}
type AssignRiderCommand struct {
	parcelID kernel.UUID
	riderID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignRiderCommand(parcelID, riderID kernel.UUID) (AssignRiderCommand, error) {
	if err := errors.Join(parcelID.Validate(), riderID.Validate()); err != nil {
		return AssignRiderCommand{}, err
	}
	return AssignRiderCommand{
		parcelID: parcelID,
		riderID:  riderID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AssignRiderCommand) Validate() error {
	return c.guard.Validate(ErrAssignRiderCommandIsNotConstructed)
}

func (c AssignRiderCommand) ParcelID() kernel.UUID { return c.parcelID }

func (c AssignRiderCommand) RiderID() kernel.UUID { return c.riderID }
