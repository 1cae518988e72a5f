package commands

import (
	"errors"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/pkg/guard"
)

var ErrStartCheckoutCommandIsNotConstructed = errors.New(
	"StartCheckoutCommand must be created via NewStartCheckoutCommand constructor",
)

// StartCheckoutCommand opens a gateway checkout session for an unpaid parcel
// on behalf of its sender.
type StartCheckoutCommand struct {
	parcelID kernel.UUID
	caller   kernel.Email

	guard guard.ConstructorGuard
}

func NewStartCheckoutCommand(parcelID kernel.UUID, callerEmail string) (StartCheckoutCommand, error) {
	if err := parcelID.Validate(); err != nil {
		return StartCheckoutCommand{}, err
	}
	caller, err := kernel.NewEmail(callerEmail)
	if err != nil {
		return StartCheckoutCommand{}, err
	}

	return StartCheckoutCommand{
		parcelID: parcelID,
		caller:   caller,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c StartCheckoutCommand) Validate() error {
	return c.guard.Validate(ErrStartCheckoutCommandIsNotConstructed)
}

func (c StartCheckoutCommand) ParcelID() kernel.UUID { return c.parcelID }

func (c StartCheckoutCommand) Caller() kernel.Email { return c.caller }
