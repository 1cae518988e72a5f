package commands

import (
	"errors"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/domain/model/parcel"
	"parceldelivery/internal/pkg/guard"
)

var ErrCreateParcelCommandIsNotConstructed = errors.New(
	"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
)

// CreateParcelCommand submits a new parcel for the sender. The parcel starts
// created and unpaid.
//
// Example:
//
//	parcelID := kernel.NewUUID()
//	cmd, err := NewCreateParcelCommand(parcelID, "bob@example.com", shipment, 1500, "usd")
//	if err != nil {
//	    return fmt.Errorf("invalid parcel data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create parcel: %w", err)
//	}
type CreateParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	sender   kernel.Email
	shipment parcel.Shipment
	cost     kernel.Money

	guard guard.ConstructorGuard
}

func NewCreateParcelCommand(
	parcelID kernel.UUID,
	senderEmail string,
	shipment parcel.Shipment,
	costAmount int64,
	currency string,
) (CreateParcelCommand, error) {
	cmd := CreateParcelCommand{
		shipment: shipment,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setSender(senderEmail),
		cmd.setCost(costAmount, currency),
	); err != nil {
		return CreateParcelCommand{}, err
	}

	return cmd, nil
}

func (c CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}

func (c CreateParcelCommand) ParcelID() kernel.UUID { return c.parcelID }

func (c CreateParcelCommand) Sender() kernel.Email { return c.sender }

func (c CreateParcelCommand) Shipment() parcel.Shipment { return c.shipment }

func (c CreateParcelCommand) Cost() kernel.Money { return c.cost }

func (c *CreateParcelCommand) setParcelID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.parcelID = id
	return nil
}

func (c *CreateParcelCommand) setSender(email string) error {
	sender, err := kernel.NewEmail(email)
	if err != nil {
		return err
	}
	c.sender = sender
	return nil
}

func (c *CreateParcelCommand) setCost(amount int64, currency string) error {
	cost, err := kernel.NewMoney(amount, currency)
	if err != nil {
		return err
	}
	c.cost = cost
	return nil
}
