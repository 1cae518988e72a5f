package commands

import (
	"errors"
	"strings"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/domain/model/rider"
	"parceldelivery/internal/pkg/guard"
)

var ErrCreateRiderCommandIsNotConstructed = errors.New(
	"CreateRiderCommand must be created via NewCreateRiderCommand constructor",
)

// CreateRiderCommand files a rider application. The rider stays pending until
// an administrator reviews it.
type CreateRiderCommand struct { //nolint:recvcheck //using for validation
	riderID  kernel.UUID
	name     string
	email    kernel.Email
	district string

	guard guard.ConstructorGuard
}

func NewCreateRiderCommand(riderID kernel.UUID, name, email, district string) (CreateRiderCommand, error) {
	cmd := CreateRiderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRiderID(riderID),
		cmd.setName(name),
		cmd.setEmail(email),
		cmd.setDistrict(district),
	); err != nil {
		return CreateRiderCommand{}, err
	}

	return cmd, nil
}

func (c CreateRiderCommand) Validate() error {
	return c.guard.Validate(ErrCreateRiderCommandIsNotConstructed)
}

func (c CreateRiderCommand) RiderID() kernel.UUID { return c.riderID }

func (c CreateRiderCommand) Name() string { return c.name }

func (c CreateRiderCommand) Email() kernel.Email { return c.email }

func (c CreateRiderCommand) District() string { return c.district }

func (c *CreateRiderCommand) setRiderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.riderID = id
	return nil
}

func (c *CreateRiderCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return rider.ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *CreateRiderCommand) setEmail(email string) error {
	e, err := kernel.NewEmail(email)
	if err != nil {
		return err
	}
	c.email = e
	return nil
}

func (c *CreateRiderCommand) setDistrict(district string) error {
	district = strings.TrimSpace(district)
	if district == "" {
		return rider.ErrDistrictIsRequired
	}
	c.district = district
	return nil
}
