package commands

import (
	"errors"
	"strings"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/domain/model/parcel"
	"parceldelivery/internal/pkg/errs"
	"parceldelivery/internal/pkg/guard"
)

var ErrUpdateDeliveryStatusCommandIsNotConstructed = errors.New(
	"UpdateDeliveryStatusCommand must be created via NewUpdateDeliveryStatusCommand constructor",
)

// UpdateDeliveryStatusCommand is the administrative override: it writes any
// valid delivery status regardless of the lifecycle graph. Actor names the
// administrator for the audit log.
type UpdateDeliveryStatusCommand struct {
	parcelID kernel.UUID
	status   parcel.DeliveryStatus
	riderID  *kernel.UUID
	actor    string

	guard guard.ConstructorGuard
}

// NewUpdateDeliveryStatusCommand parses status from its wire form. riderID is
// optional. It names the rider for a parcel that has none when the status
// needs one, and with "delivered" that rider becomes available.
func NewUpdateDeliveryStatusCommand(
	parcelID kernel.UUID,
	status string,
	riderID *kernel.UUID,
	actor string,
) (UpdateDeliveryStatusCommand, error) {
	var errList []error
	errList = append(errList, parcelID.Validate())

	parsed, err := parcel.ParseDeliveryStatus(status)
	errList = append(errList, err)

	if riderID != nil {
		errList = append(errList, riderID.Validate())
	}
	if strings.TrimSpace(actor) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("actor"))
	}
	if err = errors.Join(errList...); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}

	return UpdateDeliveryStatusCommand{
		parcelID: parcelID,
		status:   parsed,
		riderID:  riderID,
		actor:    strings.TrimSpace(actor),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryStatusCommandIsNotConstructed)
}

func (c UpdateDeliveryStatusCommand) ParcelID() kernel.UUID { return c.parcelID }

func (c UpdateDeliveryStatusCommand) Status() parcel.DeliveryStatus { return c.status }

// RiderID returns nil when no rider was named.
func (c UpdateDeliveryStatusCommand) RiderID() *kernel.UUID { return c.riderID }

func (c UpdateDeliveryStatusCommand) Actor() string { return c.actor }
