package commands

import (
	"context"
	"time"

	"parceldelivery/internal/core/domain/model/parcel"
)

// CreateParcelCommandHandler persists newly submitted parcels.
type CreateParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
}

func NewCreateParcelCommandHandler(uowFactory ParcelUoWFactory) CreateParcelCommandHandler {
	return CreateParcelCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the parcel in created/unpaid state. Shipment rules (weight,
// required fields, positive cost) are enforced by the aggregate.
func (h CreateParcelCommandHandler) Handle(ctx context.Context, cmd CreateParcelCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	p, err := parcel.NewParcel(cmd.ParcelID(), cmd.Sender(), cmd.Shipment(), cmd.Cost(), time.Now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ParcelRepository().Add(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
