package commands

import (
	"context"
	"time"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/domain/model/parcel"
	"parceldelivery/internal/core/domain/model/tracking"
	"parceldelivery/internal/core/domain/services"
)

// AssignRiderCommandHandler assigns a rider to a parcel in one transaction:
// parcel, rider and tracking log change together.
//
// Rows are locked parcel first, then rider; every handler that touches both
// uses this order.
type AssignRiderCommandHandler struct {
	uowFactory  UoWFactory
	coordinator services.DeliveryCoordinator
}

func NewAssignRiderCommandHandler(uowFactory UoWFactory) AssignRiderCommandHandler {
	return AssignRiderCommandHandler{
		uowFactory:  uowFactory,
		coordinator: services.NewDeliveryCoordinator(),
	}
}

func (h AssignRiderCommandHandler) Handle(ctx context.Context, cmd AssignRiderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	p, err := loadParcel(ctx, uow.ParcelRepository(), cmd.ParcelID())
	if err != nil {
		return err
	}
	r, err := loadRider(ctx, uow.RiderRepository(), cmd.RiderID())
	if err != nil {
		return err
	}

	if err = h.coordinator.Assign(p, r); err != nil {
		return err
	}

	event, err := tracking.NewEvent(
		kernel.NewUUID(), p.TrackingID(), parcel.DeliveryAssigned.String(), tracking.DetailRiderAssigned, time.Now(),
	)
	if err != nil {
		return err
	}

	if err = uow.ParcelRepository().Update(ctx, p); err != nil {
		return err
	}
	if err = uow.RiderRepository().Update(ctx, r); err != nil {
		return err
	}
	if err = uow.TrackingEventRepository().Add(ctx, event); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
