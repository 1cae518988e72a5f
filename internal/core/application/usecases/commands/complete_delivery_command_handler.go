package commands

import (
	"context"
	"time"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/domain/model/parcel"
	"parceldelivery/internal/core/domain/model/tracking"
	"parceldelivery/internal/core/domain/services"
)

// CompleteDeliveryCommandHandler moves delivery-assigned to delivered and
// makes the rider available again. Only that rider's account or an admin may
// complete it.
type CompleteDeliveryCommandHandler struct {
	uowFactory  UoWFactory
	coordinator services.DeliveryCoordinator
}

func NewCompleteDeliveryCommandHandler(uowFactory UoWFactory) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory:  uowFactory,
		coordinator: services.NewDeliveryCoordinator(),
	}
}

func (h CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) error {
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
	if !cmd.CallerIsAdmin() && !r.Email().IsEqual(cmd.Caller()) {
		return ErrForbidden
	}

	if err = h.coordinator.Complete(p, r); err != nil {
		return err
	}

	event, err := tracking.NewEvent(
		kernel.NewUUID(), p.TrackingID(), parcel.Delivered.String(), tracking.DetailDelivered, time.Now(),
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
