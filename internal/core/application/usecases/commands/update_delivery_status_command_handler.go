package commands

import (
	"context"
	"log/slog"
	"time"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/domain/model/rider"
	"parceldelivery/internal/core/domain/model/tracking"
	"parceldelivery/internal/core/domain/services"
)

// UpdateDeliveryStatusCommandHandler applies the administrative status
// override. Every applied override is logged at warn level with the acting
// administrator.
type UpdateDeliveryStatusCommandHandler struct {
	uowFactory  UoWFactory
	coordinator services.DeliveryCoordinator
	logger      *slog.Logger
}

func NewUpdateDeliveryStatusCommandHandler(uowFactory UoWFactory, logger *slog.Logger) UpdateDeliveryStatusCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return UpdateDeliveryStatusCommandHandler{
		uowFactory:  uowFactory,
		coordinator: services.NewDeliveryCoordinator(),
		logger:      logger.With("component", "delivery-status-override"),
	}
}

// Handle writes the status. The tracking event carries the status as both label
// and detail; a parcel that has no tracking id yet gets no event.
//
// Riders follow the parcel: the rider the parcel was assigned to is released
// when the override takes the parcel out of delivery, a named rider becomes
// the assignment of a parcel that needs one, and a named rider is released
// when the status is delivered. The parcel is locked before any rider.
func (h UpdateDeliveryStatusCommandHandler) Handle(ctx context.Context, cmd UpdateDeliveryStatusCommand) error {
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

	var current, named *rider.Rider
	if p.Rider() != nil {
		if current, err = loadRider(ctx, uow.RiderRepository(), p.Rider().RiderID()); err != nil {
			return err
		}
	}
	if id := cmd.RiderID(); id != nil {
		if current != nil && current.ID().IsEqual(*id) {
			named = current
		} else if named, err = loadRider(ctx, uow.RiderRepository(), *id); err != nil {
			return err
		}
	}

	previous := p.DeliveryStatus()
	if err = h.coordinator.Override(p, cmd.Status(), current, named); err != nil {
		return err
	}

	if err = uow.ParcelRepository().Update(ctx, p); err != nil {
		return err
	}
	if current != nil {
		if err = uow.RiderRepository().Update(ctx, current); err != nil {
			return err
		}
	}
	if named != nil && named != current {
		if err = uow.RiderRepository().Update(ctx, named); err != nil {
			return err
		}
	}

	if p.HasTrackingID() {
		event, eventErr := tracking.NewEvent(
			kernel.NewUUID(), p.TrackingID(), cmd.Status().String(), cmd.Status().String(), time.Now(),
		)
		if eventErr != nil {
			return eventErr
		}
		if err = uow.TrackingEventRepository().Add(ctx, event); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.WarnContext(ctx, "delivery status overridden",
		"parcel_id", p.ID().String(),
		"from", previous.String(),
		"to", cmd.Status().String(),
		"actor", cmd.Actor(),
	)
	return nil
}
