package commands

import (
	"context"

	"parceldelivery/internal/core/domain/model/rider"
)

// ReviewRiderCommandHandler approves or rejects a rider.
type ReviewRiderCommandHandler struct {
	uowFactory RiderUoWFactory
}

func NewReviewRiderCommandHandler(uowFactory RiderUoWFactory) ReviewRiderCommandHandler {
	return ReviewRiderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns rider.ErrRiderBusy when rejecting a rider who is carrying a parcel.
func (h ReviewRiderCommandHandler) Handle(ctx context.Context, cmd ReviewRiderCommand) error {
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

	r, err := loadRider(ctx, uow.RiderRepository(), cmd.RiderID())
	if err != nil {
		return err
	}

	if cmd.Decision() == rider.ApprovalApproved {
		r.Approve()
	} else if err = r.Reject(); err != nil {
		return err
	}

	if err = uow.RiderRepository().Update(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
