package commands

import (
	"errors"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/domain/model/rider"
	"parceldelivery/internal/pkg/errs"
	"parceldelivery/internal/pkg/guard"
)

var ErrReviewRiderCommandIsNotConstructed = errors.New(
	"ReviewRiderCommand must be created via NewReviewRiderCommand constructor",
)

// ReviewRiderCommand records an administrator's decision on a rider.
type ReviewRiderCommand struct {
	riderID  kernel.UUID
	decision rider.ApprovalStatus

	guard guard.ConstructorGuard
}

// NewReviewRiderCommand accepts "approved" or "rejected".
func NewReviewRiderCommand(riderID kernel.UUID, decision string) (ReviewRiderCommand, error) {
	if err := riderID.Validate(); err != nil {
		return ReviewRiderCommand{}, err
	}
	status, err := rider.ParseApprovalStatus(decision)
	if err != nil {
		return ReviewRiderCommand{}, err
	}
	if status == rider.ApprovalPending {
		return ReviewRiderCommand{}, errs.NewValueIsInvalidError("decision")
	}

	return ReviewRiderCommand{
		riderID:  riderID,
		decision: status,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ReviewRiderCommand) Validate() error {
	return c.guard.Validate(ErrReviewRiderCommandIsNotConstructed)
}

func (c ReviewRiderCommand) RiderID() kernel.UUID { return c.riderID }

func (c ReviewRiderCommand) Decision() rider.ApprovalStatus { return c.decision }
