package rider

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/pkg/errs"
	"parceldelivery/internal/pkg/guard"
)

var (
	// ErrNameIsRequired is returned when a rider applies without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")

	// ErrDistrictIsRequired is returned when a rider applies without a district.
	ErrDistrictIsRequired = errs.NewValueIsRequiredError("district")

	// ErrRiderIsNotConstructed is returned when using an improperly initialized Rider.
	ErrRiderIsNotConstructed = errors.New("Rider must be created via NewRider constructor")

	// ErrRiderUnavailable is returned when a rider is asked to start a delivery
	// while not approved or not available.
	ErrRiderUnavailable = errors.New("rider is not available for delivery")

	// ErrRiderBusy is returned when a rider with a parcel in hand is rejected.
	ErrRiderBusy = errors.New("rider is in delivery")
)

// Rider is the aggregate root for a delivery rider.
//
// Business rules:
//   - an application starts pending and unavailable
//   - approval makes the rider available; rejection makes them unavailable
//   - a rider carries at most one parcel: Available -> InDelivery -> Available
//   - only an approved, available rider can start a delivery
type Rider struct {
	id        kernel.UUID
	name      string
	email     kernel.Email
	district  string
	approval  ApprovalStatus
	work      WorkStatus
	createdAt time.Time
	guard     guard.ConstructorGuard
}

// NewRider registers a rider application.
//
// Example:
//
//	email, _ := kernel.NewEmail("alice@x.com")
//	r, err := NewRider(kernel.NewUUID(), "Alice", email, "Dhaka", time.Now())
//	if err != nil {
//	    return err
//	}
//	// r.Approval() == ApprovalPending, r.Work() == WorkUnavailable
func NewRider(id kernel.UUID, name string, email kernel.Email, district string, createdAt time.Time) (*Rider, error) {
	r := &Rider{
		approval:  ApprovalPending,
		work:      WorkUnavailable,
		createdAt: createdAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setName(name),
		r.setEmail(email),
		r.setDistrict(district),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRider rebuilds a rider from persisted state. An InDelivery or Available
// rider must be approved.
func RestoreRider(
	id kernel.UUID,
	name string,
	email kernel.Email,
	district string,
	approval ApprovalStatus,
	work WorkStatus,
	createdAt time.Time,
) (*Rider, error) {
	r := &Rider{
		createdAt: createdAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setName(name),
		r.setEmail(email),
		r.setDistrict(district),
		approval.Validate(),
		work.Validate(),
	); err != nil {
		return nil, err
	}

	if work != WorkUnavailable && approval != ApprovalApproved {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"workStatus", fmt.Errorf("%s rider cannot be %s", approval, work),
		)
	}

	r.approval = approval
	r.work = work
	return r, nil
}

func (r *Rider) IsEqual(other *Rider) bool {
	if other == nil {
		return false
	}
	return r.id.IsEqual(other.id)
}

func (r *Rider) Validate() error {
	if r == nil {
		return ErrRiderIsNotConstructed
	}
	return r.guard.Validate(ErrRiderIsNotConstructed)
}

func (r *Rider) ID() kernel.UUID { return r.id }

func (r *Rider) Name() string { return r.name }

func (r *Rider) Email() kernel.Email { return r.email }

func (r *Rider) District() string { return r.district }

func (r *Rider) Approval() ApprovalStatus { return r.approval }

func (r *Rider) Work() WorkStatus { return r.work }

func (r *Rider) CreatedAt() time.Time { return r.createdAt }

// CanDeliver reports whether the rider may start a delivery right now.
func (r *Rider) CanDeliver() bool {
	return r.approval == ApprovalApproved && r.work == WorkAvailable
}

// Approve accepts a pending or previously rejected application. Approving an
// already approved rider keeps their work status.
func (r *Rider) Approve() {
	if r.approval == ApprovalApproved {
		return
	}
	r.approval = ApprovalApproved
	r.work = WorkAvailable
}

// Reject declines the application or withdraws an approval. A rider that is
// carrying a parcel cannot be rejected until the delivery is finished.
func (r *Rider) Reject() error {
	if r.work == WorkInDelivery {
		return ErrRiderBusy
	}
	r.approval = ApprovalRejected
	r.work = WorkUnavailable
	return nil
}

// StartDelivery moves an available rider to InDelivery.
func (r *Rider) StartDelivery() error {
	if !r.CanDeliver() {
		return fmt.Errorf("%w: approval=%s work=%s", ErrRiderUnavailable, r.approval, r.work)
	}
	r.work = WorkInDelivery
	return nil
}

// FinishDelivery returns the rider to Available. It is a no-op for a rider
// that is no longer approved.
func (r *Rider) FinishDelivery() {
	if r.approval != ApprovalApproved {
		return
	}
	r.work = WorkAvailable
}

func (r *Rider) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Rider) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	r.name = name
	return nil
}

func (r *Rider) setEmail(email kernel.Email) error {
	if err := email.Validate(); err != nil {
		return err
	}
	r.email = email
	return nil
}

func (r *Rider) setDistrict(district string) error {
	district = strings.TrimSpace(district)
	if district == "" {
		return ErrDistrictIsRequired
	}
	r.district = district
	return nil
}
