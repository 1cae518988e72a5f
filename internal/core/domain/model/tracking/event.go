package tracking

import (
	"errors"
	"strings"
	"time"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/pkg/errs"
	"parceldelivery/internal/pkg/guard"
)

// Details written by the lifecycle operations.
const (
	DetailPaymentSuccessful = "payment successful"
	DetailRiderAssigned     = "Driver-assigned"
	DetailDelivered         = "delivered"
)

const maxDetailLength = 500

// ErrEventIsNotConstructed is returned when using an improperly initialized Event.
var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent constructor")

// Event is one immutable entry of a parcel's tracking log.
type Event struct {
	id         kernel.UUID
	trackingID kernel.TrackingID
	status     string
	detail     string
	createdAt  time.Time
	guard      guard.ConstructorGuard
}

// NewEvent creates a log entry. Status is the parcel's delivery status label at
// the time of the event; detail is free text shown to customers.
func NewEvent(id kernel.UUID, trackingID kernel.TrackingID, status, detail string, createdAt time.Time) (*Event, error) {
	e := &Event{
		id:         id,
		trackingID: trackingID,
		status:     strings.TrimSpace(status),
		detail:     strings.TrimSpace(detail),
		createdAt:  createdAt.UTC(),
		guard:      guard.NewConstructorGuard(),
	}

	errList := []error{id.Validate(), trackingID.Validate()}
	if e.status == "" {
		errList = append(errList, errs.NewValueIsRequiredError("status"))
	}
	if len(e.detail) > maxDetailLength {
		errList = append(errList, errs.NewValueIsOutOfRangeError("detail", len(e.detail), 0, maxDetailLength))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return e, nil
}

func (e *Event) Validate() error {
	if e == nil {
		return ErrEventIsNotConstructed
	}
	return e.guard.Validate(ErrEventIsNotConstructed)
}

func (e *Event) ID() kernel.UUID { return e.id }

func (e *Event) TrackingID() kernel.TrackingID { return e.trackingID }

func (e *Event) Status() string { return e.status }

func (e *Event) Detail() string { return e.detail }

func (e *Event) CreatedAt() time.Time { return e.createdAt }
