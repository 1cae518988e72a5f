package queries

import (
	"errors"
	"time"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/pkg/guard"
)

var ErrGetTrackingEventsQueryIsNotConstructed = errors.New(
	"GetTrackingEventsQuery must be created via NewGetTrackingEventsQuery constructor",
)

// GetTrackingEventsQuery lists the tracking log for one tracking id, oldest
// first. The log is public: anyone holding the id may read it.
//
// Example:
//
//	query, err := NewGetTrackingEventsQuery("PRC-20261016-9F03A2C1")
//	if err != nil {
//	    return err
//	}
//	events, err := handler.Handle(ctx, query)
type GetTrackingEventsQuery struct {
	trackingID kernel.TrackingID

	guard guard.ConstructorGuard
}

func NewGetTrackingEventsQuery(trackingID string) (GetTrackingEventsQuery, error) {
	tid, err := kernel.TrackingIDFromString(trackingID)
	if err != nil {
		return GetTrackingEventsQuery{}, err
	}

	return GetTrackingEventsQuery{
		trackingID: tid,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetTrackingEventsQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackingEventsQueryIsNotConstructed)
}

func (q GetTrackingEventsQuery) TrackingID() kernel.TrackingID { return q.trackingID }

type GetTrackingEventsQueryResponse struct {
	ID         kernel.UUID
	TrackingID string
	Status     string
	Detail     string
	CreatedAt  time.Time
}
