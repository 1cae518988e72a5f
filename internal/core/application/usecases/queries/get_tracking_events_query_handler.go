package queries

import (
	"context"

	"parceldelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetTrackingEventsQueryHandler reads the tracking log. Entries written in the
// same instant are ordered by id so the result is stable between calls.
type GetTrackingEventsQueryHandler struct {
	db *gorm.DB
}

func NewGetTrackingEventsQueryHandler(db *gorm.DB) GetTrackingEventsQueryHandler {
	return GetTrackingEventsQueryHandler{db: db}
}

// Handle returns every entry for the tracking id; an unknown id yields an
// empty slice.
func (h GetTrackingEventsQueryHandler) Handle(
	ctx context.Context,
	query GetTrackingEventsQuery,
) ([]GetTrackingEventsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	events := make([]GetTrackingEventsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_id,
			status,
			detail,
			created_at
		FROM tracking_events
		WHERE tracking_id = ?
		ORDER BY created_at, id
	`, query.TrackingID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var event GetTrackingEventsQueryResponse
		var id uuid.UUID

		if err = rows.Scan(&id, &event.TrackingID, &event.Status, &event.Detail, &event.CreatedAt); err != nil {
			return nil, err
		}

		eventID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		event.ID = eventID
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
