package ports

import (
	"context"

	"parceldelivery/internal/core/domain/model/tracking"
)

// TrackingEventRepository appends to the tracking log. There is no update or
// delete: the log is append-only.
type TrackingEventRepository interface {
	Add(ctx context.Context, event *tracking.Event) error
}
