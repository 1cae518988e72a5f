package ports

import (
	"context"

	"parceldelivery/internal/core/domain/model/tracking"
)

// TrackingEventPublisher broadcasts committed tracking events to other systems.
type TrackingEventPublisher interface {
	Publish(ctx context.Context, events ...*tracking.Event) error
}
