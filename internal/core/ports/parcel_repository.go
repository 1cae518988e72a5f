// Package ports defines the contracts between the core and its adapters:
// repositories and the unit of work for PostgreSQL, the payment gateway and
// the tracking event publisher.
package ports

import (
	"context"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/domain/model/parcel"
)

// ParcelRepository defines the persistence contract for parcel aggregates.
type ParcelRepository interface {
	// Add persists a new parcel.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists changes to an existing parcel.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Get retrieves a parcel by id. Inside a transaction the row stays locked
	// until commit or rollback.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// SetTrackingIDIfAbsent stores trackingID only if the parcel has none yet and
	// returns whichever value is stored afterwards. Concurrent callers all
	// observe the same winner.
	SetTrackingIDIfAbsent(ctx context.Context, id kernel.UUID, trackingID kernel.TrackingID) (kernel.TrackingID, error)

	// ListAwaitingPayment returns unpaid parcels that have a checkout session,
	// oldest first, at most limit of them.
	ListAwaitingPayment(ctx context.Context, limit int) ([]*parcel.Parcel, error)
}
