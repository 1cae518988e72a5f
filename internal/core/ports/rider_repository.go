package ports

import (
	"context"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/domain/model/rider"
)

// RiderRepository defines the persistence contract for rider aggregates.
type RiderRepository interface {
	Add(ctx context.Context, aggregate *rider.Rider) error

	Update(ctx context.Context, aggregate *rider.Rider) error

	// Get retrieves a rider by id, locking the row inside a transaction.
	Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error)
}
