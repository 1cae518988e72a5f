package ports

import (
	"context"

	"parceldelivery/internal/core/domain/model/payment"
)

// PaymentRepository defines the persistence contract for payment records.
// Records are written once and never updated.
type PaymentRepository interface {
	// AddIfAbsent inserts the record unless one already exists for its
	// transaction id. It reports whether this call inserted it.
	AddIfAbsent(ctx context.Context, record *payment.Payment) (bool, error)

	// Get retrieves a record by gateway transaction id.
	Get(ctx context.Context, transactionID string) (*payment.Payment, error)
}
