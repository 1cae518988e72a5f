package queries

import (
	"context"
	"fmt"

	"parceldelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPaymentHistoryQueryHandler reads an account's payments straight from the
// payments table.
type GetPaymentHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetPaymentHistoryQueryHandler builds the handler over db.
func NewGetPaymentHistoryQueryHandler(db *gorm.DB) GetPaymentHistoryQueryHandler {
	return GetPaymentHistoryQueryHandler{db: db}
}

// Handle lists the owner's payments, newest first. Only the owner may read
// them; anyone else gets ErrForbidden.
func (h GetPaymentHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetPaymentHistoryQuery,
) ([]GetPaymentHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if !query.Owner().IsEqual(query.Caller()) {
		return nil, fmt.Errorf("%w: payment history of %s", ErrForbidden, query.Owner())
	}

	payments := make([]GetPaymentHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			transaction_id,
			parcel_id,
			tracking_id,
			amount,
			currency,
			payer_email,
			status,
			paid_at
		FROM payments
		WHERE payer_email = ?
		ORDER BY paid_at DESC, transaction_id
	`, query.Owner().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p GetPaymentHistoryQueryResponse
		var parcelID uuid.UUID

		err = rows.Scan(
			&p.TransactionID,
			&parcelID,
			&p.TrackingID,
			&p.Amount,
			&p.Currency,
			&p.PayerEmail,
			&p.Status,
			&p.PaidAt,
		)
		if err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromBytes(parcelID[:])
		if idErr != nil {
			return nil, idErr
		}
		p.ParcelID = id
		payments = append(payments, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return payments, nil
}
