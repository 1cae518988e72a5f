package queries

import (
	"context"
	"database/sql"
	"fmt"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetParcelQueryHandler struct {
	db *gorm.DB
}

func NewGetParcelQueryHandler(db *gorm.DB) GetParcelQueryHandler {
	return GetParcelQueryHandler{db: db}
}

// Handle returns ErrParcelNotFound for an unknown id and ErrForbidden when the
// caller is neither the sender nor an administrator.
func (h GetParcelQueryHandler) Handle(ctx context.Context, query GetParcelQuery) (GetParcelQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetParcelQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			sender_email,
			sender_name,
			receiver_name,
			receiver_address,
			district,
			weight_grams,
			cost_amount,
			cost_currency,
			delivery_status,
			payment_status,
			tracking_id,
			rider_id,
			rider_name,
			rider_email,
			created_at
		FROM parcels
		WHERE id = ?
	`, query.ParcelID().Bytes()).Rows()
	if err != nil {
		return GetParcelQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetParcelQueryResponse{}, err
		}
		return GetParcelQueryResponse{}, fmt.Errorf("%w: %w",
			ErrParcelNotFound, errs.NewObjectNotFoundError("parcel", query.ParcelID().String()))
	}

	var p GetParcelQueryResponse
	var id uuid.UUID
	var trackingID, riderID, riderName, riderEmail sql.NullString

	err = rows.Scan(
		&id,
		&p.SenderEmail,
		&p.SenderName,
		&p.ReceiverName,
		&p.ReceiverAddress,
		&p.District,
		&p.WeightGrams,
		&p.CostAmount,
		&p.CostCurrency,
		&p.DeliveryStatus,
		&p.PaymentStatus,
		&trackingID,
		&riderID,
		&riderName,
		&riderEmail,
		&p.CreatedAt,
	)
	if err != nil {
		return GetParcelQueryResponse{}, err
	}

	parcelID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetParcelQueryResponse{}, err
	}
	p.ID = parcelID
	p.TrackingID = trackingID.String
	p.RiderID = riderID.String
	p.RiderName = riderName.String
	p.RiderEmail = riderEmail.String

	if !query.CallerIsAdmin() && p.SenderEmail != query.Caller().String() {
		return GetParcelQueryResponse{}, fmt.Errorf("%w: parcel %s", ErrForbidden, parcelID)
	}

	return p, nil
}
