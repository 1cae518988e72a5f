package queries

import (
	"context"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/domain/model/rider"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetAvailableRidersQueryHandler struct {
	db *gorm.DB
}

func NewGetAvailableRidersQueryHandler(db *gorm.DB) GetAvailableRidersQueryHandler {
	return GetAvailableRidersQueryHandler{db: db}
}

// Handle returns riders sorted by name. District matching ignores case.
func (h GetAvailableRidersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableRidersQuery,
) ([]GetAvailableRidersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	riders := make([]GetAvailableRidersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			email,
			district
		FROM riders
		WHERE approval_status = @approved
			AND work_status = @available
			AND (@district = '' OR lower(district) = lower(@district))
		ORDER BY name, id
	`, map[string]any{
		"approved":  rider.ApprovalApproved.String(),
		"available": rider.WorkAvailable.String(),
		"district":  query.District(),
	}).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var r GetAvailableRidersQueryResponse
		var id uuid.UUID

		if err = rows.Scan(&id, &r.Name, &r.Email, &r.District); err != nil {
			return nil, err
		}

		riderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		r.ID = riderID
		riders = append(riders, r)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return riders, nil
}
