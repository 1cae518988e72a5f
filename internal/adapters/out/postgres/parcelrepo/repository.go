package parcelrepo

import (
	"context"
	"errors"
	"fmt"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/domain/model/parcel"
	"parceldelivery/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormParcelRepository implements ports.ParcelRepository using GORM.
type GormParcelRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormParcelRepository(db *gorm.DB, tracker aggregateTracker) *GormParcelRepository {
	return &GormParcelRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new parcel.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes every column of the parcel, including the ones that were
// cleared, such as the rider after an override.
func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("parcel", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get loads a parcel and locks its row until the surrounding transaction ends.
// Outside a transaction the lock is released immediately.
func (r *GormParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// SetTrackingIDIfAbsent stores trackingID only when the parcel has none yet and
// returns whichever id the parcel carries afterwards. Two concurrent callers
// therefore agree on a single id.
func (r *GormParcelRepository) SetTrackingIDIfAbsent(
	ctx context.Context,
	id kernel.UUID,
	trackingID kernel.TrackingID,
) (kernel.TrackingID, error) {
	if err := errors.Join(id.Validate(), trackingID.Validate()); err != nil {
		return kernel.TrackingID{}, err
	}

	err := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("id = ? AND tracking_id IS NULL", id.Bytes()).
		Update("tracking_id", trackingID.String()).Error
	if err != nil {
		return kernel.TrackingID{}, err
	}

	var dto ParcelDTO
	err = r.db.WithContext(ctx).Select("tracking_id").First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return kernel.TrackingID{}, errs.NewObjectNotFoundError("parcel", id.String())
		}
		return kernel.TrackingID{}, err
	}
	if dto.TrackingID == nil {
		return kernel.TrackingID{}, fmt.Errorf("parcel %s: tracking id was not stored", id)
	}

	return kernel.TrackingIDFromString(*dto.TrackingID)
}

// ListAwaitingPayment returns unpaid parcels that already have a checkout
// session, oldest first.
func (r *GormParcelRepository) ListAwaitingPayment(ctx context.Context, limit int) ([]*parcel.Parcel, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var dtos []ParcelDTO
	if err := r.db.WithContext(ctx).
		Where("payment_status = ? AND checkout_session IS NOT NULL", parcel.Unpaid.String()).
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	parcels := make([]*parcel.Parcel, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		parcels = append(parcels, p)
	}

	return parcels, nil
}
