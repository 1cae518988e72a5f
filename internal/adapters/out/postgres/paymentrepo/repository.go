package paymentrepo

import (
	"context"
	"errors"
	"strings"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/domain/model/payment"
	"parceldelivery/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPaymentRepository implements ports.PaymentRepository using GORM.
type GormPaymentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormPaymentRepository(db *gorm.DB, tracker aggregateTracker) *GormPaymentRepository {
	return &GormPaymentRepository{
		db:      db,
		tracker: tracker,
	}
}

// AddIfAbsent inserts the payment unless a row with the same transaction id
// exists. It reports whether this call wrote the row. When another transaction
// holds an uncommitted insert for the same id, PostgreSQL blocks the insert
// until that transaction finishes.
func (r *GormPaymentRepository) AddIfAbsent(ctx context.Context, record *payment.Payment) (bool, error) {
	if err := record.Validate(); err != nil {
		return false, err
	}

	dto := fromDomain(record)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	r.tracker.TrackAggregate(record.ParcelID(), record)
	return true, nil
}

func (r *GormPaymentRepository) Get(ctx context.Context, transactionID string) (*payment.Payment, error) {
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return nil, errs.NewValueIsRequiredError("transactionId")
	}

	var dto PaymentDTO
	if err := r.db.WithContext(ctx).First(&dto, "transaction_id = ?", transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("payment", transactionID)
		}
		return nil, err
	}

	return toDomain(dto)
}
