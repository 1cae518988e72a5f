// Package trackingrepo appends tracking log entries. Rows are never updated.
package trackingrepo

import (
	"time"

	"parceldelivery/internal/core/domain/model/tracking"

	"github.com/google/uuid"
)

type TrackingEventDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	TrackingID string    `gorm:"type:varchar(32);not null;index:idx_tracking_events_tid_created,priority:1"`
	Status     string    `gorm:"type:varchar(32);not null"`
	Detail     string    `gorm:"type:varchar(500);not null;default:''"`
	CreatedAt  time.Time `gorm:"type:timestamptz;not null;index:idx_tracking_events_tid_created,priority:2"`
}

func (TrackingEventDTO) TableName() string {
	return "tracking_events"
}

func fromDomain(e *tracking.Event) TrackingEventDTO {
	return TrackingEventDTO{
		ID:         e.ID().Bytes(),
		TrackingID: e.TrackingID().String(),
		Status:     e.Status(),
		Detail:     e.Detail(),
		CreatedAt:  e.CreatedAt(),
	}
}
