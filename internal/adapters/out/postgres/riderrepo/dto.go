// Package riderrepo persists the rider aggregate with GORM.
package riderrepo

import (
	"time"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/domain/model/rider"

	"github.com/google/uuid"
)

type RiderDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string    `gorm:"type:varchar(200);not null"`
	Email          string    `gorm:"type:varchar(254);not null;uniqueIndex"`
	District       string    `gorm:"type:varchar(100);not null;index"`
	ApprovalStatus string    `gorm:"type:varchar(16);not null;index"`
	WorkStatus     string    `gorm:"type:varchar(16);not null;index"`
	CreatedAt      time.Time `gorm:"type:timestamptz;not null"`
}

func (RiderDTO) TableName() string {
	return "riders"
}

func fromDomain(r *rider.Rider) RiderDTO {
	return RiderDTO{
		ID:             r.ID().Bytes(),
		Name:           r.Name(),
		Email:          r.Email().String(),
		District:       r.District(),
		ApprovalStatus: r.Approval().String(),
		WorkStatus:     r.Work().String(),
		CreatedAt:      r.CreatedAt(),
	}
}

func toDomain(dto RiderDTO) (*rider.Rider, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	email, err := kernel.NewEmail(dto.Email)
	if err != nil {
		return nil, err
	}
	approval, err := rider.ParseApprovalStatus(dto.ApprovalStatus)
	if err != nil {
		return nil, err
	}
	work, err := rider.ParseWorkStatus(dto.WorkStatus)
	if err != nil {
		return nil, err
	}

	return rider.RestoreRider(id, dto.Name, email, dto.District, approval, work, dto.CreatedAt)
}
