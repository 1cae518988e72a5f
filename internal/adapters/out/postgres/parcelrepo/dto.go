// Package parcelrepo persists the parcel aggregate with GORM.
package parcelrepo

import (
	"time"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelDTO is the row stored in the parcels table. Statuses are stored by
// their wire names so raw read-side queries can return them unchanged.
type ParcelDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	SenderEmail     string     `gorm:"type:varchar(254);not null;index"`
	SenderName      string     `gorm:"type:varchar(200);not null"`
	ReceiverName    string     `gorm:"type:varchar(200);not null"`
	ReceiverAddress string     `gorm:"type:varchar(500);not null"`
	District        string     `gorm:"type:varchar(100);not null;index"`
	WeightGrams     int        `gorm:"type:int;not null"`
	Cost            MoneyDTO   `gorm:"embedded;embeddedPrefix:cost_"`
	DeliveryStatus  string     `gorm:"type:varchar(32);not null;index"`
	PaymentStatus   string     `gorm:"type:varchar(16);not null;index"`
	TrackingID      *string    `gorm:"type:varchar(32);uniqueIndex"`
	RiderID         *uuid.UUID `gorm:"type:uuid;index"`
	RiderName       *string    `gorm:"type:varchar(200)"`
	RiderEmail      *string    `gorm:"type:varchar(254)"`
	CheckoutSession *string    `gorm:"type:varchar(255);index"`
	CreatedAt       time.Time  `gorm:"type:timestamptz;not null;index"`
}

func (ParcelDTO) TableName() string {
	return "parcels"
}

// MoneyDTO is embedded with the cost_ prefix.
type MoneyDTO struct {
	Amount   int64  `gorm:"type:bigint;not null"`
	Currency string `gorm:"type:varchar(3);not null"`
}

func fromDomain(p *parcel.Parcel) ParcelDTO {
	shipment := p.Shipment()
	dto := ParcelDTO{
		ID:              p.ID().Bytes(),
		SenderEmail:     p.Sender().String(),
		SenderName:      shipment.SenderName,
		ReceiverName:    shipment.ReceiverName,
		ReceiverAddress: shipment.ReceiverAddress,
		District:        shipment.District,
		WeightGrams:     shipment.WeightGrams,
		Cost: MoneyDTO{
			Amount:   p.Cost().Amount(),
			Currency: p.Cost().Currency(),
		},
		DeliveryStatus: p.DeliveryStatus().String(),
		PaymentStatus:  p.PaymentStatus().String(),
		CreatedAt:      p.CreatedAt(),
	}

	if p.HasTrackingID() {
		tid := p.TrackingID().String()
		dto.TrackingID = &tid
	}
	if a := p.Rider(); a != nil {
		riderID := a.RiderID().Bytes()
		name := a.Name()
		email := a.Email().String()
		dto.RiderID, dto.RiderName, dto.RiderEmail = &riderID, &name, &email
	}
	if ref := p.CheckoutSession(); ref != "" {
		dto.CheckoutSession = &ref
	}

	return dto
}

func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	sender, err := kernel.NewEmail(dto.SenderEmail)
	if err != nil {
		return nil, err
	}
	cost, err := kernel.NewMoney(dto.Cost.Amount, dto.Cost.Currency)
	if err != nil {
		return nil, err
	}
	deliveryStatus, err := parcel.ParseDeliveryStatus(dto.DeliveryStatus)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := parcel.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	var trackingID kernel.TrackingID
	if dto.TrackingID != nil {
		if trackingID, err = kernel.TrackingIDFromString(*dto.TrackingID); err != nil {
			return nil, err
		}
	}

	assignment, err := riderToDomain(dto)
	if err != nil {
		return nil, err
	}

	var checkoutSession string
	if dto.CheckoutSession != nil {
		checkoutSession = *dto.CheckoutSession
	}

	return parcel.RestoreParcel(
		id,
		sender,
		parcel.Shipment{
			SenderName:      dto.SenderName,
			ReceiverName:    dto.ReceiverName,
			ReceiverAddress: dto.ReceiverAddress,
			District:        dto.District,
			WeightGrams:     dto.WeightGrams,
		},
		cost,
		deliveryStatus,
		paymentStatus,
		trackingID,
		assignment,
		checkoutSession,
		dto.CreatedAt,
	)
}

func riderToDomain(dto ParcelDTO) (*parcel.RiderAssignment, error) {
	if dto.RiderID == nil {
		return nil, nil
	}

	riderID, err := kernel.UUIDFromBytes((*dto.RiderID)[:])
	if err != nil {
		return nil, err
	}
	var name, email string
	if dto.RiderName != nil {
		name = *dto.RiderName
	}
	if dto.RiderEmail != nil {
		email = *dto.RiderEmail
	}
	riderEmail, err := kernel.NewEmail(email)
	if err != nil {
		return nil, err
	}

	a, err := parcel.NewRiderAssignment(riderID, name, riderEmail)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
