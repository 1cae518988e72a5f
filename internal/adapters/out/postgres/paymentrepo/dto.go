// Package paymentrepo persists reconciled payments. The transaction id is the
// primary key, which makes a second write for the same gateway transaction a
// no-op.
package paymentrepo

import (
	"time"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/domain/model/payment"

	"github.com/google/uuid"
)

type PaymentDTO struct {
	TransactionID string    `gorm:"type:varchar(255);primaryKey"`
	ParcelID      uuid.UUID `gorm:"type:uuid;not null;index"`
	TrackingID    string    `gorm:"type:varchar(32);not null;index"`
	Amount        int64     `gorm:"type:bigint;not null"`
	Currency      string    `gorm:"type:varchar(3);not null"`
	PayerEmail    string    `gorm:"type:varchar(254);not null;index"`
	Status        string    `gorm:"type:varchar(32);not null"`
	PaidAt        time.Time `gorm:"type:timestamptz;not null;index"`
}

func (PaymentDTO) TableName() string {
	return "payments"
}

func fromDomain(p *payment.Payment) PaymentDTO {
	return PaymentDTO{
		TransactionID: p.TransactionID(),
		ParcelID:      p.ParcelID().Bytes(),
		TrackingID:    p.TrackingID().String(),
		Amount:        p.Amount().Amount(),
		Currency:      p.Amount().Currency(),
		PayerEmail:    p.Payer().String(),
		Status:        p.Status(),
		PaidAt:        p.PaidAt(),
	}
}

func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	parcelID, err := kernel.UUIDFromBytes(dto.ParcelID[:])
	if err != nil {
		return nil, err
	}
	trackingID, err := kernel.TrackingIDFromString(dto.TrackingID)
	if err != nil {
		return nil, err
	}
	amount, err := kernel.NewMoney(dto.Amount, dto.Currency)
	if err != nil {
		return nil, err
	}
	payer, err := kernel.NewEmail(dto.PayerEmail)
	if err != nil {
		return nil, err
	}

	return payment.NewPayment(dto.TransactionID, parcelID, trackingID, amount, payer, dto.Status, dto.PaidAt)
}
