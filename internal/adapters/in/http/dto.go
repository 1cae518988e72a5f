package http

import (
	"time"

	"parceldelivery/internal/core/application/usecases/commands"
	"parceldelivery/internal/core/application/usecases/queries"
	"parceldelivery/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

type NewParcelRequest struct {
	SenderName      string `json:"senderName" validate:"required,max=200"`
	ReceiverName    string `json:"receiverName" validate:"required,max=200"`
	ReceiverAddress string `json:"receiverAddress" validate:"required,max=500"`
	District        string `json:"district" validate:"required,max=100"`
	WeightGrams     int    `json:"weightGrams" validate:"required,gt=0"`
	CostAmount      int64  `json:"costAmount" validate:"gte=0"`
	Currency        string `json:"currency" validate:"required,len=3"`
}

type ReconcileRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
}

type RiderRequest struct {
	RiderID string `json:"riderId" validate:"required,uuid"`
}

type StatusOverrideRequest struct {
	Status  string `json:"status" validate:"required,oneof=created pending-pickup delivery-assigned delivered"`
	RiderID string `json:"riderId" validate:"omitempty,uuid"`
}

type NewRiderRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	District string `json:"district" validate:"required,max=100"`
}

type RiderReviewRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approved rejected"`
}

type CreatedResponse struct {
	ID string `json:"id"`
}

type CheckoutResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

type ReconcileResponse struct {
	TrackingID    string `json:"trackingId"`
	TransactionID string `json:"transactionId"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	Duplicate     bool   `json:"duplicate"`
}

func newReconcileResponse(r commands.ReconcilePaymentResult) ReconcileResponse {
	resp := ReconcileResponse{
		TrackingID: r.TrackingID.String(),
		Duplicate:  r.Duplicate,
	}
	if r.Payment != nil {
		resp.TransactionID = r.Payment.TransactionID()
		resp.Amount = r.Payment.Amount().Amount()
		resp.Currency = r.Payment.Amount().Currency()
	}
	return resp
}

type ParcelResponse struct {
	ID              string `json:"id"`
	SenderEmail     string `json:"senderEmail"`
	SenderName      string `json:"senderName"`
	ReceiverName    string `json:"receiverName"`
	ReceiverAddress string `json:"receiverAddress"`
	District        string `json:"district"`
	WeightGrams     int    `json:"weightGrams"`
	CostAmount      int64  `json:"costAmount"`
	Currency        string `json:"currency"`
	DeliveryStatus  string `json:"deliveryStatus"`
	PaymentStatus   string `json:"paymentStatus"`
	TrackingID      string `json:"trackingId,omitempty"`
	RiderID         string `json:"riderId,omitempty"`
	RiderName       string `json:"riderName,omitempty"`
	RiderEmail      string `json:"riderEmail,omitempty"`
	CreatedAt       string `json:"createdAt"`
}

func newParcelResponse(p queries.GetParcelQueryResponse) ParcelResponse {
	return ParcelResponse{
		ID:              p.ID.String(),
		SenderEmail:     p.SenderEmail,
		SenderName:      p.SenderName,
		ReceiverName:    p.ReceiverName,
		ReceiverAddress: p.ReceiverAddress,
		District:        p.District,
		WeightGrams:     p.WeightGrams,
		CostAmount:      p.CostAmount,
		Currency:        p.CostCurrency,
		DeliveryStatus:  p.DeliveryStatus,
		PaymentStatus:   p.PaymentStatus,
		TrackingID:      p.TrackingID,
		RiderID:         p.RiderID,
		RiderName:       p.RiderName,
		RiderEmail:      p.RiderEmail,
		CreatedAt:       p.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

type PaymentResponse struct {
	TransactionID string `json:"transactionId"`
	ParcelID      string `json:"parcelId"`
	TrackingID    string `json:"trackingId"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	PayerEmail    string `json:"payerEmail"`
	Status        string `json:"status"`
	PaidAt        string `json:"paidAt"`
}

func newPaymentResponse(p queries.GetPaymentHistoryQueryResponse) PaymentResponse {
	return PaymentResponse{
		TransactionID: p.TransactionID,
		ParcelID:      p.ParcelID.String(),
		TrackingID:    p.TrackingID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		PayerEmail:    p.PayerEmail,
		Status:        p.Status,
		PaidAt:        p.PaidAt.UTC().Format(time.RFC3339Nano),
	}
}

type TrackingEventResponse struct {
	ID         string `json:"id"`
	TrackingID string `json:"trackingId"`
	Status     string `json:"status"`
	Detail     string `json:"detail"`
	CreatedAt  string `json:"createdAt"`
}

type RiderResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	District string `json:"district"`
}

// RequestValidator plugs go-playground/validator into echo.Context.Validate.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *RequestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return nil
}

func invalidBody(err error) error {
	return errs.NewValueIsInvalidErrorWithCause("body", err)
}

func invalidParam(name string, err error) error {
	return errs.NewValueIsInvalidErrorWithCause(name, err)
}
