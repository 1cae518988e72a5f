package ports

import (
	"context"
	"errors"

	"parceldelivery/internal/core/domain/model/kernel"
)

// ErrGatewayUnavailable wraps every failure to reach the payment gateway or to
// make sense of its answer.
var ErrGatewayUnavailable = errors.New("payment gateway unavailable")

// ErrCheckoutSessionNotFound is returned when the gateway does not know the
// session reference.
var ErrCheckoutSessionNotFound = errors.New("checkout session not found")

// CheckoutSession is the gateway's view of a checkout.
type CheckoutSession struct {
	// Reference is the session id the customer is redirected with.
	Reference string
	// URL is where the customer pays. Only set while the session is open.
	URL string
	// Open is true while the customer can still pay through the session.
	Open bool
	// Paid is true once the gateway has settled the payment.
	Paid bool
	// TransactionID identifies the settled payment; empty until Paid.
	TransactionID string
	AmountTotal   int64
	Currency      string
	PayerEmail    string
	// Metadata carries the values attached at creation, e.g. the parcel id.
	Metadata map[string]string
}

// CheckoutRequest describes a session to create for a parcel.
type CheckoutRequest struct {
	ParcelID    kernel.UUID
	Cost        kernel.Money
	PayerEmail  kernel.Email
	Description string
}

// PaymentGateway is the external payment provider.
type PaymentGateway interface {
	RetrieveSession(ctx context.Context, reference string) (CheckoutSession, error)
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (CheckoutSession, error)
}

// MetadataParcelID is the session metadata key holding the parcel id.
const MetadataParcelID = "parcelId"
