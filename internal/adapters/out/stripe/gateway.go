// Package stripe adapts Stripe Checkout to ports.PaymentGateway.
package stripe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"parceldelivery/internal/core/ports"

	stripego "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// sessionClient is the part of session.Client the gateway uses.
type sessionClient interface {
	Get(id string, params *stripego.CheckoutSessionParams) (*stripego.CheckoutSession, error)
	New(params *stripego.CheckoutSessionParams) (*stripego.CheckoutSession, error)
}

type Config struct {
	SecretKey  string
	SuccessURL string
	CancelURL  string
}

// Gateway implements ports.PaymentGateway on top of Stripe Checkout sessions.
type Gateway struct {
	sessions   sessionClient
	successURL string
	cancelURL  string
}

func NewGateway(cfg Config) *Gateway {
	return newGateway(&session.Client{
		B:   stripego.GetBackend(stripego.APIBackend),
		Key: cfg.SecretKey,
	}, cfg)
}

func newGateway(sessions sessionClient, cfg Config) *Gateway {
	return &Gateway{
		sessions:   sessions,
		successURL: cfg.SuccessURL,
		cancelURL:  cfg.CancelURL,
	}
}

// RetrieveSession loads the session with its payment intent expanded, so the
// intent id can serve as the transaction id.
func (g *Gateway) RetrieveSession(ctx context.Context, reference string) (ports.CheckoutSession, error) {
	params := &stripego.CheckoutSessionParams{}
	params.Context = ctx
	params.AddExpand("payment_intent")

	s, err := g.sessions.Get(reference, params)
	if err != nil {
		return ports.CheckoutSession{}, mapError(reference, err)
	}

	return toCheckoutSession(s), nil
}

// CreateCheckoutSession opens a one-item payment session for the parcel. The
// parcel id travels in the metadata and comes back on retrieval.
func (g *Gateway) CreateCheckoutSession(ctx context.Context, req ports.CheckoutRequest) (ports.CheckoutSession, error) {
	params := &stripego.CheckoutSessionParams{
		Mode:          stripego.String(string(stripego.CheckoutSessionModePayment)),
		SuccessURL:    stripego.String(g.successURL),
		CancelURL:     stripego.String(g.cancelURL),
		CustomerEmail: stripego.String(req.PayerEmail.String()),
		LineItems: []*stripego.CheckoutSessionLineItemParams{
			{
				PriceData: &stripego.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripego.String(req.Cost.Currency()),
					UnitAmount: stripego.Int64(req.Cost.Amount()),
					ProductData: &stripego.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripego.String(req.Description),
					},
				},
				Quantity: stripego.Int64(1),
			},
		},
	}
	params.Context = ctx
	params.AddMetadata(ports.MetadataParcelID, req.ParcelID.String())

	s, err := g.sessions.New(params)
	if err != nil {
		return ports.CheckoutSession{}, mapError(req.ParcelID.String(), err)
	}

	return toCheckoutSession(s), nil
}

func toCheckoutSession(s *stripego.CheckoutSession) ports.CheckoutSession {
	out := ports.CheckoutSession{
		Reference:   s.ID,
		URL:         s.URL,
		Open:        s.Status == stripego.CheckoutSessionStatusOpen,
		Paid:        s.PaymentStatus == stripego.CheckoutSessionPaymentStatusPaid,
		AmountTotal: s.AmountTotal,
		Currency:    strings.ToLower(string(s.Currency)),
		PayerEmail:  s.CustomerEmail,
		Metadata:    s.Metadata,
	}
	if s.CustomerDetails != nil && s.CustomerDetails.Email != "" {
		out.PayerEmail = s.CustomerDetails.Email
	}
	if out.Paid && s.PaymentIntent != nil {
		out.TransactionID = s.PaymentIntent.ID
	}
	if out.Metadata == nil {
		out.Metadata = map[string]string{}
	}
	return out
}

func mapError(reference string, err error) error {
	var stripeErr *stripego.Error
	if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ports.ErrCheckoutSessionNotFound, reference)
	}
	return fmt.Errorf("%w: %w", ports.ErrGatewayUnavailable, err)
}
