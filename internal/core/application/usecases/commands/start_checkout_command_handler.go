package commands

import (
	"context"
	"errors"
	"fmt"

	"parceldelivery/internal/core/domain/model/parcel"
	"parceldelivery/internal/core/ports"
)

// StartCheckoutCommandHandler creates a checkout session at the payment gateway
// and remembers its reference on the parcel, so that a lost payment callback can
// still be reconciled later by the payment sweep.
type StartCheckoutCommandHandler struct {
	uowFactory ParcelUoWFactory
	gateway    ports.PaymentGateway
}

func NewStartCheckoutCommandHandler(
	uowFactory ParcelUoWFactory,
	gateway ports.PaymentGateway,
) StartCheckoutCommandHandler {
	return StartCheckoutCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
	}
}

// Handle returns the parcel's open session when it has one and otherwise creates
// a new session. A remembered session that the gateway reports as paid is kept
// for the payment sweep and the call fails with parcel.ErrAlreadyPaid. The
// gateway is called outside of the database transaction; only attaching the
// session reference is transactional.
func (h StartCheckoutCommandHandler) Handle(ctx context.Context, cmd StartCheckoutCommand) (ports.CheckoutSession, error) {
	if err := cmd.Validate(); err != nil {
		return ports.CheckoutSession{}, err
	}

	uow := h.uowFactory.Create()

	p, err := checkoutParcel(ctx, uow.ParcelRepository(), cmd)
	if err != nil {
		return ports.CheckoutSession{}, err
	}

	if ref := p.CheckoutSession(); ref != "" {
		existing, reusable, err := h.existingSession(ctx, ref)
		if err != nil {
			return ports.CheckoutSession{}, err
		}
		if reusable {
			return existing, nil
		}
	}

	session, err := h.gateway.CreateCheckoutSession(ctx, ports.CheckoutRequest{
		ParcelID:    p.ID(),
		Cost:        p.Cost(),
		PayerEmail:  p.Sender(),
		Description: fmt.Sprintf("Parcel to %s, %s", p.Shipment().ReceiverName, p.Shipment().District),
	})
	if err != nil {
		return ports.CheckoutSession{}, err
	}

	if err = uow.Begin(ctx); err != nil {
		return ports.CheckoutSession{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	p, err = checkoutParcel(ctx, uow.ParcelRepository(), cmd)
	if err != nil {
		return ports.CheckoutSession{}, err
	}
	if err = p.AttachCheckoutSession(session.Reference); err != nil {
		return ports.CheckoutSession{}, err
	}
	if err = uow.ParcelRepository().Update(ctx, p); err != nil {
		return ports.CheckoutSession{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return ports.CheckoutSession{}, err
	}

	return session, nil
}

// existingSession reports whether ref can be handed out again. An expired or
// unknown session is replaced.
func (h StartCheckoutCommandHandler) existingSession(
	ctx context.Context,
	ref string,
) (ports.CheckoutSession, bool, error) {
	session, err := h.gateway.RetrieveSession(ctx, ref)
	if errors.Is(err, ports.ErrCheckoutSessionNotFound) {
		return ports.CheckoutSession{}, false, nil
	}
	if err != nil {
		return ports.CheckoutSession{}, false, err
	}
	if session.Paid {
		return ports.CheckoutSession{}, false, fmt.Errorf(
			"%w: checkout session %s is paid, awaiting reconciliation", parcel.ErrAlreadyPaid, ref,
		)
	}
	return session, session.Open && session.URL != "", nil
}

func checkoutParcel(ctx context.Context, repo ports.ParcelRepository, cmd StartCheckoutCommand) (*parcel.Parcel, error) {
	p, err := loadParcel(ctx, repo, cmd.ParcelID())
	if err != nil {
		return nil, err
	}
	if !p.Sender().IsEqual(cmd.Caller()) {
		return nil, ErrForbidden
	}
	if p.PaymentStatus() == parcel.Paid {
		return nil, parcel.ErrAlreadyPaid
	}
	return p, nil
}
