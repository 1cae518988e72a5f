package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/domain/model/parcel"
	"parceldelivery/internal/core/domain/model/payment"
	"parceldelivery/internal/core/domain/model/tracking"
	"parceldelivery/internal/core/ports"
	"parceldelivery/internal/pkg/errs"
)

// ReconcilePaymentResult is returned for both first and repeated reconciliations
// of the same transaction.
type ReconcilePaymentResult struct {
	TrackingID kernel.TrackingID
	Payment    *payment.Payment
	// Duplicate is true when the payment had already been recorded, by an
	// earlier call or by a concurrent one that won the race.
	Duplicate bool
}

// ReconcilePaymentCommandHandler turns a paid gateway session into a paid
// parcel, a tracking id, one payment record and one tracking event.
//
// Steps:
//  1. the gateway session must be paid, otherwise ErrPaymentNotCompleted
//  2. the parcel named in the session metadata must exist, otherwise ErrParcelNotFound
//  3. the parcel's tracking id is reused, or allocated and committed on its own
//  4. an existing payment record for the transaction is returned as is
//  5. otherwise event, parcel and payment are written in one transaction
//
// No step is retried here; every error is returned to the caller, who may
// safely run the whole command again.
type ReconcilePaymentCommandHandler struct {
	uowFactory UoWFactory
	gateway    ports.PaymentGateway
}

func NewReconcilePaymentCommandHandler(uowFactory UoWFactory, gateway ports.PaymentGateway) ReconcilePaymentCommandHandler {
	return ReconcilePaymentCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
	}
}

func (h ReconcilePaymentCommandHandler) Handle(ctx context.Context, cmd ReconcilePaymentCommand) (ReconcilePaymentResult, error) {
	if err := cmd.Validate(); err != nil {
		return ReconcilePaymentResult{}, err
	}

	session, err := h.gateway.RetrieveSession(ctx, cmd.SessionReference())
	if err != nil {
		return ReconcilePaymentResult{}, err
	}
	if !session.Paid {
		return ReconcilePaymentResult{}, fmt.Errorf("%w: session %s", ErrPaymentNotCompleted, session.Reference)
	}

	parcelID, err := kernel.UUIDFromString(session.Metadata[ports.MetadataParcelID])
	if err != nil {
		return ReconcilePaymentResult{}, fmt.Errorf("%w: session %s: %w", ErrParcelNotFound, session.Reference, err)
	}

	uow := h.uowFactory.Create()

	trackingID, err := h.ensureTrackingID(ctx, uow, parcelID)
	if err != nil {
		return ReconcilePaymentResult{}, err
	}

	transactionID := session.TransactionID
	if transactionID == "" {
		transactionID = session.Reference
	}

	existing, err := uow.PaymentRepository().Get(ctx, transactionID)
	switch {
	case err == nil:
		return ReconcilePaymentResult{TrackingID: trackingID, Payment: existing, Duplicate: true}, nil
	case !errors.Is(err, errs.ErrObjectNotFound):
		return ReconcilePaymentResult{}, err
	}

	return h.recordPayment(ctx, uow, parcelID, trackingID, transactionID, session)
}

// ensureTrackingID returns the parcel's tracking id, allocating and committing
// one first if needed. The conditional write makes concurrent callers agree on
// a single value.
func (h ReconcilePaymentCommandHandler) ensureTrackingID(
	ctx context.Context,
	uow UoW,
	parcelID kernel.UUID,
) (kernel.TrackingID, error) {
	if err := uow.Begin(ctx); err != nil {
		return kernel.TrackingID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	p, err := loadParcel(ctx, uow.ParcelRepository(), parcelID)
	if err != nil {
		return kernel.TrackingID{}, err
	}
	if p.HasTrackingID() {
		return p.TrackingID(), nil
	}

	stored, err := uow.ParcelRepository().SetTrackingIDIfAbsent(ctx, parcelID, kernel.AllocateTrackingID())
	if err != nil {
		return kernel.TrackingID{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return kernel.TrackingID{}, err
	}

	return stored, nil
}

func (h ReconcilePaymentCommandHandler) recordPayment(
	ctx context.Context,
	uow UoW,
	parcelID kernel.UUID,
	trackingID kernel.TrackingID,
	transactionID string,
	session ports.CheckoutSession,
) (ReconcilePaymentResult, error) {
	if err := uow.Begin(ctx); err != nil {
		return ReconcilePaymentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now()

	p, err := loadParcel(ctx, uow.ParcelRepository(), parcelID)
	if err != nil {
		return ReconcilePaymentResult{}, err
	}

	event, err := tracking.NewEvent(kernel.NewUUID(), trackingID, parcel.PendingPickup.String(), tracking.DetailPaymentSuccessful, now)
	if err != nil {
		return ReconcilePaymentResult{}, err
	}
	if err = uow.TrackingEventRepository().Add(ctx, event); err != nil {
		return ReconcilePaymentResult{}, err
	}

	if err = p.AssignTrackingID(trackingID); err != nil {
		return ReconcilePaymentResult{}, err
	}
	if err = p.MarkPaid(); err != nil {
		return ReconcilePaymentResult{}, err
	}
	if err = uow.ParcelRepository().Update(ctx, p); err != nil {
		return ReconcilePaymentResult{}, err
	}

	record, err := payment.NewPayment(
		transactionID,
		parcelID,
		trackingID,
		sessionAmount(session, p),
		sessionPayer(session, p),
		payment.StatusPaid,
		now,
	)
	if err != nil {
		return ReconcilePaymentResult{}, err
	}

	inserted, err := uow.PaymentRepository().AddIfAbsent(ctx, record)
	if err != nil {
		return ReconcilePaymentResult{}, err
	}
	if !inserted {
		// A concurrent reconciliation recorded this transaction first.
		if err = uow.Rollback(ctx); err != nil {
			return ReconcilePaymentResult{}, err
		}
		winner, getErr := uow.PaymentRepository().Get(ctx, transactionID)
		if getErr != nil {
			return ReconcilePaymentResult{}, getErr
		}
		return ReconcilePaymentResult{TrackingID: trackingID, Payment: winner, Duplicate: true}, nil
	}

	if err = uow.Commit(ctx); err != nil {
		return ReconcilePaymentResult{}, err
	}

	return ReconcilePaymentResult{TrackingID: trackingID, Payment: record}, nil
}

// sessionAmount prefers what the gateway charged and falls back to the parcel
// cost when the session carries no usable amount.
func sessionAmount(session ports.CheckoutSession, p *parcel.Parcel) kernel.Money {
	amount, err := kernel.NewMoney(session.AmountTotal, session.Currency)
	if err != nil {
		return p.Cost()
	}
	return amount
}

func sessionPayer(session ports.CheckoutSession, p *parcel.Parcel) kernel.Email {
	payer, err := kernel.NewEmail(session.PayerEmail)
	if err != nil {
		return p.Sender()
	}
	return payer
}
