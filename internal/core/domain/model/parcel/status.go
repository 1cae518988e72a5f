package parcel

import (
	"errors"
	"fmt"

	"parceldelivery/internal/pkg/errs"
)

// ErrInvalidTransition is returned when a lifecycle operation is applied to a
// parcel whose delivery status is not the operation's entry state.
var ErrInvalidTransition = errors.New("delivery status transition is not allowed")

// DeliveryStatus is the position of a parcel in its delivery lifecycle.
//
//	Created ──(payment)──> PendingPickup ──(rider)──> DeliveryAssigned ──(drop-off)──> Delivered
//
// Each operation moves from exactly one entry state to the next one; nothing
// skips a state or moves backwards. The administrative override bypasses this
// graph and is handled separately by Parcel.OverrideStatus.
type DeliveryStatus int

const (
	// UnknownDeliveryStatus catches uninitialized values.
	UnknownDeliveryStatus DeliveryStatus = iota

	// Created is the state of a submitted parcel awaiting payment.
	Created

	// PendingPickup means payment was reconciled and a tracking id issued.
	PendingPickup

	// DeliveryAssigned means a rider has been assigned and is carrying the parcel.
	DeliveryAssigned

	// Delivered is final.
	Delivered
)

func getDeliveryStatusStrings() map[DeliveryStatus]string {
	//nolint:exhaustive // UnknownDeliveryStatus has no wire representation
	return map[DeliveryStatus]string{
		Created:          "created",
		PendingPickup:    "pending-pickup",
		DeliveryAssigned: "delivery-assigned",
		Delivered:        "delivered",
	}
}

// ParseDeliveryStatus maps the wire form ("pending-pickup", ...) to a status.
func ParseDeliveryStatus(s string) (DeliveryStatus, error) {
	for status, str := range getDeliveryStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return UnknownDeliveryStatus, errs.NewValueIsInvalidErrorWithCause(
		"deliveryStatus", fmt.Errorf("%q is not a delivery status", s),
	)
}

// Validate rejects UnknownDeliveryStatus and out of range values, e.g. read
// back from a corrupted row.
func (s DeliveryStatus) Validate() error {
	if _, ok := getDeliveryStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("deliveryStatus", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s DeliveryStatus) String() string {
	if str, ok := getDeliveryStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsAfter reports whether s lies strictly later in the lifecycle than other.
func (s DeliveryStatus) IsAfter(other DeliveryStatus) bool {
	return s > other
}

// RequiresRider reports whether a parcel in this status must carry a rider assignment.
func (s DeliveryStatus) RequiresRider() bool {
	return s == DeliveryAssigned || s == Delivered
}

// Pay returns the status after a successful payment. Only Created advances;
// a parcel that already moved on keeps its status so reconciliation never
// regresses it.
func (s DeliveryStatus) Pay() (DeliveryStatus, error) {
	if err := s.Validate(); err != nil {
		return UnknownDeliveryStatus, err
	}
	if s == Created {
		return PendingPickup, nil
	}
	return s, nil
}

// Assign moves PendingPickup to DeliveryAssigned.
func (s DeliveryStatus) Assign() (DeliveryStatus, error) {
	if s != PendingPickup {
		return UnknownDeliveryStatus, transitionError(s, DeliveryAssigned)
	}
	return DeliveryAssigned, nil
}

// Deliver moves DeliveryAssigned to Delivered.
func (s DeliveryStatus) Deliver() (DeliveryStatus, error) {
	if s != DeliveryAssigned {
		return UnknownDeliveryStatus, transitionError(s, Delivered)
	}
	return Delivered, nil
}

func transitionError(from, to DeliveryStatus) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// PaymentStatus tracks whether the parcel's shipping cost was collected.
type PaymentStatus int

const (
	UnknownPaymentStatus PaymentStatus = iota
	Unpaid
	Paid
)

func (s PaymentStatus) String() string {
	switch s {
	case Unpaid:
		return "unpaid"
	case Paid:
		return "paid"
	case UnknownPaymentStatus:
	}
	return "unknown"
}

func (s PaymentStatus) Validate() error {
	if s != Unpaid && s != Paid {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// ParsePaymentStatus maps "unpaid" and "paid" to a PaymentStatus.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch s {
	case Unpaid.String():
		return Unpaid, nil
	case Paid.String():
		return Paid, nil
	}
	return UnknownPaymentStatus, errs.NewValueIsInvalidErrorWithCause(
		"paymentStatus", fmt.Errorf("%q is not a payment status", s),
	)
}
