package commands

import "errors"

var (
	// ErrPaymentNotCompleted is returned when the gateway does not report the
	// checkout session as paid. Nothing is written.
	ErrPaymentNotCompleted = errors.New("payment not completed")

	// ErrParcelNotFound is returned when the referenced parcel does not exist.
	ErrParcelNotFound = errors.New("parcel not found")

	// ErrRiderNotFound is returned when the referenced rider does not exist.
	ErrRiderNotFound = errors.New("rider not found")

	// ErrForbidden is returned when the caller neither owns the parcel nor
	// is the rider acting on it.
	ErrForbidden = errors.New("forbidden")
)
