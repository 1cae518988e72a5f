// Package queries contains read operations. Handlers run raw SQL against the
// tables written by the postgres adapters and return flat read models; they
// never load aggregates.
package queries

import "errors"

var (
	// ErrForbidden is returned when the caller may not read the requested records.
	ErrForbidden = errors.New("caller is not allowed to read this resource")

	ErrParcelNotFound = errors.New("parcel not found")
)
