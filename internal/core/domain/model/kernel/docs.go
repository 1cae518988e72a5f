// Package kernel holds the value objects shared by every aggregate: identifiers
// (UUID, TrackingID), Email and Money.
//
// Value objects are immutable; their zero values are invalid and fail Validate,
// so a field left unset on an aggregate is caught at construction time.
package kernel
