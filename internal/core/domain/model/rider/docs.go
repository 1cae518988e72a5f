// Package rider provides the Rider aggregate: a delivery rider's application
// review state and work availability.
//
// Key business rules:
//   - riders apply as pending and cannot deliver until approved
//   - an approved rider is available, in delivery, or (after rejection) unavailable
//   - a rider carries at most one parcel at a time
package rider
