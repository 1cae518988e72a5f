// Package payment provides the immutable Payment record written once per
// gateway transaction when a parcel's checkout is reconciled.
package payment
