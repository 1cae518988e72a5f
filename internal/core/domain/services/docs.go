// Package services provides domain services that coordinate several aggregates
// in one business operation.
//
// The package includes:
//   - DeliveryCoordinator: assigns a rider to a parcel and completes the delivery,
//     keeping the parcel's delivery status and the rider's work status in step
package services
