package services

import (
	"fmt"

	"parceldelivery/internal/core/domain/model/parcel"
	"parceldelivery/internal/core/domain/model/rider"
)

// DeliveryCoordinator is a domain service that moves a parcel and a rider
// through a delivery together, so that the two aggregates never disagree about
// who is carrying what.
//
// Business rules:
//   - only a PendingPickup parcel can be assigned
//   - only an approved, available rider can take it
//   - only the assigned rider can complete the delivery, and is then available again
//   - an administrative override never leaves a rider in delivery without a parcel
//
// Both aggregates are checked before either is changed; a failed call leaves
// them as they were.
//
// Example usage:
//
//	coordinator := NewDeliveryCoordinator()
//	if err := coordinator.Assign(p, r); err != nil {
//	    return err
//	}
//	// p.DeliveryStatus() == parcel.DeliveryAssigned, r.Work() == rider.WorkInDelivery
type DeliveryCoordinator struct{}

func NewDeliveryCoordinator() DeliveryCoordinator {
	return DeliveryCoordinator{}
}

// Assign hands the parcel to the rider.
func (DeliveryCoordinator) Assign(p *parcel.Parcel, r *rider.Rider) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := r.Validate(); err != nil {
		return err
	}

	if _, err := p.DeliveryStatus().Assign(); err != nil {
		return err
	}
	if !r.CanDeliver() {
		return fmt.Errorf("%w: approval=%s work=%s", rider.ErrRiderUnavailable, r.Approval(), r.Work())
	}

	assignment, err := parcel.NewRiderAssignment(r.ID(), r.Name(), r.Email())
	if err != nil {
		return err
	}

	if err = r.StartDelivery(); err != nil {
		return err
	}
	return p.AssignRider(assignment)
}

// Complete marks the parcel delivered by the rider and frees the rider.
func (DeliveryCoordinator) Complete(p *parcel.Parcel, r *rider.Rider) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := r.Validate(); err != nil {
		return err
	}

	if err := p.CompleteDelivery(r.ID()); err != nil {
		return err
	}
	r.FinishDelivery()
	return nil
}

// Override applies an administrative status change and keeps the riders in
// step with it. current is the rider the parcel is assigned to and named is
// the rider given with the request; either may be nil and both may be the
// same rider.
//
//   - leaving DeliveryAssigned releases the current rider
//   - DeliveryAssigned or Delivered on a parcel without a rider requires named,
//     who becomes the assigned rider
//   - entering DeliveryAssigned puts the assigned rider in delivery, so that
//     rider must be available
//   - Delivered releases named
func (DeliveryCoordinator) Override(p *parcel.Parcel, status parcel.DeliveryStatus, current, named *rider.Rider) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := status.Validate(); err != nil {
		return err
	}
	for _, r := range []*rider.Rider{current, named} {
		if r == nil {
			continue
		}
		if err := r.Validate(); err != nil {
			return err
		}
	}

	previous := p.DeliveryStatus()
	carrier := current

	var assignment *parcel.RiderAssignment
	if status.RequiresRider() && p.Rider() == nil {
		if named == nil {
			return fmt.Errorf("%w: %s requires a rider", parcel.ErrInvalidTransition, status)
		}
		a, err := parcel.NewRiderAssignment(named.ID(), named.Name(), named.Email())
		if err != nil {
			return err
		}
		assignment = &a
		carrier = named
	}

	takesParcel := status == parcel.DeliveryAssigned && (previous != parcel.DeliveryAssigned || assignment != nil)
	if takesParcel {
		if carrier == nil {
			return fmt.Errorf("%w: assigned rider was not loaded", rider.ErrRiderUnavailable)
		}
		if !carrier.CanDeliver() {
			return fmt.Errorf("%w: approval=%s work=%s", rider.ErrRiderUnavailable, carrier.Approval(), carrier.Work())
		}
	}

	if err := p.OverrideStatus(status, assignment); err != nil {
		return err
	}

	if previous == parcel.DeliveryAssigned && status != parcel.DeliveryAssigned && current != nil {
		current.FinishDelivery()
	}
	if takesParcel {
		if err := carrier.StartDelivery(); err != nil {
			return err
		}
	}
	if status == parcel.Delivered && named != nil && p.Rider().RiderID().IsEqual(named.ID()) {
		named.FinishDelivery()
	}
	return nil
}
