package parcel

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/pkg/errs"
	"parceldelivery/internal/pkg/guard"
)

const (
	minWeightGrams = 1
	maxWeightGrams = 50_000
)

var (
	// ErrParcelIsNotConstructed is returned when a Parcel was not created through
	// NewParcel or RestoreParcel.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel constructor")

	// ErrTrackingIDAlreadyAssigned protects the set-once tracking identifier.
	ErrTrackingIDAlreadyAssigned = errors.New("parcel already has a different tracking id")

	// ErrRiderMismatch is returned when a delivery is completed by a rider other
	// than the one the parcel is assigned to.
	ErrRiderMismatch = errors.New("parcel is assigned to a different rider")

	// ErrAlreadyPaid is returned when a checkout is started for a paid parcel.
	ErrAlreadyPaid = errors.New("parcel is already paid")
)

// Shipment holds the descriptive data captured when a parcel is submitted.
type Shipment struct {
	SenderName      string
	ReceiverName    string
	ReceiverAddress string
	District        string
	WeightGrams     int
}

func (s Shipment) validate() error {
	var errList []error
	if strings.TrimSpace(s.SenderName) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("senderName"))
	}
	if strings.TrimSpace(s.ReceiverName) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("receiverName"))
	}
	if strings.TrimSpace(s.ReceiverAddress) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("receiverAddress"))
	}
	if strings.TrimSpace(s.District) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("district"))
	}
	if s.WeightGrams < minWeightGrams || s.WeightGrams > maxWeightGrams {
		errList = append(errList, errs.NewValueIsOutOfRangeError("weightGrams", s.WeightGrams, minWeightGrams, maxWeightGrams))
	}
	return errors.Join(errList...)
}

// RiderAssignment is the rider snapshot stored on a parcel at assignment time.
type RiderAssignment struct {
	riderID kernel.UUID
	name    string
	email   kernel.Email
}

// NewRiderAssignment snapshots a rider's identity. The name is trimmed and
// must not be blank.
func NewRiderAssignment(riderID kernel.UUID, name string, email kernel.Email) (RiderAssignment, error) {
	if err := errors.Join(riderID.Validate(), email.Validate()); err != nil {
		return RiderAssignment{}, err
	}
	if strings.TrimSpace(name) == "" {
		return RiderAssignment{}, errs.NewValueIsRequiredError("riderName")
	}
	return RiderAssignment{riderID: riderID, name: strings.TrimSpace(name), email: email}, nil
}

// RiderID is the assigned rider.
func (a RiderAssignment) RiderID() kernel.UUID { return a.riderID }

// Name is the rider's name at assignment time.
func (a RiderAssignment) Name() string { return a.name }

// Email is the rider's account email at assignment time.
func (a RiderAssignment) Email() kernel.Email { return a.email }

// Parcel is the aggregate root for one shipment request.
//
// Invariants:
//   - the tracking id is assigned at most once and never changes
//   - a rider assignment is present exactly when the status requires one
//   - lifecycle methods only ever write the next state of their entry state
type Parcel struct {
	id              kernel.UUID
	sender          kernel.Email
	shipment        Shipment
	cost            kernel.Money
	deliveryStatus  DeliveryStatus
	paymentStatus   PaymentStatus
	trackingID      kernel.TrackingID
	rider           *RiderAssignment
	checkoutSession string
	createdAt       time.Time
	guard           guard.ConstructorGuard
}

// NewParcel creates a submitted parcel: Created and Unpaid, with no tracking id.
func NewParcel(
	id kernel.UUID,
	sender kernel.Email,
	shipment Shipment,
	cost kernel.Money,
	createdAt time.Time,
) (*Parcel, error) {
	p := &Parcel{
		deliveryStatus: Created,
		paymentStatus:  Unpaid,
		createdAt:      createdAt.UTC(),
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setSender(sender),
		p.setShipment(shipment),
		p.setCost(cost),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreParcel rebuilds a parcel from persisted state.
func RestoreParcel(
	id kernel.UUID,
	sender kernel.Email,
	shipment Shipment,
	cost kernel.Money,
	deliveryStatus DeliveryStatus,
	paymentStatus PaymentStatus,
	trackingID kernel.TrackingID,
	rider *RiderAssignment,
	checkoutSession string,
	createdAt time.Time,
) (*Parcel, error) {
	p := &Parcel{
		trackingID:      trackingID,
		rider:           rider,
		checkoutSession: checkoutSession,
		createdAt:       createdAt.UTC(),
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setSender(sender),
		p.setShipment(shipment),
		p.setCost(cost),
		deliveryStatus.Validate(),
		paymentStatus.Validate(),
	); err != nil {
		return nil, err
	}
	p.deliveryStatus = deliveryStatus
	p.paymentStatus = paymentStatus

	if deliveryStatus.RequiresRider() != (rider != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"rider",
			fmt.Errorf("status %s is inconsistent with rider assignment present=%t", deliveryStatus, rider != nil),
		)
	}

	return p, nil
}

// Validate ensures the parcel went through a constructor.
func (p *Parcel) Validate() error {
	if p == nil {
		return ErrParcelIsNotConstructed
	}
	return p.guard.Validate(ErrParcelIsNotConstructed)
}

// ID returns the parcel id.
func (p *Parcel) ID() kernel.UUID { return p.id }

// Sender is the email of the account that submitted the parcel.
func (p *Parcel) Sender() kernel.Email { return p.sender }

// Shipment returns the addressing and weight details.
func (p *Parcel) Shipment() Shipment { return p.shipment }

// Cost is the delivery price charged at checkout.
func (p *Parcel) Cost() kernel.Money { return p.cost }

// DeliveryStatus returns where the parcel is in its lifecycle.
func (p *Parcel) DeliveryStatus() DeliveryStatus { return p.deliveryStatus }

// PaymentStatus reports whether a payment has been reconciled.
func (p *Parcel) PaymentStatus() PaymentStatus { return p.paymentStatus }

// TrackingID returns the zero TrackingID until one is assigned.
func (p *Parcel) TrackingID() kernel.TrackingID { return p.trackingID }

// HasTrackingID reports whether a tracking id has been assigned.
func (p *Parcel) HasTrackingID() bool { return !p.trackingID.IsZero() }

// Rider returns nil until a rider is assigned.
func (p *Parcel) Rider() *RiderAssignment { return p.rider }

// CheckoutSession returns the gateway session reference, or "" if checkout never started.
func (p *Parcel) CheckoutSession() string { return p.checkoutSession }

// CreatedAt is when the parcel was submitted.
func (p *Parcel) CreatedAt() time.Time { return p.createdAt }

// AssignTrackingID sets the tracking id once. Assigning the same value again is
// a no-op; a different value is rejected.
func (p *Parcel) AssignTrackingID(id kernel.TrackingID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if p.HasTrackingID() {
		if p.trackingID.IsEqual(id) {
			return nil
		}
		return fmt.Errorf("%w: has %s, got %s", ErrTrackingIDAlreadyAssigned, p.trackingID, id)
	}
	p.trackingID = id
	return nil
}

// AttachCheckoutSession records the gateway session started for this parcel.
func (p *Parcel) AttachCheckoutSession(ref string) error {
	if strings.TrimSpace(ref) == "" {
		return errs.NewValueIsRequiredError("checkoutSession")
	}
	if p.paymentStatus == Paid {
		return ErrAlreadyPaid
	}
	p.checkoutSession = ref
	return nil
}

// MarkPaid records a reconciled payment. The tracking id must already be set.
// Delivery status advances Created -> PendingPickup and is otherwise left alone.
func (p *Parcel) MarkPaid() error {
	if !p.HasTrackingID() {
		return errs.NewValueIsRequiredErrorWithCause("trackingId", errors.New("tracking id must be assigned before payment"))
	}

	next, err := p.deliveryStatus.Pay()
	if err != nil {
		return err
	}

	p.paymentStatus = Paid
	p.deliveryStatus = next
	return nil
}

// AssignRider hands a PendingPickup parcel to a rider.
func (p *Parcel) AssignRider(assignment RiderAssignment) error {
	if err := assignment.riderID.Validate(); err != nil {
		return err
	}

	next, err := p.deliveryStatus.Assign()
	if err != nil {
		return err
	}

	p.deliveryStatus = next
	p.rider = &assignment
	return nil
}

// CompleteDelivery marks a DeliveryAssigned parcel delivered by its assigned rider.
func (p *Parcel) CompleteDelivery(riderID kernel.UUID) error {
	next, err := p.deliveryStatus.Deliver()
	if err != nil {
		return err
	}
	if p.rider == nil || !p.rider.riderID.IsEqual(riderID) {
		return ErrRiderMismatch
	}

	p.deliveryStatus = next
	return nil
}

// OverrideStatus is the administrative escape hatch: it writes any valid status
// without checking the lifecycle graph. A status that requires a rider keeps the
// current assignment; a parcel without one takes assignment instead, and is
// refused when assignment is nil. Any other status drops the assignment.
func (p *Parcel) OverrideStatus(status DeliveryStatus, assignment *RiderAssignment) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if !status.RequiresRider() {
		p.rider = nil
		p.deliveryStatus = status
		return nil
	}

	if p.rider == nil {
		if assignment == nil {
			return fmt.Errorf("%w: %s requires a rider", ErrInvalidTransition, status)
		}
		if err := assignment.riderID.Validate(); err != nil {
			return err
		}
		replacement := *assignment
		p.rider = &replacement
	}
	p.deliveryStatus = status
	return nil
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setSender(sender kernel.Email) error {
	if err := sender.Validate(); err != nil {
		return err
	}
	p.sender = sender
	return nil
}

func (p *Parcel) setShipment(shipment Shipment) error {
	if err := shipment.validate(); err != nil {
		return err
	}
	p.shipment = shipment
	return nil
}

func (p *Parcel) setCost(cost kernel.Money) error {
	if err := cost.Validate(); err != nil {
		return err
	}
	if cost.IsZero() {
		return errs.NewValueIsOutOfRangeError("cost", cost.Amount(), 1, "unbounded")
	}
	p.cost = cost
	return nil
}
