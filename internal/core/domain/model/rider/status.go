package rider

import (
	"fmt"

	"parceldelivery/internal/pkg/errs"
)

// ApprovalStatus is the outcome of an administrator reviewing a rider application.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// ParseApprovalStatus maps a stored or requested value to an ApprovalStatus.
func ParseApprovalStatus(s string) (ApprovalStatus, error) {
	status := ApprovalStatus(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

func (s ApprovalStatus) String() string {
	return string(s)
}

func (s ApprovalStatus) Validate() error {
	switch s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("approvalStatus", fmt.Errorf("%q is not an approval status", string(s)))
}

// WorkStatus tells whether an approved rider can take a parcel right now.
//
//	Unavailable ──(approve)──> Available ──(assign)──> InDelivery ──(deliver)──> Available
type WorkStatus string

const (
	WorkUnavailable WorkStatus = "unavailable"
	WorkAvailable   WorkStatus = "available"
	WorkInDelivery  WorkStatus = "in_delivery"
)

func ParseWorkStatus(s string) (WorkStatus, error) {
	status := WorkStatus(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

func (s WorkStatus) String() string {
	return string(s)
}

func (s WorkStatus) Validate() error {
	switch s {
	case WorkUnavailable, WorkAvailable, WorkInDelivery:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("workStatus", fmt.Errorf("%q is not a work status", string(s)))
}
