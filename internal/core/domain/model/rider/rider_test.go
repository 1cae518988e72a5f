package rider_test

import (
	"testing"
	"time"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/domain/model/rider"
	"parceldelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createValidEmail(t *testing.T) kernel.Email {
	t.Helper()
	email, err := kernel.NewEmail("alice@x.com")
	require.NoError(t, err)
	return email
}

func createValidRider(t *testing.T) *rider.Rider {
	t.Helper()
	r, err := rider.NewRider(kernel.NewUUID(), "Alice", createValidEmail(t), "Dhaka", time.Now())
	require.NoError(t, err)
	require.NotNil(t, r)
	return r
}

func createApprovedRider(t *testing.T) *rider.Rider {
	t.Helper()
	r := createValidRider(t)
	r.Approve()
	return r
}

func TestNewRider(t *testing.T) {
	t.Run("should create pending unavailable rider", func(t *testing.T) {
		id := kernel.NewUUID()

		r, err := rider.NewRider(id, "  Alice ", createValidEmail(t), "Dhaka", time.Now())

		require.NoError(t, err)
		require.NoError(t, r.Validate())
		assert.True(t, r.ID().IsEqual(id))
		assert.Equal(t, "Alice", r.Name())
		assert.Equal(t, "alice@x.com", r.Email().String())
		assert.Equal(t, "Dhaka", r.District())
		assert.Equal(t, rider.ApprovalPending, r.Approval())
		assert.Equal(t, rider.WorkUnavailable, r.Work())
		assert.False(t, r.CanDeliver())
	})

	t.Run("should aggregate validation errors", func(t *testing.T) {
		r, err := rider.NewRider(kernel.UUID{}, "", kernel.Email{}, " ", time.Now())

		require.Error(t, err)
		assert.Nil(t, r)
		require.ErrorIs(t, err, rider.ErrNameIsRequired)
		require.ErrorIs(t, err, rider.ErrDistrictIsRequired)
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var r rider.Rider
		require.ErrorIs(t, r.Validate(), rider.ErrRiderIsNotConstructed)

		var nilRider *rider.Rider
		require.ErrorIs(t, nilRider.Validate(), rider.ErrRiderIsNotConstructed)
	})
}

func TestRestoreRider(t *testing.T) {
	tests := []struct {
		name     string
		approval rider.ApprovalStatus
		work     rider.WorkStatus
		wantErr  bool
	}{
		{"pending unavailable", rider.ApprovalPending, rider.WorkUnavailable, false},
		{"approved available", rider.ApprovalApproved, rider.WorkAvailable, false},
		{"approved in delivery", rider.ApprovalApproved, rider.WorkInDelivery, false},
		{"rejected unavailable", rider.ApprovalRejected, rider.WorkUnavailable, false},
		{"pending available", rider.ApprovalPending, rider.WorkAvailable, true},
		{"rejected in delivery", rider.ApprovalRejected, rider.WorkInDelivery, true},
		{"unknown approval", rider.ApprovalStatus("banned"), rider.WorkUnavailable, true},
		{"unknown work", rider.ApprovalApproved, rider.WorkStatus("resting"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := rider.RestoreRider(kernel.NewUUID(), "Alice", createValidEmail(t), "Dhaka",
				tt.approval, tt.work, time.Now())

			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, r)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.approval, r.Approval())
			assert.Equal(t, tt.work, r.Work())
		})
	}
}

func TestRider_Approve(t *testing.T) {
	t.Run("pending becomes approved and available", func(t *testing.T) {
		r := createValidRider(t)

		r.Approve()

		assert.Equal(t, rider.ApprovalApproved, r.Approval())
		assert.Equal(t, rider.WorkAvailable, r.Work())
		assert.True(t, r.CanDeliver())
	})

	t.Run("rejected can be approved again", func(t *testing.T) {
		r := createValidRider(t)
		require.NoError(t, r.Reject())

		r.Approve()

		assert.Equal(t, rider.ApprovalApproved, r.Approval())
		assert.Equal(t, rider.WorkAvailable, r.Work())
	})

	t.Run("re-approval keeps delivery in progress", func(t *testing.T) {
		r := createApprovedRider(t)
		require.NoError(t, r.StartDelivery())

		r.Approve()

		assert.Equal(t, rider.WorkInDelivery, r.Work())
	})
}

func TestRider_Reject(t *testing.T) {
	t.Run("approved rider becomes unavailable", func(t *testing.T) {
		r := createApprovedRider(t)

		require.NoError(t, r.Reject())

		assert.Equal(t, rider.ApprovalRejected, r.Approval())
		assert.Equal(t, rider.WorkUnavailable, r.Work())
	})

	t.Run("rider in delivery cannot be rejected", func(t *testing.T) {
		r := createApprovedRider(t)
		require.NoError(t, r.StartDelivery())

		require.ErrorIs(t, r.Reject(), rider.ErrRiderBusy)
		assert.Equal(t, rider.ApprovalApproved, r.Approval())
	})
}

func TestRider_DeliveryCycle(t *testing.T) {
	r := createApprovedRider(t)

	require.NoError(t, r.StartDelivery())
	assert.Equal(t, rider.WorkInDelivery, r.Work())

	require.ErrorIs(t, r.StartDelivery(), rider.ErrRiderUnavailable, "one parcel at a time")

	r.FinishDelivery()
	assert.Equal(t, rider.WorkAvailable, r.Work())
	require.NoError(t, r.StartDelivery())
}

func TestRider_StartDelivery_RequiresApproval(t *testing.T) {
	pending := createValidRider(t)
	require.ErrorIs(t, pending.StartDelivery(), rider.ErrRiderUnavailable)

	rejected := createValidRider(t)
	require.NoError(t, rejected.Reject())
	require.ErrorIs(t, rejected.StartDelivery(), rider.ErrRiderUnavailable)
	assert.Equal(t, rider.WorkUnavailable, rejected.Work())
}

func TestRider_FinishDelivery_IgnoresUnapproved(t *testing.T) {
	r := createValidRider(t)

	r.FinishDelivery()

	assert.Equal(t, rider.WorkUnavailable, r.Work())
}

func TestParseStatuses(t *testing.T) {
	approval, err := rider.ParseApprovalStatus("approved")
	require.NoError(t, err)
	assert.Equal(t, rider.ApprovalApproved, approval)

	_, err = rider.ParseApprovalStatus("maybe")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	work, err := rider.ParseWorkStatus("in_delivery")
	require.NoError(t, err)
	assert.Equal(t, rider.WorkInDelivery, work)

	_, err = rider.ParseWorkStatus("in-delivery")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
