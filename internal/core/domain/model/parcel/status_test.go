package parcel_test

import (
	"testing"

	"parceldelivery/internal/core/domain/model/parcel"
	"parceldelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDeliveryStatus(t *testing.T) {
	for _, s := range []parcel.DeliveryStatus{
		parcel.Created, parcel.PendingPickup, parcel.DeliveryAssigned, parcel.Delivered,
	} {
		parsed, err := parcel.ParseDeliveryStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := parcel.ParseDeliveryStatus("lost")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = parcel.ParseDeliveryStatus("unknown")
	require.Error(t, err)
}

func TestDeliveryStatus_Validate(t *testing.T) {
	require.Error(t, parcel.UnknownDeliveryStatus.Validate())
	require.Error(t, parcel.DeliveryStatus(42).Validate())
	require.NoError(t, parcel.Delivered.Validate())
	assert.Equal(t, "unknown", parcel.DeliveryStatus(42).String())
}

func TestDeliveryStatus_Transitions(t *testing.T) {
	testCases := []struct {
		name    string
		apply   func(parcel.DeliveryStatus) (parcel.DeliveryStatus, error)
		from    parcel.DeliveryStatus
		want    parcel.DeliveryStatus
		wantErr bool
	}{
		{name: "pay created", apply: parcel.DeliveryStatus.Pay, from: parcel.Created, want: parcel.PendingPickup},
		{name: "pay pending keeps status", apply: parcel.DeliveryStatus.Pay, from: parcel.PendingPickup, want: parcel.PendingPickup},
		{name: "pay assigned does not regress", apply: parcel.DeliveryStatus.Pay, from: parcel.DeliveryAssigned, want: parcel.DeliveryAssigned},
		{name: "pay delivered does not regress", apply: parcel.DeliveryStatus.Pay, from: parcel.Delivered, want: parcel.Delivered},
		{name: "pay unknown", apply: parcel.DeliveryStatus.Pay, from: parcel.UnknownDeliveryStatus, wantErr: true},
		{name: "assign pending", apply: parcel.DeliveryStatus.Assign, from: parcel.PendingPickup, want: parcel.DeliveryAssigned},
		{name: "assign created skips payment", apply: parcel.DeliveryStatus.Assign, from: parcel.Created, wantErr: true},
		{name: "assign assigned", apply: parcel.DeliveryStatus.Assign, from: parcel.DeliveryAssigned, wantErr: true},
		{name: "assign delivered", apply: parcel.DeliveryStatus.Assign, from: parcel.Delivered, wantErr: true},
		{name: "deliver assigned", apply: parcel.DeliveryStatus.Deliver, from: parcel.DeliveryAssigned, want: parcel.Delivered},
		{name: "deliver pending skips assignment", apply: parcel.DeliveryStatus.Deliver, from: parcel.PendingPickup, wantErr: true},
		{name: "deliver delivered", apply: parcel.DeliveryStatus.Deliver, from: parcel.Delivered, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.apply(tc.from)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.False(t, tc.from.IsAfter(got), "status regressed from %s to %s", tc.from, got)
		})
	}
}

func TestDeliveryStatus_InvalidTransitionIsClassified(t *testing.T) {
	_, err := parcel.Created.Deliver()

	require.ErrorIs(t, err, parcel.ErrInvalidTransition)
	assert.Contains(t, err.Error(), "created -> delivered")
}

func TestPaymentStatus(t *testing.T) {
	assert.Equal(t, "unpaid", parcel.Unpaid.String())
	assert.Equal(t, "paid", parcel.Paid.String())
	require.NoError(t, parcel.Paid.Validate())
	require.Error(t, parcel.UnknownPaymentStatus.Validate())
}
