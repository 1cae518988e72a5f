package commands_test

import (
	"context"
	"testing"
	"time"

	"parceldelivery/internal/core/application/usecases/commands"
	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/domain/model/parcel"
	"parceldelivery/internal/core/domain/model/payment"
	"parceldelivery/internal/core/domain/model/rider"
	"parceldelivery/internal/core/domain/model/tracking"
	"parceldelivery/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) Update(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) SetTrackingIDIfAbsent(
	ctx context.Context, id kernel.UUID, trackingID kernel.TrackingID,
) (kernel.TrackingID, error) {
	args := m.Called(ctx, id, trackingID)
	return args.Get(0).(kernel.TrackingID), args.Error(1)
}

func (m *MockParcelRepository) ListAwaitingPayment(ctx context.Context, limit int) ([]*parcel.Parcel, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Parcel), args.Error(1)
}

type MockPaymentRepository struct{ mock.Mock }

func (m *MockPaymentRepository) AddIfAbsent(ctx context.Context, p *payment.Payment) (bool, error) {
	args := m.Called(ctx, p)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentRepository) Get(ctx context.Context, transactionID string) (*payment.Payment, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

type MockRiderRepository struct{ mock.Mock }

func (m *MockRiderRepository) Add(ctx context.Context, r *rider.Rider) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRiderRepository) Update(ctx context.Context, r *rider.Rider) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRiderRepository) Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rider.Rider), args.Error(1)
}

type MockTrackingEventRepository struct{ mock.Mock }

func (m *MockTrackingEventRepository) Add(ctx context.Context, e *tracking.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

func (m *MockUoW) PaymentRepository() ports.PaymentRepository {
	args := m.Called()
	return args.Get(0).(ports.PaymentRepository)
}

func (m *MockUoW) RiderRepository() ports.RiderRepository {
	args := m.Called()
	return args.Get(0).(ports.RiderRepository)
}

func (m *MockUoW) TrackingEventRepository() ports.TrackingEventRepository {
	args := m.Called()
	return args.Get(0).(ports.TrackingEventRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockParcelUoWFactory struct{ mock.Mock }

func (m *MockParcelUoWFactory) Create() commands.ParcelUoW {
	args := m.Called()
	return args.Get(0).(commands.ParcelUoW)
}

type MockRiderUoWFactory struct{ mock.Mock }

func (m *MockRiderUoWFactory) Create() commands.RiderUoW {
	args := m.Called()
	return args.Get(0).(commands.RiderUoW)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) RetrieveSession(ctx context.Context, reference string) (ports.CheckoutSession, error) {
	args := m.Called(ctx, reference)
	return args.Get(0).(ports.CheckoutSession), args.Error(1)
}

func (m *MockPaymentGateway) CreateCheckoutSession(ctx context.Context, req ports.CheckoutRequest) (ports.CheckoutSession, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(ports.CheckoutSession), args.Error(1)
}

// repos bundles the mocks behind one MockUoW. Repository accessors may be
// called any number of times.
type repos struct {
	uow      *MockUoW
	parcels  *MockParcelRepository
	payments *MockPaymentRepository
	riders   *MockRiderRepository
	events   *MockTrackingEventRepository
}

func newRepos() repos {
	r := repos{
		uow:      new(MockUoW),
		parcels:  new(MockParcelRepository),
		payments: new(MockPaymentRepository),
		riders:   new(MockRiderRepository),
		events:   new(MockTrackingEventRepository),
	}
	r.uow.On("ParcelRepository").Return(r.parcels).Maybe()
	r.uow.On("PaymentRepository").Return(r.payments).Maybe()
	r.uow.On("RiderRepository").Return(r.riders).Maybe()
	r.uow.On("TrackingEventRepository").Return(r.events).Maybe()
	return r
}

func (r repos) assertExpectations(t *testing.T) {
	t.Helper()
	r.uow.AssertExpectations(t)
	r.parcels.AssertExpectations(t)
	r.payments.AssertExpectations(t)
	r.riders.AssertExpectations(t)
	r.events.AssertExpectations(t)
}

func (r repos) factory() *MockUoWFactory {
	f := new(MockUoWFactory)
	f.On("Create").Return(r.uow).Once()
	return f
}

func newTestParcel(t *testing.T) *parcel.Parcel {
	t.Helper()
	sender, err := kernel.NewEmail("bob@example.com")
	require.NoError(t, err)
	cost, err := kernel.NewMoney(1500, "usd")
	require.NoError(t, err)
	p, err := parcel.NewParcel(kernel.NewUUID(), sender, parcel.Shipment{
		SenderName:      "Bob",
		ReceiverName:    "Carol",
		ReceiverAddress: "12 Lake Road",
		District:        "Dhaka",
		WeightGrams:     800,
	}, cost, time.Now())
	require.NoError(t, err)
	return p
}

func newPaidParcel(t *testing.T) *parcel.Parcel {
	t.Helper()
	p := newTestParcel(t)
	require.NoError(t, p.AssignTrackingID(kernel.AllocateTrackingID()))
	require.NoError(t, p.MarkPaid())
	return p
}

func newTestRider(t *testing.T, approved bool) *rider.Rider {
	t.Helper()
	email, err := kernel.NewEmail("alice@x.com")
	require.NoError(t, err)
	r, err := rider.NewRider(kernel.NewUUID(), "Alice", email, "Dhaka", time.Now())
	require.NoError(t, err)
	if approved {
		r.Approve()
	}
	return r
}
