package parcelrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"parceldelivery/internal/adapters/out/postgres/parcelrepo"
	"parceldelivery/internal/adapters/out/postgres/pgtest"
	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/domain/model/parcel"
	"parceldelivery/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type ParcelRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *parcelrepo.GormParcelRepository
	tracker    *MockAggregateTracker
}

func (suite *ParcelRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *ParcelRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())

	suite.tracker = new(MockAggregateTracker)
	suite.repository = parcelrepo.NewGormParcelRepository(suite.database.DB, suite.tracker)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	p := suite.newParcel()
	suite.tracker.On("TrackAggregate", p.ID(), p).Once()

	suite.Require().NoError(suite.repository.Add(ctx, p))

	got, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.True(got.ID().IsEqual(p.ID()))
	suite.Equal(p.Sender(), got.Sender())
	suite.Equal(p.Shipment(), got.Shipment())
	suite.Equal(p.Cost(), got.Cost())
	suite.Equal(parcel.Created, got.DeliveryStatus())
	suite.Equal(parcel.Unpaid, got.PaymentStatus())
	suite.False(got.HasTrackingID())
	suite.Nil(got.Rider())
	suite.Empty(got.CheckoutSession())
	suite.True(p.CreatedAt().Equal(got.CreatedAt()))
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestGet_Missing_ReturnsObjectNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestUpdate_PersistsAssignmentAndClearsItOnOverride() {
	ctx := context.Background()
	p := suite.newParcel()
	suite.tracker.On("TrackAggregate", p.ID(), p)
	suite.Require().NoError(suite.repository.Add(ctx, p))

	suite.Require().NoError(p.AssignTrackingID(kernel.AllocateTrackingID()))
	suite.Require().NoError(p.MarkPaid())
	riderEmail, _ := kernel.NewEmail("rider@example.com")
	assignment, err := parcel.NewRiderAssignment(kernel.NewUUID(), "Rita", riderEmail)
	suite.Require().NoError(err)
	suite.Require().NoError(p.AssignRider(assignment))
	suite.Require().NoError(suite.repository.Update(ctx, p))

	got, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Equal(parcel.DeliveryAssigned, got.DeliveryStatus())
	suite.Equal(parcel.Paid, got.PaymentStatus())
	suite.True(got.TrackingID().IsEqual(p.TrackingID()))
	suite.Require().NotNil(got.Rider())
	suite.Equal("Rita", got.Rider().Name())

	suite.Require().NoError(p.OverrideStatus(parcel.PendingPickup, nil))
	suite.Require().NoError(suite.repository.Update(ctx, p))

	got, err = suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Equal(parcel.PendingPickup, got.DeliveryStatus())
	suite.Nil(got.Rider())
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestUpdate_Missing_ReturnsObjectNotFound() {
	err := suite.repository.Update(context.Background(), suite.newParcel())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.tracker.AssertNotCalled(suite.T(), "TrackAggregate", mock.Anything, mock.Anything)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestSetTrackingIDIfAbsent_KeepsFirstValue() {
	ctx := context.Background()
	p := suite.newParcel()
	suite.tracker.On("TrackAggregate", p.ID(), p).Once()
	suite.Require().NoError(suite.repository.Add(ctx, p))

	first := kernel.AllocateTrackingID()
	stored, err := suite.repository.SetTrackingIDIfAbsent(ctx, p.ID(), first)
	suite.Require().NoError(err)
	suite.True(stored.IsEqual(first))

	stored, err = suite.repository.SetTrackingIDIfAbsent(ctx, p.ID(), kernel.AllocateTrackingID())
	suite.Require().NoError(err)
	suite.True(stored.IsEqual(first))
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestSetTrackingIDIfAbsent_ConcurrentCallersAgree() {
	ctx := context.Background()
	p := suite.newParcel()
	suite.tracker.On("TrackAggregate", p.ID(), p).Once()
	suite.Require().NoError(suite.repository.Add(ctx, p))

	const callers = 8
	results := make([]kernel.TrackingID, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tid, err := suite.repository.SetTrackingIDIfAbsent(ctx, p.ID(), kernel.AllocateTrackingID())
			suite.NoError(err)
			results[i] = tid
		}(i)
	}
	wg.Wait()

	for _, tid := range results[1:] {
		suite.True(tid.IsEqual(results[0]), "%s != %s", tid, results[0])
	}
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestSetTrackingIDIfAbsent_MissingParcel() {
	_, err := suite.repository.SetTrackingIDIfAbsent(context.Background(), kernel.NewUUID(), kernel.AllocateTrackingID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestListAwaitingPayment() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	withoutSession := suite.newParcel()
	suite.Require().NoError(suite.repository.Add(ctx, withoutSession))

	awaiting := suite.newParcel()
	suite.Require().NoError(awaiting.AttachCheckoutSession("cs_test_awaiting"))
	suite.Require().NoError(suite.repository.Add(ctx, awaiting))

	paid := suite.newParcel()
	suite.Require().NoError(paid.AttachCheckoutSession("cs_test_paid"))
	suite.Require().NoError(paid.AssignTrackingID(kernel.AllocateTrackingID()))
	suite.Require().NoError(paid.MarkPaid())
	suite.Require().NoError(suite.repository.Add(ctx, paid))

	parcels, err := suite.repository.ListAwaitingPayment(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(parcels, 1)
	suite.True(parcels[0].ID().IsEqual(awaiting.ID()))
	suite.Equal("cs_test_awaiting", parcels[0].CheckoutSession())

	_, err = suite.repository.ListAwaitingPayment(ctx, 0)
	suite.Require().ErrorIs(err, errs.ErrValueIsOutOfRange)
}

func (suite *ParcelRepositoryIntegrationTestSuite) newParcel() *parcel.Parcel {
	sender, err := kernel.NewEmail("sender@example.com")
	suite.Require().NoError(err)
	cost, err := kernel.NewMoney(2500, "usd")
	suite.Require().NoError(err)

	p, err := parcel.NewParcel(kernel.NewUUID(), sender, parcel.Shipment{
		SenderName:      "Sam",
		ReceiverName:    "Rae",
		ReceiverAddress: "4 Hill Street",
		District:        "Sylhet",
		WeightGrams:     1200,
	}, cost, time.Now().Truncate(time.Microsecond))
	suite.Require().NoError(err)
	return p
}

func TestParcelRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ParcelRepositoryIntegrationTestSuite))
}
