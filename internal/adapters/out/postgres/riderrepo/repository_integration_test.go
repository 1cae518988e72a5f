package riderrepo_test

import (
	"context"
	"testing"
	"time"

	"parceldelivery/internal/adapters/out/postgres/pgtest"
	"parceldelivery/internal/adapters/out/postgres/riderrepo"
	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/domain/model/rider"
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

type RiderRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *riderrepo.GormRiderRepository
	tracker    *MockAggregateTracker
}

func (suite *RiderRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *RiderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = riderrepo.NewGormRiderRepository(suite.database.DB, suite.tracker)
}

func (suite *RiderRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *RiderRepositoryIntegrationTestSuite) TestAddApproveAndGet() {
	ctx := context.Background()
	r := suite.newRider("rita@example.com")
	suite.Require().NoError(suite.repository.Add(ctx, r))

	got, err := suite.repository.Get(ctx, r.ID())
	suite.Require().NoError(err)
	suite.True(got.IsEqual(r))
	suite.Equal(rider.ApprovalPending, got.Approval())
	suite.Equal(rider.WorkUnavailable, got.Work())
	suite.Equal("Khulna", got.District())

	got.Approve()
	suite.Require().NoError(got.StartDelivery())
	suite.Require().NoError(suite.repository.Update(ctx, got))

	got, err = suite.repository.Get(ctx, r.ID())
	suite.Require().NoError(err)
	suite.Equal(rider.ApprovalApproved, got.Approval())
	suite.Equal(rider.WorkInDelivery, got.Work())
}

func (suite *RiderRepositoryIntegrationTestSuite) TestAdd_DuplicateEmailIsRejected() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newRider("same@example.com")))

	err := suite.repository.Add(ctx, suite.newRider("same@example.com"))

	suite.Require().Error(err)
}

func (suite *RiderRepositoryIntegrationTestSuite) TestGetAndUpdate_Missing() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	err = suite.repository.Update(ctx, suite.newRider("ghost@example.com"))
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *RiderRepositoryIntegrationTestSuite) newRider(email string) *rider.Rider {
	e, err := kernel.NewEmail(email)
	suite.Require().NoError(err)
	r, err := rider.NewRider(kernel.NewUUID(), "Rita", e, "Khulna", time.Now().Truncate(time.Microsecond))
	suite.Require().NoError(err)
	return r
}

func TestRiderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RiderRepositoryIntegrationTestSuite))
}
