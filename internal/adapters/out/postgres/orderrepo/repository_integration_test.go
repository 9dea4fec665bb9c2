package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"trackorder/internal/adapters/out/postgres/orderrepo"
	"trackorder/internal/core/domain/model/kernel"
	"trackorder/internal/core/domain/model/order"
	"trackorder/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.OrderID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite verifies persistence behavior against a
// real PostgreSQL container.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.TrackOrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE track_orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.TrackOrder {
	orderID, err := kernel.NewOrderID(4211)
	suite.Require().NoError(err)
	producerID, err := kernel.NewUserID(7)
	suite.Require().NoError(err)
	customerID, err := kernel.NewUserID(42)
	suite.Require().NoError(err)
	total, err := kernel.NewMoneyFromCents(12500)
	suite.Require().NoError(err)
	stems, err := kernel.NewMoneyFromCents(2500)
	suite.Require().NoError(err)

	aggregate, err := order.NewTrackOrder(
		orderID, producerID, customerID,
		order.CommissionSpec{
			ServiceType:  "custom_track",
			Genres:       []string{"techno", "house"},
			BPM:          128,
			Mood:         "dark",
			TrackLength:  "3-4min",
			Instructions: "heavy kick, no vocals",
		},
		[]order.Addon{{Name: "stems", Price: stems}},
		total,
	)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_RoundTrip() {
	ctx := context.Background()
	aggregate := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Once()

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	restored, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(aggregate.ID(), restored.ID())
	suite.Equal(order.PendingDemoSubmission, restored.Status())
	suite.Equal([]string{"techno", "house"}, restored.Spec().Genres)
	suite.Require().Len(restored.Addons(), 1)
	suite.Equal("stems", restored.Addons()[0].Name)
	suite.Equal(int64(12500), restored.Total().Cents())
	suite.Equal(int64(3750), restored.Deposit().Cents())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ReplayedInsertIsIgnored() {
	ctx := context.Background()
	aggregate := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Twice()

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))
	aggregate.ConfirmDeposit()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	// The second insert is dropped; the stored row keeps its original state.
	restored, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.False(restored.DepositPaid())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsTransitions() {
	ctx := context.Background()
	aggregate := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate)

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	aggregate.ConfirmDeposit()
	suite.Require().NoError(aggregate.SubmitDemo(aggregate.ProducerID(), "https://files.test/demo.mp3"))
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	restored, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.AwaitingCustomerApproval, restored.Status())
	suite.True(restored.DepositPaid())
	suite.Equal("https://files.test/demo.mp3", restored.DemoURL())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateInStatus_StaleStatusLosesRace() {
	ctx := context.Background()
	aggregate := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate)

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	aggregate.ConfirmDeposit()
	suite.Require().NoError(aggregate.SubmitDemo(aggregate.ProducerID(), "https://files.test/demo.mp3"))
	suite.Require().NoError(suite.repository.UpdateInStatus(ctx, aggregate, order.PendingDemoSubmission))

	// A second writer holding the pre-transition snapshot matches zero rows.
	err := suite.repository.UpdateInStatus(ctx, aggregate, order.PendingDemoSubmission)
	suite.Require().ErrorIs(err, order.ErrInvalidState)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateIfDepositUnpaid_ReplayedHookLosesRace() {
	ctx := context.Background()
	aggregate := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate)

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	suite.Require().True(aggregate.ConfirmDeposit())
	won, err := suite.repository.UpdateIfDepositUnpaid(ctx, aggregate)
	suite.Require().NoError(err)
	suite.True(won)

	// A second hook that read the row before the first one committed writes
	// against a row that is already paid and matches nothing.
	won, err = suite.repository.UpdateIfDepositUnpaid(ctx, aggregate)
	suite.Require().NoError(err)
	suite.False(won)

	restored, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.True(restored.DepositPaid())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()
	missing, err := kernel.NewOrderID(999999)
	suite.Require().NoError(err)

	_, err = suite.repository.Get(ctx, missing)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllInStatusOlderThan() {
	ctx := context.Background()
	aggregate := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate)

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	// A cutoff in the future matches the fresh order; one in the past does not.
	matched, err := suite.repository.GetAllInStatusOlderThan(
		ctx, order.PendingDemoSubmission, time.Now().UTC().Add(time.Hour))
	suite.Require().NoError(err)
	suite.Len(matched, 1)

	unmatched, err := suite.repository.GetAllInStatusOlderThan(
		ctx, order.PendingDemoSubmission, time.Now().UTC().Add(-time.Hour))
	suite.Require().NoError(err)
	suite.Empty(unmatched)

	none, err := suite.repository.GetAllInStatusOlderThan(
		ctx, order.Completed, time.Now().UTC().Add(time.Hour))
	suite.Require().NoError(err)
	suite.Empty(none)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllInStatusOlderThan_AgeCountsFromStatusEntry() {
	ctx := context.Background()

	seed := func(id int64, statusChangedAt time.Time) {
		orderID, err := kernel.NewOrderID(id)
		suite.Require().NoError(err)
		producerID, err := kernel.NewUserID(7)
		suite.Require().NoError(err)
		customerID, err := kernel.NewUserID(42)
		suite.Require().NoError(err)
		total, err := kernel.NewMoneyFromCents(12500)
		suite.Require().NoError(err)
		balanceOrderID, err := kernel.NewOrderID(id + 1)
		suite.Require().NoError(err)

		aggregate, err := order.RestoreTrackOrder(
			orderID, producerID, customerID,
			order.CommissionSpec{ServiceType: "custom_track", BPM: 128},
			nil, total,
			order.AwaitingFinalPayment,
			true, false,
			"https://files.test/demo.mp3", true,
			nil, nil, 0,
			&balanceOrderID, nil,
			time.Now().UTC().Add(-7*24*time.Hour),
			statusChangedAt,
			nil,
		)
		suite.Require().NoError(err)
		suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate)
		suite.Require().NoError(suite.repository.Add(ctx, aggregate))
	}

	// Both orders were placed a week ago; only one has been awaiting the
	// balance payment for longer than a day.
	seed(4211, time.Now().UTC().Add(-48*time.Hour))
	seed(4300, time.Now().UTC().Add(-time.Hour))

	matched, err := suite.repository.GetAllInStatusOlderThan(
		ctx, order.AwaitingFinalPayment, time.Now().UTC().Add(-24*time.Hour))
	suite.Require().NoError(err)
	suite.Require().Len(matched, 1)
	suite.Equal(int64(4211), matched[0].ID().Int64())
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
