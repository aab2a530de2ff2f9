package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for
// GormOrderRepository using PostgreSQL containers to verify persistence
// behavior, in particular the conditional status and rating updates.
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

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.newInProgressOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_UnconstructedOrder_Rejected() {
	err := suite.repository.Add(context.Background(), &order.Order{})

	suite.Require().Error(err)
	suite.assertOrderCount(0)
	suite.tracker.AssertNotCalled(suite.T(), "TrackAggregate", mock.Anything, mock.Anything)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_RoundTrips() {
	ctx := context.Background()

	original := suite.newInProgressOrder()
	suite.addOrder(ctx, original)

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.True(retrieved.ID().IsEqual(original.ID()))
	suite.True(retrieved.UserID().IsEqual(original.UserID()))
	suite.True(retrieved.CourierID().IsEqual(original.CourierID()))
	suite.Equal(order.StatusInProgress, retrieved.Status())
	suite.Equal(original.Address(), retrieved.Address())
	suite.Nil(retrieved.Rating())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	retrieved, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestItems_SnapshotRoundTrips() {
	ctx := context.Background()

	testOrder := suite.newInProgressOrder()
	suite.addOrder(ctx, testOrder)

	productID := kernel.NewUUID()
	first, err := order.NewItem(testOrder.ID(), productID, 2)
	suite.Require().NoError(err)
	second, err := order.NewItem(testOrder.ID(), kernel.NewUUID(), 1)
	suite.Require().NoError(err)
	// Bucket rows are not merged, so a snapshot may repeat a product.
	third, err := order.NewItem(testOrder.ID(), productID, 3)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.AddItems(ctx, []order.Item{first, second, third}))

	items, err := suite.repository.GetItems(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Require().Len(items, 3)
	suite.True(items[0].ProductID().IsEqual(first.ProductID()))
	suite.Equal(2, items[0].Amount())
	suite.True(items[1].ProductID().IsEqual(second.ProductID()))
	suite.True(items[2].ProductID().IsEqual(third.ProductID()))
	suite.Equal(3, items[2].Amount())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestItems_EmptySnapshot() {
	ctx := context.Background()

	suite.Require().NoError(suite.repository.AddItems(ctx, nil))

	items, err := suite.repository.GetItems(ctx, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Empty(items)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestComplete_InProgressOrder_Finishes() {
	ctx := context.Background()

	testOrder := suite.newInProgressOrder()
	suite.addOrder(ctx, testOrder)

	err := suite.repository.Complete(ctx, testOrder.ID())
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusFinished, retrieved.Status())
	suite.True(retrieved.UpdatedAt().After(testOrder.UpdatedAt()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestComplete_FinishedOrder_ReturnsAlreadyFinished() {
	ctx := context.Background()

	testOrder := suite.newInProgressOrder()
	suite.addOrder(ctx, testOrder)
	suite.Require().NoError(suite.repository.Complete(ctx, testOrder.ID()))

	err := suite.repository.Complete(ctx, testOrder.ID())

	suite.Require().ErrorIs(err, order.ErrAlreadyFinished)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestComplete_ConcurrentCompletions_ExactlyOneWins() {
	ctx := context.Background()

	testOrder := suite.newInProgressOrder()
	suite.addOrder(ctx, testOrder)

	results := make(chan error, 2)
	for range 2 {
		go func() {
			results <- suite.repository.Complete(ctx, testOrder.ID())
		}()
	}

	var wins, losses int
	for range 2 {
		if err := <-results; err == nil {
			wins++
		} else {
			suite.ErrorIs(err, order.ErrAlreadyFinished)
			losses++
		}
	}

	suite.Equal(1, wins)
	suite.Equal(1, losses)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSetRating_UnratedOrder_Persists() {
	ctx := context.Background()

	testOrder := suite.newFinishedOrder(nil, time.Now().UTC())
	suite.addOrder(ctx, testOrder)

	err := suite.repository.SetRating(ctx, testOrder.ID(), 4)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(retrieved.Rating())
	suite.Equal(4, *retrieved.Rating())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSetRating_RatedOrder_ReturnsAlreadyRated() {
	ctx := context.Background()

	testOrder := suite.newFinishedOrder(intPtr(5), time.Now().UTC())
	suite.addOrder(ctx, testOrder)

	err := suite.repository.SetRating(ctx, testOrder.ID(), 3)

	suite.Require().ErrorIs(err, order.ErrAlreadyRated)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSetRating_ConcurrentRatings_ExactlyOneWins() {
	ctx := context.Background()

	testOrder := suite.newFinishedOrder(nil, time.Now().UTC())
	suite.addOrder(ctx, testOrder)

	results := make(chan error, 2)
	for range 2 {
		go func() {
			results <- suite.repository.SetRating(ctx, testOrder.ID(), 5)
		}()
	}

	var wins int
	for range 2 {
		if err := <-results; err == nil {
			wins++
		} else {
			suite.ErrorIs(err, order.ErrAlreadyRated)
		}
	}

	suite.Equal(1, wins)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestRecentCourierRatings_MostRecentFirstCapped() {
	ctx := context.Background()

	courierID := kernel.NewUUID()
	base := time.Now().UTC().Add(-time.Hour)

	// Five rated orders for the courier, oldest rating 1, newest rating 5.
	for i := 1; i <= 5; i++ {
		rated := suite.newFinishedOrderFor(courierID, intPtr(i), base.Add(time.Duration(i)*time.Minute))
		suite.addOrder(ctx, rated)
	}

	// Neither unrated nor in-progress orders contribute to the history.
	suite.addOrder(ctx, suite.newFinishedOrderFor(courierID, nil, base.Add(time.Hour)))
	suite.addOrder(ctx, suite.newInProgressOrderFor(courierID))

	// Another courier's ratings stay out of this courier's history.
	suite.addOrder(ctx, suite.newFinishedOrderFor(kernel.NewUUID(), intPtr(1), base.Add(time.Hour)))

	ratings, err := suite.repository.RecentCourierRatings(ctx, courierID, 3)
	suite.Require().NoError(err)

	suite.Equal([]int{5, 4, 3}, ratings)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestRecentCourierRatings_NoHistory_ReturnsEmpty() {
	ratings, err := suite.repository.RecentCourierRatings(context.Background(), kernel.NewUUID(), 10)

	suite.Require().NoError(err)
	suite.Empty(ratings)
}

// addOrder persists the order with the matching tracker expectation.
func (suite *OrderRepositoryIntegrationTestSuite) addOrder(ctx context.Context, o *order.Order) {
	suite.T().Helper()

	suite.tracker.On("TrackAggregate", o.ID(), o).Once()
	suite.Require().NoError(suite.repository.Add(ctx, o))
}

func (suite *OrderRepositoryIntegrationTestSuite) newInProgressOrder() *order.Order {
	return suite.newInProgressOrderFor(kernel.NewUUID())
}

func (suite *OrderRepositoryIntegrationTestSuite) newInProgressOrderFor(courierID kernel.UUID) *order.Order {
	testOrder, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), courierID, "Baker Street 221b")
	suite.Require().NoError(err)
	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) newFinishedOrder(rating *int, updatedAt time.Time) *order.Order {
	return suite.newFinishedOrderFor(kernel.NewUUID(), rating, updatedAt)
}

func (suite *OrderRepositoryIntegrationTestSuite) newFinishedOrderFor(
	courierID kernel.UUID, rating *int, updatedAt time.Time,
) *order.Order {
	testOrder, err := order.RestoreOrder(
		kernel.NewUUID(), kernel.NewUUID(), courierID,
		rating, order.StatusFinished, "Baker Street 221b",
		updatedAt.Add(-time.Hour), updatedAt,
	)
	suite.Require().NoError(err)
	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func intPtr(v int) *int {
	return &v
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
