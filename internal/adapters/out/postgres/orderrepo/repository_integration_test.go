package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"bookstore/internal/adapters/out/postgres/orderrepo"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/pkg/errs"

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

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
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

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items").Error)

	// Create fresh repository and tracker for each test
	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_EmptyDraft_Success() {
	ctx := context.Background()

	testOrder := suite.createDraftOrder()

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_OrderWithItems_RoundTrip() {
	ctx := context.Background()

	testOrder := suite.createDraftOrderWithItems()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.True(retrieved.IsEqual(testOrder))
	suite.Equal(testOrder.CustomerID(), retrieved.CustomerID())
	suite.Equal(order.Draft, retrieved.Status())
	suite.True(retrieved.Total().IsEqual(testOrder.Total()))

	// line order and content survive persistence
	suite.Require().Len(retrieved.Items(), 2)
	suite.Equal("book-1", retrieved.Items()[0].BookID())
	suite.Equal(2, retrieved.Items()[0].Quantity())
	suite.Equal("book-2", retrieved.Items()[1].BookID())
	suite.True(retrieved.Items()[0].UnitPrice().IsEqual(suite.money(1500)))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ReplacesLines() {
	ctx := context.Background()

	testOrder := suite.createDraftOrderWithItems()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// remove one line, change the other, then persist the new revision
	updated, err := testOrder.RemoveItem("book-2")
	suite.Require().NoError(err)
	updated, err = updated.UpdateItemQuantity("book-1", 5)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Update(ctx, updated))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().Len(retrieved.Items(), 1)
	suite.Equal(5, retrieved.Items()[0].Quantity())
	suite.True(retrieved.Total().IsEqual(updated.Total()))
	suite.assertItemCount(1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StatusTransitionPersists() {
	ctx := context.Background()

	testOrder := suite.createDraftOrderWithItems()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	placed, err := testOrder.Place()
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, placed))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Placed, retrieved.Status())
	suite.Require().NotNil(retrieved.PlacedAt())
	suite.WithinDuration(*placed.PlacedAt(), *retrieved.PlacedAt(), time.Second)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_NotFound() {
	ctx := context.Background()

	testOrder := suite.createDraftOrder()

	err := suite.repository.Update(ctx, testOrder)
	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllByCustomerID() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	first, err := order.NewOrder("customer-1", "JPY")
	suite.Require().NoError(err)
	second, err := order.NewOrder("customer-1", "JPY")
	suite.Require().NoError(err)
	other, err := order.NewOrder("customer-2", "JPY")
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))
	suite.Require().NoError(suite.repository.Add(ctx, other))

	orders, err := suite.repository.GetAllByCustomerID(ctx, "customer-1")
	suite.Require().NoError(err)
	suite.Require().Len(orders, 2)
	for _, retrieved := range orders {
		suite.Equal("customer-1", retrieved.CustomerID())
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllByCustomerID_NoOrders() {
	ctx := context.Background()

	orders, err := suite.repository.GetAllByCustomerID(ctx, "nobody")
	suite.Require().NoError(err)
	suite.Empty(orders)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllDraftsCreatedBefore() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	// stale draft, created well before the cutoff
	staleDraft := suite.restoreOrderCreatedAt(time.Now().UTC().Add(-2 * time.Hour))
	suite.Require().NoError(suite.repository.Add(ctx, staleDraft))

	// fresh draft, created after the cutoff
	freshDraft := suite.createDraftOrder()
	suite.Require().NoError(suite.repository.Add(ctx, freshDraft))

	// stale but already placed, must not be picked up
	stalePlaced, err := suite.restoreOrderCreatedAt(time.Now().UTC().Add(-3 * time.Hour)).
		AddItem("book-1", 1, suite.money(1000))
	suite.Require().NoError(err)
	stalePlaced, err = stalePlaced.Place()
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, stalePlaced))

	cutoff := time.Now().UTC().Add(-time.Hour)
	drafts, err := suite.repository.GetAllDraftsCreatedBefore(ctx, cutoff)
	suite.Require().NoError(err)
	suite.Require().Len(drafts, 1)
	suite.True(drafts[0].IsEqual(staleDraft))
	suite.Equal(order.Draft, drafts[0].Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDelete_RemovesOrderAndLines() {
	ctx := context.Background()

	testOrder := suite.createDraftOrderWithItems()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	err := suite.repository.Delete(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.assertOrderCount(0)
	suite.assertItemCount(0)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDelete_NonExistentOrder_NotFound() {
	ctx := context.Background()

	err := suite.repository.Delete(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

// createDraftOrder creates a valid empty draft order.
func (suite *OrderRepositoryIntegrationTestSuite) createDraftOrder() *order.Order {
	testOrder, err := order.NewOrder("customer-1", "JPY")
	suite.Require().NoError(err)
	return testOrder
}

// createDraftOrderWithItems creates a draft order holding two book lines.
func (suite *OrderRepositoryIntegrationTestSuite) createDraftOrderWithItems() *order.Order {
	testOrder := suite.createDraftOrder()

	testOrder, err := testOrder.AddItem("book-1", 2, suite.money(1500))
	suite.Require().NoError(err)
	testOrder, err = testOrder.AddItem("book-2", 1, suite.money(2000))
	suite.Require().NoError(err)

	return testOrder
}

// restoreOrderCreatedAt builds an empty draft order with a backdated creation time.
func (suite *OrderRepositoryIntegrationTestSuite) restoreOrderCreatedAt(createdAt time.Time) *order.Order {
	template := suite.createDraftOrder()

	restored, err := order.RestoreOrder(
		template.ID(), template.CustomerID(), nil, template.Total(), order.Draft,
		createdAt, nil, nil, nil,
	)
	suite.Require().NoError(err)
	return restored
}

func (suite *OrderRepositoryIntegrationTestSuite) money(amount int64) kernel.Money {
	money, err := kernel.NewMoney(amount, "JPY")
	suite.Require().NoError(err)
	return money
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func (suite *OrderRepositoryIntegrationTestSuite) assertItemCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.ItemDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

// TestOrderRepositoryIntegrationTestSuite runs the integration test suite.
func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
