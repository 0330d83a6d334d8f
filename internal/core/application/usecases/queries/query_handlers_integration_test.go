package queries_test

import (
	"context"
	"testing"
	"time"

	"bookstore/internal/adapters/out/postgres/orderrepo"
	"bookstore/internal/core/application/usecases/queries"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockAggregateTracker satisfies the repository tracker without recording anything.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ interface{}) {}

// QueryHandlersIntegrationTestSuite exercises the read-side handlers against a
// real PostgreSQL database seeded through the order repository.
type QueryHandlersIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *QueryHandlersIntegrationTestSuite) SetupSuite() {
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{})
	suite.Require().NoError(err)

	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *QueryHandlersIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items").Error)
}

func (suite *QueryHandlersIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrder_ReturnsOrderWithLines() {
	ctx := context.Background()
	testOrder := suite.seedOrderWithItems("customer-1")

	handler := queries.NewGetOrderQueryHandler(suite.db)
	query, err := queries.NewGetOrderQuery(testOrder.ID())
	suite.Require().NoError(err)

	response, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.True(response.ID.IsEqual(testOrder.ID()))
	suite.Equal("customer-1", response.CustomerID)
	suite.Equal("JPY", response.Currency)
	suite.Equal(testOrder.Total().Amount(), response.TotalAmount)
	suite.Equal("Draft", response.Status)
	suite.Nil(response.PlacedAt)

	suite.Require().Len(response.Items, 2)
	suite.Equal("book-1", response.Items[0].BookID)
	suite.Equal(2, response.Items[0].Quantity)
	suite.Equal(int64(1500), response.Items[0].UnitPriceAmount)
	suite.Equal(int64(3000), response.Items[0].SubtotalAmount)
	suite.Equal("book-2", response.Items[1].BookID)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrder_PlacedOrderCarriesTimestamp() {
	ctx := context.Background()
	testOrder := suite.seedOrderWithItems("customer-1")

	placed, err := testOrder.Place()
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Update(ctx, placed))

	handler := queries.NewGetOrderQueryHandler(suite.db)
	query, err := queries.NewGetOrderQuery(testOrder.ID())
	suite.Require().NoError(err)

	response, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal("Placed", response.Status)
	suite.Require().NotNil(response.PlacedAt)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrder_NotFound() {
	ctx := context.Background()

	handler := queries.NewGetOrderQueryHandler(suite.db)
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = handler.Handle(ctx, query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetCustomerOrders_ReturnsSummaries() {
	ctx := context.Background()
	first := suite.seedOrderWithItems("customer-1")
	suite.seedOrderWithItems("customer-2")

	handler := queries.NewGetCustomerOrdersQueryHandler(suite.db)
	query, err := queries.NewGetCustomerOrdersQuery("customer-1")
	suite.Require().NoError(err)

	summaries, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(summaries, 1)
	suite.True(summaries[0].ID.IsEqual(first.ID()))
	suite.Equal(first.Total().Amount(), summaries[0].TotalAmount)
	suite.Equal(3, summaries[0].ItemCount)
	suite.Equal("Draft", summaries[0].Status)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetCustomerOrders_EmptyOrderHasZeroItemCount() {
	ctx := context.Background()

	emptyOrder, err := order.NewOrder("customer-1", "JPY")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(ctx, emptyOrder))

	handler := queries.NewGetCustomerOrdersQueryHandler(suite.db)
	query, err := queries.NewGetCustomerOrdersQuery("customer-1")
	suite.Require().NoError(err)

	summaries, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(summaries, 1)
	suite.Equal(0, summaries[0].ItemCount)
	suite.Equal(int64(0), summaries[0].TotalAmount)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetCustomerOrders_NoOrders() {
	ctx := context.Background()

	handler := queries.NewGetCustomerOrdersQueryHandler(suite.db)
	query, err := queries.NewGetCustomerOrdersQuery("nobody")
	suite.Require().NoError(err)

	summaries, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Empty(summaries)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetStaleDraftOrders_FindsOnlyStaleDrafts() {
	ctx := context.Background()

	staleDraft := suite.seedBackdatedDraft("customer-1", time.Now().UTC().Add(-2*time.Hour))
	suite.seedOrderWithItems("customer-1") // fresh draft

	placed, err := suite.seedOrderWithItems("customer-2").Place()
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Update(ctx, placed))

	handler := queries.NewGetStaleDraftOrdersQueryHandler(suite.db)
	query, err := queries.NewGetStaleDraftOrdersQuery(time.Now().UTC().Add(-time.Hour))
	suite.Require().NoError(err)

	drafts, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(drafts, 1)
	suite.True(drafts[0].ID.IsEqual(staleDraft.ID()))
	suite.Equal("customer-1", drafts[0].CustomerID)
}

// seedOrderWithItems persists a draft order with two book lines.
func (suite *QueryHandlersIntegrationTestSuite) seedOrderWithItems(customerID string) *order.Order {
	testOrder, err := order.NewOrder(customerID, "JPY")
	suite.Require().NoError(err)

	price1, err := kernel.NewMoney(1500, "JPY")
	suite.Require().NoError(err)
	price2, err := kernel.NewMoney(2000, "JPY")
	suite.Require().NoError(err)

	testOrder, err = testOrder.AddItem("book-1", 2, price1)
	suite.Require().NoError(err)
	testOrder, err = testOrder.AddItem("book-2", 1, price2)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.orderRepo.Add(context.Background(), testOrder))
	return testOrder
}

// seedBackdatedDraft persists an empty draft with a creation time in the past.
func (suite *QueryHandlersIntegrationTestSuite) seedBackdatedDraft(customerID string, createdAt time.Time) *order.Order {
	template, err := order.NewOrder(customerID, "JPY")
	suite.Require().NoError(err)

	backdated, err := order.RestoreOrder(
		template.ID(), template.CustomerID(), nil, template.Total(), order.Draft,
		createdAt, nil, nil, nil,
	)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.orderRepo.Add(context.Background(), backdated))
	return backdated
}

// TestQueryHandlersIntegrationTestSuite runs the integration test suite.
func TestQueryHandlersIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(QueryHandlersIntegrationTestSuite))
}
