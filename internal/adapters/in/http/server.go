// Package http exposes the order use cases over a REST API built on Echo.
// Handlers translate between JSON payloads and commands/queries; all business
// decisions stay inside the application core.
package http

import (
	"errors"
	"net/http"
	"time"

	"bookstore/internal/core/application/usecases/commands"
	"bookstore/internal/core/application/usecases/queries"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler        commands.CreateOrderCommandHandler
	addItemHandler            commands.AddItemCommandHandler
	removeItemHandler         commands.RemoveItemCommandHandler
	updateItemQuantityHandler commands.UpdateItemQuantityCommandHandler
	placeOrderHandler         commands.PlaceOrderCommandHandler
	cancelOrderHandler        commands.CancelOrderCommandHandler
	completeOrderHandler      commands.CompleteOrderCommandHandler

	// Query handlers
	getOrderHandler          queries.GetOrderQueryHandler
	getCustomerOrdersHandler queries.GetCustomerOrdersQueryHandler

	// defaultCurrency is applied when order creation omits a currency.
	defaultCurrency string
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	addItemHandler commands.AddItemCommandHandler,
	removeItemHandler commands.RemoveItemCommandHandler,
	updateItemQuantityHandler commands.UpdateItemQuantityCommandHandler,
	placeOrderHandler commands.PlaceOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	completeOrderHandler commands.CompleteOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getCustomerOrdersHandler queries.GetCustomerOrdersQueryHandler,
	defaultCurrency string,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		addItemHandler:            addItemHandler,
		removeItemHandler:         removeItemHandler,
		updateItemQuantityHandler: updateItemQuantityHandler,
		placeOrderHandler:         placeOrderHandler,
		cancelOrderHandler:        cancelOrderHandler,
		completeOrderHandler:      completeOrderHandler,
		getOrderHandler:           getOrderHandler,
		getCustomerOrdersHandler:  getCustomerOrdersHandler,
		defaultCurrency:           defaultCurrency,
	}
}

// RegisterRoutes attaches all API routes to the Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:orderId", s.GetOrder)
	api.GET("/customers/:customerId/orders", s.GetCustomerOrders)

	api.POST("/orders/:orderId/items", s.AddItem)
	api.PUT("/orders/:orderId/items/:bookId", s.UpdateItemQuantity)
	api.DELETE("/orders/:orderId/items/:bookId", s.RemoveItem)

	api.POST("/orders/:orderId/place", s.PlaceOrder)
	api.POST("/orders/:orderId/cancel", s.CancelOrder)
	api.POST("/orders/:orderId/complete", s.CompleteOrder)
}

// CreateOrder handles POST /api/v1/orders - opens a new draft order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	currency := request.Currency
	if currency == "" {
		currency = s.defaultCurrency
	}

	cmd, err := commands.NewCreateOrderCommand(request.CustomerID, currency)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	orderID, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{ID: orderID.String()})
}

// GetOrder handles GET /api/v1/orders/{orderId} - retrieves one order.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(response))
}

// GetCustomerOrders handles GET /api/v1/customers/{customerId}/orders.
func (s *Server) GetCustomerOrders(ctx echo.Context) error {
	query, err := queries.NewGetCustomerOrdersQuery(ctx.Param("customerId"))
	if err != nil {
		return badRequest(ctx, "Invalid customer id")
	}

	summaries, err := s.getCustomerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	response := make([]OrderSummaryResponse, len(summaries))
	for i, summary := range summaries {
		response[i] = OrderSummaryResponse{
			ID:          summary.ID.String(),
			Currency:    summary.Currency,
			TotalAmount: summary.TotalAmount,
			Status:      summary.Status,
			ItemCount:   summary.ItemCount,
			CreatedAt:   summary.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// AddItem handles POST /api/v1/orders/{orderId}/items - adds copies of a book.
func (s *Server) AddItem(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request AddItemRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	currency := request.Currency
	if currency == "" {
		currency = s.defaultCurrency
	}

	unitPrice, err := kernel.NewMoney(request.UnitPriceAmount, currency)
	if err != nil {
		return badRequest(ctx, "Invalid unit price: "+err.Error())
	}

	cmd, err := commands.NewAddItemCommand(orderID, request.BookID, request.Quantity, unitPrice)
	if err != nil {
		return badRequest(ctx, "Invalid item data: "+err.Error())
	}

	if err = s.addItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateItemQuantity handles PUT /api/v1/orders/{orderId}/items/{bookId}.
func (s *Server) UpdateItemQuantity(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request UpdateItemQuantityRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateItemQuantityCommand(orderID, ctx.Param("bookId"), request.Quantity)
	if err != nil {
		return badRequest(ctx, "Invalid item data: "+err.Error())
	}

	if err = s.updateItemQuantityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveItem handles DELETE /api/v1/orders/{orderId}/items/{bookId}.
func (s *Server) RemoveItem(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewRemoveItemCommand(orderID, ctx.Param("bookId"))
	if err != nil {
		return badRequest(ctx, "Invalid item data: "+err.Error())
	}

	if err = s.removeItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PlaceOrder handles POST /api/v1/orders/{orderId}/place.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	return s.transition(ctx, func(orderID kernel.UUID) error {
		cmd, err := commands.NewPlaceOrderCommand(orderID)
		if err != nil {
			return err
		}
		return s.placeOrderHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	return s.transition(ctx, func(orderID kernel.UUID) error {
		cmd, err := commands.NewCancelOrderCommand(orderID)
		if err != nil {
			return err
		}
		return s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// CompleteOrder handles POST /api/v1/orders/{orderId}/complete.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	return s.transition(ctx, func(orderID kernel.UUID) error {
		cmd, err := commands.NewCompleteOrderCommand(orderID)
		if err != nil {
			return err
		}
		return s.completeOrderHandler.Handle(ctx.Request().Context(), cmd)
	})
}

func (s *Server) transition(ctx echo.Context, run func(orderID kernel.UUID) error) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	if err = run(orderID); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func toOrderResponse(response queries.GetOrderQueryResponse) OrderResponse {
	items := make([]OrderItemResponse, len(response.Items))
	for i, item := range response.Items {
		items[i] = OrderItemResponse{
			BookID:          item.BookID,
			Quantity:        item.Quantity,
			UnitPriceAmount: item.UnitPriceAmount,
			SubtotalAmount:  item.SubtotalAmount,
		}
	}

	return OrderResponse{
		ID:          response.ID.String(),
		CustomerID:  response.CustomerID,
		Currency:    response.Currency,
		TotalAmount: response.TotalAmount,
		Status:      response.Status,
		CreatedAt:   response.CreatedAt,
		PlacedAt:    response.PlacedAt,
		CompletedAt: response.CompletedAt,
		CancelledAt: response.CancelledAt,
		Items:       items,
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// mapError translates core errors to HTTP status codes: missing objects map
// to 404, rejected business rules to 409, invalid input to 400.
func mapError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, order.ErrOrderNotModifiable),
		errors.Is(err, order.ErrInvalidStatusTransition),
		errors.Is(err, order.ErrCannotPlaceEmptyOrder),
		errors.Is(err, kernel.ErrCurrencyMismatch):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}

// CreateOrderRequest is the payload for opening a draft order.
// Currency is optional; the server default applies when omitted.
type CreateOrderRequest struct {
	CustomerID string `json:"customer_id"`
	Currency   string `json:"currency,omitempty"`
}

// CreateOrderResponse returns the identifier of the freshly opened order.
type CreateOrderResponse struct {
	ID string `json:"id"`
}

// AddItemRequest is the payload for adding copies of a book to an order.
// UnitPriceAmount is in minor units of the currency.
type AddItemRequest struct {
	BookID          string `json:"book_id"`
	Quantity        int    `json:"quantity"`
	UnitPriceAmount int64  `json:"unit_price_amount"`
	Currency        string `json:"currency,omitempty"`
}

// UpdateItemQuantityRequest is the payload for replacing a line quantity.
type UpdateItemQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// OrderResponse is the full representation of one order.
type OrderResponse struct {
	ID          string              `json:"id"`
	CustomerID  string              `json:"customer_id"`
	Currency    string              `json:"currency"`
	TotalAmount int64               `json:"total_amount"`
	Status      string              `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	PlacedAt    *time.Time          `json:"placed_at,omitempty"`
	CompletedAt *time.Time          `json:"completed_at,omitempty"`
	CancelledAt *time.Time          `json:"cancelled_at,omitempty"`
	Items       []OrderItemResponse `json:"items"`
}

// OrderItemResponse is one book line of an order representation.
type OrderItemResponse struct {
	BookID          string `json:"book_id"`
	Quantity        int    `json:"quantity"`
	UnitPriceAmount int64  `json:"unit_price_amount"`
	SubtotalAmount  int64  `json:"subtotal_amount"`
}

// OrderSummaryResponse is one entry of a customer's order history.
type OrderSummaryResponse struct {
	ID          string    `json:"id"`
	Currency    string    `json:"currency"`
	TotalAmount int64     `json:"total_amount"`
	Status      string    `json:"status"`
	ItemCount   int       `json:"item_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// ErrorResponse is the uniform error payload of the API.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
