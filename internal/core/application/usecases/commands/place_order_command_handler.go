package commands

import (
	"context"
	"log/slog"

	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/core/ports"
)

// PlaceOrderCommandHandler handles placing draft orders.
// After the transition has committed it publishes an order.placed event so
// downstream subscribers (notifications, reporting) can react. Publishing is
// best effort: a failed publish never rolls the placement back.
type PlaceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewPlaceOrderCommandHandler creates a handler for placing orders.
func NewPlaceOrderCommandHandler(
	uowFactory OrderUoWFactory, publisher ports.EventPublisher,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the place order command.
// Fails with the aggregate's business rule errors if the order is empty or
// not in a status that allows placing.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	placed, err := aggregate.Place()
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, placed); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publish(ctx, placed)
	return nil
}

func (h *PlaceOrderCommandHandler) publish(ctx context.Context, placed *order.Order) {
	event, err := order.NewPlacedEvent(placed)
	if err != nil {
		slog.ErrorContext(ctx, "failed to build order placed event",
			"order_id", placed.ID().String(), "error", err)
		return
	}

	if err = h.publisher.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish order placed event",
			"order_id", placed.ID().String(), "error", err)
	}
}
