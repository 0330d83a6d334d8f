package commands

import (
	"context"
	"log/slog"

	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/core/ports"
)

// CancelOrderCommandHandler handles cancelling orders, both customer initiated
// and on behalf of the draft expiry job. After commit it publishes an
// order.cancelled event carrying the status the order had before cancellation.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewCancelOrderCommandHandler creates a handler for cancelling orders.
func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory, publisher ports.EventPublisher,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the cancel order command.
// Fails if the order is already in a terminal status.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	priorStatus := aggregate.Status()
	cancelled, err := aggregate.Cancel()
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, cancelled); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publish(ctx, cancelled, priorStatus)
	return nil
}

func (h *CancelOrderCommandHandler) publish(ctx context.Context, cancelled *order.Order, priorStatus order.Status) {
	event, err := order.NewCancelledEvent(cancelled, priorStatus)
	if err != nil {
		slog.ErrorContext(ctx, "failed to build order cancelled event",
			"order_id", cancelled.ID().String(), "error", err)
		return
	}

	if err = h.publisher.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish order cancelled event",
			"order_id", cancelled.ID().String(), "error", err)
	}
}
