package eventbus

import (
	"context"
	"log/slog"

	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/core/ports"
)

// RegisterLoggingSubscribers attaches structured-log subscribers for all order
// lifecycle events. This is the default notification sink when no external
// channel is configured.
func RegisterLoggingSubscribers(bus ports.EventPublisher, logger *slog.Logger) {
	bus.Subscribe(order.PlacedEventName, func(ctx context.Context, event order.Event) error {
		placedEvent, ok := event.(order.PlacedEvent)
		if !ok {
			return nil
		}

		logger.InfoContext(ctx, "order placed",
			"order_id", placedEvent.OrderID.String(),
			"customer_id", placedEvent.CustomerID,
			"total", placedEvent.Total.String(),
			"lines", len(placedEvent.Items),
		)
		return nil
	})

	bus.Subscribe(order.CancelledEventName, func(ctx context.Context, event order.Event) error {
		cancelledEvent, ok := event.(order.CancelledEvent)
		if !ok {
			return nil
		}

		logger.InfoContext(ctx, "order cancelled",
			"order_id", cancelledEvent.OrderID.String(),
			"customer_id", cancelledEvent.CustomerID,
			"prior_status", cancelledEvent.PriorStatus.String(),
		)
		return nil
	})
}
