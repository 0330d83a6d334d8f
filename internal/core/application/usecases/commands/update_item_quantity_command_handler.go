package commands

import (
	"context"
)

// UpdateItemQuantityCommandHandler handles quantity changes on draft orders.
type UpdateItemQuantityCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateItemQuantityCommandHandler creates a handler for quantity updates.
func NewUpdateItemQuantityCommandHandler(uowFactory OrderUoWFactory) UpdateItemQuantityCommandHandler {
	return UpdateItemQuantityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the quantity update command.
// Fails if the order has no line for the book or is no longer a draft.
func (h *UpdateItemQuantityCommandHandler) Handle(ctx context.Context, cmd UpdateItemQuantityCommand) error {
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

	updated, err := aggregate.UpdateItemQuantity(cmd.BookID(), cmd.Quantity())
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, updated); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
