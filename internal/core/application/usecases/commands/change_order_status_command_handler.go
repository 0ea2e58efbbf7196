package commands

import (
	"context"
	"log/slog"

	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/core/ports"
	"orderhub/internal/pkg/errs"
)

// ChangeOrderStatusCommandHandler handles the business logic for order
// status transitions. The read, the transition, and the conditional write
// run in one transaction. The caller's expected version is checked against
// the loaded order, and the repository's conditional write re-checks it, so
// a concurrent writer produces a ConcurrentModificationError instead of a
// lost update.
//
// Example:
//
//	handler := NewChangeOrderStatusCommandHandler(uowFactory, notifier, logger)
//	cmd, _ := NewChangeOrderStatusCommand(tenant, orderID, order.Ready, 1, "")
//
//	updated, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrConcurrentModification) {
//	    // the caller should re-read and retry
//	}
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewChangeOrderStatusCommandHandler creates a handler for status
// transition operations. Requires an OrderUoWFactory for transactional
// persistence and the notifier for post-commit events.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "change_order_status_handler"),
	}
}

// Handle processes the status transition command.
// Checks the actor's scope before touching storage, applies the transition
// through the state machine, and publishes the event only after commit.
func (h *ChangeOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeOrderStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	role := cmd.Tenant().Actor().Role()
	if !role.CanTransitionTo(cmd.Target()) {
		return nil, errs.NewUnauthorizedError(role.String(),
			"move orders to "+cmd.Target().String())
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.Tenant().RestaurantID(), cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if aggregate.Version() != cmd.ExpectedVersion() {
		return nil, errs.NewConcurrentModificationError(
			"order", cmd.OrderID().String(), cmd.ExpectedVersion())
	}

	from := aggregate.Status().String()
	if err = aggregate.ApplyTransition(cmd.Target(), cmd.Reason()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	event := ports.OrderEvent{
		OrderID:      aggregate.ID(),
		RestaurantID: aggregate.RestaurantID(),
		OrderNumber:  aggregate.OrderNumber(),
		FromStatus:   from,
		ToStatus:     aggregate.Status().String(),
		Reason:       cmd.Reason(),
		OccurredAt:   aggregate.UpdatedAt(),
	}
	if err = h.notifier.Publish(ctx, event); err != nil {
		h.logger.WarnContext(ctx, "failed to publish order event",
			"order_id", aggregate.ID().String(), "to_status", event.ToStatus, "error", err)
	}

	return aggregate, nil
}
