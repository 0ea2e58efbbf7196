package commands

import (
	"context"
	"log/slog"
	"time"

	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/core/ports"
)

const stalePendingReason = "pending timeout exceeded"

// FailStaleOrdersCommandHandler fails orders whose payment authorization
// never concluded. A pending order older than the allowed age is moved to
// Failed with an explanatory reason; each transition goes through the
// state machine and the optimistic version check like any other write.
//
// Orders that a concurrent writer touched during the sweep are skipped:
// the version check rejects the update and the next sweep re-evaluates
// them.
type FailStaleOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewFailStaleOrdersCommandHandler creates a handler for the pending
// timeout sweep.
func NewFailStaleOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) FailStaleOrdersCommandHandler {
	return FailStaleOrdersCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "fail_stale_orders_handler"),
	}
}

// Handle processes the sweep command. Returns the number of orders failed.
func (h *FailStaleOrdersCommandHandler) Handle(ctx context.Context, cmd FailStaleOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	cutoff := time.Now().Add(-cmd.MaxPendingAge())
	stale, err := orderRepo.GetStalePending(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	failed := make([]*order.Order, 0, len(stale))
	for _, aggregate := range stale {
		if err = aggregate.Fail(stalePendingReason); err != nil {
			h.logger.WarnContext(ctx, "skipping stale order",
				"order_id", aggregate.ID().String(), "error", err)
			continue
		}
		if err = orderRepo.Update(ctx, aggregate); err != nil {
			h.logger.WarnContext(ctx, "skipping stale order",
				"order_id", aggregate.ID().String(), "error", err)
			continue
		}
		failed = append(failed, aggregate)
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	for _, aggregate := range failed {
		event := ports.OrderEvent{
			OrderID:      aggregate.ID(),
			RestaurantID: aggregate.RestaurantID(),
			OrderNumber:  aggregate.OrderNumber(),
			FromStatus:   order.Pending.String(),
			ToStatus:     aggregate.Status().String(),
			Reason:       stalePendingReason,
			OccurredAt:   aggregate.UpdatedAt(),
		}
		if err = h.notifier.Publish(ctx, event); err != nil {
			h.logger.WarnContext(ctx, "failed to publish order event",
				"order_id", aggregate.ID().String(), "error", err)
		}
	}

	return len(failed), nil
}
