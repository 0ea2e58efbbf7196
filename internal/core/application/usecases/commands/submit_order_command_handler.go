package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/core/domain/services"
	"orderhub/internal/core/ports"
)

// ErrPaymentDeclined is returned when the payment gateway refuses the
// authorization hold. The order is persisted in Failed status with the
// decline recorded as the status reason.
var ErrPaymentDeclined = errors.New("payment authorization declined")

const (
	paymentAttempts   = 3
	paymentRetryDelay = 200 * time.Millisecond
)

// SubmitOrderCommandHandler handles the business logic for order submission.
// It validates the submission against the catalog inside the transaction,
// persists the order in Pending status, and then drives it to Confirmed or
// Failed depending on the payment outcome.
//
// Payment authorization runs after the pending order is committed and
// outside any database transaction, with a bounded retry for gateway
// faults. If every attempt fails the order stays Pending and the timeout
// sweep fails it later; the handler reports the upstream failure to the
// caller. A decline is definitive and never retried.
//
// Example:
//
//	handler := NewSubmitOrderCommandHandler(uowFactory, payment, notifier, logger)
//	cmd, _ := NewSubmitOrderCommand(tenant, kernel.NewUUID(), submission)
//
//	created, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrPaymentDeclined) {
//	    // surface the decline to the channel
//	}
type SubmitOrderCommandHandler struct {
	uowFactory SubmitOrderUoWFactory
	validator  services.OrderValidator
	payment    ports.PaymentAuthorizer
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewSubmitOrderCommandHandler creates a handler for order submission.
// Requires a SubmitOrderUoWFactory for transactional persistence, the
// payment authorizer, and the notifier for post-commit events.
func NewSubmitOrderCommandHandler(
	uowFactory SubmitOrderUoWFactory,
	payment ports.PaymentAuthorizer,
	notifier ports.Notifier,
	logger *slog.Logger,
) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{
		uowFactory: uowFactory,
		validator:  services.NewOrderValidator(),
		payment:    payment,
		notifier:   notifier,
		logger:     logger.With("component", "submit_order_handler"),
	}
}

// Handle processes the order submission command.
// Catalog lookup, validation, and the insert run in one transaction so the
// price snapshot and the stored order come from the same consistent view.
// Returns the order in its final state after the payment step.
func (h *SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	created, err := h.createPending(ctx, cmd)
	if err != nil {
		return nil, err
	}
	h.publish(ctx, created, "", created.Status().String(), "")

	authorized := false
	if cmd.Submission().Channel.RequiresPayment() {
		authorized, err = h.authorizeWithRetry(ctx, created.ID(), created.Charges().Total())
		if err != nil {
			// Order stays Pending; the timeout sweep will fail it if no
			// retry concludes the payment.
			return nil, err
		}
		if !authorized {
			if failErr := h.transitionAfterPayment(ctx, created, "payment declined", false); failErr != nil {
				return nil, failErr
			}
			return created, ErrPaymentDeclined
		}
	}

	if err = h.transitionAfterPayment(ctx, created, "", authorized); err != nil {
		return nil, err
	}

	return created, nil
}

// createPending validates the submission against the tenant's catalog and
// persists the resulting Pending order.
func (h *SubmitOrderCommandHandler) createPending(ctx context.Context, cmd SubmitOrderCommand) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	// Token claims can outlive the restaurant itself; the resolved tenant
	// must still exist before any order is taken for it.
	if _, err := uow.RestaurantRepository().Get(ctx, cmd.Tenant().RestaurantID()); err != nil {
		return nil, err
	}

	itemIDs := make([]kernel.UUID, 0, len(cmd.Submission().Items))
	for _, item := range cmd.Submission().Items {
		itemIDs = append(itemIDs, item.MenuItemID)
	}

	catalog, err := uow.MenuRepository().GetItems(ctx, cmd.Tenant().RestaurantID(), itemIDs)
	if err != nil {
		return nil, err
	}

	created, err := h.validator.Validate(
		cmd.Tenant(), cmd.Submission(), catalog, cmd.OrderID(), orderNumberFor(cmd.OrderID(), time.Now()))
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}

// authorizeWithRetry asks the gateway for an authorization hold, retrying
// transport faults with doubling delays. A decline comes back on the first
// definitive answer.
func (h *SubmitOrderCommandHandler) authorizeWithRetry(
	ctx context.Context,
	orderID kernel.UUID,
	amount kernel.Money,
) (bool, error) {
	delay := paymentRetryDelay

	var err error
	for attempt := 1; attempt <= paymentAttempts; attempt++ {
		var authorized bool
		authorized, err = h.payment.Authorize(ctx, orderID, amount)
		if err == nil {
			return authorized, nil
		}

		h.logger.WarnContext(ctx, "payment authorization attempt failed",
			"order_id", orderID.String(), "attempt", attempt, "error", err)

		if attempt == paymentAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	return false, err
}

// transitionAfterPayment moves the committed pending order to Confirmed or
// Failed in its own transaction and publishes the resulting event.
func (h *SubmitOrderCommandHandler) transitionAfterPayment(
	ctx context.Context,
	created *order.Order,
	declineReason string,
	paymentAuthorized bool,
) error {
	from := created.Status().String()

	var err error
	if declineReason != "" {
		err = created.Fail(declineReason)
	} else {
		err = created.Confirm(paymentAuthorized)
	}
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Update(ctx, created); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publish(ctx, created, from, created.Status().String(), declineReason)
	return nil
}

// publish sends the committed status change to the restaurant's channel.
// Delivery failures are logged and swallowed; the stored order is the
// source of truth.
func (h *SubmitOrderCommandHandler) publish(ctx context.Context, o *order.Order, from, to, reason string) {
	event := ports.OrderEvent{
		OrderID:      o.ID(),
		RestaurantID: o.RestaurantID(),
		OrderNumber:  o.OrderNumber(),
		FromStatus:   from,
		ToStatus:     to,
		Reason:       reason,
		OccurredAt:   o.UpdatedAt(),
	}
	if err := h.notifier.Publish(ctx, event); err != nil {
		h.logger.WarnContext(ctx, "failed to publish order event",
			"order_id", o.ID().String(), "to_status", to, "error", err)
	}
}

// orderNumberFor derives the short display number shown on tickets and
// kitchen screens. The date prefix plus a suffix taken from the order id
// keeps numbers readable; uniqueness is guaranteed by the order id, not
// the display number.
func orderNumberFor(orderID kernel.UUID, now time.Time) string {
	raw := orderID.Bytes()
	suffix := (uint16(raw[14])<<8 | uint16(raw[15])) % 10000
	return fmt.Sprintf("%s-%04d", now.Format("20060102"), suffix)
}
