package commands

import (
	"errors"

	"orderhub/internal/core/domain/model/actor"
	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/services"
	"orderhub/internal/pkg/guard"
)

var (
	ErrSubmitOrderCommandIsNotConstructed = errors.New(
		"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
	)
)

// SubmitOrderCommand represents a request to create a new order from one of
// the intake channels. It carries the resolved tenant context and the
// normalized submission; validation of the submission's content against the
// catalog happens in the handler, inside the transaction.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewSubmitOrderCommand(tenant, orderID, submission)
//	if err != nil {
//	    return fmt.Errorf("invalid submission: %w", err)
//	}
//
//	handler := NewSubmitOrderCommandHandler(uowFactory, payment, notifier, logger)
//	created, err := handler.Handle(ctx, cmd)
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	tenant     actor.TenantContext
	orderID    kernel.UUID
	submission services.Submission

	guard guard.ConstructorGuard
}

// NewSubmitOrderCommand creates a command to submit a new order.
// Validates that the tenant context was resolved and the order ID is valid.
func NewSubmitOrderCommand(
	tenant actor.TenantContext,
	orderID kernel.UUID,
	submission services.Submission,
) (SubmitOrderCommand, error) {
	cmd := SubmitOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenant(tenant),
		cmd.setOrderID(orderID),
	); err != nil {
		return SubmitOrderCommand{}, err
	}

	cmd.submission = submission
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSubmitOrderCommandIsNotConstructed if validation fails.
func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

// Tenant returns the resolved tenant context of the request.
func (c SubmitOrderCommand) Tenant() actor.TenantContext {
	return c.tenant
}

// OrderID returns the unique identifier for the new order.
func (c SubmitOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Submission returns the normalized channel submission.
func (c SubmitOrderCommand) Submission() services.Submission {
	return c.submission
}

func (c *SubmitOrderCommand) setTenant(tenant actor.TenantContext) error {
	if err := tenant.Validate(); err != nil {
		return err
	}

	c.tenant = tenant
	return nil
}

func (c *SubmitOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
