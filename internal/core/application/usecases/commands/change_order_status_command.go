package commands

import (
	"errors"
	"fmt"

	"orderhub/internal/core/domain/model/actor"
	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/pkg/errs"
	"orderhub/internal/pkg/guard"
)

var (
	ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
		"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
	)
)

// ChangeOrderStatusCommand represents a request to move an order to a new
// status. The reason is mandatory for cancellation and ignored for every
// other target; the state machine enforces both rules. The expected version
// is the version the caller last read; a stale version fails the request
// instead of silently overwriting a concurrent change.
//
// Example:
//
//	cmd, err := NewChangeOrderStatusCommand(tenant, orderID, order.Preparing, 1, "")
//	if err != nil {
//	    return fmt.Errorf("invalid transition request: %w", err)
//	}
//
//	handler := NewChangeOrderStatusCommandHandler(uowFactory, notifier, logger)
//	updated, err := handler.Handle(ctx, cmd)
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	tenant          actor.TenantContext
	orderID         kernel.UUID
	target          order.Status
	expectedVersion int
	reason          string

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a command to transition an order.
// Validates the tenant context, the order ID, the target status, and the
// expected version.
func NewChangeOrderStatusCommand(
	tenant actor.TenantContext,
	orderID kernel.UUID,
	target order.Status,
	expectedVersion int,
	reason string,
) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenant(tenant),
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
		cmd.setExpectedVersion(expectedVersion),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	cmd.reason = reason
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrChangeOrderStatusCommandIsNotConstructed if validation fails.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// Tenant returns the resolved tenant context of the request.
func (c ChangeOrderStatusCommand) Tenant() actor.TenantContext {
	return c.tenant
}

// OrderID returns the identifier of the order to transition.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested status.
func (c ChangeOrderStatusCommand) Target() order.Status {
	return c.target
}

// ExpectedVersion returns the version the caller last read the order at.
func (c ChangeOrderStatusCommand) ExpectedVersion() int {
	return c.expectedVersion
}

// Reason returns the operator-provided reason, if any.
func (c ChangeOrderStatusCommand) Reason() string {
	return c.reason
}

func (c *ChangeOrderStatusCommand) setTenant(tenant actor.TenantContext) error {
	if err := tenant.Validate(); err != nil {
		return err
	}

	c.tenant = tenant
	return nil
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *ChangeOrderStatusCommand) setExpectedVersion(expectedVersion int) error {
	if expectedVersion < 1 {
		return errs.NewValueIsInvalidErrorWithCause("expectedVersion",
			fmt.Errorf("%d is not a valid version", expectedVersion))
	}

	c.expectedVersion = expectedVersion
	return nil
}
