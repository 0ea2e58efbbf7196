package commands

import (
	"errors"
	"time"

	"orderhub/internal/pkg/guard"
)

var (
	ErrFailStaleOrdersCommandIsNotConstructed = errors.New(
		"FailStaleOrdersCommand must be created via NewFailStaleOrdersCommand constructor",
	)
	ErrMaxPendingAgeIsInvalid = errors.New("maxPendingAge must be greater than 0")
)

// FailStaleOrdersCommand represents a sweep request that fails orders
// stuck in Pending longer than the allowed age. Issued periodically by the
// background job; the sweep runs across all restaurants.
type FailStaleOrdersCommand struct { //nolint:recvcheck //using for validation
	maxPendingAge time.Duration

	guard guard.ConstructorGuard
}

// NewFailStaleOrdersCommand creates a sweep command.
// Validates that the allowed pending age is positive.
func NewFailStaleOrdersCommand(maxPendingAge time.Duration) (FailStaleOrdersCommand, error) {
	cmd := FailStaleOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setMaxPendingAge(maxPendingAge); err != nil {
		return FailStaleOrdersCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrFailStaleOrdersCommandIsNotConstructed if validation fails.
func (c FailStaleOrdersCommand) Validate() error {
	return c.guard.Validate(ErrFailStaleOrdersCommandIsNotConstructed)
}

// MaxPendingAge returns how long an order may stay Pending before the
// sweep fails it.
func (c FailStaleOrdersCommand) MaxPendingAge() time.Duration {
	return c.maxPendingAge
}

func (c *FailStaleOrdersCommand) setMaxPendingAge(maxPendingAge time.Duration) error {
	if maxPendingAge <= 0 {
		return ErrMaxPendingAgeIsInvalid
	}

	c.maxPendingAge = maxPendingAge
	return nil
}
