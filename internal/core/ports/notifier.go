package ports

import (
	"context"
	"time"

	"orderhub/internal/core/domain/model/kernel"
)

// OrderEvent describes one committed status change of an order. Events are
// published to the restaurant's own channel, so a subscriber sees only its
// tenant's traffic.
type OrderEvent struct {
	OrderID      kernel.UUID
	RestaurantID kernel.UUID
	OrderNumber  string
	FromStatus   string
	ToStatus     string
	Reason       string
	OccurredAt   time.Time
}

// Notifier is the real-time fan-out contract. Publication is
// fire-and-forget: it happens strictly after the state change is
// committed, and a delivery failure never rolls the change back. The
// persisted record is the source of truth; notifications are a hint to
// refresh.
type Notifier interface {
	// Publish sends the event to the owning restaurant's channel. Errors
	// are returned for logging only; callers must not fail the operation
	// on them.
	Publish(ctx context.Context, event OrderEvent) error

	// Subscribe streams the restaurant's events until the context is
	// cancelled. The returned channel is closed when the subscription
	// ends.
	Subscribe(ctx context.Context, restaurantID kernel.UUID) (<-chan OrderEvent, error)
}
