package ports

import (
	"context"
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Every read is scoped by restaurant id: there is no lookup by order id
// alone, so a handler cannot accidentally cross tenants.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate using
	// optimistic concurrency. The write is conditioned on the version the
	// aggregate was read at; if another writer got there first, Update
	// returns a ConcurrentModificationError and persists nothing.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by id within the given restaurant.
	// Returns ObjectNotFoundError when the order does not exist or belongs
	// to a different restaurant; the two cases are indistinguishable to
	// the caller.
	Get(ctx context.Context, restaurantID kernel.UUID, id kernel.UUID) (*order.Order, error)

	// GetAllActive retrieves the restaurant's orders that are not in a
	// terminal status, ordered by creation time.
	GetAllActive(ctx context.Context, restaurantID kernel.UUID) ([]*order.Order, error)

	// GetStalePending retrieves orders across all restaurants that are
	// still Pending and were created before the cutoff. Used by the
	// timeout sweep to fail orders whose payment authorization never
	// concluded.
	GetStalePending(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
