package ports

import (
	"context"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/restaurant"
)

// RestaurantRepository defines the persistence contract for restaurant
// aggregates. Restaurants are reference data from the order core's point
// of view; only lookups are exposed. Submission uses the lookup to confirm
// the resolved tenant still exists, since token claims can outlive it.
type RestaurantRepository interface {
	// Get retrieves a restaurant by its unique identifier.
	// Returns ObjectNotFoundError when no such restaurant exists.
	Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error)
}
