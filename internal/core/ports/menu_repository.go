// Package ports defines the outbound contracts of the order core. These
// interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/menu"
)

// MenuRepository is the read-only lookup contract for the catalog. The
// order core validates submissions against catalog items but never
// mutates them; catalog ownership lives with a separate service whose
// data is replicated into the read model this repository serves.
type MenuRepository interface {
	// GetItems retrieves the catalog items with the given ids belonging to
	// the restaurant. Ids that do not exist, or exist under another
	// restaurant, are simply absent from the result; the caller decides
	// how to report the gap.
	GetItems(ctx context.Context, restaurantID kernel.UUID, ids []kernel.UUID) ([]*menu.Item, error)
}
