package queries

import (
	"errors"
	"time"

	"orderhub/internal/core/domain/model/actor"
	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/pkg/guard"
)

var (
	ErrListActiveOrdersQueryIsNotConstructed = errors.New(
		"ListActiveOrdersQuery must be created via NewListActiveOrdersQuery constructor",
	)
)

// ListActiveOrdersQuery retrieves the restaurant's open orders for the
// kitchen and expo boards. Active means every non-terminal status; an
// optional status filter narrows the board to one column.
//
// Example:
//
//	query, err := NewListActiveOrdersQuery(tenant, order.Unknown)
//	if err != nil {
//	    return err
//	}
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list orders: %w", err)
//	}
//
//	fmt.Printf("%d open orders\n", len(orders))
type ListActiveOrdersQuery struct {
	tenant actor.TenantContext
	status order.Status

	guard guard.ConstructorGuard
}

// NewListActiveOrdersQuery creates a tenant-scoped active orders query.
// Pass order.Unknown as status to list all non-terminal orders; a concrete
// status restricts the result to that status.
func NewListActiveOrdersQuery(tenant actor.TenantContext, status order.Status) (ListActiveOrdersQuery, error) {
	if err := tenant.Validate(); err != nil {
		return ListActiveOrdersQuery{}, err
	}
	if status != order.Unknown {
		if err := status.Validate(); err != nil {
			return ListActiveOrdersQuery{}, err
		}
	}

	return ListActiveOrdersQuery{
		tenant: tenant,
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrListActiveOrdersQueryIsNotConstructed if validation fails.
func (q ListActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListActiveOrdersQueryIsNotConstructed)
}

// Tenant returns the resolved tenant context.
func (q ListActiveOrdersQuery) Tenant() actor.TenantContext {
	return q.tenant
}

// Status returns the status filter, or order.Unknown when unfiltered.
func (q ListActiveOrdersQuery) Status() order.Status {
	return q.status
}

// ListActiveOrdersQueryResponse is one row of the active orders board.
// Line item detail is omitted; boards drill into GetOrderQuery when a card
// is opened.
type ListActiveOrdersQueryResponse struct {
	ID          kernel.UUID
	OrderNumber string
	Channel     string
	Status      string
	TableNumber string
	Total       int64
	ItemCount   int
	CreatedAt   time.Time
}
