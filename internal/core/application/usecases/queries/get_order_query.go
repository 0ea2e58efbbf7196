package queries

import (
	"errors"
	"time"

	"orderhub/internal/core/domain/model/actor"
	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves one order with its full line item detail.
// The lookup is scoped to the resolved tenant: an order belonging to another
// restaurant is reported as not found.
//
// Example:
//
//	query, err := NewGetOrderQuery(tenant, orderID)
//	if err != nil {
//	    return err
//	}
//
//	order, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
//
//	fmt.Printf("Order %s is %s\n", order.OrderNumber, order.Status)
type GetOrderQuery struct {
	tenant  actor.TenantContext
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a tenant-scoped single order query.
func NewGetOrderQuery(tenant actor.TenantContext, orderID kernel.UUID) (GetOrderQuery, error) {
	if err := errors.Join(tenant.Validate(), orderID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		tenant:  tenant,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// Tenant returns the resolved tenant context.
func (q GetOrderQuery) Tenant() actor.TenantContext {
	return q.tenant
}

// OrderID returns the order identifier to look up.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the full read model of one order, including the
// immutable line item snapshots taken at submission time.
type GetOrderQueryResponse struct {
	ID              kernel.UUID
	OrderNumber     string
	Channel         string
	Status          string
	StatusReason    string
	TableNumber     string
	CustomerName    string
	DeliveryAddress string
	Subtotal        int64
	Tax             int64
	Tip             int64
	Total           int64
	Version         int
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Items           []OrderItemResponse
}

// OrderItemResponse is one line of an order as it was priced at submission.
type OrderItemResponse struct {
	ID                  kernel.UUID
	MenuItemID          kernel.UUID
	Name                string
	UnitPrice           int64
	Quantity            int
	SpecialInstructions string
	Modifiers           []OrderItemModifierResponse
	Total               int64
}

// OrderItemModifierResponse is one modifier applied to a line item.
type OrderItemModifierResponse struct {
	ModifierID kernel.UUID
	Name       string
	PriceDelta int64
}
