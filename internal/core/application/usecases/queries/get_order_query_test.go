package queries_test

import (
	"testing"

	"orderhub/internal/core/application/usecases/queries"
	"orderhub/internal/core/domain/model/actor"
	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryTenant(t *testing.T, restaurantID kernel.UUID) actor.TenantContext {
	t.Helper()

	principal, err := actor.NewActor(
		kernel.NewUUID(), actor.Manager, []kernel.UUID{restaurantID}, "front desk")
	require.NoError(t, err)

	tenant, err := principal.ResolveTenant(restaurantID)
	require.NoError(t, err)
	return tenant
}

func TestNewGetOrderQuery(t *testing.T) {
	restaurantID := kernel.NewUUID()

	t.Run("should create valid query", func(t *testing.T) {
		tenant := queryTenant(t, restaurantID)
		orderID := kernel.NewUUID()

		query, err := queries.NewGetOrderQuery(tenant, orderID)

		require.NoError(t, err)
		assert.NoError(t, query.Validate())
		assert.True(t, query.OrderID().IsEqual(orderID))
		assert.True(t, query.Tenant().RestaurantID().IsEqual(restaurantID))
	})

	t.Run("should reject unresolved tenant", func(t *testing.T) {
		_, err := queries.NewGetOrderQuery(actor.TenantContext{}, kernel.NewUUID())

		require.Error(t, err)
		assert.ErrorIs(t, err, actor.ErrTenantContextIsNotConstructed)
	})

	t.Run("should reject empty order id", func(t *testing.T) {
		tenant := queryTenant(t, restaurantID)

		_, err := queries.NewGetOrderQuery(tenant, kernel.UUID{})

		require.Error(t, err)
	})

	t.Run("should reject zero value query", func(t *testing.T) {
		var query queries.GetOrderQuery

		err := query.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
	})
}

func TestNewListActiveOrdersQuery(t *testing.T) {
	restaurantID := kernel.NewUUID()

	t.Run("should create unfiltered query", func(t *testing.T) {
		tenant := queryTenant(t, restaurantID)

		query, err := queries.NewListActiveOrdersQuery(tenant, order.Unknown)

		require.NoError(t, err)
		assert.NoError(t, query.Validate())
		assert.Equal(t, order.Unknown, query.Status())
	})

	t.Run("should create filtered query", func(t *testing.T) {
		tenant := queryTenant(t, restaurantID)

		query, err := queries.NewListActiveOrdersQuery(tenant, order.Preparing)

		require.NoError(t, err)
		assert.Equal(t, order.Preparing, query.Status())
	})

	t.Run("should reject unresolved tenant", func(t *testing.T) {
		_, err := queries.NewListActiveOrdersQuery(actor.TenantContext{}, order.Unknown)

		require.Error(t, err)
		assert.ErrorIs(t, err, actor.ErrTenantContextIsNotConstructed)
	})

	t.Run("should reject out of range status filter", func(t *testing.T) {
		tenant := queryTenant(t, restaurantID)

		_, err := queries.NewListActiveOrdersQuery(tenant, order.Status(99))

		require.Error(t, err)
	})

	t.Run("should reject zero value query", func(t *testing.T) {
		var query queries.ListActiveOrdersQuery

		err := query.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, queries.ErrListActiveOrdersQueryIsNotConstructed)
	})
}
