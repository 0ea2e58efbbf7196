package actor_test

import (
	"testing"

	"orderhub/internal/core/domain/model/actor"
	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewActor(t *testing.T) {
	tenantA := kernel.NewUUID()

	t.Run("should create actor with verified claims", func(t *testing.T) {
		a, err := actor.NewActor(kernel.NewUUID(), actor.Staff, []kernel.UUID{tenantA}, "register 1")

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.Equal(t, actor.Staff, a.Role())
		assert.Equal(t, "register 1", a.DisplayTag())
	})

	t.Run("should fail without tenant membership", func(t *testing.T) {
		_, err := actor.NewActor(kernel.NewUUID(), actor.Staff, nil, "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail with unknown role", func(t *testing.T) {
		_, err := actor.NewActor(kernel.NewUUID(), actor.UnknownRole, []kernel.UUID{tenantA}, "")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestActor_ResolveTenant(t *testing.T) {
	tenantA := kernel.NewUUID()
	tenantB := kernel.NewUUID()

	newActor := func(t *testing.T, tenants ...kernel.UUID) actor.Actor {
		t.Helper()
		a, err := actor.NewActor(kernel.NewUUID(), actor.Manager, tenants, "")
		require.NoError(t, err)
		return a
	}

	t.Run("resolves a permitted tenant", func(t *testing.T) {
		a := newActor(t, tenantA, tenantB)

		tc, err := a.ResolveTenant(tenantA)

		require.NoError(t, err)
		require.NoError(t, tc.Validate())
		assert.True(t, tc.RestaurantID().IsEqual(tenantA))
	})

	t.Run("rejects a tenant outside the permitted set", func(t *testing.T) {
		a := newActor(t, tenantA)

		_, err := a.ResolveTenant(tenantB)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrTenantMismatch)
		// The rejection must not leak the claimed id.
		assert.NotContains(t, err.Error(), tenantB.String())
	})

	t.Run("zero value context fails validation", func(t *testing.T) {
		var tc actor.TenantContext

		assert.Equal(t, actor.ErrTenantContextIsNotConstructed, tc.Validate())
	})

	t.Run("zero value actor cannot resolve", func(t *testing.T) {
		var a actor.Actor

		_, err := a.ResolveTenant(tenantA)

		require.Error(t, err)
	})
}

func TestRole_Scopes(t *testing.T) {
	t.Run("submission scope", func(t *testing.T) {
		assert.True(t, actor.Staff.CanSubmitOrders())
		assert.True(t, actor.Kiosk.CanSubmitOrders())
		assert.True(t, actor.VoiceAgent.CanSubmitOrders())
		assert.False(t, actor.Kitchen.CanSubmitOrders())
		assert.False(t, actor.Expo.CanSubmitOrders())
	})

	t.Run("kitchen may only acknowledge and mark ready", func(t *testing.T) {
		assert.True(t, actor.Kitchen.CanTransitionTo(order.Preparing))
		assert.True(t, actor.Kitchen.CanTransitionTo(order.Ready))
		assert.False(t, actor.Kitchen.CanTransitionTo(order.Cancelled))
		assert.False(t, actor.Kitchen.CanTransitionTo(order.Completed))
	})

	t.Run("expo may only complete", func(t *testing.T) {
		assert.True(t, actor.Expo.CanTransitionTo(order.Completed))
		assert.False(t, actor.Expo.CanTransitionTo(order.Ready))
	})

	t.Run("cancellation scope is staff and manager only", func(t *testing.T) {
		assert.True(t, actor.Manager.CanTransitionTo(order.Cancelled))
		assert.True(t, actor.Staff.CanTransitionTo(order.Cancelled))
		assert.False(t, actor.Kiosk.CanTransitionTo(order.Cancelled))
		assert.False(t, actor.VoiceAgent.CanTransitionTo(order.Cancelled))
	})

	t.Run("role parsing", func(t *testing.T) {
		r, err := actor.RoleFromString("kitchen")

		require.NoError(t, err)
		assert.Equal(t, actor.Kitchen, r)

		_, err = actor.RoleFromString("admin")
		require.Error(t, err)
	})
}
