package kernel_test

import (
	"testing"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney_Arithmetic(t *testing.T) {
	t.Run("should add amounts exactly", func(t *testing.T) {
		subtotal := kernel.NewMoney(1100)
		tax := kernel.NewMoney(88)
		tip := kernel.NewMoney(0)

		total := subtotal.Add(tax).Add(tip)

		assert.Equal(t, int64(1188), total.Amount())
	})

	t.Run("should multiply by quantity", func(t *testing.T) {
		unit := kernel.NewMoney(500)

		line := unit.MultiplyBy(2).Add(kernel.NewMoney(100))

		assert.Equal(t, int64(1100), line.Amount())
	})

	t.Run("zero value is a valid zero amount", func(t *testing.T) {
		var m kernel.Money

		assert.Equal(t, int64(0), m.Amount())
		require.NoError(t, m.ValidateNonNegative("tip"))
	})
}

func TestMoney_IsEqual(t *testing.T) {
	t.Run("exact integer equality", func(t *testing.T) {
		assert.True(t, kernel.NewMoney(1188).IsEqual(kernel.NewMoney(1188)))
		assert.False(t, kernel.NewMoney(1188).IsEqual(kernel.NewMoney(1187)))
	})
}

func TestMoney_ValidateNonNegative(t *testing.T) {
	t.Run("should reject negative amounts", func(t *testing.T) {
		err := kernel.NewMoney(-1).ValidateNonNegative("tax")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "tax")
		assert.Contains(t, err.Error(), "-1 is negative")
	})

	t.Run("should accept zero", func(t *testing.T) {
		require.NoError(t, kernel.NewMoney(0).ValidateNonNegative("tip"))
	})
}
