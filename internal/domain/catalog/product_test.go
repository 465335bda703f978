package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates product successfully", func(t *testing.T) {
		product, err := NewProduct(tenantID, "pzz-001", "Pizza Margherita", decimal.NewFromFloat(39.9))

		require.NoError(t, err)
		assert.Equal(t, "PZZ-001", product.Code)
		assert.Equal(t, "Pizza Margherita", product.Name)
		assert.Equal(t, ProductStatusActive, product.Status)
		assert.Equal(t, tenantID, product.TenantID)
		assert.True(t, product.CurrentStock.IsZero())
		assert.False(t, product.Ingredient.IsSet())
		assert.Len(t, product.GetDomainEvents(), 1)
	})

	t.Run("fails with empty code", func(t *testing.T) {
		product, err := NewProduct(tenantID, "", "Pizza", decimal.NewFromInt(10))

		assert.Error(t, err)
		assert.Nil(t, product)
	})

	t.Run("fails with negative price", func(t *testing.T) {
		product, err := NewProduct(tenantID, "PZZ-001", "Pizza", decimal.NewFromInt(-1))

		assert.Error(t, err)
		assert.Nil(t, product)
	})
}

func TestProduct_LinkIngredient(t *testing.T) {
	tenantID := uuid.New()

	t.Run("links ingredient with ratio", func(t *testing.T) {
		product, err := NewProduct(tenantID, "PZZ-001", "Pizza", decimal.NewFromInt(30))
		require.NoError(t, err)

		ingredientID := uuid.New()
		err = product.LinkIngredient(ingredientID, decimal.NewFromInt(2), true)

		require.NoError(t, err)
		require.True(t, product.Ingredient.IsSet())
		assert.Equal(t, ingredientID, *product.Ingredient.IngredientID)
		assert.True(t, product.Ingredient.Ratio.Equal(decimal.NewFromInt(2)))
		assert.True(t, product.Ingredient.AutoDeduct)
	})

	t.Run("rejects non-positive ratio", func(t *testing.T) {
		product, err := NewProduct(tenantID, "PZZ-001", "Pizza", decimal.NewFromInt(30))
		require.NoError(t, err)

		err = product.LinkIngredient(uuid.New(), decimal.Zero, true)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "must be positive")
	})

	t.Run("unlink resets the link", func(t *testing.T) {
		product, err := NewProduct(tenantID, "PZZ-001", "Pizza", decimal.NewFromInt(30))
		require.NoError(t, err)
		require.NoError(t, product.LinkIngredient(uuid.New(), decimal.NewFromInt(2), true))

		product.UnlinkIngredient()

		assert.False(t, product.Ingredient.IsSet())
		assert.False(t, product.Ingredient.AutoDeduct)
	})
}

func TestProduct_Stock(t *testing.T) {
	tenantID := uuid.New()

	t.Run("increase and decrease", func(t *testing.T) {
		product, err := NewProduct(tenantID, "PZZ-001", "Pizza", decimal.NewFromInt(30))
		require.NoError(t, err)

		require.NoError(t, product.IncreaseStock(decimal.NewFromInt(10)))
		require.NoError(t, product.DecreaseStock(decimal.NewFromInt(5)))

		assert.True(t, product.CurrentStock.Equal(decimal.NewFromInt(5)))
	})

	t.Run("decrease below zero is rejected", func(t *testing.T) {
		product, err := NewProduct(tenantID, "PZZ-001", "Pizza", decimal.NewFromInt(30))
		require.NoError(t, err)
		require.NoError(t, product.IncreaseStock(decimal.NewFromInt(3)))

		err = product.DecreaseStock(decimal.NewFromInt(5))

		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.True(t, product.CurrentStock.Equal(decimal.NewFromInt(3)))
	})

	t.Run("rejects non-positive quantities", func(t *testing.T) {
		product, err := NewProduct(tenantID, "PZZ-001", "Pizza", decimal.NewFromInt(30))
		require.NoError(t, err)

		assert.Error(t, product.IncreaseStock(decimal.Zero))
		assert.Error(t, product.DecreaseStock(decimal.NewFromInt(-1)))
	})

	t.Run("adjust replaces the counter", func(t *testing.T) {
		product, err := NewProduct(tenantID, "PZZ-001", "Pizza", decimal.NewFromInt(30))
		require.NoError(t, err)
		require.NoError(t, product.IncreaseStock(decimal.NewFromInt(10)))

		require.NoError(t, product.AdjustStock(decimal.NewFromInt(7)))

		assert.True(t, product.CurrentStock.Equal(decimal.NewFromInt(7)))
		assert.Error(t, product.AdjustStock(decimal.NewFromInt(-1)))
	})
}

func TestProduct_StatusToggle(t *testing.T) {
	product, err := NewProduct(uuid.New(), "PZZ-001", "Pizza", decimal.NewFromInt(30))
	require.NoError(t, err)

	product.Deactivate()
	assert.False(t, product.IsActive())

	product.Activate()
	assert.True(t, product.IsActive())

	// Re-activating an active product does not bump the version
	version := product.Version
	product.Activate()
	assert.Equal(t, version, product.Version)
}
