package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngredient_Stock(t *testing.T) {
	tenantID := uuid.New()

	newIngredient := func(t *testing.T) *Ingredient {
		t.Helper()
		ingredient, err := NewIngredient(tenantID, "Mussarela", nil)
		require.NoError(t, err)
		return ingredient
	}

	t.Run("increase adds to counter", func(t *testing.T) {
		ingredient := newIngredient(t)

		require.NoError(t, ingredient.IncreaseStock(decimal.NewFromFloat(2.5)))
		assert.True(t, ingredient.CurrentStock.Equal(decimal.NewFromFloat(2.5)))
	})

	t.Run("decrease below zero rejected", func(t *testing.T) {
		ingredient := newIngredient(t)
		require.NoError(t, ingredient.IncreaseStock(decimal.NewFromInt(1)))

		err := ingredient.DecreaseStock(decimal.NewFromInt(2))
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.True(t, ingredient.CurrentStock.Equal(decimal.NewFromInt(1)), "counter must be untouched on failure")
	})

	t.Run("decrease to exactly zero allowed", func(t *testing.T) {
		ingredient := newIngredient(t)
		require.NoError(t, ingredient.IncreaseStock(decimal.NewFromInt(3)))

		require.NoError(t, ingredient.DecreaseStock(decimal.NewFromInt(3)))
		assert.True(t, ingredient.CurrentStock.IsZero())
	})

	t.Run("rejects non-positive quantities", func(t *testing.T) {
		ingredient := newIngredient(t)

		assert.Error(t, ingredient.IncreaseStock(decimal.Zero))
		assert.Error(t, ingredient.DecreaseStock(decimal.NewFromInt(-1)))
	})

	t.Run("adjust sets absolute value", func(t *testing.T) {
		ingredient := newIngredient(t)

		require.NoError(t, ingredient.AdjustStock(decimal.NewFromFloat(10.75)))
		assert.True(t, ingredient.CurrentStock.Equal(decimal.NewFromFloat(10.75)))

		assert.Error(t, ingredient.AdjustStock(decimal.NewFromInt(-1)))
	})

	t.Run("below minimum detection", func(t *testing.T) {
		ingredient := newIngredient(t)
		require.NoError(t, ingredient.Update("Mussarela", nil, decimal.NewFromInt(5)))
		require.NoError(t, ingredient.IncreaseStock(decimal.NewFromInt(3)))

		assert.True(t, ingredient.IsBelowMinimum())

		require.NoError(t, ingredient.IncreaseStock(decimal.NewFromInt(10)))
		assert.False(t, ingredient.IsBelowMinimum())
	})

	t.Run("no minimum means never below", func(t *testing.T) {
		ingredient := newIngredient(t)
		assert.False(t, ingredient.IsBelowMinimum())
	})

	t.Run("stock changes bump version", func(t *testing.T) {
		ingredient := newIngredient(t)
		version := ingredient.GetVersion()

		require.NoError(t, ingredient.IncreaseStock(decimal.NewFromInt(1)))
		assert.Equal(t, version+1, ingredient.GetVersion())
	})
}

func TestStockMovement(t *testing.T) {
	tenantID := uuid.New()

	t.Run("product movement carries target and balances", func(t *testing.T) {
		productID := uuid.New()

		movement, err := NewProductMovement(tenantID, productID, MovementOut,
			decimal.NewFromInt(2), decimal.NewFromInt(10), decimal.NewFromInt(8),
			"order fulfillment", SourceOrder, "ORD-42")
		require.NoError(t, err)

		assert.Equal(t, TargetProduct, movement.Target)
		require.NotNil(t, movement.ProductID)
		assert.Equal(t, productID, *movement.ProductID)
		assert.Nil(t, movement.IngredientID)
		assert.True(t, movement.BalanceBefore.Equal(decimal.NewFromInt(10)))
		assert.True(t, movement.BalanceAfter.Equal(decimal.NewFromInt(8)))
		assert.Equal(t, SourceOrder, movement.SourceType)
		assert.Equal(t, "ORD-42", movement.SourceRef)
	})

	t.Run("ingredient movement", func(t *testing.T) {
		ingredientID := uuid.New()

		movement, err := NewIngredientMovement(tenantID, ingredientID, MovementIn,
			decimal.NewFromFloat(1.5), decimal.Zero, decimal.NewFromFloat(1.5),
			"", SourcePurchase, "NF-1001")
		require.NoError(t, err)

		assert.Equal(t, TargetIngredient, movement.Target)
		require.NotNil(t, movement.IngredientID)
		assert.Equal(t, ingredientID, *movement.IngredientID)
		assert.Nil(t, movement.ProductID)
	})

	t.Run("rejects invalid direction", func(t *testing.T) {
		_, err := NewProductMovement(tenantID, uuid.New(), MovementDirection("sideways"),
			decimal.NewFromInt(1), decimal.Zero, decimal.NewFromInt(1), "", SourceManual, "")
		assert.Error(t, err)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewIngredientMovement(tenantID, uuid.New(), MovementIn,
			decimal.Zero, decimal.Zero, decimal.Zero, "", SourceManual, "")
		assert.Error(t, err)
	})

	t.Run("empty source type defaults to manual", func(t *testing.T) {
		movement, err := NewProductMovement(tenantID, uuid.New(), MovementAdjustment,
			decimal.NewFromInt(1), decimal.NewFromInt(5), decimal.NewFromInt(6), "recount", "", "")
		require.NoError(t, err)
		assert.Equal(t, SourceManual, movement.SourceType)
	})
}
