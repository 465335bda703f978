package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewComplementGroup(t *testing.T) {
	tenantID := uuid.New()
	productID := uuid.New()

	t.Run("creates group successfully", func(t *testing.T) {
		group, err := NewComplementGroup(tenantID, productID, "Extras", 0, 3, false)

		require.NoError(t, err)
		assert.Equal(t, "Extras", group.Name)
		assert.Equal(t, 0, group.MinSelection)
		assert.Equal(t, 3, group.MaxSelection)
		assert.True(t, group.Active)
		assert.Empty(t, group.Items)
	})

	t.Run("fails when max below min", func(t *testing.T) {
		group, err := NewComplementGroup(tenantID, productID, "Extras", 2, 1, false)

		assert.Error(t, err)
		assert.Nil(t, group)
	})

	t.Run("fails with empty product", func(t *testing.T) {
		group, err := NewComplementGroup(tenantID, uuid.Nil, "Extras", 0, 1, false)

		assert.Error(t, err)
		assert.Nil(t, group)
	})
}

func TestComplementGroup_Items(t *testing.T) {
	newGroup := func(t *testing.T) *ComplementGroup {
		group, err := NewComplementGroup(uuid.New(), uuid.New(), "Extras", 0, 3, false)
		require.NoError(t, err)
		return group
	}

	t.Run("add item", func(t *testing.T) {
		group := newGroup(t)

		item, err := group.AddItem("Bacon", decimal.NewFromFloat(4.5))

		require.NoError(t, err)
		assert.Equal(t, "Bacon", item.Name)
		assert.Equal(t, group.ID, item.GroupID)
		assert.Len(t, group.Items, 1)
	})

	t.Run("duplicate item name is rejected", func(t *testing.T) {
		group := newGroup(t)
		_, err := group.AddItem("Bacon", decimal.NewFromInt(4))
		require.NoError(t, err)

		_, err = group.AddItem("bacon", decimal.NewFromInt(5))

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("update item", func(t *testing.T) {
		group := newGroup(t)
		item, err := group.AddItem("Bacon", decimal.NewFromInt(4))
		require.NoError(t, err)

		err = group.UpdateItem(item.ID, "Bacon Duplo", decimal.NewFromInt(7))

		require.NoError(t, err)
		assert.Equal(t, "Bacon Duplo", group.Items[0].Name)
		assert.True(t, group.Items[0].Price.Equal(decimal.NewFromInt(7)))
	})

	t.Run("toggle item hides it from active list", func(t *testing.T) {
		group := newGroup(t)
		item, err := group.AddItem("Bacon", decimal.NewFromInt(4))
		require.NoError(t, err)
		_, err = group.AddItem("Cheddar", decimal.NewFromInt(3))
		require.NoError(t, err)

		require.NoError(t, group.ToggleItem(item.ID))

		active := group.ActiveItems()
		require.Len(t, active, 1)
		assert.Equal(t, "Cheddar", active[0].Name)
	})

	t.Run("unknown item returns not found", func(t *testing.T) {
		group := newGroup(t)

		err := group.ToggleItem(uuid.New())

		assert.Error(t, err)
	})
}
