package storage

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryImageStorage(t *testing.T) {
	t.Run("stores and serves objects", func(t *testing.T) {
		store := NewMemoryImageStorage("http://localhost:9000/media")
		payload := []byte{0xFF, 0xD8, 0xFF, 0xE0}

		err := store.Put(context.Background(), "products/pizza.jpg", "image/jpeg", bytes.NewReader(payload), int64(len(payload)))
		require.NoError(t, err)

		data, ok := store.Get("products/pizza.jpg")
		assert.True(t, ok)
		assert.Equal(t, payload, data)

		url, err := store.URL(context.Background(), "products/pizza.jpg")
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9000/media/products/pizza.jpg", url)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		store := NewMemoryImageStorage("http://localhost:9000/media")

		require.NoError(t, store.Delete(context.Background(), "products/missing.jpg"))

		err := store.Put(context.Background(), "products/a.jpg", "image/jpeg", bytes.NewReader([]byte{1}), 1)
		require.NoError(t, err)
		require.NoError(t, store.Delete(context.Background(), "products/a.jpg"))

		_, ok := store.Get("products/a.jpg")
		assert.False(t, ok)
	})
}
