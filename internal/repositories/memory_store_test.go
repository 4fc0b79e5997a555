package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	assert.NoError(t, store.Set(ctx, "a", "1"))
	assert.NoError(t, store.Set(ctx, "b", "2"))

	v, err := store.Get(ctx, "a")
	assert.NoError(t, err)
	assert.Equal(t, "1", v)

	assert.NoError(t, store.Set(ctx, "a", "3"))
	v, _ = store.Get(ctx, "a")
	assert.Equal(t, "3", v)

	assert.NoError(t, store.Delete(ctx, "a", "missing"))
	_, err = store.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	assert.Equal(t, 1, store.Len())
}
