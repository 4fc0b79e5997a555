package backends

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sbilibin2017/eduai-platform/internal/models"
	"github.com/sbilibin2017/eduai-platform/internal/repositories"
	"github.com/stretchr/testify/assert"
)

func newTestLocal() (*LocalBackend, *repositories.MemoryStore) {
	kv := repositories.NewMemoryStore()
	b := NewLocalBackend(kv)
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return b, kv
}

func TestLocalBackend_Profile(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestLocal()

	got, err := b.GetProfile(ctx, "u1")
	assert.NoError(t, err)
	assert.Nil(t, got)

	saved, err := b.SaveProfile(ctx, &models.User{ID: "u1", Email: "a@b.com", Name: "A", Role: models.RoleStudent, Provider: models.ProviderDemo})
	assert.NoError(t, err)
	assert.False(t, saved.CreatedAt.IsZero())

	again, err := b.SaveProfile(ctx, &models.User{ID: "u1", Email: "a@b.com", Name: "A", Role: models.RoleStudent, Provider: models.ProviderDemo})
	assert.NoError(t, err)
	assert.Equal(t, saved.UpdatedAt, again.UpdatedAt, "identical save must not touch the record")

	renamed, err := b.SaveProfile(ctx, &models.User{ID: "u1", Email: "a@b.com", Name: "X", Role: models.RoleStudent, Provider: models.ProviderDemo})
	assert.NoError(t, err)
	assert.Equal(t, saved.CreatedAt, renamed.CreatedAt)
	assert.True(t, renamed.UpdatedAt.After(saved.UpdatedAt))

	got, err = b.GetProfile(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, "X", got.Name)
}

func TestLocalBackend_AddCompletionIsIdempotent(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestLocal()

	added, err := b.AddCompletion(ctx, "u1", 3)
	assert.NoError(t, err)
	assert.True(t, added)

	added, err = b.AddCompletion(ctx, "u1", 3)
	assert.NoError(t, err)
	assert.False(t, added)

	_, _ = b.AddCompletion(ctx, "u1", 5)

	list, err := b.Completions(ctx, "u1")
	assert.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, 5, list[0].TutorialID, "newest first")

	other, err := b.Completions(ctx, "u2")
	assert.NoError(t, err)
	assert.Empty(t, other)
}

func TestLocalBackend_UsageRetention(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestLocal()

	for i := 1; i <= models.UsageRetention+1; i++ {
		_, err := b.AppendUsage(ctx, "u1", fmt.Sprintf("tool-%d", i), map[string]any{"n": i})
		assert.NoError(t, err)
	}

	list, err := b.Usage(ctx, "u1")
	assert.NoError(t, err)
	assert.Len(t, list, models.UsageRetention)
	assert.Equal(t, "tool-51", list[0].Tool, "newest is present")
	assert.Equal(t, "tool-2", list[len(list)-1].Tool, "oldest surviving entry")
	for _, s := range list {
		assert.NotEqual(t, "tool-1", s.Tool, "oldest entry is evicted")
	}
	assert.Equal(t, int64(51), list[0].ID)
}

func TestLocalBackend_Forget(t *testing.T) {
	ctx := context.Background()
	b, kv := newTestLocal()

	_, _ = b.SaveProfile(ctx, &models.User{ID: "u1", Email: "a@b.com"})
	_, _ = b.AddCompletion(ctx, "u1", 1)
	_, _ = b.AppendUsage(ctx, "u1", models.ToolQuizGenerator, nil)
	_, _ = b.AddCompletion(ctx, "u2", 1)

	assert.NoError(t, b.Forget(ctx, "u1"))
	assert.Equal(t, 1, kv.Len())

	list, err := b.Usage(ctx, "u1")
	assert.NoError(t, err)
	assert.Empty(t, list)
}

func TestLocalBackend_CorruptDocument(t *testing.T) {
	ctx := context.Background()
	b, kv := newTestLocal()

	_ = kv.Set(ctx, "progress:u1", "{not json")
	_, err := b.AddCompletion(ctx, "u1", 1)
	assert.Error(t, err)
}
