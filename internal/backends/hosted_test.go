package backends

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/eduai-platform/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestHostedBackend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	users := NewMockUserStore(ctrl)
	progress := NewMockProgressStore(ctrl)
	usage := NewMockUsageStore(ctrl)
	b := NewHostedBackend(users, progress, usage)

	t.Run("profile delegates to users table", func(t *testing.T) {
		u := &models.User{ID: "u1", Name: "X"}
		users.EXPECT().Upsert(ctx, u).Return(u, nil)
		users.EXPECT().GetByID(ctx, "u1").Return(u, nil)

		saved, err := b.SaveProfile(ctx, u)
		assert.NoError(t, err)
		got, err := b.GetProfile(ctx, "u1")
		assert.NoError(t, err)
		assert.Equal(t, saved, got)
	})

	t.Run("usage appends with retention cap", func(t *testing.T) {
		usage.EXPECT().Append(ctx, "u1", models.ToolNoteSummarizer, gomock.Nil(), models.UsageRetention).
			Return(&models.UsageSession{ID: 1}, nil)

		s, err := b.AppendUsage(ctx, "u1", models.ToolNoteSummarizer, nil)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), s.ID)
	})

	t.Run("completion errors propagate", func(t *testing.T) {
		progress.EXPECT().Insert(ctx, "u1", 2).Return(false, errors.New("db down"))

		_, err := b.AddCompletion(ctx, "u1", 2)
		assert.EqualError(t, err, "db down")
	})

	t.Run("forget keeps hosted records", func(t *testing.T) {
		assert.NoError(t, b.Forget(ctx, "u1"))
	})
}
