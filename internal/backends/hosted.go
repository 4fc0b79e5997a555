package backends

//go:generate mockgen -source=hosted.go -destination=mocks.go -package=backends

import (
	"context"

	"github.com/sbilibin2017/eduai-platform/internal/models"
)

// UserStore is the hosted users table.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	Upsert(ctx context.Context, u *models.User) (*models.User, error)
}

// ProgressStore is the hosted user_progress table.
type ProgressStore interface {
	Insert(ctx context.Context, userID string, tutorialID int) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]models.Completion, error)
}

// UsageStore is the hosted user_sessions table.
type UsageStore interface {
	Append(ctx context.Context, userID, tool string, data map[string]any, keep int) (*models.UsageSession, error)
	ListByUser(ctx context.Context, userID string) ([]models.UsageSession, error)
}

// HostedBackend persists profiles and ledgers in the hosted relational tables.
type HostedBackend struct {
	users    UserStore
	progress ProgressStore
	usage    UsageStore
}

func NewHostedBackend(users UserStore, progress ProgressStore, usage UsageStore) *HostedBackend {
	return &HostedBackend{users: users, progress: progress, usage: usage}
}

func (b *HostedBackend) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return b.users.GetByID(ctx, userID)
}

func (b *HostedBackend) SaveProfile(ctx context.Context, u *models.User) (*models.User, error) {
	return b.users.Upsert(ctx, u)
}

func (b *HostedBackend) AddCompletion(ctx context.Context, userID string, tutorialID int) (bool, error) {
	return b.progress.Insert(ctx, userID, tutorialID)
}

func (b *HostedBackend) Completions(ctx context.Context, userID string) ([]models.Completion, error) {
	return b.progress.ListByUser(ctx, userID)
}

func (b *HostedBackend) AppendUsage(ctx context.Context, userID, tool string, data map[string]any) (*models.UsageSession, error) {
	return b.usage.Append(ctx, userID, tool, data, models.UsageRetention)
}

func (b *HostedBackend) Usage(ctx context.Context, userID string) ([]models.UsageSession, error) {
	return b.usage.ListByUser(ctx, userID)
}

// Forget is a no-op: hosted records are never deleted on sign-out.
func (b *HostedBackend) Forget(ctx context.Context, userID string) error {
	return nil
}
