package backends

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sbilibin2017/eduai-platform/internal/logger"
	"github.com/sbilibin2017/eduai-platform/internal/models"
	"github.com/sbilibin2017/eduai-platform/internal/repositories"
)

// KeyValueStore is the device-local persistent storage.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// LocalBackend keeps profiles and ledgers as JSON documents in a key-value store.
// Writes are read-modify-write without locking: two concurrent appends for the
// same user may lose one of them.
type LocalBackend struct {
	kv  KeyValueStore
	now func() time.Time
}

func NewLocalBackend(kv KeyValueStore) *LocalBackend {
	return &LocalBackend{kv: kv, now: time.Now}
}

func userKey(userID string) string     { return "user:" + userID }
func progressKey(userID string) string { return "progress:" + userID }
func sessionsKey(userID string) string { return "sessions:" + userID }

func (b *LocalBackend) load(ctx context.Context, key string, out any) (bool, error) {
	raw, err := b.kv.Get(ctx, key)
	if errors.Is(err, repositories.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, err
	}
	return true, nil
}

func (b *LocalBackend) save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return b.kv.Set(ctx, key, string(raw))
}

// GetProfile returns the stored profile or nil.
func (b *LocalBackend) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	var u models.User
	found, err := b.load(ctx, userKey(userID), &u)
	if err != nil || !found {
		return nil, err
	}
	return &u, nil
}

// SaveProfile stores u. Saving an identical profile leaves the stored record untouched.
func (b *LocalBackend) SaveProfile(ctx context.Context, u *models.User) (*models.User, error) {
	existing, err := b.GetProfile(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	saved := *u
	now := b.now().UTC()
	if existing != nil {
		saved.CreatedAt = existing.CreatedAt
		if sameProfile(*existing, saved) {
			return existing, nil
		}
	} else if saved.CreatedAt.IsZero() {
		saved.CreatedAt = now
	}
	saved.UpdatedAt = now

	if err := b.save(ctx, userKey(u.ID), saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func sameProfile(a, b models.User) bool {
	return a.Email == b.Email && a.Name == b.Name && a.Role == b.Role &&
		a.Provider == b.Provider && a.AvatarURL == b.AvatarURL
}

// AddCompletion adds the pair unless present. It reports whether it was added.
func (b *LocalBackend) AddCompletion(ctx context.Context, userID string, tutorialID int) (bool, error) {
	var completions []models.Completion
	if _, err := b.load(ctx, progressKey(userID), &completions); err != nil {
		return false, err
	}
	for _, c := range completions {
		if c.TutorialID == tutorialID {
			return false, nil
		}
	}

	completions = append(completions, models.Completion{
		UserID:      userID,
		TutorialID:  tutorialID,
		CompletedAt: b.now().UTC(),
	})
	if err := b.save(ctx, progressKey(userID), completions); err != nil {
		return false, err
	}
	return true, nil
}

// Completions returns the user's completions, newest first.
func (b *LocalBackend) Completions(ctx context.Context, userID string) ([]models.Completion, error) {
	var stored []models.Completion
	if _, err := b.load(ctx, progressKey(userID), &stored); err != nil {
		return nil, err
	}
	out := make([]models.Completion, len(stored))
	for i, c := range stored {
		out[len(stored)-1-i] = c
	}
	return out, nil
}

// AppendUsage appends an event and evicts the oldest beyond models.UsageRetention.
func (b *LocalBackend) AppendUsage(ctx context.Context, userID, tool string, data map[string]any) (*models.UsageSession, error) {
	var stored []models.UsageSession
	if _, err := b.load(ctx, sessionsKey(userID), &stored); err != nil {
		return nil, err
	}

	var nextID int64 = 1
	if len(stored) > 0 {
		nextID = stored[len(stored)-1].ID + 1
	}
	if data == nil {
		data = map[string]any{}
	}
	s := models.UsageSession{
		ID:          nextID,
		UserID:      userID,
		Tool:        tool,
		SessionData: data,
		CreatedAt:   b.now().UTC(),
	}

	stored = append(stored, s)
	if over := len(stored) - models.UsageRetention; over > 0 {
		stored = stored[over:]
		logger.Log.Debugw("usage log trimmed", "user_id", userID, "evicted", over)
	}

	if err := b.save(ctx, sessionsKey(userID), stored); err != nil {
		return nil, err
	}
	return &s, nil
}

// Usage returns the retained events, newest first.
func (b *LocalBackend) Usage(ctx context.Context, userID string) ([]models.UsageSession, error) {
	var stored []models.UsageSession
	if _, err := b.load(ctx, sessionsKey(userID), &stored); err != nil {
		return nil, err
	}
	out := make([]models.UsageSession, len(stored))
	for i, s := range stored {
		out[len(stored)-1-i] = s
	}
	return out, nil
}

// Forget deletes everything stored for the user.
func (b *LocalBackend) Forget(ctx context.Context, userID string) error {
	return b.kv.Delete(ctx, userKey(userID), progressKey(userID), sessionsKey(userID))
}
