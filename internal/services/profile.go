package services

import (
	"context"
	"strings"
	"time"

	"github.com/sbilibin2017/eduai-platform/internal/logger"
	"github.com/sbilibin2017/eduai-platform/internal/models"
)

// ProfileSync keeps the hosted profile table in step with hosted identities.
type ProfileSync struct {
	backend SessionBackend
	now     func() time.Time
}

func NewProfileSync(backend SessionBackend) *ProfileSync {
	return &ProfileSync{backend: backend, now: time.Now}
}

// ProfileFromIdentity builds the profile of a hosted identity.
// existing may be nil; role is used only when existing has none.
func ProfileFromIdentity(id models.HostedIdentity, existing *models.User, role models.Role) models.User {
	u := models.User{
		ID:        id.ID,
		Email:     strings.ToLower(strings.TrimSpace(id.Email)),
		Name:      strings.TrimSpace(id.Name),
		AvatarURL: id.AvatarURL,
		Provider:  id.Provider,
	}
	if u.Provider == "" {
		u.Provider = models.ProviderHosted
	}

	if existing != nil {
		u.CreatedAt = existing.CreatedAt
		u.Role = existing.Role
		if u.Name == "" {
			u.Name = existing.Name
		}
		if u.AvatarURL == "" {
			u.AvatarURL = existing.AvatarURL
		}
	}
	if u.Name == "" {
		u.Name = localPart(u.Email)
	}
	if !u.Role.Valid() {
		u.Role = role
	}
	if !u.Role.Valid() {
		u.Role = models.RoleStudent
	}
	return u
}

func localPart(email string) string {
	if i := strings.IndexByte(email, '@'); i >= 0 {
		return email[:i]
	}
	return email
}

// SyncIdentity upserts the profile of a freshly authenticated hosted identity.
func (p *ProfileSync) SyncIdentity(ctx context.Context, id models.HostedIdentity, role models.Role) (*models.User, error) {
	existing, err := p.backend.GetProfile(ctx, id.ID)
	if err != nil {
		logger.Log.Errorw("failed to read profile for sync", "user_id", id.ID, "error", err)
		return nil, err
	}

	u := ProfileFromIdentity(id, existing, role)
	if existing == nil {
		u.CreatedAt = p.now().UTC()
	}

	saved, err := p.backend.SaveProfile(ctx, &u)
	if err != nil {
		logger.Log.Errorw("failed to upsert profile", "user_id", id.ID, "error", err)
		return nil, err
	}
	return saved, nil
}
