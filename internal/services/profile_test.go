package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/eduai-platform/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileFromIdentity(t *testing.T) {
	created := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		id       models.HostedIdentity
		existing *models.User
		role     models.Role
		want     models.User
	}{
		{
			name: "new identity defaults",
			id:   models.HostedIdentity{ID: "h1", Email: "Sam.Lee@Example.com"},
			want: models.User{ID: "h1", Email: "sam.lee@example.com", Name: "sam.lee", Role: models.RoleStudent, Provider: models.ProviderHosted},
		},
		{
			name: "metadata name and requested role",
			id:   models.HostedIdentity{ID: "h1", Email: "s@x.com", Name: "Sam", AvatarURL: "a.png", Provider: models.ProviderGitHub},
			role: models.RoleEducator,
			want: models.User{ID: "h1", Email: "s@x.com", Name: "Sam", AvatarURL: "a.png", Role: models.RoleEducator, Provider: models.ProviderGitHub},
		},
		{
			name:     "existing role and name kept",
			id:       models.HostedIdentity{ID: "h1", Email: "s@x.com"},
			existing: &models.User{ID: "h1", Name: "Samantha", Role: models.RoleResearcher, AvatarURL: "old.png", CreatedAt: created},
			role:     models.RoleStudent,
			want:     models.User{ID: "h1", Email: "s@x.com", Name: "Samantha", AvatarURL: "old.png", Role: models.RoleResearcher, Provider: models.ProviderHosted, CreatedAt: created},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProfileFromIdentity(tt.id, tt.existing, tt.role))
		})
	}
}

func TestProfileSync_SyncIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	backend := NewMockSessionBackend(ctrl)
	p := NewProfileSync(backend)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	p.now = func() time.Time { return now }

	backend.EXPECT().GetProfile(ctx, "h1").Return(nil, nil)
	backend.EXPECT().SaveProfile(ctx, &models.User{
		ID:        "h1",
		Email:     "s@x.com",
		Name:      "s",
		Role:      models.RoleStudent,
		Provider:  models.ProviderHosted,
		CreatedAt: now,
	}).DoAndReturn(func(_ context.Context, u *models.User) (*models.User, error) { return u, nil })

	u, err := p.SyncIdentity(ctx, models.HostedIdentity{ID: "h1", Email: "s@x.com"}, "")
	require.NoError(t, err)
	assert.Equal(t, "s", u.Name)

	dbErr := errors.New("db down")
	backend.EXPECT().GetProfile(ctx, "h2").Return(nil, dbErr)
	_, err = p.SyncIdentity(ctx, models.HostedIdentity{ID: "h2"}, "")
	assert.ErrorIs(t, err, dbErr)
}
