package services

import (
	"testing"

	"github.com/sbilibin2017/eduai-platform/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateLogin(t *testing.T) {
	tests := []struct {
		name      string
		creds     models.Credentials
		wantField string
	}{
		{name: "valid", creds: models.Credentials{Email: " Jane@Example.com ", Password: "x"}},
		{name: "missing email", creds: models.Credentials{Password: "x"}, wantField: "email"},
		{name: "bad email", creds: models.Credentials{Email: "jane", Password: "x"}, wantField: "email"},
		{name: "missing password", creds: models.Credentials{Email: "jane@example.com"}, wantField: "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLogin(tt.creds)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name    string
		creds   models.Credentials
		wantMsg string
	}{
		{
			name:  "valid",
			creds: models.Credentials{Email: "a@b.com", Password: "secret", Name: "A", Role: models.RoleEducator},
		},
		{
			name:  "role optional",
			creds: models.Credentials{Email: "a@b.com", Password: "secret", Name: "A"},
		},
		{
			name:    "short password",
			creds:   models.Credentials{Email: "a@b.com", Password: "short", Name: "A"},
			wantMsg: "Password must be at least 6 characters long",
		},
		{
			name:    "missing name",
			creds:   models.Credentials{Email: "a@b.com", Password: "secret", Name: "   "},
			wantMsg: "Name is required for registration",
		},
		{
			name:    "bad email",
			creds:   models.Credentials{Email: "a@", Password: "secret", Name: "A"},
			wantMsg: "Please enter a valid email address",
		},
		{
			name:    "bad role",
			creds:   models.Credentials{Email: "a@b.com", Password: "secret", Name: "A", Role: "admin"},
			wantMsg: "Role must be student, educator or researcher",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegistration(tt.creds)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantMsg, verr.Message)
		})
	}
}
