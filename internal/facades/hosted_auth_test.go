package facades

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/sbilibin2017/eduai-platform/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userJSON = `{"id":"u-1","email":"jane@example.com","user_metadata":{"full_name":"Jane Doe","avatar_url":"https://img/1.png"},"app_metadata":{"provider":"github"}}`

func newHostedServer(t *testing.T, handler http.HandlerFunc) (*HostedAuthFacade, func()) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "anon", r.Header.Get("apikey"))
		handler(w, r)
	}))
	f := NewHostedAuthFacade(HostedAuthConfig{BaseURL: srv.URL + "/", APIKey: "anon", RedirectURL: "https://app/callback"})
	return f, srv.Close
}

func TestHostedAuthFacade_SignInWithPassword(t *testing.T) {
	f, closeFn := newHostedServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "jane@example.com", body["email"])

		_, _ = w.Write([]byte(`{"access_token":"tok","user":` + userJSON + `}`))
	})
	defer closeFn()

	grant, err := f.SignInWithPassword(context.Background(), "jane@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "tok", grant.AccessToken)
	assert.Equal(t, models.HostedIdentity{
		ID:        "u-1",
		Email:     "jane@example.com",
		Name:      "Jane Doe",
		AvatarURL: "https://img/1.png",
		Provider:  models.ProviderGitHub,
	}, grant.Identity)
}

func TestHostedAuthFacade_ErrorBody(t *testing.T) {
	f, closeFn := newHostedServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid login credentials"}`))
	})
	defer closeFn()

	_, err := f.SignInWithPassword(context.Background(), "jane@example.com", "wrong")

	var herr *HostedAuthError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, http.StatusBadRequest, herr.StatusCode)
	assert.Equal(t, "invalid_grant", herr.Code)
	assert.Equal(t, "Invalid login credentials", herr.Message)
	assert.Contains(t, err.Error(), "Invalid login credentials")
}

func TestHostedAuthFacade_SignUp(t *testing.T) {
	t.Run("session returned", func(t *testing.T) {
		f, closeFn := newHostedServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/v1/signup", r.URL.Path)
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, map[string]any{"name": "Jane Doe"}, body["data"])
			_, _ = w.Write([]byte(`{"access_token":"tok","user":` + userJSON + `}`))
		})
		defer closeFn()

		grant, err := f.SignUp(context.Background(), "jane@example.com", "secret1", map[string]any{"name": "Jane Doe"})
		require.NoError(t, err)
		assert.Equal(t, "tok", grant.AccessToken)
		assert.Equal(t, "u-1", grant.Identity.ID)
	})

	t.Run("confirmation required", func(t *testing.T) {
		f, closeFn := newHostedServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(userJSON))
		})
		defer closeFn()

		grant, err := f.SignUp(context.Background(), "jane@example.com", "secret1", nil)
		require.NoError(t, err)
		assert.Empty(t, grant.AccessToken)
		assert.Equal(t, "u-1", grant.Identity.ID)
	})
}

func TestHostedAuthFacade_AuthorizeURL(t *testing.T) {
	f := NewHostedAuthFacade(HostedAuthConfig{BaseURL: "https://auth.example.com", RedirectURL: "https://app/callback"})

	raw, err := f.AuthorizeURL(models.ProviderGoogle, "st", "ch")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/auth/v1/authorize", u.Path)
	assert.Equal(t, "google", u.Query().Get("provider"))
	assert.Equal(t, "st", u.Query().Get("state"))
	assert.Equal(t, "ch", u.Query().Get("code_challenge"))
	assert.Equal(t, "s256", u.Query().Get("code_challenge_method"))
	assert.Equal(t, "https://app/callback", u.Query().Get("redirect_to"))

	_, err = f.AuthorizeURL(models.ProviderDemo, "st", "ch")
	assert.Error(t, err)
}

func TestHostedAuthFacade_ExchangeCode(t *testing.T) {
	f, closeFn := newHostedServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pkce", r.URL.Query().Get("grant_type"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "code-1", body["auth_code"])
		assert.Equal(t, "verifier", body["code_verifier"])
		_, _ = w.Write([]byte(`{"access_token":"tok","user":` + userJSON + `}`))
	})
	defer closeFn()

	grant, err := f.ExchangeCode(context.Background(), "code-1", "verifier")
	require.NoError(t, err)
	assert.Equal(t, "tok", grant.AccessToken)
}

func TestHostedAuthFacade_GetUserAndSignOut(t *testing.T) {
	f, closeFn := newHostedServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/auth/v1/user":
			_, _ = w.Write([]byte(userJSON))
		case "/auth/v1/logout":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	defer closeFn()

	id, err := f.GetUser(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", id.Email)

	assert.NoError(t, f.SignOut(context.Background(), "tok"))
}

func TestHostedAuthFacade_RateLimited(t *testing.T) {
	f, closeFn := newHostedServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	defer closeFn()

	_, err := f.GetUser(context.Background(), "tok")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}
