package facades

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sbilibin2017/eduai-platform/internal/logger"
	"github.com/sbilibin2017/eduai-platform/internal/models"
)

// HostedAuthError is a non-2xx answer of the hosted auth API.
type HostedAuthError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *HostedAuthError) Error() string {
	return fmt.Sprintf("hosted auth status %d: %s %s", e.StatusCode, e.Code, e.Message)
}

// HostedAuthConfig configures HostedAuthFacade.
type HostedAuthConfig struct {
	BaseURL     string // project URL, without the /auth/v1 suffix
	APIKey      string // public anon key
	RedirectURL string // OAuth callback URL of the web app
	Timeout     time.Duration
}

// HostedAuthFacade talks to a GoTrue compatible hosted auth REST API.
type HostedAuthFacade struct {
	httpClient *http.Client
	cfg        HostedAuthConfig
}

func NewHostedAuthFacade(cfg HostedAuthConfig) *HostedAuthFacade {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &HostedAuthFacade{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
	}
}

type hostedUser struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
	AppMetadata  map[string]any `json:"app_metadata"`
}

type hostedSession struct {
	AccessToken string      `json:"access_token"`
	User        *hostedUser `json:"user"`
}

type hostedErrorBody struct {
	Code             any    `json:"code"`
	ErrorCode        string `json:"error_code"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
}

func metaString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func (u *hostedUser) identity() models.HostedIdentity {
	provider := models.ProviderHosted
	switch metaString(u.AppMetadata, "provider") {
	case "google":
		provider = models.ProviderGoogle
	case "github":
		provider = models.ProviderGitHub
	}
	return models.HostedIdentity{
		ID:        u.ID,
		Email:     u.Email,
		Name:      metaString(u.UserMetadata, "name", "full_name", "user_name"),
		AvatarURL: metaString(u.UserMetadata, "avatar_url", "picture"),
		Provider:  provider,
	}
}

func (f *HostedAuthFacade) do(ctx context.Context, method, path, token string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, f.cfg.BaseURL+"/auth/v1"+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", f.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		logger.Log.Warnw("hosted auth request failed", "path", path, "error", err)
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb hostedErrorBody
		_ = json.Unmarshal(raw, &eb)
		herr := &HostedAuthError{StatusCode: resp.StatusCode, Code: eb.ErrorCode}
		if herr.Code == "" {
			herr.Code = eb.Error
		}
		for _, m := range []string{eb.Msg, eb.ErrorDescription, eb.Message} {
			if m != "" {
				herr.Message = m
				break
			}
		}
		if resp.StatusCode == http.StatusTooManyRequests && herr.Message == "" {
			herr.Message = "rate limit exceeded"
		}
		logger.Log.Infow("hosted auth rejected request", "path", path, "status", resp.StatusCode, "code", herr.Code)
		return herr
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func grantFrom(s *hostedSession) (*models.HostedGrant, error) {
	if s.User == nil {
		return nil, &HostedAuthError{StatusCode: http.StatusBadGateway, Message: "response carries no user"}
	}
	return &models.HostedGrant{AccessToken: s.AccessToken, Identity: s.User.identity()}, nil
}

// SignInWithPassword exchanges email and password for an access token.
func (f *HostedAuthFacade) SignInWithPassword(ctx context.Context, email, password string) (*models.HostedGrant, error) {
	var s hostedSession
	if err := f.do(ctx, http.MethodPost, "/token?grant_type=password", "", map[string]string{
		"email":    email,
		"password": password,
	}, &s); err != nil {
		return nil, err
	}
	return grantFrom(&s)
}

// SignUp registers a new account. AccessToken is empty when the provider
// requires email confirmation first.
func (f *HostedAuthFacade) SignUp(ctx context.Context, email, password string, metadata map[string]any) (*models.HostedGrant, error) {
	var raw json.RawMessage
	if err := f.do(ctx, http.MethodPost, "/signup", "", map[string]any{
		"email":    email,
		"password": password,
		"data":     metadata,
	}, &raw); err != nil {
		return nil, err
	}

	// with confirmation enabled the body is the bare user
	var s hostedSession
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	if s.User == nil {
		var u hostedUser
		if err := json.Unmarshal(raw, &u); err != nil {
			return nil, err
		}
		s.User = &u
	}
	return grantFrom(&s)
}

// AuthorizeURL builds the provider redirect URL for a PKCE flow.
func (f *HostedAuthFacade) AuthorizeURL(provider models.Provider, state, codeChallenge string) (string, error) {
	var name string
	switch provider {
	case models.ProviderGoogle:
		name = "google"
	case models.ProviderGitHub:
		name = "github"
	default:
		return "", fmt.Errorf("unsupported oauth provider %q", provider)
	}

	q := url.Values{}
	q.Set("provider", name)
	q.Set("code_challenge", codeChallenge)
	q.Set("code_challenge_method", "s256")
	q.Set("state", state)
	if f.cfg.RedirectURL != "" {
		q.Set("redirect_to", f.cfg.RedirectURL)
	}
	return f.cfg.BaseURL + "/auth/v1/authorize?" + q.Encode(), nil
}

// ExchangeCode completes a PKCE flow.
func (f *HostedAuthFacade) ExchangeCode(ctx context.Context, code, codeVerifier string) (*models.HostedGrant, error) {
	var s hostedSession
	if err := f.do(ctx, http.MethodPost, "/token?grant_type=pkce", "", map[string]string{
		"auth_code":     code,
		"code_verifier": codeVerifier,
	}, &s); err != nil {
		return nil, err
	}
	return grantFrom(&s)
}

// GetUser returns the identity behind an access token.
func (f *HostedAuthFacade) GetUser(ctx context.Context, accessToken string) (*models.HostedIdentity, error) {
	var u hostedUser
	if err := f.do(ctx, http.MethodGet, "/user", accessToken, nil, &u); err != nil {
		return nil, err
	}
	id := u.identity()
	return &id, nil
}

// SignOut revokes the access token.
func (f *HostedAuthFacade) SignOut(ctx context.Context, accessToken string) error {
	return f.do(ctx, http.MethodPost, "/logout", accessToken, nil, nil)
}
