package handlers

//go:generate mockgen -source=session.go -destination=session_mock.go -package=handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/eduai-platform/internal/middlewares"
	"github.com/sbilibin2017/eduai-platform/internal/models"
)

// SessionResolver reports the current session of a device.
type SessionResolver interface {
	Resolve(ctx context.Context, deviceID string) (*models.Session, error)
}

// SessionStarter begins sessions from credentials or demo roles.
type SessionStarter interface {
	Login(ctx context.Context, deviceID string, creds models.Credentials) (*models.Session, error)
	Register(ctx context.Context, deviceID string, creds models.Credentials) (*models.Session, error)
	DemoLogin(ctx context.Context, deviceID string, role models.Role) (*models.Session, error)
}

// OAuthStarter drives the redirect sign-in flow.
type OAuthStarter interface {
	BeginOAuth(ctx context.Context, deviceID string, provider models.Provider) (string, error)
	CompleteOAuth(ctx context.Context, deviceID, code, state string) (*models.Session, error)
}

// SessionEnder signs a device out.
type SessionEnder interface {
	Logout(ctx context.Context, deviceID string) *models.Session
}

// ProfileUpdater changes the profile of the signed-in user.
type ProfileUpdater interface {
	UpdateProfile(ctx context.Context, deviceID string, upd models.ProfileUpdate) (*models.User, error)
}

// DemoRequest selects a demo account
// swagger:model DemoRequest
type DemoRequest struct {
	// Role of the demo account
	// default: student
	Role models.Role `json:"role"`
}

// OAuthResponse carries the provider URL to redirect to
// swagger:model OAuthResponse
type OAuthResponse struct {
	// Authorize URL
	URL string `json:"url"`
}

// OAuthCallbackRequest is the redirect result posted back by the UI
// swagger:model OAuthCallbackRequest
type OAuthCallbackRequest struct {
	// Authorization code
	Code string `json:"code"`

	// State nonce returned by the provider
	State string `json:"state"`
}

// NewResolveSessionHandler returns an HTTP handler reporting the device's session.
// @Summary Resolve session
// @Description Returns the signed-in user of this device, checking the hosted session when needed.
// @Tags session
// @Produce json
// @Success 200 {object} models.Session "Current session"
// @Failure 401 {object} handlers.ErrorResponse "Missing device token"
// @Router /session [get]
// @Security BearerAuth
func NewResolveSessionHandler(svc SessionResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		session, err := svc.Resolve(ctx, middlewares.DeviceIDFromContext(ctx))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, session)
	}
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (models.Credentials, bool) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return creds, false
	}
	return creds, true
}

// NewLoginHandler returns an HTTP handler for email sign-in.
// @Summary Sign in
// @Description Signs in with email and password. Demo accounts are checked locally.
// @Tags session
// @Accept json
// @Produce json
// @Param credentials body models.Credentials true "Email and password"
// @Success 200 {object} models.Session "Signed-in session"
// @Failure 400 {object} handlers.ErrorResponse "Validation error"
// @Failure 401 {object} handlers.ErrorResponse "Invalid email or password"
// @Failure 429 {object} handlers.ErrorResponse "Too many attempts"
// @Failure 503 {object} handlers.ErrorResponse "Sign-in not available"
// @Router /session/login [post]
// @Security BearerAuth
func NewLoginHandler(svc SessionStarter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creds, ok := decodeCredentials(w, r)
		if !ok {
			return
		}

		ctx := r.Context()
		session, err := svc.Login(ctx, middlewares.DeviceIDFromContext(ctx), creds)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, session)
	}
}

// NewRegisterHandler returns an HTTP handler for account sign-up.
// @Summary Register
// @Description Creates a hosted account. Accounts that need email confirmation are not signed in.
// @Tags session
// @Accept json
// @Produce json
// @Param credentials body models.Credentials true "Name, email, password and role"
// @Success 201 {object} models.Session "Signed-in session"
// @Failure 400 {object} handlers.ErrorResponse "Validation error"
// @Failure 403 {object} handlers.ErrorResponse "Email not confirmed"
// @Failure 409 {object} handlers.ErrorResponse "User already exists"
// @Router /session/register [post]
// @Security BearerAuth
func NewRegisterHandler(svc SessionStarter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creds, ok := decodeCredentials(w, r)
		if !ok {
			return
		}

		ctx := r.Context()
		session, err := svc.Register(ctx, middlewares.DeviceIDFromContext(ctx), creds)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, session)
	}
}

// NewDemoLoginHandler returns an HTTP handler signing in a demo account.
// @Summary Demo sign in
// @Description Signs in as the demo account of the given role without a password.
// @Tags session
// @Accept json
// @Produce json
// @Param demoRequest body handlers.DemoRequest true "Demo role"
// @Success 200 {object} models.Session "Signed-in session"
// @Failure 400 {object} handlers.ErrorResponse "Unknown role"
// @Router /session/demo [post]
// @Security BearerAuth
func NewDemoLoginHandler(svc SessionStarter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DemoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		ctx := r.Context()
		session, err := svc.DemoLogin(ctx, middlewares.DeviceIDFromContext(ctx), req.Role)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, session)
	}
}

// NewBeginOAuthHandler returns an HTTP handler starting a redirect sign-in.
// @Summary Begin OAuth sign in
// @Description Marks the device pending and returns the provider authorize URL.
// @Tags session
// @Produce json
// @Param provider path string true "google or github"
// @Success 200 {object} handlers.OAuthResponse "Authorize URL"
// @Failure 404 {object} handlers.ErrorResponse "Unknown provider"
// @Failure 503 {object} handlers.ErrorResponse "Sign-in not available"
// @Router /session/oauth/{provider} [get]
// @Security BearerAuth
func NewBeginOAuthHandler(svc OAuthStarter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var provider models.Provider
		switch chi.URLParam(r, "provider") {
		case "google":
			provider = models.ProviderGoogle
		case "github":
			provider = models.ProviderGitHub
		default:
			writeError(w, http.StatusNotFound, "Unknown provider")
			return
		}

		ctx := r.Context()
		url, err := svc.BeginOAuth(ctx, middlewares.DeviceIDFromContext(ctx), provider)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, OAuthResponse{URL: url})
	}
}

// NewCompleteOAuthHandler returns an HTTP handler finishing a redirect sign-in.
// @Summary Complete OAuth sign in
// @Description Exchanges the authorization code for a session.
// @Tags session
// @Accept json
// @Produce json
// @Param callback body handlers.OAuthCallbackRequest true "Code and state"
// @Success 200 {object} models.Session "Signed-in session"
// @Failure 400 {object} handlers.ErrorResponse "State mismatch"
// @Failure 410 {object} handlers.ErrorResponse "Link expired"
// @Router /session/oauth/callback [post]
// @Security BearerAuth
func NewCompleteOAuthHandler(svc OAuthStarter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req OAuthCallbackRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Code == "" || req.State == "" {
			writeError(w, http.StatusBadRequest, "Missing required fields")
			return
		}

		ctx := r.Context()
		session, err := svc.CompleteOAuth(ctx, middlewares.DeviceIDFromContext(ctx), req.Code, req.State)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, session)
	}
}

// NewLogoutHandler returns an HTTP handler signing the device out. It never fails.
// @Summary Sign out
// @Tags session
// @Produce json
// @Success 200 {object} models.Session "Unauthenticated session"
// @Router /session/logout [post]
// @Security BearerAuth
func NewLogoutHandler(svc SessionEnder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		writeJSON(w, http.StatusOK, svc.Logout(ctx, middlewares.DeviceIDFromContext(ctx)))
	}
}

// NewUpdateProfileHandler returns an HTTP handler updating the signed-in user's profile.
// @Summary Update profile
// @Description Merges the given fields into the profile. Omitted fields are kept.
// @Tags session
// @Accept json
// @Produce json
// @Param profile body models.ProfileUpdate true "Fields to change"
// @Success 200 {object} models.User "Updated profile"
// @Failure 400 {object} handlers.ErrorResponse "Validation error"
// @Failure 401 {object} handlers.ErrorResponse "Not signed in"
// @Router /session/profile [put]
// @Security BearerAuth
func NewUpdateProfileHandler(svc ProfileUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var upd models.ProfileUpdate
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		ctx := r.Context()
		user, err := svc.UpdateProfile(ctx, middlewares.DeviceIDFromContext(ctx), upd)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}
