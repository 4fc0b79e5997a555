package handlers

//go:generate mockgen -source=users.go -destination=users_mock.go -package=handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/eduai-platform/internal/logger"
	"github.com/sbilibin2017/eduai-platform/internal/models"
)

// UserRegisterer creates and syncs user rows.
type UserRegisterer interface {
	Register(ctx context.Context, creds models.Credentials) (*models.User, error)
	SyncUser(ctx context.Context, userID, email, name string) (*models.User, error)
}

// UserProfileWriter overwrites user profiles.
type UserProfileWriter interface {
	UpdateProfile(ctx context.Context, userID, name, email string, role models.Role) (*models.User, error)
}

// UserLedger records progress and usage by user id.
type UserLedger interface {
	RecordCompletion(ctx context.Context, userID string, tutorialID int) error
	Progress(ctx context.Context, userID string) ([]models.Completion, error)
	LogUsage(ctx context.Context, userID, tool string, data map[string]any) (*models.UsageSession, error)
	Stats(ctx context.Context, userID string) (*models.Stats, error)
}

// UserRegisterResponse is returned for a created account
// swagger:model UserRegisterResponse
type UserRegisterResponse struct {
	User    *models.User `json:"user"`
	Success bool         `json:"success"`
}

// SyncUserRequest links a hosted identity to a user row
// swagger:model SyncUserRequest
type SyncUserRequest struct {
	// Hosted user id
	// required: true
	StackUserID string `json:"stackUserId"`

	// Email
	// required: true
	Email string `json:"email"`

	// Display name
	Name string `json:"name"`
}

// UserProgressRequest marks a tutorial complete for a user
// swagger:model UserProgressRequest
type UserProgressRequest struct {
	UserID     string `json:"userId"`
	TutorialID int    `json:"tutorialId"`
}

// UserUsageRequest logs a tool use for a user
// swagger:model UserUsageRequest
type UserUsageRequest struct {
	UserID      string         `json:"userId"`
	Tool        string         `json:"toolUsed"`
	SessionData map[string]any `json:"sessionData,omitempty"`
}

// UserUpdateRequest overwrites a user's profile
// swagger:model UserUpdateRequest
type UserUpdateRequest struct {
	UserID string      `json:"userId"`
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
}

// NewUserRegisterHandler returns an HTTP handler creating a user row.
// @Summary Register user
// @Description Creates a user row. The password is required but not stored.
// @Tags users
// @Accept json
// @Produce json
// @Param credentials body models.Credentials true "Name, email, password and role"
// @Success 201 {object} handlers.UserRegisterResponse "User created"
// @Failure 400 {object} handlers.ErrorResponse "Missing required fields"
// @Failure 409 {object} handlers.ErrorResponse "User already exists"
// @Router /auth/register [post]
func NewUserRegisterHandler(svc UserRegisterer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds models.Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		user, err := svc.Register(r.Context(), creds)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		logger.Log.Infow("user registered", "user_id", user.ID)
		writeJSON(w, http.StatusCreated, UserRegisterResponse{User: user, Success: true})
	}
}

// NewSyncUserHandler returns an HTTP handler ensuring a row exists for a hosted identity.
// @Summary Sync user
// @Tags users
// @Accept json
// @Produce json
// @Param syncRequest body handlers.SyncUserRequest true "Hosted identity"
// @Success 200 {object} models.User "User"
// @Failure 400 {object} handlers.ErrorResponse "Missing required fields"
// @Router /auth/sync-user [post]
func NewSyncUserHandler(svc UserRegisterer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SyncUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		user, err := svc.SyncUser(r.Context(), req.StackUserID, req.Email, req.Name)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

// NewUserProgressHandler returns an HTTP handler marking a tutorial complete for a user.
// @Summary Complete tutorial for user
// @Tags users
// @Accept json
// @Produce json
// @Param progress body handlers.UserProgressRequest true "User and tutorial"
// @Success 200 {array} models.Completion "Completed tutorials"
// @Failure 400 {object} handlers.ErrorResponse "Missing required fields"
// @Router /user/progress [post]
func NewUserProgressHandler(svc UserLedger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UserProgressRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		ctx := r.Context()
		if err := svc.RecordCompletion(ctx, req.UserID, req.TutorialID); err != nil {
			writeServiceError(w, err)
			return
		}

		completions, err := svc.Progress(ctx, req.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, completions)
	}
}

// NewGetUserProgressHandler returns an HTTP handler listing a user's completed tutorials.
// @Summary Get user progress
// @Tags users
// @Produce json
// @Param userId query string true "User id"
// @Success 200 {array} models.Completion "Completed tutorials"
// @Failure 400 {object} handlers.ErrorResponse "Missing userId"
// @Router /user/progress [get]
func NewGetUserProgressHandler(svc UserLedger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("userId")
		if userID == "" {
			writeError(w, http.StatusBadRequest, "Missing userId")
			return
		}

		completions, err := svc.Progress(r.Context(), userID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, completions)
	}
}

// NewLogUsageHandler returns an HTTP handler logging a tool use for a user.
// @Summary Log usage for user
// @Tags users
// @Accept json
// @Produce json
// @Param usage body handlers.UserUsageRequest true "Usage event"
// @Success 200 {object} models.UsageSession "Stored event"
// @Failure 400 {object} handlers.ErrorResponse "Missing required fields"
// @Router /user/log-usage [post]
func NewLogUsageHandler(svc UserLedger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UserUsageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		usage, err := svc.LogUsage(r.Context(), req.UserID, req.Tool, req.SessionData)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, usage)
	}
}

// NewUserStatsHandler returns an HTTP handler with a user's statistics.
// @Summary Get user stats
// @Tags users
// @Produce json
// @Param userId query string true "User id"
// @Success 200 {object} models.Stats "Statistics"
// @Failure 400 {object} handlers.ErrorResponse "Missing userId"
// @Router /user/stats [get]
func NewUserStatsHandler(svc UserLedger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("userId")
		if userID == "" {
			writeError(w, http.StatusBadRequest, "Missing userId")
			return
		}

		stats, err := svc.Stats(r.Context(), userID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, stats)
	}
}

// NewUserUpdateProfileHandler returns an HTTP handler overwriting a user's profile.
// @Summary Update user profile
// @Tags users
// @Accept json
// @Produce json
// @Param profile body handlers.UserUpdateRequest true "Profile"
// @Success 200 {object} models.User "Updated user"
// @Failure 400 {object} handlers.ErrorResponse "Missing userId"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /user/update-profile [put]
func NewUserUpdateProfileHandler(svc UserProfileWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UserUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.UserID == "" {
			writeError(w, http.StatusBadRequest, "Missing userId")
			return
		}

		user, err := svc.UpdateProfile(r.Context(), req.UserID, req.Name, req.Email, req.Role)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}
