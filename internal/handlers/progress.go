package handlers

//go:generate mockgen -source=progress.go -destination=progress_mock.go -package=handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/eduai-platform/internal/middlewares"
	"github.com/sbilibin2017/eduai-platform/internal/models"
)

// DeviceLedger records progress and usage for the user signed in on a device.
type DeviceLedger interface {
	RecordCompletion(ctx context.Context, deviceID string, tutorialID int) error
	RecordUsage(ctx context.Context, deviceID, tool string, data map[string]any) (*models.UsageSession, error)
	Stats(ctx context.Context, deviceID string) (*models.Stats, error)
	Progress(ctx context.Context, deviceID string) ([]models.Completion, error)
}

// CompletionRequest marks a tutorial as completed
// swagger:model CompletionRequest
type CompletionRequest struct {
	// Tutorial id
	// required: true
	// default: 1
	TutorialID int `json:"tutorialId"`
}

// UsageRequest logs one use of a tool
// swagger:model UsageRequest
type UsageRequest struct {
	// Tool name
	// required: true
	// default: email-assistant
	Tool string `json:"toolUsed"`

	// Free-form session metadata
	SessionData map[string]any `json:"sessionData,omitempty"`
}

// ProgressResponse lists completed tutorials
// swagger:model ProgressResponse
type ProgressResponse struct {
	Completions []models.Completion `json:"completions"`
}

// NewRecordCompletionHandler returns an HTTP handler marking a tutorial complete.
// @Summary Complete tutorial
// @Description Marks a tutorial as completed. Completing it again has no effect.
// @Tags session
// @Accept json
// @Produce json
// @Param completion body handlers.CompletionRequest true "Tutorial"
// @Success 200 {object} handlers.ProgressResponse "Completed tutorials"
// @Failure 400 {object} handlers.ErrorResponse "Unknown tutorial"
// @Failure 401 {object} handlers.ErrorResponse "Not signed in"
// @Router /session/progress [post]
// @Security BearerAuth
func NewRecordCompletionHandler(svc DeviceLedger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		ctx := r.Context()
		deviceID := middlewares.DeviceIDFromContext(ctx)

		if err := svc.RecordCompletion(ctx, deviceID, req.TutorialID); err != nil {
			writeServiceError(w, err)
			return
		}

		completions, err := svc.Progress(ctx, deviceID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, ProgressResponse{Completions: completions})
	}
}

// NewGetProgressHandler returns an HTTP handler listing completed tutorials.
// @Summary Get progress
// @Tags session
// @Produce json
// @Success 200 {object} handlers.ProgressResponse "Completed tutorials"
// @Failure 401 {object} handlers.ErrorResponse "Not signed in"
// @Router /session/progress [get]
// @Security BearerAuth
func NewGetProgressHandler(svc DeviceLedger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		completions, err := svc.Progress(ctx, middlewares.DeviceIDFromContext(ctx))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, ProgressResponse{Completions: completions})
	}
}

// NewRecordUsageHandler returns an HTTP handler logging a tool use.
// @Summary Log tool usage
// @Description Appends a usage event. Only the 50 most recent events are kept.
// @Tags session
// @Accept json
// @Produce json
// @Param usage body handlers.UsageRequest true "Usage event"
// @Success 200 {object} models.UsageSession "Stored event"
// @Failure 400 {object} handlers.ErrorResponse "Missing required fields"
// @Failure 401 {object} handlers.ErrorResponse "Not signed in"
// @Router /session/usage [post]
// @Security BearerAuth
func NewRecordUsageHandler(svc DeviceLedger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UsageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		ctx := r.Context()
		usage, err := svc.RecordUsage(ctx, middlewares.DeviceIDFromContext(ctx), req.Tool, req.SessionData)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, usage)
	}
}

// NewGetStatsHandler returns an HTTP handler with the dashboard statistics.
// @Summary Get stats
// @Tags session
// @Produce json
// @Success 200 {object} models.Stats "Statistics"
// @Failure 401 {object} handlers.ErrorResponse "Not signed in"
// @Router /session/stats [get]
// @Security BearerAuth
func NewGetStatsHandler(svc DeviceLedger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		stats, err := svc.Stats(ctx, middlewares.DeviceIDFromContext(ctx))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, stats)
	}
}
