package handlers

//go:generate mockgen -source=tools.go -destination=tools_mock.go -package=handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/eduai-platform/internal/middlewares"
	"github.com/sbilibin2017/eduai-platform/internal/services"
)

// ToolRunner runs AI tools.
type ToolRunner interface {
	Run(ctx context.Context, deviceID, tool string, req services.ToolRequest) (*services.ToolResult, error)
	Health(ctx context.Context) error
}

// ToolRequest is the body of a tool invocation
// swagger:model ToolRequest
type ToolRequest struct {
	// Prompt built by the tool page
	// required: true
	// default: Write a polite follow-up email about the project deadline
	Prompt string `json:"prompt"`

	// Model option: free, gpt3, gpt4, claude or mistral
	// default: free
	Model string `json:"model,omitempty"`

	// Extra fields stored with the usage event
	Metadata map[string]any `json:"metadata,omitempty"`
}

// HealthResponse reports the completion endpoint status
// swagger:model HealthResponse
type HealthResponse struct {
	// default: ok
	Status string `json:"status"`
}

// NewRunToolHandler returns an HTTP handler running one AI tool.
// @Summary Run tool
// @Description Generates text for the tool. Usage is logged for a signed-in device and never fails the call.
// @Tags tools
// @Accept json
// @Produce json
// @Param tool path string true "Tool name"
// @Param toolRequest body handlers.ToolRequest true "Prompt"
// @Success 200 {object} services.ToolResult "Generated text"
// @Failure 400 {object} handlers.ErrorResponse "Empty prompt"
// @Failure 404 {object} handlers.ErrorResponse "Unknown tool"
// @Failure 429 {object} handlers.ErrorResponse "Rate limited"
// @Failure 502 {object} handlers.ErrorResponse "Upstream error"
// @Router /tools/{tool} [post]
func NewRunToolHandler(svc ToolRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ToolRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		ctx := r.Context()
		res, err := svc.Run(ctx, middlewares.DeviceIDFromContext(ctx), chi.URLParam(r, "tool"), services.ToolRequest{
			Prompt:   req.Prompt,
			Model:    req.Model,
			Metadata: req.Metadata,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, res)
	}
}

// NewToolsHealthHandler returns an HTTP handler testing the completion endpoint.
// @Summary Tools health
// @Tags tools
// @Produce json
// @Success 200 {object} handlers.HealthResponse "Endpoint answers"
// @Failure 502 {object} handlers.ErrorResponse "Upstream error"
// @Router /tools/health [get]
func NewToolsHealthHandler(svc ToolRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Health(r.Context()); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}
