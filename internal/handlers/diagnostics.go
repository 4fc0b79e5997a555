package handlers

import (
	"net/http"
	"time"
)

// DiagnosticsResponse reports that the API is reachable
// swagger:model DiagnosticsResponse
type DiagnosticsResponse struct {
	// default: API is working!
	Message     string            `json:"message"`
	Method      string            `json:"method"`
	Timestamp   time.Time         `json:"timestamp"`
	Environment map[string]string `json:"environment_vars"`
}

// NewDiagnosticsHandler returns an HTTP handler echoing basic deployment facts.
// Only whether settings are present is reported, never their values.
// @Summary API check
// @Tags diagnostics
// @Produce json
// @Success 200 {object} handlers.DiagnosticsResponse "API is working"
// @Router /test [get]
func NewDiagnosticsHandler(env map[string]string, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, DiagnosticsResponse{
			Message:     "API is working!",
			Method:      r.Method,
			Timestamp:   now().UTC(),
			Environment: env,
		})
	}
}
