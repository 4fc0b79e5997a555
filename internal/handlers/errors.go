package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/eduai-platform/internal/logger"
	"github.com/sbilibin2017/eduai-platform/internal/services"
)

// ErrorResponse is the body of every failed request
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// default: Internal server error
	Error string `json:"error"`
}

// userFacing is implemented by upstream errors that carry their own status and message.
type userFacing interface {
	UserMessage() string
	HTTPStatus() int
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

var authStatus = map[services.AuthErrorKind]int{
	services.AuthInvalidCredentials: http.StatusUnauthorized,
	services.AuthEmailNotConfirmed:  http.StatusForbidden,
	services.AuthRateLimited:        http.StatusTooManyRequests,
	services.AuthLinkExpired:        http.StatusGone,
	services.AuthUserExists:         http.StatusConflict,
	services.AuthNetwork:            http.StatusServiceUnavailable,
	services.AuthUnavailable:        http.StatusServiceUnavailable,
	services.AuthUnknown:            http.StatusUnauthorized,
}

// writeServiceError maps service errors to a status and a user-facing message.
func writeServiceError(w http.ResponseWriter, err error) {
	var (
		validation *services.ValidationError
		authErr    *services.AuthError
		upstream   userFacing
	)

	switch {
	case errors.As(err, &validation):
		writeError(w, http.StatusBadRequest, validation.Message)
	case errors.As(err, &authErr):
		status, ok := authStatus[authErr.Kind]
		if !ok {
			status = http.StatusUnauthorized
		}
		writeError(w, status, authErr.Message)
	case errors.As(err, &upstream):
		writeError(w, upstream.HTTPStatus(), upstream.UserMessage())
	case errors.Is(err, services.ErrMissingFields):
		writeError(w, http.StatusBadRequest, "Missing required fields")
	case errors.Is(err, services.ErrNotAuthenticated):
		writeError(w, http.StatusUnauthorized, "Not signed in")
	case errors.Is(err, services.ErrUserAlreadyExists):
		writeError(w, http.StatusConflict, "User already exists")
	case errors.Is(err, services.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, services.ErrUnknownTutorial):
		writeError(w, http.StatusBadRequest, "Unknown tutorial")
	case errors.Is(err, services.ErrUnknownTool):
		writeError(w, http.StatusNotFound, "Unknown tool")
	case errors.Is(err, services.ErrInvalidState):
		writeError(w, http.StatusBadRequest, "Sign-in request does not match. Please try again.")
	default:
		logger.Log.Errorw("internal server error", "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
