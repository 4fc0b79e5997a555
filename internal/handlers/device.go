package handlers

//go:generate mockgen -source=device.go -destination=device_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/eduai-platform/internal/middlewares"
)

// DeviceTokenGenerator issues device tokens.
type DeviceTokenGenerator interface {
	Generate(ctx context.Context, deviceID string) (string, error)
}

// DeviceResponse carries a device token
// swagger:model DeviceResponse
type DeviceResponse struct {
	// Device id the token is bound to
	// default: 5f0c4b0e-6a43-4c57-9a84-8d1b1a5a3c2e
	DeviceID string `json:"device_id"`

	// Bearer token for subsequent requests
	// default: eyJhbGciOiJIUzI1NiIs...
	Token string `json:"token"`
}

// NewIssueDeviceHandler returns an HTTP handler that issues a device token.
// A request that already carries a valid token gets a fresh token for the same device.
// @Summary Issue a device token
// @Description Returns a bearer token identifying this browser. Session state is kept per device.
// @Tags session
// @Produce json
// @Success 200 {object} handlers.DeviceResponse "Device token"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /session/device [post]
func NewIssueDeviceHandler(tokens DeviceTokenGenerator, newID func() string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		deviceID := middlewares.DeviceIDFromContext(ctx)
		if deviceID == "" {
			deviceID = newID()
		}

		token, err := tokens.Generate(ctx, deviceID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, DeviceResponse{DeviceID: deviceID, Token: token})
	}
}
