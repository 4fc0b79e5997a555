package middlewares

//go:generate mockgen -source=device.go -destination=mocks.go -package=middlewares

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/eduai-platform/internal/logger"
)

// Tokener defines the minimal interface needed by the middleware
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetDeviceID(ctx context.Context, tokenString string) (string, error)
}

type deviceKey struct{}

// WithDeviceID stores the device id in ctx.
func WithDeviceID(ctx context.Context, deviceID string) context.Context {
	return context.WithValue(ctx, deviceKey{}, deviceID)
}

// DeviceIDFromContext returns the device id set by the device middlewares, or "".
func DeviceIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(deviceKey{}).(string)
	return id
}

// DeviceMiddleware rejects requests without a valid device token.
func DeviceMiddleware(tokener Tokener) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			deviceID, err := tokener.GetDeviceID(ctx, tokenString)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithDeviceID(ctx, deviceID)))
		})
	}
}

// OptionalDeviceMiddleware attaches the device id when a valid token is sent
// and lets the request through either way.
func OptionalDeviceMiddleware(tokener Tokener) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err == nil {
				if deviceID, err := tokener.GetDeviceID(ctx, tokenString); err == nil {
					ctx = WithDeviceID(ctx, deviceID)
				} else {
					logger.Log.Debugw("ignoring invalid device token", "err", err)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
