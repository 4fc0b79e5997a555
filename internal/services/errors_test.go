package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/sbilibin2017/eduai-platform/internal/facades"
	"github.com/stretchr/testify/assert"
)

func TestClassifyAuthError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want AuthErrorKind
	}{
		{"invalid credentials", errors.New("hosted auth status 400: invalid_grant Invalid login credentials"), AuthInvalidCredentials},
		{"not confirmed", errors.New("Email not confirmed"), AuthEmailNotConfirmed},
		{"rate limited", errors.New("hosted auth status 429: rate limit exceeded"), AuthRateLimited},
		{"expired link", errors.New("Token has expired or is invalid"), AuthLinkExpired},
		{"already registered", errors.New("User already registered"), AuthUserExists},
		{"transport", &url.Error{Op: "Post", URL: "http://x", Err: errors.New("connection refused")}, AuthNetwork},
		{"deadline", fmt.Errorf("check: %w", context.DeadlineExceeded), AuthNetwork},
		{"upstream 503", &facades.HostedAuthError{StatusCode: 503, Message: "Service Unavailable"}, AuthNetwork},
		{"upstream 502 wrapped", fmt.Errorf("get user: %w", &facades.HostedAuthError{StatusCode: 502}), AuthNetwork},
		{"rejected token", &facades.HostedAuthError{StatusCode: 401, Code: "bad_jwt", Message: "invalid JWT"}, AuthUnknown},
		{"anything else", errors.New("boom"), AuthUnknown},
		{"already classified", newAuthError(AuthUnavailable, nil), AuthUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyAuthError(tt.err)
			assert.Equal(t, tt.want, got.Kind)
			assert.Equal(t, authMessages[tt.want], got.Error())
		})
	}

	assert.Nil(t, ClassifyAuthError(nil))
}

func TestAuthError_Unwrap(t *testing.T) {
	cause := errors.New("cause")
	err := ClassifyAuthError(cause)
	assert.ErrorIs(t, err, cause)
}
