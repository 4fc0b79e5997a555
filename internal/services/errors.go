package services

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/sbilibin2017/eduai-platform/internal/facades"
)

// Error variables
var (
	ErrNotAuthenticated  = errors.New("not signed in")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrUnknownTutorial   = errors.New("unknown tutorial")
	ErrUnknownTool       = errors.New("unknown tool")
	ErrMissingFields     = errors.New("missing required fields")
	ErrInvalidState      = errors.New("sign-in link does not match a pending request")
)

// ValidationError is a malformed credential detected before any network call.
// Message is shown to the user verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// AuthErrorKind classifies authentication failures.
type AuthErrorKind string

const (
	AuthInvalidCredentials AuthErrorKind = "invalid_credentials"
	AuthEmailNotConfirmed  AuthErrorKind = "email_not_confirmed"
	AuthRateLimited        AuthErrorKind = "rate_limited"
	AuthLinkExpired        AuthErrorKind = "link_expired"
	AuthUserExists         AuthErrorKind = "user_exists"
	AuthNetwork            AuthErrorKind = "network"
	AuthUnavailable        AuthErrorKind = "unavailable"
	AuthUnknown            AuthErrorKind = "unknown"
)

var authMessages = map[AuthErrorKind]string{
	AuthInvalidCredentials: "Invalid email or password. Please try again.",
	AuthEmailNotConfirmed:  "Please check your email and confirm your account before signing in.",
	AuthRateLimited:        "Too many attempts. Please wait a moment and try again.",
	AuthLinkExpired:        "This sign-in link has expired. Please request a new one.",
	AuthUserExists:         "An account with this email already exists. Please sign in instead.",
	AuthNetwork:            "Network error. Please check your connection and try again.",
	AuthUnavailable:        "This sign-in method is not available right now.",
	AuthUnknown:            "Authentication failed. Please try again.",
}

// AuthError is an authentication failure reduced to a fixed user-facing message.
type AuthError struct {
	Kind    AuthErrorKind
	Message string
	Err     error
}

func (e *AuthError) Error() string { return e.Message }

func (e *AuthError) Unwrap() error { return e.Err }

func newAuthError(kind AuthErrorKind, cause error) *AuthError {
	return &AuthError{Kind: kind, Message: authMessages[kind], Err: cause}
}

// ClassifyAuthError maps a hosted-provider or transport error to an AuthError.
func ClassifyAuthError(err error) *AuthError {
	if err == nil {
		return nil
	}

	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr
	}

	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) ||
		errors.Is(err, context.DeadlineExceeded) {
		return newAuthError(AuthNetwork, err)
	}

	// 5xx answers count as network failures
	var hostedErr *facades.HostedAuthError
	if errors.As(err, &hostedErr) && hostedErr.StatusCode >= http.StatusInternalServerError {
		return newAuthError(AuthNetwork, err)
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "invalid login credentials"),
		strings.Contains(msg, "invalid credentials"),
		strings.Contains(msg, "invalid_grant"):
		return newAuthError(AuthInvalidCredentials, err)
	case strings.Contains(msg, "email not confirmed"),
		strings.Contains(msg, "email_not_confirmed"):
		return newAuthError(AuthEmailNotConfirmed, err)
	case strings.Contains(msg, "rate limit"),
		strings.Contains(msg, "too many requests"),
		strings.Contains(msg, "status 429"):
		return newAuthError(AuthRateLimited, err)
	case strings.Contains(msg, "expired"):
		return newAuthError(AuthLinkExpired, err)
	case strings.Contains(msg, "already registered"),
		strings.Contains(msg, "already exists"):
		return newAuthError(AuthUserExists, err)
	}
	return newAuthError(AuthUnknown, err)
}
