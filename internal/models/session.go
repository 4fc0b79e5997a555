package models

import "time"

// AuthState is the position of a device in the auth lifecycle.
type AuthState string

const (
	StateUnauthenticated AuthState = "unauthenticated"
	StatePending         AuthState = "pending"
	StateAuthenticated   AuthState = "authenticated"
)

// Session is what a device currently knows about its signed-in user.
// swagger:model Session
type Session struct {
	// Lifecycle state
	// example: authenticated
	State AuthState `json:"state"`

	// Provider that authenticated the user, empty when unauthenticated
	// example: demo
	Provider Provider `json:"provider,omitempty"`

	// Signed-in user
	User *User `json:"user,omitempty"`
}

// Unauthenticated returns the terminal signed-out session.
func Unauthenticated() *Session {
	return &Session{State: StateUnauthenticated}
}

// StoredSession is the device-local record of a signed-in user.
type StoredSession struct {
	User     User      `json:"user"`
	Provider Provider  `json:"provider"`
	SavedAt  time.Time `json:"saved_at"`
}

// PendingOAuth is the device-local record of a started redirect flow.
type PendingOAuth struct {
	Provider     Provider  `json:"provider"`
	State        string    `json:"state"`
	CodeVerifier string    `json:"code_verifier"`
	StartedAt    time.Time `json:"started_at"`
}

// HostedIdentity is a user as reported by the hosted auth provider.
type HostedIdentity struct {
	ID        string
	Email     string
	Name      string // from provider metadata, may be empty
	AvatarURL string
	Provider  Provider
}

// HostedGrant is the outcome of a successful hosted sign-in.
type HostedGrant struct {
	AccessToken string
	Identity    HostedIdentity
}

// Credentials is the shape submitted to begin a session.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name,omitempty"`
	Role     Role   `json:"role,omitempty"`
}
