package models

import "time"

// Role is the self-declared role of a user.
type Role string

// Supported roles
const (
	RoleStudent    Role = "student"
	RoleEducator   Role = "educator"
	RoleResearcher Role = "researcher"
)

// Valid reports whether r is one of the supported roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleEducator, RoleResearcher:
		return true
	}
	return false
}

// Provider tags the backend that authenticated a user.
type Provider string

// Supported providers
const (
	ProviderDemo   Provider = "demo"
	ProviderHosted Provider = "hosted"
	ProviderGoogle Provider = "oauth-google"
	ProviderGitHub Provider = "oauth-github"
)

// IsOAuth reports whether p is a redirect-based provider.
func (p Provider) IsOAuth() bool {
	return p == ProviderGoogle || p == ProviderGitHub
}

// IsHosted reports whether users of p are stored by the hosted backend.
func (p Provider) IsHosted() bool {
	return p == ProviderHosted || p.IsOAuth()
}

// User represents a user profile, both in the hosted users table and in local storage
type User struct {
	ID        string    `json:"id" db:"id"`                 // Opaque identifier
	Email     string    `json:"email" db:"email"`           // Unique email
	Name      string    `json:"name" db:"name"`             // Display name
	Role      Role      `json:"role" db:"role"`             // student, educator or researcher
	Provider  Provider  `json:"provider" db:"provider"`     // Authenticating provider
	AvatarURL string    `json:"avatar_url" db:"avatar_url"` // Avatar reference, may be empty
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"` // Last update timestamp
}

// ProfileUpdate carries the fields a user may change. Nil fields are left untouched.
// swagger:model ProfileUpdate
type ProfileUpdate struct {
	// Display name
	// example: Jane Doe
	Name *string `json:"name,omitempty"`

	// Email
	// example: jane@example.com
	Email *string `json:"email,omitempty"`

	// Role
	// example: educator
	Role *Role `json:"role,omitempty"`

	// Avatar URL
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// Apply merges the update into u and reports whether anything changed.
func (p ProfileUpdate) Apply(u *User) bool {
	changed := false
	if p.Name != nil && *p.Name != u.Name {
		u.Name = *p.Name
		changed = true
	}
	if p.Email != nil && *p.Email != u.Email {
		u.Email = *p.Email
		changed = true
	}
	if p.Role != nil && *p.Role != u.Role {
		u.Role = *p.Role
		changed = true
	}
	if p.AvatarURL != nil && *p.AvatarURL != u.AvatarURL {
		u.AvatarURL = *p.AvatarURL
		changed = true
	}
	return changed
}
