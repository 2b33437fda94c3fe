// Package domain defines the session store types and contracts
package domain

import (
	"context"
	"time"
)

// Role describes what a dashboard user may do
type Role string

const (
	// RoleAdmin may control the actuator
	RoleAdmin Role = "admin"

	// RoleViewer may only observe
	RoleViewer Role = "viewer"
)

// User is a configured dashboard account. Password hashes are bcrypt
type User struct {
	Username        string
	PasswordHash    []byte
	Role            Role
	ActuatorControl bool
}

// Session is a live authenticated session. The actuator token is a separate
// high-entropy credential issued only to actuator-capable sessions; it dies
// implicitly with its owning session
type Session struct {
	ID              string    `json:"session_id"`
	Username        string    `json:"username"`
	Role            Role      `json:"role"`
	ActuatorControl bool      `json:"actuator_control"`
	ActuatorToken   string    `json:"actuator_token,omitempty"`
	LastActivity    time.Time `json:"-"`
}

// AuthPort is the session store surface consumed by transports and the
// actuator controller
type AuthPort interface {
	// Login checks credentials and creates a session, issuing an actuator
	// token when the user's role carries the capability
	Login(ctx context.Context, username, password string) (Session, error)

	// Verify resolves a live session and refreshes its activity clock.
	// Expiry is checked lazily here; there is no background sweep
	Verify(ctx context.Context, sessionID string) (Session, error)

	// Logout destroys a session; unknown ids are a no-op
	Logout(ctx context.Context, sessionID string)
}

// TokenVerifierPort matches an actuator token against all currently valid
// sessions' issued tokens
type TokenVerifierPort interface {
	VerifyActuatorToken(ctx context.Context, token string) bool
}
