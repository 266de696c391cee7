package entity

import "context"

// AuthUser is the identity the remote auth service vouches for.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Profile is the denormalized role record keyed by the auth user id.
type Profile struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
}

func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == "admin"
}

// Auth event kinds, mirroring the remote service's state-change stream.
type AuthEventType string

const (
	AuthEventSignedIn       AuthEventType = "SIGNED_IN"
	AuthEventSignedOut      AuthEventType = "SIGNED_OUT"
	AuthEventTokenRefreshed AuthEventType = "TOKEN_REFRESHED"
)

// AuthEvent is one state-change notification. User is nil on sign-out.
type AuthEvent struct {
	Type AuthEventType
	User *AuthUser
}

type ProfileRepositoryInterface interface {
	// FindByUserID returns nil without error when no profile row exists.
	FindByUserID(ctx context.Context, userID string) (*Profile, error)
}
