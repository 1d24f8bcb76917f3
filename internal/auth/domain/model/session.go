package model

import "time"

// Session is an authenticated identity-provider session.
type Session struct {
	UID       string    `json:"uid"`
	Email     string    `json:"email"`
	Token     string    `json:"-"`
	TokenID   string    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ChangeKind says what happened to a session.
type ChangeKind string

const (
	SignedIn  ChangeKind = "signed_in"
	SignedOut ChangeKind = "signed_out"
)

// SessionChange is pushed to observers whenever a session starts or ends.
type SessionChange struct {
	Kind    ChangeKind
	Session Session
}

// RoleState is the state of a Session/Role context.
type RoleState int

const (
	Loading RoleState = iota
	AuthenticatedAdmin
	AuthenticatedNonAdmin
	Unauthenticated
)

func (s RoleState) String() string {
	switch s {
	case Loading:
		return "loading"
	case AuthenticatedAdmin:
		return "authenticated_admin"
	case AuthenticatedNonAdmin:
		return "authenticated_non_admin"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// IsAuthenticated reports whether the state carries a signed-in user.
func (s RoleState) IsAuthenticated() bool {
	return s == AuthenticatedAdmin || s == AuthenticatedNonAdmin
}
