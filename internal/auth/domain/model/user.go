package model

import (
	"errors"
	"time"
)

// RoleAdmin is the only role with access to the dashboard.
const RoleAdmin = "admin"

// Collections used by the auth module.
const (
	CredentialsCollection = "credentials"
	UsersCollection       = "users"
)

var (
	ErrUserExists        = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrPasswordTooShort  = errors.New("password too short")
	ErrInvalidEmail      = errors.New("invalid email")
	ErrTokenRevoked      = errors.New("token revoked")
	ErrNoSession         = errors.New("no active session")
	ErrRevocationBackend = errors.New("revocation store unavailable")
)

// Credential is the identity-provider account of a user.
type Credential struct {
	UID          string    `json:"uid"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
