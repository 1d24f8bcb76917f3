package repository

import (
	"context"
	"time"

	"sharvari-site/internal/auth/domain/model"
)

// CredentialRepository stores identity-provider accounts.
type CredentialRepository interface {
	// Create stores a new credential and fails with model.ErrUserExists when
	// the email is already registered.
	Create(ctx context.Context, cred *model.Credential) error
	// GetByEmail returns model.ErrUserNotFound for unknown emails.
	GetByEmail(ctx context.Context, email string) (*model.Credential, error)
}

// RevocationStore remembers signed-out token ids until they would have expired anyway.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
