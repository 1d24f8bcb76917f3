package persistence

import (
	"context"
	"fmt"
	"time"

	"sharvari-site/internal/auth/domain/model"
	"sharvari-site/internal/auth/domain/repository"
	"sharvari-site/internal/shared/errors"
	"sharvari-site/internal/shared/utils"
	storemodel "sharvari-site/internal/store/domain/model"
	storerepo "sharvari-site/internal/store/domain/repository"
)

const (
	fieldUID          = "uid"
	fieldEmail        = "email"
	fieldPasswordHash = "passwordHash"
)

// DocumentCredentialRepository keeps credentials as documents of the
// credentials collection, keyed by normalized email.
type DocumentCredentialRepository struct {
	docs storerepo.DocumentRepository
}

// NewDocumentCredentialRepository creates a credential repository on top of the document store.
func NewDocumentCredentialRepository(docs storerepo.DocumentRepository) *DocumentCredentialRepository {
	return &DocumentCredentialRepository{docs: docs}
}

var _ repository.CredentialRepository = (*DocumentCredentialRepository)(nil)

func (r *DocumentCredentialRepository) Create(ctx context.Context, cred *model.Credential) error {
	email := utils.NormalizeEmail(cred.Email)
	if email == "" {
		return model.ErrInvalidEmail
	}

	_, err := r.docs.Get(ctx, model.CredentialsCollection, email)
	switch {
	case err == nil:
		return model.ErrUserExists
	case !errors.IsNotFound(err):
		return fmt.Errorf("failed to check existing credential: %w", err)
	}

	fields := storemodel.Fields{
		fieldUID:                  cred.UID,
		fieldEmail:                email,
		fieldPasswordHash:         cred.PasswordHash,
		storemodel.FieldCreatedAt: storemodel.ServerTimestamp,
	}
	if err := r.docs.Set(ctx, model.CredentialsCollection, email, fields, false); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}
	cred.Email = email
	if cred.CreatedAt.IsZero() {
		cred.CreatedAt = time.Now()
	}
	return nil
}

func (r *DocumentCredentialRepository) GetByEmail(ctx context.Context, email string) (*model.Credential, error) {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return nil, model.ErrUserNotFound
	}

	doc, err := r.docs.Get(ctx, model.CredentialsCollection, email)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load credential: %w", err)
	}

	cred := &model.Credential{
		UID:          doc.Fields.String(fieldUID),
		Email:        doc.Fields.String(fieldEmail),
		PasswordHash: doc.Fields.String(fieldPasswordHash),
	}
	if t, ok := doc.Fields.Time(storemodel.FieldCreatedAt); ok {
		cred.CreatedAt = t
	}
	if cred.UID == "" || cred.PasswordHash == "" {
		return nil, fmt.Errorf("credential %s is incomplete", email)
	}
	return cred, nil
}
