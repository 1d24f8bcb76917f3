package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"regexp"
	"time"

	"sharvari-site/internal/auth/config"
	"sharvari-site/internal/auth/domain/model"
	"sharvari-site/internal/auth/domain/repository"
	"sharvari-site/internal/shared/errors"
	"sharvari-site/internal/shared/eventbus"
	"sharvari-site/internal/shared/logger"
	"sharvari-site/internal/shared/utils"
	storemodel "sharvari-site/internal/store/domain/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const msgInvalidCredentials = "Invalid email or password"

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IdentityProvider is the session API used by the HTTP layer and the
// per-request session contexts.
type IdentityProvider interface {
	SignIn(ctx context.Context, email, password string) (*model.Session, error)
	SignOut(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*model.Session, error)
	Observe(fn func(model.SessionChange)) func()
}

// EventBus is the part of the shared bus used to broadcast session changes.
type EventBus interface {
	Publish(ctx context.Context, event eventbus.Event) error
	Subscribe(eventType string, handler eventbus.Handler) eventbus.CancelFunc
}

// ProfileWriter writes user profile documents.
type ProfileWriter interface {
	UpdateDocument(ctx context.Context, collection, id string, fields storemodel.Fields) error
}

// Identity implements IdentityProvider with bcrypt credentials and JWT sessions.
type Identity struct {
	creds   repository.CredentialRepository
	tokens  repository.TokenService
	revoked repository.RevocationStore
	bus     EventBus
	config  *config.Config
	logger  logger.Logger
	now     func() time.Time
}

// NewIdentity creates a new Identity.
func NewIdentity(
	creds repository.CredentialRepository,
	tokens repository.TokenService,
	revoked repository.RevocationStore,
	bus EventBus,
	cfg *config.Config,
	log logger.Logger,
) *Identity {
	if log == nil {
		log = eventbus.NoopLogger()
	}
	return &Identity{
		creds:   creds,
		tokens:  tokens,
		revoked: revoked,
		bus:     bus,
		config:  cfg,
		logger:  log.WithComponent("identity"),
		now:     time.Now,
	}
}

var _ IdentityProvider = (*Identity)(nil)

// SignIn checks the credentials and opens a new session.
func (id *Identity) SignIn(ctx context.Context, email, password string) (*model.Session, error) {
	email = utils.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, errors.NewValidationError("Email and password are required")
	}

	cred, err := id.creds.GetByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, model.ErrUserNotFound) {
			return nil, errors.NewAuthenticationError(msgInvalidCredentials).WithCause(err)
		}
		id.logger.WithContext(ctx).Errorf("Credential lookup failed for %s: %v", email, err)
		return nil, errors.NewStoreError("sign-in is unavailable").WithCause(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return nil, errors.NewAuthenticationError(msgInvalidCredentials).WithCause(model.ErrInvalidPassword)
	}

	token, claims, err := id.tokens.GenerateToken(ctx, cred.UID, cred.Email)
	if err != nil {
		return nil, errors.NewInternalError("failed to issue token").WithCause(err)
	}

	sess := sessionFromClaims(token, claims)
	id.logger.WithContext(ctx).Infof("User %s signed in", sess.UID)
	id.publish(ctx, model.SessionChange{Kind: model.SignedIn, Session: *sess})
	return sess, nil
}

// SignOut revokes the token until it would have expired. Signing out an
// invalid or already revoked token is a no-op.
func (id *Identity) SignOut(ctx context.Context, token string) error {
	claims, err := id.tokens.ValidateToken(ctx, token)
	if err != nil {
		return nil
	}

	if err := id.revoked.Revoke(ctx, claims.ID, claims.Remaining(id.now())); err != nil {
		id.logger.WithContext(ctx).Errorf("Failed to revoke token for %s: %v", claims.UserID, err)
		return errors.NewInfrastructureError("failed to sign out").WithCause(err)
	}

	sess := sessionFromClaims(token, claims)
	id.logger.WithContext(ctx).Infof("User %s signed out", sess.UID)
	id.publish(ctx, model.SessionChange{Kind: model.SignedOut, Session: *sess})
	return nil
}

// Authenticate resolves a token to its session. Revoked tokens and an
// unreachable revocation store are both rejected.
func (id *Identity) Authenticate(ctx context.Context, token string) (*model.Session, error) {
	if token == "" {
		return nil, errors.NewAuthenticationError("Authentication required").WithCause(model.ErrNoSession)
	}

	claims, err := id.tokens.ValidateToken(ctx, token)
	if err != nil {
		return nil, errors.NewAuthenticationError("Invalid token").WithCause(err)
	}

	revoked, err := id.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		id.logger.WithContext(ctx).Warnf("Revocation check failed: %v", err)
		return nil, errors.NewAuthenticationError("Invalid token").WithCause(err)
	}
	if revoked {
		return nil, errors.NewAuthenticationError("Session has ended").WithCause(model.ErrTokenRevoked)
	}

	return sessionFromClaims(token, claims), nil
}

// Observe registers fn for every session change and returns its unsubscribe func.
func (id *Identity) Observe(fn func(model.SessionChange)) func() {
	cancel := id.bus.Subscribe(eventbus.EventTypeSessionChanged, func(ctx context.Context, event eventbus.Event) error {
		if change, ok := event.Data().(model.SessionChange); ok {
			fn(change)
		}
		return nil
	})
	return func() { cancel() }
}

// CreateAccount registers a new credential with a fresh uid.
func (id *Identity) CreateAccount(ctx context.Context, email, password string) (*model.Credential, error) {
	email = utils.NormalizeEmail(email)
	if !emailRegex.MatchString(email) {
		return nil, model.ErrInvalidEmail
	}
	if len(password) < id.config.MinPasswordLength {
		return nil, fmt.Errorf("%w: at least %d characters required", model.ErrPasswordTooShort, id.config.MinPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	cred := &model.Credential{
		UID:          uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    id.now(),
	}
	if err := id.creds.Create(ctx, cred); err != nil {
		return nil, err
	}
	id.logger.WithContext(ctx).Infof("Account %s created for %s", cred.UID, email)
	return cred, nil
}

// ProvisionAdmin makes sure an account exists for email and marks its
// profile document as admin. An existing account is reused when the
// password matches.
func (id *Identity) ProvisionAdmin(ctx context.Context, profiles ProfileWriter, email, password string) (*model.Credential, error) {
	cred, err := id.CreateAccount(ctx, email, password)
	if stderrors.Is(err, model.ErrUserExists) {
		cred, err = id.creds.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) != nil {
			return nil, model.ErrInvalidPassword
		}
	} else if err != nil {
		return nil, err
	}

	profile := storemodel.Fields{
		"role":  model.RoleAdmin,
		"email": cred.Email,
	}
	if err := profiles.UpdateDocument(ctx, model.UsersCollection, cred.UID, profile); err != nil {
		return nil, err
	}
	return cred, nil
}

func (id *Identity) publish(ctx context.Context, change model.SessionChange) {
	if id.bus == nil {
		return
	}
	if err := id.bus.Publish(ctx, eventbus.NewBasicEvent(eventbus.EventTypeSessionChanged, change)); err != nil {
		id.logger.WithContext(ctx).Warnf("Session change observers failed: %v", err)
	}
}

func sessionFromClaims(token string, claims *repository.Claims) *model.Session {
	sess := &model.Session{
		UID:     claims.UserID,
		Email:   claims.Email,
		Token:   token,
		TokenID: claims.ID,
	}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return sess
}
