package auth

import (
	"fmt"

	authhttp "sharvari-site/internal/auth/adapter/http"
	"sharvari-site/internal/auth/adapter/persistence"
	"sharvari-site/internal/auth/adapter/security"
	"sharvari-site/internal/auth/config"
	"sharvari-site/internal/auth/domain/model"
	"sharvari-site/internal/auth/domain/repository"
	"sharvari-site/internal/auth/usecase"
	"sharvari-site/internal/shared/eventbus"
	"sharvari-site/internal/shared/logger"
	storerepo "sharvari-site/internal/store/domain/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// AuthModule represents the complete authentication module
type AuthModule struct {
	Config     *config.Config
	Identity   *usecase.Identity
	Middleware *authhttp.AuthMiddleware
	handler    *authhttp.AuthHTTPHandler
}

// NewAuthModule wires credentials on the document store, JWT sessions and
// token revocation. With a nil redisClient revocations are kept in memory.
func NewAuthModule(
	cfg *config.Config,
	docs storerepo.DocumentRepository,
	roles usecase.RoleReader,
	bus *eventbus.EventBus,
	redisClient *redis.Client,
	log logger.Logger,
) (*AuthModule, error) {
	tokenSvc, err := security.NewJWTokenService(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	var revoked repository.RevocationStore
	if redisClient != nil {
		revoked = persistence.NewRedisRevocationStore(redisClient)
	} else {
		revoked = persistence.NewMemoryRevocationStore()
	}

	identity := usecase.NewIdentity(
		persistence.NewDocumentCredentialRepository(docs),
		tokenSvc,
		revoked,
		bus,
		cfg,
		log,
	)
	middleware := authhttp.NewAuthMiddleware(identity, roles, cfg, log)

	return &AuthModule{
		Config:     cfg,
		Identity:   identity,
		Middleware: middleware,
		handler:    authhttp.NewAuthHTTPHandler(identity, roles, middleware, cfg),
	}, nil
}

// RegisterRoutes registers authentication routes with the provided router
func (am *AuthModule) RegisterRoutes(router fiber.Router) {
	am.handler.RegisterRoutes(router)
}

// AdminOnly gates JSON admin endpoints with 401/403 answers.
func (am *AuthModule) AdminOnly() fiber.Handler {
	return am.Middleware.RequireRole(model.RoleAdmin)
}

// AdminPage gates the dashboard page, redirecting everyone else to the login page.
func (am *AuthModule) AdminPage() fiber.Handler {
	return am.Middleware.RequireAdminPage()
}

// Stop performs cleanup when the module is shut down
func (am *AuthModule) Stop() error {
	return nil
}
