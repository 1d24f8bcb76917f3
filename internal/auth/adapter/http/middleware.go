package http

import (
	"context"
	"strings"
	"sync"
	"time"

	"sharvari-site/internal/auth/config"
	"sharvari-site/internal/auth/domain/model"
	"sharvari-site/internal/auth/usecase"
	"sharvari-site/internal/shared/contextkeys"
	"sharvari-site/internal/shared/errors"
	"sharvari-site/internal/shared/logger"
	"sharvari-site/internal/shared/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

const localsSessionContext = "auth.sessionContext"

// AuthMiddleware resolves the caller's Session/Role Context and gates routes on it.
type AuthMiddleware struct {
	identity usecase.IdentityProvider
	roles    usecase.RoleReader
	config   *config.Config
	logger   logger.Logger
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(identity usecase.IdentityProvider, roles usecase.RoleReader, cfg *config.Config, log logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		identity: identity,
		roles:    roles,
		config:   cfg,
		logger:   log.WithComponent("auth-middleware"),
	}
}

// SecurityHeaders adds security headers
func (m *AuthMiddleware) SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		if m.config.CookieSecure {
			c.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		return c.Next()
	}
}

// RateLimiter limits login attempts per client.
func (m *AuthMiddleware) RateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               m.config.LoginRateLimit,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		// c.IP honours a proxy header only when the server trusts the peer.
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many login attempts. Please try again later.",
			})
		},
	})
}

// RequestID tags every request with an X-Request-ID.
func (m *AuthMiddleware) RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		ContextKey: string(contextkeys.RequestIDKey),
	})
}

// Resolve builds the request's Session/Role Context from the bearer token
// or session cookie. It never rejects a request.
func (m *AuthMiddleware) Resolve() fiber.Handler {
	return func(c *fiber.Ctx) error {
		m.sessionContext(c)
		return c.Next()
	}
}

// Protect requires any authenticated session.
func (m *AuthMiddleware) Protect() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !m.sessionContext(c).State().IsAuthenticated() {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}
		return c.Next()
	}
}

// RequireRole requires an authenticated session holding role. Admin is the
// only role the site knows.
func (m *AuthMiddleware) RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sc := m.sessionContext(c)
		if !sc.State().IsAuthenticated() {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}
		if role != model.RoleAdmin || !sc.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Insufficient permissions",
			})
		}
		return c.Next()
	}
}

// RequireAdminPage sends every non-admin visitor of a dashboard page to the login page.
func (m *AuthMiddleware) RequireAdminPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !m.sessionContext(c).IsAdmin() {
			return c.Redirect(m.config.LoginPath, fiber.StatusFound)
		}
		return c.Next()
	}
}

// SessionWatch authorises long-lived admin connections. The returned done
// channel is closed as soon as the caller's session stops being admin,
// for example when the token is signed out elsewhere.
func (m *AuthMiddleware) SessionWatch() func(c *fiber.Ctx) (<-chan struct{}, func(), error) {
	return func(c *fiber.Ctx) (<-chan struct{}, func(), error) {
		token, err := m.extractToken(c)
		if err != nil {
			// Browsers cannot set headers on a websocket upgrade.
			token = c.Query("token")
		}
		if token == "" {
			return nil, nil, errors.NewAuthenticationError("Authentication required")
		}
		sess, err := m.identity.Authenticate(c.UserContext(), token)
		if err != nil {
			return nil, nil, err
		}

		sc := usecase.NewSessionContext(m.roles, m.logger)
		sc.Init(c.UserContext(), m.identity, sess)
		if !sc.IsAdmin() {
			sc.Teardown()
			return nil, nil, errors.NewAuthorizationError("Admin access required")
		}

		done := make(chan struct{})
		var once sync.Once
		end := func() { once.Do(func() { close(done) }) }
		unsubscribe := sc.Subscribe(func(state model.RoleState) {
			if state != model.AuthenticatedAdmin {
				end()
			}
		})
		if !sc.IsAdmin() {
			end()
		}

		release := func() {
			unsubscribe()
			sc.Teardown()
		}
		return done, release, nil
	}
}

// SessionContext returns the Session/Role Context resolved for the request.
func SessionContext(c *fiber.Ctx) (*usecase.SessionContext, bool) {
	sc, ok := c.Locals(localsSessionContext).(*usecase.SessionContext)
	return sc, ok
}

func (m *AuthMiddleware) sessionContext(c *fiber.Ctx) *usecase.SessionContext {
	if sc, ok := SessionContext(c); ok {
		return sc
	}

	if rid, ok := c.Locals(string(contextkeys.RequestIDKey)).(string); ok && rid != "" {
		c.SetUserContext(context.WithValue(c.UserContext(), contextkeys.RequestIDKey, rid))
	}

	sc := usecase.NewSessionContext(m.roles, m.logger)
	var sess *model.Session
	if token, err := m.extractToken(c); err == nil {
		resolved, err := m.identity.Authenticate(c.UserContext(), token)
		if err == nil {
			sess = resolved
		} else {
			m.logger.WithContext(c.UserContext()).Debugf("Ignoring token: %v", err)
		}
	}
	sc.Init(c.UserContext(), nil, sess)

	if sess != nil {
		c.SetUserContext(utils.WithUser(c.UserContext(), sess.UID, sess.Email))
	}
	c.Locals(localsSessionContext, sc)
	return sc
}

// extractToken extracts the token from the Authorization header or the session cookie.
func (m *AuthMiddleware) extractToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(authHeader, "Bearer ") {
		if token := strings.TrimPrefix(authHeader, "Bearer "); token != "" {
			return token, nil
		}
	}

	if token := c.Cookies(m.config.CookieName); token != "" {
		return token, nil
	}

	return "", fiber.NewError(fiber.StatusUnauthorized, "No authentication token found")
}
