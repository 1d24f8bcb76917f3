package http

import (
	"time"

	"sharvari-site/internal/auth/config"
	"sharvari-site/internal/auth/domain/model"
	"sharvari-site/internal/auth/usecase"
	"sharvari-site/internal/shared/errors"

	"github.com/gofiber/fiber/v2"
)

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// SessionResponse describes the caller's session.
type SessionResponse struct {
	State     string         `json:"state"`
	User      *model.Session `json:"user,omitempty"`
	Token     string         `json:"token,omitempty"`
	IsAdmin   bool           `json:"isAdmin"`
	Redirect  string         `json:"redirect,omitempty"`
	ExpiresAt *time.Time     `json:"expiresAt,omitempty"`
}

// AuthHTTPHandler handles HTTP requests for authentication
type AuthHTTPHandler struct {
	identity   usecase.IdentityProvider
	roles      usecase.RoleReader
	middleware *AuthMiddleware
	config     *config.Config
}

// NewAuthHTTPHandler creates a new authentication HTTP handler
func NewAuthHTTPHandler(identity usecase.IdentityProvider, roles usecase.RoleReader, middleware *AuthMiddleware, cfg *config.Config) *AuthHTTPHandler {
	return &AuthHTTPHandler{
		identity:   identity,
		roles:      roles,
		middleware: middleware,
		config:     cfg,
	}
}

// RegisterRoutes sets up the login entry point and the session API.
func (h *AuthHTTPHandler) RegisterRoutes(router fiber.Router) {
	router.Get(h.config.LoginPath, h.middleware.Resolve(), h.LoginPage)

	api := router.Group("/api/auth")
	api.Post("/login", h.middleware.RateLimiter(), h.Login)
	api.Post("/logout", h.Logout)
	api.Get("/session", h.middleware.Resolve(), h.Session)
}

// LoginPage is the public login entry point. Admins who are already signed
// in are sent straight to the dashboard.
func (h *AuthHTTPHandler) LoginPage(c *fiber.Ctx) error {
	if sc, ok := SessionContext(c); ok && sc.IsAdmin() {
		return c.Redirect(h.config.AdminPath, fiber.StatusFound)
	}
	return c.JSON(fiber.Map{
		"page":   "login",
		"action": "/api/auth/login",
		"fields": []string{"email", "password"},
	})
}

// Login handles user login
func (h *AuthHTTPHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	sess, err := h.identity.SignIn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return h.fail(c, err)
	}

	sc := usecase.NewSessionContext(h.roles, nil)
	sc.Init(c.UserContext(), nil, sess)

	h.setCookie(c, sess.Token, sess.ExpiresAt)
	return c.JSON(h.sessionResponse(sc, sess.Token))
}

// Logout ends the caller's session. It succeeds even without a session.
func (h *AuthHTTPHandler) Logout(c *fiber.Ctx) error {
	if token, err := h.middleware.extractToken(c); err == nil {
		if err := h.identity.SignOut(c.UserContext(), token); err != nil {
			return h.fail(c, err)
		}
	}

	h.clearCookie(c)
	return c.JSON(fiber.Map{
		"message": "Logged out successfully",
	})
}

// Session reports the caller's Session/Role Context.
func (h *AuthHTTPHandler) Session(c *fiber.Ctx) error {
	sc, ok := SessionContext(c)
	if !ok {
		return c.JSON(SessionResponse{State: model.Unauthenticated.String()})
	}
	return c.JSON(h.sessionResponse(sc, ""))
}

func (h *AuthHTTPHandler) sessionResponse(sc *usecase.SessionContext, token string) SessionResponse {
	resp := SessionResponse{
		State:   sc.State().String(),
		User:    sc.Session(),
		Token:   token,
		IsAdmin: sc.IsAdmin(),
	}
	if resp.User != nil && !resp.User.ExpiresAt.IsZero() {
		exp := resp.User.ExpiresAt
		resp.ExpiresAt = &exp
	}
	if resp.IsAdmin {
		resp.Redirect = h.config.AdminPath
	}
	return resp
}

func (h *AuthHTTPHandler) fail(c *fiber.Ctx, err error) error {
	message := "Something went wrong. Please try again."
	if appErr, ok := errors.AsAppError(err); ok && appErr.Type != errors.ErrorTypeInternal {
		message = appErr.Message
	}
	return c.Status(errors.HTTPStatus(err)).JSON(fiber.Map{
		"error": message,
	})
}

// Helper methods

func (h *AuthHTTPHandler) setCookie(c *fiber.Ctx, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     h.config.CookieName,
		Value:    token,
		Path:     h.config.CookiePath,
		Domain:   h.config.CookieDomain,
		MaxAge:   int(h.config.AccessTokenTTL.Seconds()),
		Secure:   h.config.CookieSecure,
		HTTPOnly: h.config.CookieHTTPOnly,
		SameSite: h.config.CookieSameSite,
		Expires:  expires,
	})
}

func (h *AuthHTTPHandler) clearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     h.config.CookieName,
		Value:    "",
		Path:     h.config.CookiePath,
		Domain:   h.config.CookieDomain,
		MaxAge:   -1,
		Secure:   h.config.CookieSecure,
		HTTPOnly: h.config.CookieHTTPOnly,
		SameSite: h.config.CookieSameSite,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}
