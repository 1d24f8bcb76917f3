package http

import (
	"sharvari-site/internal/settings/usecase"

	"github.com/gofiber/fiber/v2"
)

// SettingsHandler serves the public site settings.
type SettingsHandler struct {
	settings *usecase.SiteSettings
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settings *usecase.SiteSettings) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// RegisterRoutes mounts GET /api/settings.
func (h *SettingsHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/api/settings", h.Get)
}

// Get returns the current settings used by the header and footer.
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"settings": h.settings.Get(),
		"loading":  h.settings.Loading(),
	})
}
