package http

import (
	"sharvari-site/internal/content/domain/model"
	"sharvari-site/internal/shared/utils"

	"github.com/gofiber/fiber/v2"
)

// UploadStatus reports whether image uploads are available.
type UploadStatus interface {
	Enabled() bool
}

// DashboardHandler serves the bootstrap document of the admin dashboard.
type DashboardHandler struct {
	path    string
	uploads UploadStatus
}

// NewDashboardHandler creates a new DashboardHandler mounted at path.
func NewDashboardHandler(path string, uploads UploadStatus) *DashboardHandler {
	return &DashboardHandler{path: path, uploads: uploads}
}

// RegisterRoutes mounts the dashboard page behind adminPage.
func (h *DashboardHandler) RegisterRoutes(router fiber.Router, adminPage fiber.Handler) {
	router.Get(h.path, adminPage, h.Dashboard)
}

// Dashboard lists the editable pages with their tabs.
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	email, _ := utils.GetUserEmailFromContext(c.UserContext())
	return c.JSON(fiber.Map{
		"pages":          model.Pages,
		"activePage":     model.PageHome,
		"user":           email,
		"uploadsEnabled": h.uploads != nil && h.uploads.Enabled(),
	})
}
