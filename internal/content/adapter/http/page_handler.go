package http

import (
	"strconv"

	"sharvari-site/internal/content/domain/model"
	"sharvari-site/internal/content/usecase"
	settingsmodel "sharvari-site/internal/settings/domain/model"
	"sharvari-site/internal/shared/errors"
	"sharvari-site/internal/shared/utils"

	"github.com/gofiber/fiber/v2"
)

// SettingsProvider supplies the site-wide settings shown with every page.
type SettingsProvider interface {
	Get() settingsmodel.Settings
}

// PageHandler serves public pages and the admin page editor.
type PageHandler struct {
	editor   *usecase.Editor
	settings SettingsProvider
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(editor *usecase.Editor, settings SettingsProvider) *PageHandler {
	return &PageHandler{editor: editor, settings: settings}
}

var publicRoutes = map[string]model.PageID{
	"/":         model.PageHome,
	"/about":    model.PageAbout,
	"/services": model.PageServices,
	"/projects": model.PageProjects,
	"/clients":  model.PageClients,
	"/contact":  model.PageContact,
}

// RegisterPublicRoutes mounts the page routes and GET /api/pages/:page.
func (h *PageHandler) RegisterPublicRoutes(router fiber.Router) {
	for path, page := range publicRoutes {
		router.Get(path, h.publicPage(page))
	}
	router.Get("/api/pages/:page", h.PublicPage)
}

// RegisterAdminRoutes mounts the editor API behind adminOnly.
func (h *PageHandler) RegisterAdminRoutes(router fiber.Router, adminOnly fiber.Handler) {
	pages := router.Group("/api/admin/pages/:page", adminOnly)
	pages.Get("/", h.GetDraft)
	pages.Patch("/", h.SetFields)
	pages.Post("/reload", h.Reload)
	pages.Delete("/draft", h.Discard)
	pages.Post("/save", h.Save)

	pages.Post("/lists/:field", h.AddItem)
	pages.Put("/lists/:field/:index", h.ReplaceItem)
	pages.Delete("/lists/:field/:index", h.DeleteItem)
	pages.Post("/lists/:field/:index/move", h.MoveItem)

	pages.Put("/categories/:cat/title", h.SetCategoryTitle)
	pages.Put("/categories/:cat/columns", h.SetColumns)
	pages.Post("/categories/:cat/rows", h.AddRow)
	pages.Put("/categories/:cat/rows/:row", h.SetCell)
	pages.Delete("/categories/:cat/rows/:row", h.DeleteRow)
}

func (h *PageHandler) publicPage(page model.PageID) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return h.renderView(c, page)
	}
}

// PublicPage returns the read model of :page.
func (h *PageHandler) PublicPage(c *fiber.Ctx) error {
	page, err := model.ParsePageID(c.Params("page"))
	if err != nil {
		return fail(c, err)
	}
	return h.renderView(c, page)
}

func (h *PageHandler) renderView(c *fiber.Ctx, page model.PageID) error {
	view, err := h.editor.View(c.UserContext(), page)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"page":     view,
		"settings": h.settings.Get(),
	})
}

// GetDraft returns the caller's draft of :page.
func (h *PageHandler) GetDraft(c *fiber.Ctx) error {
	return h.withPage(c, func(owner string, page model.PageID) (*model.Page, error) {
		return h.editor.Draft(c.UserContext(), owner, page)
	})
}

// Reload discards unsaved edits and reads :page again.
func (h *PageHandler) Reload(c *fiber.Ctx) error {
	return h.withPage(c, func(owner string, page model.PageID) (*model.Page, error) {
		return h.editor.Load(c.UserContext(), owner, page)
	})
}

// Discard drops the caller's draft of :page.
func (h *PageHandler) Discard(c *fiber.Ctx) error {
	page, err := model.ParsePageID(c.Params("page"))
	if err != nil {
		return fail(c, err)
	}
	h.editor.Discard(owner(c), page)
	return c.SendStatus(fiber.StatusNoContent)
}

// SetFields applies a JSON object of scalar fields.
func (h *PageHandler) SetFields(c *fiber.Ctx) error {
	var patch map[string]interface{}
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "Invalid request body")
	}
	return h.withPage(c, func(owner string, page model.PageID) (*model.Page, error) {
		return h.editor.SetFields(c.UserContext(), owner, page, patch)
	})
}

// Save writes the caller's draft of :page.
func (h *PageHandler) Save(c *fiber.Ctx) error {
	return h.withPage(c, func(owner string, page model.PageID) (*model.Page, error) {
		return h.editor.Save(c.UserContext(), owner, page)
	})
}

// AddItem appends the request body, or the default element, to :field.
func (h *PageHandler) AddItem(c *fiber.Ctx) error {
	body := append([]byte(nil), c.Body()...)
	return h.withPage(c, func(owner string, page model.PageID) (*model.Page, error) {
		return h.editor.AddItem(c.UserContext(), owner, page, c.Params("field"), body)
	})
}

// ReplaceItem overwrites :field[:index] with the request body.
func (h *PageHandler) ReplaceItem(c *fiber.Ctx) error {
	i, err := c.ParamsInt("index")
	if err != nil {
		return badRequest(c, "Invalid index")
	}
	body := append([]byte(nil), c.Body()...)
	return h.withPage(c, func(owner string, page model.PageID) (*model.Page, error) {
		return h.editor.ReplaceItem(c.UserContext(), owner, page, c.Params("field"), i, body)
	})
}

// DeleteItem removes :field[:index].
func (h *PageHandler) DeleteItem(c *fiber.Ctx) error {
	i, err := c.ParamsInt("index")
	if err != nil {
		return badRequest(c, "Invalid index")
	}
	return h.withPage(c, func(owner string, page model.PageID) (*model.Page, error) {
		return h.editor.DeleteItem(c.UserContext(), owner, page, c.Params("field"), i)
	})
}

// MoveItem swaps :field[:index] with its neighbour; ?dir=up|down.
func (h *PageHandler) MoveItem(c *fiber.Ctx) error {
	i, err := c.ParamsInt("index")
	if err != nil {
		return badRequest(c, "Invalid index")
	}
	dir, err := model.ParseDirection(c.Query("dir"))
	if err != nil {
		return fail(c, err)
	}
	return h.withPage(c, func(owner string, page model.PageID) (*model.Page, error) {
		return h.editor.MoveItem(c.UserContext(), owner, page, c.Params("field"), i, dir)
	})
}

type categoryText struct {
	Title   string `json:"title"`
	Columns string `json:"columns"`
}

type cellRequest struct {
	Column string `json:"column"`
	Value  string `json:"value"`
}

// SetCategoryTitle renames category :cat.
func (h *PageHandler) SetCategoryTitle(c *fiber.Ctx) error {
	cat, err := c.ParamsInt("cat")
	if err != nil {
		return badRequest(c, "Invalid category")
	}
	var req categoryText
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	return h.withPage(c, func(owner string, page model.PageID) (*model.Page, error) {
		return h.editor.SetCategoryTitle(c.UserContext(), owner, page, cat, req.Title)
	})
}

// SetColumns takes {"columns": "A, B, C"}.
func (h *PageHandler) SetColumns(c *fiber.Ctx) error {
	cat, err := c.ParamsInt("cat")
	if err != nil {
		return badRequest(c, "Invalid category")
	}
	var req categoryText
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	return h.withPage(c, func(owner string, page model.PageID) (*model.Page, error) {
		return h.editor.SetColumns(c.UserContext(), owner, page, cat, req.Columns)
	})
}

// AddRow appends an empty row to category :cat.
func (h *PageHandler) AddRow(c *fiber.Ctx) error {
	cat, err := c.ParamsInt("cat")
	if err != nil {
		return badRequest(c, "Invalid category")
	}
	return h.withPage(c, func(owner string, page model.PageID) (*model.Page, error) {
		return h.editor.AddRow(c.UserContext(), owner, page, cat)
	})
}

// SetCell takes {"column": ..., "value": ...}.
func (h *PageHandler) SetCell(c *fiber.Ctx) error {
	cat, row, err := categoryRow(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req cellRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	return h.withPage(c, func(owner string, page model.PageID) (*model.Page, error) {
		return h.editor.SetCell(c.UserContext(), owner, page, cat, row, req.Column, req.Value)
	})
}

// DeleteRow removes a row of category :cat.
func (h *PageHandler) DeleteRow(c *fiber.Ctx) error {
	cat, row, err := categoryRow(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	return h.withPage(c, func(owner string, page model.PageID) (*model.Page, error) {
		return h.editor.DeleteRow(c.UserContext(), owner, page, cat, row)
	})
}

func categoryRow(c *fiber.Ctx) (int, int, error) {
	cat, err := strconv.Atoi(c.Params("cat"))
	if err != nil {
		return 0, 0, errors.NewValidationError("Invalid category")
	}
	row, err := strconv.Atoi(c.Params("row"))
	if err != nil {
		return 0, 0, errors.NewValidationError("Invalid row")
	}
	return cat, row, nil
}

func (h *PageHandler) withPage(c *fiber.Ctx, fn func(owner string, page model.PageID) (*model.Page, error)) error {
	page, err := model.ParsePageID(c.Params("page"))
	if err != nil {
		return fail(c, err)
	}
	p, err := fn(owner(c), page)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(p)
}

// owner keys drafts by the signed-in user.
func owner(c *fiber.Ctx) string {
	if uid, err := utils.GetUserIDFromContext(c.UserContext()); err == nil {
		return uid
	}
	return "anonymous"
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

func fail(c *fiber.Ctx, err error) error {
	message := "Something went wrong. Please try again."
	if appErr, ok := errors.AsAppError(err); ok && appErr.Type != errors.ErrorTypeInternal {
		message = appErr.Message
	}
	return c.Status(errors.HTTPStatus(err)).JSON(fiber.Map{"error": message})
}
