package http

import (
	"io"
	"mime/multipart"
	"strconv"

	"sharvari-site/internal/shared/errors"
	"sharvari-site/internal/upload/config"
	"sharvari-site/internal/upload/domain/model"
	"sharvari-site/internal/upload/usecase"

	"github.com/gofiber/fiber/v2"
)

// UploadHandler accepts image uploads from the dashboard.
type UploadHandler struct {
	uploader *usecase.Uploader
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploader *usecase.Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

// RegisterRoutes mounts POST /api/admin/uploads behind adminOnly.
func (h *UploadHandler) RegisterRoutes(router fiber.Router, adminOnly fiber.Handler) {
	router.Post("/api/admin/uploads", adminOnly, h.Upload)
	router.Get("/api/admin/uploads/status", adminOnly, h.Status)
}

// Status tells the dashboard whether uploads are possible.
func (h *UploadHandler) Status(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"enabled": h.uploader.Enabled()})
}

// Upload reads the multipart fields files, folder and multiple.
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid multipart form",
		})
	}

	files := make([]model.File, 0, len(form.File["files"]))
	for _, fh := range form.File["files"] {
		file, err := readFile(fh)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Could not read " + fh.Filename,
			})
		}
		files = append(files, file)
	}

	multiple, _ := strconv.ParseBool(c.FormValue("multiple"))
	res, err := h.uploader.Upload(c.UserContext(), usecase.Request{
		Files:    files,
		Folder:   c.FormValue("folder"),
		Multiple: multiple,
	})
	if err != nil {
		message := "One or more uploads failed. Please try again."
		if appErr, ok := errors.AsAppError(err); ok {
			message = appErr.Message
		}
		return c.Status(errors.HTTPStatus(err)).JSON(fiber.Map{
			"error": message,
		})
	}
	return c.JSON(res)
}

// readFile loads the part into memory unless it is already over the size
// limit, in which case only its metadata is kept for validation.
func readFile(fh *multipart.FileHeader) (model.File, error) {
	file := model.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
	}
	if fh.Size > config.MaxFileSize {
		return file, nil
	}

	f, err := fh.Open()
	if err != nil {
		return file, err
	}
	defer f.Close()

	file.Data, err = io.ReadAll(f)
	return file, err
}
