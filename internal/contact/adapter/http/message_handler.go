package http

import (
	"sharvari-site/internal/contact/domain/model"
	"sharvari-site/internal/contact/usecase"
	"sharvari-site/internal/shared/errors"
	"sharvari-site/internal/shared/validation"

	"github.com/gofiber/fiber/v2"
)

// MessageHandler serves the contact form and the dashboard inbox.
type MessageHandler struct {
	intake *usecase.Intake
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(intake *usecase.Intake) *MessageHandler {
	return &MessageHandler{intake: intake}
}

// RegisterRoutes mounts the public form and the admin inbox.
func (h *MessageHandler) RegisterRoutes(router fiber.Router, adminOnly fiber.Handler) {
	router.Post("/api/contact", h.Submit)

	admin := router.Group("/api/admin/messages", adminOnly)
	admin.Get("/", h.List)
	admin.Get("/:id", h.Get)
}

// Submit accepts a JSON or form-encoded contact form.
func (h *MessageHandler) Submit(c *fiber.Ctx) error {
	var req model.Submission
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	id, err := h.intake.Submit(c.UserContext(), req)
	if err != nil {
		resp := fiber.Map{"error": message(err)}
		if fields := validation.FieldErrors(err); fields != nil {
			resp["fields"] = fields
		}
		return c.Status(errors.HTTPStatus(err)).JSON(resp)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      id,
		"message": "Your message has been sent successfully.",
	})
}

// List returns all messages, newest first.
func (h *MessageHandler) List(c *fiber.Ctx) error {
	msgs := h.intake.List(c.UserContext())
	return c.JSON(fiber.Map{
		"messages": msgs,
		"count":    len(msgs),
	})
}

// Get returns one message.
func (h *MessageHandler) Get(c *fiber.Ctx) error {
	msg, err := h.intake.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return c.Status(errors.HTTPStatus(err)).JSON(fiber.Map{"error": message(err)})
	}
	return c.JSON(msg)
}

func message(err error) string {
	if appErr, ok := errors.AsAppError(err); ok && appErr.Type != errors.ErrorTypeInternal {
		return appErr.Message
	}
	return "Something went wrong. Please try again."
}
