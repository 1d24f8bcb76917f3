package contact

import (
	chttp "sharvari-site/internal/contact/adapter/http"
	"sharvari-site/internal/contact/usecase"
	"sharvari-site/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// ContactModule owns contact form intake.
type ContactModule struct {
	Intake  *usecase.Intake
	handler *chttp.MessageHandler
}

// NewContactModule creates the module on top of the store client.
func NewContactModule(store usecase.DocumentClient, log logger.Logger) *ContactModule {
	intake := usecase.NewIntake(store, log)
	return &ContactModule{
		Intake:  intake,
		handler: chttp.NewMessageHandler(intake),
	}
}

// RegisterRoutes mounts the contact routes.
func (m *ContactModule) RegisterRoutes(router fiber.Router, adminOnly fiber.Handler) {
	m.handler.RegisterRoutes(router, adminOnly)
}
