package settings

import (
	"context"

	shttp "sharvari-site/internal/settings/adapter/http"
	"sharvari-site/internal/settings/usecase"
	"sharvari-site/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// SettingsModule owns the Site-Wide Settings singleton.
type SettingsModule struct {
	Service *usecase.SiteSettings
	handler *shttp.SettingsHandler
}

// NewSettingsModule creates the settings singleton and performs its first read.
func NewSettingsModule(ctx context.Context, reader usecase.DocumentReader, bus usecase.EventBus, log logger.Logger) *SettingsModule {
	svc := usecase.NewSiteSettings(reader, log)
	svc.Init(ctx, bus)
	return &SettingsModule{
		Service: svc,
		handler: shttp.NewSettingsHandler(svc),
	}
}

// RegisterRoutes mounts the public settings endpoint.
func (m *SettingsModule) RegisterRoutes(router fiber.Router) {
	m.handler.RegisterRoutes(router)
}

// Stop detaches the singleton from the event bus.
func (m *SettingsModule) Stop() {
	m.Service.Teardown()
}
