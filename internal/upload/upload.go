package upload

import (
	"context"

	"sharvari-site/internal/shared/logger"
	"sharvari-site/internal/upload/adapter/cloudinary"
	uhttp "sharvari-site/internal/upload/adapter/http"
	"sharvari-site/internal/upload/adapter/s3"
	"sharvari-site/internal/upload/config"
	"sharvari-site/internal/upload/domain/repository"
	"sharvari-site/internal/upload/usecase"

	"github.com/gofiber/fiber/v2"
)

// UploadModule wires the asset host selected by ASSET_HOST.
type UploadModule struct {
	Config   *config.Config
	Uploader *usecase.Uploader
	handler  *uhttp.UploadHandler
}

// NewUploadModule builds the uploader. A host that is not configured, or
// fails to initialise, leaves uploads disabled instead of failing startup.
func NewUploadModule(ctx context.Context, cfg *config.Config, notifier usecase.Notifier, events usecase.EventPublisher, log logger.Logger) *UploadModule {
	var host repository.AssetHost
	if cfg.Missing() == "" {
		switch cfg.Host {
		case config.HostCloudinary:
			host = cloudinary.NewHost(cfg.CloudinaryAPIBase, cfg.CloudinaryCloudName, cfg.CloudinaryUploadPreset, cfg.Timeout)
		case config.HostS3:
			s3Host, err := s3.NewHost(ctx, cfg)
			if err != nil {
				log.Errorf("S3 asset host unavailable: %v", err)
			} else {
				host = s3Host
			}
		}
	}

	uploader := usecase.NewUploader(host, cfg, notifier, events, log)
	return &UploadModule{
		Config:   cfg,
		Uploader: uploader,
		handler:  uhttp.NewUploadHandler(uploader),
	}
}

// RegisterRoutes mounts the admin upload endpoints.
func (m *UploadModule) RegisterRoutes(router fiber.Router, adminOnly fiber.Handler) {
	m.handler.RegisterRoutes(router, adminOnly)
}
