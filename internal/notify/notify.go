package notify

import (
	nhttp "sharvari-site/internal/notify/adapter/http"
	"sharvari-site/internal/notify/adapter/persistence"
	"sharvari-site/internal/notify/config"
	"sharvari-site/internal/notify/domain/repository"
	"sharvari-site/internal/notify/usecase"
	"sharvari-site/internal/shared/eventbus"
	"sharvari-site/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// NotifyModule bundles the operator notification channel.
type NotifyModule struct {
	Config  *config.Config
	Store   repository.NotificationStore
	Service *usecase.Service
	logger  logger.Logger
}

// NewNotifyModule builds the module. With a nil redisClient history is kept in memory.
func NewNotifyModule(cfg *config.Config, bus *eventbus.EventBus, redisClient *redis.Client, log logger.Logger) *NotifyModule {
	var store repository.NotificationStore
	if redisClient != nil {
		store = persistence.NewRedisNotificationStore(redisClient, cfg.StreamName, cfg.StreamMaxLen, log)
		log.Infof("Notifications recorded to Redis stream %s", cfg.StreamName)
	} else {
		store = persistence.NewMemoryNotificationStore(int(cfg.StreamMaxLen))
		log.Info("Notifications recorded in memory")
	}

	return &NotifyModule{
		Config:  cfg,
		Store:   store,
		Service: usecase.NewService(bus, store, log),
		logger:  log,
	}
}

// RegisterRoutes mounts the history and websocket endpoints.
func (m *NotifyModule) RegisterRoutes(router fiber.Router, adminOnly fiber.Handler, watch nhttp.SessionWatch) {
	nhttp.NewNotificationHandler(m.Service, m.Config, watch, m.logger).RegisterRoutes(router, adminOnly)
}
