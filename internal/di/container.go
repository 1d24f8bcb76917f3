package di

import (
	"context"
	"fmt"
	"sync"
	"time"

	"sharvari-site/internal/auth"
	authconfig "sharvari-site/internal/auth/config"
	"sharvari-site/internal/contact"
	"sharvari-site/internal/content"
	"sharvari-site/internal/notify"
	notifyconfig "sharvari-site/internal/notify/config"
	"sharvari-site/internal/settings"
	"sharvari-site/internal/shared/database"
	"sharvari-site/internal/shared/eventbus"
	"sharvari-site/internal/shared/logger"
	"sharvari-site/internal/store"
	storeconfig "sharvari-site/internal/store/config"
	"sharvari-site/internal/upload"
	uploadconfig "sharvari-site/internal/upload/config"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Config gathers the configuration of every module.
type Config struct {
	Store  *storeconfig.Config
	Auth   *authconfig.Config
	Notify *notifyconfig.Config
	Upload *uploadconfig.Config
	Redis  *database.RedisConfig
}

// LoadConfig reads every module's configuration from the environment.
func LoadConfig() (*Config, error) {
	storeCfg, err := storeconfig.LoadConfig()
	if err != nil {
		return nil, err
	}
	authCfg, err := authconfig.LoadConfig()
	if err != nil {
		return nil, err
	}
	notifyCfg, err := notifyconfig.LoadConfig()
	if err != nil {
		return nil, err
	}
	uploadCfg, err := uploadconfig.LoadConfig()
	if err != nil {
		return nil, err
	}
	redisCfg, err := database.LoadRedisConfig()
	if err != nil {
		return nil, err
	}
	return &Config{
		Store:  storeCfg,
		Auth:   authCfg,
		Notify: notifyCfg,
		Upload: uploadCfg,
		Redis:  redisCfg,
	}, nil
}

// Container owns the modules and their shared infrastructure.
type Container struct {
	mu sync.RWMutex

	Logger logger.Logger
	Bus    *eventbus.EventBus
	Redis  *redis.Client

	NotifyModule   *notify.NotifyModule
	StoreModule    *store.StoreModule
	AuthModule     *auth.AuthModule
	SettingsModule *settings.SettingsModule
	ContentModule  *content.ContentModule
	ContactModule  *contact.ContactModule
	UploadModule   *upload.UploadModule
}

// NewContainer creates an empty container.
func NewContainer(log logger.Logger) *Container {
	if log == nil {
		log = logger.NewLogger()
	}
	return &Container{Logger: log}
}

// Initialize builds every module. Modules are created in dependency order:
// notifications first so the store client can report failures, then the
// store, auth, the settings singleton and finally the page, contact and
// upload modules.
func (c *Container) Initialize(ctx context.Context, cfg *Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Bus = eventbus.NewEventBus(c.Logger.WithComponent("eventbus"))

	if cfg.Redis != nil && cfg.Redis.Enabled {
		client, err := database.ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			c.Logger.Warnf("Redis unavailable, using in-memory stores: %v", err)
		} else {
			c.Redis = client
			c.Logger.Infof("Redis connected at %s", cfg.Redis.GetAddr())
		}
	}

	c.NotifyModule = notify.NewNotifyModule(cfg.Notify, c.Bus, c.Redis, c.Logger)
	notifier := c.NotifyModule.Service

	storeModule, err := store.NewStoreModule(ctx, cfg.Store, notifier, c.Bus, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to create store module: %w", err)
	}
	c.StoreModule = storeModule
	client := storeModule.Client

	authModule, err := auth.NewAuthModule(cfg.Auth, storeModule.Repository, client, c.Bus, c.Redis, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to create auth module: %w", err)
	}
	c.AuthModule = authModule

	c.SettingsModule = settings.NewSettingsModule(ctx, client, c.Bus, c.Logger)
	c.UploadModule = upload.NewUploadModule(ctx, cfg.Upload, notifier, c.Bus, c.Logger)
	c.ContentModule = content.NewContentModule(
		client,
		c.SettingsModule.Service,
		notifier,
		authModule.Identity,
		c.UploadModule.Uploader,
		cfg.Auth.AdminPath,
		c.Logger,
	)
	c.ContactModule = contact.NewContactModule(client, c.Logger)
	return nil
}

// RegisterRoutes mounts every module on router.
func (c *Container) RegisterRoutes(router fiber.Router) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	adminOnly := c.AuthModule.AdminOnly()
	adminPage := c.AuthModule.AdminPage()

	c.AuthModule.RegisterRoutes(router)
	c.SettingsModule.RegisterRoutes(router)
	c.ContentModule.RegisterRoutes(router, adminOnly, adminPage)
	c.ContactModule.RegisterRoutes(router, adminOnly)
	c.UploadModule.RegisterRoutes(router, adminOnly)
	c.NotifyModule.RegisterRoutes(router, adminOnly, c.AuthModule.Middleware.SessionWatch())
}

// HealthCheck pings the document store and, when connected, Redis.
func (c *Container) HealthCheck(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.StoreModule != nil {
		if err := c.StoreModule.Client.Ping(ctx); err != nil {
			return fmt.Errorf("document store health check failed: %w", err)
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis health check failed: %w", err)
		}
	}
	return nil
}

// Cleanup stops modules in reverse order of initialization.
func (c *Container) Cleanup(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error

	if c.ContentModule != nil {
		c.ContentModule.Stop()
		c.ContentModule = nil
	}
	if c.SettingsModule != nil {
		c.SettingsModule.Stop()
		c.SettingsModule = nil
	}
	if c.AuthModule != nil {
		if err := c.AuthModule.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop auth module: %w", err))
		}
		c.AuthModule = nil
	}
	if c.StoreModule != nil {
		if err := c.StoreModule.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to close document store: %w", err))
		}
		c.StoreModule = nil
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis: %w", err))
		}
		c.Redis = nil
	}
	c.ContactModule = nil
	c.UploadModule = nil
	c.NotifyModule = nil

	if len(errs) > 0 {
		return fmt.Errorf("cleanup errors: %v", errs)
	}
	return nil
}

// Close shuts the container down within 30 seconds.
func (c *Container) Close() error {
	c.Logger.Info("Closing container resources...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := c.Cleanup(ctx); err != nil {
		c.Logger.Warnf("Cleanup errors occurred: %v", err)
		return err
	}

	c.Logger.Info("Container resources closed")
	return nil
}
