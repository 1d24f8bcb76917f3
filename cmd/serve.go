package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sharvari-site/internal/di"
	"sharvari-site/internal/shared/errors"
	"sharvari-site/internal/shared/logger"

	"github.com/caarlos0/env/v6"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
)

// ServerConfig holds server configuration
type ServerConfig struct {
	Host        string `env:"SERVER_HOST" envDefault:"localhost"`
	Port        string `env:"SERVER_PORT" envDefault:"3000"`
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"*"`
	// Uploads carry several images of up to 5MiB each.
	BodyLimit int `env:"SERVER_BODY_LIMIT" envDefault:"33554432"`
	// The proxy header is read only from these peers.
	TrustedProxies []string `env:"SERVER_TRUSTED_PROXIES" envSeparator:","`
	ProxyHeader    string   `env:"SERVER_PROXY_HEADER" envDefault:"X-Forwarded-For"`
}

func (s *ServerConfig) fiberConfig() fiber.Config {
	cfg := fiber.Config{
		AppName:      "Sharvari Electricals",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    s.BodyLimit,
	}
	if len(s.TrustedProxies) > 0 {
		cfg.ProxyHeader = s.ProxyHeader
		cfg.EnableTrustedProxyCheck = true
		cfg.TrustedProxies = s.TrustedProxies
	}
	return cfg
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	serverCfg := &ServerConfig{}
	if err := env.Parse(serverCfg); err != nil {
		return fmt.Errorf("failed to load server configuration: %w", err)
	}

	appLogger := logger.NewLogger()
	logger.SetDefault(appLogger)
	if syncer, ok := appLogger.(interface{ Sync() error }); ok {
		defer func() { _ = syncer.Sync() }()
	}

	cfg, err := di.LoadConfig()
	if err != nil {
		return err
	}
	appLogger.Info("Application configuration loaded successfully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	container := di.NewContainer(appLogger)
	if err := container.Initialize(ctx, cfg); err != nil {
		return fmt.Errorf("failed to initialize modules: %w", err)
	}
	defer func() {
		if err := container.Close(); err != nil {
			appLogger.Errorf("Failed to close container: %v", err)
		}
	}()

	app := newApp(serverCfg, container, appLogger)

	serverAddr := fmt.Sprintf("%s:%s", serverCfg.Host, serverCfg.Port)
	appLogger.Infof("All modules initialized. Starting HTTP server on %s", serverAddr)

	serverShutdown := make(chan error, 1)
	go func() {
		serverShutdown <- app.Listen(serverAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverShutdown:
		if err != nil {
			return fmt.Errorf("server startup failed: %w", err)
		}
	case sig := <-quit:
		appLogger.Infof("Received shutdown signal: %v", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			appLogger.Errorf("Server forced to shutdown: %v", err)
		}
		appLogger.Info("HTTP server stopped")
	}
	return nil
}

func newApp(serverCfg *ServerConfig, container *di.Container, appLogger logger.Logger) *fiber.App {
	fiberCfg := serverCfg.fiberConfig()
	fiberCfg.ErrorHandler = func(c *fiber.Ctx, err error) error {
		if fe, ok := err.(*fiber.Error); ok {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}
		appLogger.WithContext(c.UserContext()).Errorf("HTTP error on %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(errors.HTTPStatus(err)).JSON(fiber.Map{
			"error": "Internal Server Error",
		})
	}
	app := fiber.New(fiberCfg)

	mw := container.AuthModule.Middleware
	app.Use(recover.New())
	app.Use(mw.RequestID())
	app.Use(mw.SecurityHeaders())
	app.Use(cors.New(cors.Config{
		AllowOrigins: serverCfg.CORSOrigins,
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		healthCtx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()

		if err := container.HealthCheck(healthCtx); err != nil {
			appLogger.Errorf("Health check failed: %v", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "UNHEALTHY",
				"error":  err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"status":         "HEALTHY",
			"timestamp":      time.Now().UTC(),
			"uploadsEnabled": container.UploadModule.Uploader.Enabled(),
		})
	})

	container.RegisterRoutes(app)
	return app
}
