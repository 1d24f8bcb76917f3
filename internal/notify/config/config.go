package config

import (
	"errors"

	"github.com/caarlos0/env/v6"
)

// Config holds configuration for the notification channel.
type Config struct {
	StreamName       string `env:"NOTIFY_STREAM" envDefault:"sharvari:notifications"`
	StreamMaxLen     int64  `env:"NOTIFY_STREAM_MAX_LEN" envDefault:"1000"`
	WebSocketPath    string `env:"NOTIFY_WS_PATH" envDefault:"/ws/admin/notifications"`
	ClientBufferSize int    `env:"NOTIFY_CLIENT_BUFFER" envDefault:"16"`
}

// LoadConfig loads configuration from environment variables and applies defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load notification configuration: " + err.Error())
	}
	if cfg.StreamMaxLen <= 0 {
		cfg.StreamMaxLen = 1000
	}
	if cfg.ClientBufferSize <= 0 {
		cfg.ClientBufferSize = 16
	}
	return cfg, nil
}

// DefaultConfig returns the defaults used when the environment is not consulted.
func DefaultConfig() *Config {
	return &Config{
		StreamName:       "sharvari:notifications",
		StreamMaxLen:     1000,
		WebSocketPath:    "/ws/admin/notifications",
		ClientBufferSize: 16,
	}
}
