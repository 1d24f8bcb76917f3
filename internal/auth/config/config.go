package config

import (
	"errors"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds all configuration for the auth module.
type Config struct {
	// JWT Configuration
	JWTSecretKey   string        `env:"JWT_SECRET_KEY,required"`
	JWTIssuer      string        `env:"JWT_ISSUER" envDefault:"sharvari-site-auth"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"12h"`

	// Cookie Configuration
	CookieName     string `env:"COOKIE_NAME" envDefault:"sharvari_session"`
	CookiePath     string `env:"COOKIE_PATH" envDefault:"/"`
	CookieDomain   string `env:"COOKIE_DOMAIN" envDefault:""`
	CookieSecure   bool   `env:"COOKIE_SECURE" envDefault:"false"`
	CookieHTTPOnly bool   `env:"COOKIE_HTTP_ONLY" envDefault:"true"`
	CookieSameSite string `env:"COOKIE_SAME_SITE" envDefault:"Lax"`

	// Routing
	LoginPath string `env:"LOGIN_PATH" envDefault:"/login"`
	AdminPath string `env:"ADMIN_PATH" envDefault:"/sys/secure/admin-dashboard"`

	// Login attempts allowed per client per minute.
	LoginRateLimit int `env:"LOGIN_RATE_LIMIT" envDefault:"10"`

	// Minimum password length for new accounts.
	MinPasswordLength int `env:"MIN_PASSWORD_LENGTH" envDefault:"6"`
}

// LoadConfig loads configuration from environment variables and applies defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load configuration from environment: " + err.Error() +
			". Please ensure all required environment variables are set.")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate normalises and checks the configuration.
func (c *Config) Validate() error {
	if c.JWTSecretKey == "" {
		return errors.New("jwt_secret_key is required")
	}
	if c.AccessTokenTTL <= 0 {
		return errors.New("access_token_ttl must be positive")
	}

	switch strings.ToLower(c.CookieSameSite) {
	case "lax":
		c.CookieSameSite = "Lax"
	case "strict":
		c.CookieSameSite = "Strict"
	case "none":
		c.CookieSameSite = "None"
	default:
		return errors.New("cookie_same_site must be one of 'Lax', 'Strict', or 'None'")
	}

	if !strings.HasPrefix(c.AdminPath, "/") || !strings.HasPrefix(c.LoginPath, "/") {
		return errors.New("admin_path and login_path must start with '/'")
	}
	if c.LoginRateLimit <= 0 {
		c.LoginRateLimit = 10
	}
	if c.MinPasswordLength <= 0 {
		c.MinPasswordLength = 6
	}
	return nil
}
