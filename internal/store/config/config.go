package config

import (
	"errors"
	"strings"

	"github.com/caarlos0/env/v6"
)

// Supported document store backends.
const (
	BackendMongo     = "mongo"
	BackendFirestore = "firestore"
	BackendMemory    = "memory"
)

// Config holds all configuration for the document store.
type Config struct {
	Backend string `env:"STORE_BACKEND" envDefault:"mongo"`

	// MongoDB
	MongoDBURI   string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	DatabaseName string `env:"DATABASE_NAME" envDefault:"sharvari_site"`

	// Firestore
	FirestoreProjectID      string `env:"FIRESTORE_PROJECT_ID"`
	FirebaseCredentialsFile string `env:"FIREBASE_CREDENTIALS_FILE"`
}

// LoadConfig loads configuration from environment variables and applies defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load store configuration from environment: " + err.Error())
	}
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected backend has what it needs.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendMongo:
		if c.MongoDBURI == "" {
			return errors.New("MONGODB_URI is required for the mongo backend")
		}
		if c.DatabaseName == "" {
			return errors.New("DATABASE_NAME is required for the mongo backend")
		}
	case BackendFirestore:
		if c.FirestoreProjectID == "" {
			return errors.New("FIRESTORE_PROJECT_ID is required for the firestore backend")
		}
	case BackendMemory:
	default:
		return errors.New("STORE_BACKEND must be one of 'mongo', 'firestore' or 'memory'")
	}
	return nil
}

// DefaultConfig returns an in-memory configuration for tests and local runs.
func DefaultConfig() *Config {
	return &Config{Backend: BackendMemory, DatabaseName: "sharvari_site"}
}
