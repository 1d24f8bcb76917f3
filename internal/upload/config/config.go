package config

import (
	"errors"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

// Supported asset hosts.
const (
	HostCloudinary = "cloudinary"
	HostS3         = "s3"
)

// MaxFileSize is the largest accepted image.
const MaxFileSize int64 = 5 * 1024 * 1024

// Config holds configuration for the asset uploader.
type Config struct {
	Host          string        `env:"ASSET_HOST" envDefault:"cloudinary"`
	DefaultFolder string        `env:"UPLOAD_DEFAULT_FOLDER" envDefault:"uploads"`
	Timeout       time.Duration `env:"UPLOAD_TIMEOUT" envDefault:"60s"`

	// Cloudinary unsigned uploads
	CloudinaryCloudName    string `env:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryUploadPreset string `env:"CLOUDINARY_UPLOAD_PRESET"`
	CloudinaryAPIBase      string `env:"CLOUDINARY_API_BASE" envDefault:"https://api.cloudinary.com/v1_1"`

	// S3-compatible bucket
	S3Bucket        string `env:"S3_BUCKET"`
	S3Region        string `env:"S3_REGION" envDefault:"auto"`
	S3Endpoint      string `env:"S3_ENDPOINT"`
	S3AccessKeyID   string `env:"S3_ACCESS_KEY_ID"`
	S3SecretKey     string `env:"S3_SECRET_ACCESS_KEY"`
	S3PublicBaseURL string `env:"S3_PUBLIC_BASE_URL"`
	S3UsePathStyle  bool   `env:"S3_USE_PATH_STYLE" envDefault:"false"`
}

// LoadConfig loads configuration from environment variables and applies defaults.
// A missing host configuration is not an error; see Missing.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load upload configuration from environment: " + err.Error())
	}
	cfg.Host = strings.ToLower(strings.TrimSpace(cfg.Host))
	if cfg.Host != HostCloudinary && cfg.Host != HostS3 {
		return nil, errors.New("ASSET_HOST must be one of 'cloudinary' or 's3'")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.DefaultFolder == "" {
		cfg.DefaultFolder = "uploads"
	}
	return cfg, nil
}

// Missing returns the message shown when the selected host lacks its
// settings, or "" when uploads are possible.
func (c *Config) Missing() string {
	switch c.Host {
	case HostCloudinary:
		if c.CloudinaryCloudName == "" || c.CloudinaryUploadPreset == "" {
			return "Cloudinary not configured. Please check your .env file."
		}
	case HostS3:
		if c.S3Bucket == "" || c.S3PublicBaseURL == "" {
			return "S3 not configured. Please check your .env file."
		}
	default:
		return "Asset host not configured. Please check your .env file."
	}
	return ""
}
