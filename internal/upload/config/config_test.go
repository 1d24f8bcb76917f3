package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("ASSET_HOST", "Cloudinary")
	t.Setenv("CLOUDINARY_CLOUD_NAME", "")
	t.Setenv("CLOUDINARY_UPLOAD_PRESET", "")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, HostCloudinary, cfg.Host)
	assert.Equal(t, "uploads", cfg.DefaultFolder)
	assert.Equal(t, 60*time.Second, cfg.Timeout)
	assert.Equal(t, "Cloudinary not configured. Please check your .env file.", cfg.Missing())
}

func TestLoadConfig_RejectsUnknownHost(t *testing.T) {
	t.Setenv("ASSET_HOST", "ftp")

	_, err := LoadConfig()

	assert.Error(t, err)
}

func TestMissing(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     Config
		missing bool
	}{
		{"cloudinary complete", Config{Host: HostCloudinary, CloudinaryCloudName: "demo", CloudinaryUploadPreset: "unsigned"}, false},
		{"cloudinary without preset", Config{Host: HostCloudinary, CloudinaryCloudName: "demo"}, true},
		{"s3 complete", Config{Host: HostS3, S3Bucket: "assets", S3PublicBaseURL: "https://cdn.example.com"}, false},
		{"s3 without bucket", Config{Host: HostS3, S3PublicBaseURL: "https://cdn.example.com"}, true},
		{"unknown host", Config{Host: "ftp"}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.missing, tc.cfg.Missing() != "")
		})
	}
}
