package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, BackendMongo, cfg.Backend)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoDBURI)
	assert.Equal(t, "sharvari_site", cfg.DatabaseName)
}

func TestLoadConfig_FirestoreNeedsProject(t *testing.T) {
	t.Setenv("STORE_BACKEND", "Firestore")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("FIRESTORE_PROJECT_ID", "sharvari-site")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, BackendFirestore, cfg.Backend)
}

func TestValidate_UnknownBackend(t *testing.T) {
	cfg := &Config{Backend: "sqlite"}
	assert.Error(t, cfg.Validate())
	assert.NoError(t, DefaultConfig().Validate())
}
