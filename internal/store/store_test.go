package store

import (
	"context"
	"testing"

	"sharvari-site/internal/shared/logger"
	"sharvari-site/internal/store/adapter/persistence/memory"
	"sharvari-site/internal/store/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreModule_Memory(t *testing.T) {
	m, err := NewStoreModule(context.Background(), config.DefaultConfig(), nil, nil, logger.NewLogger())
	require.NoError(t, err)

	_, ok := m.Repository.(*memory.DocumentRepository)
	assert.True(t, ok)
	assert.NoError(t, m.Client.Ping(context.Background()))
	assert.NoError(t, m.Stop(context.Background()))
}

func TestNewStoreModule_UnknownBackend(t *testing.T) {
	_, err := NewStoreModule(context.Background(), &config.Config{Backend: "sqlite"}, nil, nil, logger.NewLogger())
	assert.Error(t, err)
}
