package usecase

import (
	"context"
	"errors"
	"testing"

	"sharvari-site/internal/notify/adapter/persistence"
	"sharvari-site/internal/notify/domain/model"
	"sharvari-site/internal/shared/eventbus"
	"sharvari-site/internal/shared/logger"
	"sharvari-site/internal/shared/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{}

func (failingStore) Append(ctx context.Context, n model.Notification) (string, error) {
	return "", errors.New("redis down")
}

func (failingStore) Recent(ctx context.Context, limit int) ([]model.Notification, error) {
	return nil, errors.New("redis down")
}

func TestService_EmitsAndStores(t *testing.T) {
	bus := eventbus.NewEventBus(nil)
	store := persistence.NewMemoryNotificationStore(10)
	svc := NewService(bus, store, logger.NewLogger())

	var received []model.Notification
	cancel := svc.Listen(func(n model.Notification) { received = append(received, n) })
	defer cancel()

	ctx := utils.WithUser(context.Background(), "admin-1", "admin@x.co")
	svc.Success(ctx, "Saved successfully!")
	svc.Error(ctx, "Error updating data: boom")

	require.Len(t, received, 2)
	assert.Equal(t, model.LevelSuccess, received[0].Level)
	assert.Equal(t, "admin-1", received[0].UserID)
	assert.NotEmpty(t, received[0].ID)
	assert.Equal(t, model.LevelError, received[1].Level)

	recent, err := svc.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "Error updating data: boom", recent[0].Message)
}

func TestService_StoreFailureStillDelivers(t *testing.T) {
	bus := eventbus.NewEventBus(nil)
	svc := NewService(bus, failingStore{}, logger.NewLogger())

	var got model.Notification
	svc.Listen(func(n model.Notification) { got = n })
	svc.Info(context.Background(), "hello")

	assert.Equal(t, "hello", got.Message)
	assert.Empty(t, got.ID)
}

func TestService_CancelStopsDelivery(t *testing.T) {
	bus := eventbus.NewEventBus(nil)
	svc := NewService(bus, nil, logger.NewLogger())

	count := 0
	cancel := svc.Listen(func(n model.Notification) { count++ })
	svc.Success(context.Background(), "one")
	cancel()
	svc.Success(context.Background(), "two")

	assert.Equal(t, 1, count)
	recent, err := svc.Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, recent)
}
