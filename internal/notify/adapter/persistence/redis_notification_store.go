package persistence

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"sharvari-site/internal/notify/domain/model"
	"sharvari-site/internal/notify/domain/repository"
	"sharvari-site/internal/shared/logger"

	"github.com/redis/go-redis/v9"
)

var _ repository.NotificationStore = (*RedisNotificationStore)(nil)

// RedisNotificationStore appends notifications to a capped Redis stream.
type RedisNotificationStore struct {
	client *redis.Client
	stream string
	maxLen int64
	logger logger.Logger
}

// NewRedisNotificationStore creates a Redis-backed notification store
func NewRedisNotificationStore(client *redis.Client, stream string, maxLen int64, log logger.Logger) *RedisNotificationStore {
	return &RedisNotificationStore{
		client: client,
		stream: stream,
		maxLen: maxLen,
		logger: log.WithComponent("notification-stream"),
	}
}

// Append adds n to the stream, trimming it to roughly maxLen entries.
func (r *RedisNotificationStore) Append(ctx context.Context, n model.Notification) (string, error) {
	id, err := r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: r.stream,
		MaxLen: r.maxLen,
		Approx: true,
		Values: map[string]interface{}{
			"level":     string(n.Level),
			"message":   n.Message,
			"userId":    n.UserID,
			"timestamp": n.Timestamp.UnixNano(),
		},
	}).Result()
	if err != nil {
		r.logger.Errorf("Failed to store notification in stream %s: %v", r.stream, err)
		return "", fmt.Errorf("failed to append notification: %w", err)
	}
	return id, nil
}

// Recent reads the newest entries first.
func (r *RedisNotificationStore) Recent(ctx context.Context, limit int) ([]model.Notification, error) {
	if limit <= 0 {
		return []model.Notification{}, nil
	}
	msgs, err := r.client.XRevRangeN(ctx, r.stream, "+", "-", int64(limit)).Result()
	if err != nil {
		if err == redis.Nil {
			return []model.Notification{}, nil
		}
		return nil, fmt.Errorf("failed to read notifications: %w", err)
	}

	out := make([]model.Notification, 0, len(msgs))
	for _, msg := range msgs {
		out = append(out, parseMessage(msg))
	}
	return out, nil
}

func parseMessage(msg redis.XMessage) model.Notification {
	n := model.Notification{ID: msg.ID}
	if v, ok := msg.Values["level"].(string); ok {
		n.Level = model.Level(v)
	}
	if v, ok := msg.Values["message"].(string); ok {
		n.Message = v
	}
	if v, ok := msg.Values["userId"].(string); ok {
		n.UserID = v
	}
	if v, ok := msg.Values["timestamp"].(string); ok {
		if nanos, err := strconv.ParseInt(v, 10, 64); err == nil {
			n.Timestamp = time.Unix(0, nanos).UTC()
		}
	}
	return n
}
