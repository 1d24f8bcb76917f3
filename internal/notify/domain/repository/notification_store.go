package repository

import (
	"context"

	"sharvari-site/internal/notify/domain/model"
)

// NotificationStore keeps a bounded history of notifications.
type NotificationStore interface {
	Append(ctx context.Context, n model.Notification) (string, error)
	// Recent returns up to limit notifications, newest first.
	Recent(ctx context.Context, limit int) ([]model.Notification, error)
}
