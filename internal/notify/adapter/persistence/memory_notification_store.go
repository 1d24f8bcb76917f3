package persistence

import (
	"context"
	"strconv"
	"sync"

	"sharvari-site/internal/notify/domain/model"
	"sharvari-site/internal/notify/domain/repository"
)

var _ repository.NotificationStore = (*MemoryNotificationStore)(nil)

// MemoryNotificationStore keeps the last maxLen notifications in memory.
type MemoryNotificationStore struct {
	mu     sync.Mutex
	items  []model.Notification
	maxLen int
	seq    int64
}

// NewMemoryNotificationStore creates an in-memory store holding at most maxLen entries.
func NewMemoryNotificationStore(maxLen int) *MemoryNotificationStore {
	if maxLen <= 0 {
		maxLen = 1000
	}
	return &MemoryNotificationStore{maxLen: maxLen}
}

func (m *MemoryNotificationStore) Append(ctx context.Context, n model.Notification) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	n.ID = strconv.FormatInt(m.seq, 10)
	m.items = append(m.items, n)
	if over := len(m.items) - m.maxLen; over > 0 {
		m.items = append([]model.Notification(nil), m.items[over:]...)
	}
	return n.ID, nil
}

func (m *MemoryNotificationStore) Recent(ctx context.Context, limit int) ([]model.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if limit > len(m.items) {
		limit = len(m.items)
	}
	out := make([]model.Notification, 0, limit)
	for i := len(m.items) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.items[i])
	}
	return out, nil
}
