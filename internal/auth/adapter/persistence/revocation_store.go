package persistence

import (
	"context"
	"sync"
	"time"

	"sharvari-site/internal/auth/domain/model"
	"sharvari-site/internal/auth/domain/repository"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "revoked:"

// RedisRevocationStore stores revoked token ids as expiring Redis keys.
type RedisRevocationStore struct {
	client *redis.Client
}

// NewRedisRevocationStore creates a revocation store backed by Redis.
func NewRedisRevocationStore(client *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{client: client}
}

var _ repository.RevocationStore = (*RedisRevocationStore)(nil)

func (s *RedisRevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err(); err != nil {
		return model.ErrRevocationBackend
	}
	return nil
}

func (s *RedisRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, model.ErrRevocationBackend
	}
	return n > 0, nil
}

// MemoryRevocationStore is the in-process fallback used when Redis is disabled.
type MemoryRevocationStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewMemoryRevocationStore creates an empty in-memory revocation store.
func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

var _ repository.RevocationStore = (*MemoryRevocationStore)(nil)

func (s *MemoryRevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, until := range s.revoked {
		if !now.Before(until) {
			delete(s.revoked, id)
		}
	}
	s.revoked[tokenID] = now.Add(ttl)
	return nil
}

func (s *MemoryRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	until, ok := s.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if !s.now().Before(until) {
		delete(s.revoked, tokenID)
		return false, nil
	}
	return true, nil
}
