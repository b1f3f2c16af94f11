package auth

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

// TokenRevocationList burns tokens on first successful use. TryConsume is an
// atomic insert-if-absent: it returns true exactly once per token string.
type TokenRevocationList interface {
	TryConsume(ctx context.Context, token string) (bool, error)
}

// MemoryRevocationList keeps consumed tokens in a process-local set. The set
// grows for the process lifetime and does not survive restarts, which is
// acceptable only for single-instance deployments.
type MemoryRevocationList struct {
	mu   sync.Mutex
	used map[string]struct{}
}

func NewMemoryRevocationList() *MemoryRevocationList {
	return &MemoryRevocationList{used: make(map[string]struct{})}
}

func (l *MemoryRevocationList) TryConsume(_ context.Context, token string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.used[token]; ok {
		return false, nil
	}
	l.used[token] = struct{}{}
	return true, nil
}

// RedisRevocationList shares consumed tokens across instances via SETNX.
// Entries never expire, matching the in-memory semantics.
type RedisRevocationList struct {
	client *redis.Client
}

func NewRedisRevocationList(client *redis.Client) *RedisRevocationList {
	return &RedisRevocationList{client: client}
}

func (l *RedisRevocationList) TryConsume(ctx context.Context, token string) (bool, error) {
	return l.client.SetNX(ctx, "revoked_tokens:"+token, "1", 0).Result()
}
