package session

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Ledger records one-time keys.  Claim returns true the first time a key
// is claimed within ttl and false afterwards.
type Ledger interface {
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// NewLedger returns a Redis-backed ledger when rdb is non-nil and an
// in-memory one otherwise.
func NewLedger(rdb *redis.Client, prefix string) Ledger {
	if rdb == nil {
		return NewMemoryLedger()
	}
	return &RedisLedger{rdb: rdb, prefix: prefix}
}

// RedisLedger claims keys with SETNX so that several storefront instances
// share one ledger.
type RedisLedger struct {
	rdb    *redis.Client
	prefix string
}

// Claim implements Ledger.
func (l *RedisLedger) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return l.rdb.SetNX(ctx, l.prefix+":"+key, 1, ttl).Result()
}

// MemoryLedger is a process-local Ledger.
type MemoryLedger struct {
	mu   sync.Mutex
	now  func() time.Time
	keys map[string]time.Time
}

// NewMemoryLedger returns an empty in-memory ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{now: time.Now, keys: make(map[string]time.Time)}
}

// Claim implements Ledger.  Expired keys are dropped while claiming.
func (l *MemoryLedger) Claim(_ context.Context, key string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	for k, exp := range l.keys {
		if now.After(exp) {
			delete(l.keys, k)
		}
	}
	if _, taken := l.keys[key]; taken {
		return false, nil
	}
	l.keys[key] = now.Add(ttl)
	return true, nil
}
