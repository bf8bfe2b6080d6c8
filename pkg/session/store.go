package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quickcart/quickcart/config"
)

// NewStoreFromConfig returns a Redis-backed store when REDIS_ADDR is set and
// reachable, otherwise an in-memory store. The memory fallback keeps local
// single-process deployments dependency-free.
func NewStoreFromConfig() Store {
	addr := config.RedisAddr()
	if addr == "" {
		return NewMemoryStore()
	}

	store, err := NewRedisStore(addr, config.RedisPassword())
	if err != nil {
		return NewMemoryStore()
	}
	return store
}

// ── Memory store ─────────────────────────────────────────────────────────────

type memoryEntry struct {
	data      map[string]interface{}
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. Entries expire lazily on
// read; Del removes them eagerly.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (m *MemoryStore) Get(id string) (map[string]interface{}, bool) {
	m.mu.RLock()
	entry, ok := m.entries[id]
	m.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		_ = m.Del(id)
		return nil, false
	}

	// Round-trip through JSON so callers get the same types (float64
	// numbers, plain maps) regardless of the backing store.
	raw, err := encode(entry.data)
	if err != nil {
		return nil, false
	}
	data, err := decode(raw)
	if err != nil {
		return nil, false
	}
	return data, true
}

func (m *MemoryStore) Set(id string, data map[string]interface{}, ttl time.Duration) error {
	copied := make(map[string]interface{}, len(data))
	for k, v := range data {
		copied[k] = v
	}

	m.mu.Lock()
	m.entries[id] = memoryEntry{data: copied, expiresAt: time.Now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Del(id string) error {
	m.mu.Lock()
	delete(m.entries, id)
	m.mu.Unlock()
	return nil
}

// ── Redis store ──────────────────────────────────────────────────────────────

// RedisStore persists sessions in Redis so they survive restarts and can be
// shared across processes.
type RedisStore struct {
	rdb *redis.Client
}

func redisKey(id string) string { return "quickcart:session:" + id }

// NewRedisStore connects to Redis and verifies the connection with a ping.
func NewRedisStore(addr, password string) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("session: redis ping: %w", err)
	}
	return &RedisStore{rdb: rdb}, nil
}

func (s *RedisStore) Get(id string) (map[string]interface{}, bool) {
	val, err := s.rdb.Get(context.Background(), redisKey(id)).Bytes()
	if err != nil {
		return nil, false
	}

	data, err := decode(val)
	if err != nil {
		return nil, false
	}
	return data, true
}

func (s *RedisStore) Set(id string, data map[string]interface{}, ttl time.Duration) error {
	raw, err := encode(data)
	if err != nil {
		return err
	}
	return s.rdb.Set(context.Background(), redisKey(id), raw, ttl).Err()
}

func (s *RedisStore) Del(id string) error {
	return s.rdb.Del(context.Background(), redisKey(id)).Err()
}
