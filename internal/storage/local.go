package storage

import (
	"context"
	"strings"
	"sync"

	"teamprompt/pkg/logger"

	"go.uber.org/zap"
)

// LocalCacheBackend serves reads from an in-memory cache warmed from a durable
// medium. Writes land in the cache first so later reads observe them even
// when the durable write fails.
type LocalCacheBackend struct {
	medium Medium
	prefix string
	log    *zap.Logger

	mu    sync.RWMutex
	cache map[string]string
}

// NewLocalCacheBackend scans every durable key under prefix into the cache.
func NewLocalCacheBackend(ctx context.Context, medium Medium, prefix string, log *zap.Logger) (*LocalCacheBackend, error) {
	log = logger.OrNop(log)
	b := &LocalCacheBackend{
		medium: medium,
		prefix: prefix,
		log:    log,
		cache:  make(map[string]string),
	}

	entries, err := medium.Scan(ctx, prefix)
	if err != nil {
		return nil, err
	}
	for k, v := range entries {
		b.cache[strings.TrimPrefix(k, prefix)] = v
	}
	log.Debug("local cache warmed", zap.String("prefix", prefix), zap.Int("keys", len(entries)))
	return b, nil
}

func (b *LocalCacheBackend) Kind() Kind { return KindLocal }

func (b *LocalCacheBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b.mu.RLock()
	v, ok := b.cache[key]
	b.mu.RUnlock()
	if ok {
		return []byte(v), true, nil
	}

	// Keys written by another process after warm-up.
	v, ok, err := b.medium.Read(ctx, b.prefix+key)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	b.mu.Lock()
	if cached, exists := b.cache[key]; exists {
		v = cached
	} else {
		b.cache[key] = v
	}
	b.mu.Unlock()
	return []byte(v), true, nil
}

// Set updates the cache, then the durable medium. A failed durable write is
// returned as a *StorageFault; the cached value stays authoritative.
func (b *LocalCacheBackend) Set(ctx context.Context, key string, value []byte) error {
	s := string(value)

	b.mu.Lock()
	b.cache[key] = s
	b.mu.Unlock()

	if err := b.medium.Write(ctx, b.prefix+key, s); err != nil {
		b.log.Debug("durable write failed", zap.String("key", key), zap.Error(err))
		return &StorageFault{Key: key, Err: err}
	}
	return nil
}
