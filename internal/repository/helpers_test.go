package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"teamprompt/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func setupTestBackend(t *testing.T) (*miniredis.Miniredis, *storage.LocalCacheBackend) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatal(err)
	}
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	backend, err := storage.NewLocalCacheBackend(context.Background(), storage.NewRedisMedium(client), "tp:", nil)
	if err != nil {
		t.Fatal(err)
	}
	return mr, backend
}

// testClock advances one minute per reading.
type testClock struct {
	t time.Time
}

func newTestClock() *testClock {
	return &testClock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}

// faultyBackend wraps a backend and turns every Set into a StorageFault
// after delegating.
type faultyBackend struct {
	storage.PersistenceBackend
}

func (b faultyBackend) Set(ctx context.Context, key string, value []byte) error {
	_ = b.PersistenceBackend.Set(ctx, key, value)
	return &storage.StorageFault{Key: key, Err: errors.New("quota exceeded")}
}
