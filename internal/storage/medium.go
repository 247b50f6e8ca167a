package storage

import "context"

// Medium is a durable string-keyed store. Implementations must be safe for
// concurrent use.
type Medium interface {
	// Scan returns every key/value whose key starts with prefix.
	Scan(ctx context.Context, prefix string) (map[string]string, error)
	Read(ctx context.Context, key string) (string, bool, error)
	Write(ctx context.Context, key, value string) error
}
