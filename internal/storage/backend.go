// Package storage holds the two persistence backends behind the repository:
// a remote host reached by request/response messages and a local cached
// key-value store over a durable medium.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// Kind names a backend implementation.
type Kind string

const (
	KindRemote Kind = "remote"
	KindLocal  Kind = "local"
)

var (
	// ErrHostRejected is returned when the host answers a message with a failure.
	ErrHostRejected = errors.New("host rejected message")
	// ErrCorrupt marks a stored value that cannot be decoded into its expected shape.
	ErrCorrupt = errors.New("stored value is corrupt")
)

// PersistenceBackend is the storage strategy injected into the repository.
// Keys are collection names; values are JSON documents.
type PersistenceBackend interface {
	Kind() Kind
	// Get returns the stored document and whether it exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a document. The local backend may return a *StorageFault
	// after the value is already visible to later reads.
	Set(ctx context.Context, key string, value []byte) error
}

// StorageFault reports a failed durable write. The in-memory cache already
// holds the new value when this is returned.
type StorageFault struct {
	Key string
	Err error
}

func (f *StorageFault) Error() string {
	return fmt.Sprintf("durable write of %q failed: %v", f.Key, f.Err)
}

func (f *StorageFault) Unwrap() error { return f.Err }

// IsFault reports whether err is (or wraps) a StorageFault.
func IsFault(err error) bool {
	var fault *StorageFault
	return errors.As(err, &fault)
}
