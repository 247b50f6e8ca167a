package idgen

import (
	"strings"

	"github.com/google/uuid"
)

// New returns a fresh collision-resistant identifier for an entity.
func New() string {
	return uuid.New().String()
}

// NewWithPrefix returns an identifier tagged with a short entity prefix,
// e.g. "prm_0f8c...". The prefix only aids debugging.
func NewWithPrefix(prefix string) string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	if prefix == "" {
		return id
	}
	return prefix + "_" + id
}
