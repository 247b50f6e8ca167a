package idgen

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewIsUniqueUUID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := New()
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestNewWithPrefix(t *testing.T) {
	id := NewWithPrefix("prm")
	assert.True(t, strings.HasPrefix(id, "prm_"))
	assert.Len(t, id, len("prm_")+32)
	assert.Len(t, NewWithPrefix(""), 32)
}
