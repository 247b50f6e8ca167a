package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Base carries the identity and timestamps shared by every stored entity.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Header exposes the embedded Base so generic stores can stamp any entity.
func (b *Base) Header() *Base { return b }

// Record is implemented by pointers to every entity type.
type Record interface {
	Header() *Base
}

var validate = validator.New()

// Validate checks the struct tags of an entity.
func Validate(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// NormalizeSet trims, drops blanks and removes duplicates while keeping the
// first occurrence order. Tags and id lists are ordered sets.
func NormalizeSet(values []string) []string {
	if len(values) == 0 {
		return []string{}
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// ContainsString reports whether values holds s exactly.
func ContainsString(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
