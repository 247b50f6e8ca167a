package repository

import (
	"context"
	"fmt"
	"math"

	"teamprompt/internal/models"
	"teamprompt/internal/storage"
)

const (
	MinStars = 1
	MaxStars = 5
)

// PromptStore adds versioning and usage/rating side channels to the prompt
// collection.
type PromptStore struct {
	*Store[models.Prompt, *models.Prompt]
}

func NewPromptStore(backend storage.PersistenceBackend, opts Options) *PromptStore {
	s := NewStore[models.Prompt](backend, KeyPrompts, opts)
	s.onInsert = func(p *models.Prompt) {
		p.Version = 1
		p.VersionHistory = []models.VersionEntry{}
		p.Rating = models.Rating{}
		p.UsageCount = 0
		p.LastUsedAt = nil
		p.Tags = models.NormalizeSet(p.Tags)
		if p.Status == "" {
			p.Status = models.PromptStatusActive
		}
	}
	s.onSave = func(stored, next *models.Prompt) {
		// Counters belong to the side channels, not to callers of Save.
		next.Rating = stored.Rating
		next.UsageCount = stored.UsageCount
		next.LastUsedAt = stored.LastUsedAt
		next.Tags = models.NormalizeSet(next.Tags)
		if next.Status == "" {
			next.Status = stored.Status
		}
		*next, _ = ReviseIfChanged(*stored, *next)
	}
	s.onUpdate = func(stored, next *models.Prompt) {
		next.Tags = models.NormalizeSet(next.Tags)
		*next, _ = ReviseIfChanged(*stored, *next)
	}
	return &PromptStore{Store: s}
}

// RecordUsage bumps the usage counter and stamps LastUsedAt.
func (s *PromptStore) RecordUsage(ctx context.Context, id string) (models.Prompt, error) {
	now := s.opts.Now()
	return s.Update(ctx, id, func(p *models.Prompt) error {
		p.UsageCount++
		p.LastUsedAt = &now
		return nil
	})
}

// Rate adds a rating, rounded and clamped to 1..5 stars.
func (s *PromptStore) Rate(ctx context.Context, id string, stars float64) (models.Prompt, error) {
	if math.IsNaN(stars) {
		return models.Prompt{}, fmt.Errorf("%w: rating is not a number", ErrInvalid)
	}
	n := ClampStars(stars)
	return s.Update(ctx, id, func(p *models.Prompt) error {
		p.Rating.Total += n
		p.Rating.Count++
		return nil
	})
}

// ClampStars rounds stars to the nearest whole star within 1..5.
func ClampStars(stars float64) int {
	r := math.Round(stars)
	if r < MinStars {
		return MinStars
	}
	if r > MaxStars {
		return MaxStars
	}
	return int(r)
}

func (s *PromptStore) ToggleFavorite(ctx context.Context, id string) (models.Prompt, error) {
	return s.Update(ctx, id, func(p *models.Prompt) error {
		p.IsFavorite = !p.IsFavorite
		return nil
	})
}

// RestoreVersion copies a history snapshot back onto the prompt. The restore
// is itself a content change and versions like any other edit.
func (s *PromptStore) RestoreVersion(ctx context.Context, id string, version int) (models.Prompt, error) {
	return s.Update(ctx, id, func(p *models.Prompt) error {
		for _, e := range p.VersionHistory {
			if e.Version == version {
				p.Title = e.Title
				p.Content = e.Content
				return nil
			}
		}
		return fmt.Errorf("%w: version %d", ErrNotFound, version)
	})
}
