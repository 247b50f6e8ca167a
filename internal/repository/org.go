package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"teamprompt/internal/models"
	"teamprompt/internal/storage"
)

// OrgStore keeps the singleton organization record under its own key.
type OrgStore struct {
	backend storage.PersistenceBackend
	opts    Options
	mu      sync.Mutex
}

func NewOrgStore(backend storage.PersistenceBackend, opts Options) *OrgStore {
	return &OrgStore{backend: backend, opts: opts.withDefaults()}
}

// Get returns the org or ErrNotFound before the first save.
func (s *OrgStore) Get(ctx context.Context) (models.Org, error) {
	raw, ok, err := s.backend.Get(ctx, KeyOrg)
	if err != nil {
		return models.Org{}, fmt.Errorf("load %s: %w", KeyOrg, err)
	}
	if !ok {
		return models.Org{}, ErrNotFound
	}
	var org models.Org
	if err := json.Unmarshal(raw, &org); err != nil {
		return models.Org{}, fmt.Errorf("%w: %s: %v", storage.ErrCorrupt, KeyOrg, err)
	}
	return org, nil
}

// Save creates the org on first call and replaces it afterwards.
func (s *OrgStore) Save(ctx context.Context, org models.Org) (models.Org, error) {
	if err := validateRecord(&org); err != nil {
		return models.Org{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.opts.Now()
	existing, err := s.Get(ctx)
	switch {
	case err == nil:
		org.CreatedAt = existing.CreatedAt
	case errors.Is(err, ErrNotFound):
		org.CreatedAt = now
	default:
		return models.Org{}, err
	}
	if org.Plan == "" {
		org.Plan = models.PlanFree
	}
	org.UpdatedAt = now

	raw, err := json.Marshal(org)
	if err != nil {
		return models.Org{}, err
	}
	if err := handleFault(s.backend.Set(ctx, KeyOrg, raw), KeyOrg, s.opts); err != nil {
		return models.Org{}, err
	}
	return org, nil
}
