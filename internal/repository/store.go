// Package repository persists entity collections through a storage backend.
// Each collection is one JSON array under its own key.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"teamprompt/internal/idgen"
	"teamprompt/internal/models"
	"teamprompt/internal/storage"
	"teamprompt/pkg/logger"

	"dario.cat/mergo"
	"go.uber.org/zap"
)

// Collection keys.
const (
	KeyPrompts     = "prompts"
	KeyFolders     = "folders"
	KeyDepartments = "departments"
	KeyTeams       = "teams"
	KeyMembers     = "members"
	KeyCollections = "collections"
	KeyStandards   = "standards"
	KeyOrg         = "org"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrInvalid  = errors.New("invalid record")
)

// FaultPolicy decides what a store does with a *storage.StorageFault.
type FaultPolicy int

const (
	// FaultIgnore logs the fault and reports success; the backend cache keeps
	// serving the written value.
	FaultIgnore FaultPolicy = iota
	// FaultSurface returns the fault to the caller.
	FaultSurface
)

type Options struct {
	Policy FaultPolicy
	Logger *zap.Logger
	Now    func() time.Time
}

func (o Options) withDefaults() Options {
	o.Logger = logger.OrNop(o.Logger)
	if o.Now == nil {
		o.Now = func() time.Time { return time.Now().UTC() }
	}
	return o
}

// Store is a list/save/delete repository over one collection.
type Store[T any, PT interface {
	*T
	models.Record
}] struct {
	backend storage.PersistenceBackend
	key     string
	opts    Options

	// onInsert prepares a brand-new record.
	onInsert func(next *T)
	// onSave merges a caller-supplied record onto the stored one.
	onSave func(stored, next *T)
	// onUpdate runs after an in-place mutation.
	onUpdate func(stored, next *T)

	mu sync.Mutex
}

func NewStore[T any, PT interface {
	*T
	models.Record
}](backend storage.PersistenceBackend, key string, opts Options) *Store[T, PT] {
	return &Store[T, PT]{backend: backend, key: key, opts: opts.withDefaults()}
}

func (s *Store[T, PT]) load(ctx context.Context) ([]T, error) {
	raw, ok, err := s.backend.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.key, err)
	}
	if !ok {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", storage.ErrCorrupt, s.key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (s *Store[T, PT]) persist(ctx context.Context, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return handleFault(s.backend.Set(ctx, s.key, raw), s.key, s.opts)
}

func handleFault(err error, key string, opts Options) error {
	if err == nil {
		return nil
	}
	if storage.IsFault(err) && opts.Policy == FaultIgnore {
		opts.Logger.Warn("durable write failed, serving from cache", zap.String("collection", key), zap.Error(err))
		return nil
	}
	return fmt.Errorf("save %s: %w", key, err)
}

func indexOf[T any, PT interface {
	*T
	models.Record
}](items []T, id string) int {
	for i := range items {
		if PT(&items[i]).Header().ID == id {
			return i
		}
	}
	return -1
}

func validateRecord(v interface{}) error {
	if err := models.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// List returns the collection in stored order.
func (s *Store[T, PT]) List(ctx context.Context) ([]T, error) {
	return s.load(ctx)
}

// Get returns one record or ErrNotFound.
func (s *Store[T, PT]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	items, err := s.load(ctx)
	if err != nil {
		return zero, err
	}
	idx := indexOf[T, PT](items, id)
	if idx < 0 {
		return zero, ErrNotFound
	}
	return items[idx], nil
}

// Save inserts a record whose id is empty or unknown. Otherwise it merges
// the non-zero fields of item onto the stored record, so a partial record
// only changes what it sets. Clearing a field takes Update. CreatedAt
// survives updates; UpdatedAt is always refreshed.
func (s *Store[T, PT]) Save(ctx context.Context, item T) (T, error) {
	var zero T

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return zero, err
	}

	now := s.opts.Now()
	idx := -1
	if id := PT(&item).Header().ID; id != "" {
		idx = indexOf[T, PT](items, id)
	}

	if idx < 0 {
		if err := validateRecord(PT(&item)); err != nil {
			return zero, err
		}
		s.prepareInsert(&item, now)
		items = append(items, item)
	} else {
		merged, err := s.merge(items[idx], item)
		if err != nil {
			return zero, err
		}
		if err := validateRecord(PT(&merged)); err != nil {
			return zero, err
		}
		PT(&merged).Header().UpdatedAt = now
		items[idx] = merged
		item = merged
	}

	if err := s.persist(ctx, items); err != nil {
		return zero, err
	}
	return item, nil
}

// merge lays the non-zero fields of item over stored and runs onSave.
func (s *Store[T, PT]) merge(stored, item T) (T, error) {
	merged := stored
	if err := mergo.Merge(&merged, item, mergo.WithOverride); err != nil {
		return merged, fmt.Errorf("merge %s: %w", s.key, err)
	}
	h := PT(&merged).Header()
	h.ID = PT(&stored).Header().ID
	h.CreatedAt = PT(&stored).Header().CreatedAt
	h.UpdatedAt = PT(&stored).Header().UpdatedAt
	if s.onSave != nil {
		s.onSave(&stored, &merged)
	}
	return merged, nil
}

// Preview returns the record Save would merge item into, without writing.
// A record Save would insert is returned as given.
func (s *Store[T, PT]) Preview(ctx context.Context, item T) (T, error) {
	id := PT(&item).Header().ID
	if id == "" {
		return item, nil
	}
	stored, err := s.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return item, nil
	}
	if err != nil {
		return stored, err
	}
	return s.merge(stored, item)
}

func (s *Store[T, PT]) prepareInsert(item *T, now time.Time) {
	h := PT(item).Header()
	if h.ID == "" {
		h.ID = idgen.New()
	}
	h.CreatedAt = now
	h.UpdatedAt = now
	if s.onInsert != nil {
		s.onInsert(item)
	}
}

// Update applies mutate to the stored record and saves it.
func (s *Store[T, PT]) Update(ctx context.Context, id string, mutate func(*T) error) (T, error) {
	var zero T

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return zero, err
	}
	idx := indexOf[T, PT](items, id)
	if idx < 0 {
		return zero, ErrNotFound
	}

	stored := items[idx]
	next := stored
	if err := mutate(&next); err != nil {
		return zero, err
	}
	h := PT(&next).Header()
	h.ID = id
	h.CreatedAt = PT(&stored).Header().CreatedAt
	if s.onUpdate != nil {
		s.onUpdate(&stored, &next)
	}
	if err := validateRecord(PT(&next)); err != nil {
		return zero, err
	}
	h.UpdatedAt = s.opts.Now()
	items[idx] = next

	if err := s.persist(ctx, items); err != nil {
		return zero, err
	}
	return next, nil
}

// InsertMany creates every record in one write. Nothing is written when any
// record fails validation.
func (s *Store[T, PT]) InsertMany(ctx context.Context, batch []T) ([]T, error) {
	for i := range batch {
		if err := validateRecord(PT(&batch[i])); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	now := s.opts.Now()
	created := make([]T, 0, len(batch))
	for _, item := range batch {
		PT(&item).Header().ID = ""
		s.prepareInsert(&item, now)
		created = append(created, item)
	}
	items = append(items, created...)

	if err := s.persist(ctx, items); err != nil {
		return nil, err
	}
	return created, nil
}

// Delete removes one record. References held by other collections are left
// as they are.
func (s *Store[T, PT]) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return err
	}
	idx := indexOf[T, PT](items, id)
	if idx < 0 {
		return ErrNotFound
	}
	items = append(items[:idx], items[idx+1:]...)
	return s.persist(ctx, items)
}

// Count returns how many records satisfy match.
func (s *Store[T, PT]) Count(ctx context.Context, match func(T) bool) (int, error) {
	items, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, item := range items {
		if match(item) {
			n++
		}
	}
	return n, nil
}
