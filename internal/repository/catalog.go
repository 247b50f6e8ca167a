package repository

import (
	"context"

	"teamprompt/internal/models"
	"teamprompt/internal/storage"
)

// CollectionStore keeps prompt id lists as ordered sets.
type CollectionStore struct {
	*Store[models.Collection, *models.Collection]
}

func NewCollectionStore(backend storage.PersistenceBackend, opts Options) *CollectionStore {
	s := NewStore[models.Collection](backend, KeyCollections, opts)
	s.onInsert = func(c *models.Collection) {
		c.PromptIDs = models.NormalizeSet(c.PromptIDs)
	}
	s.onSave = func(_, next *models.Collection) {
		next.PromptIDs = models.NormalizeSet(next.PromptIDs)
	}
	s.onUpdate = s.onSave
	return &CollectionStore{Store: s}
}

// AddPrompt appends promptID unless the collection already lists it.
func (s *CollectionStore) AddPrompt(ctx context.Context, id, promptID string) (models.Collection, error) {
	return s.Update(ctx, id, func(c *models.Collection) error {
		if !models.ContainsString(c.PromptIDs, promptID) {
			c.PromptIDs = append(append([]string{}, c.PromptIDs...), promptID)
		}
		return nil
	})
}

// RemovePrompt drops promptID from the list. The prompt itself is untouched.
func (s *CollectionStore) RemovePrompt(ctx context.Context, id, promptID string) (models.Collection, error) {
	return s.Update(ctx, id, func(c *models.Collection) error {
		kept := make([]string, 0, len(c.PromptIDs))
		for _, pid := range c.PromptIDs {
			if pid != promptID {
				kept = append(kept, pid)
			}
		}
		c.PromptIDs = kept
		return nil
	})
}

// MemberStore adds current-user lookup to the member collection.
type MemberStore struct {
	*Store[models.Member, *models.Member]
}

func NewMemberStore(backend storage.PersistenceBackend, opts Options) *MemberStore {
	s := NewStore[models.Member](backend, KeyMembers, opts)
	s.onInsert = func(m *models.Member) {
		m.TeamIDs = models.NormalizeSet(m.TeamIDs)
	}
	s.onSave = func(_, next *models.Member) {
		next.TeamIDs = models.NormalizeSet(next.TeamIDs)
	}
	s.onUpdate = s.onSave
	return &MemberStore{Store: s}
}

// Current returns the first member flagged as the current user.
func (s *MemberStore) Current(ctx context.Context) (models.Member, error) {
	members, err := s.List(ctx)
	if err != nil {
		return models.Member{}, err
	}
	for _, m := range members {
		if m.IsCurrentUser {
			return m, nil
		}
	}
	return models.Member{}, ErrNotFound
}

// Repository bundles every collection over one backend.
type Repository struct {
	Prompts     *PromptStore
	Folders     *Store[models.Folder, *models.Folder]
	Departments *Store[models.Department, *models.Department]
	Teams       *Store[models.Team, *models.Team]
	Members     *MemberStore
	Collections *CollectionStore
	Standards   *Store[models.Standard, *models.Standard]
	Org         *OrgStore

	backend storage.PersistenceBackend
}

func New(backend storage.PersistenceBackend, opts Options) *Repository {
	return &Repository{
		Prompts:     NewPromptStore(backend, opts),
		Folders:     NewStore[models.Folder](backend, KeyFolders, opts),
		Departments: NewStore[models.Department](backend, KeyDepartments, opts),
		Teams:       NewStore[models.Team](backend, KeyTeams, opts),
		Members:     NewMemberStore(backend, opts),
		Collections: NewCollectionStore(backend, opts),
		Standards:   NewStore[models.Standard](backend, KeyStandards, opts),
		Org:         NewOrgStore(backend, opts),
		backend:     backend,
	}
}

// Backend reports which backend the repository was built on.
func (r *Repository) Backend() storage.Kind {
	return r.backend.Kind()
}
