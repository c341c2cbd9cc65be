package assignment

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrDraftNotFound = errors.New("draft not found")

// DraftStore keeps operator drafts in memory until they are saved or expire.
type DraftStore struct {
	drafts map[uuid.UUID]*Draft
	ttl    time.Duration
	mu     sync.RWMutex
}

func NewDraftStore(ttl time.Duration) *DraftStore {
	return &DraftStore{
		drafts: make(map[uuid.UUID]*Draft),
		ttl:    ttl,
	}
}

func (s *DraftStore) Create(contractID int64, owner string) *Draft {
	draft := NewDraft(contractID, owner)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[draft.ID] = draft
	return draft
}

func (s *DraftStore) Get(id uuid.UUID) (*Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	draft, ok := s.drafts[id]
	if !ok {
		return nil, ErrDraftNotFound
	}
	return draft, nil
}

func (s *DraftStore) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
}

func (s *DraftStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.drafts)
}

// Prune removes drafts untouched for longer than the store's TTL and returns
// how many were dropped.
func (s *DraftStore) Prune(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, draft := range s.drafts {
		if now.Sub(draft.UpdatedAt()) > s.ttl {
			delete(s.drafts, id)
			removed++
		}
	}
	return removed
}
