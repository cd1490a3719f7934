package wizard

import (
	"sync"
	"time"
)

// Store keeps in-flight drafts in memory with a TTL. Drafts are the only
// transient state in the service; nothing here ever reaches the database.
type Store struct {
	mu     sync.Mutex
	drafts map[string]storeEntry
	ttl    time.Duration
	now    func() time.Time
}

type storeEntry struct {
	draft     *Draft
	expiresAt time.Time
}

// NewStore creates a draft store whose entries expire after ttl.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		drafts: make(map[string]storeEntry),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Put saves a draft, resetting its expiry.
func (s *Store) Put(d *Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[d.ID] = storeEntry{draft: d, expiresAt: s.now().Add(s.ttl)}
}

// Get returns a live draft by id. Expired drafts are dropped on access.
func (s *Store) Get(id string) (*Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.drafts[id]
	if !ok {
		return nil, false
	}
	if s.now().After(entry.expiresAt) {
		delete(s.drafts, id)
		return nil, false
	}
	return entry.draft, true
}

// Delete discards a draft, typically after a successful final submission.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
}

// Purge drops every expired draft. Called periodically from the server loop.
func (s *Store) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, entry := range s.drafts {
		if now.After(entry.expiresAt) {
			delete(s.drafts, id)
			removed++
		}
	}
	return removed
}
