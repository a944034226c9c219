package catalog

import (
	"context"
	"sync"
	"time"

	"forwardicons/internal/domain"
)

// MemoryPendingStore keeps pending entries in process memory.
// It implements port.PendingStore.
type MemoryPendingStore struct {
	mu      sync.Mutex
	nextID  int64
	entries []domain.PendingEntry
	now     func() time.Time
}

// NewMemoryPendingStore creates an empty MemoryPendingStore.
func NewMemoryPendingStore() *MemoryPendingStore {
	return &MemoryPendingStore{now: time.Now}
}

func (s *MemoryPendingStore) Append(_ context.Context, name, url string) (*domain.PendingEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	entry := domain.PendingEntry{ID: s.nextID, Name: name, URL: url, CreatedAt: s.now().UTC()}
	s.entries = append(s.entries, entry)
	return &entry, nil
}

func (s *MemoryPendingStore) List(_ context.Context) ([]domain.PendingEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.PendingEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

func (s *MemoryPendingStore) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries), nil
}

func (s *MemoryPendingStore) Remove(_ context.Context, ids []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	drop := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := s.entries[:0]
	for _, e := range s.entries {
		if _, ok := drop[e.ID]; !ok {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	return nil
}
