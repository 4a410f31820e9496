package streak

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is a process-local Store. Update holds a single mutex for the
// duration of fn, which gives the same per-record exclusivity as a row lock.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (s *MemoryStore) Ensure(_ context.Context, seed Record) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[seed.UserEmail]
	if !ok {
		rec = seed.Clone()
		if rec.ID == uuid.Nil {
			rec.ID = uuid.New()
		}
	} else {
		rec.DisplayName = seed.DisplayName
		rec.AvatarURL = seed.AvatarURL
		rec.UpdatedAt = seed.UpdatedAt
	}
	s.records[seed.UserEmail] = rec

	out := rec.Clone()
	return &out, nil
}

func (s *MemoryStore) Update(_ context.Context, email string, fn func(*Record) error) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[email]
	if !ok {
		return nil, ErrRecordNotFound
	}
	work := rec.Clone()
	if err := fn(&work); err != nil {
		return nil, err
	}
	s.records[email] = work.Clone()
	return &work, nil
}

func (s *MemoryStore) List(_ context.Context, board Board) ([]Record, error) {
	s.mu.Lock()
	out := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec.Clone())
	}
	s.mu.Unlock()

	SortForBoard(out, board)
	return out, nil
}
