// Package highscore persists the final scores of finished sessions.
package highscore

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Entry is one finished session.
type Entry struct {
	Name  string    `json:"name"`
	Score int       `json:"score"`
	Lines int       `json:"lines"`
	At    time.Time `json:"at"`
}

// Store keeps entries ordered by descending score.
type Store interface {
	// Submit records e and reports whether it is the new best score.
	Submit(ctx context.Context, e Entry) (bool, error)
	// Best returns the highest entry. ok is false when the store is empty.
	Best(ctx context.Context) (e Entry, ok bool, err error)
	// Top returns up to n entries, highest first.
	Top(ctx context.Context, n int) ([]Entry, error)
}

// MemoryStore is a process-local Store. Entries with equal scores keep their
// submission order.
type MemoryStore struct {
	mu      sync.Mutex
	entries []Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Submit(ctx context.Context, e Entry) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	best := len(s.entries) == 0 || e.Score > s.entries[0].Score
	i := sort.Search(len(s.entries), func(i int) bool {
		return s.entries[i].Score < e.Score
	})
	s.entries = append(s.entries, Entry{})
	copy(s.entries[i+1:], s.entries[i:])
	s.entries[i] = e
	return best, nil
}

func (s *MemoryStore) Best(ctx context.Context) (Entry, bool, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) == 0 {
		return Entry{}, false, nil
	}
	return s.entries[0], true, nil
}

func (s *MemoryStore) Top(ctx context.Context, n int) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n = max(0, min(n, len(s.entries)))
	return append([]Entry(nil), s.entries[:n]...), nil
}
