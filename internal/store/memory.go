// internal/store/memory.go
//
// In-memory session store.
// Sessions live only as long as the process; nothing here is persisted.
//
// Characteristics:
//   - Stores *bingo.Session objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Idle sessions are dropped by Sweep, usually driven by RunJanitor.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/bingo/internal/bingo"
)

// ErrNotFound is returned by Get for unknown session IDs.
var ErrNotFound = errors.New("session not found")

// Store defines the persistence interface for bingo sessions.
type Store interface {
	// Save persists or replaces a session.
	Save(ctx context.Context, s *bingo.Session) error

	// Get retrieves a session by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*bingo.Session, error)

	// Delete drops a session. Unknown IDs are ignored.
	Delete(ctx context.Context, id string) error

	// Len reports the number of live sessions.
	Len() int

	// Sweep drops sessions idle since before cutoff and returns how many.
	Sweep(ctx context.Context, cutoff time.Time) int
}

type memory struct {
	mu       sync.RWMutex              // guards sessions
	sessions map[string]*bingo.Session // keyed by Session.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*bingo.Session)}
}

func (m *memory) Save(ctx context.Context, s *bingo.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*bingo.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *memory) Sweep(ctx context.Context, cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.LastSeen().Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// RunJanitor sweeps sessions idle for longer than idle every interval,
// until ctx is cancelled.
func RunJanitor(ctx context.Context, st Store, interval, idle time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-t.C:
			if n := st.Sweep(ctx, now.Add(-idle)); n > 0 {
				log.Info().Int("swept", n).Int("live", st.Len()).Msg("expired idle sessions")
			}
		}
	}
}
