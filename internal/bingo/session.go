package bingo

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Session owns one card pool and the board currently drawn from it.
// All methods take the session lock, so events from any surface are
// applied one at a time.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	pool     *Pool
	board    *Board
	rng      *rand.Rand
	lastSeen time.Time
}

// Snapshot is a point-in-time copy of a session for rendering.
type Snapshot struct {
	SessionID string `json:"sessionId"`
	Board     *Board `json:"board"`
	Cards     []Card `json:"cards"`
	Count     int    `json:"count"`
}

// NewSession creates a session with an empty pool and an empty board.
// A nil rng is replaced with a crypto-seeded source.
func NewSession(id string, rng *rand.Rand) *Session {
	if rng == nil {
		rng = NewRand()
	}
	now := time.Now().UTC()
	s := &Session{
		ID:        id,
		CreatedAt: now,
		pool:      NewPool(),
		rng:       rng,
		lastSeen:  now,
	}
	s.board = Generate(nil, rng)
	return s
}

// Seed appends texts to the pool, trimming and skipping blanks.
func (s *Session) Seed(texts []string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range texts {
		if _, ok := s.pool.Add(t); ok {
			n++
		}
	}
	return n
}

// AddCard adds a single phrase. The board is not regenerated.
func (s *Session) AddCard(text string) (Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pool.Add(text)
}

// AddCardsBulk adds every non-blank line of raw. The board is not regenerated.
func (s *Session) AddCardsBulk(raw string) []Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pool.AddBulk(raw)
}

// RemoveCardAt removes the card at position i of the current list.
func (s *Session) RemoveCardAt(i int) (Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pool.RemoveAt(i)
}

// RemoveCard removes the card with the given ID.
func (s *Session) RemoveCard(id string) (Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pool.Remove(id)
}

// Clear empties the pool and draws a new (all empty) board.
func (s *Session) Clear() *Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pool.Clear()
	s.board = Generate(nil, s.rng)
	return s.board.Clone()
}

// NewBoard replaces the board with a fresh draw over the whole pool and
// reports the pool size it was drawn from.
func (s *Session) NewBoard() (*Board, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	texts := s.pool.Texts()
	s.board = Generate(texts, s.rng)
	return s.board.Clone(), len(texts)
}

// Toggle flips the marked state of cell i on the current board.
func (s *Session) Toggle(i int) (bool, *Board) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok := s.board.Toggle(i)
	return ok, s.board.Clone()
}

// PoolSize reports the number of cards in the pool.
func (s *Session) PoolSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pool.Len()
}

// Snapshot copies the pool and board.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		SessionID: s.ID,
		Board:     s.board.Clone(),
		Cards:     s.pool.Cards(),
		Count:     s.pool.Len(),
	}
}

// Touch records activity on the session.
func (s *Session) Touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// LastSeen reports the time of the last recorded activity.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
