package bingo

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Pool is the ordered list of candidate phrases for a session.
// Order is insertion order; duplicates are allowed.
type Pool struct {
	cards []Card
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{cards: []Card{}}
}

// Add trims text and appends it. Blank input is ignored and reported as false.
func (p *Pool) Add(text string) (Card, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Card{}, false
	}
	c := Card{ID: uuid.NewString(), Text: text}
	p.cards = append(p.cards, c)
	return c, true
}

// AddBulk appends every non-blank line of raw, in order.
func (p *Pool) AddBulk(raw string) []Card {
	lines := SplitLines(raw)
	added := make([]Card, 0, len(lines))
	for _, line := range lines {
		c := Card{ID: uuid.NewString(), Text: line}
		p.cards = append(p.cards, c)
		added = append(added, c)
	}
	return added
}

// RemoveAt removes the card at position i. Later cards shift down by one.
func (p *Pool) RemoveAt(i int) (Card, error) {
	if i < 0 || i >= len(p.cards) {
		return Card{}, fmt.Errorf("remove card at %d of %d: %w", i, len(p.cards), ErrIndexOutOfRange)
	}
	c := p.cards[i]
	p.cards = append(p.cards[:i], p.cards[i+1:]...)
	return c, nil
}

// Remove removes the card with the given ID.
func (p *Pool) Remove(id string) (Card, error) {
	for i, c := range p.cards {
		if c.ID == id {
			return p.RemoveAt(i)
		}
	}
	return Card{}, fmt.Errorf("remove card %q: %w", id, ErrCardNotFound)
}

// Clear empties the pool.
func (p *Pool) Clear() {
	p.cards = []Card{}
}

// Len reports the number of cards.
func (p *Pool) Len() int { return len(p.cards) }

// Cards returns a copy of the cards in order.
func (p *Pool) Cards() []Card {
	out := make([]Card, len(p.cards))
	copy(out, p.cards)
	return out
}

// Texts returns the phrases in order.
func (p *Pool) Texts() []string {
	out := make([]string, len(p.cards))
	for i, c := range p.cards {
		out[i] = c.Text
	}
	return out
}

// SplitLines splits raw on line breaks, trims each line and drops blanks.
// CRLF input is handled by the trim.
func SplitLines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			out = append(out, s)
		}
	}
	return out
}
