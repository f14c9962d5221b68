// internal/bingo/board.go
//
// Board generation for a single bingo card.
// Responsibilities:
//   - Shuffle a copy of the pool phrases (Fisher–Yates, unbiased).
//   - Lay the shuffled phrases over the 25 cells in row-major order,
//     skipping the fixed center cell.
//   - Flag cells past the end of the shuffle as empty.
//   - Toggle the marked state of playable cells.
//
// Notes:
//   - Pools larger than FillCells only contribute their first FillCells
//     shuffled entries to a board; the rest are left off that board.
//   - A generated board never carries marked state from a previous one.
package bingo

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// NewRand returns a PCG source seeded from crypto/rand.
func NewRand() *rand.Rand {
	var seed [16]byte
	_, _ = crand.Read(seed[:])
	return rand.New(rand.NewPCG(
		binary.LittleEndian.Uint64(seed[:8]),
		binary.LittleEndian.Uint64(seed[8:]),
	))
}

// Shuffle returns a uniformly random permutation of texts.
// The input slice is left untouched.
func Shuffle(texts []string, rng *rand.Rand) []string {
	out := make([]string, len(texts))
	copy(out, texts)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Generate builds a fresh board from texts.
// An empty texts slice is valid and yields 24 empty cells plus the center.
func Generate(texts []string, rng *rand.Rand) *Board {
	shuffled := Shuffle(texts, rng)
	b := &Board{}
	next := 0
	for i := 0; i < TotalCells; i++ {
		if i == CenterIndex {
			b.Cells[i] = Cell{Text: CenterLabel, Center: true}
			continue
		}
		if next < len(shuffled) {
			b.Cells[i] = Cell{Text: shuffled[next]}
		} else {
			b.Cells[i] = Cell{Empty: true}
		}
		next++
	}
	return b
}

// Playable reports whether cell i can be marked.
func (b *Board) Playable(i int) bool {
	if i < 0 || i >= TotalCells {
		return false
	}
	c := b.Cells[i]
	return !c.Center && !c.Empty
}

// Toggle flips the marked state of cell i.
// Returns false, leaving the board unchanged, for the center, empty cells
// and indices outside the grid.
func (b *Board) Toggle(i int) bool {
	if !b.Playable(i) {
		return false
	}
	b.Cells[i].Marked = !b.Cells[i].Marked
	return true
}

// Filled counts the non-center cells that hold a phrase.
func (b *Board) Filled() int {
	n := 0
	for _, c := range b.Cells {
		if !c.Center && !c.Empty {
			n++
		}
	}
	return n
}

// Marked counts the marked cells.
func (b *Board) Marked() int {
	n := 0
	for _, c := range b.Cells {
		if c.Marked {
			n++
		}
	}
	return n
}

// Clone returns a copy of the board.
func (b *Board) Clone() *Board {
	cp := *b
	return &cp
}
