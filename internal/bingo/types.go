// internal/bingo/types.go
//
// Core type definitions for the bingo card engine.
// Defines:
//   - Card:  one phrase in a session's card pool.
//   - Cell:  one square of a generated board.
//   - Board: the 5x5 grid derived from a shuffled pool.

package bingo

import "errors"

const (
	GridSize    = 5
	TotalCells  = GridSize * GridSize // 25
	CenterIndex = TotalCells / 2      // 12
	CenterLabel = "Headshot"
	FillCells   = TotalCells - 1 // cells drawn from the pool
)

var (
	// ErrIndexOutOfRange is returned by positional pool operations.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrCardNotFound is returned when no card carries the requested ID.
	ErrCardNotFound = errors.New("card not found")
)

// Card is a single phrase in the pool.
type Card struct {
	ID   string `json:"id"`   // Stable row identifier (UUID).
	Text string `json:"text"` // Trimmed, never empty.
}

// Cell is one square of a board.
type Cell struct {
	Text   string `json:"text"`
	Center bool   `json:"center"` // Fixed "Headshot" square.
	Empty  bool   `json:"empty"`  // No pool entry left; not toggleable.
	Marked bool   `json:"marked"`
}

// Board holds the 25 cells of a card in row-major order.
type Board struct {
	Cells [TotalCells]Cell `json:"cells"`
}
