package bingo

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionStartsEmpty(t *testing.T) {
	s := NewSession("s1", seeded(1))
	snap := s.Snapshot()

	assert.Equal(t, "s1", snap.SessionID)
	assert.Equal(t, 0, snap.Count)
	assert.Empty(t, snap.Cards)
	assert.Equal(t, 0, snap.Board.Filled())
	assert.Equal(t, CenterLabel, snap.Board.Cells[CenterIndex].Text)
}

func TestSessionSeedThenBoard(t *testing.T) {
	s := NewSession("s1", seeded(2))
	n := s.Seed([]string{"a", " ", "b", ""})
	assert.Equal(t, 2, n)

	b, size := s.NewBoard()
	assert.Equal(t, 2, size)
	assert.Equal(t, 2, b.Filled())
}

func TestSessionAddDoesNotRegenerate(t *testing.T) {
	s := NewSession("s1", seeded(3))
	s.Seed([]string{"a", "b"})
	before, _ := s.NewBoard()

	s.AddCard("c")
	s.AddCardsBulk("d\ne")

	snap := s.Snapshot()
	assert.Equal(t, 5, snap.Count)
	assert.Equal(t, before.Cells, snap.Board.Cells)
}

func TestSessionRemoveDoesNotRegenerate(t *testing.T) {
	s := NewSession("s1", seeded(4))
	s.Seed([]string{"a", "b", "c"})
	before, _ := s.NewBoard()

	removed, err := s.RemoveCardAt(0)
	require.NoError(t, err)
	assert.Equal(t, "a", removed.Text)

	snap := s.Snapshot()
	assert.Equal(t, []string{"b", "c"}, []string{snap.Cards[0].Text, snap.Cards[1].Text})
	assert.Equal(t, before.Cells, snap.Board.Cells)

	_, err = s.RemoveCard(snap.Cards[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, s.PoolSize())
}

func TestSessionClearRegenerates(t *testing.T) {
	s := NewSession("s1", seeded(5))
	s.Seed([]string{"a", "b", "c"})
	s.NewBoard()
	s.Toggle(0)

	b := s.Clear()

	assert.Equal(t, 0, s.PoolSize())
	assert.Equal(t, 0, b.Filled())
	assert.Equal(t, 0, b.Marked())
	for i, c := range b.Cells {
		if i != CenterIndex {
			assert.True(t, c.Empty, "cell %d", i)
		}
	}
}

func TestSessionNewBoardResetsMarks(t *testing.T) {
	s := NewSession("s1", seeded(6))
	s.Seed(phrases(24))
	s.NewBoard()

	ok, b := s.Toggle(4)
	require.True(t, ok)
	assert.True(t, b.Cells[4].Marked)

	b, _ = s.NewBoard()
	assert.Equal(t, 0, b.Marked())
}

func TestSessionToggleTwiceRestores(t *testing.T) {
	s := NewSession("s1", seeded(7))
	s.Seed([]string{"a"})
	s.NewBoard()

	s.Toggle(0)
	_, b := s.Toggle(0)
	assert.False(t, b.Cells[0].Marked)

	ok, b := s.Toggle(CenterIndex)
	assert.False(t, ok)
	assert.False(t, b.Cells[CenterIndex].Marked)

	ok, _ = s.Toggle(1)
	assert.False(t, ok)
}

func TestSessionSnapshotIsolated(t *testing.T) {
	s := NewSession("s1", seeded(8))
	s.Seed([]string{"a"})
	s.NewBoard()

	snap := s.Snapshot()
	snap.Board.Toggle(0)
	snap.Cards[0].Text = "changed"

	again := s.Snapshot()
	assert.False(t, again.Board.Cells[0].Marked)
	assert.Equal(t, "a", again.Cards[0].Text)
}

func TestSessionTouch(t *testing.T) {
	s := NewSession("s1", nil)
	at := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	s.Touch(at)
	assert.Equal(t, at, s.LastSeen())
}

func TestSessionConcurrentMutations(t *testing.T) {
	s := NewSession("s1", seeded(9))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s.AddCard("x")
				s.NewBoard()
				s.Toggle(0)
				_ = s.Snapshot()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 400, s.PoolSize())
}

func TestSessionNewBoardReportsDrawnPool(t *testing.T) {
	s := NewSession("s1", seeded(10))
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < FillCells; i++ {
			s.AddCard(fmt.Sprintf("card %d", i))
		}
	}()

	for {
		select {
		case <-done:
			b, size := s.NewBoard()
			assert.Equal(t, FillCells, size)
			assert.Equal(t, FillCells, b.Filled())
			return
		default:
			b, size := s.NewBoard()
			require.Equal(t, size, b.Filled())
		}
	}
}
