package tui

import (
	"math/rand/v2"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/bingo/internal/bingo"
)

func newModel(t *testing.T, phrases ...string) Model {
	t.Helper()
	s := bingo.NewSession("tui", rand.New(rand.NewPCG(1, 2)))
	s.Seed(phrases)
	s.NewBoard()
	return New(s)
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestCursorMovementStaysOnGrid(t *testing.T) {
	m := newModel(t, "a")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 0, m.Cursor())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 6, m.Cursor())

	m = press(t, m, runes("l"), runes("l"), runes("l"), runes("l"), runes("l"))
	assert.Equal(t, 9, m.Cursor())

	m = press(t, m, runes("j"), runes("j"), runes("j"), runes("j"))
	assert.Equal(t, 24, m.Cursor())

	m = press(t, m, runes("k"), runes("h"))
	assert.Equal(t, 18, m.Cursor())
}

func TestToggleFromKeyboard(t *testing.T) {
	m := newModel(t, "a", "b")

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.True(t, m.Board().Cells[0].Marked)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.Board().Cells[0].Marked)

	// Cell 2 is empty with a two-phrase pool.
	m = press(t, m, runes("l"), runes("l"), tea.KeyMsg{Type: tea.KeySpace})
	assert.False(t, m.Board().Cells[2].Marked)
	assert.Contains(t, m.View(), "can't be marked")
}

func TestNewBoardAndClear(t *testing.T) {
	m := newModel(t, "a", "b", "c")
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	require.Equal(t, 1, m.Board().Marked())

	m = press(t, m, runes("n"))
	assert.Equal(t, 0, m.Board().Marked())
	assert.Equal(t, 3, m.Board().Filled())

	m = press(t, m, runes("c"))
	assert.Equal(t, 0, m.Board().Filled())
	assert.Contains(t, m.View(), "cards: 0")
}

func TestQuit(t *testing.T) {
	m := newModel(t)
	next, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, next.View())
}

func TestRenderBoard(t *testing.T) {
	b := bingo.Generate([]string{"alpha"}, rand.New(rand.NewPCG(3, 4)))
	out := RenderBoard(b, -1)
	assert.Contains(t, out, bingo.CenterLabel)
	assert.Contains(t, out, "alpha")
	assert.Equal(t, 5*5, strings.Count(out, "╭")) // one rounded corner per cell
}
