// Package tui is the terminal rendering surface: a static board printer and
// an interactive bubbletea model over a single session.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/robalobadob/bingo/internal/bingo"
)

// Model is the interactive board.
type Model struct {
	session  *bingo.Session
	board    *bingo.Board
	cursor   int
	status   string
	quitting bool
}

// New wraps a session whose board has already been drawn.
func New(s *bingo.Session) Model {
	return Model{session: s, board: s.Snapshot().Board}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	row, col := m.cursor/bingo.GridSize, m.cursor%bingo.GridSize
	switch key.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if row > 0 {
			m.cursor -= bingo.GridSize
		}
	case "down", "j":
		if row < bingo.GridSize-1 {
			m.cursor += bingo.GridSize
		}
	case "left", "h":
		if col > 0 {
			m.cursor--
		}
	case "right", "l":
		if col < bingo.GridSize-1 {
			m.cursor++
		}
	case " ", "enter":
		var toggled bool
		toggled, m.board = m.session.Toggle(m.cursor)
		m.status = ""
		if !toggled {
			m.status = "that square can't be marked"
		}
	case "n":
		m.board, _ = m.session.NewBoard()
		m.status = "new board"
	case "c":
		m.board = m.session.Clear()
		m.status = "pool cleared"
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(RenderBoard(m.board, m.cursor))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("cards: %d  marked: %d", m.session.PoolSize(), m.board.Marked()))
	if m.status != "" {
		sb.WriteString("  · " + m.status)
	}
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("arrows/hjkl move · space mark · n new board · c clear · q quit"))
	sb.WriteString("\n")
	return sb.String()
}

// Cursor reports the selected cell index.
func (m Model) Cursor() int { return m.cursor }

// Board returns the board as last rendered.
func (m Model) Board() *bingo.Board { return m.board }
