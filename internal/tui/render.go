package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/bingo/internal/bingo"
)

const cellWidth = 14

var (
	cellStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Width(cellWidth).
			Height(3).
			Align(lipgloss.Center, lipgloss.Center)

	centerStyle = cellStyle.
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#b33939"))

	emptyStyle  = cellStyle.Faint(true)
	markedStyle = cellStyle.Bold(true).Reverse(true)
	cursorColor = lipgloss.Color("205")

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// RenderBoard draws the 5x5 grid. cursor < 0 draws no cursor.
func RenderBoard(b *bingo.Board, cursor int) string {
	rows := make([]string, 0, bingo.GridSize)
	for r := 0; r < bingo.GridSize; r++ {
		cells := make([]string, 0, bingo.GridSize)
		for c := 0; c < bingo.GridSize; c++ {
			i := r*bingo.GridSize + c
			cells = append(cells, renderCell(b.Cells[i], i == cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCell(cell bingo.Cell, selected bool) string {
	st := cellStyle
	switch {
	case cell.Center:
		st = centerStyle
	case cell.Empty:
		st = emptyStyle
	case cell.Marked:
		st = markedStyle
	}
	if selected {
		st = st.BorderStyle(lipgloss.ThickBorder()).BorderForeground(cursorColor)
	}
	text := cell.Text
	if cell.Empty {
		text = "·"
	}
	return st.Render(text)
}
