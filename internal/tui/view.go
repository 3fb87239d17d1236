package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

var (
	ghostStyle  = lipgloss.NewStyle().Faint(true)
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	statusStyle = lipgloss.NewStyle().Reverse(true).Bold(true)
)

func (m *Model) View() string {
	var b strings.Builder

	for i, line := range m.lines {
		rendered := line

		if m.overlay.id != 0 && m.overlay.pos.Line == i {
			rendered = m.renderOverlayLine(line)
		} else if m.cursor.Line == i {
			rendered = renderCursorLine(line, m.cursor.Col)
		}

		b.WriteString(rendered)
		b.WriteString("\n")

		// Virtual lines for the overlay's continuation.
		if m.overlay.id != 0 && m.overlay.pos.Line == i {
			for _, ghost := range m.overlay.lines[1:] {
				b.WriteString(ghostStyle.Render(ghost))
				b.WriteString("\n")
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

// renderOverlayLine draws the buffer line with the suggestion's first line
// inlined at the overlay column as faint ghost text. The cursor sits at the
// overlay anchor, shown on the first ghost cell.
func (m *Model) renderOverlayLine(line string) string {
	runes := []rune(line)
	col := clampCol(m.overlay.pos.Col, runes)
	ghost := m.overlay.lines[0]

	var b strings.Builder
	b.WriteString(string(runes[:col]))
	if ghost != "" {
		ghostRunes := []rune(ghost)
		b.WriteString(cursorStyle.Render(string(ghostRunes[0])))
		b.WriteString(ghostStyle.Render(string(ghostRunes[1:])))
	}
	b.WriteString(string(runes[col:]))
	return b.String()
}

func renderCursorLine(line string, col int) string {
	runes := []rune(line)
	col = clampCol(col, runes)

	if col >= len(runes) {
		return line + cursorStyle.Render(" ")
	}

	return string(runes[:col]) +
		cursorStyle.Render(string(runes[col])) +
		string(runes[col+1:])
}

func (m *Model) renderStatus() string {
	status := m.statusLine()
	width := m.width
	if width <= 0 {
		width = 80
	}

	status = truncate.String(status, uint(width))
	if pad := width - runewidth.StringWidth(status); pad > 0 {
		status += strings.Repeat(" ", pad)
	}
	return statusStyle.Render(status)
}
