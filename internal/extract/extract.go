// Package extract reads the code surrounding the cursor to build prompt
// context. The window is bounded to keep prompt size in check; it never
// spans the whole document.
package extract

import (
	"strings"

	"github.com/haydenkz/nvim-wingman/internal/editor"
	"github.com/samber/lo"
)

// Window returns the code before and after the cursor. Before covers up to
// windowLines lines above the cursor plus the current line through the
// cursor column; after covers the remainder of the current line plus up to
// windowLines lines below. The cursor column is clamped to the current
// line's length. Pure read, no side effects.
func Window(ed editor.Editor, pos editor.Position, windowLines int) (before, after string) {
	line := lo.Clamp(pos.Line, 0, ed.LineCount()-1)

	current := ""
	if got := ed.Lines(line, line+1); len(got) > 0 {
		current = got[0]
	}

	runes := []rune(current)
	col := lo.Clamp(pos.Col, 0, len(runes))

	aboveStart := lo.Clamp(line-windowLines, 0, line)
	above := ed.Lines(aboveStart, line)

	belowEnd := lo.Clamp(line+1+windowLines, line+1, ed.LineCount())
	below := ed.Lines(line+1, belowEnd)

	var b strings.Builder
	for _, l := range above {
		b.WriteString(l)
		b.WriteString("\n")
	}
	b.WriteString(string(runes[:col]))
	before = b.String()

	var a strings.Builder
	a.WriteString(string(runes[col:]))
	for _, l := range below {
		a.WriteString("\n")
		a.WriteString(l)
	}
	after = a.String()

	return before, after
}
