package extract

import (
	"testing"

	"github.com/haydenkz/nvim-wingman/internal/editor"
	"github.com/stretchr/testify/assert"
)

// bufferEditor implements just enough of editor.Editor to feed the extractor.
type bufferEditor struct {
	lines []string
}

func (b *bufferEditor) Cursor() editor.Position { return editor.Position{} }

func (b *bufferEditor) Lines(start, end int) []string {
	if start < 0 {
		start = 0
	}
	if end > len(b.lines) {
		end = len(b.lines)
	}
	if start >= end {
		return nil
	}
	return b.lines[start:end]
}

func (b *bufferEditor) LineCount() int { return len(b.lines) }

func (b *bufferEditor) SetText(start, end editor.Position, lines []string) {}
func (b *bufferEditor) SetCursor(pos editor.Position)                      {}
func (b *bufferEditor) CreateOverlay(pos editor.Position, first string, extra []string) editor.OverlayID {
	return 0
}
func (b *bufferEditor) RemoveOverlay(id editor.OverlayID) {}
func (b *bufferEditor) Mode() editor.Mode                 { return editor.ModeInsert }
func (b *bufferEditor) Filetype() string                  { return "go" }
func (b *bufferEditor) Notify(msg string)                 {}
func (b *bufferEditor) Post(fn func())                    { fn() }

func TestWindowSplitsAtCursor(t *testing.T) {
	ed := &bufferEditor{lines: []string{
		"package main",
		"",
		"func main() {",
		"\tprintln(1)",
		"}",
	}}

	before, after := Window(ed, editor.Position{Line: 3, Col: 8}, 10)

	assert.Equal(t, "package main\n\nfunc main() {\n\tprintln", before)
	assert.Equal(t, "(1)\n}", after)
}

func TestWindowBoundsAboveAndBelow(t *testing.T) {
	ed := &bufferEditor{lines: []string{"a", "b", "c", "d", "e", "f", "g"}}

	before, after := Window(ed, editor.Position{Line: 3, Col: 1}, 1)

	// Only one line above and one line below should be included.
	assert.Equal(t, "c\nd", before)
	assert.Equal(t, "\ne", after)
}

func TestWindowClampsColumn(t *testing.T) {
	ed := &bufferEditor{lines: []string{"short"}}

	before, after := Window(ed, editor.Position{Line: 0, Col: 99}, 5)

	assert.Equal(t, "short", before)
	assert.Equal(t, "", after)
}

func TestWindowClampsLine(t *testing.T) {
	ed := &bufferEditor{lines: []string{"only"}}

	before, after := Window(ed, editor.Position{Line: 9, Col: 0}, 5)

	assert.Equal(t, "", before)
	assert.Equal(t, "only", after)
}

func TestWindowAtBufferStart(t *testing.T) {
	ed := &bufferEditor{lines: []string{"first line", "second"}}

	before, after := Window(ed, editor.Position{Line: 0, Col: 5}, 20)

	assert.Equal(t, "first", before)
	assert.Equal(t, " line\nsecond", after)
}
