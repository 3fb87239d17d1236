package suggest

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/haydenkz/nvim-wingman/internal/editor"
	"go.uber.org/zap"
)

// ErrNoSuggestion is returned by YankSuggestion when nothing is displayed.
var ErrNoSuggestion = errors.New("no suggestion displayed")

// Accept splices the displayed suggestion into the document at its anchor
// and moves the cursor past the inserted text. It returns false when no
// suggestion is displayed, in which case the host should fall back to the
// default behavior for the accept key.
func (c *Controller) Accept() bool {
	if c.state.text == "" {
		return false
	}

	text := c.state.text
	anchor := c.state.anchor
	entry := c.state.entry

	// Drop the overlay before mutating the buffer so the ghost text never
	// coexists with the real text.
	c.renderer.Clear(&c.state)

	lines := strings.Split(text, "\n")
	c.ed.SetText(anchor, anchor, lines)

	var cursor editor.Position
	if len(lines) == 1 {
		cursor = editor.Position{
			Line: anchor.Line,
			Col:  anchor.Col + len([]rune(lines[0])),
		}
	} else {
		cursor = editor.Position{
			Line: anchor.Line + len(lines) - 1,
			Col:  len([]rune(lines[len(lines)-1])),
		}
	}
	c.ed.SetCursor(cursor)

	c.logger.Debug("accepted suggestion",
		zap.Int("lines", len(lines)),
		zap.Int("cursorLine", cursor.Line),
		zap.Int("cursorCol", cursor.Col))

	if c.store != nil && entry != nil {
		if err := c.store.MarkAccepted(entry); err != nil {
			c.logger.Warn("failed to mark suggestion accepted", zap.Error(err))
		}
	}

	return true
}

// YankSuggestion copies the displayed suggestion to the system clipboard
// without accepting it.
func (c *Controller) YankSuggestion() error {
	if c.state.text == "" {
		return ErrNoSuggestion
	}
	return clipboard.WriteAll(c.state.text)
}
