package suggest

import (
	"strings"

	"github.com/haydenkz/nvim-wingman/internal/editor"
	"go.uber.org/zap"
)

// Renderer projects the current suggestion onto the document view. It owns
// the session's text and overlay fields on the controller's behalf; nothing
// else writes them.
type Renderer struct {
	ed     editor.Editor
	logger *zap.Logger
}

func NewRenderer(ed editor.Editor, logger *zap.Logger) *Renderer {
	return &Renderer{
		ed:     ed,
		logger: logger,
	}
}

// Render clears any prior decoration and draws text at anchor: the first
// line inline at the anchor column, the rest as virtual lines beneath. If
// the live cursor has moved off the anchor line by render time, nothing is
// drawn and false is returned.
func (r *Renderer) Render(s *session, text string, anchor editor.Position) bool {
	r.Clear(s)

	if r.ed.Cursor().Line != anchor.Line {
		r.logger.Debug("cursor left the anchor line, skipping render",
			zap.Int("anchorLine", anchor.Line),
			zap.Int("cursorLine", r.ed.Cursor().Line))
		return false
	}

	lines := strings.Split(text, "\n")
	s.overlay = r.ed.CreateOverlay(anchor, lines[0], lines[1:])
	s.text = text
	return true
}

// Clear removes the decoration if one is displayed and always resets the
// suggestion text. Removing an already-gone overlay is a no-op on the
// editor side.
func (r *Renderer) Clear(s *session) {
	if s.overlay != 0 {
		r.ed.RemoveOverlay(s.overlay)
		s.overlay = 0
	}
	s.text = ""
	s.entry = nil
}
