// Package editor defines the surface the suggestion engine needs from a
// host editor. The engine never touches a buffer directly; every read and
// mutation goes through this interface so hosts (a terminal buffer, an
// editor RPC bridge, a test fake) stay interchangeable.
package editor

// Position is a 0-indexed (line, column) location in a buffer. Column is a
// rune offset within the line, not a byte offset.
type Position struct {
	Line int
	Col  int
}

// Mode mirrors the host editor's input mode. Suggestions are only offered
// while the user is inserting text.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
)

// OverlayID identifies a rendered suggestion decoration. The zero value
// means no overlay.
type OverlayID int

// Editor is the document/view collaborator. All methods must be called from
// the host's event thread; Post is the only way to get there from elsewhere.
type Editor interface {
	// Cursor returns the current cursor position.
	Cursor() Position

	// Lines returns buffer lines in [start, end). Out-of-range boundaries
	// are clamped; the result may be shorter than requested.
	Lines(start, end int) []string

	// LineCount returns the number of lines in the buffer.
	LineCount() int

	// SetText replaces the text between start and end (an empty range
	// inserts) with the given lines, joined by line breaks.
	SetText(start, end Position, lines []string)

	// SetCursor moves the cursor.
	SetCursor(pos Position)

	// CreateOverlay draws a suggestion decoration: first is rendered inline
	// at pos, extra as virtual lines beneath. Returns a handle for removal.
	CreateOverlay(pos Position, first string, extra []string) OverlayID

	// RemoveOverlay removes a decoration. Removing an absent or stale id is
	// a no-op, not an error.
	RemoveOverlay(id OverlayID)

	// Mode returns the editor's current input mode.
	Mode() Mode

	// Filetype returns the language label of the current buffer, e.g. "go".
	Filetype() string

	// Notify shows a non-blocking message to the user.
	Notify(msg string)

	// Post schedules fn to run on the event thread. It is the marshaling
	// point for timer and network callbacks; fn must not be run
	// concurrently with other event handling.
	Post(fn func())
}
