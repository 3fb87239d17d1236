// Package tui hosts the suggestion engine in a small terminal editor. It is
// the reference implementation of the editor collaborator: a line buffer
// with insert/normal modes, a ghost-text overlay for the current
// suggestion, and keybindings routed into the lifecycle controller.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/haydenkz/nvim-wingman/internal/editor"
	"go.uber.org/zap"
)

// applyMsg carries a closure posted from another goroutine onto the
// bubbletea update loop, which is the engine's event thread.
type applyMsg struct {
	fn func()
}

type keyMap struct {
	Accept  key.Binding
	Trigger key.Binding
	Toggle  key.Binding
	Yank    key.Binding
	Quit    key.Binding
}

func newKeyMap(acceptKey string) keyMap {
	return keyMap{
		Accept:  key.NewBinding(key.WithKeys(acceptKey)),
		Trigger: key.NewBinding(key.WithKeys("ctrl+t")),
		Toggle:  key.NewBinding(key.WithKeys("ctrl+g")),
		Yank:    key.NewBinding(key.WithKeys("ctrl+y")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

type overlayState struct {
	id    editor.OverlayID
	pos   editor.Position
	lines []string
}

// Model is the bubbletea model and, at the same time, the editor.Editor
// implementation handed to the controller. All of its methods run on the
// update loop.
type Model struct {
	lines    []string
	cursor   editor.Position
	mode     editor.Mode
	filetype string

	overlay   overlayState
	nextID    editor.OverlayID
	status    string
	width     int
	height    int
	acceptKey string
	keys      keyMap

	hooks   editor.Hooks
	program *tea.Program
	logger  *zap.Logger
}

func NewModel(lines []string, filetype string, acceptKey string, logger *zap.Logger) *Model {
	if len(lines) == 0 {
		lines = []string{""}
	}
	return &Model{
		lines:     lines,
		mode:      editor.ModeNormal,
		filetype:  filetype,
		acceptKey: acceptKey,
		keys:      newKeyMap(acceptKey),
		logger:    logger,
	}
}

// SetHooks wires the engine callbacks after construction; the controller
// needs the model as its editor, so the two are linked in Run.
func (m *Model) SetHooks(hooks editor.Hooks) {
	m.hooks = hooks
}

// SetProgram gives the model its running program so Post can marshal
// closures onto the update loop.
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case applyMsg:
		msg.fn()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.hooks.Close()
			return m, tea.Quit
		}
		if m.mode == editor.ModeInsert {
			return m.updateInsert(msg)
		}
		return m.updateNormal(msg)
	}

	return m, nil
}

func (m *Model) updateInsert(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc:
		m.mode = editor.ModeNormal
		m.hooks.ModeLeft()
		return m, nil

	case key.Matches(msg, m.keys.Accept):
		if m.hooks.Accept() {
			return m, nil
		}
		// No suggestion displayed; the key falls through to its default
		// behavior.
		if m.acceptKey == "tab" {
			m.insertText("\t")
		}
		return m, nil

	case key.Matches(msg, m.keys.Trigger):
		m.hooks.TriggerNow()
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		m.toggleSuggestions()
		return m, nil

	case key.Matches(msg, m.keys.Yank):
		m.yankSuggestion()
		return m, nil

	case msg.Type == tea.KeyEnter:
		m.splitLine()
		m.hooks.TextChanged()
		return m, nil

	case msg.Type == tea.KeyBackspace:
		if m.deleteBackward() {
			m.hooks.TextChanged()
		}
		return m, nil

	case msg.Type == tea.KeyUp, msg.Type == tea.KeyDown, msg.Type == tea.KeyLeft, msg.Type == tea.KeyRight:
		m.moveCursor(msg.Type)
		m.hooks.CursorMoved()
		return m, nil

	case msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace:
		text := string(msg.Runes)
		if msg.Type == tea.KeySpace {
			text = " "
		}
		m.insertText(text)
		m.hooks.TextChanged()
		return m, nil
	}

	return m, nil
}

func (m *Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "i":
		m.mode = editor.ModeInsert
		m.status = ""
	case "q":
		m.hooks.Close()
		return m, tea.Quit
	case "t":
		m.toggleSuggestions()
	case "h", "left":
		m.moveCursor(tea.KeyLeft)
	case "l", "right":
		m.moveCursor(tea.KeyRight)
	case "k", "up":
		m.moveCursor(tea.KeyUp)
	case "j", "down":
		m.moveCursor(tea.KeyDown)
	}
	return m, nil
}

func (m *Model) toggleSuggestions() {
	if m.hooks.Toggle() {
		m.status = "suggestions enabled"
	} else {
		m.status = "suggestions disabled"
	}
}

func (m *Model) yankSuggestion() {
	if err := m.hooks.Yank(); err != nil {
		m.status = err.Error()
		return
	}
	m.status = "suggestion copied to clipboard"
}

// insertText inserts at the cursor and advances it. Only single-line
// fragments arrive here; line breaks come through splitLine.
func (m *Model) insertText(text string) {
	line := []rune(m.lines[m.cursor.Line])
	col := clampCol(m.cursor.Col, line)
	m.lines[m.cursor.Line] = string(line[:col]) + text + string(line[col:])
	m.cursor.Col = col + len([]rune(text))
}

func (m *Model) splitLine() {
	line := []rune(m.lines[m.cursor.Line])
	col := clampCol(m.cursor.Col, line)
	head, tail := string(line[:col]), string(line[col:])

	spliced := make([]string, 0, len(m.lines)+1)
	spliced = append(spliced, m.lines[:m.cursor.Line]...)
	spliced = append(spliced, head, tail)
	spliced = append(spliced, m.lines[m.cursor.Line+1:]...)
	m.lines = spliced

	m.cursor = editor.Position{Line: m.cursor.Line + 1, Col: 0}
}

func (m *Model) deleteBackward() bool {
	line := []rune(m.lines[m.cursor.Line])
	col := clampCol(m.cursor.Col, line)

	if col > 0 {
		m.lines[m.cursor.Line] = string(line[:col-1]) + string(line[col:])
		m.cursor.Col = col - 1
		return true
	}
	if m.cursor.Line == 0 {
		return false
	}

	// Join with the previous line.
	prev := m.lines[m.cursor.Line-1]
	spliced := make([]string, 0, len(m.lines)-1)
	spliced = append(spliced, m.lines[:m.cursor.Line-1]...)
	spliced = append(spliced, prev+string(line))
	spliced = append(spliced, m.lines[m.cursor.Line+1:]...)
	m.lines = spliced

	m.cursor = editor.Position{Line: m.cursor.Line - 1, Col: len([]rune(prev))}
	return true
}

func (m *Model) moveCursor(direction tea.KeyType) {
	switch direction {
	case tea.KeyUp:
		if m.cursor.Line > 0 {
			m.cursor.Line--
		}
	case tea.KeyDown:
		if m.cursor.Line < len(m.lines)-1 {
			m.cursor.Line++
		}
	case tea.KeyLeft:
		if m.cursor.Col > 0 {
			m.cursor.Col--
		}
	case tea.KeyRight:
		m.cursor.Col++
	}
	m.cursor.Col = clampCol(m.cursor.Col, []rune(m.lines[m.cursor.Line]))
}

func clampCol(col int, line []rune) int {
	if col < 0 {
		return 0
	}
	if col > len(line) {
		return len(line)
	}
	return col
}

// --- editor.Editor ---

func (m *Model) Cursor() editor.Position { return m.cursor }

func (m *Model) Lines(start, end int) []string {
	if start < 0 {
		start = 0
	}
	if end > len(m.lines) {
		end = len(m.lines)
	}
	if start >= end {
		return nil
	}
	return m.lines[start:end]
}

func (m *Model) LineCount() int { return len(m.lines) }

// SetText replaces the range between start and end with the given lines. An
// empty range (start == end) inserts.
func (m *Model) SetText(start, end editor.Position, lines []string) {
	startLine := []rune(m.lines[start.Line])
	endLine := []rune(m.lines[end.Line])
	prefix := string(startLine[:clampCol(start.Col, startLine)])
	suffix := string(endLine[clampCol(end.Col, endLine):])

	if len(lines) == 0 {
		lines = []string{""}
	}

	replacement := make([]string, 0, len(lines))
	if len(lines) == 1 {
		replacement = append(replacement, prefix+lines[0]+suffix)
	} else {
		replacement = append(replacement, prefix+lines[0])
		replacement = append(replacement, lines[1:len(lines)-1]...)
		replacement = append(replacement, lines[len(lines)-1]+suffix)
	}

	spliced := make([]string, 0, len(m.lines)+len(replacement))
	spliced = append(spliced, m.lines[:start.Line]...)
	spliced = append(spliced, replacement...)
	spliced = append(spliced, m.lines[end.Line+1:]...)
	m.lines = spliced
}

func (m *Model) SetCursor(pos editor.Position) {
	m.cursor = pos
	m.cursor.Col = clampCol(m.cursor.Col, []rune(m.lines[m.cursor.Line]))
}

func (m *Model) CreateOverlay(pos editor.Position, first string, extra []string) editor.OverlayID {
	m.nextID++
	m.overlay = overlayState{
		id:    m.nextID,
		pos:   pos,
		lines: append([]string{first}, extra...),
	}
	return m.nextID
}

func (m *Model) RemoveOverlay(id editor.OverlayID) {
	if m.overlay.id != id {
		return
	}
	m.overlay = overlayState{}
}

func (m *Model) Mode() editor.Mode { return m.mode }

func (m *Model) Filetype() string { return m.filetype }

func (m *Model) Notify(msg string) {
	m.status = msg
	m.logger.Debug("notify", zap.String("message", msg))
}

func (m *Model) Post(fn func()) {
	if m.program == nil {
		// Before the program starts there is no other goroutine; run
		// inline.
		fn()
		return
	}
	m.program.Send(applyMsg{fn: fn})
}

// ContentString returns the buffer joined by newlines, used when saving.
func (m *Model) ContentString() string {
	return strings.Join(m.lines, "\n")
}

var _ editor.Editor = (*Model)(nil)

func modeLabel(mode editor.Mode) string {
	if mode == editor.ModeInsert {
		return "INSERT"
	}
	return "NORMAL"
}

func (m *Model) statusLine() string {
	left := fmt.Sprintf(" %s  %s ", modeLabel(m.mode), m.filetype)
	if m.status != "" {
		left += " " + m.status
	}
	return left
}
