// Package suggest owns the suggestion lifecycle: it decides when to ask the
// model, which in-flight answer is still valid by the time it returns, and
// how an accepted answer is merged back into the document.
//
// All session state lives on the host's event thread. Timer and network
// callbacks marshal back through Editor.Post before touching it, so no
// locking is needed beyond that discipline.
package suggest

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/haydenkz/nvim-wingman/internal/editor"
	"github.com/haydenkz/nvim-wingman/internal/extract"
	"github.com/haydenkz/nvim-wingman/internal/history"
	"github.com/haydenkz/nvim-wingman/internal/llm"
	"github.com/haydenkz/nvim-wingman/internal/prompt"
	"github.com/haydenkz/nvim-wingman/pkg/debounce"
	"go.uber.org/zap"
)

// Options carries the lifecycle knobs from configuration.
type Options struct {
	// Debounce is the quiet period after the last text change before a
	// request fires.
	Debounce int // milliseconds

	// TriggerThreshold is the minimum preceding-context length (in runes)
	// required before a request is dispatched.
	TriggerThreshold int

	// ContextLines bounds the extraction window above and below the cursor.
	ContextLines int

	// AutoTrigger enables requesting on text changes. Manual triggering
	// works either way.
	AutoTrigger bool

	// ShowSuggestions is the global enable; the toggle command flips it.
	ShowSuggestions bool
}

// session is the mutable per-editor state. The text and overlay fields are
// owned by the Renderer on the controller's behalf.
type session struct {
	text    string
	anchor  editor.Position
	overlay editor.OverlayID
	entry   *history.SuggestionEntry
}

// Controller drives the suggestion state machine. Construct one per editor
// session; every method must be called from the editor's event thread.
type Controller struct {
	ed       editor.Editor
	client   llm.Client
	store    *history.Store // optional; nil disables the suggestion log
	logger   *zap.Logger
	options  Options
	renderer *Renderer

	debouncer *debounce.Debouncer

	state           session
	requestInFlight bool
	latestRequestID int
}

func NewController(
	ed editor.Editor,
	client llm.Client,
	store *history.Store,
	logger *zap.Logger,
	options Options,
) *Controller {
	c := &Controller{
		ed:       ed,
		client:   client,
		store:    store,
		logger:   logger,
		options:  options,
		renderer: NewRenderer(ed, logger),
	}

	// The timer fires on its own goroutine; marshal onto the event thread
	// before touching session state.
	c.debouncer = debounce.New(millis(options.Debounce), func() {
		ed.Post(c.fire)
	})

	return c
}

// Hooks returns the registration surface a host binds into its event
// sources and keymaps.
func (c *Controller) Hooks() editor.Hooks {
	return editor.Hooks{
		TextChanged: c.HandleTextChanged,
		CursorMoved: c.HandleCursorMoved,
		ModeLeft:    c.HandleModeLeft,
		Accept:      c.Accept,
		TriggerNow:  c.TriggerNow,
		Toggle:      c.Toggle,
		Yank:        c.YankSuggestion,
		Close:       c.Close,
	}
}

// HandleTextChanged is the qualifying text-change event. Any displayed
// suggestion is cleared immediately as visual feedback that it is stale,
// and the debounce timer restarts.
func (c *Controller) HandleTextChanged() {
	c.renderer.Clear(&c.state)

	if !c.options.AutoTrigger {
		return
	}
	c.debouncer.Trigger()
}

// HandleCursorMoved clears a displayed suggestion when the cursor moves
// without accepting it.
func (c *Controller) HandleCursorMoved() {
	c.renderer.Clear(&c.state)
}

// HandleModeLeft clears the suggestion when the editor leaves insert mode.
func (c *Controller) HandleModeLeft() {
	c.debouncer.Stop()
	c.renderer.Clear(&c.state)
}

// TriggerNow bypasses the debounce and requests immediately, subject to the
// same in-flight and enable guards as the timer path. A trigger while a
// request is outstanding is silently dropped.
func (c *Controller) TriggerNow() {
	if !c.options.ShowSuggestions {
		return
	}
	if c.requestInFlight {
		c.logger.Debug("manual trigger dropped, request already in flight")
		return
	}
	c.dispatch()
}

// Toggle flips the global suggestion enable and returns the new value.
// Disabling clears any displayed suggestion and pending timer.
func (c *Controller) Toggle() bool {
	c.options.ShowSuggestions = !c.options.ShowSuggestions
	if !c.options.ShowSuggestions {
		c.debouncer.Stop()
		c.renderer.Clear(&c.state)
	}
	return c.options.ShowSuggestions
}

// Close releases the debounce timer. Session state is simply dropped with
// the editor session.
func (c *Controller) Close() {
	c.debouncer.Stop()
}

// fire is the debounce timer callback, already marshaled onto the event
// thread.
func (c *Controller) fire() {
	if !c.options.ShowSuggestions {
		return
	}
	if c.ed.Mode() != editor.ModeInsert {
		c.logger.Debug("debounce fired outside insert mode, skipping")
		return
	}
	if c.requestInFlight {
		// Do not queue and do not cancel; the next text change will retry.
		c.logger.Debug("debounce fired while request in flight, skipping")
		return
	}
	c.dispatch()
}

// dispatch captures a fresh request id and issues the backend call. The
// response is posted back to the event thread carrying the captured id;
// finish compares it against the latest id to detect staleness.
func (c *Controller) dispatch() {
	c.latestRequestID++
	id := c.latestRequestID
	anchor := c.ed.Cursor()

	before, after := extract.Window(c.ed, anchor, c.options.ContextLines)
	if utf8.RuneCountInString(before) < c.options.TriggerThreshold {
		c.logger.Debug("preceding context below threshold, not dispatching",
			zap.Int("length", utf8.RuneCountInString(before)),
			zap.Int("threshold", c.options.TriggerThreshold))
		return
	}

	in := prompt.Input{
		Before:   before,
		After:    after,
		Filetype: c.ed.Filetype(),
	}

	c.requestInFlight = true
	c.logger.Debug("dispatching completion request", zap.Int("requestId", id))

	go func() {
		text, err := c.client.Complete(context.Background(), in)
		c.ed.Post(func() {
			c.finish(id, anchor, text, err)
		})
	}()
}

// finish handles a completed backend call on the event thread. Whatever the
// outcome, the in-flight slot is released so the next trigger can proceed.
func (c *Controller) finish(id int, anchor editor.Position, text string, err error) {
	c.requestInFlight = false

	if id != c.latestRequestID {
		c.logger.Debug("discarding stale response",
			zap.Int("requestId", id),
			zap.Int("latestRequestId", c.latestRequestID))
		return
	}

	if err != nil {
		c.logger.Error("completion request failed", zap.Int("requestId", id), zap.Error(err))
		c.ed.Notify("wingman: " + err.Error())
		return
	}

	if text == "" {
		c.logger.Debug("empty suggestion, nothing to display", zap.Int("requestId", id))
		return
	}

	if !c.renderer.Render(&c.state, text, anchor) {
		return
	}
	c.state.anchor = anchor
	c.recordSuggestion(text)
}

func (c *Controller) recordSuggestion(text string) {
	if c.store == nil {
		return
	}
	entry, err := c.store.Record(c.ed.Filetype(), text)
	if err != nil {
		c.logger.Warn("failed to record suggestion", zap.Error(err))
		return
	}
	c.state.entry = entry
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
