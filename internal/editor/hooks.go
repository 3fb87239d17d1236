package editor

// Hooks is the registration surface between a host and the suggestion
// engine: the host binds these callbacks into its own event sources,
// keybindings, and commands. All callbacks must be invoked on the event
// thread.
type Hooks struct {
	// Event subscriptions.
	TextChanged func()
	CursorMoved func()
	ModeLeft    func()

	// Accept is bound to the configured accept key. It returns false when
	// no suggestion is displayed, in which case the host applies the key's
	// default behavior.
	Accept func() bool

	// Commands.
	TriggerNow func()
	Toggle     func() bool
	Yank       func() error

	// Close releases the engine's resources when the session ends.
	Close func()
}
