package sim

// An Engine drives a discrete-event simulation forward.
type Engine interface {
	Hookable
	TimeTeller
	EventScheduler

	// Run processes events until no event is left in the queue.
	Run() error

	// Pause stops the engine from triggering more events until Continue is
	// called.
	Pause()

	// Continue resumes a paused engine.
	Continue()
}
