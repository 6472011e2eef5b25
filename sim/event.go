package sim

// An Event is something that happens at a certain point in simulated time.
type Event interface {
	// Time returns the time at which the event should happen.
	Time() VTime

	// Handler returns the handler that handles the event.
	Handler() Handler
}

// A Handler defines a domain for events. An event can only be scheduled by
// its handler and, when triggered, can only directly modify that handler.
type Handler interface {
	Handle(e Event) error
}

// EventBase provides the basic fields and getters for other events.
type EventBase struct {
	ID      string
	time    VTime
	handler Handler
}

// MakeEventBase creates an EventBase that happens at time t.
func MakeEventBase(t VTime, handler Handler) EventBase {
	return EventBase{
		ID:      GetIDGenerator().Generate(),
		time:    t,
		handler: handler,
	}
}

// Time returns the time at which the event happens.
func (e EventBase) Time() VTime {
	return e.time
}

// Handler returns the handler that handles the event.
func (e EventBase) Handler() Handler {
	return e.handler
}
