// Package clock generates the two-phase clock that paces a verification
// run. Each cycle is delivered to subscribed listeners as three phase
// events: the rising edge, the falling edge (the drive phase), and a settle
// point placed between the falling edge and the next rising edge (the
// read-only sample phase).
package clock

import (
	"github.com/sialab/ryval/sim"
)

// Phase identifies a point within a clock cycle.
type Phase int

// The phases of a cycle, in the order they occur.
const (
	PhaseRising Phase = iota
	PhaseFalling
	PhaseSettle
)

// String returns the name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseRising:
		return "rising"
	case PhaseFalling:
		return "falling"
	case PhaseSettle:
		return "settle"
	default:
		return "unknown"
	}
}

// A Listener is notified of every phase of every clock cycle. Listeners are
// dispatched in subscription order, so a device subscribed before the
// testbench settles its combinational outputs before the testbench samples
// them.
type Listener interface {
	OnRisingEdge(cycle uint64)
	OnFallingEdge(cycle uint64)
	OnSettle(cycle uint64)
}

// A Generator schedules the phase events of a named clock on a simulation
// engine.
type Generator struct {
	name      string
	engine    sim.Engine
	freq      sim.Freq
	listeners []Listener

	cycle   uint64
	running bool
}

// NewGenerator creates a clock generator with the given frequency.
func NewGenerator(name string, engine sim.Engine, freq sim.Freq) *Generator {
	sim.NameMustBeValid(name)

	return &Generator{
		name:   name,
		engine: engine,
		freq:   freq,
	}
}

// Name returns the name of the clock.
func (g *Generator) Name() string {
	return g.name
}

// Freq returns the clock frequency.
func (g *Generator) Freq() sim.Freq {
	return g.freq
}

// Cycle returns the index of the cycle currently in flight.
func (g *Generator) Cycle() uint64 {
	return g.cycle
}

// Subscribe registers a listener. Subscription order is dispatch order.
// Subscribing after the clock has started panics.
func (g *Generator) Subscribe(l Listener) {
	if g.running {
		panic("cannot subscribe to a running clock")
	}

	g.listeners = append(g.listeners, l)
}

// Start schedules the first rising edge at the tick at or after the current
// engine time.
func (g *Generator) Start() {
	if g.running {
		panic("clock " + g.name + " is already running")
	}

	g.running = true
	g.schedule(PhaseRising, g.cycle, g.freq.ThisTick(g.engine.CurrentTime()))
}

// Stop prevents further phase events from being scheduled. The phase events
// of the current cycle that are already scheduled still trigger.
func (g *Generator) Stop() {
	g.running = false
}

// Handle dispatches a phase event to the listeners and schedules the next
// phase.
func (g *Generator) Handle(e sim.Event) error {
	evt := e.(phaseEvent)

	for _, l := range g.listeners {
		switch evt.phase {
		case PhaseRising:
			l.OnRisingEdge(evt.cycle)
		case PhaseFalling:
			l.OnFallingEdge(evt.cycle)
		case PhaseSettle:
			l.OnSettle(evt.cycle)
		}
	}

	if !g.running {
		return nil
	}

	g.scheduleNext(evt)

	return nil
}

func (g *Generator) scheduleNext(evt phaseEvent) {
	period := g.freq.Period()

	switch evt.phase {
	case PhaseRising:
		g.schedule(PhaseFalling, evt.cycle, evt.Time()+period/2)
	case PhaseFalling:
		// Three quarters into the cycle: after the drive phase, before the
		// upcoming rising edge.
		g.schedule(PhaseSettle, evt.cycle, evt.Time()+period/4)
	case PhaseSettle:
		g.cycle = evt.cycle + 1
		g.schedule(PhaseRising, g.cycle, g.freq.NextTick(evt.Time()))
	}
}

func (g *Generator) schedule(p Phase, cycle uint64, t sim.VTime) {
	g.engine.Schedule(phaseEvent{
		EventBase: sim.MakeEventBase(t, g),
		phase:     p,
		cycle:     cycle,
	})
}

type phaseEvent struct {
	sim.EventBase
	phase Phase
	cycle uint64
}
