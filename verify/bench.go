package verify

import (
	"fmt"
	"log"
	"sync"

	"github.com/sialab/ryval/clock"
	"github.com/sialab/ryval/duv"
	"github.com/sialab/ryval/sim"
)

// Mode identifies the phase a verification run is in.
type Mode int

// The run phases, in order.
const (
	ModeReset Mode = iota
	ModePrime
	ModeDirected
	ModeRandom
	ModeDrain
	ModeDone
)

// String returns the name of the mode, which also labels the violations
// recorded while the mode is active.
func (m Mode) String() string {
	switch m {
	case ModeReset:
		return "reset"
	case ModePrime:
		return "prime"
	case ModeDirected:
		return "directed"
	case ModeRandom:
		return "random"
	case ModeDrain:
		return "drain"
	case ModeDone:
		return "done"
	default:
		return "unknown"
	}
}

// A Bench runs one verification of a device: reset, an optional prime
// cycle, directed vectors, randomized traffic, and a final drain, scoring
// every cycle through the sampler and the scoreboard. The bench owns the
// scoreboard exclusively; no other component mutates it.
type Bench struct {
	name   string
	engine sim.Engine
	clk    *clock.Generator
	device duv.Device
	bind   duv.Binding
	logger *log.Logger

	sampler    *Sampler
	scoreboard *Scoreboard
	primeBoard *Scoreboard
	reset      *ResetSequencer
	directed   *DirectedStimulus
	random     *RandomStimulus
	drainStim  DrainStimulus
	drain      *DrainController

	primeEnabled bool

	mode         Mode
	lastAccepted bool
	lastOutValid bool

	statusLock     sync.Mutex
	inputsAccepted uint64
	sampledCycles  uint64
}

// Name returns the name of the bench.
func (b *Bench) Name() string {
	return b.name
}

// Scoreboard returns the scoreboard of the run.
func (b *Bench) Scoreboard() *Scoreboard {
	return b.scoreboard
}

// Run executes the verification to completion and returns an error if the
// device diverged from the reference model. A run is deterministic for a
// given seed.
func (b *Bench) Run() error {
	b.reset.Start()
	b.device.Settle()
	b.clk.Start()

	if err := b.engine.Run(); err != nil {
		return err
	}

	res := b.Result()
	if !res.Passed {
		return fmt.Errorf("%s: verification failed with %d violations",
			b.name, res.Tally)
	}

	return nil
}

// A Result summarizes a finished run.
type Result struct {
	Passed         bool
	Tally          int
	Pending        int
	InputsAccepted uint64
	Violations     []Violation
}

// Result returns the summary of the run so far.
func (b *Bench) Result() Result {
	b.statusLock.Lock()
	accepted := b.inputsAccepted
	b.statusLock.Unlock()

	return Result{
		Passed:         b.scoreboard.Tally() == 0 && b.scoreboard.Drained(),
		Tally:          b.scoreboard.Tally(),
		Pending:        b.scoreboard.Pending(),
		InputsAccepted: accepted,
		Violations:     b.scoreboard.Violations(),
	}
}

// A Status is a point-in-time progress snapshot, safe to read while the run
// is in flight.
type Status struct {
	Mode           string `json:"mode"`
	Cycle          uint64 `json:"cycle"`
	Pending        int    `json:"pending"`
	Tally          int    `json:"tally"`
	InputsAccepted uint64 `json:"inputs_accepted"`
}

// Status returns the progress snapshot.
func (b *Bench) Status() Status {
	b.statusLock.Lock()
	defer b.statusLock.Unlock()

	return Status{
		Mode:           b.mode.String(),
		Cycle:          b.sampledCycles,
		Pending:        b.scoreboard.Pending(),
		Tally:          b.scoreboard.Tally(),
		InputsAccepted: b.inputsAccepted,
	}
}

// OnFallingEdge drives the stimulus for the upcoming cycle. Writes happen
// only here, never during the settle window.
func (b *Bench) OnFallingEdge(cycle uint64) {
	switch b.mode {
	case ModeReset:
		b.reset.OnFallingEdge()
	case ModePrime:
		// Hold the consumer not-ready so that no output can transfer on
		// the first post-reset edge.
		b.bind.OutReady.SetBit(false)
	case ModeDirected:
		b.applyDrive(b.directed.Next(b.lastAccepted))
	case ModeRandom:
		b.applyDrive(b.random.Next(b.lastAccepted))
	case ModeDrain:
		b.applyDrive(b.drainStim.Next(b.lastAccepted))
	}
}

// OnSettle samples the cycle and scores it.
func (b *Bench) OnSettle(cycle uint64) {
	switch b.mode {
	case ModeReset, ModeDone:
		return
	case ModePrime:
		// Sampled against a disposable scoreboard; whatever the first
		// post-reset cycle shows is discarded.
		b.sampler.Step(b.primeBoard, b.mode.String(), cycle)
		b.lastAccepted = false
		b.lastOutValid = false
		return
	}

	res := b.sampler.Step(b.scoreboard, b.mode.String(), cycle)
	b.lastAccepted = res.InAccepted
	b.lastOutValid = res.OutValid

	b.statusLock.Lock()
	b.sampledCycles++
	if res.InAccepted {
		b.inputsAccepted++
	}
	b.statusLock.Unlock()
}

// OnRisingEdge advances the run past the edge on which the sampled
// handshakes took effect.
func (b *Bench) OnRisingEdge(cycle uint64) {
	switch b.mode {
	case ModeReset:
		b.reset.OnRisingEdge()
		if b.reset.Done() {
			if b.primeEnabled {
				b.setMode(ModePrime)
			} else {
				b.enterTraffic()
			}
		}
	case ModePrime:
		b.enterTraffic()
	case ModeDirected:
		if b.directed.Done() {
			b.enterRandomOrDrain()
		}
	case ModeRandom:
		if b.random.Done() {
			b.setMode(ModeDrain)
		}
	case ModeDrain:
		if b.drain.CycleDone(b.scoreboard.Pending(), b.lastOutValid) {
			b.finish(cycle)
		}
	}
}

func (b *Bench) enterTraffic() {
	if !b.directed.Done() {
		b.setMode(ModeDirected)
		return
	}

	b.enterRandomOrDrain()
}

func (b *Bench) enterRandomOrDrain() {
	if !b.random.Done() {
		b.setMode(ModeRandom)
		return
	}

	b.setMode(ModeDrain)
}

func (b *Bench) setMode(m Mode) {
	b.statusLock.Lock()
	b.mode = m
	b.statusLock.Unlock()
}

func (b *Bench) finish(cycle uint64) {
	b.scoreboard.ReportResidual(b.lastOutValid, ModeDrain.String(), cycle)
	b.setMode(ModeDone)
	b.clk.Stop()

	b.logger.Printf(
		"%s: run complete after %d sampled cycles, %d inputs accepted, "+
			"%d violations, %d expectations outstanding",
		b.name, b.sampledCycles, b.inputsAccepted,
		b.scoreboard.Tally(), b.scoreboard.Pending())
}

func (b *Bench) applyDrive(d Drive) {
	b.bind.OutReady.SetBit(d.OutReady)
	b.bind.InValid.SetBit(d.InValid)

	if d.InValid {
		b.bind.InA.Set(d.A)
		b.bind.InB.Set(d.B)
	}
}
