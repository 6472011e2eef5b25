// Package duv defines the boundary between the verification engine and a
// device under verification. A device is a cycle-accurate model driven
// through named signals on a board: it recomputes its combinational outputs
// at the settle phase and applies state updates at the rising edge.
package duv

import (
	"github.com/sialab/ryval/clock"
	"github.com/sialab/ryval/signal"
)

// A Device is a model of the design under verification.
type Device interface {
	// Name returns the name of the device.
	Name() string

	// Settle recomputes the combinational outputs from the current inputs
	// and internal state. It is called once per cycle, after the testbench
	// has driven the inputs and before the testbench samples.
	Settle()

	// ClockEdge applies one rising clock edge: the device latches new state
	// from the settled input values. A deasserted rst_n clears all internal
	// state instead.
	ClockEdge()
}

// Attach subscribes a device to a clock generator. The device must be
// attached before the testbench subscribes so that its outputs are settled
// by the time the testbench samples.
func Attach(g *clock.Generator, d Device) {
	g.Subscribe(phaseAdapter{d})
}

type phaseAdapter struct {
	dev Device
}

func (a phaseAdapter) OnRisingEdge(uint64)  { a.dev.ClockEdge() }
func (a phaseAdapter) OnFallingEdge(uint64) {}
func (a phaseAdapter) OnSettle(uint64)      { a.dev.Settle() }

// A Binding names the handshake signals of a two-channel device on a board.
// The producer channel carries two operands into the device; the consumer
// channel drains one result.
type Binding struct {
	Board *signal.Board

	RstN *signal.Signal

	InValid *signal.Signal
	InReady *signal.Signal
	InA     *signal.Signal
	InB     *signal.Signal

	OutValid *signal.Signal
	OutReady *signal.Signal
	OutData  *signal.Signal
}

// Bind defines the standard two-channel signal set with the given data
// width on a board and returns the binding.
func Bind(b *signal.Board, width uint) Binding {
	return Binding{
		Board:    b,
		RstN:     b.Define("rst_n", 1),
		InValid:  b.Define("in_valid", 1),
		InReady:  b.Define("in_ready", 1),
		InA:      b.Define("in_a", width),
		InB:      b.Define("in_b", width),
		OutValid: b.Define("out_valid", 1),
		OutReady: b.Define("out_ready", 1),
		OutData:  b.Define("out_data", width),
	}
}

// Width returns the data width of the binding.
func (b Binding) Width() uint {
	return b.InA.Width()
}
