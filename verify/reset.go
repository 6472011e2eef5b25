package verify

import "github.com/sialab/ryval/duv"

// A ResetSequencer drives the device into a known state with a synchronous,
// active-low reset: neutral inputs, assert on a falling-phase boundary, hold
// for a whole number of cycles, deassert on a falling-phase boundary, then
// consume one rising edge before yielding. It cannot fail; a device that
// does not clear under reset is caught by the sampler afterwards.
type ResetSequencer struct {
	bind duv.Binding
	hold int

	state      resetState
	cyclesLeft int
}

type resetState int

const (
	resetPending resetState = iota
	resetAsserted
	resetDeasserted
	resetDone
)

// NewResetSequencer creates a sequencer that holds reset for hold full
// cycles.
func NewResetSequencer(bind duv.Binding, hold int) *ResetSequencer {
	return &ResetSequencer{
		bind: bind,
		hold: hold,
	}
}

// Start drives all testbench-owned signals to their neutral values. It must
// be called before the clock starts.
func (r *ResetSequencer) Start() {
	r.bind.RstN.SetBit(true)
	r.bind.InValid.SetBit(false)
	r.bind.InA.Set(0)
	r.bind.InB.Set(0)
	r.bind.OutReady.SetBit(false)

	r.state = resetPending
	r.cyclesLeft = r.hold
}

// OnFallingEdge advances the sequence on a drive phase.
func (r *ResetSequencer) OnFallingEdge() {
	switch r.state {
	case resetPending:
		r.bind.RstN.SetBit(false)
		r.state = resetAsserted
	case resetAsserted:
		if r.cyclesLeft == 0 {
			r.bind.RstN.SetBit(true)
			r.state = resetDeasserted
		}
	}
}

// OnRisingEdge counts down the hold and completes the sequence one rising
// edge after deassertion.
func (r *ResetSequencer) OnRisingEdge() {
	switch r.state {
	case resetAsserted:
		if r.cyclesLeft > 0 {
			r.cyclesLeft--
		}
	case resetDeasserted:
		r.state = resetDone
	}
}

// Done reports that the device is out of reset and ready for stimulus.
func (r *ResetSequencer) Done() bool {
	return r.state == resetDone
}
