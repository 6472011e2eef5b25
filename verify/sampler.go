package verify

import (
	"github.com/sialab/ryval/duv"
	"github.com/sialab/ryval/signal"
)

// A Sampler performs the per-cycle observation step of a verification run.
// It is called once per cycle, at the settle point between the drive phase
// and the upcoming rising edge, and decides which handshakes will complete
// on that edge.
type Sampler struct {
	bind  duv.Binding
	mask  uint64
	model RefModel
}

// NewSampler creates a sampler over the given binding. The model predicts
// the output for every accepted operand pair.
func NewSampler(bind duv.Binding, model RefModel) *Sampler {
	return &Sampler{
		bind:  bind,
		mask:  signal.Mask(bind.Width()),
		model: model,
	}
}

// A StepResult reports what one sampling step observed.
type StepResult struct {
	// InAccepted reports whether the producer handshake completes on the
	// upcoming edge.
	InAccepted bool

	// Errors is the number of violations the step recorded.
	Errors int

	// OutValid is the snapshotted consumer-valid, used by the drain
	// controller to tell a quiet device from a starving one.
	OutValid bool
}

// Step snapshots the settled signals and scores the handshakes that the
// snapshot predicts for the upcoming edge. The board is frozen for the
// duration of the snapshot so that no collaborator can drive a signal
// mid-sample.
//
// The consumer side is evaluated strictly before the producer side: an
// output that completes on the same edge an input is accepted scores
// against an older expectation, never against the one pushed in this step.
func (s *Sampler) Step(sb *Scoreboard, phase string, cycle uint64) StepResult {
	board := s.bind.Board
	board.Freeze()

	inValid := s.bind.InValid.Bit()
	inReady := s.bind.InReady.Bit()
	outValid := s.bind.OutValid.Bit()
	outReady := s.bind.OutReady.Bit()
	outData := s.bind.OutData.Get() & s.mask
	a := s.bind.InA.Get() & s.mask
	b := s.bind.InB.Get() & s.mask

	board.Thaw()

	res := StepResult{OutValid: outValid}

	if outValid && outReady {
		res.Errors += sb.CheckOutput(outData, phase, cycle)
	}

	if inValid && inReady {
		sb.Expect(s.model(a, b) & s.mask)
		res.InAccepted = true
	}

	return res
}
