package verify

import "fmt"

// ViolationKind classifies the ways a device can diverge from its predicted
// behavior.
type ViolationKind int

const (
	// Mismatch: an output transfer carried a value that differs from the
	// oldest outstanding expectation.
	Mismatch ViolationKind = iota

	// SpuriousOutput: an output transfer completed while no expectation was
	// outstanding.
	SpuriousOutput

	// ResidualExpectations: expectations were still outstanding when the
	// drain budget ran out and the device had stopped offering output.
	ResidualExpectations

	// Starvation: the drain budget ran out while expectations were still
	// outstanding and the device was still asserting output-valid.
	Starvation
)

// String returns the name of the violation kind.
func (k ViolationKind) String() string {
	switch k {
	case Mismatch:
		return "mismatch"
	case SpuriousOutput:
		return "spurious output"
	case ResidualExpectations:
		return "residual expectations"
	case Starvation:
		return "starvation"
	default:
		return "unknown"
	}
}

// A Violation is one recorded divergence between the device and the
// reference model.
type Violation struct {
	Kind  ViolationKind
	Phase string
	Cycle uint64

	// Got and Want are only meaningful for mismatches.
	Got  uint64
	Want uint64

	// Residual is the number of outstanding expectations, for residual and
	// starvation violations.
	Residual int
}

// String formats the violation the way it appears in the run log.
func (v Violation) String() string {
	switch v.Kind {
	case Mismatch:
		return fmt.Sprintf("[%s] cycle %d: output mismatch, got=%d want=%d",
			v.Phase, v.Cycle, v.Got, v.Want)
	case SpuriousOutput:
		return fmt.Sprintf("[%s] cycle %d: unexpected output, no expectation outstanding",
			v.Phase, v.Cycle)
	case ResidualExpectations:
		return fmt.Sprintf("[%s] cycle %d: %d expectations left after drain",
			v.Phase, v.Cycle, v.Residual)
	case Starvation:
		return fmt.Sprintf("[%s] cycle %d: drain budget exhausted with %d expectations outstanding and output still asserted",
			v.Phase, v.Cycle, v.Residual)
	default:
		return fmt.Sprintf("[%s] cycle %d: unknown violation", v.Phase, v.Cycle)
	}
}

// A ViolationSink receives every violation as it is recorded, in addition to
// the run log. Sinks are used to persist diagnostics, not to control the
// run.
type ViolationSink interface {
	RecordViolation(v Violation)
}
