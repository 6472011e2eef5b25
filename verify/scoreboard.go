package verify

import "log"

// A Scoreboard holds the ordered queue of expected output values and the
// violation tally of one verification run. Expectations are enqueued in the
// order input transfers are observed and dequeued in the order output
// transfers are observed; the run passes only if the tally is zero and the
// queue is empty at the end.
type Scoreboard struct {
	name string

	expected   []uint64
	tally      int
	violations []Violation

	logger *log.Logger
	sink   ViolationSink
}

// NewScoreboard creates a scoreboard that reports violations through the
// given logger and, if sink is non-nil, mirrors them into the sink.
func NewScoreboard(name string, logger *log.Logger, sink ViolationSink) *Scoreboard {
	return &Scoreboard{
		name:   name,
		logger: logger,
		sink:   sink,
	}
}

// Name returns the name of the scoreboard.
func (s *Scoreboard) Name() string {
	return s.name
}

// Expect enqueues the predicted value for one accepted input transfer.
func (s *Scoreboard) Expect(v uint64) {
	s.expected = append(s.expected, v)
}

// Pending returns the number of outstanding expectations.
func (s *Scoreboard) Pending() int {
	return len(s.expected)
}

// Drained reports whether no expectation is outstanding.
func (s *Scoreboard) Drained() bool {
	return len(s.expected) == 0
}

// CheckOutput scores one observed output transfer against the oldest
// outstanding expectation and returns the number of violations added. An
// empty queue records a spurious-output violation; a value difference
// records a mismatch.
func (s *Scoreboard) CheckOutput(got uint64, phase string, cycle uint64) int {
	if len(s.expected) == 0 {
		s.record(Violation{
			Kind:  SpuriousOutput,
			Phase: phase,
			Cycle: cycle,
		})

		return 1
	}

	want := s.expected[0]
	s.expected = s.expected[1:]

	if got != want {
		s.record(Violation{
			Kind:  Mismatch,
			Phase: phase,
			Cycle: cycle,
			Got:   got,
			Want:  want,
		})

		return 1
	}

	return 0
}

// ReportResidual records the end-of-run violation for expectations that
// never produced an output. outStuck distinguishes a device that was still
// asserting output-valid when the budget ran out (starvation) from one that
// had gone quiet (residual expectations).
func (s *Scoreboard) ReportResidual(outStuck bool, phase string, cycle uint64) {
	if len(s.expected) == 0 {
		return
	}

	kind := ResidualExpectations
	if outStuck {
		kind = Starvation
	}

	s.record(Violation{
		Kind:     kind,
		Phase:    phase,
		Cycle:    cycle,
		Residual: len(s.expected),
	})
}

// Tally returns the total number of violations recorded so far.
func (s *Scoreboard) Tally() int {
	return s.tally
}

// Violations returns all the violations recorded so far.
func (s *Scoreboard) Violations() []Violation {
	return s.violations
}

func (s *Scoreboard) record(v Violation) {
	s.tally++
	s.violations = append(s.violations, v)
	s.logger.Printf("%s: %s", s.name, v)

	if s.sink != nil {
		s.sink.RecordViolation(v)
	}
}
