package recording

import "github.com/sialab/ryval/verify"

// ViolationTableName is the table that holds one row per violation.
const ViolationTableName = "violations"

// RunTableName is the table that holds one summary row per finished run.
const RunTableName = "runs"

// A ViolationEntry is the recorded form of one violation.
type ViolationEntry struct {
	Kind     string
	Phase    string
	Cycle    uint64
	Got      uint64
	Want     uint64
	Residual int
}

// A RunEntry is the recorded summary of one finished run.
type RunEntry struct {
	Name           string
	Passed         bool
	Tally          int
	Pending        int
	InputsAccepted uint64
}

// A ViolationTrace records every violation of a run into a DataRecorder.
// It implements verify.ViolationSink.
type ViolationTrace struct {
	recorder DataRecorder
}

// NewViolationTrace creates a trace that writes into the given recorder and
// creates the tables it needs.
func NewViolationTrace(recorder DataRecorder) *ViolationTrace {
	recorder.CreateTable(ViolationTableName, ViolationEntry{})
	recorder.CreateTable(RunTableName, RunEntry{})

	return &ViolationTrace{recorder: recorder}
}

// RecordViolation buffers one violation row.
func (t *ViolationTrace) RecordViolation(v verify.Violation) {
	t.recorder.InsertData(ViolationTableName, ViolationEntry{
		Kind:     v.Kind.String(),
		Phase:    v.Phase,
		Cycle:    v.Cycle,
		Got:      v.Got,
		Want:     v.Want,
		Residual: v.Residual,
	})
}

// RecordRun buffers the summary row of a finished run and flushes the
// recorder.
func (t *ViolationTrace) RecordRun(name string, res verify.Result) {
	t.recorder.InsertData(RunTableName, RunEntry{
		Name:           name,
		Passed:         res.Passed,
		Tally:          res.Tally,
		Pending:        res.Pending,
		InputsAccepted: res.InputsAccepted,
	})

	t.recorder.Flush()
}
