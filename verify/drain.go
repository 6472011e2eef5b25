package verify

// A DrainController decides when the end-of-run drain phase is finished:
// either the scoreboard empties and the device deasserts output-valid, or a
// fixed cycle budget runs out. Exceeding the budget is a reportable
// condition, scored through Scoreboard.ReportResidual.
type DrainController struct {
	budget int
	used   int
}

// NewDrainController creates a controller with the given cycle budget.
func NewDrainController(budget int) *DrainController {
	return &DrainController{budget: budget}
}

// CycleDone accounts for one completed drain cycle and reports whether the
// drain phase is over. pending is the number of outstanding expectations and
// outValid the output-valid level observed at the cycle's sample point.
func (d *DrainController) CycleDone(pending int, outValid bool) bool {
	d.used++

	if pending == 0 && !outValid {
		return true
	}

	return d.used >= d.budget
}

// Exhausted reports whether the controller stopped because the budget ran
// out rather than because the device drained.
func (d *DrainController) Exhausted() bool {
	return d.used >= d.budget
}

// CyclesUsed returns the number of drain cycles consumed.
func (d *DrainController) CyclesUsed() int {
	return d.used
}
