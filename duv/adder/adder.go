// Package adder provides a reference device under verification: a pipelined
// adder behind a two-channel ready/valid interface. Operands accepted on the
// producer channel travel through a fixed number of elastic pipeline stages
// and leave, strictly in order, on the consumer channel.
package adder

import (
	"github.com/sialab/ryval/duv"
)

// An Adder is a cycle-accurate model of a depth-N pipelined modular adder.
// The last stage registers the consumer-channel outputs; in_ready is
// combinational and cascades from out_ready through the pipeline occupancy.
type Adder struct {
	name string
	bind duv.Binding
	mask uint64

	stages []stage
}

type stage struct {
	valid bool
	sum   uint64
}

// Name returns the name of the adder.
func (a *Adder) Name() string {
	return a.name
}

// Binding returns the signal binding of the adder.
func (a *Adder) Binding() duv.Binding {
	return a.bind
}

// Depth returns the number of pipeline stages.
func (a *Adder) Depth() int {
	return len(a.stages)
}

// Occupancy returns the number of operations currently in flight.
func (a *Adder) Occupancy() int {
	n := 0
	for _, st := range a.stages {
		if st.valid {
			n++
		}
	}

	return n
}

// Settle recomputes the combinational outputs. in_ready cascades backwards
// from the output: a stage can accept when it is empty or when its successor
// can accept, with the last stage draining on out_ready.
func (a *Adder) Settle() {
	last := a.stages[len(a.stages)-1]

	a.bind.OutValid.SetBit(last.valid)
	a.bind.OutData.Set(last.sum)
	a.bind.InReady.SetBit(a.bind.RstN.Bit() && a.frontFree())
}

// ClockEdge applies one rising clock edge. With rst_n deasserted the
// pipeline clears. Otherwise the output drains if the consumer took it,
// every stage advances into a free successor, and a new operand pair enters
// the first stage if the producer handshake completed.
func (a *Adder) ClockEdge() {
	if !a.bind.RstN.Bit() {
		for i := range a.stages {
			a.stages[i] = stage{}
		}

		return
	}

	accepted := a.bind.InValid.Bit() && a.bind.InReady.Bit()

	lastIdx := len(a.stages) - 1
	if a.stages[lastIdx].valid && a.bind.OutReady.Bit() {
		a.stages[lastIdx].valid = false
	}

	for i := lastIdx - 1; i >= 0; i-- {
		if a.stages[i].valid && !a.stages[i+1].valid {
			a.stages[i+1] = a.stages[i]
			a.stages[i].valid = false
		}
	}

	if accepted {
		a.stages[0] = stage{
			valid: true,
			sum:   (a.bind.InA.Get() + a.bind.InB.Get()) & a.mask,
		}
	}
}

func (a *Adder) frontFree() bool {
	free := !a.stages[len(a.stages)-1].valid || a.bind.OutReady.Bit()
	for i := len(a.stages) - 2; i >= 0; i-- {
		free = !a.stages[i].valid || free
	}

	return free
}
