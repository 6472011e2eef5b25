package adder

import (
	"github.com/sialab/ryval/duv"
	"github.com/sialab/ryval/signal"
	"github.com/sialab/ryval/sim"
)

// A Builder can build pipelined adders.
type Builder struct {
	width uint
	depth int
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		width: 32,
		depth: 2,
	}
}

// WithWidth sets the operand and result width in bits.
func (b Builder) WithWidth(w uint) Builder {
	b.width = w
	return b
}

// WithDepth sets the number of pipeline stages.
func (b Builder) WithDepth(n int) Builder {
	b.depth = n
	return b
}

// Build creates the adder and binds its signals on the given board.
func (b Builder) Build(name string, board *signal.Board) *Adder {
	sim.NameMustBeValid(name)

	if b.depth < 1 {
		panic("adder depth must be at least 1")
	}

	return &Adder{
		name:   name,
		bind:   duv.Bind(board, b.width),
		mask:   signal.Mask(b.width),
		stages: make([]stage, b.depth),
	}
}
