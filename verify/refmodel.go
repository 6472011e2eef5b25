package verify

import "github.com/sialab/ryval/signal"

// A RefModel predicts the result a correct device produces for one accepted
// operand pair. It must be pure: no hidden state, identical inputs yield
// identical outputs. The sampler always calls it with the operand values
// snapshotted in the same settle window that observed the producer
// handshake.
type RefModel func(a, b uint64) uint64

// AddModel returns the reference model of a modular adder: the sum of the
// operands, truncated to the given width.
func AddModel(width uint) RefModel {
	mask := signal.Mask(width)

	return func(a, b uint64) uint64 {
		return (a + b) & mask
	}
}
