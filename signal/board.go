package signal

import (
	"fmt"
	"os"
)

// A Board is a registry of the named signals that connect a device under
// verification with its testbench.
type Board struct {
	name    string
	signals map[string]*Signal
	order   []string
	frozen  bool
}

// NewBoard creates an empty signal board.
func NewBoard(name string) *Board {
	return &Board{
		name:    name,
		signals: make(map[string]*Signal),
	}
}

// Name returns the name of the board.
func (b *Board) Name() string {
	return b.name
}

// Define adds a signal with the given name and width to the board. Defining
// the same name twice panics.
func (b *Board) Define(name string, width uint) *Signal {
	if _, ok := b.signals[name]; ok {
		panic("signal " + name + " is already defined on board " + b.name)
	}

	s := &Signal{
		name:  name,
		width: width,
		mask:  Mask(width),
		board: b,
	}

	b.signals[name] = s
	b.order = append(b.order, name)

	return s
}

// Get returns the signal with the given name.
func (b *Board) Get(name string) *Signal {
	s, found := b.signals[name]
	if !found {
		errMsg := fmt.Sprintf(
			"Signal %s is not defined on board %s.\n", name, b.name)
		errMsg += "Defined signals include:\n"
		for _, n := range b.order {
			errMsg += fmt.Sprintf("\t%s\n", n)
		}
		fmt.Fprint(os.Stderr, errMsg)

		panic("signal not found")
	}

	return s
}

// Signals returns all the signals on the board, in definition order.
func (b *Board) Signals() []*Signal {
	list := make([]*Signal, 0, len(b.order))
	for _, n := range b.order {
		list = append(list, b.signals[n])
	}

	return list
}

// Freeze makes the board read-only. Signal writes panic until Thaw is
// called. The sampler freezes the board for the settle window of each cycle.
func (b *Board) Freeze() {
	b.frozen = true
}

// Thaw makes the board writable again.
func (b *Board) Thaw() {
	b.frozen = false
}

// Frozen reports whether the board is currently read-only.
func (b *Board) Frozen() bool {
	return b.frozen
}
