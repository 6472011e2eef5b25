// Package signal provides named, fixed-width signal values that a device
// under verification and a testbench share. Reads are always masked to the
// signal width. A board can be frozen during the settle window of a clock
// cycle, which turns any write into a panic, keeping the observe and drive
// phases of a cycle strictly separated.
package signal

import "fmt"

// Mask returns the bit mask for a width between 1 and 64.
func Mask(width uint) uint64 {
	if width == 0 || width > 64 {
		panic(fmt.Sprintf("signal width %d is out of range", width))
	}

	if width == 64 {
		return ^uint64(0)
	}

	return (uint64(1) << width) - 1
}

// A Signal is a named unsigned value of a fixed bit width.
type Signal struct {
	name  string
	width uint
	mask  uint64
	value uint64
	board *Board
}

// Name returns the name of the signal.
func (s *Signal) Name() string {
	return s.name
}

// Width returns the declared bit width of the signal.
func (s *Signal) Width() uint {
	return s.width
}

// Get returns the current value, masked to the signal width.
func (s *Signal) Get() uint64 {
	return s.value & s.mask
}

// Set drives a new value onto the signal, truncating it to the signal width.
// Set panics if the owning board is frozen.
func (s *Signal) Set(v uint64) {
	if s.board.frozen {
		panic("cannot drive signal " + s.name + " while the board is frozen")
	}

	s.value = v & s.mask
}

// Bit reports a 1-bit signal as a boolean. It is also usable on wider
// signals, where it reports whether the value is non-zero.
func (s *Signal) Bit() bool {
	return s.Get() != 0
}

// SetBit drives a boolean onto the signal.
func (s *Signal) SetBit(b bool) {
	if b {
		s.Set(1)
	} else {
		s.Set(0)
	}
}
