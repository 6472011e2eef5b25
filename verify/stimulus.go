package verify

import (
	"math/rand"

	"github.com/sialab/ryval/signal"
)

// A Drive holds the values written onto the two channels for one cycle.
// Operands are only driven when InValid is set; otherwise the previously
// driven operands stay on the bus.
type Drive struct {
	OutReady bool
	InValid  bool
	A        uint64
	B        uint64
}

// A Stimulus decides, cycle by cycle, what the testbench drives during the
// drive phase. lastAccepted feeds back whether the previous cycle's producer
// handshake completed, which retry-until-accepted stimuli need.
type Stimulus interface {
	// Done reports that the stimulus has nothing left to drive.
	Done() bool

	// Next returns the drive for the upcoming cycle.
	Next(lastAccepted bool) Drive
}

// A Vector is one directed operand pair.
type Vector struct {
	A uint64
	B uint64
}

// DefaultVectors returns the directed edge cases for a two-operand device of
// the given width: zeros, one-sided zeros, ones, and maximum values to
// exercise wraparound.
func DefaultVectors(width uint) []Vector {
	max := signal.Mask(width)

	return []Vector{
		{0, 0},
		{1, 0},
		{0, 1},
		{1, 1},
		{max, 1},
		{max, max},
	}
}

// NewDirectedStimulus creates the directed phase: each vector is presented
// with valid asserted and ready forced until it is accepted, then valid is
// deasserted for one cycle before the next vector. After the last vector,
// flushCycles idle-but-ready cycles let in-flight results move.
func NewDirectedStimulus(vectors []Vector, width uint, flushCycles int) *DirectedStimulus {
	return &DirectedStimulus{
		vectors:   vectors,
		mask:      signal.Mask(width),
		flushLeft: flushCycles,
	}
}

// DirectedStimulus drives a fixed list of edge-case vectors.
type DirectedStimulus struct {
	vectors    []Vector
	mask       uint64
	idx        int
	presenting bool
	flushLeft  int
}

// Done reports that all vectors have been accepted and the flush has run
// out.
func (s *DirectedStimulus) Done() bool {
	return s.idx >= len(s.vectors) && s.flushLeft <= 0
}

// Next returns the next directed drive.
func (s *DirectedStimulus) Next(lastAccepted bool) Drive {
	if s.idx >= len(s.vectors) {
		s.flushLeft--
		return Drive{OutReady: true}
	}

	if s.presenting && lastAccepted {
		// The vector on the bus was taken; release valid for one cycle
		// before presenting the next one.
		s.presenting = false
		s.idx++
		return Drive{OutReady: true}
	}

	s.presenting = true
	v := s.vectors[s.idx]

	return Drive{
		OutReady: true,
		InValid:  true,
		A:        v.A & s.mask,
		B:        v.B & s.mask,
	}
}

// NewRandomStimulus creates the randomized phase: for each of cycles cycles,
// consumer-ready and producer-valid are independent Bernoulli draws with the
// given percent probabilities, and asserted operands are uniform width-bit
// values. The generator is carried explicitly so a run is reproducible from
// its seed.
func NewRandomStimulus(
	rng *rand.Rand,
	validPercent, readyPercent int,
	width uint,
	cycles int,
) *RandomStimulus {
	return &RandomStimulus{
		rng:          rng,
		validPercent: validPercent,
		readyPercent: readyPercent,
		mask:         signal.Mask(width),
		remaining:    cycles,
	}
}

// RandomStimulus drives randomized traffic with configurable injection
// probabilities, emulating backpressure and bursty producers.
type RandomStimulus struct {
	rng          *rand.Rand
	validPercent int
	readyPercent int
	mask         uint64
	remaining    int
}

// Done reports that the randomized cycle budget has run out.
func (s *RandomStimulus) Done() bool {
	return s.remaining <= 0
}

// Next returns the next randomized drive.
func (s *RandomStimulus) Next(bool) Drive {
	s.remaining--

	d := Drive{
		OutReady: s.percent(s.readyPercent),
	}

	if s.percent(s.validPercent) {
		d.InValid = true
		d.A = s.rng.Uint64() & s.mask
		d.B = s.rng.Uint64() & s.mask
	}

	return d
}

func (s *RandomStimulus) percent(pct int) bool {
	return s.rng.Intn(100) < pct
}

// DrainStimulus drives the drain phase: producer off, consumer ready, until
// the drain controller terminates the run.
type DrainStimulus struct{}

// Done always reports false; the drain controller owns termination.
func (DrainStimulus) Done() bool {
	return false
}

// Next returns the constant drain drive.
func (DrainStimulus) Next(bool) Drive {
	return Drive{OutReady: true}
}
