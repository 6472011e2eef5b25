package sim

import (
	"log"
	"math"
)

// Freq defines a clock frequency.
type Freq float64

// Units of frequency.
const (
	Hz  Freq = 1
	KHz Freq = 1e3
	MHz Freq = 1e6
	GHz Freq = 1e9
)

// Period returns the time between two consecutive ticks.
func (f Freq) Period() VTime {
	if f == 0 {
		log.Panic("frequency cannot be 0")
	}
	return VTime(1.0 / f)
}

// Cycle converts a time to the number of cycles passed since time 0.
func (f Freq) Cycle(t VTime) uint64 {
	return uint64(math.Round(float64(t) * float64(f)))
}

// ThisTick returns the tick time at or immediately after t.
func (f Freq) ThisTick(t VTime) VTime {
	mustBeNumber(t)
	count := math.Ceil(math.Round(float64(t)*10*float64(f)) / 10)
	return VTime(count / float64(f))
}

// NextTick returns the tick time strictly after t.
func (f Freq) NextTick(t VTime) VTime {
	mustBeNumber(t)
	count := math.Floor(math.Round(float64(t)*10*float64(f)) / 10)
	return VTime((count + 1) / float64(f))
}

// NCyclesLater returns the tick time n full cycles after t.
func (f Freq) NCyclesLater(n int, t VTime) VTime {
	mustBeNumber(t)
	return f.ThisTick(t + VTime(Freq(n)/f))
}

// HalfTick returns the time in the middle of the cycle that ends at
// ThisTick(t).
func (f Freq) HalfTick(t VTime) VTime {
	return f.ThisTick(t) + f.Period()/2
}

func mustBeNumber(t VTime) {
	if math.IsNaN(float64(t)) {
		log.Panic("invalid time")
	}
}
