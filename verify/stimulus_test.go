package verify

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("DirectedStimulus", func() {
	It("should present each vector until accepted, with a gap between", func() {
		s := NewDirectedStimulus([]Vector{{1, 2}, {3, 4}}, 8, 0)

		d := s.Next(false)
		Expect(d.InValid).To(BeTrue())
		Expect(d.A).To(Equal(uint64(1)))
		Expect(d.B).To(Equal(uint64(2)))

		// Not accepted yet, the same vector stays on the bus.
		d = s.Next(false)
		Expect(d.InValid).To(BeTrue())
		Expect(d.A).To(Equal(uint64(1)))

		// Accepted, one idle cycle before the next vector.
		d = s.Next(true)
		Expect(d.InValid).To(BeFalse())
		Expect(d.OutReady).To(BeTrue())

		d = s.Next(false)
		Expect(d.InValid).To(BeTrue())
		Expect(d.A).To(Equal(uint64(3)))
		Expect(d.B).To(Equal(uint64(4)))

		Expect(s.Done()).To(BeFalse())

		d = s.Next(true)
		Expect(d.InValid).To(BeFalse())
		Expect(s.Done()).To(BeTrue())
	})

	It("should flush with idle-but-ready cycles after the last vector", func() {
		s := NewDirectedStimulus([]Vector{{1, 1}}, 8, 2)

		s.Next(false)
		s.Next(true)
		Expect(s.Done()).To(BeFalse())

		d := s.Next(false)
		Expect(d.InValid).To(BeFalse())
		Expect(d.OutReady).To(BeTrue())
		Expect(s.Done()).To(BeFalse())

		s.Next(false)
		Expect(s.Done()).To(BeTrue())
	})

	It("should truncate vectors to the signal width", func() {
		s := NewDirectedStimulus([]Vector{{0x1ff, 0}, {0, 0}}, 8, 0)

		d := s.Next(false)
		Expect(d.A).To(Equal(uint64(0xff)))
	})

	It("should be done immediately with no vectors and no flush", func() {
		s := NewDirectedStimulus(nil, 8, 0)

		Expect(s.Done()).To(BeTrue())
	})

	It("should produce the default edge-case vectors", func() {
		vectors := DefaultVectors(8)

		Expect(vectors).To(ContainElement(Vector{0, 0}))
		Expect(vectors).To(ContainElement(Vector{255, 1}))
		Expect(vectors).To(ContainElement(Vector{255, 255}))
	})
})

var _ = Describe("RandomStimulus", func() {
	It("should be reproducible from its seed", func() {
		s1 := NewRandomStimulus(rand.New(rand.NewSource(42)), 70, 60, 8, 100)
		s2 := NewRandomStimulus(rand.New(rand.NewSource(42)), 70, 60, 8, 100)

		for i := 0; i < 100; i++ {
			Expect(s1.Next(false)).To(Equal(s2.Next(false)))
		}

		Expect(s1.Done()).To(BeTrue())
		Expect(s2.Done()).To(BeTrue())
	})

	It("should respect degenerate probabilities", func() {
		s := NewRandomStimulus(rand.New(rand.NewSource(1)), 100, 0, 8, 50)

		for !s.Done() {
			d := s.Next(false)
			Expect(d.InValid).To(BeTrue())
			Expect(d.OutReady).To(BeFalse())
		}
	})

	It("should keep operands within the signal width", func() {
		s := NewRandomStimulus(rand.New(rand.NewSource(7)), 100, 50, 4, 50)

		for !s.Done() {
			d := s.Next(false)
			Expect(d.A).To(BeNumerically("<=", 15))
			Expect(d.B).To(BeNumerically("<=", 15))
		}
	})

	It("should skip the phase with a zero cycle budget", func() {
		s := NewRandomStimulus(rand.New(rand.NewSource(1)), 70, 60, 8, 0)

		Expect(s.Done()).To(BeTrue())
	})
})

var _ = Describe("DrainStimulus", func() {
	It("should hold the producer off and the consumer ready", func() {
		var s DrainStimulus

		Expect(s.Done()).To(BeFalse())
		Expect(s.Next(false)).To(Equal(Drive{OutReady: true}))
		Expect(s.Next(true)).To(Equal(Drive{OutReady: true}))
	})
})

var _ = Describe("DrainController", func() {
	It("should finish early when the device is drained and quiet", func() {
		c := NewDrainController(256)

		Expect(c.CycleDone(2, true)).To(BeFalse())
		Expect(c.CycleDone(1, true)).To(BeFalse())
		Expect(c.CycleDone(0, false)).To(BeTrue())
		Expect(c.Exhausted()).To(BeFalse())
		Expect(c.CyclesUsed()).To(Equal(3))
	})

	It("should keep draining while the output is still asserted", func() {
		c := NewDrainController(256)

		Expect(c.CycleDone(0, true)).To(BeFalse())
		Expect(c.CycleDone(0, false)).To(BeTrue())
	})

	It("should give up when the budget runs out", func() {
		c := NewDrainController(3)

		Expect(c.CycleDone(1, false)).To(BeFalse())
		Expect(c.CycleDone(1, false)).To(BeFalse())
		Expect(c.CycleDone(1, false)).To(BeTrue())
		Expect(c.Exhausted()).To(BeTrue())
	})
})
