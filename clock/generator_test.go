package clock_test

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sialab/ryval/clock"
	"github.com/sialab/ryval/sim"
)

// phaseRecorder notes every phase it sees and stops the clock after a given
// number of cycles.
type phaseRecorder struct {
	generator  *clock.Generator
	stopAfter  uint64
	phases     []string
	sampleTime []sim.VTime
	timeTeller sim.TimeTeller
}

func (r *phaseRecorder) OnRisingEdge(cycle uint64) {
	r.phases = append(r.phases, fmt.Sprintf("rising %d", cycle))

	if cycle == r.stopAfter {
		r.generator.Stop()
	}
}

func (r *phaseRecorder) OnFallingEdge(cycle uint64) {
	r.phases = append(r.phases, fmt.Sprintf("falling %d", cycle))
}

func (r *phaseRecorder) OnSettle(cycle uint64) {
	r.phases = append(r.phases, fmt.Sprintf("settle %d", cycle))
	r.sampleTime = append(r.sampleTime, r.timeTeller.CurrentTime())
}

var _ = Describe("Generator", func() {
	var (
		engine   *sim.SerialEngine
		gen      *clock.Generator
		recorder *phaseRecorder
	)

	BeforeEach(func() {
		engine = sim.NewSerialEngine()
		gen = clock.NewGenerator("Clk", engine, 1*sim.GHz)
		recorder = &phaseRecorder{
			generator:  gen,
			stopAfter:  2,
			timeTeller: engine,
		}
		gen.Subscribe(recorder)
	})

	It("should deliver rising, falling, settle in order, once per cycle", func() {
		gen.Start()

		err := engine.Run()

		Expect(err).ToNot(HaveOccurred())
		Expect(recorder.phases).To(Equal([]string{
			"rising 0", "falling 0", "settle 0",
			"rising 1", "falling 1", "settle 1",
			"rising 2",
		}))
	})

	It("should place the settle point between the falling and the next rising edge", func() {
		gen.Start()

		err := engine.Run()

		Expect(err).ToNot(HaveOccurred())
		Expect(recorder.sampleTime[0]).To(BeNumerically("~", 0.75e-9, 1e-15))
		Expect(recorder.sampleTime[1]).To(BeNumerically("~", 1.75e-9, 1e-15))
	})

	It("should dispatch listeners in subscription order", func() {
		order := make([]string, 0)
		gen.Subscribe(&orderProbe{name: "device", order: &order})
		gen.Subscribe(&orderProbe{name: "bench", order: &order})

		gen.Start()

		err := engine.Run()

		Expect(err).ToNot(HaveOccurred())
		Expect(order[0]).To(Equal("device"))
		Expect(order[1]).To(Equal("bench"))
	})

	It("should refuse to subscribe after starting", func() {
		gen.Start()

		Expect(func() { gen.Subscribe(recorder) }).To(Panic())
	})

	It("should refuse to start twice", func() {
		gen.Start()

		Expect(func() { gen.Start() }).To(Panic())
	})
})

type orderProbe struct {
	name  string
	order *[]string
}

func (p *orderProbe) OnRisingEdge(cycle uint64)  { *p.order = append(*p.order, p.name) }
func (p *orderProbe) OnFallingEdge(cycle uint64) {}
func (p *orderProbe) OnSettle(cycle uint64)      {}
