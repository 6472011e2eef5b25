package session

import (
	"io"
	"log"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sialab/ryval/duv/adder"
	"github.com/sialab/ryval/verify"
)

var _ = Describe("Session", func() {
	var s *Session

	BeforeEach(func() {
		s = MakeBuilder().WithoutMonitoring().Build()
	})

	AfterEach(func() {
		s.Terminate()

		os.Remove("ryval_run_" + s.ID() + ".sqlite3")
	})

	buildBench := func(name string) *verify.Bench {
		dev := adder.MakeBuilder().
			WithWidth(8).
			Build(name+"Adder", s.Board())

		return verify.MakeBuilder().
			WithEngine(s.Engine()).
			WithDevice(dev, dev.Binding()).
			WithLogger(log.New(io.Discard, "", 0)).
			WithSink(s.Trace()).
			Build(name)
	}

	It("should provide an engine and a board", func() {
		Expect(s.Engine()).NotTo(BeNil())
		Expect(s.Board()).NotTo(BeNil())
	})

	It("should register a bench", func() {
		bench := buildBench("Bench")

		s.RegisterBench(bench)

		Expect(s.BenchByName("Bench")).To(Equal(bench))
		Expect(s.Benches()).To(HaveLen(1))
	})

	It("should panic on duplicated bench names", func() {
		bench := buildBench("Bench")
		s.RegisterBench(bench)

		Expect(func() { s.RegisterBench(bench) }).To(Panic())
	})

	It("should record run summaries through the trace", func() {
		bench := buildBench("Bench")
		s.RegisterBench(bench)

		Expect(bench.Run()).To(Succeed())
		Expect(func() { s.RecordResults() }).NotTo(Panic())
	})

	Context("builder with custom output file", func() {
		var customSession *Session

		AfterEach(func() {
			if customSession != nil {
				customSession.Terminate()
				os.Remove("test_custom_output.sqlite3")
				customSession = nil
			}
		})

		It("should allow a custom output file to be set", func() {
			customSession = MakeBuilder().
				WithoutMonitoring().
				WithOutputFileName("test_custom_output").
				Build()

			Expect(customSession).NotTo(BeNil())
			Expect(customSession.DataRecorder()).NotTo(BeNil())
			Expect(customSession.Trace()).NotTo(BeNil())
		})
	})

	Context("builder without recording", func() {
		It("should leave the recorder and trace nil", func() {
			plain := MakeBuilder().
				WithoutMonitoring().
				WithoutRecording().
				Build()
			defer plain.Terminate()

			Expect(plain.DataRecorder()).To(BeNil())
			Expect(plain.Trace()).To(BeNil())
			Expect(func() { plain.RecordResults() }).NotTo(Panic())
		})
	})

	Context("builder parameter validation", func() {
		It("should reject a monitor port without monitoring", func() {
			Expect(func() {
				MakeBuilder().
					WithoutMonitoring().
					WithMonitorPort(8080).
					Build()
			}).To(Panic())
		})

		It("should reject an output file without recording", func() {
			Expect(func() {
				MakeBuilder().
					WithoutMonitoring().
					WithoutRecording().
					WithOutputFileName("x").
					Build()
			}).To(Panic())
		})
	})
})
