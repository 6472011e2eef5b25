package monitoring

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sialab/ryval/duv/adder"
	"github.com/sialab/ryval/signal"
	"github.com/sialab/ryval/sim"
	"github.com/sialab/ryval/verify"
)

var _ = Describe("Monitor", func() {
	var (
		m      *Monitor
		engine *sim.SerialEngine
		board  *signal.Board
		bench  *verify.Bench
	)

	BeforeEach(func() {
		engine = sim.NewSerialEngine()
		board = signal.NewBoard("Board")

		dev := adder.MakeBuilder().WithWidth(8).Build("Adder", board)
		bench = verify.MakeBuilder().
			WithEngine(engine).
			WithDevice(dev, dev.Binding()).
			WithLogger(log.New(io.Discard, "", 0)).
			Build("Bench")

		m = NewMonitor()
		m.RegisterEngine(engine)
		m.RegisterBench(bench)
		m.RegisterBoard(board)
	})

	It("should register benches and the board", func() {
		Expect(m.benches).To(HaveLen(1))
		Expect(m.board).To(Equal(board))
	})

	It("should serve the current time", func() {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/now", nil)

		m.now(w, r)

		var rsp struct {
			Now float64 `json:"now"`
		}
		Expect(json.Unmarshal(w.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp.Now).To(Equal(0.0))
	})

	It("should serve the progress of registered benches", func() {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/progress", nil)

		m.listProgress(w, r)

		var rsp []progressRsp
		Expect(json.Unmarshal(w.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp).To(HaveLen(1))
		Expect(rsp[0].Name).To(Equal("Bench"))
		Expect(rsp[0].Status.Mode).To(Equal("reset"))
	})

	It("should serve the signals on the board", func() {
		board.Get("in_a").Set(42)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/signals", nil)

		m.listSignals(w, r)

		var rsp []signalRsp
		Expect(json.Unmarshal(w.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp).To(HaveLen(8))
		Expect(rsp).To(ContainElement(signalRsp{
			Name:  "in_a",
			Width: 8,
			Value: 42,
		}))
	})

	It("should return 404 for an unknown bench", func() {
		w := httptest.NewRecorder()

		bench := m.findBenchOr404(w, "NoSuchBench")

		Expect(bench).To(BeNil())
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("should lower the port restriction to a random port", func() {
		m.WithPortNumber(80)

		Expect(m.portNumber).To(Equal(0))
	})
})
