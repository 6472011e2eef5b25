// Package monitoring turns a verification run into a web server, so that a
// long run can be observed and controlled from a browser.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"time"

	// Enable profiling
	_ "net/http/pprof"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sialab/ryval/signal"
	"github.com/sialab/ryval/sim"
	"github.com/sialab/ryval/verify"
)

// Monitor can turn a verification run into a server and allows external
// monitoring and controlling of the run.
type Monitor struct {
	engine     sim.Engine
	benches    []*verify.Bench
	board      *signal.Board
	portNumber int
	openDash   bool
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber > 0 && portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n",
			portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithBrowser makes StartServer open the server address in a browser.
func (m *Monitor) WithBrowser() *Monitor {
	m.openDash = true
	return m
}

// RegisterEngine registers the engine that paces the run.
func (m *Monitor) RegisterEngine(e sim.Engine) {
	m.engine = e
}

// RegisterBench registers a bench whose progress is served.
func (m *Monitor) RegisterBench(b *verify.Bench) {
	m.benches = append(m.benches, b)
}

// RegisterBoard registers the signal board whose values are served.
func (m *Monitor) RegisterBoard(b *signal.Board) {
	m.board = b
}

// StartServer starts the monitor as a web server.
func (m *Monitor) StartServer() {
	r := mux.NewRouter()

	r.HandleFunc("/api/pause", m.pauseEngine)
	r.HandleFunc("/api/continue", m.continueEngine)
	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/progress", m.listProgress)
	r.HandleFunc("/api/bench/{name}", m.benchDetails)
	r.HandleFunc("/api/signals", m.listSignals)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	http.Handle("/", r)

	actualPort := ":0"
	if m.portNumber > 0 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring verification with %s\n", url)

	if m.openDash {
		err = browser.OpenURL(url)
		dieOnErr(err)
	}

	go func() {
		err = http.Serve(listener, nil)
		dieOnErr(err)
	}()
}

func (m *Monitor) pauseEngine(w http.ResponseWriter, _ *http.Request) {
	m.engine.Pause()
	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) continueEngine(w http.ResponseWriter, _ *http.Request) {
	m.engine.Continue()
	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	now := m.engine.CurrentTime()
	fmt.Fprintf(w, "{\"now\":%.10f}", now)
}

type progressRsp struct {
	Name   string        `json:"name"`
	Status verify.Status `json:"status"`
}

func (m *Monitor) listProgress(w http.ResponseWriter, _ *http.Request) {
	rsp := make([]progressRsp, 0, len(m.benches))
	for _, b := range m.benches {
		rsp = append(rsp, progressRsp{
			Name:   b.Name(),
			Status: b.Status(),
		})
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) benchDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	bench := m.findBenchOr404(w, name)
	if bench == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(bench)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

func (m *Monitor) findBenchOr404(
	w http.ResponseWriter,
	name string,
) *verify.Bench {
	var bench *verify.Bench
	for _, b := range m.benches {
		if b.Name() == name {
			bench = b
		}
	}

	if bench == nil {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Bench not found"))
		dieOnErr(err)
	}

	return bench
}

type signalRsp struct {
	Name  string `json:"name"`
	Width uint   `json:"width"`
	Value uint64 `json:"value"`
}

func (m *Monitor) listSignals(w http.ResponseWriter, _ *http.Request) {
	if m.board == nil {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("No board registered"))
		dieOnErr(err)

		return
	}

	signals := m.board.Signals()

	rsp := make([]signalRsp, 0, len(signals))
	for _, s := range signals {
		rsp = append(rsp, signalRsp{
			Name:  s.Name(),
			Width: s.Width(),
			Value: s.Get(),
		})
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	bytes, err := json.Marshal(prof)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
