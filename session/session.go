// Package session assembles the services a verification run needs: the
// event engine, the signal board, data recording, and the monitoring
// server.
package session

import (
	"github.com/sialab/ryval/monitoring"
	"github.com/sialab/ryval/recording"
	"github.com/sialab/ryval/signal"
	"github.com/sialab/ryval/sim"
	"github.com/sialab/ryval/verify"
)

// A Session provides the services required to define a verification run.
type Session struct {
	id string

	engine   sim.Engine
	board    *signal.Board
	recorder recording.DataRecorder
	trace    *recording.ViolationTrace
	monitor  *monitoring.Monitor

	benches        []*verify.Bench
	benchNameIndex map[string]int
}

// ID returns the unique identifier of the session.
func (s *Session) ID() string {
	return s.id
}

// Engine returns the engine used in the session.
func (s *Session) Engine() sim.Engine {
	return s.engine
}

// Board returns the signal board of the session.
func (s *Session) Board() *signal.Board {
	return s.board
}

// DataRecorder returns the data recorder of the session, or nil when
// recording is disabled.
func (s *Session) DataRecorder() recording.DataRecorder {
	return s.recorder
}

// Trace returns the violation trace of the session, or nil when recording
// is disabled. The trace is handed to benches as their violation sink.
func (s *Session) Trace() *recording.ViolationTrace {
	return s.trace
}

// Monitor returns the monitor of the session, or nil when monitoring is
// disabled.
func (s *Session) Monitor() *monitoring.Monitor {
	return s.monitor
}

// RegisterBench registers a bench with the session and, when monitoring is
// on, with the monitor.
func (s *Session) RegisterBench(b *verify.Bench) {
	name := b.Name()
	if _, exists := s.benchNameIndex[name]; exists {
		panic("bench " + name + " already registered")
	}

	s.benches = append(s.benches, b)
	s.benchNameIndex[name] = len(s.benches) - 1

	if s.monitor != nil {
		s.monitor.RegisterBench(b)
	}
}

// Benches returns all registered benches.
func (s *Session) Benches() []*verify.Bench {
	return s.benches
}

// BenchByName returns the bench with the given name.
func (s *Session) BenchByName(name string) *verify.Bench {
	idx, exists := s.benchNameIndex[name]
	if !exists {
		panic("bench " + name + " is not registered")
	}

	return s.benches[idx]
}

// RecordResults writes the summary rows of all registered benches into the
// recorder. It is a no-op when recording is disabled.
func (s *Session) RecordResults() {
	if s.trace == nil {
		return
	}

	for _, b := range s.benches {
		s.trace.RecordRun(b.Name(), b.Result())
	}
}

// Terminate terminates the session, flushing and closing the recorder.
func (s *Session) Terminate() {
	if s.recorder != nil {
		s.recorder.Close()
	}
}
