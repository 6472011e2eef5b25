package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sialab/ryval/duv/adder"
	"github.com/sialab/ryval/session"
	"github.com/sialab/ryval/sim"
	"github.com/sialab/ryval/verify"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a verification of the pipelined adder.",
	Long: "`run` builds a pipelined adder of the requested width and depth " +
		"and verifies it against the modular-add reference model.",
	Run: runVerification,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Uint("width", 32,
		"operand and result width in bits")
	runCmd.Flags().Int("depth", 2,
		"number of pipeline stages")
	runCmd.Flags().Float64("freq", 1.0,
		"clock frequency in GHz")
	runCmd.Flags().Int64("seed", envInt64("RYVAL_SEED", 1),
		"seed of the randomized traffic")
	runCmd.Flags().Int("reset-cycles", 4,
		"number of cycles reset is held asserted")
	runCmd.Flags().Int("valid-percent", 70,
		"probability, in percent, of producer-valid on a randomized cycle")
	runCmd.Flags().Int("ready-percent", 60,
		"probability, in percent, of consumer-ready on a randomized cycle")
	runCmd.Flags().Int("random-cycles", 2000,
		"number of randomized traffic cycles")
	runCmd.Flags().Int("drain-budget", 256,
		"maximum number of drain cycles at the end of the run")
	runCmd.Flags().Int("flush-cycles", 8,
		"idle cycles after the last directed vector")
	runCmd.Flags().Bool("no-prime", false,
		"skip the throwaway cycle after reset")
	runCmd.Flags().Bool("monitor", false,
		"start the monitoring server")
	runCmd.Flags().Int("monitor-port", envInt("RYVAL_MONITOR_PORT", 0),
		"port of the monitoring server, 0 picks a random port")
	runCmd.Flags().Bool("open", false,
		"open the monitoring server in a browser")
	runCmd.Flags().Bool("no-record", false,
		"do not record diagnostics into a database")
	runCmd.Flags().String("output", os.Getenv("RYVAL_OUTPUT"),
		"output file name for the recorded diagnostics")
}

func runVerification(cmd *cobra.Command, _ []string) {
	s := buildSession(cmd)
	defer s.Terminate()

	bench := buildBench(cmd, s)
	s.RegisterBench(bench)

	err := bench.Run()

	s.RecordResults()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}

	res := bench.Result()
	fmt.Printf("passed: %d inputs accepted, 0 violations\n",
		res.InputsAccepted)
}

func buildSession(cmd *cobra.Command) *session.Session {
	monitorOn, _ := cmd.Flags().GetBool("monitor")
	monitorPort, _ := cmd.Flags().GetInt("monitor-port")
	openBrowser, _ := cmd.Flags().GetBool("open")
	noRecord, _ := cmd.Flags().GetBool("no-record")
	output, _ := cmd.Flags().GetString("output")

	builder := session.MakeBuilder()

	if monitorOn {
		if monitorPort > 0 {
			builder = builder.WithMonitorPort(monitorPort)
		}

		if openBrowser {
			builder = builder.WithBrowser()
		}
	} else {
		builder = builder.WithoutMonitoring()
	}

	if noRecord {
		builder = builder.WithoutRecording()
	} else if output != "" {
		builder = builder.WithOutputFileName(output)
	}

	return builder.Build()
}

func buildBench(cmd *cobra.Command, s *session.Session) *verify.Bench {
	width, _ := cmd.Flags().GetUint("width")
	depth, _ := cmd.Flags().GetInt("depth")
	freqGHz, _ := cmd.Flags().GetFloat64("freq")
	seed, _ := cmd.Flags().GetInt64("seed")
	resetCycles, _ := cmd.Flags().GetInt("reset-cycles")
	validPercent, _ := cmd.Flags().GetInt("valid-percent")
	readyPercent, _ := cmd.Flags().GetInt("ready-percent")
	randomCycles, _ := cmd.Flags().GetInt("random-cycles")
	drainBudget, _ := cmd.Flags().GetInt("drain-budget")
	flushCycles, _ := cmd.Flags().GetInt("flush-cycles")
	noPrime, _ := cmd.Flags().GetBool("no-prime")

	dev := adder.MakeBuilder().
		WithWidth(width).
		WithDepth(depth).
		Build("Adder", s.Board())

	builder := verify.MakeBuilder().
		WithEngine(s.Engine()).
		WithDevice(dev, dev.Binding()).
		WithFreq(sim.Freq(freqGHz) * sim.GHz).
		WithSeed(seed).
		WithResetCycles(resetCycles).
		WithValidPercent(validPercent).
		WithReadyPercent(readyPercent).
		WithRandomCycles(randomCycles).
		WithDrainBudget(drainBudget).
		WithFlushCycles(flushCycles).
		WithLogger(log.New(os.Stderr, "", 0))

	if noPrime {
		builder = builder.WithoutPrime()
	}

	if s.Trace() != nil {
		builder = builder.WithSink(s.Trace())
	}

	return builder.Build("Bench")
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func envInt64(key string, def int64) int64 {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}

	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}

	return n
}
