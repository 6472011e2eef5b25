package verify

import (
	"io"
	"log"
	"math/rand"
	"os"

	"github.com/sialab/ryval/clock"
	"github.com/sialab/ryval/duv"
	"github.com/sialab/ryval/sim"
)

// A Builder assembles a Bench. All knobs have working defaults; an engine,
// a device, and its binding are the only mandatory inputs.
type Builder struct {
	engine sim.Engine
	freq   sim.Freq
	device duv.Device
	bind   duv.Binding

	model        RefModel
	logger       *log.Logger
	sink         ViolationSink
	seed         int64
	validPercent int
	readyPercent int
	randomCycles int
	drainBudget  int
	resetCycles  int
	flushCycles  int
	vectors      []Vector
	hasVectors   bool
	primeEnabled bool
}

// MakeBuilder returns a builder with the default configuration: a 1 GHz
// clock, seed 1, 70 percent producer-valid and 60 percent consumer-ready
// probabilities, 2000 randomized cycles, a 256-cycle drain budget, 4 reset
// hold cycles, an 8-cycle directed flush, and the prime cycle enabled.
func MakeBuilder() Builder {
	return Builder{
		freq:         1 * sim.GHz,
		seed:         1,
		validPercent: 70,
		readyPercent: 60,
		randomCycles: 2000,
		drainBudget:  256,
		resetCycles:  4,
		flushCycles:  8,
		primeEnabled: true,
	}
}

// WithEngine sets the engine that paces the run.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the clock frequency.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithDevice sets the device under verification and its signal binding.
func (b Builder) WithDevice(device duv.Device, bind duv.Binding) Builder {
	b.device = device
	b.bind = bind
	return b
}

// WithModel sets the reference model. The default predicts the width-bit
// modular sum of the two operands.
func (b Builder) WithModel(model RefModel) Builder {
	b.model = model
	return b
}

// WithLogger sets the logger that violations and the run summary are
// written to. The default logs to standard error.
func (b Builder) WithLogger(logger *log.Logger) Builder {
	b.logger = logger
	return b
}

// WithSink sets a sink that receives a copy of every violation, for
// recording runs into a database.
func (b Builder) WithSink(sink ViolationSink) Builder {
	b.sink = sink
	return b
}

// WithSeed sets the seed of the randomized phase.
func (b Builder) WithSeed(seed int64) Builder {
	b.seed = seed
	return b
}

// WithValidPercent sets the probability, in percent, that the producer
// asserts valid on a randomized cycle.
func (b Builder) WithValidPercent(pct int) Builder {
	b.validPercent = pct
	return b
}

// WithReadyPercent sets the probability, in percent, that the consumer
// asserts ready on a randomized cycle.
func (b Builder) WithReadyPercent(pct int) Builder {
	b.readyPercent = pct
	return b
}

// WithRandomCycles sets the number of randomized cycles. Zero skips the
// randomized phase.
func (b Builder) WithRandomCycles(n int) Builder {
	b.randomCycles = n
	return b
}

// WithDrainBudget sets the maximum number of drain cycles before the run
// gives up on outstanding expectations.
func (b Builder) WithDrainBudget(n int) Builder {
	b.drainBudget = n
	return b
}

// WithResetCycles sets the number of full cycles reset is held asserted.
func (b Builder) WithResetCycles(n int) Builder {
	b.resetCycles = n
	return b
}

// WithFlushCycles sets the number of idle cycles after the last directed
// vector.
func (b Builder) WithFlushCycles(n int) Builder {
	b.flushCycles = n
	return b
}

// WithVectors replaces the default directed vectors. An empty, non-nil
// slice skips the directed phase.
func (b Builder) WithVectors(vectors []Vector) Builder {
	b.vectors = vectors
	b.hasVectors = true
	return b
}

// WithoutPrime disables the throwaway cycle between reset and the directed
// phase. Devices whose outputs are well-defined on the first post-reset
// cycle can skip it.
func (b Builder) WithoutPrime() Builder {
	b.primeEnabled = false
	return b
}

// Build assembles the bench, creates its clock, and attaches the device and
// the bench to the clock in that order.
func (b Builder) Build(name string) *Bench {
	sim.NameMustBeValid(name)
	b.parametersMustBeValid()

	width := b.bind.Width()

	model := b.model
	if model == nil {
		model = AddModel(width)
	}

	logger := b.logger
	if logger == nil {
		logger = log.New(os.Stderr, "", 0)
	}

	vectors := b.vectors
	if !b.hasVectors {
		vectors = DefaultVectors(width)
	}

	flushCycles := b.flushCycles
	if len(vectors) == 0 {
		flushCycles = 0
	}

	rng := rand.New(rand.NewSource(b.seed))

	clk := clock.NewGenerator(sim.BuildName(name, "Clock"), b.engine, b.freq)

	bench := &Bench{
		name:   name,
		engine: b.engine,
		clk:    clk,
		device: b.device,
		bind:   b.bind,
		logger: logger,

		sampler: NewSampler(b.bind, model),
		scoreboard: NewScoreboard(
			sim.BuildName(name, "Scoreboard"), logger, b.sink),
		primeBoard: NewScoreboard(
			sim.BuildName(name, "PrimeScoreboard"),
			log.New(io.Discard, "", 0), nil),
		reset:    NewResetSequencer(b.bind, b.resetCycles),
		directed: NewDirectedStimulus(vectors, width, flushCycles),
		random: NewRandomStimulus(
			rng, b.validPercent, b.readyPercent, width, b.randomCycles),
		drain: NewDrainController(b.drainBudget),

		primeEnabled: b.primeEnabled,
		mode:         ModeReset,
	}

	duv.Attach(clk, b.device)
	clk.Subscribe(bench)

	return bench
}

func (b Builder) parametersMustBeValid() {
	if b.engine == nil {
		log.Panic("a bench must have an engine")
	}

	if b.device == nil {
		log.Panic("a bench must have a device")
	}

	if b.bind.Board == nil {
		log.Panic("a bench must have a signal binding")
	}

	if b.validPercent < 0 || b.validPercent > 100 {
		log.Panic("valid percent must be between 0 and 100")
	}

	if b.readyPercent < 0 || b.readyPercent > 100 {
		log.Panic("ready percent must be between 0 and 100")
	}

	if b.drainBudget < 1 {
		log.Panic("drain budget must be at least 1")
	}

	if b.resetCycles < 1 {
		log.Panic("reset must be held for at least 1 cycle")
	}
}
