package sim

import (
	"log"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/rs/xid"
)

// An IDGenerator generates IDs for events and components.
type IDGenerator interface {
	Generate() string
}

var (
	idGeneratorMu    sync.Mutex
	idGeneratorInUse bool
	idGenerator      IDGenerator
)

// UseSequentialIDGenerator makes the simulation generate deterministic,
// sequential IDs. This is the default.
func UseSequentialIDGenerator() {
	setIDGenerator(&sequentialIDGenerator{})
}

// UseXIDGenerator makes the simulation generate globally unique IDs. The IDs
// are not deterministic across runs.
func UseXIDGenerator() {
	setIDGenerator(xidGenerator{})
}

func setIDGenerator(g IDGenerator) {
	idGeneratorMu.Lock()
	defer idGeneratorMu.Unlock()

	if idGeneratorInUse {
		log.Panic("cannot change the ID generator after it has been used")
	}

	idGenerator = g
	idGeneratorInUse = true
}

// GetIDGenerator returns the ID generator used in the current simulation.
func GetIDGenerator() IDGenerator {
	idGeneratorMu.Lock()
	defer idGeneratorMu.Unlock()

	if !idGeneratorInUse {
		idGenerator = &sequentialIDGenerator{}
		idGeneratorInUse = true
	}

	return idGenerator
}

type sequentialIDGenerator struct {
	nextID uint64
}

func (g *sequentialIDGenerator) Generate() string {
	return strconv.FormatUint(atomic.AddUint64(&g.nextID, 1), 10)
}

type xidGenerator struct{}

func (xidGenerator) Generate() string {
	return xid.New().String()
}
