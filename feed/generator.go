// Package feed synthesizes the simulated price stream. No external market
// data is consumed anywhere in this repo; the generator is the only source.
package feed

import (
	"math/rand"
	"time"

	"github.com/rustyeddy/simbot/market"
)

// DefaultBase is the reference level the first price is drawn around,
// roughly where EURUSD trades.
const DefaultBase = 1.1000

const (
	// First price: base +/- initJitter.
	defaultInitJitter = 0.005
	// Every later price: last * (1 +/- walkJitter).
	defaultWalkJitter = 0.0008
)

// Generator produces a bounded multiplicative random walk rounded to
// 5 decimals. It is deterministic for a fixed seed.
type Generator struct {
	base       float64
	initJitter float64
	walkJitter float64
	rng        *rand.Rand
}

// NewGenerator creates a Generator around the given base level. A zero base
// falls back to DefaultBase; a zero seed is replaced with the current time.
func NewGenerator(base float64, seed int64) *Generator {
	if base <= 0 {
		base = DefaultBase
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		base:       base,
		initJitter: defaultInitJitter,
		walkJitter: defaultWalkJitter,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

// Next returns the next simulated price. last is the most recent price in
// the series; ok is false while the series is still empty, in which case the
// price is drawn around the base level instead.
func (g *Generator) Next(last float64, ok bool) float64 {
	if !ok {
		return market.Round5(g.base + g.uniform(g.initJitter))
	}
	return market.Round5(last * (1 + g.uniform(g.walkJitter)))
}

// uniform draws from [-bound, bound).
func (g *Generator) uniform(bound float64) float64 {
	return (g.rng.Float64()*2 - 1) * bound
}
