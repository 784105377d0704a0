package combat

import (
	"math/rand/v2"
	"sync"
)

// Rand is the random source used by damage and reward rolls.
// Implementations must be safe for concurrent use.
type Rand interface {
	// IntN returns a uniform int in [0, n). n must be > 0.
	IntN(n int) int
	// Float64 returns a uniform float in [0.0, 1.0).
	Float64() float64
	// Shuffle pseudo-randomizes the order of n elements.
	Shuffle(n int, swap func(i, j int))
}

// lockedRand serializes access to a seeded generator.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRand returns a deterministic source seeded with seed.
func NewRand(seed uint64) Rand {
	return &lockedRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRand) Shuffle(n int, swap func(i, j int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.r.Shuffle(n, swap)
}

// globalRand uses the process-wide source from math/rand/v2.
type globalRand struct{}

// DefaultRand returns the process-wide random source.
func DefaultRand() Rand { return globalRand{} }

func (globalRand) IntN(n int) int                     { return rand.IntN(n) }
func (globalRand) Float64() float64                   { return rand.Float64() }
func (globalRand) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// rollInclusive returns a uniform value in [lo, hi]. If hi < lo, lo is returned.
func rollInclusive(rng Rand, lo, hi int32) int32 {
	if hi <= lo {
		return lo
	}
	return lo + int32(rng.IntN(int(hi-lo)+1))
}
