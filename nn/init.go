package nn

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// DefaultSeed seeds model initialization when no explicit seed or source
// is supplied.
const DefaultSeed int64 = 42

// initRand resolves the randomness source for a config: an injected
// *rand.Rand wins, then an explicit seed, then DefaultSeed. Initialization
// and dropout share the returned source, so a fixed seed makes the whole
// run reproducible.
func initRand(rnd *rand.Rand, seed int64) *rand.Rand {
	if rnd != nil {
		return rnd
	}
	if seed == 0 {
		seed = DefaultSeed
	}
	return rand.New(rand.NewSource(seed))
}

// uniformInit fills m with U(−bound, bound) draws, row-major order.
func uniformInit(m *mat.Dense, bound float64, rnd *rand.Rand) {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.Set(i, j, (rnd.Float64()*2-1)*bound)
		}
	}
}

// kaimingNormalInit fills m with N(0, 2/fan) draws where fan is the first
// dimension, the fan-out convention the adaptive propagation weights use.
func kaimingNormalInit(m *mat.Dense, rnd *rand.Rand) {
	r, c := m.Dims()
	std := math.Sqrt(2 / float64(r))
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.Set(i, j, rnd.NormFloat64()*std)
		}
	}
}

// constInit fills m with the single value v.
func constInit(m *mat.Dense, v float64) {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.Set(i, j, v)
		}
	}
}
