package graphstore_test

import (
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gnnlab/graphstore"
)

// randomAdjacency builds a normalized sparse adjacency over n nodes with
// roughly e random edges (duplicates coalesce).
func randomAdjacency(b *testing.B, n, e int) *graphstore.CSR {
	b.Helper()
	rnd := rand.New(rand.NewSource(42))
	edges := make([][2]int, e)
	for k := range edges {
		edges[k] = [2]int{rnd.Intn(n), rnd.Intn(n)}
	}
	a, err := graphstore.NewAdjacency(n, edges)
	if err != nil {
		b.Fatal(err)
	}
	return a
}

// BenchmarkCSR_MulDense measures the propagation kernel A·X on a sparse
// random graph against a 64-column dense operand.
func BenchmarkCSR_MulDense(b *testing.B) {
	const (
		n = 5000
		e = 20000
		f = 64
	)
	a := randomAdjacency(b, n, e)
	x := mat.NewDense(n, f, nil)
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < n; i++ {
		for j := 0; j < f; j++ {
			x.Set(i, j, rnd.NormFloat64())
		}
	}

	b.ReportAllocs()
	b.SetBytes(int64(a.NNZ() * f))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = a.MulDense(x)
	}
}

// BenchmarkCSR_Transpose measures the one-off transpose build (cache
// cleared each iteration via a fresh normalization).
func BenchmarkCSR_Transpose(b *testing.B) {
	const (
		n = 5000
		e = 20000
	)
	a := randomAdjacency(b, n, e)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		a.RowNormalize() // drops the cached transpose
		_ = a.Transpose()
	}
}
