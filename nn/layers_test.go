package nn_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gnnlab/autograd"
	"github.com/katalvlaran/gnnlab/graphstore"
	"github.com/katalvlaran/gnnlab/nn"
)

// assertMatInDelta compares two dense matrices entry-wise.
func assertMatInDelta(t *testing.T, want *mat.Dense, got mat.Matrix, delta float64, msg string) {
	t.Helper()
	wr, wc := want.Dims()
	gr, gc := got.Dims()
	require.Equal(t, wr, gr, "%s: row count", msg)
	require.Equal(t, wc, gc, "%s: column count", msg)
	for i := 0; i < wr; i++ {
		for j := 0; j < wc; j++ {
			assert.InDelta(t, want.At(i, j), got.At(i, j), delta, "%s: entry (%d,%d)", msg, i, j)
		}
	}
}

// TestNewLinear_InitBoundsAndNames checks the fan-in uniform bound and the
// parameter naming convention.
func TestNewLinear_InitBoundsAndNames(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	l := nn.NewLinear("fc1", 16, 4, rnd)

	assert.Equal(t, "fc1.weight", l.W.Name(), "weight name")
	assert.Equal(t, "fc1.bias", l.B.Name(), "bias name")
	assert.True(t, l.W.RequiresGrad(), "weight must be trainable")

	bound := 1 / math.Sqrt(16)
	check := func(m *mat.Dense, label string) {
		r, c := m.Dims()
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				v := m.At(i, j)
				assert.LessOrEqual(t, math.Abs(v), bound, "%s entry (%d,%d) outside fan-in bound", label, i, j)
			}
		}
	}
	check(l.W.Value(), "weight")
	check(l.B.Value(), "bias")

	wr, wc := l.W.Dims()
	br, bc := l.B.Dims()
	assert.Equal(t, [2]int{16, 4}, [2]int{wr, wc}, "weight stored input×output")
	assert.Equal(t, [2]int{1, 4}, [2]int{br, bc}, "bias is a single row")
}

// TestLinear_Apply verifies the affine map on a hand-set layer.
func TestLinear_Apply(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	l := nn.NewLinear("fc", 2, 2, rnd)
	l.W.SetValue(mat.NewDense(2, 2, []float64{1, 2, 3, 4}))
	l.B.SetValue(mat.NewDense(1, 2, []float64{10, 20}))

	x := autograd.NewConst(mat.NewDense(2, 2, []float64{1, 0, 0, 1}))
	out := l.Apply(x)

	want := mat.NewDense(2, 2, []float64{11, 22, 13, 24})
	assertMatInDelta(t, want, out.Value(), 1e-12, "identity input returns W plus bias")
	assert.Len(t, l.Params(), 2, "weight and bias")
}

// TestNewGraphConvolution_InitBounds checks the fan-out uniform bound and
// the bias-free construction.
func TestNewGraphConvolution_InitBounds(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	gc := nn.NewGraphConvolution("gc1", 8, 4, true, rnd)

	bound := 1 / math.Sqrt(4)
	r, c := gc.W.Dims()
	require.Equal(t, [2]int{8, 4}, [2]int{r, c})
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			assert.LessOrEqual(t, math.Abs(gc.W.Value().At(i, j)), bound,
				"weight entry (%d,%d) outside fan-out bound", i, j)
		}
	}

	noBias := nn.NewGraphConvolution("gc2", 8, 4, false, rnd)
	assert.Nil(t, noBias.B, "bias disabled")
	assert.Len(t, noBias.Params(), 1, "only the weight is trainable")
}

// TestGraphConvolution_Apply checks A·(X·W)+b on the row-normalized path
// graph 0-1-2 with self-loops.
func TestGraphConvolution_Apply(t *testing.T) {
	adj, err := graphstore.NewAdjacency(3, [][2]int{{0, 1}, {1, 2}})
	require.NoError(t, err)

	rnd := rand.New(rand.NewSource(1))
	gc := nn.NewGraphConvolution("gc", 1, 1, true, rnd)
	gc.W.SetValue(mat.NewDense(1, 1, []float64{2}))
	gc.B.SetValue(mat.NewDense(1, 1, []float64{1}))

	x := autograd.NewConst(mat.NewDense(3, 1, []float64{1, 2, 3}))
	out := gc.Apply(adj, x)

	// A·(2X) rows: 2·[1.5, 2, 2.5], then +1.
	want := mat.NewDense(3, 1, []float64{4, 5, 6})
	assertMatInDelta(t, want, out.Value(), 1e-12, "conv output")
}
