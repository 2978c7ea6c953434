package autograd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gnnlab/autograd"
	"github.com/katalvlaran/gnnlab/graphstore"
)

// numGrad returns the central-difference gradient of f at x0.
func numGrad(f func([]float64) float64, x0 []float64) []float64 {
	grad := make([]float64, len(x0))
	fd.Gradient(grad, f, x0, &fd.Settings{Formula: fd.Central, Step: 1e-6})
	return grad
}

// flatGrad returns the row-major gradient entries of a parameter.
func flatGrad(t *testing.T, p *autograd.Tensor) []float64 {
	t.Helper()
	require.NotNil(t, p.Grad())
	r, c := p.Dims()
	out := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out = append(out, p.Grad().At(i, j))
		}
	}
	return out
}

// TestGradCheck_MatMulLogSoftmaxNLL compares the tape gradient of a
// linear classifier loss against central differences.
func TestGradCheck_MatMulLogSoftmaxNLL(t *testing.T) {
	a0 := []float64{0.3, -0.2, 0.5, 1.1, 0.7, -0.4}
	bconst := mat.NewDense(3, 2, []float64{0.2, -0.1, 0.4, 0.3, -0.5, 0.6})
	labels := []int{0, 1}
	idx := []int{0, 1}

	f := func(v []float64) float64 {
		a := autograd.NewParam("a", mat.NewDense(2, 3, append([]float64(nil), v...)))
		logits := autograd.MatMul(a, autograd.NewConst(bconst))
		return autograd.NLLLoss(autograd.LogSoftmax(logits), labels, idx).Value().At(0, 0)
	}
	want := numGrad(f, a0)

	a := autograd.NewParam("a", mat.NewDense(2, 3, append([]float64(nil), a0...)))
	logits := autograd.MatMul(a, autograd.NewConst(bconst))
	autograd.Backward(autograd.NLLLoss(autograd.LogSoftmax(logits), labels, idx))

	got := flatGrad(t, a)
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-7, "entry %d", i)
	}
}

// TestGradCheck_Inverse compares the inverse adjoint against central
// differences under an asymmetric weighting.
func TestGradCheck_Inverse(t *testing.T) {
	x0 := []float64{2, 0.3, 0.1, 0.2, 2.5, 0.3, 0.1, 0.2, 3}
	weights := mat.NewDense(3, 3, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9})

	f := func(v []float64) float64 {
		x := autograd.NewParam("x", mat.NewDense(3, 3, append([]float64(nil), v...)))
		inv, err := autograd.Inverse(x)
		require.NoError(t, err, "well-conditioned input must invert")
		return autograd.Sum(autograd.MulElem(inv, autograd.NewConst(weights))).Value().At(0, 0)
	}
	want := numGrad(f, x0)

	x := autograd.NewParam("x", mat.NewDense(3, 3, append([]float64(nil), x0...)))
	inv, err := autograd.Inverse(x)
	require.NoError(t, err)
	autograd.Backward(autograd.Sum(autograd.MulElem(inv, autograd.NewConst(weights))))

	got := flatGrad(t, x)
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-6, "entry %d", i)
	}
}

// TestGradCheck_CompositePropagation runs the full op mix a normalization
// layer uses (Gram, identity shift, inverse, column scaling, sparse
// propagation, log-softmax NLL) and checks both parameter gradients.
func TestGradCheck_CompositePropagation(t *testing.T) {
	adj, err := graphstore.NewAdjacency(3, [][2]int{{0, 1}, {1, 2}})
	require.NoError(t, err)

	x0 := []float64{0.5, -0.3, 0.8, 0.2, -0.6, 0.9}
	w0 := []float64{1.2, 0.8}
	labels := []int{1, 0, 1}
	idx := []int{0, 2}

	eval := func(xv, wv []float64) float64 {
		x := autograd.NewParam("x", mat.NewDense(3, 2, append([]float64(nil), xv...)))
		w := autograd.NewParam("w", mat.NewDense(2, 1, append([]float64(nil), wv...)))
		gram := autograd.MatMul(autograd.Transpose(x), x)
		inv, ierr := autograd.Inverse(autograd.AddScaledEye(gram, 0.7))
		require.NoError(t, ierr)
		proj := autograd.ScaleCols(autograd.MatMul(x, inv), w)
		logits := autograd.SpMM(adj, proj)
		return autograd.NLLLoss(autograd.LogSoftmax(logits), labels, idx).Value().At(0, 0)
	}

	joint := append(append([]float64(nil), x0...), w0...)
	want := numGrad(func(v []float64) float64 { return eval(v[:6], v[6:]) }, joint)

	x := autograd.NewParam("x", mat.NewDense(3, 2, append([]float64(nil), x0...)))
	w := autograd.NewParam("w", mat.NewDense(2, 1, append([]float64(nil), w0...)))
	gram := autograd.MatMul(autograd.Transpose(x), x)
	inv, ierr := autograd.Inverse(autograd.AddScaledEye(gram, 0.7))
	require.NoError(t, ierr)
	proj := autograd.ScaleCols(autograd.MatMul(x, inv), w)
	logits := autograd.SpMM(adj, proj)
	autograd.Backward(autograd.NLLLoss(autograd.LogSoftmax(logits), labels, idx))

	got := append(flatGrad(t, x), flatGrad(t, w)...)
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-6, "entry %d", i)
	}
}
