package autograd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gnnlab/autograd"
)

// scalar wraps a single float64 as a named 1×1 parameter.
func scalar(name string, v float64) *autograd.Tensor {
	return autograd.NewParam(name, mat.NewDense(1, 1, []float64{v}))
}

// TestBackward_SharedUseAccumulates verifies that a tensor consumed twice
// receives the sum of both contributions.
func TestBackward_SharedUseAccumulates(t *testing.T) {
	x := scalar("x", 3)
	loss := autograd.Sum(autograd.Add(x, x)) // 2x

	autograd.Backward(loss)

	require.NotNil(t, x.Grad())
	assert.InDelta(t, 2.0, x.Grad().At(0, 0), 1e-12, "d(2x)/dx = 2")
}

// TestBackward_ChainRule differentiates x² written as x∘x, which also
// exercises both branches of MulElem feeding the same input.
func TestBackward_ChainRule(t *testing.T) {
	x := scalar("x", 2)
	loss := autograd.Sum(autograd.MulElem(x, x))

	autograd.Backward(loss)

	assert.InDelta(t, 4.0, x.Grad().At(0, 0), 1e-12, "d(x²)/dx = 2x = 4")
}

// TestBackward_ConstantStaysGradFree verifies constants never allocate a
// gradient buffer.
func TestBackward_ConstantStaysGradFree(t *testing.T) {
	x := scalar("x", 1)
	c := autograd.NewConst(mat.NewDense(1, 1, []float64{5}))
	loss := autograd.Sum(autograd.Add(x, c))

	autograd.Backward(loss)

	assert.Nil(t, c.Grad(), "constants carry no gradient")
	assert.False(t, c.RequiresGrad())
	assert.InDelta(t, 1.0, x.Grad().At(0, 0), 1e-12)
}

// TestBackward_SeedIsOnes verifies the elementwise seed on a non-scalar
// root (interpreted as differentiating the sum of entries).
func TestBackward_SeedIsOnes(t *testing.T) {
	p := autograd.NewParam("p", mat.NewDense(2, 2, []float64{1, 2, 3, 4}))

	autograd.Backward(p)

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			assert.Equal(t, 1.0, p.Grad().At(i, j), "seed at (%d,%d)", i, j)
		}
	}
}

// TestZeroGrad verifies the buffer is cleared but kept.
func TestZeroGrad(t *testing.T) {
	x := scalar("x", 3)
	autograd.Backward(autograd.Sum(autograd.Add(x, x)))
	require.NotNil(t, x.Grad())

	x.ZeroGrad()

	require.NotNil(t, x.Grad(), "buffer survives ZeroGrad")
	assert.Equal(t, 0.0, x.Grad().At(0, 0))
}

// TestBackward_AccumulatesAcrossCalls verifies gradients add up over two
// sweeps when ZeroGrad is not called in between.
func TestBackward_AccumulatesAcrossCalls(t *testing.T) {
	x := scalar("x", 3)

	autograd.Backward(autograd.Sum(autograd.Add(x, x)))
	autograd.Backward(autograd.Sum(autograd.Add(x, x)))

	assert.InDelta(t, 4.0, x.Grad().At(0, 0), 1e-12, "two sweeps, 2 each")
}

// TestSetValue verifies the copy semantics and the shape guard.
func TestSetValue(t *testing.T) {
	p := autograd.NewParam("p", mat.NewDense(2, 2, nil))
	src := mat.NewDense(2, 2, []float64{1, 2, 3, 4})

	p.SetValue(src)
	src.Set(0, 0, 99)

	assert.Equal(t, 1.0, p.Value().At(0, 0), "SetValue copies, no aliasing")
	assert.Panics(t, func() { p.SetValue(mat.NewDense(1, 2, nil)) }, "shape mismatch panics")
}

// TestNewParam_Metadata verifies name and dims plumbing.
func TestNewParam_Metadata(t *testing.T) {
	p := autograd.NewParam("weights", mat.NewDense(3, 4, nil))

	r, c := p.Dims()
	assert.Equal(t, "weights", p.Name())
	assert.Equal(t, 3, r)
	assert.Equal(t, 4, c)
	assert.True(t, p.RequiresGrad())
}
