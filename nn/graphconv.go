package nn

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gnnlab/autograd"
	"github.com/katalvlaran/gnnlab/graphstore"
)

// GraphConvolution is the spectral-rule layer out = A·(X·W) + b over a
// preprocessed adjacency A. Weight and bias initialize from
// U(−1/√out, 1/√out), the historical convention for this layer (the
// bound follows the output width, not the input).
type GraphConvolution struct {
	W *autograd.Tensor
	B *autograd.Tensor // nil when built without bias

	in, out int
}

// NewGraphConvolution builds the layer; withBias controls the additive
// term. Parameters are named name+".weight" / name+".bias". Panics on
// non-positive dimensions.
func NewGraphConvolution(name string, in, out int, withBias bool, rnd *rand.Rand) *GraphConvolution {
	if in <= 0 || out <= 0 {
		panic("nn: NewGraphConvolution: non-positive dimensions")
	}
	bound := 1 / math.Sqrt(float64(out))
	w := mat.NewDense(in, out, nil)
	uniformInit(w, bound, rnd)
	gc := &GraphConvolution{
		W:   autograd.NewParam(name+".weight", w),
		in:  in,
		out: out,
	}
	if withBias {
		b := mat.NewDense(1, out, nil)
		uniformInit(b, bound, rnd)
		gc.B = autograd.NewParam(name+".bias", b)
	}
	return gc
}

// Apply computes A·(X·W) (+ b) for an N×in tensor.
func (gc *GraphConvolution) Apply(adj *graphstore.CSR, x *autograd.Tensor) *autograd.Tensor {
	support := autograd.MatMul(x, gc.W)
	out := autograd.SpMM(adj, support)
	if gc.B != nil {
		out = autograd.AddBias(out, gc.B)
	}
	return out
}

// Params returns the layer parameters in stable order (bias omitted when
// absent).
func (gc *GraphConvolution) Params() []*autograd.Tensor {
	if gc.B == nil {
		return []*autograd.Tensor{gc.W}
	}
	return []*autograd.Tensor{gc.W, gc.B}
}
