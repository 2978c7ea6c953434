package nn

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gnnlab/autograd"
)

// Linear is a dense affine layer, out = X·W + b, with W stored
// input×output so row-major node batches multiply from the left.
//
// Both W and b initialize from U(−1/√in, 1/√in), the fan-in rule.
type Linear struct {
	W *autograd.Tensor
	B *autograd.Tensor

	in, out int
}

// NewLinear builds the layer. Parameters are named name+".weight" and
// name+".bias". Panics on non-positive dimensions (model constructors
// validate config before building layers).
func NewLinear(name string, in, out int, rnd *rand.Rand) *Linear {
	if in <= 0 || out <= 0 {
		panic("nn: NewLinear: non-positive dimensions")
	}
	w := mat.NewDense(in, out, nil)
	b := mat.NewDense(1, out, nil)
	bound := 1 / math.Sqrt(float64(in))
	uniformInit(w, bound, rnd)
	uniformInit(b, bound, rnd)
	return &Linear{
		W:   autograd.NewParam(name+".weight", w),
		B:   autograd.NewParam(name+".bias", b),
		in:  in,
		out: out,
	}
}

// Apply runs the affine map on an N×in tensor.
func (l *Linear) Apply(x *autograd.Tensor) *autograd.Tensor {
	return autograd.AddBias(autograd.MatMul(x, l.W), l.B)
}

// Params returns the layer parameters in stable order.
func (l *Linear) Params() []*autograd.Tensor {
	return []*autograd.Tensor{l.W, l.B}
}
