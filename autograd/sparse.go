package autograd

import (
	"github.com/katalvlaran/gnnlab/graphstore"
)

// SpMM returns A·X for a constant sparse operator A and a dense tensor X.
// A carries no gradient; it is the fixed, preprocessed adjacency.
//
// Adjoint: gX += Aᵀ·g, using the operator's cached transpose.
func SpMM(a *graphstore.CSR, x *Tensor) *Tensor {
	out := a.MulDense(x.data)
	t := newResult(out, x)
	if t.requires {
		t.backFn = func() {
			accumulate(x, a.Transpose().MulDense(t.ensureGrad()))
		}
	}
	return t
}
