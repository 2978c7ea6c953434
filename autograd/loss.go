package autograd

import (
	"gonum.org/v1/gonum/mat"
)

// NLLLoss reduces row-wise log-probabilities to the mean negative
// log-likelihood over the index set idx:
//
//	loss = −(1/|idx|) · Σ_{i∈idx} logp[i, labels[i]]
//
// logp is expected to come from LogSoftmax; labels must be valid class
// columns for every selected row. idx must be non-empty (validated splits
// guarantee this upstream; an empty set here is a programmer error and
// panics).
//
// Adjoint: gLogp[i, labels[i]] −= g/|idx| for each i ∈ idx.
func NLLLoss(logp *Tensor, labels []int, idx []int) *Tensor {
	if len(idx) == 0 {
		panic(panicEmptyIndex)
	}
	inv := 1 / float64(len(idx))
	var sum float64
	for _, i := range idx {
		sum += logp.data.At(i, labels[i])
	}
	out := mat.NewDense(1, 1, []float64{-sum * inv})
	t := newResult(out, logp)
	if t.requires {
		t.backFn = func() {
			g := t.ensureGrad().At(0, 0)
			lr, lc := logp.data.Dims()
			gl := mat.NewDense(lr, lc, nil)
			for _, i := range idx {
				j := labels[i]
				gl.Set(i, j, gl.At(i, j)-g*inv)
			}
			accumulate(logp, gl)
		}
	}
	return t
}
