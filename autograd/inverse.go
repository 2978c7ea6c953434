package autograd

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Inverse returns X⁻¹ for square X. Unlike every other op this one can
// fail on data, not on misuse: a singular (or numerically near-singular)
// input yields a wrapped ErrSingular carrying gonum's condition detail.
// Callers choose the recovery policy, typically a ridge shift on the
// input before retrying or aborting the step.
//
// Adjoint: gX += −(X⁻¹)ᵀ · g · (X⁻¹)ᵀ.
func Inverse(x *Tensor) (*Tensor, error) {
	r, c := x.data.Dims()
	if r != c {
		panic(panicNotSquare)
	}
	var inv mat.Dense
	if err := inv.Inverse(x.data); err != nil {
		return nil, fmt.Errorf("Inverse: %v: %w", err, ErrSingular)
	}
	t := newResult(&inv, x)
	if t.requires {
		t.backFn = func() {
			g := t.ensureGrad()
			var left, full mat.Dense
			left.Mul(t.data.T(), g)
			full.Mul(&left, t.data.T())
			full.Scale(-1, &full)
			accumulate(x, &full)
		}
	}
	return t, nil
}
