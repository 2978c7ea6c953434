package nn

import (
	"fmt"

	"github.com/katalvlaran/gnnlab/autograd"
	"github.com/katalvlaran/gnnlab/graphstore"
)

// PropStrategy selects how the powers A¹R … A^K R are combined inside a
// normalization step. The strategy is resolved once at model
// construction; ids 1..3 are the historical command-line encoding.
type PropStrategy int

const (
	// PropUniform sums all orders with unit weight and keeps the zeroth
	// term: R + A·R + A²·R + … + A^K·R.
	PropUniform PropStrategy = iota + 1

	// PropWeighted scales each order by a learned scalar:
	// Σ_{k=1..K} w_k · A^k·R. No zeroth term.
	PropWeighted

	// PropNodeAdaptive derives per-node weights from the step input X:
	// P = ReLU(X·M1)·M2 (N×K), then Σ_{k=1..K} P[:,k] ∘ A^k·R.
	PropNodeAdaptive
)

// PropStrategyFromID maps the command-line id to a strategy.
func PropStrategyFromID(id int) (PropStrategy, error) {
	switch id {
	case 1:
		return PropUniform, nil
	case 2:
		return PropWeighted, nil
	case 3:
		return PropNodeAdaptive, nil
	default:
		return 0, fmt.Errorf("propagation id %d not in [1,3]: %w", id, ErrConfig)
	}
}

// String returns the short name used in logs.
func (s PropStrategy) String() string {
	switch s {
	case PropUniform:
		return "uniform"
	case PropWeighted:
		return "weighted"
	case PropNodeAdaptive:
		return "node-adaptive"
	default:
		return fmt.Sprintf("PropStrategy(%d)", int(s))
	}
}

// PropagateUniform returns R + Σ_{k=1..orders} A^k·R, computing powers
// incrementally (one sparse multiply per order).
func PropagateUniform(adj *graphstore.CSR, r *autograd.Tensor, orders int) *autograd.Tensor {
	sum := r
	tmp := r
	for k := 0; k < orders; k++ {
		tmp = autograd.SpMM(adj, tmp)
		sum = autograd.Add(sum, tmp)
	}
	return sum
}

// PropagateWeighted returns Σ_{k=1..orders} w[k-1,0]·A^k·R for a learned
// orders×1 weight vector w.
func PropagateWeighted(adj *graphstore.CSR, r, w *autograd.Tensor, orders int) *autograd.Tensor {
	tmp := autograd.SpMM(adj, r)
	sum := autograd.ScaleElem(tmp, w, 0, 0)
	for k := 1; k < orders; k++ {
		tmp = autograd.SpMM(adj, tmp)
		sum = autograd.Add(sum, autograd.ScaleElem(tmp, w, k, 0))
	}
	return sum
}

// PropagateNodeAdaptive conditions the per-order weights on the step
// input x: P = ReLU(x·m1)·m2 gives one weight column per order, and the
// k-th column scales the rows of A^k·R.
func PropagateNodeAdaptive(adj *graphstore.CSR, x, r, m1, m2 *autograd.Tensor, orders int) *autograd.Tensor {
	p := autograd.MatMul(autograd.ReLU(autograd.MatMul(x, m1)), m2)
	tmp := autograd.SpMM(adj, r)
	sum := autograd.ScaleRows(tmp, autograd.Col(p, 0))
	for k := 1; k < orders; k++ {
		tmp = autograd.SpMM(adj, tmp)
		sum = autograd.Add(sum, autograd.ScaleRows(tmp, autograd.Col(p, k)))
	}
	return sum
}
