package nn

import (
	"fmt"

	"github.com/katalvlaran/gnnlab/autograd"
	"github.com/katalvlaran/gnnlab/graphstore"
)

// NormVariant selects the normalization step flavor. Resolved once at
// model construction; ids 1..2 are the historical command-line encoding.
type NormVariant int

const (
	// NormPlain is the base closed-form correction.
	NormPlain NormVariant = iota + 1

	// NormDiagScaled additionally scales the corrected embedding by a
	// learned per-class diagonal (columns of the correction, rows of the
	// class-space projector).
	NormDiagScaled
)

// NormVariantFromID maps the command-line id to a variant.
func NormVariantFromID(id int) (NormVariant, error) {
	switch id {
	case 1:
		return NormPlain, nil
	case 2:
		return NormDiagScaled, nil
	default:
		return 0, fmt.Errorf("norm variant id %d not in [1,2]: %w", id, ErrConfig)
	}
}

// String returns the short name used in logs.
func (v NormVariant) String() string {
	switch v {
	case NormPlain:
		return "plain"
	case NormDiagScaled:
		return "diag-scaled"
	default:
		return fmt.Sprintf("NormVariant(%d)", int(v))
	}
}

// normStep applies one normalization iteration to the N×C embedding x,
// with h0 the pre-normalization embedding the step keeps mixing back in.
//
// With coe = 1/(α+β), coe1 = 1−γ, coe2 = 1/coe1:
//
//	G     = XᵀX                                  (C×C Gram)
//	inv   = (coe2²·I + ridge·I + coe·G)⁻¹
//	proj  = inv·G
//	R     = coe1·coe·X − coe1·coe²·X·proj        (corrected embedding)
//	        [NormDiagScaled: R ← R·diag(w)]
//	tmp   = Xᵀ·R                                 [NormDiagScaled: tmp ← diag(w)·tmp]
//	prop  = propagate(A, R)                      (strategy-dependent)
//	out   = coe1·X·tmp + β·prop − γ·coe1·H0·tmp + γ·H0
//
// The shifted Gram is positive definite whenever α+β > 0 and γ < 1, so
// with a validated config the inverse only fails on numerical blowup of
// X itself; the wrapped autograd.ErrSingular propagates to the caller.
func (m *MLPNorm) normStep(x, h0 *autograd.Tensor, adj *graphstore.CSR) (*autograd.Tensor, error) {
	coe := 1 / (m.cfg.Alpha + m.cfg.Beta)
	coe1 := 1 - m.cfg.Gamma
	coe2 := 1 / coe1

	gram := autograd.MatMul(autograd.Transpose(x), x)
	inv, err := autograd.Inverse(autograd.AddScaledEye(autograd.Scale(gram, coe), coe2*coe2+m.cfg.Ridge))
	if err != nil {
		return nil, err
	}
	proj := autograd.MatMul(inv, gram)

	corrected := autograd.Sub(
		autograd.Scale(x, coe1*coe),
		autograd.Scale(autograd.MatMul(x, proj), coe1*coe*coe),
	)
	if m.variant == NormDiagScaled {
		corrected = autograd.ScaleCols(corrected, m.diagWeight)
	}

	tmp := autograd.MatMul(autograd.Transpose(x), corrected)
	if m.variant == NormDiagScaled {
		tmp = autograd.ScaleRows(tmp, m.diagWeight)
	}

	prop := m.propagate(x, corrected, adj)

	out := autograd.Add(
		autograd.Sub(
			autograd.Add(
				autograd.Scale(autograd.MatMul(x, tmp), coe1),
				autograd.Scale(prop, m.cfg.Beta),
			),
			autograd.Scale(autograd.MatMul(h0, tmp), m.cfg.Gamma*coe1),
		),
		autograd.Scale(h0, m.cfg.Gamma),
	)
	return out, nil
}

// propagate dispatches to the strategy chosen at construction, with x the
// step input (the adaptive strategy conditions on it) and r the corrected
// embedding.
func (m *MLPNorm) propagate(x, r *autograd.Tensor, adj *graphstore.CSR) *autograd.Tensor {
	switch m.strategy {
	case PropWeighted:
		return PropagateWeighted(adj, r, m.ordersWeight, m.cfg.Orders)
	case PropNodeAdaptive:
		return PropagateNodeAdaptive(adj, x, r, m.ordersM1, m.ordersM2, m.cfg.Orders)
	default:
		return PropagateUniform(adj, r, m.cfg.Orders)
	}
}
