// SPDX-License-Identifier: MIT

package nn

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gnnlab/autograd"
	"github.com/katalvlaran/gnnlab/graphstore"
)

// MLPNormConfig collects every MLPNorm hyperparameter. Zero values are
// not defaults: NewMLPNorm validates the whole struct and rejects
// out-of-range fields with a wrapped ErrConfig.
type MLPNormConfig struct {
	// Graph dimensions the model is built for. Forward rejects graphs
	// that disagree with ErrGraphMismatch. Nodes also sizes the third
	// affine stage, which reads rows of the dense adjacency.
	Nodes      int
	InFeatures int
	Classes    int

	// Hidden is the width of the mixed input stage.
	Hidden int

	// Dropout rate in [0,1), applied to the raw features and to the
	// mixed hidden state, active only when Forward runs with
	// training=true.
	Dropout float64

	// Alpha, Beta, Gamma weight the correction algebra (see
	// normstep.go): Alpha+Beta must be positive and Gamma < 1 so the
	// shifted Gram stays invertible. Delta mixes the feature branch
	// against the adjacency branch in the input stage.
	Alpha float64
	Beta  float64
	Gamma float64
	Delta float64

	// NormLayers is the number of normalization iterations, at least 1.
	NormLayers int

	// Orders is the highest adjacency power the propagation reaches,
	// at least 1.
	Orders int

	// NormFuncID (1..2) and OrdersFuncID (1..3) select the normalization
	// variant and propagation strategy by their command-line ids; see
	// NormVariantFromID and PropStrategyFromID.
	NormFuncID   int
	OrdersFuncID int

	// Ridge adds an extra non-negative diagonal shift to the C×C system
	// on top of the coe2² term. Zero keeps the plain shift.
	Ridge float64

	// Seed seeds initialization and dropout when Rand is nil; zero
	// means DefaultSeed. An injected Rand wins over Seed.
	Seed int64
	Rand *rand.Rand
}

func (cfg MLPNormConfig) validate() error {
	if cfg.Nodes <= 0 || cfg.InFeatures <= 0 || cfg.Hidden <= 0 || cfg.Classes <= 0 {
		return fmt.Errorf("dimensions nodes=%d features=%d hidden=%d classes=%d must all be positive: %w",
			cfg.Nodes, cfg.InFeatures, cfg.Hidden, cfg.Classes, ErrConfig)
	}
	if cfg.Dropout < 0 || cfg.Dropout >= 1 {
		return fmt.Errorf("dropout %v outside [0,1): %w", cfg.Dropout, ErrConfig)
	}
	if cfg.Alpha+cfg.Beta <= 0 {
		return fmt.Errorf("alpha+beta = %v must be positive: %w", cfg.Alpha+cfg.Beta, ErrConfig)
	}
	if cfg.Gamma >= 1 {
		return fmt.Errorf("gamma %v must stay below 1: %w", cfg.Gamma, ErrConfig)
	}
	if cfg.NormLayers < 1 {
		return fmt.Errorf("norm layers %d must be at least 1: %w", cfg.NormLayers, ErrConfig)
	}
	if cfg.Orders < 1 {
		return fmt.Errorf("orders %d must be at least 1: %w", cfg.Orders, ErrConfig)
	}
	if cfg.Ridge < 0 {
		return fmt.Errorf("ridge %v must be non-negative: %w", cfg.Ridge, ErrConfig)
	}
	return nil
}

// MLPNorm is an MLP over node features and adjacency rows whose output
// embedding is refined by NormLayers closed-form normalization steps.
// See the package doc for the pipeline and normstep.go for one step.
type MLPNorm struct {
	cfg      MLPNormConfig
	variant  NormVariant
	strategy PropStrategy

	fc1 *Linear // features → hidden
	fc2 *Linear // hidden → classes
	fc3 *Linear // dense adjacency rows → hidden

	ordersWeight *autograd.Tensor // Orders×1, constant 1/Orders
	ordersM1     *autograd.Tensor // Classes×Orders, kaiming normal
	ordersM2     *autograd.Tensor // Orders×Orders, kaiming normal
	diagWeight   *autograd.Tensor // Classes×1, constant 1/Classes

	rnd *rand.Rand
}

// NewMLPNorm validates cfg, resolves the variant and strategy ids, and
// initializes every parameter from the config's randomness source. With
// the same seed the parameter draws are reproducible call to call: the
// three affine stages draw first (weight then bias each, fan-in uniform
// bounds), then the two adaptive propagation matrices (kaiming normal).
// The order weights and diagonal weights are constant-initialized and
// consume no draws.
func NewMLPNorm(cfg MLPNormConfig) (*MLPNorm, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	variant, err := NormVariantFromID(cfg.NormFuncID)
	if err != nil {
		return nil, err
	}
	strategy, err := PropStrategyFromID(cfg.OrdersFuncID)
	if err != nil {
		return nil, err
	}

	rnd := initRand(cfg.Rand, cfg.Seed)
	m := &MLPNorm{
		cfg:      cfg,
		variant:  variant,
		strategy: strategy,
		fc1:      NewLinear("fc1", cfg.InFeatures, cfg.Hidden, rnd),
		fc2:      NewLinear("fc2", cfg.Hidden, cfg.Classes, rnd),
		fc3:      NewLinear("fc3", cfg.Nodes, cfg.Hidden, rnd),
		rnd:      rnd,
	}

	ow := mat.NewDense(cfg.Orders, 1, nil)
	constInit(ow, 1/float64(cfg.Orders))
	m.ordersWeight = autograd.NewParam("orders_weight", ow)

	m1 := mat.NewDense(cfg.Classes, cfg.Orders, nil)
	kaimingNormalInit(m1, rnd)
	m.ordersM1 = autograd.NewParam("orders_weight_matrix", m1)

	m2 := mat.NewDense(cfg.Orders, cfg.Orders, nil)
	kaimingNormalInit(m2, rnd)
	m.ordersM2 = autograd.NewParam("orders_weight_matrix2", m2)

	dw := mat.NewDense(cfg.Classes, 1, nil)
	constInit(dw, 1/float64(cfg.Classes))
	m.diagWeight = autograd.NewParam("diag_weight", dw)

	return m, nil
}

// Variant reports the resolved normalization variant.
func (m *MLPNorm) Variant() NormVariant { return m.variant }

// Strategy reports the resolved propagation strategy.
func (m *MLPNorm) Strategy() PropStrategy { return m.strategy }

// Forward runs the full pipeline on g and returns N×Classes row-wise
// log-probabilities. The adjacency is materialized densely once per call
// for the fc3 branch (N×N memory); the normalization steps themselves
// stay sparse. Errors are ErrGraphMismatch for dimension disagreement
// and a wrapped autograd.ErrSingular when a normalization step's C×C
// system breaks down numerically.
func (m *MLPNorm) Forward(g *graphstore.Graph, training bool) (*autograd.Tensor, error) {
	if n := g.NumNodes(); n != m.cfg.Nodes {
		return nil, fmt.Errorf("graph has %d nodes, model built for %d: %w", n, m.cfg.Nodes, ErrGraphMismatch)
	}
	if f := g.NumFeatures(); f != m.cfg.InFeatures {
		return nil, fmt.Errorf("graph has %d features, model built for %d: %w", f, m.cfg.InFeatures, ErrGraphMismatch)
	}
	if g.Classes != m.cfg.Classes {
		return nil, fmt.Errorf("graph has %d classes, model built for %d: %w", g.Classes, m.cfg.Classes, ErrGraphMismatch)
	}

	features := autograd.NewConst(g.Features)
	adjRows := autograd.NewConst(g.Adj.Dense())

	hX := m.fc1.Apply(autograd.Dropout(features, m.cfg.Dropout, m.rnd, training))
	hA := m.fc3.Apply(adjRows)
	h := autograd.ReLU(autograd.Add(
		autograd.Scale(hX, m.cfg.Delta),
		autograd.Scale(hA, 1-m.cfg.Delta),
	))
	h = autograd.Dropout(h, m.cfg.Dropout, m.rnd, training)

	x := m.fc2.Apply(h)
	h0 := x
	var err error
	for i := 0; i < m.cfg.NormLayers; i++ {
		if x, err = m.normStep(x, h0, g.Adj); err != nil {
			return nil, fmt.Errorf("norm layer %d: %w", i, err)
		}
	}
	return autograd.LogSoftmax(x), nil
}

// Params returns all ten parameters in a stable order: the affine stages
// first (weight before bias), then the propagation and diagonal weights.
func (m *MLPNorm) Params() []*autograd.Tensor {
	params := make([]*autograd.Tensor, 0, 10)
	params = append(params, m.fc1.Params()...)
	params = append(params, m.fc2.Params()...)
	params = append(params, m.fc3.Params()...)
	return append(params, m.ordersWeight, m.ordersM1, m.ordersM2, m.diagWeight)
}

// Snapshot deep-copies every parameter.
func (m *MLPNorm) Snapshot() Snapshot { return snapshotParams(m.Params()) }

// Restore copies snapshot values back into the parameters.
func (m *MLPNorm) Restore(snap Snapshot) { restoreParams(m.Params(), snap) }
