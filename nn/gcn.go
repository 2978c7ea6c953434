package nn

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/gnnlab/autograd"
	"github.com/katalvlaran/gnnlab/graphstore"
)

// GCNConfig configures the two-layer graph convolution baseline.
type GCNConfig struct {
	InFeatures int
	Hidden     int
	Classes    int

	// Dropout rate in [0,1), applied between the two convolutions when
	// training.
	Dropout float64

	// Seed seeds initialization and dropout when Rand is nil; zero
	// means DefaultSeed.
	Seed int64
	Rand *rand.Rand
}

func (cfg GCNConfig) validate() error {
	if cfg.InFeatures <= 0 || cfg.Hidden <= 0 || cfg.Classes <= 0 {
		return fmt.Errorf("dimensions features=%d hidden=%d classes=%d must all be positive: %w",
			cfg.InFeatures, cfg.Hidden, cfg.Classes, ErrConfig)
	}
	if cfg.Dropout < 0 || cfg.Dropout >= 1 {
		return fmt.Errorf("dropout %v outside [0,1): %w", cfg.Dropout, ErrConfig)
	}
	return nil
}

// GCN is the plain two-layer baseline: ReLU(A·X·W1+b1), dropout, then
// A·H·W2+b2 into a row-wise log-softmax. It accepts any graph whose
// feature width and class count match the construction.
type GCN struct {
	cfg GCNConfig
	gc1 *GraphConvolution
	gc2 *GraphConvolution
	rnd *rand.Rand
}

// NewGCN validates cfg and initializes both convolutions from the
// config's randomness source.
func NewGCN(cfg GCNConfig) (*GCN, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	rnd := initRand(cfg.Rand, cfg.Seed)
	return &GCN{
		cfg: cfg,
		gc1: NewGraphConvolution("gc1", cfg.InFeatures, cfg.Hidden, true, rnd),
		gc2: NewGraphConvolution("gc2", cfg.Hidden, cfg.Classes, true, rnd),
		rnd: rnd,
	}, nil
}

// Forward returns N×Classes row-wise log-probabilities.
func (m *GCN) Forward(g *graphstore.Graph, training bool) (*autograd.Tensor, error) {
	if f := g.NumFeatures(); f != m.cfg.InFeatures {
		return nil, fmt.Errorf("graph has %d features, model built for %d: %w", f, m.cfg.InFeatures, ErrGraphMismatch)
	}
	if g.Classes != m.cfg.Classes {
		return nil, fmt.Errorf("graph has %d classes, model built for %d: %w", g.Classes, m.cfg.Classes, ErrGraphMismatch)
	}

	h := autograd.ReLU(m.gc1.Apply(g.Adj, autograd.NewConst(g.Features)))
	h = autograd.Dropout(h, m.cfg.Dropout, m.rnd, training)
	return autograd.LogSoftmax(m.gc2.Apply(g.Adj, h)), nil
}

// Params returns the four parameters in stable order.
func (m *GCN) Params() []*autograd.Tensor {
	return append(m.gc1.Params(), m.gc2.Params()...)
}

// Snapshot deep-copies every parameter.
func (m *GCN) Snapshot() Snapshot { return snapshotParams(m.Params()) }

// Restore copies snapshot values back into the parameters.
func (m *GCN) Restore(snap Snapshot) { restoreParams(m.Params(), snap) }
