// SPDX-License-Identifier: MIT
// Package dataset: synthetic planted-partition generator.
//
// Model:
//   - n nodes are assigned classes round-robin (node i gets class i mod C).
//   - Each unordered pair {i,j} with i<j receives an edge by a Bernoulli
//     trial: probability intraP when the classes match, interP otherwise.
//   - Node features are a one-hot class mean (column c mod F set to 1)
//     plus Gaussian noise of standard deviation sigma.
//   - The split is sampled by StratifiedSplit from the same rng.
//
// Contract:
//   - Option constructors validate and panic on meaningless values.
//   - Synthetic itself returns only sentinel errors: ErrNeedRand when no
//     WithSeed/WithRand was given, ErrTooFewNodes when n < classes, plus
//     whatever the split sampler reports.
//   - Features are left unnormalized; the class means are already unit
//     scale and a noisy row may sum near zero, where row normalization
//     would blow values up.
//
// Determinism:
//   - Fixed draw order for a fixed seed: all feature noise first (node
//     asc, column asc), then all edge trials (i asc, j>i asc), then the
//     split shuffles.

package dataset

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gnnlab/graphstore"
)

// Generator defaults; override per call with the With* options.
const (
	DefaultSyntheticNodes    = 60
	DefaultSyntheticClasses  = 3
	DefaultSyntheticFeatures = 8
	DefaultIntraProbability  = 0.30
	DefaultInterProbability  = 0.05
	DefaultFeatureNoise      = 0.10
	DefaultTrainFraction     = 0.60
	DefaultValFraction       = 0.20
)

// File-local constants: stable method tag and option panic messages.
const (
	methodSynthetic = "Synthetic"
	syntheticName   = "synthetic"

	panicNodes     = "dataset: WithNodes: n must be positive"
	panicClasses   = "dataset: WithClasses: c must be at least 2"
	panicFeatures  = "dataset: WithFeatures: f must be positive"
	panicEdgeProbs = "dataset: WithEdgeProbabilities: probabilities must lie in [0,1]"
	panicNoise     = "dataset: WithFeatureNoise: sigma must be non-negative"
	panicFractions = "dataset: WithSplitFractions: need train>0, val>0, train+val<1"
	panicNilRand   = "dataset: WithRand: nil source"
)

// GenOption customizes the synthetic generator by mutating its config
// before any drawing starts.
type GenOption func(*genConfig)

type genConfig struct {
	nodes     int
	classes   int
	features  int
	intraP    float64
	interP    float64
	noise     float64
	trainFrac float64
	valFrac   float64
	rng       *rand.Rand
}

func defaultGenConfig() genConfig {
	return genConfig{
		nodes:     DefaultSyntheticNodes,
		classes:   DefaultSyntheticClasses,
		features:  DefaultSyntheticFeatures,
		intraP:    DefaultIntraProbability,
		interP:    DefaultInterProbability,
		noise:     DefaultFeatureNoise,
		trainFrac: DefaultTrainFraction,
		valFrac:   DefaultValFraction,
	}
}

// WithNodes sets the node count. Panics when n is not positive.
func WithNodes(n int) GenOption {
	if n <= 0 {
		panic(panicNodes)
	}
	return func(c *genConfig) { c.nodes = n }
}

// WithClasses sets the number of planted classes. Panics when c < 2.
func WithClasses(classes int) GenOption {
	if classes < 2 {
		panic(panicClasses)
	}
	return func(c *genConfig) { c.classes = classes }
}

// WithFeatures sets the feature dimensionality. Panics when f is not
// positive.
func WithFeatures(f int) GenOption {
	if f <= 0 {
		panic(panicFeatures)
	}
	return func(c *genConfig) { c.features = f }
}

// WithEdgeProbabilities sets the within-class and cross-class edge
// probabilities. Panics when either leaves [0,1].
func WithEdgeProbabilities(intra, inter float64) GenOption {
	if intra < 0 || intra > 1 || inter < 0 || inter > 1 {
		panic(panicEdgeProbs)
	}
	return func(c *genConfig) { c.intraP, c.interP = intra, inter }
}

// WithFeatureNoise sets the feature noise standard deviation. Panics on
// a negative sigma; zero turns noise off.
func WithFeatureNoise(sigma float64) GenOption {
	if sigma < 0 {
		panic(panicNoise)
	}
	return func(c *genConfig) { c.noise = sigma }
}

// WithSplitFractions sets the train and validation fractions handed to
// StratifiedSplit. Panics when the pair cannot yield three sets.
func WithSplitFractions(train, val float64) GenOption {
	if train <= 0 || val <= 0 || train+val >= 1 {
		panic(panicFractions)
	}
	return func(c *genConfig) { c.trainFrac, c.valFrac = train, val }
}

// WithSeed seeds a fresh deterministic source for the generation run.
func WithSeed(seed int64) GenOption {
	return func(c *genConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand supplies an explicit random source. Panics on nil; prefer
// WithSeed for reproducible fixtures.
func WithRand(r *rand.Rand) GenOption {
	if r == nil {
		panic(panicNilRand)
	}
	return func(c *genConfig) { c.rng = r }
}

// Synthetic samples a planted-partition benchmark graph: community
// structure in the adjacency, class-aligned features, stratified split.
// Intended for tests, examples and benchmarks where the real archives
// are unavailable or too large.
func Synthetic(opts ...GenOption) (*graphstore.Graph, error) {
	cfg := defaultGenConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		return nil, fmt.Errorf("%s: %w", methodSynthetic, ErrNeedRand)
	}
	if cfg.nodes < cfg.classes {
		return nil, fmt.Errorf("%s: %d nodes for %d classes: %w",
			methodSynthetic, cfg.nodes, cfg.classes, ErrTooFewNodes)
	}

	labels := make([]int, cfg.nodes)
	for i := range labels {
		labels[i] = i % cfg.classes
	}

	features := mat.NewDense(cfg.nodes, cfg.features, nil)
	for i := 0; i < cfg.nodes; i++ {
		mean := labels[i] % cfg.features
		for j := 0; j < cfg.features; j++ {
			v := cfg.noise * cfg.rng.NormFloat64()
			if j == mean {
				v++
			}
			features.Set(i, j, v)
		}
	}

	var edges [][2]int
	for i := 0; i < cfg.nodes; i++ {
		for j := i + 1; j < cfg.nodes; j++ {
			p := cfg.interP
			if labels[i] == labels[j] {
				p = cfg.intraP
			}
			if cfg.rng.Float64() < p {
				edges = append(edges, [2]int{i, j})
			}
		}
	}
	adj, err := graphstore.NewAdjacency(cfg.nodes, edges)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodSynthetic, err)
	}

	sp, err := StratifiedSplit(labels, cfg.trainFrac, cfg.valFrac, cfg.rng)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodSynthetic, err)
	}

	g, err := graphstore.NewGraph(syntheticName, adj, features, labels, sp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodSynthetic, err)
	}
	return g, nil
}
