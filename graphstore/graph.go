// SPDX-License-Identifier: MIT

package graphstore

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Split holds the train/validation/test node index sets of one evaluation
// run. Indices refer to adjacency row order.
type Split struct {
	Train []int
	Val   []int
	Test  []int
}

// Validate checks the split against a graph of n nodes: every set must be
// non-empty, every index must fall in [0, n) and a node may appear at most
// once across all three sets.
func (s Split) Validate(n int) error {
	sets := []struct {
		name string
		idx  []int
	}{
		{"train", s.Train},
		{"val", s.Val},
		{"test", s.Test},
	}
	seen := make([]bool, n)
	for _, set := range sets {
		if len(set.idx) == 0 {
			return fmt.Errorf("Split.Validate: %s: %w", set.name, ErrEmptySplit)
		}
		for _, i := range set.idx {
			if i < 0 || i >= n {
				return fmt.Errorf("Split.Validate: %s index %d with n=%d: %w", set.name, i, n, ErrSplitRange)
			}
			if seen[i] {
				return fmt.Errorf("Split.Validate: node %d assigned twice: %w", i, ErrSplitOverlap)
			}
			seen[i] = true
		}
	}
	return nil
}

// Sizes returns (len(Train), len(Val), len(Test)).
func (s Split) Sizes() (train, val, test int) {
	return len(s.Train), len(s.Val), len(s.Test)
}

// Graph is the validated bundle every model and the training loop consume:
// a square (usually row-normalized) adjacency operator, a dense feature
// matrix aligned with it, integer labels in [0, Classes) and the split.
type Graph struct {
	Name     string
	Adj      *CSR
	Features *mat.Dense
	Labels   []int
	Classes  int
	Split    Split
}

// NewGraph validates the parts and assembles the bundle. Classes is derived
// as max(label)+1.
//
// Errors (all wrapped sentinels): ErrNilMatrix for missing parts,
// ErrDimensionMismatch when shapes disagree, ErrLabelRange for negative
// labels, ErrNaNInf for non-finite features, plus everything
// Split.Validate reports.
func NewGraph(name string, adj *CSR, features *mat.Dense, labels []int, split Split) (*Graph, error) {
	if adj == nil {
		return nil, fmt.Errorf("NewGraph: adjacency: %w", ErrNilMatrix)
	}
	if features == nil {
		return nil, fmt.Errorf("NewGraph: features: %w", ErrNilMatrix)
	}
	ar, ac := adj.Dims()
	if ar != ac {
		return nil, fmt.Errorf("NewGraph: adjacency %dx%d not square: %w", ar, ac, ErrDimensionMismatch)
	}
	fr, _ := features.Dims()
	if fr != ar {
		return nil, fmt.Errorf("NewGraph: features rows %d vs %d nodes: %w", fr, ar, ErrDimensionMismatch)
	}
	if len(labels) != ar {
		return nil, fmt.Errorf("NewGraph: %d labels vs %d nodes: %w", len(labels), ar, ErrDimensionMismatch)
	}
	classes := 0
	for i, y := range labels {
		if y < 0 {
			return nil, fmt.Errorf("NewGraph: label[%d]=%d: %w", i, y, ErrLabelRange)
		}
		if y+1 > classes {
			classes = y + 1
		}
	}
	if err := ValidateFinite(features); err != nil {
		return nil, fmt.Errorf("NewGraph: %w", err)
	}
	if err := split.Validate(ar); err != nil {
		return nil, fmt.Errorf("NewGraph: %w", err)
	}
	return &Graph{
		Name:     name,
		Adj:      adj,
		Features: features,
		Labels:   labels,
		Classes:  classes,
		Split:    split,
	}, nil
}

// NumNodes returns the adjacency order.
func (g *Graph) NumNodes() int { r, _ := g.Adj.Dims(); return r }

// NumFeatures returns the feature dimensionality.
func (g *Graph) NumFeatures() int { _, c := g.Features.Dims(); return c }

// DecodeLabels collapses a one-hot (or score) matrix to integer labels by
// row-wise argmax. Ties resolve to the lowest column index.
func DecodeLabels(y *mat.Dense) []int {
	r, c := y.Dims()
	out := make([]int, r)
	for i := 0; i < r; i++ {
		best, arg := y.At(i, 0), 0
		for j := 1; j < c; j++ {
			if v := y.At(i, j); v > best {
				best, arg = v, j
			}
		}
		out[i] = arg
	}
	return out
}

// LabelsFromInt64 converts loader-typed labels to the bundle's []int.
func LabelsFromInt64(v []int64) []int {
	out := make([]int, len(v))
	for i, y := range v {
		out[i] = int(y)
	}
	return out
}
