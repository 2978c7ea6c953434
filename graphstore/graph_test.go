package graphstore_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gnnlab/graphstore"
)

// cycleGraph4 builds the 4-cycle with default preprocessing, used as the
// adjacency of the bundle fixtures below.
func cycleGraph4(t *testing.T) *graphstore.CSR {
	t.Helper()
	a, err := graphstore.NewAdjacency(4, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}})
	require.NoError(t, err)
	return a
}

// TestSplit_Validate covers the accept path and each rejection sentinel.
func TestSplit_Validate(t *testing.T) {
	ok := graphstore.Split{Train: []int{0, 1}, Val: []int{2}, Test: []int{3}}
	assert.NoError(t, ok.Validate(4), "disjoint in-range split must pass")

	empty := graphstore.Split{Train: []int{0}, Val: nil, Test: []int{3}}
	assert.ErrorIs(t, empty.Validate(4), graphstore.ErrEmptySplit, "empty val set")

	ranged := graphstore.Split{Train: []int{0}, Val: []int{4}, Test: []int{3}}
	assert.ErrorIs(t, ranged.Validate(4), graphstore.ErrSplitRange, "index 4 with n=4")

	negative := graphstore.Split{Train: []int{-1}, Val: []int{1}, Test: []int{2}}
	assert.ErrorIs(t, negative.Validate(4), graphstore.ErrSplitRange, "negative index")

	overlap := graphstore.Split{Train: []int{0, 1}, Val: []int{1}, Test: []int{3}}
	assert.ErrorIs(t, overlap.Validate(4), graphstore.ErrSplitOverlap, "node 1 in train and val")
}

// TestNewGraph_Valid assembles a complete bundle and checks the derived
// fields.
func TestNewGraph_Valid(t *testing.T) {
	adj := cycleGraph4(t)
	features := mat.NewDense(4, 2, []float64{
		1, 0,
		0, 1,
		1, 0,
		0, 1,
	})
	labels := []int{0, 1, 0, 1}
	split := graphstore.Split{Train: []int{0, 1}, Val: []int{2}, Test: []int{3}}

	g, err := graphstore.NewGraph("cycle4", adj, features, labels, split)
	require.NoError(t, err)

	assert.Equal(t, "cycle4", g.Name)
	assert.Equal(t, 4, g.NumNodes())
	assert.Equal(t, 2, g.NumFeatures())
	assert.Equal(t, 2, g.Classes, "labels {0,1} give 2 classes")

	trn, val, tst := g.Split.Sizes()
	assert.Equal(t, [3]int{2, 1, 1}, [3]int{trn, val, tst})
}

// TestNewGraph_DimensionMismatch covers feature-row and label-count
// disagreements.
func TestNewGraph_DimensionMismatch(t *testing.T) {
	adj := cycleGraph4(t)
	split := graphstore.Split{Train: []int{0}, Val: []int{1}, Test: []int{2}}

	shortFeatures := mat.NewDense(3, 2, nil)
	_, err := graphstore.NewGraph("bad", adj, shortFeatures, []int{0, 0, 0, 0}, split)
	assert.ErrorIs(t, err, graphstore.ErrDimensionMismatch, "3 feature rows vs 4 nodes")

	features := mat.NewDense(4, 2, nil)
	_, err = graphstore.NewGraph("bad", adj, features, []int{0, 0, 0}, split)
	assert.ErrorIs(t, err, graphstore.ErrDimensionMismatch, "3 labels vs 4 nodes")
}

// TestNewGraph_NegativeLabel verifies the label-range sentinel.
func TestNewGraph_NegativeLabel(t *testing.T) {
	adj := cycleGraph4(t)
	features := mat.NewDense(4, 2, nil)
	split := graphstore.Split{Train: []int{0}, Val: []int{1}, Test: []int{2}}

	_, err := graphstore.NewGraph("bad", adj, features, []int{0, -1, 0, 1}, split)
	assert.ErrorIs(t, err, graphstore.ErrLabelRange)
}

// TestNewGraph_NaNFeatures verifies the finite-value guard.
func TestNewGraph_NaNFeatures(t *testing.T) {
	adj := cycleGraph4(t)
	features := mat.NewDense(4, 2, nil)
	features.Set(2, 1, math.NaN())
	split := graphstore.Split{Train: []int{0}, Val: []int{1}, Test: []int{2}}

	_, err := graphstore.NewGraph("bad", adj, features, []int{0, 0, 1, 1}, split)
	assert.ErrorIs(t, err, graphstore.ErrNaNInf)
}

// TestDecodeLabels verifies row-wise argmax with first-index tie breaking.
func TestDecodeLabels(t *testing.T) {
	y := mat.NewDense(3, 2, []float64{
		0.1, 0.9,
		1.0, 0.0,
		0.5, 0.5,
	})
	assert.Equal(t, []int{1, 0, 0}, graphstore.DecodeLabels(y), "ties resolve to the lowest index")
}

// TestLabelsFromInt64 verifies the loader-type conversion.
func TestLabelsFromInt64(t *testing.T) {
	assert.Equal(t, []int{2, 0, 1}, graphstore.LabelsFromInt64([]int64{2, 0, 1}))
}
