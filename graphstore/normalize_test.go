package graphstore_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gnnlab/graphstore"
)

// TestRowNormalizeInPlace verifies per-row scaling and the zero-row rule.
func TestRowNormalizeInPlace(t *testing.T) {
	x := mat.NewDense(3, 2, []float64{
		2, 2,
		0, 0,
		1, 3,
	})

	graphstore.RowNormalizeInPlace(x)

	assert.InDelta(t, 0.5, x.At(0, 0), 1e-12)
	assert.InDelta(t, 0.5, x.At(0, 1), 1e-12)
	assert.Equal(t, 0.0, x.At(1, 0), "zero row stays zero")
	assert.Equal(t, 0.0, x.At(1, 1))
	assert.InDelta(t, 0.25, x.At(2, 0), 1e-12)
	assert.InDelta(t, 0.75, x.At(2, 1), 1e-12)
}

// TestValidateFinite covers the accept path, NaN rejection and nil input.
func TestValidateFinite(t *testing.T) {
	ok := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	assert.NoError(t, graphstore.ValidateFinite(ok))

	bad := mat.NewDense(2, 2, nil)
	bad.Set(1, 0, math.Inf(1))
	assert.ErrorIs(t, graphstore.ValidateFinite(bad), graphstore.ErrNaNInf)

	assert.ErrorIs(t, graphstore.ValidateFinite(nil), graphstore.ErrNilMatrix)
}
