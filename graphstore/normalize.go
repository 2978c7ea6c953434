// SPDX-License-Identifier: MIT

package graphstore

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// RowNormalizeInPlace divides each row of x by its sum, the same rule the
// adjacency path uses: rows summing to zero are left untouched, so an
// all-zero feature row maps to itself rather than to NaN.
//
// Panics on a nil matrix (programmer error); the loaders own x and call
// this exactly once.
func RowNormalizeInPlace(x *mat.Dense) {
	if x == nil {
		panic(panicNilDense)
	}
	r, c := x.Dims()
	raw := x.RawMatrix()
	for i := 0; i < r; i++ {
		row := raw.Data[i*raw.Stride : i*raw.Stride+c]
		var s float64
		for _, v := range row {
			s += v
		}
		if s == 0 {
			continue
		}
		inv := 1 / s
		for k := range row {
			row[k] *= inv
		}
	}
}

// ValidateFinite reports ErrNaNInf (wrapped with the first offending
// position) when x contains NaN or ±Inf.
func ValidateFinite(x *mat.Dense) error {
	if x == nil {
		return fmt.Errorf("ValidateFinite: %w", ErrNilMatrix)
	}
	r, c := x.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := x.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("ValidateFinite: entry (%d,%d)=%v: %w", i, j, v, ErrNaNInf)
			}
		}
	}
	return nil
}
