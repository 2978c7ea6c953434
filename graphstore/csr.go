// SPDX-License-Identifier: MIT

// Package graphstore: CSR adjacency construction and sparse kernels.
//
// Purpose:
//   - Build the adjacency operator the training pipeline consumes:
//     coalesced, optionally mirrored, self-looped and row-normalized.
//   - Provide the two kernels the models need: sparse × dense multiply
//     and transpose (for reverse-mode gradients through propagation).
//
// Determinism & Performance:
//   - Construction sorts column indices per row; iteration order is stable.
//   - MulDense runs in O(nnz · F) for an n×n operator against an n×F dense
//     right-hand side, touching rows sequentially.
//
// AI-Hints:
//   - Use NewAdjacency for raw edge lists; it owns the full A ← rownorm(A+I)
//     preprocessing so loaders never hand-roll it.
//   - Transpose() is cached; the backward pass calls it every step.
//   - Dense() materializes n×n storage and is meant for the small-graph
//     regime only (model inputs, tests).

package graphstore

import (
	"fmt"
	"sort"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// Internal panic messages for kernel misuse (programmer errors).
const (
	panicNilReceiver = "graphstore: nil *CSR receiver"
	panicNilDense    = "graphstore: nil dense operand"
	panicMulShape    = "graphstore: CSR.MulDense: dimension mismatch"
	panicAtRange     = "graphstore: CSR.At: index out of range"
)

// CSR is a compressed sparse row matrix over float64.
//
// The zero value is not usable; build instances through NewAdjacency or
// FromDense. Values are stored row by row with column indices sorted
// ascending inside each row.
type CSR struct {
	rows, cols int
	rowPtr     []int
	colIdx     []int
	val        []float64

	eps float64

	// Lazily built derived forms. RowNormalize drops them, so callers who
	// interleave mutation with reads always observe consistent results.
	mu    sync.Mutex
	tr    *CSR
	dense *mat.Dense
}

// NewAdjacency builds the adjacency operator for n nodes from an edge list.
//
// Preprocessing, in order:
//  1. coalesce duplicate pairs to a single unit entry;
//  2. mirror [u,v] into [v,u] unless WithDirected(true);
//  3. add 1.0 to every diagonal entry unless WithSelfLoops(false);
//  4. divide each row by its sum unless WithRowNormalize(false), with rows
//     summing to zero left untouched.
//
// Errors: ErrBadShape when n <= 0, ErrVertexRange when an endpoint falls
// outside [0, n). Both are wrapped with positional context.
func NewAdjacency(n int, edges [][2]int, opts ...Option) (*CSR, error) {
	if n <= 0 {
		return nil, fmt.Errorf("NewAdjacency: n=%d: %w", n, ErrBadShape)
	}
	o := gatherOptions(opts...)

	// Per-row coalescing maps: presence semantics, so a pair listed twice
	// still contributes a single unit entry.
	rows := make([]map[int]float64, n)
	put := func(u, v int) {
		if rows[u] == nil {
			rows[u] = make(map[int]float64)
		}
		rows[u][v] = 1
	}
	for ei, e := range edges {
		u, v := e[0], e[1]
		if u < 0 || u >= n || v < 0 || v >= n {
			return nil, fmt.Errorf("NewAdjacency: edge %d=(%d,%d): %w", ei, u, v, ErrVertexRange)
		}
		put(u, v)
		if !o.directed && u != v {
			put(v, u)
		}
	}
	if o.selfLoops {
		// A+I: an explicit self-edge in the input ends up with value 2.
		for i := 0; i < n; i++ {
			if rows[i] == nil {
				rows[i] = make(map[int]float64)
			}
			rows[i][i]++
		}
	}

	a := &CSR{rows: n, cols: n, eps: o.epsilon}
	a.rowPtr = make([]int, n+1)
	nnz := 0
	for i := 0; i < n; i++ {
		nnz += len(rows[i])
		a.rowPtr[i+1] = nnz
	}
	a.colIdx = make([]int, 0, nnz)
	a.val = make([]float64, 0, nnz)
	cols := make([]int, 0, 64)
	for i := 0; i < n; i++ {
		cols = cols[:0]
		for j := range rows[i] {
			cols = append(cols, j)
		}
		sort.Ints(cols)
		for _, j := range cols {
			a.colIdx = append(a.colIdx, j)
			a.val = append(a.val, rows[i][j])
		}
	}

	if o.rowNormalize {
		a.RowNormalize()
	}
	return a, nil
}

// FromDense captures the exact nonzero structure of m as a CSR.
// No mirroring, self-loop or normalization step is applied.
func FromDense(m *mat.Dense) (*CSR, error) {
	if m == nil {
		return nil, fmt.Errorf("FromDense: %w", ErrNilMatrix)
	}
	r, c := m.Dims()
	a := &CSR{rows: r, cols: c, eps: DefaultEpsilon}
	a.rowPtr = make([]int, r+1)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := m.At(i, j); v != 0 {
				a.colIdx = append(a.colIdx, j)
				a.val = append(a.val, v)
			}
		}
		a.rowPtr[i+1] = len(a.colIdx)
	}
	return a, nil
}

// Dims returns the operator shape (rows, cols).
func (a *CSR) Dims() (r, c int) { return a.rows, a.cols }

// NNZ returns the number of stored entries.
func (a *CSR) NNZ() int { return len(a.colIdx) }

// At returns the (i,j) entry, zero when no entry is stored.
// Panics when the indices fall outside the shape (gonum convention).
func (a *CSR) At(i, j int) float64 {
	if i < 0 || i >= a.rows || j < 0 || j >= a.cols {
		panic(panicAtRange)
	}
	lo, hi := a.rowPtr[i], a.rowPtr[i+1]
	row := a.colIdx[lo:hi]
	k := sort.SearchInts(row, j)
	if k < len(row) && row[k] == j {
		return a.val[lo+k]
	}
	return 0
}

// RowNonzeros returns the stored column indices and values of row i as
// views into the internal storage. Callers must not modify them.
func (a *CSR) RowNonzeros(i int) (cols []int, vals []float64) {
	lo, hi := a.rowPtr[i], a.rowPtr[i+1]
	return a.colIdx[lo:hi], a.val[lo:hi]
}

// RowSums returns the per-row sums of stored values.
func (a *CSR) RowSums() []float64 {
	s := make([]float64, a.rows)
	for i := 0; i < a.rows; i++ {
		for p := a.rowPtr[i]; p < a.rowPtr[i+1]; p++ {
			s[i] += a.val[p]
		}
	}
	return s
}

// RowNormalize divides every row by its sum, in place. Rows summing to
// zero are left untouched (the zero-row rule shared with features).
// Cached derived forms are invalidated.
func (a *CSR) RowNormalize() {
	a.mu.Lock()
	a.tr, a.dense = nil, nil
	a.mu.Unlock()
	for i := 0; i < a.rows; i++ {
		var s float64
		for p := a.rowPtr[i]; p < a.rowPtr[i+1]; p++ {
			s += a.val[p]
		}
		if s == 0 {
			continue
		}
		inv := 1 / s
		for p := a.rowPtr[i]; p < a.rowPtr[i+1]; p++ {
			a.val[p] *= inv
		}
	}
}

// ValidateRowStochastic checks that every row sums to 1 (or exactly 0 for
// isolated structure) within the configured epsilon. Violations return a
// wrapped ErrNotRowStochastic with the offending row.
func (a *CSR) ValidateRowStochastic() error {
	for i, s := range a.RowSums() {
		if s == 0 {
			continue
		}
		if d := s - 1; d > a.eps || d < -a.eps {
			return fmt.Errorf("ValidateRowStochastic: row %d sums to %v: %w", i, s, ErrNotRowStochastic)
		}
	}
	return nil
}

// MulDense computes A·X for a dense X and returns a freshly allocated
// result. X must have a.cols rows; the kernel panics on mismatch, matching
// the gonum/mat convention for shape misuse.
func (a *CSR) MulDense(x *mat.Dense) *mat.Dense {
	if a == nil {
		panic(panicNilReceiver)
	}
	if x == nil {
		panic(panicNilDense)
	}
	xr, xc := x.Dims()
	if xr != a.cols {
		panic(panicMulShape)
	}
	out := mat.NewDense(a.rows, xc, nil)
	xm := x.RawMatrix()
	om := out.RawMatrix()
	for i := 0; i < a.rows; i++ {
		oi := om.Data[i*om.Stride : i*om.Stride+xc]
		for p := a.rowPtr[i]; p < a.rowPtr[i+1]; p++ {
			v := a.val[p]
			xj := xm.Data[a.colIdx[p]*xm.Stride : a.colIdx[p]*xm.Stride+xc]
			for k, xv := range xj {
				oi[k] += v * xv
			}
		}
	}
	return out
}

// Transpose returns Aᵀ as a CSR. The result is built once and cached;
// callers must treat it as read-only.
func (a *CSR) Transpose() *CSR {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.tr == nil {
		a.tr = a.transpose()
	}
	return a.tr
}

func (a *CSR) transpose() *CSR {
	t := &CSR{rows: a.cols, cols: a.rows, eps: a.eps}
	t.rowPtr = make([]int, t.rows+1)
	for _, j := range a.colIdx {
		t.rowPtr[j+1]++
	}
	for i := 0; i < t.rows; i++ {
		t.rowPtr[i+1] += t.rowPtr[i]
	}
	t.colIdx = make([]int, len(a.colIdx))
	t.val = make([]float64, len(a.val))
	next := make([]int, t.rows)
	copy(next, t.rowPtr[:t.rows])
	for i := 0; i < a.rows; i++ {
		for p := a.rowPtr[i]; p < a.rowPtr[i+1]; p++ {
			j := a.colIdx[p]
			q := next[j]
			t.colIdx[q] = i
			t.val[q] = a.val[p]
			next[j]++
		}
	}
	return t
}

// Dense materializes the operator as an n×n gonum matrix. The result is
// built once and cached; callers must treat it as read-only. Intended for
// the small-graph regime (model inputs and tests).
func (a *CSR) Dense() *mat.Dense {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.dense == nil {
		d := mat.NewDense(a.rows, a.cols, nil)
		for i := 0; i < a.rows; i++ {
			for p := a.rowPtr[i]; p < a.rowPtr[i+1]; p++ {
				d.Set(i, a.colIdx[p], a.val[p])
			}
		}
		a.dense = d
	}
	return a.dense
}
