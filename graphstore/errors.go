// SPDX-License-Identifier: MIT
// Package graphstore: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the
// graphstore package. Constructors and validators return these sentinels and
// tests check them via errors.Is. When context is essential, callers wrap with
// fmt.Errorf("ctx: %w", ErrX) at the outer boundary.

package graphstore

import "errors"

var (
	// ErrBadShape is returned when a requested shape is invalid
	// (e.g. node count <= 0, or a feature matrix with zero rows).
	ErrBadShape = errors.New("graphstore: invalid shape")

	// ErrVertexRange indicates an edge endpoint outside [0, n).
	ErrVertexRange = errors.New("graphstore: vertex id out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between the
	// bundle parts, e.g. feature rows != adjacency order, or label count
	// != node count.
	ErrDimensionMismatch = errors.New("graphstore: dimension mismatch")

	// ErrLabelRange indicates a label outside [0, Classes).
	ErrLabelRange = errors.New("graphstore: label out of range")

	// ErrEmptySplit indicates a split mask that selects no nodes.
	// Training needs all three sets populated.
	ErrEmptySplit = errors.New("graphstore: empty split")

	// ErrSplitRange indicates a split index outside [0, n).
	ErrSplitRange = errors.New("graphstore: split index out of range")

	// ErrSplitOverlap indicates a node assigned to more than one of
	// train/validation/test.
	ErrSplitOverlap = errors.New("graphstore: overlapping splits")

	// ErrNilGraph indicates a nil *Graph where a populated one is required.
	ErrNilGraph = errors.New("graphstore: graph is nil")

	// ErrNilMatrix indicates a nil matrix argument or receiver.
	ErrNilMatrix = errors.New("graphstore: nil matrix")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("graphstore: NaN or Inf encountered")

	// ErrNotRowStochastic signals a row whose sum is neither ~1 nor exactly 0
	// after normalization was requested.
	ErrNotRowStochastic = errors.New("graphstore: row sums violate row-stochastic form")
)
