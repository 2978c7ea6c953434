// SPDX-License-Identifier: MIT
// Package dataset: sentinel error set.
// Loaders return these sentinels wrapped with file/line context via
// fmt.Errorf("...: %w", ErrX); callers branch with errors.Is.

package dataset

import "errors"

var (
	// ErrUnknownDataset is returned by Lookup and Load when the name is
	// not in the registry.
	ErrUnknownDataset = errors.New("dataset: unknown dataset name")

	// ErrFormat is returned when a dataset file cannot be parsed: missing
	// columns, a non-numeric cell, inconsistent feature width, a node id
	// outside the contiguous range, or an .npz member whose dtype or
	// memory order the loaders do not accept.
	ErrFormat = errors.New("dataset: malformed dataset file")

	// ErrSplitID is returned when the requested split index is not present
	// in the stored split stack (no such companion file, or a row index
	// beyond the mask matrix).
	ErrSplitID = errors.New("dataset: split id out of range")

	// ErrFractions is returned by StratifiedSplit when the train/val
	// fractions are outside (0,1) or leave no room for a test set.
	ErrFractions = errors.New("dataset: split fractions out of range")

	// ErrTooFewNodes is returned by Synthetic when the requested node
	// count cannot host the requested classes or a non-empty split.
	ErrTooFewNodes = errors.New("dataset: too few nodes")

	// ErrNeedRand is returned by the stochastic helpers (StratifiedSplit,
	// Synthetic) when no random source was supplied. Seed explicitly;
	// there is no hidden global fallback.
	ErrNeedRand = errors.New("dataset: random source is required")
)
