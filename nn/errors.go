// Package nn: sentinel error set.

package nn

import "errors"

var (
	// ErrConfig is returned by model constructors when a hyperparameter
	// is out of its legal range (non-positive dimensions, dropout outside
	// [0,1), α+β ≤ 0, γ ≥ 1, negative ridge, unknown variant ids).
	ErrConfig = errors.New("nn: invalid model configuration")

	// ErrGraphMismatch is returned by Forward when the graph's node count,
	// feature width or class count disagree with the model's construction.
	ErrGraphMismatch = errors.New("nn: graph does not match model dimensions")
)
