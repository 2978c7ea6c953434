// Package autograd: sentinel error set.

package autograd

import "errors"

// ErrSingular is returned by Inverse when the input matrix is singular or
// numerically too ill-conditioned to invert in float64. Callers decide the
// policy (fail the step, or retry with a ridge term on the input).
var ErrSingular = errors.New("autograd: singular matrix in Inverse")
