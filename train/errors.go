// Package train: sentinel error set.

package train

import "errors"

var (
	// ErrConfig is returned by Run when a loop parameter is out of its
	// legal range (non-positive epochs, learning rate or patience,
	// negative weight decay).
	ErrConfig = errors.New("train: invalid trainer configuration")

	// ErrSingleClass is returned by BinaryAUC when the scored subset
	// holds only one class, leaving the curve undefined.
	ErrSingleClass = errors.New("train: roc-auc undefined for a single class")
)
