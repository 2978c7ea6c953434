package nn

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gnnlab/autograd"
	"github.com/katalvlaran/gnnlab/graphstore"
)

// Model is the surface the training loop drives. Forward builds a fresh
// tape over the current parameter values and returns row-wise
// log-probabilities (N×C); training toggles dropout.
type Model interface {
	Forward(g *graphstore.Graph, training bool) (*autograd.Tensor, error)
	Params() []*autograd.Tensor
	Snapshot() Snapshot
	Restore(Snapshot)
}

// Snapshot is a deep copy of every parameter, keyed by parameter name.
// Early stopping keeps the best-validation snapshot and rewinds to it
// before testing.
type Snapshot map[string]*mat.Dense

// snapshotParams deep-copies the given parameters.
func snapshotParams(params []*autograd.Tensor) Snapshot {
	snap := make(Snapshot, len(params))
	for _, p := range params {
		var cp mat.Dense
		cp.CloneFrom(p.Value())
		snap[p.Name()] = &cp
	}
	return snap
}

// restoreParams copies snapshot values back into the parameters.
// Parameters missing from the snapshot keep their current values.
func restoreParams(params []*autograd.Tensor, snap Snapshot) {
	for _, p := range params {
		if src, ok := snap[p.Name()]; ok {
			p.SetValue(src)
		}
	}
}
