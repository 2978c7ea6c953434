// SPDX-License-Identifier: MIT

package dataset

import (
	"fmt"

	"github.com/katalvlaran/gnnlab/graphstore"
)

// Load reads the named benchmark from the data root and returns the
// validated graph bundle for one stored split.
//
// The scheme is resolved through the registry: edge-list datasets read
// their text files plus the split-mask archive, bundle datasets read a
// single .npz. Errors: ErrUnknownDataset for unregistered names,
// ErrSplitID when the split index has no stored masks, ErrFormat for
// anything unparsable, plus graphstore validation sentinels when the
// parts disagree with each other.
func Load(root, name string, split int) (*graphstore.Graph, error) {
	scheme, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if split < 0 {
		return nil, fmt.Errorf("dataset %q: split %d: %w", name, split, ErrSplitID)
	}
	if scheme == SchemeEdgeList {
		return loadEdgeList(root, name, split)
	}
	return loadBundle(root, name, split)
}
