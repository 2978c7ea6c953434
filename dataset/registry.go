// SPDX-License-Identifier: MIT
// Package dataset: name registry.
// Maps benchmark names to the on-disk scheme their loader expects, so
// front-ends can reject a bad --dataset flag before any file I/O.

package dataset

import (
	"fmt"
	"sort"
)

// Scheme identifies the on-disk layout of a registered dataset.
type Scheme int

const (
	// SchemeEdgeList marks datasets stored as tab-separated edge and
	// feature/label text files plus per-split mask archives:
	//
	//	<root>/new_data/<name>/out1_graph_edges.txt
	//	<root>/new_data/<name>/out1_node_feature_label.txt
	//	<root>/splits/<name>_split_0.6_0.2_<split>.npz
	SchemeEdgeList Scheme = iota + 1

	// SchemeBundle marks datasets stored as one .npz archive holding
	// edges, features, labels and a stack of split masks:
	//
	//	<root>/data/<name>.npz
	SchemeBundle
)

// String returns a short human-readable scheme tag.
func (s Scheme) String() string {
	switch s {
	case SchemeEdgeList:
		return "edge-list"
	case SchemeBundle:
		return "bundle"
	default:
		return fmt.Sprintf("Scheme(%d)", int(s))
	}
}

// registry holds every known benchmark. Bundle names containing the
// substring "directed" keep their directed adjacency; all other datasets
// are loaded undirected (edges mirrored).
var registry = map[string]Scheme{
	"chameleon": SchemeEdgeList,
	"cornell":   SchemeEdgeList,
	"film":      SchemeEdgeList,
	"squirrel":  SchemeEdgeList,
	"texas":     SchemeEdgeList,
	"wisconsin": SchemeEdgeList,

	"squirrel_directed":           SchemeBundle,
	"chameleon_directed":          SchemeBundle,
	"squirrel_filtered_directed":  SchemeBundle,
	"chameleon_filtered_directed": SchemeBundle,
	"roman_empire":                SchemeBundle,
	"minesweeper":                 SchemeBundle,
	"questions":                   SchemeBundle,
	"amazon_ratings":              SchemeBundle,
	"tolokers":                    SchemeBundle,
}

// Lookup resolves a dataset name to its storage scheme.
// Unknown names return ErrUnknownDataset.
func Lookup(name string) (Scheme, error) {
	s, ok := registry[name]
	if !ok {
		return 0, fmt.Errorf("%q: %w", name, ErrUnknownDataset)
	}
	return s, nil
}

// Names returns every registered dataset name in sorted order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
