// SPDX-License-Identifier: MIT
// Package dataset: npz bundle scheme loader.
//
// A bundle is one <root>/data/<name>.npz archive with the members
// edges [E,2], node_features [N,F], node_labels ([N] integer or [N,C]
// one-hot) and train_masks/val_masks/test_masks [S,N], where S is the
// number of stored splits. Node ids in the edge member index feature
// rows directly. Names containing "directed" keep their directed
// adjacency; every other bundle has its edges mirrored.

package dataset

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sbinet/npyio/npz"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gnnlab/graphstore"
)

const bundleDirName = "data"

const directedNameTag = "directed"

// loadBundle assembles a scheme-B dataset into a validated Graph.
func loadBundle(root, name string, split int) (*graphstore.Graph, error) {
	path := bundlePath(root, name)
	r, err := npz.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset %q: %w", name, err)
	}
	defer r.Close()

	featVals, fShape, err := npzArray(r, "node_features")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(fShape) != 2 {
		return nil, fmt.Errorf("%s: node_features shape %v, want [N F]: %w", path, fShape, ErrFormat)
	}
	n := fShape[0]
	features := mat.NewDense(n, fShape[1], featVals)

	labels, err := bundleLabels(r, path, n)
	if err != nil {
		return nil, err
	}

	edgeVals, eShape, err := npzInts(r, "edges")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(eShape) != 2 || eShape[1] != 2 {
		return nil, fmt.Errorf("%s: edges shape %v, want [E 2]: %w", path, eShape, ErrFormat)
	}
	pairs := make([][2]int, eShape[0])
	for i := range pairs {
		pairs[i] = [2]int{edgeVals[2*i], edgeVals[2*i+1]}
	}

	adj, err := graphstore.NewAdjacency(n, pairs,
		graphstore.WithDirected(strings.Contains(name, directedNameTag)))
	if err != nil {
		return nil, fmt.Errorf("dataset %q: %w", name, err)
	}
	graphstore.RowNormalizeInPlace(features)

	sp, err := bundleSplit(r, path, split, n)
	if err != nil {
		return nil, err
	}

	g, err := graphstore.NewGraph(name, adj, features, labels, sp)
	if err != nil {
		return nil, fmt.Errorf("dataset %q: %w", name, err)
	}
	return g, nil
}

// bundlePath returns the archive location for a bundle dataset.
func bundlePath(root, name string) string {
	return filepath.Join(root, bundleDirName, name+".npz")
}

// bundleLabels reads node_labels, collapsing a one-hot matrix by argmax.
func bundleLabels(r *npz.Reader, path string, n int) ([]int, error) {
	vals, shape, err := npzArray(r, "node_labels")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	switch len(shape) {
	case 1:
		if shape[0] != n {
			return nil, fmt.Errorf("%s: %d labels for %d nodes: %w", path, shape[0], n, ErrFormat)
		}
		labels := make([]int, n)
		for i, v := range vals {
			y := int(v)
			if float64(y) != v {
				return nil, fmt.Errorf("%s: non-integral label %v at node %d: %w", path, v, i, ErrFormat)
			}
			labels[i] = y
		}
		return labels, nil
	case 2:
		if shape[0] != n {
			return nil, fmt.Errorf("%s: %d label rows for %d nodes: %w", path, shape[0], n, ErrFormat)
		}
		return graphstore.DecodeLabels(mat.NewDense(shape[0], shape[1], vals)), nil
	default:
		return nil, fmt.Errorf("%s: node_labels shape %v: %w", path, shape, ErrFormat)
	}
}

// bundleSplit extracts row `split` of each stored mask stack.
func bundleSplit(r *npz.Reader, path string, split, n int) (graphstore.Split, error) {
	var sp graphstore.Split
	for _, m := range []struct {
		key string
		dst *[]int
	}{
		{"train_masks", &sp.Train},
		{"val_masks", &sp.Val},
		{"test_masks", &sp.Test},
	} {
		vals, shape, err := npzArray(r, m.key)
		if err != nil {
			return graphstore.Split{}, fmt.Errorf("%s: %w", path, err)
		}
		if len(shape) != 2 || shape[1] != n {
			return graphstore.Split{}, fmt.Errorf("%s: %s shape %v for %d nodes: %w", path, m.key, shape, n, ErrFormat)
		}
		if split < 0 || split >= shape[0] {
			return graphstore.Split{}, fmt.Errorf("%s: split %d of %d stored: %w", path, split, shape[0], ErrSplitID)
		}
		*m.dst = maskIndices(vals[split*n : (split+1)*n])
	}
	return sp, nil
}
