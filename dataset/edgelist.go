// SPDX-License-Identifier: MIT
// Package dataset: edge-list scheme loader.
//
// Layout on disk (per dataset name):
//
//	<root>/new_data/<name>/out1_graph_edges.txt
//	<root>/new_data/<name>/out1_node_feature_label.txt
//	<root>/splits/<name>_split_0.6_0.2_<split>.npz
//
// The edge file starts with a header line, then one "u\tv" pair per
// line. The feature file starts with a header line, then
// "id\tf1,f2,...\tlabel" rows; the film dataset stores sparse one-hot
// column indices in the middle field instead of a dense vector. Node
// ids may be any unique integers; rows are ordered by ascending id, and
// every edge endpoint must have a feature row. Isolated nodes are kept
// (their adjacency row is all zero before the self-loop).

package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/sbinet/npyio/npz"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gnnlab/graphstore"
)

const (
	edgeDirName      = "new_data"
	splitsDirName    = "splits"
	edgeFileName     = "out1_graph_edges.txt"
	featureFileName  = "out1_node_feature_label.txt"
	splitFilePattern = "%s_split_0.6_0.2_%d.npz"

	// film stores sparse one-hot indices into a fixed-width vector.
	filmDatasetName = "film"
	filmFeatureDim  = 932

	// Scanner limit generous enough for the widest dense feature rows.
	maxLineBytes = 1 << 20
)

// loadEdgeList assembles a scheme-A dataset into a validated Graph.
func loadEdgeList(root, name string, split int) (*graphstore.Graph, error) {
	dir := filepath.Join(root, edgeDirName, name)

	features, labels, rank, err := readFeatureLabels(filepath.Join(dir, featureFileName), name == filmDatasetName)
	if err != nil {
		return nil, err
	}
	edges, err := readEdgePairs(filepath.Join(dir, edgeFileName), rank)
	if err != nil {
		return nil, err
	}

	adj, err := graphstore.NewAdjacency(len(labels), edges)
	if err != nil {
		return nil, fmt.Errorf("dataset %q: %w", name, err)
	}
	graphstore.RowNormalizeInPlace(features)

	splitPath := filepath.Join(root, splitsDirName, fmt.Sprintf(splitFilePattern, name, split))
	sp, err := readSplitMasks(splitPath, len(labels))
	if err != nil {
		return nil, err
	}

	g, err := graphstore.NewGraph(name, adj, features, labels, sp)
	if err != nil {
		return nil, fmt.Errorf("dataset %q: %w", name, err)
	}
	return g, nil
}

// readFeatureLabels parses the feature/label file. It returns the dense
// feature matrix with rows in ascending id order, the aligned labels,
// and the id -> row rank map the edge reader resolves endpoints with.
func readFeatureLabels(path string, film bool) (*mat.Dense, []int, map[int]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("dataset: %w", err)
	}
	defer f.Close()

	type nodeRow struct {
		vec   []float64
		label int
	}
	rows := make(map[int]nodeRow)
	width := -1
	if film {
		width = filmFeatureDim
	}

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	if !sc.Scan() {
		return nil, nil, nil, fmt.Errorf("%s: missing header: %w", path, ErrFormat)
	}
	lineNo := 1
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			return nil, nil, nil, fmt.Errorf("%s:%d: %d fields, want 3: %w", path, lineNo, len(fields), ErrFormat)
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, nil, nil, fmt.Errorf("%s:%d: node id %q: %w", path, lineNo, fields[0], ErrFormat)
		}
		if _, dup := rows[id]; dup {
			return nil, nil, nil, fmt.Errorf("%s:%d: duplicate node id %d: %w", path, lineNo, id, ErrFormat)
		}

		var vec []float64
		if film {
			vec = make([]float64, filmFeatureDim)
			for _, tok := range strings.Split(fields[1], ",") {
				idx, err := strconv.Atoi(strings.TrimSpace(tok))
				if err != nil || idx < 0 || idx >= filmFeatureDim {
					return nil, nil, nil, fmt.Errorf("%s:%d: one-hot index %q: %w", path, lineNo, tok, ErrFormat)
				}
				vec[idx] = 1
			}
		} else {
			toks := strings.Split(fields[1], ",")
			if width < 0 {
				width = len(toks)
			}
			if len(toks) != width {
				return nil, nil, nil, fmt.Errorf("%s:%d: %d features, want %d: %w", path, lineNo, len(toks), width, ErrFormat)
			}
			vec = make([]float64, width)
			for i, tok := range toks {
				v, err := strconv.Atoi(strings.TrimSpace(tok))
				if err != nil {
					return nil, nil, nil, fmt.Errorf("%s:%d: feature %q: %w", path, lineNo, tok, ErrFormat)
				}
				vec[i] = float64(v)
			}
		}

		label, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, nil, nil, fmt.Errorf("%s:%d: label %q: %w", path, lineNo, fields[2], ErrFormat)
		}
		rows[id] = nodeRow{vec: vec, label: label}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil, nil, fmt.Errorf("%s: no node rows: %w", path, ErrFormat)
	}

	ids := make([]int, 0, len(rows))
	for id := range rows {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	rank := make(map[int]int, len(ids))
	features := mat.NewDense(len(ids), width, nil)
	labels := make([]int, len(ids))
	for r, id := range ids {
		rank[id] = r
		features.SetRow(r, rows[id].vec)
		labels[r] = rows[id].label
	}
	return features, labels, rank, nil
}

// readEdgePairs parses the edge file into row-rank endpoint pairs.
// Every endpoint must be a known node id. Duplicate pairs are fine, the
// adjacency builder coalesces them.
func readEdgePairs(path string, rank map[int]int) ([][2]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	if !sc.Scan() {
		return nil, fmt.Errorf("%s: missing header: %w", path, ErrFormat)
	}
	var edges [][2]int
	lineNo := 1
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 2 {
			return nil, fmt.Errorf("%s:%d: %d fields, want 2: %w", path, lineNo, len(fields), ErrFormat)
		}
		u, err := resolveEndpoint(fields[0], rank)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		v, err := resolveEndpoint(fields[1], rank)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		edges = append(edges, [2]int{u, v})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return edges, nil
}

func resolveEndpoint(tok string, rank map[int]int) (int, error) {
	id, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("endpoint %q: %w", tok, ErrFormat)
	}
	r, ok := rank[id]
	if !ok {
		return 0, fmt.Errorf("endpoint %d has no feature row: %w", id, ErrFormat)
	}
	return r, nil
}

// readSplitMasks loads the companion mask archive for one split id.
// A missing archive means the split id is not part of the stored stack.
func readSplitMasks(path string, n int) (graphstore.Split, error) {
	r, err := npz.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return graphstore.Split{}, fmt.Errorf("%s: %w", path, ErrSplitID)
		}
		return graphstore.Split{}, fmt.Errorf("%s: %w", path, err)
	}
	defer r.Close()

	var sp graphstore.Split
	for _, m := range []struct {
		key string
		dst *[]int
	}{
		{"train_mask", &sp.Train},
		{"val_mask", &sp.Val},
		{"test_mask", &sp.Test},
	} {
		vals, _, err := npzArray(r, m.key)
		if err != nil {
			return graphstore.Split{}, fmt.Errorf("%s: %w", path, err)
		}
		if len(vals) != n {
			return graphstore.Split{}, fmt.Errorf("%s: %s has %d entries for %d nodes: %w", path, m.key, len(vals), n, ErrFormat)
		}
		*m.dst = maskIndices(vals)
	}
	return sp, nil
}

// maskIndices collects the positions whose mask value equals one.
func maskIndices(vals []float64) []int {
	var idx []int
	for i, v := range vals {
		if v == 1 {
			idx = append(idx, i)
		}
	}
	return idx
}
