// SPDX-License-Identifier: MIT

package dataset

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/katalvlaran/gnnlab/graphstore"
)

// StratifiedSplit samples a train/validation/test split with a per-class
// training quota, the scheme the percentage-split benchmarks use:
//
//	quota = round(trainFrac * N / classes)   training nodes per class
//	valN  = round(valFrac * N)               validation nodes overall
//
// Each class contributes min(quota, class size) shuffled members to the
// training set. The leftovers of all classes are pooled, shuffled once,
// and the first valN become validation; the remainder is the test set.
// Classes are derived as max(label)+1. Index sets come back sorted.
//
// All randomness flows through rnd, so a fixed source reproduces the
// split exactly. Errors: ErrNeedRand for a nil source, ErrFractions
// when trainFrac or valFrac leave no room for three non-empty sets,
// ErrTooFewNodes for an empty label slice, ErrFormat for a negative
// label, plus graphstore sentinels when the sampled sets fail
// validation (e.g. a quota that exhausts every node before the test
// set).
func StratifiedSplit(labels []int, trainFrac, valFrac float64, rnd *rand.Rand) (graphstore.Split, error) {
	if rnd == nil {
		return graphstore.Split{}, fmt.Errorf("StratifiedSplit: %w", ErrNeedRand)
	}
	if trainFrac <= 0 || valFrac <= 0 || trainFrac+valFrac >= 1 {
		return graphstore.Split{}, fmt.Errorf("StratifiedSplit: train=%v val=%v: %w", trainFrac, valFrac, ErrFractions)
	}
	n := len(labels)
	if n == 0 {
		return graphstore.Split{}, fmt.Errorf("StratifiedSplit: no labels: %w", ErrTooFewNodes)
	}
	classes := 0
	for i, y := range labels {
		if y < 0 {
			return graphstore.Split{}, fmt.Errorf("StratifiedSplit: label[%d]=%d: %w", i, y, ErrFormat)
		}
		if y+1 > classes {
			classes = y + 1
		}
	}

	perClass := make([][]int, classes)
	for i, y := range labels {
		perClass[y] = append(perClass[y], i)
	}

	quota := int(math.Round(trainFrac * float64(n) / float64(classes)))
	var train, rest []int
	for _, members := range perClass {
		rnd.Shuffle(len(members), func(i, j int) {
			members[i], members[j] = members[j], members[i]
		})
		take := quota
		if take > len(members) {
			take = len(members)
		}
		train = append(train, members[:take]...)
		rest = append(rest, members[take:]...)
	}

	rnd.Shuffle(len(rest), func(i, j int) {
		rest[i], rest[j] = rest[j], rest[i]
	})
	valN := int(math.Round(valFrac * float64(n)))
	if valN > len(rest) {
		valN = len(rest)
	}

	sp := graphstore.Split{
		Train: append([]int(nil), train...),
		Val:   append([]int(nil), rest[:valN]...),
		Test:  append([]int(nil), rest[valN:]...),
	}
	sort.Ints(sp.Train)
	sort.Ints(sp.Val)
	sort.Ints(sp.Test)

	if err := sp.Validate(n); err != nil {
		return graphstore.Split{}, fmt.Errorf("StratifiedSplit: %w", err)
	}
	return sp, nil
}
