// SPDX-License-Identifier: MIT

package train

import (
	"fmt"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Metric scores row-wise log-probabilities against integer labels over
// an index subset. Implementations return an error only when the metric
// is undefined for the given subset.
type Metric func(logp *mat.Dense, labels []int, idx []int) (float64, error)

// MetricFor picks the metric from the label alphabet of the whole graph:
// more than two distinct labels selects accuracy, otherwise binary
// ROC-AUC. The returned name tags log lines and run summaries.
func MetricFor(labels []int) (Metric, string) {
	if distinctLabels(labels) > 2 {
		return Accuracy, "accuracy"
	}
	return BinaryAUC, "roc_auc"
}

func distinctLabels(labels []int) int {
	seen := make(map[int]struct{}, 8)
	for _, y := range labels {
		seen[y] = struct{}{}
	}
	return len(seen)
}

// Accuracy returns the fraction of rows in idx whose argmax matches the
// label. Ties resolve to the lowest column, matching label decoding.
func Accuracy(logp *mat.Dense, labels []int, idx []int) (float64, error) {
	if len(idx) == 0 {
		return 0, fmt.Errorf("accuracy over empty index set: %w", ErrConfig)
	}
	_, cols := logp.Dims()
	correct := 0
	for _, i := range idx {
		best, arg := logp.At(i, 0), 0
		for j := 1; j < cols; j++ {
			if v := logp.At(i, j); v > best {
				best, arg = v, j
			}
		}
		if arg == labels[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(idx)), nil
}

// BinaryAUC ranks the second-column scores of idx and returns the area
// under the ROC curve, with label 1 the positive class. Any monotone
// transform of the scores gives the same area, so log-probabilities rank
// as well as probabilities. Returns ErrSingleClass when idx holds only
// positives or only negatives.
func BinaryAUC(logp *mat.Dense, labels []int, idx []int) (float64, error) {
	if len(idx) == 0 {
		return 0, fmt.Errorf("roc-auc over empty index set: %w", ErrConfig)
	}
	scores := make([]float64, len(idx))
	classes := make([]bool, len(idx))
	positives := 0
	for k, i := range idx {
		scores[k] = logp.At(i, 1)
		classes[k] = labels[i] == 1
		if classes[k] {
			positives++
		}
	}
	if positives == 0 || positives == len(idx) {
		return 0, fmt.Errorf("%d positives among %d scored nodes: %w", positives, len(idx), ErrSingleClass)
	}

	stat.SortWeightedLabeled(scores, classes, nil)
	tpr, fpr, _ := stat.ROC(nil, scores, classes, nil)
	return integrate.Trapezoidal(fpr, tpr), nil
}

// NLLValue computes the mean negative log-likelihood of the labeled rows
// in idx, the plain-number counterpart of autograd.NLLLoss for splits
// that never need a gradient.
func NLLValue(logp *mat.Dense, labels []int, idx []int) float64 {
	sum := 0.0
	for _, i := range idx {
		sum -= logp.At(i, labels[i])
	}
	return sum / float64(len(idx))
}
