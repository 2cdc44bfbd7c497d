package metrics

import (
	"fmt"
	"strings"

	"github.com/YuminosukeSato/neighfit/pkg/errors"
)

// Accuracy computes the fraction of exact matches between predicted and
// actual labels.
func Accuracy(predicted, actual []string) (float64, error) {
	if err := checkPairs("Accuracy", len(predicted), len(actual)); err != nil {
		return 0, err
	}

	matches := 0
	for i := range predicted {
		if predicted[i] == actual[i] {
			matches++
		}
	}
	return float64(matches) / float64(len(predicted)), nil
}

// ConfusionMatrix counts (actual, predicted) label pairs over a fixed label
// set. Labels outside the set are rejected at construction.
type ConfusionMatrix struct {
	labels []string
	index  map[string]int
	counts [][]int
	total  int
}

// NewConfusionMatrix tallies predictions against ground truth over the given
// label set, which is normally the set observed during training.
func NewConfusionMatrix(predicted, actual, labelSet []string) (*ConfusionMatrix, error) {
	if err := checkPairs("ConfusionMatrix", len(predicted), len(actual)); err != nil {
		return nil, err
	}
	if len(labelSet) == 0 {
		return nil, errors.NewEmptyInputError("ConfusionMatrix labels")
	}

	index := make(map[string]int, len(labelSet))
	for i, l := range labelSet {
		if _, dup := index[l]; dup {
			return nil, errors.NewValueError("ConfusionMatrix", "duplicate label "+fmt.Sprintf("%q", l)+" in label set")
		}
		index[l] = i
	}

	counts := make([][]int, len(labelSet))
	for i := range counts {
		counts[i] = make([]int, len(labelSet))
	}

	for i := range predicted {
		ai, ok := index[actual[i]]
		if !ok {
			return nil, errors.NewUnknownLabelError("ConfusionMatrix", actual[i])
		}
		pi, ok := index[predicted[i]]
		if !ok {
			return nil, errors.NewUnknownLabelError("ConfusionMatrix", predicted[i])
		}
		counts[ai][pi]++
	}

	labels := make([]string, len(labelSet))
	copy(labels, labelSet)
	return &ConfusionMatrix{labels: labels, index: index, counts: counts, total: len(predicted)}, nil
}

// Labels returns the fixed label set in matrix order.
func (cm *ConfusionMatrix) Labels() []string {
	out := make([]string, len(cm.labels))
	copy(out, cm.labels)
	return out
}

// At returns the count of rows whose true label is actual and whose
// prediction is predicted.
func (cm *ConfusionMatrix) At(actual, predicted string) (int, error) {
	ai, ok := cm.index[actual]
	if !ok {
		return 0, errors.NewUnknownLabelError("ConfusionMatrix.At", actual)
	}
	pi, ok := cm.index[predicted]
	if !ok {
		return 0, errors.NewUnknownLabelError("ConfusionMatrix.At", predicted)
	}
	return cm.counts[ai][pi], nil
}

// Total returns the number of evaluated pairs.
func (cm *ConfusionMatrix) Total() int { return cm.total }

// ActualTotals returns, per label, how many evaluated rows truly carry it
// (the matrix row sums).
func (cm *ConfusionMatrix) ActualTotals() map[string]int {
	out := make(map[string]int, len(cm.labels))
	for i, l := range cm.labels {
		sum := 0
		for j := range cm.labels {
			sum += cm.counts[i][j]
		}
		out[l] = sum
	}
	return out
}

// PredictedTotals returns, per label, how many rows were predicted as it
// (the matrix column sums).
func (cm *ConfusionMatrix) PredictedTotals() map[string]int {
	out := make(map[string]int, len(cm.labels))
	for j, l := range cm.labels {
		sum := 0
		for i := range cm.labels {
			sum += cm.counts[i][j]
		}
		out[l] = sum
	}
	return out
}

// String renders the matrix as a table with actual labels on rows and
// predicted labels on columns.
func (cm *ConfusionMatrix) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%12s", "actual\\pred")
	for _, l := range cm.labels {
		fmt.Fprintf(&b, " %10s", l)
	}
	b.WriteByte('\n')
	for i, l := range cm.labels {
		fmt.Fprintf(&b, "%12s", l)
		for j := range cm.labels {
			fmt.Fprintf(&b, " %10d", cm.counts[i][j])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
