package neighbors

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/neighfit/core/model"
	"github.com/YuminosukeSato/neighfit/pkg/errors"
)

// KNNClassifier predicts a class label as the mode of the k nearest training
// rows' labels.
type KNNClassifier struct {
	model.BaseEstimator

	// K is the neighborhood size. Must satisfy 1 <= K <= training rows,
	// checked at Fit time.
	K int

	index  *DistanceIndex
	labels []string
}

// NewKNNClassifier creates a classifier with neighborhood size k.
func NewKNNClassifier(k int) *KNNClassifier {
	return &KNNClassifier{K: k, index: NewDistanceIndex()}
}

// Fit indexes the transformed training matrix and its aligned labels.
func (c *KNNClassifier) Fit(X mat.Matrix, labels []string) error {
	rows, _ := X.Dims()
	if rows == 0 || len(labels) == 0 {
		return errors.NewEmptyInputError("KNNClassifier.Fit")
	}
	if len(labels) != rows {
		return errors.NewLengthMismatchError("KNNClassifier.Fit", rows, len(labels))
	}
	if c.K < 1 {
		return errors.NewHyperparameterError("k", c.K, "must be at least 1")
	}
	if c.K > rows {
		return errors.NewHyperparameterError("k", c.K, "exceeds the number of training rows")
	}

	if err := c.index.Fit(X); err != nil {
		return err
	}
	c.labels = make([]string, len(labels))
	copy(c.labels, labels)
	c.SetFitted()
	return nil
}

// Predict returns one label per input row, aligned with input order.
func (c *KNNClassifier) Predict(X mat.Matrix) ([]string, error) {
	if !c.IsFitted() {
		return nil, errors.NewNotFittedError("KNNClassifier", "Predict")
	}

	rows, cols := X.Dims()
	out := make([]string, rows)
	x := make([]float64, cols)
	for i := 0; i < rows; i++ {
		mat.Row(x, i, X)
		nbrs, err := c.index.Query(x, c.K)
		if err != nil {
			return nil, err
		}
		out[i] = voteLabel(nbrs, c.labels)
	}
	return out, nil
}

// Classes returns the distinct training labels in first-occurrence order.
func (c *KNNClassifier) Classes() []string {
	seen := make(map[string]bool)
	var out []string
	for _, l := range c.labels {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	return out
}

// voteLabel picks the most frequent label among the neighbors. A frequency
// tie goes to the label whose nearest-ranked neighbor appears first, which
// is deterministic because neighbors arrive sorted by (distance, index).
func voteLabel(nbrs []Neighbor, labels []string) string {
	counts := make(map[string]int, len(nbrs))
	firstRank := make(map[string]int, len(nbrs))
	for rank, nb := range nbrs {
		l := labels[nb.Index]
		counts[l]++
		if _, ok := firstRank[l]; !ok {
			firstRank[l] = rank
		}
	}

	best := labels[nbrs[0].Index]
	for l, n := range counts {
		if n > counts[best] || (n == counts[best] && firstRank[l] < firstRank[best]) {
			best = l
		}
	}
	return best
}
