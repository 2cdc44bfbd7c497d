// Package neighbors implements exact k-nearest-neighbor search over encoded
// feature vectors and the classification and regression predictors built on
// it.
package neighbors

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/neighfit/core/model"
	"github.com/YuminosukeSato/neighfit/pkg/errors"
)

// Neighbor is one query result: the training row's original index and its
// Euclidean distance from the query vector.
type Neighbor struct {
	Index    int
	Distance float64
}

// DistanceIndex holds the transformed training vectors and answers
// k-nearest-neighbor queries by brute-force Euclidean scan. After Fit the
// index is read-only and safe for concurrent queries.
type DistanceIndex struct {
	model.BaseEstimator

	vectors [][]float64
	width   int
}

// NewDistanceIndex creates an empty index.
func NewDistanceIndex() *DistanceIndex {
	return &DistanceIndex{}
}

// Fit stores the training feature matrix, one vector per row.
func (di *DistanceIndex) Fit(X mat.Matrix) error {
	rows, cols := X.Dims()
	if rows == 0 {
		return errors.NewEmptyInputError("DistanceIndex.Fit")
	}

	di.vectors = make([][]float64, rows)
	for i := 0; i < rows; i++ {
		v := make([]float64, cols)
		for j := 0; j < cols; j++ {
			v[j] = X.At(i, j)
		}
		di.vectors[i] = v
	}
	di.width = cols
	di.SetFitted()
	return nil
}

// Len returns the number of indexed training rows.
func (di *DistanceIndex) Len() int { return len(di.vectors) }

// Width returns the feature vector length the index was fitted with.
func (di *DistanceIndex) Width() int { return di.width }

// Query returns the k training rows closest to x in ascending distance
// order. Rows at equal distance are ordered by lower original row index, so
// results are deterministic even when the k-th position is tied.
func (di *DistanceIndex) Query(x []float64, k int) ([]Neighbor, error) {
	if !di.IsFitted() {
		return nil, errors.NewNotFittedError("DistanceIndex", "Query")
	}
	if k < 1 {
		return nil, errors.NewHyperparameterError("k", k, "must be at least 1")
	}
	if k > len(di.vectors) {
		return nil, errors.NewHyperparameterError("k", k, "exceeds the number of training rows")
	}
	if len(x) != di.width {
		return nil, errors.NewDimensionError("DistanceIndex.Query", di.width, len(x), 1)
	}

	all := make([]Neighbor, len(di.vectors))
	for i, v := range di.vectors {
		all[i] = Neighbor{Index: i, Distance: floats.Distance(x, v, 2)}
	}
	sort.Slice(all, func(a, b int) bool {
		if all[a].Distance != all[b].Distance {
			return all[a].Distance < all[b].Distance
		}
		return all[a].Index < all[b].Index
	})
	return all[:k], nil
}
