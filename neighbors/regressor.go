package neighbors

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/neighfit/core/model"
	"github.com/YuminosukeSato/neighfit/pkg/errors"
)

// KNNRegressor predicts a numeric value as the arithmetic mean of the k
// nearest training rows' targets.
type KNNRegressor struct {
	model.BaseEstimator

	// K is the neighborhood size. Must satisfy 1 <= K <= training rows,
	// checked at Fit time.
	K int

	index   *DistanceIndex
	targets []float64
}

// NewKNNRegressor creates a regressor with neighborhood size k.
func NewKNNRegressor(k int) *KNNRegressor {
	return &KNNRegressor{K: k, index: NewDistanceIndex()}
}

// Fit indexes the transformed training matrix and its aligned targets.
func (r *KNNRegressor) Fit(X mat.Matrix, targets []float64) error {
	rows, _ := X.Dims()
	if rows == 0 || len(targets) == 0 {
		return errors.NewEmptyInputError("KNNRegressor.Fit")
	}
	if len(targets) != rows {
		return errors.NewLengthMismatchError("KNNRegressor.Fit", rows, len(targets))
	}
	if r.K < 1 {
		return errors.NewHyperparameterError("k", r.K, "must be at least 1")
	}
	if r.K > rows {
		return errors.NewHyperparameterError("k", r.K, "exceeds the number of training rows")
	}

	if err := r.index.Fit(X); err != nil {
		return err
	}
	r.targets = make([]float64, len(targets))
	copy(r.targets, targets)
	r.SetFitted()
	return nil
}

// Predict returns one estimate per input row, aligned with input order.
func (r *KNNRegressor) Predict(X mat.Matrix) ([]float64, error) {
	if !r.IsFitted() {
		return nil, errors.NewNotFittedError("KNNRegressor", "Predict")
	}

	rows, cols := X.Dims()
	out := make([]float64, rows)
	x := make([]float64, cols)
	ys := make([]float64, r.K)
	for i := 0; i < rows; i++ {
		mat.Row(x, i, X)
		nbrs, err := r.index.Query(x, r.K)
		if err != nil {
			return nil, err
		}
		for j, nb := range nbrs {
			ys[j] = r.targets[nb.Index]
		}
		out[i] = stat.Mean(ys, nil)
	}
	return out, nil
}
