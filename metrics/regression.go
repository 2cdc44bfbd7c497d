// Package metrics computes the evaluation measures consumed by the tuning
// and reporting layers: accuracy and confusion matrices for classification,
// squared-error measures for regression.
package metrics

import (
	"math"

	"github.com/YuminosukeSato/neighfit/pkg/errors"
)

// MSE computes the mean squared error between predictions and ground truth.
func MSE(predicted, actual []float64) (float64, error) {
	if err := checkPairs("MSE", len(predicted), len(actual)); err != nil {
		return 0, err
	}

	var sum float64
	for i := range predicted {
		diff := predicted[i] - actual[i]
		sum += diff * diff
	}
	return sum / float64(len(predicted)), nil
}

// RMSE computes the root mean squared error between predictions and ground
// truth.
func RMSE(predicted, actual []float64) (float64, error) {
	mse, err := MSE(predicted, actual)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE computes the mean absolute error between predictions and ground truth.
func MAE(predicted, actual []float64) (float64, error) {
	if err := checkPairs("MAE", len(predicted), len(actual)); err != nil {
		return 0, err
	}

	var sum float64
	for i := range predicted {
		sum += math.Abs(predicted[i] - actual[i])
	}
	return sum / float64(len(predicted)), nil
}

// R2Score computes the coefficient of determination. It is an error when the
// ground truth has no variance, since the score is undefined there.
func R2Score(predicted, actual []float64) (float64, error) {
	if err := checkPairs("R2Score", len(predicted), len(actual)); err != nil {
		return 0, err
	}

	var mean float64
	for _, y := range actual {
		mean += y
	}
	mean /= float64(len(actual))

	var tss, rss float64
	for i := range actual {
		tss += (actual[i] - mean) * (actual[i] - mean)
		rss += (actual[i] - predicted[i]) * (actual[i] - predicted[i])
	}
	if tss == 0 {
		return 0, errors.NewValueError("R2Score", "ground truth has no variance")
	}
	return 1 - rss/tss, nil
}

func checkPairs(op string, nPred, nActual int) error {
	if nPred == 0 || nActual == 0 {
		return errors.NewEmptyInputError(op)
	}
	if nPred != nActual {
		return errors.NewLengthMismatchError(op, nActual, nPred)
	}
	return nil
}
