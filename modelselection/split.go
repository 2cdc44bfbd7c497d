// Package modelselection provides the resampling machinery around the
// pipeline: deterministic train/test partitioning, repeated k-fold
// cross-validation plans, and grid search over the neighborhood size.
package modelselection

import (
	"math"
	"math/rand/v2"
	"strconv"

	"github.com/YuminosukeSato/neighfit/dataset"
	"github.com/YuminosukeSato/neighfit/pkg/errors"
)

// SplitOptions configures TrainTestSplit. The zero value is an unstratified
// split with seed 0.
type SplitOptions struct {
	// StratifyColumn, when set, groups rows by this column's value and
	// splits each group at the same proportion, preserving class balance
	// between train and test within rounding error.
	StratifyColumn string

	// Seed drives the shuffle. The same seed always yields the same split.
	Seed uint64
}

// TrainTestSplit partitions the table into train and test subsets.
// The training size is round(n * trainProportion); both subsets must end up
// with at least one row.
func TrainTestSplit(t *dataset.Table, trainProportion float64, opts SplitOptions) (train, test *dataset.Table, err error) {
	trainIdx, testIdx, err := SplitIndices(t, trainProportion, opts)
	if err != nil {
		return nil, nil, err
	}
	return t.Select(trainIdx), t.Select(testIdx), nil
}

// SplitIndices is TrainTestSplit at the row-index level.
func SplitIndices(t *dataset.Table, trainProportion float64, opts SplitOptions) (trainIdx, testIdx []int, err error) {
	const op = "TrainTestSplit"

	if trainProportion <= 0 || trainProportion >= 1 {
		return nil, nil, errors.NewProportionError(op, trainProportion)
	}
	n := t.Len()
	if n < 2 {
		return nil, nil, errors.NewInsufficientDataError(op, n, "need at least 2 rows to split")
	}

	r := rand.New(rand.NewPCG(opts.Seed, opts.Seed))

	if opts.StratifyColumn == "" {
		indices := r.Perm(n)
		trainSize := int(math.Round(float64(n) * trainProportion))
		if trainSize < 1 || trainSize > n-1 {
			return nil, nil, errors.NewInsufficientDataError(op, n,
				"proportion leaves one subset empty")
		}
		return indices[:trainSize], indices[trainSize:], nil
	}

	groups, order, err := groupByColumn(t, opts.StratifyColumn)
	if err != nil {
		return nil, nil, err
	}

	// Each group is split at the same proportion, then concatenated in
	// first-seen group order.
	for _, key := range order {
		indices := groups[key]
		r.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
		gTrain := int(math.Round(float64(len(indices)) * trainProportion))
		if gTrain > len(indices) {
			gTrain = len(indices)
		}
		trainIdx = append(trainIdx, indices[:gTrain]...)
		testIdx = append(testIdx, indices[gTrain:]...)
	}
	if len(trainIdx) == 0 || len(testIdx) == 0 {
		return nil, nil, errors.NewInsufficientDataError(op, n,
			"stratified split leaves one subset empty")
	}
	return trainIdx, testIdx, nil
}

// groupByColumn buckets row indices by the column's value, returning the
// buckets plus the keys in first-occurrence order so the grouping itself is
// deterministic.
func groupByColumn(t *dataset.Table, col string) (map[string][]int, []string, error) {
	groups := make(map[string][]int)
	var order []string
	for i := 0; i < t.Len(); i++ {
		v, ok := t.Row(i)[col]
		if !ok {
			return nil, nil, errors.NewSchemaMismatchError("TrainTestSplit", col, "", "stratify column missing from row")
		}
		key := groupKey(v)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}
	return groups, order, nil
}

func groupKey(v dataset.Value) string {
	if v.Kind() == dataset.KindCategorical {
		return v.Level()
	}
	// Numeric stratification groups by exact value.
	return strconv.FormatFloat(v.Float(), 'g', -1, 64)
}
