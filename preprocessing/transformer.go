// Package preprocessing implements the feature transformation stage of the
// pipeline: numeric standardization and one-hot categorical encoding with a
// dropped reference level, learned once from training rows and applied to
// any table afterwards.
package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/neighfit/core/model"
	"github.com/YuminosukeSato/neighfit/dataset"
	"github.com/YuminosukeSato/neighfit/pkg/errors"
)

// UnknownLevelPolicy controls how Transform treats a categorical level that
// was never seen during Fit.
type UnknownLevelPolicy int

const (
	// RejectUnknown fails the transform with a SchemaMismatchError naming
	// the column and the unseen level. This is the default.
	RejectUnknown UnknownLevelPolicy = iota
	// EncodeUnknownAsZero encodes an unseen level as the all-zeros indicator
	// vector, the same encoding as the reference level.
	EncodeUnknownAsZero
)

// Option configures a FeatureTransformer.
type Option func(*FeatureTransformer)

// WithUnknownLevelPolicy sets the unseen-level behavior for Transform.
func WithUnknownLevelPolicy(p UnknownLevelPolicy) Option {
	return func(ft *FeatureTransformer) {
		ft.unknownPolicy = p
	}
}

// FeatureTransformer learns normalization statistics and categorical
// encodings from training rows and applies them to any table.
//
// Numeric predictors are standardized as (value - mean) / std using the
// sample standard deviation (n-1 denominator). A constant column has its
// standard deviation recorded as 1 so the transform stays defined.
//
// Categorical predictors are one-hot encoded over the levels observed during
// Fit, in first-occurrence order, with the first-seen level dropped as the
// reference: a k-level column yields k-1 indicator features.
//
// The output matrix has one column block per schema predictor, in schema
// order, so the layout is identical for every Transform call once fitted.
// After Fit the learned state is immutable and Transform is safe for
// concurrent callers.
type FeatureTransformer struct {
	model.BaseEstimator

	schema        dataset.Schema
	unknownPolicy UnknownLevelPolicy

	means  map[string]float64
	stds   map[string]float64
	levels map[string][]string

	featureNames []string
}

// NewFeatureTransformer creates a transformer for the schema's predictors.
func NewFeatureTransformer(schema dataset.Schema, opts ...Option) *FeatureTransformer {
	ft := &FeatureTransformer{
		schema:        schema,
		unknownPolicy: RejectUnknown,
	}
	for _, opt := range opts {
		opt(ft)
	}
	return ft
}

// Fit computes per-column statistics and level sets from training rows.
func (ft *FeatureTransformer) Fit(t *dataset.Table) error {
	if t.Len() == 0 {
		return errors.NewEmptyInputError("FeatureTransformer.Fit")
	}

	ft.means = make(map[string]float64)
	ft.stds = make(map[string]float64)
	ft.levels = make(map[string][]string)
	ft.featureNames = nil

	for _, f := range ft.schema.Predictors {
		switch f.Kind {
		case dataset.KindNumeric:
			xs, err := columnFloats(t, f.Name, "FeatureTransformer.Fit")
			if err != nil {
				return err
			}
			mean, std := stat.MeanStdDev(xs, nil)
			// A constant column (or a single training row) has no spread;
			// recording std as 1 keeps the transform defined.
			if math.IsNaN(std) || std < 1e-8 {
				std = 1
			}
			ft.means[f.Name] = mean
			ft.stds[f.Name] = std
			ft.featureNames = append(ft.featureNames, f.Name)

		case dataset.KindCategorical:
			seen := make(map[string]bool)
			var levels []string
			for i := 0; i < t.Len(); i++ {
				v, err := cellValue(t.Row(i), f, "FeatureTransformer.Fit")
				if err != nil {
					return err
				}
				if !seen[v.Level()] {
					seen[v.Level()] = true
					levels = append(levels, v.Level())
				}
			}
			ft.levels[f.Name] = levels
			// The first-seen level is the dropped reference.
			for _, lv := range levels[1:] {
				ft.featureNames = append(ft.featureNames, f.Name+"="+lv)
			}
		}
	}

	ft.SetFitted()
	return nil
}

// Transform encodes rows with the fitted statistics. The result has
// t.Len() rows and NumFeatures() columns.
func (ft *FeatureTransformer) Transform(t *dataset.Table) (*mat.Dense, error) {
	if !ft.IsFitted() {
		return nil, errors.NewNotFittedError("FeatureTransformer", "Transform")
	}
	if t.Len() == 0 {
		return nil, errors.NewEmptyInputError("FeatureTransformer.Transform")
	}

	width := len(ft.featureNames)
	out := mat.NewDense(t.Len(), width, nil)

	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		col := 0
		for _, f := range ft.schema.Predictors {
			v, err := cellValue(row, f, "FeatureTransformer.Transform")
			if err != nil {
				return nil, err
			}
			switch f.Kind {
			case dataset.KindNumeric:
				out.Set(i, col, (v.Float()-ft.means[f.Name])/ft.stds[f.Name])
				col++
			case dataset.KindCategorical:
				levels := ft.levels[f.Name]
				idx := levelIndex(levels, v.Level())
				if idx < 0 && ft.unknownPolicy == RejectUnknown {
					return nil, errors.NewSchemaMismatchError("FeatureTransformer.Transform",
						f.Name, v.Level(), "level not seen during fit")
				}
				// Reference level (idx 0) and, under EncodeUnknownAsZero,
				// unseen levels both encode as all zeros.
				if idx > 0 {
					out.Set(i, col+idx-1, 1)
				}
				col += len(levels) - 1
			}
		}
	}
	return out, nil
}

// FitTransform fits on the rows and transforms them in one call.
func (ft *FeatureTransformer) FitTransform(t *dataset.Table) (*mat.Dense, error) {
	if err := ft.Fit(t); err != nil {
		return nil, err
	}
	return ft.Transform(t)
}

// FeatureNames returns the encoded column names in output order: numeric
// columns keep their name, indicators are "column=level".
func (ft *FeatureTransformer) FeatureNames() []string {
	out := make([]string, len(ft.featureNames))
	copy(out, ft.featureNames)
	return out
}

// NumFeatures returns the width of the encoded feature matrix.
func (ft *FeatureTransformer) NumFeatures() int {
	return len(ft.featureNames)
}

// Levels returns the learned levels for a categorical column in
// first-occurrence order, with the reference level first.
func (ft *FeatureTransformer) Levels(column string) []string {
	levels := ft.levels[column]
	out := make([]string, len(levels))
	copy(out, levels)
	return out
}

// String returns a short description for logs.
func (ft *FeatureTransformer) String() string {
	if !ft.IsFitted() {
		return "FeatureTransformer(unfitted)"
	}
	return fmt.Sprintf("FeatureTransformer(features=%d)", len(ft.featureNames))
}

var _ model.Transformer = (*FeatureTransformer)(nil)

func cellValue(row dataset.Row, f dataset.Field, op string) (dataset.Value, error) {
	v, ok := row[f.Name]
	if !ok {
		return dataset.Value{}, errors.NewSchemaMismatchError(op, f.Name, "", "column missing from row")
	}
	if v.Kind() != f.Kind {
		return dataset.Value{}, errors.NewSchemaMismatchError(op, f.Name, "",
			"value kind does not match schema ("+f.Kind.String()+" expected)")
	}
	return v, nil
}

func columnFloats(t *dataset.Table, col, op string) ([]float64, error) {
	out := make([]float64, t.Len())
	for i := 0; i < t.Len(); i++ {
		v, err := cellValue(t.Row(i), dataset.Field{Name: col, Kind: dataset.KindNumeric}, op)
		if err != nil {
			return nil, err
		}
		out[i] = v.Float()
	}
	return out, nil
}

func levelIndex(levels []string, level string) int {
	for i, lv := range levels {
		if lv == level {
			return i
		}
	}
	return -1
}
