package dataset

import (
	"github.com/YuminosukeSato/neighfit/pkg/errors"
)

// Field names a column and its kind.
type Field struct {
	Name string
	Kind Kind
}

// Mode distinguishes the two prediction modes.
type Mode int

const (
	// Classification predicts a categorical target.
	Classification Mode = iota
	// Regression predicts a numeric target.
	Regression
)

// String returns the mode name.
func (m Mode) String() string {
	if m == Regression {
		return "regression"
	}
	return "classification"
}

// Schema fixes, at pipeline construction, which columns are predictors, how
// each is typed, and which single column is the target.
type Schema struct {
	Predictors []Field
	Target     Field
}

// Mode derives the prediction mode from the target kind.
func (s Schema) Mode() Mode {
	if s.Target.Kind == KindNumeric {
		return Regression
	}
	return Classification
}

// PredictorNames returns the predictor column names in schema order.
func (s Schema) PredictorNames() []string {
	names := make([]string, len(s.Predictors))
	for i, f := range s.Predictors {
		names[i] = f.Name
	}
	return names
}

// Validate checks that every row of the table carries a correctly typed,
// non-missing value for each predictor and for the target.
func (s Schema) Validate(t *Table) error {
	fields := make([]Field, 0, len(s.Predictors)+1)
	fields = append(fields, s.Predictors...)
	fields = append(fields, s.Target)

	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		for _, f := range fields {
			v, ok := row[f.Name]
			if !ok || v.IsMissing() {
				return errors.NewSchemaMismatchError("Schema.Validate", f.Name, "", "missing value")
			}
			if v.Kind() != f.Kind {
				return errors.NewSchemaMismatchError("Schema.Validate", f.Name, "",
					"value kind does not match schema ("+f.Kind.String()+" expected)")
			}
		}
	}
	return nil
}
