// Package dataset defines the tabular data model the modeling pipeline
// consumes: typed values, rows keyed by column name, and an ordered Table
// with a fixed column set.
package dataset

import (
	"math"

	"github.com/YuminosukeSato/neighfit/pkg/errors"
)

// Kind classifies a column or value as numeric or categorical.
type Kind int

const (
	// KindNumeric marks continuous values.
	KindNumeric Kind = iota
	// KindCategorical marks discrete string-valued levels.
	KindCategorical
)

// String returns the kind name.
func (k Kind) String() string {
	if k == KindCategorical {
		return "categorical"
	}
	return "numeric"
}

// Value is a typed cell: either a numeric value or a categorical level.
type Value struct {
	kind Kind
	num  float64
	str  string
}

// Num creates a numeric value.
func Num(v float64) Value {
	return Value{kind: KindNumeric, num: v}
}

// Cat creates a categorical value.
func Cat(level string) Value {
	return Value{kind: KindCategorical, str: level}
}

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// Float returns the numeric payload. Only meaningful for KindNumeric.
func (v Value) Float() float64 { return v.num }

// Level returns the categorical payload. Only meaningful for KindCategorical.
func (v Value) Level() string { return v.str }

// IsMissing reports whether the value should be treated as absent: NaN for
// numerics, the empty level for categoricals.
func (v Value) IsMissing() bool {
	if v.kind == KindNumeric {
		return math.IsNaN(v.num)
	}
	return v.str == ""
}

// Row maps column names to values.
type Row map[string]Value

// Table is an ordered sequence of rows sharing one column set. The pipeline
// requires complete rows; DropIncomplete is the filter callers apply before
// handing a Table in.
type Table struct {
	columns []string
	rows    []Row
}

// New creates a Table over the given column order. Rows are stored as given;
// completeness is enforced by DropIncomplete or by the consuming component.
func New(columns []string, rows []Row) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{columns: cols, rows: rows}
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Columns returns the column order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Row returns the i-th row.
func (t *Table) Row(i int) Row { return t.rows[i] }

// Select returns a new Table holding the rows at the given indices, in the
// given order. Row maps are shared, not copied.
func (t *Table) Select(indices []int) *Table {
	rows := make([]Row, len(indices))
	for i, idx := range indices {
		rows[i] = t.rows[idx]
	}
	return &Table{columns: t.columns, rows: rows}
}

// DropIncomplete returns a Table containing only rows that carry a
// non-missing value for every column, plus the number of rows removed.
func (t *Table) DropIncomplete() (*Table, int) {
	kept := make([]Row, 0, len(t.rows))
	for _, row := range t.rows {
		complete := true
		for _, col := range t.columns {
			v, ok := row[col]
			if !ok || v.IsMissing() {
				complete = false
				break
			}
		}
		if complete {
			kept = append(kept, row)
		}
	}
	return &Table{columns: t.columns, rows: kept}, len(t.rows) - len(kept)
}

// Labels extracts a categorical column as a string slice.
func (t *Table) Labels(col string) ([]string, error) {
	out := make([]string, len(t.rows))
	for i, row := range t.rows {
		v, ok := row[col]
		if !ok {
			return nil, errors.NewSchemaMismatchError("Table.Labels", col, "", "column missing from row")
		}
		if v.Kind() != KindCategorical {
			return nil, errors.NewSchemaMismatchError("Table.Labels", col, "", "column is not categorical")
		}
		out[i] = v.Level()
	}
	return out, nil
}

// Numeric extracts a numeric column as a float slice.
func (t *Table) Numeric(col string) ([]float64, error) {
	out := make([]float64, len(t.rows))
	for i, row := range t.rows {
		v, ok := row[col]
		if !ok {
			return nil, errors.NewSchemaMismatchError("Table.Numeric", col, "", "column missing from row")
		}
		if v.Kind() != KindNumeric {
			return nil, errors.NewSchemaMismatchError("Table.Numeric", col, "", "column is not numeric")
		}
		out[i] = v.Float()
	}
	return out, nil
}
