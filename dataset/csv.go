package dataset

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"

	"github.com/YuminosukeSato/neighfit/pkg/errors"
)

// ReadCSV builds a Table from CSV input. The first record must be a header;
// only columns named by the schema are kept, in schema order (predictors
// then target). Empty cells and "NA" parse as missing values so the caller
// can filter them with DropIncomplete. A numeric cell that fails to parse is
// an error, not a silent missing value.
func ReadCSV(r io.Reader, schema Schema) (*Table, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "reading CSV header")
	}

	fields := make([]Field, 0, len(schema.Predictors)+1)
	fields = append(fields, schema.Predictors...)
	fields = append(fields, schema.Target)

	colIdx := make(map[string]int, len(header))
	for i, name := range header {
		colIdx[name] = i
	}
	for _, f := range fields {
		if _, ok := colIdx[f.Name]; !ok {
			return nil, errors.NewSchemaMismatchError("ReadCSV", f.Name, "", "column missing from CSV header")
		}
	}

	var rows []Row
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading CSV line %d", line)
		}

		row := make(Row, len(fields))
		for _, f := range fields {
			cell := record[colIdx[f.Name]]
			v, err := parseCell(cell, f)
			if err != nil {
				return nil, errors.Wrapf(err, "CSV line %d", line)
			}
			row[f.Name] = v
		}
		rows = append(rows, row)
	}

	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}
	return New(columns, rows), nil
}

func parseCell(cell string, f Field) (Value, error) {
	if cell == "" || cell == "NA" {
		if f.Kind == KindNumeric {
			// NaN is the missing marker for numerics; see Value.IsMissing.
			return Num(math.NaN()), nil
		}
		return Cat(""), nil
	}
	if f.Kind == KindCategorical {
		return Cat(cell), nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return Value{}, errors.NewValueError("ReadCSV", "column "+f.Name+": cannot parse "+strconv.Quote(cell)+" as numeric")
	}
	return Num(v), nil
}
