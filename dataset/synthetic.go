package dataset

import (
	"math/rand/v2"
)

// MakeBlobs generates n rows from two well-separated Gaussian clusters with
// two numeric predictors (x1, x2) and a binary categorical target (class).
// Rows alternate between the clusters, so both classes get n/2 rows up to
// rounding. Deterministic for a fixed seed.
func MakeBlobs(n int, seed uint64) (*Table, Schema) {
	r := rand.New(rand.NewPCG(seed, seed))

	centers := [2][2]float64{{0, 0}, {6, 6}}
	classes := [2]string{"a", "b"}

	rows := make([]Row, n)
	for i := 0; i < n; i++ {
		c := i % 2
		rows[i] = Row{
			"x1":    Num(centers[c][0] + r.NormFloat64()),
			"x2":    Num(centers[c][1] + r.NormFloat64()),
			"class": Cat(classes[c]),
		}
	}

	schema := Schema{
		Predictors: []Field{
			{Name: "x1", Kind: KindNumeric},
			{Name: "x2", Kind: KindNumeric},
		},
		Target: Field{Name: "class", Kind: KindCategorical},
	}
	return New([]string{"x1", "x2", "class"}, rows), schema
}

// MakeLinear generates n rows with one numeric predictor x uniform on
// [0, 10) and a numeric target y = 3x + 2 + noise*N(0, 1). Deterministic for
// a fixed seed.
func MakeLinear(n int, noise float64, seed uint64) (*Table, Schema) {
	r := rand.New(rand.NewPCG(seed, seed))

	rows := make([]Row, n)
	for i := 0; i < n; i++ {
		x := r.Float64() * 10
		rows[i] = Row{
			"x": Num(x),
			"y": Num(3*x + 2 + noise*r.NormFloat64()),
		}
	}

	schema := Schema{
		Predictors: []Field{{Name: "x", Kind: KindNumeric}},
		Target:     Field{Name: "y", Kind: KindNumeric},
	}
	return New([]string{"x", "y"}, rows), schema
}
