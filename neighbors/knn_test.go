package neighbors

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/neighfit/pkg/errors"
)

func TestQueryKEqualsOneReturnsClosestRow(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		0, 0,
		5, 5,
		1, 1,
		9, 9,
	})
	di := NewDistanceIndex()
	if err := di.Fit(X); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	nbrs, err := di.Query([]float64{0.9, 0.9}, 1)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if nbrs[0].Index != 2 {
		t.Errorf("nearest index = %d, want 2", nbrs[0].Index)
	}
}

func TestQueryTiesPreferLowerIndex(t *testing.T) {
	// Rows 1 and 2 are equidistant from the origin query.
	X := mat.NewDense(3, 2, []float64{
		10, 10,
		0, 2,
		2, 0,
	})
	di := NewDistanceIndex()
	if err := di.Fit(X); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	nbrs, err := di.Query([]float64{0, 0}, 2)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if nbrs[0].Index != 1 || nbrs[1].Index != 2 {
		t.Errorf("tie order = [%d %d], want [1 2]", nbrs[0].Index, nbrs[1].Index)
	}
}

func TestQueryValidatesK(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	di := NewDistanceIndex()
	if err := di.Fit(X); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	var hpErr *errors.HyperparameterError
	if _, err := di.Query([]float64{0}, 0); !errors.As(err, &hpErr) {
		t.Errorf("k=0: got %v, want HyperparameterError", err)
	}
	if _, err := di.Query([]float64{0}, 4); !errors.As(err, &hpErr) {
		t.Errorf("k=4 on 3 rows: got %v, want HyperparameterError", err)
	}

	var dimErr *errors.DimensionError
	if _, err := di.Query([]float64{0, 0}, 1); !errors.As(err, &dimErr) {
		t.Errorf("wrong width query: got %v, want DimensionError", err)
	}
}

func TestClassifierMajorityVote(t *testing.T) {
	X := mat.NewDense(5, 1, []float64{0, 0.1, 0.2, 10, 10.1})
	labels := []string{"a", "a", "a", "b", "b"}

	clf := NewKNNClassifier(3)
	if err := clf.Fit(X, labels); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	pred, err := clf.Predict(mat.NewDense(2, 1, []float64{0.05, 10.05}))
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if pred[0] != "a" || pred[1] != "b" {
		t.Errorf("predictions = %v, want [a b]", pred)
	}
}

func TestClassifierVoteTieBreaksByNearestRank(t *testing.T) {
	// k=2 neighborhood always contains one "a" and one "b"; the winner must
	// be the label of the closer neighbor.
	X := mat.NewDense(2, 1, []float64{0, 1})
	labels := []string{"a", "b"}

	clf := NewKNNClassifier(2)
	if err := clf.Fit(X, labels); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	pred, err := clf.Predict(mat.NewDense(2, 1, []float64{0.1, 0.9}))
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if pred[0] != "a" {
		t.Errorf("query near a: predicted %q", pred[0])
	}
	if pred[1] != "b" {
		t.Errorf("query near b: predicted %q", pred[1])
	}
}

func TestClassifierFitValidation(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{1, 2, 3})

	var hpErr *errors.HyperparameterError
	if err := NewKNNClassifier(4).Fit(X, []string{"a", "b", "a"}); !errors.As(err, &hpErr) {
		t.Errorf("k > rows: got %v, want HyperparameterError", err)
	}
	if err := NewKNNClassifier(0).Fit(X, []string{"a", "b", "a"}); !errors.As(err, &hpErr) {
		t.Errorf("k = 0: got %v, want HyperparameterError", err)
	}

	var lenErr *errors.LengthMismatchError
	if err := NewKNNClassifier(1).Fit(X, []string{"a"}); !errors.As(err, &lenErr) {
		t.Errorf("label mismatch: got %v, want LengthMismatchError", err)
	}

	var nfErr *errors.NotFittedError
	if _, err := NewKNNClassifier(1).Predict(X); !errors.As(err, &nfErr) {
		t.Errorf("predict before fit: got %v, want NotFittedError", err)
	}
}

func TestClassifierClasses(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{0, 1, 2, 3})
	clf := NewKNNClassifier(1)
	if err := clf.Fit(X, []string{"b", "a", "b", "c"}); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	got := clf.Classes()
	want := []string{"b", "a", "c"}
	if len(got) != len(want) {
		t.Fatalf("Classes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Classes = %v, want first-occurrence order %v", got, want)
			break
		}
	}
}

func TestRegressorMeanOfNeighbors(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{0, 1, 2, 100})
	y := []float64{10, 20, 30, 1000}

	reg := NewKNNRegressor(3)
	if err := reg.Fit(X, y); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	pred, err := reg.Predict(mat.NewDense(1, 1, []float64{1}))
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if math.Abs(pred[0]-20) > 1e-12 {
		t.Errorf("prediction = %v, want mean(10,20,30) = 20", pred[0])
	}
}

func TestRegressorKEqualsOne(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{0, 0, 5, 5, 10, 10})
	y := []float64{1, 2, 3}

	reg := NewKNNRegressor(1)
	if err := reg.Fit(X, y); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	pred, err := reg.Predict(mat.NewDense(1, 2, []float64{5.1, 4.9}))
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if pred[0] != 2 {
		t.Errorf("k=1 prediction = %v, want the single closest target 2", pred[0])
	}
}

func TestConcurrentQueriesAreSafe(t *testing.T) {
	X := mat.NewDense(50, 2, nil)
	for i := 0; i < 50; i++ {
		X.Set(i, 0, float64(i))
		X.Set(i, 1, float64(i%7))
	}
	di := NewDistanceIndex()
	if err := di.Fit(X); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	done := make(chan error, 8)
	for g := 0; g < 8; g++ {
		go func(g int) {
			for q := 0; q < 100; q++ {
				if _, err := di.Query([]float64{float64(g), float64(q % 7)}, 5); err != nil {
					done <- err
					return
				}
			}
			done <- nil
		}(g)
	}
	for g := 0; g < 8; g++ {
		if err := <-done; err != nil {
			t.Fatalf("concurrent query: %v", err)
		}
	}
}
