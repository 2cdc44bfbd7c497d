package metrics

import (
	"math"
	"strings"
	"testing"

	"github.com/YuminosukeSato/neighfit/pkg/errors"
)

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name      string
		predicted []string
		actual    []string
		want      float64
		wantErr   bool
	}{
		{
			name:      "all correct",
			predicted: []string{"a", "b", "a"},
			actual:    []string{"a", "b", "a"},
			want:      1,
		},
		{
			name:      "three of four",
			predicted: []string{"a", "b", "a", "b"},
			actual:    []string{"a", "b", "a", "a"},
			want:      0.75,
		},
		{
			name:      "none correct",
			predicted: []string{"b", "a"},
			actual:    []string{"a", "b"},
			want:      0,
		},
		{
			name:    "empty",
			wantErr: true,
		},
		{
			name:      "length mismatch",
			predicted: []string{"a"},
			actual:    []string{"a", "b"},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Accuracy(tt.predicted, tt.actual)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Accuracy() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Accuracy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfusionMatrixCounts(t *testing.T) {
	actual := []string{"a", "a", "a", "b", "b", "c"}
	predicted := []string{"a", "b", "a", "b", "b", "a"}
	labels := []string{"a", "b", "c"}

	cm, err := NewConfusionMatrix(predicted, actual, labels)
	if err != nil {
		t.Fatalf("NewConfusionMatrix: %v", err)
	}

	checks := []struct {
		actual, predicted string
		want              int
	}{
		{"a", "a", 2},
		{"a", "b", 1},
		{"b", "b", 2},
		{"c", "a", 1},
		{"c", "c", 0},
	}
	for _, c := range checks {
		got, err := cm.At(c.actual, c.predicted)
		if err != nil {
			t.Fatalf("At(%s,%s): %v", c.actual, c.predicted, err)
		}
		if got != c.want {
			t.Errorf("At(%s,%s) = %d, want %d", c.actual, c.predicted, got, c.want)
		}
	}

	if cm.Total() != 6 {
		t.Errorf("Total = %d, want 6", cm.Total())
	}

	// Row sums are the per-class actual counts.
	rowSums := cm.ActualTotals()
	if rowSums["a"] != 3 || rowSums["b"] != 2 || rowSums["c"] != 1 {
		t.Errorf("ActualTotals = %v", rowSums)
	}
	colSums := cm.PredictedTotals()
	if colSums["a"] != 3 || colSums["b"] != 3 || colSums["c"] != 0 {
		t.Errorf("PredictedTotals = %v", colSums)
	}
}

func TestConfusionMatrixRejectsUnknownLabel(t *testing.T) {
	var unkErr *errors.UnknownLabelError

	_, err := NewConfusionMatrix([]string{"x"}, []string{"a"}, []string{"a", "b"})
	if !errors.As(err, &unkErr) {
		t.Errorf("unknown predicted label: got %v, want UnknownLabelError", err)
	}

	_, err = NewConfusionMatrix([]string{"a"}, []string{"x"}, []string{"a", "b"})
	if !errors.As(err, &unkErr) {
		t.Errorf("unknown actual label: got %v, want UnknownLabelError", err)
	}
}

func TestConfusionMatrixString(t *testing.T) {
	cm, err := NewConfusionMatrix([]string{"a", "b"}, []string{"a", "a"}, []string{"a", "b"})
	if err != nil {
		t.Fatalf("NewConfusionMatrix: %v", err)
	}
	out := cm.String()
	if !strings.Contains(out, "actual") {
		t.Errorf("rendered matrix missing header: %q", out)
	}
}
