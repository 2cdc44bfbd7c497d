package modelselection

import (
	"testing"

	"github.com/YuminosukeSato/neighfit/dataset"
	"github.com/YuminosukeSato/neighfit/pipeline"
	"github.com/YuminosukeSato/neighfit/pkg/errors"
	"github.com/YuminosukeSato/neighfit/pkg/log"
)

func TestGridTunerPicksSmallestPerfectK(t *testing.T) {
	tbl, schema := dataset.MakeBlobs(100, 13)

	plan, err := Plan(tbl, 5, 2, CVOptions{StratifyColumn: "class", Seed: 2})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	factory := func(k int) *pipeline.Pipeline { return pipeline.New(schema, k) }
	tuner := NewGridTuner(4)

	result, err := tuner.Tune(factory, []int{1, 3, 5}, tbl, plan, AccuracySpec())
	if err != nil {
		t.Fatalf("Tune: %v", err)
	}

	// The blobs are far apart, so every k scores a perfect mean accuracy and
	// the tie resolves to the smallest candidate.
	if got := result.BestK(); got != 1 {
		t.Errorf("BestK() = %d, want 1", got)
	}
	if got := result.BestScore(); got != 1 {
		t.Errorf("BestScore() = %v, want 1", got)
	}
	for _, k := range []int{1, 3, 5} {
		if _, ok := result.Scores[k]; !ok {
			t.Errorf("no aggregated score for k=%d", k)
		}
	}
	if len(result.Failures) != 0 {
		t.Errorf("unexpected failures: %v", result.Failures)
	}
}

func TestGridTunerMarksFailedCandidates(t *testing.T) {
	tbl, schema := dataset.MakeBlobs(20, 9)

	plan, err := Plan(tbl, 4, 1, CVOptions{Seed: 4})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	// Each fit set has 15 rows, so k=40 cannot be satisfied while k=3 can.
	factory := func(k int) *pipeline.Pipeline { return pipeline.New(schema, k) }
	tuner := NewGridTuner(2)

	result, err := tuner.Tune(factory, []int{3, 40}, tbl, plan, AccuracySpec())
	if err != nil {
		t.Fatalf("Tune: %v", err)
	}

	if _, ok := result.Scores[3]; !ok {
		t.Error("k=3 should have an aggregated score")
	}
	if _, ok := result.Scores[40]; ok {
		t.Error("k=40 should not report a partial mean")
	}
	if result.Failures[40] == nil {
		t.Error("k=40 should be marked failed")
	}
	if got := result.BestK(); got != 3 {
		t.Errorf("BestK() = %d, want 3", got)
	}
}

func TestGridTunerAllCandidatesFail(t *testing.T) {
	tbl, schema := dataset.MakeBlobs(20, 9)
	plan, err := Plan(tbl, 4, 1, CVOptions{Seed: 4})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	factory := func(k int) *pipeline.Pipeline { return pipeline.New(schema, k) }
	tuner := NewGridTuner(2)

	if _, err := tuner.Tune(factory, []int{100, 200}, tbl, plan, AccuracySpec()); err == nil {
		t.Error("expected an error when every candidate fails")
	}
}

func TestGridTunerMinimizeDirection(t *testing.T) {
	tbl, schema := dataset.MakeLinear(80, 0.1, 21)

	plan, err := Plan(tbl, 4, 1, CVOptions{Seed: 6})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	factory := func(k int) *pipeline.Pipeline { return pipeline.New(schema, k) }
	tuner := NewGridTuner(0)

	result, err := tuner.Tune(factory, []int{2, 5, 10}, tbl, plan, RMSESpec())
	if err != nil {
		t.Fatalf("Tune: %v", err)
	}

	best := result.BestScore()
	for k, score := range result.Scores {
		if score < best {
			t.Errorf("k=%d scored %v, below the selected best %v", k, score, best)
		}
	}
}

func TestGridTunerValidation(t *testing.T) {
	tbl, schema := dataset.MakeBlobs(30, 1)
	plan, err := Plan(tbl, 3, 1, CVOptions{Seed: 1})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	factory := func(k int) *pipeline.Pipeline { return pipeline.New(schema, k) }
	tuner := NewGridTuner(1)

	var emptyErr *errors.EmptyInputError
	if _, err := tuner.Tune(factory, nil, tbl, plan, AccuracySpec()); !errors.As(err, &emptyErr) {
		t.Errorf("empty grid: got %v, want EmptyInputError", err)
	}
	if _, err := tuner.Tune(factory, []int{3}, tbl, nil, AccuracySpec()); !errors.As(err, &emptyErr) {
		t.Errorf("nil plan: got %v, want EmptyInputError", err)
	}
	var valErr *errors.ValueError
	if _, err := tuner.Tune(factory, []int{3}, tbl, plan, MetricSpec{Name: "f1", Direction: Maximize}); !errors.As(err, &valErr) {
		t.Errorf("unknown metric: got %v, want ValueError", err)
	}
	if _, err := tuner.Tune(factory, []int{3, 3}, tbl, plan, AccuracySpec()); !errors.As(err, &valErr) {
		t.Errorf("duplicate candidate: got %v, want ValueError", err)
	}
}

func TestGridTunerLogsPlanShape(t *testing.T) {
	capture := log.NewCaptureProvider(log.LevelDebug)
	SetLoggerProvider(capture)
	defer SetLoggerProvider(log.NewZerologProvider(log.LevelInfo))

	tbl, schema := dataset.MakeBlobs(40, 3)
	plan, err := Plan(tbl, 4, 2, CVOptions{Seed: 3})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	tuner := NewGridTuner(1)
	if _, err := tuner.Tune(
		func(k int) *pipeline.Pipeline { return pipeline.New(schema, k) },
		[]int{3}, tbl, plan, AccuracySpec(),
	); err != nil {
		t.Fatalf("Tune: %v", err)
	}

	field := func(rec log.Record, key string) (any, bool) {
		for i := 0; i+1 < len(rec.Fields); i += 2 {
			if rec.Fields[i] == key {
				return rec.Fields[i+1], true
			}
		}
		return nil, false
	}

	found := false
	for _, rec := range capture.Records() {
		if rec.Message != "grid search started" {
			continue
		}
		found = true
		if v, ok := field(rec, log.FoldsKey); !ok || v != 4 {
			t.Errorf("folds field = %v, want 4", v)
		}
		if v, ok := field(rec, log.RepeatsKey); !ok || v != 2 {
			t.Errorf("repeats field = %v, want 2", v)
		}
	}
	if !found {
		t.Error("expected a start record for the grid search")
	}
}

func TestKRange(t *testing.T) {
	tests := []struct {
		name         string
		lo, hi, step int
		want         []int
		wantErr      bool
	}{
		{name: "inclusive bounds", lo: 1, hi: 9, step: 2, want: []int{1, 3, 5, 7, 9}},
		{name: "step overshoots hi", lo: 1, hi: 10, step: 4, want: []int{1, 5, 9}},
		{name: "single candidate", lo: 5, hi: 5, step: 1, want: []int{5}},
		{name: "lo below one", lo: 0, hi: 5, step: 1, wantErr: true},
		{name: "hi below lo", lo: 5, hi: 3, step: 1, wantErr: true},
		{name: "zero step", lo: 1, hi: 5, step: 0, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := KRange(tt.lo, tt.hi, tt.step)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("KRange: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestKLogRange(t *testing.T) {
	got, err := KLogRange(1, 100, 5)
	if err != nil {
		t.Fatalf("KLogRange: %v", err)
	}
	if got[0] != 1 || got[len(got)-1] != 100 {
		t.Errorf("endpoints = %d, %d, want 1 and 100", got[0], got[len(got)-1])
	}
	for i := 1; i < len(got); i++ {
		if got[i] <= got[i-1] {
			t.Errorf("candidates not strictly increasing: %v", got)
		}
	}

	if _, err := KLogRange(10, 1, 3); err == nil {
		t.Error("expected an error for hi below lo")
	}
}
