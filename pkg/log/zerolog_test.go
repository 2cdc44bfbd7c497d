package log

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestZerologProviderEmitsStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	provider := NewZerologProviderWithLogger(zerolog.New(&buf), LevelInfo)

	logger := provider.GetLoggerWithName("GridTuner")
	logger.Info("sweep finished",
		NeighborsKey, 5,
		ScoreKey, 0.93,
	)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if record[ComponentKey] != "GridTuner" {
		t.Errorf("component = %v, want GridTuner", record[ComponentKey])
	}
	if record[NeighborsKey] != float64(5) {
		t.Errorf("k = %v, want 5", record[NeighborsKey])
	}
	if record[ScoreKey] != 0.93 {
		t.Errorf("score = %v, want 0.93", record[ScoreKey])
	}
}

func TestZerologProviderLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	provider := NewZerologProviderWithLogger(zerolog.New(&buf), LevelWarn)

	logger := provider.GetLogger()
	logger.Info("should be dropped")
	if buf.Len() != 0 {
		t.Errorf("info record emitted below warn level: %q", buf.String())
	}

	if logger.Enabled(context.Background(), LevelDebug) {
		t.Error("Enabled(debug) = true at warn level")
	}
	if !logger.Enabled(context.Background(), LevelError) {
		t.Error("Enabled(error) = false at warn level")
	}
}

func TestCaptureProviderRecords(t *testing.T) {
	provider := NewCaptureProvider(LevelDebug)

	logger := provider.GetLoggerWithName("Pipeline").With(NeighborsKey, 3)
	logger.Debug("fitting", SamplesKey, 150)

	records := provider.Records()
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Message != "fitting" {
		t.Errorf("message = %q", records[0].Message)
	}
}

func TestToLogLevel(t *testing.T) {
	if got := ToLogLevel("debug"); got != LevelDebug {
		t.Errorf("ToLogLevel(debug) = %v", got)
	}
	if got := ToLogLevel("nonsense"); got != LevelInfo {
		t.Errorf("ToLogLevel(nonsense) = %v, want info", got)
	}
}
