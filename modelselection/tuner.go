package modelselection

import (
	"sort"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/neighfit/core/parallel"
	"github.com/YuminosukeSato/neighfit/dataset"
	"github.com/YuminosukeSato/neighfit/metrics"
	"github.com/YuminosukeSato/neighfit/pipeline"
	"github.com/YuminosukeSato/neighfit/pkg/errors"
	"github.com/YuminosukeSato/neighfit/pkg/log"
)

var (
	providerMu     sync.RWMutex
	globalProvider log.LoggerProvider
)

// SetLoggerProvider replaces the provider used by new tuners. Tests inject a
// capture provider here.
func SetLoggerProvider(p log.LoggerProvider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	globalProvider = p
}

func loggerFor(name string) log.Logger {
	providerMu.Lock()
	defer providerMu.Unlock()
	if globalProvider == nil {
		globalProvider = log.NewZerologProvider(log.LevelInfo)
	}
	return globalProvider.GetLoggerWithName(name)
}

// Direction says whether larger or smaller metric values are better.
type Direction int

const (
	// Maximize suits score metrics such as accuracy.
	Maximize Direction = iota
	// Minimize suits loss metrics such as RMSE.
	Minimize
)

// MetricSpec names the metric driving selection and its direction. The
// supported names are "accuracy" (classification) and "rmse", "mae", "r2"
// (regression).
type MetricSpec struct {
	Name      string
	Direction Direction
}

// AccuracySpec is the standard classification selection metric.
func AccuracySpec() MetricSpec {
	return MetricSpec{Name: "accuracy", Direction: Maximize}
}

// RMSESpec is the standard regression selection metric.
func RMSESpec() MetricSpec {
	return MetricSpec{Name: "rmse", Direction: Minimize}
}

// PipelineFactory builds a fresh pipeline for a candidate neighborhood size.
// The tuner fits one fresh instance per (k, fold) cell.
type PipelineFactory func(k int) *pipeline.Pipeline

// TuningResult maps every candidate k to either an aggregated metric value
// or the error that failed it. Candidates with no valid aggregate are
// explicitly marked rather than reported as a misleading partial mean.
type TuningResult struct {
	// Ks holds the candidates in the order they were evaluated.
	Ks []int

	// Scores holds the mean metric across all folds, per successful k.
	Scores map[int]float64

	// Failures holds the first cell error, per failed k.
	Failures map[int]error

	bestK int
}

// BestK returns the candidate with the best aggregated metric. Ties prefer
// the smaller k.
func (r *TuningResult) BestK() int { return r.bestK }

// BestScore returns the aggregated metric of the selected k.
func (r *TuningResult) BestScore() float64 { return r.Scores[r.bestK] }

// GridTuner evaluates a pipeline across a grid of neighborhood sizes using a
// cross-validation plan. The (k, fold) cells are independent, so they are
// dispatched across a worker pool; aggregation waits for every cell of a
// candidate before computing its mean.
type GridTuner struct {
	// Workers bounds the pool. Zero or negative selects the number of
	// available CPU cores.
	Workers int

	logger log.Logger
}

// NewGridTuner creates a tuner with the given worker bound.
func NewGridTuner(workers int) *GridTuner {
	return &GridTuner{Workers: workers, logger: loggerFor("GridTuner")}
}

// Tune fits and scores a fresh pipeline for every candidate k and every fold
// of the plan, aggregates per k by arithmetic mean, and selects the best
// candidate according to the metric's direction. A failed cell fails only
// that candidate; Tune errors out only when no candidate survives.
func (gt *GridTuner) Tune(factory PipelineFactory, ks []int, t *dataset.Table, plan CVPlan, spec MetricSpec) (*TuningResult, error) {
	const op = "GridTuner.Tune"

	if len(ks) == 0 {
		return nil, errors.NewEmptyInputError(op + " candidates")
	}
	folds := plan.Folds()
	if len(folds) == 0 {
		return nil, errors.NewEmptyInputError(op + " plan")
	}
	if !knownMetric(spec.Name) {
		return nil, errors.NewValueError(op, "unsupported metric "+spec.Name)
	}
	seen := make(map[int]bool, len(ks))
	for _, k := range ks {
		if seen[k] {
			return nil, errors.NewValueError(op, "duplicate candidate k")
		}
		seen[k] = true
	}

	start := time.Now()
	gt.logger.Info("grid search started",
		log.OperationKey, "tune",
		log.MetricKey, spec.Name,
		"candidates", len(ks),
		log.FoldsKey, len(folds)/len(plan),
		log.RepeatsKey, len(plan),
		log.SamplesKey, t.Len(),
	)

	nCells := len(ks) * len(folds)
	scores := make([]float64, nCells)
	cellErrs := make([]error, nCells)

	parallel.For(nCells, gt.Workers, func(cell int) {
		ki := cell / len(folds)
		fi := cell % len(folds)
		score, err := evaluateCell(factory(ks[ki]), t, folds[fi], spec)
		if err != nil {
			cellErrs[cell] = errors.Wrapf(err, "k=%d fold=%d", ks[ki], fi)
			return
		}
		scores[cell] = score
	})

	result := &TuningResult{
		Ks:       append([]int(nil), ks...),
		Scores:   make(map[int]float64, len(ks)),
		Failures: make(map[int]error),
	}
	for ki, k := range ks {
		from := ki * len(folds)
		to := from + len(folds)

		var failed error
		for _, err := range cellErrs[from:to] {
			if err != nil {
				failed = err
				break
			}
		}
		if failed != nil {
			// One failed cell fails the whole candidate; a partial mean is
			// never reported.
			result.Failures[k] = failed
			gt.logger.Warn("candidate failed",
				log.NeighborsKey, k,
				log.ErrKey, failed,
			)
			continue
		}
		result.Scores[k] = stat.Mean(scores[from:to], nil)
	}

	if len(result.Scores) == 0 {
		return nil, errors.Wrap(firstFailure(result), op+": every candidate failed")
	}

	result.bestK = selectBest(result.Scores, spec.Direction)
	gt.logger.Info("grid search finished",
		log.BestKKey, result.bestK,
		log.ScoreKey, result.Scores[result.bestK],
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return result, nil
}

// evaluateCell fits a fresh pipeline on the fold's fit rows and scores the
// chosen metric on its holdout rows.
func evaluateCell(p *pipeline.Pipeline, t *dataset.Table, fold Fold, spec MetricSpec) (float64, error) {
	fitTbl := t.Select(fold.Fit)
	holdTbl := t.Select(fold.Holdout)

	if err := p.Fit(fitTbl); err != nil {
		return 0, err
	}

	target := p.Schema().Target.Name
	switch spec.Name {
	case "accuracy":
		predicted, err := p.PredictLabels(holdTbl)
		if err != nil {
			return 0, err
		}
		actual, err := holdTbl.Labels(target)
		if err != nil {
			return 0, err
		}
		return metrics.Accuracy(predicted, actual)

	default: // rmse, mae, r2
		predicted, err := p.PredictValues(holdTbl)
		if err != nil {
			return 0, err
		}
		actual, err := holdTbl.Numeric(target)
		if err != nil {
			return 0, err
		}
		switch spec.Name {
		case "mae":
			return metrics.MAE(predicted, actual)
		case "r2":
			return metrics.R2Score(predicted, actual)
		default:
			return metrics.RMSE(predicted, actual)
		}
	}
}

func knownMetric(name string) bool {
	switch name {
	case "accuracy", "rmse", "mae", "r2":
		return true
	}
	return false
}

// selectBest picks the direction-wise best k, preferring the smaller k on
// ties.
func selectBest(scores map[int]float64, dir Direction) int {
	ks := make([]int, 0, len(scores))
	for k := range scores {
		ks = append(ks, k)
	}
	sort.Ints(ks)

	best := ks[0]
	for _, k := range ks[1:] {
		if dir == Maximize && scores[k] > scores[best] {
			best = k
		}
		if dir == Minimize && scores[k] < scores[best] {
			best = k
		}
	}
	return best
}

func firstFailure(r *TuningResult) error {
	for _, k := range r.Ks {
		if err, ok := r.Failures[k]; ok {
			return err
		}
	}
	return nil
}
