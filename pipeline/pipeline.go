// Package pipeline composes the feature transformer and a k-nearest-neighbor
// predictor into a single fit/predict unit. The prediction mode follows the
// schema: a categorical target selects classification, a numeric target
// selects regression.
package pipeline

import (
	"sync"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/neighfit/core/model"
	"github.com/YuminosukeSato/neighfit/dataset"
	"github.com/YuminosukeSato/neighfit/neighbors"
	"github.com/YuminosukeSato/neighfit/pkg/errors"
	"github.com/YuminosukeSato/neighfit/pkg/log"
	"github.com/YuminosukeSato/neighfit/preprocessing"
)

var (
	providerMu     sync.RWMutex
	globalProvider log.LoggerProvider
)

// SetLoggerProvider replaces the provider used by new pipelines. Tests
// inject a capture provider here.
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

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithTransformerOptions forwards options to the feature transformer, e.g.
// the unknown-level policy.
func WithTransformerOptions(opts ...preprocessing.Option) Option {
	return func(p *Pipeline) {
		p.transformerOpts = opts
	}
}

// Pipeline is the fit-once-predict-many modeling unit. After Fit its learned
// state is immutable, so one fitted pipeline may serve concurrent
// predictions.
type Pipeline struct {
	model.BaseEstimator

	schema          dataset.Schema
	k               int
	transformerOpts []preprocessing.Option

	transformer *preprocessing.FeatureTransformer
	classifier  *neighbors.KNNClassifier
	regressor   *neighbors.KNNRegressor

	logger log.Logger
}

// New creates an unfitted pipeline for the schema with neighborhood size k.
func New(schema dataset.Schema, k int, opts ...Option) *Pipeline {
	p := &Pipeline{
		schema: schema,
		k:      k,
		logger: loggerFor("Pipeline"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// K returns the neighborhood size the pipeline was built with.
func (p *Pipeline) K() int { return p.k }

// Schema returns the schema the pipeline was built with.
func (p *Pipeline) Schema() dataset.Schema { return p.schema }

// Mode returns the prediction mode derived from the schema.
func (p *Pipeline) Mode() dataset.Mode { return p.schema.Mode() }

// Fit learns the feature transformation from the training rows and indexes
// the encoded vectors in the predictor for the schema's mode.
func (p *Pipeline) Fit(t *dataset.Table) error {
	if t.Len() == 0 {
		return errors.NewEmptyInputError("Pipeline.Fit")
	}

	start := time.Now()
	p.transformer = preprocessing.NewFeatureTransformer(p.schema, p.transformerOpts...)
	X, err := p.transformer.FitTransform(t)
	if err != nil {
		return errors.Wrap(err, "fitting feature transformer")
	}

	switch p.schema.Mode() {
	case dataset.Classification:
		labels, err := t.Labels(p.schema.Target.Name)
		if err != nil {
			return errors.Wrap(err, "extracting target labels")
		}
		clf := neighbors.NewKNNClassifier(p.k)
		if err := clf.Fit(X, labels); err != nil {
			return errors.Wrap(err, "fitting classifier")
		}
		p.classifier = clf

	case dataset.Regression:
		targets, err := t.Numeric(p.schema.Target.Name)
		if err != nil {
			return errors.Wrap(err, "extracting target values")
		}
		reg := neighbors.NewKNNRegressor(p.k)
		if err := reg.Fit(X, targets); err != nil {
			return errors.Wrap(err, "fitting regressor")
		}
		p.regressor = reg
	}

	p.SetFitted()
	p.logger.Info("pipeline fitted",
		log.OperationKey, "fit",
		log.SamplesKey, t.Len(),
		log.FeaturesKey, p.transformer.NumFeatures(),
		log.NeighborsKey, p.k,
		"mode", p.schema.Mode().String(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// PredictLabels predicts class labels for the rows, aligned 1:1 with input
// order. Only valid in classification mode.
func (p *Pipeline) PredictLabels(t *dataset.Table) ([]string, error) {
	if !p.IsFitted() {
		return nil, errors.NewNotFittedError("Pipeline", "PredictLabels")
	}
	if p.schema.Mode() != dataset.Classification {
		return nil, errors.NewValueError("Pipeline.PredictLabels", "pipeline is in regression mode")
	}

	X, err := p.transform(t)
	if err != nil {
		return nil, err
	}
	return p.classifier.Predict(X)
}

// PredictValues predicts numeric targets for the rows, aligned 1:1 with
// input order. Only valid in regression mode.
func (p *Pipeline) PredictValues(t *dataset.Table) ([]float64, error) {
	if !p.IsFitted() {
		return nil, errors.NewNotFittedError("Pipeline", "PredictValues")
	}
	if p.schema.Mode() != dataset.Regression {
		return nil, errors.NewValueError("Pipeline.PredictValues", "pipeline is in classification mode")
	}

	X, err := p.transform(t)
	if err != nil {
		return nil, err
	}
	return p.regressor.Predict(X)
}

// Classes returns the label set observed in training, in first-occurrence
// order. Only meaningful in classification mode after Fit.
func (p *Pipeline) Classes() []string {
	if p.classifier == nil {
		return nil
	}
	return p.classifier.Classes()
}

// FeatureNames returns the encoded feature column names after Fit.
func (p *Pipeline) FeatureNames() []string {
	if p.transformer == nil {
		return nil
	}
	return p.transformer.FeatureNames()
}

func (p *Pipeline) transform(t *dataset.Table) (*mat.Dense, error) {
	X, err := p.transformer.Transform(t)
	if err != nil {
		return nil, errors.Wrap(err, "transforming prediction rows")
	}
	return X, nil
}
