package log

// Attribute keys shared by neighfit components, so log output stays
// greppable across packages.
const (
	// ComponentKey identifies the emitting component ("Pipeline", "GridTuner").
	ComponentKey = "component"

	// OperationKey identifies the operation ("fit", "predict", "tune").
	OperationKey = "operation"

	// SamplesKey is the number of rows involved.
	SamplesKey = "samples"

	// FeaturesKey is the width of the encoded feature matrix.
	FeaturesKey = "features"

	// NeighborsKey is the k hyperparameter.
	NeighborsKey = "k"

	// FoldsKey is the fold count of a cross-validation plan.
	FoldsKey = "folds"

	// RepeatsKey is the repeat count of a cross-validation plan.
	RepeatsKey = "repeats"

	// MetricKey is a metric name ("accuracy", "rmse").
	MetricKey = "metric"

	// ScoreKey is a metric value.
	ScoreKey = "score"

	// BestKKey is the selected neighborhood size after tuning.
	BestKKey = "best_k"

	// DurationMsKey is elapsed wall time in milliseconds.
	DurationMsKey = "duration_ms"

	// ErrKey is the key errors are logged under.
	ErrKey = "error"
)
