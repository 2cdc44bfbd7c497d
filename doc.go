// Package neighfit provides distance-based supervised learning for Go:
// a fit-once feature transformer, k-nearest-neighbor classification and
// regression, and the model-selection machinery around them.
//
// The library is organized around a tabular dataset with a declared schema.
// Numeric predictors are standardized and categorical predictors one-hot
// encoded with a dropped reference level, so Euclidean distance is meaningful
// across mixed columns. The prediction mode follows the schema: a categorical
// target selects classification by neighbor vote, a numeric target selects
// regression by neighbor mean.
//
// # Quick Start
//
// Fit a classifier and score held-out rows:
//
//	tbl, schema := dataset.MakeBlobs(300, 42)
//	train, test, err := modelselection.TrainTestSplit(tbl, 0.75,
//	    modelselection.SplitOptions{StratifyColumn: "class", Seed: 42})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	p := pipeline.New(schema, 5)
//	if err := p.Fit(train); err != nil {
//	    log.Fatal(err)
//	}
//	predicted, err := p.PredictLabels(test)
//
// Pick k by repeated cross-validation:
//
//	plan, _ := modelselection.Plan(train, 5, 2,
//	    modelselection.CVOptions{StratifyColumn: "class", Seed: 42})
//	ks, _ := modelselection.KRange(1, 15, 2)
//	tuner := modelselection.NewGridTuner(0)
//	result, err := tuner.Tune(
//	    func(k int) *pipeline.Pipeline { return pipeline.New(schema, k) },
//	    ks, train, plan, modelselection.AccuracySpec(),
//	)
//
// # Packages
//
//   - dataset: tabular data, schemas, CSV loading, synthetic generators
//   - preprocessing: the fit-once feature transformer
//   - neighbors: the distance index and kNN predictors
//   - modelselection: train/test splits, cross-validation plans, grid tuning
//   - metrics: classification and regression evaluation
//   - pipeline: transformer plus predictor as one fit/predict unit
//   - visualize: tuning curves and prediction diagnostics
//
// All random operations are seeded explicitly, so splits, fold plans, and
// synthetic data are reproducible across runs.
package neighfit
