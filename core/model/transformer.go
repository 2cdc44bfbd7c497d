package model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/neighfit/dataset"
)

// Transformer is a fit-once-apply-many feature transformation stage. Fit
// learns the stage's state from training rows; Transform applies that state
// to any table and yields an encoded feature matrix with a fixed column
// layout. Additional preprocessing steps chain by implementing this same
// contract.
type Transformer interface {
	// Fit learns the transformation parameters from training rows.
	Fit(t *dataset.Table) error

	// Transform applies the learned parameters to the given rows.
	Transform(t *dataset.Table) (*mat.Dense, error)

	// FitTransform fits on the rows and transforms them in one call.
	FitTransform(t *dataset.Table) (*mat.Dense, error)
}
