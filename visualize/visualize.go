// Package visualize renders diagnostic plots for tuning and prediction
// results. Each builder returns a *plot.Plot so callers choose the output
// format and size; SavePNG covers the common case.
package visualize

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/neighfit/modelselection"
	"github.com/YuminosukeSato/neighfit/pkg/errors"
)

// TuningCurve plots the aggregated cross-validation score against the
// candidate neighborhood size. Failed candidates are omitted.
func TuningCurve(result *modelselection.TuningResult, metricName string) (*plot.Plot, error) {
	if result == nil || len(result.Scores) == 0 {
		return nil, errors.NewEmptyInputError("TuningCurve")
	}

	ks := make([]int, 0, len(result.Scores))
	for k := range result.Scores {
		ks = append(ks, k)
	}
	sort.Ints(ks)

	xys := make(plotter.XYs, len(ks))
	for i, k := range ks {
		xys[i] = plotter.XY{X: float64(k), Y: result.Scores[k]}
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Cross-validated %s by neighborhood size", metricName)
	p.X.Label.Text = "k"
	p.Y.Label.Text = metricName

	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, errors.Wrap(err, "building tuning curve line")
	}
	line.Color = color.RGBA{R: 20, G: 80, B: 200, A: 220}
	line.Width = vg.Points(1.2)
	p.Add(line)

	pts, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, errors.Wrap(err, "building tuning curve points")
	}
	pts.GlyphStyle.Color = color.RGBA{R: 20, G: 80, B: 200, A: 255}
	pts.GlyphStyle.Radius = vg.Points(2.2)
	p.Add(pts)
	p.Legend.Add("mean score", pts)

	best, err := plotter.NewScatter(plotter.XYs{{
		X: float64(result.BestK()), Y: result.BestScore(),
	}})
	if err != nil {
		return nil, errors.Wrap(err, "marking selected candidate")
	}
	best.GlyphStyle.Color = color.RGBA{R: 200, G: 30, B: 30, A: 255}
	best.GlyphStyle.Radius = vg.Points(3.2)
	p.Add(best)
	p.Legend.Add("selected k", best)

	p.Add(plotter.NewGrid())
	return p, nil
}

// PredictedVsActual plots regression predictions against ground truth with
// the identity line as reference. Points on the line are exact predictions.
func PredictedVsActual(predicted, actual []float64) (*plot.Plot, error) {
	if len(predicted) == 0 {
		return nil, errors.NewEmptyInputError("PredictedVsActual")
	}
	if len(predicted) != len(actual) {
		return nil, errors.NewLengthMismatchError("PredictedVsActual", len(predicted), len(actual))
	}

	xys := make(plotter.XYs, len(predicted))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := range predicted {
		xys[i] = plotter.XY{X: actual[i], Y: predicted[i]}
		lo = math.Min(lo, math.Min(actual[i], predicted[i]))
		hi = math.Max(hi, math.Max(actual[i], predicted[i]))
	}

	p := plot.New()
	p.Title.Text = "Predicted vs actual"
	p.X.Label.Text = "actual"
	p.Y.Label.Text = "predicted"

	pts, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, errors.Wrap(err, "building prediction scatter")
	}
	pts.GlyphStyle.Color = color.RGBA{R: 20, G: 80, B: 200, A: 200}
	pts.GlyphStyle.Radius = vg.Points(1.8)
	p.Add(pts)
	p.Legend.Add("predictions", pts)

	ident, err := plotter.NewLine(plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: hi}})
	if err != nil {
		return nil, errors.Wrap(err, "building identity line")
	}
	ident.Color = color.RGBA{R: 120, G: 120, B: 120, A: 180}
	ident.Width = vg.Points(0.8)
	p.Add(ident)
	p.Legend.Add("y = x", ident)

	p.Add(plotter.NewGrid())
	return p, nil
}

// SavePNG writes the plot as an 8x6 inch PNG.
func SavePNG(p *plot.Plot, path string) error {
	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return errors.Wrap(err, "saving plot")
	}
	return nil
}
