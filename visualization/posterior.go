// Package visualization renders GP posteriors over one-dimensional inputs.
package visualization

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/gpr/gp"
	"github.com/YuminosukeSato/gpr/pkg/errors"
)

// Grid は評価点の範囲 [From, To] を Steps 点で等分する
type Grid struct {
	From  float64
	To    float64
	Steps int
}

func (g Grid) validate() error {
	if g.Steps < 2 {
		return errors.NewValidationError("steps", "must be at least 2", g.Steps)
	}
	if !(g.From < g.To) {
		return errors.NewValidationError("to", "must be greater than from", g.To)
	}
	return nil
}

// at returns the i-th grid value.
func (g Grid) at(i int) float64 {
	return g.From + (g.To-g.From)*float64(i)/float64(g.Steps-1)
}

// Curve is the posterior evaluated on a grid.
type Curve struct {
	Mean  plotter.XYs
	Upper plotter.XYs
	Lower plotter.XYs
}

// Evaluate は格子点ごとに1点ずつ予測し、平均と ±2σ の帯を返す
func Evaluate(reg *gp.Regressor, g Grid) (*Curve, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	if !reg.IsFitted() {
		return nil, errors.NewNotFittedError("GaussianProcessRegressor", "Evaluate")
	}
	if reg.NFeatures != 1 {
		return nil, errors.NewDimensionError("visualization.Evaluate", 1, reg.NFeatures, 1)
	}

	c := &Curve{
		Mean:  make(plotter.XYs, g.Steps),
		Upper: make(plotter.XYs, g.Steps),
		Lower: make(plotter.XYs, g.Steps),
	}
	for i := 0; i < g.Steps; i++ {
		x := g.at(i)
		p, err := reg.Predict([]float64{x})
		if err != nil {
			return nil, errors.Wrapf(err, "predict at %g", x)
		}
		c.Mean[i] = plotter.XY{X: x, Y: p.Mean}
		c.Upper[i] = plotter.XY{X: x, Y: p.Mean + 2*p.StdDev}
		c.Lower[i] = plotter.XY{X: x, Y: p.Mean - 2*p.StdDev}
	}
	return c, nil
}

// Posterior builds a plot of the posterior mean, the ±2σ band and the
// training observations.
func Posterior(reg *gp.Regressor, g Grid) (*plot.Plot, error) {
	c, err := Evaluate(reg, g)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = "GP posterior"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid())

	mean, err := plotter.NewLine(c.Mean)
	if err != nil {
		return nil, errors.Wrap(err, "mean line")
	}
	mean.LineStyle.Width = vg.Points(1.5)
	mean.LineStyle.Color = color.RGBA{B: 200, A: 255}

	band := color.RGBA{R: 120, G: 120, B: 200, A: 255}
	upper, err := plotter.NewLine(c.Upper)
	if err != nil {
		return nil, errors.Wrap(err, "upper band")
	}
	upper.LineStyle.Color = band
	upper.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}

	lower, err := plotter.NewLine(c.Lower)
	if err != nil {
		return nil, errors.Wrap(err, "lower band")
	}
	lower.LineStyle.Color = band
	lower.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}

	obs := make(plotter.XYs, len(reg.X))
	for i := range reg.X {
		obs[i] = plotter.XY{X: reg.X[i][0], Y: reg.Y[i]}
	}
	scatter, err := plotter.NewScatter(obs)
	if err != nil {
		return nil, errors.Wrap(err, "observations")
	}
	scatter.GlyphStyle.Color = color.RGBA{R: 200, A: 255}
	scatter.GlyphStyle.Radius = vg.Points(2.5)

	p.Add(upper, lower, mean, scatter)
	p.Legend.Add("mean", mean)
	p.Legend.Add("±2σ", upper)
	p.Legend.Add("observed", scatter)
	p.Legend.Top = true

	return p, nil
}

// SavePosterior renders Posterior to path. The image format follows the
// file extension (png, svg, pdf, ...).
func SavePosterior(reg *gp.Regressor, g Grid, path string) error {
	p, err := Posterior(reg, g)
	if err != nil {
		return err
	}
	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "save plot to %s", path)
	}
	return nil
}
