package gp

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gpr/pkg/errors"
)

// PredictMean returns the posterior mean k · K⁻¹ · y at xNew given training
// inputs X and observations y.
func PredictMean(X [][]float64, y []float64, xNew []float64, opts ...Option) (mean float64, err error) {
	defer errors.Recover(&err, "PredictMean")

	if len(y) != len(X) {
		return 0, errors.NewDimensionError("PredictMean", len(X), len(y), 0)
	}
	b, err := posteriorBlocks(X, xNew, newConfig(opts))
	if err != nil {
		return 0, err
	}
	return b.mean("PredictMean", y)
}

// PredictVariance returns the posterior variance k** − k · K⁻¹ · k at xNew.
// The value is not clipped; see StdDev.
func PredictVariance(X [][]float64, xNew []float64, opts ...Option) (variance float64, err error) {
	defer errors.Recover(&err, "PredictVariance")

	b, err := posteriorBlocks(X, xNew, newConfig(opts))
	if err != nil {
		return 0, err
	}
	return b.variance("PredictVariance")
}

// StdDev converts a posterior variance into a standard deviation. Negative
// variances, which only arise from rounding on ill-conditioned inputs, are
// clipped to zero and reported through errors.Warn.
func StdDev(variance float64) float64 {
	if variance < 0 {
		errors.Warn(errors.NewNegativeVarianceWarning(variance))
		return 0
	}
	return math.Sqrt(variance)
}

// Prediction is the posterior at a single query point.
type Prediction struct {
	Mean     float64
	Variance float64
	StdDev   float64
}

// predict computes mean and variance from one set of blocks.
func predict(X [][]float64, y []float64, xNew []float64, cfg config) (p Prediction, err error) {
	defer errors.Recover(&err, "predict")

	if len(y) != len(X) {
		return Prediction{}, errors.NewDimensionError("predict", len(X), len(y), 0)
	}
	b, err := posteriorBlocks(X, xNew, cfg)
	if err != nil {
		return Prediction{}, err
	}
	w, err := b.weights("predict")
	if err != nil {
		return Prediction{}, err
	}

	p.Mean = mat.Dot(w, mat.NewVecDense(len(y), y))
	p.Variance = b.Self - mat.Dot(w, b.Cross)
	if err := errors.CheckScalar("predict_mean", p.Mean); err != nil {
		return Prediction{}, err
	}
	if err := errors.CheckScalar("predict_variance", p.Variance); err != nil {
		return Prediction{}, err
	}
	p.StdDev = StdDev(p.Variance)
	return p, nil
}

func (b *Blocks) mean(op string, y []float64) (float64, error) {
	w, err := b.weights(op)
	if err != nil {
		return 0, err
	}
	m := mat.Dot(w, mat.NewVecDense(len(y), y))
	if err := errors.CheckScalar("predict_mean", m); err != nil {
		return 0, err
	}
	return m, nil
}

func (b *Blocks) variance(op string) (float64, error) {
	w, err := b.weights(op)
	if err != nil {
		return 0, err
	}
	v := b.Self - mat.Dot(w, b.Cross)
	if err := errors.CheckScalar("predict_variance", v); err != nil {
		return 0, err
	}
	return v, nil
}
