package gp

import (
	"context"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gpr/core/model"
	"github.com/YuminosukeSato/gpr/kernel"
	"github.com/YuminosukeSato/gpr/pkg/errors"
	"github.com/YuminosukeSato/gpr/pkg/log"
	"github.com/YuminosukeSato/gpr/preprocessing"
)

const regressorName = "GaussianProcessRegressor"

var _ model.Estimator = (*Regressor)(nil)

// Regressor is a GP regression estimator. Fit stores a copy of the training
// data; nothing is precomputed, so each Predict rebuilds the kernel matrix.
type Regressor struct {
	model.BaseEstimator

	cfg config

	// X holds the training inputs, one row per sample.
	X [][]float64
	// Y holds the observations aligned with X.
	Y []float64
	// NFeatures is the dimensionality seen during Fit.
	NFeatures int

	// yScaler is set when WithNormalizeY is enabled; yFit then holds the
	// standardized observations.
	yScaler model.TargetTransformer
	yFit    []float64
}

// NewRegressor creates an unfitted Regressor.
//
// 使用例:
//
//	reg := gp.NewRegressor(gp.WithLengthScale(1))
//	err := reg.Fit(X, y)
//	p, err := reg.Predict([]float64{2022})
func NewRegressor(opts ...Option) *Regressor {
	return &Regressor{cfg: newConfig(opts)}
}

// LengthScale returns the configured ℓ.
func (r *Regressor) LengthScale() float64 {
	return r.cfg.lengthScale
}

// Noise returns the configured σ.
func (r *Regressor) Noise() float64 {
	return r.cfg.noise
}

// Fit copies X (n_samples × n_features) and the column vector y.
func (r *Regressor) Fit(X, y mat.Matrix) error {
	rows, cols := X.Dims()
	ry, cy := y.Dims()

	if rows == 0 || cols == 0 {
		return errors.NewModelError("GaussianProcessRegressor.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != rows {
		return errors.NewDimensionError("GaussianProcessRegressor.Fit", rows, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("GaussianProcessRegressor.Fit", "y must be a column vector")
	}
	if _, err := kernel.NewRBF(r.cfg.lengthScale); err != nil {
		return err
	}
	if r.cfg.noise < 0 {
		return errors.NewValidationError("noise", "must be non-negative", r.cfg.noise)
	}

	r.X = make([][]float64, rows)
	r.Y = make([]float64, rows)
	for i := 0; i < rows; i++ {
		r.X[i] = mat.Row(nil, i, X)
		r.Y[i] = y.At(i, 0)
	}
	r.NFeatures = cols
	r.yScaler, r.yFit = nil, r.Y
	if r.cfg.normalizeY {
		scaler := preprocessing.NewStandardScaler()
		z, err := scaler.FitTransform(y)
		if err != nil {
			return err
		}
		r.yScaler = scaler
		r.yFit = mat.Col(nil, 0, z)
	}
	r.SetFitted()

	logger := log.GetLoggerWithName("gp.regressor")
	logger.Debug("Fit completed",
		log.ModelNameKey, regressorName,
		log.OperationKey, log.OperationFit,
		log.SamplesKey, rows,
		log.FeaturesKey, cols,
		log.LengthScaleKey, r.cfg.lengthScale,
		log.NoiseKey, r.cfg.noise,
	)
	return nil
}

// Predict returns the posterior mean, variance and standard deviation at a
// single query point.
func (r *Regressor) Predict(xNew []float64) (Prediction, error) {
	if !r.IsFitted() {
		return Prediction{}, errors.NewNotFittedError(regressorName, "Predict")
	}
	if len(xNew) != r.NFeatures {
		return Prediction{}, errors.NewDimensionError("GaussianProcessRegressor.Predict", r.NFeatures, len(xNew), 1)
	}

	start := time.Now()
	p, err := predict(r.X, r.yFit, xNew, r.cfg)
	logger := log.GetLoggerWithName("gp.regressor")
	if err != nil {
		fields := []any{err,
			log.ModelNameKey, regressorName,
			log.OperationKey, log.OperationPredict,
		}
		if errors.Is(err, errors.ErrSingularMatrix) {
			fields = append(fields, log.ErrorCodeKey, log.ErrorSingularMatrix)
		}
		logger.Error("Predict failed", fields...)
		return Prediction{}, err
	}
	if r.yScaler != nil {
		p.Mean = r.yScaler.InverseValue(0, p.Mean)
		p.Variance = r.yScaler.InverseVariance(0, p.Variance)
		p.StdDev = math.Sqrt(r.yScaler.InverseVariance(0, p.StdDev*p.StdDev))
	}

	if logger.Enabled(context.Background(), log.LevelDebug) {
		logger.Debug("Predict completed",
			log.ModelNameKey, regressorName,
			log.OperationKey, log.OperationPredict,
			log.MeanKey, p.Mean,
			log.VarianceKey, p.Variance,
			log.StdDevKey, p.StdDev,
			log.DurationMsKey, time.Since(start).Milliseconds(),
		)
	}
	return p, nil
}

// TrainingKernel returns the kernel matrix over the training inputs with the
// configured length-scale and noise.
func (r *Regressor) TrainingKernel() (*mat.SymDense, error) {
	if !r.IsFitted() {
		return nil, errors.NewNotFittedError(regressorName, "TrainingKernel")
	}
	return kernel.Matrix(r.X, kernel.WithLengthScale(r.cfg.lengthScale), kernel.WithNoise(r.cfg.noise))
}

// Reset discards the training data.
func (r *Regressor) Reset() {
	r.BaseEstimator.Reset()
	r.X, r.Y, r.NFeatures = nil, nil, 0
	r.yScaler, r.yFit = nil, nil
}
