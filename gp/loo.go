package gp

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gpr/core/parallel"
	"github.com/YuminosukeSato/gpr/metrics"
	"github.com/YuminosukeSato/gpr/pkg/errors"
	"github.com/YuminosukeSato/gpr/pkg/log"
)

// Folds at or below this count run on the calling goroutine.
const looParallelThreshold = 32

// LOOResult holds leave-one-out predictions and their error metrics.
type LOOResult struct {
	// Means[i] and Variances[i] predict y[i] from every other point.
	Means     []float64
	Variances []float64

	MSE  float64
	RMSE float64
	MAE  float64
	// R2 is NaN when y has no variance.
	R2 float64
	// NLPD is NaN when some held-out variance is not positive.
	NLPD float64
}

// LeaveOneOut predicts each training observation from the remaining N−1
// points, one single-point prediction per fold, and scores the held-out
// means against y. It needs at least two points.
func LeaveOneOut(X [][]float64, y []float64, opts ...Option) (*LOOResult, error) {
	n := len(X)
	if len(y) != n {
		return nil, errors.NewDimensionError("LeaveOneOut", n, len(y), 0)
	}
	if n < 2 {
		return nil, errors.NewModelError("LeaveOneOut", "at least two training points are required", errors.ErrEmptyData)
	}
	cfg := newConfig(opts)

	res := &LOOResult{
		Means:     make([]float64, n),
		Variances: make([]float64, n),
	}
	foldErrs := make([]error, n)
	parallel.ParallelizeWithThreshold(n, looParallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			Xi := make([][]float64, 0, n-1)
			yi := make([]float64, 0, n-1)
			Xi = append(append(Xi, X[:i]...), X[i+1:]...)
			yi = append(append(yi, y[:i]...), y[i+1:]...)

			p, err := predict(Xi, yi, X[i], cfg)
			if err != nil {
				foldErrs[i] = errors.Wrapf(err, "fold %d", i)
				continue
			}
			res.Means[i] = p.Mean
			res.Variances[i] = p.Variance
		}
	})
	for _, err := range foldErrs {
		if err != nil {
			return nil, err
		}
	}

	yTrue := mat.NewVecDense(n, y)
	yPred := mat.NewVecDense(n, res.Means)
	var err error
	if res.MSE, err = metrics.MSE(yTrue, yPred); err != nil {
		return nil, err
	}
	if res.RMSE, err = metrics.RMSE(yTrue, yPred); err != nil {
		return nil, err
	}
	if res.MAE, err = metrics.MAE(yTrue, yPred); err != nil {
		return nil, err
	}
	res.R2, err = metrics.R2Score(yTrue, yPred)
	if err != nil {
		res.R2 = math.NaN()
	}
	res.NLPD, err = metrics.NLPD(yTrue, yPred, mat.NewVecDense(n, res.Variances))
	if err != nil {
		res.NLPD = math.NaN()
	}

	log.GetLoggerWithName("gp.loo").Debug("Leave-one-out completed",
		log.OperationKey, log.OperationLeaveOneOut,
		log.SamplesKey, n,
		log.RMSEKey, res.RMSE,
		log.R2ScoreKey, res.R2,
	)
	return res, nil
}
