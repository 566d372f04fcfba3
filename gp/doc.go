// Package gp implements Gaussian Process regression with an RBF kernel.
//
// The predictor stacks the training inputs and the query point, builds the
// augmented kernel matrix over both, and reads the posterior from its blocks:
//
//	K   = training covariance (N×N)
//	k   = cross-covariance between training inputs and the query (N)
//	k** = self-covariance of the query (1 under RBF)
//
//	mean     = k · K⁻¹ · y
//	variance = k** − k · K⁻¹ · k
//
// PredictMean and PredictVariance are pure functions. Regressor wraps them in
// a Fit/Predict estimator that keeps a copy of the training data. Every call
// predicts exactly one query point.
//
// The training block is inverted directly, without Cholesky or automatic
// jitter. A singular or ill-conditioned K is reported as an error wrapping
// errors.ErrSingularMatrix. The variance may come out slightly negative for
// ill-conditioned inputs; use StdDev to turn it into a standard deviation.
package gp
