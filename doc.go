// Package gpr provides Gaussian process regression with a radial basis
// function (RBF) kernel, built on gonum.
//
// Given observed input/output pairs, gpr predicts the posterior mean and
// variance at one new input point. The kernel matrix, the posterior blocks and
// the predictor are exposed as plain functions, and gp.Regressor wraps them in
// a Fit/Predict estimator.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/gpr/gp"
//	)
//
//	func main() {
//	    X := [][]float64{{0}, {1}, {2}}
//	    y := []float64{0, 1, 4}
//
//	    mean, err := gp.PredictMean(X, y, []float64{1.5})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    variance, err := gp.PredictVariance(X, []float64{1.5})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(mean, gp.StdDev(variance))
//	}
//
// # Packages
//
//   - kernel: RBF kernel function and kernel matrix builder
//   - gp: posterior mean/variance, Regressor, leave-one-out validation
//   - metrics: regression metrics (MSE, RMSE, MAE, R², NLPD)
//   - visualization: posterior plots with gonum/plot
//   - core/model: estimator interfaces and fitted state
//   - core/parallel: row-chunked parallel loops
//   - pkg/errors: structured errors with stack traces
//   - pkg/log: slog / zerolog logging
//   - pkg/config: YAML dataset and run configuration
//
// The gpr command (cmd/gpr) exposes predict, kernel, demo, validate and plot.
//
// # Numerical notes
//
// The posterior uses an explicit inverse of the training kernel matrix. A
// singular or badly conditioned matrix (for example duplicated inputs without
// noise) is reported as errors.ErrSingularMatrix. Variances may come out
// slightly negative under rounding; gp.StdDev clips them to zero and raises a
// NegativeVarianceWarning.
package gpr
