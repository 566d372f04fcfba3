package kernel

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gpr/core/parallel"
	"github.com/YuminosukeSato/gpr/pkg/errors"
)

// Rows at or below this count are filled on the calling goroutine.
const parallelThreshold = 256

// Option configures Matrix.
type Option func(*matrixConfig)

type matrixConfig struct {
	lengthScale float64
	noise       float64
}

// WithLengthScale sets the RBF length-scale (default 1).
func WithLengthScale(l float64) Option {
	return func(c *matrixConfig) {
		c.lengthScale = l
	}
}

// WithNoise sets the value added to every diagonal entry (default 0).
func WithNoise(sigma float64) Option {
	return func(c *matrixConfig) {
		c.noise = sigma
	}
}

// Matrix builds the N×N RBF kernel matrix over X with M[i,j] = k(X[i], X[j])
// and σ added to the diagonal afterwards. An empty X yields an empty matrix.
func Matrix(X [][]float64, opts ...Option) (*mat.SymDense, error) {
	cfg := matrixConfig{lengthScale: DefaultLengthScale}
	for _, opt := range opts {
		opt(&cfg)
	}

	k, err := NewRBF(cfg.lengthScale)
	if err != nil {
		return nil, errors.Wrap(err, "kernel.Matrix")
	}
	return Build(k, X, cfg.noise)
}

// Build computes the kernel matrix of X under k and adds noise·I. All rows of
// X must share one dimensionality.
func Build(k Kernel, X [][]float64, noise float64) (*mat.SymDense, error) {
	if math.IsNaN(noise) || math.IsInf(noise, 0) || noise < 0 {
		return nil, errors.NewValidationError("noise", "must be a non-negative finite number", noise)
	}

	n := len(X)
	if n == 0 {
		return &mat.SymDense{}, nil
	}

	dim := len(X[0])
	for _, x := range X[1:] {
		if len(x) != dim {
			return nil, errors.NewDimensionError("kernel.Build", dim, len(x), 1)
		}
	}

	// Row i writes (i, j) and (j, i) for j >= i, so ranges never overlap.
	data := make([]float64, n*n)
	rowErrs := make([]error, n)
	parallel.ParallelizeWithThreshold(n, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for j := i; j < n; j++ {
				v, err := k.Eval(X[i], X[j])
				if err != nil {
					rowErrs[i] = err
					break
				}
				data[i*n+j] = v
				data[j*n+i] = v
			}
		}
	})
	for _, err := range rowErrs {
		if err != nil {
			return nil, err
		}
	}

	m := mat.NewSymDense(n, data)
	if noise != 0 {
		for i := 0; i < n; i++ {
			m.SetSym(i, i, m.At(i, i)+noise)
		}
	}
	return m, nil
}

// Format writes m one row per line with every entry printed as "%.3f, ".
func Format(w io.Writer, m mat.Matrix) error {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if _, err := fmt.Fprintf(w, "%.3f, ", m.At(i, j)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
