package gp

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gpr/kernel"
	"github.com/YuminosukeSato/gpr/pkg/errors"
)

// Blocks holds the partition of the augmented (N+1)×(N+1) kernel matrix.
type Blocks struct {
	// K is the training covariance, N×N.
	K *mat.SymDense
	// Cross is the covariance between each training input and the query.
	Cross *mat.VecDense
	// Self is the covariance of the query with itself.
	Self float64
}

// PosteriorBlocks builds the kernel matrix over X with xNew appended as the
// last row and splits it into K, the cross-covariance and the self-covariance.
// The augmented matrix is always built without noise; WithNoise only touches
// the diagonal of the returned K.
func PosteriorBlocks(X [][]float64, xNew []float64, opts ...Option) (*Blocks, error) {
	cfg := newConfig(opts)
	return posteriorBlocks(X, xNew, cfg)
}

func posteriorBlocks(X [][]float64, xNew []float64, cfg config) (*Blocks, error) {
	n := len(X)
	if n == 0 {
		return nil, errors.NewModelError("PosteriorBlocks", "at least one training input is required", errors.ErrEmptyData)
	}
	if len(xNew) != len(X[0]) {
		return nil, errors.NewDimensionError("PosteriorBlocks", len(X[0]), len(xNew), 1)
	}
	if math.IsNaN(cfg.noise) || math.IsInf(cfg.noise, 0) || cfg.noise < 0 {
		return nil, errors.NewValidationError("noise", "must be a non-negative finite number", cfg.noise)
	}

	combined := make([][]float64, n+1)
	copy(combined, X)
	combined[n] = xNew

	full, err := kernel.Matrix(combined, kernel.WithLengthScale(cfg.lengthScale))
	if err != nil {
		return nil, err
	}

	K := mat.NewSymDense(n, nil)
	cross := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			K.SetSym(i, j, full.At(i, j))
		}
		cross.SetVec(i, full.At(i, n))
	}
	if cfg.noise > 0 {
		for i := 0; i < n; i++ {
			K.SetSym(i, i, K.At(i, i)+cfg.noise)
		}
	}

	return &Blocks{K: K, Cross: cross, Self: full.At(n, n)}, nil
}

// weights returns K⁻¹·k, which equals (k·K⁻¹)ᵀ since K is symmetric.
func (b *Blocks) weights(op string) (*mat.VecDense, error) {
	var inv mat.Dense
	if err := inv.Inverse(b.K); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) {
			return nil, errors.NewModelError(op, "training covariance is not invertible",
				errors.Wrapf(errors.ErrSingularMatrix, "condition number %.3g", float64(cond)))
		}
		return nil, errors.NewModelError(op, "training covariance is not invertible",
			errors.Wrap(errors.ErrSingularMatrix, err.Error()))
	}
	n := b.Cross.Len()
	if err := errors.CheckMatrix(op, &inv, n, n); err != nil {
		return nil, err
	}

	w := mat.NewVecDense(n, nil)
	w.MulVec(inv.T(), b.Cross)
	return w, nil
}
