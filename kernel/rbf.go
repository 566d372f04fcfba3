// Package kernel provides the RBF covariance function and the kernel
// (covariance) matrix builder used by the Gaussian Process predictor.
package kernel

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/gpr/pkg/errors"
)

// DefaultLengthScale is the RBF length-scale used when none is given.
const DefaultLengthScale = 1.0

// Kernel computes the covariance between two input vectors.
type Kernel interface {
	Eval(xn, xm []float64) (float64, error)
}

var _ Kernel = (*RBFKernel)(nil)

// RBFKernel is the squared-exponential kernel
// k(xn, xm) = exp(-‖xn − xm‖² / (2ℓ²)).
type RBFKernel struct {
	lengthScale float64
}

// NewRBF returns an RBF kernel with the given length-scale.
func NewRBF(lengthScale float64) (*RBFKernel, error) {
	if err := validateLengthScale("NewRBF", lengthScale); err != nil {
		return nil, err
	}
	return &RBFKernel{lengthScale: lengthScale}, nil
}

// LengthScale returns ℓ.
func (k *RBFKernel) LengthScale() float64 {
	return k.lengthScale
}

// Eval implements Kernel.
func (k *RBFKernel) Eval(xn, xm []float64) (float64, error) {
	return rbf(xn, xm, k.lengthScale)
}

// RBF evaluates the RBF kernel between xn and xm. The result lies in (0, 1]
// and is exactly 1 when xn == xm. Vectors of different length yield a
// *errors.DimensionError.
func RBF(xn, xm []float64, lengthScale float64) (float64, error) {
	if err := validateLengthScale("RBF", lengthScale); err != nil {
		return 0, err
	}
	return rbf(xn, xm, lengthScale)
}

func rbf(xn, xm []float64, l float64) (float64, error) {
	if len(xn) != len(xm) {
		return 0, errors.NewDimensionError("RBF", len(xn), len(xm), 1)
	}
	d := floats.Distance(xn, xm, 2)
	return math.Exp(-d * d / (2 * l * l)), nil
}

func validateLengthScale(op string, l float64) error {
	if math.IsNaN(l) || math.IsInf(l, 0) || l <= 0 {
		return errors.Wrap(errors.NewValidationError("length_scale", "must be a positive finite number", l), op)
	}
	return nil
}
