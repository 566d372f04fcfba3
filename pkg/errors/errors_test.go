package errors

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		kind    string
		err     error
		wantMsg string
	}{
		{
			name:    "with original error",
			op:      "PredictMean",
			kind:    "singular matrix",
			err:     ErrSingularMatrix,
			wantMsg: "gpr: PredictMean: singular matrix: singular matrix",
		},
		{
			name:    "without original error",
			op:      "PosteriorBlocks",
			kind:    "no training points",
			err:     nil,
			wantMsg: "gpr: PosteriorBlocks: no training points",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			formatted := fmt.Sprintf("%+v", err)
			if !strings.Contains(formatted, "errors_test.go") {
				t.Error("Expected stack trace to contain test file name")
			}

			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}

			if tt.err != nil && !Is(err, tt.err) {
				t.Errorf("Expected Is(err, %v) to be true", tt.err)
			}
		})
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("RBF", 2, 3, 1)

	want := "gpr: RBF: dimension mismatch on axis 1 (features). Expected 2, got 3"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Fatal("Error should be castable to *DimensionError")
	}
	if dimErr.Expected != 2 || dimErr.Got != 3 {
		t.Errorf("unexpected fields: %+v", dimErr)
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("GaussianProcessRegressor", "Predict")

	want := "gpr: GaussianProcessRegressor: this model is not fitted yet. Call Fit() before using Predict()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var notFittedErr *NotFittedError
	if !As(err, &notFittedErr) {
		t.Error("Error should be castable to *NotFittedError")
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("length_scale", "must be positive", -1.0)

	want := "gpr: validation failed for parameter 'length_scale': must be positive (got: -1)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var valErr *ValidationError
	if !As(err, &valErr) {
		t.Error("Error should be castable to *ValidationError")
	}
}

func TestNegativeVarianceWarning(t *testing.T) {
	w := NewNegativeVarianceWarning(-1e-12)

	if !strings.Contains(w.Error(), "-1e-12") {
		t.Errorf("warning message should contain the variance, got %q", w.Error())
	}

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	logger.Warn().EmbedObject(w).Msg("clipped")
	if !strings.Contains(buf.String(), `"type":"NegativeVarianceWarning"`) {
		t.Errorf("zerolog output missing type field: %s", buf.String())
	}
}

func TestWarnRouting(t *testing.T) {
	original := warningHandler
	var got []error
	SetWarningHandler(func(w error) { got = append(got, w) })
	defer SetWarningHandler(original)

	Warn(NewNegativeVarianceWarning(-0.5))
	if len(got) != 1 {
		t.Fatalf("expected 1 warning through handler, got %d", len(got))
	}

	var viaZerolog int
	SetZerologWarnFunc(func(error) { viaZerolog++ })
	defer SetZerologWarnFunc(nil)

	Warn(NewNegativeVarianceWarning(-0.5))
	if viaZerolog != 1 || len(got) != 1 {
		t.Errorf("zerolog func should take precedence: zerolog=%d handler=%d", viaZerolog, len(got))
	}
}

func TestWrapAndIs(t *testing.T) {
	wrapped := Wrap(ErrSingularMatrix, "in PredictVariance")

	if !Is(wrapped, ErrSingularMatrix) {
		t.Error("Expected Is(wrapped, ErrSingularMatrix) to be true")
	}
	if !strings.Contains(wrapped.Error(), "in PredictVariance") {
		t.Error("Expected wrapped error to contain wrapping message")
	}

	wrappedf := Wrapf(ErrEmptyData, "in %s: expected at least %d rows", "PosteriorBlocks", 1)
	if !Is(wrappedf, ErrEmptyData) {
		t.Error("Expected Is(wrappedf, ErrEmptyData) to be true")
	}
}

func TestCheckScalar(t *testing.T) {
	if err := CheckScalar("predict_mean", 1.5); err != nil {
		t.Errorf("finite value should pass, got %v", err)
	}

	err := CheckScalar("predict_mean", math.NaN())
	var instErr *NumericalInstabilityError
	if !As(err, &instErr) {
		t.Fatalf("expected NumericalInstabilityError, got %v", err)
	}
	if instErr.Operation != "predict_mean" {
		t.Errorf("Operation = %q, want predict_mean", instErr.Operation)
	}
}

func TestCheckMatrix(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	if err := CheckMatrix("kernel_inverse", m, 2, 2); err != nil {
		t.Errorf("identity should pass, got %v", err)
	}

	m.Set(1, 0, math.Inf(1))
	if err := CheckMatrix("kernel_inverse", m, 2, 2); err == nil {
		t.Error("expected error for Inf entry")
	}
}
