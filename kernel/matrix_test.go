package kernel

import (
	"bytes"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gpr/pkg/errors"
)

func TestMatrixSymmetricWithUnitDiagonal(t *testing.T) {
	X := [][]float64{{0}, {1}, {2}, {3.5}, {-2}}

	m, err := Matrix(X)
	if err != nil {
		t.Fatalf("Matrix() error = %v", err)
	}

	n, c := m.Dims()
	if n != len(X) || c != len(X) {
		t.Fatalf("Dims() = %d×%d, want %d×%d", n, c, len(X), len(X))
	}

	for i := 0; i < n; i++ {
		if m.At(i, i) != 1 {
			t.Errorf("M[%d,%d] = %v, want 1", i, i, m.At(i, i))
		}
		for j := 0; j < n; j++ {
			if m.At(i, j) != m.At(j, i) {
				t.Errorf("M[%d,%d]=%v != M[%d,%d]=%v", i, j, m.At(i, j), j, i, m.At(j, i))
			}
			want, _ := RBF(X[i], X[j], 1)
			if m.At(i, j) != want {
				t.Errorf("M[%d,%d] = %v, want %v", i, j, m.At(i, j), want)
			}
		}
	}
}

func TestMatrixNoiseOnDiagonalOnly(t *testing.T) {
	X := [][]float64{{0, 0}, {1, 0}, {0, 1}}

	plain, err := Matrix(X)
	if err != nil {
		t.Fatal(err)
	}
	noisy, err := Matrix(X, WithNoise(0.1))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if noisy.At(i, i) != 1.1 {
			t.Errorf("diagonal M[%d,%d] = %v, want 1.1", i, i, noisy.At(i, i))
		}
		for j := 0; j < 3; j++ {
			if i != j && noisy.At(i, j) != plain.At(i, j) {
				t.Errorf("off-diagonal M[%d,%d] changed by noise: %v vs %v", i, j, noisy.At(i, j), plain.At(i, j))
			}
		}
	}
}

func TestMatrixDegenerateSizes(t *testing.T) {
	empty, err := Matrix(nil)
	if err != nil {
		t.Fatalf("Matrix(nil) error = %v", err)
	}
	if r, c := empty.Dims(); r != 0 || c != 0 {
		t.Errorf("Matrix(nil) dims = %d×%d, want 0×0", r, c)
	}

	single, err := Matrix([][]float64{{7}}, WithNoise(0.25))
	if err != nil {
		t.Fatal(err)
	}
	if r, c := single.Dims(); r != 1 || c != 1 {
		t.Fatalf("dims = %d×%d, want 1×1", r, c)
	}
	if single.At(0, 0) != 1.25 {
		t.Errorf("M[0,0] = %v, want 1.25", single.At(0, 0))
	}
}

func TestMatrixLengthScale(t *testing.T) {
	m, err := Matrix([][]float64{{0}, {2}}, WithLengthScale(2))
	if err != nil {
		t.Fatal(err)
	}
	want := math.Exp(-0.5)
	if math.Abs(m.At(0, 1)-want) > 1e-15 {
		t.Errorf("M[0,1] = %v, want %v", m.At(0, 1), want)
	}
}

func TestMatrixParallelMatchesSequential(t *testing.T) {
	n := parallelThreshold + 37
	X := make([][]float64, n)
	for i := range X {
		X[i] = []float64{float64(i) * 0.1, math.Sin(float64(i))}
	}

	m, err := Matrix(X, WithLengthScale(0.7))
	if err != nil {
		t.Fatal(err)
	}

	k, _ := NewRBF(0.7)
	for _, idx := range [][2]int{{0, 0}, {0, n - 1}, {n - 1, 3}, {128, 200}, {n / 2, n / 3}} {
		want, _ := k.Eval(X[idx[0]], X[idx[1]])
		if got := m.At(idx[0], idx[1]); got != want {
			t.Errorf("M[%d,%d] = %v, want %v", idx[0], idx[1], got, want)
		}
	}
}

func TestMatrixErrors(t *testing.T) {
	tests := []struct {
		name string
		X    [][]float64
		opts []Option
		want interface{}
	}{
		{
			name: "ragged input set",
			X:    [][]float64{{0, 1}, {1}},
			want: new(*errors.DimensionError),
		},
		{
			name: "negative noise",
			X:    [][]float64{{0}},
			opts: []Option{WithNoise(-0.1)},
			want: new(*errors.ValidationError),
		},
		{
			name: "infinite noise",
			X:    [][]float64{{0}},
			opts: []Option{WithNoise(math.Inf(1))},
			want: new(*errors.ValidationError),
		},
		{
			name: "zero length-scale",
			X:    [][]float64{{0}},
			opts: []Option{WithLengthScale(0)},
			want: new(*errors.ValidationError),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Matrix(tt.X, tt.opts...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.As(err, tt.want) {
				t.Errorf("error %v is not %T", err, tt.want)
			}
		})
	}
}

func TestMatrixDeterministic(t *testing.T) {
	X := [][]float64{{0}, {1}, {2}}
	a, _ := Matrix(X, WithNoise(0.01))
	b, _ := Matrix(X, WithNoise(0.01))
	if !mat.Equal(a, b) {
		t.Error("repeated calls produced different matrices")
	}
}

func TestFormat(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{1, 0.60653, 0.60653, 1})

	var buf bytes.Buffer
	if err := Format(&buf, m); err != nil {
		t.Fatal(err)
	}

	want := "1.000, 0.607, \n0.607, 1.000, \n"
	if buf.String() != want {
		t.Errorf("Format() = %q, want %q", buf.String(), want)
	}
}
