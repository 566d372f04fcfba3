package preprocessing

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/gpr/core/model"
	"github.com/YuminosukeSato/gpr/pkg/errors"
)

// StandardScaler は列ごとに平均0、標準偏差1へ変換するスケーラー
// GP では目的変数 y (n×1) の正規化に使う
type StandardScaler struct {
	model.BaseEstimator

	// Mean は各列の平均値
	Mean []float64

	// Scale は各列の母標準偏差 (0に近い場合は1)
	Scale []float64

	// NFeatures は列数
	NFeatures int
}

// NewStandardScaler は新しいStandardScalerを作成する
//
// 使用例:
//
//	scaler := preprocessing.NewStandardScaler()
//	err := scaler.Fit(y)
//	yScaled, err := scaler.Transform(y)
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{}
}

// Fit は列ごとの平均と標準偏差を計算する
func (s *StandardScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("StandardScaler.Fit", "empty data", errors.ErrEmptyData)
	}

	s.NFeatures = c
	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)

	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		mean, std := stat.PopMeanStdDev(col, nil)
		s.Mean[j] = mean
		// 定数列はゼロ除算を避けるため1
		if math.Abs(std) < 1e-8 {
			std = 1.0
		}
		s.Scale[j] = std
	}

	s.SetFitted()
	return nil
}

// Transform は学習済みの統計情報を使ってデータを標準化する
func (s *StandardScaler) Transform(X mat.Matrix) (*mat.Dense, error) {
	return s.apply("StandardScaler.Transform", X, func(v float64, j int) float64 {
		return (v - s.Mean[j]) / s.Scale[j]
	})
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (s *StandardScaler) FitTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform は標準化されたデータを元のスケールに戻す
func (s *StandardScaler) InverseTransform(X mat.Matrix) (*mat.Dense, error) {
	return s.apply("StandardScaler.InverseTransform", X, func(v float64, j int) float64 {
		return v*s.Scale[j] + s.Mean[j]
	})
}

// InverseValue は列 j の標準化された値を1つ元のスケールに戻す
func (s *StandardScaler) InverseValue(j int, v float64) float64 {
	return v*s.Scale[j] + s.Mean[j]
}

// InverseVariance は列 j の標準化空間での分散を元のスケールに戻す
func (s *StandardScaler) InverseVariance(j int, v float64) float64 {
	return v * s.Scale[j] * s.Scale[j]
}

func (s *StandardScaler) apply(op string, X mat.Matrix, f func(v float64, j int) float64) (*mat.Dense, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", op)
	}

	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, errors.NewDimensionError(op, s.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, f(X.At(i, j), j))
		}
	}
	return result, nil
}

var _ model.TargetTransformer = (*StandardScaler)(nil)
