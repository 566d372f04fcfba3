package model

import "gonum.org/v1/gonum/mat"

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる。
	// X は n_samples × n_features、y は n_samples × 1 の列ベクトル。
	Fit(X, y mat.Matrix) error
}

// Estimator は学習状態を公開する推定器のインターフェース
type Estimator interface {
	Fitter
	IsFitted() bool
	Reset()
}
