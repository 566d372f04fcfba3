package model

import "gonum.org/v1/gonum/mat"

// TargetTransformer は目的変数の変換のインターフェース
// 予測値 (平均と分散) を元のスケールに戻せる必要がある
type TargetTransformer interface {
	// Fit は変換に必要なパラメータを学習する
	Fit(y mat.Matrix) error

	// Transform はデータを変換する
	Transform(y mat.Matrix) (*mat.Dense, error)

	// InverseValue は列 j の変換後の値を1つ元に戻す
	InverseValue(j int, v float64) float64

	// InverseVariance は列 j の変換後の分散を元に戻す
	InverseVariance(j int, v float64) float64
}
