// Standard attribute keys for Gaussian Process operations. The keys follow a
// hierarchical naming convention ("model.name", "data.samples") so logs can be
// filtered by category.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of model.
	// Examples: "GaussianProcessRegressor"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "kernel_matrix", "loo"
	OperationKey = "ml.operation"

	// ComponentKey identifies which component or package is logging.
	// Examples: "gp.regressor", "cli"
	ComponentKey = "ml.component"
)

// Data Shape
const (
	// SamplesKey indicates the number of training inputs.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the dimensionality of each input vector.
	FeaturesKey = "data.features"
)

// Kernel hyperparameters
const (
	// LengthScaleKey records the RBF length-scale.
	LengthScaleKey = "kernel.length_scale"

	// NoiseKey records the diagonal noise added to the kernel matrix.
	NoiseKey = "kernel.noise"
)

// Prediction Output
const (
	// MeanKey records the posterior mean at the query point.
	MeanKey = "preds.mean"

	// VarianceKey records the posterior variance at the query point.
	VarianceKey = "preds.variance"

	// StdDevKey records the posterior standard deviation at the query point.
	StdDevKey = "preds.std"

	// RMSEKey records the root mean squared error of a validation run.
	RMSEKey = "metrics.rmse"

	// R2ScoreKey records R² of a validation run.
	R2ScoreKey = "metrics.r2_score"

	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Error Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"
)

// Standard attribute values.
const (
	OperationFit          = "fit"
	OperationPredict      = "predict"
	OperationKernelMatrix = "kernel_matrix"
	OperationLeaveOneOut  = "loo"

	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorSingularMatrix    = "SINGULAR_MATRIX"
	ErrorNegativeVariance  = "NEGATIVE_VARIANCE"
)
