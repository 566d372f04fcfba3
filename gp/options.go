package gp

import "github.com/YuminosukeSato/gpr/kernel"

// Option configures the predictor functions and Regressor.
type Option func(*config)

type config struct {
	lengthScale float64
	noise       float64
	normalizeY  bool
}

func newConfig(opts []Option) config {
	cfg := config{lengthScale: kernel.DefaultLengthScale}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithLengthScale sets the RBF length-scale (default 1).
func WithLengthScale(l float64) Option {
	return func(c *config) {
		c.lengthScale = l
	}
}

// WithNoise adds σ to the diagonal of the training block K before it is
// inverted. The default is 0, which leaves K unregularized.
func WithNoise(sigma float64) Option {
	return func(c *config) {
		c.noise = sigma
	}
}

// WithNormalizeY makes Regressor standardize y to zero mean and unit variance
// before fitting and map predictions back to the original scale. It only
// affects Regressor; the package-level predictors always use y as given.
func WithNormalizeY(enabled bool) Option {
	return func(c *config) {
		c.normalizeY = enabled
	}
}
