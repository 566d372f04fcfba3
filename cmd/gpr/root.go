package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gpr/gp"
	"github.com/YuminosukeSato/gpr/pkg/config"
	"github.com/YuminosukeSato/gpr/pkg/errors"
	"github.com/YuminosukeSato/gpr/pkg/log"
)

type rootOptions struct {
	configPath string
	logLevel   string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "gpr",
		Short:        "Gaussian process regression with an RBF kernel",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if opts.logLevel != "" {
				cfg.LogLevel = opts.logLevel
			}
			if err := setupLogging(cmd.ErrOrStderr(), cfg); err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "dataset/run file (default: built-in yearly dataset)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(predictCmd(opts))
	root.AddCommand(kernelCmd(opts))
	root.AddCommand(demoCmd())
	root.AddCommand(validateCmd(opts))
	root.AddCommand(plotCmd(opts))
	return root
}

func setupLogging(w io.Writer, cfg *config.Config) error {
	if cfg.LogFormat == config.LogFormatZerolog {
		return log.UseZerolog(w, cfg.LogLevel)
	}
	if err := log.SetupLoggerWithWriter(w, cfg.LogLevel); err != nil {
		return err
	}
	errors.SetZerologWarnFunc(nil)
	errors.SetWarningHandler(logWarning)
	return nil
}

func logWarning(w error) {
	fields := []any{}
	var nv *errors.NegativeVarianceWarning
	if errors.As(w, &nv) {
		fields = append(fields, log.ErrorCodeKey, log.ErrorNegativeVariance, log.VarianceKey, nv.Variance)
	}
	log.GetLoggerWithName("gp").Warn(w.Error(), fields...)
}

// fitted returns a Regressor trained on the configured dataset.
func fitted(cfg *config.Config) (*gp.Regressor, error) {
	inputs := cfg.Training.Inputs
	n, d := len(inputs), len(inputs[0])
	X := mat.NewDense(n, d, nil)
	for i, row := range inputs {
		X.SetRow(i, row)
	}
	y := mat.NewDense(n, 1, append([]float64(nil), cfg.Training.Observations...))

	reg := gp.NewRegressor(
		gp.WithLengthScale(cfg.Kernel.LengthScale),
		gp.WithNoise(cfg.Kernel.Noise),
		gp.WithNormalizeY(cfg.NormalizeY),
	)
	if err := reg.Fit(X, y); err != nil {
		return nil, err
	}
	return reg, nil
}

func printPrediction(w io.Writer, p gp.Prediction) {
	fmt.Fprintf(w, "mean predict :%v\n", p.Mean)
	fmt.Fprintf(w, "std predict :%v\n", p.StdDev)
}
