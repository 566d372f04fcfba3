package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/gpr/gp"
	"github.com/YuminosukeSato/gpr/kernel"
	"github.com/YuminosukeSato/gpr/pkg/config"
	"github.com/YuminosukeSato/gpr/pkg/errors"
	"github.com/YuminosukeSato/gpr/pkg/log"
	"github.com/YuminosukeSato/gpr/visualization"
)

func predictCmd(opts *rootOptions) *cobra.Command {
	var x []float64

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Posterior mean and standard deviation at the query point",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			query := cfg.Query
			if cmd.Flags().Changed("x") {
				query = x
			}
			if query == nil {
				return fmt.Errorf("no query point: set query in the config or pass --x")
			}

			reg, err := fitted(cfg)
			if err != nil {
				return err
			}
			p, err := reg.Predict(query)
			if err != nil {
				var dimErr *errors.DimensionError
				if errors.As(err, &dimErr) {
					log.GetLoggerWithName("cmd.predict").Error("query has wrong dimensionality", err,
						log.OperationKey, log.OperationPredict,
						log.ErrorCodeKey, log.ErrorDimensionMismatch,
						log.FeaturesKey, reg.NFeatures,
					)
				}
				return err
			}
			printPrediction(cmd.OutOrStdout(), p)
			return nil
		},
	}
	cmd.Flags().Float64SliceVar(&x, "x", nil, "query point, comma separated (overrides the config query)")
	return cmd
}

func kernelCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "kernel",
		Short: "Print the training kernel matrix",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := fitted(opts.cfg)
			if err != nil {
				return err
			}
			km, err := reg.TrainingKernel()
			if err != nil {
				log.GetLoggerWithName("cmd.kernel").Error("kernel matrix failed", err,
					log.OperationKey, log.OperationKernelMatrix,
				)
				return err
			}
			return kernel.Format(cmd.OutOrStdout(), km)
		},
	}
}

// demoCmd always runs on the built-in dataset, whatever --config says.
func demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Predict 2022 from the built-in yearly dataset and print its kernel matrix",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			reg, err := fitted(cfg)
			if err != nil {
				return err
			}
			p, err := reg.Predict(cfg.Query)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printPrediction(out, p)
			fmt.Fprintln(out)

			km, err := reg.TrainingKernel()
			if err != nil {
				return err
			}
			return kernel.Format(out, km)
		},
	}
}

func validateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Leave-one-out validation on the configured dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			res, err := gp.LeaveOneOut(cfg.Training.Inputs, cfg.Training.Observations,
				gp.WithLengthScale(cfg.Kernel.LengthScale),
				gp.WithNoise(cfg.Kernel.Noise),
			)
			if err != nil {
				return err
			}

			log.GetLoggerWithName("cmd.validate").Info("leave-one-out completed",
				log.OperationKey, log.OperationLeaveOneOut,
				log.SamplesKey, len(res.Means),
				log.RMSEKey, res.RMSE,
				log.R2ScoreKey, res.R2,
			)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "samples: %d\n", len(res.Means))
			fmt.Fprintf(out, "mse:  %.6f\n", res.MSE)
			fmt.Fprintf(out, "rmse: %.6f\n", res.RMSE)
			fmt.Fprintf(out, "mae:  %.6f\n", res.MAE)
			fmt.Fprintf(out, "r2:   %.6f\n", res.R2)
			fmt.Fprintf(out, "nlpd: %.6f\n", res.NLPD)
			return nil
		},
	}
}

func plotCmd(opts *rootOptions) *cobra.Command {
	var out string
	var from, to float64
	var steps int

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Render the posterior mean and ±2σ band to an image",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := fitted(opts.cfg)
			if err != nil {
				return err
			}
			grid := visualization.Grid{From: from, To: to, Steps: steps}
			if !cmd.Flags().Changed("from") || !cmd.Flags().Changed("to") {
				lo, hi := inputRange(opts.cfg)
				if !cmd.Flags().Changed("from") {
					grid.From = lo - 1
				}
				if !cmd.Flags().Changed("to") {
					grid.To = hi + 1
				}
			}
			if err := visualization.SavePosterior(reg, grid, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "posterior.png", "output image (png, svg or pdf)")
	cmd.Flags().Float64Var(&from, "from", 0, "grid start (default: smallest input - 1)")
	cmd.Flags().Float64Var(&to, "to", 0, "grid end (default: largest input + 1)")
	cmd.Flags().IntVar(&steps, "steps", 200, "number of grid points")
	return cmd
}

// inputRange returns the span of the first input coordinate.
func inputRange(cfg *config.Config) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, x := range cfg.Training.Inputs {
		lo = math.Min(lo, x[0])
		hi = math.Max(hi, x[0])
	}
	return lo, hi
}
