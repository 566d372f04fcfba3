package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/YuminosukeSato/gpr/pkg/config"
	"github.com/YuminosukeSato/gpr/pkg/errors"
	"github.com/YuminosukeSato/gpr/pkg/log"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(prev)
		log.SetProvider(log.NewSlogProvider(prev, log.LevelInfo))
		errors.SetZerologWarnFunc(nil)
	})

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gpr.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func parseLine(t *testing.T, out, prefix string) float64 {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, prefix) {
			v, err := strconv.ParseFloat(strings.TrimPrefix(line, prefix), 64)
			if err != nil {
				t.Fatalf("parse %q: %v", line, err)
			}
			return v
		}
	}
	t.Fatalf("no line starting with %q in:\n%s", prefix, out)
	return 0
}

func TestPredictDefaultDataset(t *testing.T) {
	out, _, err := runCLI(t, "predict", "--log-level", "error")
	if err != nil {
		t.Fatalf("predict: %v", err)
	}

	mean := parseLine(t, out, "mean predict :")
	std := parseLine(t, out, "std predict :")
	if diff := mean - 44.291613737060246; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("mean = %v", mean)
	}
	if diff := std*std - 0.5044286547265183; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("std = %v", std)
	}
}

func TestPredictFromConfig(t *testing.T) {
	path := writeConfig(t, `
log_level: error
training:
  inputs: [[0], [1], [2]]
  observations: [0, 1, 4]
query: [1]
`)

	out, _, err := runCLI(t, "predict", "--config", path)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if mean := parseLine(t, out, "mean predict :"); mean < 1-1e-6 || mean > 1+1e-6 {
		t.Errorf("mean at a training point = %v, want 1", mean)
	}

	out, _, err = runCLI(t, "predict", "--config", path, "--x", "1.5")
	if err != nil {
		t.Fatalf("predict --x: %v", err)
	}
	if mean := parseLine(t, out, "mean predict :"); mean < 2.6 || mean > 2.7 {
		t.Errorf("mean at 1.5 = %v, want ~2.649", mean)
	}
}

func TestPredictDimensionMismatchIsLogged(t *testing.T) {
	_, stderr, err := runCLI(t, "predict", "--log-level", "error", "--x", "2022,1")
	if err == nil {
		t.Fatal("expected error for a 2-D query against 1-D inputs")
	}
	if !strings.Contains(stderr, log.ErrorDimensionMismatch) {
		t.Errorf("stderr should carry the error code, got:\n%s", stderr)
	}
}

func TestKernelCommand(t *testing.T) {
	path := writeConfig(t, `
log_level: error
kernel:
  noise: 0.1
training:
  inputs: [[0], [1]]
  observations: [0, 1]
`)

	out, _, err := runCLI(t, "kernel", "--config", path)
	if err != nil {
		t.Fatalf("kernel: %v", err)
	}
	want := "1.100, 0.607, \n0.607, 1.100, \n"
	if out != want {
		t.Errorf("kernel output = %q, want %q", out, want)
	}
}

func TestDemoCommand(t *testing.T) {
	out, _, err := runCLI(t, "demo", "--log-level", "error")
	if err != nil {
		t.Fatalf("demo: %v", err)
	}
	if !strings.HasPrefix(out, "mean predict :44.29") {
		t.Errorf("unexpected demo header:\n%s", out)
	}
	// 27行の行列 + 予測2行 + 空行
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 30 {
		t.Errorf("expected 30 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[3], "1.000, 0.607, 0.135, ") {
		t.Errorf("first kernel row = %q", lines[3])
	}
}

func TestValidateCommand(t *testing.T) {
	out, _, err := runCLI(t, "validate", "--log-level", "error")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	for _, key := range []string{"samples: 27", "rmse:", "r2:", "nlpd:"} {
		if !strings.Contains(out, key) {
			t.Errorf("output missing %q:\n%s", key, out)
		}
	}
}

func TestPlotCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posterior.png")

	out, _, err := runCLI(t, "plot", "--log-level", "error", "--out", path, "--steps", "40")
	if err != nil {
		t.Fatalf("plot: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("output = %q", out)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("plot file missing or empty: %v", err)
	}
}

func TestZerologFormat(t *testing.T) {
	path := writeConfig(t, `
log_level: info
log_format: zerolog
training:
  inputs: [[0], [1], [2]]
  observations: [0, 1, 4]
`)

	_, stderr, err := runCLI(t, "validate", "--config", path)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(stderr, `"message":"leave-one-out completed"`) {
		t.Errorf("expected zerolog JSON on stderr, got:\n%s", stderr)
	}
}

func TestInvalidConfig(t *testing.T) {
	path := writeConfig(t, "kernel:\n  length_scale: -1\n")
	if _, _, err := runCLI(t, "predict", "--config", path); err == nil {
		t.Error("expected error for an invalid config")
	}
}

func TestLogWarning(t *testing.T) {
	prev := slog.Default()
	provider, logger := log.NewTestLoggerProvider(log.LevelDebug)
	log.SetProvider(provider)
	defer log.SetProvider(log.NewSlogProvider(prev, log.LevelInfo))

	logWarning(errors.NewNegativeVarianceWarning(-1e-12))

	if !logger.ContainsField(log.ErrorCodeKey, log.ErrorNegativeVariance) {
		t.Error("negative variance warning should carry its error code")
	}
	if !logger.ContainsField(log.VarianceKey, -1e-12) {
		t.Error("warning should carry the clipped variance")
	}
	if !logger.ContainsField(log.ComponentKey, "gp") {
		t.Error("warning should be logged by the gp component")
	}
}

func TestJSONLoggingReplacesZerologWarnings(t *testing.T) {
	prev := slog.Default()
	defer func() {
		slog.SetDefault(prev)
		log.SetProvider(log.NewSlogProvider(prev, log.LevelInfo))
		errors.SetZerologWarnFunc(nil)
	}()

	var zerologOut, jsonOut bytes.Buffer
	if err := log.UseZerolog(&zerologOut, "info"); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	if err := setupLogging(&jsonOut, cfg); err != nil {
		t.Fatal(err)
	}

	provider, logger := log.NewTestLoggerProvider(log.LevelDebug)
	log.SetProvider(provider)
	errors.Warn(errors.NewNegativeVarianceWarning(-1e-12))

	if zerologOut.Len() != 0 {
		t.Errorf("warning should not reach the earlier zerolog writer, got:\n%s", zerologOut.String())
	}
	if !logger.ContainsField(log.ErrorCodeKey, log.ErrorNegativeVariance) {
		t.Error("warning should be routed through the current logger")
	}
}
