package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rateshop.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := NewLoader().Load(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.WeightKg != 5.5 {
		t.Fatalf("expected default weight 5.5, got %g", cfg.WeightKg)
	}
	if cfg.LengthCm != 15 || cfg.WidthCm != 10 || cfg.HeightCm != 20 {
		t.Fatalf("unexpected default dims: %gx%gx%g", cfg.LengthCm, cfg.WidthCm, cfg.HeightCm)
	}
	if cfg.Bench.Enabled {
		t.Fatalf("bench must be off by default")
	}
	if cfg.Bench.Total != 100000 || cfg.Bench.Concurrency != 1 {
		t.Fatalf("unexpected bench defaults: %+v", cfg.Bench)
	}
	if cfg.Bench.Arrival != ArrivalModelUniform {
		t.Fatalf("expected uniform arrival default, got %q", cfg.Bench.Arrival)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoadFlags(t *testing.T) {
	cfg, err := NewLoader().Load([]string{
		"--weight", "2.5",
		"--dims", "30x20x10",
		"--bench",
		"-c", "8",
		"-r", "500",
		"-d", "30s",
		"-t", "0",
		"--arrival-model", "Poisson",
		"--seed", "42",
		"--json-output",
		"-o", "report.json",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.WeightKg != 2.5 {
		t.Fatalf("weight flag not applied: %g", cfg.WeightKg)
	}
	if cfg.LengthCm != 30 || cfg.WidthCm != 20 || cfg.HeightCm != 10 {
		t.Fatalf("dims flag not applied: %gx%gx%g", cfg.LengthCm, cfg.WidthCm, cfg.HeightCm)
	}
	if !cfg.Bench.Enabled || cfg.Bench.Concurrency != 8 || cfg.Bench.Rate != 500 {
		t.Fatalf("bench flags not applied: %+v", cfg.Bench)
	}
	if cfg.Bench.Duration != 30*time.Second || cfg.Bench.Total != 0 {
		t.Fatalf("bench limits not applied: %+v", cfg.Bench)
	}
	if cfg.Bench.Arrival != ArrivalModelPoisson {
		t.Fatalf("arrival model not normalized: %q", cfg.Bench.Arrival)
	}
	if cfg.Bench.Seed != 42 {
		t.Fatalf("seed not applied: %d", cfg.Bench.Seed)
	}
	if !cfg.JSONOutput || cfg.OutputFile != "report.json" {
		t.Fatalf("output flags not applied: %+v", cfg)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfigFile(t, `
weight_kg: 3.25
dims: 40x25x12
plans: plans.yaml
json_output: true
bench:
  enabled: true
  concurrency: 4
  rate: 1000
  duration: 15s
  total: 50000
  arrival_model: poisson
  seed: 7
feeder:
  path: packages.csv
  type: CSV
`)

	cfg, err := NewLoader().Load([]string{"--config", path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.WeightKg != 3.25 {
		t.Fatalf("weight not read from file: %g", cfg.WeightKg)
	}
	if cfg.LengthCm != 40 || cfg.WidthCm != 25 || cfg.HeightCm != 12 {
		t.Fatalf("dims not read from file: %gx%gx%g", cfg.LengthCm, cfg.WidthCm, cfg.HeightCm)
	}
	if cfg.PlansFile != "plans.yaml" || !cfg.JSONOutput {
		t.Fatalf("top-level settings not read: %+v", cfg)
	}
	if !cfg.Bench.Enabled || cfg.Bench.Concurrency != 4 || cfg.Bench.Rate != 1000 {
		t.Fatalf("bench section not read: %+v", cfg.Bench)
	}
	if cfg.Bench.Duration != 15*time.Second || cfg.Bench.Total != 50000 || cfg.Bench.Seed != 7 {
		t.Fatalf("bench limits not read: %+v", cfg.Bench)
	}
	if cfg.Feeder.Path != "packages.csv" || cfg.Feeder.Type != "csv" {
		t.Fatalf("feeder section not read: %+v", cfg.Feeder)
	}
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	path := writeConfigFile(t, "weight_kg: 3.0\nbench:\n  concurrency: 2\n")

	cfg, err := NewLoader().Load([]string{"--config", path, "--weight", "9", "-c", "16"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.WeightKg != 9 {
		t.Fatalf("flag should override file weight, got %g", cfg.WeightKg)
	}
	if cfg.Bench.Concurrency != 16 {
		t.Fatalf("flag should override file concurrency, got %d", cfg.Bench.Concurrency)
	}
}

func TestLoadHelp(t *testing.T) {
	_, err := NewLoader().Load([]string{"--help"})
	if !errors.Is(err, ErrHelpRequested) {
		t.Fatalf("expected ErrHelpRequested, got %v", err)
	}
}

func TestLoadBadDimsFlag(t *testing.T) {
	if _, err := NewLoader().Load([]string{"--dims", "15x10"}); err == nil {
		t.Fatalf("expected error for malformed dims")
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	if _, err := NewLoader().Load([]string{"--config", filepath.Join(t.TempDir(), "nope.yaml")}); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
