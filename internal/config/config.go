package config

import (
	"fmt"
	"strings"
	"time"
)

// ArrivalModel selects how the benchmark paces evaluations.
type ArrivalModel string

const (
	ArrivalModelUniform ArrivalModel = "uniform"
	ArrivalModelPoisson ArrivalModel = "poisson"
)

// Config holds the fully merged configuration: defaults, then config file,
// then command-line flags.
type Config struct {
	WeightKg   float64      `mapstructure:"weight_kg"`
	LengthCm   float64      `mapstructure:"length_cm"`
	WidthCm    float64      `mapstructure:"width_cm"`
	HeightCm   float64      `mapstructure:"height_cm"`
	PlansFile  string       `mapstructure:"plans"`
	Bench      BenchConfig  `mapstructure:"bench"`
	Feeder     FeederConfig `mapstructure:"feeder"`
	JSONOutput bool         `mapstructure:"json_output"`
	OutputFile string       `mapstructure:"output"`
	ConfigFile string       `mapstructure:"-"`
}

type BenchConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Concurrency int           `mapstructure:"concurrency"`
	Rate        int           `mapstructure:"rate"`
	Duration    time.Duration `mapstructure:"duration"`
	Total       int           `mapstructure:"total"`
	Arrival     ArrivalModel  `mapstructure:"arrival_model"`
	Seed        int64         `mapstructure:"seed"`
}

type FeederConfig struct {
	Path string `mapstructure:"path"`
	Type string `mapstructure:"type"` // "csv" or "json"
}

type ValidationError struct {
	issues []string
}

func (e ValidationError) Error() string {
	if len(e.issues) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(e.issues, "; "))
}

func (e ValidationError) Issues() []string {
	return append([]string(nil), e.issues...)
}

func (c Config) Validate() error {
	var issues []string

	if c.WeightKg <= 0 {
		issues = append(issues, "weight must be > 0")
	}
	if c.LengthCm <= 0 || c.WidthCm <= 0 || c.HeightCm <= 0 {
		issues = append(issues, "dims must all be > 0")
	}
	if c.Bench.Concurrency < 1 {
		issues = append(issues, "concurrency must be >= 1")
	}
	if c.Bench.Rate < 0 {
		issues = append(issues, "rate must be >= 0")
	}
	if c.Bench.Total < 0 {
		issues = append(issues, "total must be >= 0")
	}
	if c.Bench.Duration < 0 {
		issues = append(issues, "duration must be >= 0")
	}

	switch c.Bench.Arrival {
	case "", ArrivalModelUniform, ArrivalModelPoisson:
	default:
		issues = append(issues, fmt.Sprintf("arrival model %q is not supported", c.Bench.Arrival))
	}

	if strings.TrimSpace(c.Feeder.Path) != "" {
		if strings.TrimSpace(c.Feeder.Type) == "" {
			issues = append(issues, "feeder: type is required when path is specified")
		} else if c.Feeder.Type != "csv" && c.Feeder.Type != "json" {
			issues = append(issues, fmt.Sprintf("feeder: type must be 'csv' or 'json', got %q", c.Feeder.Type))
		}
	}

	if len(issues) > 0 {
		return ValidationError{issues: issues}
	}
	return nil
}
