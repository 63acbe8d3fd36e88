package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// newFlagCommand creates a cobra command with all flags configured.
func newFlagCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rateshop",
		Short:         "Quote the cheapest courier rate plan for a package",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.SetOut(os.Stdout)
	configureFlags(cmd.Flags())
	return cmd
}

// configureFlags sets up all CLI flags on the provided flag set.
func configureFlags(flags *pflag.FlagSet) {
	// Package flags
	flags.Float64P("weight", "w", 5.5, "Package weight in kilograms")
	flags.String("dims", "15x10x20", "Package dimensions in cm as LxWxH")
	flags.String("plans", "", "Path to a YAML rate-plan catalog (built-in plans if omitted)")

	// Benchmark flags
	flags.Bool("bench", false, "Run the quote benchmark instead of a single quote")
	flags.IntP("concurrency", "c", 1, "Number of concurrent workers")
	flags.IntP("rate", "r", 0, "Evaluations per second limit (0 means unlimited)")
	flags.DurationP("duration", "d", 0, "How long to run the benchmark (e.g. 30s, 1m)")
	flags.IntP("total", "t", 100000, "Total number of evaluations (0 means unlimited)")
	flags.String("arrival-model", string(ArrivalModelUniform), "Arrival model to use when pacing evaluations (uniform or poisson)")
	flags.Int64("seed", 0, "Random seed for package generation (0 means clock-derived)")

	// Feeder flags
	flags.String("feeder-path", "", "Path to CSV or JSON file containing packages to evaluate")
	flags.String("feeder-type", "", "Type of feeder file: 'csv' or 'json'")

	// Output flags
	flags.Bool("json-output", false, "Emit JSON formatted output")
	flags.StringP("output", "o", "", "Write the JSON benchmark report to the specified file path")
	flags.String("config", "", "Path to configuration file (JSON or YAML)")
}

// displayHelp prints the help message for a command.
func displayHelp(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Usage: %s\n\nFlags:\n", cmd.UseLine())
	fs := cmd.Flags()
	fs.SetOutput(out)
	fs.PrintDefaults()
}

// applyFlagOverrides applies command-line flag values to the config, overriding
// values from the config file.
func applyFlagOverrides(cfg *Config, fs *pflag.FlagSet) error {
	if fs.Changed("weight") {
		val, err := fs.GetFloat64("weight")
		if err != nil {
			return err
		}
		cfg.WeightKg = val
	}
	if fs.Changed("dims") {
		val, err := fs.GetString("dims")
		if err != nil {
			return err
		}
		length, width, height, err := parseDimensions(val)
		if err != nil {
			return err
		}
		cfg.LengthCm, cfg.WidthCm, cfg.HeightCm = length, width, height
	}
	if fs.Changed("plans") {
		val, err := fs.GetString("plans")
		if err != nil {
			return err
		}
		cfg.PlansFile = strings.TrimSpace(val)
	}
	if fs.Changed("bench") {
		val, err := fs.GetBool("bench")
		if err != nil {
			return err
		}
		cfg.Bench.Enabled = val
	}
	if fs.Changed("concurrency") {
		val, err := fs.GetInt("concurrency")
		if err != nil {
			return err
		}
		cfg.Bench.Concurrency = val
	}
	if fs.Changed("rate") {
		val, err := fs.GetInt("rate")
		if err != nil {
			return err
		}
		cfg.Bench.Rate = val
	}
	if fs.Changed("duration") {
		val, err := fs.GetDuration("duration")
		if err != nil {
			return err
		}
		cfg.Bench.Duration = val
	}
	if fs.Changed("total") {
		val, err := fs.GetInt("total")
		if err != nil {
			return err
		}
		cfg.Bench.Total = val
	}
	if fs.Changed("arrival-model") {
		val, err := fs.GetString("arrival-model")
		if err != nil {
			return err
		}
		cfg.Bench.Arrival = ArrivalModel(strings.ToLower(strings.TrimSpace(val)))
	}
	if fs.Changed("seed") {
		val, err := fs.GetInt64("seed")
		if err != nil {
			return err
		}
		cfg.Bench.Seed = val
	}
	if fs.Changed("feeder-path") {
		val, err := fs.GetString("feeder-path")
		if err != nil {
			return err
		}
		cfg.Feeder.Path = strings.TrimSpace(val)
	}
	if fs.Changed("feeder-type") {
		val, err := fs.GetString("feeder-type")
		if err != nil {
			return err
		}
		cfg.Feeder.Type = strings.TrimSpace(val)
	}
	if fs.Changed("json-output") {
		val, err := fs.GetBool("json-output")
		if err != nil {
			return err
		}
		cfg.JSONOutput = val
	}
	if fs.Changed("output") {
		val, err := fs.GetString("output")
		if err != nil {
			return err
		}
		cfg.OutputFile = strings.TrimSpace(val)
	}

	return nil
}
