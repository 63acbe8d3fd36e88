package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Loader handles loading configuration from files and command-line arguments.
type Loader struct{}

// ErrHelpRequested is returned when the user requests help via --help flag.
var ErrHelpRequested = errors.New("help requested")

// NewLoader creates a new configuration Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses command-line arguments and configuration files to produce a
// Config. Running with no arguments is valid: the defaults quote the built-in
// sample package against the built-in catalog.
func (Loader) Load(args []string) (*Config, error) {
	cmd := newFlagCommand()
	if err := cmd.Flags().Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			displayHelp(cmd)
			return nil, ErrHelpRequested
		}
		return nil, err
	}

	flagSet := cmd.Flags()
	if helpFlag := flagSet.Lookup("help"); helpFlag != nil {
		if wantsHelp, err := strconv.ParseBool(helpFlag.Value.String()); err == nil && wantsHelp {
			displayHelp(cmd)
			return nil, ErrHelpRequested
		}
	}

	configPath := flagSet.Lookup("config").Value.String()
	cfgViper := viper.New()
	if configPath != "" {
		cfgViper.SetConfigFile(configPath)
		if err := cfgViper.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	settings := cfgViper.AllSettings()

	cfg := &Config{
		WeightKg:   5.5,
		LengthCm:   15,
		WidthCm:    10,
		HeightCm:   20,
		ConfigFile: configPath,
		Bench: BenchConfig{
			Concurrency: 1,
			Total:       100000,
			Arrival:     ArrivalModelUniform,
		},
	}

	if err := applyConfigSettings(cfg, settings); err != nil {
		return nil, err
	}

	if err := applyFlagOverrides(cfg, flagSet); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyConfigSettings applies settings from a config file to the Config struct.
func applyConfigSettings(cfg *Config, settings map[string]interface{}) error {
	if len(settings) == 0 {
		return nil
	}

	if raw, ok := lookupSetting(settings, "weight", "weight_kg"); ok {
		val, err := asFloat64(raw)
		if err != nil {
			return fmt.Errorf("weight: %w", err)
		}
		cfg.WeightKg = val
	}

	if raw, ok := lookupSetting(settings, "dims", "dimensions"); ok {
		val, err := asString(raw)
		if err != nil {
			return fmt.Errorf("dims: %w", err)
		}
		length, width, height, err := parseDimensions(val)
		if err != nil {
			return fmt.Errorf("dims: %w", err)
		}
		cfg.LengthCm, cfg.WidthCm, cfg.HeightCm = length, width, height
	}

	if raw, ok := lookupSetting(settings, "plans", "plans_file"); ok {
		val, err := asString(raw)
		if err != nil {
			return fmt.Errorf("plans: %w", err)
		}
		cfg.PlansFile = strings.TrimSpace(val)
	}

	if raw, ok := lookupSetting(settings, "jsonoutput", "json_output", "json-output"); ok {
		val, err := asBool(raw)
		if err != nil {
			return fmt.Errorf("jsonOutput: %w", err)
		}
		cfg.JSONOutput = val
	}

	if raw, ok := lookupSetting(settings, "output", "output_file"); ok {
		val, err := asString(raw)
		if err != nil {
			return fmt.Errorf("output: %w", err)
		}
		cfg.OutputFile = strings.TrimSpace(val)
	}

	if raw, ok := lookupSetting(settings, "bench"); ok {
		section, err := toStringKeyMap(raw)
		if err != nil {
			return fmt.Errorf("bench: %w", err)
		}
		if err := applyBenchSettings(&cfg.Bench, section); err != nil {
			return fmt.Errorf("bench: %w", err)
		}
	}

	if raw, ok := lookupSetting(settings, "feeder"); ok {
		section, err := toStringKeyMap(raw)
		if err != nil {
			return fmt.Errorf("feeder: %w", err)
		}
		if err := applyFeederSettings(&cfg.Feeder, section); err != nil {
			return fmt.Errorf("feeder: %w", err)
		}
	}

	return nil
}

func applyBenchSettings(bench *BenchConfig, settings map[string]interface{}) error {
	if raw, ok := lookupSetting(settings, "enabled"); ok {
		val, err := asBool(raw)
		if err != nil {
			return fmt.Errorf("enabled: %w", err)
		}
		bench.Enabled = val
	}
	if raw, ok := lookupSetting(settings, "concurrency"); ok {
		val, err := asInt(raw)
		if err != nil {
			return fmt.Errorf("concurrency: %w", err)
		}
		bench.Concurrency = val
	}
	if raw, ok := lookupSetting(settings, "rate"); ok {
		val, err := asInt(raw)
		if err != nil {
			return fmt.Errorf("rate: %w", err)
		}
		bench.Rate = val
	}
	if raw, ok := lookupSetting(settings, "duration"); ok {
		dur, err := asDuration(raw)
		if err != nil {
			return fmt.Errorf("duration: %w", err)
		}
		bench.Duration = dur
	}
	if raw, ok := lookupSetting(settings, "total"); ok {
		val, err := asInt(raw)
		if err != nil {
			return fmt.Errorf("total: %w", err)
		}
		bench.Total = val
	}
	if raw, ok := lookupSetting(settings, "arrivalmodel", "arrival_model", "arrival-model"); ok {
		val, err := asString(raw)
		if err != nil {
			return fmt.Errorf("arrivalModel: %w", err)
		}
		bench.Arrival = ArrivalModel(strings.ToLower(strings.TrimSpace(val)))
	}
	if raw, ok := lookupSetting(settings, "seed"); ok {
		val, err := asInt64(raw)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		bench.Seed = val
	}
	return nil
}

func applyFeederSettings(feeder *FeederConfig, settings map[string]interface{}) error {
	if raw, ok := lookupSetting(settings, "path"); ok {
		val, err := asString(raw)
		if err != nil {
			return fmt.Errorf("path: %w", err)
		}
		feeder.Path = strings.TrimSpace(val)
	}
	if raw, ok := lookupSetting(settings, "type"); ok {
		val, err := asString(raw)
		if err != nil {
			return fmt.Errorf("type: %w", err)
		}
		feeder.Type = strings.ToLower(strings.TrimSpace(val))
	}
	return nil
}
