package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mvaldes/rateshop/internal/bench"
	"github.com/mvaldes/rateshop/internal/config"
	"github.com/mvaldes/rateshop/internal/feeder"
	"github.com/mvaldes/rateshop/internal/metrics"
	"github.com/mvaldes/rateshop/internal/output"
	"github.com/mvaldes/rateshop/internal/rates"
)

const progressInterval = time.Second

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	loader := config.NewLoader()
	cfg, err := loader.Load(args)
	if err != nil {
		if errors.Is(err, config.ErrHelpRequested) {
			return nil
		}
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	plans := rates.DefaultCatalog()
	if cfg.PlansFile != "" {
		plans, err = rates.LoadCatalog(cfg.PlansFile)
		if err != nil {
			return err
		}
	}

	pkg := rates.Package{
		WeightKg: cfg.WeightKg,
		Dims: rates.Dimensions{
			LengthCm: cfg.LengthCm,
			WidthCm:  cfg.WidthCm,
			HeightCm: cfg.HeightCm,
		},
	}
	if err := pkg.Validate(); err != nil {
		return err
	}

	if !cfg.Bench.Enabled {
		return quoteOnce(os.Stdout, pkg, plans, cfg.JSONOutput)
	}
	return runBench(os.Stdout, cfg, plans)
}

// quoteOnce prints every plan's cost for the package, then the cheapest option.
func quoteOnce(w io.Writer, pkg rates.Package, plans []rates.RatePlan, jsonOutput bool) error {
	cheapest, err := rates.Cheapest(pkg, plans)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printQuoteJSON(w, pkg, plans, cheapest)
	}

	fmt.Fprintf(w, "Package: %.2f kg, %gx%gx%g cm (volume %.1f cm3)\n",
		pkg.WeightKg, pkg.Dims.LengthCm, pkg.Dims.WidthCm, pkg.Dims.HeightCm, pkg.Dims.Volume())
	fmt.Fprintln(w)
	for _, plan := range plans {
		fmt.Fprintf(w, "  %s: $%.2f\n", plan.Name, plan.Cost(pkg))
	}
	fmt.Fprintf(w, "\nCheapest option: %s\n", cheapest)
	return nil
}

func runBench(w io.Writer, cfg *config.Config, plans []rates.RatePlan) error {
	collector := metrics.NewCollector()

	source, cleanup, err := newPackageSource(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	evaluator := &quoteEvaluator{
		plans:     plans,
		source:    source,
		collector: collector,
	}

	b := bench.New(bench.Options{
		Concurrency:   cfg.Bench.Concurrency,
		Total:         cfg.Bench.Total,
		Duration:      cfg.Bench.Duration,
		RatePerSecond: cfg.Bench.Rate,
		Evaluator:     evaluator,
		ArrivalModel:  toBenchArrivalModel(cfg.Bench.Arrival),
		Seed:          cfg.Bench.Seed,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var progress *output.ProgressReporter
	if !cfg.JSONOutput {
		progress = output.NewProgressReporter(collector, progressInterval, w)
		progress.Start()
		defer func() {
			progress.Stop()
			fmt.Fprintln(w)
		}()
	}

	// Mark the actual start time in the collector for accurate QPS calculation.
	collector.Start()
	result := b.Run(ctx)
	stats := collector.Stats(result.Duration)

	if cfg.JSONOutput {
		if err := output.PrintJSONReport(w, stats); err != nil {
			return err
		}
	} else {
		output.PrintReport(w, stats)
	}

	if cfg.OutputFile != "" {
		if err := output.WriteReportFile(cfg.OutputFile, stats); err != nil {
			return err
		}
	}

	if result.Errors > 0 {
		return fmt.Errorf("%d evaluations failed", result.Errors)
	}
	return nil
}

// newPackageSource picks the benchmark input: a file feeder when configured,
// otherwise the random generator.
func newPackageSource(cfg *config.Config) (packageSource, func(), error) {
	if cfg.Feeder.Path != "" {
		feed, err := feeder.New(cfg.Feeder.Path, cfg.Feeder.Type)
		if err != nil {
			return nil, nil, err
		}
		return &feederSource{feed: feed}, func() { _ = feed.Close() }, nil
	}
	gen := bench.NewPackageGenerator(cfg.Bench.Seed)
	return &generatorSource{gen: gen}, func() {}, nil
}

func toBenchArrivalModel(model config.ArrivalModel) bench.ArrivalModel {
	switch model {
	case config.ArrivalModelPoisson:
		return bench.ArrivalModelPoisson
	default:
		return bench.ArrivalModelUniform
	}
}

type quoteResponse struct {
	Package  packageView   `json:"package"`
	Quotes   []rates.Quote `json:"quotes"`
	Cheapest rates.Quote   `json:"cheapest"`
}

type packageView struct {
	WeightKg float64 `json:"weight_kg"`
	LengthCm float64 `json:"length_cm"`
	WidthCm  float64 `json:"width_cm"`
	HeightCm float64 `json:"height_cm"`
	VolumeCm float64 `json:"volume_cm3"`
}

func printQuoteJSON(w io.Writer, pkg rates.Package, plans []rates.RatePlan, cheapest rates.Quote) error {
	resp := quoteResponse{
		Package: packageView{
			WeightKg: pkg.WeightKg,
			LengthCm: pkg.Dims.LengthCm,
			WidthCm:  pkg.Dims.WidthCm,
			HeightCm: pkg.Dims.HeightCm,
			VolumeCm: pkg.Dims.Volume(),
		},
		Cheapest: cheapest,
	}
	for _, plan := range plans {
		resp.Quotes = append(resp.Quotes, rates.Quote{Plan: plan.Name, Cost: plan.Cost(pkg)})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
