package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/mvaldes/rateshop/internal/bench"
	"github.com/mvaldes/rateshop/internal/feeder"
	"github.com/mvaldes/rateshop/internal/metrics"
	"github.com/mvaldes/rateshop/internal/rates"
)

// packageSource yields the next package to quote during a benchmark run.
type packageSource interface {
	Next(ctx context.Context) (rates.Package, error)
}

type generatorSource struct {
	gen *bench.PackageGenerator
}

func (s *generatorSource) Next(context.Context) (rates.Package, error) {
	return s.gen.Next(), nil
}

type feederSource struct {
	feed feeder.Feeder
}

func (s *feederSource) Next(ctx context.Context) (rates.Package, error) {
	record, err := s.feed.Next(ctx)
	if err != nil {
		return rates.Package{}, err
	}
	return packageFromRecord(record)
}

// packageFromRecord builds a package from feeder fields weight_kg, length_cm,
// width_cm, and height_cm.
func packageFromRecord(record feeder.Record) (rates.Package, error) {
	weight, err := recordFloat(record, "weight_kg")
	if err != nil {
		return rates.Package{}, err
	}
	length, err := recordFloat(record, "length_cm")
	if err != nil {
		return rates.Package{}, err
	}
	width, err := recordFloat(record, "width_cm")
	if err != nil {
		return rates.Package{}, err
	}
	height, err := recordFloat(record, "height_cm")
	if err != nil {
		return rates.Package{}, err
	}

	return rates.Package{
		WeightKg: weight,
		Dims:     rates.Dimensions{LengthCm: length, WidthCm: width, HeightCm: height},
	}, nil
}

func recordFloat(record feeder.Record, field string) (float64, error) {
	raw, ok := record[field]
	if !ok {
		return 0, fmt.Errorf("record is missing field %q", field)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("record field %q is not a number: %q", field, raw)
	}
	return value, nil
}

// quoteEvaluator performs one cheapest-quote evaluation per Do call and
// records the outcome.
type quoteEvaluator struct {
	plans     []rates.RatePlan
	source    packageSource
	collector *metrics.Collector
}

func (e *quoteEvaluator) Do(ctx context.Context) error {
	start := time.Now()

	pkg, err := e.source.Next(ctx)
	if err != nil {
		e.collector.RecordQuote(time.Since(start), rates.Quote{}, err)
		return err
	}
	if err := pkg.Validate(); err != nil {
		e.collector.RecordQuote(time.Since(start), rates.Quote{}, err)
		return err
	}

	quote, err := rates.Cheapest(pkg, e.plans)
	e.collector.RecordQuote(time.Since(start), quote, err)
	return err
}
