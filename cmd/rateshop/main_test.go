package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/mvaldes/rateshop/internal/bench"
	"github.com/mvaldes/rateshop/internal/config"
	"github.com/mvaldes/rateshop/internal/feeder"
	"github.com/mvaldes/rateshop/internal/metrics"
	"github.com/mvaldes/rateshop/internal/rates"
)

func samplePackage() rates.Package {
	return rates.Package{
		WeightKg: 5.5,
		Dims:     rates.Dimensions{LengthCm: 15, WidthCm: 10, HeightCm: 20},
	}
}

func TestQuoteOnce(t *testing.T) {
	var buf bytes.Buffer
	if err := quoteOnce(&buf, samplePackage(), rates.DefaultCatalog(), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := buf.String()

	// Rappi: 5 + 5.5*1.5 + 3000*0.001 = 16.25, the cheapest of the built-ins.
	for _, want := range []string{
		"Package: 5.50 kg, 15x10x20 cm (volume 3000.0 cm3)",
		"Rappi Courier: $16.25",
		"Uber Paquetes: $17.00",
		"DHL Express: $31.50",
		"Cheapest option: Rappi Courier ($16.25)",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
}

func TestQuoteOnceJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := quoteOnce(&buf, samplePackage(), rates.DefaultCatalog(), true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp quoteResponse
	if err := json.Unmarshal(buf.Bytes(), &resp); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if resp.Cheapest.Plan != "Rappi Courier" || resp.Cheapest.Cost != 16.25 {
		t.Fatalf("unexpected cheapest: %+v", resp.Cheapest)
	}
	if len(resp.Quotes) != 3 {
		t.Fatalf("expected 3 quotes, got %d", len(resp.Quotes))
	}
	if resp.Package.VolumeCm != 3000 {
		t.Fatalf("unexpected volume: %g", resp.Package.VolumeCm)
	}
}

func TestQuoteOnceEmptyPlans(t *testing.T) {
	var buf bytes.Buffer
	err := quoteOnce(&buf, samplePackage(), nil, false)
	if !errors.Is(err, rates.ErrNoRatePlans) {
		t.Fatalf("expected ErrNoRatePlans, got %v", err)
	}
}

func TestRunBenchEndToEnd(t *testing.T) {
	cfg := &config.Config{
		WeightKg: 5.5,
		LengthCm: 15, WidthCm: 10, HeightCm: 20,
		Bench: config.BenchConfig{
			Enabled:     true,
			Concurrency: 4,
			Total:       2000,
			Seed:        42,
			Arrival:     config.ArrivalModelUniform,
		},
		JSONOutput: true,
	}

	var buf bytes.Buffer
	if err := runBench(&buf, cfg, rates.DefaultCatalog()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var stats metrics.Stats
	if err := json.Unmarshal(buf.Bytes(), &stats); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if stats.Total != 2000 || stats.Failures != 0 {
		t.Fatalf("unexpected stats: total=%d failures=%d", stats.Total, stats.Failures)
	}
	if stats.CheapestPlan == "" {
		t.Fatalf("expected a cheapest plan across the run")
	}
}

func TestToBenchArrivalModel(t *testing.T) {
	tests := []struct {
		input config.ArrivalModel
		want  bench.ArrivalModel
	}{
		{config.ArrivalModelUniform, bench.ArrivalModelUniform},
		{config.ArrivalModelPoisson, bench.ArrivalModelPoisson},
		{"unknown", bench.ArrivalModelUniform}, // Default fallback
	}

	for _, tt := range tests {
		got := toBenchArrivalModel(tt.input)
		if got != tt.want {
			t.Errorf("toBenchArrivalModel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPackageFromRecord(t *testing.T) {
	record := feeder.Record{
		"weight_kg": "5.5",
		"length_cm": "15",
		"width_cm":  "10",
		"height_cm": "20",
	}
	pkg, err := packageFromRecord(record)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pkg != samplePackage() {
		t.Fatalf("unexpected package: %+v", pkg)
	}
}

func TestPackageFromRecordErrors(t *testing.T) {
	tests := []struct {
		name   string
		record feeder.Record
	}{
		{"missing field", feeder.Record{"weight_kg": "5.5"}},
		{"non-numeric", feeder.Record{"weight_kg": "heavy", "length_cm": "1", "width_cm": "1", "height_cm": "1"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := packageFromRecord(tc.record); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestRunHelp(t *testing.T) {
	if err := run([]string{"--help"}); err != nil {
		t.Fatalf("help must not be an error: %v", err)
	}
}

func TestRunRejectsInvalidFlags(t *testing.T) {
	if err := run([]string{"--weight", "-3"}); err == nil {
		t.Fatalf("expected error for negative weight")
	}
}
