package metrics_test

import (
	"errors"
	"testing"
	"time"

	"github.com/mvaldes/rateshop/internal/metrics"
	"github.com/mvaldes/rateshop/internal/rates"
)

func TestCollectorCounts(t *testing.T) {
	c := metrics.NewCollector()

	c.RecordQuote(100*time.Nanosecond, rates.Quote{Plan: "A", Cost: 12.5}, nil)
	c.RecordQuote(200*time.Nanosecond, rates.Quote{Plan: "B", Cost: 9.5}, nil)
	c.RecordQuote(150*time.Nanosecond, rates.Quote{}, errors.New("boom"))

	stats := c.Stats(time.Second)
	if stats.Total != 3 {
		t.Fatalf("expected total 3, got %d", stats.Total)
	}
	if stats.Successes != 2 || stats.Failures != 1 {
		t.Fatalf("expected 2 successes / 1 failure, got %d / %d", stats.Successes, stats.Failures)
	}
	if stats.QuotesPerSec != 3 {
		t.Fatalf("expected 3 quotes/sec over 1s, got %g", stats.QuotesPerSec)
	}
	if len(stats.Errors) != 1 {
		t.Fatalf("expected one error type, got %v", stats.Errors)
	}
}

func TestCollectorTracksCheapestAcrossRun(t *testing.T) {
	c := metrics.NewCollector()

	c.RecordQuote(time.Microsecond, rates.Quote{Plan: "Uber Paquetes", Cost: 17.0}, nil)
	c.RecordQuote(time.Microsecond, rates.Quote{Plan: "Rappi Courier", Cost: 16.25}, nil)
	c.RecordQuote(time.Microsecond, rates.Quote{Plan: "DHL Express", Cost: 31.5}, nil)
	// Failed evaluations must not influence the cheapest quote.
	c.RecordQuote(time.Microsecond, rates.Quote{Plan: "bogus", Cost: 0.01}, errors.New("bad package"))

	stats := c.Stats(time.Second)
	if stats.CheapestPlan != "Rappi Courier" {
		t.Fatalf("expected Rappi Courier, got %q", stats.CheapestPlan)
	}
	if stats.CheapestCost != 16.25 {
		t.Fatalf("expected 16.25, got %g", stats.CheapestCost)
	}
}

func TestCollectorLatencyStats(t *testing.T) {
	c := metrics.NewCollector()
	for i := 1; i <= 100; i++ {
		c.RecordQuote(time.Duration(i)*time.Microsecond, rates.Quote{Plan: "A", Cost: 1}, nil)
	}

	stats := c.Stats(time.Second)
	if stats.MinLatency != time.Microsecond {
		t.Fatalf("expected min 1µs, got %s", stats.MinLatency)
	}
	if stats.MaxLatency != 100*time.Microsecond {
		t.Fatalf("expected max 100µs, got %s", stats.MaxLatency)
	}
	if stats.P50Latency < 40*time.Microsecond || stats.P50Latency > 60*time.Microsecond {
		t.Fatalf("p50 out of range: %s", stats.P50Latency)
	}
	if stats.P99Latency < stats.P50Latency {
		t.Fatalf("p99 %s below p50 %s", stats.P99Latency, stats.P50Latency)
	}
	if stats.MeanLatencyUs <= 0 {
		t.Fatalf("mean latency not populated: %g", stats.MeanLatencyUs)
	}
}

func TestCollectorRunID(t *testing.T) {
	a := metrics.NewCollector()
	b := metrics.NewCollector()
	if a.RunID() == "" {
		t.Fatalf("run ID must not be empty")
	}
	if a.RunID() == b.RunID() {
		t.Fatalf("run IDs must be unique, both %s", a.RunID())
	}
	if stats := a.Stats(0); stats.RunID != a.RunID() {
		t.Fatalf("stats run ID mismatch: %s vs %s", stats.RunID, a.RunID())
	}
}

func TestCollectorEmptyStats(t *testing.T) {
	c := metrics.NewCollector()
	stats := c.Stats(time.Second)
	if stats.Total != 0 || stats.QuotesPerSec != 0 {
		t.Fatalf("expected empty stats, got %+v", stats)
	}
	if stats.CheapestPlan != "" {
		t.Fatalf("expected no cheapest plan, got %q", stats.CheapestPlan)
	}
}
