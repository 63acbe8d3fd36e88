package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/oklog/ulid/v2"

	"github.com/mvaldes/rateshop/internal/rates"
)

// Collector records per-evaluation metrics in a thread-safe manner.
type Collector struct {
	mu           sync.Mutex
	runID        string
	hist         *hdrhistogram.Histogram
	successes    int64
	failures     int64
	minLatency   time.Duration
	maxLatency   time.Duration
	sumLatency   time.Duration
	best         rates.Quote
	hasBest      bool
	errorsByType map[string]int64
	start        time.Time
}

// Stats represents aggregated benchmark metrics.
type Stats struct {
	RunID        string        `json:"run_id"`
	Total        int64         `json:"total"`
	Successes    int64         `json:"successes"`
	Failures     int64         `json:"failures"`
	MinLatency   time.Duration `json:"-"`
	MaxLatency   time.Duration `json:"-"`
	MeanLatency  time.Duration `json:"-"`
	P50Latency   time.Duration `json:"-"`
	P90Latency   time.Duration `json:"-"`
	P99Latency   time.Duration `json:"-"`
	Duration     time.Duration `json:"-"`
	QuotesPerSec float64       `json:"quotes_per_sec"`
	CheapestPlan string        `json:"cheapest_plan,omitempty"`
	CheapestCost float64       `json:"cheapest_cost,omitempty"`

	// JSON-friendly microsecond fields.
	MinLatencyUs  float64        `json:"min_latency_us"`
	MaxLatencyUs  float64        `json:"max_latency_us"`
	MeanLatencyUs float64        `json:"mean_latency_us"`
	P50LatencyUs  float64        `json:"p50_latency_us"`
	P90LatencyUs  float64        `json:"p90_latency_us"`
	P99LatencyUs  float64        `json:"p99_latency_us"`
	DurationMs    float64        `json:"duration_ms"`
	Errors        map[string]int `json:"errors,omitempty"`
}

func NewCollector() *Collector {
	// Track latencies from 1ns up to 1min with 3 significant figures.
	h := hdrhistogram.New(1, int64(time.Minute), 3)
	return &Collector{
		runID:        ulid.Make().String(),
		hist:         h,
		errorsByType: make(map[string]int64),
		start:        time.Now(),
	}
}

// RunID returns the unique identifier assigned to this collector's run.
func (c *Collector) RunID() string {
	return c.runID
}

// Start marks the moment the benchmark actually begins. Reporters created
// before the run use this to compute accurate throughput.
func (c *Collector) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.start = time.Now()
}

// Elapsed returns the time since Start was last called.
func (c *Collector) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return time.Since(c.start)
}

// RecordQuote records a single evaluation's latency, winning quote, and error
// state. The quote is ignored when err is non-nil.
func (c *Collector) RecordQuote(latency time.Duration, quote rates.Quote, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if latency > 0 {
		ns := latency.Nanoseconds()
		if ns > c.hist.HighestTrackableValue() {
			ns = c.hist.HighestTrackableValue()
		}
		_ = c.hist.RecordValue(ns)
	}
	c.sumLatency += latency

	if c.minLatency == 0 || latency < c.minLatency {
		c.minLatency = latency
	}
	if latency > c.maxLatency {
		c.maxLatency = latency
	}

	if err == nil {
		c.successes++
		if !c.hasBest || quote.Cost < c.best.Cost {
			c.best = quote
			c.hasBest = true
		}
	} else {
		c.failures++
		errorType := fmt.Sprintf("%T", err)
		if len(errorType) > 30 {
			errorType = errorType[len(errorType)-30:]
		}
		c.errorsByType[errorType]++
	}
}

// Stats computes and returns current aggregated statistics.
func (c *Collector) Stats(elapsed time.Duration) Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := c.successes + c.failures
	stats := Stats{
		RunID:      c.runID,
		Total:      total,
		Successes:  c.successes,
		Failures:   c.failures,
		MinLatency: c.minLatency,
		MaxLatency: c.maxLatency,
	}

	if total > 0 {
		stats.MeanLatency = time.Duration(int64(c.sumLatency) / total)
	}

	if c.hist.TotalCount() > 0 {
		stats.P50Latency = time.Duration(c.hist.ValueAtQuantile(50))
		stats.P90Latency = time.Duration(c.hist.ValueAtQuantile(90))
		stats.P99Latency = time.Duration(c.hist.ValueAtQuantile(99))
	}

	if c.hasBest {
		stats.CheapestPlan = c.best.Plan
		stats.CheapestCost = c.best.Cost
	}

	stats.MinLatencyUs = float64(stats.MinLatency) / float64(time.Microsecond)
	stats.MaxLatencyUs = float64(stats.MaxLatency) / float64(time.Microsecond)
	stats.MeanLatencyUs = float64(stats.MeanLatency) / float64(time.Microsecond)
	stats.P50LatencyUs = float64(stats.P50Latency) / float64(time.Microsecond)
	stats.P90LatencyUs = float64(stats.P90Latency) / float64(time.Microsecond)
	stats.P99LatencyUs = float64(stats.P99Latency) / float64(time.Microsecond)

	stats.Duration = elapsed
	stats.DurationMs = float64(elapsed) / float64(time.Millisecond)
	if elapsed > 0 && total > 0 {
		stats.QuotesPerSec = float64(total) / elapsed.Seconds()
	}

	if len(c.errorsByType) > 0 {
		stats.Errors = make(map[string]int, len(c.errorsByType))
		for k, v := range c.errorsByType {
			stats.Errors[k] = int(v)
		}
	}

	return stats
}
