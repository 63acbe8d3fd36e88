package bench

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// ArrivalModel selects how evaluation start times are paced.
type ArrivalModel string

const (
	ArrivalModelUniform ArrivalModel = "uniform"
	ArrivalModelPoisson ArrivalModel = "poisson"
)

// Evaluator abstracts executing a single quote evaluation.
// Implementations should return an error for failed evaluations.
type Evaluator interface {
	Do(ctx context.Context) error
}

// Options configure the benchmark engine.
type Options struct {
	Concurrency    int           // number of worker goroutines
	Total          int           // total evaluations to execute (0 means unlimited until duration/end)
	Duration       time.Duration // overall time limit (0 means no duration cap)
	RatePerSecond  int           // evaluations per second pacing (0 means unlimited)
	Evaluator      Evaluator     // evaluation executor (required)
	ArrivalModel   ArrivalModel  // pacing model (defaults to uniform)
	Seed           int64         // seed for the Poisson sampler (0 means clock-derived)
	PoissonSampler func() float64              // optional injection for tests
	LimiterFactory func(rps int) *rate.Limiter // optional injection for tests
}

func (o *Options) normalize() {
	if o.Concurrency <= 0 {
		o.Concurrency = 1
	}
	if o.Total < 0 {
		o.Total = 0
	}
	if o.RatePerSecond < 0 {
		o.RatePerSecond = 0
	}
	if o.ArrivalModel == "" {
		o.ArrivalModel = ArrivalModelUniform
	}
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
	if o.LimiterFactory == nil {
		o.LimiterFactory = func(rps int) *rate.Limiter {
			if rps <= 0 {
				return rate.NewLimiter(rate.Inf, 0)
			}
			// Burst equal to rps to smooth pacing under concurrency.
			return rate.NewLimiter(rate.Limit(rps), rps)
		}
	}
}
