package bench

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Result captures execution summary.
type Result struct {
	Total    int64
	Errors   int64
	Duration time.Duration
}

// Bench coordinates concurrent evaluation with rate limiting.
type Bench struct {
	opt     Options
	arrival arrivalController
}

func New(opt Options) *Bench {
	opt.normalize()
	arrival := newArrivalController(opt)
	return &Bench{opt: opt, arrival: arrival}
}

func (b *Bench) Run(ctx context.Context) Result {
	start := time.Now()
	var total int64
	var errs int64

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if b.opt.Duration > 0 {
		deadlineCtx, deadlineCancel := context.WithTimeout(ctx, b.opt.Duration)
		ctx = deadlineCtx
		defer deadlineCancel()
	}

	permits := make(chan struct{}, b.opt.Concurrency)

	// Scheduler: serializes rate limiting to avoid burst overshoot across workers.
	go func() {
		defer close(permits)
		for {
			if ctx.Err() != nil {
				return
			}
			current := atomic.LoadInt64(&total)
			if b.opt.Total > 0 && current >= int64(b.opt.Total) {
				return
			}
			if b.arrival != nil {
				if err := b.arrival.Wait(ctx); err != nil {
					return
				}
			}
			// Increment total before releasing permit so workers only execute allocated slots.
			atomic.AddInt64(&total, 1)
			select {
			case permits <- struct{}{}:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	wg.Add(b.opt.Concurrency)
	for i := 0; i < b.opt.Concurrency; i++ {
		go func() {
			defer wg.Done()
			for range permits {
				if b.opt.Evaluator != nil {
					if err := b.opt.Evaluator.Do(ctx); err != nil {
						atomic.AddInt64(&errs, 1)
					}
				}
				if ctx.Err() != nil {
					return
				}
			}
		}()
	}
	wg.Wait()

	return Result{
		Total:    atomic.LoadInt64(&total),
		Errors:   atomic.LoadInt64(&errs),
		Duration: time.Since(start),
	}
}
