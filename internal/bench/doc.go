// Package bench provides the benchmark execution engine for rateshop.
//
// The engine repeatedly invokes a pure quote evaluation and measures the
// sustained throughput. It supports:
//   - Configurable worker concurrency
//   - Rate limiting (evaluations per second)
//   - Duration-based and count-based termination
//   - Uniform and Poisson arrival models
//
// # Basic Usage
//
//	opts := bench.Options{
//		Concurrency: 4,
//		Total:       100000,
//		Evaluator:   myEvaluator,
//	}
//	b := bench.New(opts)
//	result := b.Run(ctx)
//
// # Evaluator Interface
//
// The [Evaluator] interface defines what the engine executes:
//
//	type Evaluator interface {
//		Do(ctx context.Context) error
//	}
//
// Each Do call is independent and side-effect-free from the engine's point of
// view; workers share nothing beyond the permit channel.
//
// # Package Generation
//
// [PackageGenerator] produces random, valid packages for stress runs. A fixed
// seed makes a run reproducible; the zero seed derives one from the clock.
package bench
