// Package metrics provides thread-safe aggregation of benchmark results for
// rateshop.
//
// The [Collector] records one sample per quote evaluation: the evaluation
// latency, the winning quote, and any error. Latencies feed an HDR histogram
// at nanosecond resolution (a cheapest-quote scan completes in well under a
// microsecond), so percentiles stay meaningful at high throughput.
//
// [Collector.Stats] produces an immutable [Stats] snapshot: counts, latency
// percentiles, evaluations per second, an error breakdown by type, and the
// cheapest quote observed across the entire run. Every collector carries a
// ULID run identifier so persisted reports can be told apart.
package metrics
