// Package output renders benchmark reports and live progress for rateshop.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/mvaldes/rateshop/internal/metrics"
)

// PrintReport outputs a human-readable summary report.
func PrintReport(w io.Writer, stats metrics.Stats) {
	fmt.Fprintln(w, "\n--- Benchmark Results ---")
	fmt.Fprintf(w, "Run ID:            %s\n", stats.RunID)
	fmt.Fprintf(w, "Total Quotes:      %d\n", stats.Total)
	fmt.Fprintf(w, "Successful:        %d\n", stats.Successes)
	fmt.Fprintf(w, "Failed:            %d\n", stats.Failures)
	fmt.Fprintf(w, "Duration:          %s\n", stats.Duration)
	fmt.Fprintf(w, "Quotes/sec:        %.2f\n", stats.QuotesPerSec)
	fmt.Fprintln(w, "\nLatency:")
	fmt.Fprintf(w, "  Min:             %s\n", stats.MinLatency)
	fmt.Fprintf(w, "  Max:             %s\n", stats.MaxLatency)
	fmt.Fprintf(w, "  Mean:            %s\n", stats.MeanLatency)
	fmt.Fprintf(w, "  P50:             %s\n", stats.P50Latency)
	fmt.Fprintf(w, "  P90:             %s\n", stats.P90Latency)
	fmt.Fprintf(w, "  P99:             %s\n", stats.P99Latency)

	if stats.CheapestPlan != "" {
		fmt.Fprintf(w, "\nCheapest quote seen: %s ($%.2f)\n", stats.CheapestPlan, stats.CheapestCost)
	}

	if len(stats.Errors) > 0 {
		fmt.Fprintln(w, "\nErrors:")
		types := make([]string, 0, len(stats.Errors))
		for errType := range stats.Errors {
			types = append(types, errType)
		}
		sort.Strings(types)
		for _, errType := range types {
			fmt.Fprintf(w, "  %s: %d\n", errType, stats.Errors[errType])
		}
	}
}

// PrintJSONReport outputs a JSON-formatted report.
func PrintJSONReport(w io.Writer, stats metrics.Stats) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(stats)
}
