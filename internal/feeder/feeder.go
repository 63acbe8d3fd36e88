// Package feeder supplies package data from external files for benchmark
// runs, as an alternative to random generation.
package feeder

import (
	"context"
	"fmt"
)

// Record represents a single row of data with named fields.
type Record map[string]string

// Feeder provides per-evaluation data from a dataset in round-robin order,
// wrapping around when the dataset is exhausted. Implementations must be safe
// for concurrent use.
type Feeder interface {
	// Next returns the next record from the dataset.
	Next(ctx context.Context) (Record, error)

	// Close releases any resources held by the feeder.
	Close() error

	// Len returns the total number of records in the dataset.
	Len() int
}

// New creates a feeder for the given file path and type ("csv" or "json").
func New(path, typ string) (Feeder, error) {
	switch typ {
	case "csv":
		return NewCSVFeeder(path)
	case "json":
		return NewJSONFeeder(path)
	default:
		return nil, fmt.Errorf("unsupported feeder type %q", typ)
	}
}
