package output

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gofrs/flock"

	"github.com/mvaldes/rateshop/internal/metrics"
)

const lockTimeout = 5 * time.Second

// WriteReportFile persists the JSON report to path. A sibling lock file
// serializes writers so concurrent invocations sharing an output path do not
// interleave.
func WriteReportFile(path string, stats metrics.Stats) error {
	lock := flock.New(path + ".lock")

	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	locked, err := lock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("lock report file: %w", err)
	}
	if !locked {
		return fmt.Errorf("report file %s is locked by another process", path)
	}
	defer lock.Unlock()

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}

	if err := PrintJSONReport(file, stats); err != nil {
		file.Close()
		return fmt.Errorf("write report: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close report file: %w", err)
	}
	return nil
}
