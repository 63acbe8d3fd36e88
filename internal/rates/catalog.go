package rates

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk shape of a plan catalog. JSON files parse too,
// since JSON is a YAML subset.
type catalogFile struct {
	Plans []RatePlan `yaml:"plans"`
}

// DefaultCatalog returns the built-in courier plans used when no catalog file
// is supplied.
func DefaultCatalog() []RatePlan {
	return []RatePlan{
		{Name: "Rappi Courier", BaseFee: 5.0, PerKg: 1.5, PerCubicCm: 0.001},
		{Name: "Uber Paquetes", BaseFee: 8.0, PerKg: 1.2, PerCubicCm: 0.0008},
		{Name: "DHL Express", BaseFee: 20.0, PerKg: 1.0, PerCubicCm: 0.002},
	}
}

// LoadCatalog reads rate plans from a YAML catalog file. Plan order is
// preserved: it decides tie-breaking in Cheapest.
func LoadCatalog(path string) ([]RatePlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	if err := validateCatalog(file.Plans); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return file.Plans, nil
}

func validateCatalog(plans []RatePlan) error {
	if len(plans) == 0 {
		return fmt.Errorf("no plans defined")
	}

	seen := make(map[string]int, len(plans))
	for i, plan := range plans {
		name := strings.TrimSpace(plan.Name)
		if name == "" {
			return fmt.Errorf("plans[%d]: name is required", i)
		}
		key := strings.ToLower(name)
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("plans[%d]: duplicate name also defined at index %d", i, prev)
		}
		seen[key] = i

		if plan.BaseFee < 0 {
			return fmt.Errorf("plans[%d] %q: base_fee must be >= 0", i, name)
		}
		if plan.PerKg < 0 {
			return fmt.Errorf("plans[%d] %q: per_kg must be >= 0", i, name)
		}
		if plan.PerCubicCm < 0 {
			return fmt.Errorf("plans[%d] %q: per_cubic_cm must be >= 0", i, name)
		}
	}
	return nil
}
