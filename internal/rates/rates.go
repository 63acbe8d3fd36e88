package rates

import (
	"errors"
	"fmt"
)

// ErrNoRatePlans is returned by Cheapest when the plan list is empty.
var ErrNoRatePlans = errors.New("no rates available")

// Dimensions describes a package's size in centimetres.
type Dimensions struct {
	LengthCm float64 `yaml:"length_cm"`
	WidthCm  float64 `yaml:"width_cm"`
	HeightCm float64 `yaml:"height_cm"`
}

// Volume returns the package volume in cubic centimetres.
func (d Dimensions) Volume() float64 {
	return d.LengthCm * d.WidthCm * d.HeightCm
}

// Package is an immutable shipment to be priced.
type Package struct {
	WeightKg float64
	Dims     Dimensions
}

// Validate rejects packages with non-positive weight or dimensions.
// Out-of-range inputs are rejected rather than clamped so a bad quote is
// never silently produced.
func (p Package) Validate() error {
	if p.WeightKg <= 0 {
		return fmt.Errorf("package weight must be > 0 kg, got %g", p.WeightKg)
	}
	if p.Dims.LengthCm <= 0 || p.Dims.WidthCm <= 0 || p.Dims.HeightCm <= 0 {
		return fmt.Errorf("package dimensions must be > 0 cm, got %gx%gx%g",
			p.Dims.LengthCm, p.Dims.WidthCm, p.Dims.HeightCm)
	}
	return nil
}

// RatePlan is a named linear pricing rule. Omitted components are zero, so a
// plan may charge by weight only, volume only, or a flat base fee.
type RatePlan struct {
	Name       string  `yaml:"name"`
	BaseFee    float64 `yaml:"base_fee"`
	PerKg      float64 `yaml:"per_kg"`
	PerCubicCm float64 `yaml:"per_cubic_cm"`
}

// Cost computes the total shipping cost for pkg under the plan:
// BaseFee + WeightKg*PerKg + Volume*PerCubicCm. Pure; no side effects.
func (r RatePlan) Cost(pkg Package) float64 {
	return r.BaseFee + pkg.WeightKg*r.PerKg + pkg.Dims.Volume()*r.PerCubicCm
}

// Quote pairs a plan name with the total cost computed for one package.
type Quote struct {
	Plan string  `json:"plan"`
	Cost float64 `json:"cost"`
}

func (q Quote) String() string {
	return fmt.Sprintf("%s ($%.2f)", q.Plan, q.Cost)
}

// Cheapest computes a quote for every plan and returns the minimum. Ties
// resolve to the plan that appears first in the list. An empty plan list
// returns ErrNoRatePlans.
func Cheapest(pkg Package, plans []RatePlan) (Quote, error) {
	if len(plans) == 0 {
		return Quote{}, ErrNoRatePlans
	}

	best := Quote{Plan: plans[0].Name, Cost: plans[0].Cost(pkg)}
	for _, plan := range plans[1:] {
		if cost := plan.Cost(pkg); cost < best.Cost {
			best = Quote{Plan: plan.Name, Cost: cost}
		}
	}
	return best, nil
}
