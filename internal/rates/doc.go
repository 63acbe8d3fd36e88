// Package rates implements courier rate-plan pricing and cheapest-option
// selection for rateshop.
//
// A [RatePlan] is a named linear pricing rule: a base fee plus optional
// per-kilogram and per-cubic-centimetre components. [RatePlan.Cost] is a pure
// function of the plan and a [Package]; [Cheapest] scans a plan list and
// returns the lowest quote, preferring the earliest plan on ties.
//
// # Basic Usage
//
//	pkg := rates.Package{
//		WeightKg: 5.5,
//		Dims:     rates.Dimensions{LengthCm: 15, WidthCm: 10, HeightCm: 20},
//	}
//	quote, err := rates.Cheapest(pkg, rates.DefaultCatalog())
//	if err != nil {
//		// errors.Is(err, rates.ErrNoRatePlans)
//	}
//
// Plan catalogs can be loaded from YAML files with [LoadCatalog]; the built-in
// [DefaultCatalog] is used when no file is supplied.
package rates
