package bench

import (
	"math/rand"
	"sync"
	"time"

	"github.com/mvaldes/rateshop/internal/rates"
)

// Ranges for generated packages: weight in [1,21) kg, dimensions in [10,60) cm.
const (
	minWeightKg  = 1.0
	weightSpanKg = 20.0
	minDimCm     = 10.0
	dimSpanCm    = 50.0
)

// PackageGenerator produces random, always-valid packages for stress runs.
// It is safe for concurrent use.
type PackageGenerator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewPackageGenerator creates a generator seeded with the given value.
// A zero seed derives one from the clock, so exact outputs vary run to run.
func NewPackageGenerator(seed int64) *PackageGenerator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PackageGenerator{rnd: rand.New(rand.NewSource(seed))}
}

// Next returns the next random package.
func (g *PackageGenerator) Next() rates.Package {
	g.mu.Lock()
	defer g.mu.Unlock()
	return rates.Package{
		WeightKg: minWeightKg + g.rnd.Float64()*weightSpanKg,
		Dims: rates.Dimensions{
			LengthCm: minDimCm + g.rnd.Float64()*dimSpanCm,
			WidthCm:  minDimCm + g.rnd.Float64()*dimSpanCm,
			HeightCm: minDimCm + g.rnd.Float64()*dimSpanCm,
		},
	}
}
