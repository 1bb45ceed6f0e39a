package diversity

import (
	"github.com/magicDGS/popgenlib/cache"
	"github.com/magicDGS/popgenlib/verify"
)

// ThetaCalculator computes Watterson's theta with a per-sample-size cache
// for the harmonic denominator. It pays off when many sites share the same
// number of samples, e.g. windows over a genome: the denominator is then
// derived once per distinct sample size instead of once per call.
//
// A ThetaCalculator is safe for concurrent use.
type ThetaCalculator struct {
	denominators *cache.Loading[int, float64]
}

// NewThetaCalculator creates a calculator with its own denominator cache.
// Options configure the cache retention.
func NewThetaCalculator(opts ...cache.Option) *ThetaCalculator {
	return &ThetaCalculator{
		denominators: cache.New[int, float64](WattersonsDenominator, opts...),
	}
}

// WattersonsTheta computes Watterson's theta using the cached denominator
// for numberOfSamples. Invalid arguments fail exactly as in the uncached
// WattersonsTheta, including sample sizes rejected by the cache loader.
func (c *ThetaCalculator) WattersonsTheta(numberOfSamples, numberOfSegregatingSites int) (float64, error) {
	if err := verify.Validate(numberOfSegregatingSites >= 0,
		"number of segregating sites should be 0 or a positive integer: %d", numberOfSegregatingSites); err != nil {
		return 0, err
	}

	denominator, err := c.denominators.Get(numberOfSamples)
	if err != nil {
		return 0, err
	}

	return float64(numberOfSegregatingSites) / denominator, nil
}

// CacheStats returns the denominator cache counters.
func (c *ThetaCalculator) CacheStats() cache.Stats {
	return c.denominators.Stats()
}
