package neutrality

import (
	"github.com/magicDGS/popgenlib/cache"
	"github.com/magicDGS/popgenlib/diversity"
	"github.com/magicDGS/popgenlib/verify"
)

// DCalculator computes Tajima's D with per-sample-size caches for the
// expensive terms: one for the harmonic denominator and one for the
// variance constants. The constants loader reads through the denominator
// cache, so a constants miss fills (or reuses) the denominator entry for
// the same sample size instead of recomputing it.
//
// A DCalculator is safe for concurrent use.
type DCalculator struct {
	denominators *cache.Loading[int, float64]
	constants    *cache.Loading[int, Constants]
}

// NewDCalculator creates a calculator with fresh composed caches. Options
// configure the retention of both.
func NewDCalculator(opts ...cache.Option) *DCalculator {
	c := &DCalculator{}
	c.denominators = cache.New[int, float64](diversity.WattersonsDenominator, opts...)
	c.constants = cache.New[int, Constants](func(numberOfSamples int) (Constants, error) {
		a1, err := c.denominators.Get(numberOfSamples)
		if err != nil {
			return Constants{}, err
		}
		return varianceConstants(a1, numberOfSamples), nil
	}, opts...)

	return c
}

// TajimasD computes Tajima's D using the cached variance constants and
// denominator. Invalid arguments fail exactly as in the uncached
// TajimasD.
func (c *DCalculator) TajimasD(numberOfSamples int, piEstimate float64, segregatingSites int) (float64, error) {
	if err := verify.Validate(segregatingSites >= 0,
		"number of segregating sites should be 0 or a positive integer: %d", segregatingSites); err != nil {
		return 0, err
	}

	constants, err := c.constants.Get(numberOfSamples)
	if err != nil {
		return 0, err
	}

	return tajimasD(piEstimate, constants, segregatingSites, func() (float64, error) {
		return c.WattersonsTheta(numberOfSamples, segregatingSites)
	})
}

// WattersonsTheta computes Watterson's theta using the cached denominator.
func (c *DCalculator) WattersonsTheta(numberOfSamples, numberOfSegregatingSites int) (float64, error) {
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

// DenominatorCacheStats returns the harmonic-denominator cache counters.
func (c *DCalculator) DenominatorCacheStats() cache.Stats {
	return c.denominators.Stats()
}

// ConstantsCacheStats returns the variance-constants cache counters.
func (c *DCalculator) ConstantsCacheStats() cache.Stats {
	return c.constants.Stats()
}
