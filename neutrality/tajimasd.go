// Package neutrality computes Tajima's D, the normalized difference
// between Tajima's pi and Watterson's theta used as a neutrality-test
// statistic (Tajima 1989, Genetics 123(3), formula 38).
package neutrality

import (
	"math"

	"github.com/magicDGS/popgenlib/diversity"
	"github.com/magicDGS/popgenlib/verify"
)

// Constants holds the variance-normalization constants e1 and e2 for
// Tajima's D (formulas 36 and 37 in Tajima 1989). They depend only on the
// number of samples.
type Constants struct {
	E1 float64
	E2 float64
}

// VarianceConstants derives e1 and e2 for the given number of samples.
// It fails for fewer than 2 samples.
func VarianceConstants(numberOfSamples int) (Constants, error) {
	a1, err := diversity.WattersonsDenominator(numberOfSamples)
	if err != nil {
		return Constants{}, err
	}

	return varianceConstants(a1, numberOfSamples), nil
}

// varianceConstants derives the constants from an already-computed
// harmonic denominator a1, so cached values can be reused.
func varianceConstants(a1 float64, numberOfSamples int) Constants {
	n := float64(numberOfSamples)

	// second Watterson constant (formula 4)
	var a2 float64
	for i := 1; i < numberOfSamples; i++ {
		a2 += 1 / (float64(i) * float64(i))
	}

	// Tajima's pi constants (formulas 8 and 9)
	b1 := (n + 1) / (3 * (n - 1))
	b2 := 2 * (n*n + n + 3) / (9 * n * (n - 1))

	a1Square := a1 * a1

	// variance constants (formulas 31 and 32)
	c1 := b1 - 1/a1
	c2 := b2 - (n+2)/(a1*n) + a2/a1Square

	// variance estimation constants (formulas 36 and 37)
	return Constants{
		E1: c1 / a1,
		E2: c2 / (a1Square + a2),
	}
}

// TajimasD computes Tajima's D from the number of samples, an observed
// pairwise-difference estimate of pi, and the number of segregating sites.
// When the variance term is exactly zero the statistic is defined as 0 and
// theta is never evaluated.
func TajimasD(numberOfSamples int, piEstimate float64, segregatingSites int) (float64, error) {
	if err := verify.Validate(segregatingSites >= 0,
		"number of segregating sites should be 0 or a positive integer: %d", segregatingSites); err != nil {
		return 0, err
	}

	constants, err := VarianceConstants(numberOfSamples)
	if err != nil {
		return 0, err
	}

	return tajimasD(piEstimate, constants, segregatingSites, func() (float64, error) {
		return diversity.WattersonsTheta(numberOfSamples, segregatingSites)
	})
}

// tajimasD evaluates formula 38 with theta supplied lazily: it is only
// computed when the variance is non-zero and the difference is actually
// used.
func tajimasD(piEstimate float64, constants Constants, segregatingSites int, theta func() (float64, error)) (float64, error) {
	s := float64(segregatingSites)
	variance := math.Sqrt(constants.E1*s + constants.E2*s*(s-1))

	if variance == 0 {
		return 0, nil
	}

	wattersons, err := theta()
	if err != nil {
		return 0, err
	}

	return (piEstimate - wattersons) / variance, nil
}
