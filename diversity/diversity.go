// Package diversity computes nucleotide diversity statistics from allele
// frequencies and counts: Tajima's pi (Tajima 1989, Genetics 123(3),
// formula 12) and Watterson's theta (Watterson 1975, Theor. Popul. Biol.
// 7(2), formula 1.4a).
package diversity

import (
	"gonum.org/v1/gonum/mathext"

	"github.com/magicDGS/popgenlib/freqs"
	"github.com/magicDGS/popgenlib/verify"
)

// TajimasPi computes Tajima's pi for a single site from allele
// frequencies. The frequencies must form a valid vector (entries in [0, 1]
// summing to exactly 1) and numberOfSamples must be at least 2.
func TajimasPi(numberOfSamples int, alleleFrequencies []float64) (float64, error) {
	if err := freqs.Validate(alleleFrequencies); err != nil {
		return 0, err
	}
	if err := verify.Validate(numberOfSamples >= 2,
		"numberOfSamples should be at least 2 for computing Tajima's Pi: %d", numberOfSamples); err != nil {
		return 0, err
	}

	var pSquareSum float64
	for _, p := range alleleFrequencies {
		pSquareSum += p * p
	}

	n := float64(numberOfSamples)
	return n * (1 - pSquareSum) / (n - 1), nil
}

// TajimasPiFromCounts computes Tajima's pi for a single site from allele
// counts. The number of samples is the sum of all counts; frequencies are
// derived with exact division so the vector contract holds.
func TajimasPiFromCounts(alleleCounts []int) (float64, error) {
	total, frequencies, err := freqs.CountsToFrequencies(alleleCounts)
	if err != nil {
		return 0, err
	}

	return TajimasPi(total, frequencies)
}

// WattersonsTheta computes Watterson's theta from the number of samples
// and the number of segregating sites observed in them.
func WattersonsTheta(numberOfSamples, numberOfSegregatingSites int) (float64, error) {
	if err := verify.Validate(numberOfSegregatingSites >= 0,
		"number of segregating sites should be 0 or a positive integer: %d", numberOfSegregatingSites); err != nil {
		return 0, err
	}

	denominator, err := WattersonsDenominator(numberOfSamples)
	if err != nil {
		return 0, err
	}

	return float64(numberOfSegregatingSites) / denominator, nil
}

// commons-math style crossover: below this sample size the exact summation
// needs fewer operations than the digamma evaluation
const denominatorApproximationMin = 49

// Euler-Mascheroni constant
const eulerGamma = 0.57721566490153286060651209008240243104215933593992

// WattersonsDenominator returns the denominator of Watterson's theta for
// numberOfSamples samples, which is the (numberOfSamples-1)th harmonic
// number (formula 3 in Tajima 1989). The value is summed exactly for fewer
// than 49 samples; at or above that, it is evaluated in constant time as
// gamma + digamma(numberOfSamples). Both branches agree within statistical
// precision across the crossover.
//
// The signature matches cache.LoaderFunc[int, float64], so it can back a
// loading cache directly.
func WattersonsDenominator(numberOfSamples int) (float64, error) {
	if err := verify.Validate(numberOfSamples > 1,
		"numberOfSamples should be at least 2: %d", numberOfSamples); err != nil {
		return 0, err
	}

	if numberOfSamples < denominatorApproximationMin {
		var sum float64
		for i := 1; i < numberOfSamples; i++ {
			sum += 1 / float64(i)
		}
		return sum, nil
	}

	// H(n-1) == gamma + digamma(n)
	return eulerGamma + mathext.Digamma(float64(numberOfSamples)), nil
}
