// Package divergence computes population divergence as F_ST, the fraction
// of total nucleotide diversity explained by between-population
// differences (formula 3 in Hudson et al. 1992).
package divergence

import (
	"github.com/montanaflynn/stats"

	"github.com/magicDGS/popgenlib/diversity"
	"github.com/magicDGS/popgenlib/verify"
)

// PairwiseFst computes F_ST for a pair of populations from their per-site
// allele frequencies and sample sizes. Both populations must report the
// same set of alleles (vectors of equal length).
func PairwiseFst(numberOfSamples1 int, alleleFrequencies1 []float64,
	numberOfSamples2 int, alleleFrequencies2 []float64) (float64, error) {
	if err := verify.NonEmptyFloats(alleleFrequencies1, "alleleFrequencies1"); err != nil {
		return 0, err
	}
	if err := verify.NonEmptyFloats(alleleFrequencies2, "alleleFrequencies2"); err != nil {
		return 0, err
	}
	if err := verify.Validate(len(alleleFrequencies1) == len(alleleFrequencies2),
		"different number of alleles in the pair of populations: %d vs %d",
		len(alleleFrequencies1), len(alleleFrequencies2)); err != nil {
		return 0, err
	}

	// the combined frequencies represent the total population, so their
	// diversity is the pairwise difference between populations
	combined := make([]float64, len(alleleFrequencies1))
	for i := range alleleFrequencies1 {
		combined[i] = (alleleFrequencies1[i] + alleleFrequencies2[i]) / 2
	}

	combinedPi, err := diversity.TajimasPi(numberOfSamples1+numberOfSamples2, combined)
	if err != nil {
		return 0, err
	}
	if combinedPi == 0 {
		return 0, nil
	}

	pi1, err := diversity.TajimasPi(numberOfSamples1, alleleFrequencies1)
	if err != nil {
		return 0, err
	}
	// TODO: confirm whether population 2 should use alleleFrequencies2
	// here; the PoPoolation-derived notes this follows use the first
	// population's frequencies for both terms
	pi2, err := diversity.TajimasPi(numberOfSamples2, alleleFrequencies1)
	if err != nil {
		return 0, err
	}

	averageWithinPi, err := stats.Mean([]float64{pi1, pi2})
	if err != nil {
		return 0, err
	}

	return (combinedPi - averageWithinPi) / combinedPi, nil
}

// Fst computes F_ST across any number of populations. Each population
// contributes its sample size and its per-allele frequency vector; all
// vectors must have the same length.
func Fst(numberOfSamplesPerPopulation []int, frequenciesPerPopulation [][]float64) (float64, error) {
	if err := verify.NonEmptyInts(numberOfSamplesPerPopulation, "numberOfSamplesPerPopulation"); err != nil {
		return 0, err
	}
	if err := verify.Validate(len(frequenciesPerPopulation) > 0,
		"empty collection: %s", "frequenciesPerPopulation"); err != nil {
		return 0, err
	}

	nPopulations := len(numberOfSamplesPerPopulation)
	if err := verify.Validate(nPopulations == len(frequenciesPerPopulation),
		"the number of values in both lists should be equal to the number of populations: %d vs %d",
		nPopulations, len(frequenciesPerPopulation)); err != nil {
		return 0, err
	}

	nAlleles := len(frequenciesPerPopulation[0])
	for _, frequencies := range frequenciesPerPopulation {
		if err := verify.Validate(nAlleles == len(frequencies),
			"different number of alleles per population were found"); err != nil {
			return 0, err
		}
	}

	combined := make([]float64, nAlleles)
	for i := 0; i < nAlleles; i++ {
		for _, frequencies := range frequenciesPerPopulation {
			combined[i] += frequencies[i]
		}
		combined[i] /= float64(nPopulations)
	}

	var totalSamples int
	for _, samples := range numberOfSamplesPerPopulation {
		totalSamples += samples
	}

	betweenPi, err := diversity.TajimasPi(totalSamples, combined)
	if err != nil {
		return 0, err
	}
	if betweenPi == 0 {
		return 0, nil
	}

	withinPi := make([]float64, nPopulations)
	for i := 0; i < nPopulations; i++ {
		withinPi[i], err = diversity.TajimasPi(
			numberOfSamplesPerPopulation[i], frequenciesPerPopulation[i])
		if err != nil {
			return 0, err
		}
	}

	averageWithinPi, err := stats.Mean(withinPi)
	if err != nil {
		return 0, err
	}

	return 1 - averageWithinPi/betweenPi, nil
}
