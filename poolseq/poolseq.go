// Package poolseq corrects nucleotide diversity statistics for pooled
// sequencing designs, where individual genotypes are unobservable and only
// aggregate read counts exist. Reads are modeled as binomial draws from
// the pool, following Kofler et al. (2010): PoPoolation, PLOS ONE 6(1)
// (page 7 formulas).
package poolseq

import (
	"math"
	"math/big"

	"github.com/BenLubar/memoize"

	"github.com/magicDGS/popgenlib/diversity"
	"github.com/magicDGS/popgenlib/freqs"
	"github.com/magicDGS/popgenlib/verify"
)

// ValidateParams checks the Pool-Seq correction parameters: the minimum
// minor-allele read count accepted as real signal, and the number of
// pooled individuals. Both must be positive.
func ValidateParams(minCount, poolSize int) error {
	if err := verify.Validate(minCount > 0,
		"minimum count should be a positive integer: %d", minCount); err != nil {
		return err
	}

	return verify.Validate(poolSize > 0,
		"pool size should be a positive integer: %d", poolSize)
}

// TajimasPi computes Tajima's pi for a single site from allele counts,
// corrected for Pool-Seq sampling (Kofler et al. 2010, page 7, first
// formula). The coverage is the sum of the allele counts.
//
// A minCount that leaves no read count in [minCount, coverage-minCount]
// makes the correction denominator zero; the result is then not finite and
// the caller must guard against it.
func TajimasPi(minCount, poolSize int, alleleCounts []int) (float64, error) {
	if err := ValidateParams(minCount, poolSize); err != nil {
		return 0, err
	}

	// the total count doubles as the coverage of the site
	coverage, frequencies, err := freqs.CountsToFrequencies(alleleCounts)
	if err != nil {
		return 0, err
	}

	uncorrected, err := diversity.TajimasPi(coverage, frequencies)
	if err != nil {
		return 0, err
	}

	factor := memoizedPiCorrectionFactor.(func(int, int, int) float64)(minCount, poolSize, coverage)
	return factor * uncorrected, nil
}

// WattersonsTheta computes Watterson's theta corrected for Pool-Seq
// sampling, assuming the same coverage for every segregating site (Kofler
// et al. 2010, page 7, first formula). For per-site coverages use
// WattersonsThetaFromCoverages.
//
// The harmonic denominator of the uncorrected estimator cancels
// algebraically against the correction, so the result is the number of
// segregating sites divided by the summed correction term alone.
func WattersonsTheta(numberOfSegregatingSites, minCount, poolSize, coverage int) (float64, error) {
	if err := ValidateParams(minCount, poolSize); err != nil {
		return 0, err
	}
	if err := verify.Validate(numberOfSegregatingSites >= 0,
		"number of segregating sites should be 0 or a positive integer: %d", numberOfSegregatingSites); err != nil {
		return 0, err
	}
	if err := verify.Validate(coverage > 0,
		"coverage should be a positive integer: %d", coverage); err != nil {
		return 0, err
	}

	var correction float64
	for readCount := minCount; readCount <= coverage-minCount; readCount++ {
		correction += summationTerm(readCount, coverage, poolSize)
	}

	return float64(numberOfSegregatingSites) / correction, nil
}

// WattersonsThetaFromCoverages computes Watterson's theta corrected for
// Pool-Seq sampling over a list of per-site coverages, one segregating
// site per entry (Kofler et al. 2010, page 7, second formula). Sites are
// grouped by identical coverage so the nested summation runs once per
// distinct coverage value.
func WattersonsThetaFromCoverages(minCount, poolSize int, segregatingSitesCoverage []int) (float64, error) {
	if err := verify.NonEmptyInts(segregatingSitesCoverage, "segregatingSitesCoverage"); err != nil {
		return 0, err
	}

	sitesByCoverage := make(map[int]int)
	for _, coverage := range segregatingSitesCoverage {
		sitesByCoverage[coverage]++
	}

	var theta float64
	for coverage, sites := range sitesByCoverage {
		grouped, err := WattersonsTheta(sites, minCount, poolSize, coverage)
		if err != nil {
			return 0, err
		}
		theta += grouped
	}

	return theta, nil
}

// memoized by (minCount, poolSize, coverage): sites across a genome share
// these parameters far more often than not
var memoizedPiCorrectionFactor = memoize.Memoize(piCorrectionFactor)

// piCorrectionFactor derives the factor that multiplies an uncorrected
// Tajima's pi (Kofler et al. 2010, page 7, first formula denominator).
func piCorrectionFactor(minCount, poolSize, coverage int) float64 {
	c := float64(coverage)

	var sum float64
	for readCount := minCount; readCount <= coverage-minCount; readCount++ {
		r := float64(readCount)
		pairTerm := 2 * r * (c - r) / (c * (c - 1))
		sum += pairTerm * summationTerm(readCount, coverage, poolSize)
	}

	return 1 / sum
}

// summationTerm marginalizes the read-count probability over every
// possible minor-allele count in the pool, weighting each by 1/count. It
// is the term shared by the pi and theta corrections.
func summationTerm(readCount, coverage, poolSize int) float64 {
	var sum float64
	for poolCount := 1; poolCount < poolSize; poolCount++ {
		sum += CountProbability(readCount, coverage, poolSize, poolCount) / float64(poolCount)
	}

	return sum
}

// CountProbability is the probability of observing readCount supporting
// reads out of coverage total reads, when poolCount of the poolSize pooled
// individuals carry the allele: the binomial pmf with n=coverage and
// p=poolCount/poolSize (formula 2 in the PoPoolation notes). The binomial
// coefficient is evaluated exactly for numerical fidelity at small
// coverage.
func CountProbability(readCount, coverage, poolSize, poolCount int) float64 {
	coefficient, _ := new(big.Float).SetInt(
		new(big.Int).Binomial(int64(coverage), int64(readCount))).Float64()

	p := float64(poolCount) / float64(poolSize)
	q := float64(poolSize-poolCount) / float64(poolSize)

	return coefficient * math.Pow(p, float64(readCount)) * math.Pow(q, float64(coverage-readCount))
}
