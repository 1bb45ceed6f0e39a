package hwe

import (
	"github.com/BenLubar/memoize"
	"gonum.org/v1/gonum/stat/distuv"
)

var chiSquared1DF = distuv.ChiSquared{K: 1}

var memoizedExact = memoize.Memoize(Exact)
var memoizedApproximate = memoize.Memoize(Approximate)

// Approximate computes a Hardy-Weinberg equilibrium p-value from the
// one-degree-of-freedom chi-squared statistic of the observed genotype
// counts. It over-rejects for rare alleles and small samples, where Exact
// should be preferred.
func Approximate(homMajor, het, homMinor float64) float64 {
	return 1 - chiSquared1DF.CDF(chiSquareStatistic(homMajor, het, homMinor))
}

// Fast screens with the chi-squared approximation and only falls back to
// the exact test when the approximate p-value is below cutoff, where the
// approximation is least trustworthy.
func Fast(homMajor, het, homMinor, cutoff float64) float64 {
	p := memoizedApproximate.(func(float64, float64, float64) float64)(homMajor, het, homMinor)
	if p < cutoff {
		return memoizedExact.(func(int64, int64, int64) float64)(
			int64(homMajor), int64(het), int64(homMinor))
	}

	return p
}

// chiSquareStatistic measures the departure of the observed genotype
// counts from the counts expected under Hardy-Weinberg proportions at the
// observed allele frequencies.
func chiSquareStatistic(homMajor, het, homMinor float64) float64 {
	majorAlleles := 2*homMajor + het
	minorAlleles := 2*homMinor + het

	// a monomorphic site cannot depart from equilibrium
	if majorAlleles == 0 || minorAlleles == 0 {
		return 0
	}

	individuals := homMajor + het + homMinor
	alleles := majorAlleles + minorAlleles

	pMajor := majorAlleles / alleles
	pMinor := minorAlleles / alleles

	expectedHomMajor := pMajor * pMajor * individuals
	expectedHet := 2 * pMajor * pMinor * individuals
	expectedHomMinor := pMinor * pMinor * individuals

	chi := func(observed, expected float64) float64 {
		diff := observed - expected
		return diff * diff / expected
	}

	return chi(homMajor, expectedHomMajor) +
		chi(het, expectedHet) +
		chi(homMinor, expectedHomMinor)
}
