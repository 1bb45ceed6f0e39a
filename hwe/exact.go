// Package hwe tests genotype counts for departure from Hardy-Weinberg
// equilibrium. Exact implements Fisher's exact formulation following the
// Abecasis course notes
// (http://courses.washington.edu/b516/lectures_2009/HWE_Lecture.pdf,
// slides 21-22); Approximate uses the one-degree-of-freedom chi-squared
// statistic. Sanity oracles: https://www.cog-genomics.org/software/stats.
package hwe

import (
	"math"
	"math/big"

	"github.com/BenLubar/memoize"
)

var memoizedHetProbability = memoize.Memoize(hetProbability)
var memoizedFactorialRange = memoize.Memoize(factorialRange)

// Exact computes the exact Hardy-Weinberg equilibrium p-value for the
// observed genotype counts: homozygous major, heterozygous, and homozygous
// minor. The p-value sums the probabilities of the observed heterozygote
// configuration and of every configuration at least as extreme. Exact is
// safe to call from concurrent goroutines.
func Exact(homMajor, het, homMinor int64) float64 {
	// enforce homMajor common, homMinor rare
	if homMinor > homMajor {
		homMajor, homMinor = homMinor, homMajor
	}

	baseP := memoizedHetProbability.(func(int64, int64, int64) float64)(homMajor, het, homMinor)
	sumP := baseP

	// tail with more heterozygotes than observed: trading one pair of
	// homozygotes for two heterozygotes keeps the allele counts fixed
	for aa, ab, bb := homMajor-1, het+2, homMinor-1; bb >= 0; aa, ab, bb = aa-1, ab+2, bb-1 {
		p := memoizedHetProbability.(func(int64, int64, int64) float64)(aa, ab, bb)
		if p > baseP {
			continue
		}
		if p <= math.SmallestNonzeroFloat64 {
			break
		}
		sumP += p
	}

	// tail with fewer heterozygotes than observed
	for aa, ab, bb := homMajor+1, het-2, homMinor+1; ab >= 0; aa, ab, bb = aa+1, ab-2, bb+1 {
		p := memoizedHetProbability.(func(int64, int64, int64) float64)(aa, ab, bb)
		if p > baseP {
			continue
		}
		if p <= math.SmallestNonzeroFloat64 {
			break
		}
		sumP += p
	}

	return sumP
}

// hetProbability is the probability of observing exactly het heterozygotes
// in a sample of homMajor+het+homMinor individuals carrying het+2*homMinor
// minor alleles. Evaluated with exact integer arithmetic and divided once
// at the end.
func hetProbability(homMajor, het, homMinor int64) float64 {
	majorAlleles := 2*homMajor + het
	minorAlleles := 2*homMinor + het
	individuals := homMajor + het + homMinor

	var numerator, denominator big.Int
	numerator.Exp(big.NewInt(2), big.NewInt(het), nil)
	numerator.Mul(&numerator, memoizedFactorialRange.(func(int64, int64) *big.Int)(1, majorAlleles))
	numerator.Mul(&numerator, memoizedFactorialRange.(func(int64, int64) *big.Int)(1, minorAlleles))

	denominator.Set(memoizedFactorialRange.(func(int64, int64) *big.Int)(individuals+1, 2*individuals))
	denominator.Mul(&denominator, memoizedFactorialRange.(func(int64, int64) *big.Int)(1, homMajor))
	denominator.Mul(&denominator, memoizedFactorialRange.(func(int64, int64) *big.Int)(1, het))
	denominator.Mul(&denominator, memoizedFactorialRange.(func(int64, int64) *big.Int)(1, homMinor))

	var ratio big.Rat
	ratio.SetFrac(&numerator, &denominator)
	p, _ := ratio.Float64()

	return p
}

// factorialRange is the product of the integers in [from, to].
func factorialRange(from, to int64) *big.Int {
	return new(big.Int).MulRange(from, to)
}
