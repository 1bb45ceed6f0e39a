// Package linkage computes linkage disequilibrium statistics between two
// biallelic loci from haplotype frequencies.
//
// All methods assume phased data and polarized inputs: pA and pB are major
// allele frequencies (callers must pass 1-p when p < 0.5), and pAB is the
// frequency of the haplotype carrying both major alleles.
//
// REFERENCES: Lewontin (1964) Genetics 49; Hill & Robertson (1968) TAG 38;
// Langley & Crow (1974) Genetics 78; VanLiere & Rosenberg (2008) Theor.
// Popul. Biol. 74(1); Charlesworth & Charlesworth (2012) Elements of
// Evolutionary Genetics.
package linkage

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/magicDGS/popgenlib/freqs"
	"github.com/magicDGS/popgenlib/verify"
)

// significance of r2 is assessed against a chi-squared distribution with
// one degree of freedom
var chiSquared1DF = distuv.ChiSquared{K: 1}

// D computes the directional linkage disequilibrium determinant
// (Lewontin 1964; formula 1 in Langley & Crow 1974).
func D(pA, pB, pAB float64) (float64, error) {
	if err := freqs.ValidateMajor(pA, "locus A (pA)"); err != nil {
		return 0, err
	}
	if err := freqs.ValidateMajor(pB, "locus B (pB)"); err != nil {
		return 0, err
	}
	if err := freqs.ValidateRange(pAB); err != nil {
		return 0, err
	}

	return pAB - pA*pB, nil
}

// DPrime computes the normalized determinant D' (Lewontin 1964; formula 13
// in VanLiere & Rosenberg 2008).
func DPrime(pA, pB, pAB float64) (float64, error) {
	d, err := D(pA, pB, pAB)
	if err != nil || d == 0 {
		return d, err
	}

	var dMax float64
	if d < 0 {
		dMax = math.Min(pA*pB, (1-pA)*(1-pB))
	} else {
		dMax = math.Min(pA*(1-pB), (1-pA)*pB)
	}

	return d / dMax, nil
}

// Rw computes the signed allele-frequency correlation, with the sign taken
// from the directional determinant D.
func Rw(pA, pB, pAB float64) (float64, error) {
	d, err := D(pA, pB, pAB)
	if err != nil {
		return 0, err
	}

	return d / math.Sqrt(pA*(1-pA)*pB*(1-pB)), nil
}

// R2 computes the allele-frequency Pearson correlation r² (Hill &
// Robertson 1968; formula 1 in VanLiere & Rosenberg 2008).
func R2(pA, pB, pAB float64) (float64, error) {
	rw, err := Rw(pA, pB, pAB)
	if err != nil {
		return 0, err
	}

	return rw * rw, nil
}

// R2Max computes the maximum correlation reachable by two loci given their
// major allele frequencies (VanLiere & Rosenberg 2008, formulas 2 and 3).
func R2Max(pA, pB float64) (float64, error) {
	if err := freqs.ValidateMajor(pA, "locus A (pA)"); err != nil {
		return 0, err
	}
	if err := freqs.ValidateMajor(pB, "locus B (pB)"); err != nil {
		return 0, err
	}

	if pA == pB {
		return 1, nil
	}

	// which locus is called A is arbitrary, so polarize to the case
	// pA < pB and use the single closed form for that region
	if pA > pB {
		pA, pB = pB, pA
	}

	return (pA * (1 - pB)) / ((1 - pA) * pB), nil
}

// R2Prime computes the normalized correlation r²/r²max.
func R2Prime(pA, pB, pAB float64) (float64, error) {
	maxR2, err := R2Max(pA, pB)
	if err != nil {
		return 0, err
	}

	r2, err := R2(pA, pB, pAB)
	if err != nil {
		return 0, err
	}

	return r2 / maxR2, nil
}

// R2SignificantTest reports whether an allele-frequency correlation is
// significant for the number of samples used to compute it, based on the
// 2x2 table property in Charlesworth & Charlesworth (2012), formula
// B8.3.1. It cannot be used for small samples (5 or fewer).
func R2SignificantTest(r2 float64, numberOfSamples int, chiSqrQuantile float64) (bool, error) {
	if err := verify.Validate(r2 >= 0 && r2 <= 1,
		"r2 range should be between 0 and 1: %v", r2); err != nil {
		return false, err
	}

	threshold, err := R2SignificantThreshold(numberOfSamples, chiSqrQuantile)
	if err != nil {
		return false, err
	}

	return r2 >= threshold, nil
}

// R2SignificantThreshold computes the minimum correlation that can be
// significantly different from zero for the given number of samples, at
// the provided chi-squared quantile.
func R2SignificantThreshold(numberOfSamples int, chiSqrQuantile float64) (float64, error) {
	if err := verify.Validate(numberOfSamples > 5,
		"numberOfSamples should be larger than 5: %d", numberOfSamples); err != nil {
		return 0, err
	}
	if err := verify.Validate(chiSqrQuantile >= 0 && chiSqrQuantile < 1,
		"chi-squared quantile should be in [0, 1): %v", chiSqrQuantile); err != nil {
		return 0, err
	}

	return chiSquared1DF.Quantile(chiSqrQuantile) / float64(numberOfSamples), nil
}
