// Package freqs validates and normalizes allele frequencies and counts.
// Frequencies are plain []float64 vectors whose entries lie in [0, 1] and
// sum to exactly 1; counts are converted to such vectors with exact
// rational division so that the sum holds without accumulated floating
// error. Validation failures are reported as *InvalidFrequencyError, which
// also matches verify.ErrInvalidArgument.
package freqs

import (
	"errors"
	"fmt"
	"math/big"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/magicDGS/popgenlib/verify"
)

const (
	// FrequencyOne is the maximum (and required total) frequency.
	FrequencyOne = 1.0

	// FrequencyZero is the minimum frequency.
	FrequencyZero = 0.0

	// minor alleles always have frequency at or below this threshold, so a
	// polarized (major) frequency must be at or above it
	majorFrequencyThreshold = 0.5
)

// InvalidFrequencyError reports a frequency vector or single frequency that
// violates its contract. It wraps the underlying precondition error, so it
// matches verify.ErrInvalidArgument with errors.Is.
type InvalidFrequencyError struct {
	err error
}

func (e *InvalidFrequencyError) Error() string { return e.err.Error() }

func (e *InvalidFrequencyError) Unwrap() error { return e.err }

// asFrequencyError wraps a precondition failure into an
// *InvalidFrequencyError, passing nil through.
func asFrequencyError(err error) error {
	if err == nil {
		return nil
	}

	// do not double-wrap
	var freqErr *InvalidFrequencyError
	if errors.As(err, &freqErr) {
		return err
	}

	return &InvalidFrequencyError{err: err}
}

// Validate checks that frequencies is non-empty, that every entry is within
// [FrequencyZero, FrequencyOne], and that the entries sum to exactly
// FrequencyOne. Vectors produced by CountsToFrequencies always pass.
func Validate(frequencies []float64) error {
	if err := verify.NonEmptyFloats(frequencies, "frequencies"); err != nil {
		return asFrequencyError(err)
	}

	for _, freq := range frequencies {
		if err := ValidateRange(freq); err != nil {
			return err
		}
	}

	sum, err := stats.Sum(frequencies)
	if err != nil {
		return asFrequencyError(fmt.Errorf("summing frequencies: %v: %w", err, verify.ErrInvalidArgument))
	}

	return asFrequencyError(verify.Validate(sum == FrequencyOne,
		"frequencies should sum %v but found %v: %v", FrequencyOne, sum, frequencies))
}

// ValidateRange checks that a single frequency is within
// [FrequencyZero, FrequencyOne].
func ValidateRange(frequency float64) error {
	return asFrequencyError(verify.Validate(
		frequency >= FrequencyZero && frequency <= FrequencyOne,
		"frequency out of range [%v, %v]: %v", FrequencyZero, FrequencyOne, frequency))
}

// ValidateMajor checks the range of frequency and that it is polarized as a
// major frequency (at least 0.5). The name identifies the locus in the
// error message.
func ValidateMajor(frequency float64, name string) error {
	if err := ValidateRange(frequency); err != nil {
		return err
	}

	return asFrequencyError(verify.Validate(frequency >= majorFrequencyThreshold,
		"non-major frequency for %s: %v", name, frequency))
}

// CountsToFrequencies converts allele counts into the total number of
// counts and the corresponding frequency vector. Each frequency is the
// exact rational count/total rounded to the nearest float64; when the
// per-entry rounding leaves the running sum off 1 by an ulp, the last
// nonzero entry is nudged to the exact complement of the others, so the
// produced vector always sums to exactly 1 and passes Validate.
func CountsToFrequencies(counts []int) (total int, frequencies []float64, err error) {
	if err := verify.NonEmptyInts(counts, "allele counts"); err != nil {
		return 0, nil, asFrequencyError(err)
	}

	for _, count := range counts {
		if err := verify.Validate(count >= 0, "counts should be 0 or a positive integer: %d", count); err != nil {
			return 0, nil, asFrequencyError(err)
		}
		total += count
	}

	if err := verify.Validate(total > 0, "all counts are zero"); err != nil {
		return 0, nil, asFrequencyError(err)
	}

	frequencies = make([]float64, len(counts))
	bigTotal := big.NewInt(int64(total))
	lastNonZero := 0
	for i, count := range counts {
		if count == 0 {
			frequencies[i] = FrequencyZero
			continue
		}

		// exact rational division, rounded once to the output type
		ratio := new(big.Rat).SetFrac(big.NewInt(int64(count)), bigTotal)
		frequencies[i], _ = ratio.Float64()
		lastNonZero = i
	}

	var sum float64
	for _, frequency := range frequencies {
		sum += frequency
	}
	if sum != FrequencyOne {
		// replace the last nonzero entry with the exact complement of
		// the remaining entries, summed in vector order so a later
		// left-to-right summation reproduces exactly 1
		var others float64
		for i, frequency := range frequencies {
			if i != lastNonZero {
				others += frequency
			}
		}
		frequencies[lastNonZero] = FrequencyOne - others
	}

	return total, frequencies, nil
}

// Sorted returns a new vector with the frequencies ordered from major to
// minor. The input is validated first.
func Sorted(frequencies []float64) ([]float64, error) {
	if err := Validate(frequencies); err != nil {
		return nil, err
	}

	sorted := make([]float64, len(frequencies))
	copy(sorted, frequencies)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	return sorted, nil
}
