package hwe

import (
	"math"
	"testing"
)

// truth values from https://www.cog-genomics.org/software/stats
func TestExact(t *testing.T) {
	for _, v := range []struct {
		homMajor int64
		het      int64
		homMinor int64
		expected float64
	}{
		{5000, 0, 5000, 0},
		{500, 0, 500, 1.319669097657e-301},
		{83, 13, 4, 0.010293},
		{50, 57, 14, 0.8422797565708},
		{2, 1, 3, 0.15151515151515},
		{500, 2, 0, 1},
		{500, 0, 4, 1.033376916931e-10},
		{500, 0, 2, 0.000002988038880362},
		{500, 1, 2, 0.0000148807309415},
		{500, 4, 2, 0.0002050449518921},
		{500, 2, 2, 0.00004443531076574},
	} {
		p := Exact(v.homMajor, v.het, v.homMinor)
		if math.Abs(p-v.expected) > 1e-6 {
			t.Errorf("Exact(%d, %d, %d): got %.12f, want %.12f",
				v.homMajor, v.het, v.homMinor, p, v.expected)
		}
	}
}

func TestApproximate(t *testing.T) {
	// a monomorphic site cannot depart from equilibrium
	if p := Approximate(100, 0, 0); p != 1 {
		t.Errorf("monomorphic site: got %v, want 1", p)
	}

	// strong departures are detected by both tests
	if p := Approximate(500, 0, 500); p > 1e-10 {
		t.Errorf("all-homozygote sample should be extreme, got %v", p)
	}

	// close to equilibrium proportions, both tests agree the site is fine
	approx := Approximate(50, 57, 14)
	exact := Exact(50, 57, 14)
	if approx < 0.05 || exact < 0.05 {
		t.Errorf("near-equilibrium sample rejected: approximate %v, exact %v", approx, exact)
	}
}

func TestFast(t *testing.T) {
	// above the cutoff the approximation is returned as-is
	if got, want := Fast(50, 57, 14, 0.0), Approximate(50, 57, 14); got != want {
		t.Errorf("got %v, want the approximate value %v", got, want)
	}

	// below the cutoff the exact value takes over
	if got, want := Fast(500, 0, 500, 0.05), Exact(500, 0, 500); got != want {
		t.Errorf("got %v, want the exact value %v", got, want)
	}
}
