package interp

import (
	"math"
	"testing"
)

func TestLinearEndpoints(t *testing.T) {
	if got := Linear(0, 2, 8); got != 2 {
		t.Errorf("Linear(0, 2, 8) = %v, want 2", got)
	}

	if got := Linear(1, 2, 8); got != 8 {
		t.Errorf("Linear(1, 2, 8) = %v, want 8", got)
	}

	if got := Linear(0.25, 0, 4); got != 1 {
		t.Errorf("Linear(0.25, 0, 4) = %v, want 1", got)
	}
}

func TestHermite4PassesThroughKnots(t *testing.T) {
	xm1, x0, x1, x2 := 0.1, 0.7, -0.3, 0.4

	if got := Hermite4(0, xm1, x0, x1, x2); math.Abs(got-x0) > 1e-15 {
		t.Errorf("Hermite4(0) = %v, want %v", got, x0)
	}

	if got := Hermite4(1, xm1, x0, x1, x2); math.Abs(got-x1) > 1e-15 {
		t.Errorf("Hermite4(1) = %v, want %v", got, x1)
	}
}

func TestHermite4ReproducesLine(t *testing.T) {
	// A cubic interpolator is exact on linear data.
	for _, frac := range []float64{0.1, 0.3, 0.5, 0.9} {
		got := Hermite4(frac, -1, 0, 1, 2)
		if math.Abs(got-frac) > 1e-14 {
			t.Errorf("Hermite4(%v) on ramp = %v, want %v", frac, got, frac)
		}
	}
}
