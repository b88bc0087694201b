package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name             string
		value, min, max  float64
		want             float64
	}{
		{"inside", 0.5, 0, 1, 0.5},
		{"below", -3, 0, 1, 0},
		{"above", 7, 0, 1, 1},
		{"swapped bounds", 0.5, 1, 0, 0.5},
		{"at lower edge", 0, 0, 1, 0},
		{"at upper edge", 1, 0, 1, 1},
	}

	for _, tt := range tests {
		if got := Clamp(tt.value, tt.min, tt.max); got != tt.want {
			t.Errorf("%s: Clamp(%v, %v, %v) = %v, want %v",
				tt.name, tt.value, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestClampUnit(t *testing.T) {
	if got := ClampUnit(math.NaN()); got != 0 {
		t.Errorf("ClampUnit(NaN) = %v, want 0", got)
	}

	if got := ClampUnit(math.Inf(1)); got != 1 {
		t.Errorf("ClampUnit(+Inf) = %v, want 1", got)
	}

	if got := ClampUnit(-0.25); got != 0 {
		t.Errorf("ClampUnit(-0.25) = %v, want 0", got)
	}
}

func TestSanitize(t *testing.T) {
	inputs := []float64{math.NaN(), math.Inf(1), math.Inf(-1)}
	for _, in := range inputs {
		if got := Sanitize(in); got != 0 {
			t.Errorf("Sanitize(%v) = %v, want 0", in, got)
		}
	}

	if got := Sanitize(0.75); got != 0.75 {
		t.Errorf("Sanitize(0.75) = %v, want 0.75", got)
	}

	if got := Sanitize(-1e30); got != -1e30 {
		t.Errorf("Sanitize(-1e30) = %v, want -1e30", got)
	}
}

func TestFlushDenormals(t *testing.T) {
	if got := FlushDenormals(1e-40); got != 0 {
		t.Errorf("FlushDenormals(1e-40) = %v, want 0", got)
	}

	if got := FlushDenormals(0.5); got != 0.5 {
		t.Errorf("FlushDenormals(0.5) = %v, want 0.5", got)
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(2, 6, 0.5); got != 4 {
		t.Errorf("Lerp(2, 6, 0.5) = %v, want 4", got)
	}

	if got := Lerp(2, 6, 0); got != 2 {
		t.Errorf("Lerp(2, 6, 0) = %v, want 2", got)
	}

	if got := Lerp(2, 6, 1); got != 6 {
		t.Errorf("Lerp(2, 6, 1) = %v, want 6", got)
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-15, 1e-12) {
		t.Error("NearlyEqual should accept tiny absolute difference")
	}

	if NearlyEqual(1.0, 1.1, 1e-12) {
		t.Error("NearlyEqual should reject large difference")
	}
}
