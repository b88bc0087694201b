package grain

import (
	"math"
	"testing"
)

func TestParamByNameRoundTrip(t *testing.T) {
	for id := ParamID(0); id < numParams; id++ {
		got, ok := ParamByName(id.String())
		if !ok {
			t.Fatalf("ParamByName(%q) not found", id.String())
		}

		if got != id {
			t.Fatalf("ParamByName(%q) = %v, want %v", id.String(), got, id)
		}
	}
}

func TestParamByNameRejectsUnknown(t *testing.T) {
	if _, ok := ParamByName("resonance"); ok {
		t.Error("unknown parameter name must be rejected")
	}

	if _, ok := ParamByName(""); ok {
		t.Error("empty parameter name must be rejected")
	}
}

func TestParamIDStringUnknown(t *testing.T) {
	if got := ParamID(-1).String(); got != "unknown" {
		t.Errorf("ParamID(-1).String() = %q, want unknown", got)
	}

	if got := numParams.String(); got != "unknown" {
		t.Errorf("numParams.String() = %q, want unknown", got)
	}
}

func TestParametersSetClampsLikeEndStops(t *testing.T) {
	p := defaultParameters()

	p.Set(ParamScan, 3.5)
	if got := p.Get(ParamScan); got != 1 {
		t.Errorf("Get(ParamScan) = %v, want clamp to 1", got)
	}

	p.Set(ParamScan, -0.5)
	if got := p.Get(ParamScan); got != 0 {
		t.Errorf("Get(ParamScan) = %v, want clamp to 0", got)
	}

	p.Set(ParamMix, math.NaN())
	if got := p.Get(ParamMix); got != 0 {
		t.Errorf("Get(ParamMix) after NaN = %v, want 0", got)
	}
}

func TestParametersIgnoreUnknownID(t *testing.T) {
	p := defaultParameters()

	p.Set(ParamID(99), 0.7)
	if got := p.Get(ParamID(99)); got != 0 {
		t.Errorf("Get of unknown ID = %v, want 0", got)
	}
}

func TestDefaultParameters(t *testing.T) {
	p := defaultParameters()

	if !p.ContinuousEnabled() || !p.StrikeEnabled() {
		t.Error("both engines must default to enabled")
	}

	if p.AutoCapture() {
		t.Error("auto capture must default to disabled")
	}

	if got := p.Get(ParamPitch); got != 0.5 {
		t.Errorf("default pitch = %v, want 0.5 (unity rate)", got)
	}

	if got := p.ActiveLayer(); got != 0 {
		t.Errorf("default active layer = %d, want 0", got)
	}

	if got := p.ScanMode(); got != ScanModeScan {
		t.Errorf("default scan mode = %v, want ScanModeScan", got)
	}
}
