package grain

import (
	"math"
	"math/rand"
	"testing"
)

func newTestPitchEngine(seed int64) *PitchEngine {
	return NewPitchEngine(rand.New(rand.NewSource(seed)))
}

func TestPitchCenterIsUnityRate(t *testing.T) {
	p := newTestPitchEngine(1)

	if got := p.Rate(0.5, 0); got != 1 {
		t.Errorf("Rate(0.5, 0) = %v, want exactly 1", got)
	}
}

func TestPitchExtremesSpanFourOctaves(t *testing.T) {
	p := newTestPitchEngine(1)

	if got := p.Rate(1, 0); math.Abs(got-4) > 1e-12 {
		t.Errorf("Rate(1, 0) = %v, want 4 (+2 octaves)", got)
	}

	if got := p.Rate(0, 0); math.Abs(got-0.25) > 1e-12 {
		t.Errorf("Rate(0, 0) = %v, want 0.25 (-2 octaves)", got)
	}
}

func TestPitchSprayStaysPositive(t *testing.T) {
	p := newTestPitchEngine(7)

	for i := 0; i < 1000; i++ {
		rate := p.Rate(0.5, 1)
		if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
			t.Fatalf("spray produced invalid rate %v", rate)
		}

		// ±2 octaves around unity.
		if rate < 0.25-1e-9 || rate > 4+1e-9 {
			t.Fatalf("spray rate %v outside [0.25, 4]", rate)
		}
	}
}

func TestOctavesScaleSnapsToWholeOctaves(t *testing.T) {
	p := newTestPitchEngine(3)
	p.SetQuantize(true)
	p.SetScale(ScaleOctaves)

	for i := 0; i <= 100; i++ {
		rate := p.Rate(float64(i)/100, 0.3)

		octaves := math.Log2(rate)
		if math.Abs(octaves-math.Round(octaves)) > 1e-9 {
			t.Fatalf("quantized rate %v is %v octaves, want integer", rate, octaves)
		}
	}
}

func TestMajorScaleSnapsToScaleDegrees(t *testing.T) {
	p := newTestPitchEngine(3)
	p.SetQuantize(true)
	p.SetScale(ScaleMajor)

	member := map[int]bool{0: true, 2: true, 4: true, 5: true, 7: true, 9: true, 11: true}

	for i := 0; i <= 200; i++ {
		rate := p.Rate(float64(i)/200, 0.5)

		semis := 12 * math.Log2(rate)
		rounded := math.Round(semis)
		if math.Abs(semis-rounded) > 1e-6 {
			t.Fatalf("rate %v is %v semitones, want integer", rate, semis)
		}

		deg := int(rounded) % 12
		if deg < 0 {
			deg += 12
		}

		if !member[deg] {
			t.Fatalf("snapped degree %d not in major scale", deg)
		}
	}
}

func TestSnapPrefersWrapAroundWhenCloser(t *testing.T) {
	p := newTestPitchEngine(1)
	p.SetQuantize(true)
	p.SetScale(ScaleOctaves)

	// 11.5 semitones is closer to the octave above (12) than to 0.
	got := p.snap(11.5 / 12)
	if math.Abs(got-1) > 1e-12 {
		t.Errorf("snap(11.5 semis) = %v octaves, want 1", got)
	}

	// 5 semitones snaps back down to 0.
	got = p.snap(5.0 / 12)
	if math.Abs(got) > 1e-12 {
		t.Errorf("snap(5 semis) = %v octaves, want 0", got)
	}
}

func TestSetScaleRejectsUnknownIndex(t *testing.T) {
	p := newTestPitchEngine(1)
	p.SetScale(ScaleFifths)

	p.SetScale(Scale(99))
	p.SetScale(Scale(-1))

	if got := p.ActiveScale(); got != ScaleFifths {
		t.Errorf("ActiveScale = %v, want unchanged ScaleFifths", got)
	}
}
