package grain

import (
	"math"
	"testing"
)

func TestPostFXTransparentWhenDisabled(t *testing.T) {
	fx, err := newPostFX(48000)
	if err != nil {
		t.Fatalf("newPostFX() error = %v", err)
	}

	fx.configure(0, 0, 0, 0.5, 0.05)

	for i := 0; i < 1000; i++ {
		in := math.Sin(float64(i) * 0.01)

		l, r := fx.processSample(in, -in)
		if math.Abs(l-in) > 1e-12 || math.Abs(r+in) > 1e-12 {
			t.Fatalf("sample %d: (%v, %v) not transparent for (%v, %v)", i, l, r, in, -in)
		}
	}
}

func TestPostFXDelayEchoesInput(t *testing.T) {
	fx, err := newPostFX(1000)
	if err != nil {
		t.Fatalf("newPostFX() error = %v", err)
	}

	// Short grain length, feedbackDelay 0: delay time equals grain length.
	fx.configure(1, 0, 0, 0, 0.05)

	var echoAt int
	var echoVal float64

	fx.processSample(1, 1)
	for i := 1; i < 200; i++ {
		l, _ := fx.processSample(0, 0)
		if math.Abs(l) > 0.1 && echoAt == 0 {
			echoAt = i
			echoVal = l
		}
	}

	// 0.05 s at 1 kHz = 50 samples.
	if echoAt < 48 || echoAt > 52 {
		t.Fatalf("first echo at %d samples, want ~50", echoAt)
	}

	if echoVal <= 0 {
		t.Fatalf("echo amplitude = %v, want positive", echoVal)
	}
}

func TestPostFXFeedbackDecays(t *testing.T) {
	fx, err := newPostFX(8000)
	if err != nil {
		t.Fatalf("newPostFX() error = %v", err)
	}

	fx.configure(1, 0.5, 0, 0, 0.01)

	fx.processSample(1, 1)

	peak := 0.0
	for i := 0; i < 8000*8; i++ {
		l, r := fx.processSample(0, 0)
		m := math.Max(math.Abs(l), math.Abs(r))
		if m > peak {
			peak = m
		}
	}

	if peak > 1.5 {
		t.Fatalf("feedback loop peak %v suggests runaway", peak)
	}

	// After eight seconds the 0.85-ceiling loop has decayed well below the
	// initial impulse.
	l, r := fx.processSample(0, 0)
	if math.Abs(l) > 0.5 || math.Abs(r) > 0.5 {
		t.Fatalf("tail (%v, %v) has not decayed", l, r)
	}
}

func TestPostFXReverbProducesTail(t *testing.T) {
	fx, err := newPostFX(48000)
	if err != nil {
		t.Fatalf("newPostFX() error = %v", err)
	}

	fx.configure(0, 0, 1, 0.5, 0.05)

	fx.processSample(1, 1)

	energy := 0.0
	for i := 0; i < 48000; i++ {
		l, r := fx.processSample(0, 0)
		if math.IsNaN(l) || math.IsInf(l, 0) || math.IsNaN(r) || math.IsInf(r, 0) {
			t.Fatalf("non-finite reverb output at sample %d", i)
		}

		energy += l*l + r*r
	}

	if energy == 0 {
		t.Fatal("reverb produced no tail")
	}
}

func TestPostFXResetSilencesTail(t *testing.T) {
	fx, err := newPostFX(48000)
	if err != nil {
		t.Fatalf("newPostFX() error = %v", err)
	}

	fx.configure(1, 0.2, 1, 1, 0.1)

	for i := 0; i < 1000; i++ {
		fx.processSample(0.5, -0.5)
	}

	fx.reset()

	l, r := fx.processSample(0, 0)
	if l != 0 || r != 0 {
		t.Fatalf("output after reset = (%v, %v), want silence", l, r)
	}
}
