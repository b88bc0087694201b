package grain

import (
	"math"

	"github.com/cwbudde/algo-granular/dsp/core"
)

const (
	onsetHoldoffSeconds   = 0.1
	onsetEnvelopeRatio    = 1.5
	onsetAttackSeconds    = 0.002
	onsetReleaseSeconds   = 0.08
	defaultOnsetThreshold = 0.1
)

// OnsetDetector is an asymmetric envelope follower over the instantaneous
// stereo peak magnitude. An onset fires when the peak exceeds both the
// absolute threshold and onsetEnvelopeRatio times the envelope, with a
// holdoff preventing re-triggering on the same transient.
type OnsetDetector struct {
	envelope  float64
	attack    float64
	release   float64
	threshold float64

	holdoff        int
	holdoffSamples int
}

// NewOnsetDetector creates a detector for the given sample rate.
func NewOnsetDetector(sampleRate float64) *OnsetDetector {
	return &OnsetDetector{
		attack:         onePoleCoeff(onsetAttackSeconds, sampleRate),
		release:        onePoleCoeff(onsetReleaseSeconds, sampleRate),
		threshold:      defaultOnsetThreshold,
		holdoffSamples: int(onsetHoldoffSeconds * sampleRate),
	}
}

// onePoleCoeff maps a time constant to a one-pole smoothing coefficient.
func onePoleCoeff(seconds, sampleRate float64) float64 {
	if seconds <= 0 || sampleRate <= 0 {
		return 1
	}

	return 1 - math.Exp(-1/(seconds*sampleRate))
}

// SetThreshold sets the absolute trigger threshold, clamped to [0, 1].
func (o *OnsetDetector) SetThreshold(threshold float64) {
	o.threshold = core.ClampUnit(threshold)
}

// Threshold returns the absolute trigger threshold.
func (o *OnsetDetector) Threshold() float64 { return o.threshold }

// ProcessSample advances the follower by one stereo sample and reports
// whether an onset fired.
func (o *OnsetDetector) ProcessSample(l, r float64) bool {
	peak := math.Abs(l)
	if ar := math.Abs(r); ar > peak {
		peak = ar
	}

	fired := false

	if o.holdoff > 0 {
		o.holdoff--
	} else if peak > o.threshold && peak > o.envelope*onsetEnvelopeRatio {
		fired = true
		o.holdoff = o.holdoffSamples
	}

	if peak > o.envelope {
		o.envelope += o.attack * (peak - o.envelope)
	} else {
		o.envelope += o.release * (peak - o.envelope)
	}

	o.envelope = core.FlushDenormals(o.envelope)

	return fired
}

// Envelope returns the current follower value.
func (o *OnsetDetector) Envelope() float64 { return o.envelope }

// Reset clears follower and holdoff state.
func (o *OnsetDetector) Reset() {
	o.envelope = 0
	o.holdoff = 0
}
