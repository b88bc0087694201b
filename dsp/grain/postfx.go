package grain

import (
	"math"

	"github.com/cwbudde/algo-granular/dsp/core"
	"github.com/cwbudde/algo-granular/dsp/delay"
)

const (
	maxFeedbackDelaySeconds = 2.0
	// The write-path feedback stays below the read gain so the loop can
	// never reach unity even with feedback at full scale.
	feedbackWriteCeiling = 0.85

	fxNumCombs     = 4
	fxNumAllpasses = 2

	fxAllpassFeedback = 0.5
	fxCombStagger     = 0.012

	// Comb and allpass tunings in samples, calibrated for 44.1 kHz and
	// scaled to the running sample rate. Right channel combs are offset
	// for stereo decorrelation.
	fxStereoSpread = 23
)

var fxCombTunings = [fxNumCombs]int{1116, 1188, 1277, 1356}

var fxAllpassTunings = [fxNumAllpasses]int{556, 441}

// fxComb is a one-pole-damped feedback comb filter.
type fxComb struct {
	buffer      []float64
	index       int
	feedback    float64
	dampA       float64
	dampB       float64
	filterStore float64
}

func newFXComb(size int) fxComb {
	c := fxComb{buffer: make([]float64, size)}
	c.setDamp(0.2)

	return c
}

func (c *fxComb) setDamp(v float64) {
	c.dampA = v
	c.dampB = 1 - v
}

func (c *fxComb) process(input float64) float64 {
	output := c.buffer[c.index]
	c.filterStore = core.FlushDenormals(output*c.dampB + c.filterStore*c.dampA)
	c.buffer[c.index] = input + c.filterStore*c.feedback
	c.index++
	if c.index >= len(c.buffer) {
		c.index = 0
	}

	return output
}

func (c *fxComb) reset() {
	for i := range c.buffer {
		c.buffer[i] = 0
	}

	c.index = 0
	c.filterStore = 0
}

// fxAllpass is a Schroeder allpass diffusion stage.
type fxAllpass struct {
	buffer []float64
	index  int
}

func newFXAllpass(size int) fxAllpass {
	return fxAllpass{buffer: make([]float64, size)}
}

func (a *fxAllpass) process(input float64) float64 {
	bufOut := a.buffer[a.index]
	output := bufOut - input
	a.buffer[a.index] = input + bufOut*fxAllpassFeedback
	a.index++
	if a.index >= len(a.buffer) {
		a.index = 0
	}

	return output
}

func (a *fxAllpass) reset() {
	for i := range a.buffer {
		a.buffer[i] = 0
	}

	a.index = 0
}

// postFX applies a feedback delay followed by a fixed Schroeder reverb
// network to the summed grain bus. All time and gain settings are k-rate.
type postFX struct {
	sampleRate float64

	line         *delay.Line
	delaySamples float64
	readGain     float64
	writeGain    float64

	combsL    [fxNumCombs]fxComb
	combsR    [fxNumCombs]fxComb
	allpassL  [fxNumAllpasses]fxAllpass
	allpassR  [fxNumAllpasses]fxAllpass
	reverbMix float64
}

func newPostFX(sampleRate float64) (*postFX, error) {
	size := int(maxFeedbackDelaySeconds*sampleRate) + 8

	line, err := delay.New(size)
	if err != nil {
		return nil, err
	}

	f := &postFX{
		sampleRate:   sampleRate,
		line:         line,
		delaySamples: 1,
	}

	scale := sampleRate / 44100
	for i := 0; i < fxNumCombs; i++ {
		f.combsL[i] = newFXComb(scaleTuning(fxCombTunings[i], scale))
		f.combsR[i] = newFXComb(scaleTuning(fxCombTunings[i]+fxStereoSpread, scale))
	}

	for i := 0; i < fxNumAllpasses; i++ {
		f.allpassL[i] = newFXAllpass(scaleTuning(fxAllpassTunings[i], scale))
		f.allpassR[i] = newFXAllpass(scaleTuning(fxAllpassTunings[i]+fxStereoSpread, scale))
	}

	return f, nil
}

func scaleTuning(samples int, scale float64) int {
	n := int(math.Round(float64(samples) * scale))
	if n < 1 {
		n = 1
	}

	return n
}

// configure latches the block-rate settings. The delay time interpolates
// between the current grain length and the line maximum, the comb feedbacks
// derive from reverbDecay with a mild per-comb stagger for diffusion.
func (f *postFX) configure(feedback, feedbackDelay, reverbMix, reverbDecay, grainSeconds float64) {
	shortest := grainSeconds
	if shortest > maxFeedbackDelaySeconds {
		shortest = maxFeedbackDelaySeconds
	}

	seconds := core.Lerp(shortest, maxFeedbackDelaySeconds, feedbackDelay)

	f.delaySamples = core.Clamp(seconds*f.sampleRate, 1, float64(f.line.Len()-4))
	f.readGain = feedback
	f.writeGain = feedback * feedbackWriteCeiling
	f.reverbMix = reverbMix

	base := 0.5 + 0.45*reverbDecay
	for i := 0; i < fxNumCombs; i++ {
		fb := core.Clamp(base-fxCombStagger*float64(i), 0, 0.98)
		f.combsL[i].feedback = fb
		f.combsR[i].feedback = fb
	}
}

// processSample runs one stereo sample through the delay and reverb.
func (f *postFX) processSample(l, r float64) (float64, float64) {
	dl, dr := f.line.ReadFractional(f.delaySamples)
	f.line.Write(l+dl*f.writeGain, r+dr*f.writeGain)

	xl := l + dl*f.readGain
	xr := r + dr*f.readGain

	var wetL, wetR float64
	for i := range f.combsL {
		wetL += f.combsL[i].process(xl)
		wetR += f.combsR[i].process(xr)
	}

	wetL /= fxNumCombs
	wetR /= fxNumCombs

	for i := range f.allpassL {
		wetL = f.allpassL[i].process(wetL)
		wetR = f.allpassR[i].process(wetR)
	}

	mix := f.reverbMix

	return xl*(1-mix) + wetL*mix, xr*(1-mix) + wetR*mix
}

func (f *postFX) reset() {
	f.line.Reset()

	for i := range f.combsL {
		f.combsL[i].reset()
		f.combsR[i].reset()
	}

	for i := range f.allpassL {
		f.allpassL[i].reset()
		f.allpassR[i].reset()
	}
}
