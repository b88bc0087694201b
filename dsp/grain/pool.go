package grain

import "math"

const (
	// MaxGrainsPerEngine is the fixed slot count of each grain pool.
	MaxGrainsPerEngine = 44
	// MaxTotalGrains is the hard ceiling across both pools.
	MaxTotalGrains = 2 * MaxGrainsPerEngine

	minGrainSeconds = 0.004
	maxGrainSeconds = 3.0
)

var (
	lnMinGrainSeconds = math.Log(minGrainSeconds)
	lnMaxGrainSeconds = math.Log(maxGrainSeconds)
)

// grainLengthSeconds maps the normalized length parameter logarithmically
// between the minimum and maximum grain duration.
func grainLengthSeconds(length float64) float64 {
	return mathExp(lnMinGrainSeconds + (lnMaxGrainSeconds-lnMinGrainSeconds)*length)
}

// grainCount maps intensity to the number of grains per grain-length period
// (continuous engine) or per strike burst. Quadratic so the low end of the
// control stays sparse.
func grainCount(intensity float64) int {
	n := int(intensity*intensity*float64(MaxGrainsPerEngine-1)) + 1
	if n < 1 {
		n = 1
	}

	if n > MaxGrainsPerEngine {
		n = MaxGrainsPerEngine
	}

	return n
}

// grainVoice is one pool slot. A voice with active == false owns nothing
// and must not be read.
type grainVoice struct {
	active    bool
	layer     int
	start     float64
	pos       float64
	length    int
	progress  float64
	step      float64
	pitch     float64
	direction float64
	panL      float64
	panR      float64
	amplitude float64
	window    WindowType
	tilt      float64
}

// grainPool is a fixed arena of grain voices plus the continuous-engine
// spawn counter. Slots are only ever overwritten, never added or removed,
// so the per-sample path performs no allocation.
type grainPool struct {
	voices  [MaxGrainsPerEngine]grainVoice
	counter float64
}

// tick advances the spawn counter by one sample and reports whether a new
// grain is due under the given spawn interval.
func (p *grainPool) tick(interval float64) bool {
	p.counter++
	if p.counter >= interval {
		p.counter = 0
		return true
	}

	return false
}

// spawn places a voice into the first free slot. With no free slot it
// steals the voice with the minimum progress; that voice sits lowest on its
// window taper, so reusing it is the least audible disruption. Spawning
// therefore never fails.
func (p *grainPool) spawn(v grainVoice) {
	slot := -1

	for i := range p.voices {
		if !p.voices[i].active {
			slot = i
			break
		}
	}

	if slot < 0 {
		slot = 0
		for i := 1; i < len(p.voices); i++ {
			if p.voices[i].progress < p.voices[slot].progress {
				slot = i
			}
		}
	}

	v.active = true
	p.voices[slot] = v
}

// renderSample advances every active voice by one sample and returns the
// pool's summed stereo contribution. level is the k-rate grain output gain.
func (p *grainPool) renderSample(store *LayerStore, level float64) (float64, float64) {
	var sumL, sumR float64

	for i := range p.voices {
		v := &p.voices[i]
		if !v.active {
			continue
		}

		l, r := store.ReadInterpolated(v.layer, v.pos)

		gain := windowGain(v.progress, v.window, v.tilt) * v.amplitude * level
		sumL += l * gain * v.panL
		sumR += r * gain * v.panR

		v.pos += v.pitch * v.direction
		v.progress += v.step

		if v.progress >= 1 {
			v.active = false
		}
	}

	return sumL, sumR
}

// activeCount returns the number of active voices.
func (p *grainPool) activeCount() int {
	n := 0
	for i := range p.voices {
		if p.voices[i].active {
			n++
		}
	}

	return n
}

// reset deactivates every voice and rewinds the spawn counter.
func (p *grainPool) reset() {
	for i := range p.voices {
		p.voices[i] = grainVoice{}
	}

	p.counter = 0
}
