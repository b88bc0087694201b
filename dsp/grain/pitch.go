package grain

import (
	"math"
	"math/rand"
)

// Scale selects the semitone set used for pitch quantization.
type Scale int

const (
	ScaleChromatic Scale = iota
	ScaleMajor
	ScaleMinor
	ScalePentatonic
	ScaleWholeTone
	ScaleFifths
	ScaleOctaves

	numScales
)

// scaleDegrees holds the in-octave semitone offsets of each scale.
var scaleDegrees = [numScales][]float64{
	ScaleChromatic:  {0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
	ScaleMajor:      {0, 2, 4, 5, 7, 9, 11},
	ScaleMinor:      {0, 2, 3, 5, 7, 8, 10},
	ScalePentatonic: {0, 2, 4, 7, 9},
	ScaleWholeTone:  {0, 2, 4, 6, 8, 10},
	ScaleFifths:     {0, 7},
	ScaleOctaves:    {0},
}

const (
	pitchOctaveRange = 4 // (pitch-0.5)*4 spans [-2, +2] octaves
	pitchSprayRange  = 2 // spray scales a uniform perturbation of up to ±2 octaves
)

// PitchEngine maps the normalized pitch parameter to a playback-rate
// multiplier, with optional per-grain random spray and scale quantization.
type PitchEngine struct {
	quantize bool
	scale    Scale
	rng      *rand.Rand
}

// NewPitchEngine creates a pitch engine drawing spray from rng.
func NewPitchEngine(rng *rand.Rand) *PitchEngine {
	return &PitchEngine{rng: rng}
}

// SetQuantize enables or disables snapping to the active scale.
func (p *PitchEngine) SetQuantize(enabled bool) { p.quantize = enabled }

// Quantize reports whether snapping is enabled.
func (p *PitchEngine) Quantize() bool { return p.quantize }

// SetScale selects the active scale. Unknown indices are ignored.
func (p *PitchEngine) SetScale(scale Scale) {
	if scale < 0 || scale >= numScales {
		return
	}

	p.scale = scale
}

// ActiveScale returns the active scale.
func (p *PitchEngine) ActiveScale() Scale { return p.scale }

// Rate computes the playback-rate multiplier for one grain spawn.
// pitch and spray are normalized parameters in [0, 1]; each call draws a
// fresh spray perturbation, independent of every other grain.
func (p *PitchEngine) Rate(pitch, spray float64) float64 {
	offset := (pitch - 0.5) * pitchOctaveRange

	if spray > 0 {
		offset += (p.rng.Float64()*2 - 1) * spray * pitchSprayRange
	}

	if p.quantize {
		offset = p.snap(offset)
	}

	return mathPower2(offset)
}

// snap quantizes an octave offset to the nearest member of the active
// scale, checking both the direct distance and the wrap-around distance to
// the same degree one octave up.
func (p *PitchEngine) snap(offset float64) float64 {
	semis := offset * 12
	octave := math.Floor(semis / 12)
	rem := semis - octave*12 // [0, 12)

	degrees := scaleDegrees[p.scale]

	best := degrees[0]
	bestDist := math.Abs(rem - best)

	for _, d := range degrees {
		if dist := math.Abs(rem - d); dist < bestDist {
			best = d
			bestDist = dist
		}

		if dist := math.Abs(rem - (d + 12)); dist < bestDist {
			best = d + 12
			bestDist = dist
		}
	}

	return (octave*12 + best) / 12
}
