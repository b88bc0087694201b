package grain

import "github.com/cwbudde/algo-granular/dsp/core"

// ParamID identifies one normalized continuous parameter. The set is closed;
// commands referencing an unknown ID are rejected at the dispatch boundary
// instead of silently creating new state.
type ParamID int

const (
	ParamScan ParamID = iota
	ParamSpray
	ParamIntensity
	ParamLength
	ParamPitch
	ParamPitchSpray
	ParamTilt
	ParamDirection
	ParamReverbMix
	ParamReverbDecay
	ParamFeedback
	ParamFeedbackDelay
	ParamPan
	ParamPanSpray
	ParamMix
	ParamGrainLevel
	ParamDirectLevel

	numParams
)

var paramNames = [numParams]string{
	ParamScan:          "scan",
	ParamSpray:         "spray",
	ParamIntensity:     "intensity",
	ParamLength:        "length",
	ParamPitch:         "pitch",
	ParamPitchSpray:    "pitchSpray",
	ParamTilt:          "tilt",
	ParamDirection:     "direction",
	ParamReverbMix:     "reverbMix",
	ParamReverbDecay:   "reverbDecay",
	ParamFeedback:      "feedback",
	ParamFeedbackDelay: "feedbackDelay",
	ParamPan:           "pan",
	ParamPanSpray:      "panSpray",
	ParamMix:           "mix",
	ParamGrainLevel:    "grainLevel",
	ParamDirectLevel:   "directLevel",
}

var paramIDs = buildParamIndex()

func buildParamIndex() map[string]ParamID {
	m := make(map[string]ParamID, numParams)
	for id, name := range paramNames {
		m[name] = ParamID(id)
	}

	return m
}

// String returns the parameter's host-facing name.
func (id ParamID) String() string {
	if id < 0 || id >= numParams {
		return "unknown"
	}

	return paramNames[id]
}

// ParamByName resolves a host-facing parameter name. The second result is
// false for unknown names.
func ParamByName(name string) (ParamID, bool) {
	id, ok := paramIDs[name]

	return id, ok
}

// Parameters is the flat per-block parameter snapshot: seventeen normalized
// continuous values plus the discrete selectors. A snapshot is latched once
// per block, so no component ever observes a value changing mid-block.
type Parameters struct {
	values [numParams]float64

	scanMode    ScanMode
	window      WindowType
	scale       Scale
	quantize    bool
	activeLayer int

	continuousEnabled bool
	strikeEnabled     bool
	autoCapture       bool
}

// defaultParameters returns the power-on state.
func defaultParameters() Parameters {
	p := Parameters{
		continuousEnabled: true,
		strikeEnabled:     true,
	}

	p.values[ParamIntensity] = 0.3
	p.values[ParamLength] = 0.5
	p.values[ParamPitch] = 0.5
	p.values[ParamTilt] = 0.5
	p.values[ParamDirection] = 1
	p.values[ParamReverbDecay] = 0.5
	p.values[ParamPan] = 0.5
	p.values[ParamMix] = 1
	p.values[ParamGrainLevel] = 0.8

	return p
}

// Set stores one continuous value, clamped to [0, 1] like a physical
// control with hard end-stops. Unknown IDs are ignored.
func (p *Parameters) Set(id ParamID, value float64) {
	if id < 0 || id >= numParams {
		return
	}

	p.values[id] = core.ClampUnit(value)
}

// Get returns one continuous value. Unknown IDs read as 0.
func (p *Parameters) Get(id ParamID) float64 {
	if id < 0 || id >= numParams {
		return 0
	}

	return p.values[id]
}

// ScanMode returns the active scan policy.
func (p *Parameters) ScanMode() ScanMode { return p.scanMode }

// Window returns the active grain window type.
func (p *Parameters) Window() WindowType { return p.window }

// ActiveScale returns the active quantization scale.
func (p *Parameters) ActiveScale() Scale { return p.scale }

// PitchQuantize reports whether pitch snapping is enabled.
func (p *Parameters) PitchQuantize() bool { return p.quantize }

// ActiveLayer returns the layer targeted by capture and grain spawning.
func (p *Parameters) ActiveLayer() int { return p.activeLayer }

// ContinuousEnabled reports whether the continuous engine runs.
func (p *Parameters) ContinuousEnabled() bool { return p.continuousEnabled }

// StrikeEnabled reports whether the strike engine responds to triggers.
func (p *Parameters) StrikeEnabled() bool { return p.strikeEnabled }

// AutoCapture reports whether onset-triggered capture is armed.
func (p *Parameters) AutoCapture() bool { return p.autoCapture }
