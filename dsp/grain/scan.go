package grain

import (
	"math"
	"math/rand"
)

// ScanMode selects the policy for choosing a grain's start position.
type ScanMode int

const (
	// ScanModeScan places grains at scan*extent with optional spray jitter.
	ScanModeScan ScanMode = iota
	// ScanModeFollow tracks an internal playhead moving at a speed derived
	// from the scan parameter.
	ScanModeFollow
	// ScanModeWavetable places grains at scan*extent with no jitter; grain
	// length and pitch decide how much of the cycle is traversed.
	ScanModeWavetable

	numScanModes
)

const (
	followSpeedRange = 4   // (scan-0.5)*4 spans -2x..+2x playback speed
	followJitter     = 0.1 // spray jitter fraction of extent in follow mode
)

// ScanController chooses grain start positions under one of three policies
// and owns the follow-mode playhead.
type ScanController struct {
	playhead float64
	rng      *rand.Rand
}

// NewScanController creates a controller drawing jitter from rng.
func NewScanController(rng *rand.Rand) *ScanController {
	return &ScanController{rng: rng}
}

// Advance moves the follow-mode playhead by one sample at the signed speed
// derived from scan, wrapping within [0, extent).
func (c *ScanController) Advance(scan float64, extent int) {
	if extent <= 0 {
		return
	}

	c.playhead += (scan - 0.5) * followSpeedRange
	c.playhead = wrapPosition(c.playhead, float64(extent))
}

// Playhead returns the follow-mode playhead position.
func (c *ScanController) Playhead() float64 { return c.playhead }

// Reset rewinds the playhead.
func (c *ScanController) Reset() { c.playhead = 0 }

// StartPosition chooses a grain start position in [0, extent) under the
// given mode. scan and spray are normalized parameters.
func (c *ScanController) StartPosition(mode ScanMode, scan, spray float64, extent int) float64 {
	if extent <= 0 {
		return 0
	}

	e := float64(extent)

	var pos float64

	switch mode {
	case ScanModeFollow:
		pos = c.playhead
		if spray > 0 {
			pos += (c.rng.Float64()*2 - 1) * spray * e * followJitter
		}

	case ScanModeWavetable:
		pos = scan * e

	default:
		pos = scan * e
		if spray > 0 {
			pos += (c.rng.Float64()*2 - 1) * spray * e
		}
	}

	return wrapPosition(pos, e)
}

// wrapPosition wraps pos into [0, extent).
func wrapPosition(pos, extent float64) float64 {
	if extent <= 0 {
		return 0
	}

	pos = math.Mod(pos, extent)
	if pos < 0 {
		pos += extent
	}

	return pos
}
