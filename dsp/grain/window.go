package grain

// WindowType identifies the amplitude envelope shaping a grain's lifetime.
type WindowType int

const (
	// WindowGaussian is a bell curve peaking at the grain's midpoint.
	WindowGaussian WindowType = iota
	// WindowSquare holds unity gain with 1% edge ramps for click suppression.
	WindowSquare
	// WindowSawtooth ramps up over the tilt fraction of the grain, then down.
	WindowSawtooth
)

const squareEdge = 0.01

// windowGain evaluates the window at progress in [0, 1]. Tilt is only used
// by the sawtooth window and splits it into attack and decay segments; a
// degenerate zero-length segment is treated as instantaneous (value 1).
func windowGain(progress float64, w WindowType, tilt float64) float64 {
	switch w {
	case WindowSquare:
		if progress < squareEdge {
			return progress / squareEdge
		}

		if progress > 1-squareEdge {
			return (1 - progress) / squareEdge
		}

		return 1

	case WindowSawtooth:
		if progress < tilt {
			return progress / tilt
		}

		decay := 1 - tilt
		if decay <= 0 {
			return 1
		}

		return (1 - progress) / decay

	default:
		x := (progress - 0.5) * 4

		return mathExp(-(x * x))
	}
}
