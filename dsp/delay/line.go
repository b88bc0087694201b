// Package delay provides a stereo circular delay line with fractional reads,
// used by feedback-delay effects that modulate their delay time.
package delay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-granular/dsp/interp"
)

// Line is a stereo circular delay line. Both channels share one write head
// so a fractional read always returns a phase-coherent stereo pair.
type Line struct {
	left     []float64
	right    []float64
	writePos int
}

// New returns a stereo delay line of fixed size in samples.
func New(size int) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", size)
	}

	return &Line{
		left:  make([]float64, size),
		right: make([]float64, size),
	}, nil
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.left)
}

// Write writes one stereo sample and advances the write head.
func (d *Line) Write(l, r float64) {
	d.left[d.writePos] = l
	d.right[d.writePos] = r
	d.writePos++
	if d.writePos >= len(d.left) {
		d.writePos = 0
	}
}

// Read reads an integer delay in samples relative to the last written sample.
func (d *Line) Read(delay int) (float64, float64) {
	size := len(d.left)
	if size == 0 {
		return 0, 0
	}

	if delay < 0 {
		delay = 0
	}

	if delay >= size {
		delay = size - 1
	}

	readPos := (d.writePos - delay + size) % size

	return d.left[readPos], d.right[readPos]
}

// ReadFractional reads with cubic Hermite interpolation.
func (d *Line) ReadFractional(delay float64) (float64, float64) {
	size := len(d.left)
	if size == 0 {
		return 0, 0
	}

	if delay < 0 {
		delay = 0
	}

	maxDelay := float64(size - 3)
	if delay > maxDelay {
		delay = maxDelay
	}

	p := int(math.Floor(delay))
	t := delay - float64(p)

	pm1 := p - 1
	if pm1 < 0 {
		pm1 = 0
	}

	lm1, rm1 := d.Read(pm1)
	l0, r0 := d.Read(p)
	l1, r1 := d.Read(p + 1)
	l2, r2 := d.Read(p + 2)

	return interp.Hermite4(t, lm1, l0, l1, l2), interp.Hermite4(t, rm1, r0, r1, r2)
}

// Reset clears line state.
func (d *Line) Reset() {
	for i := range d.left {
		d.left[i] = 0
		d.right[i] = 0
	}

	d.writePos = 0
}
