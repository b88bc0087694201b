package grain

import (
	"math"

	"github.com/cwbudde/algo-granular/dsp/core"
	"github.com/cwbudde/algo-granular/dsp/interp"
)

const (
	// NumLayers is the number of independent capture buffers.
	NumLayers = 6
	// LayerSeconds is the capture capacity of each layer.
	LayerSeconds = 10.0
)

// layer is one stereo circular capture buffer with its recording state.
type layer struct {
	left      []float64
	right     []float64
	writeHead int
	recorded  int
	recording bool
}

// LayerStore owns the six capture layers and the global freeze flag.
// Only one layer records at a time; grains may read from any layer.
type LayerStore struct {
	layers   [NumLayers]layer
	capacity int
	frozen   bool
}

// NewLayerStore allocates six layers of sampleRate*LayerSeconds stereo
// samples each. All buffers are allocated up front; no layer is ever
// created or destroyed afterwards.
func NewLayerStore(sampleRate float64) *LayerStore {
	capacity := int(sampleRate * LayerSeconds)
	if capacity < 1 {
		capacity = 1
	}

	s := &LayerStore{capacity: capacity}
	for i := range s.layers {
		s.layers[i].left = make([]float64, capacity)
		s.layers[i].right = make([]float64, capacity)
	}

	return s
}

// Capacity returns the per-layer capacity in samples.
func (s *LayerStore) Capacity() int { return s.capacity }

// SetFrozen suspends or resumes all buffer writes. Grains still read.
func (s *LayerStore) SetFrozen(frozen bool) { s.frozen = frozen }

// Frozen reports whether writes are suspended.
func (s *LayerStore) Frozen() bool { return s.frozen }

// StartRecording rewinds the layer and begins capturing.
// An invalid layer index is a no-op.
func (s *LayerStore) StartRecording(index int) {
	if index < 0 || index >= NumLayers {
		return
	}

	ly := &s.layers[index]
	ly.writeHead = 0
	ly.recorded = 0
	ly.recording = true
}

// StopRecording freezes the recorded length at its current value.
func (s *LayerStore) StopRecording(index int) {
	if index < 0 || index >= NumLayers {
		return
	}

	s.layers[index].recording = false
}

// IsRecording reports whether the layer is capturing.
func (s *LayerStore) IsRecording(index int) bool {
	if index < 0 || index >= NumLayers {
		return false
	}

	return s.layers[index].recording
}

// Recorded returns the layer's recorded length in samples.
func (s *LayerStore) Recorded(index int) int {
	if index < 0 || index >= NumLayers {
		return 0
	}

	return s.layers[index].recorded
}

// Clear zero-fills the layer and resets its write head and recorded length.
// Clearing is idempotent.
func (s *LayerStore) Clear(index int) {
	if index < 0 || index >= NumLayers {
		return
	}

	ly := &s.layers[index]
	for i := range ly.left {
		ly.left[i] = 0
		ly.right[i] = 0
	}

	ly.writeHead = 0
	ly.recorded = 0
	ly.recording = false
}

// ClearAll clears every layer.
func (s *LayerStore) ClearAll() {
	for i := 0; i < NumLayers; i++ {
		s.Clear(i)
	}
}

// WriteSample stores one stereo sample at the write head and advances it
// modulo capacity. The sample is sanitized first so non-finite input never
// reaches the buffer. Writes are ignored unless the layer is recording and
// the store is not frozen. It returns true when the recording has just
// filled the layer; the caller is expected to stop recording.
func (s *LayerStore) WriteSample(index int, l, r float64) bool {
	if index < 0 || index >= NumLayers {
		return false
	}

	ly := &s.layers[index]
	if !ly.recording || s.frozen {
		return false
	}

	ly.left[ly.writeHead] = core.Sanitize(l)
	ly.right[ly.writeHead] = core.Sanitize(r)

	ly.writeHead++
	if ly.writeHead >= s.capacity {
		ly.writeHead = 0
	}

	if ly.recorded < s.capacity {
		ly.recorded++
	}

	return ly.recorded >= s.capacity
}

// Extent returns the effective extent used for playback position wrapping:
// the recorded length, or the full capacity while the layer is empty. The
// fallback keeps position arithmetic well defined on an empty layer and
// yields deterministic silence from its zeroed buffer.
func (s *LayerStore) Extent(index int) int {
	if index < 0 || index >= NumLayers {
		return s.capacity
	}

	if rec := s.layers[index].recorded; rec > 0 {
		return rec
	}

	return s.capacity
}

// ReadInterpolated returns a linearly interpolated stereo sample at a
// fractional position. The position is wrapped modulo the effective extent,
// so any finite position is valid.
func (s *LayerStore) ReadInterpolated(index int, position float64) (float64, float64) {
	if index < 0 || index >= NumLayers {
		return 0, 0
	}

	ly := &s.layers[index]
	extent := s.Extent(index)
	e := float64(extent)

	position = math.Mod(position, e)
	if position < 0 {
		position += e
	}

	i0 := int(position)
	if i0 >= extent {
		i0 = extent - 1
	}

	frac := position - float64(i0)

	i1 := i0 + 1
	if i1 >= extent {
		i1 = 0
	}

	l := interp.Linear(frac, ly.left[i0], ly.left[i1])
	r := interp.Linear(frac, ly.right[i0], ly.right[i1])

	return l, r
}
