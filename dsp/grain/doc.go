// Package grain implements a real-time granular capture-and-synthesis engine.
//
// The engine continuously records live stereo audio into six long circular
// capture buffers (layers) and plays back dense overlapping enveloped
// fragments (grains) from them under parametric control. Two fixed-capacity
// grain pools exist: a continuous engine that spawns grains on an interval
// derived from grain length and intensity, and a strike engine that spawns a
// burst on demand. The summed grain bus runs through a feedback delay and a
// Schroeder reverb before being mixed with the dry input.
//
// Processing is single-threaded and block-synchronous. Control commands are
// queued from the host and drained once per block, so every sample within a
// block sees one consistent parameter snapshot. The per-sample path performs
// no allocation, no blocking and no I/O.
package grain
