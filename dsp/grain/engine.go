package grain

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-granular/dsp/core"
)

const (
	defaultEngineSeed = 1
	mixSmoothSeconds  = 0.005
)

// Engine is the granular capture-and-synthesis core. It owns the six
// capture layers, the continuous and strike grain pools, the onset
// detector, the post effects and the mixer; no state lives outside it.
//
// Processing is single-threaded and block-synchronous: the host calls
// ProcessBlock with fixed-size stereo blocks and queues control commands
// from any other goroutine. The per-sample path is allocation-free and not
// safe for concurrent ProcessBlock calls.
type Engine struct {
	cfg core.ProcessorConfig

	store *LayerStore
	onset *OnsetDetector
	pitch *PitchEngine
	scan  *ScanController
	rng   *rand.Rand
	seed  int64

	continuous grainPool
	strike     grainPool

	fx *postFX

	commands chan command
	pending  Parameters
	params   Parameters

	// Derived once per block from the latched snapshot.
	grainSeconds  float64
	grainSamples  int
	spawnCount    int
	spawnInterval float64

	captureAuto      bool
	captureRemaining int

	pendingStrikes int

	mixSmooth float64
	mixCoeff  float64

	bpm           float64
	externalClock bool

	// OnOnset and OnBufferFull are invoked at the end of a block in which
	// the corresponding event occurred. Set them before processing starts.
	OnOnset      func()
	OnBufferFull func(layer int)

	dryL, dryR []float64
	busL, busR []float64
	monL, monR []float64
}

// New creates an engine with the given processor options.
func New(opts ...core.ProcessorOption) (*Engine, error) {
	cfg := core.ApplyProcessorOptions(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("grain engine: %w", err)
	}

	fx, err := newPostFX(cfg.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("grain engine: %w", err)
	}

	rng := rand.New(rand.NewSource(defaultEngineSeed))

	e := &Engine{
		cfg:      cfg,
		store:    NewLayerStore(cfg.SampleRate),
		onset:    NewOnsetDetector(cfg.SampleRate),
		pitch:    NewPitchEngine(rng),
		scan:     NewScanController(rng),
		rng:      rng,
		seed:     defaultEngineSeed,
		fx:       fx,
		commands: make(chan command, commandQueueSize),
		pending:  defaultParameters(),
		mixCoeff: onePoleCoeff(mixSmoothSeconds, cfg.SampleRate),
		bpm:      120,

		dryL: make([]float64, cfg.BlockSize),
		dryR: make([]float64, cfg.BlockSize),
		busL: make([]float64, cfg.BlockSize),
		busR: make([]float64, cfg.BlockSize),
		monL: make([]float64, cfg.BlockSize),
		monR: make([]float64, cfg.BlockSize),
	}

	e.params = e.pending
	e.mixSmooth = e.pending.Get(ParamMix)

	return e, nil
}

// Config returns the fixed processor configuration.
func (e *Engine) Config() core.ProcessorConfig { return e.cfg }

// Params returns the most recently latched parameter snapshot.
func (e *Engine) Params() Parameters { return e.params }

// ActiveGrains returns the number of active grains in the continuous and
// strike pools.
func (e *Engine) ActiveGrains() (continuous, strike int) {
	return e.continuous.activeCount(), e.strike.activeCount()
}

// Recorded returns a layer's recorded length in samples.
func (e *Engine) Recorded(layer int) int { return e.store.Recorded(layer) }

// Frozen reports whether layer writes are suspended.
func (e *Engine) Frozen() bool { return e.store.Frozen() }

// BPM returns the informational tempo context.
func (e *Engine) BPM() float64 { return e.bpm }

// ExternalClock reports the informational clock-source context.
func (e *Engine) ExternalClock() bool { return e.externalClock }

// SetRandomSeed seeds the spawn randomness for deterministic rendering.
func (e *Engine) SetRandomSeed(seed int64) {
	e.seed = seed
	e.rng.Seed(seed)
}

// Reset clears all layers, grains, effect tails and smoothing state.
// Queued commands and parameter values survive.
func (e *Engine) Reset() {
	e.store.ClearAll()
	e.store.SetFrozen(false)
	e.continuous.reset()
	e.strike.reset()
	e.fx.reset()
	e.onset.Reset()
	e.scan.Reset()
	e.rng.Seed(e.seed)
	e.captureAuto = false
	e.captureRemaining = 0
	e.pendingStrikes = 0
	e.mixSmooth = e.pending.Get(ParamMix)
}

// ProcessBlock processes one stereo block. All four slices must have the
// configured block length. In and out slices may alias.
func (e *Engine) ProcessBlock(inL, inR, outL, outR []float64) error {
	n := e.cfg.BlockSize
	if len(inL) != n || len(inR) != n || len(outL) != n || len(outR) != n {
		return fmt.Errorf("block length must be %d: in %d/%d out %d/%d",
			n, len(inL), len(inR), len(outL), len(outR))
	}

	e.drainCommands()
	e.params = e.pending
	e.latchDerived()

	e.fireStrikes()

	active := e.params.ActiveLayer()
	scanParam := e.params.Get(ParamScan)
	level := e.params.Get(ParamGrainLevel)
	follow := e.params.ScanMode() == ScanModeFollow
	continuousOn := e.params.ContinuousEnabled()

	onsetFired := false
	fullLayer := -1

	for i := 0; i < n; i++ {
		l := core.Sanitize(inL[i])
		r := core.Sanitize(inR[i])
		e.dryL[i] = l
		e.dryR[i] = r

		if e.onset.ProcessSample(l, r) {
			onsetFired = true

			if e.params.AutoCapture() && !e.store.IsRecording(active) && !e.store.Frozen() {
				e.store.StartRecording(active)
				e.captureAuto = true
				e.captureRemaining = e.store.Capacity()
			}
		}

		if e.store.IsRecording(active) && !e.store.Frozen() {
			full := e.store.WriteSample(active, l, r)

			switch {
			case full:
				e.store.StopRecording(active)
				e.captureAuto = false
				fullLayer = active

			case e.captureAuto:
				e.captureRemaining--
				if e.captureRemaining <= 0 {
					e.store.StopRecording(active)
					e.captureAuto = false
				}
			}
		}

		if follow {
			e.scan.Advance(scanParam, e.store.Extent(active))
		}

		if continuousOn && e.continuous.tick(e.spawnInterval) {
			e.spawnInto(&e.continuous)
		}

		cl, cr := e.continuous.renderSample(e.store, level)
		sl, sr := e.strike.renderSample(e.store, level)

		gl, gr := e.fx.processSample(math.Tanh(cl+sl), math.Tanh(cr+sr))
		e.busL[i] = gl
		e.busR[i] = gr
	}

	// Direct-monitor path: the sanitized input, scaled by directLevel,
	// joins the grain/FX bus before the final crossfade.
	direct := e.params.Get(ParamDirectLevel)
	vecmath.ScaleBlock(e.monL, e.dryL, direct)
	vecmath.ScaleBlock(e.monR, e.dryR, direct)
	vecmath.AddBlockInPlace(e.busL, e.monL)
	vecmath.AddBlockInPlace(e.busR, e.monR)

	// Final crossfade between dry input and the wet bus. The coefficient
	// chases the mix target exponentially so parameter jumps do not click.
	target := e.params.Get(ParamMix)
	for i := 0; i < n; i++ {
		e.mixSmooth += e.mixCoeff * (target - e.mixSmooth)
		outL[i] = e.dryL[i]*(1-e.mixSmooth) + e.busL[i]*e.mixSmooth
		outR[i] = e.dryR[i]*(1-e.mixSmooth) + e.busR[i]*e.mixSmooth
	}

	if onsetFired && e.OnOnset != nil {
		e.OnOnset()
	}

	if fullLayer >= 0 && e.OnBufferFull != nil {
		e.OnBufferFull(fullLayer)
	}

	return nil
}

// latchDerived recomputes the block-rate values that depend on the latched
// parameter snapshot.
func (e *Engine) latchDerived() {
	e.grainSeconds = grainLengthSeconds(e.params.Get(ParamLength))

	e.grainSamples = int(e.grainSeconds * e.cfg.SampleRate)
	if e.grainSamples < 1 {
		e.grainSamples = 1
	}

	e.spawnCount = grainCount(e.params.Get(ParamIntensity))
	e.spawnInterval = float64(e.grainSamples) / float64(e.spawnCount)
	if e.spawnInterval < 1 {
		e.spawnInterval = 1
	}

	e.fx.configure(
		e.params.Get(ParamFeedback),
		e.params.Get(ParamFeedbackDelay),
		e.params.Get(ParamReverbMix),
		e.params.Get(ParamReverbDecay),
		e.grainSeconds,
	)
}

// fireStrikes spawns the queued strike bursts. A trigger received while the
// strike engine is disabled is discarded.
func (e *Engine) fireStrikes() {
	if e.params.StrikeEnabled() {
		for k := 0; k < e.pendingStrikes; k++ {
			for j := 0; j < e.spawnCount; j++ {
				e.spawnInto(&e.strike)
			}
		}
	}

	e.pendingStrikes = 0
}

// spawnInto initializes one grain from the current snapshot and places it
// into the pool. Pitch and pan spray are drawn fresh for every grain.
func (e *Engine) spawnInto(pool *grainPool) {
	active := e.params.ActiveLayer()
	extent := e.store.Extent(active)

	start := e.scan.StartPosition(
		e.params.ScanMode(),
		e.params.Get(ParamScan),
		e.params.Get(ParamSpray),
		extent,
	)

	direction := -1.0
	if e.rng.Float64() < e.params.Get(ParamDirection) {
		direction = 1.0
	}

	pan := e.params.Get(ParamPan)
	if spread := e.params.Get(ParamPanSpray); spread > 0 {
		offset := spread * 0.5
		if e.rng.Float64() < 0.5 {
			offset = -offset
		}

		pan = core.ClampUnit(pan + offset)
	}

	pool.spawn(grainVoice{
		layer:     active,
		start:     start,
		pos:       start,
		length:    e.grainSamples,
		step:      1 / float64(e.grainSamples),
		pitch:     e.pitch.Rate(e.params.Get(ParamPitch), e.params.Get(ParamPitchSpray)),
		direction: direction,
		panL:      math.Cos(pan * math.Pi / 2),
		panR:      math.Sin(pan * math.Pi / 2),
		amplitude: 1,
		window:    e.params.Window(),
		tilt:      e.params.Get(ParamTilt),
	})
}
