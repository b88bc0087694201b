package grain

// commandKind enumerates the closed control message set consumed from the
// host. Commands are queued from the control side and drained by the
// real-time side once per block, never mid-block.
type commandKind int

const (
	cmdSetParam commandKind = iota
	cmdSetScanMode
	cmdSetWindow
	cmdSetActiveLayer
	cmdSetContinuousEngine
	cmdSetStrikeEngine
	cmdStrike
	cmdStartRecording
	cmdStopRecording
	cmdSetAutoCapture
	cmdSetCaptureThreshold
	cmdFreeze
	cmdSetPitchQuantize
	cmdSetPitchScale
	cmdClearLayer
	cmdClearAllLayers
	cmdSetBPM
	cmdSetExternalClock
)

type command struct {
	kind    commandKind
	param   ParamID
	value   float64
	index   int
	enabled bool
}

// commandQueueSize bounds the per-block control backlog. A full queue drops
// the newest command rather than blocking the producer.
const commandQueueSize = 256

// push queues a command without blocking.
func (e *Engine) push(cmd command) {
	select {
	case e.commands <- cmd:
	default:
	}
}

// SetParam queues one continuous parameter update. The value is clamped to
// [0, 1] when applied.
func (e *Engine) SetParam(id ParamID, value float64) {
	e.push(command{kind: cmdSetParam, param: id, value: value})
}

// SetParamByName resolves a host-facing parameter name and queues the
// update. Unknown names report false and queue nothing.
func (e *Engine) SetParamByName(name string, value float64) bool {
	id, ok := ParamByName(name)
	if !ok {
		return false
	}

	e.SetParam(id, value)

	return true
}

// SetScanMode selects the scan position policy.
func (e *Engine) SetScanMode(mode ScanMode) {
	e.push(command{kind: cmdSetScanMode, index: int(mode)})
}

// SetWindow selects the grain window type.
func (e *Engine) SetWindow(w WindowType) {
	e.push(command{kind: cmdSetWindow, index: int(w)})
}

// SetActiveLayer selects which layer subsequent capture and grain spawning
// target. Invalid indices are ignored.
func (e *Engine) SetActiveLayer(index int) {
	e.push(command{kind: cmdSetActiveLayer, index: index})
}

// SetContinuousEngine enables or disables the continuous grain engine.
func (e *Engine) SetContinuousEngine(enabled bool) {
	e.push(command{kind: cmdSetContinuousEngine, enabled: enabled})
}

// SetStrikeEngine enables or disables the strike grain engine.
func (e *Engine) SetStrikeEngine(enabled bool) {
	e.push(command{kind: cmdSetStrikeEngine, enabled: enabled})
}

// Strike fires the strike engine's burst spawn at the next block boundary.
// It is a no-op while the strike engine is disabled.
func (e *Engine) Strike() {
	e.push(command{kind: cmdStrike})
}

// StartRecording begins capturing into the active layer.
func (e *Engine) StartRecording() {
	e.push(command{kind: cmdStartRecording})
}

// StopRecording stops capturing on the active layer.
func (e *Engine) StopRecording() {
	e.push(command{kind: cmdStopRecording})
}

// SetAutoCapture enables or disables onset-triggered capture.
func (e *Engine) SetAutoCapture(enabled bool) {
	e.push(command{kind: cmdSetAutoCapture, enabled: enabled})
}

// SetCaptureThreshold sets the onset detector's absolute threshold.
func (e *Engine) SetCaptureThreshold(value float64) {
	e.push(command{kind: cmdSetCaptureThreshold, value: value})
}

// Freeze suspends or resumes all layer writes. Grains keep reading.
func (e *Engine) Freeze(active bool) {
	e.push(command{kind: cmdFreeze, enabled: active})
}

// SetPitchQuantize enables or disables pitch snapping.
func (e *Engine) SetPitchQuantize(enabled bool) {
	e.push(command{kind: cmdSetPitchQuantize, enabled: enabled})
}

// SetPitchScale selects the quantization scale. Invalid indices are ignored.
func (e *Engine) SetPitchScale(scale Scale) {
	e.push(command{kind: cmdSetPitchScale, index: int(scale)})
}

// ClearLayer zeroes one layer's contents and metadata. Invalid indices are
// ignored.
func (e *Engine) ClearLayer(index int) {
	e.push(command{kind: cmdClearLayer, index: index})
}

// ClearAllLayers zeroes every layer.
func (e *Engine) ClearAllLayers() {
	e.push(command{kind: cmdClearAllLayers})
}

// SetBPM stores informational tempo context.
func (e *Engine) SetBPM(bpm float64) {
	e.push(command{kind: cmdSetBPM, value: bpm})
}

// SetExternalClock stores informational clock-source context.
func (e *Engine) SetExternalClock(enabled bool) {
	e.push(command{kind: cmdSetExternalClock, enabled: enabled})
}

// drainCommands applies every queued command. Called at the top of each
// processed block, before the parameter snapshot is latched.
func (e *Engine) drainCommands() {
	for {
		select {
		case cmd := <-e.commands:
			e.apply(cmd)
		default:
			return
		}
	}
}

func (e *Engine) apply(cmd command) {
	switch cmd.kind {
	case cmdSetParam:
		e.pending.Set(cmd.param, cmd.value)

	case cmdSetScanMode:
		if cmd.index >= 0 && cmd.index < int(numScanModes) {
			e.pending.scanMode = ScanMode(cmd.index)
		}

	case cmdSetWindow:
		if cmd.index >= int(WindowGaussian) && cmd.index <= int(WindowSawtooth) {
			e.pending.window = WindowType(cmd.index)
		}

	case cmdSetActiveLayer:
		if cmd.index >= 0 && cmd.index < NumLayers {
			e.pending.activeLayer = cmd.index
		}

	case cmdSetContinuousEngine:
		e.pending.continuousEnabled = cmd.enabled

	case cmdSetStrikeEngine:
		e.pending.strikeEnabled = cmd.enabled

	case cmdStrike:
		e.pendingStrikes++

	case cmdStartRecording:
		e.captureAuto = false
		e.store.StartRecording(e.pending.activeLayer)

	case cmdStopRecording:
		e.captureAuto = false
		e.store.StopRecording(e.pending.activeLayer)

	case cmdSetAutoCapture:
		e.pending.autoCapture = cmd.enabled

	case cmdSetCaptureThreshold:
		e.onset.SetThreshold(cmd.value)

	case cmdFreeze:
		e.store.SetFrozen(cmd.enabled)

	case cmdSetPitchQuantize:
		e.pending.quantize = cmd.enabled
		e.pitch.SetQuantize(cmd.enabled)

	case cmdSetPitchScale:
		if cmd.index >= 0 && cmd.index < int(numScales) {
			e.pending.scale = Scale(cmd.index)
			e.pitch.SetScale(Scale(cmd.index))
		}

	case cmdClearLayer:
		e.store.Clear(cmd.index)

	case cmdClearAllLayers:
		e.store.ClearAll()

	case cmdSetBPM:
		if cmd.value > 0 {
			e.bpm = cmd.value
		}

	case cmdSetExternalClock:
		e.externalClock = cmd.enabled
	}
}
