package jogdial

import (
	"math"
	"sync"
	"time"

	"cutdesk/internal/logging"
)

// Direction of a frame step. Clockwise rotation steps forward.
type Direction string

const (
	Backward Direction = "backward"
	Forward  Direction = "forward"
)

// StepFunc receives each discrete step emission.
type StepFunc func(dir Direction, frames int)

// State is the dial's simulation state.
type State struct {
	AccumulatedDegrees float64 // rotation not yet converted into steps
	Angle              float64 // cumulative, unbounded
	AngularVelocity    float64 // degrees/second, positive is clockwise
	IsDragging         bool
}

// Engine converts pointer drags into rotation, decays it with momentum after release,
// and emits whole frame steps as rotation accumulates.
//
// The engine is safe for concurrent use. Step callbacks run without the engine lock held,
// so they may call back into the engine.
type Engine struct {
	mu sync.Mutex

	centerX   float64
	centerY   float64
	clock     func() time.Time
	config    Config
	disposed  bool
	frameGen  uint64
	lastAngle float64
	lastTime  time.Time
	onStep    StepFunc
	scheduler Scheduler
	state     State

	cancelFrame func()
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig replaces the default configuration. Invalid fields keep their defaults.
func WithConfig(c Config) Option {
	return func(e *Engine) {
		e.applyConfig(c.Partial())
	}
}

// WithClock sets the time source used to measure drag velocity.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithScheduler sets the frame scheduler driving momentum.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) {
		e.scheduler = s
	}
}

// NewEngine creates an idle dial.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		clock:  time.Now,
		config: DefaultConfig(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.scheduler == nil {
		e.scheduler = NewTickerScheduler()
	}
	return e
}

// SetOnStep registers the step callback, replacing any previous one.
func (e *Engine) SetOnStep(fn StepFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed {
		return
	}
	e.onStep = fn
}

// SetConfig changes the given fields of the configuration.
func (e *Engine) SetConfig(p PartialConfig) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.applyConfig(p)
}

func (e *Engine) applyConfig(p PartialConfig) {
	merged, rejected := e.config.merge(p)
	if len(rejected) > 0 {
		logging.Logger.Warn("Ignoring out-of-range jog dial settings", "fields", rejected)
	}
	e.config = merged
}

// Config returns the current configuration.
func (e *Engine) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.config
}

// GetState returns a copy of the simulation state.
func (e *Engine) GetState() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// StartDrag begins a drag at the pointer position relative to the dial center.
// Any momentum still running is cancelled.
func (e *Engine) StartDrag(pointerX, pointerY, centerX, centerY float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed {
		return
	}

	e.cancelMomentumLocked()
	e.centerX = centerX
	e.centerY = centerY
	e.lastAngle = angleFrom(pointerX, pointerY, centerX, centerY)
	e.lastTime = e.clock()
	e.state.AngularVelocity = 0
	e.state.IsDragging = true
}

// Drag feeds one pointer movement sample.
func (e *Engine) Drag(pointerX, pointerY float64) {
	e.mu.Lock()
	if e.disposed || !e.state.IsDragging {
		e.mu.Unlock()
		return
	}

	current := angleFrom(pointerX, pointerY, e.centerX, e.centerY)
	delta := normalizeDelta(current - e.lastAngle)

	now := e.clock()
	if dt := now.Sub(e.lastTime).Seconds(); dt > 0 {
		e.state.AngularVelocity = delta / dt
	}
	e.lastAngle = current
	e.lastTime = now

	e.state.Angle += delta
	e.state.AccumulatedDegrees += delta

	dir, frames, ok := e.emitLocked()
	onStep := e.onStep
	e.mu.Unlock()

	if ok && onStep != nil {
		onStep(dir, frames)
	}
}

// EndDrag releases the dial. Momentum starts if the release velocity exceeds the stop threshold.
func (e *Engine) EndDrag() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed || !e.state.IsDragging {
		return
	}

	e.state.IsDragging = false
	if math.Abs(e.state.AngularVelocity) <= e.config.StopThreshold {
		e.state.AngularVelocity = 0
		return
	}

	e.lastTime = e.clock()
	e.scheduleMomentumLocked()
}

// Dispose cancels momentum and drops the step callback. The engine ignores all later calls.
func (e *Engine) Dispose() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelMomentumLocked()
	e.onStep = nil
	e.state.IsDragging = false
	e.disposed = true
}

// Momentum reports whether a momentum tick is pending.
func (e *Engine) Momentum() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cancelFrame != nil
}

func (e *Engine) scheduleMomentumLocked() {
	gen := e.frameGen
	e.cancelFrame = e.scheduler.Schedule(func(now time.Time) {
		e.momentumTick(gen, now)
	})
}

func (e *Engine) cancelMomentumLocked() {
	e.frameGen++
	if e.cancelFrame != nil {
		e.cancelFrame()
		e.cancelFrame = nil
	}
}

func (e *Engine) momentumTick(gen uint64, now time.Time) {
	e.mu.Lock()
	// A drag or dispose since scheduling makes this tick stale.
	if e.disposed || gen != e.frameGen {
		e.mu.Unlock()
		return
	}
	e.cancelFrame = nil

	dt := now.Sub(e.lastTime).Seconds()
	if dt < 0 {
		dt = 0
	}
	e.lastTime = now

	e.state.AngularVelocity *= e.config.Friction
	if math.Abs(e.state.AngularVelocity) < e.config.StopThreshold {
		e.state.AngularVelocity = 0
		e.mu.Unlock()
		return
	}

	delta := e.state.AngularVelocity * dt
	e.state.Angle += delta
	e.state.AccumulatedDegrees += delta

	dir, frames, ok := e.emitLocked()
	onStep := e.onStep
	e.scheduleMomentumLocked()
	e.mu.Unlock()

	if ok && onStep != nil {
		onStep(dir, frames)
	}
}

// emitLocked converts whole steps of accumulated rotation into an emission.
// The full unclamped rotation is consumed even when the frame count is capped,
// so fast spins drop excess rotation instead of queueing a catch-up burst.
func (e *Engine) emitLocked() (Direction, int, bool) {
	if e.config.DegreesPerStep <= 0 {
		return "", 0, false
	}

	rawSteps := math.Trunc(e.state.AccumulatedDegrees / e.config.DegreesPerStep)
	if math.IsNaN(rawSteps) {
		e.state.AccumulatedDegrees = 0
		return "", 0, false
	}
	if rawSteps == 0 {
		return "", 0, false
	}

	dir := Forward
	if rawSteps < 0 {
		dir = Backward
	}

	// Clamp before converting: int() of a magnitude beyond the int range is undefined.
	magnitude := math.Abs(rawSteps)
	if e.config.MaxFramesPerTick > 0 && magnitude > float64(e.config.MaxFramesPerTick) {
		magnitude = float64(e.config.MaxFramesPerTick)
	}
	frames := int(magnitude)

	if math.IsInf(rawSteps, 0) {
		e.state.AccumulatedDegrees = 0
	} else {
		e.state.AccumulatedDegrees -= rawSteps * e.config.DegreesPerStep
	}
	return dir, frames, true
}

// angleFrom returns the pointer angle around the center in degrees, in (-180, 180].
func angleFrom(x, y, cx, cy float64) float64 {
	return math.Atan2(y-cy, x-cx) * 180 / math.Pi
}

// normalizeDelta folds a raw angle difference into (-180, 180] to undo the atan2 wrap.
func normalizeDelta(delta float64) float64 {
	for delta > 180 {
		delta -= 360
	}
	for delta <= -180 {
		delta += 360
	}
	return delta
}
