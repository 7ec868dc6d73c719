package jogdial

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type step struct {
	dir    Direction
	frames int
}

type harness struct {
	engine    *Engine
	scheduler *ManualScheduler
	steps     []step
}

func newHarness(t *testing.T, config Config) *harness {
	t.Helper()

	h := &harness{scheduler: NewManualScheduler(time.Unix(1700000000, 0))}
	h.engine = NewEngine(
		WithConfig(config),
		WithClock(h.scheduler.Now),
		WithScheduler(h.scheduler),
	)
	h.engine.SetOnStep(func(dir Direction, frames int) {
		h.steps = append(h.steps, step{dir: dir, frames: frames})
	})
	return h
}

// point returns a pointer position at the given angle on a circle around the origin.
func point(deg float64) (float64, float64) {
	rad := deg * math.Pi / 180
	return 100 * math.Cos(rad), 100 * math.Sin(rad)
}

func (h *harness) start(deg float64) {
	x, y := point(deg)
	h.engine.StartDrag(x, y, 0, 0)
}

func (h *harness) dragTo(deg float64, after time.Duration) {
	h.scheduler.Sleep(after)
	x, y := point(deg)
	h.engine.Drag(x, y)
}

func (h *harness) totalFrames(dir Direction) int {
	total := 0
	for _, s := range h.steps {
		if s.dir == dir {
			total += s.frames
		}
	}
	return total
}

func TestEngine_ClockwiseStepsForward(t *testing.T) {
	h := newHarness(t, Config{DegreesPerStep: 10, Friction: 0.5, StopThreshold: 1e9, MaxFramesPerTick: 100})

	h.start(0)
	h.dragTo(35, 10*time.Millisecond)

	require.Len(t, h.steps, 1)
	assert.Equal(t, Forward, h.steps[0].dir)
	assert.Equal(t, 3, h.steps[0].frames)
	assert.InDelta(t, 5, h.engine.GetState().AccumulatedDegrees, 1e-6)
	assert.InDelta(t, 35, h.engine.GetState().Angle, 1e-6)
}

func TestEngine_CounterClockwiseStepsBackward(t *testing.T) {
	h := newHarness(t, Config{DegreesPerStep: 10, Friction: 0.5, StopThreshold: 1e9, MaxFramesPerTick: 100})

	h.start(0)
	h.dragTo(-25, 10*time.Millisecond)

	require.Len(t, h.steps, 1)
	assert.Equal(t, Backward, h.steps[0].dir)
	assert.Equal(t, 2, h.steps[0].frames)
	assert.InDelta(t, -5, h.engine.GetState().AccumulatedDegrees, 1e-6)
	assert.Less(t, h.engine.GetState().AngularVelocity, 0.0)
}

func TestEngine_StepGating(t *testing.T) {
	h := newHarness(t, Config{DegreesPerStep: 180, Friction: 0.5, StopThreshold: 1e9, MaxFramesPerTick: 5})

	h.start(0)
	h.dragTo(5, 10*time.Millisecond)
	assert.Empty(t, h.steps)
	assert.InDelta(t, 5, h.engine.GetState().AccumulatedDegrees, 1e-6)

	h.dragTo(10, 10*time.Millisecond)
	assert.Empty(t, h.steps)
	assert.InDelta(t, 10, h.engine.GetState().AccumulatedDegrees, 1e-6, "accumulation carries across samples")
}

func TestEngine_ClampDiscardsExcessRotation(t *testing.T) {
	h := newHarness(t, Config{DegreesPerStep: 1, Friction: 0.5, StopThreshold: 1e9, MaxFramesPerTick: 3})

	h.start(0)
	h.dragTo(50, 10*time.Millisecond)

	require.Len(t, h.steps, 1)
	assert.Equal(t, Forward, h.steps[0].dir)
	assert.LessOrEqual(t, h.steps[0].frames, 3)
	assert.Equal(t, 3, h.steps[0].frames)

	acc := h.engine.GetState().AccumulatedDegrees
	assert.Less(t, math.Abs(acc), 1.0, "the unclamped rotation is consumed, not queued")
}

func TestEngine_ClampHoldsForHugeStepCounts(t *testing.T) {
	tests := []struct {
		name           string
		degreesPerStep float64
		to             float64
		expected       step
	}{
		{"beyond int range forward", 1e-18, 50, step{Forward, 3}},
		{"beyond int range backward", 1e-18, -50, step{Backward, 3}},
		{"infinite step count", 5e-324, 50, step{Forward, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, Config{DegreesPerStep: tt.degreesPerStep, Friction: 0.5, StopThreshold: 1e9, MaxFramesPerTick: 3})

			h.start(0)
			h.dragTo(tt.to, 10*time.Millisecond)

			require.Len(t, h.steps, 1)
			assert.Equal(t, tt.expected, h.steps[0])

			acc := h.engine.GetState().AccumulatedDegrees
			assert.False(t, math.IsNaN(acc) || math.IsInf(acc, 0), "accumulation stays finite")
		})
	}
}

func TestEngine_WrapAroundIsShortestPath(t *testing.T) {
	h := newHarness(t, Config{DegreesPerStep: 10, Friction: 0.5, StopThreshold: 1e9, MaxFramesPerTick: 100})

	h.start(170)
	h.dragTo(-170, 10*time.Millisecond) // 190°, crossing the atan2 seam

	require.Len(t, h.steps, 1)
	assert.Equal(t, Forward, h.steps[0].dir)
	assert.Equal(t, 2, h.steps[0].frames)
	assert.InDelta(t, 20, h.engine.GetState().Angle, 1e-6)
}

func TestNormalizeDelta(t *testing.T) {
	tests := []struct {
		in       float64
		expected float64
	}{
		{0, 0},
		{180, 180},
		{-180, 180},
		{190, -170},
		{-190, 170},
		{-340, 20},
		{359, -1},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.expected, normalizeDelta(tt.in), 1e-9, "delta %v", tt.in)
	}
}

func TestEngine_DragVelocity(t *testing.T) {
	h := newHarness(t, Config{DegreesPerStep: 100, Friction: 0.5, StopThreshold: 1, MaxFramesPerTick: 5})

	h.start(0)
	h.dragTo(30, 100*time.Millisecond)
	assert.InDelta(t, 300, h.engine.GetState().AngularVelocity, 1e-6)

	// A sample with no elapsed time keeps the previous velocity
	h.dragTo(40, 0)
	assert.InDelta(t, 300, h.engine.GetState().AngularVelocity, 1e-6)
}

func TestEngine_MomentumDecaysAndStops(t *testing.T) {
	h := newHarness(t, Config{DegreesPerStep: 10, Friction: 0.5, StopThreshold: 1, MaxFramesPerTick: 100})

	h.start(0)
	h.dragTo(30, 100*time.Millisecond) // 300°/s, 3 frames
	require.Len(t, h.steps, 1)

	h.engine.EndDrag()
	state := h.engine.GetState()
	assert.False(t, state.IsDragging)
	require.True(t, h.engine.Momentum())
	require.Equal(t, 1, h.scheduler.Pending())

	// First tick: 300*0.5 = 150°/s over 100ms = 15°
	require.True(t, h.scheduler.Advance(100*time.Millisecond))
	assert.InDelta(t, 150, h.engine.GetState().AngularVelocity, 1e-6)
	assert.InDelta(t, 45, h.engine.GetState().Angle, 1e-6)
	require.Len(t, h.steps, 2)
	assert.Equal(t, step{Forward, 1}, h.steps[1])

	ticks := 1
	for h.scheduler.Advance(100*time.Millisecond) && ticks < 100 {
		ticks++
	}

	assert.Less(t, ticks, 20, "momentum terminates")
	assert.Equal(t, 0.0, h.engine.GetState().AngularVelocity)
	assert.False(t, h.engine.Momentum())
	assert.Equal(t, 0, h.scheduler.Pending())
	assert.Greater(t, h.totalFrames(Forward), 3)
	assert.Zero(t, h.totalFrames(Backward))
}

func TestEngine_SlowReleaseGoesIdle(t *testing.T) {
	h := newHarness(t, Config{DegreesPerStep: 10, Friction: 0.5, StopThreshold: 50, MaxFramesPerTick: 5})

	h.start(0)
	h.dragTo(1, time.Second) // 1°/s

	h.engine.EndDrag()

	assert.False(t, h.engine.Momentum())
	assert.Equal(t, 0, h.scheduler.Pending())
	assert.False(t, h.engine.GetState().IsDragging)
}

func TestEngine_StartDragCancelsMomentum(t *testing.T) {
	h := newHarness(t, Config{DegreesPerStep: 10, Friction: 0.9, StopThreshold: 1, MaxFramesPerTick: 100})

	h.start(0)
	h.dragTo(30, 100*time.Millisecond)
	h.engine.EndDrag()
	require.True(t, h.engine.Momentum())

	h.start(90)
	assert.False(t, h.engine.Momentum())
	assert.Equal(t, 0, h.scheduler.Pending())
	assert.Equal(t, 0.0, h.engine.GetState().AngularVelocity)

	before := h.engine.GetState().Angle
	assert.False(t, h.scheduler.Advance(100*time.Millisecond))
	assert.Equal(t, before, h.engine.GetState().Angle, "no double integration")
}

func TestEngine_DragWithoutStartIsIgnored(t *testing.T) {
	h := newHarness(t, DefaultConfig())

	h.dragTo(90, 10*time.Millisecond)

	assert.Empty(t, h.steps)
	assert.Equal(t, State{}, h.engine.GetState())
}

func TestEngine_DisposeStopsEverything(t *testing.T) {
	h := newHarness(t, Config{DegreesPerStep: 10, Friction: 0.9, StopThreshold: 1, MaxFramesPerTick: 100})

	h.start(0)
	h.dragTo(30, 100*time.Millisecond)
	h.engine.EndDrag()
	stepsBefore := len(h.steps)

	h.engine.Dispose()
	h.engine.Dispose()

	assert.False(t, h.scheduler.Advance(100*time.Millisecond))

	h.start(0)
	h.dragTo(90, 10*time.Millisecond)
	h.engine.EndDrag()

	assert.Len(t, h.steps, stepsBefore)
	assert.False(t, h.engine.GetState().IsDragging)
}

func TestEngine_DisposeThenDragDoesNotStep(t *testing.T) {
	h := newHarness(t, Config{DegreesPerStep: 1, Friction: 0.5, StopThreshold: 1, MaxFramesPerTick: 5})

	h.start(0)
	h.engine.Dispose()
	h.dragTo(45, 10*time.Millisecond)

	assert.Empty(t, h.steps)
}

func TestEngine_SetConfigIgnoresInvalidValues(t *testing.T) {
	h := newHarness(t, DefaultConfig())

	zero := 0.0
	negative := -1.0
	tooMuchFriction := 1.5
	noFrames := 0
	valid := 30.0

	h.engine.SetConfig(PartialConfig{
		DegreesPerStep:   &zero,
		Friction:         &tooMuchFriction,
		MaxFramesPerTick: &noFrames,
		StopThreshold:    &negative,
	})
	assert.Equal(t, DefaultConfig(), h.engine.Config())

	infinite := math.Inf(1)
	h.engine.SetConfig(PartialConfig{DegreesPerStep: &infinite})
	assert.Equal(t, DefaultConfig(), h.engine.Config())

	h.engine.SetConfig(PartialConfig{StopThreshold: &valid})
	expected := DefaultConfig()
	expected.StopThreshold = 30
	assert.Equal(t, expected, h.engine.Config())
}

func TestEngine_SetOnStepReplacesCallback(t *testing.T) {
	h := newHarness(t, Config{DegreesPerStep: 10, Friction: 0.5, StopThreshold: 1e9, MaxFramesPerTick: 5})

	var replaced int
	h.engine.SetOnStep(func(Direction, int) { replaced++ })

	h.start(0)
	h.dragTo(20, 10*time.Millisecond)

	assert.Empty(t, h.steps)
	assert.Equal(t, 1, replaced)
}

func TestEngine_CallbackMayReenter(t *testing.T) {
	h := newHarness(t, Config{DegreesPerStep: 10, Friction: 0.5, StopThreshold: 1e9, MaxFramesPerTick: 5})

	var seen State
	h.engine.SetOnStep(func(Direction, int) {
		seen = h.engine.GetState()
	})

	h.start(0)
	h.dragTo(20, 10*time.Millisecond)

	assert.True(t, seen.IsDragging)
}

func TestPartialConfig(t *testing.T) {
	assert.True(t, PartialConfig{}.IsEmpty())
	full := DefaultConfig().Partial()
	assert.False(t, full.IsEmpty())

	merged, rejected := Config{}.merge(full)
	assert.Empty(t, rejected)
	assert.Equal(t, DefaultConfig(), merged)
}
