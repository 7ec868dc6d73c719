package jogdial

import "math"

// Config tunes the dial. Smaller DegreesPerStep makes the dial more sensitive.
type Config struct {
	DegreesPerStep   float64 `json:"degrees_per_step"`
	Friction         float64 `json:"friction"`            // velocity multiplier per momentum tick, in (0,1)
	MaxFramesPerTick int     `json:"max_frames_per_tick"` // cap on frames emitted by one drag sample or tick
	StopThreshold    float64 `json:"stop_threshold"`      // degrees/second below which momentum stops
}

// DefaultConfig returns the configuration used when the caller sets nothing.
func DefaultConfig() Config {
	return Config{
		DegreesPerStep:   15,
		Friction:         0.92,
		MaxFramesPerTick: 5,
		StopThreshold:    20,
	}
}

// PartialConfig carries the fields to change in SetConfig. Nil fields are left alone.
type PartialConfig struct {
	DegreesPerStep   *float64 `json:"degrees_per_step,omitempty"`
	Friction         *float64 `json:"friction,omitempty"`
	MaxFramesPerTick *int     `json:"max_frames_per_tick,omitempty"`
	StopThreshold    *float64 `json:"stop_threshold,omitempty"`
}

// Partial converts a full config into a partial that sets every field.
func (c Config) Partial() PartialConfig {
	return PartialConfig{
		DegreesPerStep:   &c.DegreesPerStep,
		Friction:         &c.Friction,
		MaxFramesPerTick: &c.MaxFramesPerTick,
		StopThreshold:    &c.StopThreshold,
	}
}

// IsEmpty reports whether the partial changes nothing.
func (p PartialConfig) IsEmpty() bool {
	return p.DegreesPerStep == nil && p.Friction == nil && p.MaxFramesPerTick == nil && p.StopThreshold == nil
}

// merge applies p onto c. Out-of-range values are skipped and reported by field name.
func (c Config) merge(p PartialConfig) (Config, []string) {
	var rejected []string

	if p.DegreesPerStep != nil {
		if *p.DegreesPerStep > 0 && !math.IsInf(*p.DegreesPerStep, 1) {
			c.DegreesPerStep = *p.DegreesPerStep
		} else {
			rejected = append(rejected, "degrees_per_step")
		}
	}
	if p.Friction != nil {
		if *p.Friction > 0 && *p.Friction < 1 {
			c.Friction = *p.Friction
		} else {
			rejected = append(rejected, "friction")
		}
	}
	if p.MaxFramesPerTick != nil {
		if *p.MaxFramesPerTick >= 1 {
			c.MaxFramesPerTick = *p.MaxFramesPerTick
		} else {
			rejected = append(rejected, "max_frames_per_tick")
		}
	}
	if p.StopThreshold != nil {
		if *p.StopThreshold >= 0 {
			c.StopThreshold = *p.StopThreshold
		} else {
			rejected = append(rejected, "stop_threshold")
		}
	}

	return c, rejected
}
