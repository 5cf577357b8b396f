package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gonewx/particlefx/pkg/value"
	"github.com/gonewx/particlefx/pkg/vmath"
)

// attrMode classifies how an animatable attribute is configured.
type attrMode int

const (
	attrUnset    attrMode = iota // attribute not used, no storage provisioned
	attrConstant                 // single value drawn at reset
	attrAnimated                 // start/end drawn at reset, interpolated over age
)

// ScalarAttr configures one scalar attribute (alpha or size) in
// constant-or-animated form. Exactly one form may be used: either Value, or
// the Start/End pair. Threshold is the point in the particle's life, in
// seconds, at which the animation starts; it is normalized against the
// resolved ttl at reset. A nil Easing interpolates linearly.
type ScalarAttr struct {
	Value     value.ScalarSource
	Start     value.ScalarSource
	End       value.ScalarSource
	Threshold float64
	Easing    vmath.Easing
}

func (a ScalarAttr) mode() attrMode {
	switch {
	case a.Value != nil:
		return attrConstant
	case a.Start != nil && a.End != nil:
		return attrAnimated
	default:
		return attrUnset
	}
}

func (a ScalarAttr) validate(name string) error {
	if a.Value != nil && (a.Start != nil || a.End != nil) {
		return fmt.Errorf("%s: constant and animated forms are mutually exclusive", name)
	}
	if a.Start != nil && a.End == nil {
		return fmt.Errorf("%s: start value requires an end value", name)
	}
	return nil
}

// ColorAttr is the color counterpart of ScalarAttr.
type ColorAttr struct {
	Value     value.ColorSource
	Start     value.ColorSource
	End       value.ColorSource
	Threshold float64
	Easing    vmath.Easing
}

func (a ColorAttr) mode() attrMode {
	switch {
	case a.Value != nil:
		return attrConstant
	case a.Start != nil && a.End != nil:
		return attrAnimated
	default:
		return attrUnset
	}
}

func (a ColorAttr) validate(name string) error {
	if a.Value != nil && (a.Start != nil || a.End != nil) {
		return fmt.Errorf("%s: constant and animated forms are mutually exclusive", name)
	}
	if a.Start != nil && a.End == nil {
		return fmt.Errorf("%s: start value requires an end value", name)
	}
	return nil
}

// RotationConfig enables per-particle rotation when either field is set.
// Angles are radians, speed is radians per second.
type RotationConfig struct {
	Start value.ScalarSource
	Speed value.ScalarSource
}

func (r RotationConfig) enabled() bool {
	return r.Start != nil || r.Speed != nil
}

// ParticleConfig describes how every particle of a system is born and
// animated. Sources are drawn from at each reset; the config itself is never
// mutated by the simulation.
type ParticleConfig struct {
	// TTL is the base lifetime in seconds; the draw of TTLSpread is added on
	// top. A resolved value <= 0 (including both unset) defaults to 1.
	TTL       value.ScalarSource
	TTLSpread value.ScalarSource

	// Offset is the initial system-local position.
	Offset value.VectorSource

	// Velocity plus VelocityBonus form the initial velocity. Acceleration is
	// applied after position integration each step; gravity components before
	// it. Kinematics run only when at least one of these is set.
	Velocity      value.VectorSource
	VelocityBonus value.VectorSource
	Acceleration  value.VectorSource
	GravityX      value.ScalarSource
	GravityY      value.ScalarSource
	GravityZ      value.ScalarSource

	Alpha    ScalarAttr
	Size     ScalarAttr
	Color    ColorAttr
	Rotation RotationConfig

	// LockToSystem pins the rendered world position of each particle to the
	// spot where it was born, cancelling system motion.
	LockToSystem bool

	// OnSpawn, when set, runs right after a particle is reset for a new
	// life; OnUpdate runs for every live particle at the end of its
	// simulation step. Both may mutate the particle's exported fields; pool
	// membership stays with the system.
	OnSpawn  func(*Particle)
	OnUpdate func(*Particle)
}

func (c *ParticleConfig) kinematic() bool {
	return c.Velocity != nil || c.VelocityBonus != nil || c.Acceleration != nil ||
		c.GravityX != nil || c.GravityY != nil || c.GravityZ != nil
}

// EmitterConfig describes one spawn schedule.
type EmitterConfig struct {
	// Burst is a one-time quantity added on the emitter's first update.
	Burst value.ScalarSource

	// Interval is the countdown length, re-drawn after every firing.
	// Quantity is re-drawn per firing as well. With no Interval the emitter
	// only ever contributes its burst.
	Interval value.ScalarSource
	Quantity value.ScalarSource

	// DecayThreshold scales spawn counts down linearly once the owning
	// system's remaining lifetime sinks below it. Seconds; 0 disables decay.
	DecayThreshold float64
}

// SystemConfig configures one particle system.
type SystemConfig struct {
	// Capacity is the fixed pool size. Must be positive.
	Capacity int

	// Lifetime in seconds; 0 keeps the system open-ended.
	Lifetime float64

	// Speed scales simulation time (not the lifetime countdown); 0 means 1.
	Speed float64

	Particle ParticleConfig
	Emitters []EmitterConfig

	// OnUpdate fires at the end of every non-terminal update, OnFinish once
	// when the system reaches its finished state.
	OnUpdate func(*System)
	OnFinish func(*System)

	// Log receives engine events; nil selects a nop logger.
	Log *zap.SugaredLogger
}

// Validate rejects ambiguous configuration before any pool is built.
func (c SystemConfig) Validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("capacity must be positive, got %d", c.Capacity)
	}
	if err := c.Particle.Alpha.validate("alpha"); err != nil {
		return err
	}
	if err := c.Particle.Size.validate("size"); err != nil {
		return err
	}
	if err := c.Particle.Color.validate("color"); err != nil {
		return err
	}
	return nil
}
