package engine

import (
	"github.com/gonewx/particlefx/pkg/value"
	"github.com/gonewx/particlefx/pkg/vmath"
)

// Emitter turns time into spawn counts for the one system that owns it.
// Three policies compose: a one-time burst on the first update, an interval
// countdown that fires a quantity and re-arms, and a decay that scales the
// whole contribution down as the system runs out of lifetime.
type Emitter struct {
	cfg       EmitterConfig
	age       float64
	countdown float64
}

// newEmitter seeds the countdown at a random phase inside the first interval
// so emitters sharing an interval fire out of step with each other.
func newEmitter(cfg EmitterConfig) *Emitter {
	e := &Emitter{cfg: cfg}
	if cfg.Interval != nil {
		e.countdown = vmath.RandRange(0, 1) * cfg.Interval.Scalar()
	}
	return e
}

// update advances the emitter and returns how many particles to spawn this
// frame. remaining is the owning system's remaining lifetime, +Inf when the
// system is open-ended. The count is a real number; fractions matter to the
// decay scaling and are truncated by the caller.
func (e *Emitter) update(dt, remaining float64) float64 {
	var count float64
	if e.age == 0 {
		count += value.ScalarOr(e.cfg.Burst, 0)
	}
	e.age += dt

	if e.cfg.Interval == nil {
		return count
	}

	e.countdown -= dt
	if e.countdown <= 0 {
		e.countdown = e.cfg.Interval.Scalar()
		count += value.ScalarOr(e.cfg.Quantity, 0)
	}

	if e.cfg.DecayThreshold > 0 && remaining < e.cfg.DecayThreshold {
		f := remaining / e.cfg.DecayThreshold
		if f < 0 {
			f = 0
		}
		count *= f
	}
	return count
}
