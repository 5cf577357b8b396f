package engine

import (
	"github.com/gonewx/particlefx/pkg/value"
	"github.com/gonewx/particlefx/pkg/vmath"
)

// animState carries what constant and animated attributes share once
// resolved for a life: the mode, the threshold already normalized into age
// space, and the easing curve.
type animState struct {
	mode      attrMode
	threshold float64
	easing    vmath.Easing
}

// factor maps the pre-advance age onto the interpolation factor. A threshold
// at or past the end of life pins the factor at 0 so the attribute never
// leaves its start value.
func (a *animState) factor(age float64) float64 {
	if a.threshold >= 1 {
		return 0
	}
	f := age
	if a.threshold > 0 {
		f = (age - a.threshold) / (1 - a.threshold)
	}
	f = vmath.Clamp01(f)
	if a.easing != nil {
		f = a.easing(f)
	}
	return f
}

type scalarAnim struct {
	animState
	val        float64
	start, end float64
}

func (a *scalarAnim) at(age float64) float64 {
	return vmath.Lerp(a.start, a.end, a.factor(age))
}

type colorAnim struct {
	animState
	val        vmath.RGB
	start, end vmath.RGB
}

func (a *colorAnim) at(age float64) vmath.RGB {
	return vmath.LerpRGB(a.start, a.end, a.factor(age))
}

// Particle is one pooled particle. Its zero value is unborn; reset gives it a
// fresh life, update advances it by one step. Exported fields are open to
// per-particle callbacks; pool membership is owned by the System and moves
// only on the finished flag.
type Particle struct {
	// Age is the normalized life position in [0, 1].
	Age float64

	// TTL is the resolved lifetime in seconds, always > 0.
	TTL float64

	// Position is system-local. Velocity, Gravity and Acceleration drive the
	// kinematic step; Rotation advances by RotationSpeed each second.
	Position      vmath.Vec3
	Velocity      vmath.Vec3
	Gravity       vmath.Vec3
	Acceleration  vmath.Vec3
	Rotation      float64
	RotationSpeed float64

	alpha scalarAnim
	size  scalarAnim
	color colorAnim

	anchor    vmath.Vec3
	hasAnchor bool
	finished  bool

	// scratch holds the world-lock correction so the stored local position is
	// never disturbed and no step allocates.
	scratch vmath.Vec3

	sys *System
}

// Finished reports whether this life has ended.
func (p *Particle) Finished() bool {
	return p.finished
}

func resolveScalar(a ScalarAttr, ttl float64) scalarAnim {
	r := scalarAnim{animState: animState{mode: a.mode(), easing: a.Easing}}
	switch r.mode {
	case attrConstant:
		r.val = a.Value.Scalar()
	case attrAnimated:
		r.start = a.Start.Scalar()
		r.end = a.End.Scalar()
		r.threshold = a.Threshold / ttl
	}
	return r
}

func resolveColor(a ColorAttr, ttl float64) colorAnim {
	r := colorAnim{animState: animState{mode: a.mode(), easing: a.Easing}}
	switch r.mode {
	case attrConstant:
		r.val = a.Value.Color(nil)
	case attrAnimated:
		r.start = a.Start.Color(nil)
		r.end = a.End.Color(nil)
		r.threshold = a.Threshold / ttl
	}
	return r
}

// reset re-derives the whole particle from the system's configuration with
// fresh draws. Idempotent: any number of calls each yield an independent,
// fully initialized life.
func (p *Particle) reset() {
	cfg := &p.sys.cfg.Particle

	p.Age = 0
	p.finished = false

	ttl := value.ScalarOr(cfg.TTL, 0) + value.ScalarOr(cfg.TTLSpread, 0)
	if ttl <= 0 {
		ttl = 1
	}
	p.TTL = ttl

	value.VectorOr(cfg.Offset, &p.Position)
	value.VectorOr(cfg.Velocity, &p.Velocity)
	if cfg.VelocityBonus != nil {
		p.Velocity = p.Velocity.Add(cfg.VelocityBonus.Vector(&p.scratch))
	}
	value.VectorOr(cfg.Acceleration, &p.Acceleration)
	p.Gravity = vmath.Vec3{
		X: value.ScalarOr(cfg.GravityX, 0),
		Y: value.ScalarOr(cfg.GravityY, 0),
		Z: value.ScalarOr(cfg.GravityZ, 0),
	}

	p.alpha = resolveScalar(cfg.Alpha, ttl)
	p.size = resolveScalar(cfg.Size, ttl)
	p.color = resolveColor(cfg.Color, ttl)

	p.Rotation = value.ScalarOr(cfg.Rotation.Start, 0)
	p.RotationSpeed = value.ScalarOr(cfg.Rotation.Speed, 0)

	p.anchor = vmath.Vec3{}
	p.hasAnchor = false

	if cb := cfg.OnSpawn; cb != nil {
		cb(p)
	}
}

// update advances the particle by dt (already speed-scaled) and writes its
// state into the buffer at slot. All animation decisions use the age as it
// was before this step's advance.
func (p *Particle) update(slot int, dt float64) {
	if p.finished {
		return
	}
	sys := p.sys
	buf := sys.buf

	if p.Age == 0 {
		// Birth frame: commit initial state.
		if sys.locked {
			p.anchor = sys.worldPos
			p.hasAnchor = true
		}
		switch p.alpha.mode {
		case attrConstant:
			buf.SetAlpha(slot, p.alpha.val)
		case attrAnimated:
			buf.SetAlpha(slot, p.alpha.start)
		}
		switch p.size.mode {
		case attrConstant:
			buf.SetSize(slot, p.size.val)
		case attrAnimated:
			buf.SetSize(slot, p.size.start)
		}
		switch p.color.mode {
		case attrConstant:
			buf.SetColor(slot, p.color.val)
		case attrAnimated:
			buf.SetColor(slot, p.color.start)
		}
		if sys.rotates {
			buf.SetRotation(slot, p.Rotation)
		}
	} else {
		if p.alpha.mode == attrAnimated && p.Age >= p.alpha.threshold {
			buf.SetAlpha(slot, p.alpha.at(p.Age))
		}
		if p.size.mode == attrAnimated && p.Age >= p.size.threshold {
			buf.SetSize(slot, p.size.at(p.Age))
		}
		if p.color.mode == attrAnimated && p.Age >= p.color.threshold {
			buf.SetColor(slot, p.color.at(p.Age))
		}
	}

	// Rotation has no threshold: it integrates and re-pushes every step.
	if sys.rotates {
		p.Rotation += p.RotationSpeed * dt
		buf.SetRotation(slot, p.Rotation)
	}

	if sys.moves {
		p.Velocity.X += p.Gravity.X * dt
		p.Velocity.Y += p.Gravity.Y * dt
		p.Velocity.Z += p.Gravity.Z * dt
		p.Position = p.Position.Add(p.Velocity.Scale(dt))
		// Acceleration lands after the position step.
		p.Velocity = p.Velocity.Add(p.Acceleration.Scale(dt))
	}

	pos := p.Position
	if p.hasAnchor {
		// Cancel system motion since birth; local position stays untouched.
		p.scratch = sys.worldPos.Sub(p.anchor)
		pos = p.Position.Sub(p.scratch)
	}
	buf.SetPosition(slot, pos)

	p.Age += dt / p.TTL

	if cb := sys.cfg.Particle.OnUpdate; cb != nil {
		cb(p)
	}

	if p.Age >= 1 {
		p.Age = 1
		p.finished = true
	}
}
