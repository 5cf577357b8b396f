// Package engine implements a frame-driven particle system over a fixed pool:
// particles live in one backing array partitioned into an order-significant
// alive list (the index is the render slot) and a dead free list. A system
// owns its emitters and its attribute buffer and is driven from exactly one
// goroutine via Update.
package engine

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/gonewx/particlefx/pkg/vmath"
)

// State is the system lifecycle position.
type State int

const (
	// StateRunning systems simulate and spawn.
	StateRunning State = iota
	// StateExpired systems have used up their lifetime: no new spawns, live
	// particles still finish naturally.
	StateExpired
	// StateFinished systems are expired with nothing left alive. Terminal.
	StateFinished
)

// System is one particle system instance.
type System struct {
	cfg SystemConfig
	log *zap.SugaredLogger

	particles []Particle
	alive     []*Particle // index in this list == buffer slot
	dead      []*Particle
	emitters  []*Emitter
	buf       *Buffer

	speed          float64
	remaining      float64
	tracksLifetime bool
	finished       bool

	// Lifetime totals, for observability only.
	spawned  uint64
	recycled uint64

	// Feature flags derived once from the config.
	moves   bool
	rotates bool
	locked  bool

	worldPos vmath.Vec3
}

// New validates cfg, provisions only the attribute storage the configuration
// can ever write, and returns a system with a full dead pool.
func New(cfg SystemConfig) (*System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("particle system config: %w", err)
	}

	speed := cfg.Speed
	if speed == 0 {
		speed = 1
	}
	log := cfg.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	s := &System{
		cfg:            cfg,
		log:            log,
		particles:      make([]Particle, cfg.Capacity),
		alive:          make([]*Particle, 0, cfg.Capacity),
		dead:           make([]*Particle, 0, cfg.Capacity),
		speed:          speed,
		remaining:      cfg.Lifetime,
		tracksLifetime: cfg.Lifetime > 0,
		moves:          cfg.Particle.kinematic(),
		rotates:        cfg.Particle.Rotation.enabled(),
		locked:         cfg.Particle.LockToSystem,
	}

	pc := &cfg.Particle
	s.buf = newBuffer(cfg.Capacity,
		pc.Color.mode() != attrUnset,
		pc.Alpha.mode() != attrUnset,
		pc.Size.mode() != attrUnset,
		s.rotates)

	for i := range s.particles {
		s.particles[i].sys = s
		s.dead = append(s.dead, &s.particles[i])
	}
	for _, ec := range cfg.Emitters {
		s.emitters = append(s.emitters, newEmitter(ec))
	}
	return s, nil
}

// Update advances the whole system by dt seconds of wall time. A zero dt and
// a finished system are both no-ops.
func (s *System) Update(dt float64) {
	if dt == 0 || s.finished {
		return
	}

	// Lifetime burns in wall time; everything below runs in scaled time.
	if s.tracksLifetime {
		s.remaining -= dt
	}
	dt *= s.speed
	expired := s.tracksLifetime && s.remaining <= 0

	before := len(s.alive)

	if !expired {
		for _, e := range s.emitters {
			want := int(e.update(dt, s.remainingOrInf()))
			for n := 0; n < want; n++ {
				k := len(s.dead)
				if k == 0 {
					// Pool exhausted: drop the remainder silently.
					s.log.Debugw("spawn truncated at capacity",
						"capacity", s.cfg.Capacity, "dropped", want-n)
					break
				}
				p := s.dead[k-1]
				s.dead = s.dead[:k-1]
				p.reset()
				s.alive = append(s.alive, p)
				s.spawned++
			}
		}
	}

	// Reverse order so an order-preserving removal only shifts slots that
	// already ran this frame.
	for i := len(s.alive) - 1; i >= 0; i-- {
		p := s.alive[i]
		p.update(i, dt)
		if p.finished {
			copy(s.alive[i:], s.alive[i+1:])
			s.alive = s.alive[:len(s.alive)-1]
			s.dead = append(s.dead, p)
			s.recycled++
		}
	}

	if len(s.alive) != before {
		s.buf.setActive(len(s.alive))
	}

	if expired && len(s.alive) == 0 {
		s.finished = true
		s.log.Debugw("particle system finished")
		if s.cfg.OnFinish != nil {
			s.cfg.OnFinish(s)
		}
		return
	}
	if s.cfg.OnUpdate != nil {
		s.cfg.OnUpdate(s)
	}
}

// Stop forces the remaining lifetime to zero: no further spawns, live
// particles finish naturally, then the system reports finished. Works on
// open-ended systems too.
func (s *System) Stop() {
	s.tracksLifetime = true
	s.remaining = 0
	s.log.Debugw("particle system stopping")
}

func (s *System) remainingOrInf() float64 {
	if !s.tracksLifetime {
		return math.Inf(1)
	}
	return s.remaining
}

// State reports where the system is in its lifecycle.
func (s *System) State() State {
	switch {
	case s.finished:
		return StateFinished
	case s.tracksLifetime && s.remaining <= 0:
		return StateExpired
	default:
		return StateRunning
	}
}

// Finished reports the terminal state.
func (s *System) Finished() bool {
	return s.finished
}

// Alive returns the live particle count.
func (s *System) Alive() int {
	return len(s.alive)
}

// Dead returns the free-pool size. Alive() + Dead() always equals Capacity().
func (s *System) Dead() int {
	return len(s.dead)
}

// Capacity returns the fixed pool size.
func (s *System) Capacity() int {
	return s.cfg.Capacity
}

// Remaining returns the remaining lifetime in seconds; +Inf for open-ended
// systems.
func (s *System) Remaining() float64 {
	return s.remainingOrInf()
}

// TotalSpawned returns how many particle lives the system has started.
func (s *System) TotalSpawned() uint64 {
	return s.spawned
}

// TotalRecycled returns how many particle lives have ended and gone back to
// the free pool.
func (s *System) TotalRecycled() uint64 {
	return s.recycled
}

// Buffer exposes the attribute arrays for a renderer.
func (s *System) Buffer() *Buffer {
	return s.buf
}

// SetWorldPos moves the system in world space. Buffer positions stay
// system-local; renderers compose them with this, and world-locked particles
// use it to cancel the motion.
func (s *System) SetWorldPos(v vmath.Vec3) {
	s.worldPos = v
}

// WorldPos returns the system's world-space position.
func (s *System) WorldPos() vmath.Vec3 {
	return s.worldPos
}

// SetSpeed changes the simulation speed factor for subsequent updates.
// Non-positive values are ignored.
func (s *System) SetSpeed(f float64) {
	if f > 0 {
		s.speed = f
	}
}

// Speed returns the current simulation speed factor.
func (s *System) Speed() float64 {
	return s.speed
}
