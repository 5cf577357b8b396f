package engine

import (
	"testing"

	"github.com/gonewx/particlefx/pkg/value"
	"github.com/gonewx/particlefx/pkg/vmath"
)

// newTestSystem builds a system and hands back its first pooled particle so
// lifecycle steps can be driven directly.
func newTestSystem(t *testing.T, cfg SystemConfig) (*System, *Particle) {
	t.Helper()
	if cfg.Capacity == 0 {
		cfg.Capacity = 1
	}
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return s, &s.particles[0]
}

// TestParticle_AgeMonotonic verifies age never decreases within one life,
// stays in [0, 1], and returns to 0 on reset.
func TestParticle_AgeMonotonic(t *testing.T) {
	cfg := SystemConfig{}
	cfg.Particle.TTL = value.Scalar(1.3)
	_, p := newTestSystem(t, cfg)

	p.reset()
	prev := p.Age
	for i := 0; i < 50 && !p.Finished(); i++ {
		p.update(0, 0.1)
		if p.Age < prev {
			t.Fatalf("Age decreased from %v to %v on update %d", prev, p.Age, i+1)
		}
		if p.Age < 0 || p.Age > 1 {
			t.Fatalf("Age %v escaped [0, 1] on update %d", p.Age, i+1)
		}
		prev = p.Age
	}
	if !p.Finished() {
		t.Fatal("Particle never finished")
	}

	p.reset()
	if p.Age != 0 {
		t.Errorf("Age after reset = %v, expected 0", p.Age)
	}
	if p.Finished() {
		t.Error("Finished flag survived reset")
	}
}

// TestParticle_FinishesExactly verifies a ttl of 2.0 driven at dt 0.5
// finishes on exactly the fourth update.
func TestParticle_FinishesExactly(t *testing.T) {
	cfg := SystemConfig{}
	cfg.Particle.TTL = value.Scalar(2.0)
	_, p := newTestSystem(t, cfg)

	p.reset()
	for i := 1; i <= 4; i++ {
		if p.Finished() {
			t.Fatalf("Finished early, before update %d", i)
		}
		p.update(0, 0.5)
	}
	if !p.Finished() {
		t.Error("Expected finished after exactly 4 updates")
	}
	if p.Age != 1 {
		t.Errorf("Terminal age = %v, expected 1", p.Age)
	}
}

// TestParticle_ConstantAlpha verifies a constant alpha of 0.7 is reported
// from the very first update and never changes afterwards.
func TestParticle_ConstantAlpha(t *testing.T) {
	cfg := SystemConfig{}
	cfg.Particle.TTL = value.Scalar(10)
	cfg.Particle.Alpha = ScalarAttr{Value: value.Scalar(0.7)}
	s, p := newTestSystem(t, cfg)

	p.reset()
	p.update(0, 0.1)
	if got := s.Buffer().Alphas()[0]; got != 0.7 {
		t.Fatalf("Alpha after first update = %v, expected 0.7", got)
	}
	for i := 0; i < 20; i++ {
		p.update(0, 0.1)
		if got := s.Buffer().Alphas()[0]; got != 0.7 {
			t.Fatalf("Alpha drifted to %v on update %d", got, i+2)
		}
	}
}

// TestParticle_AlphaTracksAge verifies the zero-threshold 0→1 animation
// pushes alpha equal to the pre-advance age, exactly.
func TestParticle_AlphaTracksAge(t *testing.T) {
	cfg := SystemConfig{}
	cfg.Particle.TTL = value.Scalar(2.0)
	cfg.Particle.Alpha = ScalarAttr{Start: value.Scalar(0), End: value.Scalar(1)}
	s, p := newTestSystem(t, cfg)

	p.reset()
	p.update(0, 0.25)
	if got := s.Buffer().Alphas()[0]; got != 0 {
		t.Fatalf("First update pushed %v, expected the start value 0", got)
	}
	for !p.Finished() {
		preAge := p.Age
		p.update(0, 0.25)
		if got := s.Buffer().Alphas()[0]; got != float32(preAge) {
			t.Fatalf("Alpha = %v at pre-advance age %v, expected them equal", got, preAge)
		}
	}
}

// TestParticle_ThresholdActivation verifies an animation configured to start
// 1 second into a 2 second life stays at its start value until age 0.5 and
// then interpolates over the remaining range.
func TestParticle_ThresholdActivation(t *testing.T) {
	cfg := SystemConfig{}
	cfg.Particle.TTL = value.Scalar(2.0)
	cfg.Particle.Alpha = ScalarAttr{
		Start:     value.Scalar(1),
		End:       value.Scalar(0),
		Threshold: 1.0,
	}
	s, p := newTestSystem(t, cfg)

	p.reset()
	// Ages advance in steps of 0.125.
	for i := 0; i < 4; i++ {
		p.update(0, 0.25)
		if got := s.Buffer().Alphas()[0]; got != 1 {
			t.Fatalf("Alpha = %v before the threshold (update %d), expected 1", got, i+1)
		}
	}
	// Pre-advance age 0.5: factor 0, still at start.
	p.update(0, 0.25)
	if got := s.Buffer().Alphas()[0]; got != 1 {
		t.Fatalf("Alpha = %v at the threshold, expected 1", got)
	}
	// Pre-advance age 0.625: factor (0.625-0.5)/0.5 = 0.25.
	p.update(0, 0.25)
	if got := s.Buffer().Alphas()[0]; got != 0.75 {
		t.Errorf("Alpha = %v past the threshold, expected 0.75", got)
	}
}

// TestParticle_KinematicsOrder verifies gravity lands before the position
// step and acceleration after it: acceleration must not move the particle on
// the update that applies it.
func TestParticle_KinematicsOrder(t *testing.T) {
	cfg := SystemConfig{}
	cfg.Particle.TTL = value.Scalar(100)
	cfg.Particle.GravityY = value.Scalar(10)
	cfg.Particle.Acceleration = value.Vector(vmath.Vec3{X: 6})
	_, p := newTestSystem(t, cfg)

	p.reset()
	p.update(0, 0.5)
	// Gravity: v.Y = 5, position.Y = 2.5. Acceleration applied after the
	// position step: v.X = 3 but position.X still 0.
	if p.Position.Y != 2.5 {
		t.Errorf("Position.Y after update 1 = %v, expected 2.5", p.Position.Y)
	}
	if p.Position.X != 0 {
		t.Errorf("Position.X after update 1 = %v, expected 0 (acceleration integrates after the position step)", p.Position.X)
	}
	if p.Velocity.X != 3 {
		t.Errorf("Velocity.X after update 1 = %v, expected 3", p.Velocity.X)
	}

	p.update(0, 0.5)
	if p.Position.X != 1.5 {
		t.Errorf("Position.X after update 2 = %v, expected 1.5", p.Position.X)
	}
	if p.Position.Y != 7.5 {
		t.Errorf("Position.Y after update 2 = %v, expected 7.5", p.Position.Y)
	}
}

// TestParticle_RotationIntegrates verifies rotation advances by speed*dt on
// every update including the birth frame, and is re-pushed each time.
func TestParticle_RotationIntegrates(t *testing.T) {
	cfg := SystemConfig{}
	cfg.Particle.TTL = value.Scalar(100)
	cfg.Particle.Rotation = RotationConfig{
		Start: value.Scalar(1),
		Speed: value.Scalar(2),
	}
	s, p := newTestSystem(t, cfg)

	p.reset()
	if p.Rotation != 1 {
		t.Fatalf("Rotation after reset = %v, expected 1", p.Rotation)
	}
	p.update(0, 0.5)
	if p.Rotation != 2 {
		t.Errorf("Rotation after update 1 = %v, expected 2", p.Rotation)
	}
	if got := s.Buffer().Rotations()[0]; got != 2 {
		t.Errorf("Pushed rotation = %v, expected 2", got)
	}
	p.update(0, 0.5)
	if got := s.Buffer().Rotations()[0]; got != 3 {
		t.Errorf("Pushed rotation after update 2 = %v, expected 3", got)
	}
}

// TestParticle_TTLDefaults verifies unset and non-positive ttl resolutions
// fall back to 1 second.
func TestParticle_TTLDefaults(t *testing.T) {
	cfg := SystemConfig{}
	_, p := newTestSystem(t, cfg)
	p.reset()
	if p.TTL != 1 {
		t.Errorf("Unset ttl resolved to %v, expected 1", p.TTL)
	}

	cfg2 := SystemConfig{}
	cfg2.Particle.TTL = value.Scalar(2)
	cfg2.Particle.TTLSpread = value.Scalar(-5)
	_, p2 := newTestSystem(t, cfg2)
	p2.reset()
	if p2.TTL != 1 {
		t.Errorf("Non-positive ttl resolved to %v, expected 1", p2.TTL)
	}
}

// TestParticle_TTLSpread verifies the spread draw adds onto the base draw.
func TestParticle_TTLSpread(t *testing.T) {
	cfg := SystemConfig{}
	cfg.Particle.TTL = value.Scalar(2)
	cfg.Particle.TTLSpread = value.ScalarRange{Min: 1, Max: 3}
	_, p := newTestSystem(t, cfg)

	for i := 0; i < 100; i++ {
		p.reset()
		if p.TTL < 3 || p.TTL >= 5 {
			t.Fatalf("ttl = %v, expected [3, 5)", p.TTL)
		}
	}
}

// TestParticle_ResetIndependence verifies two back-to-back resets produce two
// independently drawn, fully re-initialized lives.
func TestParticle_ResetIndependence(t *testing.T) {
	cfg := SystemConfig{}
	cfg.Particle.TTL = value.ScalarRange{Min: 10, Max: 20}
	cfg.Particle.Offset = value.VectorBox{
		Min: vmath.Vec3{X: -100},
		Max: vmath.Vec3{X: 100},
	}
	_, p := newTestSystem(t, cfg)

	p.reset()
	p.update(0, 1)
	firstTTL, firstX, firstAge := p.TTL, p.Position.X, p.Age

	p.reset()
	if p.Age != 0 {
		t.Errorf("Age after second reset = %v, expected 0", p.Age)
	}
	if p.TTL < 10 || p.TTL >= 20 {
		t.Errorf("Second ttl draw = %v, out of [10, 20)", p.TTL)
	}
	if firstTTL < 10 || firstTTL >= 20 {
		t.Errorf("First ttl draw = %v, out of [10, 20)", firstTTL)
	}
	if p.Position.X == firstX && p.TTL == firstTTL {
		t.Error("Second reset repeated the first draw exactly; draws should be independent")
	}
	if firstAge == 0 {
		t.Error("First life never aged; test drove no update")
	}
}

// TestParticle_OnSpawnHook verifies the spawn hook runs at the end of every
// reset and can override resolved state before the first update.
func TestParticle_OnSpawnHook(t *testing.T) {
	spawns := 0
	cfg := SystemConfig{}
	cfg.Particle.TTL = value.Scalar(5)
	cfg.Particle.OnSpawn = func(p *Particle) {
		spawns++
		p.Position = vmath.Vec3{X: 42}
	}
	_, p := newTestSystem(t, cfg)

	p.reset()
	p.reset()
	if spawns != 2 {
		t.Errorf("OnSpawn fired %d times across two resets, expected 2", spawns)
	}
	if p.Position.X != 42 {
		t.Errorf("Position.X = %v, expected the hook's override 42", p.Position.X)
	}
}

// TestParticle_CallbackRunsLast verifies the per-particle callback sees the
// post-advance age and can steer the finished flag through it.
func TestParticle_CallbackRunsLast(t *testing.T) {
	var seen []float64
	cfg := SystemConfig{}
	cfg.Particle.TTL = value.Scalar(1)
	cfg.Particle.OnUpdate = func(p *Particle) {
		seen = append(seen, p.Age)
	}
	_, p := newTestSystem(t, cfg)

	p.reset()
	p.update(0, 0.25)
	if len(seen) != 1 || seen[0] != 0.25 {
		t.Fatalf("Callback saw %v, expected the post-advance age 0.25", seen)
	}

	// A callback pinning age below 1 keeps the particle alive.
	cfg2 := SystemConfig{}
	cfg2.Particle.TTL = value.Scalar(1)
	cfg2.Particle.OnUpdate = func(p *Particle) {
		if p.Age > 0.5 {
			p.Age = 0.5
		}
	}
	_, p2 := newTestSystem(t, cfg2)
	p2.reset()
	for i := 0; i < 40; i++ {
		p2.update(0, 0.25)
	}
	if p2.Finished() {
		t.Error("Callback-pinned particle finished; age manipulation should hold it alive")
	}

	// And one raising age forces an immediate finish.
	cfg3 := SystemConfig{}
	cfg3.Particle.TTL = value.Scalar(100)
	cfg3.Particle.OnUpdate = func(p *Particle) {
		p.Age = 2
	}
	_, p3 := newTestSystem(t, cfg3)
	p3.reset()
	p3.update(0, 0.01)
	if !p3.Finished() {
		t.Error("Callback-raised age did not finish the particle")
	}
	if p3.Age != 1 {
		t.Errorf("Terminal age = %v, expected the clamp to 1", p3.Age)
	}
}
