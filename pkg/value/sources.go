// Package value models the constant-or-randomized values used throughout
// particle configuration. A source is drawn from every time it is asked for a
// value; drawing never mutates the source, so one source can be shared by any
// number of particles and emitters.
//
// Vector and color sources accept an optional destination so hot paths can
// reuse a slot instead of allocating; the drawn value is always returned too.
package value

import (
	"math"

	"github.com/gonewx/particlefx/pkg/vmath"
)

// ScalarSource yields one scalar per draw.
type ScalarSource interface {
	Scalar() float64
}

// VectorSource yields one vector per draw. dst may be nil.
type VectorSource interface {
	Vector(dst *vmath.Vec3) vmath.Vec3
}

// ColorSource yields one color per draw. dst may be nil.
type ColorSource interface {
	Color(dst *vmath.RGB) vmath.RGB
}

// Scalar is a constant scalar source.
type Scalar float64

func (s Scalar) Scalar() float64 {
	return float64(s)
}

// Vector is a constant vector source.
type Vector vmath.Vec3

func (v Vector) Vector(dst *vmath.Vec3) vmath.Vec3 {
	out := vmath.Vec3(v)
	if dst != nil {
		*dst = out
	}
	return out
}

// Color is a constant color source.
type Color vmath.RGB

func (c Color) Color(dst *vmath.RGB) vmath.RGB {
	out := vmath.RGB(c)
	if dst != nil {
		*dst = out
	}
	return out
}

// ScalarRange draws uniformly from [Min, Max).
// Min >= Max degenerates to Min.
type ScalarRange struct {
	Min, Max float64
}

func (r ScalarRange) Scalar() float64 {
	return vmath.RandRange(r.Min, r.Max)
}

// VectorBox draws each axis independently from [Min.axis, Max.axis).
type VectorBox struct {
	Min, Max vmath.Vec3
}

func (b VectorBox) Vector(dst *vmath.Vec3) vmath.Vec3 {
	out := vmath.Vec3{
		X: vmath.RandRange(b.Min.X, b.Max.X),
		Y: vmath.RandRange(b.Min.Y, b.Max.Y),
		Z: vmath.RandRange(b.Min.Z, b.Max.Z),
	}
	if dst != nil {
		*dst = out
	}
	return out
}

// VectorSphere draws a vector with magnitude in [MinRadius, MaxRadius) and a
// uniformly sampled direction. The direction is sampled per axis in [-1, 1),
// optionally clamped per axis BEFORE normalization (which skews the
// distribution away from a pure sphere, e.g. into a cone or disc), then
// normalized and scaled by the magnitude. Scale, when set, multiplies the
// final vector component-wise.
type VectorSphere struct {
	MinRadius, MaxRadius float64

	// Optional per-axis clamp applied to the pre-normalized direction.
	ClampMin, ClampMax *vmath.Vec3

	// Optional component-wise multiplier applied last.
	Scale *vmath.Vec3
}

func (s VectorSphere) Vector(dst *vmath.Vec3) vmath.Vec3 {
	mag := vmath.RandRange(s.MinRadius, s.MaxRadius)
	dir := vmath.Vec3{
		X: vmath.RandRange(-1, 1),
		Y: vmath.RandRange(-1, 1),
		Z: vmath.RandRange(-1, 1),
	}
	if s.ClampMin != nil || s.ClampMax != nil {
		lo := vmath.Vec3{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
		hi := vmath.Vec3{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
		if s.ClampMin != nil {
			lo = *s.ClampMin
		}
		if s.ClampMax != nil {
			hi = *s.ClampMax
		}
		dir = dir.ClampAxes(lo, hi)
	}
	// A direction clamped to zero length stays zero rather than dividing
	// by zero; the draw then lands on the origin.
	out := dir.Normalize().Scale(mag)
	if s.Scale != nil {
		out = out.Mul(*s.Scale)
	}
	if dst != nil {
		*dst = out
	}
	return out
}

// ColorRange draws each channel independently from [Min.channel, Max.channel).
type ColorRange struct {
	Min, Max vmath.RGB
}

func (c ColorRange) Color(dst *vmath.RGB) vmath.RGB {
	out := vmath.RGB{
		R: vmath.RandRange(c.Min.R, c.Max.R),
		G: vmath.RandRange(c.Min.G, c.Max.G),
		B: vmath.RandRange(c.Min.B, c.Max.B),
	}
	if dst != nil {
		*dst = out
	}
	return out
}

// ScalarOr draws from src, or returns def when src is nil.
func ScalarOr(src ScalarSource, def float64) float64 {
	if src == nil {
		return def
	}
	return src.Scalar()
}

// VectorOr draws from src into dst, or returns the zero vector when src is nil.
func VectorOr(src VectorSource, dst *vmath.Vec3) vmath.Vec3 {
	if src == nil {
		if dst != nil {
			*dst = vmath.Vec3{}
		}
		return vmath.Vec3{}
	}
	return src.Vector(dst)
}

// ColorOr draws from src, or returns def when src is nil.
func ColorOr(src ColorSource, def vmath.RGB) vmath.RGB {
	if src == nil {
		return def
	}
	return src.Color(nil)
}
