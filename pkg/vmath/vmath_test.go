package vmath

import (
	"math"
	"testing"
)

// TestLerp verifies endpoint and midpoint interpolation.
func TestLerp(t *testing.T) {
	tests := []struct {
		name     string
		a, b, t  float64
		expected float64
	}{
		{"start", 2, 6, 0, 2},
		{"end", 2, 6, 1, 6},
		{"midpoint", 2, 6, 0.5, 4},
		{"descending", 6, 2, 0.25, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lerp(tt.a, tt.b, tt.t)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Lerp(%v, %v, %v) = %v, expected %v", tt.a, tt.b, tt.t, got, tt.expected)
			}
		})
	}
}

// TestRandRange_Bounds verifies draws stay inside the half-open range.
func TestRandRange_Bounds(t *testing.T) {
	for i := 0; i < 1000; i++ {
		v := RandRange(-2.5, 3.5)
		if v < -2.5 || v >= 3.5 {
			t.Fatalf("RandRange(-2.5, 3.5) = %v, out of range", v)
		}
	}
}

// TestRandRange_ZeroSpread verifies a degenerate range returns min, not an
// error or a bogus draw.
func TestRandRange_ZeroSpread(t *testing.T) {
	if got := RandRange(4, 4); got != 4 {
		t.Errorf("RandRange(4, 4) = %v, expected 4", got)
	}
	if got := RandRange(7, 3); got != 7 {
		t.Errorf("RandRange(7, 3) = %v, expected 7", got)
	}
}

// TestVec3_Normalize verifies unit scaling and the zero-vector guard.
func TestVec3_Normalize(t *testing.T) {
	n := Vec3{3, 0, 4}.Normalize()
	if math.Abs(n.Len()-1) > 1e-9 {
		t.Errorf("Normalize length = %v, expected 1", n.Len())
	}
	if math.Abs(n.X-0.6) > 1e-9 || math.Abs(n.Z-0.8) > 1e-9 {
		t.Errorf("Normalize direction = %+v, expected (0.6, 0, 0.8)", n)
	}

	z := Vec3{}.Normalize()
	if z != (Vec3{}) {
		t.Errorf("Normalize of zero vector = %+v, expected zero", z)
	}
}

// TestVec3_ClampAxes verifies per-axis clamping.
func TestVec3_ClampAxes(t *testing.T) {
	got := Vec3{-2, 0.5, 9}.ClampAxes(Vec3{-1, -1, -1}, Vec3{1, 1, 1})
	want := Vec3{-1, 0.5, 1}
	if got != want {
		t.Errorf("ClampAxes = %+v, expected %+v", got, want)
	}
}

// TestEasing_Endpoints verifies every curve is anchored at (0,0) and (1,1).
func TestEasing_Endpoints(t *testing.T) {
	curves := map[string]Easing{
		"linear":    EaseLinear,
		"easeIn":    EaseInQuad,
		"easeOut":   EaseOutQuad,
		"easeInOut": EaseInOutCubic,
		"smooth":    SmoothStep,
	}
	for name, fn := range curves {
		if got := fn(0); math.Abs(got) > 1e-9 {
			t.Errorf("%s(0) = %v, expected 0", name, got)
		}
		if got := fn(1); math.Abs(got-1) > 1e-9 {
			t.Errorf("%s(1) = %v, expected 1", name, got)
		}
	}
}

// TestEasingByName verifies keyword lookup and the unknown-keyword error.
func TestEasingByName(t *testing.T) {
	fn, err := EasingByName("smooth")
	if err != nil {
		t.Fatalf("EasingByName(smooth) error: %v", err)
	}
	if got := fn(0.5); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("smooth(0.5) = %v, expected 0.5", got)
	}

	if fn, err := EasingByName(""); err != nil || fn == nil {
		t.Errorf("EasingByName(\"\") should select linear, got %v", err)
	}

	if _, err := EasingByName("bounce"); err == nil {
		t.Error("EasingByName(bounce) expected an error, got nil")
	}
}
