package vmath

import "fmt"

// Easing Functions
//
// An easing curve reshapes an interpolation factor t ∈ [0, 1] into an eased
// value ∈ [0, 1]. Animated particle attributes apply one of these to their
// progress before interpolating between start and end values.
//
// Reference: https://easings.net/

// Easing reshapes an interpolation factor. A nil Easing means linear.
type Easing func(t float64) float64

// EaseLinear returns t unchanged (uniform motion).
func EaseLinear(t float64) float64 {
	return t
}

// EaseInQuad starts slow, ends fast.
// f(t) = t²
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseOutQuad starts fast, ends slow.
// f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseInOutCubic starts slow, speeds through the middle, ends slow.
// f(t) = 4t³ for t < 0.5, 1 - (-2t+2)³/2 otherwise
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// SmoothStep is the classic 3t² - 2t³ blend, gentler than EaseInOutCubic.
func SmoothStep(t float64) float64 {
	return t * t * (3 - 2*t)
}

// EasingByName resolves an easing keyword as used in effect documents.
// The empty string selects linear.
func EasingByName(name string) (Easing, error) {
	switch name {
	case "", "linear":
		return EaseLinear, nil
	case "easeIn":
		return EaseInQuad, nil
	case "easeOut":
		return EaseOutQuad, nil
	case "easeInOut":
		return EaseInOutCubic, nil
	case "smooth":
		return SmoothStep, nil
	default:
		return nil, fmt.Errorf("unknown easing %q", name)
	}
}
