// Package colormodel holds the two color representations used throughout
// the render core: a normalized float color for shading math and an
// 8-bit-per-channel color for framebuffer storage and PNG output.
package colormodel

// FColor is a three-channel color with a nominal [0, 1] range per channel.
// Values may exceed that range during additive shading or accumulation;
// only the conversion to UColor clamps.
type FColor struct {
	R, G, B float64
}

// UColor is a three-channel 8-bit-per-channel color, the framebuffer's
// storage representation.
type UColor struct {
	R, G, B uint8
}

// Black is the zero-value FColor.
var Black = FColor{}

// White is full-intensity FColor.
var White = FColor{1, 1, 1}

// Add returns the component-wise sum.
func (c FColor) Add(o FColor) FColor {
	return FColor{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Scale returns the color scaled by s.
func (c FColor) Scale(s float64) FColor {
	return FColor{c.R * s, c.G * s, c.B * s}
}

// Mul returns the component-wise (modulated) product.
func (c FColor) Mul(o FColor) FColor {
	return FColor{c.R * o.R, c.G * o.G, c.B * o.B}
}

// Lerp linearly interpolates between a and b.
//
//nolint:st1016 // a,b naming convention is clearer for interpolation
func (a FColor) Lerp(b FColor, t float64) FColor {
	return FColor{
		a.R + (b.R-a.R)*t,
		a.G + (b.G-a.G)*t,
		a.B + (b.B-a.B)*t,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ToUColor clamps each channel to [0, 1], multiplies by 255, and truncates.
func (c FColor) ToUColor() UColor {
	return UColor{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
	}
}

// ToFColor divides each channel by 255.
func (c UColor) ToFColor() FColor {
	return FColor{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}
