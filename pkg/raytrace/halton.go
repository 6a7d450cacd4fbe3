package raytrace

import "github.com/taigrr/softrender/pkg/math3d"

// halton2D returns the 2D Halton sequence value (bases 2 and 3) for the
// given 1-indexed sample index.
func halton2D(index int) math3d.Vec2 {
	return math3d.V2(halton(index, 2), halton(index, 3))
}

func halton(index, base int) float64 {
	result := 0.0
	fraction := 1.0 / float64(base)
	for index > 0 {
		result += float64(index%base) * fraction
		fraction /= float64(base)
		index /= base
	}
	return result
}

// jitter returns the centered Halton jitter for accumulation frame
// frameID (0-indexed): halton(frameID+1, 2, 3) - (0.5, 0.5).
func jitter(frameID int) math3d.Vec2 {
	h := halton2D(frameID + 1)
	return h.Sub(math3d.V2(0.5, 0.5))
}
