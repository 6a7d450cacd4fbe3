// Package raytrace implements the CPU path-tracing engine: ray generation
// with Halton jitter, a single-level AABB acceleration structure,
// Moeller-Trumbore intersection, and multi-bounce shader dispatch.
package raytrace

import (
	"github.com/taigrr/softrender/pkg/colormodel"
	"github.com/taigrr/softrender/pkg/math3d"
)

// Ray is a position and a normalized direction.
type Ray struct {
	Origin, Direction math3d.Vec3
}

// NewRay normalizes direction on construction.
func NewRay(origin, direction math3d.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// Payload is the per-ray result carried through the shader pipeline.
type Payload struct {
	T     float64 // < 0 sentinel meaning "no hit" where used that way
	Bary  math3d.Vec3
	Color colormodel.FColor
}
