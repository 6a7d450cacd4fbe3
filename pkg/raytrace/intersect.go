package raytrace

import (
	"math"

	"github.com/taigrr/softrender/pkg/math3d"
	"github.com/taigrr/softrender/pkg/scene"
)

const (
	defaultTMax   = 1000.0
	defaultTMin   = 0.001
	triTolerance  = 1e-8
)

// Intersect runs Moeller-Trumbore intersection of ray against tri. The
// returned Payload.T is negative on a miss.
func Intersect(ray Ray, tri scene.Triangle) Payload {
	miss := Payload{T: -1}

	pvec := ray.Direction.Cross(tri.CA)
	det := pvec.Dot(tri.BA)
	if math.Abs(det) < triTolerance {
		return miss
	}

	invDet := 1 / det
	tvec := ray.Origin.Sub(tri.A)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return miss
	}

	qvec := tvec.Cross(tri.BA)
	v := ray.Direction.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return miss
	}

	w := 1 - u - v
	t := tri.CA.Dot(qvec) * invDet

	return Payload{T: t, Bary: math3d.V3(w, u, v)}
}

// AABBTest runs a slab test: the box counts as hit when the ray's
// parameter intervals inside the three axis slabs overlap and that
// overlap does not lie entirely behind the ray origin.
func AABBTest(ray Ray, box *scene.AABB) bool {
	invDir := math3d.V3(1/ray.Direction.X, 1/ray.Direction.Y, 1/ray.Direction.Z)

	t0 := box.Max.Sub(ray.Origin).Mul(invDir)
	t1 := box.Min.Sub(ray.Origin).Mul(invDir)

	tNear := t0.Min(t1)
	tFar := t0.Max(t1)

	tExit := math.Min(tFar.X, math.Min(tFar.Y, tFar.Z))
	return maxComponent(tNear) <= tExit && tExit >= 0
}

func maxComponent(v math3d.Vec3) float64 {
	return math.Max(v.X, math.Max(v.Y, v.Z))
}
