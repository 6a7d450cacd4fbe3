package raytrace

import (
	"math/rand/v2"
	"sync"

	"github.com/taigrr/softrender/pkg/colormodel"
	"github.com/taigrr/softrender/pkg/math3d"
	"github.com/taigrr/softrender/pkg/scene"
)

// Light is a point light used by the direct-lighting shader.
type Light struct {
	Position math3d.Vec3
	Color    colormodel.FColor
}

// SkyGradientMiss shades a miss by the ray direction's Y component,
// blending from a horizon color to a zenith color.
func SkyGradientMiss(horizon, zenith colormodel.FColor) MissShader {
	return func(ray Ray) Payload {
		t := 0.5 * (ray.Direction.Y + 1)
		return Payload{T: -1, Color: horizon.Lerp(zenith, t)}
	}
}

// BlackMiss always returns black with the no-hit T sentinel.
func BlackMiss(ray Ray) Payload {
	return Payload{T: -1, Color: colormodel.Black}
}

// NoOccluderMiss is installed on the shadow sub-tracer: its payload T
// sentinel of -1 signals "nothing in the way" to the direct-lighting
// shader that fired the shadow ray.
func NoOccluderMiss(ray Ray) Payload {
	return Payload{T: -1}
}

// shadingNormal interpolates the triangle's three corner normals by the
// payload's barycentric coordinates.
func shadingNormal(tri scene.Triangle, bary math3d.Vec3) math3d.Vec3 {
	n := tri.NA.Scale(bary.X).Add(tri.NB.Scale(bary.Y)).Add(tri.NC.Scale(bary.Z))
	return n.Normalize()
}

func hitPosition(ray Ray, payload Payload) math3d.Vec3 {
	return ray.Origin.Add(ray.Direction.Scale(payload.T))
}

// DirectLightingClosestHit shades the hit point with the triangle's
// emissive term plus, for each light not occluded by shadow, a diffuse
// contribution. shadow is a second RayTracer instance sharing this
// tracer's acceleration structure with AnyHitShader installed.
func DirectLightingClosestHit[R any](shadow *RayTracer[R], lights []Light) ClosestHitShader {
	return func(ray Ray, payload Payload, tri scene.Triangle, depth int) Payload {
		hitPos := hitPosition(ray, payload)
		n := shadingNormal(tri, payload.Bary)

		color := tri.Emissive
		for _, light := range lights {
			toLight := light.Position.Sub(hitPos)
			dist := toLight.Len()
			shadowRay := NewRay(hitPos, toLight)

			occlusion := shadow.traceRay(shadowRay, 1, dist, defaultTMin)
			if occlusion.T >= 0 {
				continue
			}

			ndotl := n.Dot(toLight.Normalize())
			if ndotl < 0 {
				ndotl = 0
			}
			color = color.Add(light.Color.Mul(tri.Diffuse).Scale(ndotl))
		}

		return Payload{T: payload.T, Bary: payload.Bary, Color: color}
	}
}

// MonteCarloDiffuseClosestHit samples a cosine-agnostic hemisphere
// direction above the shading normal and recurses, accumulating emissive
// plus the attenuated bounce contribution. Bias from the naive rejection
// omission described for this shader is accepted, not corrected. Draws
// from rng are serialized by a mutex, since RayGeneration invokes the
// shader from one goroutine per row.
func MonteCarloDiffuseClosestHit[R any](tracer *RayTracer[R], rng *rand.Rand) ClosestHitShader {
	var rngMu sync.Mutex
	return func(ray Ray, payload Payload, tri scene.Triangle, depth int) Payload {
		hitPos := hitPosition(ray, payload)
		n := shadingNormal(tri, payload.Bary)

		rngMu.Lock()
		dir := randomUnitCube(rng)
		rngMu.Unlock()
		if dir.Dot(n) < 0 {
			dir = dir.Negate()
		}

		bounce := tracer.traceRay(NewRay(hitPos, dir), depth, defaultTMax, defaultTMin)

		ndotl := n.Dot(dir.Normalize())
		if ndotl < 0 {
			ndotl = 0
		}
		color := tri.Emissive.Add(bounce.Color.Mul(tri.Diffuse).Scale(ndotl))

		return Payload{T: payload.T, Bary: payload.Bary, Color: color}
	}
}

func randomUnitCube(rng *rand.Rand) math3d.Vec3 {
	return math3d.V3(
		rng.Float64()*2-1,
		rng.Float64()*2-1,
		rng.Float64()*2-1,
	)
}
