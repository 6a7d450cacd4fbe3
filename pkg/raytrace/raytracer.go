package raytrace

import (
	"math"
	"sync"

	"github.com/taigrr/softrender/pkg/colormodel"
	"github.com/taigrr/softrender/pkg/math3d"
	"github.com/taigrr/softrender/pkg/resource"
	"github.com/taigrr/softrender/pkg/scene"
)

// MissShader handles a ray that hit nothing.
type MissShader func(Ray) Payload

// ClosestHitShader shades the nearest intersection found along a ray.
type ClosestHitShader func(ray Ray, payload Payload, tri scene.Triangle, depth int) Payload

// AnyHitShader, when installed, makes the tracer short-circuit on the
// first valid intersection found rather than searching for the nearest.
// The shadow sub-tracer installs this to answer "is anything in the way?"
// at constant cost per hit discovery.
type AnyHitShader func(ray Ray, payload Payload, tri scene.Triangle) Payload

// RayTracer owns the acceleration structure, the render target, and the
// temporal accumulation history. R is the render-target pixel type.
//
// The shadow sub-tracer used by direct-lighting shaders is architecturally
// the same type, instantiated a second time with a different shader pack
// and a shared acceleration structure, not a distinct engine.
type RayTracer[R any] struct {
	width, height int

	AccelerationStructures []*scene.AABB

	history      *resource.Resource[colormodel.FColor]
	renderTarget *resource.Resource[R]

	MissShader       MissShader
	ClosestHitShader ClosestHitShader
	AnyHitShader     AnyHitShader

	ToPixel func(colormodel.FColor) R

	vertexBuffers [][]scene.Vertex
	indexBuffers  [][]uint32
}

// New creates a ray tracer. ToPixel converts the accumulated float color
// to the render target's pixel type.
func New[R any](toPixel func(colormodel.FColor) R) *RayTracer[R] {
	return &RayTracer[R]{ToPixel: toPixel}
}

// SetViewport sets the render dimensions and (re)allocates the history
// buffer sized to match.
func (rt *RayTracer[R]) SetViewport(width, height int) {
	rt.width, rt.height = width, height
	rt.history = resource.New2D[colormodel.FColor](width, height)
}

func (rt *RayTracer[R]) SetRenderTarget(target *resource.Resource[R]) {
	rt.renderTarget = target
}

// SetBuffers installs the per-shape vertex/index buffers the acceleration
// structure is built from.
func (rt *RayTracer[R]) SetBuffers(vertexBuffers [][]scene.Vertex, indexBuffers [][]uint32) {
	rt.vertexBuffers = vertexBuffers
	rt.indexBuffers = indexBuffers
}

// ClearRenderTarget fills the render target with value and zeroes the
// accumulation history, restarting temporal accumulation from frame zero.
func (rt *RayTracer[R]) ClearRenderTarget(value R) {
	rt.renderTarget.Fill(value)
	rt.history.Fill(colormodel.FColor{})
}

// BuildAccelerationStructure creates one AABB per shape and adds every
// triangle (three consecutive indexed vertices) to it.
func (rt *RayTracer[R]) BuildAccelerationStructure() {
	rt.AccelerationStructures = rt.AccelerationStructures[:0]

	for shapeIdx, indices := range rt.indexBuffers {
		vertices := rt.vertexBuffers[shapeIdx]
		box := &scene.AABB{}

		for i := 0; i+2 < len(indices); i += 3 {
			tri := scene.NewTriangle(
				vertices[indices[i]],
				vertices[indices[i+1]],
				vertices[indices[i+2]],
			)
			box.AddTriangle(tri)
		}

		rt.AccelerationStructures = append(rt.AccelerationStructures, box)
	}
}

// CloneAccelerationStructure returns this tracer's acceleration structures
// without rebuilding them, for wiring into a shadow sub-tracer that shares
// the same geometry.
func (rt *RayTracer[R]) CloneAccelerationStructure() []*scene.AABB {
	return rt.AccelerationStructures
}

// TraceRay walks the acceleration structure looking for the closest
// (or, with AnyHitShader installed, first) triangle hit along ray, then
// dispatches to the appropriate shader.
func (rt *RayTracer[R]) TraceRay(ray Ray, depth int) Payload {
	return rt.traceRay(ray, depth, defaultTMax, defaultTMin)
}

func (rt *RayTracer[R]) traceRay(ray Ray, depth int, tMax, tMin float64) Payload {
	if depth == 0 {
		return rt.MissShader(ray)
	}
	depth--

	closest := Payload{T: tMax}
	var hitTri scene.Triangle
	found := false

	for _, box := range rt.AccelerationStructures {
		if !AABBTest(ray, box) {
			continue
		}
		for i := range box.Triangles {
			tri := box.Triangles[i]
			payload := Intersect(ray, tri)
			if payload.T < tMin || payload.T > tMax {
				continue
			}
			if rt.AnyHitShader != nil {
				return rt.AnyHitShader(ray, payload, tri)
			}
			if payload.T < closest.T {
				closest = payload
				hitTri = tri
				found = true
			}
		}
	}

	if found && rt.ClosestHitShader != nil {
		return rt.ClosestHitShader(ray, closest, hitTri, depth)
	}
	return rt.MissShader(ray)
}

// RayGeneration renders accumulationNum jittered frames from a pinhole
// camera positioned at origin looking down fwd with basis right/up and
// vertical field of view fovY (radians), accumulating into history and
// writing the running average to the render target after every frame.
// Rows are traced in parallel, one goroutine per row.
func (rt *RayTracer[R]) RayGeneration(origin, fwd, right, up math3d.Vec3, fovY float64, maxDepth, accumulationNum int) {
	aspect := float64(rt.width) / float64(rt.height)
	tanHalfFov := math.Tan(fovY / 2)

	for frame := 0; frame < accumulationNum; frame++ {
		j := jitter(frame)

		var wg sync.WaitGroup
		wg.Add(rt.height)
		for y := 0; y < rt.height; y++ {
			go func(y int) {
				defer wg.Done()
				for x := 0; x < rt.width; x++ {
					u := ((2*float64(x)+j.X)/float64(rt.width) - 1) * aspect * tanHalfFov
					v := ((2*float64(y)+j.Y)/float64(rt.height) - 1) * tanHalfFov

					dir := fwd.Add(right.Scale(u)).Sub(up.Scale(v))
					ray := NewRay(origin, dir)

					payload := rt.traceRay(ray, maxDepth, defaultTMax, defaultTMin)

					prev := rt.history.At(x, y)
					blended := prev.Scale(float64(frame)).Add(payload.Color).Scale(1 / float64(frame+1))
					rt.history.SetAt(x, y, blended)
					rt.renderTarget.SetAt(x, y, rt.ToPixel(blended))
				}
			}(y)
		}
		wg.Wait()
	}
}
