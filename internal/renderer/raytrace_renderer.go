package renderer

import (
	"math/rand/v2"

	"github.com/taigrr/softrender/internal/config"
	"github.com/taigrr/softrender/pkg/colormodel"
	"github.com/taigrr/softrender/pkg/raytrace"
	"github.com/taigrr/softrender/pkg/resource"
	"github.com/taigrr/softrender/pkg/scene"
)

// RayTraceRenderer wires scene.Camera and a loaded Mesh to a
// raytrace.RayTracer, installing a shadow sub-tracer that shares the
// primary tracer's acceleration structure for occlusion queries.
type RayTraceRenderer struct {
	camera *scene.Camera
	mesh   *scene.Mesh
	opts   config.RenderOptions

	tracer *raytrace.RayTracer[colormodel.UColor]
	shadow *raytrace.RayTracer[colormodel.UColor]
	color  *resource.Resource[colormodel.UColor]

	lights []raytrace.Light
}

// NewRayTraceRenderer builds a path tracer for mesh viewed by camera. The
// shadow sub-tracer is the same engine type instantiated a second time
// with AnyHitShader installed and the acceleration structure shared by
// reference, not rebuilt.
func NewRayTraceRenderer(mesh *scene.Mesh, camera *scene.Camera, opts config.RenderOptions, lights []raytrace.Light) *RayTraceRenderer {
	toPixel := func(c colormodel.FColor) colormodel.UColor { return c.ToUColor() }

	rr := &RayTraceRenderer{camera: camera, mesh: mesh, opts: opts, lights: lights}

	rr.color = resource.New2D[colormodel.UColor](opts.Width, opts.Height)

	vertexBuffers := make([][]scene.Vertex, len(mesh.Shapes))
	indexBuffers := make([][]uint32, len(mesh.Shapes))
	for i, shape := range mesh.Shapes {
		vb := make([]scene.Vertex, shape.Vertices.Len())
		for j := range vb {
			vb[j] = shape.Vertices.Item(j)
		}
		ib := make([]uint32, shape.Indices.Len())
		for j := range ib {
			ib[j] = shape.Indices.Item(j)
		}
		vertexBuffers[i] = vb
		indexBuffers[i] = ib
	}

	rr.shadow = raytrace.New[colormodel.UColor](toPixel)
	rr.shadow.SetBuffers(vertexBuffers, indexBuffers)
	rr.shadow.BuildAccelerationStructure()
	rr.shadow.MissShader = raytrace.NoOccluderMiss
	rr.shadow.AnyHitShader = func(ray raytrace.Ray, payload raytrace.Payload, tri scene.Triangle) raytrace.Payload {
		return raytrace.Payload{T: payload.T}
	}

	rr.tracer = raytrace.New[colormodel.UColor](toPixel)
	rr.tracer.SetViewport(opts.Width, opts.Height)
	rr.tracer.SetRenderTarget(rr.color)
	rr.tracer.SetBuffers(vertexBuffers, indexBuffers)
	rr.tracer.AccelerationStructures = rr.shadow.CloneAccelerationStructure()

	rng := rand.New(rand.NewPCG(1, 1))
	rr.tracer.MissShader = raytrace.SkyGradientMiss(
		colormodel.FColor{R: 1, G: 1, B: 1},
		colormodel.FColor{R: 0.5, G: 0.7, B: 1.0},
	)
	if len(lights) > 0 {
		rr.tracer.ClosestHitShader = raytrace.DirectLightingClosestHit(rr.shadow, lights)
	} else {
		rr.tracer.ClosestHitShader = raytrace.MonteCarloDiffuseClosestHit(rr.tracer, rng)
	}

	return rr
}

// ColorTarget exposes the render target for image output.
func (rr *RayTraceRenderer) ColorTarget() *resource.Resource[colormodel.UColor] { return rr.color }

// Render runs ray generation for the configured recursion depth and
// accumulation count.
func (rr *RayTraceRenderer) Render() {
	rr.tracer.ClearRenderTarget(colormodel.UColor{})
	rr.tracer.RayGeneration(
		rr.camera.Position,
		rr.camera.Forward(),
		rr.camera.Right(),
		rr.camera.Up(),
		rr.camera.FOV(),
		rr.opts.RaytracingDepth,
		rr.opts.AccumulationNum,
	)
}
