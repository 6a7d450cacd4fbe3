package raytrace

import (
	"math"
	"testing"

	"github.com/taigrr/softrender/pkg/colormodel"
	"github.com/taigrr/softrender/pkg/math3d"
	"github.com/taigrr/softrender/pkg/resource"
	"github.com/taigrr/softrender/pkg/scene"
)

func TestRayTriangleIntersectCentroid(t *testing.T) {
	tri := scene.NewTriangle(
		scene.Vertex{Pos: math3d.V4(-1, -1, 0, 1)},
		scene.Vertex{Pos: math3d.V4(1, -1, 0, 1)},
		scene.Vertex{Pos: math3d.V4(0, 1, 0, 1)},
	)
	// The triangle's centroid is (0, -1/3, 0).
	ray := NewRay(math3d.V3(0, -1.0/3, -5), math3d.V3(0, 0, 1))

	payload := Intersect(ray, tri)

	if math.Abs(payload.T-5) > 1e-5 {
		t.Errorf("t = %v, want ~5", payload.T)
	}
	want := 1.0 / 3
	if math.Abs(payload.Bary.X-want) > 1e-5 || math.Abs(payload.Bary.Y-want) > 1e-5 || math.Abs(payload.Bary.Z-want) > 1e-5 {
		t.Errorf("bary = %v, want (1/3, 1/3, 1/3)", payload.Bary)
	}
}

func TestAABBPrune(t *testing.T) {
	box := &scene.AABB{Min: math3d.V3(-1, -1, -1), Max: math3d.V3(1, 1, 1)}
	ray := NewRay(math3d.V3(10, 10, 10), math3d.V3(1, 0, 0))

	if AABBTest(ray, box) {
		t.Error("AABBTest = true, want false (ray points away from the box)")
	}
}

func TestHaltonJitterConvergesToZero(t *testing.T) {
	var sumX, sumY float64
	n := 4096
	for i := 1; i <= n; i++ {
		h := halton2D(i)
		sumX += h.X - 0.5
		sumY += h.Y - 0.5
	}
	meanX, meanY := sumX/float64(n), sumY/float64(n)
	if math.Abs(meanX) > 0.01 || math.Abs(meanY) > 0.01 {
		t.Errorf("mean jitter = (%v, %v), want near (0, 0)", meanX, meanY)
	}
}

func blackEmitterTracer(w, h int) *RayTracer[colormodel.UColor] {
	rt := New[colormodel.UColor](func(c colormodel.FColor) colormodel.UColor { return c.ToUColor() })
	rt.SetViewport(w, h)
	color := resource.New2D[colormodel.UColor](w, h)
	rt.SetRenderTarget(color)
	rt.MissShader = BlackMiss
	return rt
}

func TestAccumulationConvergesToBlack(t *testing.T) {
	w, h := 8, 8
	rt := blackEmitterTracer(w, h)

	origin := math3d.V3(0, 0, -5)
	fwd := math3d.V3(0, 0, 1)
	right := math3d.V3(1, 0, 0)
	up := math3d.V3(0, 1, 0)

	rt.RayGeneration(origin, fwd, right, up, math.Pi/3, 2, 8)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := rt.renderTarget.At(x, y)
			if c.R > 1 || c.G > 1 || c.B > 1 {
				t.Fatalf("pixel (%d,%d) = %v, want within 1 LSB of black", x, y, c)
			}
		}
	}
}

func TestTraceRayDispatchesToClosestHit(t *testing.T) {
	rt := blackEmitterTracer(4, 4)
	rt.SetBuffers(
		[][]scene.Vertex{{
			{Pos: math3d.V4(-1, -1, 0, 1)},
			{Pos: math3d.V4(1, -1, 0, 1)},
			{Pos: math3d.V4(0, 1, 0, 1)},
		}},
		[][]uint32{{0, 1, 2}},
	)
	rt.BuildAccelerationStructure()

	hit := false
	rt.ClosestHitShader = func(ray Ray, payload Payload, tri scene.Triangle, depth int) Payload {
		hit = true
		return Payload{Color: colormodel.White}
	}

	ray := NewRay(math3d.V3(0, 0, -5), math3d.V3(0, 0, 1))
	payload := rt.TraceRay(ray, 4)

	if !hit {
		t.Fatal("closest-hit shader was never invoked")
	}
	if payload.Color != colormodel.White {
		t.Errorf("payload.Color = %v, want white", payload.Color)
	}
}

func TestTraceRayMissesEmptyScene(t *testing.T) {
	rt := blackEmitterTracer(4, 4)
	rt.BuildAccelerationStructure()

	ray := NewRay(math3d.V3(0, 0, -5), math3d.V3(0, 0, 1))
	payload := rt.TraceRay(ray, 4)

	if payload.Color != colormodel.Black {
		t.Errorf("payload.Color = %v, want black from miss shader", payload.Color)
	}
}

func TestAnyHitShortCircuits(t *testing.T) {
	rt := blackEmitterTracer(4, 4)
	rt.SetBuffers(
		[][]scene.Vertex{{
			{Pos: math3d.V4(-1, -1, 0, 1)},
			{Pos: math3d.V4(1, -1, 0, 1)},
			{Pos: math3d.V4(0, 1, 0, 1)},
		}},
		[][]uint32{{0, 1, 2}},
	)
	rt.BuildAccelerationStructure()

	calls := 0
	rt.AnyHitShader = func(ray Ray, payload Payload, tri scene.Triangle) Payload {
		calls++
		return Payload{T: -1}
	}

	ray := NewRay(math3d.V3(0, 0, -5), math3d.V3(0, 0, 1))
	rt.TraceRay(ray, 4)

	if calls != 1 {
		t.Errorf("any-hit shader called %d times, want 1", calls)
	}
}
