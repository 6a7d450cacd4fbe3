package raster

import (
	"math"

	"github.com/taigrr/softrender/pkg/colormodel"
	"github.com/taigrr/softrender/pkg/math3d"
	"github.com/taigrr/softrender/pkg/resource"
)

// Rasterizer draws indexed triangles from a vertex/index buffer pair into
// a color (and optional depth) render target. V is the vertex type; R is
// the render-target pixel type.
type Rasterizer[V Vertex[V], R any] struct {
	width, height int

	colorTarget *resource.Resource[R]
	depthTarget *resource.Resource[float64] // nil: depth test always passes

	vertexBuffer *resource.Resource[V]
	indexBuffer  *resource.Resource[uint32]

	// VertexShader consumes a mesh-local vertex and returns one with Pos
	// promoted to homogeneous clip space.
	VertexShader func(V) V

	// PixelShader receives the interpolated vertex and an opaque shading
	// context (texture sampler, light parameters, ...) and returns the
	// shaded color.
	PixelShader func(V, any) colormodel.FColor

	// ToPixel converts a shaded FColor into the render target's pixel
	// type R.
	ToPixel func(colormodel.FColor) R
}

// New creates a rasterizer for a W×H viewport.
func New[V Vertex[V], R any](width, height int, toPixel func(colormodel.FColor) R) *Rasterizer[V, R] {
	return &Rasterizer[V, R]{width: width, height: height, ToPixel: toPixel}
}

func (r *Rasterizer[V, R]) SetRenderTarget(color *resource.Resource[R], depth *resource.Resource[float64]) {
	r.colorTarget = color
	r.depthTarget = depth
}

func (r *Rasterizer[V, R]) SetViewport(width, height int) { r.width, r.height = width, height }

func (r *Rasterizer[V, R]) SetVertexBuffer(vb *resource.Resource[V]) { r.vertexBuffer = vb }

func (r *Rasterizer[V, R]) SetIndexBuffer(ib *resource.Resource[uint32]) { r.indexBuffer = ib }

// Clear fills the color target and, if present, the depth target.
func (r *Rasterizer[V, R]) Clear(colorValue R, depthValue float64) {
	r.colorTarget.Fill(colorValue)
	if r.depthTarget != nil {
		r.depthTarget.Fill(depthValue)
	}
}

// edge is the signed area of the parallelogram spanned by (b-a) and (c-a):
// positive when c is left of the directed line a->b in screen space.
func edge(ax, ay, bx, by, cx, cy float64) float64 {
	return (cx-ax)*(by-ay) - (cy-ay)*(bx-ax)
}

type screenVertex[V any] struct {
	v    V
	x, y float64 // screen pixels
	z, w float64 // clip-space z/w, post perspective-divide z is here as ndc z
}

// Draw consumes numIndices starting at indexOffset, three at a time, as
// independent triangles.
func (r *Rasterizer[V, R]) Draw(numIndices, indexOffset int, ctx any) {
	for i := indexOffset; i < indexOffset+numIndices; i += 3 {
		r.drawTriangle(
			r.vertexBuffer.Item(int(r.indexBuffer.Item(i))),
			r.vertexBuffer.Item(int(r.indexBuffer.Item(i+1))),
			r.vertexBuffer.Item(int(r.indexBuffer.Item(i+2))),
			ctx,
		)
	}
}

func (r *Rasterizer[V, R]) drawTriangle(va, vb, vc V, ctx any) {
	sa := r.vertexStage(va)
	sb := r.vertexStage(vb)
	sc := r.vertexStage(vc)

	triArea := edge(sa.x, sa.y, sb.x, sb.y, sc.x, sc.y)
	if triArea <= 0 {
		return // back-facing or degenerate; CCW front-facing convention
	}

	minX := int(math.Floor(min3(sa.x, sb.x, sc.x)))
	minY := int(math.Floor(min3(sa.y, sb.y, sc.y)))
	maxX := int(math.Ceil(max3(sa.x, sb.x, sc.x)))
	maxY := int(math.Ceil(max3(sa.y, sb.y, sc.y)))

	minX = clampInt(minX, 0, r.width)
	minY = clampInt(minY, 0, r.height)
	maxX = clampInt(maxX, 0, r.width)
	maxY = clampInt(maxY, 0, r.height)

	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			px, py := float64(x), float64(y)
			e1 := edge(sa.x, sa.y, sb.x, sb.y, px, py)
			e2 := edge(sb.x, sb.y, sc.x, sc.y, px, py)
			e3 := edge(sc.x, sc.y, sa.x, sa.y, px, py)

			if e1 < 0 || e2 < 0 || e3 < 0 || e1 > triArea || e2 > triArea || e3 > triArea {
				continue
			}

			wa := e2 / triArea
			wb := e3 / triArea
			wc := e1 / triArea

			z := wa*sa.z + wb*sb.z + wc*sc.z
			w := wa*sa.w + wb*sb.w + wc*sc.w

			if z < 0 || z > 1 {
				continue
			}

			if r.depthTarget != nil && r.depthTarget.At(x, y) <= z {
				continue
			}

			// Perspective-correct UV: weight each corner's UV by
			// w_i / (z_i * w_i), matching w_i = (e2, e3, e1) / E.
			pa := wa / (sa.z * sa.w)
			pb := wb / (sb.z * sb.w)
			pc := wc / (sc.z * sc.w)
			uvSum := sa.v.TexCoord().Scale(pa).Add(sb.v.TexCoord().Scale(pb)).Add(sc.v.TexCoord().Scale(pc))
			uv := uvSum.Scale(1 / (pa + pb + pc))

			ambient := sa.v.AmbientColor().Scale(wa).Add(
				sb.v.AmbientColor().Scale(wb)).Add(
				sc.v.AmbientColor().Scale(wc))

			interp := sa.v.WithClipPos(math3d.V4(px, py, z, w))
			interp = interp.WithTexCoord(uv)
			interp = interp.WithAmbientColor(ambient)

			color := r.PixelShader(interp, ctx)

			if r.depthTarget != nil {
				r.depthTarget.SetAt(x, y, z)
			}
			r.colorTarget.SetAt(x, y, r.ToPixel(color))
		}
	}
}

func (r *Rasterizer[V, R]) vertexStage(v V) screenVertex[V] {
	shaded := r.VertexShader(v)
	clip := shaded.ClipPos()
	ndc := clip.PerspectiveDivide()

	return screenVertex[V]{
		v: shaded,
		x: (1 + ndc.X) * float64(r.width) / 2,
		y: (1 - ndc.Y) * float64(r.height) / 2,
		z: ndc.Z,
		w: clip.W,
	}
}

func min3(a, b, c float64) float64 { return math.Min(a, math.Min(b, c)) }
func max3(a, b, c float64) float64 { return math.Max(a, math.Max(b, c)) }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
