package raster

import (
	"math"
	"testing"

	"github.com/taigrr/softrender/pkg/colormodel"
	"github.com/taigrr/softrender/pkg/math3d"
	"github.com/taigrr/softrender/pkg/resource"
	"github.com/taigrr/softrender/pkg/scene"
)

func identityShader(v scene.Vertex) scene.Vertex { return v }

func whiteShader(v scene.Vertex, ctx any) colormodel.FColor { return colormodel.White }

func toU(c colormodel.FColor) colormodel.UColor { return c.ToUColor() }

func newTestTriangleRasterizer(w, h int) (*Rasterizer[scene.Vertex, colormodel.UColor], *resource.Resource[colormodel.UColor]) {
	r := New[scene.Vertex](w, h, toU)
	color := resource.New2D[colormodel.UColor](w, h)
	r.SetRenderTarget(color, nil)
	r.VertexShader = identityShader
	r.PixelShader = whiteShader

	vb := resource.New[scene.Vertex](3)
	vb.SetItem(0, scene.Vertex{Pos: math3d.V4(-1, -1, 0, 1)})
	vb.SetItem(1, scene.Vertex{Pos: math3d.V4(1, -1, 0, 1)})
	vb.SetItem(2, scene.Vertex{Pos: math3d.V4(0, 1, 0, 1)})
	ib := resource.New[uint32](3)
	ib.SetItem(0, 0)
	ib.SetItem(1, 1)
	ib.SetItem(2, 2)

	r.SetVertexBuffer(vb)
	r.SetIndexBuffer(ib)

	return r, color
}

func TestSingleTriangleFlatScenario(t *testing.T) {
	r, color := newTestTriangleRasterizer(800, 600)
	r.Clear(colormodel.UColor{}, 1)

	r.Draw(3, 0, nil)

	centroid := color.At(400, 300)
	if centroid != (colormodel.UColor{255, 255, 255}) {
		t.Errorf("centroid = %v, want white", centroid)
	}

	corner := color.At(0, 0)
	if corner != (colormodel.UColor{}) {
		t.Errorf("corner (0,0) = %v, want black", corner)
	}
}

func TestDepthOcclusionScenario(t *testing.T) {
	w, h := 100, 100
	r := New[scene.Vertex](w, h, toU)
	color := resource.New2D[colormodel.UColor](w, h)
	depth := resource.New2D[float64](w, h)
	r.SetRenderTarget(color, depth)
	r.VertexShader = identityShader

	vb := resource.New[scene.Vertex](6)
	vb.SetItem(0, scene.Vertex{Pos: math3d.V4(-1, -1, 0.3, 1), Diffuse: colormodel.FColor{R: 1}})
	vb.SetItem(1, scene.Vertex{Pos: math3d.V4(1, -1, 0.3, 1), Diffuse: colormodel.FColor{R: 1}})
	vb.SetItem(2, scene.Vertex{Pos: math3d.V4(0, 1, 0.3, 1), Diffuse: colormodel.FColor{R: 1}})
	vb.SetItem(3, scene.Vertex{Pos: math3d.V4(-1, -1, 0.7, 1), Diffuse: colormodel.FColor{G: 1}})
	vb.SetItem(4, scene.Vertex{Pos: math3d.V4(1, -1, 0.7, 1), Diffuse: colormodel.FColor{G: 1}})
	vb.SetItem(5, scene.Vertex{Pos: math3d.V4(0, 1, 0.7, 1), Diffuse: colormodel.FColor{G: 1}})
	ib := resource.New[uint32](6)
	for i := range 6 {
		ib.SetItem(i, uint32(i))
	}

	r.SetVertexBuffer(vb)
	r.SetIndexBuffer(ib)
	r.PixelShader = func(v scene.Vertex, ctx any) colormodel.FColor { return v.Diffuse }

	r.Clear(colormodel.UColor{}, 1.0)
	r.Draw(6, 0, nil)

	got := color.At(50, 50)
	if got.R != 255 || got.G != 0 {
		t.Errorf("overlap pixel = %v, want red (front triangle wins depth test)", got)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	color := resource.New2D[colormodel.UColor](4, 4)
	color.Fill(colormodel.UColor{R: 9})
	color.Fill(colormodel.UColor{R: 9})

	for i := range color.Len() {
		if color.Item(i) != (colormodel.UColor{R: 9}) {
			t.Fatalf("expected idempotent fill at %d", i)
		}
	}
}

// TestPerspectiveCorrectUV sets up a triangle with vertices at different
// clip-space w, chosen so the screen-space barycentric weights at pixel
// (1,1) diverge from the perspective-correct ones: naive linear
// interpolation would give UV (0.25, 0.25), perspective-correct gives
// (1/7, 1/7). The rasterizer must produce the perspective-correct value.
func TestPerspectiveCorrectUV(t *testing.T) {
	w, h := 2, 2
	r := New[scene.Vertex](w, h, toU)
	color := resource.New2D[colormodel.UColor](w, h)
	r.SetRenderTarget(color, nil)
	r.VertexShader = identityShader

	vb := resource.New[scene.Vertex](3)
	vb.SetItem(0, scene.Vertex{Pos: math3d.V4(-1, -1, 0.5, 1), UV: math3d.V2(0, 0)})
	vb.SetItem(1, scene.Vertex{Pos: math3d.V4(2, -2, 1, 2), UV: math3d.V2(1, 1)})
	vb.SetItem(2, scene.Vertex{Pos: math3d.V4(0, 1, 0.5, 1), UV: math3d.V2(0, 0)})
	ib := resource.New[uint32](3)
	ib.SetItem(0, 0)
	ib.SetItem(1, 1)
	ib.SetItem(2, 2)

	r.SetVertexBuffer(vb)
	r.SetIndexBuffer(ib)

	var gotU float64
	r.PixelShader = func(v scene.Vertex, ctx any) colormodel.FColor {
		gotU = v.UV.X
		return colormodel.White
	}

	r.Clear(colormodel.UColor{}, 1)
	r.Draw(3, 0, nil)

	const naive = 0.25
	const perspectiveCorrect = 1.0 / 7.0
	if math.Abs(gotU-naive) < 1e-6 {
		t.Fatalf("UV.X = %v matches naive linear interpolation, want perspective-correct", gotU)
	}
	if math.Abs(gotU-perspectiveCorrect) > 1e-6 {
		t.Errorf("UV.X = %v, want perspective-correct %v", gotU, perspectiveCorrect)
	}
}

func TestEdgeFunctionSign(t *testing.T) {
	// c lies above the rightward edge a->b on a Y-down screen, i.e. to its
	// left, so edge() should be positive.
	e := edge(0, 0, 1, 0, 0.5, -1)
	if e <= 0 {
		t.Errorf("edge() = %v, want positive", e)
	}
}
