// Package renderer wires the camera, loaded mesh, and an engine (raster
// or ray-traced) together: it installs shaders, drives the clear/draw
// cycle, and hands the finished render target to the image writer.
package renderer

import (
	"github.com/taigrr/softrender/internal/config"
	"github.com/taigrr/softrender/internal/loader"
	"github.com/taigrr/softrender/pkg/colormodel"
	"github.com/taigrr/softrender/pkg/raster"
	"github.com/taigrr/softrender/pkg/resource"
	"github.com/taigrr/softrender/pkg/scene"
)

// RasterRenderer wires scene.Camera and a loaded Mesh to a raster.Rasterizer.
type RasterRenderer struct {
	camera *scene.Camera
	mesh   *scene.Mesh

	rasterizer *raster.Rasterizer[scene.Vertex, colormodel.UColor]
	color      *resource.Resource[colormodel.UColor]
	depth      *resource.Resource[float64]

	textures []*loader.Texture
	opts     config.RenderOptions
}

type shaderCtx struct {
	texture *loader.Texture
}

// NewRasterRenderer builds a renderer for mesh viewed by camera with the
// given options. Textures are resolved per shape when a texture path is
// set; a shape whose texture is missing or fails to load is shaded as
// untextured (the sampled color is white), not with its ambient color
// only. A texture failure is not reported as an error.
func NewRasterRenderer(mesh *scene.Mesh, camera *scene.Camera, opts config.RenderOptions) *RasterRenderer {
	r := &RasterRenderer{camera: camera, mesh: mesh, opts: opts}

	toPixel := func(c colormodel.FColor) colormodel.UColor { return c.ToUColor() }
	r.rasterizer = raster.New[scene.Vertex](opts.Width, opts.Height, toPixel)

	r.color = resource.New2D[colormodel.UColor](opts.Width, opts.Height)
	if !opts.DisableDepth {
		r.depth = resource.New2D[float64](opts.Width, opts.Height)
	}
	r.rasterizer.SetRenderTarget(r.color, r.depth)

	r.rasterizer.VertexShader = r.vertexShader
	r.rasterizer.PixelShader = PixelShaderFor(opts)

	r.textures = make([]*loader.Texture, len(mesh.Shapes))
	for i, shape := range mesh.Shapes {
		if shape.TexturePath == "" {
			continue
		}
		if tex, err := loader.LoadTexture(shape.TexturePath); err == nil {
			r.textures[i] = tex
		}
	}

	return r
}

func (r *RasterRenderer) vertexShader(v scene.Vertex) scene.Vertex {
	vp := r.camera.ViewProjectionMatrix()
	v.Pos = vp.MulVec4(v.Pos)
	return v
}

// ColorTarget exposes the color buffer for image output.
func (r *RasterRenderer) ColorTarget() *resource.Resource[colormodel.UColor] { return r.color }

// DepthTarget exposes the depth buffer, nil when depth testing is disabled.
func (r *RasterRenderer) DepthTarget() *resource.Resource[float64] { return r.depth }

// Render clears the targets and draws every shape in the mesh.
func (r *RasterRenderer) Render() {
	r.rasterizer.Clear(colormodel.UColor{}, 1.0)

	for i, shape := range r.mesh.Shapes {
		r.rasterizer.SetVertexBuffer(shape.Vertices)
		r.rasterizer.SetIndexBuffer(shape.Indices)

		ctx := &shaderCtx{texture: r.textures[i]}
		r.rasterizer.Draw(shape.Indices.Len(), 0, ctx)
	}
}

// PixelShaderFor selects the default shader or one of the alternates
// (depth-darken, fog) described by the CLI surface.
func PixelShaderFor(opts config.RenderOptions) func(scene.Vertex, any) colormodel.FColor {
	switch opts.Shader {
	case config.ShaderZ:
		return zPixelShader(opts)
	case config.ShaderFog:
		return fogPixelShader(opts)
	default:
		return defaultPixelShader
	}
}

func defaultPixelShader(v scene.Vertex, ctx any) colormodel.FColor {
	var uvColor colormodel.FColor
	sc, _ := ctx.(*shaderCtx)
	if sc != nil && sc.texture != nil {
		uvColor = sc.texture.Sample(v.UV.X, v.UV.Y)
	} else {
		uvColor = colormodel.White
	}
	return v.Ambient.Add(v.Diffuse.Mul(uvColor)).Add(v.Emissive)
}

// zPixelShader darkens by NDC depth, biased and faded per opts, a
// cheap visualization of the depth buffer without a separate dump.
func zPixelShader(opts config.RenderOptions) func(scene.Vertex, any) colormodel.FColor {
	return func(v scene.Vertex, ctx any) colormodel.FColor {
		base := defaultPixelShader(v, ctx)
		z := v.ClipPos().Z
		k := 1 - clamp01((z-opts.LPSBias)*opts.LPSFade)
		return base.Scale(k)
	}
}

// fogPixelShader blends toward white with distance, using the same
// depth-darken bias/fade parameters as the Z shader.
func fogPixelShader(opts config.RenderOptions) func(scene.Vertex, any) colormodel.FColor {
	return func(v scene.Vertex, ctx any) colormodel.FColor {
		base := defaultPixelShader(v, ctx)
		z := v.ClipPos().Z
		fog := clamp01((z - opts.LPSBias) * opts.LPSFade)
		return base.Lerp(colormodel.White, fog)
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
