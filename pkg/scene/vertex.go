// Package scene holds the geometry and camera types shared by the
// rasterizer and the ray tracer: vertices, per-shape meshes, and the
// camera's position/orientation/projection math.
package scene

import (
	"github.com/taigrr/softrender/pkg/colormodel"
	"github.com/taigrr/softrender/pkg/math3d"
)

// Vertex is the per-vertex record carried through both engines. Pos starts
// in mesh-local space; the rasterizer's vertex shader promotes it to
// homogeneous clip space in place.
type Vertex struct {
	Pos      math3d.Vec4
	Norm     math3d.Vec3
	UV       math3d.Vec2
	Ambient  colormodel.FColor
	Diffuse  colormodel.FColor
	Emissive colormodel.FColor
}

// Lerp linearly interpolates every field, Pos included.
func (v Vertex) Lerp(o Vertex, t float64) Vertex {
	return Vertex{
		Pos:      v.Pos.Lerp(o.Pos, t),
		Norm:     v.Norm.Lerp(o.Norm, t),
		UV:       v.UV.Lerp(o.UV, t),
		Ambient:  v.Ambient.Lerp(o.Ambient, t),
		Diffuse:  v.Diffuse.Lerp(o.Diffuse, t),
		Emissive: v.Emissive.Lerp(o.Emissive, t),
	}
}

// ClipPos, WithClipPos, TexCoord and AmbientColor let Vertex satisfy
// raster.Vertex without colliding with the Pos/UV/Ambient field names
// loaders construct directly.

func (v Vertex) ClipPos() math3d.Vec4 { return v.Pos }

func (v Vertex) WithClipPos(p math3d.Vec4) Vertex {
	v.Pos = p
	return v
}

func (v Vertex) TexCoord() math3d.Vec2 { return v.UV }

func (v Vertex) WithTexCoord(uv math3d.Vec2) Vertex {
	v.UV = uv
	return v
}

func (v Vertex) AmbientColor() colormodel.FColor { return v.Ambient }

func (v Vertex) WithAmbientColor(a colormodel.FColor) Vertex {
	v.Ambient = a
	return v
}
