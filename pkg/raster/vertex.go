// Package raster implements the CPU rasterization pipeline: vertex
// shading, triangle setup with an edge-function test, perspective-correct
// interpolation, depth testing and pixel shading.
package raster

import (
	"github.com/taigrr/softrender/pkg/colormodel"
	"github.com/taigrr/softrender/pkg/math3d"
)

// Vertex is the constraint the rasterizer's vertex type must satisfy. It's
// an F-bounded interface rather than a concrete struct so the pipeline
// stays parameterized over V the way the specification requires, while a
// single concrete implementation (scene.Vertex) supplies it today.
type Vertex[V any] interface {
	ClipPos() math3d.Vec4
	WithClipPos(math3d.Vec4) V
	TexCoord() math3d.Vec2
	WithTexCoord(math3d.Vec2) V
	AmbientColor() colormodel.FColor
	WithAmbientColor(colormodel.FColor) V
}
