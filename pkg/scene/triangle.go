package scene

import (
	"github.com/taigrr/softrender/pkg/colormodel"
	"github.com/taigrr/softrender/pkg/math3d"
)

// Triangle is the ray tracer's precomputed per-triangle record: corner
// positions, the two edges used by Moeller-Trumbore, per-corner normals,
// and per-triangle shading attributes sampled from the first corner.
type Triangle struct {
	A, B, C math3d.Vec3
	BA, CA  math3d.Vec3
	NA, NB, NC math3d.Vec3
	Ambient, Diffuse, Emissive colormodel.FColor
}

// NewTriangle builds a Triangle from three vertices, taking shading
// attributes from the first corner only.
func NewTriangle(va, vb, vc Vertex) Triangle {
	a := va.Pos.Vec3()
	b := vb.Pos.Vec3()
	c := vc.Pos.Vec3()

	return Triangle{
		A: a, B: b, C: c,
		BA: b.Sub(a), CA: c.Sub(a),
		NA: va.Norm, NB: vb.Norm, NC: vc.Norm,
		Ambient:  va.Ambient,
		Diffuse:  va.Diffuse,
		Emissive: va.Emissive,
	}
}

// AABB is an axis-aligned box that owns the triangles inside it along with
// the box itself. It grows monotonically as triangles are added; it never
// shrinks.
type AABB struct {
	Min, Max   math3d.Vec3
	Triangles  []Triangle
	hasTri bool
}

// AddTriangle grows the box to contain tri's corners and appends it to the
// triangle list.
func (box *AABB) AddTriangle(tri Triangle) {
	if !box.hasTri {
		box.Min = tri.A
		box.Max = tri.A
		box.hasTri = true
	}
	for _, corner := range [3]math3d.Vec3{tri.A, tri.B, tri.C} {
		box.Min = box.Min.Min(corner)
		box.Max = box.Max.Max(corner)
	}
	box.Triangles = append(box.Triangles, tri)
}
