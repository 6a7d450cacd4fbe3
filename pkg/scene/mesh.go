package scene

import "github.com/taigrr/softrender/pkg/resource"

// Shape owns one dedup'd vertex buffer and one triangle index buffer.
// The OBJ loader produces a single Shape per file; the glTF loader
// produces one per triangle-mode primitive.
type Shape struct {
	Vertices    *resource.Resource[Vertex]
	Indices     *resource.Resource[uint32]
	TexturePath string // resolved relative to the source file's directory; "" if none
}

// TriangleCount returns the number of triangles the index buffer encodes.
func (s *Shape) TriangleCount() int {
	return s.Indices.Len() / 3
}

// Mesh is an ordered sequence of shapes, the unit the loaders hand to a
// renderer and the renderer hands to an engine.
type Mesh struct {
	Shapes []Shape
}
