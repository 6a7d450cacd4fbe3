package loader

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"

	"github.com/taigrr/softrender/pkg/colormodel"
	"github.com/taigrr/softrender/pkg/math3d"
	"github.com/taigrr/softrender/pkg/resource"
	"github.com/taigrr/softrender/pkg/scene"
)

// LoadGLTF loads a glTF or GLB document, producing one Shape per
// triangle-mode primitive. Winding is left exactly as authored: glTF's
// CCW front-facing convention matches this engine's rasterizer, so
// unlike some of the corpus's viewers this loader does not swap
// winding on the way in.
func LoadGLTF(path string) (*scene.Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: open gltf %q: %w", path, err)
	}

	mesh := &scene.Mesh{}
	baseDir := filepath.Dir(path)

	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
				continue
			}
			shape, err := loadPrimitive(doc, prim, baseDir)
			if err != nil {
				return nil, fmt.Errorf("loader: mesh %q: %w", m.Name, err)
			}
			mesh.Shapes = append(mesh.Shapes, shape)
		}
	}

	return mesh, nil
}

func loadPrimitive(doc *gltf.Document, prim *gltf.Primitive, baseDir string) (scene.Shape, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return scene.Shape{}, fmt.Errorf("primitive has no POSITION attribute")
	}

	positions, err := readVec3Accessor(doc, posIdx)
	if err != nil {
		return scene.Shape{}, fmt.Errorf("read positions: %w", err)
	}

	var normals []math3d.Vec3
	if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err = readVec3Accessor(doc, normIdx)
		if err != nil {
			return scene.Shape{}, fmt.Errorf("read normals: %w", err)
		}
	}

	var uvs []math3d.Vec2
	if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		uvs, err = readVec2Accessor(doc, uvIdx)
		if err != nil {
			return scene.Shape{}, fmt.Errorf("read uvs: %w", err)
		}
	}

	var indices []int
	if prim.Indices != nil {
		indices, err = readIndices(doc, *prim.Indices)
		if err != nil {
			return scene.Shape{}, fmt.Errorf("read indices: %w", err)
		}
	} else {
		indices = make([]int, len(positions))
		for i := range indices {
			indices[i] = i
		}
	}

	// glTF materials (PBR metallic-roughness) are not mapped to the
	// ambient/diffuse/emissive model this engine shades with; a glTF mesh
	// renders with the default white diffuse the engine uses when no
	// material is bound. Embedded images, when present, are still resolved
	// below so a texture path is available if the caller wants one.
	diffuse := colormodel.White
	ambient, emissive := colormodel.Black, colormodel.Black
	texturePath := ""
	if len(doc.Images) > 0 && doc.Images[0].URI != "" {
		texturePath = filepath.Join(baseDir, doc.Images[0].URI)
	}

	vertices := make([]scene.Vertex, len(positions))
	for i, pos := range positions {
		v := scene.Vertex{
			Pos:      math3d.V4FromV3(pos, 1),
			Ambient:  ambient,
			Diffuse:  diffuse,
			Emissive: emissive,
		}
		if i < len(normals) {
			v.Norm = normals[i]
		}
		if i < len(uvs) {
			v.UV = uvs[i]
		}
		vertices[i] = v
	}

	computeMissingFaceNormals(vertices, indices, len(normals) == 0)

	vb := resource.New[scene.Vertex](len(vertices))
	for i, v := range vertices {
		vb.SetItem(i, v)
	}
	ib := resource.New[uint32](len(indices))
	for i, idx := range indices {
		ib.SetItem(i, uint32(idx))
	}

	return scene.Shape{Vertices: vb, Indices: ib, TexturePath: texturePath}, nil
}

func computeMissingFaceNormals(vertices []scene.Vertex, indices []int, needsNormals bool) {
	if !needsNormals {
		return
	}
	assigned := make([]bool, len(vertices))
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		pa, pb, pc := vertices[a].Pos.Vec3(), vertices[b].Pos.Vec3(), vertices[c].Pos.Vec3()
		n := pb.Sub(pa).Cross(pc.Sub(pa)).Normalize()
		for _, idx := range [3]int{a, b, c} {
			if !assigned[idx] {
				vertices[idx].Norm = n
				assigned[idx] = true
			}
		}
	}
}

func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}

	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}
	floats, ok := data.([][3]float32)
	if !ok {
		return nil, fmt.Errorf("unexpected data type for VEC3")
	}

	result := make([]math3d.Vec3, len(floats))
	for i, f := range floats {
		result[i] = math3d.V3(float64(f[0]), float64(f[1]), float64(f[2]))
	}
	return result, nil
}

func readVec2Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec2, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec2 {
		return nil, fmt.Errorf("expected VEC2, got %v", accessor.Type)
	}

	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}
	floats, ok := data.([][2]float32)
	if !ok {
		return nil, fmt.Errorf("unexpected data type for VEC2")
	}

	result := make([]math3d.Vec2, len(floats))
	for i, f := range floats {
		result[i] = math3d.V2(float64(f[0]), float64(f[1]))
	}
	return result, nil
}

func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]

	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}

	switch v := data.(type) {
	case []uint8:
		result := make([]int, len(v))
		for i, x := range v {
			result[i] = int(x)
		}
		return result, nil
	case []uint16:
		result := make([]int, len(v))
		for i, x := range v {
			result[i] = int(x)
		}
		return result, nil
	case []uint32:
		result := make([]int, len(v))
		for i, x := range v {
			result[i] = int(x)
		}
		return result, nil
	default:
		return nil, fmt.Errorf("unexpected index type: %T", data)
	}
}

func readAccessorData(doc *gltf.Document, accessor *gltf.Accessor) (any, error) {
	if accessor.BufferView == nil {
		return nil, fmt.Errorf("accessor has no buffer view")
	}

	bufferView := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]
	if buffer.Data == nil {
		return nil, fmt.Errorf("external glTF buffers are not supported; embed buffers or use GLB")
	}
	bufData := buffer.Data

	start := bufferView.ByteOffset + accessor.ByteOffset
	stride := bufferView.ByteStride
	count := accessor.Count

	switch accessor.Type {
	case gltf.AccessorVec3:
		if stride == 0 {
			stride = 12
		}
		result := make([][3]float32, count)
		for i := range count {
			offset := start + i*stride
			for j := range 3 {
				result[i][j] = readFloat32(bufData[offset+j*4:])
			}
		}
		return result, nil

	case gltf.AccessorVec2:
		if stride == 0 {
			stride = 8
		}
		result := make([][2]float32, count)
		for i := range count {
			offset := start + i*stride
			for j := range 2 {
				result[i][j] = readFloat32(bufData[offset+j*4:])
			}
		}
		return result, nil

	case gltf.AccessorScalar:
		if stride == 0 {
			switch accessor.ComponentType {
			case gltf.ComponentUbyte:
				stride = 1
			case gltf.ComponentUshort:
				stride = 2
			case gltf.ComponentUint:
				stride = 4
			}
		}

		switch accessor.ComponentType {
		case gltf.ComponentUbyte:
			result := make([]uint8, count)
			for i := range count {
				result[i] = bufData[start+i*stride]
			}
			return result, nil
		case gltf.ComponentUshort:
			result := make([]uint16, count)
			for i := range count {
				offset := start + i*stride
				result[i] = uint16(bufData[offset]) | uint16(bufData[offset+1])<<8
			}
			return result, nil
		case gltf.ComponentUint:
			result := make([]uint32, count)
			for i := range count {
				offset := start + i*stride
				result[i] = uint32(bufData[offset]) |
					uint32(bufData[offset+1])<<8 |
					uint32(bufData[offset+2])<<16 |
					uint32(bufData[offset+3])<<24
			}
			return result, nil
		}
	}

	return nil, fmt.Errorf("unsupported accessor type: %v / %v", accessor.Type, accessor.ComponentType)
}

func readFloat32(b []byte) float32 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return math.Float32frombits(bits)
}
