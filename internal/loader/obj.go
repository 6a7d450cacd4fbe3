// Package loader reads wavefront OBJ/MTL files and glTF files into the
// scene package's shape buffers, and decodes diffuse textures.
//
// The OBJ/MTL reader is hand-written rather than wrapping a third-party
// decoder: its one job, index-triple deduplication keyed on
// (position, normal, texcoord), is small enough that pulling in an
// external parser would mean trusting an unverified call surface for a
// few hundred lines of well-understood text parsing. Every other
// external format in this package (glTF, PNG/JPEG textures) goes
// through a library.
package loader

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/softrender/pkg/colormodel"
	"github.com/taigrr/softrender/pkg/math3d"
	"github.com/taigrr/softrender/pkg/resource"
	"github.com/taigrr/softrender/pkg/scene"
)

// material holds the subset of an MTL entry the renderer cares about.
type material struct {
	Ambient, Diffuse, Emission colormodel.FColor
	DiffuseTexture             string
}

type faceIndex struct {
	pos, norm, tex int // 0-indexed; -1 means absent
}

// LoadOBJ parses path and its accompanying MTL (resolved relative to
// path's directory) into a Mesh. Triangulation is performed on any
// face with more than 3 vertices via a fan from the first vertex.
func LoadOBJ(path string) (*scene.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: open obj %q: %w", path, err)
	}
	defer f.Close()

	baseDir := filepath.Dir(path)

	var positions []math3d.Vec3
	var normals []math3d.Vec3
	var texcoords []math3d.Vec2
	materials := map[string]material{}

	type rawFace struct {
		indices     []faceIndex
		materialKey string
	}
	var faces []rawFace
	currentMaterial := ""

	scan := bufio.NewScanner(f)
	scan.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("loader: parse obj vertex: %w", err)
			}
			positions = append(positions, v)
		case "vn":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("loader: parse obj normal: %w", err)
			}
			normals = append(normals, v)
		case "vt":
			u, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, fmt.Errorf("loader: parse obj texcoord: %w", err)
			}
			v, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, fmt.Errorf("loader: parse obj texcoord: %w", err)
			}
			texcoords = append(texcoords, math3d.V2(u, v))
		case "mtllib":
			mtlPath := filepath.Join(baseDir, fields[1])
			parsed, err := parseMTL(mtlPath)
			if err != nil {
				return nil, fmt.Errorf("loader: parse mtllib %q: %w", fields[1], err)
			}
			for k, v := range parsed {
				materials[k] = v
			}
		case "usemtl":
			currentMaterial = fields[1]
		case "f":
			idx := make([]faceIndex, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				fi, err := parseFaceIndex(tok)
				if err != nil {
					return nil, fmt.Errorf("loader: parse obj face: %w", err)
				}
				idx = append(idx, fi)
			}
			faces = append(faces, rawFace{indices: idx, materialKey: currentMaterial})
		}
	}
	if err := scan.Err(); err != nil {
		return nil, fmt.Errorf("loader: scan obj %q: %w", path, err)
	}

	// A single implicit shape: `o`/`g` groups are not split into separate
	// shapes, and the shape's texture path is the first diffuse texture
	// named by any face's material.
	vertexBuf := []scene.Vertex{}
	indexBuf := []uint32{}
	indexMap := map[faceIndex]uint32{}
	texturePath := ""

	for _, face := range faces {
		mat := materials[face.materialKey]
		if mat.DiffuseTexture != "" && texturePath == "" {
			texturePath = filepath.Join(baseDir, mat.DiffuseTexture)
		}

		faceNormal := computeFaceNormal(positions, face.indices)

		// Fan triangulation: vertex 0, i, i+1 for i in [1, n-2].
		for i := 1; i+1 < len(face.indices); i++ {
			tri := [3]faceIndex{face.indices[0], face.indices[i], face.indices[i+1]}
			for _, fi := range tri {
				id, ok := indexMap[fi]
				if !ok {
					v := scene.Vertex{
						Pos:      math3d.V4FromV3(positions[fi.pos], 1),
						Ambient:  mat.Ambient,
						Diffuse:  mat.Diffuse,
						Emissive: mat.Emission,
					}
					if fi.norm >= 0 {
						v.Norm = normals[fi.norm]
					} else {
						v.Norm = faceNormal
					}
					if fi.tex >= 0 {
						v.UV = texcoords[fi.tex]
					}
					id = uint32(len(vertexBuf))
					vertexBuf = append(vertexBuf, v)
					indexMap[fi] = id
				}
				indexBuf = append(indexBuf, id)
			}
		}
	}

	vb := resource.New[scene.Vertex](len(vertexBuf))
	for i, v := range vertexBuf {
		vb.SetItem(i, v)
	}
	ib := resource.New[uint32](len(indexBuf))
	for i, idx := range indexBuf {
		ib.SetItem(i, idx)
	}

	return &scene.Mesh{Shapes: []scene.Shape{{
		Vertices:    vb,
		Indices:     ib,
		TexturePath: texturePath,
	}}}, nil
}

func computeFaceNormal(positions []math3d.Vec3, indices []faceIndex) math3d.Vec3 {
	if len(indices) < 3 {
		return math3d.Vec3{}
	}
	a := positions[indices[0].pos]
	b := positions[indices[1].pos]
	c := positions[indices[2].pos]
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}

func parseVec3(fields []string) (math3d.Vec3, error) {
	if len(fields) < 3 {
		return math3d.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return math3d.Vec3{}, err
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return math3d.Vec3{}, err
	}
	z, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return math3d.Vec3{}, err
	}
	return math3d.V3(x, y, z), nil
}

// parseFaceIndex parses one "v/vt/vn" token (vt and vn optional),
// converting wavefront's 1-indexed indices to 0-indexed, -1-for-absent
// form. Negative (relative) indices are not resolved; they are shifted
// down by one like positive ones.
func parseFaceIndex(tok string) (faceIndex, error) {
	parts := strings.Split(tok, "/")
	fi := faceIndex{pos: -1, norm: -1, tex: -1}

	v, err := strconv.Atoi(parts[0])
	if err != nil {
		return fi, fmt.Errorf("bad vertex index %q: %w", tok, err)
	}
	fi.pos = v - 1

	if len(parts) > 1 && parts[1] != "" {
		t, err := strconv.Atoi(parts[1])
		if err != nil {
			return fi, fmt.Errorf("bad texcoord index %q: %w", tok, err)
		}
		fi.tex = t - 1
	}
	if len(parts) > 2 && parts[2] != "" {
		n, err := strconv.Atoi(parts[2])
		if err != nil {
			return fi, fmt.Errorf("bad normal index %q: %w", tok, err)
		}
		fi.norm = n - 1
	}
	return fi, nil
}

func parseMTL(path string) (map[string]material, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mtl %q: %w", path, err)
	}
	defer f.Close()

	materials := map[string]material{}
	current := ""

	scan := bufio.NewScanner(f)
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "newmtl":
			current = fields[1]
			materials[current] = material{}
		case "Ka":
			m := materials[current]
			c, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("parse Ka: %w", err)
			}
			m.Ambient = colormodel.FColor{R: c.X, G: c.Y, B: c.Z}
			materials[current] = m
		case "Kd":
			m := materials[current]
			c, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("parse Kd: %w", err)
			}
			m.Diffuse = colormodel.FColor{R: c.X, G: c.Y, B: c.Z}
			materials[current] = m
		case "Ke":
			m := materials[current]
			c, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("parse Ke: %w", err)
			}
			m.Emission = colormodel.FColor{R: c.X, G: c.Y, B: c.Z}
			materials[current] = m
		case "map_Kd":
			m := materials[current]
			m.DiffuseTexture = fields[len(fields)-1]
			materials[current] = m
		}
	}
	if err := scan.Err(); err != nil {
		return nil, fmt.Errorf("scan mtl %q: %w", path, err)
	}
	return materials, nil
}
