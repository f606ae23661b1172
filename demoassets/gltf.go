// Package demoassets loads already-parsed vertex arrays for the cmd/demo
// program to submit to the pipeline. The pipeline itself never loads
// meshes; this package is the caller-side collaborator that produces the
// Vertex slices pipeline.Context.DrawTriangle expects.
package demoassets

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"terminalgl/mathx"
	"terminalgl/pipeline"
)

// Mesh is one loaded glTF primitive: a flat vertex array plus the index
// buffer into it, and the VAO tag describing which attributes beyond
// position are meaningful, derived from which of NORMAL, COLOR_0 and
// TEXCOORD_0 the source primitive carries.
type Mesh struct {
	Vertices []pipeline.Vertex
	Indices  []uint32
	Attr     pipeline.VertexAttr
}

// Triangles walks m.Indices three at a time and returns the corresponding
// vertex triples, ready for Context.DrawTriangle. A malformed index count
// (not a multiple of 3) silently drops the trailing partial triangle; the
// source file is assumed valid, this only guards a truncated read.
func (m Mesh) Triangles() [][3]pipeline.Vertex {
	n := len(m.Indices) / 3
	out := make([][3]pipeline.Vertex, 0, n)
	for i := 0; i < n; i++ {
		a, b, c := m.Indices[i*3], m.Indices[i*3+1], m.Indices[i*3+2]
		out = append(out, [3]pipeline.Vertex{m.Vertices[a], m.Vertices[b], m.Vertices[c]})
	}
	return out
}

// Load opens a .glb/.gltf file and returns its first mesh primitive as a
// Mesh. Scene graphs, node hierarchies, materials, and textures are all
// ignored; this loader exists only to produce the vertex arrays the
// pipeline consumes, so it flattens straight to the first primitive.
func Load(path string) (Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return Mesh{}, fmt.Errorf("demoassets: open %q: %w", path, err)
	}
	if len(doc.Meshes) == 0 || len(doc.Meshes[0].Primitives) == 0 {
		return Mesh{}, fmt.Errorf("demoassets: %q has no mesh primitives", path)
	}
	prim := doc.Meshes[0].Primitives[0]

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return Mesh{}, fmt.Errorf("demoassets: %q primitive has no POSITION attribute", path)
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return Mesh{}, fmt.Errorf("demoassets: positions: %w", err)
	}

	var normals [][3]float32
	var uvs [][2]float32
	var colors [][4]uint8
	hasNormal, hasColor, hasTexcoord := false, false, false

	if idx, ok := prim.Attributes["NORMAL"]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err == nil {
			hasNormal = true
		}
	}
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err == nil {
			hasTexcoord = true
		}
	}
	if idx, ok := prim.Attributes["COLOR_0"]; ok {
		if colors, err = modeler.ReadColor(doc, doc.Accessors[idx], nil); err == nil {
			hasColor = true
		}
	}

	verts := make([]pipeline.Vertex, len(positions))
	for i, p := range positions {
		v := pipeline.Vertex{
			Position: mathx.NewVec3(p[0], p[1], p[2]),
			Color:    pipeline.Color{R: 1, G: 1, B: 1, A: 1},
		}
		if i < len(normals) {
			v.Normal = mathx.NewVec3(normals[i][0], normals[i][1], normals[i][2])
		}
		if i < len(uvs) {
			v.Texcoord = mathx.NewVec2(uvs[i][0], uvs[i][1])
		}
		if i < len(colors) {
			c := colors[i]
			v.Color = pipeline.Color{
				R: float32(c[0]) / 255,
				G: float32(c[1]) / 255,
				B: float32(c[2]) / 255,
				A: float32(c[3]) / 255,
			}
		}
		verts[i] = v
	}

	var indices []uint32
	if prim.Indices != nil {
		if indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil); err != nil {
			return Mesh{}, fmt.Errorf("demoassets: indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(verts))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	return Mesh{Vertices: verts, Indices: indices, Attr: vaoTag(hasColor, hasNormal, hasTexcoord)}, nil
}

// vaoTag maps which attributes a loaded primitive carries onto the
// closed VAO-configuration enum.
func vaoTag(color, normal, texcoord bool) pipeline.VertexAttr {
	switch {
	case color && normal && texcoord:
		return pipeline.AttrPositionColorNormalTexcoord
	case normal && texcoord:
		return pipeline.AttrPositionNormalTexcoord
	case color && texcoord:
		return pipeline.AttrPositionColorTexcoord
	case color && normal:
		return pipeline.AttrPositionColorNormal
	case texcoord:
		return pipeline.AttrPositionTexcoord
	case normal:
		return pipeline.AttrPositionNormal
	case color:
		return pipeline.AttrPositionColor
	default:
		return pipeline.AttrPosition
	}
}
