package model

import (
	"errors"

	"github.com/Faultbox/windturbine/pkg/formats"
	"github.com/Faultbox/windturbine/pkg/math"
)

// ErrEmptyMesh is returned when no usable triangle remains after building.
var ErrEmptyMesh = errors.New("mesh has no usable triangles")

// degenerateArea is the squared cross-product magnitude below which a facet is dropped.
const degenerateArea = 1e-12

// FromSTL builds a flat-shaded mesh from STL facets. Facet normals stored as
// zero are recomputed from the winding; degenerate facets are skipped.
func FromSTL(stl *formats.STL, opts BuildOptions) (*Mesh, error) {
	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}

	mesh := &Mesh{
		Name:     stl.Name,
		Vertices: make([]Vertex, 0, len(stl.Triangles)*3),
		Indices:  make([]uint32, 0, len(stl.Triangles)*3),
	}

	for _, tri := range stl.Triangles {
		v0 := toVec(tri.Vertices[0]).Scale(scale)
		v1 := toVec(tri.Vertices[1]).Scale(scale)
		v2 := toVec(tri.Vertices[2]).Scale(scale)

		cross := v1.Sub(v0).Cross(v2.Sub(v0))
		if cross.Dot(cross) < degenerateArea {
			continue
		}

		normal := toVec(tri.Normal)
		if normal.Dot(normal) == 0 {
			normal = cross
		}
		mesh.addTriangle(v0, v1, v2, normal.Normalize())
	}

	if len(mesh.Indices) == 0 {
		return nil, ErrEmptyMesh
	}

	mesh.computeBounds()
	if opts.Center {
		mesh.Recenter()
	}
	return mesh, nil
}

// Recenter translates the vertices so the bounding box is centered on the origin.
func (m *Mesh) Recenter() {
	c := m.Bounds.Center()
	for i := range m.Vertices {
		p := toVec(m.Vertices[i].Position).Sub(c)
		m.Vertices[i].Position = p.Array()
	}
	m.Bounds = Bounds{Min: m.Bounds.Min.Sub(c), Max: m.Bounds.Max.Sub(c)}
}

func (m *Mesh) addTriangle(v0, v1, v2, normal math.Vec3) {
	base := uint32(len(m.Vertices))
	n := normal.Array()
	m.Vertices = append(m.Vertices,
		Vertex{Position: v0.Array(), Normal: n},
		Vertex{Position: v1.Array(), Normal: n},
		Vertex{Position: v2.Array(), Normal: n},
	)
	m.Indices = append(m.Indices, base, base+1, base+2)
}

func (m *Mesh) computeBounds() {
	if len(m.Vertices) == 0 {
		m.Bounds = Bounds{}
		return
	}
	min := toVec(m.Vertices[0].Position)
	max := min
	for _, v := range m.Vertices[1:] {
		p := toVec(v.Position)
		min = min.Min(p)
		max = max.Max(p)
	}
	m.Bounds = Bounds{Min: min, Max: max}
}

func toVec(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
