package model

import "github.com/Faultbox/windturbine/pkg/math"

// Box builds an axis-aligned box centered on the origin, four vertices per face
// so each face keeps a flat normal.
func Box(name string, size math.Vec3) *Mesh {
	h := size.Scale(0.5)
	mesh := &Mesh{Name: name}

	faces := []struct {
		normal  math.Vec3
		corners [4]math.Vec3
	}{
		{math.Vec3{X: 1}, [4]math.Vec3{{X: h.X, Y: -h.Y, Z: h.Z}, {X: h.X, Y: -h.Y, Z: -h.Z}, {X: h.X, Y: h.Y, Z: -h.Z}, {X: h.X, Y: h.Y, Z: h.Z}}},
		{math.Vec3{X: -1}, [4]math.Vec3{{X: -h.X, Y: -h.Y, Z: -h.Z}, {X: -h.X, Y: -h.Y, Z: h.Z}, {X: -h.X, Y: h.Y, Z: h.Z}, {X: -h.X, Y: h.Y, Z: -h.Z}}},
		{math.Vec3{Y: 1}, [4]math.Vec3{{X: -h.X, Y: h.Y, Z: h.Z}, {X: h.X, Y: h.Y, Z: h.Z}, {X: h.X, Y: h.Y, Z: -h.Z}, {X: -h.X, Y: h.Y, Z: -h.Z}}},
		{math.Vec3{Y: -1}, [4]math.Vec3{{X: -h.X, Y: -h.Y, Z: -h.Z}, {X: h.X, Y: -h.Y, Z: -h.Z}, {X: h.X, Y: -h.Y, Z: h.Z}, {X: -h.X, Y: -h.Y, Z: h.Z}}},
		{math.Vec3{Z: 1}, [4]math.Vec3{{X: -h.X, Y: -h.Y, Z: h.Z}, {X: h.X, Y: -h.Y, Z: h.Z}, {X: h.X, Y: h.Y, Z: h.Z}, {X: -h.X, Y: h.Y, Z: h.Z}}},
		{math.Vec3{Z: -1}, [4]math.Vec3{{X: h.X, Y: -h.Y, Z: -h.Z}, {X: -h.X, Y: -h.Y, Z: -h.Z}, {X: -h.X, Y: h.Y, Z: -h.Z}, {X: h.X, Y: h.Y, Z: -h.Z}}},
	}

	for _, f := range faces {
		base := uint32(len(mesh.Vertices))
		for _, c := range f.corners {
			mesh.Vertices = append(mesh.Vertices, Vertex{Position: c.Array(), Normal: f.normal.Array()})
		}
		mesh.Indices = append(mesh.Indices, base, base+1, base+2, base, base+2, base+3)
	}

	mesh.Bounds = Bounds{Min: h.Scale(-1), Max: h}
	return mesh
}
