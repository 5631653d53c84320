package model

import (
	"errors"
	"testing"

	"github.com/Faultbox/windturbine/pkg/formats"
	"github.com/Faultbox/windturbine/pkg/math"
)

func TestFromSTL(t *testing.T) {
	stl := &formats.STL{
		Name: "blade",
		Triangles: []formats.STLTriangle{
			{Normal: [3]float32{0, 0, 1}, Vertices: [3][3]float32{{0, 0, 0}, {2, 0, 0}, {0, 2, 0}}},
			// Zero normal is recomputed from the winding
			{Vertices: [3][3]float32{{0, 0, 1}, {0, 2, 1}, {2, 0, 1}}},
			// Degenerate facet is dropped
			{Vertices: [3][3]float32{{1, 1, 1}, {1, 1, 1}, {2, 2, 2}}},
		},
	}

	mesh, err := FromSTL(stl, BuildOptions{})
	if err != nil {
		t.Fatalf("FromSTL failed: %v", err)
	}

	if mesh.TriangleCount() != 2 {
		t.Fatalf("expected 2 triangles, got %d", mesh.TriangleCount())
	}
	if len(mesh.Vertices) != 6 {
		t.Errorf("expected 6 vertices, got %d", len(mesh.Vertices))
	}
	if mesh.Vertices[3].Normal != [3]float32{0, 0, -1} {
		t.Errorf("recomputed normal = %v, want (0, 0, -1)", mesh.Vertices[3].Normal)
	}
	want := Bounds{Min: math.Vec3{}, Max: math.Vec3{X: 2, Y: 2, Z: 1}}
	if mesh.Bounds != want {
		t.Errorf("Bounds = %+v, want %+v", mesh.Bounds, want)
	}
}

func TestFromSTLScaleAndCenter(t *testing.T) {
	stl := &formats.STL{
		Triangles: []formats.STLTriangle{
			{Normal: [3]float32{0, 0, 1}, Vertices: [3][3]float32{{0, 0, 0}, {10, 0, 0}, {0, 20, 0}}},
		},
	}

	mesh, err := FromSTL(stl, BuildOptions{Scale: 0.001, Center: true})
	if err != nil {
		t.Fatalf("FromSTL failed: %v", err)
	}

	if c := mesh.Bounds.Center(); !c.ApproxEqual(math.Vec3{}, 1e-7) {
		t.Errorf("centered mesh has center %v", c)
	}
	if s := mesh.Bounds.Size(); !s.ApproxEqual(math.Vec3{X: 0.01, Y: 0.02}, 1e-7) {
		t.Errorf("scaled mesh has size %v", s)
	}
	if p := mesh.Vertices[0].Position; !toVec(p).ApproxEqual(math.Vec3{X: -0.005, Y: -0.01}, 1e-7) {
		t.Errorf("first vertex at %v", p)
	}
}

func TestFromSTLEmpty(t *testing.T) {
	if _, err := FromSTL(&formats.STL{}, BuildOptions{}); !errors.Is(err, ErrEmptyMesh) {
		t.Errorf("expected ErrEmptyMesh, got %v", err)
	}
}

func TestBox(t *testing.T) {
	mesh := Box("placeholder", math.Vec3{X: 0.2, Y: 0.2, Z: 0.2})

	if mesh.TriangleCount() != 12 {
		t.Fatalf("expected 12 triangles, got %d", mesh.TriangleCount())
	}
	if len(mesh.Vertices) != 24 {
		t.Errorf("expected 24 vertices, got %d", len(mesh.Vertices))
	}
	if mesh.Bounds.Size() != (math.Vec3{X: 0.2, Y: 0.2, Z: 0.2}) {
		t.Errorf("unexpected box size %v", mesh.Bounds.Size())
	}

	// Every triangle winds counter-clockwise around its outward normal.
	for i := 0; i < len(mesh.Indices); i += 3 {
		a := mesh.Vertices[mesh.Indices[i]]
		b := mesh.Vertices[mesh.Indices[i+1]]
		c := mesh.Vertices[mesh.Indices[i+2]]
		cross := toVec(b.Position).Sub(toVec(a.Position)).Cross(toVec(c.Position).Sub(toVec(a.Position)))
		if cross.Dot(toVec(a.Normal)) <= 0 {
			t.Errorf("triangle %d winds against its normal %v", i/3, a.Normal)
		}
	}
}
