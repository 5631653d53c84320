package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// makeBinarySTL builds a binary STL with the given triangles.
func makeBinarySTL(header string, tris []STLTriangle) []byte {
	var buf bytes.Buffer
	h := make([]byte, stlHeaderSize)
	copy(h, header)
	buf.Write(h)
	binary.Write(&buf, binary.LittleEndian, uint32(len(tris)))
	for _, tri := range tris {
		binary.Write(&buf, binary.LittleEndian, tri)
	}
	return buf.Bytes()
}

var unitTriangle = STLTriangle{
	Normal:   [3]float32{0, 0, 1},
	Vertices: [3][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
}

const asciiTriangle = `solid blade
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
  facet normal 0 0 -1
    outer loop
      vertex 0 0 0.5
      vertex 0 -2 0.5
      vertex 1.5e-1 0 0.5
    endloop
  endfacet
endsolid blade
`

func TestParseSTLBinary(t *testing.T) {
	data := makeBinarySTL("turbine blade", []STLTriangle{unitTriangle, unitTriangle})

	stl, err := ParseSTL(data)
	if err != nil {
		t.Fatalf("ParseSTL failed: %v", err)
	}
	if !stl.Binary {
		t.Error("expected binary STL")
	}
	if stl.Name != "turbine blade" {
		t.Errorf("expected name 'turbine blade', got %q", stl.Name)
	}
	if stl.TriangleCount() != 2 {
		t.Fatalf("expected 2 triangles, got %d", stl.TriangleCount())
	}
	if stl.Triangles[1] != unitTriangle {
		t.Errorf("triangle mismatch: %+v", stl.Triangles[1])
	}
}

func TestParseSTLBinaryWithSolidHeader(t *testing.T) {
	// Many exporters write "solid" into binary headers too.
	data := makeBinarySTL("solid exported", []STLTriangle{unitTriangle})

	stl, err := ParseSTL(data)
	if err != nil {
		t.Fatalf("ParseSTL failed: %v", err)
	}
	if !stl.Binary || stl.TriangleCount() != 1 {
		t.Errorf("expected 1 binary triangle, got binary=%v count=%d", stl.Binary, stl.TriangleCount())
	}
}

func TestParseSTLASCII(t *testing.T) {
	stl, err := ParseSTL([]byte(asciiTriangle))
	if err != nil {
		t.Fatalf("ParseSTL failed: %v", err)
	}
	if stl.Binary {
		t.Error("expected ASCII STL")
	}
	if stl.Name != "blade" {
		t.Errorf("expected name 'blade', got %q", stl.Name)
	}
	if stl.TriangleCount() != 2 {
		t.Fatalf("expected 2 triangles, got %d", stl.TriangleCount())
	}
	if stl.Triangles[0] != unitTriangle {
		t.Errorf("first triangle mismatch: %+v", stl.Triangles[0])
	}
	if got := stl.Triangles[1].Vertices[2][0]; got != 0.15 {
		t.Errorf("expected exponent notation to parse as 0.15, got %f", got)
	}

	min, max := stl.Bounds()
	if min != [3]float32{0, -2, 0} || max != [3]float32{1, 1, 0.5} {
		t.Errorf("Bounds() = %v %v", min, max)
	}
}

func TestParseSTLErrors(t *testing.T) {
	full := makeBinarySTL("x", []STLTriangle{unitTriangle, unitTriangle})

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"empty data", []byte{}, ErrTruncatedSTLData},
		{"short header", make([]byte, 40), ErrTruncatedSTLData},
		{"missing triangles", full[:len(full)-10], ErrTruncatedSTLData},
		{"ascii missing endsolid", []byte("solid x\n"), ErrTruncatedSTLData},
		{"ascii bad keyword", []byte("solid x\nfacet normal 0 0 1\nbogus\n"), ErrInvalidSTLSyntax},
		{"ascii bad number", []byte("solid x\nfacet normal 0 zero 1\n"), ErrInvalidSTLSyntax},
		{"ascii two vertices", []byte("solid x\nfacet normal 0 0 1\nouter loop\nvertex 0 0 0\nvertex 1 0 0\nendloop\nendfacet\nendsolid\n"), ErrInvalidSTLSyntax},
		{"ascii vertex outside facet", []byte("solid x\nvertex 0 0 0\n"), ErrInvalidSTLSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSTL(tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParseSTLTriangleCountLimit(t *testing.T) {
	data := make([]byte, stlHeaderSize+4)
	binary.LittleEndian.PutUint32(data[stlHeaderSize:], stlMaxTriangles+1)

	if _, err := ParseSTL(data); !errors.Is(err, ErrInvalidTriangleCount) {
		t.Errorf("expected ErrInvalidTriangleCount, got %v", err)
	}
}

func TestParseSTLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blade.stl")
	if err := os.WriteFile(path, []byte(asciiTriangle), 0644); err != nil {
		t.Fatal(err)
	}

	stl, err := ParseSTLFile(path)
	if err != nil {
		t.Fatalf("ParseSTLFile failed: %v", err)
	}
	if stl.TriangleCount() != 2 {
		t.Errorf("expected 2 triangles, got %d", stl.TriangleCount())
	}

	if _, err := ParseSTLFile(filepath.Join(t.TempDir(), "missing.stl")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSTLBoundsEmpty(t *testing.T) {
	min, max := (&STL{}).Bounds()
	if min != ([3]float32{}) || max != ([3]float32{}) {
		t.Errorf("empty mesh bounds = %v %v, want zero", min, max)
	}
}
