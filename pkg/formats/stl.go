// Package formats provides parsers for the mesh file formats the viewer loads.
//
// STL (stereolithography) files come in two encodings: a binary layout of
// 50-byte facets after an 80-byte header, and a line-based ASCII form.
// ParseSTL accepts both.
package formats

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// STL format errors.
var (
	ErrTruncatedSTLData     = errors.New("truncated STL data")
	ErrInvalidSTLSyntax     = errors.New("invalid ASCII STL syntax")
	ErrInvalidTriangleCount = errors.New("invalid STL triangle count")
)

const (
	stlHeaderSize   = 80
	stlTriangleSize = 50 // normal + 3 vertices (12 float32) + uint16 attribute
	stlMaxTriangles = 10_000_000
)

// STLTriangle is one facet.
type STLTriangle struct {
	Normal    [3]float32
	Vertices  [3][3]float32
	Attribute uint16 // Attribute byte count, binary only
}

// STL is a parsed mesh.
type STL struct {
	Name      string // Solid name (ASCII) or trimmed header (binary)
	Binary    bool
	Triangles []STLTriangle
}

// TriangleCount returns the number of facets.
func (s *STL) TriangleCount() int {
	return len(s.Triangles)
}

// Bounds returns the axis-aligned bounding box of all vertices.
// An empty mesh returns zero bounds.
func (s *STL) Bounds() (min, max [3]float32) {
	if len(s.Triangles) == 0 {
		return min, max
	}
	min = s.Triangles[0].Vertices[0]
	max = min
	for _, tri := range s.Triangles {
		for _, v := range tri.Vertices {
			for axis := 0; axis < 3; axis++ {
				if v[axis] < min[axis] {
					min[axis] = v[axis]
				}
				if v[axis] > max[axis] {
					max[axis] = v[axis]
				}
			}
		}
	}
	return min, max
}

// ParseSTL parses binary or ASCII STL data.
// Binary files may also start with "solid", so the size check decides first.
func ParseSTL(data []byte) (*STL, error) {
	if isBinarySTL(data) {
		return parseBinarySTL(data)
	}
	if bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid")) {
		return parseASCIISTL(data)
	}
	return parseBinarySTL(data)
}

// ParseSTLFile reads and parses an STL file.
func ParseSTLFile(path string) (*STL, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading STL file: %w", err)
	}
	return ParseSTL(data)
}

func isBinarySTL(data []byte) bool {
	if len(data) < stlHeaderSize+4 {
		return false
	}
	count := binary.LittleEndian.Uint32(data[stlHeaderSize:])
	return uint64(len(data)) == stlHeaderSize+4+uint64(count)*stlTriangleSize
}

func parseBinarySTL(data []byte) (*STL, error) {
	if len(data) < stlHeaderSize+4 {
		return nil, ErrTruncatedSTLData
	}

	count := binary.LittleEndian.Uint32(data[stlHeaderSize:])
	if count > stlMaxTriangles {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTriangleCount, count)
	}
	if uint64(len(data)) < stlHeaderSize+4+uint64(count)*stlTriangleSize {
		return nil, fmt.Errorf("%w: header declares %d triangles", ErrTruncatedSTLData, count)
	}

	stl := &STL{
		Name:      strings.TrimRight(string(data[:stlHeaderSize]), "\x00 "),
		Binary:    true,
		Triangles: make([]STLTriangle, count),
	}

	r := bytes.NewReader(data[stlHeaderSize+4:])
	for i := range stl.Triangles {
		if err := binary.Read(r, binary.LittleEndian, &stl.Triangles[i]); err != nil {
			return nil, fmt.Errorf("reading triangle %d: %w", i, ErrTruncatedSTLData)
		}
	}

	return stl, nil
}

// parseASCIISTL reads the token stream
// solid name (facet normal x y z outer loop (vertex x y z){3} endloop endfacet)* endsolid.
func parseASCIISTL(data []byte) (*STL, error) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	stl := &STL{}
	lineNo := 0
	var (
		cur      STLTriangle
		inFacet  bool
		vertexID int
	)

	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			stl.Name = strings.Join(fields[1:], " ")
		case "facet":
			if inFacet || len(fields) != 5 || fields[1] != "normal" {
				return nil, fmt.Errorf("%w: line %d: bad facet", ErrInvalidSTLSyntax, lineNo)
			}
			n, err := parseVec3(fields[2:])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidSTLSyntax, lineNo, err)
			}
			cur = STLTriangle{Normal: n}
			inFacet = true
			vertexID = 0
		case "outer", "endloop":
			// Loop markers carry no data
		case "vertex":
			if !inFacet || vertexID >= 3 || len(fields) != 4 {
				return nil, fmt.Errorf("%w: line %d: unexpected vertex", ErrInvalidSTLSyntax, lineNo)
			}
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidSTLSyntax, lineNo, err)
			}
			cur.Vertices[vertexID] = v
			vertexID++
		case "endfacet":
			if !inFacet || vertexID != 3 {
				return nil, fmt.Errorf("%w: line %d: facet has %d vertices", ErrInvalidSTLSyntax, lineNo, vertexID)
			}
			stl.Triangles = append(stl.Triangles, cur)
			inFacet = false
		case "endsolid":
			if inFacet {
				return nil, fmt.Errorf("%w: line %d: endsolid inside facet", ErrInvalidSTLSyntax, lineNo)
			}
			return stl, nil
		default:
			return nil, fmt.Errorf("%w: line %d: unknown keyword %q", ErrInvalidSTLSyntax, lineNo, fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scanning STL: %w", err)
	}

	return nil, fmt.Errorf("%w: missing endsolid", ErrTruncatedSTLData)
}

func parseVec3(fields []string) ([3]float32, error) {
	var v [3]float32
	if len(fields) != 3 {
		return v, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return v, err
		}
		v[i] = float32(x)
	}
	return v, nil
}
