// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// MeshVertexShader transforms mesh vertices and passes world and view normals.
//
//go:embed mesh.vert
var MeshVertexShader string

// MeshFragmentShader colours fragments by their view-space normal.
//
//go:embed mesh.frag
var MeshFragmentShader string
