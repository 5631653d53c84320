package scene

import "github.com/Faultbox/windturbine/pkg/math"

// Scene is the root of the graph plus frame-wide lighting.
type Scene struct {
	Root *Node

	// Directional light used for the shading term on top of the normal colouring.
	LightDir math.Vec3
	Ambient  float32
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{
		Root:     NewNode("root"),
		LightDir: math.Vec3{X: 0.4, Y: 0.8, Z: 0.6},
		Ambient:  0.35,
	}
}

// Add attaches a node to the scene root.
func (s *Scene) Add(n *Node) {
	s.Root.Add(n)
}

// Drawables returns the number of visible nodes with geometry.
func (s *Scene) Drawables() int {
	count := 0
	s.Root.Walk(func(*Node, math.Mat4) { count++ })
	return count
}
