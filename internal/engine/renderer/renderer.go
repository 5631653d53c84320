// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/windturbine/internal/config"
	"github.com/Faultbox/windturbine/internal/engine/camera"
	"github.com/Faultbox/windturbine/internal/engine/renderer/shaders"
	"github.com/Faultbox/windturbine/internal/engine/shader"
	"github.com/Faultbox/windturbine/internal/scene"
	"github.com/Faultbox/windturbine/pkg/math"
)

// Renderer draws a scene graph with the normal-coloured mesh shader.
type Renderer struct {
	log    *zap.Logger
	width  int
	height int

	program     uint32
	locProj     int32
	locView     int32
	locModel    int32
	locLightDir int32
	locAmbient  int32

	// Draw calls issued by the last Render
	drawCalls int
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg config.GraphicsConfig, width, height int, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{log: log}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.ClearColor(cfg.ClearColor[0], cfg.ClearColor[1], cfg.ClearColor[2], 1.0)

	program, err := shader.CompileProgram(shaders.MeshVertexShader, shaders.MeshFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	locs, err := shader.Uniforms(program, "uProjection", "uView", "uModel", "uLightDir", "uAmbient")
	if err != nil {
		gl.DeleteProgram(program)
		return nil, err
	}

	r.program = program
	r.locProj = locs["uProjection"]
	r.locView = locs["uView"]
	r.locModel = locs["uModel"]
	r.locLightDir = locs["uLightDir"]
	r.locAmbient = locs["uAmbient"]

	r.Resize(width, height)
	log.Debug("shader program created", zap.Uint32("program", program))
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}

// Resize updates the viewport to the drawable size in pixels.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.height == 0 {
		return 1
	}
	return float32(r.width) / float32(r.height)
}

// Render clears the frame and draws every visible mesh in s from cam.
func (r *Renderer) Render(s *scene.Scene, cam *camera.OrbitCamera) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	proj := cam.ProjectionMatrix(r.Aspect())
	view := cam.ViewMatrix()
	light := s.LightDir.Normalize()

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.locProj, 1, false, proj.Ptr())
	gl.UniformMatrix4fv(r.locView, 1, false, view.Ptr())
	gl.Uniform3f(r.locLightDir, light.X, light.Y, light.Z)
	gl.Uniform1f(r.locAmbient, s.Ambient)

	r.drawCalls = 0
	s.Root.Walk(func(n *scene.Node, world math.Mat4) {
		gl.UniformMatrix4fv(r.locModel, 1, false, world.Ptr())
		n.Mesh.Draw()
		r.drawCalls++
	})

	gl.UseProgram(0)
}

// ReadPixels returns the current back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	pixels := make([]byte, r.width*r.height*4)
	if len(pixels) == 0 {
		return nil, 0, 0
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(r.width), int32(r.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, r.width, r.height
}

// DrawCalls returns the number of meshes drawn by the last Render.
func (r *Renderer) DrawCalls() int {
	return r.drawCalls
}
