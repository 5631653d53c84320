// Package camera provides the orbit camera used by the viewer.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/windturbine/internal/config"
	"github.com/Faultbox/windturbine/pkg/math"
)

const (
	// pitchLimit keeps the camera off the poles so LookAt stays defined.
	pitchLimit = math32.Pi/2 - 0.01
	// settleEpsilon is the pending motion below which damping stops.
	settleEpsilon = 1e-6
	minZoomScale  = 0.1
)

var worldUp = math.Vec3{Y: 1}

// OrbitCamera orbits around a target point. Input accumulates pending motion
// which Update applies once per frame, optionally damped.
type OrbitCamera struct {
	Target math.Vec3

	// Spherical coordinates around Target
	Distance float32
	Pitch    float32 // Elevation, radians
	Yaw      float32 // Azimuth around +Y, radians

	// Projection
	FOV  float32 // Vertical field of view, radians
	Near float32
	Far  float32

	// Constraints
	MinDistance float32
	MaxDistance float32

	// Sensitivity
	RotateSpeed float32
	PanSpeed    float32
	ZoomSpeed   float32

	EnableDamping bool
	DampingFactor float32

	// Pending motion
	deltaYaw   float32
	deltaPitch float32
	panOffset  math.Vec3
	zoomScale  float32
}

// NewOrbitCamera creates an orbit camera from config, placed on +Z of the target.
func NewOrbitCamera(cfg config.CameraConfig) *OrbitCamera {
	return &OrbitCamera{
		Target:        math.Vec3{X: cfg.Target[0], Y: cfg.Target[1], Z: cfg.Target[2]},
		Distance:      cfg.Distance,
		FOV:           cfg.FOV * math32.Pi / 180,
		Near:          cfg.Near,
		Far:           cfg.Far,
		MinDistance:   cfg.MinDistance,
		MaxDistance:   cfg.MaxDistance,
		RotateSpeed:   cfg.RotateSpeed,
		PanSpeed:      cfg.PanSpeed,
		ZoomSpeed:     cfg.ZoomSpeed,
		EnableDamping: cfg.EnableDamping,
		DampingFactor: cfg.DampingFactor,
		zoomScale:     1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	sp, cp := math32.Sincos(c.Pitch)
	sy, cy := math32.Sincos(c.Yaw)
	offset := math.Vec3{
		X: c.Distance * cp * sy,
		Y: c.Distance * sp,
		Z: c.Distance * cp * cy,
	}
	return c.Target.Add(offset)
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Target, worldUp)
}

// ProjectionMatrix returns the perspective projection for the given aspect ratio.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(c.FOV, aspect, c.Near, c.Far)
}

// Rotate queues an orbit from a mouse drag of dx, dy pixels. A drag across
// the full viewport height turns one full circle at RotateSpeed 1.
func (c *OrbitCamera) Rotate(dx, dy, viewportHeight float32) {
	if viewportHeight <= 0 {
		return
	}
	c.deltaYaw -= 2 * math32.Pi * dx / viewportHeight * c.RotateSpeed
	c.deltaPitch += 2 * math32.Pi * dy / viewportHeight * c.RotateSpeed
}

// Pan queues a target translation from a mouse drag of dx, dy pixels, scaled
// so the point under the cursor follows it at PanSpeed 1.
func (c *OrbitCamera) Pan(dx, dy, viewportHeight float32) {
	if viewportHeight <= 0 {
		return
	}
	visible := 2 * c.Distance * math32.Tan(c.FOV/2)
	scale := visible / viewportHeight * c.PanSpeed

	forward := c.Target.Sub(c.Position()).Normalize()
	right := forward.Cross(worldUp).Normalize()
	up := right.Cross(forward)

	c.panOffset = c.panOffset.
		Sub(right.Scale(dx * scale)).
		Add(up.Scale(dy * scale))
}

// Zoom queues a dolly from a scroll wheel delta. Positive values move closer.
func (c *OrbitCamera) Zoom(delta float32) {
	c.zoomScale *= 1 - delta*c.ZoomSpeed
	if c.zoomScale < minZoomScale {
		c.zoomScale = minZoomScale
	}
}

// Update applies pending motion. Call once per frame.
func (c *OrbitCamera) Update() {
	factor := float32(1)
	if c.EnableDamping {
		factor = c.DampingFactor
	}

	c.Yaw += c.deltaYaw * factor
	c.Pitch = clamp(c.Pitch+c.deltaPitch*factor, -pitchLimit, pitchLimit)
	c.Target = c.Target.Add(c.panOffset.Scale(factor))
	c.Distance = clamp(c.Distance*c.zoomScale, c.MinDistance, c.MaxDistance)
	c.zoomScale = 1

	if !c.EnableDamping {
		c.deltaYaw, c.deltaPitch, c.panOffset = 0, 0, math.Vec3{}
		return
	}

	c.deltaYaw *= 1 - factor
	c.deltaPitch *= 1 - factor
	c.panOffset = c.panOffset.Scale(1 - factor)

	if math32.Abs(c.deltaYaw) < settleEpsilon {
		c.deltaYaw = 0
	}
	if math32.Abs(c.deltaPitch) < settleEpsilon {
		c.deltaPitch = 0
	}
	if c.panOffset.Length() < settleEpsilon {
		c.panOffset = math.Vec3{}
	}
}

// Moving reports whether damped motion is still pending.
func (c *OrbitCamera) Moving() bool {
	return c.deltaYaw != 0 || c.deltaPitch != 0 || c.panOffset != (math.Vec3{})
}

func clamp(v, lo, hi float32) float32 {
	if hi > lo {
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
	}
	return v
}
