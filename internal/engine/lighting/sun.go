// Package lighting provides lighting utilities for 3D rendering.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/windturbine/internal/config"
	"github.com/Faultbox/windturbine/pkg/math"
)

// SunDirection converts azimuth/elevation angles in degrees to a unit vector
// pointing towards the light. Azimuth turns around +Y starting at +Z,
// elevation rises from the horizon.
func SunDirection(azimuth, elevation float32) math.Vec3 {
	sa, ca := math32.Sincos(azimuth * math32.Pi / 180)
	se, ce := math32.Sincos(elevation * math32.Pi / 180)

	return math.Vec3{X: ce * sa, Y: se, Z: ce * ca}
}

// FromConfig returns the light direction and ambient term for cfg.
func FromConfig(cfg config.LightConfig) (math.Vec3, float32) {
	return SunDirection(cfg.Azimuth, cfg.Elevation), cfg.Ambient
}
