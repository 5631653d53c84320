package lighting

import (
	"testing"

	"github.com/Faultbox/windturbine/internal/config"
	"github.com/Faultbox/windturbine/pkg/math"
)

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name               string
		azimuth, elevation float32
		want               math.Vec3
	}{
		{"horizon front", 0, 0, math.Vec3{Z: 1}},
		{"horizon right", 90, 0, math.Vec3{X: 1}},
		{"zenith", 0, 90, math.Vec3{Y: 1}},
		{"behind", 180, 0, math.Vec3{Z: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SunDirection(tt.azimuth, tt.elevation)
			if !got.ApproxEqual(tt.want, 1e-5) {
				t.Errorf("SunDirection(%v, %v) = %v, want %v", tt.azimuth, tt.elevation, got, tt.want)
			}
		})
	}
}

func TestFromConfigIsUnit(t *testing.T) {
	dir, ambient := FromConfig(config.Default().Graphics.Light)
	if l := dir.Length(); l < 0.9999 || l > 1.0001 {
		t.Errorf("light direction length = %f, want 1", l)
	}
	if dir.Y <= 0 {
		t.Errorf("default light should come from above, got %v", dir)
	}
	if ambient != 0.35 {
		t.Errorf("ambient = %f, want 0.35", ambient)
	}
}
