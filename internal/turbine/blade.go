// Package turbine animates the wind turbine: blade engagement, hub spin ramping
// and the controller that applies both to the scene once per tick.
package turbine

import (
	"github.com/Faultbox/windturbine/internal/config"
	"github.com/Faultbox/windturbine/pkg/math"
)

// BladeCount is the number of blades on the hub.
const BladeCount = config.BladeCount

// Blade is one blade's fixed poses and its current position.
type Blade struct {
	Index      int
	Engaged    math.Vec3
	Disengaged math.Vec3
	Step       math.Vec3 // Per-axis maximum displacement per tick
	Current    math.Vec3
}

// Target returns the pose the blade is heading for.
func (b Blade) Target(engaged bool) math.Vec3 {
	if engaged {
		return b.Engaged
	}
	return b.Disengaged
}

// Advance returns the blade moved one tick toward the pose selected by engaged.
func (b Blade) Advance(engaged bool) Blade {
	dir := Disengaging
	if engaged {
		dir = Engaging
	}
	b.Current = AdvanceBlade(b.Current, b.Target(engaged), b.Step, dir)
	return b
}

// AtRest reports whether the blade has settled at the pose selected by engaged.
func (b Blade) AtRest(engaged bool) bool {
	return Settled(b.Current, b.Target(engaged), b.Step)
}

func bladeFromConfig(i int, bc config.BladeConfig, startDisengaged bool) Blade {
	b := Blade{
		Index:      i,
		Engaged:    vec(bc.Engaged),
		Disengaged: vec(bc.Disengaged),
		Step:       vec(bc.Step),
	}
	b.Current = b.Target(!startDisengaged)
	return b
}

func vec(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
