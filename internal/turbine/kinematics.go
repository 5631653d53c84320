package turbine

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/windturbine/pkg/math"
)

// Direction selects the axis order used when moving a blade.
type Direction int

const (
	// Engaging moves X and Y first, then folds Z onto the hub face.
	Engaging Direction = iota
	// Disengaging pulls Z away from the hub first, then splays X and Y.
	Disengaging
)

// String returns a human-readable direction name.
func (d Direction) String() string {
	if d == Engaging {
		return "engaging"
	}
	return "disengaging"
}

// AdvanceBlade moves current one tick toward target.
//
// An axis moves by |step| toward its target only while it is more than |step|
// away; once inside that band it stays put, so a resting offset of up to one
// step remains. Axis gating is decided on the position before this tick.
func AdvanceBlade(current, target, step math.Vec3, dir Direction) math.Vec3 {
	next := current

	switch dir {
	case Engaging:
		next.X = advanceAxis(current.X, target.X, step.X)
		next.Y = advanceAxis(current.Y, target.Y, step.Y)
		if settled(current.X, target.X, step.X) && settled(current.Y, target.Y, step.Y) {
			next.Z = advanceAxis(current.Z, target.Z, step.Z)
		}
	case Disengaging:
		next.Z = advanceAxis(current.Z, target.Z, step.Z)
		if settled(current.Z, target.Z, step.Z) {
			next.X = advanceAxis(current.X, target.X, step.X)
			next.Y = advanceAxis(current.Y, target.Y, step.Y)
		}
	}

	return next
}

// Settled reports whether every axis of current is within one step of target.
func Settled(current, target, step math.Vec3) bool {
	return settled(current.X, target.X, step.X) &&
		settled(current.Y, target.Y, step.Y) &&
		settled(current.Z, target.Z, step.Z)
}

func settled(cur, target, step float32) bool {
	return math32.Abs(cur-target) <= math32.Abs(step)
}

func advanceAxis(cur, target, step float32) float32 {
	if settled(cur, target, step) {
		return cur
	}
	if target > cur {
		return cur + math32.Abs(step)
	}
	return cur - math32.Abs(step)
}
