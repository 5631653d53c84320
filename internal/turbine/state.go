package turbine

import "fmt"

// Mode is the pair of independent turbine toggles.
type Mode struct {
	Engaged  bool // Blades head for the engaged pose
	Rotating bool // Hub speed ramps up rather than down
}

// String returns a compact description such as "engaged+rotating".
func (m Mode) String() string {
	e, r := "disengaged", "stopping"
	if m.Engaged {
		e = "engaged"
	}
	if m.Rotating {
		r = "rotating"
	}
	return fmt.Sprintf("%s+%s", e, r)
}

// State is the full animation state advanced by Step.
type State struct {
	Mode     Mode
	Rotation RotationState
	Blades   [BladeCount]Blade
	Angle    float32 // Cumulative hub rotation in radians, never wrapped
}

// Step advances the state by one tick: spin ramp first, then every blade,
// then the hub angle by the new speed.
func Step(s State) State {
	s.Rotation = s.Rotation.Advance(s.Mode.Rotating)
	for i := range s.Blades {
		s.Blades[i] = s.Blades[i].Advance(s.Mode.Engaged)
	}
	s.Angle += s.Rotation.Speed
	return s
}

// Settled reports whether the spin ramp and every blade have reached their bounds.
func (s State) Settled() bool {
	for _, b := range s.Blades {
		if !b.AtRest(s.Mode.Engaged) {
			return false
		}
	}
	if s.Mode.Rotating {
		return s.Rotation.AtFullSpeed()
	}
	return s.Rotation.AtRest()
}

// Apply returns the state after cmd. Toggles are resolved against the current mode.
func (s State) Apply(cmd Command) State {
	switch Resolve(cmd, s.Mode) {
	case CmdEngage:
		s.Mode = Mode{Engaged: true, Rotating: true}
	case CmdDisengage:
		s.Mode = Mode{Engaged: false, Rotating: false}
	case CmdStopRotation:
		s.Mode.Rotating = false
	}
	return s
}
