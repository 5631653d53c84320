package turbine

// rampSnap is the fraction of one acceleration step treated as float32 drift
// when deciding whether the ramp has reached a bound.
const rampSnap = 1e-3

// RotationState is the hub spin speed and its ramp limits, in radians per tick.
// Speed stays within [0, MaxSpeed].
type RotationState struct {
	Speed        float32
	MaxSpeed     float32
	Acceleration float32
}

// Advance ramps Speed one tick toward MaxSpeed when rotating, or toward zero
// otherwise. It is a no-op once the bound is reached.
func (s RotationState) Advance(rotating bool) RotationState {
	snap := s.Acceleration * rampSnap

	if rotating {
		if s.Speed < s.MaxSpeed {
			s.Speed += s.Acceleration
			if s.Speed >= s.MaxSpeed-snap {
				s.Speed = s.MaxSpeed
			}
		}
		return s
	}

	if s.Speed > 0 {
		s.Speed -= s.Acceleration
		if s.Speed <= snap {
			s.Speed = 0
		}
	}
	return s
}

// AtRest reports whether the hub has fully stopped.
func (s RotationState) AtRest() bool {
	return s.Speed == 0
}

// AtFullSpeed reports whether the ramp has reached MaxSpeed.
func (s RotationState) AtFullSpeed() bool {
	return s.Speed == s.MaxSpeed
}
