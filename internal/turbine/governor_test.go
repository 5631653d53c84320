package turbine

import "testing"

func TestRotationRampReachesMax(t *testing.T) {
	s := RotationState{Speed: 0, MaxSpeed: 0.01, Acceleration: 0.00025}

	for i := 0; i < 39; i++ {
		s = s.Advance(true)
	}
	if s.Speed >= s.MaxSpeed {
		t.Fatalf("after 39 ticks speed = %g, want below %g", s.Speed, s.MaxSpeed)
	}

	s = s.Advance(true)
	if s.Speed != 0.01 {
		t.Errorf("after 40 ticks speed = %g, want 0.01", s.Speed)
	}

	// Further ticks are no-ops at the bound
	for i := 0; i < 10; i++ {
		s = s.Advance(true)
	}
	if s.Speed != 0.01 {
		t.Errorf("speed drifted past the bound: %g", s.Speed)
	}
}

func TestRotationRampClampsOvershoot(t *testing.T) {
	s := RotationState{MaxSpeed: 0.01, Acceleration: 0.003}

	want := []float32{0.003, 0.006, 0.009, 0.01, 0.01}
	for i, w := range want {
		s = s.Advance(true)
		if diff := s.Speed - w; diff > 1e-7 || diff < -1e-7 {
			t.Errorf("tick %d: speed = %g, want %g", i+1, s.Speed, w)
		}
		if s.Speed > s.MaxSpeed {
			t.Errorf("tick %d: speed %g exceeds max %g", i+1, s.Speed, s.MaxSpeed)
		}
	}
}

func TestRotationRampDownFloorsAtZero(t *testing.T) {
	s := RotationState{Speed: 0.01, MaxSpeed: 0.01, Acceleration: 0.00025}

	for i := 0; i < 40; i++ {
		s = s.Advance(false)
		if s.Speed < 0 {
			t.Fatalf("tick %d: speed went negative: %g", i+1, s.Speed)
		}
	}
	if !s.AtRest() {
		t.Errorf("after 40 ticks down speed = %g, want 0", s.Speed)
	}

	s.Acceleration = 0.003
	s.Speed = 0.002
	if s = s.Advance(false); s.Speed != 0 {
		t.Errorf("overshooting decrement should floor at 0, got %g", s.Speed)
	}
}

func TestRotationRampStaysInBounds(t *testing.T) {
	s := RotationState{MaxSpeed: 0.01, Acceleration: 0.0007}

	// Alternate bursts of ramping up and down
	for i := 0; i < 200; i++ {
		s = s.Advance((i/15)%2 == 0)
		if s.Speed < 0 || s.Speed > s.MaxSpeed {
			t.Fatalf("tick %d: speed %g outside [0, %g]", i, s.Speed, s.MaxSpeed)
		}
	}
}

func TestRotationAdvanceIsPure(t *testing.T) {
	s := RotationState{MaxSpeed: 0.01, Acceleration: 0.001}
	_ = s.Advance(true)
	if s.Speed != 0 {
		t.Errorf("Advance mutated its receiver: %g", s.Speed)
	}
}
