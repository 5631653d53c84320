package turbine

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		mode Mode
		want Command
	}{
		{"rotation toggle while rotating", CmdToggleRotation, Mode{Engaged: true, Rotating: true}, CmdStopRotation},
		{"rotation toggle while stopped engages", CmdToggleRotation, Mode{Engaged: false, Rotating: false}, CmdEngage},
		{"rotation toggle while engaged and stopped", CmdToggleRotation, Mode{Engaged: true, Rotating: false}, CmdEngage},
		{"engagement toggle while engaged", CmdToggleEngagement, Mode{Engaged: true, Rotating: false}, CmdDisengage},
		{"engagement toggle while disengaged", CmdToggleEngagement, Mode{Engaged: false, Rotating: true}, CmdEngage},
		{"concrete passes through", CmdStopRotation, Mode{}, CmdStopRotation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.cmd, tt.mode); got != tt.want {
				t.Errorf("Resolve(%v, %v) = %v, want %v", tt.cmd, tt.mode, got, tt.want)
			}
		})
	}
}

func TestStateApply(t *testing.T) {
	s := State{Mode: Mode{Engaged: false, Rotating: true}}

	// Disengaged yet still spinning down: stop leaves engagement alone
	s = s.Apply(CmdStopRotation)
	if s.Mode != (Mode{Engaged: false, Rotating: false}) {
		t.Errorf("StopRotation: %v", s.Mode)
	}

	s = s.Apply(CmdEngage)
	if s.Mode != (Mode{Engaged: true, Rotating: true}) {
		t.Errorf("Engage: %v", s.Mode)
	}

	s = s.Apply(CmdDisengage)
	if s.Mode != (Mode{Engaged: false, Rotating: false}) {
		t.Errorf("Disengage: %v", s.Mode)
	}

	s = s.Apply(CmdNone)
	if s.Mode != (Mode{}) {
		t.Errorf("CmdNone changed mode: %v", s.Mode)
	}
}

func TestCommandQueue(t *testing.T) {
	var q CommandQueue

	if q.Drain() != nil {
		t.Error("empty queue should drain to nil")
	}

	q.Push(CmdEngage)
	q.Push(CmdNone)
	q.Push(CmdStopRotation)
	if q.Len() != 2 {
		t.Fatalf("expected 2 queued commands, got %d", q.Len())
	}

	got := q.Drain()
	if len(got) != 2 || got[0] != CmdEngage || got[1] != CmdStopRotation {
		t.Errorf("Drain() = %v, want [engage stop-rotation]", got)
	}
	if q.Len() != 0 {
		t.Errorf("queue not empty after drain: %d", q.Len())
	}
}

func TestParseCommand(t *testing.T) {
	for c := CmdEngage; c <= CmdToggleEngagement; c++ {
		got, err := ParseCommand(c.String())
		if err != nil || got != c {
			t.Errorf("ParseCommand(%q) = %v, %v", c.String(), got, err)
		}
	}
	if _, err := ParseCommand("spin-faster"); err == nil {
		t.Error("expected error for unknown command")
	}
}

func TestModeString(t *testing.T) {
	if got := (Mode{Engaged: true, Rotating: false}).String(); got != "engaged+stopping" {
		t.Errorf("Mode.String() = %q", got)
	}
}
