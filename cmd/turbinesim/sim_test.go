package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chewxy/math32"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/windturbine/internal/config"
	"github.com/Faultbox/windturbine/internal/turbine"
)

func TestParseScript(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    map[int][]turbine.Command
		wantErr bool
	}{
		{"empty", "", map[int][]turbine.Command{}, false},
		{"single", "10:disengage", map[int][]turbine.Command{10: {turbine.CmdDisengage}}, false},
		{
			"same tick keeps order",
			" 5:stop-rotation, 5:engage ,9:toggle-engagement",
			map[int][]turbine.Command{
				5: {turbine.CmdStopRotation, turbine.CmdEngage},
				9: {turbine.CmdToggleEngagement},
			},
			false,
		},
		{"missing colon", "10 disengage", nil, true},
		{"bad tick", "x:engage", nil, true},
		{"negative tick", "-1:engage", nil, true},
		{"unknown command", "3:brake", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseScript(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseScript(%q) failed: %v", tt.input, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d ticks, want %d", len(got), len(tt.want))
			}
			for tick, cmds := range tt.want {
				gotCmds := got.At(tick)
				if len(gotCmds) != len(cmds) {
					t.Fatalf("tick %d: got %v, want %v", tick, gotCmds, cmds)
				}
				for i := range cmds {
					if gotCmds[i] != cmds[i] {
						t.Errorf("tick %d[%d]: got %s, want %s", tick, i, gotCmds[i], cmds[i])
					}
				}
			}
		})
	}
}

func TestScriptTicksSorted(t *testing.T) {
	s, err := ParseScript("30:engage,2:disengage,15:stop-rotation")
	if err != nil {
		t.Fatalf("ParseScript failed: %v", err)
	}
	ticks := s.Ticks()
	if len(ticks) != 3 || ticks[0] != 2 || ticks[1] != 15 || ticks[2] != 30 {
		t.Errorf("Ticks() = %v, want [2 15 30]", ticks)
	}
}

func TestSimulateSpinUp(t *testing.T) {
	frames, err := Simulate(config.Default().Turbine, Options{Ticks: 40}, nil)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	if len(frames) != 40 {
		t.Fatalf("expected 40 frames, got %d", len(frames))
	}

	last := frames[39]
	if math32.Abs(last.Speed-0.01) > 1e-6 {
		t.Errorf("speed after 40 ticks = %f, want 0.01", last.Speed)
	}
	// Sum of 0.00025*k for k = 1..40
	if math32.Abs(last.HubAngle-0.205) > 1e-4 {
		t.Errorf("hub angle after 40 ticks = %f, want 0.205", last.HubAngle)
	}

	// Blade 0 starts disengaged and heads inward on X first
	if math32.Abs(frames[0].Blades[0].X-0.300) > 1e-6 {
		t.Errorf("blade 0 X after 1 tick = %f, want 0.300", frames[0].Blades[0].X)
	}
}

func TestSimulateWaitsForBlades(t *testing.T) {
	frames, err := Simulate(config.Default().Turbine, Options{Ticks: 6, AttachAt: 4}, nil)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}

	for _, f := range frames[:4] {
		if f.Ready || f.Speed != 0 || f.HubAngle != 0 {
			t.Errorf("tick %d animated before blades attached: %+v", f.Tick, f)
		}
	}
	if !frames[4].Ready || frames[4].Speed == 0 {
		t.Errorf("tick 4 should animate once blades attach: %+v", frames[4])
	}
}

func TestSimulateScriptedStop(t *testing.T) {
	script, err := ParseScript("0:toggle-rotation")
	if err != nil {
		t.Fatalf("ParseScript failed: %v", err)
	}

	frames, err := Simulate(config.Default().Turbine, Options{Ticks: 3, Script: script}, nil)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}

	want := turbine.Mode{Engaged: true, Rotating: false}
	if frames[0].Mode != want {
		t.Errorf("mode after toggle = %v, want %v", frames[0].Mode, want)
	}
	for _, f := range frames {
		if f.Speed != 0 {
			t.Errorf("tick %d: speed %f, want 0 while stopped", f.Tick, f.Speed)
		}
	}
}

func TestSimulateRejectsNegativeTicks(t *testing.T) {
	if _, err := Simulate(config.Default().Turbine, Options{Ticks: -1}, nil); err == nil {
		t.Error("expected error for negative tick count")
	}
}

func TestWriteTrace(t *testing.T) {
	script, _ := ParseScript("3:disengage")
	frames, err := Simulate(config.Default().Turbine, Options{Ticks: 6, AttachAt: 1, Script: script}, nil)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}

	var buf bytes.Buffer
	if err := writeTrace(&buf, frames, 5); err != nil {
		t.Fatalf("writeTrace failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	// Header, tick 0, tick 3 (has a command), tick 5
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[1], "waiting") {
		t.Errorf("tick 0 should show waiting: %q", lines[1])
	}
	if !strings.Contains(lines[2], "disengage") || !strings.Contains(lines[2], "disengaged+stopping") {
		t.Errorf("tick 3 should show the command and new mode: %q", lines[2])
	}
}

func TestWriteSummary(t *testing.T) {
	frames, err := Simulate(config.Default().Turbine, Options{Ticks: 40}, nil)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}

	var buf bytes.Buffer
	if err := writeSummary(&buf, frames); err != nil {
		t.Fatalf("writeSummary failed: %v", err)
	}

	var got summary
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("summary is not valid YAML: %v\n%s", err, buf.String())
	}
	if got.Ticks != 40 || !got.Ready || !got.Engaged || !got.Rotating {
		t.Errorf("unexpected summary %+v", got)
	}
	if len(got.Blades) != turbine.BladeCount {
		t.Errorf("expected %d blades, got %d", turbine.BladeCount, len(got.Blades))
	}
}
