package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/windturbine/internal/turbine"
)

// writeTrace prints every nth frame as an aligned table.
func writeTrace(w io.Writer, frames []Frame, every int) error {
	if every < 1 {
		every = 1
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "tick\tmode\tspeed\thub\tblade0\tblade1\tblade2\tcommands")
	for _, f := range frames {
		if f.Tick%every != 0 && len(f.Commands) == 0 {
			continue
		}
		mode := f.Mode.String()
		if !f.Ready {
			mode = "waiting"
		}
		fmt.Fprintf(tw, "%d\t%s\t%.5f\t%.4f\t%s\t%s\t%s\t%s\n",
			f.Tick, mode, f.Speed, f.HubAngle,
			formatVec(f.Blades[0].Array()), formatVec(f.Blades[1].Array()), formatVec(f.Blades[2].Array()),
			formatCommands(f.Commands))
	}
	return tw.Flush()
}

func formatVec(v [3]float32) string {
	return fmt.Sprintf("(%.3f,%.3f,%.3f)", v[0], v[1], v[2])
}

func formatCommands(cmds []turbine.Command) string {
	if len(cmds) == 0 {
		return "-"
	}
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.String()
	}
	return strings.Join(names, " ")
}

// summary is the YAML form of the last frame.
type summary struct {
	Ticks    int          `yaml:"ticks"`
	Ready    bool         `yaml:"ready"`
	Engaged  bool         `yaml:"engaged"`
	Rotating bool         `yaml:"rotating"`
	Speed    float32      `yaml:"speed"`
	HubAngle float32      `yaml:"hub_angle"`
	Blades   [][3]float32 `yaml:"blades,flow"`
}

func writeSummary(w io.Writer, frames []Frame) error {
	s := summary{Ticks: len(frames)}
	if len(frames) > 0 {
		last := frames[len(frames)-1]
		s.Ready = last.Ready
		s.Engaged = last.Mode.Engaged
		s.Rotating = last.Mode.Rotating
		s.Speed = last.Speed
		s.HubAngle = last.HubAngle
		for _, b := range last.Blades {
			s.Blades = append(s.Blades, b.Array())
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}
