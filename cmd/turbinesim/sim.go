package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/windturbine/internal/config"
	"github.com/Faultbox/windturbine/internal/scene"
	"github.com/Faultbox/windturbine/internal/turbine"
	"github.com/Faultbox/windturbine/pkg/math"
)

// Options controls a simulation run.
type Options struct {
	Ticks int
	// AttachAt is the tick before which the blade nodes are attached,
	// standing in for the mesh load finishing.
	AttachAt int
	Script   Script
}

// Frame is the turbine state after one tick.
type Frame struct {
	Tick     int
	Ready    bool
	Commands []turbine.Command
	Mode     turbine.Mode
	Speed    float32
	HubAngle float32
	Blades   [turbine.BladeCount]math.Vec3
}

// Simulate drives a controller against bare scene nodes and records every tick.
func Simulate(cfg config.TurbineConfig, opts Options, log *zap.Logger) ([]Frame, error) {
	if opts.Ticks < 0 {
		return nil, fmt.Errorf("negative tick count %d", opts.Ticks)
	}

	hub := scene.NewNode("hub")
	ctrl, err := turbine.NewController(cfg, hub, log)
	if err != nil {
		return nil, err
	}

	var blades [turbine.BladeCount]*scene.Node
	for i := range blades {
		blades[i] = scene.NewNode(fmt.Sprintf("blade%d", i))
	}

	frames := make([]Frame, 0, opts.Ticks)
	for tick := 0; tick < opts.Ticks; tick++ {
		if tick == opts.AttachAt {
			for i, n := range blades {
				if err := ctrl.AttachBlade(i, n); err != nil {
					return nil, err
				}
			}
		}

		cmds := opts.Script.At(tick)
		for _, cmd := range cmds {
			ctrl.Push(cmd)
		}
		ctrl.Tick()

		state := ctrl.State()
		f := Frame{
			Tick:     tick,
			Ready:    ctrl.Ready(),
			Commands: cmds,
			Mode:     state.Mode,
			Speed:    state.Rotation.Speed,
			HubAngle: hub.Rotation.Z,
		}
		for i, b := range state.Blades {
			f.Blades[i] = b.Current
		}
		frames = append(frames, f)
	}
	return frames, nil
}
