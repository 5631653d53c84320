package input

import (
	"errors"
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/windturbine/internal/config"
	"github.com/Faultbox/windturbine/internal/turbine"
)

// ErrUnknownKey is returned for key names SDL does not recognise.
var ErrUnknownKey = errors.New("unknown key name")

// Bindings maps keys to turbine commands.
type Bindings struct {
	keys       map[sdl.Scancode]turbine.Command
	quit       sdl.Scancode
	screenshot sdl.Scancode
}

// NewBindings resolves the configured SDL key names.
func NewBindings(cfg config.InputConfig) (*Bindings, error) {
	b := &Bindings{
		keys: make(map[sdl.Scancode]turbine.Command, 2),
		quit: sdl.SCANCODE_ESCAPE,
	}

	for _, bind := range []struct {
		name string
		cmd  turbine.Command
	}{
		{cfg.ToggleRotation, turbine.CmdToggleRotation},
		{cfg.ToggleEngagement, turbine.CmdToggleEngagement},
	} {
		code := sdl.GetScancodeFromName(bind.name)
		if code == sdl.SCANCODE_UNKNOWN {
			return nil, fmt.Errorf("binding %s to %q: %w", bind.cmd, bind.name, ErrUnknownKey)
		}
		b.keys[code] = bind.cmd
	}

	if cfg.Screenshot != "" {
		b.screenshot = sdl.GetScancodeFromName(cfg.Screenshot)
		if b.screenshot == sdl.SCANCODE_UNKNOWN {
			return nil, fmt.Errorf("binding screenshot to %q: %w", cfg.Screenshot, ErrUnknownKey)
		}
	}
	return b, nil
}

// Command returns the command bound to key, or CmdNone.
func (b *Bindings) Command(key sdl.Scancode) turbine.Command {
	return b.keys[key]
}

// IsQuit reports whether key closes the viewer.
func (b *Bindings) IsQuit(key sdl.Scancode) bool {
	return key == b.quit
}

// IsScreenshot reports whether key captures the frame.
func (b *Bindings) IsScreenshot(key sdl.Scancode) bool {
	return b.screenshot != sdl.SCANCODE_UNKNOWN && key == b.screenshot
}

// Commands returns the commands for the fresh key presses in events, in order.
func (b *Bindings) Commands(events []Event) []turbine.Command {
	var cmds []turbine.Command
	for _, e := range events {
		if e.Type != EventKeyDown || e.Repeat {
			continue
		}
		if cmd := b.Command(e.Key); cmd != turbine.CmdNone {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}
