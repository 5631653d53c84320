package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Faultbox/windturbine/internal/turbine"
)

// Script schedules commands by tick. Commands sharing a tick keep their order.
type Script map[int][]turbine.Command

// ParseScript reads a comma separated list of tick:command pairs, for
// example "10:toggle-engagement,40:stop-rotation".
func ParseScript(s string) (Script, error) {
	script := Script{}
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		tickStr, name, ok := strings.Cut(entry, ":")
		if !ok {
			return nil, fmt.Errorf("script entry %q: want tick:command", entry)
		}
		tick, err := strconv.Atoi(strings.TrimSpace(tickStr))
		if err != nil || tick < 0 {
			return nil, fmt.Errorf("script entry %q: bad tick", entry)
		}
		cmd, err := turbine.ParseCommand(strings.TrimSpace(name))
		if err != nil {
			return nil, fmt.Errorf("script entry %q: %w", entry, err)
		}
		script[tick] = append(script[tick], cmd)
	}
	return script, nil
}

// At returns the commands scheduled for tick.
func (s Script) At(tick int) []turbine.Command {
	return s[tick]
}

// Ticks returns the scheduled ticks in ascending order.
func (s Script) Ticks() []int {
	ticks := make([]int, 0, len(s))
	for t := range s {
		ticks = append(ticks, t)
	}
	sort.Ints(ticks)
	return ticks
}
