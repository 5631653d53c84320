package turbine

import "fmt"

// Command is a request to change the turbine mode.
type Command int

const (
	CmdNone Command = iota
	CmdEngage
	CmdDisengage
	CmdStopRotation
	CmdToggleRotation   // StopRotation while rotating, otherwise Engage
	CmdToggleEngagement // Disengage while engaged, otherwise Engage
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CmdNone:
		return "none"
	case CmdEngage:
		return "engage"
	case CmdDisengage:
		return "disengage"
	case CmdStopRotation:
		return "stop-rotation"
	case CmdToggleRotation:
		return "toggle-rotation"
	case CmdToggleEngagement:
		return "toggle-engagement"
	default:
		return fmt.Sprintf("Command(%d)", int(c))
	}
}

// ParseCommand returns the command with the given name.
func ParseCommand(name string) (Command, error) {
	for c := CmdEngage; c <= CmdToggleEngagement; c++ {
		if c.String() == name {
			return c, nil
		}
	}
	return CmdNone, fmt.Errorf("unknown command %q", name)
}

// Resolve maps a toggle to the concrete command for mode.
// Restarting rotation goes through Engage, so it re-engages the blades too.
func Resolve(cmd Command, mode Mode) Command {
	switch cmd {
	case CmdToggleRotation:
		if mode.Rotating {
			return CmdStopRotation
		}
		return CmdEngage
	case CmdToggleEngagement:
		if mode.Engaged {
			return CmdDisengage
		}
		return CmdEngage
	default:
		return cmd
	}
}

// CommandQueue buffers commands between ticks. It is owned by the loop goroutine.
type CommandQueue struct {
	pending []Command
}

// Push appends a command. CmdNone is dropped.
func (q *CommandQueue) Push(cmd Command) {
	if cmd == CmdNone {
		return
	}
	q.pending = append(q.pending, cmd)
}

// Drain returns the queued commands in FIFO order and empties the queue.
func (q *CommandQueue) Drain() []Command {
	if len(q.pending) == 0 {
		return nil
	}
	out := q.pending
	q.pending = nil
	return out
}

// Len returns the number of queued commands.
func (q *CommandQueue) Len() int {
	return len(q.pending)
}
