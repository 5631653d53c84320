package turbine

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/windturbine/internal/config"
	"github.com/Faultbox/windturbine/internal/scene"
)

// ErrInvalidBlade is returned when a blade index is outside [0, BladeCount).
var ErrInvalidBlade = errors.New("invalid blade index")

// Controller owns the turbine animation state and writes it to the scene.
// It is driven from the render loop goroutine only.
type Controller struct {
	state State
	nodes [BladeCount]*scene.Node
	hub   *scene.Node
	queue CommandQueue
	log   *zap.Logger

	ready   bool // readiness already logged
	settled bool
	ticks   uint64
}

// NewController creates a controller from the turbine settings. hub is the group
// node spun by the rotation ramp; it may be nil for headless use.
func NewController(cfg config.TurbineConfig, hub *scene.Node, log *zap.Logger) (*Controller, error) {
	if len(cfg.Blades) != BladeCount {
		return nil, fmt.Errorf("turbine needs %d blades, got %d", BladeCount, len(cfg.Blades))
	}
	if log == nil {
		log = zap.NewNop()
	}

	c := &Controller{
		hub: hub,
		log: log,
		state: State{
			Mode: Mode{Engaged: cfg.StartEngaged, Rotating: cfg.StartRotating},
			Rotation: RotationState{
				MaxSpeed:     cfg.MaxSpeed,
				Acceleration: cfg.Acceleration,
			},
		},
	}
	for i, bc := range cfg.Blades {
		c.state.Blades[i] = bladeFromConfig(i, bc, cfg.StartDisengaged)
	}
	return c, nil
}

// AttachBlade hands the controller the scene node for blade i once its mesh
// has loaded. Blades may attach in any order.
func (c *Controller) AttachBlade(i int, node *scene.Node) error {
	if i < 0 || i >= BladeCount {
		return fmt.Errorf("%w: %d", ErrInvalidBlade, i)
	}
	if node == nil {
		return fmt.Errorf("blade %d: nil node", i)
	}
	node.Position = c.state.Blades[i].Current
	c.nodes[i] = node
	c.log.Debug("blade attached", zap.Int("blade", i), zap.String("node", node.Name))
	return nil
}

// Ready reports whether every blade node has been attached.
func (c *Controller) Ready() bool {
	for _, n := range c.nodes {
		if n == nil {
			return false
		}
	}
	return true
}

// Engage heads the blades for the hub and restarts the spin ramp.
func (c *Controller) Engage() {
	c.apply(CmdEngage)
}

// Disengage splays the blades and lets the hub spin down.
func (c *Controller) Disengage() {
	c.apply(CmdDisengage)
}

// StopRotation lets the hub spin down without moving the blades.
func (c *Controller) StopRotation() {
	c.apply(CmdStopRotation)
}

// Push queues a command for the next Tick.
func (c *Controller) Push(cmd Command) {
	c.queue.Push(cmd)
}

// Tick applies queued commands in order, then runs Update.
func (c *Controller) Tick() {
	for _, cmd := range c.queue.Drain() {
		c.apply(cmd)
	}
	c.Update()
}

// Update advances the animation by one tick. Until all blades are attached it
// does nothing.
func (c *Controller) Update() {
	if !c.Ready() {
		return
	}
	if !c.ready {
		c.ready = true
		c.log.Info("all blades ready, animation started", zap.Stringer("mode", c.state.Mode))
	}

	c.state = Step(c.state)
	c.ticks++

	for i, n := range c.nodes {
		n.Position = c.state.Blades[i].Current
	}
	if c.hub != nil {
		c.hub.Rotation.Z += c.state.Rotation.Speed
	}

	settled := c.state.Settled()
	if settled && !c.settled {
		c.log.Debug("turbine settled",
			zap.Stringer("mode", c.state.Mode),
			zap.Float32("speed", c.state.Rotation.Speed),
			zap.Uint64("tick", c.ticks),
		)
	}
	c.settled = settled
}

// State returns a copy of the animation state.
func (c *Controller) State() State {
	return c.state
}

// Mode returns the current toggles.
func (c *Controller) Mode() Mode {
	return c.state.Mode
}

// Ticks returns how many animated ticks have run.
func (c *Controller) Ticks() uint64 {
	return c.ticks
}

func (c *Controller) apply(cmd Command) {
	prev := c.state.Mode
	c.state = c.state.Apply(cmd)
	if c.state.Mode != prev {
		c.log.Debug("mode changed",
			zap.Stringer("command", cmd),
			zap.Stringer("from", prev),
			zap.Stringer("to", c.state.Mode),
		)
	}
}
