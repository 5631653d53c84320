package assets

import (
	"context"

	"github.com/Faultbox/windturbine/internal/engine/model"
)

// Slot is the pending result of a Load call.
type Slot struct {
	Ref Ref

	done chan struct{}
	mesh *model.Mesh
	err  error
}

func newSlot(ref Ref) *Slot {
	return &Slot{Ref: ref, done: make(chan struct{})}
}

// resolve is called exactly once by the loading goroutine.
func (s *Slot) resolve(mesh *model.Mesh, err error) {
	s.mesh = mesh
	s.err = err
	close(s.done)
}

// Done returns a channel closed once the load finished.
func (s *Slot) Done() <-chan struct{} {
	return s.done
}

// Poll reports the result without blocking. ready is false while the load is pending.
func (s *Slot) Poll() (mesh *model.Mesh, ready bool, err error) {
	select {
	case <-s.done:
		return s.mesh, true, s.err
	default:
		return nil, false, nil
	}
}

// Wait blocks until the load finishes or ctx is done.
func (s *Slot) Wait(ctx context.Context) (*model.Mesh, error) {
	select {
	case <-s.done:
		return s.mesh, s.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
