package configurator

import (
	"fmt"

	"github.com/piwi3910/SocketPlan/internal/engine"
	"github.com/piwi3910/SocketPlan/internal/model"
)

// DragPhase is the state of a drag gesture.
type DragPhase int

const (
	DragIdle DragPhase = iota
	DragActive
)

func (p DragPhase) String() string {
	if p == DragActive {
		return "Dragging"
	}
	return "Idle"
}

// Drag tracks one drag gesture on a socket group. While active it remembers
// where the group was when the gesture started, so the final position can be
// reverted. Callbacks registered with OnRelease run exactly once when the
// drag ends, is cancelled or is begun anew.
//
// The zero value is an idle drag.
type Drag struct {
	phase    DragPhase
	groupID  string
	startX   float64
	startY   float64
	releases []func()
}

// Begin starts dragging the group with the given ID. An active drag is
// cancelled first.
func (d *Drag) Begin(s State, id string) error {
	d.Cancel()
	g, ok := s.FindGroup(id)
	if !ok {
		return fmt.Errorf("drag socket group %s: %w", id, ErrGroupNotFound)
	}
	d.phase = DragActive
	d.groupID = id
	d.startX = g.X
	d.startY = g.Y
	return nil
}

// Move proposes a new anchor for the dragged group. The position is applied
// only when it passes the placement rules; otherwise s is returned unchanged
// and applied is false.
func (d *Drag) Move(s State, x, y float64) (next State, applied bool) {
	if d.phase != DragActive {
		return s, false
	}
	next, err := s.UpdateSocketGroup(d.groupID, SetPosition(x, y))
	if err != nil {
		return s, false
	}
	return next, true
}

// End finishes the drag. The resting position is validated once more and
// reverted to the start position if it does not pass. The drag is idle
// afterwards in every case.
func (d *Drag) End(s State) (State, error) {
	if d.phase != DragActive {
		return s, ErrNotDragging
	}
	defer d.Cancel()

	g, ok := s.FindGroup(d.groupID)
	if !ok {
		// deleted mid-drag, nothing to revert
		return s, nil
	}
	if err := s.validateInPlace(g); err == nil {
		return s, nil
	}

	next := s.clone()
	idx := next.groupIndex(g.ID)
	next.SocketGroups[idx].X = d.startX
	next.SocketGroups[idx].Y = d.startY
	return next, ErrInvalidFinalDragPosition
}

// Cancel returns the drag to idle without touching any state and runs the
// release callbacks.
func (d *Drag) Cancel() {
	releases := d.releases
	*d = Drag{}
	for _, fn := range releases {
		fn()
	}
}

// OnRelease registers fn to run when the current drag ends or is cancelled.
// On an idle drag fn runs immediately.
func (d *Drag) OnRelease(fn func()) {
	if d.phase != DragActive {
		fn()
		return
	}
	d.releases = append(d.releases, fn)
}

// Phase returns the current phase.
func (d *Drag) Phase() DragPhase {
	return d.phase
}

// GroupID returns the dragged group, "" when idle.
func (d *Drag) GroupID() string {
	return d.groupID
}

// Start returns the anchor the dragged group had when the drag began.
func (d *Drag) Start() (x, y float64, ok bool) {
	if d.phase != DragActive {
		return 0, 0, false
	}
	return d.startX, d.startY, true
}

// validateInPlace checks a stored group against its plate and siblings.
func (s State) validateInPlace(g model.SocketGroup) error {
	plate, ok := s.FindPlate(g.PlateID)
	if !ok {
		return ErrPlateNotFound
	}
	return checkPlacement(g, plate, engine.Siblings(g, s.SocketGroups))
}
