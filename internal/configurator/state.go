// Package configurator manages plates and socket groups as immutable
// snapshots. Every operation takes a State and returns a new one; a rejected
// operation returns the original State together with an error. Every socket
// group stored in a State satisfies the placement rules of package engine.
package configurator

import (
	"fmt"

	"github.com/piwi3910/SocketPlan/internal/engine"
	"github.com/piwi3910/SocketPlan/internal/model"
)

// State is one snapshot of the configuration. Slices are never modified in
// place once a State has been returned, so holding on to a State is safe.
type State struct {
	model.Layout
	EditingID string // socket group selected in the form, "" for none
}

// New returns the start-up state: one plate of the initial size, sockets off.
func New() State {
	return State{
		Layout: model.Layout{
			Plates:       []model.Plate{model.NewPlate(model.InitialPlateWidth, model.InitialPlateHeight)},
			SocketGroups: []model.SocketGroup{},
		},
	}
}

// ─── Plates ────────────────────────────────────────────────

// AddPlate appends a plate of the default new-plate size.
func (s State) AddPlate() (State, model.Plate) {
	p := model.NewPlate(model.NewPlateWidth, model.NewPlateHeight)
	next := s.clone()
	next.Plates = append(next.Plates, p)
	return next, p
}

// UpdatePlate sets a plate's dimensions, clamped to their limits. All socket
// groups on the plate are removed, valid or not.
func (s State) UpdatePlate(id string, width, height float64) (State, error) {
	idx := s.PlateIndex(id)
	if idx < 0 {
		return s, fmt.Errorf("update plate %s: %w", id, ErrPlateNotFound)
	}
	next := s.clone()
	next.Plates[idx].Width = model.ClampWidth(width)
	next.Plates[idx].Height = model.ClampHeight(height)
	next.removeGroupsOnPlate(id)
	return next, nil
}

// DeletePlate removes a plate and every socket group on it. The last
// remaining plate cannot be deleted.
func (s State) DeletePlate(id string) (State, error) {
	idx := s.PlateIndex(id)
	if idx < 0 {
		return s, fmt.Errorf("delete plate %s: %w", id, ErrPlateNotFound)
	}
	if len(s.Plates) <= 1 {
		return s, ErrLastPlate
	}
	next := s.clone()
	next.Plates = append(next.Plates[:idx], next.Plates[idx+1:]...)
	next.removeGroupsOnPlate(id)
	return next, nil
}

// FirstEligiblePlate returns the first plate large enough for sockets.
func (s State) FirstEligiblePlate() (model.Plate, bool) {
	for _, p := range s.Plates {
		if p.Eligible() {
			return p, true
		}
	}
	return model.Plate{}, false
}

// ─── Socket groups ─────────────────────────────────────────

// SetSocketsEnabled switches sockets on or off for the whole configuration.
// Switching off removes every group. Switching on places one default group on
// the first eligible plate; if that fails, sockets stay enabled without a
// group and the reason is returned.
func (s State) SetSocketsEnabled(on bool) (State, error) {
	if on == s.SocketsEnabled {
		return s, nil
	}
	next := s.clone()
	next.SocketsEnabled = on
	next.SocketGroups = []model.SocketGroup{}
	next.EditingID = ""
	if !on {
		return next, nil
	}

	plate, ok := next.FirstEligiblePlate()
	if !ok {
		return next, ErrNoEligiblePlate
	}
	g := model.NewSocketGroup(plate.ID)
	if err := checkPlacement(g, plate, nil); err != nil {
		return next, fmt.Errorf("default socket position is invalid: %w", err)
	}
	next.SocketGroups = append(next.SocketGroups, g)
	next.EditingID = g.ID
	return next, nil
}

// AddSocketGroup places a default group on the first eligible plate and
// selects it for editing.
func (s State) AddSocketGroup() (State, model.SocketGroup, error) {
	if !s.SocketsEnabled {
		return s, model.SocketGroup{}, ErrSocketsDisabled
	}
	plate, ok := s.FirstEligiblePlate()
	if !ok {
		return s, model.SocketGroup{}, ErrNoEligiblePlate
	}
	g := model.NewSocketGroup(plate.ID)
	if err := checkPlacement(g, plate, s.GroupsOnPlate(plate.ID)); err != nil {
		return s, model.SocketGroup{}, fmt.Errorf("cannot add socket group at default position: %w", err)
	}
	next := s.clone()
	next.SocketGroups = append(next.SocketGroups, g)
	next.EditingID = g.ID
	return next, g, nil
}

// GroupUpdate is a partial change to a socket group. Nil fields are kept.
type GroupUpdate struct {
	PlateID   *string
	Count     *int
	Direction *model.Direction
	X         *float64
	Y         *float64
}

// SetPosition returns an update that moves a group's anchor.
func SetPosition(x, y float64) GroupUpdate {
	return GroupUpdate{X: &x, Y: &y}
}

// SetCount returns an update that changes the number of sockets.
func SetCount(n int) GroupUpdate {
	return GroupUpdate{Count: &n}
}

// SetDirection returns an update that changes the repeat direction.
func SetDirection(d model.Direction) GroupUpdate {
	return GroupUpdate{Direction: &d}
}

// SetPlate returns an update that moves a group to another plate.
func SetPlate(plateID string) GroupUpdate {
	return GroupUpdate{PlateID: &plateID}
}

func (u GroupUpdate) apply(g model.SocketGroup) model.SocketGroup {
	if u.PlateID != nil {
		g.PlateID = *u.PlateID
	}
	if u.Count != nil {
		g.Count = *u.Count
	}
	if u.Direction != nil {
		g.Direction = *u.Direction
	}
	if u.X != nil {
		g.X = *u.X
	}
	if u.Y != nil {
		g.Y = *u.Y
	}
	return g
}

// UpdateSocketGroup applies u to a group and validates the result against
// the other groups on its resulting plate. Nothing is written on failure.
func (s State) UpdateSocketGroup(id string, u GroupUpdate) (State, error) {
	idx := s.groupIndex(id)
	if idx < 0 {
		return s, fmt.Errorf("update socket group %s: %w", id, ErrGroupNotFound)
	}
	updated := u.apply(s.SocketGroups[idx])

	if !model.ValidCount(updated.Count) {
		return s, fmt.Errorf("%w: %d (allowed %d-%d)", ErrCountOutOfRange, updated.Count, model.SocketCountMin, model.SocketCountMax)
	}
	plate, ok := s.FindPlate(updated.PlateID)
	if !ok {
		return s, fmt.Errorf("update socket group %s: %w", id, ErrPlateNotFound)
	}
	if !plate.Eligible() {
		return s, ErrPlateNotEligible
	}
	if err := checkPlacement(updated, plate, engine.Siblings(updated, s.SocketGroups)); err != nil {
		return s, err
	}

	next := s.clone()
	next.SocketGroups[idx] = updated
	return next, nil
}

// DeleteSocketGroup removes a group. Unknown IDs are ignored.
func (s State) DeleteSocketGroup(id string) State {
	idx := s.groupIndex(id)
	if idx < 0 {
		return s
	}
	next := s.clone()
	next.SocketGroups = append(next.SocketGroups[:idx], next.SocketGroups[idx+1:]...)
	if next.EditingID == id {
		next.EditingID = ""
	}
	return next
}

// SetEditing selects a group for editing.
func (s State) SetEditing(id string) (State, error) {
	if s.groupIndex(id) < 0 {
		return s, fmt.Errorf("edit socket group %s: %w", id, ErrGroupNotFound)
	}
	next := s
	next.EditingID = id
	return next, nil
}

// ClearEditing deselects the edited group.
func (s State) ClearEditing() State {
	next := s
	next.EditingID = ""
	return next
}

// EditingGroup returns the group selected for editing.
func (s State) EditingGroup() (model.SocketGroup, bool) {
	if s.EditingID == "" {
		return model.SocketGroup{}, false
	}
	return s.FindGroup(s.EditingID)
}

// ─── Helpers ───────────────────────────────────────────────

// checkPlacement runs the placement rules and explains a rejection.
func checkPlacement(g model.SocketGroup, plate model.Plate, others []model.SocketGroup) error {
	if engine.IsPlacementValid(g, plate, others) {
		return nil
	}
	return &PlacementError{GroupID: g.ID, Violations: engine.Diagnose(g, plate, others)}
}

func (s State) groupIndex(id string) int {
	for i, g := range s.SocketGroups {
		if g.ID == id {
			return i
		}
	}
	return -1
}

// removeGroupsOnPlate drops the plate's groups from a cloned state and clears
// the selection if it pointed at one of them.
func (s *State) removeGroupsOnPlate(plateID string) {
	kept := s.SocketGroups[:0]
	for _, g := range s.SocketGroups {
		if g.PlateID == plateID {
			if g.ID == s.EditingID {
				s.EditingID = ""
			}
			continue
		}
		kept = append(kept, g)
	}
	s.SocketGroups = kept
}

// clone copies the slices so the returned State can be modified freely.
func (s State) clone() State {
	next := s
	next.Plates = append([]model.Plate(nil), s.Plates...)
	next.SocketGroups = append(make([]model.SocketGroup, 0, len(s.SocketGroups)), s.SocketGroups...)
	return next
}
