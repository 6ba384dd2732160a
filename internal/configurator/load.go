package configurator

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/piwi3910/SocketPlan/internal/engine"
	"github.com/piwi3910/SocketPlan/internal/model"
)

// FromLayout rebuilds a State from a layout that came from outside (a file,
// an HTTP request). Plate sizes are clamped and every socket group is
// replayed through the placement rules in order; groups that would break
// them are left out and reported.
func FromLayout(l model.Layout) (State, []error) {
	var rejected []error
	s := State{Layout: model.Layout{
		Plates:         make([]model.Plate, 0, len(l.Plates)),
		SocketGroups:   []model.SocketGroup{},
		SocketsEnabled: l.SocketsEnabled,
	}}

	seen := map[string]bool{}
	for _, p := range l.Plates {
		if p.ID == "" || seen[p.ID] {
			p.ID = uuid.New().String()[:8]
		}
		seen[p.ID] = true
		p.Width = model.ClampWidth(p.Width)
		p.Height = model.ClampHeight(p.Height)
		s.Plates = append(s.Plates, p)
	}
	if len(s.Plates) == 0 {
		s.Plates = append(s.Plates, model.NewPlate(model.InitialPlateWidth, model.InitialPlateHeight))
	}

	if !l.SocketsEnabled {
		if len(l.SocketGroups) > 0 {
			rejected = append(rejected, fmt.Errorf("%d socket groups ignored: %w", len(l.SocketGroups), ErrSocketsDisabled))
		}
		return s, rejected
	}

	groupSeen := map[string]bool{}
	for _, g := range l.SocketGroups {
		if g.ID == "" || groupSeen[g.ID] {
			g.ID = uuid.New().String()[:8]
		}
		if err := s.admit(g); err != nil {
			rejected = append(rejected, fmt.Errorf("socket group %s: %w", g.ID, err))
			continue
		}
		groupSeen[g.ID] = true
		s.SocketGroups = append(s.SocketGroups, g)
	}
	return s, rejected
}

// admit checks whether g may join the state as it stands.
func (s State) admit(g model.SocketGroup) error {
	if !model.ValidCount(g.Count) {
		return fmt.Errorf("%w: %d", ErrCountOutOfRange, g.Count)
	}
	plate, ok := s.FindPlate(g.PlateID)
	if !ok {
		return ErrPlateNotFound
	}
	if !plate.Eligible() {
		return ErrPlateNotEligible
	}
	return checkPlacement(g, plate, engine.Siblings(g, s.SocketGroups))
}
