package configurator

import (
	"github.com/charmbracelet/log"

	"github.com/piwi3910/SocketPlan/internal/model"
)

// Session owns the current State and the drag gesture for one interactive
// editor. It is not safe for concurrent use; the UI event loop is its only
// caller.
type Session struct {
	state    State
	drag     Drag
	logger   *log.Logger
	onChange []func(State)
	onReject []func(error)
}

// NewSession starts a session from the start-up state.
func NewSession(logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	return &Session{state: New(), logger: logger}
}

// State returns the current snapshot.
func (s *Session) State() State {
	return s.state
}

// OnChange registers fn to receive every new snapshot.
func (s *Session) OnChange(fn func(State)) {
	s.onChange = append(s.onChange, fn)
}

// OnReject registers fn to receive every rejected operation.
func (s *Session) OnReject(fn func(error)) {
	s.onReject = append(s.onReject, fn)
}

// commit publishes next and reports err, if any. next is stored even when err
// is set because some operations (enabling sockets, snapping back a drag)
// change the state and still report a problem.
func (s *Session) commit(op string, next State, err error) error {
	changed := !sameState(s.state, next)
	s.state = next
	if err != nil {
		s.logger.Warn("operation rejected", "op", op, "err", err)
		for _, fn := range s.onReject {
			fn(err)
		}
	} else {
		s.logger.Debug("operation applied", "op", op, "plates", len(next.Plates), "groups", len(next.SocketGroups))
	}
	if changed {
		for _, fn := range s.onChange {
			fn(next)
		}
	}
	return err
}

// ─── Plates ────────────────────────────────────────────────

// AddPlate appends a default-size plate.
func (s *Session) AddPlate() model.Plate {
	next, p := s.state.AddPlate()
	s.commit("add_plate", next, nil)
	return p
}

// UpdatePlate resizes a plate, removing its socket groups.
func (s *Session) UpdatePlate(id string, width, height float64) error {
	s.abortDragOnPlate(id)
	next, err := s.state.UpdatePlate(id, width, height)
	return s.commit("update_plate", next, err)
}

// DeletePlate removes a plate unless it is the last one.
func (s *Session) DeletePlate(id string) error {
	next, err := s.state.DeletePlate(id)
	if err == nil {
		s.abortDragOnPlate(id)
	}
	return s.commit("delete_plate", next, err)
}

// ─── Socket groups ─────────────────────────────────────────

// SetSocketsEnabled switches sockets on or off.
func (s *Session) SetSocketsEnabled(on bool) error {
	if !on {
		s.drag.Cancel()
	}
	next, err := s.state.SetSocketsEnabled(on)
	return s.commit("set_sockets_enabled", next, err)
}

// AddSocketGroup places a default group on the first eligible plate.
func (s *Session) AddSocketGroup() (model.SocketGroup, error) {
	next, g, err := s.state.AddSocketGroup()
	return g, s.commit("add_socket_group", next, err)
}

// UpdateSocketGroup applies a validated partial update.
func (s *Session) UpdateSocketGroup(id string, u GroupUpdate) error {
	next, err := s.state.UpdateSocketGroup(id, u)
	return s.commit("update_socket_group", next, err)
}

// DeleteSocketGroup removes a group.
func (s *Session) DeleteSocketGroup(id string) {
	if s.drag.GroupID() == id {
		s.drag.Cancel()
	}
	s.commit("delete_socket_group", s.state.DeleteSocketGroup(id), nil)
}

// SetEditing selects a group for the form.
func (s *Session) SetEditing(id string) error {
	next, err := s.state.SetEditing(id)
	return s.commit("set_editing", next, err)
}

// ClearEditing deselects the edited group.
func (s *Session) ClearEditing() {
	s.commit("clear_editing", s.state.ClearEditing(), nil)
}

// ─── Drag ──────────────────────────────────────────────────

// BeginDrag starts dragging a group. release, if not nil, runs when the drag
// ends, is cancelled or the session is closed.
func (s *Session) BeginDrag(id string, release func()) error {
	if err := s.drag.Begin(s.state, id); err != nil {
		if release != nil {
			release()
		}
		return s.commit("begin_drag", s.state, err)
	}
	if release != nil {
		s.drag.OnRelease(release)
	}
	s.logger.Debug("drag started", "group", id)
	return nil
}

// DragMove proposes a new anchor for the dragged group. Invalid positions are
// ignored silently and false is returned.
func (s *Session) DragMove(x, y float64) bool {
	next, applied := s.drag.Move(s.state, x, y)
	if applied {
		s.commit("drag_move", next, nil)
	}
	return applied
}

// EndDrag finishes the drag, reverting an invalid resting position.
func (s *Session) EndDrag() error {
	next, err := s.drag.End(s.state)
	return s.commit("end_drag", next, err)
}

// CancelDrag abandons the drag, keeping the last valid position.
func (s *Session) CancelDrag() {
	if s.drag.Phase() == DragActive {
		s.logger.Debug("drag cancelled", "group", s.drag.GroupID())
	}
	s.drag.Cancel()
}

// DragStart returns the anchor the dragged group had when the drag began.
func (s *Session) DragStart() (x, y float64, ok bool) {
	return s.drag.Start()
}

// Dragging returns the ID of the dragged group, "" when idle.
func (s *Session) Dragging() string {
	return s.drag.GroupID()
}

// Close releases everything the session holds. It is safe to call twice.
func (s *Session) Close() {
	s.drag.Cancel()
}

// ─── Layouts ───────────────────────────────────────────────

// Layout returns the current plates and socket groups.
func (s *Session) Layout() model.Layout {
	return s.state.Layout
}

// Load replaces the whole configuration with a layout. Rejected groups are
// logged and returned; the rest is loaded.
func (s *Session) Load(l model.Layout) []error {
	s.drag.Cancel()
	next, rejected := FromLayout(l)
	for _, err := range rejected {
		s.logger.Warn("layout entry skipped", "err", err)
	}
	s.commit("load_layout", next, nil)
	return rejected
}

func (s *Session) abortDragOnPlate(plateID string) {
	if id := s.drag.GroupID(); id != "" {
		if g, ok := s.state.FindGroup(id); ok && g.PlateID == plateID {
			s.drag.Cancel()
		}
	}
}

// sameState reports whether two snapshots share their slices and flags.
// Transitions always copy before changing, so identity means equality.
func sameState(a, b State) bool {
	return a.SocketsEnabled == b.SocketsEnabled &&
		a.EditingID == b.EditingID &&
		sameSlice(a.Plates, b.Plates) &&
		sameSlice(a.SocketGroups, b.SocketGroups)
}

func sameSlice[T any](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}
