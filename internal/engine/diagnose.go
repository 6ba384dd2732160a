package engine

import (
	"fmt"

	"github.com/piwi3910/SocketPlan/internal/model"
)

// ViolationKind classifies why a placement is rejected.
type ViolationKind int

const (
	ViolationLeftEdge ViolationKind = iota
	ViolationBottomEdge
	ViolationRightEdge
	ViolationTopEdge
	ViolationTooCloseToGroup
	ViolationUnknownPlate     // group references a plate that does not exist
	ViolationIneligiblePlate  // plate is below the minimum size for sockets
	ViolationCountOutOfRange  // count outside 1..5
)

func (k ViolationKind) String() string {
	switch k {
	case ViolationLeftEdge:
		return "left_edge"
	case ViolationBottomEdge:
		return "bottom_edge"
	case ViolationRightEdge:
		return "right_edge"
	case ViolationTopEdge:
		return "top_edge"
	case ViolationTooCloseToGroup:
		return "too_close_to_group"
	case ViolationUnknownPlate:
		return "unknown_plate"
	case ViolationIneligiblePlate:
		return "ineligible_plate"
	case ViolationCountOutOfRange:
		return "count_out_of_range"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k ViolationKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Violation explains one reason a socket group cannot stay where it is.
type Violation struct {
	Kind    ViolationKind `json:"kind"`
	GroupID string        `json:"group_id"`
	OtherID string        `json:"other_id,omitempty"` // conflicting group, for ViolationTooCloseToGroup
	Actual  float64       `json:"actual"`             // measured clearance in cm
	Minimum float64       `json:"minimum"`            // required clearance in cm
}

func (v Violation) String() string {
	switch v.Kind {
	case ViolationTooCloseToGroup:
		return fmt.Sprintf("group %s is %.1f cm from group %s (minimum %.1f cm)", v.GroupID, v.Actual, v.OtherID, v.Minimum)
	case ViolationUnknownPlate:
		return fmt.Sprintf("group %s references an unknown plate", v.GroupID)
	case ViolationIneligiblePlate:
		return fmt.Sprintf("group %s sits on a plate smaller than %.0f x %.0f cm", v.GroupID, v.Minimum, v.Minimum)
	case ViolationCountOutOfRange:
		return fmt.Sprintf("group %s has %.0f sockets (allowed %d-%d)", v.GroupID, v.Actual, model.SocketCountMin, model.SocketCountMax)
	default:
		return fmt.Sprintf("group %s is %.1f cm from the %s (minimum %.1f cm)", v.GroupID, v.Actual, edgeName(v.Kind), v.Minimum)
	}
}

func edgeName(k ViolationKind) string {
	switch k {
	case ViolationLeftEdge:
		return "left edge"
	case ViolationBottomEdge:
		return "bottom edge"
	case ViolationRightEdge:
		return "right edge"
	default:
		return "top edge"
	}
}

// Diagnose lists every rule candidate breaks on plate against others.
// An empty result means IsPlacementValid would accept the placement.
func Diagnose(candidate model.SocketGroup, plate model.Plate, others []model.SocketGroup) []Violation {
	var out []Violation
	box := BoundingBox(candidate)
	e := model.MinEdgeClearance

	edges := []struct {
		kind   ViolationKind
		actual float64
	}{
		{ViolationLeftEdge, box.X1},
		{ViolationBottomEdge, box.Y1},
		{ViolationRightEdge, plate.Width - box.X2},
		{ViolationTopEdge, plate.Height - box.Y2},
	}
	for _, edge := range edges {
		if !(edge.actual >= e) { // NaN counts as a violation
			out = append(out, Violation{Kind: edge.kind, GroupID: candidate.ID, Actual: edge.actual, Minimum: e})
		}
	}

	for _, o := range others {
		ob := BoundingBox(o)
		if TooClose(box, ob, model.MinGroupClearance) {
			out = append(out, Violation{
				Kind:    ViolationTooCloseToGroup,
				GroupID: candidate.ID,
				OtherID: o.ID,
				Actual:  Gap(box, ob),
				Minimum: model.MinGroupClearance,
			})
		}
	}
	return out
}

// Gap returns the clearance between two boxes: the larger of the horizontal
// and vertical separations. Overlapping boxes yield a negative value.
func Gap(a, b model.BoundingBox) float64 {
	dx := gap1D(a.X1, a.X2, b.X1, b.X2)
	dy := gap1D(a.Y1, a.Y2, b.Y1, b.Y2)
	if dx > dy {
		return dx
	}
	return dy
}

func gap1D(a1, a2, b1, b2 float64) float64 {
	if a1 >= b2 {
		return a1 - b2
	}
	if b1 >= a2 {
		return b1 - a2
	}
	// overlapping on this axis: report the overlap depth as a negative gap
	left := a2 - b1
	right := b2 - a1
	if left < right {
		return -left
	}
	return -right
}

// AuditLayout checks every socket group of l against its plate and its
// siblings. Unlike IsPlacementValid it reports all problems, including
// groups on unknown or ineligible plates and counts out of range.
// Each conflicting pair is reported once.
func AuditLayout(l model.Layout) []Violation {
	var out []Violation
	for i, g := range l.SocketGroups {
		if !model.ValidCount(g.Count) {
			out = append(out, Violation{Kind: ViolationCountOutOfRange, GroupID: g.ID, Actual: float64(g.Count)})
		}
		plate, ok := l.FindPlate(g.PlateID)
		if !ok {
			out = append(out, Violation{Kind: ViolationUnknownPlate, GroupID: g.ID})
			continue
		}
		if !plate.Eligible() {
			out = append(out, Violation{Kind: ViolationIneligiblePlate, GroupID: g.ID, Minimum: model.PlateMinSizeForSockets})
		}

		// only groups after g, so each pair appears once
		var later []model.SocketGroup
		for _, o := range l.SocketGroups[i+1:] {
			if o.PlateID == g.PlateID && o.ID != g.ID {
				later = append(later, o)
			}
		}
		out = append(out, Diagnose(g, plate, later)...)
	}
	return out
}
