// Package engine holds the placement rules for socket groups: the bounding
// box of a group and the decision whether a group may sit at a position.
// Everything here is pure; callers own the state.
package engine

import (
	"math"

	"github.com/piwi3910/SocketPlan/internal/model"
)

// GroupSize returns the width and height of a socket group's footprint in cm.
func GroupSize(count int, dir model.Direction) (w, h float64) {
	gaps := math.Max(0, float64(count-1)) * model.SocketGap
	if dir == model.DirectionVertical {
		return model.SocketWidth, float64(count)*model.SocketHeight + gaps
	}
	return float64(count)*model.SocketWidth + gaps, model.SocketHeight
}

// BoundingBox returns the axis-aligned rectangle covering all sockets of g,
// gaps included. The anchor (g.X, g.Y) is the bottom-left corner.
func BoundingBox(g model.SocketGroup) model.BoundingBox {
	w, h := GroupSize(g.Count, g.Direction)
	return model.BoundingBox{
		X1: g.X,
		Y1: g.Y,
		X2: g.X + w,
		Y2: g.Y + h,
	}
}

// SocketRects returns the rectangle of every individual socket in g, in the
// order they repeat. Their union spans exactly BoundingBox(g).
func SocketRects(g model.SocketGroup) []model.BoundingBox {
	if g.Count <= 0 {
		return nil
	}
	rects := make([]model.BoundingBox, g.Count)
	for i := 0; i < g.Count; i++ {
		offset := float64(i) * (model.SocketWidth + model.SocketGap)
		x, y := g.X+offset, g.Y
		if g.Direction == model.DirectionVertical {
			offset = float64(i) * (model.SocketHeight + model.SocketGap)
			x, y = g.X, g.Y+offset
		}
		rects[i] = model.BoundingBox{X1: x, Y1: y, X2: x + model.SocketWidth, Y2: y + model.SocketHeight}
	}
	return rects
}

// WithinEdges reports whether box keeps the minimum edge clearance on all
// four sides of the plate. Boxes with NaN coordinates never fit.
func WithinEdges(box model.BoundingBox, plate model.Plate) bool {
	e := model.MinEdgeClearance
	return box.X1 >= e && box.Y1 >= e && box.X2 <= plate.Width-e && box.Y2 <= plate.Height-e
}

// TooClose reports whether two boxes come within margin of each other.
// The margin is added once per axis comparison, so boxes exactly margin
// apart are not too close.
func TooClose(b1, b2 model.BoundingBox, margin float64) bool {
	return b1.X1 < b2.X2+margin &&
		b1.X2+margin > b2.X1 &&
		b1.Y1 < b2.Y2+margin &&
		b1.Y2+margin > b2.Y1
}

// IsPlacementValid reports whether candidate may be placed on plate given the
// other groups already on that plate. others must not contain candidate.
func IsPlacementValid(candidate model.SocketGroup, plate model.Plate, others []model.SocketGroup) bool {
	box := BoundingBox(candidate)
	if !WithinEdges(box, plate) {
		return false
	}
	for _, o := range others {
		if TooClose(box, BoundingBox(o), model.MinGroupClearance) {
			return false
		}
	}
	return true
}

// Siblings returns the groups in groups that share candidate's plate,
// excluding candidate itself.
func Siblings(candidate model.SocketGroup, groups []model.SocketGroup) []model.SocketGroup {
	var out []model.SocketGroup
	for _, g := range groups {
		if g.PlateID == candidate.PlateID && g.ID != candidate.ID {
			out = append(out, g)
		}
	}
	return out
}
