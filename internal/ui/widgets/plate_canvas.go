package widgets

import (
	"fmt"
	"image/color"
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/SocketPlan/internal/engine"
	"github.com/piwi3910/SocketPlan/internal/model"
)

var (
	plateFill       = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	plateBorder     = color.NRGBA{R: 156, G: 163, B: 175, A: 255}
	clearanceStroke = color.NRGBA{R: 239, G: 68, B: 68, A: 90}
	guideColor      = color.NRGBA{R: 239, G: 68, B: 68, A: 200}
	labelColor      = color.NRGBA{R: 75, G: 85, B: 99, A: 255}
)

// DragController receives drag gestures in plate centimeters.
// configurator.Session implements it.
type DragController interface {
	BeginDrag(id string, release func()) error
	DragMove(x, y float64) bool
	EndDrag() error
	CancelDrag()
}

// PlateCanvas draws all plates side by side with their socket groups and
// lets the user drag groups around.
type PlateCanvas struct {
	widget.BaseWidget

	// OnSelect is called with the group ID when a group is tapped.
	OnSelect func(id string)

	ctrl      DragController
	layout    model.Layout
	editingID string
	groups    map[string]*SocketGroupWidget
}

// NewPlateCanvas creates an empty canvas that reports drags to ctrl.
func NewPlateCanvas(ctrl DragController) *PlateCanvas {
	pc := &PlateCanvas{
		ctrl:   ctrl,
		groups: make(map[string]*SocketGroupWidget),
	}
	pc.ExtendBaseWidget(pc)
	return pc
}

// Update shows a new layout. Group widgets are kept by ID so a drag in
// progress survives the redraw its own moves cause.
func (pc *PlateCanvas) Update(l model.Layout, editingID string) {
	pc.layout = l
	pc.editingID = editingID

	seen := make(map[string]bool, len(l.SocketGroups))
	for _, g := range l.SocketGroups {
		seen[g.ID] = true
		w, ok := pc.groups[g.ID]
		if !ok {
			w = newSocketGroupWidget(pc.ctrl, g, pc.selectGroup)
			pc.groups[g.ID] = w
		}
		w.group = g
		w.selected = g.ID == editingID
	}
	for id, w := range pc.groups {
		if !seen[id] {
			w.teardown()
			delete(pc.groups, id)
		}
	}
	pc.Refresh()
}

// GroupWidget returns the widget drawing the group with the given ID.
func (pc *PlateCanvas) GroupWidget(id string) (*SocketGroupWidget, bool) {
	w, ok := pc.groups[id]
	return w, ok
}

// Close cancels a drag that is still running.
func (pc *PlateCanvas) Close() {
	for _, w := range pc.groups {
		w.teardown()
	}
}

func (pc *PlateCanvas) selectGroup(id string) {
	if pc.OnSelect != nil {
		pc.OnSelect(id)
	}
}

func (pc *PlateCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &plateCanvasRenderer{pc: pc}
}

type plateCanvasRenderer struct {
	pc      *PlateCanvas
	objects []fyne.CanvasObject
}

func (r *plateCanvasRenderer) Layout(size fyne.Size) {
	r.rebuild(size)
}

func (r *plateCanvasRenderer) Refresh() {
	r.rebuild(r.pc.Size())
	canvas.Refresh(r.pc)
}

func (r *plateCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(320, 200)
}

func (r *plateCanvasRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *plateCanvasRenderer) Destroy() {
	r.pc.Close()
}

func (r *plateCanvasRenderer) rebuild(size fyne.Size) {
	r.objects = r.objects[:0]
	l := r.pc.layout
	v := NewViewport(l.Plates, size)
	if v.Scale <= 0 {
		return
	}

	for i, p := range l.Plates {
		pos, sz := v.PlateRect(i, p)

		rect := canvas.NewRectangle(plateFill)
		rect.StrokeColor = plateBorder
		rect.StrokeWidth = 2
		rect.Move(pos)
		rect.Resize(sz)
		r.objects = append(r.objects, rect)

		if l.SocketsEnabled && p.Eligible() {
			e := model.MinEdgeClearance
			inner := model.BoundingBox{X1: e, Y1: e, X2: p.Width - e, Y2: p.Height - e}
			zpos, zsize := v.BoxRect(i, inner)
			zone := canvas.NewRectangle(color.Transparent)
			zone.StrokeColor = clearanceStroke
			zone.StrokeWidth = 1
			zone.Move(zpos)
			zone.Resize(zsize)
			r.objects = append(r.objects, zone)
		}

		label := canvas.NewText(fmt.Sprintf("Plate %d  %.1f x %.1f cm", i+1, p.Width, p.Height), labelColor)
		label.TextSize = 11
		label.Move(fyne.NewPos(pos.X, pos.Y-label.MinSize().Height-2))
		r.objects = append(r.objects, label)
	}

	// stable order so the dragged group is drawn last
	groups := append([]model.SocketGroup(nil), l.SocketGroups...)
	sort.SliceStable(groups, func(a, b int) bool {
		return !r.pc.groups[groups[a].ID].Dragging() && r.pc.groups[groups[b].ID].Dragging()
	})

	for _, g := range groups {
		idx := l.PlateIndex(g.PlateID)
		w := r.pc.groups[g.ID]
		if idx < 0 || w == nil {
			continue
		}
		pos, sz := v.BoxRect(idx, engine.BoundingBox(g))
		w.scale = v.Scale
		w.Move(pos)
		w.Resize(sz)
		w.Refresh()
		r.objects = append(r.objects, w)

		if w.Dragging() {
			r.objects = append(r.objects, guideLines(v, idx, g)...)
		}
	}
}

// guideLines draws the anchor distances of g to the left and bottom plate edges.
func guideLines(v Viewport, plateIdx int, g model.SocketGroup) []fyne.CanvasObject {
	anchor := v.ToCanvas(plateIdx, g.X, g.Y)
	left := v.ToCanvas(plateIdx, 0, g.Y)
	bottom := v.ToCanvas(plateIdx, g.X, 0)

	horiz := canvas.NewLine(guideColor)
	horiz.StrokeWidth = 1
	horiz.Position1 = left
	horiz.Position2 = anchor

	vert := canvas.NewLine(guideColor)
	vert.StrokeWidth = 1
	vert.Position1 = anchor
	vert.Position2 = bottom

	xLabel := canvas.NewText(fmt.Sprintf("%.1f cm", g.X), guideColor)
	xLabel.TextSize = 10
	xLabel.Move(fyne.NewPos((left.X+anchor.X)/2-15, anchor.Y-xLabel.MinSize().Height-2))

	yLabel := canvas.NewText(fmt.Sprintf("%.1f cm", g.Y), guideColor)
	yLabel.TextSize = 10
	yLabel.Move(fyne.NewPos(anchor.X+4, (anchor.Y+bottom.Y)/2-8))

	return []fyne.CanvasObject{horiz, vert, xLabel, yLabel}
}
