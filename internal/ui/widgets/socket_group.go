package widgets

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/SocketPlan/internal/engine"
	"github.com/piwi3910/SocketPlan/internal/model"
)

var (
	socketFrame      = color.NRGBA{R: 229, G: 231, B: 235, A: 255}
	socketFace       = color.NRGBA{R: 249, G: 250, B: 251, A: 255}
	socketPin        = color.NRGBA{R: 55, G: 65, B: 81, A: 255}
	socketBorder     = color.NRGBA{R: 107, G: 114, B: 128, A: 255}
	socketSelected   = color.NRGBA{R: 37, G: 99, B: 235, A: 255}
	socketDragBorder = color.NRGBA{R: 16, G: 185, B: 129, A: 255}
)

type gesture int

const (
	gestureIdle    gesture = iota
	gestureActive          // BeginDrag succeeded, moves go to the controller
	gestureAborted         // the session released the drag; ignore until DragEnd
)

// SocketGroupWidget draws one socket group and turns pointer drags into
// anchor moves.
type SocketGroupWidget struct {
	widget.BaseWidget

	ctrl     DragController
	group    model.SocketGroup
	scale    float32
	selected bool
	onTap    func(id string)

	gesture        gesture
	startX, startY float64
	dx, dy         float32
}

func newSocketGroupWidget(ctrl DragController, g model.SocketGroup, onTap func(string)) *SocketGroupWidget {
	w := &SocketGroupWidget{ctrl: ctrl, group: g, onTap: onTap}
	w.ExtendBaseWidget(w)
	return w
}

// Group returns the group as last drawn.
func (w *SocketGroupWidget) Group() model.SocketGroup {
	return w.group
}

// Dragging reports whether a drag of this group is in progress.
func (w *SocketGroupWidget) Dragging() bool {
	return w != nil && w.gesture == gestureActive
}

// Dragged implements fyne.Draggable.
func (w *SocketGroupWidget) Dragged(ev *fyne.DragEvent) {
	switch w.gesture {
	case gestureAborted:
		return
	case gestureIdle:
		w.gesture = gestureActive
		w.startX, w.startY = w.group.X, w.group.Y
		w.dx, w.dy = 0, 0
		if err := w.ctrl.BeginDrag(w.group.ID, w.released); err != nil {
			w.gesture = gestureAborted
			return
		}
	}
	w.dx += ev.Dragged.DX
	w.dy += ev.Dragged.DY
	w.ctrl.DragMove(DragTarget(w.startX, w.startY, w.dx, w.dy, w.scale))
}

// DragEnd implements fyne.Draggable.
func (w *SocketGroupWidget) DragEnd() {
	if w.gesture == gestureActive {
		_ = w.ctrl.EndDrag() // rejections reach the UI through OnReject
	}
	w.gesture = gestureIdle
}

// Tapped implements fyne.Tappable.
func (w *SocketGroupWidget) Tapped(*fyne.PointEvent) {
	if w.onTap != nil {
		w.onTap(w.group.ID)
	}
}

// Cursor implements desktop.Cursorable.
func (w *SocketGroupWidget) Cursor() desktop.Cursor {
	return desktop.PointerCursor
}

// released is handed to BeginDrag and runs when the session drops the drag.
func (w *SocketGroupWidget) released() {
	if w.gesture == gestureActive {
		w.gesture = gestureAborted
	}
}

func (w *SocketGroupWidget) teardown() {
	if w.gesture == gestureActive {
		w.ctrl.CancelDrag()
	}
	w.gesture = gestureIdle
}

func (w *SocketGroupWidget) CreateRenderer() fyne.WidgetRenderer {
	return &socketGroupRenderer{w: w}
}

type socketGroupRenderer struct {
	w       *SocketGroupWidget
	objects []fyne.CanvasObject
}

func (r *socketGroupRenderer) Layout(fyne.Size) { r.rebuild() }

func (r *socketGroupRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.w)
}

func (r *socketGroupRenderer) MinSize() fyne.Size { return fyne.NewSize(1, 1) }

func (r *socketGroupRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *socketGroupRenderer) Destroy() { r.w.teardown() }

func (r *socketGroupRenderer) rebuild() {
	r.objects = r.objects[:0]
	g := r.w.group
	s := r.w.scale
	if s <= 0 {
		return
	}
	box := engine.BoundingBox(g)

	for _, sr := range engine.SocketRects(g) {
		pos := fyne.NewPos(float32(sr.X1-box.X1)*s, float32(box.Y2-sr.Y2)*s)
		size := fyne.NewSize(float32(sr.Width())*s, float32(sr.Height())*s)

		frame := canvas.NewRectangle(socketFrame)
		frame.StrokeColor = socketBorder
		frame.StrokeWidth = 1
		frame.Move(pos)
		frame.Resize(size)

		// round face with two pins
		d := size.Width * 0.7
		face := canvas.NewCircle(socketFace)
		face.StrokeColor = socketBorder
		face.StrokeWidth = 1
		face.Move(fyne.NewPos(pos.X+(size.Width-d)/2, pos.Y+(size.Height-d)/2))
		face.Resize(fyne.NewSize(d, d))

		pin := size.Width * 0.1
		cy := pos.Y + size.Height/2 - pin/2
		left := canvas.NewCircle(socketPin)
		left.Move(fyne.NewPos(pos.X+size.Width/2-2*pin, cy))
		left.Resize(fyne.NewSize(pin, pin))
		right := canvas.NewCircle(socketPin)
		right.Move(fyne.NewPos(pos.X+size.Width/2+pin, cy))
		right.Resize(fyne.NewSize(pin, pin))

		r.objects = append(r.objects, frame, face, left, right)
	}

	if r.w.selected || r.w.Dragging() {
		outline := canvas.NewRectangle(color.Transparent)
		outline.StrokeWidth = 2
		outline.StrokeColor = socketSelected
		if r.w.Dragging() {
			outline.StrokeColor = socketDragBorder
		}
		outline.Resize(fyne.NewSize(float32(box.Width())*s, float32(box.Height())*s))
		r.objects = append(r.objects, outline)
	}
}
