package widgets

import (
	"fyne.io/fyne/v2"

	"github.com/piwi3910/SocketPlan/internal/model"
)

// PlateSpacing is the gap between neighbouring plates on the canvas in cm.
const PlateSpacing = 10.0

// fitFactor leaves a margin around the plates.
const fitFactor = 0.9

// Viewport maps plate centimeters to canvas pixels. Plates are laid out
// left to right, PlateSpacing apart, vertically centred, and the whole strip
// is centred in the canvas. Plate y grows upwards from the plate's bottom
// edge; canvas y grows downwards.
type Viewport struct {
	Scale   float32 // pixels per cm
	offsets []float64
	heights []float64
	originX float32
	centerY float32
}

// FitScale returns the pixels per cm that fit all plates into w x h.
// It returns 0 when there is nothing to fit.
func FitScale(plates []model.Plate, w, h float32) float32 {
	totalW, maxH := stripSize(plates)
	if totalW <= 0 || maxH <= 0 || w <= 0 || h <= 0 {
		return 0
	}
	sx := w / float32(totalW)
	sy := h / float32(maxH)
	if sy < sx {
		sx = sy
	}
	return sx * fitFactor
}

// stripSize returns the total width of all plates side by side, gaps
// included, and the tallest plate height.
func stripSize(plates []model.Plate) (totalW, maxH float64) {
	for i, p := range plates {
		totalW += p.Width
		if i > 0 {
			totalW += PlateSpacing
		}
		if p.Height > maxH {
			maxH = p.Height
		}
	}
	return totalW, maxH
}

// NewViewport lays out plates in a canvas of the given size.
func NewViewport(plates []model.Plate, size fyne.Size) Viewport {
	v := Viewport{
		Scale:   FitScale(plates, size.Width, size.Height),
		offsets: make([]float64, len(plates)),
		heights: make([]float64, len(plates)),
		centerY: size.Height / 2,
	}
	x := 0.0
	for i, p := range plates {
		v.offsets[i] = x
		v.heights[i] = p.Height
		x += p.Width + PlateSpacing
	}
	totalW, _ := stripSize(plates)
	v.originX = (size.Width - float32(totalW)*v.Scale) / 2
	return v
}

// PlateRect returns the top-left pixel position and pixel size of plate i.
func (v Viewport) PlateRect(i int, p model.Plate) (fyne.Position, fyne.Size) {
	size := fyne.NewSize(float32(p.Width)*v.Scale, float32(p.Height)*v.Scale)
	pos := fyne.NewPos(v.originX+float32(v.offsets[i])*v.Scale, v.centerY-size.Height/2)
	return pos, size
}

// ToCanvas converts a point on plate i (cm, bottom-left origin) to canvas pixels.
func (v Viewport) ToCanvas(i int, x, y float64) fyne.Position {
	bottom := v.centerY + float32(v.heights[i])*v.Scale/2
	return fyne.NewPos(
		v.originX+float32(v.offsets[i]+x)*v.Scale,
		bottom-float32(y)*v.Scale,
	)
}

// BoxRect returns the top-left pixel position and pixel size of box on plate i.
func (v Viewport) BoxRect(i int, box model.BoundingBox) (fyne.Position, fyne.Size) {
	return v.ToCanvas(i, box.X1, box.Y2), fyne.NewSize(float32(box.Width())*v.Scale, float32(box.Height())*v.Scale)
}

// DragTarget converts an accumulated pointer movement in pixels into the
// new anchor of a group that started at (startX, startY) cm. Screen y grows
// downwards, plate y upwards.
func DragTarget(startX, startY float64, dx, dy, scale float32) (x, y float64) {
	if scale <= 0 {
		return startX, startY
	}
	return startX + float64(dx/scale), startY - float64(dy/scale)
}
