package widgets

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"

	"github.com/piwi3910/SocketPlan/internal/model"
)

func TestFitScale(t *testing.T) {
	plates := []model.Plate{{Width: 100, Height: 50}, {Width: 90, Height: 40}}

	// total width 200 cm, tallest 50 cm
	assert.InDelta(t, 4.5, FitScale(plates, 1000, 1000), 1e-6)
	assert.InDelta(t, 0.9, FitScale(plates, 1000, 50), 1e-6)
	assert.Zero(t, FitScale(nil, 100, 100))
	assert.Zero(t, FitScale(plates, 0, 100))
}

func TestViewportPlacesPlatesSideBySide(t *testing.T) {
	plates := []model.Plate{{Width: 100, Height: 50}, {Width: 90, Height: 40}}
	v := NewViewport(plates, fyne.NewSize(1000, 1000))

	pos0, size0 := v.PlateRect(0, plates[0])
	pos1, size1 := v.PlateRect(1, plates[1])

	assert.InDelta(t, 450, size0.Width, 1e-3)
	assert.InDelta(t, 225, size0.Height, 1e-3)
	assert.InDelta(t, 180, size1.Height, 1e-3)
	// strip is 900 px wide, centred
	assert.InDelta(t, 50, pos0.X, 1e-3)
	assert.InDelta(t, 50+450+45, pos1.X, 1e-3)
	// vertically centred
	assert.InDelta(t, 500-112.5, pos0.Y, 1e-3)
	assert.InDelta(t, 500-90, pos1.Y, 1e-3)
}

func TestViewportFlipsY(t *testing.T) {
	plates := []model.Plate{{Width: 100, Height: 50}}
	v := NewViewport(plates, fyne.NewSize(1000, 1000))
	pos, size := v.PlateRect(0, plates[0])

	bottomLeft := v.ToCanvas(0, 0, 0)
	assert.InDelta(t, pos.X, bottomLeft.X, 1e-3)
	assert.InDelta(t, pos.Y+size.Height, bottomLeft.Y, 1e-3)

	topRight := v.ToCanvas(0, 100, 50)
	assert.InDelta(t, pos.X+size.Width, topRight.X, 1e-3)
	assert.InDelta(t, pos.Y, topRight.Y, 1e-3)
}

func TestBoxRect(t *testing.T) {
	plates := []model.Plate{{Width: 100, Height: 50}}
	v := NewViewport(plates, fyne.NewSize(1000, 1000))

	box := model.BoundingBox{X1: 10, Y1: 10, X2: 17, Y2: 17}
	pos, size := v.BoxRect(0, box)
	assert.Equal(t, v.ToCanvas(0, 10, 17), pos)
	assert.InDelta(t, 7*v.Scale, size.Width, 1e-3)
	assert.InDelta(t, 7*v.Scale, size.Height, 1e-3)
}

func TestDragTarget(t *testing.T) {
	x, y := DragTarget(10, 10, 20, -40, 4)
	assert.InDelta(t, 15, x, 1e-9)
	assert.InDelta(t, 20, y, 1e-9)

	x, y = DragTarget(10, 10, 20, 20, 0)
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 10.0, y)
}
