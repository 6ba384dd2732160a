package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"

	"github.com/piwi3910/SocketPlan/internal/engine"
	"github.com/piwi3910/SocketPlan/internal/model"
)

// DXF layer names used by ExportDXF.
const (
	LayerPlate  = "PLATE"
	LayerCutout = "CUTOUT"
	LayerText   = "TEXT"
)

const (
	mmPerCM       = 10.0
	dxfPlateGap   = 100.0 // mm between plates in the drawing
	dxfTextHeight = 12.0  // mm
)

// ExportDXF writes a fabrication drawing in millimeters. Every plate outline
// goes on layer PLATE and every socket cut-out on layer CUTOUT; plates are
// laid out left to right with their bottom edges on y = 0.
func ExportDXF(path string, layout model.Layout) error {
	if len(layout.Plates) == 0 {
		return fmt.Errorf("no plates to export")
	}

	d := dxf.NewDrawing()
	layers := []struct {
		name string
		col  color.ColorNumber
	}{
		{LayerPlate, color.White},
		{LayerCutout, color.Red},
		{LayerText, color.Cyan},
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.col, table.LT_CONTINUOUS, false); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", l.name, err)
		}
	}

	originX := 0.0
	for i, plate := range layout.Plates {
		if err := drawPlateDXF(d, plate, layout.GroupsOnPlate(plate.ID), originX, i+1); err != nil {
			return fmt.Errorf("failed to draw plate %d: %w", i+1, err)
		}
		originX += plate.Width*mmPerCM + dxfPlateGap
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write DXF file: %w", err)
	}
	return nil
}

func drawPlateDXF(d *drawing.Drawing, plate model.Plate, groups []model.SocketGroup, originX float64, plateNum int) error {
	if err := d.ChangeLayer(LayerPlate); err != nil {
		return err
	}
	w := plate.Width * mmPerCM
	h := plate.Height * mmPerCM
	if _, err := d.LwPolyline(true,
		[]float64{originX, 0},
		[]float64{originX + w, 0},
		[]float64{originX + w, h},
		[]float64{originX, h},
	); err != nil {
		return err
	}

	if err := d.ChangeLayer(LayerCutout); err != nil {
		return err
	}
	for _, g := range groups {
		for _, r := range engine.SocketRects(g) {
			x1, y1 := originX+r.X1*mmPerCM, r.Y1*mmPerCM
			x2, y2 := originX+r.X2*mmPerCM, r.Y2*mmPerCM
			if _, err := d.LwPolyline(true,
				[]float64{x1, y1},
				[]float64{x2, y1},
				[]float64{x2, y2},
				[]float64{x1, y2},
			); err != nil {
				return err
			}
		}
	}

	if err := d.ChangeLayer(LayerText); err != nil {
		return err
	}
	label := fmt.Sprintf("PLATE %d %.1fx%.1f cm", plateNum, plate.Width, plate.Height)
	_, err := d.Text(label, originX, -2*dxfTextHeight, 0, dxfTextHeight)
	return err
}
