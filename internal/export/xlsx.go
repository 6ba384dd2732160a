package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/SocketPlan/internal/engine"
	"github.com/piwi3910/SocketPlan/internal/model"
)

// Sheet names used in the cut list workbook.
const (
	SheetPlates  = "Plates"
	SheetSockets = "Sockets"
)

var (
	plateHeader  = []interface{}{"Plate", "ID", "Width (cm)", "Height (cm)", "Area (cm²)", "Sockets allowed", "Groups"}
	socketHeader = []interface{}{"Plate", "Group", "Count", "Direction", "X (cm)", "Y (cm)", "X1", "Y1", "X2", "Y2"}
)

// ExportCutList writes the plates and their socket groups to an Excel workbook.
func ExportCutList(path string, layout model.Layout) error {
	f, err := buildCutList(layout)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// WriteCutList renders the same workbook as ExportCutList to w.
func WriteCutList(w io.Writer, layout model.Layout) error {
	f, err := buildCutList(layout)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func buildCutList(layout model.Layout) (*excelize.File, error) {
	if len(layout.Plates) == 0 {
		return nil, fmt.Errorf("no plates to export")
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetPlates); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetSockets); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to add sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writePlateSheet(f, layout, bold); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeSocketSheet(f, layout, bold); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writePlateSheet(f *excelize.File, layout model.Layout, headerStyle int) error {
	if err := writeHeader(f, SheetPlates, plateHeader, headerStyle); err != nil {
		return err
	}
	for i, p := range layout.Plates {
		allowed := "no"
		if p.Eligible() {
			allowed = "yes"
		}
		row := []interface{}{i + 1, p.ID, p.Width, p.Height, p.Area(), allowed, len(layout.GroupsOnPlate(p.ID))}
		if err := setRow(f, SheetPlates, i+2, row); err != nil {
			return err
		}
	}
	return f.SetColWidth(SheetPlates, "A", "G", 14)
}

func writeSocketSheet(f *excelize.File, layout model.Layout, headerStyle int) error {
	if err := writeHeader(f, SheetSockets, socketHeader, headerStyle); err != nil {
		return err
	}
	rowNum := 2
	for pi, p := range layout.Plates {
		for gi, g := range layout.GroupsOnPlate(p.ID) {
			box := engine.BoundingBox(g)
			row := []interface{}{pi + 1, gi + 1, g.Count, g.Direction.String(), g.X, g.Y, box.X1, box.Y1, box.X2, box.Y2}
			if err := setRow(f, SheetSockets, rowNum, row); err != nil {
				return err
			}
			rowNum++
		}
	}
	return f.SetColWidth(SheetSockets, "A", "J", 11)
}

func writeHeader(f *excelize.File, sheet string, header []interface{}, style int) error {
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}
