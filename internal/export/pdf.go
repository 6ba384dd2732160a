// Package export writes socket layouts to printable and fabrication formats.
package export

import (
	"fmt"
	"io"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/SocketPlan/internal/engine"
	"github.com/piwi3910/SocketPlan/internal/model"
)

// groupColor represents an RGB color for a socket group.
type groupColor struct {
	R, G, B int
}

// groupColors mirrors the color scheme used in the UI plate canvas widget.
var groupColors = []groupColor{
	{R: 33, G: 150, B: 243}, // blue
	{R: 76, G: 175, B: 80},  // green
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF writes a layout sheet to path: one page per plate with its socket
// groups drawn to scale, followed by a summary page.
func ExportPDF(path string, layout model.Layout) error {
	pdf, err := buildPDF(layout)
	if err != nil {
		return err
	}
	return pdf.OutputFileAndClose(path)
}

// WritePDF renders the same document as ExportPDF to w.
func WritePDF(w io.Writer, layout model.Layout) error {
	pdf, err := buildPDF(layout)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

func buildPDF(layout model.Layout) (*fpdf.Fpdf, error) {
	if len(layout.Plates) == 0 {
		return nil, fmt.Errorf("no plates to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetTitle("SocketPlan layout", true)

	for i, plate := range layout.Plates {
		pdf.AddPage()
		renderPlatePage(pdf, plate, layout.GroupsOnPlate(plate.ID), i+1)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, layout)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return pdf, nil
}

// renderPlatePage draws a single plate on the current PDF page. Plate
// coordinates have their origin at the bottom-left corner, so y is flipped.
func renderPlatePage(pdf *fpdf.Fpdf, plate model.Plate, groups []model.SocketGroup, plateNum int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Plate %d (%.1f x %.1f cm)", plateNum, plate.Width, plate.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Socket groups: %d | Sockets: %d | Area: %.0f cm²", len(groups), countSockets(groups), plate.Area())
	if !plate.Eligible() {
		stats += " | too small for sockets"
	}
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	scale := math.Min(drawWidth/plate.Width, drawHeight/plate.Height)
	canvasW := plate.Width * scale
	canvasH := plate.Height * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// toPage converts plate centimeters to page millimeters.
	toPage := func(x, y float64) (float64, float64) {
		return offsetX + x*scale, offsetY + canvasH - y*scale
	}

	pdf.SetFillColor(240, 240, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	if plate.Eligible() {
		drawClearanceZone(pdf, offsetX, offsetY, canvasW, canvasH, model.MinEdgeClearance*scale)
	}

	for i, g := range groups {
		col := groupColors[i%len(groupColors)]
		box := engine.BoundingBox(g)

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		for _, r := range engine.SocketRects(g) {
			x, y := toPage(r.X1, r.Y2)
			pdf.Rect(x, y, r.Width()*scale, r.Height()*scale, "FD")
		}

		bx, by := toPage(box.X1, box.Y2)
		bw, bh := box.Width()*scale, box.Height()*scale
		pdf.SetFont("Helvetica", "B", labelFontSize(bw, bh))
		pdf.SetTextColor(255, 255, 255)
		label := fmt.Sprintf("%d", i+1)
		labelW := pdf.GetStringWidth(label)
		if labelW < bw-1 {
			pdf.SetXY(bx+(bw-labelW)/2, by+bh/2-2)
			pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
		}
		pdf.SetTextColor(0, 0, 0)

		drawAnchorDimensions(pdf, g, toPage)
	}

	drawDimensionAnnotations(pdf, plate, offsetX, offsetY, canvasW, canvasH)
	drawGroupLegend(pdf, groups, offsetY+canvasH+6)
}

// drawClearanceZone hatches the band along the plate edges where no socket
// may be placed.
func drawClearanceZone(pdf *fpdf.Fpdf, x, y, w, h, band float64) {
	if band <= 0 || 2*band >= w || 2*band >= h {
		return
	}
	strips := [][4]float64{
		{x, y, w, band},
		{x, y + h - band, w, band},
		{x, y + band, band, h - 2*band},
		{x + w - band, y + band, band, h - 2*band},
	}
	pdf.SetFillColor(255, 220, 220)
	for _, s := range strips {
		pdf.Rect(s[0], s[1], s[2], s[3], "F")
		drawHatchPattern(pdf, s[0], s[1], s[2], s[3])
	}
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.SetDashPattern([]float64{1, 1}, 0)
	pdf.Rect(x+band, y+band, w-2*band, h-2*band, "D")
	pdf.SetDashPattern([]float64{}, 0)
}

// drawHatchPattern draws diagonal lines inside a rectangle to indicate exclusion zones.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(220, 120, 120)
	pdf.SetLineWidth(0.1)

	spacing := 2.0
	for d := spacing; d < w+h; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)
		pdf.Line(x1, y1, x2, y2)
	}
}

// drawAnchorDimensions draws the distance from the group's anchor to the left
// and bottom plate edges.
func drawAnchorDimensions(pdf *fpdf.Fpdf, g model.SocketGroup, toPage func(x, y float64) (float64, float64)) {
	ax, ay := toPage(g.X, g.Y)
	leftX, _ := toPage(0, g.Y)
	_, bottomY := toPage(g.X, 0)

	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.15)
	pdf.SetDashPattern([]float64{0.8, 0.8}, 0)
	pdf.Line(leftX, ay, ax, ay)
	pdf.Line(ax, ay, ax, bottomY)
	pdf.SetDashPattern([]float64{}, 0)

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(60, 60, 60)
	xLabel := fmt.Sprintf("%.1f", g.X)
	pdf.SetXY(leftX+(ax-leftX-pdf.GetStringWidth(xLabel))/2, ay-3)
	pdf.CellFormat(pdf.GetStringWidth(xLabel), 3, xLabel, "", 0, "C", false, 0, "")
	yLabel := fmt.Sprintf("%.1f", g.Y)
	pdf.SetXY(ax+0.5, ay+(bottomY-ay)/2-1.5)
	pdf.CellFormat(pdf.GetStringWidth(yLabel), 3, yLabel, "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// drawDimensionAnnotations adds width and height dimension labels outside the plate rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, plate model.Plate, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.1f cm", plate.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.1f cm", plate.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawGroupLegend renders a compact legend of socket groups below the plate.
func drawGroupLegend(pdf *fpdf.Fpdf, groups []model.SocketGroup, startY float64) {
	if len(groups) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Socket groups:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, g := range groups {
		col := groupColors[i%len(groupColors)]
		label := fmt.Sprintf("%d: %dx %s @ (%.1f, %.1f)", i+1, g.Count, g.Direction, g.X, g.Y)
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")
		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final summary page with the plate and socket tables.
func renderSummaryPage(pdf *fpdf.Fpdf, layout model.Layout) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Layout Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall", "", 0, "L", false, 0, "")
	y += 9

	sockets := "disabled"
	if layout.SocketsEnabled {
		sockets = fmt.Sprintf("%d in %d groups", layout.SocketCount(), len(layout.SocketGroups))
	}
	summaryItems := []struct {
		label string
		value string
	}{
		{"Plates", fmt.Sprintf("%d", len(layout.Plates))},
		{"Total Area", fmt.Sprintf("%.0f cm²", layout.TotalArea())},
		{"Sockets", sockets},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Plates", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{20, 45, 45, 40, 40}
	headers := []string{"Plate", "Width", "Height", "Sockets OK", "Groups"}
	y = drawTableHeader(pdf, colWidths, headers, y)

	pdf.SetFont("Helvetica", "", 9)
	for i, plate := range layout.Plates {
		ok := "no"
		if plate.Eligible() {
			ok = "yes"
		}
		y = drawTableRow(pdf, colWidths, []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.1f cm", plate.Width),
			fmt.Sprintf("%.1f cm", plate.Height),
			ok,
			fmt.Sprintf("%d", len(layout.GroupsOnPlate(plate.ID))),
		}, i, y)
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	footer := fmt.Sprintf("Generated by SocketPlan - edge clearance %.0f cm, group clearance %.0f cm",
		model.MinEdgeClearance, model.MinGroupClearance)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, footer, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func drawTableHeader(pdf *fpdf.Fpdf, colWidths []float64, headers []string, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	return y + 6
}

func drawTableRow(pdf *fpdf.Fpdf, colWidths []float64, cells []string, row int, y float64) float64 {
	if row%2 == 0 {
		pdf.SetFillColor(245, 245, 245)
	} else {
		pdf.SetFillColor(255, 255, 255)
	}
	xPos := marginLeft
	for j, cell := range cells {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
		xPos += colWidths[j]
	}
	return y + 6
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 20:
		return 9
	case minDim > 8:
		return 7
	default:
		return 5
	}
}

func countSockets(groups []model.SocketGroup) int {
	total := 0
	for _, g := range groups {
		total += g.Count
	}
	return total
}
