package importer

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"
)

func rect(x, y, w, h float64) [][]float64 {
	return [][]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
}

func writeTestDXF(t *testing.T, draw func(d *drawing.Drawing)) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plates.dxf")
	d := dxf.NewDrawing()
	draw(d)
	require.NoError(t, d.SaveAs(path))
	return path
}

func TestImportDXF_PolylinesAndCutouts(t *testing.T) {
	path := writeTestDXF(t, func(d *drawing.Drawing) {
		_, err := d.LwPolyline(true, rect(2000, 0, 600, 500)...)
		require.NoError(t, err)
		_, err = d.LwPolyline(true, rect(0, 0, 1000, 500)...)
		require.NoError(t, err)
		// socket cut-out inside the first plate
		_, err = d.LwPolyline(true, rect(100, 100, 70, 70)...)
		require.NoError(t, err)
	})

	result := ImportDXF(path)
	require.Empty(t, result.Errors)
	require.Len(t, result.Plates, 2)

	assert.InDelta(t, 100.0, result.Plates[0].Width, 1e-6, "plates are ordered left to right")
	assert.InDelta(t, 50.0, result.Plates[0].Height, 1e-6)
	assert.InDelta(t, 60.0, result.Plates[1].Width, 1e-6)
	assert.Contains(t, strings.Join(result.Warnings, "\n"), "nested")
}

func TestImportDXF_ChainedLines(t *testing.T) {
	path := writeTestDXF(t, func(d *drawing.Drawing) {
		pts := rect(0, 0, 800, 450)
		for i := range pts {
			a, b := pts[i], pts[(i+1)%len(pts)]
			_, err := d.Line(a[0], a[1], 0, b[0], b[1], 0)
			require.NoError(t, err)
		}
	})

	result := ImportDXF(path)
	require.Empty(t, result.Errors)
	require.Len(t, result.Plates, 1)
	assert.InDelta(t, 80.0, result.Plates[0].Width, 1e-6)
	assert.InDelta(t, 45.0, result.Plates[0].Height, 1e-6)
}

func TestImportDXF_ClampsOversizedPlate(t *testing.T) {
	path := writeTestDXF(t, func(d *drawing.Drawing) {
		_, err := d.LwPolyline(true, rect(0, 0, 4000, 200)...)
		require.NoError(t, err)
	})

	result := ImportDXF(path)
	require.Len(t, result.Plates, 1)
	assert.Equal(t, 300.0, result.Plates[0].Width)
	assert.Equal(t, 30.0, result.Plates[0].Height)
	assert.Len(t, result.Warnings, 2)
}

func TestImportDXF_MissingFile(t *testing.T) {
	result := ImportDXF(filepath.Join(t.TempDir(), "nope.dxf"))
	assert.NotEmpty(t, result.Errors)
}

func TestOutermostKeepsOneOfIdenticalShapes(t *testing.T) {
	a := outline{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	b := outline{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	got := outermost([]outline{a, b})
	assert.Len(t, got, 1)
}

func TestChainSegmentsDropsOpenChains(t *testing.T) {
	segs := []segment{
		{point{0, 0}, point{10, 0}},
		{point{10, 0}, point{10, 10}},
	}
	assert.Empty(t, chainSegments(segs, 0.01))
}

func TestOutlineArea(t *testing.T) {
	assert.InDelta(t, 200.0, outlineArea(outline{{0, 0}, {20, 0}, {20, 10}, {0, 10}}), 1e-9)
	assert.Zero(t, outlineArea(outline{{0, 0}, {1, 1}}))
}
