package ui

import (
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/SocketPlan/internal/configurator"
	"github.com/piwi3910/SocketPlan/internal/importer"
	"github.com/piwi3910/SocketPlan/internal/model"
	"github.com/piwi3910/SocketPlan/internal/project"
)

func newTestApp(t *testing.T) (*App, *configurator.Session) {
	t.Helper()
	test.NewTempApp(t)

	cfg := model.DefaultAppConfig()
	cfg.NoticeSeconds = 0 // keep notices until replaced

	s := configurator.NewSession(nil)
	w := test.NewWindow(nil)
	t.Cleanup(w.Close)
	a := NewApp(w, s, Options{
		Config:     cfg,
		ConfigPath: filepath.Join(t.TempDir(), "config.json"),
		Version:    "test",
	})
	w.SetContent(a.Build())
	return a, s
}

// editingSession leaves one 100 x 50 plate with one group open in the form.
func editingSession(t *testing.T, s *configurator.Session) string {
	t.Helper()
	s.AddPlate()
	require.NoError(t, s.DeletePlate(s.State().Plates[0].ID))
	require.NoError(t, s.SetSocketsEnabled(true))
	id := s.State().SocketGroups[0].ID
	require.NoError(t, s.SetEditing(id))
	return id
}

func groupForm(t *testing.T, a *App) (*widget.Form, *widget.Button) {
	t.Helper()
	require.Len(t, a.socketPanel.Objects, 2)
	box := a.socketPanel.Objects[1].(*fyne.Container)
	return box.Objects[0].(*widget.Form), box.Objects[1].(*widget.Button)
}

func TestPlateRowsFollowState(t *testing.T) {
	a, s := newTestApp(t)
	assert.Len(t, a.plateList.Objects, 2, "header and the initial plate")

	s.AddPlate()
	assert.Len(t, a.plateList.Objects, 3)

	require.NoError(t, s.DeletePlate(s.State().Plates[0].ID))
	assert.Len(t, a.plateList.Objects, 2)
	assert.Contains(t, a.status.Text, "1 plates")
}

func TestRejectShowsNotice(t *testing.T) {
	a, s := newTestApp(t)
	assert.Empty(t, a.notice.Text())

	err := s.DeletePlate(s.State().Plates[0].ID)
	require.ErrorIs(t, err, configurator.ErrLastPlate)
	assert.Equal(t, configurator.ErrLastPlate.Error(), a.notice.Text())
}

func TestSocketPanelWithoutEligiblePlate(t *testing.T) {
	a, s := newTestApp(t)
	assert.Len(t, a.socketPanel.Objects, 1, "only the header while disabled")

	assert.ErrorIs(t, s.SetSocketsEnabled(true), configurator.ErrNoEligiblePlate)
	require.Len(t, a.socketPanel.Objects, 3)
	add := a.socketPanel.Objects[1].(*widget.Button)
	assert.True(t, add.Disabled())
	assert.Contains(t, a.socketPanel.Objects[2].(*widget.Label).Text, "min 40 x 40 cm")
}

func TestGroupFormPosition(t *testing.T) {
	a, s := newTestApp(t)
	id := editingSession(t, s)

	form, confirm := groupForm(t, a)
	form.Items[3].Widget.(*widget.Entry).SetText("95")
	test.Tap(confirm)

	assert.Contains(t, a.notice.Text(), "invalid position")
	assert.Equal(t, id, s.State().EditingID, "a rejected position keeps the form open")
	g, _ := s.State().FindGroup(id)
	assert.Equal(t, model.DefaultGroupX, g.X)

	form, confirm = groupForm(t, a)
	assert.Equal(t, "10", form.Items[3].Widget.(*widget.Entry).Text)
	form.Items[3].Widget.(*widget.Entry).SetText("20,5")
	test.Tap(confirm)

	g, _ = s.State().FindGroup(id)
	assert.Equal(t, 20.5, g.X)
	assert.Empty(t, s.State().EditingID)
	assert.Len(t, a.socketPanel.Objects, 3, "header, group row and add button")
}

func TestOpenLayout(t *testing.T) {
	a, s := newTestApp(t)
	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, project.ExportLayout(path, model.Layout{
		Plates: []model.Plate{{ID: "p", Width: 100, Height: 50}},
		SocketGroups: []model.SocketGroup{
			{ID: "a", PlateID: "p", Count: 1, X: 10, Y: 10},
			{ID: "b", PlateID: "p", Count: 1, X: 1, Y: 10},
		},
		SocketsEnabled: true,
	}))

	require.NoError(t, a.OpenLayout(path))
	assert.Len(t, s.State().SocketGroups, 1)
	assert.Contains(t, a.notice.Text(), "1 socket groups skipped")
	_, ok := a.canvas.GroupWidget("a")
	assert.True(t, ok)

	assert.Error(t, a.OpenLayout(filepath.Join(t.TempDir(), "missing.json")))
}

func TestWriteExportRemembersLocation(t *testing.T) {
	a, _ := newTestApp(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.json")

	layoutKind := exportKinds[len(exportKinds)-1]
	require.NoError(t, a.writeExport(layoutKind, path))

	_, err := os.Stat(path)
	require.NoError(t, err)
	assert.Contains(t, a.notice.Text(), "plan.json")

	cfg, err := project.LoadAppConfig(a.configPath)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.LastExportDir)
	assert.Equal(t, []string{path}, cfg.RecentExports)
}

func TestHandleImportResultAppendsPlates(t *testing.T) {
	a, s := newTestApp(t)
	a.handleImportResult("plates.csv", importer.ImportResult{
		Plates: []model.Plate{model.NewPlate(100, 50), model.NewPlate(80, 40)},
	})
	assert.Len(t, s.State().Plates, 3)
	assert.Contains(t, a.notice.Text(), "2 plates imported")

	a.handleImportResult("empty.csv", importer.ImportResult{})
	assert.Len(t, s.State().Plates, 3)
}

func TestParseCM(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"12.5", 12.5},
		{" 12,5 ", 12.5},
		{"", 0},
		{"abc", 0},
		{"NaN", 0},
		{"Inf", 0},
		{"-inf", 0},
		{"+Infinity", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseCM(tt.in), tt.in)
	}
	assert.Equal(t, "151.5", formatCM(151.5))
	assert.Equal(t, "10", formatCM(10))
}

func TestThemeVariant(t *testing.T) {
	base := theme.DefaultTheme()

	dark := NewSocketPlanTheme("dark")
	assert.Equal(t, base.Color(theme.ColorNameBackground, theme.VariantDark),
		dark.Color(theme.ColorNameBackground, theme.VariantLight))

	system := NewSocketPlanTheme("system")
	assert.Equal(t, base.Color(theme.ColorNameBackground, theme.VariantLight),
		system.Color(theme.ColorNameBackground, theme.VariantLight))

	dark.SetVariant("light")
	assert.Equal(t, base.Color(theme.ColorNameBackground, theme.VariantLight),
		dark.Color(theme.ColorNameBackground, theme.VariantDark))
}
