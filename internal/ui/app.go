// Package ui is the Fyne desktop editor: the plate canvas on the left, the
// plate and socket panels on the right, and the File menu exporters.
package ui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"

	"github.com/piwi3910/SocketPlan/internal/configurator"
	"github.com/piwi3910/SocketPlan/internal/model"
	"github.com/piwi3910/SocketPlan/internal/ui/widgets"
)

// Options configures an App.
type Options struct {
	Config     model.AppConfig
	ConfigPath string // where export locations are remembered; "" disables saving
	Logger     *log.Logger
	Version    string
}

// App holds the editor session and UI references.
type App struct {
	window     fyne.Window
	session    *configurator.Session
	logger     *log.Logger
	config     model.AppConfig
	configPath string
	version    string

	canvas      *widgets.PlateCanvas
	notice      *Notice
	status      *widget.Label
	plateList   *fyne.Container
	socketPanel *fyne.Container

	shownPlates []model.Plate
}

func NewApp(window fyne.Window, session *configurator.Session, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	a := &App{
		window:     window,
		session:    session,
		logger:     logger,
		config:     opts.Config,
		configPath: opts.ConfigPath,
		version:    opts.Version,
		notice:     NewNotice(time.Duration(opts.Config.NoticeSeconds) * time.Second),
		status:     widget.NewLabel(""),
	}
	a.canvas = widgets.NewPlateCanvas(session)
	a.canvas.OnSelect = func(id string) { _ = a.session.SetEditing(id) }

	session.OnChange(func(configurator.State) { a.refresh() })
	session.OnReject(a.reject)
	return a
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	exportItems := make([]*fyne.MenuItem, len(exportKinds))
	for i, k := range exportKinds {
		exportItems[i] = fyne.NewMenuItem("Export "+k.title+"...", func() { a.exportFile(k) })
	}

	quit := fyne.NewMenuItem("Quit", func() { a.window.Close() })
	quit.IsQuit = true

	items := []*fyne.MenuItem{
		fyne.NewMenuItem("Open Layout...", a.openLayoutDialog),
		fyne.NewMenuItem("Import Plates...", a.importPlatesDialog),
		fyne.NewMenuItemSeparator(),
	}
	items = append(items, exportItems...)
	items = append(items, fyne.NewMenuItemSeparator(), quit)
	fileMenu := fyne.NewMenu("File", items...)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Add Plate", func() { a.session.AddPlate() }),
		fyne.NewMenuItem("Add Socket Group", func() {
			if g, err := a.session.AddSocketGroup(); err == nil {
				_ = a.session.SetEditing(g.ID)
			}
		}),
		fyne.NewMenuItem("Finish Editing", a.session.ClearEditing),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, helpMenu))
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About SocketPlan",
		"SocketPlan: back panel and socket layout planner\n\n"+
			"Plan plates and socket groups with edge and group clearances,\n"+
			"then export drawings, labels and cut lists for fabrication.\n\n"+
			"Version "+a.version,
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	side := container.NewVScroll(container.NewVBox(
		a.buildPlatePanel(),
		widget.NewSeparator(),
		a.buildSocketPanel(),
	))
	split := container.NewHSplit(a.canvas, side)
	split.Offset = 0.65

	a.refresh()
	return container.NewBorder(a.notice.Object(), a.status, nil, nil, split)
}

// Close cancels a running drag; call it when the window closes.
func (a *App) Close() {
	a.canvas.Close()
	a.session.Close()
}

func (a *App) refresh() {
	st := a.session.State()
	a.canvas.Update(st.Layout, st.EditingID)
	a.refreshPlates()
	a.refreshSockets()
	a.status.SetText(fmt.Sprintf("%d plates, %.2f m², %d socket groups, %d sockets",
		len(st.Plates), st.TotalArea()/10000, len(st.SocketGroups), st.SocketCount()))
}

// reject shows err and redraws the panels so widgets that already show the
// rejected value go back to the state.
func (a *App) reject(err error) {
	a.notice.Error(err.Error())
	a.refreshSockets()
}
