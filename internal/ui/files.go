package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"github.com/piwi3910/SocketPlan/internal/export"
	"github.com/piwi3910/SocketPlan/internal/importer"
	"github.com/piwi3910/SocketPlan/internal/model"
	"github.com/piwi3910/SocketPlan/internal/project"
)

// exportKind is one entry of the File > Export menu.
type exportKind struct {
	title  string
	suffix string
	write  func(path string, l model.Layout) error
}

var exportKinds = []exportKind{
	{"PDF Drawing", ".pdf", export.ExportPDF},
	{"Labels", "-labels.pdf", export.ExportLabels},
	{"DXF Drawing", ".dxf", export.ExportDXF},
	{"Cut List", ".xlsx", export.ExportCutList},
	{"Layout", ".json", project.ExportLayout},
}

// ─── Export ────────────────────────────────────────────────

func (a *App) exportFile(k exportKind) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := a.writeExport(k, path); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
	d.SetFileName("socketplan" + k.suffix)
	a.startInExportDir(d)
	d.Show()
}

// writeExport writes the current layout and remembers where it went.
func (a *App) writeExport(k exportKind, path string) error {
	if err := k.write(path, a.session.Layout()); err != nil {
		a.logger.Error("export failed", "kind", k.title, "path", path, "err", err)
		return err
	}
	a.logger.Info("exported", "kind", k.title, "path", path)

	a.config.AddRecentExport(path)
	a.config.LastExportDir = filepath.Dir(path)
	if a.configPath != "" {
		if err := project.SaveAppConfig(a.configPath, a.config); err != nil {
			a.logger.Warn("could not save config", "path", a.configPath, "err", err)
		}
	}
	a.notice.Info(fmt.Sprintf("%s saved to %s", k.title, filepath.Base(path)))
	return nil
}

func (a *App) startInExportDir(d *dialog.FileDialog) {
	if a.config.LastExportDir == "" {
		return
	}
	if dir, err := storage.ListerForURI(storage.NewFileURI(a.config.LastExportDir)); err == nil {
		d.SetLocation(dir)
	}
}

// ─── Open & Import ─────────────────────────────────────────

func (a *App) openLayoutDialog() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		if err := a.OpenLayout(path); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".json", ".yaml", ".yml"}))
	d.Show()
}

// OpenLayout replaces the editor content with a layout file. Socket groups
// that break the placement rules are skipped and counted in the notice.
func (a *App) OpenLayout(path string) error {
	doc, err := project.ImportLayout(path)
	if err != nil {
		return err
	}
	skipped := a.session.Load(doc.Layout)
	a.logger.Info("layout opened", "path", path, "skipped", len(skipped))
	if len(skipped) > 0 {
		a.notice.Error(fmt.Sprintf("%s: %d socket groups skipped", filepath.Base(path), len(skipped)))
	} else {
		a.notice.Info("Opened " + filepath.Base(path))
	}
	return nil
}

func (a *App) importPlatesDialog() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		result, err := importer.ImportFile(path)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.handleImportResult(path, result)
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter(importer.Extensions))
	d.Show()
}

// handleImportResult appends imported plates to the current layout.
func (a *App) handleImportResult(path string, result importer.ImportResult) {
	for _, w := range result.Warnings {
		a.logger.Warn(w, "file", path)
	}
	if len(result.Errors) > 0 {
		msg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", msg), a.window)
	}
	if len(result.Plates) == 0 {
		return
	}

	l := a.session.Layout()
	l.Plates = append(append([]model.Plate(nil), l.Plates...), result.Plates...)
	a.session.Load(l)
	a.notice.Info(fmt.Sprintf("%d plates imported from %s", len(result.Plates), filepath.Base(path)))
}
