package ui

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/SocketPlan/internal/configurator"
	"github.com/piwi3910/SocketPlan/internal/model"
)

// parseCM reads a length typed by the user. Commas count as decimal points;
// anything unparsable or not finite is 0 and left to the clamping and
// placement rules.
func parseCM(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// formatCM prints a length without trailing zeros.
func formatCM(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func boldLabel(text string) *widget.Label {
	return widget.NewLabelWithStyle(text, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
}

// ─── Plates Panel ──────────────────────────────────────────

func (a *App) buildPlatePanel() fyne.CanvasObject {
	a.plateList = container.NewVBox()

	addBtn := newButtonWithTooltip("Add plate", theme.ContentAddIcon(),
		fmt.Sprintf("Add a %s x %s cm plate", formatCM(model.NewPlateWidth), formatCM(model.NewPlateHeight)),
		func() { a.session.AddPlate() })

	return container.NewBorder(
		container.NewHBox(boldLabel("Plates"), layout.NewSpacer(), addBtn),
		nil, nil, nil,
		a.plateList,
	)
}

// refreshPlates rebuilds the plate rows when the plates changed, so an entry
// keeps its focus while other parts of the state move.
func (a *App) refreshPlates() {
	if a.plateList == nil {
		return
	}
	plates := a.session.State().Plates
	if a.shownPlates != nil && slices.Equal(plates, a.shownPlates) {
		return
	}
	a.shownPlates = plates

	a.plateList.RemoveAll()
	a.plateList.Add(container.NewGridWithColumns(4,
		boldLabel("Plate"),
		boldLabel("Width (cm)"),
		boldLabel("Height (cm)"),
		widget.NewLabel(""),
	))
	for i, p := range plates {
		a.plateList.Add(a.plateRow(i, p, len(plates) == 1))
	}
}

func (a *App) plateRow(i int, p model.Plate, last bool) fyne.CanvasObject {
	id := p.ID
	width := widget.NewEntry()
	width.SetText(formatCM(p.Width))
	height := widget.NewEntry()
	height.SetText(formatCM(p.Height))

	submit := func(string) {
		_ = a.session.UpdatePlate(id, parseCM(width.Text), parseCM(height.Text))
		// show the clamped values even when nothing changed
		if cur, ok := a.session.State().FindPlate(id); ok {
			width.SetText(formatCM(cur.Width))
			height.SetText(formatCM(cur.Height))
		}
	}
	width.OnSubmitted = submit
	height.OnSubmitted = submit

	del := newIconButtonWithTooltip(theme.DeleteIcon(), "Delete plate", func() {
		_ = a.session.DeletePlate(id)
	})
	if last {
		del.Disable()
	}

	name := widget.NewLabel(fmt.Sprintf("%d", i+1))
	if !p.Eligible() {
		name.SetText(fmt.Sprintf("%d (no sockets)", i+1))
	}
	return container.NewGridWithColumns(4, name, width, height, del)
}

// ─── Sockets Panel ─────────────────────────────────────────

func (a *App) buildSocketPanel() fyne.CanvasObject {
	a.socketPanel = container.NewVBox()
	return a.socketPanel
}

func (a *App) refreshSockets() {
	if a.socketPanel == nil {
		return
	}
	st := a.session.State()
	a.socketPanel.RemoveAll()

	enable := widget.NewCheck("Enabled", nil)
	enable.SetChecked(st.SocketsEnabled)
	enable.OnChanged = func(on bool) { _ = a.session.SetSocketsEnabled(on) }
	a.socketPanel.Add(container.NewHBox(boldLabel("Sockets"), layout.NewSpacer(), enable))

	if !st.SocketsEnabled {
		return
	}
	if g, ok := st.EditingGroup(); ok {
		a.socketPanel.Add(a.buildGroupForm(st, g))
		return
	}

	for i, g := range st.SocketGroups {
		id := g.ID
		plate := st.PlateIndex(g.PlateID) + 1
		row := container.NewBorder(nil, nil, nil,
			container.NewHBox(
				newIconButtonWithTooltip(theme.DocumentCreateIcon(), "Edit group", func() { _ = a.session.SetEditing(id) }),
				newIconButtonWithTooltip(theme.DeleteIcon(), "Delete group", func() { a.session.DeleteSocketGroup(id) }),
			),
			widget.NewLabel(fmt.Sprintf("Group %d: %d x %s on plate %d", i+1, g.Count, g.Direction, plate)),
		)
		a.socketPanel.Add(row)
	}

	addBtn := widget.NewButtonWithIcon("Add socket group", theme.ContentAddIcon(), func() {
		if g, err := a.session.AddSocketGroup(); err == nil {
			_ = a.session.SetEditing(g.ID)
		}
	})
	a.socketPanel.Add(addBtn)
	if len(st.EligiblePlates()) == 0 {
		addBtn.Disable()
		hint := widget.NewLabel(fmt.Sprintf("No plate is large enough (min %s x %s cm).",
			formatCM(model.PlateMinSizeForSockets), formatCM(model.PlateMinSizeForSockets)))
		hint.Importance = widget.DangerImportance
		a.socketPanel.Add(hint)
	}
}

// buildGroupForm edits one group. Plate, count and direction apply as soon
// as they are picked; the position applies on Enter or Confirm.
func (a *App) buildGroupForm(st configurator.State, g model.SocketGroup) fyne.CanvasObject {
	id := g.ID
	update := func(u configurator.GroupUpdate) { _ = a.session.UpdateSocketGroup(id, u) }

	var labels []string
	plateIDs := make(map[string]string)
	selected := ""
	for _, p := range st.EligiblePlates() {
		label := fmt.Sprintf("Plate %d (%s x %s cm)", st.PlateIndex(p.ID)+1, formatCM(p.Width), formatCM(p.Height))
		labels = append(labels, label)
		plateIDs[label] = p.ID
		if p.ID == g.PlateID {
			selected = label
		}
	}
	plateSel := widget.NewSelect(labels, nil)
	plateSel.SetSelected(selected)
	plateSel.OnChanged = func(label string) { update(configurator.SetPlate(plateIDs[label])) }

	counts := make([]string, 0, model.SocketCountMax)
	for n := model.SocketCountMin; n <= model.SocketCountMax; n++ {
		counts = append(counts, strconv.Itoa(n))
	}
	count := widget.NewRadioGroup(counts, nil)
	count.Horizontal = true
	count.Required = true
	count.SetSelected(strconv.Itoa(g.Count))
	count.OnChanged = func(s string) {
		if n, err := strconv.Atoi(s); err == nil {
			update(configurator.SetCount(n))
		}
	}

	direction := widget.NewRadioGroup([]string{
		model.DirectionHorizontal.String(),
		model.DirectionVertical.String(),
	}, nil)
	direction.Horizontal = true
	direction.Required = true
	direction.SetSelected(g.Direction.String())
	direction.OnChanged = func(s string) {
		if d, ok := model.ParseDirection(s); ok {
			update(configurator.SetDirection(d))
		}
	}

	x := widget.NewEntry()
	x.SetText(formatCM(g.X))
	y := widget.NewEntry()
	y.SetText(formatCM(g.Y))
	applyPosition := func() error {
		cur, ok := a.session.State().FindGroup(id)
		px, py := parseCM(x.Text), parseCM(y.Text)
		if ok && cur.X == px && cur.Y == py {
			return nil
		}
		return a.session.UpdateSocketGroup(id, configurator.SetPosition(px, py))
	}
	x.OnSubmitted = func(string) { _ = applyPosition() }
	y.OnSubmitted = func(string) { _ = applyPosition() }

	form := widget.NewForm(
		widget.NewFormItem("Plate", plateSel),
		widget.NewFormItem("Sockets", count),
		widget.NewFormItem("Direction", direction),
		widget.NewFormItem("From left (cm)", x),
		widget.NewFormItem("From bottom (cm)", y),
	)

	confirm := widget.NewButtonWithIcon("Confirm", theme.ConfirmIcon(), func() {
		if applyPosition() == nil {
			a.session.ClearEditing()
		}
	})
	confirm.Importance = widget.HighImportance

	return container.NewVBox(form, confirm)
}
