package ui

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

var (
	noticeErrorBg = color.NRGBA{R: 254, G: 226, B: 226, A: 255}
	noticeInfoBg  = color.NRGBA{R: 220, G: 252, B: 231, A: 255}
)

// Notice is a one-line banner that hides itself after a while. A newer
// message replaces the current one and restarts the timer.
type Notice struct {
	label    *widget.Label
	icon     *widget.Icon
	bg       *canvas.Rectangle
	box      *fyne.Container
	duration time.Duration
	seq      int

	// after schedules fn on another goroutine; time.AfterFunc outside tests.
	after func(d time.Duration, fn func())
}

func NewNotice(duration time.Duration) *Notice {
	n := &Notice{
		label:    widget.NewLabel(""),
		icon:     widget.NewIcon(theme.ErrorIcon()),
		bg:       canvas.NewRectangle(noticeErrorBg),
		duration: duration,
		after: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
	}
	n.label.Wrapping = fyne.TextWrapWord
	n.box = container.NewStack(n.bg, container.NewBorder(nil, nil, n.icon, nil, n.label))
	n.box.Hide()
	return n
}

// Object returns the banner for placing in a layout.
func (n *Notice) Object() fyne.CanvasObject {
	return n.box
}

// Error shows msg as a problem.
func (n *Notice) Error(msg string) {
	n.show(msg, theme.ErrorIcon(), noticeErrorBg)
}

// Info shows msg as a confirmation.
func (n *Notice) Info(msg string) {
	n.show(msg, theme.ConfirmIcon(), noticeInfoBg)
}

// Text returns the visible message, "" when hidden.
func (n *Notice) Text() string {
	if !n.box.Visible() {
		return ""
	}
	return n.label.Text
}

// Dismiss hides the banner now.
func (n *Notice) Dismiss() {
	n.seq++
	n.box.Hide()
}

func (n *Notice) show(msg string, icon fyne.Resource, bg color.Color) {
	n.seq++
	seq := n.seq
	n.label.SetText(msg)
	n.icon.SetResource(icon)
	n.bg.FillColor = bg
	n.bg.Refresh()
	n.box.Show()

	if n.duration <= 0 {
		return
	}
	n.after(n.duration, func() {
		fyne.Do(func() {
			if n.seq == seq {
				n.box.Hide()
			}
		})
	})
}
