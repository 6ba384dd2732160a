package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// SocketPlanTheme is the default Fyne theme with a fixed light or dark
// variant and slightly denser spacing for the editor panels.
type SocketPlanTheme struct {
	base    fyne.Theme
	forced  bool
	variant fyne.ThemeVariant
}

// NewSocketPlanTheme returns the theme for a config value of "light",
// "dark" or "system". Anything else follows the system.
func NewSocketPlanTheme(name string) *SocketPlanTheme {
	t := &SocketPlanTheme{base: theme.DefaultTheme()}
	t.SetVariant(name)
	return t
}

// SetVariant switches between "light", "dark" and "system".
func (t *SocketPlanTheme) SetVariant(name string) {
	switch name {
	case "light":
		t.forced, t.variant = true, theme.VariantLight
	case "dark":
		t.forced, t.variant = true, theme.VariantDark
	default:
		t.forced = false
	}
}

func (t *SocketPlanTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.forced {
		variant = t.variant
	}
	return t.base.Color(name, variant)
}

func (t *SocketPlanTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *SocketPlanTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

func (t *SocketPlanTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 13
	case theme.SizeNameCaptionText:
		return 10
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	default:
		return t.base.Size(name)
	}
}
