package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"github.com/tartampluch/go-clock/internal/config"
)

// clockTheme pins the default theme to one variant and swaps in the accent color.
type clockTheme struct {
	mode    string
	variant fyne.ThemeVariant
	primary color.Color
}

var _ fyne.Theme = (*clockTheme)(nil)

func newClockTheme(mode string) *clockTheme {
	t := &clockTheme{mode: config.ThemeLight, variant: theme.VariantLight, primary: hexColor(config.ThemeSeedColor)}
	if mode == config.ThemeDark {
		t.mode = config.ThemeDark
		t.variant = theme.VariantDark
	}
	return t
}

func (t *clockTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	if name == theme.ColorNamePrimary {
		return t.primary
	}
	return theme.DefaultTheme().Color(name, t.variant)
}

func (t *clockTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *clockTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *clockTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}

// otherThemeMode returns the mode a toggle switches to.
func otherThemeMode(mode string) string {
	if mode == config.ThemeDark {
		return config.ThemeLight
	}
	return config.ThemeDark
}

// themeIcon is the icon shown on the toggle for the current mode.
func themeIcon(mode string) fyne.Resource {
	if mode == config.ThemeDark {
		return theme.VisibilityOffIcon()
	}
	return theme.VisibilityIcon()
}

// hexColor parses "#RRGGBB". Malformed input yields opaque black.
func hexColor(s string) color.NRGBA {
	c := color.NRGBA{A: 0xFF}
	_, _ = fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	return c
}
