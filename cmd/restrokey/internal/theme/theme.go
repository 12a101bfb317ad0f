package theme

import (
	"image/color"

	"gioui.org/unit"
	"gioui.org/widget/material"
)

// Palette defines the panel colors.
type Palette struct {
	Background color.NRGBA
	Surface    color.NRGBA
	Panel      color.NRGBA
	Primary    color.NRGBA
	Text       color.NRGBA
	TextMuted  color.NRGBA
	Border     color.NRGBA
	Success    color.NRGBA
	Error      color.NRGBA
	Warning    color.NRGBA
}

// Config defines the panel metrics.
type Config struct {
	CornerRadius unit.Dp
	Spacing      unit.Dp
	Padding      unit.Dp
	FontTitle    unit.Sp
	FontBody     unit.Sp
	FontCaption  unit.Sp
}

// Theme wraps the material theme with panel-specific styling.
type Theme struct {
	*material.Theme
	Palette Palette
	Config  Config
}

// NewTheme creates a themed wrapper over the material theme.
func NewTheme(mtheme *material.Theme, dark bool) *Theme {
	t := &Theme{Theme: mtheme}
	if dark {
		setupDarkTheme(t)
	} else {
		setupLightTheme(t)
	}
	t.Config = Config{
		CornerRadius: unit.Dp(4),
		Spacing:      unit.Dp(8),
		Padding:      unit.Dp(16),
		FontTitle:    unit.Sp(20),
		FontBody:     unit.Sp(14),
		FontCaption:  unit.Sp(12),
	}
	return t
}

func setupDarkTheme(t *Theme) {
	// Fluent / Windows 11 inspired dark palette.
	t.Palette = Palette{
		Background: color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xFF},
		Surface:    color.NRGBA{R: 0x2C, G: 0x2C, B: 0x2C, A: 0xFF},
		Panel:      color.NRGBA{R: 0x32, G: 0x32, B: 0x32, A: 0xFF},
		Primary:    color.NRGBA{R: 0x00, G: 0x78, B: 0xD4, A: 0xFF},
		Text:       color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		TextMuted:  color.NRGBA{R: 0xA0, G: 0xA0, B: 0xA0, A: 0xFF},
		Border:     color.NRGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xFF},
		Success:    color.NRGBA{R: 0x6B, G: 0xBC, B: 0x0F, A: 0xFF},
		Error:      color.NRGBA{R: 0xE8, G: 0x11, B: 0x23, A: 0xFF},
		Warning:    color.NRGBA{R: 0xFF, G: 0xB9, B: 0x00, A: 0xFF},
	}
}

func setupLightTheme(t *Theme) {
	t.Palette = Palette{
		Background: color.NRGBA{R: 0xF3, G: 0xF3, B: 0xF3, A: 0xFF},
		Surface:    color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		Panel:      color.NRGBA{R: 0xFA, G: 0xFA, B: 0xFA, A: 0xFF},
		Primary:    color.NRGBA{R: 0x00, G: 0x5F, B: 0xB8, A: 0xFF},
		Text:       color.NRGBA{R: 0x1A, G: 0x1A, B: 0x1A, A: 0xFF},
		TextMuted:  color.NRGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xFF},
		Border:     color.NRGBA{R: 0xD0, G: 0xD0, B: 0xD0, A: 0xFF},
		Success:    color.NRGBA{R: 0x10, G: 0x7C, B: 0x10, A: 0xFF},
		Error:      color.NRGBA{R: 0xC4, G: 0x2B, B: 0x1C, A: 0xFF},
		Warning:    color.NRGBA{R: 0x9D, G: 0x5D, B: 0x00, A: 0xFF},
	}
}
