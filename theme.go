package main

import (
	"image/color"

	"github.com/example/swatchbook/internal/state"
)

// Theme is the set of UI colours for one appearance.
type Theme struct {
	Background    color.Color // window background
	Panel         color.Color // left column and card background
	PanelBorder   color.Color
	Field         color.Color // text fields, slider tracks
	Button        color.Color
	ButtonHover   color.Color
	Text          color.Color
	TextDim       color.Color
	Accent        color.Color // focus, drop indicator
	Danger        color.Color
	MenuBg        color.Color
	MenuBorder    color.Color
	MenuHighlight color.Color
	ToastBg       color.Color
	Scrim         color.Color // drag ghost backdrop
}

var darkTheme = Theme{
	Background:    color.RGBA{0x09, 0x09, 0x0b, 0xff},
	Panel:         color.RGBA{0x18, 0x18, 0x1b, 0xff},
	PanelBorder:   color.RGBA{0x27, 0x27, 0x2a, 0xff},
	Field:         color.RGBA{0x27, 0x27, 0x2a, 0xff},
	Button:        color.RGBA{0x3f, 0x3f, 0x46, 0xff},
	ButtonHover:   color.RGBA{0x52, 0x52, 0x5b, 0xff},
	Text:          color.RGBA{0xe5, 0xe7, 0xeb, 0xff},
	TextDim:       color.RGBA{0x9c, 0xa3, 0xaf, 0xff},
	Accent:        color.RGBA{0x3b, 0x82, 0xf6, 0xff},
	Danger:        color.RGBA{0xef, 0x44, 0x44, 0xff},
	MenuBg:        color.RGBA{0x27, 0x27, 0x2a, 0xff},
	MenuBorder:    color.RGBA{0x3f, 0x3f, 0x46, 0xff},
	MenuHighlight: color.RGBA{0x3f, 0x3f, 0x46, 0xff},
	ToastBg:       color.RGBA{0x0c, 0x0c, 0x0e, 0xee},
	Scrim:         color.RGBA{0x00, 0x00, 0x00, 0x66},
}

var lightTheme = Theme{
	Background:    color.RGBA{0xf4, 0xf4, 0xf5, 0xff},
	Panel:         color.RGBA{0xff, 0xff, 0xff, 0xff},
	PanelBorder:   color.RGBA{0xe5, 0xe7, 0xeb, 0xff},
	Field:         color.RGBA{0xf9, 0xfa, 0xfb, 0xff},
	Button:        color.RGBA{0xe5, 0xe7, 0xeb, 0xff},
	ButtonHover:   color.RGBA{0xd1, 0xd5, 0xdb, 0xff},
	Text:          color.RGBA{0x11, 0x18, 0x27, 0xff},
	TextDim:       color.RGBA{0x6b, 0x72, 0x80, 0xff},
	Accent:        color.RGBA{0x25, 0x63, 0xeb, 0xff},
	Danger:        color.RGBA{0xdc, 0x26, 0x26, 0xff},
	MenuBg:        color.RGBA{0xff, 0xff, 0xff, 0xff},
	MenuBorder:    color.RGBA{0xe5, 0xe7, 0xeb, 0xff},
	MenuHighlight: color.RGBA{0xf3, 0xf4, 0xf6, 0xff},
	ToastBg:       color.RGBA{0x11, 0x18, 0x27, 0xee},
	Scrim:         color.RGBA{0x00, 0x00, 0x00, 0x22},
}

func themeFor(t state.Theme) *Theme {
	if t.Dark() {
		return &darkTheme
	}
	return &lightTheme
}

// Layout constants
const (
	TopBarHeight  = 52
	ColumnPadding = 16
	LeftColumnW   = 320
	RowHeight     = 24
	ButtonHeight  = 28
	SliderHeight  = 14
	InnerPadding  = 6
	HUDHeight     = 22
	MenuItemH     = 28
	MenuWidth     = 160
	DragThreshold = 4
)
