package main

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/example/swatchbook/internal/layout"
	"github.com/hajimehoshi/ebiten/v2"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

const toastLifetime = 2 * time.Second

type toast struct {
	msg     string
	expires time.Time
}

// UI owns fonts, transient notifications and the screen geometry.
type UI struct {
	face  font.Face
	mono  font.Face
	title font.Face

	toasts []toast
	now    func() time.Time
}

func NewUI() *UI {
	return &UI{
		face:  loadFace(goregular.TTF, 14),
		mono:  loadFace(gomono.TTF, 14),
		title: loadFace(gobold.TTF, 18),
		now:   time.Now,
	}
}

// loadFace parses an embedded TTF, falling back to the basic bitmap font.
func loadFace(ttf []byte, size float64) font.Face {
	tt, err := opentype.Parse(ttf)
	if err != nil {
		log.WithError(err).Warn("could not parse ttf, falling back to basic font")
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.WithError(err).Warn("could not create font face, falling back to basic font")
		return basicfont.Face7x13
	}
	return face
}

// addClickLog shows a short-lived notification.
func (ui *UI) addClickLog(msg string) {
	ui.toasts = append(ui.toasts, toast{msg: msg, expires: ui.now().Add(toastLifetime)})
	if len(ui.toasts) > 4 {
		ui.toasts = ui.toasts[len(ui.toasts)-4:]
	}
}

// Update drops expired notifications.
func (ui *UI) Update() {
	now := ui.now()
	live := ui.toasts[:0]
	for _, t := range ui.toasts {
		if now.Before(t.expires) {
			live = append(live, t)
		}
	}
	ui.toasts = live
}

// copyToClipboard writes s and confirms with a toast.
func (ui *UI) copyToClipboard(label, s string) {
	if err := clipboard.WriteAll(s); err != nil {
		log.WithError(err).Warn("clipboard write failed")
		ui.addClickLog("Could not copy to clipboard")
		return
	}
	ui.addClickLog("Copied " + label + " " + s)
}

// Draw renders the HUD line and notifications.
func (ui *UI) Draw(screen *ebiten.Image, th *Theme) {
	h := screen.Bounds().Dy()
	drawTextAt(screen, ui.face, "Ctrl+S save colour - Ctrl+V paste image - Ctrl+N new palette - Right-click a card to export - Wheel to scroll", ColumnPadding, h-HUDHeight+4, th.TextDim)

	y := h - HUDHeight - 8
	for i := len(ui.toasts) - 1; i >= 0; i-- {
		msg := ui.toasts[i].msg
		w := font.MeasureString(ui.face, msg).Round() + InnerPadding*4
		x := (screen.Bounds().Dx() - w) / 2
		y -= RowHeight + 4
		fillRect(screen, layout.Rect{X: x, Y: y, W: w, H: RowHeight}, th.ToastBg)
		drawTextAt(screen, ui.face, msg, x+InnerPadding*2, y+4, darkTheme.Text)
	}
}

// screenLayout is the fixed geometry of the window for one frame.
type screenLayout struct {
	W, H int

	TopBar      layout.Rect
	NewPalette  layout.Rect
	ExportAll   layout.Rect
	ThemeToggle layout.Rect

	Left      layout.Rect
	Swatch    layout.Rect
	Rows      [3]layout.Rect // HEX, RGB, HSL
	CopyChips [3]layout.Rect
	Sliders   [3]layout.Rect // R, G, B
	Selector  layout.Rect
	SaveColor layout.Rect
	OpenImage layout.Rect
	Sampler   layout.Rect

	Board layout.Rect
}

func computeLayout(w, h int) screenLayout {
	l := screenLayout{W: w, H: h}
	l.TopBar = layout.Rect{X: 0, Y: 0, W: w, H: TopBarHeight}
	by := (TopBarHeight - ButtonHeight) / 2
	l.ThemeToggle = layout.Rect{X: w - ColumnPadding - 72, Y: by, W: 72, H: ButtonHeight}
	l.ExportAll = layout.Rect{X: l.ThemeToggle.X - 8 - 104, Y: by, W: 104, H: ButtonHeight}
	l.NewPalette = layout.Rect{X: l.ExportAll.X - 8 - 112, Y: by, W: 112, H: ButtonHeight}

	x := ColumnPadding
	y := TopBarHeight + ColumnPadding
	bottom := h - HUDHeight - ColumnPadding
	l.Left = layout.Rect{X: x - 8, Y: y - 8, W: LeftColumnW + 16, H: bottom - y + 16}
	l.Swatch = layout.Rect{X: x, Y: y, W: LeftColumnW, H: 96}
	y += l.Swatch.H + 8
	for i := range l.Rows {
		l.Rows[i] = layout.Rect{X: x, Y: y, W: LeftColumnW - 56, H: RowHeight}
		l.CopyChips[i] = layout.Rect{X: x + LeftColumnW - 48, Y: y, W: 48, H: RowHeight}
		y += RowHeight + 4
	}
	y += 6
	for i := range l.Sliders {
		l.Sliders[i] = layout.Rect{X: x + 20, Y: y, W: LeftColumnW - 20, H: SliderHeight}
		y += SliderHeight + 10
	}
	y += 4
	l.Selector = layout.Rect{X: x, Y: y, W: LeftColumnW - 120, H: ButtonHeight}
	l.SaveColor = layout.Rect{X: x + LeftColumnW - 112, Y: y, W: 112, H: ButtonHeight}
	y += ButtonHeight + 12
	l.OpenImage = layout.Rect{X: x, Y: y, W: 112, H: ButtonHeight}
	y += ButtonHeight + 8
	l.Sampler = layout.Rect{X: x, Y: y, W: LeftColumnW, H: max(0, bottom-y)}

	bx := x + LeftColumnW + ColumnPadding*2
	l.Board = layout.Rect{X: bx, Y: TopBarHeight + ColumnPadding, W: max(0, w-bx-ColumnPadding), H: max(0, bottom-TopBarHeight-ColumnPadding)}
	return l
}
