package main

import (
	"image"
	"image/color"

	"github.com/example/swatchbook/internal/colormath"
	"github.com/example/swatchbook/internal/layout"
	"github.com/example/swatchbook/internal/palette"
	"github.com/example/swatchbook/internal/state"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

// Renderer handles all drawing operations for the application.
type Renderer struct{}

// NewRenderer creates a new Renderer instance.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Draw renders one frame.
func (r *Renderer) Draw(screen *ebiten.Image, g *Game) {
	snap := g.store.Snapshot()
	th := themeFor(snap.Theme)
	screen.Fill(th.Background)

	b := g.layout.Board
	boardScreen := screen.SubImage(image.Rect(b.X, b.Y, b.X+b.W, b.Y+b.H)).(*ebiten.Image)
	r.drawBoard(boardScreen, g, snap, th)
	r.drawTopBar(screen, g, th)
	r.drawLeftColumn(screen, g, snap, th)
	r.drawDragGhost(screen, g, th)
	g.contextMenu.Draw(screen, g.ui.face, th)
	g.ui.Draw(screen, th)
}

func (r *Renderer) drawTopBar(screen *ebiten.Image, g *Game, th *Theme) {
	l := g.layout
	fillRect(screen, l.TopBar, th.Panel)
	fillRect(screen, layout.Rect{X: 0, Y: l.TopBar.H - 1, W: l.W, H: 1}, th.PanelBorder)
	drawTextAt(screen, g.ui.title, "swatchbook", ColumnPadding, (TopBarHeight-18)/2, th.Text)

	mx, my := ebiten.CursorPosition()
	drawButton(screen, g.ui.face, l.NewPalette, "New Palette", l.NewPalette.Contains(mx, my), th)
	drawButton(screen, g.ui.face, l.ExportAll, "Export All", l.ExportAll.Contains(mx, my), th)
	label := "Light"
	if !g.store.Theme().Dark() {
		label = "Dark"
	}
	drawButton(screen, g.ui.face, l.ThemeToggle, label, l.ThemeToggle.Contains(mx, my), th)
}

func (r *Renderer) drawLeftColumn(screen *ebiten.Image, g *Game, snap state.Snapshot, th *Theme) {
	l := g.layout
	fillRect(screen, l.Left, th.Panel)
	strokeRect(screen, l.Left, 1, th.PanelBorder)

	cur := snap.CurrentColor
	if c, ok := colormath.Parse(cur); ok {
		fillRect(screen, l.Swatch, c)
	}
	strokeRect(screen, l.Swatch, 1, th.PanelBorder)

	mx, my := ebiten.CursorPosition()
	labels := [3]string{"HEX", "RGB", "HSL"}
	values := [3]string{cur, colormath.HexToRGB(cur), colormath.HexToHSL(cur)}
	for i, row := range l.Rows {
		fillRect(screen, row, th.Field)
		drawTextAt(screen, g.ui.face, labels[i], row.X+InnerPadding, row.Y+5, th.TextDim)
		vx := row.X + 48
		if i == 0 && g.input.editing == editHex {
			r.drawField(screen, g, layout.Rect{X: vx - 2, Y: row.Y, W: row.W - 46, H: row.H}, th)
		} else {
			drawTextAt(screen, g.ui.mono, values[i], vx, row.Y+5, th.Text)
		}
		drawButton(screen, g.ui.face, l.CopyChips[i], "Copy", l.CopyChips[i].Contains(mx, my), th)
	}

	rgb, _ := colormath.Parse(cur)
	channels := [3]uint8{rgb.R, rgb.G, rgb.B}
	tints := [3]color.RGBA{{0xef, 0x44, 0x44, 0xff}, {0x22, 0xc5, 0x5e, 0xff}, {0x3b, 0x82, 0xf6, 0xff}}
	for i, s := range l.Sliders {
		drawTextAt(screen, g.ui.face, labels[1][i:i+1], s.X-18, s.Y, th.TextDim)
		fillRect(screen, s, th.Field)
		filled := s
		filled.W = int(float64(s.W) * float64(channels[i]) / 255)
		fillRect(screen, filled, tints[i])
		knob := layout.Rect{X: s.X + filled.W - 3, Y: s.Y - 3, W: 6, H: s.H + 6}
		fillRect(screen, knob, th.Text)
	}

	name := "No palette"
	if p, ok := snap.ActivePalette(); ok {
		name = p.Name
	}
	drawButton(screen, g.ui.face, l.Selector, truncate(g.ui.face, "Palette: "+name, l.Selector.W-InnerPadding*2), l.Selector.Contains(mx, my), th)
	drawButton(screen, g.ui.face, l.SaveColor, "Save Color", l.SaveColor.Contains(mx, my), th)
	drawButton(screen, g.ui.face, l.OpenImage, "Open Image", l.OpenImage.Contains(mx, my), th)

	r.drawSampler(screen, g, th)
}

func (r *Renderer) drawSampler(screen *ebiten.Image, g *Game, th *Theme) {
	area := g.layout.Sampler
	if area.Empty() {
		return
	}
	fillRect(screen, area, th.Field)
	strokeRect(screen, area, 1, th.PanelBorder)

	sv := g.sampler
	img, disp := sv.Image(area)
	if img == nil {
		msg := "Open, drop or paste an image to pick colours"
		drawTextAt(screen, g.ui.face, truncate(g.ui.face, msg, area.W-InnerPadding*2), area.X+InnerPadding, area.Y+area.H/2-7, th.TextDim)
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(disp.X), float64(disp.Y))
	screen.DrawImage(img, op)

	zoom, hover, ok := sv.Magnifier()
	if !ok {
		return
	}
	// The magnifier follows the cursor, flipped to stay inside the area.
	zx := disp.X + int(hover.PointerX) + 16
	zy := disp.Y + int(hover.PointerY) + 16
	if zx+zoomPanelW > area.X+area.W {
		zx -= zoomPanelW + 32
	}
	if zy+zoomPanelH > area.Y+area.H {
		zy -= zoomPanelH + 32
	}
	panel := layout.Rect{X: zx, Y: zy, W: zoomPanelW, H: zoomPanelH}
	fillRect(screen, panel, th.Panel)
	strokeRect(screen, panel, 1, th.PanelBorder)
	op = &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(zx+4), float64(zy+4))
	screen.DrawImage(zoom, op)
	drawTextAt(screen, g.ui.mono, hover.Color, zx+6, zy+zoomPanelW-2, th.Text)
}

func (r *Renderer) drawBoard(screen *ebiten.Image, g *Game, snap state.Snapshot, th *Theme) {
	board := g.board
	board.Refresh(snap.Palettes, g.layout.Board)
	if len(snap.Palettes) == 0 {
		drawTextAt(screen, g.ui.face, "No palettes yet. Save a colour or press New Palette.", g.layout.Board.X, g.layout.Board.Y+8, th.TextDim)
		return
	}
	mx, my := ebiten.CursorPosition()
	target, hasTarget := board.DropTarget(g.layout.Board, mx, my)
	rename, renaming := g.store.Renaming()
	edit, editing := g.store.Editing()

	for i, p := range snap.Palettes {
		b := board.cards[i]
		if b.Card.Y > g.layout.Board.Y+g.layout.Board.H || b.Card.Y+b.Card.H < g.layout.Board.Y {
			continue
		}
		fillRect(screen, b.Card, th.Panel)
		border := th.PanelBorder
		if p.ID == snap.ActivePaletteID {
			border = th.Accent
		}
		strokeRect(screen, b.Card, 2, border)

		if renaming && rename.PaletteID == p.ID {
			r.drawField(screen, g, b.Name, th)
		} else {
			drawTextAt(screen, g.ui.title, truncate(g.ui.title, p.Name, b.Name.W), b.Name.X, b.Name.Y+2, th.Text)
		}
		drawButton(screen, g.ui.face, b.Export, "Export", b.Export.Contains(mx, my), th)
		drawButton(screen, g.ui.face, b.Delete, "x", b.Delete.Contains(mx, my), th)

		if len(p.Colors) == 0 {
			drawTextAt(screen, g.ui.face, "Drop colours here", b.Grid.X+InnerPadding, b.Grid.Y+b.Grid.H/2-7, th.TextDim)
		}
		for ci, c := range p.Colors {
			isEditing := editing && edit.PaletteID == p.ID && edit.Index == ci
			r.drawSwatch(screen, g, b.Swatch(ci), c, isEditing, board.IsDragged(p.ID, ci), th)
		}
		if hasTarget && target.PaletteID == p.ID {
			fillRect(screen, b.Gap(target.Index), th.Accent)
		}
	}
}

func (r *Renderer) drawSwatch(screen *ebiten.Image, g *Game, s layout.SwatchBounds, c palette.SavedColor, editing, dragged bool, th *Theme) {
	fill, ok := colormath.Parse(c.Color)
	if ok {
		fillRect(screen, s.Body, fill)
	}
	strokeRect(screen, s.Body, 1, th.PanelBorder)
	if dragged {
		fillRect(screen, s.Body, th.Scrim)
	}

	mx, my := ebiten.CursorPosition()
	if s.Body.Contains(mx, my) {
		ink := colormath.Contrast(c.Color)
		drawTextAt(screen, g.ui.face, "c", s.Copy.X+5, s.Copy.Y+2, ink)
		strokeRect(screen, s.Copy, 1, ink)
		drawTextAt(screen, g.ui.face, "x", s.Delete.X+5, s.Delete.Y+2, ink)
		strokeRect(screen, s.Delete, 1, ink)
	}

	drawTextAt(screen, g.ui.mono, c.Color, s.Hex.X+2, s.Hex.Y, th.Text)
	if editing {
		r.drawField(screen, g, s.Tag, th)
		return
	}
	drawTextAt(screen, g.ui.face, truncate(g.ui.face, c.Tag, s.Tag.W-4), s.Tag.X+2, s.Tag.Y, th.TextDim)
}

// drawDragGhost draws the dragged colour under the cursor.
func (r *Renderer) drawDragGhost(screen *ebiten.Image, g *Game, th *Theme) {
	item, ok := g.board.Dragging()
	if !ok {
		return
	}
	mx, my := ebiten.CursorPosition()
	ghost := layout.Rect{X: mx - layout.SwatchW/4, Y: my - layout.SwatchBodyH/4, W: layout.SwatchW / 2, H: layout.SwatchBodyH / 2}
	if c, ok := colormath.Parse(item.Color.Color); ok {
		fillRect(screen, ghost, c)
	}
	strokeRect(screen, ghost, 2, th.Accent)
}

// drawField draws the focused text field with its caret.
func (r *Renderer) drawField(screen *ebiten.Image, g *Game, rect layout.Rect, th *Theme) {
	f := &g.input.field
	fillRect(screen, rect, th.Field)
	strokeRect(screen, rect, 1, th.Accent)
	face := g.ui.face
	before := string(f.buf[:f.caret])
	drawTextAt(screen, face, f.String(), rect.X+4, rect.Y+3, th.Text)
	if f.caretVisible() {
		cx := rect.X + 4 + font.MeasureString(face, before).Round()
		fillRect(screen, layout.Rect{X: cx, Y: rect.Y + 3, W: 1, H: rect.H - 6}, th.Text)
	}
}

func drawButton(screen *ebiten.Image, face font.Face, r layout.Rect, label string, hover bool, th *Theme) {
	bg := th.Button
	if hover {
		bg = th.ButtonHover
	}
	fillRect(screen, r, bg)
	w := font.MeasureString(face, label).Round()
	h := face.Metrics().Height.Round()
	drawTextAt(screen, face, label, r.X+(r.W-w)/2, r.Y+(r.H-h)/2, th.Text)
}

func fillRect(screen *ebiten.Image, r layout.Rect, c color.Color) {
	ebitenutil.DrawRect(screen, float64(r.X), float64(r.Y), float64(r.W), float64(r.H), c)
}

func strokeRect(screen *ebiten.Image, r layout.Rect, w int, c color.Color) {
	x, y, fw, fh, bw := float64(r.X), float64(r.Y), float64(r.W), float64(r.H), float64(w)
	ebitenutil.DrawRect(screen, x, y, fw, bw, c)
	ebitenutil.DrawRect(screen, x, y+fh-bw, fw, bw, c)
	ebitenutil.DrawRect(screen, x, y, bw, fh, c)
	ebitenutil.DrawRect(screen, x+fw-bw, y, bw, fh, c)
}

// truncate shortens s with an ellipsis so it fits maxW.
func truncate(face font.Face, s string, maxW int) string {
	if font.MeasureString(face, s).Round() <= maxW {
		return s
	}
	runes := []rune(s)
	for n := len(runes) - 1; n > 0; n-- {
		cand := string(runes[:n]) + "…"
		if font.MeasureString(face, cand).Round() <= maxW {
			return cand
		}
	}
	return ""
}

// drawTextAt draws text using the provided face. If face is nil, falls back to ebitenutil.DebugPrintAt.
func drawTextAt(screen *ebiten.Image, face font.Face, s string, x, y int, col color.Color) {
	if face == nil {
		ebitenutil.DebugPrintAt(screen, s, x, y)
		return
	}
	// text.Draw expects y to be baseline; DebugPrintAt uses top-left.
	ascent := face.Metrics().Ascent.Round()
	text.Draw(screen, s, face, x, y+ascent, col)
}
