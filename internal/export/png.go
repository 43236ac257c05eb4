package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"
	"sync"

	"github.com/example/swatchbook/internal/colormath"
	"github.com/example/swatchbook/internal/palette"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Contact sheet geometry, in output pixels.
const (
	sheetScale   = 3
	sheetPadding = 20 * sheetScale
	swatchSize   = 80 * sheetScale
	sheetColumns = 5
	titleHeight  = 30 * sheetScale
	textBand     = 80 * sheetScale
	labelWidth   = swatchSize - 10*sheetScale
	cornerRadius = 12 * sheetScale
	strokeWidth  = 2 * sheetScale

	titleSize  = 16 * sheetScale
	hexSize    = 11 * sheetScale
	tagSize    = 10 * sheetScale
	hexOffset  = 20 * sheetScale
	tagOffset  = 35 * sheetScale
	tagLeading = 12 * sheetScale
)

type sheetColors struct {
	background, text, border color.Color
}

var (
	darkSheet = sheetColors{
		background: color.RGBA{0x18, 0x18, 0x1b, 0xff},
		text:       color.RGBA{0xe5, 0xe7, 0xeb, 0xff},
		border:     color.RGBA{0x27, 0x27, 0x2a, 0xff},
	}
	lightSheet = sheetColors{
		background: color.RGBA{0xff, 0xff, 0xff, 0xff},
		text:       color.RGBA{0x11, 0x18, 0x27, 0xff},
		border:     color.RGBA{0xe5, 0xe7, 0xeb, 0xff},
	}
)

var (
	fontsOnce sync.Once
	fontsErr  error
	fontBold  *opentype.Font
	fontMono  *opentype.Font
	fontPlain *opentype.Font
)

func loadFonts() error {
	fontsOnce.Do(func() {
		if fontBold, fontsErr = opentype.Parse(gobold.TTF); fontsErr != nil {
			return
		}
		if fontMono, fontsErr = opentype.Parse(gomono.TTF); fontsErr != nil {
			return
		}
		fontPlain, fontsErr = opentype.Parse(goregular.TTF)
	})
	return fontsErr
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

func rows(n int) int {
	return (n + sheetColumns - 1) / sheetColumns
}

// SheetSize returns the dimensions of the contact sheet for palettes.
func SheetSize(palettes []palette.Palette, scope Scope) (int, int) {
	w := sheetPadding*2 + (swatchSize+sheetPadding)*sheetColumns
	if scope == ScopePalette {
		return w, sheetPadding + titleHeight + (swatchSize+sheetPadding+textBand)*rows(len(palettes[0].Colors)) + sheetPadding
	}
	h := sheetPadding
	for _, p := range palettes {
		h += titleHeight + (swatchSize+sheetPadding+textBand)*rows(len(p.Colors)) + sheetPadding*2
	}
	return w, h
}

type sheet struct {
	dst               *image.RGBA
	colors            sheetColors
	title, hex, label font.Face
}

func renderPNG(palettes []palette.Palette, scope Scope, dark bool) ([]byte, error) {
	if err := loadFonts(); err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}
	s := &sheet{colors: lightSheet}
	if dark {
		s.colors = darkSheet
	}
	var err error
	if s.title, err = newFace(fontBold, titleSize); err != nil {
		return nil, err
	}
	defer s.title.Close()
	if s.hex, err = newFace(fontMono, hexSize); err != nil {
		return nil, err
	}
	defer s.hex.Close()
	if s.label, err = newFace(fontPlain, tagSize); err != nil {
		return nil, err
	}
	defer s.label.Close()

	w, h := SheetSize(palettes, scope)
	s.dst = image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(s.dst, s.dst.Bounds(), image.NewUniform(s.colors.background), image.Point{}, draw.Src)

	y := sheetPadding
	for _, p := range palettes {
		y = s.drawPalette(p, y)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, s.dst); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// drawPalette draws one section starting at y and returns the y of the next.
func (s *sheet) drawPalette(p palette.Palette, y int) int {
	s.text(s.title, p.Name, sheetPadding, y+titleSize, false)
	y += titleHeight

	for i, c := range p.Colors {
		row, col := i/sheetColumns, i%sheetColumns
		x := sheetPadding + (swatchSize+sheetPadding)*col
		sy := y + (swatchSize+sheetPadding+textBand)*row
		s.swatch(x, sy, c.Color)

		cx := x + swatchSize/2
		s.text(s.hex, c.Color, cx, sy+swatchSize+hexOffset, true)
		for li, line := range wrap(s.label, c.Tag, labelWidth) {
			s.text(s.label, line, cx, sy+swatchSize+tagOffset+li*tagLeading, true)
		}
	}
	return y + (swatchSize+sheetPadding+textBand)*rows(len(p.Colors)) + sheetPadding*2
}

// swatch fills a rounded square with the colour and a border stroke centred
// on its edge.
func (s *sheet) swatch(x, y int, hex string) {
	fill, ok := colormath.Parse(hex)
	if !ok {
		fill = color.RGBA{}
	}
	half := strokeWidth / 2
	roundedRect(s.dst, x-half, y-half, swatchSize+strokeWidth, cornerRadius+half, s.colors.border)
	roundedRect(s.dst, x+half, y+half, swatchSize-strokeWidth, cornerRadius-half, fill)
}

// roundedRect fills a size×size square at (x, y) with quadratic corners.
func roundedRect(dst draw.Image, x, y, size, radius int, c color.Color) {
	w, r := float32(size), float32(radius)
	z := vector.NewRasterizer(size, size)
	z.MoveTo(r, 0)
	z.LineTo(w-r, 0)
	z.QuadTo(w, 0, w, r)
	z.LineTo(w, w-r)
	z.QuadTo(w, w, w-r, w)
	z.LineTo(r, w)
	z.QuadTo(0, w, 0, w-r)
	z.LineTo(0, r)
	z.QuadTo(0, 0, r, 0)
	z.ClosePath()
	z.Draw(dst, image.Rect(x, y, x+size, y+size), image.NewUniform(c), image.Point{})
}

// text draws s with its baseline at y, either starting at x or centred on it.
func (s *sheet) text(face font.Face, str string, x, y int, center bool) {
	d := &font.Drawer{Dst: s.dst, Src: image.NewUniform(s.colors.text), Face: face}
	if center {
		x -= d.MeasureString(str).Round() / 2
	}
	d.Dot = fixed.P(x, y)
	d.DrawString(str)
}

// wrap breaks text on spaces so each line stays narrower than maxWidth. A
// single word longer than maxWidth keeps its own line.
func wrap(face font.Face, text string, maxWidth int) []string {
	words := strings.Split(text, " ")
	limit := fixed.I(maxWidth)
	lines := make([]string, 0, 1)
	current := words[0]
	for _, word := range words[1:] {
		if font.MeasureString(face, current+" "+word) < limit {
			current += " " + word
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}
