// Package layout computes the on-screen geometry of the palette board and
// resolves pointer positions to swatches, buttons and drop zones.
package layout

import "github.com/samber/lo"

// Card and swatch metrics.
const (
	CardPaddingX     = 12
	CardPaddingY     = 10
	CardHeaderHeight = 36
	CardGap          = 16
	CardButtonW      = 64
	CardButtonH      = 24

	SwatchW      = 96
	SwatchBodyH  = 72
	SwatchLabelH = 40
	SwatchGapX   = 12
	SwatchGapY   = 12
	ChipSize     = 18
	GapIndicator = 4
)

// Rect is an axis-aligned screen rectangle.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Part identifies the element of a swatch under the pointer.
type Part int

const (
	PartNone Part = iota
	PartBody
	PartCopy
	PartDelete
	PartTag
)

// HeaderPart identifies the element of a card header under the pointer.
type HeaderPart int

const (
	HeaderNone HeaderPart = iota
	HeaderName
	HeaderExport
	HeaderDelete
)

// CardBounds is the geometry of one palette card.
type CardBounds struct {
	Card    Rect
	Header  Rect
	Name    Rect
	Export  Rect
	Delete  Rect
	Grid    Rect
	Columns int
	Rows    int
	Count   int
}

// SwatchBounds is the geometry of one colour entry inside a card.
type SwatchBounds struct {
	Cell   Rect
	Body   Rect
	Copy   Rect
	Delete Rect
	Hex    Rect
	Tag    Rect
}

func cellW() int { return SwatchW + SwatchGapX }
func cellH() int { return SwatchBodyH + SwatchLabelH + SwatchGapY }

// Columns returns how many swatches fit across a card of width w.
func Columns(w int) int {
	inner := w - CardPaddingX*2 + SwatchGapX
	return max(1, inner/cellW())
}

// Card lays out a card at (x, y) of width w holding n colours. An empty
// card keeps one row so it still offers a drop target.
func Card(x, y, w, n int) CardBounds {
	cols := Columns(w)
	rows := max(1, (n+cols-1)/cols)
	gridH := rows*cellH() - SwatchGapY
	b := CardBounds{
		Card:    Rect{x, y, w, CardHeaderHeight + gridH + CardPaddingY*2},
		Header:  Rect{x, y, w, CardHeaderHeight},
		Grid:    Rect{x + CardPaddingX, y + CardHeaderHeight + CardPaddingY, w - CardPaddingX*2, gridH},
		Columns: cols,
		Rows:    rows,
		Count:   n,
	}
	by := y + (CardHeaderHeight-CardButtonH)/2 + CardPaddingY/2
	b.Delete = Rect{x + w - CardPaddingX - CardButtonH, by, CardButtonH, CardButtonH}
	b.Export = Rect{b.Delete.X - 8 - CardButtonW, by, CardButtonW, CardButtonH}
	b.Name = Rect{x + CardPaddingX, by, b.Export.X - 8 - (x + CardPaddingX), CardButtonH}
	return b
}

// Swatch returns the geometry of entry i.
func (b CardBounds) Swatch(i int) SwatchBounds {
	row, col := i/b.Columns, i%b.Columns
	cx := b.Grid.X + col*cellW()
	cy := b.Grid.Y + row*cellH()
	body := Rect{cx, cy, SwatchW, SwatchBodyH}
	return SwatchBounds{
		Cell:   Rect{cx, cy, SwatchW, SwatchBodyH + SwatchLabelH},
		Body:   body,
		Copy:   Rect{cx + 4, cy + 4, ChipSize, ChipSize},
		Delete: Rect{cx + SwatchW - 4 - ChipSize, cy + 4, ChipSize, ChipSize},
		Hex:    Rect{cx, cy + SwatchBodyH + 2, SwatchW, SwatchLabelH / 2},
		Tag:    Rect{cx, cy + SwatchBodyH + SwatchLabelH/2, SwatchW, SwatchLabelH / 2},
	}
}

// Gap returns the drop indicator for insert index i. For an empty card it is
// the whole grid.
func (b CardBounds) Gap(i int) Rect {
	if b.Count == 0 {
		return b.Grid
	}
	i = lo.Clamp(i, 0, b.Count)
	if i == b.Count {
		last := b.Swatch(b.Count - 1).Cell
		return Rect{last.X + last.W + (SwatchGapX-GapIndicator)/2, last.Y, GapIndicator, last.H}
	}
	cell := b.Swatch(i).Cell
	return Rect{cell.X - (SwatchGapX+GapIndicator)/2, cell.Y, GapIndicator, cell.H}
}

// ZoneAt resolves a drop point inside the card to an insert index. An empty
// card maps everywhere to 0. Otherwise the point picks the nearer gap of the
// swatch under it, and points past the last swatch pick the trailing gap.
func (b CardBounds) ZoneAt(x, y int) (int, bool) {
	if !b.Card.Contains(x, y) {
		return 0, false
	}
	if b.Count == 0 {
		return 0, true
	}
	row := lo.Clamp((y-b.Grid.Y)/cellH(), 0, b.Rows-1)
	dx := x - b.Grid.X
	col := lo.Clamp(dx/cellW(), 0, b.Columns-1)
	index := row*b.Columns + col
	if dx-col*cellW() >= SwatchW/2 {
		index++
	}
	return lo.Clamp(index, 0, b.Count), true
}

// HitSwatch returns the entry and part under (x, y).
func (b CardBounds) HitSwatch(x, y int) (int, Part) {
	for i := 0; i < b.Count; i++ {
		s := b.Swatch(i)
		if !s.Cell.Contains(x, y) {
			continue
		}
		switch {
		case s.Copy.Contains(x, y):
			return i, PartCopy
		case s.Delete.Contains(x, y):
			return i, PartDelete
		case s.Body.Contains(x, y):
			return i, PartBody
		case s.Tag.Contains(x, y):
			return i, PartTag
		default:
			return i, PartBody
		}
	}
	return -1, PartNone
}

// HitHeader returns the header element under (x, y).
func (b CardBounds) HitHeader(x, y int) HeaderPart {
	switch {
	case b.Delete.Contains(x, y):
		return HeaderDelete
	case b.Export.Contains(x, y):
		return HeaderExport
	case b.Name.Contains(x, y):
		return HeaderName
	}
	return HeaderNone
}

// Board stacks cards for palettes holding counts[i] colours, starting at
// (x, y-scroll).
func Board(x, y, w, scroll int, counts []int) []CardBounds {
	cards := make([]CardBounds, 0, len(counts))
	cy := y - scroll
	for _, n := range counts {
		c := Card(x, cy, w, n)
		cards = append(cards, c)
		cy += c.Card.H + CardGap
	}
	return cards
}

// ContentHeight is the total height of the stacked cards.
func ContentHeight(w int, counts []int) int {
	h := 0
	for i, n := range counts {
		if i > 0 {
			h += CardGap
		}
		h += Card(0, 0, w, n).Card.H
	}
	return h
}

// ClampScroll keeps a scroll offset inside the scrollable range.
func ClampScroll(scroll, contentH, viewH int) int {
	return lo.Clamp(scroll, 0, max(0, contentH-viewH))
}

// CardAt returns the index of the card containing (x, y).
func CardAt(cards []CardBounds, x, y int) (int, bool) {
	for i, c := range cards {
		if c.Card.Contains(x, y) {
			return i, true
		}
	}
	return -1, false
}
