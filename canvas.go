package main

import (
	"github.com/example/swatchbook/internal/layout"
	"github.com/example/swatchbook/internal/palette"
	"github.com/samber/lo"
)

// scrollStep is the board scroll distance per wheel notch.
const scrollStep = 40

// press tracks a left-button press on a swatch until it becomes a drag or a
// click.
type press struct {
	item           palette.DragItem
	startX, startY int
	dragging       bool
}

// Canvas is the scrollable board of palette cards and the drag gesture
// running over it.
type Canvas struct {
	scroll int
	cards  []layout.CardBounds
	ids    []string
	press  *press
}

func NewCanvas() *Canvas {
	return &Canvas{}
}

// Refresh recomputes card geometry for palettes laid out in area.
func (c *Canvas) Refresh(palettes []palette.Palette, area layout.Rect) {
	counts := lo.Map(palettes, func(p palette.Palette, _ int) int { return len(p.Colors) })
	c.ids = lo.Map(palettes, func(p palette.Palette, _ int) string { return p.ID })
	c.scroll = layout.ClampScroll(c.scroll, layout.ContentHeight(area.W, counts), area.H)
	c.cards = layout.Board(area.X, area.Y, area.W, c.scroll, counts)
}

// ScrollBy moves the board by notches of the mouse wheel.
func (c *Canvas) ScrollBy(notches float64) {
	c.scroll -= int(notches * scrollStep)
	if c.scroll < 0 {
		c.scroll = 0
	}
}

// CardAt returns the palette under (x, y), if it is inside the visible area.
func (c *Canvas) CardAt(area layout.Rect, x, y int) (int, string, bool) {
	if !area.Contains(x, y) {
		return -1, "", false
	}
	i, ok := layout.CardAt(c.cards, x, y)
	if !ok {
		return -1, "", false
	}
	return i, c.ids[i], true
}

// Press starts tracking a possible drag of item.
func (c *Canvas) Press(item palette.DragItem, x, y int) {
	c.press = &press{item: item, startX: x, startY: y}
}

// Drag updates the gesture with the cursor position.
func (c *Canvas) Drag(x, y int) {
	if c.press == nil || c.press.dragging {
		return
	}
	if abs(x-c.press.startX) >= DragThreshold || abs(y-c.press.startY) >= DragThreshold {
		c.press.dragging = true
	}
}

// Release ends the gesture. dragged is false when the press never moved far
// enough and should be treated as a click.
func (c *Canvas) Release() (item palette.DragItem, dragged, ok bool) {
	if c.press == nil {
		return palette.DragItem{}, false, false
	}
	p := c.press
	c.press = nil
	return p.item, p.dragging, true
}

// Cancel abandons the gesture.
func (c *Canvas) Cancel() {
	c.press = nil
}

// Dragging returns the item being dragged.
func (c *Canvas) Dragging() (palette.DragItem, bool) {
	if c.press == nil || !c.press.dragging {
		return palette.DragItem{}, false
	}
	return c.press.item, true
}

// IsDragged reports whether entry index of paletteID is being dragged.
func (c *Canvas) IsDragged(paletteID string, index int) bool {
	item, ok := c.Dragging()
	return ok && item.PaletteID == paletteID && item.Index == index
}

// DropTarget resolves the zone under the cursor during a drag. The index is
// the gap position on screen, before any shift caused by removing the item.
func (c *Canvas) DropTarget(area layout.Rect, x, y int) (palette.DropZone, bool) {
	if _, ok := c.Dragging(); !ok {
		return palette.DropZone{}, false
	}
	i, id, ok := c.CardAt(area, x, y)
	if !ok {
		return palette.DropZone{}, false
	}
	idx, ok := c.cards[i].ZoneAt(x, y)
	if !ok {
		return palette.DropZone{}, false
	}
	return palette.DropZone{PaletteID: id, Index: idx, Anywhere: c.cards[i].Count == 0}, true
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
