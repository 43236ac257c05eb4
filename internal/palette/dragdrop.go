package palette

// DragItem is captured when a colour drag starts. It travels opaquely through
// the drag gesture and is resolved by position when dropped.
type DragItem struct {
	PaletteID string
	Index     int
	Color     SavedColor
}

// DropZone is a place a dragged colour can land.
type DropZone struct {
	PaletteID string
	// Index is the insert position in the palette.
	Index int
	// Anywhere is set for the single zone of an empty palette.
	Anywhere bool
}

// DropZones lists the drop targets exposed by a palette: one "drop anywhere"
// zone when empty, otherwise one before each colour plus a trailing one.
func DropZones(p Palette) []DropZone {
	if len(p.Colors) == 0 {
		return []DropZone{{PaletteID: p.ID, Index: 0, Anywhere: true}}
	}
	zones := make([]DropZone, 0, len(p.Colors)+1)
	for i := 0; i <= len(p.Colors); i++ {
		zones = append(zones, DropZone{PaletteID: p.ID, Index: i})
	}
	return zones
}

// InsertIndex is the MoveColor destination index for dropping item on z.
// Within the source palette the dragged entry is removed before the insert,
// so gaps after it shift down by one. Both gaps around the entry resolve to
// its current index.
func (z DropZone) InsertIndex(item DragItem) int {
	if z.PaletteID == item.PaletteID && z.Index > item.Index {
		return z.Index - 1
	}
	return z.Index
}

// Drop applies a drag that ended on zone.
func (b *Book) Drop(item DragItem, zone DropZone) error {
	return b.MoveColor(item.PaletteID, item.Index, zone.PaletteID, zone.InsertIndex(item))
}
