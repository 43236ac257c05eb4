package palette

import (
	"strings"

	swerr "github.com/example/swatchbook/internal/errors"
	"github.com/example/swatchbook/internal/id"
	"github.com/samber/lo"
)

// EditSession is the single colour whose tag is being edited.
type EditSession struct {
	PaletteID string
	Index     int
	Draft     string
}

// RenameSession is the single palette whose name is being edited.
type RenameSession struct {
	PaletteID string
	Draft     string
}

// Book is the ordered palette list with its active palette and edit modes.
// It is not safe for concurrent use; the state store serialises access.
type Book struct {
	palettes []Palette
	activeID string
	editing  *EditSession
	renaming *RenameSession

	newID func() string
}

// NewBook returns an empty book.
func NewBook() *Book {
	return &Book{newID: id.Generate}
}

// Load replaces the contents of the book. An activeID that does not name a
// palette falls back to the first palette, or empty.
func (b *Book) Load(palettes []Palette, activeID string) {
	b.palettes = CloneAll(palettes)
	b.editing = nil
	b.renaming = nil
	if b.index(activeID) >= 0 {
		b.activeID = activeID
	} else {
		b.activeID = b.firstID()
	}
}

// Palettes returns a deep copy of the palette list in display order.
func (b *Book) Palettes() []Palette {
	return CloneAll(b.palettes)
}

// Len returns the number of palettes.
func (b *Book) Len() int {
	return len(b.palettes)
}

// Palette returns a copy of the palette with the given id.
func (b *Book) Palette(id string) (Palette, bool) {
	i := b.index(id)
	if i < 0 {
		return Palette{}, false
	}
	return b.palettes[i].Clone(), true
}

// ActiveID returns the id targeted by SaveColor, empty when there are no palettes.
func (b *Book) ActiveID() string {
	return b.activeID
}

// SetActive makes id the active palette.
func (b *Book) SetActive(id string) error {
	if b.index(id) < 0 {
		return swerr.PaletteNotFound(id)
	}
	b.activeID = id
	return nil
}

func (b *Book) index(id string) int {
	if id == "" {
		return -1
	}
	_, i, ok := lo.FindIndexOf(b.palettes, func(p Palette) bool {
		return p.ID == id
	})
	if !ok {
		return -1
	}
	return i
}

func (b *Book) firstID() string {
	if len(b.palettes) == 0 {
		return ""
	}
	return b.palettes[0].ID
}

// uniqueID draws ids until one is unused in the list.
func (b *Book) uniqueID() string {
	for {
		next := b.newID()
		if b.index(next) < 0 {
			return next
		}
	}
}

// CreatePalette appends an empty palette named "Palette {count+1}" and makes
// it active.
func (b *Book) CreatePalette() Palette {
	p := Palette{
		ID:     b.uniqueID(),
		Name:   DefaultName(len(b.palettes) + 1),
		Colors: []SavedColor{},
	}
	b.palettes = append(b.palettes, p)
	b.activeID = p.ID
	return p.Clone()
}

// DeletePalette removes a palette and every colour in it. Deleting the
// active palette activates the first remaining one.
func (b *Book) DeletePalette(id string) error {
	i := b.index(id)
	if i < 0 {
		return swerr.PaletteNotFound(id)
	}
	b.palettes = append(b.palettes[:i:i], b.palettes[i+1:]...)
	if b.activeID == id {
		b.activeID = b.firstID()
	}
	if b.editing != nil && b.editing.PaletteID == id {
		b.editing = nil
	}
	if b.renaming != nil && b.renaming.PaletteID == id {
		b.renaming = nil
	}
	return nil
}

// RenamePalette stores the trimmed name and leaves rename mode. A name that
// trims to empty is ignored and reported as false.
func (b *Book) RenamePalette(id, name string) (bool, error) {
	i := b.index(id)
	if i < 0 {
		return false, swerr.PaletteNotFound(id)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return false, nil
	}
	b.palettes[i].Name = name
	b.renaming = nil
	return true, nil
}

// SaveColor stores hex in the active palette with the next default tag. With
// no palettes it creates "Palette 1" holding the colour. It reports false
// when the active palette already holds hex.
func (b *Book) SaveColor(hex string) bool {
	if len(b.palettes) == 0 {
		p := Palette{
			ID:     b.uniqueID(),
			Name:   DefaultName(1),
			Colors: []SavedColor{{Color: hex, Tag: DefaultTag(1)}},
		}
		b.palettes = []Palette{p}
		b.activeID = p.ID
		return true
	}
	i := b.index(b.activeID)
	if i < 0 {
		return false
	}
	return b.appendColor(i, hex)
}

// AddColorToPalette appends a copy of c to the palette with a fresh default
// tag, unless the palette already holds its hex.
func (b *Book) AddColorToPalette(id string, c SavedColor) (bool, error) {
	i := b.index(id)
	if i < 0 {
		return false, swerr.PaletteNotFound(id)
	}
	return b.appendColor(i, c.Color), nil
}

func (b *Book) appendColor(i int, hex string) bool {
	p := &b.palettes[i]
	if p.HasColor(hex) {
		return false
	}
	p.Colors = append(p.Colors, SavedColor{Color: hex, Tag: DefaultTag(len(p.Colors) + 1)})
	return true
}

// DeleteColor removes the entry at index; later entries shift down.
func (b *Book) DeleteColor(id string, index int) error {
	i := b.index(id)
	if i < 0 {
		return swerr.PaletteNotFound(id)
	}
	p := &b.palettes[i]
	if index < 0 || index >= len(p.Colors) {
		return swerr.ColorNotFound(id, index)
	}
	p.Colors = removeAt(p.Colors, index)
	b.dropEditingIn(id)
	return nil
}

// MoveColor moves the colour at (srcID, srcIndex) to dstIndex of dstID.
//
// Within one palette this is a plain list reorder: the entry is removed first,
// so callers moving forward must account for the index shift. Across
// palettes the destination receives a copy tagged "Color {n+1}" where n is
// the destination length before the insert, unless it already holds the hex,
// in which case nothing changes and a validation error is returned. dstIndex
// is clamped to the destination bounds. Both palettes are updated together or
// not at all.
func (b *Book) MoveColor(srcID string, srcIndex int, dstID string, dstIndex int) error {
	si := b.index(srcID)
	if si < 0 {
		return swerr.PaletteNotFound(srcID)
	}
	di := b.index(dstID)
	if di < 0 {
		return swerr.PaletteNotFound(dstID)
	}
	src := b.palettes[si].Colors
	if srcIndex < 0 || srcIndex >= len(src) {
		return swerr.ColorNotFound(srcID, srcIndex)
	}

	moved := src[srcIndex]
	remaining := removeAt(src, srcIndex)

	if si == di {
		b.palettes[si].Colors = insertAt(remaining, dstIndex, moved)
	} else {
		if b.palettes[di].HasColor(moved.Color) {
			return swerr.DuplicateColor(dstID, moved.Color)
		}
		dst := b.palettes[di].Colors
		moved.Tag = DefaultTag(len(dst) + 1)
		inserted := insertAt(dst, dstIndex, moved)
		b.palettes[si].Colors = remaining
		b.palettes[di].Colors = inserted
	}
	b.dropEditingIn(srcID)
	b.dropEditingIn(dstID)
	return nil
}

func (b *Book) dropEditingIn(id string) {
	if b.editing != nil && b.editing.PaletteID == id {
		b.editing = nil
	}
}
