// Package palette holds the palette/colour data model and the drag-and-drop
// reordering rules applied to it.
package palette

import (
	"fmt"

	"github.com/samber/lo"
)

// SavedColor is one tagged entry of a palette.
type SavedColor struct {
	Color string `json:"color" yaml:"color"`
	Tag   string `json:"tag" yaml:"tag"`
}

// Palette is a named, ordered collection of colours. It owns its colours:
// nothing is shared by reference between palettes.
type Palette struct {
	ID     string       `json:"id" yaml:"id"`
	Name   string       `json:"name" yaml:"name"`
	Colors []SavedColor `json:"colors" yaml:"colors"`
}

// DefaultName returns the name given to the n-th palette (1-based).
func DefaultName(n int) string {
	return fmt.Sprintf("Palette %d", n)
}

// DefaultTag returns the tag given to the n-th colour of a palette (1-based).
func DefaultTag(n int) string {
	return fmt.Sprintf("Color %d", n)
}

// HasColor reports whether the palette already holds hex.
func (p *Palette) HasColor(hex string) bool {
	return lo.ContainsBy(p.Colors, func(c SavedColor) bool {
		return c.Color == hex
	})
}

// Clone returns a deep copy of the palette.
func (p Palette) Clone() Palette {
	out := p
	out.Colors = append([]SavedColor(nil), p.Colors...)
	if out.Colors == nil {
		out.Colors = []SavedColor{}
	}
	return out
}

// CloneAll deep-copies a palette list.
func CloneAll(ps []Palette) []Palette {
	return lo.Map(ps, func(p Palette, _ int) Palette {
		return p.Clone()
	})
}

// insertAt returns a new slice with c inserted at position, clamped to
// [0, len(colors)].
func insertAt(colors []SavedColor, position int, c SavedColor) []SavedColor {
	position = lo.Clamp(position, 0, len(colors))
	out := make([]SavedColor, 0, len(colors)+1)
	out = append(out, colors[:position]...)
	out = append(out, c)
	out = append(out, colors[position:]...)
	return out
}

// removeAt returns a new slice without the entry at index.
func removeAt(colors []SavedColor, index int) []SavedColor {
	out := make([]SavedColor, 0, len(colors))
	out = append(out, colors[:index]...)
	return append(out, colors[index+1:]...)
}
