// Package termview prints palettes to a terminal with coloured swatches.
package termview

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/example/swatchbook/internal/colormath"
	"github.com/example/swatchbook/internal/palette"
)

var (
	colorMuted  = lipgloss.AdaptiveColor{Dark: "#6b7280", Light: "#9ca3af"}
	colorAccent = lipgloss.AdaptiveColor{Dark: "#3b82f6", Light: "#2563eb"}
)

const activeMarker = "●"

// Printer renders palettes for one output stream. Colour support is detected
// from the stream, so redirected output stays plain text.
type Printer struct {
	w       io.Writer
	title   lipgloss.Style
	active  lipgloss.Style
	muted   lipgloss.Style
	swatch  lipgloss.Style
	Details bool
}

// NewPrinter builds a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:      w,
		title:  r.NewStyle().Bold(true),
		active: r.NewStyle().Foreground(colorAccent),
		muted:  r.NewStyle().Foreground(colorMuted),
		swatch: r.NewStyle().Padding(0, 1),
	}
}

// Print writes every palette, marking activeID.
func (p *Printer) Print(palettes []palette.Palette, activeID string) error {
	if len(palettes) == 0 {
		_, err := fmt.Fprintln(p.w, p.muted.Render("No palettes yet."))
		return err
	}
	blocks := make([]string, 0, len(palettes))
	for _, pal := range palettes {
		blocks = append(blocks, p.Palette(pal, pal.ID == activeID))
	}
	_, err := fmt.Fprintln(p.w, strings.Join(blocks, "\n\n"))
	return err
}

// Palette renders one palette block.
func (p *Printer) Palette(pal palette.Palette, active bool) string {
	header := p.title.Render(pal.Name)
	if active {
		header = p.active.Render(activeMarker) + " " + header
	}
	header += " " + p.muted.Render(fmt.Sprintf("(%s, %d colours)", pal.ID, len(pal.Colors)))

	lines := []string{header}
	if len(pal.Colors) == 0 {
		lines = append(lines, p.muted.Render("  empty"))
	}
	for _, c := range pal.Colors {
		lines = append(lines, "  "+p.Color(c))
	}
	return strings.Join(lines, "\n")
}

// Color renders one swatch line.
func (p *Printer) Color(c palette.SavedColor) string {
	chip := p.swatch.
		Background(lipgloss.Color(c.Color)).
		Foreground(lipgloss.Color(colormath.Hex(colormath.Contrast(c.Color)))).
		Render(c.Color)
	line := chip + " " + c.Tag
	if p.Details {
		line += " " + p.muted.Render(colormath.HexToRGB(c.Color)+" "+colormath.HexToHSL(c.Color))
	}
	return line
}
