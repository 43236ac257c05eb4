package export

import (
	swerr "github.com/example/swatchbook/internal/errors"
	"github.com/example/swatchbook/internal/palette"
)

// Document is a rendered export ready to save.
type Document struct {
	Name   string
	MIME   string
	Format Format
	Data   []byte
}

// Render serialises palettes. ScopePalette takes exactly one palette.
func Render(f Format, scope Scope, palettes []palette.Palette, dark bool) (Document, error) {
	if scope == ScopePalette && len(palettes) != 1 {
		return Document{}, swerr.InvalidField("palettes", "single palette export needs exactly one palette")
	}
	palettes = palette.CloneAll(palettes)

	name := ""
	if scope == ScopePalette {
		name = palettes[0].Name
	}
	doc := Document{Name: Filename(f, scope, name), MIME: f.MIME(), Format: f}

	var err error
	switch f {
	case JSON:
		if scope == ScopePalette {
			doc.Data, err = renderJSON(palettes[0])
		} else {
			doc.Data, err = renderJSON(palettes)
		}
	case CSS:
		doc.Data = renderCSS(palettes, scope)
	case SCSS:
		doc.Data = renderSCSS(palettes, scope)
	case TXT:
		doc.Data = renderTXT(palettes)
	case PNG:
		doc.Data, err = renderPNG(palettes, scope, dark)
	default:
		return Document{}, swerr.InvalidField("format", f.String())
	}
	if err != nil {
		return Document{}, err
	}
	return doc, nil
}
