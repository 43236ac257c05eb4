// Package export renders palettes as JSON, CSS, SCSS, plain text or a PNG
// contact sheet, and saves the result through a file picker.
package export

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	swerr "github.com/example/swatchbook/internal/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Format is an export file format.
type Format int

const (
	JSON Format = iota
	CSS
	SCSS
	TXT
	PNG
)

// Formats lists every format in menu order.
var Formats = []Format{JSON, CSS, SCSS, TXT, PNG}

var formatInfo = map[Format]struct {
	name, ext, mime, label string
}{
	JSON: {"json", "json", "application/json", "JSON"},
	CSS:  {"css", "css", "text/css", "CSS Variables"},
	SCSS: {"scss", "scss", "text/x-scss", "SCSS Variables"},
	TXT:  {"txt", "txt", "text/plain", "Text File"},
	PNG:  {"png", "png", "image/png", "PNG Image"},
}

func (f Format) String() string {
	if info, ok := formatInfo[f]; ok {
		return info.name
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// Ext is the file extension without the dot.
func (f Format) Ext() string {
	return formatInfo[f].ext
}

// MIME is the media type of the format.
func (f Format) MIME() string {
	return formatInfo[f].mime
}

// Label is the menu label.
func (f Format) Label() string {
	return formatInfo[f].label
}

// ParseFormat accepts a format name such as "json" or "png".
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, f := range Formats {
		if formatInfo[f].name == s {
			return f, nil
		}
	}
	return 0, swerr.InvalidField("format", fmt.Sprintf("unknown format %q", s))
}

// Scope selects one palette or the whole list.
type Scope int

const (
	ScopePalette Scope = iota
	ScopeAll
)

// Filename is the suggested file name for an export.
func Filename(f Format, scope Scope, paletteName string) string {
	if scope == ScopePalette {
		return FileSlug(paletteName) + "." + f.Ext()
	}
	switch f {
	case TXT, PNG:
		return "all-palettes." + f.Ext()
	default:
		return "color-palette." + f.Ext()
	}
}

var lower = cases.Lower(language.Und)

// Slug lower-cases s and replaces each whitespace run with a hyphen. It is
// used for CSS and SCSS variable names.
func Slug(s string) string {
	s = lower.String(s)
	var b strings.Builder
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('-')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	trimHyphens     = regexp.MustCompile(`^-+|-+$`)
)

// FileSlug is Slug restricted to characters that are safe in a file name on
// every platform. Names with nothing usable become "palette".
func FileSlug(s string) string {
	s = removeAccents(lower.String(s))
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	s = trimHyphens.ReplaceAllString(s, "")
	if s == "" {
		return "palette"
	}
	return s
}

func removeAccents(s string) string {
	var b strings.Builder
	for _, r := range norm.NFD.String(s) {
		if !unicode.Is(unicode.Mn, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
