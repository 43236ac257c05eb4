package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/example/swatchbook/internal/colormath"
	"github.com/example/swatchbook/internal/palette"
	"github.com/samber/lo"
)

var txtRule = "\n\n" + strings.Repeat("=", 40) + "\n\n"

func renderJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func cssVars(p palette.Palette, prefix bool) []string {
	return lo.Map(p.Colors, func(c palette.SavedColor, _ int) string {
		if prefix {
			return fmt.Sprintf("--%s-%s: %s;", Slug(p.Name), Slug(c.Tag), c.Color)
		}
		return fmt.Sprintf("--%s: %s;", Slug(c.Tag), c.Color)
	})
}

func renderCSS(palettes []palette.Palette, scope Scope) []byte {
	var body string
	if scope == ScopePalette {
		body = strings.Join(cssVars(palettes[0], false), "\n")
	} else {
		body = strings.Join(lo.Map(palettes, func(p palette.Palette, _ int) string {
			return "/* " + p.Name + " */\n" + strings.Join(cssVars(p, true), "\n")
		}), "\n\n")
	}
	return []byte(":root {\n" + body + "\n}")
}

func scssVars(p palette.Palette) string {
	return strings.Join(lo.Map(p.Colors, func(c palette.SavedColor, _ int) string {
		return fmt.Sprintf("$%s-%s: %s;", Slug(p.Name), Slug(c.Tag), c.Color)
	}), "\n")
}

func renderSCSS(palettes []palette.Palette, scope Scope) []byte {
	if scope == ScopePalette {
		return []byte(scssVars(palettes[0]))
	}
	return []byte(strings.Join(lo.Map(palettes, func(p palette.Palette, _ int) string {
		return "// " + p.Name + "\n" + scssVars(p)
	}), "\n\n"))
}

func txtSection(p palette.Palette) string {
	return p.Name + ":\n\n" + strings.Join(lo.Map(p.Colors, func(c palette.SavedColor, _ int) string {
		return fmt.Sprintf("%s:\nHEX: %s\nRGB: %s\nHSL: %s\n",
			c.Tag, c.Color, colormath.HexToRGB(c.Color), colormath.HexToHSL(c.Color))
	}), "\n")
}

func renderTXT(palettes []palette.Palette) []byte {
	return []byte(strings.Join(lo.Map(palettes, func(p palette.Palette, _ int) string {
		return txtSection(p)
	}), txtRule))
}
