// Package colormath converts between the hex, RGB and HSL notations shown in
// the picker and written by the exporters.
//
// Malformed input never produces an error: the string helpers return "" so
// callers can treat it as "nothing to display".
package colormath

import (
	"fmt"
	"image/color"
	"math"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var hexPattern = regexp.MustCompile(`^#?([0-9a-fA-F]{2})([0-9a-fA-F]{2})([0-9a-fA-F]{2})$`)

// Valid reports whether s is a 6-digit hex colour with an optional leading '#'.
func Valid(s string) bool {
	return hexPattern.MatchString(s)
}

// Normalize returns s as upper-case "#RRGGBB".
func Normalize(s string) (string, bool) {
	if !Valid(s) {
		return "", false
	}
	return "#" + strings.ToUpper(strings.TrimPrefix(s, "#")), true
}

func parse(s string) (colorful.Color, bool) {
	norm, ok := Normalize(s)
	if !ok {
		return colorful.Color{}, false
	}
	c, err := colorful.Hex(strings.ToLower(norm))
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

// Parse returns the opaque RGBA value of a hex colour.
func Parse(s string) (color.RGBA, bool) {
	c, ok := parse(s)
	if !ok {
		return color.RGBA{}, false
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, true
}

// Hex formats c as upper-case "#RRGGBB", dropping alpha.
func Hex(c color.Color) string {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return fmt.Sprintf("#%02X%02X%02X", rgba.R, rgba.G, rgba.B)
}

// RGBChannels returns the 0-255 channels of s.
func RGBChannels(s string) (r, g, b uint8, ok bool) {
	c, ok := Parse(s)
	if !ok {
		return 0, 0, 0, false
	}
	return c.R, c.G, c.B, true
}

// HSLValues returns hue in whole degrees and saturation and lightness as
// whole percentages. Achromatic colours report h=0, s=0.
func HSLValues(s string) (h, sat, l int, ok bool) {
	c, ok := parse(s)
	if !ok {
		return 0, 0, 0, false
	}
	hf, sf, lf := c.Hsl()
	return int(math.Round(hf)), int(math.Round(sf * 100)), int(math.Round(lf * 100)), true
}

// HexToRGB renders s as "rgb(r, g, b)", or "" when s is malformed.
func HexToRGB(s string) string {
	r, g, b, ok := RGBChannels(s)
	if !ok {
		return ""
	}
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
}

// HexToHSL renders s as "hsl(h, s%, l%)", or "" when s is malformed.
func HexToHSL(s string) string {
	h, sat, l, ok := HSLValues(s)
	if !ok {
		return ""
	}
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", h, sat, l)
}

// FromRGB builds an upper-case hex string from channels.
func FromRGB(r, g, b uint8) string {
	return Hex(color.RGBA{R: r, G: g, B: b, A: 0xff})
}

// Contrast picks black or white for text drawn on top of s.
func Contrast(s string) color.Color {
	c, ok := parse(s)
	if !ok {
		return color.White
	}
	_, _, l := c.Hsl()
	if l > 0.6 {
		return color.Black
	}
	return color.White
}
