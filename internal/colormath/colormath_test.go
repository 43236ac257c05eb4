package colormath

import (
	"fmt"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexToRGB(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"#FF5733", "rgb(255, 87, 51)"},
		{"ff5733", "rgb(255, 87, 51)"},
		{"#000000", "rgb(0, 0, 0)"},
		{"#ffffff", "rgb(255, 255, 255)"},
		{"#fff", ""},
		{"#GG0000", ""},
		{"", ""},
		{"#FF57331", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, HexToRGB(tt.input))
		})
	}
}

func TestHexToHSL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"#FF5733", "hsl(11, 100%, 60%)"},
		{"#000000", "hsl(0, 0%, 0%)"},
		{"#FFFFFF", "hsl(0, 0%, 100%)"},
		{"#808080", "hsl(0, 0%, 50%)"},
		{"#FF0000", "hsl(0, 100%, 50%)"},
		{"#00FF00", "hsl(120, 100%, 50%)"},
		{"#0000ff", "hsl(240, 100%, 50%)"},
		{"nope", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, HexToHSL(tt.input))
		})
	}
}

func TestNormalize(t *testing.T) {
	got, ok := Normalize("ab12cd")
	require.True(t, ok)
	assert.Equal(t, "#AB12CD", got)

	_, ok = Normalize("#ab12c")
	assert.False(t, ok)
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#0A0B0C", Hex(color.RGBA{10, 11, 12, 255}))
	assert.Equal(t, "#FF5733", FromRGB(255, 87, 51))
}

// hslToRGB is the textbook inverse used to check the rounding tolerance.
func hslToRGB(h, s, l float64) (float64, float64, float64) {
	if s == 0 {
		return l * 255, l * 255, l * 255
	}
	hue := func(p, q, t float64) float64 {
		if t < 0 {
			t++
		}
		if t > 1 {
			t--
		}
		switch {
		case t < 1.0/6:
			return p + (q-p)*6*t
		case t < 0.5:
			return q
		case t < 2.0/3:
			return p + (q-p)*(2.0/3-t)*6
		}
		return p
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	h /= 360
	return hue(p, q, h+1.0/3) * 255, hue(p, q, h) * 255, hue(p, q, h-1.0/3) * 255
}

func TestRoundTripWithinTolerance(t *testing.T) {
	for v := 0; v < 1<<24; v += 7919 {
		hex := fmt.Sprintf("#%06X", v)

		r, g, b, ok := RGBChannels(hex)
		require.True(t, ok)
		assert.Equal(t, hex, FromRGB(r, g, b))

		h, s, l, ok := HSLValues(hex)
		require.True(t, ok)
		require.GreaterOrEqual(t, h, 0)
		require.LessOrEqual(t, h, 360)
		require.GreaterOrEqual(t, s, 0)
		require.LessOrEqual(t, s, 100)
		require.GreaterOrEqual(t, l, 0)
		require.LessOrEqual(t, l, 100)

		// whole-number rounding of h/s/l costs a few channel units at most
		rr, gg, bb := hslToRGB(float64(h), float64(s)/100, float64(l)/100)
		assert.InDelta(t, float64(r), rr, 8, hex)
		assert.InDelta(t, float64(g), gg, 8, hex)
		assert.InDelta(t, float64(b), bb, 8, hex)
	}
}

// #000D28 puts the hue on an exact 220.5 tie. The float hue may land on
// either side, so only the neighbourhood is fixed.
func TestHSLValues_HueTie(t *testing.T) {
	h, s, l, ok := HSLValues("#000D28")
	require.True(t, ok)
	assert.InDelta(t, 220.5, float64(h), 0.5)
	assert.Equal(t, 100, s)
	assert.Equal(t, 8, l)
}
