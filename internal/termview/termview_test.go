package termview

import (
	"bytes"
	"testing"

	"github.com/example/swatchbook/internal/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf).Print(nil, ""))
	assert.Equal(t, "No palettes yet.\n", buf.String())
}

func TestPrintPalettes(t *testing.T) {
	palettes := []palette.Palette{
		{ID: "p1", Name: "Brand", Colors: []palette.SavedColor{
			{Color: "#FF5733", Tag: "Color 1"},
			{Color: "#FFFFFF", Tag: "Paper"},
		}},
		{ID: "p2", Name: "Empty"},
	}

	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.Details = true
	require.NoError(t, p.Print(palettes, "p2"))
	out := buf.String()

	assert.Contains(t, out, "Brand (p1, 2 colours)")
	assert.Contains(t, out, "● Empty (p2, 0 colours)")
	assert.NotContains(t, out, "● Brand")
	assert.Contains(t, out, "#FF5733")
	assert.Contains(t, out, "Color 1 rgb(255, 87, 51) hsl(11, 100%, 60%)")
	assert.Contains(t, out, "Paper")
	assert.Contains(t, out, "  empty")
}
