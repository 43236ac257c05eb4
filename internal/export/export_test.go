package export

import (
	"bytes"
	"encoding/json"
	"image/png"
	"testing"

	"github.com/example/swatchbook/internal/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

func brand() palette.Palette {
	return palette.Palette{
		ID:   "p1",
		Name: "Brand",
		Colors: []palette.SavedColor{
			{Color: "#FF5733", Tag: "Color 1"},
			{Color: "#000000", Tag: "Deep Black"},
		},
	}
}

func accents() palette.Palette {
	return palette.Palette{
		ID:     "p2",
		Name:   "Night Sky",
		Colors: []palette.SavedColor{{Color: "#1E3A8A", Tag: "Navy"}},
	}
}

func render(t *testing.T, f Format, scope Scope, ps ...palette.Palette) Document {
	t.Helper()
	doc, err := Render(f, scope, ps, true)
	require.NoError(t, err)
	return doc
}

func TestSlug(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Color 1", "color-1"},
		{"Deep  Black", "deep-black"},
		{" Lead\tand trail ", "-lead-and-trail-"},
		{"ÉCLAIR", "éclair"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slug(tt.in), tt.in)
	}
}

func TestFileSlug(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Palette 1", "palette-1"},
		{"Café / Bar", "cafe-bar"},
		{"  ", "palette"},
		{"***", "palette"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FileSlug(tt.in), tt.in)
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		format Format
		scope  Scope
		name   string
		want   string
	}{
		{JSON, ScopeAll, "", "color-palette.json"},
		{CSS, ScopeAll, "", "color-palette.css"},
		{SCSS, ScopeAll, "", "color-palette.scss"},
		{TXT, ScopeAll, "", "all-palettes.txt"},
		{PNG, ScopeAll, "", "all-palettes.png"},
		{JSON, ScopePalette, "Night Sky", "night-sky.json"},
		{PNG, ScopePalette, "Palette 1", "palette-1.png"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Filename(tt.format, tt.scope, tt.name))
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats {
		got, err := ParseFormat(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	got, err := ParseFormat(" PNG ")
	require.NoError(t, err)
	assert.Equal(t, PNG, got)

	_, err = ParseFormat("gif")
	assert.Error(t, err)
}

func TestMIME(t *testing.T) {
	assert.Equal(t, "application/json", JSON.MIME())
	assert.Equal(t, "text/css", CSS.MIME())
	assert.Equal(t, "text/x-scss", SCSS.MIME())
	assert.Equal(t, "text/plain", TXT.MIME())
	assert.Equal(t, "image/png", PNG.MIME())
}

func TestJSONRoundTrip(t *testing.T) {
	doc := render(t, JSON, ScopePalette, brand())
	assert.Equal(t, "brand.json", doc.Name)

	var got palette.Palette
	require.NoError(t, json.Unmarshal(doc.Data, &got))
	assert.Equal(t, brand(), got)
	assert.Contains(t, string(doc.Data), "\n  \"name\": \"Brand\"")
}

func TestJSONAllIsArray(t *testing.T) {
	empty := palette.Palette{ID: "p3", Name: "Empty"}
	doc := render(t, JSON, ScopeAll, brand(), empty)

	var got []palette.Palette
	require.NoError(t, json.Unmarshal(doc.Data, &got))
	require.Len(t, got, 2)
	assert.Equal(t, brand().Colors, got[0].Colors)
	assert.Contains(t, string(doc.Data), `"colors": []`)
}

func TestCSS(t *testing.T) {
	single := render(t, CSS, ScopePalette, brand())
	assert.Equal(t, ":root {\n--color-1: #FF5733;\n--deep-black: #000000;\n}", string(single.Data))

	all := render(t, CSS, ScopeAll, brand(), accents())
	assert.Equal(t, ":root {\n"+
		"/* Brand */\n--brand-color-1: #FF5733;\n--brand-deep-black: #000000;\n\n"+
		"/* Night Sky */\n--night-sky-navy: #1E3A8A;\n}", string(all.Data))
}

func TestSCSS(t *testing.T) {
	single := render(t, SCSS, ScopePalette, brand())
	assert.Equal(t, "$brand-color-1: #FF5733;\n$brand-deep-black: #000000;", string(single.Data))

	all := render(t, SCSS, ScopeAll, brand(), accents())
	assert.Equal(t, "// Brand\n$brand-color-1: #FF5733;\n$brand-deep-black: #000000;\n\n"+
		"// Night Sky\n$night-sky-navy: #1E3A8A;", string(all.Data))
}

func TestTXT(t *testing.T) {
	brandText := "Brand:\n\n" +
		"Color 1:\nHEX: #FF5733\nRGB: rgb(255, 87, 51)\nHSL: hsl(11, 100%, 60%)\n" +
		"\n" +
		"Deep Black:\nHEX: #000000\nRGB: rgb(0, 0, 0)\nHSL: hsl(0, 0%, 0%)\n"

	single := render(t, TXT, ScopePalette, brand())
	assert.Equal(t, brandText, string(single.Data))

	all := render(t, TXT, ScopeAll, brand(), accents())
	rule := "\n\n========================================\n\n"
	navy := "Night Sky:\n\nNavy:\nHEX: #1E3A8A\nRGB: rgb(30, 58, 138)\nHSL: hsl(224, 64%, 33%)\n"
	assert.Equal(t, brandText+rule+navy, string(all.Data))
}

func TestSinglePaletteScopeNeedsOnePalette(t *testing.T) {
	_, err := Render(JSON, ScopePalette, []palette.Palette{brand(), accents()}, true)
	assert.Error(t, err)
	_, err = Render(JSON, ScopePalette, nil, true)
	assert.Error(t, err)
}

func TestRenderDoesNotAlias(t *testing.T) {
	ps := []palette.Palette{brand()}
	_, err := Render(CSS, ScopeAll, ps, true)
	require.NoError(t, err)
	assert.Equal(t, brand(), ps[0])
}

func sixColors() palette.Palette {
	p := brand()
	for _, hex := range []string{"#111111", "#222222", "#333333", "#444444"} {
		p.Colors = append(p.Colors, palette.SavedColor{Color: hex, Tag: "A much longer tag that has to wrap"})
	}
	return p
}

func TestSheetSize(t *testing.T) {
	w, h := SheetSize([]palette.Palette{sixColors()}, ScopePalette)
	assert.Equal(t, 1620, w)
	assert.Equal(t, 1290, h)

	empty := palette.Palette{Name: "Empty"}
	w, h = SheetSize([]palette.Palette{sixColors(), empty}, ScopeAll)
	assert.Equal(t, 1620, w)
	assert.Equal(t, 60+(90+1080+120)+(90+120), h)
}

func TestPNG(t *testing.T) {
	doc := render(t, PNG, ScopePalette, sixColors())
	assert.Equal(t, "brand.png", doc.Name)
	assert.Equal(t, "image/png", doc.MIME)

	img, err := png.Decode(bytes.NewReader(doc.Data))
	require.NoError(t, err)
	assert.Equal(t, 1620, img.Bounds().Dx())
	assert.Equal(t, 1290, img.Bounds().Dy())

	r, g, b, _ := img.At(5, 5).RGBA()
	assert.Equal(t, []uint32{0x18, 0x18, 0x1b}, []uint32{r >> 8, g >> 8, b >> 8})

	// Centre of the first swatch carries its colour.
	x, y := sheetPadding+swatchSize/2, sheetPadding+titleHeight+swatchSize/2
	r, g, b, _ = img.At(x, y).RGBA()
	assert.Equal(t, []uint32{0xff, 0x57, 0x33}, []uint32{r >> 8, g >> 8, b >> 8})
}

func TestPNGLightTheme(t *testing.T) {
	doc, err := Render(PNG, ScopeAll, []palette.Palette{brand(), accents()}, false)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(doc.Data))
	require.NoError(t, err)
	r, g, b, _ := img.At(2, 2).RGBA()
	assert.Equal(t, []uint32{0xff, 0xff, 0xff}, []uint32{r >> 8, g >> 8, b >> 8})
}

func TestWrap(t *testing.T) {
	f, err := opentype.Parse(goregular.TTF)
	require.NoError(t, err)
	face, err := newFace(f, tagSize)
	require.NoError(t, err)
	defer face.Close()

	assert.Equal(t, []string{"Navy"}, wrap(face, "Navy", labelWidth))
	assert.Equal(t, []string{""}, wrap(face, "", labelWidth))

	lines := wrap(face, "A much longer tag that has to wrap", labelWidth)
	assert.Greater(t, len(lines), 1)
	assert.Equal(t, "A much longer tag that has to wrap", joinLines(lines))

	// A single oversized word is never split.
	assert.Equal(t, []string{"Supercalifragilisticexpialidocious"}, wrap(face, "Supercalifragilisticexpialidocious", labelWidth))
}

func joinLines(lines []string) string {
	out := lines[0]
	for _, l := range lines[1:] {
		out += " " + l
	}
	return out
}
