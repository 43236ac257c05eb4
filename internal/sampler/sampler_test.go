package sampler

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gradient returns a w×h image where pixel (x, y) is rgb(x*10, y*10, 0x33).
func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 10), uint8(y * 10), 0x33, 0xff})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func loaded(t *testing.T, w, h int) *Sampler {
	t.Helper()
	s := New()
	require.NoError(t, s.Load(bytes.NewReader(encodePNG(t, gradient(w, h))), "test.png"))
	return s
}

func TestNewSamplerIsIdle(t *testing.T) {
	s := New()
	assert.Equal(t, Idle, s.State())
	_, ok := s.Pick(1, 1, 10, 10)
	assert.False(t, ok)
	_, ok = s.Hover(1, 1, 10, 10, true)
	assert.False(t, ok)
}

func TestLoadSwitchesToSampling(t *testing.T) {
	s := loaded(t, 20, 10)
	assert.Equal(t, Sampling, s.State())
	assert.Equal(t, "test.png", s.Source())
	w, h := s.Size()
	assert.Equal(t, 20, w)
	assert.Equal(t, 10, h)
}

func TestLoadRejectsNonImage(t *testing.T) {
	s := New()
	err := s.Load(bytes.NewReader([]byte("just some text")), "notes.txt")
	assert.ErrorIs(t, err, ErrNotImage)
	assert.Equal(t, Idle, s.State())
}

func TestFailedLoadKeepsPreviousImage(t *testing.T) {
	s := loaded(t, 4, 4)
	before := s.Bitmap()

	// PNG signature followed by garbage sniffs as an image but fails to decode.
	broken := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)
	err := s.Load(bytes.NewReader(broken), "broken.png")
	require.Error(t, err)

	assert.Equal(t, Sampling, s.State())
	assert.Same(t, before, s.Bitmap())
	assert.Equal(t, "test.png", s.Source())
}

func TestMapPoint(t *testing.T) {
	s := loaded(t, 200, 100)
	tests := []struct {
		name         string
		px, py       float64
		dw, dh       float64
		wantX, wantY int
	}{
		{"origin", 0, 0, 100, 50, 0, 0},
		{"half scale", 10, 10, 100, 50, 20, 20},
		{"rounds to nearest", 10.3, 10.2, 100, 50, 21, 20},
		{"clamps far edge", 100, 50, 100, 50, 199, 99},
		{"clamps negative", -5, -5, 100, 50, 0, 0},
		{"native size", 37, 12, 200, 100, 37, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := s.MapPoint(tt.px, tt.py, tt.dw, tt.dh)
			assert.Equal(t, tt.wantX, x)
			assert.Equal(t, tt.wantY, y)
		})
	}
}

func TestPickReturnsUpperCaseHex(t *testing.T) {
	s := loaded(t, 20, 20)
	hex, ok := s.Pick(2, 1, 20, 20)
	require.True(t, ok)
	assert.Equal(t, "#140A33", hex)
}

func TestPickUsesNativeResolution(t *testing.T) {
	s := loaded(t, 20, 20)
	// Displayed at half size: display (5, 5) is native (10, 10).
	hex, ok := s.Pick(5, 5, 10, 10)
	require.True(t, ok)
	assert.Equal(t, "#646433", hex)
}

func TestMagnifierDimensionsAndCentre(t *testing.T) {
	s := loaded(t, 20, 20)
	zoom := s.Magnify(10, 5, true)
	assert.Equal(t, image.Rect(0, 0, ZoomSize, ZoomSize), zoom.Bounds())
	assert.Equal(t, 84, ZoomSize)

	mid := ZoomWindow/2*ZoomLevel + ZoomLevel/2
	r, g, b, a := zoom.At(mid, mid).RGBA()
	assert.Equal(t, uint32(100), r>>8)
	assert.Equal(t, uint32(50), g>>8)
	assert.Equal(t, uint32(0x33), b>>8)
	assert.Equal(t, uint32(0xff), a>>8)
}

func TestMagnifierRepeatsEdgePixels(t *testing.T) {
	s := loaded(t, 10, 10)
	zoom := s.Magnify(0, 0, false)
	// Top-left block lies outside the bitmap and repeats pixel (0, 0).
	r, g, b, _ := zoom.At(ZoomLevel/2, ZoomLevel/2).RGBA()
	assert.Equal(t, uint32(0), r>>8)
	assert.Equal(t, uint32(0), g>>8)
	assert.Equal(t, uint32(0x33), b>>8)
}

func TestMagnifierCentreBorderDiffersByTheme(t *testing.T) {
	s := loaded(t, 10, 10)
	edge := ZoomWindow / 2 * ZoomLevel
	dark := s.Magnify(5, 5, true).At(edge+5, edge)
	light := s.Magnify(5, 5, false).At(edge+5, edge)
	assert.NotEqual(t, dark, light)
}

func TestHoverAndLeave(t *testing.T) {
	s := loaded(t, 20, 20)
	h, ok := s.Hover(3, 4, 20, 20, true)
	require.True(t, ok)
	assert.Equal(t, 3, h.X)
	assert.Equal(t, 4, h.Y)
	assert.Equal(t, "#1E2833", h.Color)
	require.NotNil(t, h.Zoom)

	got, ok := s.Hovered()
	require.True(t, ok)
	assert.Equal(t, h.Color, got.Color)

	s.Leave()
	_, ok = s.Hovered()
	assert.False(t, ok)
	assert.Equal(t, Sampling, s.State())
}

func TestPreviewFitsBounds(t *testing.T) {
	s := loaded(t, 100, 50)
	p := s.Preview(50, 50)
	assert.Equal(t, 50, p.Bounds().Dx())
	assert.Equal(t, 25, p.Bounds().Dy())

	// Small images are shown as is.
	assert.Same(t, s.Bitmap(), s.Preview(400, 400))
}

func TestDataURL(t *testing.T) {
	data := encodePNG(t, gradient(3, 3))
	url := "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)

	assert.True(t, IsDataURL(url))
	assert.False(t, IsDataURL("/tmp/picture.png"))

	s := New()
	require.NoError(t, s.LoadDataURL(url))
	assert.Equal(t, Sampling, s.State())
	assert.Equal(t, "clipboard", s.Source())

	_, err := ParseDataURL("data:image/png,rawbytes")
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestLoadFileAndClipboardPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/pics/a.png", encodePNG(t, gradient(5, 5)), 0o644))

	s := New()
	require.NoError(t, s.LoadFile(fs, "/pics/a.png"))
	assert.Equal(t, "/pics/a.png", s.Source())

	other := New()
	require.NoError(t, other.LoadClipboardText(fs, "  \"/pics/a.png\"\n"))
	assert.Equal(t, Sampling, other.State())

	err := other.LoadClipboardText(fs, "hello world")
	assert.ErrorIs(t, err, ErrNotImage)
	assert.Equal(t, "/pics/a.png", other.Source())

	assert.Error(t, New().LoadFile(fs, "/pics/missing.png"))
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "img.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, gradient(2, 2)), 0o644))

	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Watch(path))

	// Changes to siblings are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.png"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, encodePNG(t, gradient(3, 3)), 0o644))

	select {
	case got := <-w.Events():
		assert.Equal(t, path, got)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload event")
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "sampling", Sampling.String())
}
