// Package sampler decodes an image onto a native-size bitmap and reads pixel
// colours from it for the picker, including the zoomed magnifier preview.
package sampler

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"io"
	"math"

	"github.com/anthonynsimon/bild/transform"
	"github.com/example/swatchbook/internal/colormath"
	"github.com/h2non/filetype"
	"github.com/samber/lo"
	_ "golang.org/x/image/bmp"  // register decoder
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register decoder
	_ "golang.org/x/image/webp" // register decoder
)

// ErrNotImage is returned when loaded content is not a recognised image.
var ErrNotImage = errors.New("not an image")

// State of the sampler.
type State int

const (
	Idle State = iota
	Sampling
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Sampling:
		return "sampling"
	default:
		return "unknown"
	}
}

// Magnifier geometry.
const (
	ZoomWindow = 7
	ZoomLevel  = 12
	ZoomSize   = ZoomWindow * ZoomLevel
)

// Magnifier describes the pixel under the pointer and its zoomed view.
type Magnifier struct {
	// X, Y are bitmap coordinates.
	X, Y int
	// PointerX, PointerY are the display coordinates the hover came from.
	PointerX, PointerY float64
	Color              string
	Zoom               *image.RGBA
}

// Sampler is Idle until an image is loaded, then Sampling. Loading another
// image replaces the bitmap in place.
type Sampler struct {
	state  State
	bitmap *image.NRGBA
	source string
	hover  *Magnifier
}

// New returns an idle sampler.
func New() *Sampler {
	return &Sampler{}
}

// State returns the current state.
func (s *Sampler) State() State {
	return s.state
}

// Source names where the loaded image came from.
func (s *Sampler) Source() string {
	return s.source
}

// Bitmap returns the decoded image, nil while Idle.
func (s *Sampler) Bitmap() *image.NRGBA {
	return s.bitmap
}

// Size returns the native pixel size of the bitmap.
func (s *Sampler) Size() (int, int) {
	if s.bitmap == nil {
		return 0, 0
	}
	b := s.bitmap.Bounds()
	return b.Dx(), b.Dy()
}

// Decode sniffs and decodes image data into a native-size bitmap.
func Decode(data []byte) (*image.NRGBA, error) {
	if !filetype.IsImage(data) {
		return nil, ErrNotImage
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("decode %s: empty image", format)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return dst, nil
}

// Load decodes r and switches to Sampling. On failure the previous state and
// bitmap are kept.
func (s *Sampler) Load(r io.Reader, source string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}
	bm, err := Decode(data)
	if err != nil {
		return err
	}
	s.Replace(bm, source)
	return nil
}

// Replace installs an already decoded bitmap.
func (s *Sampler) Replace(bm *image.NRGBA, source string) {
	s.bitmap = bm
	s.source = source
	s.state = Sampling
	s.hover = nil
}

// MapPoint converts a point on the displayed image (displayed at dw×dh) to
// bitmap coordinates, rounding to the nearest pixel and clamping to bounds.
func (s *Sampler) MapPoint(px, py, dw, dh float64) (int, int) {
	w, h := s.Size()
	if w == 0 || dw <= 0 || dh <= 0 {
		return 0, 0
	}
	x := int(math.Round(px / dw * float64(w)))
	y := int(math.Round(py / dh * float64(h)))
	return lo.Clamp(x, 0, w-1), lo.Clamp(y, 0, h-1)
}

// ColorAt returns the upper-case hex colour of a bitmap pixel, clamped.
func (s *Sampler) ColorAt(x, y int) string {
	c := s.pixel(x, y)
	return colormath.FromRGB(c.R, c.G, c.B)
}

func (s *Sampler) pixel(x, y int) color.NRGBA {
	w, h := s.Size()
	return s.bitmap.NRGBAAt(lo.Clamp(x, 0, w-1), lo.Clamp(y, 0, h-1))
}

// Pick returns the colour under a display point. It reports false while Idle.
func (s *Sampler) Pick(px, py, dw, dh float64) (string, bool) {
	if s.state != Sampling {
		return "", false
	}
	x, y := s.MapPoint(px, py, dw, dh)
	return s.ColorAt(x, y), true
}

// Hover updates the hover and regenerates the magnifier for a display point.
func (s *Sampler) Hover(px, py, dw, dh float64, dark bool) (Magnifier, bool) {
	if s.state != Sampling {
		return Magnifier{}, false
	}
	x, y := s.MapPoint(px, py, dw, dh)
	h := Magnifier{
		X: x, Y: y,
		PointerX: px, PointerY: py,
		Color: s.ColorAt(x, y),
		Zoom:  s.Magnify(x, y, dark),
	}
	s.hover = &h
	return h, true
}

// Leave clears the magnifier. The sampler stays in Sampling.
func (s *Sampler) Leave() {
	s.hover = nil
}

// Hovered returns the current hover, if any.
func (s *Sampler) Hovered() (Magnifier, bool) {
	if s.hover == nil {
		return Magnifier{}, false
	}
	return *s.hover, true
}

var (
	zoomBgDark      = color.NRGBA{0x18, 0x18, 0x1b, 0xff}
	zoomBgLight     = color.NRGBA{0xfa, 0xfa, 0xfa, 0xff}
	zoomGridDark    = color.NRGBA{24, 24, 27, 77}
	zoomGridLight   = color.NRGBA{250, 250, 250, 77}
	zoomCenterDark  = color.NRGBA{59, 130, 246, 128}
	zoomCenterLight = color.NRGBA{59, 130, 246, 179}
)

// Magnify renders the ZoomWindow×ZoomWindow pixels around (x, y), each
// expanded to a ZoomLevel block, with a grid and a highlighted centre cell.
// Pixels beyond the bitmap edge repeat the edge.
func (s *Sampler) Magnify(x, y int, dark bool) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, ZoomSize, ZoomSize))
	bg, grid, center := zoomBgLight, zoomGridLight, zoomCenterLight
	if dark {
		bg, grid, center = zoomBgDark, zoomGridDark, zoomCenterDark
	}
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, xdraw.Src)
	if s.bitmap == nil {
		return dst
	}

	half := ZoomWindow / 2
	window := image.NewNRGBA(image.Rect(0, 0, ZoomWindow, ZoomWindow))
	for dy := -half; dy <= half; dy++ {
		for dx := -half; dx <= half; dx++ {
			window.SetNRGBA(dx+half, dy+half, s.pixel(x+dx, y+dy))
		}
	}
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), window, window.Bounds(), xdraw.Over, nil)

	gridSrc := image.NewUniform(grid)
	for i := 0; i <= ZoomWindow; i++ {
		pos := min(i*ZoomLevel, ZoomSize-1)
		xdraw.Draw(dst, image.Rect(pos, 0, pos+1, ZoomSize), gridSrc, image.Point{}, xdraw.Over)
		xdraw.Draw(dst, image.Rect(0, pos, ZoomSize, pos+1), gridSrc, image.Point{}, xdraw.Over)
	}

	c0 := half * ZoomLevel
	c1 := c0 + ZoomLevel - 1
	centerSrc := image.NewUniform(center)
	for _, r := range []image.Rectangle{
		image.Rect(c0, c0, c1+1, c0+1),
		image.Rect(c0, c1, c1+1, c1+1),
		image.Rect(c0, c0+1, c0+1, c1),
		image.Rect(c1, c0+1, c1+1, c1),
	} {
		xdraw.Draw(dst, r, centerSrc, image.Point{}, xdraw.Over)
	}
	return dst
}

// Preview returns the bitmap scaled down to fit maxW×maxH, for display only.
// Sampling always reads the native bitmap.
func (s *Sampler) Preview(maxW, maxH int) image.Image {
	if s.bitmap == nil {
		return nil
	}
	w, h := s.Size()
	if w <= maxW && h <= maxH {
		return s.bitmap
	}
	scale := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	tw := max(1, int(float64(w)*scale))
	th := max(1, int(float64(h)*scale))
	return transform.Resize(s.bitmap, tw, th, transform.Linear)
}
