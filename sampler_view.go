package main

import (
	"image"

	"github.com/example/swatchbook/internal/layout"
	"github.com/example/swatchbook/internal/sampler"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	zoomPanelW = sampler.ZoomSize + 8
	zoomPanelH = sampler.ZoomSize + 28
)

// SamplerView draws the sampler's bitmap scaled into the sampler area and
// maps cursor positions back onto it.
type SamplerView struct {
	s *sampler.Sampler

	preview     *ebiten.Image
	previewArea layout.Rect
	zoom        *ebiten.Image
}

func NewSamplerView() *SamplerView {
	return &SamplerView{
		s:    sampler.New(),
		zoom: ebiten.NewImage(sampler.ZoomSize, sampler.ZoomSize),
	}
}

// Replace installs a newly decoded bitmap.
func (v *SamplerView) Replace(bm *image.NRGBA, source string) {
	v.s.Replace(bm, source)
	v.dropPreview()
}

func (v *SamplerView) dropPreview() {
	if v.preview != nil {
		v.preview.Deallocate()
		v.preview = nil
	}
}

// Image returns the display image for area and where it sits on screen.
func (v *SamplerView) Image(area layout.Rect) (*ebiten.Image, layout.Rect) {
	if v.s.State() != sampler.Sampling {
		return nil, layout.Rect{}
	}
	if v.preview == nil || v.previewArea.W != area.W || v.previewArea.H != area.H {
		v.dropPreview()
		v.preview = ebiten.NewImageFromImage(v.s.Preview(area.W-2, area.H-2))
		v.previewArea = area
	}
	b := v.preview.Bounds()
	return v.preview, layout.Rect{
		X: area.X + (area.W-b.Dx())/2,
		Y: area.Y + (area.H-b.Dy())/2,
		W: b.Dx(),
		H: b.Dy(),
	}
}

// local converts a screen point to display coordinates on the image.
func (v *SamplerView) local(area layout.Rect, x, y int) (float64, float64, layout.Rect, bool) {
	_, disp := v.Image(area)
	if disp.Empty() || !disp.Contains(x, y) {
		return 0, 0, disp, false
	}
	return float64(x - disp.X), float64(y - disp.Y), disp, true
}

// Pick returns the colour under a screen point.
func (v *SamplerView) Pick(area layout.Rect, x, y int) (string, bool) {
	px, py, disp, ok := v.local(area, x, y)
	if !ok {
		return "", false
	}
	return v.s.Pick(px, py, float64(disp.W), float64(disp.H))
}

// Hover refreshes the magnifier, or clears it when the cursor left the image.
func (v *SamplerView) Hover(area layout.Rect, x, y int, dark bool) {
	px, py, disp, ok := v.local(area, x, y)
	if !ok {
		v.s.Leave()
		return
	}
	if h, ok := v.s.Hover(px, py, float64(disp.W), float64(disp.H), dark); ok {
		v.zoom.WritePixels(h.Zoom.Pix)
	}
}

// Magnifier returns the zoom image and the hovered pixel.
func (v *SamplerView) Magnifier() (*ebiten.Image, sampler.Magnifier, bool) {
	h, ok := v.s.Hovered()
	if !ok {
		return nil, sampler.Magnifier{}, false
	}
	return v.zoom, h, true
}

// Source is where the current image came from.
func (v *SamplerView) Source() string {
	return v.s.Source()
}
