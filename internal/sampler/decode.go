package sampler

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	"github.com/spf13/afero"
)

const dataURLPrefix = "data:image/"

// ReadFile decodes an image file from fs without touching any sampler.
func ReadFile(fs afero.Fs, path string) (*image.NRGBA, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Decode(data)
}

// LoadFile loads an image file into the sampler.
func (s *Sampler) LoadFile(fs afero.Fs, path string) error {
	bm, err := ReadFile(fs, path)
	if err != nil {
		return err
	}
	s.Replace(bm, path)
	return nil
}

// IsDataURL reports whether text looks like a base64 image data URL.
func IsDataURL(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), dataURLPrefix)
}

// ParseDataURL extracts the payload of a "data:image/...;base64," URL.
func ParseDataURL(text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, dataURLPrefix) {
		return nil, ErrNotImage
	}
	header, payload, ok := strings.Cut(text, ",")
	if !ok || !strings.HasSuffix(header, ";base64") {
		return nil, fmt.Errorf("data url: %w", ErrNotImage)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("data url: %w", err)
	}
	return data, nil
}

// LoadDataURL loads a pasted data URL.
func (s *Sampler) LoadDataURL(text string) error {
	data, err := ParseDataURL(text)
	if err != nil {
		return err
	}
	return s.Load(bytes.NewReader(data), "clipboard")
}

// ReadClipboardText decodes pasted clipboard text, which is either a data URL
// or the path of an image file.
func ReadClipboardText(fs afero.Fs, text string) (*image.NRGBA, string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, "", ErrNotImage
	}
	if IsDataURL(text) {
		data, err := ParseDataURL(text)
		if err != nil {
			return nil, "", err
		}
		bm, err := Decode(data)
		return bm, "clipboard", err
	}
	path := strings.Trim(text, `"'`)
	if ok, _ := afero.Exists(fs, path); !ok {
		return nil, "", ErrNotImage
	}
	bm, err := ReadFile(fs, path)
	return bm, path, err
}

// LoadClipboardText loads pasted clipboard text into the sampler.
func (s *Sampler) LoadClipboardText(fs afero.Fs, text string) error {
	bm, source, err := ReadClipboardText(fs, text)
	if err != nil {
		return err
	}
	s.Replace(bm, source)
	return nil
}
