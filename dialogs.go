package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	swerr "github.com/example/swatchbook/internal/errors"
	"github.com/example/swatchbook/internal/export"
	"github.com/sqweek/dialog"
)

var imageExts = []string{"png", "jpg", "jpeg", "gif", "webp", "bmp", "tif", "tiff"}

// dialogPicker asks for export destinations with the native save dialog.
type dialogPicker struct{}

func (dialogPicker) SavePath(_ context.Context, doc export.Document) (string, error) {
	path, err := dialog.File().
		Filter(doc.Format.Label(), doc.Format.Ext()).
		Title("Save " + doc.Name).
		Save()
	if err != nil {
		if errors.Is(err, dialog.ErrCancelled) {
			return "", fmt.Errorf("save dialog: %w", swerr.ErrCancelled)
		}
		return "", fmt.Errorf("save dialog: %w", err)
	}
	if path == "" {
		return "", fmt.Errorf("save dialog: %w", swerr.ErrCancelled)
	}
	if !strings.EqualFold(filepath.Ext(path), "."+doc.Format.Ext()) {
		path += "." + doc.Format.Ext()
	}
	return path, nil
}

// openImageDialog asks for an image file. A dismissed dialog returns
// errors.ErrCancelled.
func openImageDialog() (string, error) {
	path, err := dialog.File().Filter("Images", imageExts...).Title("Open Image").Load()
	if err != nil {
		if errors.Is(err, dialog.ErrCancelled) {
			return "", swerr.ErrCancelled
		}
		return "", err
	}
	if path == "" {
		return "", swerr.ErrCancelled
	}
	return filepath.Abs(path)
}
