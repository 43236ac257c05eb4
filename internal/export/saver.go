package export

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	swerr "github.com/example/swatchbook/internal/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Picker asks the user where to save a document. It returns an error
// wrapping errors.ErrCancelled when the prompt is dismissed.
type Picker interface {
	SavePath(ctx context.Context, doc Document) (string, error)
}

// Saver writes documents to the path chosen by a Picker, falling back to a
// fixed download directory when the picker fails.
type Saver struct {
	fs          afero.Fs
	picker      Picker
	fallbackDir string
}

// NewSaver builds a Saver. A nil picker always uses the fallback directory.
func NewSaver(fs afero.Fs, picker Picker, fallbackDir string) *Saver {
	return &Saver{fs: fs, picker: picker, fallbackDir: fallbackDir}
}

// Save writes doc and returns the path written. A dismissed picker returns
// errors.ErrCancelled without writing anything.
func (s *Saver) Save(ctx context.Context, doc Document) (string, error) {
	if s.picker != nil {
		path, err := s.picker.SavePath(ctx, doc)
		if swerr.IsCancelled(err) {
			return "", swerr.ErrCancelled
		}
		if err == nil {
			if err = s.write(path, doc.Data); err == nil {
				return path, nil
			}
		}
		log.WithError(err).WithField("file", doc.Name).Warn("save failed, falling back to download directory")
	}
	return s.download(doc)
}

func (s *Saver) download(doc Document) (string, error) {
	if err := s.fs.MkdirAll(s.fallbackDir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", s.fallbackDir, err)
	}
	path, err := s.uniquePath(filepath.Join(s.fallbackDir, doc.Name))
	if err != nil {
		return "", err
	}
	if err := s.write(path, doc.Data); err != nil {
		return "", err
	}
	return path, nil
}

// uniquePath appends " (n)" before the extension until the name is free.
func (s *Saver) uniquePath(path string) (string, error) {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	candidate := path
	for n := 1; ; n++ {
		exists, err := afero.Exists(s.fs, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s (%d)%s", base, n, ext)
	}
}

func (s *Saver) write(path string, data []byte) error {
	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
