// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Options control logger setup.
type Options struct {
	// Level is a logrus level name. Unknown names fall back to info.
	Level string
	// File, when set, receives log output instead of stderr.
	File string
}

// Setup applies opts to the standard logger and returns a function that
// releases the log file, if one was opened.
func Setup(fs afero.Fs, opts Options) (func() error, error) {
	lvl, err := log.ParseLevel(opts.Level)
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if opts.File == "" {
		log.SetOutput(os.Stderr)
		return func() error { return nil }, nil
	}

	if err := fs.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, err
	}
	f, err := fs.OpenFile(opts.File, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	return func() error {
		log.SetOutput(os.Stderr)
		return f.Close()
	}, nil
}

// Discard silences the standard logger, for tests and quiet CLI commands.
func Discard() {
	log.SetOutput(io.Discard)
}
