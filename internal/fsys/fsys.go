// Package fsys provides the swappable filesystem backend used by storage,
// config and export.
package fsys

import "github.com/spf13/afero"

var backend afero.Fs = afero.NewOsFs()

// FS returns the active filesystem.
func FS() afero.Fs {
	return backend
}

// SetOsFs restores the native filesystem.
func SetOsFs() {
	backend = afero.NewOsFs()
}

// SetMemMapFs switches to an in-memory filesystem for tests.
func SetMemMapFs() {
	backend = afero.NewMemMapFs()
}
