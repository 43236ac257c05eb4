// Package storage is the flat key/value store that persists application
// state between runs.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Keys, one per logical field of the application state.
const (
	KeyCurrentColor    = "currentColor"
	KeyPalettes        = "palettes"
	KeyActivePaletteID = "activePaletteId"
	KeyTheme           = "theme"
)

// KV is a string key/value store.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// FileKV keeps every key in a single YAML document. Each Set rewrites the
// document; the last writer wins.
type FileKV struct {
	fs   afero.Fs
	path string

	mu     sync.Mutex
	values map[string]string
	loaded bool
}

// NewFileKV returns a store backed by the YAML file at path.
func NewFileKV(fs afero.Fs, path string) *FileKV {
	return &FileKV{fs: fs, path: path}
}

// Path returns the backing file.
func (kv *FileKV) Path() string {
	return kv.path
}

func (kv *FileKV) load() error {
	if kv.loaded {
		return nil
	}
	kv.values = map[string]string{}
	b, err := afero.ReadFile(kv.fs, kv.path)
	if err != nil {
		if os.IsNotExist(err) {
			kv.loaded = true
			return nil
		}
		return fmt.Errorf("read state: %w", err)
	}
	if err := yaml.Unmarshal(b, &kv.values); err != nil {
		return fmt.Errorf("parse state %s: %w", kv.path, err)
	}
	if kv.values == nil {
		kv.values = map[string]string{}
	}
	kv.loaded = true
	return nil
}

// Get returns the value stored for key.
func (kv *FileKV) Get(key string) (string, bool, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	if err := kv.load(); err != nil {
		return "", false, err
	}
	v, ok := kv.values[key]
	return v, ok, nil
}

// Set stores value under key and writes the document.
func (kv *FileKV) Set(key, value string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	if err := kv.load(); err != nil {
		return err
	}
	if cur, ok := kv.values[key]; ok && cur == value {
		return nil
	}
	kv.values[key] = value
	return kv.flush()
}

// Delete removes key.
func (kv *FileKV) Delete(key string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	if err := kv.load(); err != nil {
		return err
	}
	if _, ok := kv.values[key]; !ok {
		return nil
	}
	delete(kv.values, key)
	return kv.flush()
}

// flush writes to a temp file next to the target and renames it into place.
func (kv *FileKV) flush() error {
	if err := kv.fs.MkdirAll(filepath.Dir(kv.path), 0755); err != nil {
		return err
	}
	b, err := yaml.Marshal(kv.values)
	if err != nil {
		return err
	}
	tmp := kv.path + ".tmp"
	if err := afero.WriteFile(kv.fs, tmp, b, 0644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err := kv.fs.Rename(tmp, kv.path); err != nil {
		return fmt.Errorf("replace state: %w", err)
	}
	return nil
}

// MemKV is an in-memory KV.
type MemKV struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemKV returns an empty in-memory store.
func NewMemKV() *MemKV {
	return &MemKV{values: map[string]string{}}
}

func (m *MemKV) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
