package storage

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileKV_MissingFileIsEmpty(t *testing.T) {
	kv := NewFileKV(afero.NewMemMapFs(), "/data/state.yml")

	_, ok, err := kv.Get(KeyTheme)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileKV_SetSurvivesReopen(t *testing.T) {
	fs := afero.NewMemMapFs()
	kv := NewFileKV(fs, "/data/state.yml")

	require.NoError(t, kv.Set(KeyTheme, "light"))
	require.NoError(t, kv.Set(KeyPalettes, `[{"id":"1","name":"Palette 1","colors":[]}]`))

	reopened := NewFileKV(fs, "/data/state.yml")
	v, ok, err := reopened.Get(KeyTheme)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "light", v)

	v, _, err = reopened.Get(KeyPalettes)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1","name":"Palette 1","colors":[]}]`, v)

	exists, err := afero.Exists(fs, "/data/state.yml.tmp")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFileKV_Delete(t *testing.T) {
	fs := afero.NewMemMapFs()
	kv := NewFileKV(fs, "/state.yml")
	require.NoError(t, kv.Set(KeyCurrentColor, "#FF5733"))
	require.NoError(t, kv.Delete(KeyCurrentColor))

	_, ok, err := NewFileKV(fs, "/state.yml").Get(KeyCurrentColor)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileKV_CorruptFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/state.yml", []byte("- a\n- b\n"), 0644))

	_, _, err := NewFileKV(fs, "/state.yml").Get(KeyTheme)
	assert.Error(t, err)
}

func TestMemKV(t *testing.T) {
	kv := NewMemKV()
	require.NoError(t, kv.Set("a", "1"))
	v, ok, _ := kv.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
	require.NoError(t, kv.Delete("a"))
	_, ok, _ = kv.Get("a")
	assert.False(t, ok)
}
