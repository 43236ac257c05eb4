package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := NewLoader(afero.NewMemMapFs()).Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultDataDir(), cfg.DataDir)
	assert.Equal(t, DefaultDownloadsDir(), cfg.Export.FallbackDir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Log.File)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 800, cfg.Window.Height)
	assert.Equal(t, "dark", cfg.UI.DefaultTheme)
	assert.Empty(t, cfg.File)
	assert.Equal(t, filepath.Join(cfg.DataDir, "state.yml"), cfg.StatePath())
}

func TestFileOverridesDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/sb.yaml", []byte(`
data_dir: /data
export:
  fallback_dir: /exports
window:
  width: 1024
ui:
  default_theme: light
`), 0o644))

	cfg, err := NewLoader(fs).Load("/etc/sb.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/data", cfg.DataDir)
	assert.Equal(t, "/exports", cfg.Export.FallbackDir)
	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 800, cfg.Window.Height)
	assert.Equal(t, "light", cfg.UI.DefaultTheme)
	assert.Equal(t, "/etc/sb.yaml", cfg.File)
}

func TestDefaultFileInConfigDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := filepath.Join(Dir(), FileName)
	require.NoError(t, afero.WriteFile(fs, path, []byte("log:\n  level: debug\n"), 0o644))

	cfg, err := NewLoader(fs).Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, path, cfg.File)
}

func TestEnvOverridesFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/sb.yaml", []byte("data_dir: /from-file\n"), 0o644))
	t.Setenv("SWATCHBOOK_DATA_DIR", "/from-env")
	t.Setenv("SWATCHBOOK_WINDOW_HEIGHT", "600")

	cfg, err := NewLoader(fs).Load("/sb.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/from-env", cfg.DataDir)
	assert.Equal(t, 600, cfg.Window.Height)
}

func TestFlagOverridesEverything(t *testing.T) {
	t.Setenv("SWATCHBOOK_LOG_LEVEL", "warn")
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "info", "")
	require.NoError(t, flags.Parse([]string{"--log-level", "trace"}))

	l := NewLoader(afero.NewMemMapFs())
	require.NoError(t, l.BindFlag(KeyLogLevel, flags.Lookup("log-level")))
	cfg, err := l.Load("")
	require.NoError(t, err)
	assert.Equal(t, "trace", cfg.Log.Level)

	assert.Error(t, l.BindFlag(KeyLogLevel, flags.Lookup("missing")))
}

func TestMissingExplicitFile(t *testing.T) {
	_, err := NewLoader(afero.NewMemMapFs()).Load("/nope.yaml")
	assert.Error(t, err)
}

func TestInvalidWindowSize(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/sb.yaml", []byte("window:\n  width: 0\n"), 0o644))
	_, err := NewLoader(fs).Load("/sb.yaml")
	assert.Error(t, err)
}

func TestEnvKeyReplacer(t *testing.T) {
	assert.Equal(t, "export_fallback_dir", EnvKeyReplacer.Replace(KeyFallbackDir))
}
