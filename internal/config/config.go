// Package config loads swatchbook settings from defaults, an optional yaml
// file, SWATCHBOOK_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	AppName   = "swatchbook"
	EnvPrefix = "SWATCHBOOK"
	FileName  = "swatchbook.yaml"
	StateFile = "state.yml"
)

// Keys.
const (
	KeyDataDir      = "data_dir"
	KeyFallbackDir  = "export.fallback_dir"
	KeyLogLevel     = "log.level"
	KeyLogFile      = "log.file"
	KeyWindowWidth  = "window.width"
	KeyWindowHeight = "window.height"
	KeyDefaultTheme = "ui.default_theme"
)

// EnvKeyReplacer maps nested keys onto environment variable names.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Config is the resolved configuration.
type Config struct {
	DataDir string `mapstructure:"data_dir"`
	Export  struct {
		FallbackDir string `mapstructure:"fallback_dir"`
	} `mapstructure:"export"`
	Log struct {
		Level string `mapstructure:"level"`
		File  string `mapstructure:"file"`
	} `mapstructure:"log"`
	Window struct {
		Width  int `mapstructure:"width"`
		Height int `mapstructure:"height"`
	} `mapstructure:"window"`
	UI struct {
		DefaultTheme string `mapstructure:"default_theme"`
	} `mapstructure:"ui"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

// StatePath is the location of the persisted state.
func (c Config) StatePath() string {
	return filepath.Join(c.DataDir, StateFile)
}

// Defaults returns the built-in values for every key.
func Defaults() map[string]any {
	return map[string]any{
		KeyDataDir:      DefaultDataDir(),
		KeyFallbackDir:  DefaultDownloadsDir(),
		KeyLogLevel:     "info",
		KeyLogFile:      "",
		KeyWindowWidth:  1280,
		KeyWindowHeight: 800,
		KeyDefaultTheme: "dark",
	}
}

// Dir is the per-user configuration directory.
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(base, AppName)
}

// DefaultDataDir is where state.yml lives unless data_dir is set.
func DefaultDataDir() string {
	return Dir()
}

// DefaultDownloadsDir is the export fallback directory, ~/Downloads.
func DefaultDownloadsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Downloads")
}

// Loader resolves a Config.
type Loader struct {
	v *viper.Viper
}

// NewLoader prepares a loader reading files from fs.
func NewLoader(fs afero.Fs) *Loader {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(EnvKeyReplacer)

	v.SetTypeByDefaultValue(true)
	for k, val := range Defaults() {
		v.SetDefault(k, val)
		v.MustBindEnv(k)
	}
	return &Loader{v: v}
}

// BindFlag lets a command-line flag override key when it is set.
func (l *Loader) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("bind %s: nil flag", key)
	}
	return l.v.BindPFlag(key, flag)
}

// Load reads the config file at path, or swatchbook.yaml in Dir() when path
// is empty. A missing default file is not an error; a missing explicit file
// is.
func (l *Loader) Load(path string) (Config, error) {
	if path != "" {
		l.v.SetConfigFile(path)
	} else {
		l.v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		l.v.AddConfigPath(Dir())
	}

	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = l.v.ConfigFileUsed()
	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		return Config{}, fmt.Errorf("invalid window size %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	return cfg, nil
}
