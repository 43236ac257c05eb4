package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/example/swatchbook/internal/config"
	swerr "github.com/example/swatchbook/internal/errors"
	"github.com/example/swatchbook/internal/export"
	"github.com/example/swatchbook/internal/fsys"
	"github.com/example/swatchbook/internal/logging"
	"github.com/example/swatchbook/internal/palette"
	"github.com/example/swatchbook/internal/state"
	"github.com/example/swatchbook/internal/storage"
	"github.com/example/swatchbook/internal/termview"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// app carries what every command needs once flags are parsed.
type app struct {
	fs      afero.Fs
	loader  *config.Loader
	cfgPath string

	cfg      config.Config
	closeLog func() error
}

func newRootCmd() *cobra.Command {
	a := &app{fs: fsys.FS()}
	a.loader = config.NewLoader(a.fs)

	root := &cobra.Command{
		Use:           config.AppName + " [image]",
		Short:         "Pick colours from the screen or an image and keep them in palettes",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.closeLog == nil {
				return nil
			}
			return a.closeLog()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			image := ""
			if len(args) == 1 {
				image = args[0]
			}
			return runGUI(a.cfg, a.fs, image)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "config file (default "+filepath.Join(config.Dir(), config.FileName)+")")
	pf.String("data-dir", "", "directory holding the saved state")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	lo.Must0(a.loader.BindFlag(config.KeyDataDir, pf.Lookup("data-dir")))
	lo.Must0(a.loader.BindFlag(config.KeyLogLevel, pf.Lookup("log-level")))

	root.AddCommand(newExportCmd(a), newListCmd(a))
	return root
}

func (a *app) setup() error {
	cfg, err := a.loader.Load(a.cfgPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.closeLog, err = logging.Setup(a.fs, logging.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	log.WithFields(log.Fields{"config": cfg.File, "data": cfg.DataDir}).Debug("configured")
	return nil
}

// snapshot reads the saved state without binding a store to it.
func (a *app) snapshot() (state.Snapshot, error) {
	kv := storage.NewFileKV(a.fs, a.cfg.StatePath())
	snap, err := state.LoadSnapshot(kv)
	if err != nil {
		return state.Snapshot{}, err
	}
	s := state.New()
	s.Restore(snap)
	return s.Snapshot(), nil
}

// findPalette matches an id exactly, then a name ignoring case.
func findPalette(palettes []palette.Palette, ref string) (palette.Palette, error) {
	if p, ok := lo.Find(palettes, func(p palette.Palette) bool { return p.ID == ref }); ok {
		return p, nil
	}
	if p, ok := lo.Find(palettes, func(p palette.Palette) bool { return strings.EqualFold(p.Name, ref) }); ok {
		return p, nil
	}
	return palette.Palette{}, swerr.PaletteNotFound(ref)
}

func newExportCmd(a *app) *cobra.Command {
	var (
		formatName string
		ref        string
		out        string
		themeName  string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write one palette, or all of them, to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(formatName)
			if err != nil {
				return err
			}
			snap, err := a.snapshot()
			if err != nil {
				return err
			}

			scope := export.ScopeAll
			palettes := snap.Palettes
			if ref != "" {
				p, err := findPalette(snap.Palettes, ref)
				if err != nil {
					return err
				}
				scope = export.ScopePalette
				palettes = []palette.Palette{p}
			}

			theme := snap.Theme
			if themeName != "" {
				theme = state.ParseTheme(themeName)
			}
			doc, err := export.Render(f, scope, palettes, theme.Dark())
			if err != nil {
				return err
			}

			path, err := a.write(doc, out)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&formatName, "format", "f", "json", "json, css, scss, txt or png")
	cmd.Flags().StringVarP(&ref, "palette", "p", "", "palette id or name (default: all palettes)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file or directory (default: the export fallback directory)")
	cmd.Flags().StringVar(&themeName, "theme", "", "png sheet theme: dark or light (default: the saved theme)")
	lo.Must0(cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(export.Formats, func(f export.Format, _ int) string { return f.String() }), cobra.ShellCompDirectiveNoFileComp
	}))
	return cmd
}

// write stores doc at out, inside out when it is a directory, or in the
// fallback directory when out is empty.
func (a *app) write(doc export.Document, out string) (string, error) {
	if out == "" {
		return export.NewSaver(a.fs, nil, a.cfg.Export.FallbackDir).Save(context.Background(), doc)
	}
	if dir, err := afero.IsDir(a.fs, out); err == nil && dir {
		return export.NewSaver(a.fs, nil, out).Save(context.Background(), doc)
	}
	if err := a.fs.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return "", err
	}
	if err := afero.WriteFile(a.fs, out, doc.Data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", out, err)
	}
	return out, nil
}

func newListCmd(a *app) *cobra.Command {
	var details bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the saved palettes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := a.snapshot()
			if err != nil {
				return err
			}
			p := termview.NewPrinter(cmd.OutOrStdout())
			p.Details = details
			return p.Print(snap.Palettes, snap.ActivePaletteID)
		},
	}
	cmd.Flags().BoolVarP(&details, "details", "d", false, "show rgb and hsl for every colour")
	return cmd
}
