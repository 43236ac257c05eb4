package main

import (
	"errors"
	"image"
	"path/filepath"

	"github.com/example/swatchbook/internal/config"
	"github.com/example/swatchbook/internal/export"
	"github.com/example/swatchbook/internal/sampler"
	"github.com/example/swatchbook/internal/state"
	"github.com/example/swatchbook/internal/storage"
	"github.com/hajimehoshi/ebiten/v2"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

type imageResult struct {
	bitmap *image.NRGBA
	source string
	file   bool // source is a path worth watching
	err    error
}

type exportResult struct {
	doc export.Document
	err error
}

type Game struct {
	cfg     config.Config
	fs      afero.Fs
	store   *state.Store
	persist *state.Subscription
	saver   *export.Saver

	sampler *SamplerView
	watcher *sampler.Watcher
	board   *Canvas
	ui      *UI

	input       *InputManager
	contextMenu *ContextMenu
	renderer    *Renderer

	layout        screenLayout
	width, height int

	images  chan imageResult
	exports chan exportResult
}

// NewGame restores the persisted state and prepares the window. A state file
// that cannot be read leaves the app running on defaults without persistence.
func NewGame(cfg config.Config, fs afero.Fs) *Game {
	g := &Game{
		cfg:         cfg,
		fs:          fs,
		store:       state.New(),
		saver:       export.NewSaver(fs, dialogPicker{}, cfg.Export.FallbackDir),
		sampler:     NewSamplerView(),
		board:       NewCanvas(),
		ui:          NewUI(),
		input:       NewInputManager(),
		contextMenu: NewContextMenu(),
		renderer:    NewRenderer(),
		width:       cfg.Window.Width,
		height:      cfg.Window.Height,
		images:      make(chan imageResult, 4),
		exports:     make(chan exportResult, 4),
	}
	g.layout = computeLayout(g.width, g.height)

	kv := storage.NewFileKV(fs, cfg.StatePath())
	_, hasTheme, err := kv.Get(storage.KeyTheme)
	if err == nil {
		g.persist, err = state.BindPersistence(g.store, kv)
	}
	if err != nil {
		log.WithError(err).WithField("file", kv.Path()).Error("could not restore state, changes will not be saved")
		g.ui.addClickLog("Could not read saved palettes")
	}
	if !hasTheme {
		g.store.SetTheme(state.ParseTheme(cfg.UI.DefaultTheme))
	}

	if w, err := sampler.NewWatcher(); err != nil {
		log.WithError(err).Warn("image file watching disabled")
	} else {
		g.watcher = w
	}
	return g
}

// Close releases the watcher and the persistence binding.
func (g *Game) Close() error {
	if g.persist != nil {
		g.store.Unsubscribe(g.persist)
	}
	if g.watcher != nil {
		return g.watcher.Close()
	}
	return nil
}

func (g *Game) Update() error {
	g.drain()
	g.ui.Update()
	g.input.Update(g)
	return nil
}

// drain applies finished background work. Only one result of each kind is
// taken per frame.
func (g *Game) drain() {
	select {
	case res := <-g.images:
		g.applyImage(res)
	default:
	}
	select {
	case res := <-g.exports:
		g.finishExport(res)
	default:
	}
	if g.watcher == nil {
		return
	}
	select {
	case path := <-g.watcher.Events():
		log.WithField("file", path).Debug("image changed, reloading")
		g.loadFileAsync(path)
	default:
	}
}

func (g *Game) applyImage(res imageResult) {
	if res.err != nil {
		log.WithError(res.err).WithField("source", res.source).Warn("load image")
		switch {
		case errors.Is(res.err, sampler.ErrNotImage):
			g.ui.addClickLog("Not an image")
		default:
			g.ui.addClickLog("Could not load image")
		}
		return
	}
	g.sampler.Replace(res.bitmap, res.source)
	if g.watcher == nil {
		return
	}
	watch := ""
	if res.file {
		watch = res.source
	}
	if err := g.watcher.Watch(watch); err != nil {
		log.WithError(err).WithField("file", watch).Warn("watch image")
	}
	g.ui.addClickLog("Loaded " + filepath.Base(res.source))
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	// Return the outside dimensions so the logical screen matches window size.
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.layout = computeLayout(g.width, g.height)
	}
	return outsideWidth, outsideHeight
}

func runGUI(cfg config.Config, fs afero.Fs, imagePath string) error {
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(config.AppName)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := NewGame(cfg, fs)
	defer func() {
		if err := g.Close(); err != nil {
			log.WithError(err).Warn("shutdown")
		}
	}()
	if imagePath != "" {
		g.loadFileAsync(imagePath)
	}
	return ebiten.RunGame(g)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}
