package main

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/example/swatchbook/internal/colormath"
	swerr "github.com/example/swatchbook/internal/errors"
	"github.com/example/swatchbook/internal/export"
	"github.com/example/swatchbook/internal/layout"
	"github.com/example/swatchbook/internal/palette"
	"github.com/example/swatchbook/internal/sampler"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	log "github.com/sirupsen/logrus"
)

type editMode int

const (
	editNone editMode = iota
	editHex
	editTag
	editName
)

// textField is the single focused line editor.
type textField struct {
	buf   []rune
	caret int
	blink int
}

func (f *textField) Reset(s string) {
	f.buf = []rune(s)
	f.caret = len(f.buf)
	f.blink = 0
}

func (f *textField) String() string {
	return string(f.buf)
}

func (f *textField) caretVisible() bool {
	return (f.blink/30)%2 == 0
}

func (f *textField) insert(rs []rune) {
	if len(rs) == 0 {
		return
	}
	out := make([]rune, 0, len(f.buf)+len(rs))
	out = append(out, f.buf[:f.caret]...)
	out = append(out, rs...)
	out = append(out, f.buf[f.caret:]...)
	f.buf = out
	f.caret += len(rs)
	f.blink = 0
}

// repeated reports a key press plus auto-repeat after half a second.
func repeated(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d >= 30 && (d-30)%3 == 0)
}

func ctrlHeld() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
}

// Update applies this frame's keys and reports Enter or Escape.
func (f *textField) Update() (commit, cancel bool) {
	f.blink++
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		return true, false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return false, true
	}
	if ctrlHeld() {
		if inpututil.IsKeyJustPressed(ebiten.KeyV) {
			s, err := clipboard.ReadAll()
			if err != nil {
				log.WithError(err).Debug("clipboard read failed")
				return false, false
			}
			line, _, _ := strings.Cut(s, "\n")
			f.insert([]rune(strings.TrimSpace(line)))
		}
		return false, false
	}

	f.insert(ebiten.AppendInputChars(nil))

	switch {
	case repeated(ebiten.KeyBackspace) && f.caret > 0:
		f.buf = append(f.buf[:f.caret-1], f.buf[f.caret:]...)
		f.caret--
		f.blink = 0
	case repeated(ebiten.KeyDelete) && f.caret < len(f.buf):
		f.buf = append(f.buf[:f.caret], f.buf[f.caret+1:]...)
		f.blink = 0
	case repeated(ebiten.KeyArrowLeft) && f.caret > 0:
		f.caret--
		f.blink = 0
	case repeated(ebiten.KeyArrowRight) && f.caret < len(f.buf):
		f.caret++
		f.blink = 0
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		f.caret = 0
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		f.caret = len(f.buf)
	}
	return false, false
}

// InputManager turns mouse and keyboard input into store operations. It owns
// the focused text field and the active slider; the Canvas owns drag state
// and the ContextMenu its own visibility.
type InputManager struct {
	editing editMode
	field   textField

	slider int // channel being dragged, -1 when none
}

func NewInputManager() *InputManager {
	return &InputManager{slider: -1}
}

// Update handles one frame of input.
func (im *InputManager) Update(g *Game) {
	if g.contextMenu.Visible() {
		im.handleMenu(g)
		return
	}

	if im.editing != editNone {
		im.handleField(g)
	} else {
		im.handleShortcuts(g)
	}
	im.handleDroppedFiles(g)

	mx, my := ebiten.CursorPosition()
	if _, wy := ebiten.Wheel(); wy != 0 && g.layout.Board.Contains(mx, my) {
		g.board.ScrollBy(wy)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		im.blur(g)
		im.handlePress(g, mx, my)
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if im.slider >= 0 {
			im.dragSlider(g, mx)
		}
		g.board.Drag(mx, my)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		im.slider = -1
		im.handleRelease(g, mx, my)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		if _, id, ok := g.board.CardAt(g.layout.Board, mx, my); ok {
			g.contextMenu.ShowPalette(mx, my, id, true)
		}
	}

	g.sampler.Hover(g.layout.Sampler, mx, my, g.store.Theme().Dark())
}

func (im *InputManager) handleMenu(g *Game) {
	action, item := g.contextMenu.Update(g.width, g.height)
	switch action {
	case MenuActionExport:
		g.startExport(item.format, g.contextMenu.scope, g.contextMenu.target)
	case MenuActionAddColor:
		im.addColor(g, g.contextMenu.target)
	case MenuActionRename:
		im.startRenaming(g, g.contextMenu.target)
	case MenuActionDeletePalette:
		im.deletePalette(g, g.contextMenu.target)
	}
}

func (im *InputManager) handleShortcuts(g *Game) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.board.Cancel()
		im.slider = -1
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.store.CycleActive()
		return
	}
	if !ctrlHeld() {
		return
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyV):
		g.pasteImage()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		im.saveColor(g)
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		p := g.store.CreatePalette()
		g.ui.addClickLog("Created " + p.Name)
	}
}

func (im *InputManager) handleField(g *Game) {
	commit, cancel := im.field.Update()
	switch im.editing {
	case editTag:
		g.store.SetDraft(im.field.String())
	case editName:
		g.store.SetNameDraft(im.field.String())
	}
	switch {
	case commit:
		im.commit(g)
	case cancel:
		im.cancel(g)
	}
}

func (im *InputManager) startHex(g *Game) {
	im.editing = editHex
	im.field.Reset(g.store.CurrentColor())
}

func (im *InputManager) startTag(g *Game, paletteID string, index int, tag string) {
	if err := g.store.StartEditing(paletteID, index, tag); err != nil {
		log.WithError(err).Warn("start editing tag")
		return
	}
	im.editing = editTag
	im.field.Reset(tag)
}

func (im *InputManager) startRenaming(g *Game, paletteID string) {
	p, ok := g.store.Palette(paletteID)
	if !ok {
		return
	}
	if err := g.store.StartRenaming(paletteID); err != nil {
		log.WithError(err).Warn("start renaming")
		return
	}
	im.editing = editName
	im.field.Reset(p.Name)
}

// commit applies the field. The field stays focused when the store rejects
// the draft.
func (im *InputManager) commit(g *Game) bool {
	switch im.editing {
	case editHex:
		hex, ok := colormath.Normalize(strings.TrimSpace(im.field.String()))
		if !ok {
			g.ui.addClickLog("Not a hex colour: " + im.field.String())
			im.editing = editNone
			return true
		}
		g.store.SetColor(hex)
	case editTag:
		if !g.store.CommitEditing() {
			return false
		}
	case editName:
		if !g.store.CommitRenaming() {
			return false
		}
	}
	im.editing = editNone
	return true
}

func (im *InputManager) cancel(g *Game) {
	switch im.editing {
	case editTag:
		g.store.CancelEditing()
	case editName:
		g.store.CancelRenaming()
	}
	im.editing = editNone
}

// syncSession drops focus when the store closed the session behind the field.
func (im *InputManager) syncSession(g *Game) {
	switch im.editing {
	case editTag:
		if _, ok := g.store.Editing(); !ok {
			im.editing = editNone
		}
	case editName:
		if _, ok := g.store.Renaming(); !ok {
			im.editing = editNone
		}
	}
}

// blur commits the focused field when the user clicks elsewhere.
func (im *InputManager) blur(g *Game) {
	if im.editing == editNone {
		return
	}
	mx, my := ebiten.CursorPosition()
	if im.onField(g, mx, my) {
		return
	}
	im.commit(g)
}

func (im *InputManager) onField(g *Game, x, y int) bool {
	switch im.editing {
	case editHex:
		return g.layout.Rows[0].Contains(x, y)
	case editTag:
		s, ok := g.store.Editing()
		if !ok {
			return false
		}
		i, _, ok := g.board.CardAt(g.layout.Board, x, y)
		if !ok || g.board.ids[i] != s.PaletteID {
			return false
		}
		return g.board.cards[i].Swatch(s.Index).Tag.Contains(x, y)
	case editName:
		s, ok := g.store.Renaming()
		if !ok {
			return false
		}
		i, id, ok := g.board.CardAt(g.layout.Board, x, y)
		return ok && id == s.PaletteID && g.board.cards[i].Name.Contains(x, y)
	}
	return false
}

func (im *InputManager) handlePress(g *Game, mx, my int) {
	if im.editing != editNone && im.onField(g, mx, my) {
		return
	}
	l := g.layout
	switch {
	case l.NewPalette.Contains(mx, my):
		p := g.store.CreatePalette()
		g.ui.addClickLog("Created " + p.Name)
		return
	case l.ExportAll.Contains(mx, my):
		g.contextMenu.ShowAll(l.ExportAll.X, l.ExportAll.Y+l.ExportAll.H+4)
		return
	case l.ThemeToggle.Contains(mx, my):
		g.store.ToggleTheme()
		return
	case l.Selector.Contains(mx, my):
		g.store.CycleActive()
		return
	case l.SaveColor.Contains(mx, my):
		im.saveColor(g)
		return
	case l.OpenImage.Contains(mx, my):
		g.openImage()
		return
	}

	cur := g.store.CurrentColor()
	values := [3]string{cur, colormath.HexToRGB(cur), colormath.HexToHSL(cur)}
	names := [3]string{"HEX", "RGB", "HSL"}
	for i := range l.Rows {
		if l.CopyChips[i].Contains(mx, my) {
			g.ui.copyToClipboard(names[i], values[i])
			return
		}
		if l.Rows[i].Contains(mx, my) {
			if i == 0 {
				im.startHex(g)
				return
			}
			g.ui.copyToClipboard(names[i], values[i])
			return
		}
	}
	for i, s := range l.Sliders {
		hit := layout.Rect{X: s.X, Y: s.Y - 4, W: s.W, H: s.H + 8}
		if hit.Contains(mx, my) {
			im.slider = i
			im.dragSlider(g, mx)
			return
		}
	}

	if hex, ok := g.sampler.Pick(l.Sampler, mx, my); ok {
		g.store.SetColor(hex)
		return
	}

	im.pressBoard(g, mx, my)
}

func (im *InputManager) pressBoard(g *Game, mx, my int) {
	ci, id, ok := g.board.CardAt(g.layout.Board, mx, my)
	if !ok {
		return
	}
	card := g.board.cards[ci]
	switch card.HitHeader(mx, my) {
	case layout.HeaderName:
		im.startRenaming(g, id)
		return
	case layout.HeaderExport:
		g.contextMenu.ShowPalette(card.Export.X, card.Export.Y+card.Export.H+4, id, false)
		return
	case layout.HeaderDelete:
		im.deletePalette(g, id)
		return
	}

	p, ok := g.store.Palette(id)
	if !ok {
		return
	}
	idx, part := card.HitSwatch(mx, my)
	if idx < 0 || idx >= len(p.Colors) {
		return
	}
	c := p.Colors[idx]
	switch part {
	case layout.PartCopy:
		g.ui.copyToClipboard(c.Tag, c.Color)
	case layout.PartDelete:
		if err := g.store.DeleteColor(id, idx); err != nil {
			log.WithError(err).Warn("delete colour")
		}
		im.syncSession(g)
	case layout.PartTag:
		im.startTag(g, id, idx, c.Tag)
	case layout.PartBody:
		g.board.Press(palette.DragItem{PaletteID: id, Index: idx, Color: c}, mx, my)
	}
}

func (im *InputManager) handleRelease(g *Game, mx, my int) {
	zone, hasZone := g.board.DropTarget(g.layout.Board, mx, my)
	item, dragged, ok := g.board.Release()
	if !ok {
		return
	}
	if !dragged {
		g.store.SetColor(item.Color.Color)
		return
	}
	if !hasZone {
		return
	}
	switch err := g.store.Drop(item, zone); {
	case swerr.IsValidationError(err):
		g.ui.addClickLog(item.Color.Color + " is already in that palette")
	case err != nil:
		log.WithError(err).Warn("drop colour")
	}
	im.syncSession(g)
}

func (im *InputManager) dragSlider(g *Game, mx int) {
	s := g.layout.Sliders[im.slider]
	v := float64(mx-s.X) / float64(s.W) * 255
	v = max(0, min(255, v))

	r, gr, b, ok := colormath.RGBChannels(g.store.CurrentColor())
	if !ok {
		return
	}
	ch := [3]uint8{r, gr, b}
	ch[im.slider] = uint8(v + 0.5)
	g.store.SetColor(colormath.FromRGB(ch[0], ch[1], ch[2]))
}

func (im *InputManager) saveColor(g *Game) {
	if g.store.SaveColor() {
		g.ui.addClickLog("Saved " + g.store.CurrentColor())
		return
	}
	g.ui.addClickLog(g.store.CurrentColor() + " is already in this palette")
}

// addColor copies the current colour into palette id unless it is already there.
func (im *InputManager) addColor(g *Game, id string) {
	hex := g.store.CurrentColor()
	added, err := g.store.AddColorToPalette(id, palette.SavedColor{Color: hex})
	switch {
	case err != nil:
		log.WithError(err).Warn("add colour")
	case added:
		g.ui.addClickLog("Added " + hex)
	default:
		g.ui.addClickLog(hex + " is already in that palette")
	}
}

func (im *InputManager) deletePalette(g *Game, id string) {
	p, ok := g.store.Palette(id)
	if !ok {
		return
	}
	if err := g.store.DeletePalette(id); err != nil {
		log.WithError(err).Warn("delete palette")
		return
	}
	im.syncSession(g)
	g.ui.addClickLog("Deleted " + p.Name)
}

// handleDroppedFiles loads the first image dropped on the window.
func (im *InputManager) handleDroppedFiles(g *Game) {
	files := ebiten.DroppedFiles()
	if files == nil {
		return
	}
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		log.WithError(err).Warn("read dropped files")
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := fs.ReadFile(files, e.Name())
		if err != nil {
			log.WithError(err).WithField("file", e.Name()).Warn("read dropped file")
			continue
		}
		g.decodeAsync(data, e.Name())
		return
	}
}

// openImage runs the open dialog on the update goroutine and decodes the
// chosen file in the background.
func (g *Game) openImage() {
	path, err := openImageDialog()
	if err != nil {
		if !errors.Is(err, swerr.ErrCancelled) {
			log.WithError(err).Warn("open image dialog")
			g.ui.addClickLog("Could not open file")
		}
		return
	}
	g.loadFileAsync(path)
}

func (g *Game) loadFileAsync(path string) {
	go func() {
		bm, err := sampler.ReadFile(g.fs, path)
		g.images <- imageResult{bitmap: bm, source: path, file: true, err: err}
	}()
}

func (g *Game) decodeAsync(data []byte, name string) {
	go func() {
		bm, err := sampler.Decode(data)
		g.images <- imageResult{bitmap: bm, source: name, err: err}
	}()
}

// pasteImage reads the clipboard in the background. It accepts a data URL
// or the path of an image file.
func (g *Game) pasteImage() {
	go func() {
		text, err := clipboard.ReadAll()
		if err != nil {
			g.images <- imageResult{err: err}
			return
		}
		bm, source, err := sampler.ReadClipboardText(g.fs, text)
		g.images <- imageResult{bitmap: bm, source: source, file: source != "clipboard", err: err}
	}()
}

// startExport renders in the background; the save prompt runs when the
// result arrives in Update.
func (g *Game) startExport(f export.Format, scope export.Scope, paletteID string) {
	palettes := g.store.Snapshot().Palettes
	if scope == export.ScopePalette {
		p, ok := g.store.Palette(paletteID)
		if !ok {
			return
		}
		palettes = []palette.Palette{p}
	}
	dark := g.store.Theme().Dark()
	go func() {
		doc, err := export.Render(f, scope, palettes, dark)
		g.exports <- exportResult{doc: doc, err: err}
	}()
}

func (g *Game) finishExport(res exportResult) {
	if res.err != nil {
		log.WithError(res.err).Error("render export")
		g.ui.addClickLog("Export failed")
		return
	}
	path, err := g.saver.Save(context.Background(), res.doc)
	if err != nil {
		if !swerr.IsCancelled(err) {
			log.WithError(err).WithField("file", res.doc.Name).Error("save export")
			g.ui.addClickLog("Export failed")
		}
		return
	}
	log.WithField("file", path).Info("exported")
	g.ui.addClickLog("Saved " + filepath.Base(path))
}
