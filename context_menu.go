package main

import (
	"github.com/example/swatchbook/internal/export"
	"github.com/example/swatchbook/internal/layout"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/font"
)

// MenuAction describes what action was selected in the context menu
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionExport
	MenuActionAddColor
	MenuActionRename
	MenuActionDeletePalette
)

type menuItem struct {
	label  string
	action MenuAction
	format export.Format
}

// ContextMenu is the export menu opened from a card or from Export All.
type ContextMenu struct {
	visible  bool
	x, y     int
	items    []menuItem
	selected int

	// scope and target palette of the export; target is empty for ScopeAll.
	scope  export.Scope
	target string
}

func NewContextMenu() *ContextMenu {
	return &ContextMenu{selected: -1}
}

func exportItems() []menuItem {
	items := make([]menuItem, 0, len(export.Formats)+2)
	for _, f := range export.Formats {
		items = append(items, menuItem{label: f.Label(), action: MenuActionExport, format: f})
	}
	return items
}

// ShowPalette opens the menu for one palette card.
func (cm *ContextMenu) ShowPalette(x, y int, paletteID string, withEdit bool) {
	items := exportItems()
	if withEdit {
		items = append(items,
			menuItem{label: "Add Current Colour", action: MenuActionAddColor},
			menuItem{label: "Rename", action: MenuActionRename},
			menuItem{label: "Delete Palette", action: MenuActionDeletePalette},
		)
	}
	cm.show(x, y, items, export.ScopePalette, paletteID)
}

// ShowAll opens the menu for exporting every palette.
func (cm *ContextMenu) ShowAll(x, y int) {
	cm.show(x, y, exportItems(), export.ScopeAll, "")
}

func (cm *ContextMenu) show(x, y int, items []menuItem, scope export.Scope, target string) {
	cm.visible = true
	cm.x, cm.y = x, y
	cm.items = items
	cm.selected = -1
	cm.scope = scope
	cm.target = target
}

func (cm *ContextMenu) Hide() {
	cm.visible = false
	cm.selected = -1
}

// Visible reports whether the menu is open.
func (cm *ContextMenu) Visible() bool {
	return cm.visible
}

func (cm *ContextMenu) bounds(screenW, screenH int) layout.Rect {
	r := layout.Rect{X: cm.x, Y: cm.y, W: MenuWidth, H: MenuItemH * len(cm.items)}
	if r.X+r.W > screenW {
		r.X = screenW - r.W - 4
	}
	if r.Y+r.H > screenH {
		r.Y = screenH - r.H - 4
	}
	return r
}

// Update returns the chosen action and its item. Any click or Escape closes
// the menu.
func (cm *ContextMenu) Update(screenW, screenH int) (MenuAction, menuItem) {
	if !cm.visible {
		return MenuActionNone, menuItem{}
	}

	mx, my := ebiten.CursorPosition()
	r := cm.bounds(screenW, screenH)
	cm.selected = -1
	if r.Contains(mx, my) {
		cm.selected = (my - r.Y) / MenuItemH
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		sel := cm.selected
		cm.Hide()
		if sel >= 0 && sel < len(cm.items) {
			return cm.items[sel].action, cm.items[sel]
		}
		return MenuActionNone, menuItem{}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		cm.Hide()
	}
	return MenuActionNone, menuItem{}
}

func (cm *ContextMenu) Draw(screen *ebiten.Image, face font.Face, th *Theme) {
	if !cm.visible {
		return
	}
	r := cm.bounds(screen.Bounds().Dx(), screen.Bounds().Dy())
	bg := layout.Rect{X: r.X - 4, Y: r.Y - 4, W: r.W + 8, H: r.H + 8}
	fillRect(screen, bg, th.MenuBg)
	strokeRect(screen, bg, 1, th.MenuBorder)

	for i, it := range cm.items {
		iy := r.Y + i*MenuItemH
		if cm.selected == i {
			fillRect(screen, layout.Rect{X: r.X, Y: iy, W: r.W, H: MenuItemH}, th.MenuHighlight)
		}
		col := th.Text
		if it.action == MenuActionDeletePalette {
			col = th.Danger
		}
		drawTextAt(screen, face, it.label, r.X+InnerPadding+2, iy+InnerPadding, col)
	}
}
