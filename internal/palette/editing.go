package palette

import (
	"strings"

	swerr "github.com/example/swatchbook/internal/errors"
)

// StartEditing opens tag editing for one colour, closing any other session.
func (b *Book) StartEditing(id string, index int, currentTag string) error {
	i := b.index(id)
	if i < 0 {
		return swerr.PaletteNotFound(id)
	}
	if index < 0 || index >= len(b.palettes[i].Colors) {
		return swerr.ColorNotFound(id, index)
	}
	b.editing = &EditSession{PaletteID: id, Index: index, Draft: currentTag}
	return nil
}

// Editing returns the open tag edit session, if any.
func (b *Book) Editing() (EditSession, bool) {
	if b.editing == nil {
		return EditSession{}, false
	}
	return *b.editing, true
}

// IsEditing reports whether the colour at (id, index) is in tag edit mode.
func (b *Book) IsEditing(id string, index int) bool {
	return b.editing != nil && b.editing.PaletteID == id && b.editing.Index == index
}

// SetDraft replaces the draft tag of the open session.
func (b *Book) SetDraft(draft string) {
	if b.editing != nil {
		b.editing.Draft = draft
	}
}

// CommitEditing stores the trimmed draft as the colour's tag. An empty draft
// is rejected and the session stays open.
func (b *Book) CommitEditing() bool {
	if b.editing == nil {
		return false
	}
	draft := strings.TrimSpace(b.editing.Draft)
	if draft == "" {
		return false
	}
	i := b.index(b.editing.PaletteID)
	if i < 0 || b.editing.Index >= len(b.palettes[i].Colors) {
		b.editing = nil
		return false
	}
	b.palettes[i].Colors[b.editing.Index].Tag = draft
	b.editing = nil
	return true
}

// CancelEditing discards the draft without touching the stored tag.
func (b *Book) CancelEditing() {
	b.editing = nil
}

// StartRenaming opens name editing for a palette.
func (b *Book) StartRenaming(id string) error {
	i := b.index(id)
	if i < 0 {
		return swerr.PaletteNotFound(id)
	}
	b.renaming = &RenameSession{PaletteID: id, Draft: b.palettes[i].Name}
	return nil
}

// Renaming returns the open rename session, if any.
func (b *Book) Renaming() (RenameSession, bool) {
	if b.renaming == nil {
		return RenameSession{}, false
	}
	return *b.renaming, true
}

// SetNameDraft replaces the draft name of the open rename session.
func (b *Book) SetNameDraft(draft string) {
	if b.renaming != nil {
		b.renaming.Draft = draft
	}
}

// CommitRenaming applies the draft name. Empty drafts keep the session open.
func (b *Book) CommitRenaming() bool {
	if b.renaming == nil {
		return false
	}
	ok, err := b.RenamePalette(b.renaming.PaletteID, b.renaming.Draft)
	if err != nil {
		b.renaming = nil
		return false
	}
	return ok
}

// CancelRenaming leaves rename mode without changing the name.
func (b *Book) CancelRenaming() {
	b.renaming = nil
}
