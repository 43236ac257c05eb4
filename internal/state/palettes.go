package state

import "github.com/example/swatchbook/internal/palette"

// ActiveID returns the palette targeted by SaveColor.
func (s *Store) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.ActiveID()
}

// Palette returns a copy of one palette.
func (s *Store) Palette(id string) (palette.Palette, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.Palette(id)
}

// SetActive changes the active palette.
func (s *Store) SetActive(id string) (err error) {
	s.mutate(func(b *palette.Book) Field {
		err = b.SetActive(id)
		return 0
	})
	return err
}

// CycleActive activates the palette after the current one, wrapping around.
func (s *Store) CycleActive() {
	s.mutate(func(b *palette.Book) Field {
		ps := b.Palettes()
		if len(ps) == 0 {
			return 0
		}
		next := 0
		for i, p := range ps {
			if p.ID == b.ActiveID() {
				next = (i + 1) % len(ps)
				break
			}
		}
		_ = b.SetActive(ps[next].ID)
		return 0
	})
}

// CreatePalette appends a new empty palette and activates it.
func (s *Store) CreatePalette() (p palette.Palette) {
	s.mutate(func(b *palette.Book) Field {
		p = b.CreatePalette()
		return FieldPalettes
	})
	return p
}

// DeletePalette removes a palette.
func (s *Store) DeletePalette(id string) (err error) {
	s.mutate(func(b *palette.Book) Field {
		if err = b.DeletePalette(id); err != nil {
			return 0
		}
		return FieldPalettes
	})
	return err
}

// RenamePalette renames a palette; blank names are ignored.
func (s *Store) RenamePalette(id, name string) (changed bool, err error) {
	s.mutate(func(b *palette.Book) Field {
		changed, err = b.RenamePalette(id, name)
		if !changed {
			return 0
		}
		return FieldPalettes
	})
	return changed, err
}

// SaveColor stores the current colour in the active palette.
func (s *Store) SaveColor() (added bool) {
	s.mutate(func(b *palette.Book) Field {
		added = b.SaveColor(s.color)
		if !added {
			return 0
		}
		return FieldPalettes
	})
	return added
}

// AddColorToPalette appends a copy of c to a palette.
func (s *Store) AddColorToPalette(id string, c palette.SavedColor) (added bool, err error) {
	s.mutate(func(b *palette.Book) Field {
		added, err = b.AddColorToPalette(id, c)
		if !added {
			return 0
		}
		return FieldPalettes
	})
	return added, err
}

// DeleteColor removes one colour.
func (s *Store) DeleteColor(id string, index int) (err error) {
	s.mutate(func(b *palette.Book) Field {
		if err = b.DeleteColor(id, index); err != nil {
			return 0
		}
		return FieldPalettes
	})
	return err
}

// MoveColor moves a colour within or across palettes as one change.
func (s *Store) MoveColor(srcID string, srcIndex int, dstID string, dstIndex int) (err error) {
	s.mutate(func(b *palette.Book) Field {
		if err = b.MoveColor(srcID, srcIndex, dstID, dstIndex); err != nil {
			return 0
		}
		return FieldPalettes
	})
	return err
}

// Drop applies a finished drag to the gap it ended on.
func (s *Store) Drop(item palette.DragItem, zone palette.DropZone) (err error) {
	s.mutate(func(b *palette.Book) Field {
		if err = b.Drop(item, zone); err != nil {
			return 0
		}
		return FieldPalettes
	})
	return err
}

// StartEditing opens tag editing for a colour.
func (s *Store) StartEditing(id string, index int, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.StartEditing(id, index, tag)
}

// Editing returns the open tag edit session.
func (s *Store) Editing() (palette.EditSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.Editing()
}

// SetDraft updates the tag draft.
func (s *Store) SetDraft(draft string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.book.SetDraft(draft)
}

// CommitEditing stores the draft tag; blank drafts are rejected.
func (s *Store) CommitEditing() (ok bool) {
	s.mutate(func(b *palette.Book) Field {
		if ok = b.CommitEditing(); !ok {
			return 0
		}
		return FieldPalettes
	})
	return ok
}

// CancelEditing discards the tag draft.
func (s *Store) CancelEditing() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.book.CancelEditing()
}

// StartRenaming opens name editing for a palette.
func (s *Store) StartRenaming(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.StartRenaming(id)
}

// Renaming returns the open rename session.
func (s *Store) Renaming() (palette.RenameSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.Renaming()
}

// SetNameDraft updates the palette name draft.
func (s *Store) SetNameDraft(draft string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.book.SetNameDraft(draft)
}

// CommitRenaming applies the name draft; blank drafts are rejected.
func (s *Store) CommitRenaming() (ok bool) {
	s.mutate(func(b *palette.Book) Field {
		if ok = b.CommitRenaming(); !ok {
			return 0
		}
		return FieldPalettes
	})
	return ok
}

// CancelRenaming leaves rename mode.
func (s *Store) CancelRenaming() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.book.CancelRenaming()
}
