package state

import (
	"encoding/json"
	"fmt"

	"github.com/example/swatchbook/internal/colormath"
	"github.com/example/swatchbook/internal/palette"
	"github.com/example/swatchbook/internal/storage"
	log "github.com/sirupsen/logrus"
)

// LoadSnapshot reads the persisted state from kv. Absent or unusable values
// fall back to the documented defaults.
func LoadSnapshot(kv storage.KV) (Snapshot, error) {
	snap := Snapshot{CurrentColor: DefaultColor, Theme: ThemeDark, Palettes: []palette.Palette{}}

	if v, ok, err := kv.Get(storage.KeyCurrentColor); err != nil {
		return snap, err
	} else if ok {
		if hex, valid := colormath.Normalize(v); valid {
			snap.CurrentColor = hex
		} else {
			log.WithField("value", v).Warn("ignoring stored colour")
		}
	}

	if v, ok, err := kv.Get(storage.KeyPalettes); err != nil {
		return snap, err
	} else if ok && v != "" {
		var ps []palette.Palette
		if err := json.Unmarshal([]byte(v), &ps); err != nil {
			log.WithError(err).Warn("stored palettes are unreadable, starting empty")
		} else {
			snap.Palettes = ps
		}
	}

	if v, ok, err := kv.Get(storage.KeyActivePaletteID); err != nil {
		return snap, err
	} else if ok {
		snap.ActivePaletteID = v
	}

	if v, ok, err := kv.Get(storage.KeyTheme); err != nil {
		return snap, err
	} else if ok {
		snap.Theme = ParseTheme(v)
	}

	return snap, nil
}

// SaveSnapshot writes the fields selected by fields.
func SaveSnapshot(kv storage.KV, snap Snapshot, fields Field) error {
	if fields.Has(FieldColor) {
		if err := kv.Set(storage.KeyCurrentColor, snap.CurrentColor); err != nil {
			return err
		}
	}
	if fields.Has(FieldPalettes) {
		ps := snap.Palettes
		if ps == nil {
			ps = []palette.Palette{}
		}
		b, err := json.Marshal(ps)
		if err != nil {
			return fmt.Errorf("encode palettes: %w", err)
		}
		if err := kv.Set(storage.KeyPalettes, string(b)); err != nil {
			return err
		}
	}
	if fields.Has(FieldActive) {
		if err := kv.Set(storage.KeyActivePaletteID, snap.ActivePaletteID); err != nil {
			return err
		}
	}
	if fields.Has(FieldTheme) {
		if err := kv.Set(storage.KeyTheme, string(snap.Theme)); err != nil {
			return err
		}
	}
	return nil
}

// BindPersistence restores the store from kv and keeps kv in sync with every
// later change. Write failures are logged; the in-memory state stays
// authoritative.
func BindPersistence(s *Store, kv storage.KV) (*Subscription, error) {
	snap, err := LoadSnapshot(kv)
	if err != nil {
		return nil, err
	}
	s.Restore(snap)

	return s.Subscribe(nil, func(c Change) {
		if err := SaveSnapshot(kv, c.Snapshot, c.Fields); err != nil {
			log.WithError(err).Error("persist state")
		}
	}), nil
}
