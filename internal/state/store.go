// Package state is the application's single reactive state container. Every
// mutation publishes a Change naming the fields it touched; subscribers such
// as the persistence binding react to it.
package state

import (
	"sync"

	"github.com/example/swatchbook/internal/palette"
)

// DefaultColor is the colour shown on first start.
const DefaultColor = "#FF5733"

// Theme selects the dark or light UI.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme maps a stored value to a Theme. Anything but "light" is dark.
func ParseTheme(s string) Theme {
	if s == string(ThemeLight) {
		return ThemeLight
	}
	return ThemeDark
}

// Dark reports whether t is the dark theme.
func (t Theme) Dark() bool {
	return t != ThemeLight
}

// Field is a bitmask of state slices.
type Field uint8

const (
	FieldColor Field = 1 << iota
	FieldPalettes
	FieldActive
	FieldTheme
)

// Has reports whether f includes other.
func (f Field) Has(other Field) bool {
	return f&other != 0
}

// Snapshot is a deep copy of the persisted state.
type Snapshot struct {
	CurrentColor    string
	Palettes        []palette.Palette
	ActivePaletteID string
	Theme           Theme
}

// ActivePalette returns the active palette of the snapshot.
func (s Snapshot) ActivePalette() (palette.Palette, bool) {
	for _, p := range s.Palettes {
		if p.ID == s.ActivePaletteID {
			return p, true
		}
	}
	return palette.Palette{}, false
}

// Change is published after a mutation completes.
type Change struct {
	Fields   Field
	Snapshot Snapshot
}

// Handler processes a change.
type Handler func(Change)

// Filter decides whether a change is delivered to a subscription.
type Filter func(Change) bool

// OnFields returns a filter matching changes that touch any of fields.
func OnFields(fields Field) Filter {
	return func(c Change) bool {
		return c.Fields.Has(fields)
	}
}

// Subscription is a registered handler.
type Subscription struct {
	id      int
	filter  Filter
	handler Handler
}

// Store owns the palette book, the current colour and the theme. Handlers run
// synchronously on the goroutine that made the change, after the store lock is
// released, in subscription order.
type Store struct {
	mu    sync.Mutex
	book  *palette.Book
	color string
	theme Theme

	subs   []*Subscription
	nextID int
}

// New returns a store holding defaults.
func New() *Store {
	return &Store{
		book:  palette.NewBook(),
		color: DefaultColor,
		theme: ThemeDark,
	}
}

// Subscribe registers handler for changes accepted by filter (nil accepts all).
func (s *Store) Subscribe(filter Filter, handler Handler) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	sub := &Subscription{id: s.nextID, filter: filter, handler: handler}
	s.subs = append(s.subs, sub)
	return sub
}

// Unsubscribe removes a subscription.
func (s *Store) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, cur := range s.subs {
		if cur.id == sub.id {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			return
		}
	}
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		CurrentColor:    s.color,
		Palettes:        s.book.Palettes(),
		ActivePaletteID: s.book.ActiveID(),
		Theme:           s.theme,
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// mutate runs fn under the lock and publishes the fields it reports.
// Changes to the active id are detected automatically.
func (s *Store) mutate(fn func(b *palette.Book) Field) {
	s.mu.Lock()
	activeBefore := s.book.ActiveID()
	fields := fn(s.book)
	if s.book.ActiveID() != activeBefore {
		fields |= FieldActive
	}
	if fields == 0 {
		s.mu.Unlock()
		return
	}
	change := Change{Fields: fields, Snapshot: s.snapshotLocked()}
	subs := append([]*Subscription(nil), s.subs...)
	s.mu.Unlock()

	for _, sub := range subs {
		if sub.filter != nil && !sub.filter(change) {
			continue
		}
		sub.handler(change)
	}
}

// Restore replaces the whole state without notifying subscribers.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.book.Load(snap.Palettes, snap.ActivePaletteID)
	s.color = snap.CurrentColor
	if s.color == "" {
		s.color = DefaultColor
	}
	s.theme = snap.Theme
	if s.theme == "" {
		s.theme = ThemeDark
	}
}

// CurrentColor returns the picked colour.
func (s *Store) CurrentColor() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.color
}

// SetColor changes the picked colour.
func (s *Store) SetColor(hex string) {
	s.mutate(func(*palette.Book) Field {
		if s.color == hex {
			return 0
		}
		s.color = hex
		return FieldColor
	})
}

// Theme returns the active theme.
func (s *Store) Theme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// SetTheme switches the theme.
func (s *Store) SetTheme(t Theme) {
	s.mutate(func(*palette.Book) Field {
		if s.theme == t {
			return 0
		}
		s.theme = t
		return FieldTheme
	})
}

// ToggleTheme flips between dark and light.
func (s *Store) ToggleTheme() {
	if s.Theme().Dark() {
		s.SetTheme(ThemeLight)
	} else {
		s.SetTheme(ThemeDark)
	}
}
