package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumns(t *testing.T) {
	assert.Equal(t, 1, Columns(10))
	assert.Equal(t, 5, Columns(600))
	assert.Equal(t, 1, Columns(SwatchW+CardPaddingX*2))
}

func TestCardGrowsByRows(t *testing.T) {
	empty := Card(0, 0, 600, 0)
	five := Card(0, 0, 600, 5)
	six := Card(0, 0, 600, 6)
	assert.Equal(t, 1, empty.Rows)
	assert.Equal(t, empty.Card.H, five.Card.H)
	assert.Equal(t, 2, six.Rows)
	assert.Equal(t, five.Card.H+cellH(), six.Card.H)
}

func TestHeaderButtonsDoNotOverlap(t *testing.T) {
	b := Card(0, 0, 600, 0)
	assert.Less(t, b.Name.X+b.Name.W, b.Export.X)
	assert.Less(t, b.Export.X+b.Export.W, b.Delete.X)
	assert.Equal(t, HeaderDelete, b.HitHeader(b.Delete.X+1, b.Delete.Y+1))
	assert.Equal(t, HeaderExport, b.HitHeader(b.Export.X+1, b.Export.Y+1))
	assert.Equal(t, HeaderName, b.HitHeader(b.Name.X+1, b.Name.Y+1))
	assert.Equal(t, HeaderNone, b.HitHeader(b.Grid.X, b.Grid.Y+1))
}

func TestZoneAtEmptyCard(t *testing.T) {
	b := Card(0, 0, 600, 0)
	for _, pt := range [][2]int{{1, 1}, {300, 60}, {599, b.Card.H - 1}} {
		idx, ok := b.ZoneAt(pt[0], pt[1])
		require.True(t, ok)
		assert.Equal(t, 0, idx)
	}
	_, ok := b.ZoneAt(700, 10)
	assert.False(t, ok)
}

func TestZoneAt(t *testing.T) {
	b := Card(0, 0, 600, 7)
	row0 := b.Grid.Y + 5
	row1 := b.Grid.Y + cellH() + 5
	tests := []struct {
		name string
		x, y int
		want int
	}{
		{"left half of first", b.Grid.X + 10, row0, 0},
		{"right half of first", b.Grid.X + 60, row0, 1},
		{"left half of third", b.Grid.X + 2*cellW() + 5, row0, 2},
		{"header maps to first row", b.Grid.X + 10, b.Header.Y + 2, 0},
		{"second row left", b.Grid.X + cellW() + 5, row1, 6},
		{"second row right", b.Grid.X + cellW() + 60, row1, 7},
		{"past last swatch", b.Grid.X + 4*cellW() + 60, row1, 7},
		{"card padding left", 2, row1, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := b.ZoneAt(tt.x, tt.y)
			require.True(t, ok)
			assert.Equal(t, tt.want, idx)
		})
	}
}

func TestEveryZoneReachable(t *testing.T) {
	for _, n := range []int{1, 3, 5, 6, 11} {
		b := Card(0, 0, 600, n)
		seen := map[int]bool{}
		for y := b.Card.Y; y < b.Card.Y+b.Card.H; y += 3 {
			for x := b.Card.X; x < b.Card.X+b.Card.W; x += 3 {
				if idx, ok := b.ZoneAt(x, y); ok {
					seen[idx] = true
				}
			}
		}
		assert.Len(t, seen, n+1, "n=%d", n)
	}
}

func TestGapBetweenSwatches(t *testing.T) {
	b := Card(0, 0, 600, 3)
	first := b.Swatch(0).Cell
	second := b.Swatch(1).Cell
	mid := b.Gap(1)
	assert.Greater(t, mid.X, first.X+first.W-1)
	assert.Less(t, mid.X+mid.W, second.X+1)

	trailing := b.Gap(3)
	last := b.Swatch(2).Cell
	assert.GreaterOrEqual(t, trailing.X, last.X+last.W)

	assert.Equal(t, Card(0, 0, 600, 0).Grid, Card(0, 0, 600, 0).Gap(0))
}

func TestHitSwatch(t *testing.T) {
	b := Card(10, 20, 600, 2)
	s := b.Swatch(1)
	tests := []struct {
		name  string
		x, y  int
		index int
		part  Part
	}{
		{"copy chip", s.Copy.X + 2, s.Copy.Y + 2, 1, PartCopy},
		{"delete chip", s.Delete.X + 2, s.Delete.Y + 2, 1, PartDelete},
		{"body", s.Body.X + SwatchW/2, s.Body.Y + SwatchBodyH/2, 1, PartBody},
		{"tag", s.Tag.X + 5, s.Tag.Y + 2, 1, PartTag},
		{"hex label", s.Hex.X + 5, s.Hex.Y + 2, 1, PartBody},
		{"gap", s.Cell.X - 2, s.Cell.Y + 2, -1, PartNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, part := b.HitSwatch(tt.x, tt.y)
			assert.Equal(t, tt.index, idx)
			assert.Equal(t, tt.part, part)
		})
	}
}

func TestBoardStacksCards(t *testing.T) {
	counts := []int{0, 6, 2}
	cards := Board(0, 100, 600, 0, counts)
	require.Len(t, cards, 3)
	assert.Equal(t, 100, cards[0].Card.Y)
	assert.Equal(t, cards[0].Card.Y+cards[0].Card.H+CardGap, cards[1].Card.Y)
	assert.Equal(t, cards[1].Card.Y+cards[1].Card.H+CardGap, cards[2].Card.Y)

	last := cards[2].Card
	assert.Equal(t, last.Y+last.H-100, ContentHeight(600, counts))

	scrolled := Board(0, 100, 600, 40, counts)
	assert.Equal(t, 60, scrolled[0].Card.Y)

	idx, ok := CardAt(cards, 5, cards[1].Card.Y+3)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	_, ok = CardAt(cards, 5, cards[0].Card.Y+cards[0].Card.H+1)
	assert.False(t, ok)
}

func TestClampScroll(t *testing.T) {
	assert.Equal(t, 0, ClampScroll(-10, 1000, 400))
	assert.Equal(t, 600, ClampScroll(900, 1000, 400))
	assert.Equal(t, 0, ClampScroll(50, 300, 400))
	assert.Equal(t, 120, ClampScroll(120, 1000, 400))
}
