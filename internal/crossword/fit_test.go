package crossword

import (
	"testing"

	"github.com/bodul/xpuzzle/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(grid *Grid, words map[string]string) *Generator {
	return NewWithGrid(grid, words, &Options{Seed: 1, Logger: logger.Discard()})
}

func TestHorizontalRightPlacement(t *testing.T) {
	g := newTestGenerator(NewGrid(8, 8), map[string]string{"CAT": "feline pet"})

	require.True(t, g.Fits(HorizontalRight, "CAT", 2, 0))
	g.Place(HorizontalRight, "CAT", 2, 0)

	grid := g.Grid()
	assert.Equal(t, ClueCell(3, HorizontalRight, "feline pet"), grid.Get(2, 0))
	assert.Equal(t, LetterCell('C', Vertical), grid.Get(2, 1))
	assert.Equal(t, LetterCell('A', Vertical), grid.Get(2, 2))
	assert.Equal(t, LetterCell('T', Vertical), grid.Get(2, 3))
	assert.Equal(t, BlockedCell(), grid.Get(2, 4))

	assert.Equal(t, 0, g.Dictionary().Len())
	assert.False(t, g.Ranking().Contains("CAT"))
}

func TestVerticalDownCrossing(t *testing.T) {
	first := newTestGenerator(NewGrid(8, 8), map[string]string{"CAT": "feline pet"})
	first.Place(HorizontalRight, "CAT", 2, 0)

	g := newTestGenerator(first.Grid(), map[string]string{"TAN": "color", "TON": "weight"})

	// The third letter position of the run meets the A of CAT.
	require.True(t, g.Fits(VerticalDown, "TAN", 0, 2))
	assert.Equal(t, 1, g.Crossings(VerticalDown, "TAN", 0, 2))

	assert.False(t, g.Fits(VerticalDown, "TON", 0, 2), "O does not match A")
	assert.False(t, g.Fits(VerticalDown, "TAN", 1, 2), "T does not match A")

	g.Place(VerticalDown, "TAN", 0, 2)
	grid := g.Grid()
	assert.Equal(t, LetterCell('T', Horizontal), grid.Get(1, 2))
	assert.Equal(t, LetterCell('A', Vertical), grid.Get(2, 2), "crossing keeps the first word's letter")
	assert.Equal(t, LetterCell('N', Horizontal), grid.Get(3, 2))
	assert.Equal(t, BlockedCell(), grid.Get(4, 2))
	assert.Equal(t, ClueCell(3, VerticalDown, "color"), grid.Get(0, 2))
	assert.Equal(t, 1, g.Dictionary().Len())
}

func TestFitsRejectsSameAxisOverlap(t *testing.T) {
	grid := NewGrid(8, 8)
	grid.Set(2, 3, LetterCell('A', Vertical)) // part of a horizontal word
	g := newTestGenerator(grid, nil)

	assert.False(t, g.Fits(HorizontalRight, "BAD", 2, 1))
	assert.True(t, g.Fits(VerticalDown, "AD", 1, 3))
	assert.False(t, g.Fits(VerticalDown, "OD", 1, 3))
}

func TestFitsTerminator(t *testing.T) {
	grid := NewGrid(8, 8)
	grid.Set(2, 5, BlockedCell())
	g := newTestGenerator(grid, nil)

	assert.False(t, g.Fits(HorizontalRight, "CAT", 2, 1), "terminator on a blocked cell")
	assert.True(t, g.Fits(HorizontalRight, "CA", 2, 1))

	assert.True(t, g.Fits(HorizontalRight, "ABCDEF", 1, 1), "terminator off the grid")
	assert.False(t, g.Fits(HorizontalRight, "ABCDEFG", 1, 1), "run leaves the grid")

	grid.Set(1, 4, ClueCell(2, VerticalDown, "x"))
	assert.False(t, g.Fits(HorizontalRight, "AB", 1, 1), "terminator on a clue")
}

func TestFitsRunCollisions(t *testing.T) {
	grid := NewGrid(8, 8)
	grid.Set(3, 3, BlockedCell())
	grid.Set(6, 3, ClueCell(2, HorizontalRight, "x"))
	g := newTestGenerator(grid, nil)

	assert.False(t, g.Fits(VerticalDown, "ABC", 1, 3), "blocked cell in the run")
	assert.False(t, g.Fits(VerticalDown, "ABC", 3, 3), "clue cell in the run")
	assert.True(t, g.Fits(VerticalDown, "A", 3, 3), "clue may sit on a blocked cell")
	assert.False(t, g.Fits(VerticalDown, "A", 6, 3), "clue cell already occupied")
}

func TestFitsEdges(t *testing.T) {
	g := newTestGenerator(NewGrid(8, 8), nil)

	tests := []struct {
		name     string
		d        Direction
		row, col int
		want     bool
	}{
		{"horizontal-right on top row", HorizontalRight, 0, 0, false},
		{"horizontal-right below top row", HorizontalRight, 1, 0, true},
		{"vertical-down on first column", VerticalDown, 0, 0, false},
		{"vertical-down on second column", VerticalDown, 0, 1, true},
		{"left-down on first column", LeftDown, 3, 0, false},
		{"left-down on second column", LeftDown, 3, 1, true},
		{"right-down on last column", RightDown, 3, 7, false},
		{"right-down before last column", RightDown, 3, 6, true},
		{"top-right on top row", TopRight, 0, 3, false},
		{"top-right below top row", TopRight, 1, 3, true},
		{"bottom-right on last row", BottomRight, 7, 3, false},
		{"bottom-right above last row", BottomRight, 6, 3, true},
		{"negative row", RightDown, -1, 3, false},
		{"negative column", BottomRight, 3, -1, false},
		{"vertical-down past bottom", VerticalDown, 6, 3, false},
		{"left-down to last row", LeftDown, 6, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Fits(tt.d, "AB", tt.row, tt.col))
		})
	}
}

func TestFitsSidestepNeedsFreeFirstCell(t *testing.T) {
	grid := NewGrid(8, 8)
	grid.Set(3, 0, LetterCell('A', Vertical))
	g := newTestGenerator(grid, nil)

	assert.False(t, g.Fits(LeftDown, "AB", 3, 1))
	assert.True(t, g.Fits(LeftDown, "BA", 2, 1), "crossing later in the run is allowed")
}

func TestFitsDoesNotMutate(t *testing.T) {
	words := map[string]string{
		"HAUS": "Gebäude", "MEER": "See", "ROSE": "Blume", "TIER": "Lebewesen",
		"ENDE": "Schluss", "NASE": "Riecher", "REIS": "Getreide", "ESEL": "Grautier",
	}
	g := newTestGenerator(nil, words)
	g.GenerateRandom(10, 10)

	before := g.Grid().Encode()
	probe := []string{"A", "EINS", "HAUS", "NEIN", "ABCDEFGHIJKL"}
	for _, d := range Directions {
		for row := -2; row < 12; row++ {
			for col := -2; col < 12; col++ {
				for _, k := range probe {
					g.Fits(d, k, row, col)
				}
			}
		}
	}
	assert.Equal(t, before, g.Grid().Encode())
}

func TestFitsWithoutGrid(t *testing.T) {
	g := New(map[string]string{"CAT": "x"}, &Options{Seed: 1, Logger: logger.Discard()})
	assert.False(t, g.Fits(HorizontalRight, "CAT", 2, 0))
	assert.False(t, g.Fits(HorizontalRight, "", 2, 0))
}

func TestPlaceKeepsExistingTerminator(t *testing.T) {
	grid := NewGrid(8, 8)
	grid.Set(2, 4, ClueCell(2, VerticalDown, "x"))
	g := newTestGenerator(grid, map[string]string{"CA": "y"})

	g.Place(HorizontalRight, "CA", 2, 1)
	assert.Equal(t, ClueCell(2, VerticalDown, "x"), grid.Get(2, 4))
	assert.Equal(t, ClueCell(2, HorizontalRight, "y"), grid.Get(2, 1))
}
