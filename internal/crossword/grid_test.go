package crossword

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellEncoding(t *testing.T) {
	tests := []struct {
		cell Cell
		want string
	}{
		{Cell{}, ""},
		{BlockedCell(), "0"},
		{LetterCell('C', Vertical), "Ch"},
		{LetterCell('T', Horizontal), "Tv"},
		{ClueCell(3, HorizontalRight, "feline pet"), "3 horizontal-right: feline pet"},
		{ClueCell(12, BottomRight, "ratio: a to b"), "12 bottom-right: ratio: a to b"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.cell.Encode())
		got, err := DecodeCell(tt.want)
		require.NoError(t, err, tt.want)
		assert.Equal(t, tt.cell, got)
	}
}

func TestDecodeCellErrors(t *testing.T) {
	_, err := DecodeCell("x")
	assert.ErrorIs(t, err, ErrMalformedCell)

	_, err = DecodeCell("Cx")
	assert.ErrorIs(t, err, ErrMalformedCell)

	_, err = DecodeCell("3 sideways: nope")
	assert.ErrorIs(t, err, ErrUnknownDirection)

	_, err = DecodeCell("three vertical-down: nope")
	assert.ErrorIs(t, err, ErrMalformedCell)
}

func TestOccupied(t *testing.T) {
	assert.False(t, Cell{}.Occupied())
	assert.False(t, BlockedCell().Occupied())
	assert.True(t, LetterCell('A', Vertical).Occupied())
	assert.True(t, ClueCell(1, LeftDown, "").Occupied())
}

func TestDirectionNames(t *testing.T) {
	for _, d := range Directions {
		got, err := ParseDirection(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}
	assert.Len(t, Directions, 6)
	assert.Equal(t, Horizontal, TopRight.Axis())
	assert.Equal(t, Vertical, LeftDown.Axis())
}

func TestResizeKeepsCells(t *testing.T) {
	g := newTestGenerator(NewGrid(8, 8), map[string]string{"CAT": "feline pet"})
	g.Place(HorizontalRight, "CAT", 2, 0)
	grid := g.Grid()
	before := grid.Encode()

	grid.Resize(3, 2)
	require.Equal(t, 11, grid.Width())
	require.Equal(t, 10, grid.Height())

	for i, row := range before {
		for j, s := range row {
			assert.Equal(t, s, grid.Get(i, j).Encode())
		}
	}
	for i := 0; i < grid.Height(); i++ {
		for j := 0; j < grid.Width(); j++ {
			if i >= 8 || j >= 8 {
				assert.Equal(t, Empty, grid.Get(i, j).Kind)
			}
		}
	}

	grid.Resize(0, 0)
	assert.Equal(t, 11, grid.Width())
}

func TestCloneIsIndependent(t *testing.T) {
	grid := NewGrid(4, 4)
	cp := grid.Clone()
	cp.Set(1, 1, BlockedCell())
	assert.Equal(t, Empty, grid.Get(1, 1).Kind)
}

func TestGridJSON(t *testing.T) {
	grid := NewGrid(5, 3)
	grid.Set(1, 0, ClueCell(2, HorizontalRight, "pronoun"))
	grid.Set(1, 1, LetterCell('W', Vertical))
	grid.Set(1, 2, LetterCell('E', Vertical))
	grid.Set(1, 3, BlockedCell())

	b, err := json.Marshal(grid)
	require.NoError(t, err)
	assert.JSONEq(t, `{"rows":3,"cols":5,"cells":[
		["","","","",""],
		["2 horizontal-right: pronoun","Wh","Eh","0",""],
		["","","","",""]]}`, string(b))

	var back Grid
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, grid.Encode(), back.Encode())
}

func TestDecodeGridRagged(t *testing.T) {
	_, err := DecodeGrid([][]string{{"", ""}, {""}})
	assert.ErrorIs(t, err, ErrRaggedGrid)
}

func TestPrint(t *testing.T) {
	g := newTestGenerator(NewGrid(6, 4), map[string]string{"CAT": "feline pet"})
	g.Place(HorizontalRight, "CAT", 2, 0)

	out := g.Grid().String()
	assert.Contains(t, out, " | 0 | 0 | 0 | 0 | 0 | 0 |")
	assert.Contains(t, out, " | 1 | C | A | T | 0 | 0 |")
	assert.Contains(t, out, "1: 3 horizontal-right: feline pet")
}

func TestEstimateSize(t *testing.T) {
	repeat := func(word string, n int) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = word
		}
		return out
	}

	tests := []struct {
		name          string
		keywords      []string
		width, height int
	}{
		{"empty", nil, MinDimension, MinDimension},
		{"short words keep the minimum", []string{"CAT", "DOG"}, MinDimension, MinDimension},
		{"longest and second longest", []string{"AB", "ABC", "ABCD", "ABCDEFG", "ABCDEFGHIJ"}, 12, 9},
		{"second longest regardless of order", []string{"ABCDEFGHIJ", "ABCDEFG"}, 12, 9},
		{"equal longest words", []string{"ABCDEFGHI", "ABCDEFGHI", "AB"}, 11, 11},
		{"half the word count", repeat("CAT", 20), 10, 10},
		{"half the word count rounds up", repeat("CAT", 21), 11, 11},
		{"word count beats short words only", append(repeat("CAT", 19), "ABCDEFGHIJKL"), 14, 10},
		{"long word capped", []string{strings.Repeat("A", 40)}, MaxDimension, MinDimension},
		{"word count capped", repeat("CAT", 70), MaxDimension, MaxDimension},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := EstimateSize(tt.keywords)
			assert.Equal(t, tt.width, w, "width")
			assert.Equal(t, tt.height, h, "height")
		})
	}
}

func TestEntries(t *testing.T) {
	g := newTestGenerator(NewGrid(8, 8), map[string]string{"CAT": "feline pet", "TAN": "color"})
	g.Place(HorizontalRight, "CAT", 2, 0)
	g.Place(VerticalDown, "TAN", 0, 2)
	grid := g.Grid()

	assert.Equal(t, []Entry{
		{Row: 0, Col: 2, Direction: VerticalDown, Keyword: "TAN", Clue: "color"},
		{Row: 2, Col: 0, Direction: HorizontalRight, Keyword: "CAT", Clue: "feline pet"},
	}, grid.Entries())

	sol := grid.Solution()
	assert.Len(t, sol, 5)
	assert.Equal(t, 'A', sol[[2]int{2, 2}])

	// A clue pointing at empty cells is not a word.
	grid.Set(5, 5, ClueCell(2, VerticalDown, "dangling"))
	assert.Len(t, grid.Entries(), 2)
}
