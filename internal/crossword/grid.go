package crossword

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MaxDimension caps the grid on both axes while auto-sizing.
const MaxDimension = 30

var ErrRaggedGrid = errors.New("grid rows differ in length")

// Grid is a row-major matrix of cells, indexed [row][col] from 0.
// Accessors do not check bounds; callers use InBounds first.
type Grid struct {
	width, height int
	cells         [][]Cell
}

// NewGrid allocates an all-empty grid. Negative sizes are treated as zero.
func NewGrid(width, height int) *Grid {
	width, height = max(width, 0), max(height, 0)
	cells := make([][]Cell, height)
	for i := range cells {
		cells[i] = make([]Cell, width)
	}
	return &Grid{width: width, height: height, cells: cells}
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (row, col) lies inside the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.height && col >= 0 && col < g.width
}

func (g *Grid) Get(row, col int) Cell {
	return g.cells[row][col]
}

func (g *Grid) Set(row, col int, c Cell) {
	g.cells[row][col] = c
}

// IsOccupied reports whether the cell holds a letter or a clue.
func (g *Grid) IsOccupied(row, col int) bool {
	return g.cells[row][col].Occupied()
}

// Resize grows the grid by the given amounts, keeping every cell at its coordinates.
func (g *Grid) Resize(addWidth, addHeight int) {
	addWidth, addHeight = max(addWidth, 0), max(addHeight, 0)
	if addWidth == 0 && addHeight == 0 {
		return
	}
	next := NewGrid(g.width+addWidth, g.height+addHeight)
	for i, row := range g.cells {
		copy(next.cells[i], row)
	}
	*g = *next
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	cp := NewGrid(g.width, g.height)
	for i, row := range g.cells {
		copy(cp.cells[i], row)
	}
	return cp
}

// CountPlaced returns the number of clue cells, i.e. placed words.
func (g *Grid) CountPlaced() int {
	n := 0
	for _, row := range g.cells {
		for _, c := range row {
			if c.Kind == ClueStart {
				n++
			}
		}
	}
	return n
}

// Encode returns the text form of every cell.
func (g *Grid) Encode() [][]string {
	out := make([][]string, g.height)
	for i, row := range g.cells {
		out[i] = make([]string, g.width)
		for j, c := range row {
			out[i][j] = c.Encode()
		}
	}
	return out
}

// DecodeGrid rebuilds a grid from its text form.
func DecodeGrid(rows [][]string) (*Grid, error) {
	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}
	g := NewGrid(width, len(rows))
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedGrid, i, len(row), width)
		}
		for j, s := range row {
			c, err := DecodeCell(s)
			if err != nil {
				return nil, fmt.Errorf("cell (%d,%d): %w", i, j, err)
			}
			g.cells[i][j] = c
		}
	}
	return g, nil
}

type gridJSON struct {
	Rows  int        `json:"rows"`
	Cols  int        `json:"cols"`
	Cells [][]string `json:"cells"`
}

func (g *Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(gridJSON{Rows: g.height, Cols: g.width, Cells: g.Encode()})
}

func (g *Grid) UnmarshalJSON(b []byte) error {
	var raw gridJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	dec, err := DecodeGrid(raw.Cells)
	if err != nil {
		return err
	}
	*g = *dec
	return nil
}
