package crossword

import "fmt"

// Direction is one of the six placement geometries relative to a clue cell.
type Direction uint8

const (
	HorizontalRight Direction = iota
	VerticalDown
	LeftDown
	RightDown
	TopRight
	BottomRight
)

// Directions lists every direction in best-fit evaluation order.
var Directions = []Direction{VerticalDown, HorizontalRight, RightDown, LeftDown, TopRight, BottomRight}

var directionNames = [...]string{
	HorizontalRight: "horizontal-right",
	VerticalDown:    "vertical-down",
	LeftDown:        "left-down",
	RightDown:       "right-down",
	TopRight:        "top-right",
	BottomRight:     "bottom-right",
}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("direction(%d)", uint8(d))
}

// ParseDirection returns the direction with the given name.
func ParseDirection(name string) (Direction, error) {
	for d, n := range directionNames {
		if n == name {
			return Direction(d), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, name)
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a direction name.
func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// geometry describes where a word's letters go relative to its clue cell.
type geometry struct {
	origin [2]int // first letter, relative to the clue cell
	step   [2]int
	axis   Axis

	// minRow and minCol keep the clue off the top row or the first column.
	minRow, minCol int
	// sidestep marks runs that start beside the clue rather than in line with it;
	// their first cell must be unoccupied.
	sidestep bool
}

var geometries = [...]geometry{
	HorizontalRight: {origin: [2]int{0, 1}, step: [2]int{0, 1}, axis: Horizontal, minRow: 1},
	VerticalDown:    {origin: [2]int{1, 0}, step: [2]int{1, 0}, axis: Vertical, minCol: 1},
	LeftDown:        {origin: [2]int{0, -1}, step: [2]int{1, 0}, axis: Vertical, minCol: 1, sidestep: true},
	RightDown:       {origin: [2]int{0, 1}, step: [2]int{1, 0}, axis: Vertical, sidestep: true},
	TopRight:        {origin: [2]int{-1, 0}, step: [2]int{0, 1}, axis: Horizontal, minRow: 1, sidestep: true},
	BottomRight:     {origin: [2]int{1, 0}, step: [2]int{0, 1}, axis: Horizontal, sidestep: true},
}

// Axis returns the axis the word's letters run along.
func (d Direction) Axis() Axis {
	return geometries[d].axis
}

// cellAt returns the coordinates of the i-th letter of a run whose clue is at (row, col).
// i == length yields the terminator position.
func (g geometry) cellAt(row, col, i int) (int, int) {
	return row + g.origin[0] + i*g.step[0], col + g.origin[1] + i*g.step[1]
}
