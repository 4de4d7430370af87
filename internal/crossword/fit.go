package crossword

// Fits reports whether keyword may be placed with its clue at (row, col)
// running in direction d. It never modifies the grid and never reads outside it.
func (g *Generator) Fits(d Direction, keyword string, row, col int) bool {
	if g.grid == nil {
		return false
	}
	return fits(g.grid, d, []rune(keyword), row, col)
}

func fits(grid *Grid, d Direction, word []rune, row, col int) bool {
	geo := geometries[d]
	n := len(word)
	if n == 0 {
		return false
	}

	if row < geo.minRow || col < geo.minCol || !grid.InBounds(row, col) {
		return false
	}
	r0, c0 := geo.cellAt(row, col, 0)
	rn, cn := geo.cellAt(row, col, n-1)
	if !grid.InBounds(r0, c0) || !grid.InBounds(rn, cn) {
		return false
	}

	if grid.IsOccupied(row, col) {
		return false
	}
	if geo.sidestep && grid.IsOccupied(r0, c0) {
		return false
	}

	// The terminator lands on an empty cell or off the grid.
	if tr, tc := geo.cellAt(row, col, n); grid.InBounds(tr, tc) && grid.Get(tr, tc).Kind != Empty {
		return false
	}

	for i, ch := range word {
		cell := grid.Get(geo.cellAt(row, col, i))
		switch cell.Kind {
		case Empty:
		case Letter:
			if cell.Char != ch || cell.Cross != geo.axis {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Crossings counts the letters of an already validated placement that are
// shared with previously placed words.
func (g *Generator) Crossings(d Direction, keyword string, row, col int) int {
	return crossings(g.grid, d, []rune(keyword), row, col)
}

func crossings(grid *Grid, d Direction, word []rune, row, col int) int {
	geo := geometries[d]
	n := 0
	for i := range word {
		if grid.Get(geo.cellAt(row, col, i)).Kind == Letter {
			n++
		}
	}
	return n
}
