package crossword

// Entry is a word read back from a grid: the clue cell it starts at and the
// letters along its run.
type Entry struct {
	Row       int       `json:"row"`
	Col       int       `json:"col"`
	Direction Direction `json:"direction"`
	Keyword   string    `json:"keyword"`
	Clue      string    `json:"clue"`
}

// Entries lists the words of the grid in row-major order of their clue
// cells. Clues whose run leaves the grid or hits a non-letter cell are
// skipped.
func (g *Grid) Entries() []Entry {
	var out []Entry
	for row := range g.height {
		for col := range g.width {
			c := g.cells[row][col]
			if c.Kind != ClueStart {
				continue
			}
			if word, ok := g.readRun(c, row, col); ok {
				out = append(out, Entry{Row: row, Col: col, Direction: c.Direction, Keyword: word, Clue: c.Clue})
			}
		}
	}
	return out
}

// Solution returns the letter of every Letter cell keyed by position.
func (g *Grid) Solution() map[[2]int]rune {
	out := make(map[[2]int]rune)
	for row := range g.height {
		for col := range g.width {
			if c := g.cells[row][col]; c.Kind == Letter {
				out[[2]int{row, col}] = c.Char
			}
		}
	}
	return out
}

func (g *Grid) readRun(c Cell, row, col int) (string, bool) {
	if int(c.Direction) >= len(geometries) || c.Length <= 0 {
		return "", false
	}
	geo := geometries[c.Direction]
	word := make([]rune, 0, c.Length)
	for i := range c.Length {
		r, cc := geo.cellAt(row, col, i)
		if !g.InBounds(r, cc) || g.cells[r][cc].Kind != Letter {
			return "", false
		}
		word = append(word, g.cells[r][cc].Char)
	}
	return string(word), true
}
