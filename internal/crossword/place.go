package crossword

import "unicode/utf8"

// Place commits keyword with its clue at (row, col) running in direction d and
// removes it from the dictionary and the ranking. The placement must have
// passed Fits; nothing is re-validated here.
func (g *Generator) Place(d Direction, keyword string, row, col int) {
	geo := geometries[d]
	word := []rune(keyword)
	n := len(word)

	for i, ch := range word {
		r, c := geo.cellAt(row, col, i)
		// A crossing keeps the letter of the word that was there first.
		if g.grid.Get(r, c).Kind == Letter {
			continue
		}
		g.grid.Set(r, c, LetterCell(ch, geo.axis.Perpendicular()))
	}

	if tr, tc := geo.cellAt(row, col, n); g.grid.InBounds(tr, tc) && !g.grid.IsOccupied(tr, tc) {
		g.grid.Set(tr, tc, BlockedCell())
	}

	clue, _ := g.dict.Clue(keyword)
	g.grid.Set(row, col, ClueCell(n, d, clue))

	g.dict.Remove(keyword)
	g.ranking.Remove(keyword)

	g.log.Debug("placed", "keyword", keyword, "direction", d, "row", row, "col", col)
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
