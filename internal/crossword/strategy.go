package crossword

// GenerateRandom builds a width x height puzzle from the dictionary: anchor
// words first, then the frequency sweep, the column and row sweeps and
// finally the diagonal best-fit sweep.
func (g *Generator) GenerateRandom(width, height int) *Grid {
	g.grid = NewGrid(width, height)

	g.pass("seed", g.fillRandom)
	g.pass("frequency", g.fillWithGoodFrequency)
	g.sweep()

	g.log.Info("generated", "width", g.grid.Width(), "height", g.grid.Height(),
		"placed", g.grid.CountPlaced(), "remaining", g.dict.Len())
	return g.grid
}

// GenerateFromDictionary sizes the grid from the dictionary, runs the fixed
// pipeline once and then keeps growing the grid and re-sweeping until every
// word is placed or the grid reaches MaxDimension. Words that still do not
// fit stay in the dictionary.
func (g *Generator) GenerateFromDictionary() *Grid {
	width, height := EstimateSize(g.dict.Keywords())
	g.GenerateRandom(width, height)

	for g.dict.Len() > 0 && g.grid.Width() < MaxDimension && g.grid.Height() < MaxDimension {
		g.grow()
		g.sweep()
	}

	if g.dict.Len() > 0 {
		g.log.Info("dictionary not exhausted", "remaining", g.dict.Len(),
			"width", g.grid.Width(), "height", g.grid.Height())
	}
	return g.grid
}

// grow adds GrowStep columns, or GrowStep rows when the grid is wider than
// high, without passing MaxDimension.
func (g *Generator) grow() {
	if g.grid.Width() <= g.grid.Height() {
		g.grid.Resize(min(GrowStep, MaxDimension-g.grid.Width()), 0)
	} else {
		g.grid.Resize(0, min(GrowStep, MaxDimension-g.grid.Height()))
	}
	g.log.Debug("resized", "width", g.grid.Width(), "height", g.grid.Height())
}

// FillUp continues filling the current grid from words. When words holds more
// than n entries a random sample of n is used. The grid is never reset.
func (g *Generator) FillUp(words map[string]string, n int) *Grid {
	if len(words) > n {
		keys := NewDictionary(words).Keywords()
		g.rng.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
		sample := make(map[string]string, max(n, 0))
		for _, k := range keys[:max(n, 0)] {
			sample[k] = words[k]
		}
		g.setDictionary(sample)
	} else {
		g.setDictionary(words)
	}

	if g.grid == nil {
		return nil
	}
	before := g.grid.CountPlaced()
	g.sweep()
	g.log.Info("filled up", "added", g.grid.CountPlaced()-before, "remaining", g.dict.Len())
	return g.grid
}

// sweep runs the column, row and diagonal passes.
func (g *Generator) sweep() {
	g.pass("vertical", func() { g.fillVertical(3) })
	g.pass("horizontal", func() { g.fillHorizontal(3) })
	g.pass("diagonal", g.fillDiagonal)
}

func (g *Generator) pass(name string, fn func()) {
	before := g.dict.Len()
	fn()
	g.log.Debug("pass", "name", name, "placed", before-g.dict.Len(), "remaining", g.dict.Len())
}

// fillRandom places up to five shuffled anchor words at fixed spots and then
// tries to cross each placed anchor with a frequency-ranked word.
func (g *Generator) fillRandom() {
	height, width := g.grid.Height(), g.grid.Width()

	keys := g.dict.Keywords()
	g.rng.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })

	// index only advances when an anchor is placed; a word that does not fit
	// one spot is offered to the next.
	index := 0
	anchor := func(d Direction, row, col int) int {
		if index >= len(keys) {
			return 0
		}
		key := keys[index]
		if !g.Fits(d, key, row, col) {
			return 0
		}
		g.Place(d, key, row, col)
		index++
		return runeLen(key)
	}

	// Near the top.
	first := anchor(HorizontalRight, 2, 0)

	// Bottom row.
	second := 0
	if g.free(height-1, 0) {
		second = anchor(HorizontalRight, height-1, 0)
	}

	// Vertical center.
	i1 := max(height/2-3, 0)
	j1 := width / 2
	third := 0
	if g.free(i1, j1) {
		third = anchor(VerticalDown, i1, j1)
	}

	// Top right corner.
	fourth := 0
	if g.free(0, width-1) {
		fourth = anchor(VerticalDown, 0, width-1)
	}

	// Bottom right corner, ending on the last row.
	fifth := 0
	if index < len(keys) && g.free(height-1, width-1) {
		fifth = anchor(VerticalDown, height-runeLen(keys[index])-1, width-1)
	}

	// Cross the first anchor from the top row.
	for j := 0; j < first; j++ {
		if g.placeByFrequency(0, j, 3, RightDown) {
			break
		}
	}

	// Cross the second anchor from three to five rows above the bottom.
crossSecond:
	for i := 3; i < 6; i++ {
		for j := 0; j < second; j++ {
			if g.placeByFrequency(height-i, j, i, RightDown) {
				break crossSecond
			}
		}
	}

	// Cross the third anchor from its left.
	i2 := height/2 - 2
	j2 := height/2 - 1
crossThird:
	for i := 0; i <= third; i++ {
		for j := 0; j < 3; j++ {
			if g.placeByFrequency(i2+i, j2-j, 3, HorizontalRight) {
				break crossThird
			}
		}
	}

	// Cross the fourth anchor from its left.
crossFourth:
	for i := 1; i < fourth; i++ {
		for j := 3; j < 6; j++ {
			if g.placeByFrequency(i, width-j, j, HorizontalRight) {
				break crossFourth
			}
		}
	}

	g.crossFifth(fifth)
}

// crossFifth crosses the bottom right anchor of the given length with
// bottom-right words ending in the last column. It places at most two words
// and returns how many it placed.
func (g *Generator) crossFifth(length int) int {
	height, width := g.grid.Height(), g.grid.Width()
	placed := 0
	for j := 3; j < 6 && placed < 2; j++ {
		for i := 1; i < length; i++ {
			if g.placeByFrequency(height-i, width-j, 3, BottomRight) {
				placed++
				break
			}
		}
	}
	return placed
}

// fillWithGoodFrequency walks every 4th row placing horizontal words of at
// least four letters, then every 4th column placing vertical words of at
// least three, taking the first ranked word that fits.
func (g *Generator) fillWithGoodFrequency() {
	height, width := g.grid.Height(), g.grid.Width()
	for i := 1; i < height-1; i += 4 {
		for j := 0; j < width-1; j++ {
			g.placeByFrequency(i, j, 4, HorizontalRight)
		}
	}
	for j := 1; j < width-1; j += 4 {
		for i := 0; i < height-1; i++ {
			g.placeByFrequency(i, j, 3, VerticalDown)
		}
	}
}

// fillVertical walks every steps-th column from the third and places the
// best vertical-down word at each free cell.
func (g *Generator) fillVertical(steps int) {
	height, width := g.grid.Height(), g.grid.Width()
	for j := 2; j < width-1; j += steps {
		for i := 0; i < height-1; i++ {
			g.placeBestFit(i, j, VerticalDown)
		}
	}
}

// fillHorizontal walks every steps-th row from the third and places the
// best horizontal-right word at each free cell.
func (g *Generator) fillHorizontal(steps int) {
	height, width := g.grid.Height(), g.grid.Width()
	for i := 2; i < height-1; i += steps {
		for j := 0; j < width-1; j++ {
			g.placeBestFit(i, j, HorizontalRight)
		}
	}
}

// fillDiagonal visits every cell along the anti-diagonals, top-left first,
// and places the best word over all six directions at each free cell.
func (g *Generator) fillDiagonal() {
	height, width := g.grid.Height(), g.grid.Width()
	for diag := 0; diag < width+height-1; diag++ {
		rowStop := max(0, diag-width+1)
		rowStart := min(diag, height-1)
		for row := rowStart; row >= rowStop; row-- {
			col := diag - row
			if g.free(row, col) {
				g.placeBestFit(row, col, Directions...)
			}
		}
	}
}

// candidate is a scored placement.
type candidate struct {
	keyword   string
	direction Direction
	length    int
	crossings int
}

// better reports whether c beats the current best: more crossings, then the
// longer word. Earlier candidates win remaining ties.
func (c candidate) better(best candidate) bool {
	if c.crossings != best.crossings {
		return c.crossings > best.crossings
	}
	return c.length > best.length
}

// placeBestFit evaluates every remaining keyword in each of dirs at (row, col)
// and places the best candidate, if any.
func (g *Generator) placeBestFit(row, col int, dirs ...Direction) bool {
	if !g.free(row, col) {
		return false
	}

	var best candidate
	for _, key := range g.dict.Keywords() {
		word := []rune(key)
		for _, d := range dirs {
			if !fits(g.grid, d, word, row, col) {
				continue
			}
			c := candidate{
				keyword:   key,
				direction: d,
				length:    len(word),
				crossings: crossings(g.grid, d, word, row, col),
			}
			if c.better(best) {
				best = c
			}
		}
	}

	if best.keyword == "" {
		return false
	}
	g.Place(best.direction, best.keyword, row, col)
	return true
}

// placeByFrequency places the first ranked keyword with at least minLength
// letters that fits at (row, col) in direction d.
func (g *Generator) placeByFrequency(row, col, minLength int, d Direction) bool {
	if !g.free(row, col) {
		return false
	}
	for _, key := range g.ranking.Words() {
		if runeLen(key) < minLength {
			continue
		}
		if g.Fits(d, key, row, col) {
			g.Place(d, key, row, col)
			return true
		}
	}
	return false
}
