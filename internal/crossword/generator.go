// Package crossword places keywords into a clue-in-grid crossword.
//
// A Generator owns one puzzle session: the grid, the working dictionary and
// its letter-frequency ranking. Generation runs a fixed sequence of greedy
// passes over the shared grid; each pass only adds words and never moves or
// removes one. Words are best effort: a keyword that finds no legal spot
// simply stays in the dictionary.
//
// Each word starts at a clue cell and runs along one of six directions:
//
//	horizontal-right  letters right of the clue, left to right
//	vertical-down     letters below the clue, top to bottom
//	left-down         letters from the cell left of the clue, downwards
//	right-down        letters from the cell right of the clue, downwards
//	top-right         letters from the cell above the clue, rightwards
//	bottom-right      letters from the cell below the clue, rightwards
//
// A Generator is not safe for concurrent use.
package crossword

import (
	"math/rand"
	"time"

	"github.com/bodul/xpuzzle/internal/frequency"
	"github.com/bodul/xpuzzle/internal/logger"
	"github.com/charmbracelet/log"
)

// Options configures a Generator.
type Options struct {
	Seed   int64           // Seed for reproducible puzzles (0 = random)
	Table  frequency.Table // Letter frequencies; nil means German
	Logger *log.Logger     // nil means a "crossword" logger on stdout
}

// DefaultOptions returns options with a time-based seed and the German table.
func DefaultOptions() *Options {
	return &Options{Table: frequency.German}
}

// Generator is a single puzzle session.
type Generator struct {
	grid    *Grid
	dict    *Dictionary
	ranking *frequency.Ranking
	table   frequency.Table
	rng     *rand.Rand
	seed    int64
	log     *log.Logger
}

// New creates a session over a private copy of words. The grid is allocated by
// GenerateRandom or GenerateFromDictionary.
func New(words map[string]string, opts *Options) *Generator {
	return NewWithGrid(nil, words, opts)
}

// NewWithGrid creates a session that continues filling an existing grid.
// The grid is mutated in place.
func NewWithGrid(grid *Grid, words map[string]string, opts *Options) *Generator {
	if opts == nil {
		opts = DefaultOptions()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	table := opts.Table
	if table == nil {
		table = frequency.German
	}
	lg := opts.Logger
	if lg == nil {
		lg = logger.New("crossword")
	}

	g := &Generator{
		grid:  grid,
		table: table,
		rng:   rand.New(rand.NewSource(seed)),
		seed:  seed,
		log:   lg,
	}
	g.setDictionary(words)
	return g
}

// setDictionary swaps in a new working set and re-derives the ranking.
func (g *Generator) setDictionary(words map[string]string) {
	g.dict = NewDictionary(words)
	g.ranking = frequency.Rank(g.table, g.dict.Keywords())
}

// Grid returns the session grid, nil before the first generation.
func (g *Generator) Grid() *Grid {
	return g.grid
}

// Dictionary returns the words not placed yet.
func (g *Generator) Dictionary() *Dictionary {
	return g.dict
}

// Ranking returns the frequency ranking of the words not placed yet.
func (g *Generator) Ranking() *frequency.Ranking {
	return g.ranking
}

// Seed returns the seed of the session's random source.
func (g *Generator) Seed() int64 {
	return g.seed
}

// free reports whether (row, col) is on the grid and unoccupied.
func (g *Generator) free(row, col int) bool {
	return g.grid != nil && g.grid.InBounds(row, col) && !g.grid.IsOccupied(row, col)
}
