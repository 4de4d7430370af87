package server

import (
	"fmt"
	"time"

	"github.com/bodul/xpuzzle/internal/crossword"
	"github.com/vmihailenco/msgpack/v5"
)

// Puzzle is a generated grid together with how it came about.
// Stored puzzles are never mutated; fill-up produces a new puzzle.
type Puzzle struct {
	ID        string          `json:"id"`
	ParentID  string          `json:"parent_id,omitempty"`
	Grid      *crossword.Grid `json:"grid"`
	Placed    int             `json:"placed"`
	Remaining []string        `json:"remaining"` // keywords that found no place
	Seed      int64           `json:"seed"`
	Language  string          `json:"language"`
	CreatedAt time.Time       `json:"created_at"`
}

// puzzleRecord is the persisted form of a Puzzle.
type puzzleRecord struct {
	ID        string     `msgpack:"id"`
	ParentID  string     `msgpack:"parent,omitempty"`
	Cells     [][]string `msgpack:"cells"`
	Placed    int        `msgpack:"placed"`
	Remaining []string   `msgpack:"remaining"`
	Seed      int64      `msgpack:"seed"`
	Language  string     `msgpack:"lang"`
	CreatedAt time.Time  `msgpack:"created_at"`
}

func encodePuzzle(p *Puzzle) ([]byte, error) {
	return msgpack.Marshal(&puzzleRecord{
		ID:        p.ID,
		ParentID:  p.ParentID,
		Cells:     p.Grid.Encode(),
		Placed:    p.Placed,
		Remaining: p.Remaining,
		Seed:      p.Seed,
		Language:  p.Language,
		CreatedAt: p.CreatedAt,
	})
}

func decodePuzzle(b []byte) (*Puzzle, error) {
	var rec puzzleRecord
	if err := msgpack.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("decode puzzle: %w", err)
	}
	grid, err := crossword.DecodeGrid(rec.Cells)
	if err != nil {
		return nil, fmt.Errorf("decode puzzle %s: %w", rec.ID, err)
	}
	return &Puzzle{
		ID:        rec.ID,
		ParentID:  rec.ParentID,
		Grid:      grid,
		Placed:    rec.Placed,
		Remaining: rec.Remaining,
		Seed:      rec.Seed,
		Language:  rec.Language,
		CreatedAt: rec.CreatedAt,
	}, nil
}

// board is what players see: clue cells keep their text, letter cells are
// blank and everything else is "0".
func board(g *crossword.Grid) [][]string {
	out := make([][]string, g.Height())
	for i := range out {
		out[i] = make([]string, g.Width())
		for j := range out[i] {
			switch c := g.Get(i, j); c.Kind {
			case crossword.Letter:
				out[i][j] = ""
			case crossword.ClueStart:
				out[i][j] = c.Encode()
			default:
				out[i][j] = crossword.BlockedMarker
			}
		}
	}
	return out
}
