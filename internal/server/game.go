package server

import (
	"sync"
	"time"
)

// Player represents a connected player.
type Player struct {
	Pseudo   string    `json:"pseudo"`
	Color    string    `json:"color"`
	JoinedAt time.Time `json:"joined_at"`
}

// GameSession is a collaborative attempt at solving a puzzle.
type GameSession struct {
	ID        string             `json:"id"`
	GridID    string             `json:"grid_id"`
	Players   map[string]*Player `json:"players"`
	State     [][]string         `json:"state"` // letters entered so far [row][col]
	CreatedAt time.Time          `json:"created_at"`

	solution map[[2]int]rune
	mu       sync.Mutex
}

// Position is a cell coordinate.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// CheckResult compares the entered letters with the solution.
type CheckResult struct {
	Wrong  []Position `json:"wrong"`
	Filled int        `json:"filled"`
	Total  int        `json:"total"`
	Solved bool       `json:"solved"`
}

// playerColors is the palette assigned to players in order.
var playerColors = []string{
	"#2563eb", "#dc2626", "#16a34a", "#9333ea",
	"#ea580c", "#0891b2", "#c026d3", "#ca8a04",
}

func newGameSession(id string, p *Puzzle) *GameSession {
	state := make([][]string, p.Grid.Height())
	for i := range state {
		state[i] = make([]string, p.Grid.Width())
	}
	return &GameSession{
		ID:        id,
		GridID:    p.ID,
		Players:   make(map[string]*Player),
		State:     state,
		CreatedAt: time.Now(),
		solution:  p.Grid.Solution(),
	}
}

// AddPlayer adds a player to the session and returns the player.
func (g *GameSession) AddPlayer(pseudo string) *Player {
	g.mu.Lock()
	defer g.mu.Unlock()

	if p, ok := g.Players[pseudo]; ok {
		return p
	}

	p := &Player{
		Pseudo:   pseudo,
		Color:    playerColors[len(g.Players)%len(playerColors)],
		JoinedAt: time.Now(),
	}
	g.Players[pseudo] = p
	return p
}

func (g *GameSession) RemovePlayer(pseudo string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.Players, pseudo)
}

// PlayerList returns a snapshot of the connected players.
func (g *GameSession) PlayerList() []Player {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]Player, 0, len(g.Players))
	for _, p := range g.Players {
		out = append(out, *p)
	}
	return out
}

// Writable reports whether players may enter a letter at (row, col).
func (g *GameSession) Writable(row, col int) bool {
	_, ok := g.solution[[2]int{row, col}]
	return ok
}

// Move sets a cell like SetCell and also reports whether this move took the
// grid from unsolved to solved.
func (g *GameSession) Move(row, col int, value string) (ok, solved bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if row < 0 || row >= len(g.State) || col < 0 || col >= len(g.State[0]) {
		return false, false
	}
	was := g.check().Solved
	g.State[row][col] = value
	return true, !was && g.check().Solved
}

// SetCell sets a letter at a given position. Returns false if out of bounds.
func (g *GameSession) SetCell(row, col int, value string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if row < 0 || row >= len(g.State) || col < 0 || col >= len(g.State[0]) {
		return false
	}
	g.State[row][col] = value
	return true
}

// GetState returns a copy of the current game state.
func (g *GameSession) GetState() [][]string {
	g.mu.Lock()
	defer g.mu.Unlock()

	cp := make([][]string, len(g.State))
	for i, row := range g.State {
		cp[i] = make([]string, len(row))
		copy(cp[i], row)
	}
	return cp
}

// Check lists the filled cells that disagree with the solution.
func (g *GameSession) Check() CheckResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.check()
}

func (g *GameSession) check() CheckResult {
	res := CheckResult{Wrong: []Position{}, Total: len(g.solution)}
	for row, cells := range g.State {
		for col, v := range cells {
			if v == "" {
				continue
			}
			want, ok := g.solution[[2]int{row, col}]
			if !ok {
				continue
			}
			res.Filled++
			if v != string(want) {
				res.Wrong = append(res.Wrong, Position{Row: row, Col: col})
			}
		}
	}
	res.Solved = res.Total > 0 && res.Filled == res.Total && len(res.Wrong) == 0
	return res
}

// newBoard exposes crossword cells to players without the letters.
func newBoard(p *Puzzle) [][]string {
	if p == nil || p.Grid == nil {
		return nil
	}
	return board(p.Grid)
}
