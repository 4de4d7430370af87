package server

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("not found")

const puzzleKeyPrefix = "grid/"

// Store holds puzzles and game sessions in memory. With a database attached,
// puzzles are also written through to it and reloaded on open.
type Store struct {
	mu      sync.RWMutex
	puzzles map[string]*Puzzle
	games   map[string]*GameSession
	db      *badger.DB
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		puzzles: make(map[string]*Puzzle),
		games:   make(map[string]*GameSession),
	}
}

// OpenBadger opens a database at path, or an in-memory one when path is empty.
func OpenBadger(path string) (*badger.DB, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(path, 0o750); err != nil {
			return nil, fmt.Errorf("create store directory %s: %w", path, err)
		}
		opts = badger.DefaultOptions(path)
	}
	db, err := badger.Open(opts.WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return db, nil
}

// OpenStore creates a store backed by db and loads every puzzle it holds.
func OpenStore(db *badger.DB) (*Store, error) {
	s := NewStore()
	s.db = db

	err := db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(puzzleKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(v []byte) error {
				p, err := decodePuzzle(v)
				if err != nil {
					return err
				}
				s.puzzles[p.ID] = p
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load puzzles: %w", err)
	}
	return s, nil
}

// Close closes the attached database, if any.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SavePuzzle assigns an ID and creation time and stores the puzzle.
func (s *Store) SavePuzzle(p *Puzzle) (*Puzzle, error) {
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now()

	if s.db != nil {
		b, err := encodePuzzle(p)
		if err != nil {
			return nil, err
		}
		err = s.db.Update(func(txn *badger.Txn) error {
			return txn.Set([]byte(puzzleKeyPrefix+p.ID), b)
		})
		if err != nil {
			return nil, fmt.Errorf("persist puzzle: %w", err)
		}
	}

	s.mu.Lock()
	s.puzzles[p.ID] = p
	s.mu.Unlock()
	return p, nil
}

// GetPuzzle returns a puzzle by ID, or nil if not found.
func (s *Store) GetPuzzle(id string) *Puzzle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.puzzles[id]
}

// ListPuzzles returns all puzzles, most recent first.
func (s *Store) ListPuzzles() []*Puzzle {
	s.mu.RLock()
	list := make([]*Puzzle, 0, len(s.puzzles))
	for _, p := range s.puzzles {
		list = append(list, p)
	}
	s.mu.RUnlock()

	slices.SortFunc(list, func(a, b *Puzzle) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return list
}

// CreateGame starts a play session on a stored puzzle.
func (s *Store) CreateGame(puzzleID string) (*GameSession, error) {
	p := s.GetPuzzle(puzzleID)
	if p == nil {
		return nil, fmt.Errorf("puzzle %s: %w", puzzleID, ErrNotFound)
	}

	game := newGameSession(uuid.NewString(), p)

	s.mu.Lock()
	s.games[game.ID] = game
	s.mu.Unlock()
	return game, nil
}

// GetGame returns a game session by ID, or nil if not found.
func (s *Store) GetGame(id string) *GameSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.games[id]
}

func (s *Store) ListGames() []*GameSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*GameSession, 0, len(s.games))
	for _, g := range s.games {
		list = append(list, g)
	}
	return list
}
