// Package server exposes puzzle generation, the word bank and collaborative
// play over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bodul/xpuzzle/internal/config"
	"github.com/bodul/xpuzzle/internal/crossword"
	"github.com/bodul/xpuzzle/internal/frequency"
	"github.com/bodul/xpuzzle/internal/logger"
	"github.com/bodul/xpuzzle/internal/wordbank"
	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	maxBodySize       = 1 << 20
	defaultWordLimit  = 50
	maxWordLimit      = 500
	clueTimeout       = 60 * time.Second
	maxPseudoLength   = 20
	generateRateSpan  = time.Minute
	moveRateSpan      = time.Second
	contentTypeJSON   = "application/json"
	contentTypeText   = "text/plain; charset=utf-8"
	securityPolicyCSP = "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'"
)

// Server is the main HTTP server.
type Server struct {
	mux      *http.ServeMux
	store    *Store
	words    *wordbank.Bank
	clues    ClueSuggester
	cfg      *config.Config
	sse      *Broadcaster
	validate *validator.Validate
	registry *prometheus.Registry
	metrics  *metrics
	log      *log.Logger
	genLog   *log.Logger

	generateRL *rateLimiter
	moveRL     *rateLimiter
}

// NewServer creates a configured HTTP server. clues may be nil, which
// disables clue suggestion; cfg may be nil for defaults.
func NewServer(store *Store, words *wordbank.Bank, clues ClueSuggester, cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if words == nil {
		words = wordbank.New()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s := &Server{
		mux:        http.NewServeMux(),
		store:      store,
		words:      words,
		clues:      clues,
		cfg:        cfg,
		sse:        NewBroadcaster(),
		validate:   validator.New(),
		registry:   reg,
		metrics:    newMetrics(reg),
		log:        logger.New("server"),
		genLog:     logger.New("crossword"),
		generateRL: newRateLimiter(cfg.Server.UploadRate, generateRateSpan),
		moveRL:     newRateLimiter(cfg.Server.MoveRate, moveRateSpan),
	}
	s.sse.onChange = s.metrics.streams.Add
	s.routes()
	return s
}

func (s *Server) routes() {
	// Puzzle API
	s.mux.HandleFunc("POST /api/grids", s.handleCreateGrid)
	s.mux.HandleFunc("GET /api/grids", s.handleListGrids)
	s.mux.HandleFunc("GET /api/grids/{id}", s.handleGetGrid)
	s.mux.HandleFunc("GET /api/grids/{id}/text", s.handleGridText)
	s.mux.HandleFunc("POST /api/grids/{id}/fill", s.handleFillGrid)

	// Word bank and clues
	s.mux.HandleFunc("GET /api/words", s.handleListWords)
	s.mux.HandleFunc("POST /api/words", s.handleAddWords)
	s.mux.HandleFunc("POST /api/clues", s.handleSuggestClues)

	// Game API
	s.mux.HandleFunc("POST /api/games", s.handleCreateGame)
	s.mux.HandleFunc("GET /api/games", s.handleListGames)
	s.mux.HandleFunc("GET /api/games/{id}", s.handleGetGame)
	s.mux.HandleFunc("POST /api/games/{id}/join", s.handleJoinGame)
	s.mux.HandleFunc("POST /api/games/{id}/move", s.handleMove)
	s.mux.HandleFunc("GET /api/games/{id}/check", s.handleCheckGame)
	s.mux.HandleFunc("GET /api/games/{id}/events", s.handleGameEvents)

	s.mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
	w.Header().Set("Content-Security-Policy", securityPolicyCSP)
	s.mux.ServeHTTP(w, r)
}

// --- Puzzle handlers ---

type createGridRequest struct {
	Words    map[string]string `json:"words" validate:"required,min=1"`
	Width    int               `json:"width" validate:"omitempty,min=3,max=30"`
	Height   int               `json:"height" validate:"omitempty,min=3,max=30"`
	Seed     int64             `json:"seed"`
	Language string            `json:"language" validate:"omitempty,oneof=de en"`
}

// POST /api/grids: generate a puzzle from the given words.
// With width and height the grid has that fixed size, otherwise it is
// sized from the words and grown until they are used up.
func (s *Server) handleCreateGrid(w http.ResponseWriter, r *http.Request) {
	if !s.allow(s.generateRL, "generate", r) {
		jsonError(w, "too many requests, try again later", http.StatusTooManyRequests)
		return
	}

	var req createGridRequest
	if !s.decode(w, r, &req) {
		return
	}
	if (req.Width == 0) != (req.Height == 0) {
		jsonError(w, "width and height must be given together", http.StatusBadRequest)
		return
	}

	words, rejected := wordbank.NormalizeAll(req.Words)
	if len(words) == 0 {
		jsonError(w, "no valid keywords", http.StatusBadRequest)
		return
	}
	if limit := s.cfg.Generator.MaxWords; limit > 0 && len(words) > limit {
		jsonError(w, fmt.Sprintf("too many keywords (max %d)", limit), http.StatusBadRequest)
		return
	}

	lang := s.language(req.Language)
	start := time.Now()
	g := s.newGenerator(nil, words, req.Seed, lang)

	mode := "auto"
	var grid *crossword.Grid
	if req.Width > 0 {
		mode = "fixed"
		grid = g.GenerateRandom(req.Width, req.Height)
	} else {
		grid = g.GenerateFromDictionary()
	}

	p := s.finish(mode, start, g, &Puzzle{Grid: grid, Language: lang})
	s.words.AddAll(words)

	saved, err := s.store.SavePuzzle(p)
	if err != nil {
		s.log.Errorf("save puzzle: %v", err)
		jsonError(w, "could not store puzzle", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, puzzleCreated{saved, rejected})
}

// puzzleCreated is the response of create and fill: the stored puzzle plus
// the keywords that could not be normalized.
type puzzleCreated struct {
	*Puzzle
	Rejected []string `json:"rejected,omitempty"`
}

// GET /api/grids: list all puzzles.
func (s *Server) handleListGrids(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.ListPuzzles())
}

// GET /api/grids/{id}
func (s *Server) handleGetGrid(w http.ResponseWriter, r *http.Request) {
	p := s.store.GetPuzzle(r.PathValue("id"))
	if p == nil {
		jsonError(w, "puzzle not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// GET /api/grids/{id}/text: the console rendering of a puzzle.
func (s *Server) handleGridText(w http.ResponseWriter, r *http.Request) {
	p := s.store.GetPuzzle(r.PathValue("id"))
	if p == nil {
		jsonError(w, "puzzle not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", contentTypeText)
	if err := p.Grid.Print(w); err != nil {
		s.log.Errorf("print puzzle %s: %v", p.ID, err)
	}
}

type fillRequest struct {
	Words    map[string]string `json:"words"`
	Count    int               `json:"count" validate:"omitempty,min=1,max=2000"`
	Seed     int64             `json:"seed"`
	Language string            `json:"language" validate:"omitempty,oneof=de en"`
}

// POST /api/grids/{id}/fill: place more words on a copy of a puzzle.
// Words come from the request or, when it has none, from the word bank.
func (s *Server) handleFillGrid(w http.ResponseWriter, r *http.Request) {
	if !s.allow(s.generateRL, "fill", r) {
		jsonError(w, "too many requests, try again later", http.StatusTooManyRequests)
		return
	}

	p := s.store.GetPuzzle(r.PathValue("id"))
	if p == nil {
		jsonError(w, "puzzle not found", http.StatusNotFound)
		return
	}

	var req fillRequest
	if !s.decode(w, r, &req) {
		return
	}

	var source map[string]string
	var rejected []string
	if len(req.Words) > 0 {
		source, rejected = wordbank.NormalizeAll(req.Words)
	} else {
		source = s.words.Dictionary()
	}
	for _, e := range p.Grid.Entries() {
		delete(source, e.Keyword)
	}
	if len(source) == 0 {
		jsonError(w, "no words to fill with", http.StatusBadRequest)
		return
	}

	count := req.Count
	if count == 0 {
		count = s.cfg.Generator.FillCount
	}
	lang := req.Language
	if lang == "" {
		lang = p.Language
	}
	lang = s.language(lang)

	start := time.Now()
	grid := p.Grid.Clone()
	g := s.newGenerator(grid, nil, req.Seed, lang)
	g.FillUp(source, count)

	np := s.finish("fill", start, g, &Puzzle{ParentID: p.ID, Grid: grid, Language: lang})
	saved, err := s.store.SavePuzzle(np)
	if err != nil {
		s.log.Errorf("save puzzle: %v", err)
		jsonError(w, "could not store puzzle", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, puzzleCreated{saved, rejected})
}

func (s *Server) newGenerator(grid *crossword.Grid, words map[string]string, seed int64, lang string) *crossword.Generator {
	opts := &crossword.Options{
		Seed:   seed,
		Table:  frequency.ForLanguage(lang),
		Logger: s.genLog,
	}
	if grid != nil {
		return crossword.NewWithGrid(grid, words, opts)
	}
	return crossword.New(words, opts)
}

// finish fills in the generation results of p and records metrics.
func (s *Server) finish(mode string, start time.Time, g *crossword.Generator, p *Puzzle) *Puzzle {
	p.Placed = p.Grid.CountPlaced()
	p.Remaining = g.Dictionary().Keywords()
	p.Seed = g.Seed()

	s.metrics.generations.WithLabelValues(mode).Inc()
	s.metrics.generationTime.WithLabelValues(mode).Observe(time.Since(start).Seconds())
	s.metrics.wordsPlaced.Observe(float64(p.Placed))
	s.metrics.wordsRemaining.Observe(float64(len(p.Remaining)))
	return p
}

func (s *Server) language(lang string) string {
	if lang == "" {
		lang = s.cfg.Generator.Language
	}
	return strings.ToLower(lang)
}

// --- Word bank handlers ---

// GET /api/words?prefix=&limit=
func (s *Server) handleListWords(w http.ResponseWriter, r *http.Request) {
	limit := defaultWordLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			jsonError(w, "limit must be a positive number", http.StatusBadRequest)
			return
		}
		limit = min(n, maxWordLimit)
	}

	entries := s.words.Lookup(r.URL.Query().Get("prefix"), limit)
	if entries == nil {
		entries = []wordbank.Entry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total": s.words.Len(),
		"words": entries,
	})
}

type addWordsRequest struct {
	Words map[string]string `json:"words" validate:"required,min=1"`
}

// POST /api/words
func (s *Server) handleAddWords(w http.ResponseWriter, r *http.Request) {
	var req addWordsRequest
	if !s.decode(w, r, &req) {
		return
	}
	rejected := s.words.AddAll(req.Words)
	writeJSON(w, http.StatusOK, map[string]any{
		"added":    len(req.Words) - len(rejected),
		"rejected": rejected,
		"total":    s.words.Len(),
	})
}

type cluesRequest struct {
	Keywords []string `json:"keywords" validate:"required,min=1,max=50,dive,required"`
	Language string   `json:"language" validate:"omitempty,oneof=de en"`
	Save     bool     `json:"save"`
}

// POST /api/clues: ask Gemini for clues, optionally adding them to the bank.
func (s *Server) handleSuggestClues(w http.ResponseWriter, r *http.Request) {
	if !s.allow(s.generateRL, "clues", r) {
		jsonError(w, "too many requests, try again later", http.StatusTooManyRequests)
		return
	}
	if s.clues == nil {
		jsonError(w, "clue suggestion is not configured", http.StatusServiceUnavailable)
		return
	}

	var req cluesRequest
	if !s.decode(w, r, &req) {
		return
	}

	keywords := make([]string, 0, len(req.Keywords))
	var rejected []string
	for _, k := range req.Keywords {
		if n, ok := wordbank.Normalize(k); ok {
			keywords = append(keywords, n)
		} else {
			rejected = append(rejected, k)
		}
	}
	if len(keywords) == 0 {
		jsonError(w, "no valid keywords", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), clueTimeout)
	defer cancel()
	clues, err := s.clues.SuggestClues(ctx, keywords, s.language(req.Language))
	if err != nil {
		s.log.Errorf("suggest clues: %v", err)
		jsonError(w, "clue suggestion failed", http.StatusBadGateway)
		return
	}
	if req.Save {
		s.words.AddAll(clues)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"clues":    clues,
		"rejected": rejected,
	})
}

// --- Game handlers ---

// gameView is the player-facing state of a session. Board hides the letters.
type gameView struct {
	ID        string     `json:"id"`
	GridID    string     `json:"grid_id"`
	Players   []Player   `json:"players"`
	State     [][]string `json:"state"`
	Board     [][]string `json:"board"`
	CreatedAt time.Time  `json:"created_at"`
}

func (s *Server) view(g *GameSession) gameView {
	return gameView{
		ID:        g.ID,
		GridID:    g.GridID,
		Players:   g.PlayerList(),
		State:     g.GetState(),
		Board:     newBoard(s.store.GetPuzzle(g.GridID)),
		CreatedAt: g.CreatedAt,
	}
}

// POST /api/games: create a game from a puzzle.
func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GridID string `json:"grid_id" validate:"required"`
	}
	if !s.decode(w, r, &req) {
		return
	}

	game, err := s.store.CreateGame(req.GridID)
	if errors.Is(err, ErrNotFound) {
		jsonError(w, "puzzle not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.log.Errorf("create game: %v", err)
		jsonError(w, "could not create game", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, s.view(game))
}

// GET /api/games
func (s *Server) handleListGames(w http.ResponseWriter, _ *http.Request) {
	games := s.store.ListGames()
	out := make([]gameView, 0, len(games))
	for _, g := range games {
		out = append(out, s.view(g))
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /api/games/{id}: get current game state.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	game := s.store.GetGame(r.PathValue("id"))
	if game == nil {
		jsonError(w, "game not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, s.view(game))
}

// POST /api/games/{id}/join: join a game with a pseudo.
func (s *Server) handleJoinGame(w http.ResponseWriter, r *http.Request) {
	game := s.store.GetGame(r.PathValue("id"))
	if game == nil {
		jsonError(w, "game not found", http.StatusNotFound)
		return
	}

	var req struct {
		Pseudo string `json:"pseudo" validate:"required"`
	}
	if !s.decode(w, r, &req) {
		return
	}

	pseudo := sanitizePseudo(req.Pseudo)
	if pseudo == "" {
		jsonError(w, "invalid pseudo", http.StatusBadRequest)
		return
	}

	player := game.AddPlayer(pseudo)
	s.sse.Publish(game.ID, "player_joined", map[string]any{
		"pseudo": player.Pseudo,
		"color":  player.Color,
	})
	writeJSON(w, http.StatusOK, player)
}

type moveRequest struct {
	Pseudo string `json:"pseudo"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Value  string `json:"value"`
}

// POST /api/games/{id}/move: place a letter.
func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	if !s.allow(s.moveRL, "move", r) {
		jsonError(w, "too many requests, try again later", http.StatusTooManyRequests)
		return
	}

	game := s.store.GetGame(r.PathValue("id"))
	if game == nil {
		jsonError(w, "game not found", http.StatusNotFound)
		return
	}

	var req moveRequest
	if !s.decode(w, r, &req) {
		return
	}

	// Value must be empty (erase) or a single letter A-Z.
	value := strings.ToUpper(strings.TrimSpace(req.Value))
	if value != "" && (utf8.RuneCountInString(value) != 1 || value < "A" || value > "Z") {
		jsonError(w, "invalid value: one letter A-Z or empty", http.StatusBadRequest)
		return
	}

	p := s.store.GetPuzzle(game.GridID)
	if p == nil || !p.Grid.InBounds(req.Row, req.Col) {
		jsonError(w, "position out of bounds", http.StatusBadRequest)
		return
	}
	if !game.Writable(req.Row, req.Col) {
		jsonError(w, "not a letter cell", http.StatusBadRequest)
		return
	}
	ok, solved := game.Move(req.Row, req.Col, value)
	if !ok {
		jsonError(w, "position out of bounds", http.StatusBadRequest)
		return
	}
	s.metrics.moves.Inc()

	s.sse.Publish(game.ID, "cell_update", map[string]any{
		"row":    req.Row,
		"col":    req.Col,
		"value":  value,
		"pseudo": sanitizePseudo(req.Pseudo),
	})
	if solved {
		s.sse.Publish(game.ID, "solved", map[string]any{"pseudo": sanitizePseudo(req.Pseudo)})
	}

	w.WriteHeader(http.StatusNoContent)
}

// GET /api/games/{id}/check: compare entered letters with the solution.
func (s *Server) handleCheckGame(w http.ResponseWriter, r *http.Request) {
	game := s.store.GetGame(r.PathValue("id"))
	if game == nil {
		jsonError(w, "game not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, game.Check())
}

// GET /api/games/{id}/events: SSE stream.
func (s *Server) handleGameEvents(w http.ResponseWriter, r *http.Request) {
	game := s.store.GetGame(r.PathValue("id"))
	if game == nil {
		jsonError(w, "game not found", http.StatusNotFound)
		return
	}

	playerPseudo := sanitizePseudo(r.URL.Query().Get("pseudo"))

	s.sse.ServeSSE(w, r, game.ID, func(sub *subscriber) {
		evt, err := json.Marshal(map[string]any{
			"type":    "game_state",
			"state":   game.GetState(),
			"players": game.PlayerList(),
		})
		if err == nil {
			sub.ch <- string(evt)
		}
	}, func() {
		if playerPseudo != "" {
			game.RemovePlayer(playerPseudo)
			s.sse.Publish(game.ID, "player_left", map[string]any{"pseudo": playerPseudo})
		}
	})
}

// --- Helpers ---

func (s *Server) allow(rl *rateLimiter, route string, r *http.Request) bool {
	if rl.allow(clientIP(r)) {
		return true
	}
	s.metrics.rateLimited.WithLabelValues(route).Inc()
	return false
}

// decode reads a JSON body into v and validates it. An empty body decodes
// to the zero value. On failure the error response is already written.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		jsonError(w, validationMessage(err), http.StatusBadRequest)
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}
	fe := verrs[0]
	if fe.Param() != "" {
		return fmt.Sprintf("field %s must satisfy %s=%s", strings.ToLower(fe.Field()), fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("field %s must satisfy %s", strings.ToLower(fe.Field()), fe.Tag())
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func sanitizePseudo(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > maxPseudoLength {
		s = string([]rune(s)[:maxPseudoLength])
	}
	return s
}
