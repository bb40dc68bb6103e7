package agent

import (
	"encoding/json"
	"net/http"
	"slices"
	"strconv"
	"sync"
	"time"

	"blackwhite/game"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

type MoveRequest struct {
	Board  game.Board  `json:"board"`
	Player game.Player `json:"player"`
}

type MoveResponse struct {
	Move game.Move `json:"move"`
}

type OutcomeRequest struct {
	Before game.Board `json:"before"`
	Move   game.Move  `json:"move"`
	Reward float64    `json:"reward"`
	After  game.Board `json:"after"`
}

type OutcomeResponse struct {
	Applied float64 `json:"applied"`
	Value   float64 `json:"value"`
}

const defaultInspectLimit = 10

type server struct {
	mu     sync.Mutex // Serializes all access to the roster's tables
	roster *Roster
}

// NewServer exposes every agent of the roster over HTTP under
// /agents/{variant}/{side}.
func NewServer(roster *Roster) http.Handler {
	s := &server{roster: roster}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(hlog.NewHandler(log.Logger))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Dur("duration", duration).
			Msg("request")
	}))

	r.Post("/save", s.handleSaveAll)
	r.Route("/agents/{variant}/{side}", func(r chi.Router) {
		r.Post("/move", s.handleMove)
		r.Post("/outcome", s.handleOutcome)
		r.Post("/save", s.handleSave)
		r.Post("/load", s.handleLoad)
		r.Get("/table", s.handleTable)
	})
	return r
}

func (s *server) agent(w http.ResponseWriter, r *http.Request) (*TableAgent, bool) {
	v, err := ParseVariant(chi.URLParam(r, "variant"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return nil, false
	}
	side, err := game.ParsePlayer(chi.URLParam(r, "side"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return nil, false
	}
	return s.roster.Get(side, v), true
}

func (s *server) handleMove(w http.ResponseWriter, r *http.Request) {
	a, ok := s.agent(w, r)
	if !ok {
		return
	}
	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	if !req.Player.Valid() {
		http.Error(w, "bad request: missing player", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	move, found, _ := a.SelectMove(req.Board, req.Player)
	s.mu.Unlock()

	if !found {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, MoveResponse{Move: move})
}

func (s *server) handleOutcome(w http.ResponseWriter, r *http.Request) {
	a, ok := s.agent(w, r)
	if !ok {
		return
	}
	var req OutcomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	if !slices.Contains(game.LegalMoves(req.Before, a.Side()), req.Move) {
		http.Error(w, "bad request: move "+req.Move.String()+" is not legal for "+a.Side().Name(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	applied, value := a.Train(req.Before, req.Move, req.Reward, req.After)
	s.mu.Unlock()

	writeJSON(w, OutcomeResponse{Applied: applied, Value: value})
}

func (s *server) handleSave(w http.ResponseWriter, r *http.Request) {
	a, ok := s.agent(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	err := a.Save()
	s.mu.Unlock()
	if err != nil {
		log.Error().Err(err).Msg("failed to save q-table")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleLoad(w http.ResponseWriter, r *http.Request) {
	a, ok := s.agent(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	err := a.Load()
	s.mu.Unlock()
	if err != nil {
		log.Error().Err(err).Msg("failed to load q-table")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleSaveAll(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	err := s.roster.SaveAll()
	s.mu.Unlock()
	if err != nil {
		log.Error().Err(err).Msg("failed to save q-tables")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleTable(w http.ResponseWriter, r *http.Request) {
	a, ok := s.agent(w, r)
	if !ok {
		return
	}
	limit := defaultInspectLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "bad request: invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	s.mu.Lock()
	inspection := a.Inspect(limit)
	s.mu.Unlock()

	writeJSON(w, inspection)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "failed to encode response: "+err.Error(), http.StatusInternalServerError)
	}
}
