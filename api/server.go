package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/TakatsuMeow/voxuno/game/engine"
	"github.com/TakatsuMeow/voxuno/game/service"
	"github.com/gorilla/mux"
)

// Server represents the REST API server
type Server struct {
	service service.GameService
	router  *mux.Router
}

// NewServer creates a new API server
func NewServer(gameService service.GameService) *Server {
	s := &Server{
		service: gameService,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router.Use(loggingMiddleware)

	api := s.router.PathPrefix("/api").Subrouter()

	// Session lifecycle
	api.HandleFunc("/sessions", s.handleListSessions).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleStart).Methods("POST")
	api.HandleFunc("/sessions/{id}", s.handleStatus).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleReset).Methods("DELETE")

	// Game operations
	api.HandleFunc("/sessions/{id}/players", s.handleJoin).Methods("POST")
	api.HandleFunc("/sessions/{id}/begin", s.handleBegin).Methods("POST")
	api.HandleFunc("/sessions/{id}/play", s.handlePlay).Methods("POST")
	api.HandleFunc("/sessions/{id}/draw", s.handleDraw).Methods("POST")

	// Reads
	api.HandleFunc("/sessions/{id}/hand", s.handleHand).Methods("GET")
	api.HandleFunc("/sessions/{id}/top", s.handleTopWinners).Methods("GET")

	// Rules presets
	api.HandleFunc("/rules", s.handleListRules).Methods("GET")

	api.HandleFunc("/health", s.handleHealth).Methods("GET")
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// loggingMiddleware is the single request log point: one line per request
// with method, path, status, and duration. Handlers don't log; failures
// reach this line through the recorded status code.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("[API] %s %s status=%d duration=%s",
			r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Microsecond))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps the error taxonomy onto HTTP statuses: missing
// things are 404, lifecycle conflicts are 409, rejected commands are 422.
func respondServiceError(w http.ResponseWriter, err error) {
	respondError(w, statusForError(err), err.Error())
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrNoSuchSession),
		errors.Is(err, service.ErrEmptySessionNoOp):
		return http.StatusNotFound
	case errors.Is(err, service.ErrAlreadyInProgress),
		errors.Is(err, engine.ErrAlreadyStarted),
		errors.Is(err, engine.ErrAlreadyJoined):
		return http.StatusConflict
	case errors.Is(err, engine.ErrNotStarted),
		errors.Is(err, engine.ErrNotEnoughPlayers),
		errors.Is(err, engine.ErrTooManyPlayers),
		errors.Is(err, engine.ErrNotYourTurn),
		errors.Is(err, engine.ErrCardNotHeld),
		errors.Is(err, engine.ErrIllegalPlay),
		errors.Is(err, engine.ErrColorRequired),
		errors.Is(err, engine.ErrDeckExhausted):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// Session Handlers

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	info, err := s.service.Start(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, info)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	if err := s.service.Reset(r.Context(), sessionID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Session %s reset", sessionID),
	})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.service.ListSessions(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	// Most recently active first
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].LastActive.After(sessions[j].LastActive)
	})

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(sessions),
		"sessions": sessions,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	status, err := s.service.Status(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, status)
}

// Game Operation Handlers

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req struct {
		Player string `json:"player"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Player == "" {
		respondError(w, http.StatusBadRequest, "player is required")
		return
	}

	result, err := s.service.Join(r.Context(), sessionID, req.Player)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleBegin(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	result, err := s.service.Begin(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req struct {
		Player        string `json:"player"`
		Card          string `json:"card"`
		DeclaredColor string `json:"declared_color,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Player == "" || req.Card == "" {
		respondError(w, http.StatusBadRequest, "player and card are required")
		return
	}

	card, ok := engine.ParseCard(req.Card)
	if !ok {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("unrecognized card %q", req.Card))
		return
	}

	var declared engine.Color
	if req.DeclaredColor != "" {
		color, ok := engine.ParseColor(req.DeclaredColor)
		if !ok {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("unrecognized color %q", req.DeclaredColor))
			return
		}
		declared = color
	}

	result, err := s.service.Play(r.Context(), sessionID, req.Player, card, declared)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleDraw(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req struct {
		Player string `json:"player"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Player == "" {
		respondError(w, http.StatusBadRequest, "player is required")
		return
	}

	result, err := s.service.Draw(r.Context(), sessionID, req.Player)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Read Handlers

func (s *Server) handleHand(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	player := r.URL.Query().Get("player")
	if player == "" {
		respondError(w, http.StatusBadRequest, "player query parameter is required")
		return
	}

	hand, err := s.service.Hand(r.Context(), sessionID, player)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	rendered := make([]string, len(hand))
	for i, card := range hand {
		rendered[i] = card.String()
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"player": player,
		"cards":  hand,
		"hand":   rendered,
	})
}

func (s *Server) handleTopWinners(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	n := 10
	if nStr := r.URL.Query().Get("n"); nStr != "" {
		parsed, err := strconv.Atoi(nStr)
		if err != nil || parsed < 1 {
			respondError(w, http.StatusBadRequest, "n must be a positive integer")
			return
		}
		n = parsed
	}

	winners, err := s.service.TopWinners(r.Context(), sessionID, n)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"session_id": sessionID,
		"winners":    winners,
	})
}

// Rules Preset Handlers

func (s *Server) handleListRules(w http.ResponseWriter, r *http.Request) {
	rules, err := s.service.ListRules(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, rules)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
