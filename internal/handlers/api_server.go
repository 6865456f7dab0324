// internal/handlers/api_server.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/DeadCoder-N/Shadow-Signal/internal/game"
	"github.com/DeadCoder-N/Shadow-Signal/internal/middleware"
)

// APIServer bundles the room service with its HTTP routes.
type APIServer struct {
	Service *game.Service
	Logger  *log.Logger
}

// NewAPIServer constructs an APIServer around a room service.
func NewAPIServer(svc *game.Service, logger *log.Logger) *APIServer {
	return &APIServer{Service: svc, Logger: logger}
}

// Routes wires the REST surface. Clients poll GET /api/rooms/{code} to
// observe phase changes; every other route is a single engine action.
func (s *APIServer) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("POST /api/rooms", s.handleCreateRoom)
	mux.HandleFunc("POST /api/rooms/{code}/join", s.handleJoinRoom)
	mux.HandleFunc("GET /api/rooms/{code}", s.handleGetRoom)
	mux.HandleFunc("POST /api/rooms/{code}/start", s.handleStartGame)
	mux.HandleFunc("POST /api/rooms/{code}/clue", s.handleSubmitClue)
	mux.HandleFunc("POST /api/rooms/{code}/vote", s.handleVote)
	mux.HandleFunc("POST /api/rooms/{code}/eliminate", s.handleEliminate)
	mux.HandleFunc("POST /api/rooms/{code}/advance", s.handleAdvance)
	mux.HandleFunc("POST /api/rooms/{code}/restart", s.handleRestart)

	return middleware.LogMiddleware(s.Logger)(mux)
}

func (s *APIServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("failed to encode response: %v", err)
	}
}

// writeError maps engine error families onto HTTP statuses and emits a
// JSON error body.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, game.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, game.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, game.ErrInvalidState):
		status = http.StatusConflict
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// decodeBody parses a JSON request body into dst.
func decodeBody(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return nil
}
