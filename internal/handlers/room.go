package handlers

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/DeadCoder-N/Shadow-Signal/internal/game"
	"github.com/DeadCoder-N/Shadow-Signal/internal/models"
)

type createRoomRequest struct {
	Mode models.Mode `json:"mode"`
}

type joinRoomRequest struct {
	Name string `json:"name"`
}

type submitClueRequest struct {
	PlayerID uuid.UUID `json:"playerId"`
	Clue     string    `json:"clue"`
}

type voteRequest struct {
	VoterID  uuid.UUID `json:"voterId"`
	TargetID uuid.UUID `json:"targetId"`
}

type roomStateResponse struct {
	Room    *models.Room     `json:"room"`
	Players []*models.Player `json:"players"`
}

func (s *APIServer) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", game.ErrValidation))
		return
	}

	room, err := s.Service.CreateRoom(r.Context(), req.Mode)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"room": room})
}

func (s *APIServer) handleJoinRoom(w http.ResponseWriter, r *http.Request) {
	var req joinRoomRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", game.ErrValidation))
		return
	}

	player, room, err := s.Service.JoinRoom(r.Context(), r.PathValue("code"), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"player": player, "room": room})
}

func (s *APIServer) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	room, players, err := s.Service.GetRoomState(r.Context(), r.PathValue("code"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, roomStateResponse{Room: room, Players: players})
}

func (s *APIServer) handleStartGame(w http.ResponseWriter, r *http.Request) {
	room, players, err := s.Service.StartGame(r.Context(), r.PathValue("code"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, roomStateResponse{Room: room, Players: players})
}

func (s *APIServer) handleSubmitClue(w http.ResponseWriter, r *http.Request) {
	var req submitClueRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", game.ErrValidation))
		return
	}

	room, err := s.Service.SubmitClue(r.Context(), r.PathValue("code"), req.PlayerID, req.Clue)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"room": room})
}

func (s *APIServer) handleVote(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", game.ErrValidation))
		return
	}

	room, err := s.Service.CastVote(r.Context(), r.PathValue("code"), req.VoterID, req.TargetID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"room": room})
}

func (s *APIServer) handleEliminate(w http.ResponseWriter, r *http.Request) {
	out, room, _, err := s.Service.Eliminate(r.Context(), r.PathValue("code"))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := map[string]interface{}{
		"room":       room,
		"eliminated": out.Eliminated,
	}
	if out.Winner != "" {
		resp["winner"] = out.Winner
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *APIServer) handleAdvance(w http.ResponseWriter, r *http.Request) {
	out, room, err := s.Service.ForceAdvance(r.Context(), r.PathValue("code"))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := map[string]interface{}{
		"room":      room,
		"newStatus": room.Status,
	}
	if out != nil && out.Eliminated != nil {
		resp["eliminated"] = out.Eliminated
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *APIServer) handleRestart(w http.ResponseWriter, r *http.Request) {
	room, players, err := s.Service.RestartGame(r.Context(), r.PathValue("code"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, roomStateResponse{Room: room, Players: players})
}
