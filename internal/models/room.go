package models

import (
	"time"

	"github.com/google/uuid"
)

// Mode selects which pair of roles a game hands out.
type Mode string

const (
	// ModeInfiltrator pits citizens (who share a word) against one
	// infiltrator who receives no word at all.
	ModeInfiltrator Mode = "infiltrator"
	// ModeSpy pits agents (who share a word) against one spy who receives
	// a near-synonym decoy of that word.
	ModeSpy Mode = "spy"
)

// ValidMode reports whether m is one of the supported game modes.
func ValidMode(m Mode) bool {
	return m == ModeInfiltrator || m == ModeSpy
}

// Status is a room's phase in the game state machine.
type Status string

const (
	StatusLobby     Status = "lobby"
	StatusSelecting Status = "selecting"
	StatusVoting    Status = "voting"
	StatusEnded     Status = "ended"
)

// Winner identifies which side won an ended game.
type Winner string

const (
	WinnerCitizens Winner = "citizens"
	WinnerSpecial  Winner = "special"
)

// Room is a single short-lived game session, joined via its 4-letter code.
// Options is the current round's multiple-choice clue set; it is empty
// before the first round and regenerated on every entry into the
// selecting phase.
type Room struct {
	ID                  uuid.UUID `json:"id"`
	Code                string    `json:"code"`
	Mode                Mode      `json:"mode"`
	Status              Status    `json:"status"`
	CurrentTurnPlayerID uuid.UUID `json:"currentTurnPlayerId"`
	Options             []string  `json:"options"`
	Winner              Winner    `json:"winner,omitempty"`

	// PhaseStartedAt records when the current phase began; callers poll it
	// to drive deadline policy. LobbyStartedAt is set once the lobby first
	// reaches the minimum roster size.
	PhaseStartedAt *time.Time `json:"phaseStartedAt,omitempty"`
	LobbyStartedAt *time.Time `json:"lobbyStartedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Clone returns a deep copy of the room.
func (r *Room) Clone() *Room {
	cp := *r
	if r.Options != nil {
		cp.Options = append([]string(nil), r.Options...)
	}
	if r.PhaseStartedAt != nil {
		t := *r.PhaseStartedAt
		cp.PhaseStartedAt = &t
	}
	if r.LobbyStartedAt != nil {
		t := *r.LobbyStartedAt
		cp.LobbyStartedAt = &t
	}
	return &cp
}
