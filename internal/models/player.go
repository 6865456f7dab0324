package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is a player's secret identity for the current game.
type Role string

const (
	RoleNone        Role = ""
	RoleCitizen     Role = "citizen"
	RoleInfiltrator Role = "infiltrator"
	RoleSpy         Role = "spy"
	RoleAgent       Role = "agent"
)

// IsSpecial reports whether the role is the lone odd-one-out role for
// either mode.
func (r Role) IsSpecial() bool {
	return r == RoleInfiltrator || r == RoleSpy
}

// Player is one participant in a room. Role, Word and Clue are per-game
// state assigned at round start; Votes and VotedFor are per-voting-round
// state and reset whenever a tally concludes.
type Player struct {
	ID     uuid.UUID `json:"id"`
	RoomID uuid.UUID `json:"roomId"`
	Name   string    `json:"name"`
	IsHost bool      `json:"isHost"`

	Role  Role   `json:"role,omitempty"`
	Word  string `json:"word"`
	Clue  string `json:"clue,omitempty"`
	Alive bool   `json:"isAlive"`

	Votes    int       `json:"votes"`
	VotedFor uuid.UUID `json:"-"`

	JoinedAt time.Time `json:"joinedAt"`
}

// Clone returns a copy of the player.
func (p *Player) Clone() *Player {
	cp := *p
	return &cp
}

// AlivePlayers filters the roster down to living players, preserving order.
func AlivePlayers(players []*Player) []*Player {
	alive := make([]*Player, 0, len(players))
	for _, p := range players {
		if p.Alive {
			alive = append(alive, p)
		}
	}
	return alive
}

// AllCluesSubmitted reports whether every living player has a non-empty
// clue for the current round.
func AllCluesSubmitted(players []*Player) bool {
	for _, p := range AlivePlayers(players) {
		if p.Clue == "" {
			return false
		}
	}
	return true
}

// MostVoted scans the roster in order and returns the first player whose
// vote count exceeds the running maximum, along with that maximum. The
// first-seen-max tie break is load-bearing: clients rely on it being
// stable across repeated tallies of the same votes.
func MostVoted(players []*Player) (*Player, int) {
	maxVotes := -1
	var target *Player
	for _, p := range players {
		if p.Votes > maxVotes {
			maxVotes = p.Votes
			target = p
		}
	}
	return target, maxVotes
}

// FindPlayer returns the roster entry with the given id, or nil.
func FindPlayer(players []*Player, id uuid.UUID) *Player {
	for _, p := range players {
		if p.ID == id {
			return p
		}
	}
	return nil
}
