// Package store abstracts persistence for rooms and players. The engine
// loads a full room aggregate, mutates it in memory, and writes the whole
// thing back; implementations only need per-entity create/get/update.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/DeadCoder-N/Shadow-Signal/internal/models"
)

// ErrRoomNotFound is returned by lookups when no room matches the code.
// The engine translates it into its own not-found family.
var ErrRoomNotFound = errors.New("store: room not found")

// Store is the persistence contract consumed by the game engine. Reads
// must observe the most recent committed write for a given room; rows
// handed out must be safe for the caller to mutate (copies, not shared
// pointers).
type Store interface {
	CreateRoom(ctx context.Context, room *models.Room) error
	GetRoomByCode(ctx context.Context, code string) (*models.Room, error)
	UpdateRoom(ctx context.Context, room *models.Room) error
	// CodeInUse reports whether a code is already claimed by a stored room.
	CodeInUse(ctx context.Context, code string) (bool, error)

	CreatePlayer(ctx context.Context, player *models.Player) error
	GetPlayersByRoom(ctx context.Context, roomID uuid.UUID) ([]*models.Player, error)
	UpdatePlayer(ctx context.Context, player *models.Player) error
	// UpdatePlayers persists a batch of player rows atomically where the
	// backend supports it.
	UpdatePlayers(ctx context.Context, players []*models.Player) error
}
