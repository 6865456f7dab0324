package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/DeadCoder-N/Shadow-Signal/internal/models"
)

// MemoryStore keeps rooms and players in mutex-guarded maps. It backs
// tests and single-process deployments; everything handed out is a deep
// copy so callers can mutate aggregates freely before writing them back.
type MemoryStore struct {
	mu      sync.Mutex
	rooms   map[uuid.UUID]*models.Room
	byCode  map[string]uuid.UUID
	players map[uuid.UUID]*models.Player
}

// NewMemoryStore initializes an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms:   make(map[uuid.UUID]*models.Room),
		byCode:  make(map[string]uuid.UUID),
		players: make(map[uuid.UUID]*models.Player),
	}
}

func (s *MemoryStore) CreateRoom(_ context.Context, room *models.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byCode[room.Code]; exists {
		return fmt.Errorf("room code %s already in use", room.Code)
	}
	s.rooms[room.ID] = room.Clone()
	s.byCode[room.Code] = room.ID
	return nil
}

func (s *MemoryStore) GetRoomByCode(_ context.Context, code string) (*models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byCode[code]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return s.rooms[id].Clone(), nil
}

func (s *MemoryStore) UpdateRoom(_ context.Context, room *models.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[room.ID]; !ok {
		return ErrRoomNotFound
	}
	s.rooms[room.ID] = room.Clone()
	return nil
}

func (s *MemoryStore) CodeInUse(_ context.Context, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.byCode[code]
	return ok, nil
}

func (s *MemoryStore) CreatePlayer(_ context.Context, player *models.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[player.RoomID]; !ok {
		return ErrRoomNotFound
	}
	s.players[player.ID] = player.Clone()
	return nil
}

func (s *MemoryStore) GetPlayersByRoom(_ context.Context, roomID uuid.UUID) ([]*models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var players []*models.Player
	for _, p := range s.players {
		if p.RoomID == roomID {
			players = append(players, p.Clone())
		}
	}
	// Roster order is join order; the tie-break in vote tallying depends
	// on it being stable.
	sort.Slice(players, func(i, j int) bool {
		if players[i].JoinedAt.Equal(players[j].JoinedAt) {
			return players[i].ID.String() < players[j].ID.String()
		}
		return players[i].JoinedAt.Before(players[j].JoinedAt)
	})
	return players, nil
}

func (s *MemoryStore) UpdatePlayer(_ context.Context, player *models.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[player.ID]; !ok {
		return fmt.Errorf("player %s not found", player.ID)
	}
	s.players[player.ID] = player.Clone()
	return nil
}

func (s *MemoryStore) UpdatePlayers(ctx context.Context, players []*models.Player) error {
	for _, p := range players {
		if err := s.UpdatePlayer(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
