// Package game implements the Shadow Signal round engine: room codes,
// randomized role/word assignment, the phase state machine, and vote
// tallying with win evaluation. Persistence and transport stay outside;
// the engine loads a room aggregate, mutates it in memory, and hands it
// back to the store in full.
package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/DeadCoder-N/Shadow-Signal/internal/cache"
	"github.com/DeadCoder-N/Shadow-Signal/internal/models"
	"github.com/DeadCoder-N/Shadow-Signal/internal/store"
	"github.com/DeadCoder-N/Shadow-Signal/internal/words"
)

// Service exposes the boundary operations of the engine. One Service
// instance serves all rooms; per-room write serialization is the store's
// concern, not the engine's.
type Service struct {
	store store.Store
	bank  *words.Bank
	log   *logrus.Logger

	mu  sync.Mutex // guards rng
	rng *rand.Rand

	now func() time.Time
}

// NewService builds a Service with a time-seeded random source.
func NewService(st store.Store, bank *words.Bank, logger *logrus.Logger) *Service {
	return &Service{
		store: st,
		bank:  bank,
		log:   logger,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   time.Now,
	}
}

// CreateRoom allocates a fresh room in the lobby phase under a unique
// 4-letter code. An empty mode defaults to infiltrator.
func (s *Service) CreateRoom(ctx context.Context, mode models.Mode) (*models.Room, error) {
	if mode == "" {
		mode = models.ModeInfiltrator
	}
	if !models.ValidMode(mode) {
		return nil, fmt.Errorf("%w: unknown mode %q", ErrValidation, mode)
	}

	s.mu.Lock()
	code, err := generateCode(ctx, s.rng, s.store.CodeInUse)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	id, _ := uuid.NewV7()
	room := &models.Room{
		ID:        id,
		Code:      code,
		Mode:      mode,
		Status:    models.StatusLobby,
		CreatedAt: s.now(),
	}
	if err := s.store.CreateRoom(ctx, room); err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}

	s.log.WithFields(logrus.Fields{"room": room.Code, "mode": mode}).Info("room created")
	s.publish(ctx, room, cache.EventRoomCreated, map[string]interface{}{"mode": string(mode)})
	return room, nil
}

// JoinRoom adds a named player to a lobby-phase room. The first joiner
// becomes the host; host status is never reassigned afterwards.
func (s *Service) JoinRoom(ctx context.Context, code, name string) (*models.Player, *models.Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
	}

	room, players, err := s.loadAggregate(ctx, code)
	if err != nil {
		return nil, nil, err
	}
	if room.Status != models.StatusLobby {
		return nil, nil, fmt.Errorf("%w: game already started in room %s", ErrInvalidState, room.Code)
	}

	id, _ := uuid.NewV7()
	player := &models.Player{
		ID:       id,
		RoomID:   room.ID,
		Name:     name,
		IsHost:   len(players) == 0,
		Alive:    true,
		JoinedAt: s.now(),
	}
	if err := s.store.CreatePlayer(ctx, player); err != nil {
		return nil, nil, fmt.Errorf("join room %s: %w", room.Code, err)
	}

	// Once the lobby reaches the minimum roster, stamp the lobby start so
	// callers can drive an auto-start deadline off it.
	if len(players)+1 >= MinPlayers && room.LobbyStartedAt == nil {
		t := s.now()
		room.LobbyStartedAt = &t
		if err := s.store.UpdateRoom(ctx, room); err != nil {
			return nil, nil, fmt.Errorf("join room %s: %w", room.Code, err)
		}
	}

	s.log.WithFields(logrus.Fields{"room": room.Code, "player": player.Name, "host": player.IsHost}).Info("player joined")
	s.publish(ctx, room, cache.EventPlayerJoined, map[string]interface{}{"player_id": player.ID.String(), "name": name})
	return player, room, nil
}

// GetRoomState returns the room and its full roster. Pure read; this is
// what clients poll.
func (s *Service) GetRoomState(ctx context.Context, code string) (*models.Room, []*models.Player, error) {
	return s.loadAggregate(ctx, code)
}

// loadAggregate fetches the room by normalized code together with its
// roster in join order.
func (s *Service) loadAggregate(ctx context.Context, code string) (*models.Room, []*models.Player, error) {
	room, err := s.loadRoom(ctx, code)
	if err != nil {
		return nil, nil, err
	}
	players, err := s.store.GetPlayersByRoom(ctx, room.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("load players for room %s: %w", room.Code, err)
	}
	return room, players, nil
}

func (s *Service) loadRoom(ctx context.Context, code string) (*models.Room, error) {
	code = NormalizeCode(code)
	if err := validateCode(code); err != nil {
		return nil, err
	}
	room, err := s.store.GetRoomByCode(ctx, code)
	if errors.Is(err, store.ErrRoomNotFound) {
		return nil, fmt.Errorf("%w: room %s", ErrNotFound, code)
	}
	if err != nil {
		return nil, fmt.Errorf("load room %s: %w", code, err)
	}
	return room, nil
}

// publish queues a room event for the historian. Failures are logged and
// swallowed; event capture is best-effort and never blocks game flow.
func (s *Service) publish(ctx context.Context, room *models.Room, eventType string, payload map[string]interface{}) {
	rec := cache.RoomEventRecord{
		RoomID:    room.ID,
		Code:      room.Code,
		EventType: eventType,
		Payload:   payload,
		Timestamp: s.now().UnixMilli(),
	}
	if err := cache.PublishRoomEvent(ctx, rec); err != nil {
		s.log.WithFields(logrus.Fields{"room": room.Code, "event": eventType}).Warnf("publish room event: %v", err)
	}
}
