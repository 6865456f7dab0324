package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeadCoder-N/Shadow-Signal/internal/models"
)

func testRoom(code string) *models.Room {
	id, _ := uuid.NewV7()
	return &models.Room{
		ID:        id,
		Code:      code,
		Mode:      models.ModeInfiltrator,
		Status:    models.StatusLobby,
		CreatedAt: time.Now(),
	}
}

func TestMemoryStoreRoomLifecycle(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	room := testRoom("ABCD")
	require.NoError(t, s.CreateRoom(ctx, room))

	inUse, err := s.CodeInUse(ctx, "ABCD")
	require.NoError(t, err)
	assert.True(t, inUse)

	inUse, err = s.CodeInUse(ctx, "WXYZ")
	require.NoError(t, err)
	assert.False(t, inUse)

	got, err := s.GetRoomByCode(ctx, "ABCD")
	require.NoError(t, err)
	assert.Equal(t, room.ID, got.ID)

	got.Status = models.StatusSelecting
	got.Options = []string{"a", "b", "c", "d"}
	require.NoError(t, s.UpdateRoom(ctx, got))

	// The stored row must not alias the caller's copy.
	got.Options[0] = "mutated"
	fresh, err := s.GetRoomByCode(ctx, "ABCD")
	require.NoError(t, err)
	assert.Equal(t, models.StatusSelecting, fresh.Status)
	assert.Equal(t, "a", fresh.Options[0])

	_, err = s.GetRoomByCode(ctx, "NOPE")
	assert.ErrorIs(t, err, ErrRoomNotFound)

	assert.Error(t, s.CreateRoom(ctx, testRoom("ABCD")), "duplicate code rejected")
}

func TestMemoryStorePlayersOrderedByJoin(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	room := testRoom("GAME")
	require.NoError(t, s.CreateRoom(ctx, room))

	base := time.Now()
	names := []string{"first", "second", "third"}
	for i, name := range names {
		id, _ := uuid.NewV7()
		p := &models.Player{
			ID:       id,
			RoomID:   room.ID,
			Name:     name,
			Alive:    true,
			JoinedAt: base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, s.CreatePlayer(ctx, p))
	}

	players, err := s.GetPlayersByRoom(ctx, room.ID)
	require.NoError(t, err)
	require.Len(t, players, 3)
	for i, name := range names {
		assert.Equal(t, name, players[i].Name)
	}
}

func TestMemoryStorePlayerUpdates(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	room := testRoom("ROOM")
	require.NoError(t, s.CreateRoom(ctx, room))

	id, _ := uuid.NewV7()
	p := &models.Player{ID: id, RoomID: room.ID, Name: "Alice", Alive: true, JoinedAt: time.Now()}
	require.NoError(t, s.CreatePlayer(ctx, p))

	p.Clue = "hint"
	p.Votes = 2
	require.NoError(t, s.UpdatePlayers(ctx, []*models.Player{p}))

	players, err := s.GetPlayersByRoom(ctx, room.ID)
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "hint", players[0].Clue)
	assert.Equal(t, 2, players[0].Votes)

	ghost := &models.Player{ID: uuid.New(), RoomID: room.ID}
	assert.Error(t, s.UpdatePlayer(ctx, ghost))

	orphan := &models.Player{ID: uuid.New(), RoomID: uuid.New()}
	assert.ErrorIs(t, s.CreatePlayer(ctx, orphan), ErrRoomNotFound)
}
