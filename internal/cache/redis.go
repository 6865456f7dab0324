// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/DeadCoder-N/Shadow-Signal/internal/config"
)

// Rdb is the global Redis client. Connect it once at application startup;
// when left nil, event publishing is silently disabled.
var Rdb *redis.Client

// DefaultQueueName is the Redis list (queue) name for room event records.
var DefaultQueueName = "shadow_signal_events"

// RoomEventRecord is one room lifecycle event, queued for the historian
// worker to archive.
type RoomEventRecord struct {
	RoomID    uuid.UUID              `json:"room_id"`
	Code      string                 `json:"code"`
	EventType string                 `json:"event_type"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	Timestamp int64                  `json:"timestamp"`
}

// Event types emitted by the room service.
const (
	EventRoomCreated      = "room_created"
	EventPlayerJoined     = "player_joined"
	EventGameStarted      = "game_started"
	EventClueSubmitted    = "clue_submitted"
	EventVoteCast         = "vote_cast"
	EventPlayerEliminated = "player_eliminated"
	EventGameEnded        = "game_ended"
	EventPhaseAdvanced    = "phase_advanced"
	EventGameRestarted    = "game_restarted"
)

// ConnectRedis initializes the global Redis client from REDIS_ADDR and
// REDIS_DB. Returns without connecting when REDIS_ADDR is unset, leaving
// publishing disabled.
func ConnectRedis() error {
	addr := config.GetEnv("REDIS_ADDR", "")
	if addr == "" {
		return nil
	}
	dbIdx := config.GetEnvInt("REDIS_DB", 0)

	Rdb = redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   dbIdx,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Rdb.Ping(ctx).Err(); err != nil {
		Rdb = nil
		return fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return nil
}

// PublishRoomEvent serializes the record to JSON and pushes it onto the
// event queue. A nil client makes this a no-op so callers never need to
// gate on Redis being configured.
func PublishRoomEvent(ctx context.Context, record RoomEventRecord) error {
	if Rdb == nil {
		return nil
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal RoomEventRecord: %w", err)
	}

	queueName := config.GetEnv("EVENT_QUEUE_NAME", DefaultQueueName)
	if err := Rdb.RPush(ctx, queueName, data).Err(); err != nil {
		return fmt.Errorf("failed to RPush to Redis list '%s': %w", queueName, err)
	}
	return nil
}
