// cmd/historian/main.go is an asynchronous archiver that pops room event
// records from a Redis queue and persists them to Postgres, and sweeps
// rooms that have gone idle into the ended state.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/DeadCoder-N/Shadow-Signal/internal/cache"
	"github.com/DeadCoder-N/Shadow-Signal/internal/config"
	"github.com/DeadCoder-N/Shadow-Signal/internal/store"
)

// eventsSchema holds the archive table. Rooms referenced here may have
// been garbage-collected from the live tables, so no foreign key.
const eventsSchema = `
CREATE TABLE IF NOT EXISTS room_events (
	id         BIGSERIAL PRIMARY KEY,
	room_id    UUID NOT NULL,
	code       TEXT NOT NULL,
	event_type TEXT NOT NULL,
	payload    JSONB,
	occurred   TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS room_events_room_id_idx ON room_events(room_id);
`

// HistorianService encapsulates the Redis + DB logic for archiving room
// events and marking idle rooms as ended.
type HistorianService struct {
	redisClient *redis.Client
	pool        *pgxpool.Pool
	batchSize   int
	flushDelay  time.Duration
	inactivity  time.Duration // idle window before a room is swept to ended
	lastSeen    sync.Map      // map[string]time.Time keyed by room code

	batchMu  sync.Mutex
	batch    []cache.RoomEventRecord
	ctx      context.Context
	cancelFn context.CancelFunc
}

// NewHistorianService constructs a HistorianService from environment
// variables or defaults.
func NewHistorianService() *HistorianService {
	batchSize := config.GetEnvInt("HISTORIAN_BATCH_SIZE", 20)
	flushMs := config.GetEnvInt("HISTORIAN_FLUSH_MS", 500)
	inactivitySec := config.GetEnvInt("ROOM_INACTIVITY_TIMEOUT_SEC", 1800) // default 30 min

	rdb := redis.NewClient(&redis.Options{
		Addr: config.GetEnv("REDIS_ADDR", "localhost:6379"),
	})

	ctx, cancel := context.WithCancel(context.Background())
	return &HistorianService{
		redisClient: rdb,
		batchSize:   batchSize,
		flushDelay:  time.Duration(flushMs) * time.Millisecond,
		inactivity:  time.Duration(inactivitySec) * time.Second,
		batch:       make([]cache.RoomEventRecord, 0, batchSize),
		ctx:         ctx,
		cancelFn:    cancel,
	}
}

// Run connects to the database and starts the two main loops: the Redis
// consumer with batched flushing, and the periodic idle-room sweep.
func (hs *HistorianService) Run() error {
	pool, err := store.ConnectPostgres(hs.ctx)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	hs.pool = pool

	if _, err := pool.Exec(hs.ctx, eventsSchema); err != nil {
		return fmt.Errorf("ensure room_events schema: %w", err)
	}

	go hs.readRedisLoop()
	go hs.sweepLoop()

	log.Info("shadow-signal historian started")
	<-hs.ctx.Done()
	hs.flushBatchToDB()
	pool.Close()
	log.Info("shadow-signal historian shutting down")
	return nil
}

// readRedisLoop continuously BLPops records from the event queue and
// accumulates them in a batch, flushing on a timer.
func (hs *HistorianService) readRedisLoop() {
	ticker := time.NewTicker(hs.flushDelay)
	defer ticker.Stop()

	queueName := config.GetEnv("EVENT_QUEUE_NAME", cache.DefaultQueueName)

	for {
		select {
		case <-hs.ctx.Done():
			return

		case <-ticker.C:
			hs.flushBatchToDB()

		default:
			// BLPop with a short timeout so context cancellation is noticed.
			res, err := hs.redisClient.BLPop(hs.ctx, 3*time.Second, queueName).Result()
			if err != nil && !errors.Is(err, redis.Nil) {
				if hs.ctx.Err() != nil {
					return
				}
				log.Errorf("BLPop: %v", err)
				continue
			}
			if len(res) < 2 {
				continue
			}

			var record cache.RoomEventRecord
			if err := json.Unmarshal([]byte(res[1]), &record); err != nil {
				log.Warnf("invalid room event record: %v", err)
				continue
			}

			hs.lastSeen.Store(record.Code, time.Now())
			hs.appendToBatch(record)
		}
	}
}

// appendToBatch adds a record and flushes once the threshold is reached.
func (hs *HistorianService) appendToBatch(record cache.RoomEventRecord) {
	hs.batchMu.Lock()
	defer hs.batchMu.Unlock()

	hs.batch = append(hs.batch, record)
	if len(hs.batch) >= hs.batchSize {
		hs.flushBatchLocked()
	}
}

func (hs *HistorianService) flushBatchToDB() {
	hs.batchMu.Lock()
	defer hs.batchMu.Unlock()
	hs.flushBatchLocked()
}

// flushBatchLocked writes the current batch in a single transaction.
// Callers must hold batchMu.
func (hs *HistorianService) flushBatchLocked() {
	if len(hs.batch) == 0 {
		return
	}
	batchCopy := make([]cache.RoomEventRecord, len(hs.batch))
	copy(batchCopy, hs.batch)
	hs.batch = hs.batch[:0]

	ctx := context.Background()
	err := pgx.BeginTxFunc(ctx, hs.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		for _, rec := range batchCopy {
			if err := insertRoomEventTx(ctx, tx, rec); err != nil {
				return fmt.Errorf("insertRoomEventTx: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		log.Errorf("flush batch: %v", err)
	} else {
		log.Debugf("flushed %d room events to DB", len(batchCopy))
	}
}

// sweepLoop periodically marks rooms that have been silent beyond the
// inactivity window as ended. The engine never deletes rooms itself;
// this is the external garbage collection it defers to.
func (hs *HistorianService) sweepLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-hs.ctx.Done():
			return

		case <-ticker.C:
			now := time.Now()
			hs.lastSeen.Range(func(key, val interface{}) bool {
				code, ok1 := key.(string)
				last, ok2 := val.(time.Time)
				if ok1 && ok2 && now.Sub(last) > hs.inactivity {
					hs.markRoomEnded(code)
					hs.lastSeen.Delete(code)
				}
				return true
			})
		}
	}
}

// markRoomEnded sweeps an idle room into the ended state unless the game
// already finished on its own.
func (hs *HistorianService) markRoomEnded(code string) {
	ctx := context.Background()
	err := pgx.BeginTxFunc(ctx, hs.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		q := `
			UPDATE rooms
			SET status = 'ended'
			WHERE code = $1 AND status <> 'ended'
		`
		_, e := tx.Exec(ctx, q, code)
		return e
	})
	if err != nil {
		log.Errorf("failed to mark room %s ended: %v", code, err)
	} else {
		log.Infof("marked idle room %s as ended", code)
	}
}

// insertRoomEventTx inserts a single event record into room_events.
func insertRoomEventTx(ctx context.Context, tx pgx.Tx, rec cache.RoomEventRecord) error {
	q := `
		INSERT INTO room_events (room_id, code, event_type, payload, occurred)
		VALUES ($1, $2, $3, $4, $5)
	`
	jsonPayload, err := json.Marshal(rec.Payload)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, q,
		rec.RoomID, rec.Code, rec.EventType, jsonPayload,
		time.UnixMilli(rec.Timestamp).UTC(),
	)
	return err
}

// Stop gracefully stops the historian service.
func (hs *HistorianService) Stop() {
	hs.cancelFn()
}

func main() {
	hs := NewHistorianService()
	errc := make(chan error, 1)
	go func() {
		errc <- hs.Run()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errc:
		if err != nil {
			log.Fatalf("historian: %v", err)
		}
	case <-sigChan:
		hs.Stop()
	}
	log.Info("historian shutdown complete")
}
