package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DeadCoder-N/Shadow-Signal/internal/models"
)

// PostgresStore persists rooms and players in Postgres via pgx. Batch
// player updates run inside a single transaction so a failed elimination
// never leaves the roster half-written.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an existing pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// ConnectPostgres builds a pool from the standard environment variables:
// DATABASE_URL if set, else POSTGRES_USER / POSTGRES_PASSWORD / PG_HOST /
// PG_PORT / PG_DATABASE.
func ConnectPostgres(ctx context.Context) (*pgxpool.Pool, error) {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		connStr = fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s",
			os.Getenv("POSTGRES_USER"),
			os.Getenv("POSTGRES_PASSWORD"),
			os.Getenv("PG_HOST"),
			os.Getenv("PG_PORT"),
			os.Getenv("PG_DATABASE"),
		)
	}

	config, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse pgx config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return pool, nil
}

// Schema creates the tables this store needs. Room options are stored as
// a JSON text column so any client can read them back as an array.
const Schema = `
CREATE TABLE IF NOT EXISTS rooms (
	id                     UUID PRIMARY KEY,
	code                   TEXT NOT NULL UNIQUE,
	mode                   TEXT NOT NULL,
	status                 TEXT NOT NULL,
	current_turn_player_id UUID,
	options                TEXT,
	winner                 TEXT,
	phase_started_at       TIMESTAMPTZ,
	lobby_started_at       TIMESTAMPTZ,
	created_at             TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS players (
	id        UUID PRIMARY KEY,
	room_id   UUID NOT NULL REFERENCES rooms(id),
	name      TEXT NOT NULL,
	is_host   BOOLEAN NOT NULL,
	role      TEXT NOT NULL DEFAULT '',
	word      TEXT NOT NULL DEFAULT '',
	clue      TEXT NOT NULL DEFAULT '',
	is_alive  BOOLEAN NOT NULL,
	votes     INT NOT NULL DEFAULT 0,
	voted_for UUID,
	joined_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS players_room_id_idx ON players(room_id);
`

// EnsureSchema applies the schema, for deployments without a separate
// migration step.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, Schema)
	return err
}

func (s *PostgresStore) CreateRoom(ctx context.Context, room *models.Room) error {
	q := `
	INSERT INTO rooms (
		id, code, mode, status, current_turn_player_id,
		options, winner, phase_started_at, lobby_started_at, created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	return pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, q,
			room.ID,
			room.Code,
			string(room.Mode),
			string(room.Status),
			nullableUUID(room.CurrentTurnPlayerID),
			encodeOptions(room.Options),
			nullableString(string(room.Winner)),
			room.PhaseStartedAt,
			room.LobbyStartedAt,
			room.CreatedAt,
		)
		return err
	})
}

func (s *PostgresStore) GetRoomByCode(ctx context.Context, code string) (*models.Room, error) {
	q := `
	SELECT id, code, mode, status, current_turn_player_id,
	       options, winner, phase_started_at, lobby_started_at, created_at
	FROM rooms
	WHERE code = $1
	`
	var (
		r       models.Room
		turnID  *uuid.UUID
		options *string
		winner  *string
	)
	err := s.pool.QueryRow(ctx, q, code).Scan(
		&r.ID,
		&r.Code,
		&r.Mode,
		&r.Status,
		&turnID,
		&options,
		&winner,
		&r.PhaseStartedAt,
		&r.LobbyStartedAt,
		&r.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	if turnID != nil {
		r.CurrentTurnPlayerID = *turnID
	}
	if winner != nil {
		r.Winner = models.Winner(*winner)
	}
	if options != nil {
		if err := json.Unmarshal([]byte(*options), &r.Options); err != nil {
			return nil, fmt.Errorf("decode options for room %s: %w", r.Code, err)
		}
	}
	return &r, nil
}

func (s *PostgresStore) UpdateRoom(ctx context.Context, room *models.Room) error {
	q := `
	UPDATE rooms
	SET status = $2, current_turn_player_id = $3, options = $4,
	    winner = $5, phase_started_at = $6, lobby_started_at = $7
	WHERE id = $1
	`
	return pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, q,
			room.ID,
			string(room.Status),
			nullableUUID(room.CurrentTurnPlayerID),
			encodeOptions(room.Options),
			nullableString(string(room.Winner)),
			room.PhaseStartedAt,
			room.LobbyStartedAt,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrRoomNotFound
		}
		return nil
	})
}

func (s *PostgresStore) CodeInUse(ctx context.Context, code string) (bool, error) {
	q := `SELECT 1 FROM rooms WHERE code = $1 LIMIT 1`
	var tmp int
	err := s.pool.QueryRow(ctx, q, code).Scan(&tmp)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *PostgresStore) CreatePlayer(ctx context.Context, player *models.Player) error {
	q := `
	INSERT INTO players (
		id, room_id, name, is_host, role, word, clue,
		is_alive, votes, voted_for, joined_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	return pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, q,
			player.ID,
			player.RoomID,
			player.Name,
			player.IsHost,
			string(player.Role),
			player.Word,
			player.Clue,
			player.Alive,
			player.Votes,
			nullableUUID(player.VotedFor),
			player.JoinedAt,
		)
		return err
	})
}

func (s *PostgresStore) GetPlayersByRoom(ctx context.Context, roomID uuid.UUID) ([]*models.Player, error) {
	q := `
	SELECT id, room_id, name, is_host, role, word, clue,
	       is_alive, votes, voted_for, joined_at
	FROM players
	WHERE room_id = $1
	ORDER BY joined_at, id
	`
	rows, err := s.pool.Query(ctx, q, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []*models.Player
	for rows.Next() {
		var (
			p        models.Player
			votedFor *uuid.UUID
		)
		if err := rows.Scan(
			&p.ID,
			&p.RoomID,
			&p.Name,
			&p.IsHost,
			&p.Role,
			&p.Word,
			&p.Clue,
			&p.Alive,
			&p.Votes,
			&votedFor,
			&p.JoinedAt,
		); err != nil {
			return nil, err
		}
		if votedFor != nil {
			p.VotedFor = *votedFor
		}
		players = append(players, &p)
	}
	return players, rows.Err()
}

func (s *PostgresStore) UpdatePlayer(ctx context.Context, player *models.Player) error {
	return pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		return updatePlayerTx(ctx, tx, player)
	})
}

func (s *PostgresStore) UpdatePlayers(ctx context.Context, players []*models.Player) error {
	return pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		for _, p := range players {
			if err := updatePlayerTx(ctx, tx, p); err != nil {
				return err
			}
		}
		return nil
	})
}

func updatePlayerTx(ctx context.Context, tx pgx.Tx, player *models.Player) error {
	q := `
	UPDATE players
	SET role = $2, word = $3, clue = $4, is_alive = $5, votes = $6, voted_for = $7
	WHERE id = $1
	`
	_, err := tx.Exec(ctx, q,
		player.ID,
		string(player.Role),
		player.Word,
		player.Clue,
		player.Alive,
		player.Votes,
		nullableUUID(player.VotedFor),
	)
	return err
}

func nullableUUID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func encodeOptions(options []string) *string {
	if len(options) == 0 {
		return nil
	}
	data, err := json.Marshal(options)
	if err != nil {
		return nil
	}
	s := string(data)
	return &s
}
