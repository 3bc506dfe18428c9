// Package sqlite provides a SQLite-backed save store for games.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/louisbranch/manaforge/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/action"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/encoding"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/replay"
	"github.com/louisbranch/manaforge/internal/services/rules/storage"
	"github.com/louisbranch/manaforge/internal/services/rules/storage/sqlite/migrations"
)

// Store persists games, their journals and their latest snapshots in SQLite.
type Store struct {
	sqlDB *sql.DB
}

var _ storage.Store = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite save store and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := "file:" + filepath.Clean(path) +
		"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// CreateGame saves the opening state of a new game.
func (s *Store) CreateGame(ctx context.Context, initial game.State) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	gameID := strings.TrimSpace(initial.ID)
	if gameID == "" {
		return fmt.Errorf("game id is required")
	}
	data, err := encoding.EncodeState(initial)
	if err != nil {
		return fmt.Errorf("encode initial state: %w", err)
	}
	now := toMillis(time.Now())
	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO games (id, initial_state, last_seq, created_at, updated_at) VALUES (?, ?, 0, ?, ?)`,
		gameID, data, now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create game: %w", err)
	}
	return nil
}

// GetGame returns a saved game with its opening state.
func (s *Store) GetGame(ctx context.Context, gameID string) (storage.Game, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Game{}, err
	}
	var (
		data                 []byte
		lastSeq              int64
		createdAt, updatedAt int64
	)
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT initial_state, last_seq, created_at, updated_at FROM games WHERE id = ?`,
		strings.TrimSpace(gameID),
	).Scan(&data, &lastSeq, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Game{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.Game{}, fmt.Errorf("get game: %w", err)
	}
	initial, err := encoding.DecodeState(data)
	if err != nil {
		return storage.Game{}, fmt.Errorf("decode initial state: %w", err)
	}
	return storage.Game{
		ID:        initial.ID,
		Initial:   initial,
		LastSeq:   uint64(lastSeq),
		CreatedAt: fromMillis(createdAt),
		UpdatedAt: fromMillis(updatedAt),
	}, nil
}

// AppendEntry adds the next journal entry of a game. The entry must carry
// the sequence right after the last stored one.
func (s *Store) AppendEntry(ctx context.Context, entry replay.Entry) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	gameID := strings.TrimSpace(entry.GameID)
	if gameID == "" {
		return fmt.Errorf("game id is required")
	}
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var lastSeq int64
	err = tx.QueryRowContext(ctx, `SELECT last_seq FROM games WHERE id = ?`, gameID).Scan(&lastSeq)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("read last seq: %w", err)
	}
	if entry.Seq != uint64(lastSeq)+1 {
		return fmt.Errorf("%w: expected %d got %d", storage.ErrSequenceConflict, lastSeq+1, entry.Seq)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO journal_entries (game_id, seq, player_id, action_type, action_payload, state_hash, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		gameID,
		int64(entry.Seq),
		entry.PlayerID,
		string(entry.Action.Type),
		[]byte(entry.Action.PayloadJSON),
		entry.StateHash,
		toMillis(createdAt),
	); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: seq %d", storage.ErrSequenceConflict, entry.Seq)
		}
		return fmt.Errorf("insert entry: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE games SET last_seq = ?, updated_at = ? WHERE id = ?`,
		int64(entry.Seq), toMillis(createdAt), gameID,
	); err != nil {
		return fmt.Errorf("advance last seq: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit append: %w", err)
	}
	return nil
}

// ListEntries returns up to limit entries after afterSeq in order.
func (s *Store) ListEntries(ctx context.Context, gameID string, afterSeq uint64, limit int) ([]replay.Entry, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT seq, player_id, action_type, action_payload, state_hash, created_at
		 FROM journal_entries
		 WHERE game_id = ? AND seq > ?
		 ORDER BY seq
		 LIMIT ?`,
		strings.TrimSpace(gameID), int64(afterSeq), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []replay.Entry
	for rows.Next() {
		var (
			seq        int64
			playerID   string
			actionType string
			payload    []byte
			stateHash  string
			createdAt  int64
		)
		if err := rows.Scan(&seq, &playerID, &actionType, &payload, &stateHash, &createdAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, replay.Entry{
			GameID:    strings.TrimSpace(gameID),
			Seq:       uint64(seq),
			PlayerID:  playerID,
			Action:    action.Envelope{Type: action.Type(actionType), PayloadJSON: payload},
			StateHash: stateHash,
			CreatedAt: fromMillis(createdAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// Get returns the latest snapshot of a game.
func (s *Store) Get(ctx context.Context, gameID string) (replay.Snapshot, error) {
	if err := s.ready(ctx); err != nil {
		return replay.Snapshot{}, err
	}
	gameID = strings.TrimSpace(gameID)
	var (
		seq       int64
		data      []byte
		updatedAt int64
	)
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT seq, state, updated_at FROM snapshots WHERE game_id = ?`, gameID,
	).Scan(&seq, &data, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return replay.Snapshot{}, replay.ErrSnapshotNotFound
	}
	if err != nil {
		return replay.Snapshot{}, fmt.Errorf("get snapshot: %w", err)
	}
	state, err := encoding.DecodeState(data)
	if err != nil {
		return replay.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return replay.Snapshot{GameID: gameID, Seq: uint64(seq), State: state, UpdatedAt: fromMillis(updatedAt)}, nil
}

// Save stores a snapshot unless a newer one is already stored.
func (s *Store) Save(ctx context.Context, snapshot replay.Snapshot) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	gameID := strings.TrimSpace(snapshot.GameID)
	if gameID == "" {
		return fmt.Errorf("game id is required")
	}
	data, err := encoding.EncodeState(snapshot.State)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	updatedAt := snapshot.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO snapshots (game_id, seq, state, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(game_id) DO UPDATE SET
		   seq = excluded.seq,
		   state = excluded.state,
		   updated_at = excluded.updated_at
		 WHERE excluded.seq >= snapshots.seq`,
		gameID, int64(snapshot.Seq), data, toMillis(updatedAt),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

func isForeignKeyViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint failed")
}
