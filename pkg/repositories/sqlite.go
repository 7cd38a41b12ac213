package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	gametypes "github.com/cbodonnell/tycoon/pkg/game/types"
	"github.com/cbodonnell/tycoon/pkg/messages"
	"github.com/cbodonnell/tycoon/pkg/repositories/models"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(ctx context.Context, path string, migrations string) (Repository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	statements, err := readMigrations(migrations)
	if err != nil {
		db.Close()
		return nil, err
	}
	for i, migration := range statements {
		if _, err := db.ExecContext(ctx, migration); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute migration %d: %v", i, err)
		}
	}

	return &SQLiteRepository{
		db: db,
	}, nil
}

func (r *SQLiteRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRepository) SaveSnapshot(ctx context.Context, sessionID string, data []byte, seq uint64) error {
	q := `
	INSERT INTO snapshots (session_id, seq, data, updated_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (session_id) DO UPDATE SET seq = excluded.seq, data = excluded.data, updated_at = excluded.updated_at
	WHERE excluded.seq >= snapshots.seq;
	`
	_, err := r.db.ExecContext(ctx, q, sessionID, int64(seq), data, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %v", err)
	}

	return nil
}

func (r *SQLiteRepository) LoadSnapshot(ctx context.Context, sessionID string) (*models.Snapshot, error) {
	q := `
	SELECT seq, data, updated_at FROM snapshots WHERE session_id = ?;
	`
	var seq int64
	var data []byte
	var updatedAt int64
	if err := r.db.QueryRowContext(ctx, q, sessionID).Scan(&seq, &data, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan snapshot: %v", err)
	}

	return &models.Snapshot{
		SessionID: sessionID,
		Seq:       uint64(seq),
		Data:      data,
		UpdatedAt: time.UnixMilli(updatedAt),
	}, nil
}

func (r *SQLiteRepository) AppendEvents(ctx context.Context, sessionID string, events []gametypes.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	q := `
	INSERT OR IGNORE INTO events (session_id, seq, data)
	VALUES (?, ?, ?);
	`
	for _, event := range events {
		data, err := messages.SerializeEvent(event)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, q, sessionID, int64(event.Seq), data); err != nil {
			return fmt.Errorf("failed to insert event: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}

func (r *SQLiteRepository) LoadEventsSince(ctx context.Context, sessionID string, seq uint64, limit int) ([]gametypes.Event, error) {
	if limit <= 0 {
		limit = -1
	}
	q := `
	SELECT data FROM events WHERE session_id = ? AND seq > ? ORDER BY seq LIMIT ?;
	`
	rows, err := r.db.QueryContext(ctx, q, sessionID, int64(seq), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %v", err)
	}
	defer rows.Close()

	var events []gametypes.Event
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan event: %v", err)
		}
		event, err := messages.DeserializeEvent(data)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events: %v", err)
	}

	return events, nil
}

func (r *SQLiteRepository) DeleteEventsAfter(ctx context.Context, sessionID string, seq uint64) error {
	q := `DELETE FROM events WHERE session_id = ? AND seq > ?;`
	if _, err := r.db.ExecContext(ctx, q, sessionID, int64(seq)); err != nil {
		return fmt.Errorf("failed to delete events: %v", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteSession(ctx context.Context, sessionID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM events WHERE session_id = ?;`, sessionID); err != nil {
		return fmt.Errorf("failed to delete events: %v", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE session_id = ?;`, sessionID); err != nil {
		return fmt.Errorf("failed to delete snapshot: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}
