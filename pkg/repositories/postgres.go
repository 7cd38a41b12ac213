package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	gametypes "github.com/cbodonnell/tycoon/pkg/game/types"
	"github.com/cbodonnell/tycoon/pkg/log"
	"github.com/cbodonnell/tycoon/pkg/messages"
	"github.com/cbodonnell/tycoon/pkg/repositories/models"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository connects to the database and applies the migrations
// in the migrations directory. The caller is responsible for calling Close()
// on the repository.
func NewPostgresRepository(ctx context.Context, connStr string, migrations string) (Repository, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}

	var username string
	var database string
	err = pool.QueryRow(ctx, "SELECT current_user, current_database()").Scan(&username, &database)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to query database: %v", err)
	}
	log.Info("Connected to %s as %s", database, username)

	statements, err := readMigrations(migrations)
	if err != nil {
		pool.Close()
		return nil, err
	}
	for i, migration := range statements {
		if _, err := pool.Exec(ctx, migration); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to execute migration %d: %v", i, err)
		}
	}

	return &PostgresRepository{
		pool: pool,
	}, nil
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	r.pool.Close()
	return nil
}

func (r *PostgresRepository) SaveSnapshot(ctx context.Context, sessionID string, data []byte, seq uint64) error {
	q := `
	INSERT INTO snapshots (session_id, seq, data, updated_at) VALUES ($1, $2, $3, now())
	ON CONFLICT (session_id) DO UPDATE SET seq = $2, data = $3, updated_at = now()
	WHERE snapshots.seq <= $2;
	`
	_, err := r.pool.Exec(ctx, q, sessionID, int64(seq), data)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %v", err)
	}

	return nil
}

func (r *PostgresRepository) LoadSnapshot(ctx context.Context, sessionID string) (*models.Snapshot, error) {
	q := `
	SELECT seq, data, updated_at FROM snapshots WHERE session_id = $1;
	`
	snapshot := &models.Snapshot{SessionID: sessionID}
	var seq int64
	if err := r.pool.QueryRow(ctx, q, sessionID).Scan(&seq, &snapshot.Data, &snapshot.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan snapshot: %v", err)
	}
	snapshot.Seq = uint64(seq)

	return snapshot, nil
}

func (r *PostgresRepository) AppendEvents(ctx context.Context, sessionID string, events []gametypes.Event) error {
	if len(events) == 0 {
		return nil
	}

	q := `
	INSERT INTO events (session_id, seq, data) VALUES ($1, $2, $3)
	ON CONFLICT (session_id, seq) DO NOTHING;
	`
	batch := &pgx.Batch{}
	for _, event := range events {
		data, err := messages.SerializeEvent(event)
		if err != nil {
			return err
		}
		batch.Queue(q, sessionID, int64(event.Seq), data)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert events: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}

func (r *PostgresRepository) LoadEventsSince(ctx context.Context, sessionID string, seq uint64, limit int) ([]gametypes.Event, error) {
	q := `
	SELECT data FROM events WHERE session_id = $1 AND seq > $2 ORDER BY seq
	`
	args := []interface{}{sessionID, int64(seq)}
	if limit > 0 {
		q += ` LIMIT $3`
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, q, args...)
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

func (r *PostgresRepository) DeleteEventsAfter(ctx context.Context, sessionID string, seq uint64) error {
	q := `DELETE FROM events WHERE session_id = $1 AND seq > $2;`
	if _, err := r.pool.Exec(ctx, q, sessionID, int64(seq)); err != nil {
		return fmt.Errorf("failed to delete events: %v", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteSession(ctx context.Context, sessionID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM events WHERE session_id = $1;`, sessionID); err != nil {
		return fmt.Errorf("failed to delete events: %v", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM snapshots WHERE session_id = $1;`, sessionID); err != nil {
		return fmt.Errorf("failed to delete snapshot: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}
