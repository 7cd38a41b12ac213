package repositories

import (
	"context"

	gametypes "github.com/cbodonnell/tycoon/pkg/game/types"
	"github.com/cbodonnell/tycoon/pkg/repositories/models"
)

// Repository is the persistence gateway for session snapshots and the
// replay log that follows them.
type Repository interface {
	Close(ctx context.Context) error
	// SaveSnapshot stores data as the snapshot of sessionID unless a
	// snapshot with a higher seq is already stored.
	SaveSnapshot(ctx context.Context, sessionID string, data []byte, seq uint64) error
	// LoadSnapshot returns ErrNotFound for unknown sessions.
	LoadSnapshot(ctx context.Context, sessionID string) (*models.Snapshot, error)
	// AppendEvents records events; events already stored are ignored.
	AppendEvents(ctx context.Context, sessionID string, events []gametypes.Event) error
	// LoadEventsSince returns up to limit events with a seq greater than
	// seq, in order. A limit of zero or less means no limit.
	LoadEventsSince(ctx context.Context, sessionID string, seq uint64, limit int) ([]gametypes.Event, error)
	// DeleteEventsAfter removes the events with a seq greater than seq,
	// the ones a snapshot at seq never saw.
	DeleteEventsAfter(ctx context.Context, sessionID string, seq uint64) error
	DeleteSession(ctx context.Context, sessionID string) error
}
