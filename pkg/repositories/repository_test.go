package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gametypes "github.com/cbodonnell/tycoon/pkg/game/types"
)

func testEvents(seqs ...uint64) []gametypes.Event {
	events := make([]gametypes.Event, len(seqs))
	for i, seq := range seqs {
		events[i] = gametypes.Event{
			Seq:      seq,
			Type:     gametypes.EventDiceRolled,
			PlayerID: "p1",
			Data:     map[string]interface{}{"total": int(seq)},
		}
	}
	return events
}

func seqsOf(events []gametypes.Event) []uint64 {
	seqs := make([]uint64, len(events))
	for i, event := range events {
		seqs[i] = event.Seq
	}
	return seqs
}

// testRepository runs the persistence gateway contract against r.
func testRepository(t *testing.T, r Repository) {
	ctx := context.Background()
	sessionID := "session-" + t.Name()
	t.Cleanup(func() {
		r.DeleteSession(ctx, sessionID)
	})

	t.Run("unknown session", func(t *testing.T) {
		_, err := r.LoadSnapshot(ctx, sessionID)
		assert.True(t, IsNotFound(err), "got %v", err)
	})

	t.Run("last write wins by seq", func(t *testing.T) {
		require.NoError(t, r.SaveSnapshot(ctx, sessionID, []byte("five"), 5))
		require.NoError(t, r.SaveSnapshot(ctx, sessionID, []byte("three"), 3))

		snapshot, err := r.LoadSnapshot(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, uint64(5), snapshot.Seq)
		assert.Equal(t, []byte("five"), snapshot.Data)

		require.NoError(t, r.SaveSnapshot(ctx, sessionID, []byte("seven"), 7))
		require.NoError(t, r.SaveSnapshot(ctx, sessionID, []byte("seven"), 7))
		snapshot, err = r.LoadSnapshot(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, uint64(7), snapshot.Seq)
		assert.Equal(t, []byte("seven"), snapshot.Data)
	})

	t.Run("events are idempotent and ordered", func(t *testing.T) {
		require.NoError(t, r.AppendEvents(ctx, sessionID, testEvents(1, 2, 3)))
		require.NoError(t, r.AppendEvents(ctx, sessionID, testEvents(2, 3, 4)))
		require.NoError(t, r.AppendEvents(ctx, sessionID, nil))

		events, err := r.LoadEventsSince(ctx, sessionID, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, []uint64{1, 2, 3, 4}, seqsOf(events))
		assert.Equal(t, gametypes.EventDiceRolled, events[0].Type)

		events, err = r.LoadEventsSince(ctx, sessionID, 2, 0)
		require.NoError(t, err)
		assert.Equal(t, []uint64{3, 4}, seqsOf(events))

		events, err = r.LoadEventsSince(ctx, sessionID, 0, 2)
		require.NoError(t, err)
		assert.Equal(t, []uint64{1, 2}, seqsOf(events))

		events, err = r.LoadEventsSince(ctx, sessionID, 4, 0)
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("events after a snapshot can be truncated", func(t *testing.T) {
		require.NoError(t, r.AppendEvents(ctx, sessionID, testEvents(5, 6)))
		require.NoError(t, r.DeleteEventsAfter(ctx, sessionID, 4))

		events, err := r.LoadEventsSince(ctx, sessionID, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, []uint64{1, 2, 3, 4}, seqsOf(events))

		// a truncated seq can be written again with different content
		rewritten := gametypes.Event{Seq: 5, Type: gametypes.EventTurnEnded, PlayerID: "p2"}
		require.NoError(t, r.AppendEvents(ctx, sessionID, []gametypes.Event{rewritten}))
		events, err = r.LoadEventsSince(ctx, sessionID, 4, 0)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, gametypes.EventTurnEnded, events[0].Type)
		assert.Equal(t, "p2", events[0].PlayerID)

		require.NoError(t, r.DeleteEventsAfter(ctx, "unknown-"+sessionID, 0))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, r.DeleteSession(ctx, sessionID))
		_, err := r.LoadSnapshot(ctx, sessionID)
		assert.True(t, IsNotFound(err))
		events, err := r.LoadEventsSince(ctx, sessionID, 0, 0)
		require.NoError(t, err)
		assert.Empty(t, events)
	})
}

func TestInMemoryRepository(t *testing.T) {
	testRepository(t, NewInMemoryRepository())
}

func TestSQLiteRepository(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tycoon.db")
	r, err := NewSQLiteRepository(ctx, path, "../../migrations/sqlite")
	require.NoError(t, err)
	defer r.Close(ctx)

	testRepository(t, r)
}

func TestSQLiteRepository_missingMigrations(t *testing.T) {
	_, err := NewSQLiteRepository(context.Background(), filepath.Join(t.TempDir(), "x.db"), "does-not-exist")
	assert.Error(t, err)
}

func TestPostgresRepository(t *testing.T) {
	url := os.Getenv("TYCOON_TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("TYCOON_TEST_POSTGRES_URL not set")
	}
	ctx := context.Background()
	r, err := NewPostgresRepository(ctx, url, "../../migrations/postgres")
	require.NoError(t, err)
	defer r.Close(ctx)

	testRepository(t, r)
}

func TestRedisRepository(t *testing.T) {
	url := os.Getenv("TYCOON_TEST_REDIS_URL")
	if url == "" {
		t.Skip("TYCOON_TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	r, err := NewRedisRepository(ctx, url)
	require.NoError(t, err)
	defer r.Close(ctx)

	testRepository(t, r)
}
