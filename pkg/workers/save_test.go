package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cbodonnell/tycoon/mocks/github.com/cbodonnell/tycoon/pkg/repositories"
	"github.com/cbodonnell/tycoon/pkg/board"
	"github.com/cbodonnell/tycoon/pkg/game/types"
	"github.com/cbodonnell/tycoon/pkg/messages"
)

func testState(seq uint64) *types.GameState {
	s := types.NewGameState("session-1", board.Classic())
	s.Seq = seq
	return s
}

func TestSaveSnapshotWorker_save(t *testing.T) {
	repository := mocks.NewRepository(t)
	queue := NewSaveQueue(0)
	worker := NewSaveSnapshotWorker(NewSaveSnapshotWorkerOptions{
		Repository: repository,
		Queue:      queue,
	})

	events := []types.Event{{Seq: 3, Type: types.EventPlayerJoined, PlayerID: "a"}}
	saved := make(chan struct{})
	repository.EXPECT().AppendEvents(mock.Anything, "session-1", events).Return(nil).Once()
	repository.EXPECT().SaveSnapshot(mock.Anything, "session-1", mock.Anything, uint64(3)).
		Run(func(ctx context.Context, sessionID string, data []byte, seq uint64) {
			state, err := messages.DeserializeGameState(data)
			assert.NoError(t, err)
			assert.Equal(t, uint64(3), state.Seq)
			close(saved)
		}).
		Return(nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go worker.Start(ctx)

	queue.Push(SaveSnapshotRequest{State: testState(3), Events: events})
	select {
	case <-saved:
	case <-time.After(5 * time.Second):
		t.Fatal("snapshot was not saved")
	}
}

func TestSaveSnapshotWorker_failuresAreLogged(t *testing.T) {
	repository := mocks.NewRepository(t)
	worker := NewSaveSnapshotWorker(NewSaveSnapshotWorkerOptions{Repository: repository})

	repository.EXPECT().AppendEvents(mock.Anything, "session-1", mock.Anything).Return(errors.New("boom")).Once()
	repository.EXPECT().SaveSnapshot(mock.Anything, "session-1", mock.Anything, uint64(4)).Return(errors.New("boom")).Once()

	worker.save(context.Background(), SaveSnapshotRequest{
		State:  testState(4),
		Events: []types.Event{{Seq: 4, Type: types.EventTurnEnded}},
	})
	worker.save(context.Background(), SaveSnapshotRequest{})
}

func TestSaveSnapshotWorker_discard(t *testing.T) {
	repository := mocks.NewRepository(t)
	worker := NewSaveSnapshotWorker(NewSaveSnapshotWorkerOptions{Repository: repository})

	repository.EXPECT().DeleteSession(mock.Anything, "session-1").Return(nil).Once()

	worker.save(context.Background(), SaveSnapshotRequest{State: testState(9), Discard: true})
}

func TestSaveSnapshotWorker_drainsOnShutdown(t *testing.T) {
	repository := mocks.NewRepository(t)
	queue := NewSaveQueue(0)
	worker := NewSaveSnapshotWorker(NewSaveSnapshotWorkerOptions{
		Repository: repository,
		Queue:      queue,
	})

	repository.EXPECT().SaveSnapshot(mock.Anything, "session-1", mock.Anything, uint64(2)).Return(nil).Once()
	repository.EXPECT().SaveSnapshot(mock.Anything, "session-2", mock.Anything, uint64(1)).Return(nil).Once()

	state := testState(1)
	state.SessionID = "session-2"
	queue.Push(SaveSnapshotRequest{State: testState(1)})
	queue.Push(SaveSnapshotRequest{State: state})
	queue.Push(SaveSnapshotRequest{State: testState(2)})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	worker.Start(ctx)

	require.Zero(t, queue.Len())
}
