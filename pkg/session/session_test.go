package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cbodonnell/tycoon/pkg/game/types"
	"github.com/cbodonnell/tycoon/pkg/log"
	"github.com/cbodonnell/tycoon/pkg/queue"

	queuemocks "github.com/cbodonnell/tycoon/mocks/github.com/cbodonnell/tycoon/pkg/queue"
	repomocks "github.com/cbodonnell/tycoon/mocks/github.com/cbodonnell/tycoon/pkg/repositories"
)

func TestSession_enqueue(t *testing.T) {
	tests := []struct {
		name       string
		enqueueErr error
		check      func(t *testing.T, err error)
	}{
		{
			name: "accepted",
			check: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:       "full mailbox",
			enqueueErr: queue.ErrQueueFull,
			check: func(t *testing.T, err error) {
				var busy *SessionBusyError
				assert.ErrorAs(t, err, &busy)
			},
		},
		{
			name:       "other failure",
			enqueueErr: errors.New("broken"),
			check: func(t *testing.T, err error) {
				require.Error(t, err)
				var busy *SessionBusyError
				assert.False(t, errors.As(err, &busy))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailbox := queuemocks.NewQueue(t)
			mailbox.EXPECT().Enqueue(mock.Anything).Return(tt.enqueueErr).Once()
			s := &Session{id: "s1", mailbox: mailbox}
			tt.check(t, s.enqueue(&envelope{request: &detachRequest{}}))
		})
	}
}

func TestSession_close(t *testing.T) {
	done := make(chan error, 1)
	mailbox := queuemocks.NewQueue(t)
	mailbox.EXPECT().ReadAllMessages().Return([]interface{}{
		&envelope{request: &detachRequest{}},
		&envelope{request: &commandRequest{}, done: done},
	}).Once()
	s := &Session{id: "s1", mailbox: mailbox}

	s.close()
	var notFound *SessionNotFoundError
	require.ErrorAs(t, <-done, &notFound)

	// no more requests reach the mailbox
	assert.ErrorAs(t, s.enqueue(&envelope{request: &detachRequest{}}), &notFound)
}

func TestSession_replay(t *testing.T) {
	newSession := func(repo *repomocks.Repository) *Session {
		s := &Session{
			id:      "s1",
			manager: &Manager{repository: repo},
			logger:  log.With("session", "s1"),
			state:   &types.GameState{SessionID: "s1", Seq: 6},
			events:  newEventLog(2),
		}
		for seq := uint64(1); seq <= 6; seq++ {
			s.events.append(types.Event{Seq: seq})
		}
		return s
	}

	t.Run("from memory", func(t *testing.T) {
		s := newSession(repomocks.NewRepository(t))
		assert.Equal(t, []uint64{6}, seqs(s.replay(context.Background(), 5)))
		assert.Empty(t, s.replay(context.Background(), 6))
	})

	t.Run("stitched with the store", func(t *testing.T) {
		repo := repomocks.NewRepository(t)
		repo.EXPECT().LoadEventsSince(mock.Anything, "s1", uint64(2), 0).Return([]types.Event{
			{Seq: 3}, {Seq: 4}, {Seq: 5},
		}, nil).Once()
		s := newSession(repo)
		assert.Equal(t, []uint64{3, 4, 5, 6}, seqs(s.replay(context.Background(), 2)))
	})

	t.Run("store failure", func(t *testing.T) {
		repo := repomocks.NewRepository(t)
		repo.EXPECT().LoadEventsSince(mock.Anything, "s1", uint64(0), 0).Return(nil, errors.New("down")).Once()
		s := newSession(repo)
		assert.Equal(t, []uint64{5, 6}, seqs(s.replay(context.Background(), 0)))
	})
}
