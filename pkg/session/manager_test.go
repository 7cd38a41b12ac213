package session

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authproviders "github.com/cbodonnell/tycoon/pkg/auth/providers"
	"github.com/cbodonnell/tycoon/pkg/game"
	"github.com/cbodonnell/tycoon/pkg/game/types"
	"github.com/cbodonnell/tycoon/pkg/messages"
	"github.com/cbodonnell/tycoon/pkg/repositories"
	"github.com/cbodonnell/tycoon/pkg/state"
	"github.com/cbodonnell/tycoon/pkg/workers"

	queuemocks "github.com/cbodonnell/tycoon/mocks/github.com/cbodonnell/tycoon/pkg/queue"
)

// recordingPublisher keeps every message sent to each client.
type recordingPublisher struct {
	lock     sync.Mutex
	messages map[uint32][]*messages.Message
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{messages: make(map[uint32][]*messages.Message)}
}

func (p *recordingPublisher) Send(clientID uint32, msg *messages.Message) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.messages[clientID] = append(p.messages[clientID], msg)
}

// take returns and forgets the messages sent to a client so far.
func (p *recordingPublisher) take(clientID uint32) []*messages.Message {
	p.lock.Lock()
	defer p.lock.Unlock()
	out := p.messages[clientID]
	delete(p.messages, clientID)
	return out
}

func (p *recordingPublisher) count(clientID uint32) int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return len(p.messages[clientID])
}

// zeroSource makes every die roll a 1 and leaves decks in printed order.
type zeroSource struct{}

func (zeroSource) Intn(n int) int { return 0 }

type testEnv struct {
	manager   *Manager
	publisher *recordingPublisher
	repo      *repositories.InMemoryRepository
	tokens    *authproviders.JWTTokenProvider
	saves     *workers.SaveQueue
}

func newTestEnv(t *testing.T, repo *repositories.InMemoryRepository, tokens *authproviders.JWTTokenProvider) *testEnv {
	t.Helper()
	env := newUnsavedTestEnv(t, repo, tokens)

	ctx, cancel := context.WithCancel(context.Background())
	saveWorker := workers.NewSaveSnapshotWorker(workers.NewSaveSnapshotWorkerOptions{
		Repository: env.repo,
		Queue:      env.saves,
	})
	saved := make(chan struct{})
	go func() {
		saveWorker.Start(ctx)
		close(saved)
	}()
	t.Cleanup(func() {
		env.manager.Close()
		cancel()
		<-saved
	})
	return env
}

// newUnsavedTestEnv builds a manager whose save queue nobody drains.
func newUnsavedTestEnv(t *testing.T, repo *repositories.InMemoryRepository, tokens *authproviders.JWTTokenProvider) *testEnv {
	t.Helper()
	if repo == nil {
		repo = repositories.NewInMemoryRepository()
	}
	if tokens == nil {
		var err error
		tokens, err = authproviders.NewJWTTokenProvider(authproviders.NewJWTTokenProviderOptions{
			Secret: "0123456789abcdef0123456789abcdef",
		})
		require.NoError(t, err)
	}

	env := &testEnv{
		publisher: newRecordingPublisher(),
		repo:      repo,
		tokens:    tokens,
		saves:     workers.NewSaveQueue(0),
	}
	env.manager = NewManager(NewManagerOptions{
		Engine:        game.NewEngine(game.NewEngineOptions{Random: zeroSource{}}),
		Publisher:     env.publisher,
		Repository:    repo,
		StateManager:  state.NewInMemoryStateManager(),
		SessionTokens: tokens,
		SaveQueue:     env.saves,
	})
	t.Cleanup(env.manager.Close)
	return env
}

func (e *testEnv) connect(ids ...uint32) {
	for _, id := range ids {
		e.manager.ClientConnected(context.Background(), id)
	}
}

func (e *testEnv) send(t *testing.T, clientID uint32, msgType string, payload interface{}) {
	t.Helper()
	msg, err := messages.NewMessage(msgType, payload)
	require.NoError(t, err)
	e.manager.HandleMessage(context.Background(), clientID, msg)
}

// joined returns the JOINED payload among the messages of a client.
func joined(t *testing.T, msgs []*messages.Message) messages.JoinedPayload {
	t.Helper()
	for _, msg := range msgs {
		if msg.Type == messages.MessageTypeJoined {
			payload := messages.JoinedPayload{}
			require.NoError(t, json.Unmarshal(msg.Payload, &payload))
			return payload
		}
	}
	require.FailNow(t, "no JOINED message")
	return messages.JoinedPayload{}
}

func errorKind(t *testing.T, msgs []*messages.Message) string {
	t.Helper()
	require.NotEmpty(t, msgs)
	last := msgs[len(msgs)-1]
	require.Equal(t, messages.MessageTypeError, last.Type)
	payload := messages.ErrorPayload{}
	require.NoError(t, json.Unmarshal(last.Payload, &payload))
	return payload.Kind
}

func events(t *testing.T, msgs []*messages.Message) []types.Event {
	t.Helper()
	var out []types.Event
	for _, msg := range msgs {
		if msg.Type != messages.MessageTypeEvent {
			continue
		}
		event := types.Event{}
		require.NoError(t, json.Unmarshal(msg.Payload, &event))
		out = append(out, event)
	}
	return out
}

func eventTypes(evs []types.Event) []types.EventType {
	out := make([]types.EventType, len(evs))
	for i, ev := range evs {
		out[i] = ev.Type
	}
	return out
}

func snapshot(t *testing.T, msg *messages.Message) messages.StateSnapshotPayload {
	t.Helper()
	require.Equal(t, messages.MessageTypeStateSnapshot, msg.Type)
	payload := messages.StateSnapshotPayload{}
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	return payload
}

// startTwoPlayerGame seats client 1 (host) and client 2 and starts the game.
func startTwoPlayerGame(t *testing.T, env *testEnv) (sessionID string, host, guest messages.JoinedPayload) {
	t.Helper()
	env.connect(1, 2)
	env.send(t, 1, messages.MessageTypeCreateGame, messages.CreateGamePayload{Name: "Alice"})
	host = joined(t, env.publisher.take(1))
	env.send(t, 2, messages.MessageTypeJoinGame, messages.JoinGamePayload{SessionID: host.SessionID, Name: "Bob"})
	guest = joined(t, env.publisher.take(2))
	env.send(t, 1, messages.MessageTypeStartGame, nil)
	env.publisher.take(1)
	env.publisher.take(2)
	return host.SessionID, host, guest
}

func TestManager_createJoinStart(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	env.connect(1, 2)

	env.send(t, 1, messages.MessageTypeCreateGame, messages.CreateGamePayload{Name: "Alice"})
	msgs := env.publisher.take(1)
	require.Len(t, msgs, 2)
	host := joined(t, msgs)
	assert.NotEmpty(t, host.Token)
	snap := snapshot(t, msgs[1])
	require.Len(t, snap.State.Players, 1)
	assert.Equal(t, host.PlayerID, snap.State.HostID)
	assert.Contains(t, snap.Legal, game.CommandStartGame)
	assert.Equal(t, 1, env.manager.Count())

	lobbies, err := env.manager.Lobbies(context.Background())
	require.NoError(t, err)
	require.Len(t, lobbies, 1)
	assert.Equal(t, LobbySummary{
		SessionID: host.SessionID,
		HostID:    host.PlayerID,
		Players:   []string{"Alice"},
		OpenSeats: 3,
	}, lobbies[0])

	env.send(t, 2, messages.MessageTypeJoinGame, messages.JoinGamePayload{SessionID: host.SessionID, Name: "Bob"})
	guest := joined(t, env.publisher.take(2))
	assert.Equal(t, host.SessionID, guest.SessionID)
	assert.NotEqual(t, host.PlayerID, guest.PlayerID)
	hostEvents := events(t, env.publisher.take(1))
	require.Len(t, hostEvents, 1)
	assert.Equal(t, types.EventPlayerJoined, hostEvents[0].Type)
	assert.Equal(t, guest.PlayerID, hostEvents[0].PlayerID)

	env.send(t, 1, messages.MessageTypeStartGame, nil)
	started := eventTypes(events(t, env.publisher.take(2)))
	assert.Equal(t, []types.EventType{types.EventGameStarted, types.EventTurnStarted}, started)
	assert.Equal(t, started, eventTypes(events(t, env.publisher.take(1))))

	lobbies, err = env.manager.Lobbies(context.Background())
	require.NoError(t, err)
	assert.Empty(t, lobbies)

	env.connect(3)
	env.send(t, 3, messages.MessageTypeJoinGame, messages.JoinGamePayload{SessionID: host.SessionID, Name: "Carol"})
	assert.Equal(t, KindGameAlreadyStarted, errorKind(t, env.publisher.take(3)))
}

func TestManager_sessionFull(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	env.connect(1, 2, 3, 4, 5)

	env.send(t, 1, messages.MessageTypeCreateGame, messages.CreateGamePayload{Name: "p1"})
	sessionID := joined(t, env.publisher.take(1)).SessionID
	for _, id := range []uint32{2, 3, 4} {
		env.send(t, id, messages.MessageTypeJoinGame, messages.JoinGamePayload{SessionID: sessionID, Name: "p"})
		joined(t, env.publisher.take(id))
	}

	env.send(t, 5, messages.MessageTypeJoinGame, messages.JoinGamePayload{SessionID: sessionID, Name: "p5"})
	assert.Equal(t, KindSessionFull, errorKind(t, env.publisher.take(5)))
}

func TestManager_requestErrors(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	env.connect(1)

	tests := []struct {
		name    string
		msgType string
		payload interface{}
		want    string
	}{
		{name: "unknown session", msgType: messages.MessageTypeJoinGame, payload: messages.JoinGamePayload{SessionID: "nope", Name: "A"}, want: KindSessionNotFound},
		{name: "missing session id", msgType: messages.MessageTypeJoinGame, payload: messages.JoinGamePayload{Name: "A"}, want: game.KindValidation},
		{name: "command outside a session", msgType: messages.MessageTypeRollDice, want: game.KindValidation},
		{name: "unknown type", msgType: "FLY", want: game.KindValidation},
		{name: "bad reconnect token", msgType: messages.MessageTypeReconnect, payload: messages.ReconnectPayload{Token: "x"}, want: game.KindValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env.send(t, 1, tt.msgType, tt.payload)
			assert.Equal(t, tt.want, errorKind(t, env.publisher.take(1)))
		})
	}
}

func TestManager_commandErrorsGoToSender(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	startTwoPlayerGame(t, env)

	// it is the host's turn
	env.send(t, 2, messages.MessageTypeRollDice, nil)
	msgs := env.publisher.take(2)
	assert.Equal(t, game.KindIllegalAction, errorKind(t, msgs))
	payload := messages.ErrorPayload{}
	require.NoError(t, json.Unmarshal(msgs[0].Payload, &payload))
	assert.NotContains(t, payload.Legal, game.CommandRollDice)
	assert.Equal(t, 0, env.publisher.count(1))

	env.send(t, 1, messages.MessageTypeRollDice, nil)
	hostEvents := events(t, env.publisher.take(1))
	require.NotEmpty(t, hostEvents)
	assert.Equal(t, types.EventDiceRolled, hostEvents[0].Type)
	assert.Equal(t, hostEvents, events(t, env.publisher.take(2)))
}

func TestManager_disconnectAndReconnect(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	sessionID, _, guest := startTwoPlayerGame(t, env)

	st, err := env.manager.states.Get(context.Background(), sessionID)
	require.NoError(t, err)
	lastSeq := st.Seq

	env.manager.ClientDisconnected(context.Background(), 2)
	require.Eventually(t, func() bool {
		return env.publisher.count(1) > 0
	}, time.Second, 5*time.Millisecond)
	disconnected := events(t, env.publisher.take(1))
	require.Len(t, disconnected, 1)
	assert.Equal(t, types.EventPlayerDisconnected, disconnected[0].Type)
	assert.Equal(t, guest.PlayerID, disconnected[0].PlayerID)

	env.connect(3)
	env.send(t, 3, messages.MessageTypeReconnect, messages.ReconnectPayload{
		SessionID: sessionID,
		Token:     guest.Token,
		LastSeq:   lastSeq,
	})
	msgs := env.publisher.take(3)
	require.Len(t, msgs, 3)
	snap := snapshot(t, msgs[0])
	assert.False(t, snap.State.Player(guest.PlayerID).Connected)
	assert.Nil(t, snap.State.Decks)
	assert.Equal(t, []types.EventType{types.EventPlayerDisconnected, types.EventPlayerConnected}, eventTypes(events(t, msgs[1:])))
	assert.Equal(t, []types.EventType{types.EventPlayerConnected}, eventTypes(events(t, env.publisher.take(1))))

	// a synced client repeating its reconnect gets a snapshot and no events
	st, err = env.manager.states.Get(context.Background(), sessionID)
	require.NoError(t, err)
	synced := messages.ReconnectPayload{
		SessionID: sessionID,
		Token:     guest.Token,
		LastSeq:   st.Seq,
	}
	for i := 0; i < 2; i++ {
		env.send(t, 3, messages.MessageTypeReconnect, synced)
		msgs = env.publisher.take(3)
		require.Len(t, msgs, 1)
		assert.Equal(t, st.Seq, snapshot(t, msgs[0]).State.Seq)
		assert.Empty(t, events(t, msgs))
	}
	assert.Equal(t, 0, env.publisher.count(1))

	// a token for the session does not fit another one
	env.send(t, 3, messages.MessageTypeReconnect, messages.ReconnectPayload{
		SessionID: "other",
		Token:     guest.Token,
	})
	assert.Equal(t, game.KindValidation, errorKind(t, env.publisher.take(3)))
}

func TestManager_savesDoNotBlockCommands(t *testing.T) {
	env := newUnsavedTestEnv(t, nil, nil)
	sessionID, _, _ := startTwoPlayerGame(t, env)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	msg, err := messages.NewMessage(messages.MessageTypeRollDice, nil)
	require.NoError(t, err)
	env.manager.HandleMessage(ctx, 1, msg)
	require.NoError(t, ctx.Err())
	msgs := env.publisher.take(1)
	require.NotEmpty(t, msgs)
	for _, msg := range msgs {
		assert.NotEqual(t, messages.MessageTypeError, msg.Type)
	}

	st, err := env.manager.states.Get(context.Background(), sessionID)
	require.NoError(t, err)
	require.Equal(t, 1, env.saves.Len())
	pending := env.saves.Drain()
	require.Len(t, pending, 1)
	assert.Equal(t, st.Seq, pending[0].State.Seq)
	require.Len(t, pending[0].Events, int(st.Seq))
	for i, ev := range pending[0].Events {
		assert.Equal(t, uint64(i+1), ev.Seq)
	}
}

func TestManager_rehydrate(t *testing.T) {
	repo := repositories.NewInMemoryRepository()
	first := newTestEnv(t, repo, nil)
	sessionID, host, _ := startTwoPlayerGame(t, first)

	st, err := first.manager.states.Get(context.Background(), sessionID)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		snap, err := repo.LoadSnapshot(context.Background(), sessionID)
		return err == nil && snap.Seq == st.Seq
	}, time.Second, 5*time.Millisecond)
	first.manager.Close()

	second := newTestEnv(t, repo, first.tokens)
	second.connect(7)
	second.send(t, 7, messages.MessageTypeReconnect, messages.ReconnectPayload{
		SessionID: sessionID,
		Token:     host.Token,
	})
	msgs := second.publisher.take(7)
	require.NotEmpty(t, msgs)
	snap := snapshot(t, msgs[0])
	assert.Equal(t, sessionID, snap.State.SessionID)
	assert.Equal(t, types.StatusInProgress, snap.State.Status)
	assert.Equal(t, host.PlayerID, snap.State.CurrentPlayer().ID)

	replayed := events(t, msgs[1:])
	require.NotEmpty(t, replayed)
	for i, ev := range replayed {
		assert.Equal(t, uint64(i+1), ev.Seq, "replay must have no gaps")
	}
	assert.Equal(t, types.EventPlayerConnected, replayed[len(replayed)-1].Type)

	second.send(t, 7, messages.MessageTypeRollDice, nil)
	assert.Equal(t, types.EventDiceRolled, events(t, second.publisher.take(7))[0].Type)
}

func TestManager_rehydrateDropsEventsPastSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewInMemoryRepository()
	first := newTestEnv(t, repo, nil)
	sessionID, host, _ := startTwoPlayerGame(t, first)

	st, err := first.manager.states.Get(ctx, sessionID)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		snap, err := repo.LoadSnapshot(ctx, sessionID)
		return err == nil && snap.Seq == st.Seq
	}, time.Second, 5*time.Millisecond)
	first.manager.Close()

	// events whose snapshot never made it to the store
	var orphaned []types.Event
	for seq := st.Seq + 1; seq <= st.Seq+3; seq++ {
		orphaned = append(orphaned, types.Event{Seq: seq, Type: types.EventDiceRolled, PlayerID: host.PlayerID})
	}
	require.NoError(t, repo.AppendEvents(ctx, sessionID, orphaned))

	second := newTestEnv(t, repo, first.tokens)
	second.connect(7)
	second.send(t, 7, messages.MessageTypeReconnect, messages.ReconnectPayload{
		SessionID: sessionID,
		Token:     host.Token,
		LastSeq:   st.Seq,
	})
	want := []types.EventType{
		types.EventPlayerDisconnected,
		types.EventPlayerDisconnected,
		types.EventPlayerConnected,
	}
	msgs := second.publisher.take(7)
	require.NotEmpty(t, msgs)
	assert.Equal(t, st.Seq+2, snapshot(t, msgs[0]).State.Seq)
	assert.Equal(t, want, eventTypes(events(t, msgs[1:])))

	require.Eventually(t, func() bool {
		stored, err := repo.LoadEventsSince(ctx, sessionID, st.Seq, 0)
		if err != nil || len(stored) != len(want) {
			return false
		}
		return assert.ObjectsAreEqual(want, eventTypes(stored))
	}, time.Second, 5*time.Millisecond)
}

func TestManager_abandonedLobby(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	env.connect(1)

	env.send(t, 1, messages.MessageTypeCreateGame, messages.CreateGamePayload{Name: "Alice"})
	sessionID := joined(t, env.publisher.take(1)).SessionID
	env.send(t, 1, messages.MessageTypeLeaveGame, nil)
	assert.Equal(t, []types.EventType{types.EventPlayerLeft}, eventTypes(events(t, env.publisher.take(1))))

	require.Eventually(t, func() bool {
		return env.manager.Count() == 0
	}, time.Second, 5*time.Millisecond)
	// the discard is the last save queued for the session
	require.Eventually(t, func() bool {
		if env.saves.Len() > 0 {
			return false
		}
		_, err := env.repo.LoadSnapshot(context.Background(), sessionID)
		return repositories.IsNotFound(err)
	}, time.Second, 5*time.Millisecond)

	env.send(t, 1, messages.MessageTypeJoinGame, messages.JoinGamePayload{SessionID: sessionID, Name: "Alice"})
	assert.Equal(t, KindSessionNotFound, errorKind(t, env.publisher.take(1)))
}

func TestManager_gameOver(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	sessionID, host, _ := startTwoPlayerGame(t, env)

	env.send(t, 2, messages.MessageTypeLeaveGame, nil)
	msgs := env.publisher.take(1)
	require.NotEmpty(t, msgs)
	last := msgs[len(msgs)-1]
	require.Equal(t, messages.MessageTypeGameOver, last.Type)
	payload := messages.GameOverPayload{}
	require.NoError(t, json.Unmarshal(last.Payload, &payload))
	assert.Equal(t, host.PlayerID, payload.WinnerID)

	require.Eventually(t, func() bool {
		return env.manager.Count() == 0
	}, time.Second, 5*time.Millisecond)

	// the final state is still served to late reconnects
	env.connect(9)
	env.send(t, 9, messages.MessageTypeReconnect, messages.ReconnectPayload{
		SessionID: sessionID,
		Token:     host.Token,
		LastSeq:   ^uint64(0) >> 1,
	})
	msgs = env.publisher.take(9)
	require.Len(t, msgs, 2)
	snap := snapshot(t, msgs[0])
	assert.Equal(t, types.StatusFinished, snap.State.Status)
	assert.Equal(t, messages.MessageTypeGameOver, msgs[1].Type)
}

func TestManager_reconnectRacingGameOver(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	engine := game.NewEngine(game.NewEngineOptions{})
	st := engine.NewGame("finished-1")
	apply := func(actorID string, cmd game.Command) {
		next, _, err := engine.Apply(st, actorID, cmd)
		require.NoError(t, err)
		st = next
	}
	apply("a", game.JoinGame{Name: "Alice"})
	apply("b", game.JoinGame{Name: "Bob"})
	apply("a", game.StartGame{})
	apply("b", game.LeaveGame{})
	require.Equal(t, types.StatusFinished, st.Status)

	// the session is still mapped but finishes before it reads the request
	ending := env.manager.newSession(st, false)
	mailbox := queuemocks.NewQueue(t)
	mailbox.EXPECT().Enqueue(mock.Anything).RunAndReturn(func(item interface{}) error {
		env.manager.archive(context.Background(), ending)
		ending.closed = true
		item.(*envelope).done <- &SessionNotFoundError{SessionID: ending.id}
		return nil
	}).Once()
	ending.mailbox = mailbox
	env.manager.lock.Lock()
	env.manager.sessions[ending.id] = ending
	env.manager.lock.Unlock()

	token, err := env.tokens.Issue("a", ending.id)
	require.NoError(t, err)
	env.connect(5)
	env.send(t, 5, messages.MessageTypeReconnect, messages.ReconnectPayload{
		SessionID: ending.id,
		Token:     token,
		LastSeq:   st.Seq,
	})

	msgs := env.publisher.take(5)
	require.Len(t, msgs, 2)
	assert.Equal(t, types.StatusFinished, snapshot(t, msgs[0]).State.Status)
	assert.Equal(t, messages.MessageTypeGameOver, msgs[1].Type)
}
