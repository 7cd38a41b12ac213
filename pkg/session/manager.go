package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sasha-s/go-deadlock"

	authproviders "github.com/cbodonnell/tycoon/pkg/auth/providers"
	"github.com/cbodonnell/tycoon/pkg/game"
	"github.com/cbodonnell/tycoon/pkg/game/constants"
	"github.com/cbodonnell/tycoon/pkg/game/types"
	"github.com/cbodonnell/tycoon/pkg/log"
	"github.com/cbodonnell/tycoon/pkg/messages"
	"github.com/cbodonnell/tycoon/pkg/queue"
	"github.com/cbodonnell/tycoon/pkg/repositories"
	"github.com/cbodonnell/tycoon/pkg/state"
	"github.com/cbodonnell/tycoon/pkg/workers"
)

const (
	// DefaultMailboxSize is the number of requests a session can have queued
	DefaultMailboxSize = 256
	// DefaultFinishedCacheSize is the number of final states of archived
	// sessions kept in memory for late reconnects
	DefaultFinishedCacheSize = 256
)

// Publisher delivers messages to connected clients. Send must not block.
type Publisher interface {
	Send(clientID uint32, msg *messages.Message)
}

// binding is what the manager knows about a connected client.
type binding struct {
	playerID  string
	sessionID string
}

// Manager maps session ids to live sessions and clients to players. It
// routes inbound messages to the session that owns the game.
type Manager struct {
	engine       *game.Engine
	publisher    Publisher
	repository   repositories.Repository
	states       state.StateManager
	tokens       authproviders.SessionTokenProvider
	authProvider authproviders.AuthProvider
	saves        *workers.SaveQueue
	eventLogSize int
	mailboxSize  int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	lock     deadlock.RWMutex
	sessions map[string]*Session
	clients  map[uint32]*binding
	finished *finishedCache
}

type NewManagerOptions struct {
	Engine     *game.Engine
	Publisher  Publisher
	Repository repositories.Repository
	// StateManager defaults to an in-memory one
	StateManager  state.StateManager
	SessionTokens authproviders.SessionTokenProvider
	// AuthProvider is optional; without it players get a random id
	AuthProvider authproviders.AuthProvider
	// SaveQueue is optional; without it nothing is persisted
	SaveQueue *workers.SaveQueue
	// EventLogSize defaults to DefaultEventLogSize
	EventLogSize int
	// MailboxSize defaults to DefaultMailboxSize
	MailboxSize int
}

func NewManager(opts NewManagerOptions) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		engine:       opts.Engine,
		publisher:    opts.Publisher,
		repository:   opts.Repository,
		states:       opts.StateManager,
		tokens:       opts.SessionTokens,
		authProvider: opts.AuthProvider,
		saves:        opts.SaveQueue,
		eventLogSize: opts.EventLogSize,
		mailboxSize:  opts.MailboxSize,
		ctx:          ctx,
		cancel:       cancel,
		sessions:     make(map[string]*Session),
		clients:      make(map[uint32]*binding),
		finished:     newFinishedCache(DefaultFinishedCacheSize),
	}
	if m.engine == nil {
		m.engine = game.NewEngine(game.NewEngineOptions{})
	}
	if m.states == nil {
		m.states = state.NewInMemoryStateManager()
	}
	if m.mailboxSize <= 0 {
		m.mailboxSize = DefaultMailboxSize
	}
	return m
}

// Close stops every session goroutine and waits for them to exit.
func (m *Manager) Close() {
	m.cancel()
	m.wg.Wait()
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return len(m.sessions)
}

// HandleMessage processes one inbound message. Failures are reported to
// the client that sent it as an ERROR message.
func (m *Manager) HandleMessage(ctx context.Context, clientID uint32, msg *messages.Message) {
	if err := m.handle(ctx, clientID, msg); err != nil {
		if messages.KindOf(err) == "InternalError" {
			log.Error("Failed to handle %s from client %d: %v", msg.Type, clientID, err)
		} else {
			log.Debug("Rejected %s from client %d: %v", msg.Type, clientID, err)
		}
		m.publisher.Send(clientID, messages.NewErrorMessage(err))
	}
}

func (m *Manager) handle(ctx context.Context, clientID uint32, msg *messages.Message) error {
	switch msg.Type {
	case messages.MessageTypeConnect:
		return m.connect(ctx, clientID, msg)
	case messages.MessageTypeCreateGame:
		return m.createGame(ctx, clientID, msg)
	case messages.MessageTypeJoinGame:
		return m.joinGame(ctx, clientID, msg)
	case messages.MessageTypeReconnect:
		return m.reconnect(ctx, clientID, msg)
	}

	cmd, err := messages.ParseCommand(msg)
	if err != nil {
		return err
	}
	b := m.binding(clientID)
	if b.sessionID == "" {
		return &game.ValidationError{Detail: "not in a session"}
	}
	return m.dispatch(ctx, b.sessionID, &commandRequest{
		clientID: clientID,
		playerID: b.playerID,
		command:  cmd,
	})
}

func (m *Manager) connect(ctx context.Context, clientID uint32, msg *messages.Message) error {
	payload := messages.ConnectPayload{}
	if len(msg.Payload) > 0 {
		if err := messages.UnmarshalPayload(msg, &payload); err != nil {
			return err
		}
	}

	var playerID string
	if m.authProvider != nil {
		claims, err := m.authProvider.VerifyToken(ctx, payload.IDToken)
		if err != nil {
			return &game.ValidationError{Detail: "invalid identity token"}
		}
		playerID = claims.UID
	}

	m.lock.Lock()
	b := m.clientLocked(clientID)
	if playerID == "" {
		playerID = b.playerID
	}
	if playerID == "" {
		playerID = uuid.NewString()
	}
	if b.sessionID != "" && b.playerID != playerID {
		m.lock.Unlock()
		return &game.ValidationError{Detail: "already playing as another player"}
	}
	b.playerID = playerID
	m.lock.Unlock()

	reply, err := messages.NewMessage(messages.MessageTypeConnected, messages.ConnectedPayload{PlayerID: playerID})
	if err != nil {
		return err
	}
	m.publisher.Send(clientID, reply)
	return nil
}

func (m *Manager) createGame(ctx context.Context, clientID uint32, msg *messages.Message) error {
	payload := messages.CreateGamePayload{}
	if err := messages.UnmarshalPayload(msg, &payload); err != nil {
		return err
	}
	b, err := m.identify(clientID)
	if err != nil {
		return err
	}

	s := m.newSession(m.engine.NewGame(uuid.NewString()), false)
	m.lock.Lock()
	m.sessions[s.id] = s
	m.startLocked(s)
	m.lock.Unlock()
	log.Info("Created session %s for player %s", s.id, b.playerID)

	return s.do(ctx, &joinRequest{
		clientID: clientID,
		playerID: b.playerID,
		name:     payload.Name,
	})
}

func (m *Manager) joinGame(ctx context.Context, clientID uint32, msg *messages.Message) error {
	payload := messages.JoinGamePayload{}
	if err := messages.UnmarshalPayload(msg, &payload); err != nil {
		return err
	}
	if payload.SessionID == "" {
		return &game.ValidationError{Detail: "sessionId is required"}
	}
	b, err := m.identify(clientID)
	if err != nil {
		return err
	}
	return m.dispatch(ctx, payload.SessionID, &joinRequest{
		clientID: clientID,
		playerID: b.playerID,
		name:     payload.Name,
	})
}

func (m *Manager) reconnect(ctx context.Context, clientID uint32, msg *messages.Message) error {
	payload := messages.ReconnectPayload{}
	if err := messages.UnmarshalPayload(msg, &payload); err != nil {
		return err
	}
	claims, err := m.tokens.Verify(payload.Token)
	if err != nil {
		log.Debug("Client %d presented a bad reconnect token: %v", clientID, err)
		return &game.ValidationError{Detail: "invalid reconnect token"}
	}
	if payload.SessionID != "" && payload.SessionID != claims.SessionID {
		return &game.ValidationError{Detail: "reconnect token is for another session"}
	}

	m.lock.Lock()
	b := m.clientLocked(clientID)
	if b.playerID != "" && b.playerID != claims.PlayerID {
		m.lock.Unlock()
		return &game.ValidationError{Detail: "reconnect token is for another player"}
	}
	if b.sessionID != "" && b.sessionID != claims.SessionID {
		m.lock.Unlock()
		return &game.ValidationError{Detail: "already in session " + b.sessionID}
	}
	b.playerID = claims.PlayerID
	m.lock.Unlock()

	return m.dispatch(ctx, claims.SessionID, &reconnectRequest{
		clientID: clientID,
		playerID: claims.PlayerID,
		lastSeq:  payload.LastSeq,
	})
}

// identify returns the client's binding, assigning a player id when the
// server does not verify identities. The client must not be in a session.
func (m *Manager) identify(clientID uint32) (binding, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	b := m.clientLocked(clientID)
	if b.sessionID != "" {
		return binding{}, &game.ValidationError{Detail: "already in session " + b.sessionID + ", leave it first"}
	}
	if b.playerID == "" {
		if m.authProvider != nil {
			return binding{}, &game.ValidationError{Detail: "CONNECT with an identity token first"}
		}
		b.playerID = uuid.NewString()
	}
	return *b, nil
}

func (m *Manager) binding(clientID uint32) binding {
	m.lock.RLock()
	defer m.lock.RUnlock()
	if b, ok := m.clients[clientID]; ok {
		return *b
	}
	return binding{}
}

// clientLocked returns the binding of a client, creating it if needed.
// m.lock must be held for writing.
func (m *Manager) clientLocked(clientID uint32) *binding {
	b, ok := m.clients[clientID]
	if !ok {
		b = &binding{}
		m.clients[clientID] = b
	}
	return b
}

// bind records that clientID plays playerID in sessionID. It returns false
// when the client is no longer connected.
func (m *Manager) bind(clientID uint32, playerID, sessionID string) bool {
	m.lock.Lock()
	defer m.lock.Unlock()
	b, ok := m.clients[clientID]
	if !ok {
		return false
	}
	b.playerID = playerID
	b.sessionID = sessionID
	return true
}

func (m *Manager) unbind(clientID uint32, sessionID string) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if b, ok := m.clients[clientID]; ok && b.sessionID == sessionID {
		b.sessionID = ""
	}
}

// ClientConnected registers a client.
func (m *Manager) ClientConnected(ctx context.Context, clientID uint32) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.clientLocked(clientID)
}

// ClientDisconnected forgets a client and clears the liveness flag of the
// player it was attached to. The seat is kept.
func (m *Manager) ClientDisconnected(ctx context.Context, clientID uint32) {
	m.lock.Lock()
	b, ok := m.clients[clientID]
	delete(m.clients, clientID)
	var s *Session
	if ok && b.sessionID != "" {
		s = m.sessions[b.sessionID]
	}
	m.lock.Unlock()

	if s == nil {
		return
	}
	if err := s.enqueue(&envelope{request: &detachRequest{clientID: clientID, playerID: b.playerID}}); err != nil {
		log.Warn("Failed to detach client %d from session %s: %v", clientID, s.id, err)
	}
}

// dispatch hands request to the session with the given id. A session that
// ends while the request is queued rejects it; the request is then retried
// once against what the session left behind.
func (m *Manager) dispatch(ctx context.Context, sessionID string, request interface{}) error {
	s, err := m.lookup(ctx, sessionID)
	if err != nil {
		return err
	}
	err = s.do(ctx, request)
	var notFound *SessionNotFoundError
	if !errors.As(err, &notFound) || !s.isClosed() {
		return err
	}
	retry, err := m.lookup(ctx, sessionID)
	if err != nil {
		return err
	}
	return retry.do(ctx, request)
}

// lookup returns the live session with the given id, loading it from the
// repository when it is not in memory.
func (m *Manager) lookup(ctx context.Context, sessionID string) (*Session, error) {
	m.lock.RLock()
	s, ok := m.sessions[sessionID]
	final := m.finished.get(sessionID)
	m.lock.RUnlock()
	if ok {
		return s, nil
	}

	var gameState *types.GameState
	if final != nil {
		gameState = final.Clone()
	} else {
		snapshot, err := m.repository.LoadSnapshot(ctx, sessionID)
		if err != nil {
			if repositories.IsNotFound(err) {
				return nil, &SessionNotFoundError{SessionID: sessionID}
			}
			return nil, fmt.Errorf("failed to load session %s: %v", sessionID, err)
		}
		gameState, err = messages.DeserializeGameState(snapshot.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode session %s: %v", sessionID, err)
		}
	}
	if gameState.Status == types.StatusLobby && len(gameState.Players) == 0 {
		return nil, &SessionNotFoundError{SessionID: sessionID}
	}

	m.lock.Lock()
	defer m.lock.Unlock()
	if existing, ok := m.sessions[sessionID]; ok {
		return existing, nil
	}
	if final == nil {
		// events stored past the snapshot were never applied to it and
		// their seqs are about to be reused
		if err := m.repository.DeleteEventsAfter(ctx, sessionID, gameState.Seq); err != nil {
			return nil, fmt.Errorf("failed to truncate events of session %s: %v", sessionID, err)
		}
	}
	s = m.newSession(gameState, true)
	m.sessions[sessionID] = s
	m.startLocked(s)
	log.Info("Rehydrated session %s at seq %d", sessionID, gameState.Seq)
	return s, nil
}

func (m *Manager) newSession(gameState *types.GameState, rehydrated bool) *Session {
	return &Session{
		id:         gameState.SessionID,
		manager:    m,
		logger:     log.With("session", gameState.SessionID),
		mailbox:    queue.NewInMemoryQueue(m.mailboxSize),
		state:      gameState,
		members:    make(map[string]uint32),
		events:     newEventLog(m.eventLogSize),
		rehydrated: rehydrated,
	}
}

// startLocked starts the session goroutine. m.lock must be held.
func (m *Manager) startLocked(s *Session) {
	m.wg.Add(1)
	go s.run(m.ctx)
}

// archive drops a finished or abandoned session from memory. Finished
// games stay available for reconnects; abandoned lobbies are deleted.
func (m *Manager) archive(ctx context.Context, s *Session) {
	abandoned := s.state.Status == types.StatusLobby && len(s.state.Players) == 0

	m.lock.Lock()
	if m.sessions[s.id] == s {
		delete(m.sessions, s.id)
	}
	for _, clientID := range s.members {
		if b, ok := m.clients[clientID]; ok && b.sessionID == s.id {
			b.sessionID = ""
		}
	}
	if !abandoned {
		m.finished.put(s.id, s.state)
	}
	m.lock.Unlock()

	if err := m.states.Delete(ctx, s.id); err != nil {
		s.logger.Error("Failed to delete published state: %v", err)
	}
	if abandoned {
		m.persist(workers.SaveSnapshotRequest{State: s.state, Discard: true})
		s.logger.Info("Session abandoned")
		return
	}
	s.logger.Info("Session archived, winner %s", s.state.WinnerID)
}

// persist hands a save request to the save worker without waiting on it.
func (m *Manager) persist(req workers.SaveSnapshotRequest) {
	if m.saves == nil {
		return
	}
	m.saves.Push(req)
}

// LobbySummary describes a session that can still be joined.
type LobbySummary struct {
	SessionID string   `json:"sessionId"`
	HostID    string   `json:"hostId"`
	Players   []string `json:"players"`
	OpenSeats int      `json:"openSeats"`
}

// Lobbies lists the sessions that have not started and have a free seat.
func (m *Manager) Lobbies(ctx context.Context) ([]LobbySummary, error) {
	lobbies, err := m.states.List(ctx, func(s *types.GameState) bool {
		return s.Status == types.StatusLobby && len(s.Players) < constants.MaxPlayers
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list lobbies: %v", err)
	}
	out := make([]LobbySummary, 0, len(lobbies))
	for _, s := range lobbies {
		names := make([]string, 0, len(s.Players))
		for _, p := range s.Players {
			names = append(names, p.Name)
		}
		out = append(out, LobbySummary{
			SessionID: s.SessionID,
			HostID:    s.HostID,
			Players:   names,
			OpenSeats: constants.MaxPlayers - len(s.Players),
		})
	}
	return out, nil
}

// finishedCache keeps the final states of the most recently archived
// sessions. It is guarded by the manager's lock.
type finishedCache struct {
	order  []string
	states map[string]*types.GameState
	size   int
}

func newFinishedCache(size int) *finishedCache {
	return &finishedCache{
		states: make(map[string]*types.GameState),
		size:   size,
	}
}

func (c *finishedCache) get(sessionID string) *types.GameState {
	return c.states[sessionID]
}

func (c *finishedCache) put(sessionID string, s *types.GameState) {
	if _, ok := c.states[sessionID]; !ok {
		c.order = append(c.order, sessionID)
	}
	c.states[sessionID] = s
	for len(c.order) > c.size {
		delete(c.states, c.order[0])
		c.order = c.order[1:]
	}
}
