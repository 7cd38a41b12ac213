package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cbodonnell/tycoon/pkg/game"
	"github.com/cbodonnell/tycoon/pkg/game/constants"
	"github.com/cbodonnell/tycoon/pkg/game/types"
	"github.com/cbodonnell/tycoon/pkg/log"
	"github.com/cbodonnell/tycoon/pkg/messages"
	"github.com/cbodonnell/tycoon/pkg/queue"
	"github.com/cbodonnell/tycoon/pkg/workers"
)

// replayLoadTimeout bounds loading a replay tail from the repository
const replayLoadTimeout = 5 * time.Second

type joinRequest struct {
	clientID uint32
	playerID string
	name     string
}

type reconnectRequest struct {
	clientID uint32
	playerID string
	lastSeq  uint64
}

type commandRequest struct {
	clientID uint32
	playerID string
	command  game.Command
}

// detachRequest is sent when a client's connection goes away.
type detachRequest struct {
	clientID uint32
	playerID string
}

type envelope struct {
	request interface{}
	// done receives the result; nil when nobody waits for it
	done chan error
}

// Session owns one game. Every change to it is made by its run goroutine,
// one mailbox item at a time.
type Session struct {
	id      string
	manager *Manager
	logger  *log.Logger
	mailbox queue.Queue

	lock   sync.Mutex
	closed bool

	// owned by the run goroutine
	state      *types.GameState
	members    map[string]uint32
	events     *eventLog
	rehydrated bool
}

func (s *Session) ID() string {
	return s.id
}

// do submits a request and waits for its result.
func (s *Session) do(ctx context.Context, request interface{}) error {
	done := make(chan error, 1)
	if err := s.enqueue(&envelope{request: request, done: done}); err != nil {
		return err
	}
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) enqueue(env *envelope) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.closed {
		return &SessionNotFoundError{SessionID: s.id}
	}
	if err := s.mailbox.Enqueue(env); err != nil {
		if errors.Is(err, queue.ErrQueueFull) {
			return &SessionBusyError{SessionID: s.id}
		}
		return fmt.Errorf("failed to enqueue request: %v", err)
	}
	return nil
}

func (s *Session) run(ctx context.Context) {
	defer s.manager.wg.Done()
	defer s.close()

	if s.rehydrated && s.state.Status != types.StatusFinished {
		s.markDisconnected(ctx)
	}

	for {
		item, err := s.mailbox.Dequeue(ctx)
		if err != nil {
			return
		}
		env, ok := item.(*envelope)
		if !ok {
			s.logger.Error("Unexpected mailbox item %T", item)
			continue
		}
		err = s.handle(ctx, env.request)
		if env.done != nil {
			env.done <- err
		}
		if s.ended() {
			s.manager.archive(ctx, s)
			return
		}
	}
}

// close stops accepting requests and fails the ones still queued.
func (s *Session) close() {
	s.lock.Lock()
	s.closed = true
	s.lock.Unlock()
	for _, item := range s.mailbox.ReadAllMessages() {
		if env, ok := item.(*envelope); ok && env.done != nil {
			env.done <- &SessionNotFoundError{SessionID: s.id}
		}
	}
}

func (s *Session) isClosed() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.closed
}

// ended reports whether the session is finished or abandoned.
func (s *Session) ended() bool {
	return s.state.Status == types.StatusFinished ||
		(s.state.Status == types.StatusLobby && len(s.state.Players) == 0)
}

func (s *Session) handle(ctx context.Context, request interface{}) error {
	switch r := request.(type) {
	case *joinRequest:
		return s.join(ctx, r)
	case *reconnectRequest:
		return s.reconnect(ctx, r)
	case *commandRequest:
		return s.command(ctx, r)
	case *detachRequest:
		s.detach(ctx, r)
		return nil
	default:
		return fmt.Errorf("unknown request %T", request)
	}
}

// apply runs cmd through the engine and commits the result.
func (s *Session) apply(ctx context.Context, actorID string, cmd game.Command) error {
	next, events, err := s.manager.engine.Apply(s.state, actorID, cmd)
	if err != nil {
		return err
	}
	s.commit(ctx, next, events)
	return nil
}

func (s *Session) commit(ctx context.Context, next *types.GameState, events []types.Event) {
	s.state = next
	if len(events) == 0 {
		return
	}
	s.events.append(events...)
	for _, event := range events {
		msg, err := messages.NewEventMessage(event)
		if err != nil {
			s.logger.Error("Failed to build event message: %v", err)
			continue
		}
		s.broadcast(msg)
	}
	if next.Status == types.StatusFinished {
		if msg, err := s.gameOverMessage(); err == nil {
			s.broadcast(msg)
		}
	}

	if err := s.manager.states.Set(ctx, next); err != nil {
		s.logger.Error("Failed to publish state: %v", err)
	}
	s.manager.persist(workers.SaveSnapshotRequest{
		State:  next,
		Events: events,
	})
	s.logger.Trace("Committed %d events, seq %d", len(events), next.Seq)
}

func (s *Session) broadcast(msg *messages.Message) {
	for _, clientID := range s.members {
		s.manager.publisher.Send(clientID, msg)
	}
}

func (s *Session) send(clientID uint32, msgType string, payload interface{}) {
	msg, err := messages.NewMessage(msgType, payload)
	if err != nil {
		s.logger.Error("Failed to build %s message: %v", msgType, err)
		return
	}
	s.manager.publisher.Send(clientID, msg)
}

func (s *Session) sendSnapshot(clientID uint32, playerID string) {
	visible := s.state.Clone()
	// deck order is hidden information
	visible.Decks = nil
	s.send(clientID, messages.MessageTypeStateSnapshot, messages.StateSnapshotPayload{
		State: visible,
		Legal: game.LegalCommands(s.state, playerID),
	})
}

func (s *Session) gameOverMessage() (*messages.Message, error) {
	return messages.NewMessage(messages.MessageTypeGameOver, messages.GameOverPayload{
		WinnerID: s.state.WinnerID,
	})
}

// attach routes the session's messages for playerID to clientID. A previous
// connection of the same player stops receiving them.
func (s *Session) attach(ctx context.Context, clientID uint32, playerID string) bool {
	if old, ok := s.members[playerID]; ok && old != clientID {
		s.manager.unbind(old, s.id)
	}
	if !s.manager.bind(clientID, playerID, s.id) {
		// the client went away while the request was queued
		delete(s.members, playerID)
		s.setConnected(ctx, playerID, false)
		return false
	}
	s.members[playerID] = clientID
	return true
}

func (s *Session) setConnected(ctx context.Context, playerID string, connected bool) {
	if s.state.Player(playerID) == nil || s.state.Status == types.StatusFinished {
		return
	}
	if err := s.apply(ctx, playerID, game.SetConnected{Connected: connected}); err != nil {
		s.logger.Warn("Failed to mark player %s connected=%v: %v", playerID, connected, err)
	}
}

// markDisconnected clears the liveness flag of every player after the
// session was loaded from storage, since none of them is attached yet.
func (s *Session) markDisconnected(ctx context.Context) {
	for _, p := range s.state.Players {
		if p.Connected {
			s.setConnected(ctx, p.ID, false)
		}
	}
}

func (s *Session) join(ctx context.Context, r *joinRequest) error {
	seated := s.state.Player(r.playerID) != nil
	if !seated {
		if s.state.Status != types.StatusLobby {
			return &GameAlreadyStartedError{SessionID: s.id}
		}
		if len(s.state.Players) >= constants.MaxPlayers {
			return &SessionFullError{SessionID: s.id}
		}
	}
	token, err := s.manager.tokens.Issue(r.playerID, s.id)
	if err != nil {
		return err
	}
	if !seated {
		if err := s.apply(ctx, r.playerID, game.JoinGame{Name: r.name}); err != nil {
			return err
		}
	}
	if !s.attach(ctx, r.clientID, r.playerID) {
		return nil
	}
	if seated {
		// joining again is a reconnect without a replay
		s.setConnected(ctx, r.playerID, true)
	}
	s.logger.Info("Player %s joined", r.playerID)

	s.send(r.clientID, messages.MessageTypeJoined, messages.JoinedPayload{
		SessionID: s.id,
		PlayerID:  r.playerID,
		Token:     token,
	})
	s.sendSnapshot(r.clientID, r.playerID)
	return nil
}

func (s *Session) reconnect(ctx context.Context, r *reconnectRequest) error {
	p := s.state.Player(r.playerID)
	if p == nil {
		return &game.ValidationError{Detail: "player is not seated in session " + s.id}
	}
	if !s.attach(ctx, r.clientID, r.playerID) {
		return nil
	}
	s.logger.Info("Player %s reconnected at seq %d", r.playerID, r.lastSeq)

	s.sendSnapshot(r.clientID, r.playerID)
	for _, event := range s.replay(ctx, r.lastSeq) {
		if msg, err := messages.NewEventMessage(event); err == nil {
			s.manager.publisher.Send(r.clientID, msg)
		}
	}
	if s.state.Status == types.StatusFinished {
		if msg, err := s.gameOverMessage(); err == nil {
			s.manager.publisher.Send(r.clientID, msg)
		}
		return nil
	}
	if !p.Connected {
		s.setConnected(ctx, r.playerID, true)
	}
	return nil
}

// replay returns the events after seq, from the in-memory log when it
// reaches back far enough and from the repository otherwise.
func (s *Session) replay(ctx context.Context, seq uint64) []types.Event {
	events, complete := s.events.since(seq, s.state.Seq)
	if complete {
		return events
	}

	ctx, cancel := context.WithTimeout(ctx, replayLoadTimeout)
	defer cancel()
	stored, err := s.manager.repository.LoadEventsSince(ctx, s.id, seq, 0)
	if err != nil {
		s.logger.Warn("Failed to load events after seq %d: %v", seq, err)
		return events
	}

	// the store may lag behind memory; take from it only what memory lacks
	limit := s.state.Seq + 1
	if len(events) > 0 {
		limit = events[0].Seq
	}
	var out []types.Event
	for _, e := range stored {
		if e.Seq < limit {
			out = append(out, e)
		}
	}
	return append(out, events...)
}

func (s *Session) command(ctx context.Context, r *commandRequest) error {
	if err := s.apply(ctx, r.playerID, r.command); err != nil {
		return err
	}
	if r.command.Kind() == game.CommandLeaveGame {
		if s.members[r.playerID] == r.clientID {
			delete(s.members, r.playerID)
		}
		s.manager.unbind(r.clientID, s.id)
		s.logger.Info("Player %s left", r.playerID)
	}
	return nil
}

func (s *Session) detach(ctx context.Context, r *detachRequest) {
	if clientID, ok := s.members[r.playerID]; !ok || clientID != r.clientID {
		// the player already reconnected on another client
		return
	}
	delete(s.members, r.playerID)
	s.setConnected(ctx, r.playerID, false)
	s.logger.Debug("Player %s disconnected", r.playerID)
}
