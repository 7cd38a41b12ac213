package game

import (
	"fmt"

	"github.com/cbodonnell/tycoon/pkg/board"
	"github.com/cbodonnell/tycoon/pkg/game/types"
)

// Engine is the command processor. It is stateless apart from the board and
// the randomness source and may be shared by every session.
type Engine struct {
	board  *board.Board
	random Source
}

type NewEngineOptions struct {
	// Board defaults to the classic board
	Board *board.Board
	// Random defaults to a time-seeded source
	Random Source
}

func NewEngine(opts NewEngineOptions) *Engine {
	b := opts.Board
	if b == nil {
		b = board.Classic()
	}
	src := opts.Random
	if src == nil {
		src = NewRandSource(defaultSeed())
	}
	return &Engine{
		board:  b,
		random: &lockedSource{src: src},
	}
}

func (e *Engine) Board() *board.Board {
	return e.board
}

// NewGame returns an empty lobby for the engine's board.
func (e *Engine) NewGame(sessionID string) *types.GameState {
	return types.NewGameState(sessionID, e.board)
}

// Apply validates cmd for actorID and applies it to a copy of state. On
// success it returns the new state and the events it emitted, in order. On
// failure state is untouched and the error is one of the typed errors of
// this package.
func (e *Engine) Apply(state *types.GameState, actorID string, cmd Command) (*types.GameState, []types.Event, error) {
	if state == nil {
		return nil, nil, fmt.Errorf("nil game state")
	}
	if cmd == nil {
		return nil, nil, validationf("missing command")
	}
	if err := authorize(state, actorID, cmd.Kind()); err != nil {
		return nil, nil, err
	}

	m := &mutation{
		board:  e.board,
		random: e.random,
		state:  state.Clone(),
	}
	if err := m.dispatch(actorID, cmd); err != nil {
		return nil, nil, err
	}
	return m.state, m.events, nil
}

// mutation is one command being applied to a private copy of the state.
type mutation struct {
	board  *board.Board
	random Source
	state  *types.GameState
	events []types.Event
}

func (m *mutation) emit(eventType types.EventType, playerID string, data map[string]interface{}) {
	m.state.Seq++
	m.events = append(m.events, types.Event{
		Seq:      m.state.Seq,
		Type:     eventType,
		PlayerID: playerID,
		Data:     data,
	})
}

func (m *mutation) illegal(actorID, detail string) error {
	return &IllegalActionError{
		Detail: detail,
		Phase:  m.state.Phase,
		Legal:  LegalCommands(m.state, actorID),
	}
}

func (m *mutation) dispatch(actorID string, cmd Command) error {
	switch c := cmd.(type) {
	case JoinGame:
		return m.join(actorID, c)
	case StartGame:
		return m.start(actorID)
	case LeaveGame:
		return m.leave(actorID)
	case KickPlayer:
		return m.kick(actorID, c)
	case SetConnected:
		return m.setConnected(actorID, c)
	}

	p := m.state.Player(actorID)
	switch c := cmd.(type) {
	case RollDice:
		return m.rollDice(p)
	case PayBail:
		return m.payBail(p)
	case UseJailCard:
		return m.useJailCard(p)
	case BuyProperty:
		return m.buyProperty(p)
	case DeclineProperty:
		return m.declineProperty(p)
	case PayRent:
		return m.payDebt(p)
	case DeclareBankruptcy:
		return m.declareBankruptcy(p)
	case BuildHouse:
		return m.buildHouse(p, c.Space)
	case SellHouse:
		return m.sellHouse(p, c.Space)
	case Mortgage:
		return m.mortgage(p, c.Space)
	case Unmortgage:
		return m.unmortgage(p, c.Space)
	case ProposeTrade:
		return m.proposeTrade(p, c)
	case RespondTrade:
		return m.respondTrade(p, c)
	case CancelTrade:
		return m.cancelTrade(p, c)
	case EndTurn:
		return m.endTurn(p)
	default:
		return validationf("unsupported command %s", cmd.Kind())
	}
}

// endTurn either grants the extra roll earned by doubles or passes the turn.
func (m *mutation) endTurn(p *types.Player) error {
	if m.state.Pending != nil {
		return m.illegal(p.ID, "a decision is still pending")
	}
	if !p.InJail && m.state.LastRoll.Doubles() && m.state.DoublesStreak > 0 {
		m.state.Phase = types.PhaseAwaitingRoll
		m.emit(types.EventExtraRoll, p.ID, map[string]interface{}{
			"streak": m.state.DoublesStreak,
		})
		return nil
	}
	m.emit(types.EventTurnEnded, p.ID, nil)
	m.advanceTurn()
	return nil
}

// advanceTurn moves the turn pointer to the next non-bankrupt player in
// join order, wrapping.
func (m *mutation) advanceTurn() {
	n := len(m.state.Players)
	for step := 1; step <= n; step++ {
		i := (m.state.Turn + step) % n
		if !m.state.Players[i].Bankrupt {
			m.state.Turn = i
			break
		}
	}
	m.state.DoublesStreak = 0
	m.state.LastRoll = types.DiceRoll{}
	m.state.Pending = nil
	m.state.Phase = types.PhaseAwaitingRoll
	m.emit(types.EventTurnStarted, m.state.Players[m.state.Turn].ID, map[string]interface{}{
		"turn": m.state.Turn,
	})
}

// checkGameOver finishes the game when at most one player is left.
func (m *mutation) checkGameOver() bool {
	if m.state.Status != types.StatusInProgress {
		return false
	}
	active := m.state.ActivePlayers()
	if len(active) > 1 {
		return false
	}
	m.state.Status = types.StatusFinished
	m.state.Phase = types.PhaseGameOver
	m.state.Pending = nil
	m.state.Trades = make(map[string]*types.Trade)
	if len(active) == 1 {
		m.state.WinnerID = active[0].ID
	}
	m.emit(types.EventGameOver, m.state.WinnerID, map[string]interface{}{
		"winner": m.state.WinnerID,
	})
	return true
}

func (m *mutation) space(i int) board.Space {
	return m.board.Space(i)
}
