package types

import (
	"github.com/cbodonnell/tycoon/pkg/board"
)

// Status is the lifecycle stage of a session.
type Status string

const (
	StatusLobby      Status = "lobby"
	StatusInProgress Status = "in_progress"
	StatusFinished   Status = "finished"
)

// Phase is the state of the turn state machine.
type Phase string

const (
	PhaseLobby                    Phase = "Lobby"
	PhaseAwaitingRoll             Phase = "AwaitingRoll"
	PhaseResolvingMove            Phase = "ResolvingMove"
	PhaseAwaitingPropertyDecision Phase = "AwaitingPropertyDecision"
	PhaseAwaitingDebtSettlement   Phase = "AwaitingDebtSettlement"
	PhaseAwaitingTradeResponse    Phase = "AwaitingTradeResponse"
	PhaseTurnComplete             Phase = "TurnComplete"
	PhaseGameOver                 Phase = "GameOver"
)

type DiceRoll struct {
	A int `json:"a"`
	B int `json:"b"`
}

func (d DiceRoll) Total() int {
	return d.A + d.B
}

func (d DiceRoll) Doubles() bool {
	return d.A != 0 && d.A == d.B
}

// Deck is the draw order of one card deck. Order holds indexes into
// board.Cards; a kept get-out-of-jail card is removed from Order until used.
type Deck struct {
	Order []int `json:"order"`
	Next  int   `json:"next"`
}

// GameState is the authoritative record of one session.
type GameState struct {
	SessionID string `json:"sessionId"`
	HostID    string `json:"hostId"`
	Status    Status `json:"status"`
	Phase     Phase  `json:"phase"`
	// Players are in join order, which is also the turn rotation order
	Players []*Player `json:"players"`
	// Turn is the index in Players of the player whose turn it is
	Turn          int      `json:"turn"`
	LastRoll      DiceRoll `json:"lastRoll"`
	DoublesStreak int      `json:"doublesStreak"`
	// Pending is the decision the current player has to make, if any
	Pending *PendingDecision `json:"pending,omitempty"`
	// Seq is the sequence number of the last emitted event
	Seq        uint64                   `json:"seq"`
	Properties map[int]*PropertyState   `json:"properties"`
	Trades     map[string]*Trade        `json:"trades"`
	Decks      map[board.DeckKind]*Deck `json:"decks"`
	WinnerID   string                   `json:"winnerId,omitempty"`
}

// NewGameState creates an empty lobby for the given board.
func NewGameState(sessionID string, b *board.Board) *GameState {
	properties := make(map[int]*PropertyState)
	for _, i := range b.Ownable() {
		properties[i] = &PropertyState{Space: i}
	}
	return &GameState{
		SessionID:  sessionID,
		Status:     StatusLobby,
		Phase:      PhaseLobby,
		Players:    []*Player{},
		Properties: properties,
		Trades:     make(map[string]*Trade),
		Decks:      make(map[board.DeckKind]*Deck),
	}
}

// Player returns the player with the given id, or nil.
func (g *GameState) Player(id string) *Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// CurrentPlayer returns the player whose turn it is, or nil outside of play.
func (g *GameState) CurrentPlayer() *Player {
	if g.Status != StatusInProgress || g.Turn < 0 || g.Turn >= len(g.Players) {
		return nil
	}
	return g.Players[g.Turn]
}

// ActivePlayers returns the non-bankrupt players in rotation order.
func (g *GameState) ActivePlayers() []*Player {
	active := make([]*Player, 0, len(g.Players))
	for _, p := range g.Players {
		if !p.Bankrupt {
			active = append(active, p)
		}
	}
	return active
}

// Clone returns a deep copy of the game state.
func (g *GameState) Clone() *GameState {
	c := *g
	c.Players = make([]*Player, len(g.Players))
	for i, p := range g.Players {
		c.Players[i] = p.Clone()
	}
	if g.Pending != nil {
		c.Pending = g.Pending.Clone()
	}
	c.Properties = make(map[int]*PropertyState, len(g.Properties))
	for k, v := range g.Properties {
		prop := *v
		c.Properties[k] = &prop
	}
	c.Trades = make(map[string]*Trade, len(g.Trades))
	for k, v := range g.Trades {
		c.Trades[k] = v.Clone()
	}
	c.Decks = make(map[board.DeckKind]*Deck, len(g.Decks))
	for k, v := range g.Decks {
		c.Decks[k] = &Deck{
			Order: append([]int(nil), v.Order...),
			Next:  v.Next,
		}
	}
	return &c
}
