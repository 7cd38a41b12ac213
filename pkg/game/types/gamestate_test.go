package types

import (
	"testing"

	"github.com/cbodonnell/tycoon/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameState_Clone(t *testing.T) {
	g := NewGameState("s1", board.Classic())
	g.Players = append(g.Players, NewPlayer("a", "Alice", 1500), NewPlayer("b", "Bob", 1500))
	g.Status = StatusInProgress
	g.TransferProperty(1, "a")
	g.Pending = &PendingDecision{Kind: PendingDebt, PlayerID: "a", Payments: []Payment{{To: "b", Amount: 10}}}
	g.Trades["t1"] = &Trade{ID: "t1", Offer: TradeSide{PlayerID: "a", Properties: []int{1}}}
	g.Decks[board.DeckChance] = &Deck{Order: []int{3, 1, 2}}

	c := g.Clone()
	c.Players[0].Cash = 0
	c.Players[0].Properties[0] = 39
	c.Properties[1].Level = 3
	c.Pending.Payments[0].Amount = 999
	c.Trades["t1"].Offer.Properties[0] = 5
	c.Decks[board.DeckChance].Order[0] = 0

	assert.Equal(t, 1500, g.Players[0].Cash)
	assert.Equal(t, []int{1}, g.Players[0].Properties)
	assert.Equal(t, 0, g.Properties[1].Level)
	assert.Equal(t, 10, g.Pending.Payments[0].Amount)
	assert.Equal(t, []int{1}, g.Trades["t1"].Offer.Properties)
	assert.Equal(t, []int{3, 1, 2}, g.Decks[board.DeckChance].Order)
}

func TestGameState_TransferProperty(t *testing.T) {
	g := NewGameState("s1", board.Classic())
	a := NewPlayer("a", "Alice", 1500)
	b := NewPlayer("b", "Bob", 1500)
	g.Players = append(g.Players, a, b)

	g.TransferProperty(39, "a")
	g.TransferProperty(1, "a")
	require.Equal(t, []int{1, 39}, a.Properties)
	assert.Equal(t, "a", g.Properties[39].Owner)

	g.TransferProperty(39, "b")
	assert.Equal(t, []int{1}, a.Properties)
	assert.Equal(t, []int{39}, b.Properties)
	assert.True(t, b.Owns(39))

	g.TransferProperty(39, "")
	assert.Empty(t, b.Properties)
	assert.Equal(t, "", g.Properties[39].Owner)
}

func TestGameState_CurrentPlayer(t *testing.T) {
	g := NewGameState("s1", board.Classic())
	g.Players = append(g.Players, NewPlayer("a", "Alice", 1500), NewPlayer("b", "Bob", 1500))
	assert.Nil(t, g.CurrentPlayer())

	g.Status = StatusInProgress
	g.Turn = 1
	assert.Equal(t, "b", g.CurrentPlayer().ID)

	g.Players[0].Bankrupt = true
	assert.Len(t, g.ActivePlayers(), 1)
}

func TestDiceRoll(t *testing.T) {
	assert.True(t, DiceRoll{A: 3, B: 3}.Doubles())
	assert.False(t, DiceRoll{A: 3, B: 4}.Doubles())
	assert.False(t, DiceRoll{}.Doubles())
	assert.Equal(t, 7, DiceRoll{A: 3, B: 4}.Total())
}
