package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cbodonnell/tycoon/pkg/game/types"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		phase types.Phase
		kind  CommandKind
		want  bool
	}{
		{phase: types.PhaseAwaitingRoll, kind: CommandRollDice, want: true},
		{phase: types.PhaseAwaitingRoll, kind: CommandBuildHouse, want: true},
		{phase: types.PhaseAwaitingRoll, kind: CommandBuyProperty, want: false},
		{phase: types.PhaseAwaitingRoll, kind: CommandEndTurn, want: false},
		{phase: types.PhaseAwaitingPropertyDecision, kind: CommandBuyProperty, want: true},
		{phase: types.PhaseAwaitingPropertyDecision, kind: CommandBuildHouse, want: false},
		{phase: types.PhaseAwaitingDebtSettlement, kind: CommandMortgage, want: true},
		{phase: types.PhaseAwaitingDebtSettlement, kind: CommandUnmortgage, want: false},
		{phase: types.PhaseAwaitingDebtSettlement, kind: CommandEndTurn, want: false},
		{phase: types.PhaseTurnComplete, kind: CommandEndTurn, want: true},
		{phase: types.PhaseTurnComplete, kind: CommandRollDice, want: false},
		{phase: types.PhaseGameOver, kind: CommandEndTurn, want: false},
		{phase: types.PhaseResolvingMove, kind: CommandRollDice, want: false},
	}
	for _, tt := range tests {
		t.Run(string(tt.phase)+"/"+string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.phase, tt.kind))
		})
	}
}

func TestAuthorize(t *testing.T) {
	_, _, state := newTestGame(t, "a", "b")
	state.Players[1].Bankrupt = true
	state.Players = append(state.Players, types.NewPlayer("c", "c", 1500))

	tests := []struct {
		name    string
		actor   string
		kind    CommandKind
		wantErr bool
	}{
		{name: "current player rolls", actor: "a", kind: CommandRollDice},
		{name: "other player rolls", actor: "c", kind: CommandRollDice, wantErr: true},
		{name: "wrong phase", actor: "a", kind: CommandEndTurn, wantErr: true},
		{name: "unknown actor", actor: "z", kind: CommandProposeTrade, wantErr: true},
		{name: "bankrupt actor", actor: "b", kind: CommandProposeTrade, wantErr: true},
		{name: "bankrupt connection change", actor: "b", kind: CommandSetConnected},
		{name: "trade out of turn", actor: "c", kind: CommandProposeTrade},
		{name: "leave out of turn", actor: "c", kind: CommandLeaveGame},
		{name: "join in progress", actor: "z", kind: CommandJoinGame, wantErr: true},
		{name: "start in progress", actor: "a", kind: CommandStartGame, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := authorize(state, tt.actor, tt.kind)
			if tt.wantErr {
				assert.IsType(t, &IllegalActionError{}, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLegalCommands(t *testing.T) {
	_, _, state := newTestGame(t, "a", "b")

	assert.Equal(t, []CommandKind{
		CommandBuildHouse,
		CommandCancelTrade,
		CommandKickPlayer,
		CommandLeaveGame,
		CommandMortgage,
		CommandPayBail,
		CommandProposeTrade,
		CommandRespondTrade,
		CommandRollDice,
		CommandSellHouse,
		CommandUnmortgage,
		CommandUseJailCard,
	}, LegalCommands(state, "a"))

	assert.Equal(t, []CommandKind{
		CommandCancelTrade,
		CommandLeaveGame,
		CommandProposeTrade,
		CommandRespondTrade,
	}, LegalCommands(state, "b"))

	assert.Empty(t, LegalCommands(state, "z"))
}
