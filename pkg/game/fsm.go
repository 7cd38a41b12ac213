package game

import (
	"sort"

	"github.com/cbodonnell/tycoon/pkg/game/types"
)

// phaseCommands is the turn-gated transition table: a command listed for a
// phase may be issued by the current player while the game is in it.
var phaseCommands = map[types.Phase][]CommandKind{
	types.PhaseLobby: {
		CommandStartGame,
	},
	types.PhaseAwaitingRoll: {
		CommandRollDice,
		CommandPayBail,
		CommandUseJailCard,
		CommandBuildHouse,
		CommandSellHouse,
		CommandMortgage,
		CommandUnmortgage,
	},
	types.PhaseAwaitingPropertyDecision: {
		CommandBuyProperty,
		CommandDeclineProperty,
	},
	types.PhaseAwaitingDebtSettlement: {
		CommandPayRent,
		CommandSellHouse,
		CommandMortgage,
		CommandDeclareBankruptcy,
	},
	types.PhaseTurnComplete: {
		CommandEndTurn,
	},
}

// turnExempt commands do not require the actor to hold the turn.
var turnExempt = map[CommandKind]bool{
	CommandProposeTrade: true,
	CommandRespondTrade: true,
	CommandCancelTrade:  true,
	CommandLeaveGame:    true,
	CommandKickPlayer:   true,
	CommandSetConnected: true,
}

// Allowed reports whether kind is in the transition table for phase.
func Allowed(phase types.Phase, kind CommandKind) bool {
	for _, k := range phaseCommands[phase] {
		if k == kind {
			return true
		}
	}
	return false
}

// exemptAllowed reports whether a turn-exempt command may be issued in the
// given game status and phase.
func exemptAllowed(state *types.GameState, kind CommandKind) bool {
	switch kind {
	case CommandSetConnected:
		return true
	case CommandLeaveGame:
		return state.Status == types.StatusLobby || state.Status == types.StatusInProgress
	default:
		return state.Status == types.StatusInProgress && state.Phase != types.PhaseGameOver
	}
}

// LegalCommands returns the commands the player could issue right now,
// sorted by name. Internal commands are not listed.
func LegalCommands(state *types.GameState, playerID string) []CommandKind {
	var legal []CommandKind
	p := state.Player(playerID)
	if p == nil {
		if state.Status == types.StatusLobby {
			legal = append(legal, CommandJoinGame)
		}
		return legal
	}
	if p.Bankrupt {
		return legal
	}
	for kind := range turnExempt {
		if kind == CommandSetConnected || !exemptAllowed(state, kind) {
			continue
		}
		if kind == CommandKickPlayer && state.HostID != playerID {
			continue
		}
		legal = append(legal, kind)
	}
	if state.Status == types.StatusLobby {
		if state.HostID == playerID {
			legal = append(legal, CommandStartGame)
		}
	} else if current := state.CurrentPlayer(); current != nil && current.ID == playerID {
		legal = append(legal, phaseCommands[state.Phase]...)
	}
	sort.Slice(legal, func(i, j int) bool { return legal[i] < legal[j] })
	return legal
}

// authorize applies both gates of the turn state machine: the actor must
// hold the turn (unless the command is exempt) and the command must be
// legal in the current phase.
func authorize(state *types.GameState, actorID string, kind CommandKind) error {
	illegal := func(detail string) error {
		return &IllegalActionError{
			Detail: detail,
			Phase:  state.Phase,
			Legal:  LegalCommands(state, actorID),
		}
	}

	if kind == CommandJoinGame {
		if state.Status != types.StatusLobby {
			return illegal("game already started")
		}
		if state.Player(actorID) != nil {
			return illegal("already seated")
		}
		return nil
	}

	p := state.Player(actorID)
	if p == nil {
		return illegal("not seated in this game")
	}
	if p.Bankrupt && kind != CommandSetConnected {
		return illegal("player is bankrupt")
	}

	if turnExempt[kind] {
		if !exemptAllowed(state, kind) {
			return illegal(string(kind) + " not allowed now")
		}
		return nil
	}

	if state.Status == types.StatusLobby {
		if !Allowed(types.PhaseLobby, kind) {
			return illegal(string(kind) + " not allowed in lobby")
		}
		return nil
	}
	if state.Status != types.StatusInProgress {
		return illegal("game is over")
	}
	if current := state.CurrentPlayer(); current == nil || current.ID != actorID {
		return illegal("not your turn")
	}
	if !Allowed(state.Phase, kind) {
		return illegal(string(kind) + " not allowed in phase " + string(state.Phase))
	}
	return nil
}
