package game

import (
	"strings"
	"unicode/utf8"

	"github.com/cbodonnell/tycoon/pkg/board"
	"github.com/cbodonnell/tycoon/pkg/game/constants"
	"github.com/cbodonnell/tycoon/pkg/game/types"
)

func (m *mutation) join(actorID string, c JoinGame) error {
	if actorID == "" {
		return validationf("player id is required")
	}
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return validationf("name is required")
	}
	if utf8.RuneCountInString(name) > constants.MaxNameLength {
		return validationf("name is longer than %d characters", constants.MaxNameLength)
	}
	if len(m.state.Players) >= constants.MaxPlayers {
		return m.illegal(actorID, "session is full")
	}

	m.state.Players = append(m.state.Players, types.NewPlayer(actorID, name, constants.StartingCash))
	if m.state.HostID == "" {
		m.state.HostID = actorID
	}
	m.emit(types.EventPlayerJoined, actorID, map[string]interface{}{
		"name": name,
		"host": m.state.HostID == actorID,
	})
	return nil
}

func (m *mutation) start(actorID string) error {
	if m.state.HostID != actorID {
		return m.illegal(actorID, "only the host can start the game")
	}
	if n := len(m.state.Players); n < constants.MinPlayers || n > constants.MaxPlayers {
		return m.illegal(actorID, "need 2 to 4 players to start")
	}

	for _, kind := range []board.DeckKind{board.DeckChance, board.DeckCommunityChest} {
		m.state.Decks[kind] = &types.Deck{
			Order: shuffle(m.random, len(board.Cards(kind))),
		}
	}
	m.state.Status = types.StatusInProgress
	m.emit(types.EventGameStarted, actorID, map[string]interface{}{
		"players": len(m.state.Players),
	})
	// advance from the last seat so the first player to join goes first
	m.state.Turn = len(m.state.Players) - 1
	m.advanceTurn()
	return nil
}

// leave removes the seat in the lobby and forfeits the game once in play.
func (m *mutation) leave(actorID string) error {
	if m.state.Status == types.StatusLobby {
		for i, p := range m.state.Players {
			if p.ID == actorID {
				m.state.Players = append(m.state.Players[:i], m.state.Players[i+1:]...)
				break
			}
		}
		if m.state.HostID == actorID {
			m.state.HostID = ""
			if len(m.state.Players) > 0 {
				m.state.HostID = m.state.Players[0].ID
			}
		}
		m.emit(types.EventPlayerLeft, actorID, map[string]interface{}{
			"host": m.state.HostID,
		})
		return nil
	}

	p := m.state.Player(actorID)
	m.emit(types.EventPlayerLeft, actorID, nil)
	m.bankrupt(p, "", "left")
	return nil
}

// kick forfeits a disconnected player on the host's behalf.
func (m *mutation) kick(actorID string, c KickPlayer) error {
	if m.state.HostID != actorID {
		return m.illegal(actorID, "only the host can remove players")
	}
	target := m.state.Player(c.PlayerID)
	if target == nil {
		return validationf("unknown player %q", c.PlayerID)
	}
	if target.ID == actorID {
		return m.illegal(actorID, "use LEAVE_GAME to forfeit")
	}
	if target.Bankrupt {
		return m.illegal(actorID, "player is already out of the game")
	}
	if target.Connected {
		return m.illegal(actorID, "only disconnected players can be removed")
	}
	m.emit(types.EventPlayerLeft, target.ID, map[string]interface{}{
		"kickedBy": actorID,
	})
	m.bankrupt(target, "", "kicked")
	return nil
}

func (m *mutation) setConnected(actorID string, c SetConnected) error {
	p := m.state.Player(actorID)
	if p.Connected == c.Connected {
		return nil
	}
	p.Connected = c.Connected
	if c.Connected {
		m.emit(types.EventPlayerConnected, p.ID, nil)
	} else {
		m.emit(types.EventPlayerDisconnected, p.ID, nil)
	}
	return nil
}
