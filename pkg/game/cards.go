package game

import (
	"github.com/cbodonnell/tycoon/pkg/board"
	"github.com/cbodonnell/tycoon/pkg/game/constants"
	"github.com/cbodonnell/tycoon/pkg/game/types"
)

// drawCard draws the next card of the deck and applies it.
func (m *mutation) drawCard(p *types.Player, kind board.DeckKind) {
	deck := m.state.Decks[kind]
	if deck == nil || len(deck.Order) == 0 {
		m.state.Phase = types.PhaseTurnComplete
		return
	}
	pos := deck.Next % len(deck.Order)
	index := deck.Order[pos]
	card := board.Cards(kind)[index]
	deck.Next = (pos + 1) % len(deck.Order)

	m.emit(types.EventCardDrawn, p.ID, map[string]interface{}{
		"deck":   kind,
		"card":   index,
		"text":   card.Text,
		"action": card.Action,
	})

	switch card.Action {
	case board.CardActionMoveTo:
		m.moveTo(p, card.Value)
		m.resolveLanding(p, landing{})
	case board.CardActionNearestRailroad:
		m.moveTo(p, m.board.NextOfKind(p.Position, board.SpaceKindRailroad))
		m.resolveLanding(p, landing{railroadFactor: constants.NearestRailroadRentFactor})
	case board.CardActionNearestUtility:
		m.moveTo(p, m.board.NextOfKind(p.Position, board.SpaceKindUtility))
		m.resolveLanding(p, landing{utilityMultiplier: constants.NearestUtilityMultiplier})
	case board.CardActionMoveBack:
		m.moveBack(p, card.Value)
		m.resolveLanding(p, landing{})
	case board.CardActionCollect:
		p.Cash += card.Value
		m.emit(types.EventCashChanged, p.ID, map[string]interface{}{
			"amount": card.Value,
			"reason": "card",
		})
		m.state.Phase = types.PhaseTurnComplete
	case board.CardActionPay:
		m.charge(p, []types.Payment{{Amount: card.Value}}, "card", 0)
	case board.CardActionPayEachPlayer:
		var payments []types.Payment
		for _, other := range m.state.ActivePlayers() {
			if other.ID != p.ID {
				payments = append(payments, types.Payment{To: other.ID, Amount: card.Value})
			}
		}
		m.charge(p, payments, "card", 0)
	case board.CardActionCollectEachPlayer:
		m.collectFromEach(p, card.Value)
		m.state.Phase = types.PhaseTurnComplete
	case board.CardActionRepairs:
		cost := 0
		for _, i := range p.Properties {
			level := m.state.Properties[i].Level
			if level == board.MaxLevel {
				cost += card.PerHotel
			} else {
				cost += level * card.PerHouse
			}
		}
		if cost == 0 {
			m.state.Phase = types.PhaseTurnComplete
			return
		}
		m.charge(p, []types.Payment{{Amount: cost}}, "card", 0)
	case board.CardActionGoToJail:
		m.sendToJail(p, "card")
		m.state.Phase = types.PhaseTurnComplete
	case board.CardActionGetOutOfJail:
		deck.Order = append(deck.Order[:pos], deck.Order[pos+1:]...)
		deck.Next = 0
		if len(deck.Order) > 0 {
			deck.Next = pos % len(deck.Order)
		}
		p.JailCards = append(p.JailCards, kind)
		m.state.Phase = types.PhaseTurnComplete
	default:
		m.state.Phase = types.PhaseTurnComplete
	}
}

// collectFromEach takes up to amount from every other active player. A
// player short of cash pays what they have rather than going into debt.
func (m *mutation) collectFromEach(p *types.Player, amount int) {
	for _, other := range m.state.ActivePlayers() {
		if other.ID == p.ID {
			continue
		}
		paid := amount
		if other.Cash < paid {
			paid = other.Cash
		}
		if paid == 0 {
			continue
		}
		other.Cash -= paid
		p.Cash += paid
		m.emit(types.EventCashChanged, other.ID, map[string]interface{}{
			"amount": -paid,
			"to":     p.ID,
			"reason": "card",
		})
	}
}
