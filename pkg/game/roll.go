package game

import (
	"github.com/cbodonnell/tycoon/pkg/board"
	"github.com/cbodonnell/tycoon/pkg/game/constants"
	"github.com/cbodonnell/tycoon/pkg/game/types"
)

// landing modifies rent for moves caused by cards.
type landing struct {
	railroadFactor    int
	utilityMultiplier int
}

func (m *mutation) rollDice(p *types.Player) error {
	roll := types.DiceRoll{A: rollDie(m.random), B: rollDie(m.random)}
	m.state.LastRoll = roll
	m.emit(types.EventDiceRolled, p.ID, map[string]interface{}{
		"a":       roll.A,
		"b":       roll.B,
		"total":   roll.Total(),
		"doubles": roll.Doubles(),
	})

	if p.InJail {
		m.jailRoll(p, roll)
		return nil
	}

	if roll.Doubles() {
		m.state.DoublesStreak++
		if m.state.DoublesStreak >= constants.MaxDoublesStreak {
			m.sendToJail(p, "three_doubles")
			m.state.Phase = types.PhaseTurnComplete
			return nil
		}
	} else {
		m.state.DoublesStreak = 0
	}

	m.moveBy(p, roll.Total())
	m.resolveLanding(p, landing{})
	return nil
}

// jailRoll handles a roll made from jail. Doubles release the player without
// an extra roll; the third miss forces bail and the move goes ahead.
func (m *mutation) jailRoll(p *types.Player, roll types.DiceRoll) {
	m.state.DoublesStreak = 0
	if roll.Doubles() {
		m.release(p, "rolled_doubles")
		m.moveBy(p, roll.Total())
		m.resolveLanding(p, landing{})
		return
	}

	p.JailRolls++
	if p.JailRolls < constants.MaxJailRolls {
		m.state.Phase = types.PhaseTurnComplete
		return
	}

	m.charge(p, []types.Payment{{Amount: constants.JailBail}}, "bail", roll.Total())
}

func (m *mutation) payBail(p *types.Player) error {
	if !p.InJail {
		return m.illegal(p.ID, "not in jail")
	}
	if p.Cash < constants.JailBail {
		return &InsufficientFundsError{Needed: constants.JailBail, Available: p.Cash}
	}
	p.Cash -= constants.JailBail
	m.emit(types.EventCashChanged, p.ID, map[string]interface{}{
		"amount": -constants.JailBail,
		"reason": "bail",
	})
	m.release(p, "bail_paid")
	return nil
}

func (m *mutation) useJailCard(p *types.Player) error {
	if !p.InJail {
		return m.illegal(p.ID, "not in jail")
	}
	if len(p.JailCards) == 0 {
		return m.illegal(p.ID, "no get out of jail card")
	}
	kind := p.JailCards[0]
	p.JailCards = p.JailCards[1:]
	m.returnJailCard(kind)
	m.release(p, "jail_card")
	return nil
}

func (m *mutation) sendToJail(p *types.Player, reason string) {
	p.Position = m.board.JailIndex()
	p.InJail = true
	p.JailRolls = 0
	m.state.DoublesStreak = 0
	m.emit(types.EventSentToJail, p.ID, map[string]interface{}{
		"reason": reason,
	})
}

func (m *mutation) release(p *types.Player, reason string) {
	p.InJail = false
	p.JailRolls = 0
	m.emit(types.EventReleasedFromJail, p.ID, map[string]interface{}{
		"reason": reason,
	})
}

// moveBy advances the player, paying the salary when GO is passed or hit.
func (m *mutation) moveBy(p *types.Player, steps int) {
	from := p.Position
	to := (from + steps) % board.Size
	if from+steps >= board.Size {
		m.paySalary(p)
	}
	p.Position = to
	m.emit(types.EventPlayerMoved, p.ID, map[string]interface{}{
		"from": from,
		"to":   to,
	})
}

// moveTo moves forward to target, wrapping past GO when target is behind.
func (m *mutation) moveTo(p *types.Player, target int) {
	from := p.Position
	if target < from || target == 0 {
		m.paySalary(p)
	}
	p.Position = target
	m.emit(types.EventPlayerMoved, p.ID, map[string]interface{}{
		"from": from,
		"to":   target,
	})
}

// moveBack moves backwards without passing GO.
func (m *mutation) moveBack(p *types.Player, steps int) {
	from := p.Position
	to := ((from-steps)%board.Size + board.Size) % board.Size
	p.Position = to
	m.emit(types.EventPlayerMoved, p.ID, map[string]interface{}{
		"from": from,
		"to":   to,
	})
}

func (m *mutation) paySalary(p *types.Player) {
	p.Cash += constants.GoSalary
	m.emit(types.EventPassedGo, p.ID, map[string]interface{}{
		"amount": constants.GoSalary,
	})
}

// resolveLanding applies the effect of the space the player stands on and
// leaves the state machine in the phase that follows from it.
func (m *mutation) resolveLanding(p *types.Player, opts landing) {
	m.state.Phase = types.PhaseResolvingMove
	space := m.space(p.Position)

	switch space.Kind {
	case board.SpaceKindProperty, board.SpaceKindRailroad, board.SpaceKindUtility:
		m.landOnOwnable(p, space, opts)
	case board.SpaceKindTax:
		m.charge(p, []types.Payment{{Amount: space.Tax}}, "tax", 0)
	case board.SpaceKindChance, board.SpaceKindCommunityChest:
		kind, _ := board.DeckFor(space.Kind)
		m.drawCard(p, kind)
	case board.SpaceKindGoToJail:
		m.sendToJail(p, "go_to_jail")
		m.state.Phase = types.PhaseTurnComplete
	default:
		m.state.Phase = types.PhaseTurnComplete
	}
}

func (m *mutation) landOnOwnable(p *types.Player, space board.Space, opts landing) {
	prop := m.state.Properties[space.Index]
	if prop.Owner == "" {
		m.state.Pending = &types.PendingDecision{
			Kind:     types.PendingPropertyDecision,
			PlayerID: p.ID,
			Space:    space.Index,
			Price:    space.Price,
		}
		m.state.Phase = types.PhaseAwaitingPropertyDecision
		m.emit(types.EventPropertyOffered, p.ID, map[string]interface{}{
			"space": space.Index,
			"price": space.Price,
		})
		return
	}
	if prop.Owner == p.ID || prop.Mortgaged {
		m.state.Phase = types.PhaseTurnComplete
		return
	}
	rent := m.rent(prop, space, opts)
	m.charge(p, []types.Payment{{To: prop.Owner, Amount: rent}}, "rent", 0)
}

// rent computes what a visitor owes the owner of prop.
func (m *mutation) rent(prop *types.PropertyState, space board.Space, opts landing) int {
	owner := m.state.Player(prop.Owner)
	owned := 0
	members := m.board.GroupMembers(space.Group)
	for _, i := range members {
		if owner.Owns(i) {
			owned++
		}
	}

	switch space.Kind {
	case board.SpaceKindRailroad:
		rent := space.Rent[owned-1]
		if opts.railroadFactor > 0 {
			rent *= opts.railroadFactor
		}
		return rent
	case board.SpaceKindUtility:
		multiplier := constants.UtilitySingleMultiplier
		if owned >= 2 {
			multiplier = constants.UtilityPairMultiplier
		}
		if opts.utilityMultiplier > 0 {
			multiplier = opts.utilityMultiplier
		}
		return m.state.LastRoll.Total() * multiplier
	default:
		if prop.Level > 0 {
			return space.Rent[prop.Level]
		}
		if owned == len(members) {
			return space.Rent[0] * 2
		}
		return space.Rent[0]
	}
}
