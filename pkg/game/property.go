package game

import (
	"github.com/cbodonnell/tycoon/pkg/board"
	"github.com/cbodonnell/tycoon/pkg/game/types"
)

func (m *mutation) buyProperty(p *types.Player) error {
	offer := m.state.Pending
	if offer == nil || offer.Kind != types.PendingPropertyDecision || offer.PlayerID != p.ID {
		return m.illegal(p.ID, "no property on offer")
	}
	if p.Cash < offer.Price {
		return &InsufficientFundsError{Needed: offer.Price, Available: p.Cash}
	}
	p.Cash -= offer.Price
	m.state.TransferProperty(offer.Space, p.ID)
	m.state.Pending = nil
	m.state.Phase = types.PhaseTurnComplete
	m.emit(types.EventPropertyAcquired, p.ID, map[string]interface{}{
		"space": offer.Space,
		"price": offer.Price,
	})
	return nil
}

// declineProperty leaves the space with the bank; there is no auction.
func (m *mutation) declineProperty(p *types.Player) error {
	offer := m.state.Pending
	if offer == nil || offer.Kind != types.PendingPropertyDecision || offer.PlayerID != p.ID {
		return m.illegal(p.ID, "no property on offer")
	}
	m.state.Pending = nil
	m.state.Phase = types.PhaseTurnComplete
	m.emit(types.EventPropertyDeclined, p.ID, map[string]interface{}{
		"space": offer.Space,
	})
	return nil
}

// owned looks up an ownable space that p owns.
func (m *mutation) owned(p *types.Player, space int) (*types.PropertyState, board.Space, error) {
	if !m.board.Valid(space) {
		return nil, board.Space{}, validationf("space %d is not on the board", space)
	}
	s := m.space(space)
	prop, ok := m.state.Properties[space]
	if !ok || !s.Ownable() {
		return nil, s, validationf("%s cannot be owned", s.Name)
	}
	if prop.Owner != p.ID {
		return nil, s, m.illegal(p.ID, "you do not own "+s.Name)
	}
	return prop, s, nil
}

// group returns the property records of every space in the group of s.
func (m *mutation) group(s board.Space) []*types.PropertyState {
	members := m.board.GroupMembers(s.Group)
	group := make([]*types.PropertyState, len(members))
	for i, idx := range members {
		group[i] = m.state.Properties[idx]
	}
	return group
}

func (m *mutation) buildHouse(p *types.Player, space int) error {
	prop, s, err := m.owned(p, space)
	if err != nil {
		return err
	}
	if !s.Buildable() {
		return m.illegal(p.ID, "cannot build on "+s.Name)
	}
	minLevel := board.MaxLevel
	for _, member := range m.group(s) {
		if member.Owner != p.ID {
			return m.illegal(p.ID, "you must own the whole colour group")
		}
		if member.Mortgaged {
			return m.illegal(p.ID, "a property in the group is mortgaged")
		}
		if member.Level < minLevel {
			minLevel = member.Level
		}
	}
	if prop.Level >= board.MaxLevel {
		return m.illegal(p.ID, s.Name+" already has a hotel")
	}
	if prop.Level > minLevel {
		return m.illegal(p.ID, "houses must be built evenly across the group")
	}
	if p.Cash < s.HouseCost {
		return &InsufficientFundsError{Needed: s.HouseCost, Available: p.Cash}
	}
	p.Cash -= s.HouseCost
	prop.Level++
	m.emit(types.EventHouseBuilt, p.ID, map[string]interface{}{
		"space": space,
		"level": prop.Level,
		"cost":  s.HouseCost,
	})
	return nil
}

func (m *mutation) sellHouse(p *types.Player, space int) error {
	prop, s, err := m.owned(p, space)
	if err != nil {
		return err
	}
	if prop.Level == 0 {
		return m.illegal(p.ID, s.Name+" has no houses")
	}
	for _, member := range m.group(s) {
		if member.Level > prop.Level {
			return m.illegal(p.ID, "houses must be sold evenly across the group")
		}
	}
	refund := s.HouseCost / 2
	p.Cash += refund
	prop.Level--
	m.emit(types.EventHouseSold, p.ID, map[string]interface{}{
		"space":  space,
		"level":  prop.Level,
		"refund": refund,
	})
	return nil
}

func (m *mutation) mortgage(p *types.Player, space int) error {
	prop, s, err := m.owned(p, space)
	if err != nil {
		return err
	}
	if prop.Mortgaged {
		return m.illegal(p.ID, s.Name+" is already mortgaged")
	}
	for _, member := range m.group(s) {
		if member.Level > 0 {
			return m.illegal(p.ID, "sell the houses in the group first")
		}
	}
	value := s.MortgageValue()
	prop.Mortgaged = true
	p.Cash += value
	m.emit(types.EventPropertyMortgaged, p.ID, map[string]interface{}{
		"space":  space,
		"amount": value,
	})
	return nil
}

func (m *mutation) unmortgage(p *types.Player, space int) error {
	prop, s, err := m.owned(p, space)
	if err != nil {
		return err
	}
	if !prop.Mortgaged {
		return m.illegal(p.ID, s.Name+" is not mortgaged")
	}
	cost := s.UnmortgageCost()
	if p.Cash < cost {
		return &InsufficientFundsError{Needed: cost, Available: p.Cash}
	}
	p.Cash -= cost
	prop.Mortgaged = false
	m.emit(types.EventPropertyUnmortgaged, p.ID, map[string]interface{}{
		"space":  space,
		"amount": cost,
	})
	return nil
}
