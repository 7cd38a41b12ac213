package game

import (
	"github.com/google/uuid"

	"github.com/cbodonnell/tycoon/pkg/game/types"
)

func (m *mutation) proposeTrade(p *types.Player, c ProposeTrade) error {
	target := m.state.Player(c.To)
	if target == nil {
		return validationf("unknown player %q", c.To)
	}
	if target.ID == p.ID {
		return validationf("cannot trade with yourself")
	}
	if target.Bankrupt {
		return m.illegal(p.ID, "player is out of the game")
	}
	if c.OfferCash < 0 || c.RequestCash < 0 {
		return validationf("cash amounts must not be negative")
	}
	if len(c.OfferProperties) == 0 && len(c.RequestProperties) == 0 && c.OfferCash == 0 && c.RequestCash == 0 {
		return validationf("trade is empty")
	}

	seen := make(map[int]bool)
	var snapshot []types.AssetSnapshot
	for _, side := range []struct {
		owner  *types.Player
		spaces []int
	}{
		{owner: p, spaces: c.OfferProperties},
		{owner: target, spaces: c.RequestProperties},
	} {
		for _, space := range side.spaces {
			if seen[space] {
				return validationf("space %d listed twice", space)
			}
			seen[space] = true
			if !m.board.Valid(space) || !m.space(space).Ownable() {
				return validationf("space %d cannot be traded", space)
			}
			prop := m.state.Properties[space]
			if prop.Owner != side.owner.ID {
				return m.illegal(p.ID, side.owner.Name+" does not own "+m.space(space).Name)
			}
			if m.groupImproved(space) {
				return m.illegal(p.ID, "sell the houses in the group of "+m.space(space).Name+" first")
			}
			snapshot = append(snapshot, types.AssetSnapshot{
				Space:     space,
				Owner:     prop.Owner,
				Level:     prop.Level,
				Mortgaged: prop.Mortgaged,
			})
		}
	}
	if p.Cash < c.OfferCash {
		return &InsufficientFundsError{Needed: c.OfferCash, Available: p.Cash}
	}

	trade := &types.Trade{
		ID:    uuid.NewString(),
		Phase: types.PhaseAwaitingTradeResponse,
		Offer: types.TradeSide{
			PlayerID:   p.ID,
			Properties: append([]int(nil), c.OfferProperties...),
			Cash:       c.OfferCash,
		},
		Request: types.TradeSide{
			PlayerID:   target.ID,
			Properties: append([]int(nil), c.RequestProperties...),
			Cash:       c.RequestCash,
		},
		Snapshot:   snapshot,
		ProposedAt: m.state.Seq,
	}
	m.state.Trades[trade.ID] = trade
	m.emit(types.EventTradeProposed, p.ID, map[string]interface{}{
		"tradeId":           trade.ID,
		"to":                target.ID,
		"offerProperties":   trade.Offer.Properties,
		"offerCash":         trade.Offer.Cash,
		"requestProperties": trade.Request.Properties,
		"requestCash":       trade.Request.Cash,
	})
	return nil
}

func (m *mutation) respondTrade(p *types.Player, c RespondTrade) error {
	trade, ok := m.state.Trades[c.TradeID]
	if !ok {
		return validationf("unknown trade %q", c.TradeID)
	}
	if trade.Request.PlayerID != p.ID {
		return m.illegal(p.ID, "only the recipient can respond to a trade")
	}
	if !c.Accept {
		delete(m.state.Trades, trade.ID)
		m.emit(types.EventTradeRejected, p.ID, map[string]interface{}{
			"tradeId": trade.ID,
		})
		return nil
	}

	if err := m.validateTrade(trade); err != nil {
		return err
	}

	offerer := m.state.Player(trade.Offer.PlayerID)
	offerer.Cash += trade.Request.Cash - trade.Offer.Cash
	p.Cash += trade.Offer.Cash - trade.Request.Cash
	for _, space := range trade.Offer.Properties {
		m.state.TransferProperty(space, p.ID)
	}
	for _, space := range trade.Request.Properties {
		m.state.TransferProperty(space, offerer.ID)
	}
	delete(m.state.Trades, trade.ID)
	m.emit(types.EventTradeAccepted, p.ID, map[string]interface{}{
		"tradeId": trade.ID,
		"from":    offerer.ID,
	})
	return nil
}

// validateTrade checks a trade against current holdings at acceptance.
func (m *mutation) validateTrade(trade *types.Trade) error {
	stale := func(detail string) error {
		return &StaleTradeError{TradeID: trade.ID, Detail: detail}
	}
	offerer := m.state.Player(trade.Offer.PlayerID)
	recipient := m.state.Player(trade.Request.PlayerID)
	if offerer == nil || recipient == nil || offerer.Bankrupt || recipient.Bankrupt {
		return stale("a party is no longer in the game")
	}
	for _, snap := range trade.Snapshot {
		prop := m.state.Properties[snap.Space]
		name := m.space(snap.Space).Name
		switch {
		case prop.Owner != snap.Owner:
			return stale(name + " changed hands")
		case prop.Mortgaged != snap.Mortgaged:
			return stale(name + " mortgage changed")
		case prop.Level != snap.Level || m.groupImproved(snap.Space):
			return stale(name + " improvements changed")
		}
	}
	if offerer.Cash < trade.Offer.Cash {
		return stale(offerer.Name + " no longer has the offered cash")
	}
	if recipient.Cash < trade.Request.Cash {
		return stale(recipient.Name + " no longer has the requested cash")
	}
	return nil
}

func (m *mutation) cancelTrade(p *types.Player, c CancelTrade) error {
	trade, ok := m.state.Trades[c.TradeID]
	if !ok {
		return validationf("unknown trade %q", c.TradeID)
	}
	if trade.Offer.PlayerID != p.ID {
		return m.illegal(p.ID, "only the proposer can cancel a trade")
	}
	delete(m.state.Trades, trade.ID)
	m.emit(types.EventTradeCancelled, p.ID, map[string]interface{}{
		"tradeId": trade.ID,
	})
	return nil
}

// groupImproved reports whether any space in the group of space has houses.
func (m *mutation) groupImproved(space int) bool {
	for _, member := range m.group(m.space(space)) {
		if member.Level > 0 {
			return true
		}
	}
	return false
}
