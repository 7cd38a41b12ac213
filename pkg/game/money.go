package game

import (
	"github.com/cbodonnell/tycoon/pkg/board"
	"github.com/cbodonnell/tycoon/pkg/game/types"
)

// charge makes p owe payments. The debt is paid at once when p has the cash,
// becomes a pending settlement when selling and mortgaging could cover it,
// and bankrupts p otherwise. resumeMove is a move to make once the debt is
// paid (forced bail).
func (m *mutation) charge(p *types.Player, payments []types.Payment, reason string, resumeMove int) {
	debt := &types.PendingDecision{
		Kind:       types.PendingDebt,
		PlayerID:   p.ID,
		Space:      p.Position,
		Reason:     reason,
		Payments:   payments,
		ResumeMove: resumeMove,
	}
	total := debt.Total()
	if p.Cash >= total {
		m.settle(p, debt)
		return
	}
	if p.Cash+m.liquidationValue(p) < total {
		m.bankrupt(p, debt.Creditor(), reason)
		return
	}
	m.state.Pending = debt
	m.state.Phase = types.PhaseAwaitingDebtSettlement
	m.emit(types.EventDebtIncurred, p.ID, map[string]interface{}{
		"amount":   total,
		"reason":   reason,
		"creditor": debt.Creditor(),
	})
}

func (m *mutation) payDebt(p *types.Player) error {
	debt := m.state.Pending
	if debt == nil || debt.Kind != types.PendingDebt || debt.PlayerID != p.ID {
		return m.illegal(p.ID, "no debt to pay")
	}
	if total := debt.Total(); p.Cash < total {
		return &InsufficientFundsError{Needed: total, Available: p.Cash}
	}
	m.state.Pending = nil
	m.emit(types.EventDebtPaid, p.ID, map[string]interface{}{
		"amount": debt.Total(),
		"reason": debt.Reason,
	})
	m.settle(p, debt)
	return nil
}

func (m *mutation) declareBankruptcy(p *types.Player) error {
	debt := m.state.Pending
	if debt == nil || debt.Kind != types.PendingDebt || debt.PlayerID != p.ID {
		return m.illegal(p.ID, "no debt to settle")
	}
	m.bankrupt(p, debt.Creditor(), "declared")
	return nil
}

// settle transfers every payment of debt, which p can afford, and continues
// the turn.
func (m *mutation) settle(p *types.Player, debt *types.PendingDecision) {
	for _, payment := range debt.Payments {
		p.Cash -= payment.Amount
		if to := m.state.Player(payment.To); to != nil && !to.Bankrupt {
			to.Cash += payment.Amount
		} else {
			// a creditor who left the game is replaced by the bank
			payment.To = ""
		}
		data := map[string]interface{}{
			"amount": payment.Amount,
			"to":     payment.To,
		}
		switch debt.Reason {
		case "rent":
			data["space"] = debt.Space
			m.emit(types.EventRentPaid, p.ID, data)
		case "tax":
			data["space"] = debt.Space
			m.emit(types.EventTaxPaid, p.ID, data)
		default:
			data["reason"] = debt.Reason
			m.emit(types.EventCashChanged, p.ID, data)
		}
	}

	if debt.Reason == "bail" {
		m.release(p, "forced_bail")
	}
	if debt.ResumeMove > 0 {
		m.moveBy(p, debt.ResumeMove)
		m.resolveLanding(p, landing{})
		return
	}
	m.state.Phase = types.PhaseTurnComplete
}

// liquidationValue is the cash p could still raise by selling every
// improvement and mortgaging every property.
func (m *mutation) liquidationValue(p *types.Player) int {
	value := 0
	for _, i := range p.Properties {
		prop := m.state.Properties[i]
		space := m.space(i)
		value += prop.Level * space.HouseCost / 2
		if !prop.Mortgaged {
			value += space.MortgageValue()
		}
	}
	return value
}

// bankrupt removes p from the game. Improvements are sold back to the bank;
// cash, properties and jail cards go to creditor, or to the bank when
// creditor is empty.
func (m *mutation) bankrupt(p *types.Player, creditorID string, reason string) {
	wasCurrent := false
	if current := m.state.CurrentPlayer(); current != nil && current.ID == p.ID {
		wasCurrent = true
	}

	for _, i := range p.Properties {
		prop := m.state.Properties[i]
		if prop.Level > 0 {
			p.Cash += prop.Level * m.space(i).HouseCost / 2
			prop.Level = 0
		}
	}

	creditor := m.state.Player(creditorID)
	if creditor != nil && creditor.Bankrupt {
		creditor = nil
	}
	to := ""
	if creditor != nil {
		to = creditor.ID
		creditor.Cash += p.Cash
		creditor.JailCards = append(creditor.JailCards, p.JailCards...)
	} else {
		for _, kind := range p.JailCards {
			m.returnJailCard(kind)
		}
	}

	transferred := append([]int(nil), p.Properties...)
	for _, i := range transferred {
		m.state.Properties[i].Mortgaged = false
		m.state.TransferProperty(i, to)
	}

	cash := p.Cash
	p.Cash = 0
	p.JailCards = nil
	p.InJail = false
	p.JailRolls = 0
	p.Bankrupt = true

	for id, trade := range m.state.Trades {
		if trade.Involves(p.ID) {
			delete(m.state.Trades, id)
		}
	}
	if pending := m.state.Pending; pending != nil {
		if pending.PlayerID == p.ID {
			m.state.Pending = nil
		} else {
			// debts owed to p are now owed to the bank
			for i := range pending.Payments {
				if pending.Payments[i].To == p.ID {
					pending.Payments[i].To = ""
				}
			}
		}
	}

	m.emit(types.EventPlayerBankrupt, p.ID, map[string]interface{}{
		"creditor":   to,
		"reason":     reason,
		"cash":       cash,
		"properties": transferred,
	})

	if m.checkGameOver() {
		return
	}
	if wasCurrent {
		m.advanceTurn()
	}
}

func (m *mutation) returnJailCard(kind board.DeckKind) {
	deck, ok := m.state.Decks[kind]
	if !ok {
		return
	}
	for i, card := range board.Cards(kind) {
		if card.Action == board.CardActionGetOutOfJail {
			deck.Order = append(deck.Order, i)
			return
		}
	}
}
