package types

type PendingKind string

const (
	PendingPropertyDecision PendingKind = "property_decision"
	PendingDebt             PendingKind = "debt"
)

// Payment is one creditor share of a debt. An empty To is the bank.
type Payment struct {
	To     string `json:"to,omitempty"`
	Amount int    `json:"amount"`
}

// PendingDecision describes what the current player must resolve before
// the turn can continue.
type PendingDecision struct {
	Kind     PendingKind `json:"kind"`
	PlayerID string      `json:"playerId"`
	Space    int         `json:"space,omitempty"`
	Price    int         `json:"price,omitempty"`
	Reason   string      `json:"reason,omitempty"`
	Payments []Payment   `json:"payments,omitempty"`
	// ResumeMove is a pending move by this many spaces once the debt is
	// settled, used when bail is forced after the last failed jail roll.
	ResumeMove int `json:"resumeMove,omitempty"`
}

func (p *PendingDecision) Clone() *PendingDecision {
	c := *p
	c.Payments = append([]Payment(nil), p.Payments...)
	return &c
}

// Total is the sum of all payments owed.
func (p *PendingDecision) Total() int {
	total := 0
	for _, payment := range p.Payments {
		total += payment.Amount
	}
	return total
}

// Creditor returns the single player owed, or empty when the debt is owed
// to the bank or shared between several players.
func (p *PendingDecision) Creditor() string {
	if len(p.Payments) != 1 {
		return ""
	}
	return p.Payments[0].To
}
