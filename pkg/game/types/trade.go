package types

// TradeSide is what one party gives up in a trade.
type TradeSide struct {
	PlayerID   string `json:"playerId"`
	Properties []int  `json:"properties,omitempty"`
	Cash       int    `json:"cash,omitempty"`
}

// AssetSnapshot records a property as it was when a trade was proposed.
type AssetSnapshot struct {
	Space     int    `json:"space"`
	Owner     string `json:"owner"`
	Level     int    `json:"level"`
	Mortgaged bool   `json:"mortgaged"`
}

// Trade is a proposal between two players. While it exists it is in the
// AwaitingTradeResponse phase of its own small state machine; accepting,
// rejecting or cancelling removes it.
type Trade struct {
	ID       string          `json:"id"`
	Phase    Phase           `json:"phase"`
	Offer    TradeSide       `json:"offer"`
	Request  TradeSide       `json:"request"`
	Snapshot []AssetSnapshot `json:"snapshot"`
	// ProposedAt is the state sequence number when the trade was proposed
	ProposedAt uint64 `json:"proposedAt"`
}

func (t *Trade) Clone() *Trade {
	c := *t
	c.Offer.Properties = append([]int(nil), t.Offer.Properties...)
	c.Request.Properties = append([]int(nil), t.Request.Properties...)
	c.Snapshot = append([]AssetSnapshot(nil), t.Snapshot...)
	return &c
}

// Involves reports whether the player is one of the two parties.
func (t *Trade) Involves(playerID string) bool {
	return t.Offer.PlayerID == playerID || t.Request.PlayerID == playerID
}
