package types

type EventType string

const (
	EventPlayerJoined        EventType = "player_joined"
	EventPlayerLeft          EventType = "player_left"
	EventGameStarted         EventType = "game_started"
	EventTurnStarted         EventType = "turn_started"
	EventDiceRolled          EventType = "dice_rolled"
	EventPlayerMoved         EventType = "player_moved"
	EventPassedGo            EventType = "passed_go"
	EventPropertyOffered     EventType = "property_offered"
	EventPropertyAcquired    EventType = "property_acquired"
	EventPropertyDeclined    EventType = "property_declined"
	EventRentPaid            EventType = "rent_paid"
	EventTaxPaid             EventType = "tax_paid"
	EventCardDrawn           EventType = "card_drawn"
	EventCashChanged         EventType = "cash_changed"
	EventSentToJail          EventType = "sent_to_jail"
	EventReleasedFromJail    EventType = "released_from_jail"
	EventDebtIncurred        EventType = "debt_incurred"
	EventDebtPaid            EventType = "debt_paid"
	EventHouseBuilt          EventType = "house_built"
	EventHouseSold           EventType = "house_sold"
	EventPropertyMortgaged   EventType = "property_mortgaged"
	EventPropertyUnmortgaged EventType = "property_unmortgaged"
	EventTradeProposed       EventType = "trade_proposed"
	EventTradeAccepted       EventType = "trade_accepted"
	EventTradeRejected       EventType = "trade_rejected"
	EventTradeCancelled      EventType = "trade_cancelled"
	EventPlayerBankrupt      EventType = "player_bankrupt"
	EventTurnEnded           EventType = "turn_ended"
	EventExtraRoll           EventType = "extra_roll"
	EventPlayerConnected     EventType = "player_connected"
	EventPlayerDisconnected  EventType = "player_disconnected"
	EventGameOver            EventType = "game_over"
)

// Event is an immutable record of one change to a game state. Seq is the
// game state sequence number assigned when the event was emitted.
type Event struct {
	Seq      uint64                 `json:"seq"`
	Type     EventType              `json:"type"`
	PlayerID string                 `json:"playerId,omitempty"`
	Data     map[string]interface{} `json:"data,omitempty"`
}
