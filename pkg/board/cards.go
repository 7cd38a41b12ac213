package board

// DeckKind names one of the two card decks.
type DeckKind string

const (
	DeckChance         DeckKind = "CHANCE"
	DeckCommunityChest DeckKind = "COMMUNITY_CHEST"
)

// CardAction is the effect of a drawn card.
type CardAction string

const (
	CardActionMoveTo            CardAction = "MOVE_TO"
	CardActionNearestRailroad   CardAction = "NEAREST_RAILROAD"
	CardActionNearestUtility    CardAction = "NEAREST_UTILITY"
	CardActionMoveBack          CardAction = "MOVE_BACK"
	CardActionCollect           CardAction = "COLLECT"
	CardActionPay               CardAction = "PAY"
	CardActionPayEachPlayer     CardAction = "PAY_EACH_PLAYER"
	CardActionCollectEachPlayer CardAction = "COLLECT_EACH_PLAYER"
	CardActionRepairs           CardAction = "REPAIRS"
	CardActionGoToJail          CardAction = "GO_TO_JAIL"
	CardActionGetOutOfJail      CardAction = "GET_OUT_OF_JAIL"
)

type Card struct {
	Text   string     `json:"text"`
	Action CardAction `json:"action"`
	// Value is an amount of money, a target space or a number of spaces
	// depending on Action.
	Value    int `json:"value,omitempty"`
	PerHouse int `json:"perHouse,omitempty"`
	PerHotel int `json:"perHotel,omitempty"`
}

var chanceCards = []Card{
	{Text: "Advance to Go (Collect $200)", Action: CardActionMoveTo, Value: 0},
	{Text: "Advance to Illinois Avenue. If you pass Go, collect $200.", Action: CardActionMoveTo, Value: 24},
	{Text: "Advance to St. Charles Place. If you pass Go, collect $200.", Action: CardActionMoveTo, Value: 11},
	{Text: "Advance to nearest Utility. If owned, pay owner 10 times the amount thrown.", Action: CardActionNearestUtility},
	{Text: "Advance to nearest Railroad. If owned, pay owner twice the rental.", Action: CardActionNearestRailroad},
	{Text: "Bank pays you dividend of $50.", Action: CardActionCollect, Value: 50},
	{Text: "Get Out of Jail Free.", Action: CardActionGetOutOfJail},
	{Text: "Go Back 3 Spaces.", Action: CardActionMoveBack, Value: 3},
	{Text: "Go to Jail. Do not pass Go, do not collect $200.", Action: CardActionGoToJail},
	{Text: "Make general repairs on all your property. For each house pay $25. For each hotel pay $100.", Action: CardActionRepairs, PerHouse: 25, PerHotel: 100},
	{Text: "Speeding fine $15.", Action: CardActionPay, Value: 15},
	{Text: "Take a trip to Reading Railroad. If you pass Go, collect $200.", Action: CardActionMoveTo, Value: 5},
	{Text: "You have been elected Chairman of the Board. Pay each player $50.", Action: CardActionPayEachPlayer, Value: 50},
	{Text: "Your building loan matures. Collect $150.", Action: CardActionCollect, Value: 150},
	{Text: "Advance to Boardwalk.", Action: CardActionMoveTo, Value: 39},
	{Text: "Advance to nearest Railroad. If owned, pay owner twice the rental.", Action: CardActionNearestRailroad},
}

var communityChestCards = []Card{
	{Text: "Advance to Go (Collect $200).", Action: CardActionMoveTo, Value: 0},
	{Text: "Bank error in your favor. Collect $200.", Action: CardActionCollect, Value: 200},
	{Text: "Doctor's fee. Pay $50.", Action: CardActionPay, Value: 50},
	{Text: "From sale of stock you get $50.", Action: CardActionCollect, Value: 50},
	{Text: "Get Out of Jail Free.", Action: CardActionGetOutOfJail},
	{Text: "Go to Jail. Do not pass Go, do not collect $200.", Action: CardActionGoToJail},
	{Text: "Holiday fund matures. Receive $100.", Action: CardActionCollect, Value: 100},
	{Text: "Income tax refund. Collect $20.", Action: CardActionCollect, Value: 20},
	{Text: "It is your birthday. Collect $10 from every player.", Action: CardActionCollectEachPlayer, Value: 10},
	{Text: "Life insurance matures. Collect $100.", Action: CardActionCollect, Value: 100},
	{Text: "Pay hospital fees of $100.", Action: CardActionPay, Value: 100},
	{Text: "Pay school fees of $50.", Action: CardActionPay, Value: 50},
	{Text: "Receive $25 consultancy fee.", Action: CardActionCollect, Value: 25},
	{Text: "You are assessed for street repair. $40 per house. $115 per hotel.", Action: CardActionRepairs, PerHouse: 40, PerHotel: 115},
	{Text: "You have won second prize in a beauty contest. Collect $10.", Action: CardActionCollect, Value: 10},
	{Text: "You inherit $100.", Action: CardActionCollect, Value: 100},
}

// Cards returns the cards of a deck in printed order. Deck state in a game
// refers to cards by their index in this slice.
func Cards(kind DeckKind) []Card {
	switch kind {
	case DeckChance:
		return chanceCards
	case DeckCommunityChest:
		return communityChestCards
	default:
		return nil
	}
}

// DeckFor returns the deck drawn from when landing on a card space.
func DeckFor(kind SpaceKind) (DeckKind, bool) {
	switch kind {
	case SpaceKindChance:
		return DeckChance, true
	case SpaceKindCommunityChest:
		return DeckCommunityChest, true
	default:
		return "", false
	}
}
