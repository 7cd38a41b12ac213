package game

// CommandKind is the tag of a player intent.
type CommandKind string

const (
	CommandJoinGame          CommandKind = "JOIN_GAME"
	CommandStartGame         CommandKind = "START_GAME"
	CommandLeaveGame         CommandKind = "LEAVE_GAME"
	CommandKickPlayer        CommandKind = "KICK_PLAYER"
	CommandSetConnected      CommandKind = "SET_CONNECTED"
	CommandRollDice          CommandKind = "ROLL_DICE"
	CommandPayBail           CommandKind = "PAY_BAIL"
	CommandUseJailCard       CommandKind = "USE_JAIL_CARD"
	CommandBuyProperty       CommandKind = "BUY_PROPERTY"
	CommandDeclineProperty   CommandKind = "DECLINE_PROPERTY"
	CommandPayRent           CommandKind = "PAY_RENT"
	CommandDeclareBankruptcy CommandKind = "DECLARE_BANKRUPTCY"
	CommandBuildHouse        CommandKind = "BUILD_HOUSE"
	CommandSellHouse         CommandKind = "SELL_HOUSE"
	CommandMortgage          CommandKind = "MORTGAGE"
	CommandUnmortgage        CommandKind = "UNMORTGAGE"
	CommandProposeTrade      CommandKind = "PROPOSE_TRADE"
	CommandRespondTrade      CommandKind = "RESPOND_TRADE"
	CommandCancelTrade       CommandKind = "CANCEL_TRADE"
	CommandEndTurn           CommandKind = "END_TURN"
)

// Command is a typed player intent.
type Command interface {
	Kind() CommandKind
}

type JoinGame struct {
	Name string
}

type StartGame struct{}

type LeaveGame struct{}

type KickPlayer struct {
	PlayerID string
}

// SetConnected records a liveness change. It is issued by the session
// layer, never by clients.
type SetConnected struct {
	Connected bool
}

type RollDice struct{}

type PayBail struct{}

type UseJailCard struct{}

type BuyProperty struct{}

type DeclineProperty struct{}

type PayRent struct{}

type DeclareBankruptcy struct{}

type BuildHouse struct {
	Space int
}

type SellHouse struct {
	Space int
}

type Mortgage struct {
	Space int
}

type Unmortgage struct {
	Space int
}

type ProposeTrade struct {
	To                string
	OfferProperties   []int
	OfferCash         int
	RequestProperties []int
	RequestCash       int
}

type RespondTrade struct {
	TradeID string
	Accept  bool
}

type CancelTrade struct {
	TradeID string
}

type EndTurn struct{}

func (JoinGame) Kind() CommandKind          { return CommandJoinGame }
func (StartGame) Kind() CommandKind         { return CommandStartGame }
func (LeaveGame) Kind() CommandKind         { return CommandLeaveGame }
func (KickPlayer) Kind() CommandKind        { return CommandKickPlayer }
func (SetConnected) Kind() CommandKind      { return CommandSetConnected }
func (RollDice) Kind() CommandKind          { return CommandRollDice }
func (PayBail) Kind() CommandKind           { return CommandPayBail }
func (UseJailCard) Kind() CommandKind       { return CommandUseJailCard }
func (BuyProperty) Kind() CommandKind       { return CommandBuyProperty }
func (DeclineProperty) Kind() CommandKind   { return CommandDeclineProperty }
func (PayRent) Kind() CommandKind           { return CommandPayRent }
func (DeclareBankruptcy) Kind() CommandKind { return CommandDeclareBankruptcy }
func (BuildHouse) Kind() CommandKind        { return CommandBuildHouse }
func (SellHouse) Kind() CommandKind         { return CommandSellHouse }
func (Mortgage) Kind() CommandKind          { return CommandMortgage }
func (Unmortgage) Kind() CommandKind        { return CommandUnmortgage }
func (ProposeTrade) Kind() CommandKind      { return CommandProposeTrade }
func (RespondTrade) Kind() CommandKind      { return CommandRespondTrade }
func (CancelTrade) Kind() CommandKind       { return CommandCancelTrade }
func (EndTurn) Kind() CommandKind           { return CommandEndTurn }
