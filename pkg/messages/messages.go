package messages

import (
	"encoding/json"
	"fmt"

	"github.com/cbodonnell/tycoon/pkg/game"
	"github.com/cbodonnell/tycoon/pkg/game/types"
)

const (
	// MessageBufferSize is the maximum size of an inbound message in bytes
	MessageBufferSize = 16 * 1024
)

// Inbound message types
const (
	MessageTypeConnect           = "CONNECT"
	MessageTypeCreateGame        = "CREATE_GAME"
	MessageTypeJoinGame          = "JOIN_GAME"
	MessageTypeReconnect         = "RECONNECT"
	MessageTypeStartGame         = "START_GAME"
	MessageTypeRollDice          = "ROLL_DICE"
	MessageTypePayBail           = "PAY_BAIL"
	MessageTypeUseJailCard       = "USE_JAIL_CARD"
	MessageTypeBuyProperty       = "BUY_PROPERTY"
	MessageTypeDeclineProperty   = "DECLINE_PROPERTY"
	MessageTypePayRent           = "PAY_RENT"
	MessageTypeDeclareBankruptcy = "DECLARE_BANKRUPTCY"
	MessageTypeBuildHouse        = "BUILD_HOUSE"
	MessageTypeSellHouse         = "SELL_HOUSE"
	MessageTypeMortgage          = "MORTGAGE"
	MessageTypeUnmortgage        = "UNMORTGAGE"
	MessageTypeProposeTrade      = "PROPOSE_TRADE"
	MessageTypeRespondTrade      = "RESPOND_TRADE"
	MessageTypeCancelTrade       = "CANCEL_TRADE"
	MessageTypeEndTurn           = "END_TURN"
	MessageTypeLeaveGame         = "LEAVE_GAME"
	MessageTypeKickPlayer        = "KICK_PLAYER"
)

// Outbound message types
const (
	MessageTypeConnected     = "CONNECTED"
	MessageTypeJoined        = "JOINED"
	MessageTypeStateSnapshot = "STATE_SNAPSHOT"
	MessageTypeEvent         = "EVENT"
	MessageTypeError         = "ERROR"
	MessageTypeGameOver      = "GAME_OVER"
)

// Message is the envelope of every frame on the wire.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type ConnectPayload struct {
	// IDToken is an identity provider token, required when the server
	// verifies identities
	IDToken string `json:"idToken,omitempty"`
}

type CreateGamePayload struct {
	Name string `json:"name"`
}

type JoinGamePayload struct {
	SessionID string `json:"sessionId"`
	Name      string `json:"name"`
}

type ReconnectPayload struct {
	SessionID string `json:"sessionId"`
	Token     string `json:"token"`
	LastSeq   uint64 `json:"lastSeq"`
}

type SpacePayload struct {
	Space *int `json:"space"`
}

type ProposeTradePayload struct {
	To                string `json:"to"`
	OfferProperties   []int  `json:"offerProperties,omitempty"`
	OfferCash         int    `json:"offerCash,omitempty"`
	RequestProperties []int  `json:"requestProperties,omitempty"`
	RequestCash       int    `json:"requestCash,omitempty"`
}

type RespondTradePayload struct {
	TradeID string `json:"tradeId"`
	Accept  bool   `json:"accept"`
}

type CancelTradePayload struct {
	TradeID string `json:"tradeId"`
}

type KickPlayerPayload struct {
	PlayerID string `json:"playerId"`
}

type ConnectedPayload struct {
	PlayerID string `json:"playerId"`
}

type JoinedPayload struct {
	SessionID string `json:"sessionId"`
	PlayerID  string `json:"playerId"`
	// Token is presented on RECONNECT
	Token string `json:"token"`
}

type StateSnapshotPayload struct {
	State *types.GameState   `json:"state"`
	Legal []game.CommandKind `json:"legal,omitempty"`
}

type ErrorPayload struct {
	Kind   string             `json:"kind"`
	Detail string             `json:"detail"`
	Legal  []game.CommandKind `json:"legal,omitempty"`
}

type GameOverPayload struct {
	WinnerID string `json:"winnerId"`
}

// NewMessage wraps a payload in an envelope.
func NewMessage(messageType string, payload interface{}) (*Message, error) {
	m := &Message{Type: messageType}
	if payload == nil {
		return m, nil
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %v", messageType, err)
	}
	m.Payload = b
	return m, nil
}

// NewEventMessage builds the EVENT message for one game event.
func NewEventMessage(event types.Event) (*Message, error) {
	return NewMessage(MessageTypeEvent, event)
}

// NewErrorMessage builds the ERROR message reported to the client whose
// request failed. Errors without a kind are reported as internal errors.
func NewErrorMessage(err error) *Message {
	payload := ErrorPayload{
		Kind:   KindOf(err),
		Detail: err.Error(),
	}
	if illegal, ok := err.(*game.IllegalActionError); ok {
		payload.Legal = illegal.Legal
	}
	b, _ := json.Marshal(payload)
	return &Message{
		Type:    MessageTypeError,
		Payload: b,
	}
}

// KindOf returns the client-facing kind of err.
func KindOf(err error) string {
	if kinded, ok := err.(interface{ Kind() string }); ok {
		return kinded.Kind()
	}
	return "InternalError"
}
