package messages

import (
	"encoding/json"

	"github.com/cbodonnell/tycoon/pkg/game"
)

// UnmarshalPayload decodes the payload of m into v, reporting problems as
// validation errors.
func UnmarshalPayload(m *Message, v interface{}) error {
	if len(m.Payload) == 0 {
		return &game.ValidationError{Detail: m.Type + " requires a payload"}
	}
	if err := json.Unmarshal(m.Payload, v); err != nil {
		return &game.ValidationError{Detail: "malformed " + m.Type + " payload: " + err.Error()}
	}
	return nil
}

// ParseCommand converts an in-game message into an engine command. Session
// level messages (CONNECT, CREATE_GAME, JOIN_GAME, RECONNECT) are not
// commands and are rejected here.
func ParseCommand(m *Message) (game.Command, error) {
	switch m.Type {
	case MessageTypeStartGame:
		return game.StartGame{}, nil
	case MessageTypeRollDice:
		return game.RollDice{}, nil
	case MessageTypePayBail:
		return game.PayBail{}, nil
	case MessageTypeUseJailCard:
		return game.UseJailCard{}, nil
	case MessageTypeBuyProperty:
		return game.BuyProperty{}, nil
	case MessageTypeDeclineProperty:
		return game.DeclineProperty{}, nil
	case MessageTypePayRent:
		return game.PayRent{}, nil
	case MessageTypeDeclareBankruptcy:
		return game.DeclareBankruptcy{}, nil
	case MessageTypeEndTurn:
		return game.EndTurn{}, nil
	case MessageTypeLeaveGame:
		return game.LeaveGame{}, nil
	case MessageTypeBuildHouse, MessageTypeSellHouse, MessageTypeMortgage, MessageTypeUnmortgage:
		var p SpacePayload
		if err := UnmarshalPayload(m, &p); err != nil {
			return nil, err
		}
		if p.Space == nil {
			return nil, &game.ValidationError{Detail: m.Type + " requires a space"}
		}
		switch m.Type {
		case MessageTypeBuildHouse:
			return game.BuildHouse{Space: *p.Space}, nil
		case MessageTypeSellHouse:
			return game.SellHouse{Space: *p.Space}, nil
		case MessageTypeMortgage:
			return game.Mortgage{Space: *p.Space}, nil
		default:
			return game.Unmortgage{Space: *p.Space}, nil
		}
	case MessageTypeProposeTrade:
		var p ProposeTradePayload
		if err := UnmarshalPayload(m, &p); err != nil {
			return nil, err
		}
		if p.To == "" {
			return nil, &game.ValidationError{Detail: "trade recipient is required"}
		}
		return game.ProposeTrade{
			To:                p.To,
			OfferProperties:   p.OfferProperties,
			OfferCash:         p.OfferCash,
			RequestProperties: p.RequestProperties,
			RequestCash:       p.RequestCash,
		}, nil
	case MessageTypeRespondTrade:
		var p RespondTradePayload
		if err := UnmarshalPayload(m, &p); err != nil {
			return nil, err
		}
		if p.TradeID == "" {
			return nil, &game.ValidationError{Detail: "trade id is required"}
		}
		return game.RespondTrade{TradeID: p.TradeID, Accept: p.Accept}, nil
	case MessageTypeCancelTrade:
		var p CancelTradePayload
		if err := UnmarshalPayload(m, &p); err != nil {
			return nil, err
		}
		if p.TradeID == "" {
			return nil, &game.ValidationError{Detail: "trade id is required"}
		}
		return game.CancelTrade{TradeID: p.TradeID}, nil
	case MessageTypeKickPlayer:
		var p KickPlayerPayload
		if err := UnmarshalPayload(m, &p); err != nil {
			return nil, err
		}
		if p.PlayerID == "" {
			return nil, &game.ValidationError{Detail: "player id is required"}
		}
		return game.KickPlayer{PlayerID: p.PlayerID}, nil
	case "":
		return nil, &game.ValidationError{Detail: "message type is required"}
	default:
		return nil, &game.ValidationError{Detail: "unknown message type " + m.Type}
	}
}
