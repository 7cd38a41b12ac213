package messages

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbodonnell/tycoon/pkg/game"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    game.Command
		wantErr bool
	}{
		{
			name:    "roll dice",
			message: `{"type":"ROLL_DICE"}`,
			want:    game.RollDice{},
		},
		{
			name:    "build house",
			message: `{"type":"BUILD_HOUSE","payload":{"space":39}}`,
			want:    game.BuildHouse{Space: 39},
		},
		{
			name:    "mortgage space zero is still a space",
			message: `{"type":"MORTGAGE","payload":{"space":0}}`,
			want:    game.Mortgage{Space: 0},
		},
		{
			name:    "build house without space",
			message: `{"type":"BUILD_HOUSE","payload":{}}`,
			wantErr: true,
		},
		{
			name:    "build house without payload",
			message: `{"type":"BUILD_HOUSE"}`,
			wantErr: true,
		},
		{
			name:    "propose trade",
			message: `{"type":"PROPOSE_TRADE","payload":{"to":"b","offerProperties":[5],"requestCash":150}}`,
			want:    game.ProposeTrade{To: "b", OfferProperties: []int{5}, RequestCash: 150},
		},
		{
			name:    "propose trade with bad cash",
			message: `{"type":"PROPOSE_TRADE","payload":{"to":"b","offerCash":"lots"}}`,
			wantErr: true,
		},
		{
			name:    "respond trade",
			message: `{"type":"RESPOND_TRADE","payload":{"tradeId":"t1","accept":true}}`,
			want:    game.RespondTrade{TradeID: "t1", Accept: true},
		},
		{
			name:    "respond trade without id",
			message: `{"type":"RESPOND_TRADE","payload":{"accept":true}}`,
			wantErr: true,
		},
		{
			name:    "kick player",
			message: `{"type":"KICK_PLAYER","payload":{"playerId":"p2"}}`,
			want:    game.KickPlayer{PlayerID: "p2"},
		},
		{
			name:    "session message",
			message: `{"type":"JOIN_GAME","payload":{"sessionId":"s"}}`,
			wantErr: true,
		},
		{
			name:    "unknown",
			message: `{"type":"CHEAT"}`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := DeserializeMessage([]byte(tt.message))
			require.NoError(t, err)

			got, err := ParseCommand(m)
			if tt.wantErr {
				var validation *game.ValidationError
				require.ErrorAs(t, err, &validation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewErrorMessage(t *testing.T) {
	m := NewErrorMessage(&game.IllegalActionError{
		Detail: "not your turn",
		Legal:  []game.CommandKind{game.CommandProposeTrade},
	})
	assert.Equal(t, MessageTypeError, m.Type)

	var payload ErrorPayload
	require.NoError(t, json.Unmarshal(m.Payload, &payload))
	assert.Equal(t, game.KindIllegalAction, payload.Kind)
	assert.Equal(t, []game.CommandKind{game.CommandProposeTrade}, payload.Legal)

	m = NewErrorMessage(errors.New("boom"))
	require.NoError(t, json.Unmarshal(m.Payload, &payload))
	assert.Equal(t, "InternalError", payload.Kind)
	assert.Equal(t, "boom", payload.Detail)
}

func TestSerializeMessage(t *testing.T) {
	m, err := NewMessage(MessageTypeJoined, JoinedPayload{SessionID: "s", PlayerID: "p", Token: "t"})
	require.NoError(t, err)

	b, err := SerializeMessage(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"JOINED","payload":{"sessionId":"s","playerId":"p","token":"t"}}`, string(b))

	got, err := DeserializeMessage(b)
	require.NoError(t, err)
	assert.Equal(t, MessageTypeJoined, got.Type)

	_, err = DeserializeMessage([]byte("{"))
	assert.Error(t, err)
}
