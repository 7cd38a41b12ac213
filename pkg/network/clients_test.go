package network

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbodonnell/tycoon/pkg/messages"
)

func TestClientManager_lifecycle(t *testing.T) {
	cm := NewClientManager(NewClientManagerOptions{})

	client, err := cm.ConnectClient(nil)
	require.NoError(t, err)
	assert.NotZero(t, client.ID)
	assert.True(t, cm.Exists(client.ID))
	assert.Equal(t, 1, cm.Count())

	event := <-cm.GetConnectionEventChan()
	assert.Equal(t, ConnectionEvent{ClientID: client.ID, Type: ConnectionEventTypeConnect}, event)

	msg := &messages.Message{Type: messages.MessageTypeEvent}
	cm.Send(client.ID, msg)
	assert.Same(t, msg, <-client.Outbound())

	cm.DisconnectClient(client.ID)
	assert.False(t, cm.Exists(client.ID))
	event = <-cm.GetConnectionEventChan()
	assert.Equal(t, ConnectionEventTypeDisconnect, event.Type)

	_, open := <-client.Outbound()
	assert.False(t, open, "outbound channel is closed on disconnect")

	// no-ops
	cm.DisconnectClient(client.ID)
	cm.Send(client.ID, msg)
}

func TestClientManager_slowClient(t *testing.T) {
	cm := NewClientManager(NewClientManagerOptions{SendBufferSize: 1})
	closed := make(chan struct{})
	client, err := cm.ConnectClient(func() { close(closed) })
	require.NoError(t, err)

	cm.Send(client.ID, &messages.Message{Type: messages.MessageTypeEvent})
	cm.Send(client.ID, &messages.Message{Type: messages.MessageTypeEvent})

	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("slow client was not closed")
	}
}

func TestClient_Allow(t *testing.T) {
	cm := NewClientManager(NewClientManagerOptions{RateLimit: 1, RateBurst: 2})
	client, err := cm.ConnectClient(nil)
	require.NoError(t, err)

	assert.True(t, client.Allow())
	assert.True(t, client.Allow())
	assert.False(t, client.Allow())
}
