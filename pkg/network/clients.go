package network

import (
	"fmt"
	"math/rand"
	"sync"

	"golang.org/x/time/rate"

	"github.com/cbodonnell/tycoon/pkg/log"
	"github.com/cbodonnell/tycoon/pkg/messages"
)

const (
	// ClientIDMaxRetries represents the maximum number of retries when generating a unique ID
	ClientIDMaxRetries = 1024
	// ConnectionEventChannelSize represents the size of the connection event channel
	ConnectionEventChannelSize = 1024
	// DefaultSendBufferSize is the number of outbound messages buffered per client
	DefaultSendBufferSize = 256
	// DefaultRateLimit is the number of inbound messages per second allowed per client
	DefaultRateLimit = 20
	// DefaultRateBurst is the inbound burst allowed per client
	DefaultRateBurst = 40
)

// Client represents a connected client
type Client struct {
	ID uint32
	// send is drained by the client's writer goroutine, in order
	send      chan *messages.Message
	limiter   *rate.Limiter
	closeSlow func()
}

// Outbound returns the channel of messages waiting to be written to the client.
// It is closed when the client is disconnected.
func (c *Client) Outbound() <-chan *messages.Message {
	return c.send
}

// Allow reports whether the client may send another message now.
func (c *Client) Allow() bool {
	return c.limiter.Allow()
}

// ConnectionEvent represents a client connecting or disconnecting
type ConnectionEvent struct {
	ClientID uint32
	Type     ConnectionEventType
}

// ConnectionEventType represents the type of a connection event
type ConnectionEventType int

const (
	ConnectionEventTypeConnect ConnectionEventType = iota
	ConnectionEventTypeDisconnect
)

// ClientManager manages connected clients
type ClientManager struct {
	clients             map[uint32]*Client
	clientsLock         sync.RWMutex
	connectionEventChan chan ConnectionEvent
	sendBufferSize      int
	rateLimit           rate.Limit
	rateBurst           int
}

type NewClientManagerOptions struct {
	// SendBufferSize defaults to DefaultSendBufferSize
	SendBufferSize int
	// RateLimit is in messages per second and defaults to DefaultRateLimit
	RateLimit float64
	// RateBurst defaults to DefaultRateBurst
	RateBurst int
}

// NewClientManager creates a new ClientManager
func NewClientManager(opts NewClientManagerOptions) *ClientManager {
	cm := &ClientManager{
		clients:             make(map[uint32]*Client),
		connectionEventChan: make(chan ConnectionEvent, ConnectionEventChannelSize),
		sendBufferSize:      opts.SendBufferSize,
		rateLimit:           rate.Limit(opts.RateLimit),
		rateBurst:           opts.RateBurst,
	}
	if cm.sendBufferSize <= 0 {
		cm.sendBufferSize = DefaultSendBufferSize
	}
	if cm.rateLimit <= 0 {
		cm.rateLimit = DefaultRateLimit
	}
	if cm.rateBurst <= 0 {
		cm.rateBurst = DefaultRateBurst
	}
	return cm
}

// GetConnectionEventChan returns a one-way channel for receiving connection events
func (cm *ClientManager) GetConnectionEventChan() <-chan ConnectionEvent {
	return cm.connectionEventChan
}

// ConnectClient adds a new client to the manager. closeSlow is called when
// the client cannot keep up with its outbound messages.
func (cm *ClientManager) ConnectClient(closeSlow func()) (*Client, error) {
	cm.clientsLock.Lock()
	defer cm.clientsLock.Unlock()

	clientID, err := cm.generateUniqueID(ClientIDMaxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to generate a unique ID: %v", err)
	}
	client := &Client{
		ID:        clientID,
		send:      make(chan *messages.Message, cm.sendBufferSize),
		limiter:   rate.NewLimiter(cm.rateLimit, cm.rateBurst),
		closeSlow: closeSlow,
	}
	cm.clients[clientID] = client

	cm.connectionEventChan <- ConnectionEvent{
		ClientID: clientID,
		Type:     ConnectionEventTypeConnect,
	}

	return client, nil
}

// DisconnectClient removes a client from the manager and closes its
// outbound channel
func (cm *ClientManager) DisconnectClient(clientID uint32) {
	cm.clientsLock.Lock()
	defer cm.clientsLock.Unlock()

	client, ok := cm.clients[clientID]
	if !ok {
		return
	}
	delete(cm.clients, clientID)
	close(client.send)

	cm.connectionEventChan <- ConnectionEvent{
		ClientID: clientID,
		Type:     ConnectionEventTypeDisconnect,
	}
}

// Send queues msg for delivery to a client without blocking. Messages to
// unknown clients are dropped; a client whose buffer is full is closed.
func (cm *ClientManager) Send(clientID uint32, msg *messages.Message) {
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()

	client, ok := cm.clients[clientID]
	if !ok {
		log.Trace("Dropping %s message for unknown client %d", msg.Type, clientID)
		return
	}
	select {
	case client.send <- msg:
	default:
		log.Warn("Client %d is too slow, closing connection", clientID)
		if client.closeSlow != nil {
			go client.closeSlow()
		}
	}
}

func (cm *ClientManager) Exists(clientID uint32) bool {
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()
	_, ok := cm.clients[clientID]
	return ok
}

// Count returns the number of connected clients
func (cm *ClientManager) Count() int {
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()
	return len(cm.clients)
}

// generateUniqueID generates a unique client ID with a maximum number of retries
// it reads from the clients, so it needs to be locked before calling
func (cm *ClientManager) generateUniqueID(maxRetries int) (uint32, error) {
	for attempt := 0; attempt < maxRetries; attempt++ {
		id := rand.Uint32()
		if id == 0 {
			continue
		}
		if _, ok := cm.clients[id]; !ok {
			return id, nil
		}
	}

	return 0, fmt.Errorf("failed to generate a unique ID after %d attempts", maxRetries)
}
