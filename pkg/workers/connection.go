package workers

import (
	"context"

	"github.com/cbodonnell/tycoon/pkg/log"
	"github.com/cbodonnell/tycoon/pkg/network"
)

// ConnectionEventHandler is told about clients coming and going.
type ConnectionEventHandler interface {
	ClientConnected(ctx context.Context, clientID uint32)
	ClientDisconnected(ctx context.Context, clientID uint32)
}

type ConnectionEventWorker struct {
	connectionEventChan <-chan network.ConnectionEvent
	handler             ConnectionEventHandler
}

type NewConnectionEventWorkerOptions struct {
	ConnectionEventChan <-chan network.ConnectionEvent
	Handler             ConnectionEventHandler
}

// NewConnectionEventWorker creates a new ConnectionEventWorker.
// The worker forwards connect and disconnect events from the network layer
// to the session manager, in the order they happened.
func NewConnectionEventWorker(opts NewConnectionEventWorkerOptions) *ConnectionEventWorker {
	return &ConnectionEventWorker{
		connectionEventChan: opts.ConnectionEventChan,
		handler:             opts.Handler,
	}
}

func (w *ConnectionEventWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-w.connectionEventChan:
			switch event.Type {
			case network.ConnectionEventTypeConnect:
				w.handler.ClientConnected(ctx, event.ClientID)
			case network.ConnectionEventTypeDisconnect:
				w.handler.ClientDisconnected(ctx, event.ClientID)
			default:
				log.Error("Unknown connection event type: %v", event.Type)
			}
		}
	}
}
