package network

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"nhooyr.io/websocket"

	"github.com/cbodonnell/tycoon/pkg/game"
	"github.com/cbodonnell/tycoon/pkg/log"
	"github.com/cbodonnell/tycoon/pkg/messages"
)

// DefaultWriteTimeout bounds a single websocket write
const DefaultWriteTimeout = 5 * time.Second

// MessageHandler processes inbound messages. It is called from the client's
// read goroutine, so messages of one client are handled one at a time.
type MessageHandler interface {
	HandleMessage(ctx context.Context, clientID uint32, msg *messages.Message)
}

// WSServer accepts websocket connections and moves JSON text frames between
// the connection and the MessageHandler.
type WSServer struct {
	clientManager  *ClientManager
	handler        MessageHandler
	originPatterns []string
	writeTimeout   time.Duration
}

type NewWSServerOptions struct {
	ClientManager *ClientManager
	Handler       MessageHandler
	// OriginPatterns are passed to websocket.Accept; empty allows same-origin only
	OriginPatterns []string
	// WriteTimeout defaults to DefaultWriteTimeout
	WriteTimeout time.Duration
}

// NewWSServer creates a new WebSocket server.
func NewWSServer(opts NewWSServerOptions) *WSServer {
	writeTimeout := opts.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = DefaultWriteTimeout
	}
	return &WSServer{
		clientManager:  opts.ClientManager,
		handler:        opts.Handler,
		originPatterns: opts.OriginPatterns,
		writeTimeout:   writeTimeout,
	}
}

func (s *WSServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.originPatterns,
	})
	if err != nil {
		log.Error("Failed to accept WebSocket connection: %v", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "unexpected server error")
	conn.SetReadLimit(messages.MessageBufferSize)

	client, err := s.clientManager.ConnectClient(func() {
		conn.Close(websocket.StatusPolicyViolation, "connection too slow to keep up with messages")
	})
	if err != nil {
		log.Error("Failed to connect client: %v", err)
		return
	}
	log.Debug("Client %d connected from %s", client.ID, r.RemoteAddr)

	err = s.handleConnection(r.Context(), conn, client)
	switch {
	case err == nil, errors.Is(err, context.Canceled):
	case websocket.CloseStatus(err) == websocket.StatusNormalClosure,
		websocket.CloseStatus(err) == websocket.StatusGoingAway:
	default:
		log.Debug("Client %d connection closed: %v", client.ID, err)
	}
	conn.Close(websocket.StatusNormalClosure, "")
}

// handleConnection runs the read loop for a client until the connection
// fails, with a writer goroutine draining the client's outbound channel.
func (s *WSServer) handleConnection(ctx context.Context, conn *websocket.Conn, client *Client) error {
	ctx, cancel := context.WithCancel(ctx)
	writerDone := make(chan struct{})
	defer func() {
		cancel()
		s.clientManager.DisconnectClient(client.ID)
		<-writerDone
		log.Info("Client %d disconnected", client.ID)
	}()

	go func() {
		defer close(writerDone)
		for msg := range client.Outbound() {
			if err := s.write(ctx, conn, msg); err != nil {
				log.Debug("Failed to write to client %d: %v", client.ID, err)
				cancel()
				// keep draining so Send never blocks on this client
				continue
			}
		}
	}()

	for {
		msg, err := s.read(ctx, conn)
		if err != nil {
			var validation *game.ValidationError
			if errors.As(err, &validation) {
				s.clientManager.Send(client.ID, messages.NewErrorMessage(err))
				continue
			}
			return err
		}
		if !client.Allow() {
			s.clientManager.Send(client.ID, messages.NewErrorMessage(&RateLimitedError{}))
			continue
		}
		log.Trace("Client %d sent %s", client.ID, msg.Type)
		s.handler.HandleMessage(ctx, client.ID, msg)
	}
}

// read returns the next message. Frames that are not valid messages are
// reported as validation errors; connection failures are returned as is.
func (s *WSServer) read(ctx context.Context, conn *websocket.Conn) (*messages.Message, error) {
	typ, data, err := conn.Read(ctx)
	if err != nil {
		return nil, err
	}
	if typ != websocket.MessageText {
		return nil, &game.ValidationError{Detail: "messages must be JSON text frames"}
	}
	msg, err := messages.DeserializeMessage(data)
	if err != nil {
		return nil, &game.ValidationError{Detail: err.Error()}
	}
	return msg, nil
}

func (s *WSServer) write(ctx context.Context, conn *websocket.Conn, msg *messages.Message) error {
	b, err := messages.SerializeMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to serialize message: %v", err)
	}
	ctx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()
	if err := conn.Write(ctx, websocket.MessageText, b); err != nil {
		return fmt.Errorf("failed to write message to WebSocket connection: %v", err)
	}
	return nil
}

// RateLimitedError is reported to clients that send faster than allowed.
type RateLimitedError struct{}

func (e *RateLimitedError) Error() string {
	return "too many messages, slow down"
}

func (e *RateLimitedError) Kind() string {
	return "RateLimitedError"
}
