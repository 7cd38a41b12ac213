package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/cbodonnell/tycoon/pkg/api/handlers"
	"github.com/cbodonnell/tycoon/pkg/api/middleware"
	authproviders "github.com/cbodonnell/tycoon/pkg/auth/providers"
	"github.com/cbodonnell/tycoon/pkg/log"
)

type APIServer struct {
	server *http.Server
	tls    *TLSConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewAPIServerOptions struct {
	Addr string
	TLS  *TLSConfig
	// AllowedOrigins are the CORS origins; empty allows all
	AllowedOrigins []string
	// WebSocket serves the game connections at /ws
	WebSocket http.Handler
	Lobbies   handlers.LobbyLister
	// AuthProvider is optional; when set, listing sessions requires a
	// bearer identity token
	AuthProvider authproviders.AuthProvider
}

// NewAPIServer creates a new http.Server for the websocket endpoint and the
// HTTP API
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	return &APIServer{
		server: &http.Server{
			Addr:    opts.Addr,
			Handler: NewRouter(opts),
		},
		tls: opts.TLS,
	}
}

// NewRouter builds the routes of the server
func NewRouter(opts NewAPIServerOptions) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.NewLoggingMiddleware())

	r.HandleFunc("/healthz", handlers.HandleHealth()).Methods(http.MethodGet)

	var listSessions http.Handler = handlers.HandleListSessions(opts.Lobbies)
	if opts.AuthProvider != nil {
		listSessions = middleware.NewAuthMiddleware(opts.AuthProvider)(listSessions)
	}
	r.Handle("/sessions", listSessions).Methods(http.MethodGet)

	if opts.WebSocket != nil {
		r.Handle("/ws", opts.WebSocket)
	}

	c := cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})
	return c.Handler(r)
}

// Start starts the APIServer
func (s *APIServer) Start() {
	var listenAndServe func() error
	if s.tls != nil {
		log.Info("API server listening on %s with TLS", s.server.Addr)
		listenAndServe = func() error {
			return s.server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("API server listening on %s", s.server.Addr)
		listenAndServe = s.server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("API server closed")
			return
		}
		log.Error("API server error: %v", err)
	}
}

// Stop stops the APIServer
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
