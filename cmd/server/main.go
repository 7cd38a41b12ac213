package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cbodonnell/tycoon/pkg/api"
	authproviders "github.com/cbodonnell/tycoon/pkg/auth/providers"
	"github.com/cbodonnell/tycoon/pkg/config"
	"github.com/cbodonnell/tycoon/pkg/game"
	"github.com/cbodonnell/tycoon/pkg/log"
	"github.com/cbodonnell/tycoon/pkg/network"
	"github.com/cbodonnell/tycoon/pkg/repositories"
	"github.com/cbodonnell/tycoon/pkg/session"
	"github.com/cbodonnell/tycoon/pkg/state"
	"github.com/cbodonnell/tycoon/pkg/version"
	"github.com/cbodonnell/tycoon/pkg/workers"
)

func main() {
	if err := config.LoadEnvFile(".env"); err != nil {
		panic(err)
	}
	cfg, err := config.Load(os.Args[1:], os.Getenv)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	parsedLogLevel, err := log.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting server version %s", version.Get())
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repository, err := newRepository(ctx, cfg.DatabaseURL)
	if err != nil {
		panic(fmt.Sprintf("Failed to create repository: %v", err))
	}
	defer repository.Close(context.Background())

	sessionTokens, err := authproviders.NewJWTTokenProvider(authproviders.NewJWTTokenProviderOptions{
		Secret: cfg.SecretKey,
		TTL:    cfg.SessionTokenTTL,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to create session token provider: %v", err))
	}

	var authProvider authproviders.AuthProvider
	if cfg.FirebaseProjectID != "" {
		authProvider, err = authproviders.NewFirebaseAuthProvider(ctx, authproviders.NewFirebaseAuthProviderOptions{
			ProjectID:       cfg.FirebaseProjectID,
			CredentialsFile: cfg.FirebaseCredentialsFile,
		})
		if err != nil {
			panic(fmt.Sprintf("Failed to create Firebase auth provider: %v", err))
		}
		log.Info("Verifying player identities with Firebase project %s", cfg.FirebaseProjectID)
	}

	saveQueue := workers.NewSaveQueue(cfg.SaveQueueSize)
	saveSnapshotWorker := workers.NewSaveSnapshotWorker(workers.NewSaveSnapshotWorkerOptions{
		Repository: repository,
		Queue:      saveQueue,
	})
	saveCtx, stopSaving := context.WithCancel(context.Background())
	saved := make(chan struct{})
	go func() {
		saveSnapshotWorker.Start(saveCtx)
		close(saved)
	}()

	clientManager := network.NewClientManager(network.NewClientManagerOptions{
		RateLimit: cfg.RateLimit,
		RateBurst: cfg.RateBurst,
	})

	sessionManager := session.NewManager(session.NewManagerOptions{
		Engine:        game.NewEngine(game.NewEngineOptions{}),
		Publisher:     clientManager,
		Repository:    repository,
		StateManager:  state.NewInMemoryStateManager(),
		SessionTokens: sessionTokens,
		AuthProvider:  authProvider,
		SaveQueue:     saveQueue,
		EventLogSize:  cfg.EventLogSize,
		MailboxSize:   cfg.MailboxSize,
	})

	connectionEventWorker := workers.NewConnectionEventWorker(workers.NewConnectionEventWorkerOptions{
		ConnectionEventChan: clientManager.GetConnectionEventChan(),
		Handler:             sessionManager,
	})
	go connectionEventWorker.Start(ctx)

	wsServer := network.NewWSServer(network.NewWSServerOptions{
		ClientManager:  clientManager,
		Handler:        sessionManager,
		OriginPatterns: originPatterns(cfg.AllowedOrigins),
	})

	apiServerOpts := api.NewAPIServerOptions{
		Addr:           cfg.ListenAddr,
		AllowedOrigins: cfg.AllowedOrigins,
		WebSocket:      wsServer,
		Lobbies:        sessionManager,
		AuthProvider:   authProvider,
	}
	if cfg.TLSCertFile != "" {
		apiServerOpts.TLS = &api.TLSConfig{
			CertFile: cfg.TLSCertFile,
			KeyFile:  cfg.TLSKeyFile,
		}
	}
	apiServer := api.NewAPIServer(apiServerOpts)
	go apiServer.Start()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := apiServer.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop API server: %v", err)
	}
	sessionManager.Close()
	// sessions are stopped, flush what they queued
	stopSaving()
	<-saved
	log.Info("Server stopped")
}

func newRepository(ctx context.Context, connStr string) (repositories.Repository, error) {
	u, err := url.Parse(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %v", err)
	}

	switch u.Scheme {
	case "memory":
		log.Warn("Using the in-memory repository, sessions will not survive a restart")
		return repositories.NewInMemoryRepository(), nil
	case "sqlite":
		return repositories.NewSQLiteRepository(ctx, u.Host+u.Path, "./migrations/sqlite")
	case "postgres", "postgresql":
		return repositories.NewPostgresRepository(ctx, u.String(), "./migrations/postgres")
	case "redis", "rediss":
		return repositories.NewRedisRepository(ctx, u.String())
	default:
		return nil, fmt.Errorf("unknown database type %s", u.Scheme)
	}
}

// originPatterns converts CORS origins to the host patterns the websocket
// handshake checks.
func originPatterns(origins []string) []string {
	var patterns []string
	for _, origin := range origins {
		if u, err := url.Parse(origin); err == nil && u.Host != "" {
			patterns = append(patterns, u.Host)
			continue
		}
		patterns = append(patterns, strings.TrimSpace(origin))
	}
	if len(origins) == 0 {
		// no origin restriction was configured
		patterns = []string{"*"}
	}
	return patterns
}
