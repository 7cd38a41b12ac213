package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cbodonnell/tycoon/pkg/log"
	"github.com/cbodonnell/tycoon/pkg/session"
)

// LobbyLister lists the sessions that can still be joined
type LobbyLister interface {
	Lobbies(ctx context.Context) ([]session.LobbySummary, error)
}

func HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}
}

func HandleListSessions(lister LobbyLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lobbies, err := lister.Lobbies(r.Context())
		if err != nil {
			log.Error("failed to list sessions: %v", err)
			http.Error(w, "Failed to list sessions", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(lobbies); err != nil {
			log.Error("failed to encode sessions: %v", err)
			http.Error(w, "Failed to encode sessions", http.StatusInternalServerError)
			return
		}
	}
}
