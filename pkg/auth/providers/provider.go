package providers

import "context"

// AuthProvider verifies identity tokens presented on CONNECT.
type AuthProvider interface {
	VerifyToken(ctx context.Context, idToken string) (*TokenClaims, error)
}

type TokenClaims struct {
	UID string `json:"uid"`
}

// SessionTokenProvider issues and verifies the tokens that bind a player
// to a seat in a session. They are presented on RECONNECT.
type SessionTokenProvider interface {
	Issue(playerID, sessionID string) (string, error)
	Verify(token string) (*SessionClaims, error)
}
