package providers

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// DefaultSessionTokenTTL bounds how long a seat can be reclaimed
	DefaultSessionTokenTTL = 24 * time.Hour
	sessionTokenIssuer     = "tycoon"
)

var _ SessionTokenProvider = &JWTTokenProvider{}

// MinSecretLength is the shortest accepted signing key
const MinSecretLength = 16

// SessionClaims are the claims of a reconnect token.
type SessionClaims struct {
	PlayerID  string `json:"pid"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// JWTTokenProvider signs reconnect tokens with HMAC-SHA256.
type JWTTokenProvider struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type NewJWTTokenProviderOptions struct {
	Secret string
	// TTL defaults to DefaultSessionTokenTTL
	TTL time.Duration
}

func NewJWTTokenProvider(opts NewJWTTokenProviderOptions) (*JWTTokenProvider, error) {
	if len(opts.Secret) < MinSecretLength {
		return nil, fmt.Errorf("secret key must be at least %d bytes", MinSecretLength)
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultSessionTokenTTL
	}
	return &JWTTokenProvider{
		secret: []byte(opts.Secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue returns a signed token binding playerID to sessionID.
func (p *JWTTokenProvider) Issue(playerID, sessionID string) (string, error) {
	now := p.now()
	claims := &SessionClaims{
		PlayerID:  playerID,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionTokenIssuer,
			Subject:   playerID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %v", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of a token and returns its claims.
func (p *JWTTokenProvider) Verify(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return p.secret, nil
	},
		jwt.WithIssuer(sessionTokenIssuer),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse session token: %v", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	if claims.PlayerID == "" || claims.SessionID == "" {
		return nil, fmt.Errorf("session token is missing player or session")
	}
	return claims, nil
}
