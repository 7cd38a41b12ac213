package state

import (
	"context"

	gametypes "github.com/cbodonnell/tycoon/pkg/game/types"
)

// StateManager provides shared read access to the last committed state of
// every live session. Only a session's own goroutine calls Set for it.
// Implementations must be thread-safe.
type StateManager interface {
	// Get returns a copy of the state of a session.
	Get(ctx context.Context, sessionID string) (*gametypes.GameState, error)
	// Set records state as the committed state of its session. The state
	// must not be mutated afterwards.
	Set(ctx context.Context, state *gametypes.GameState) error
	Delete(ctx context.Context, sessionID string) error
	// List returns copies of the states for which keep returns true, in
	// session id order.
	List(ctx context.Context, keep func(*gametypes.GameState) bool) ([]*gametypes.GameState, error)
}
