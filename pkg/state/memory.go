package state

import (
	"context"
	"fmt"
	"sort"

	"github.com/sasha-s/go-deadlock"

	gametypes "github.com/cbodonnell/tycoon/pkg/game/types"
)

var _ StateManager = &InMemoryStateManager{}

type InMemoryStateManager struct {
	lock   deadlock.RWMutex
	states map[string]*gametypes.GameState
}

func NewInMemoryStateManager() *InMemoryStateManager {
	return &InMemoryStateManager{
		states: make(map[string]*gametypes.GameState),
	}
}

func (m *InMemoryStateManager) Get(ctx context.Context, sessionID string) (*gametypes.GameState, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	s, ok := m.states[sessionID]
	if !ok {
		return nil, fmt.Errorf("no state for session %s", sessionID)
	}
	return s.Clone(), nil
}

func (m *InMemoryStateManager) Set(ctx context.Context, state *gametypes.GameState) error {
	if state == nil {
		return fmt.Errorf("game state is nil")
	}

	m.lock.Lock()
	defer m.lock.Unlock()
	if current, ok := m.states[state.SessionID]; ok && current.Seq > state.Seq {
		return fmt.Errorf("stale state for session %s: seq %d < %d", state.SessionID, state.Seq, current.Seq)
	}
	m.states[state.SessionID] = state
	return nil
}

func (m *InMemoryStateManager) Delete(ctx context.Context, sessionID string) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	delete(m.states, sessionID)
	return nil
}

func (m *InMemoryStateManager) List(ctx context.Context, keep func(*gametypes.GameState) bool) ([]*gametypes.GameState, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	out := make([]*gametypes.GameState, 0, len(m.states))
	for _, s := range m.states {
		if keep == nil || keep(s) {
			out = append(out, s.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SessionID < out[j].SessionID })
	return out, nil
}
