package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	gametypes "github.com/cbodonnell/tycoon/pkg/game/types"
	"github.com/cbodonnell/tycoon/pkg/repositories/models"
)

// InMemoryRepository keeps snapshots for the life of the process. It backs
// the memory:// database URL and tests.
type InMemoryRepository struct {
	lock      sync.RWMutex
	snapshots map[string]*models.Snapshot
	events    map[string]map[uint64]gametypes.Event
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		snapshots: make(map[string]*models.Snapshot),
		events:    make(map[string]map[uint64]gametypes.Event),
	}
}

func (r *InMemoryRepository) Close(ctx context.Context) error {
	return nil
}

func (r *InMemoryRepository) SaveSnapshot(ctx context.Context, sessionID string, data []byte, seq uint64) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if current, ok := r.snapshots[sessionID]; ok && current.Seq > seq {
		return nil
	}
	r.snapshots[sessionID] = &models.Snapshot{
		SessionID: sessionID,
		Seq:       seq,
		Data:      append([]byte(nil), data...),
		UpdatedAt: time.Now(),
	}
	return nil
}

func (r *InMemoryRepository) LoadSnapshot(ctx context.Context, sessionID string) (*models.Snapshot, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	snapshot, ok := r.snapshots[sessionID]
	if !ok {
		return nil, &ErrNotFound{}
	}
	c := *snapshot
	c.Data = append([]byte(nil), snapshot.Data...)
	return &c, nil
}

func (r *InMemoryRepository) AppendEvents(ctx context.Context, sessionID string, events []gametypes.Event) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	stored, ok := r.events[sessionID]
	if !ok {
		stored = make(map[uint64]gametypes.Event)
		r.events[sessionID] = stored
	}
	for _, event := range events {
		if _, exists := stored[event.Seq]; !exists {
			stored[event.Seq] = event
		}
	}
	return nil
}

func (r *InMemoryRepository) LoadEventsSince(ctx context.Context, sessionID string, seq uint64, limit int) ([]gametypes.Event, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	var events []gametypes.Event
	for s, event := range r.events[sessionID] {
		if s > seq {
			events = append(events, event)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Seq < events[j].Seq })
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

func (r *InMemoryRepository) DeleteEventsAfter(ctx context.Context, sessionID string, seq uint64) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	for s := range r.events[sessionID] {
		if s > seq {
			delete(r.events[sessionID], s)
		}
	}
	return nil
}

func (r *InMemoryRepository) DeleteSession(ctx context.Context, sessionID string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	delete(r.snapshots, sessionID)
	delete(r.events, sessionID)
	return nil
}
