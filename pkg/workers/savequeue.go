package workers

import (
	"context"

	"github.com/sasha-s/go-deadlock"

	"github.com/cbodonnell/tycoon/pkg/game/types"
	"github.com/cbodonnell/tycoon/pkg/log"
)

// DefaultMaxPendingEvents caps the events held for one session while its
// saves are waiting on the repository.
const DefaultMaxPendingEvents = 1024

// SaveQueue holds at most one pending save per session. Pushing never
// blocks: a later save for a session that is still waiting replaces its
// snapshot and adds its events to the ones already pending. Snapshots are
// last-write-wins by seq, so skipping the intermediate ones is safe.
type SaveQueue struct {
	lock      deadlock.Mutex
	pending   map[string]*SaveSnapshotRequest
	order     []string
	ready     chan struct{}
	maxEvents int
}

// NewSaveQueue creates an empty queue. A maxEvents of zero or less uses
// DefaultMaxPendingEvents.
func NewSaveQueue(maxEvents int) *SaveQueue {
	if maxEvents <= 0 {
		maxEvents = DefaultMaxPendingEvents
	}
	return &SaveQueue{
		pending:   make(map[string]*SaveSnapshotRequest),
		ready:     make(chan struct{}, 1),
		maxEvents: maxEvents,
	}
}

// Push queues req, merging it into the save already pending for the same
// session.
func (q *SaveQueue) Push(req SaveSnapshotRequest) {
	if req.State == nil {
		log.Error("Dropping save request without a state")
		return
	}
	sessionID := req.State.SessionID

	q.lock.Lock()
	queued, ok := q.pending[sessionID]
	if !ok {
		queued = &SaveSnapshotRequest{State: req.State}
		q.pending[sessionID] = queued
		q.order = append(q.order, sessionID)
	}
	switch {
	case req.Discard:
		queued.State = req.State
		queued.Events = nil
		queued.Discard = true
	case queued.Discard:
		// a discarded session that is written again starts over
		queued.Discard = false
		queued.State = req.State
		queued.Events = append([]types.Event(nil), req.Events...)
	default:
		if req.State.Seq >= queued.State.Seq {
			queued.State = req.State
		}
		queued.Events = append(queued.Events, req.Events...)
	}
	if dropped := len(queued.Events) - q.maxEvents; dropped > 0 {
		log.Warn("Dropping %d unsaved events of session %s, the save queue is behind", dropped, sessionID)
		queued.Events = append([]types.Event(nil), queued.Events[dropped:]...)
	}
	q.lock.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// Pop removes the save that has been pending the longest, waiting until
// one is available or ctx is done.
func (q *SaveQueue) Pop(ctx context.Context) (SaveSnapshotRequest, error) {
	for {
		if req, ok := q.next(); ok {
			return req, nil
		}
		select {
		case <-ctx.Done():
			return SaveSnapshotRequest{}, ctx.Err()
		case <-q.ready:
		}
	}
}

// Drain removes every pending save, oldest first.
func (q *SaveQueue) Drain() []SaveSnapshotRequest {
	var out []SaveSnapshotRequest
	for {
		req, ok := q.next()
		if !ok {
			return out
		}
		out = append(out, req)
	}
}

// Len returns the number of sessions with a pending save.
func (q *SaveQueue) Len() int {
	q.lock.Lock()
	defer q.lock.Unlock()
	return len(q.pending)
}

func (q *SaveQueue) next() (SaveSnapshotRequest, bool) {
	q.lock.Lock()
	defer q.lock.Unlock()
	if len(q.order) == 0 {
		return SaveSnapshotRequest{}, false
	}
	sessionID := q.order[0]
	q.order = q.order[1:]
	req := q.pending[sessionID]
	delete(q.pending, sessionID)
	return *req, true
}
