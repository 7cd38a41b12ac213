package workers

import (
	"context"
	"time"

	"github.com/cbodonnell/tycoon/pkg/game/types"
	"github.com/cbodonnell/tycoon/pkg/log"
	"github.com/cbodonnell/tycoon/pkg/messages"
	"github.com/cbodonnell/tycoon/pkg/repositories"
)

// DefaultSaveTimeout bounds one save against the repository
const DefaultSaveTimeout = 5 * time.Second

type SaveSnapshotWorker struct {
	repository repositories.Repository
	queue      *SaveQueue
	timeout    time.Duration
}

type NewSaveSnapshotWorkerOptions struct {
	Repository repositories.Repository
	Queue      *SaveQueue
	// Timeout defaults to DefaultSaveTimeout
	Timeout time.Duration
}

// SaveSnapshotRequest asks for the committed state of a session and the
// events that produced it to be persisted.
type SaveSnapshotRequest struct {
	// State must not be mutated after the request is sent
	State  *types.GameState
	Events []types.Event
	// Discard deletes everything stored for the session instead
	Discard bool
}

// NewSaveSnapshotWorker creates a new SaveSnapshotWorker.
// The worker processes the pending save of each session in the order the
// sessions were queued. Failures are logged; the in-memory state stays authoritative.
func NewSaveSnapshotWorker(opts NewSaveSnapshotWorkerOptions) *SaveSnapshotWorker {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultSaveTimeout
	}
	return &SaveSnapshotWorker{
		repository: opts.Repository,
		queue:      opts.Queue,
		timeout:    timeout,
	}
}

func (w *SaveSnapshotWorker) Start(ctx context.Context) {
	for {
		req, err := w.queue.Pop(ctx)
		if err != nil {
			w.drain()
			return
		}
		w.save(ctx, req)
	}
}

// drain saves the requests that were queued when the worker was stopped.
func (w *SaveSnapshotWorker) drain() {
	for _, req := range w.queue.Drain() {
		w.save(context.Background(), req)
	}
}

func (w *SaveSnapshotWorker) save(ctx context.Context, req SaveSnapshotRequest) {
	if req.State == nil {
		log.Error("Dropping save request without a state")
		return
	}
	sessionID := req.State.SessionID
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	if req.Discard {
		if err := w.repository.DeleteSession(ctx, sessionID); err != nil {
			log.Error("Failed to delete session %s: %v", sessionID, err)
		}
		return
	}

	// events first, so a stored snapshot is never ahead of the stored log
	if len(req.Events) > 0 {
		if err := w.repository.AppendEvents(ctx, sessionID, req.Events); err != nil {
			log.Error("Failed to append %d events for session %s: %v", len(req.Events), sessionID, err)
		}
	}

	data, err := messages.SerializeGameState(req.State)
	if err != nil {
		log.Error("Failed to serialize game state for session %s: %v", sessionID, err)
		return
	}
	if err := w.repository.SaveSnapshot(ctx, sessionID, data, req.State.Seq); err != nil {
		log.Error("Failed to save snapshot %d for session %s: %v", req.State.Seq, sessionID, err)
		return
	}
	log.Trace("Saved snapshot %d for session %s", req.State.Seq, sessionID)
}
