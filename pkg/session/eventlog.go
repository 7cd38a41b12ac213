package session

import (
	"github.com/cbodonnell/tycoon/pkg/game/types"
)

// DefaultEventLogSize is the number of recent events a session keeps for
// replay to reconnecting clients
const DefaultEventLogSize = 512

// eventLog is a bounded, seq-ordered tail of a session's events.
type eventLog struct {
	events []types.Event
	size   int
}

func newEventLog(size int) *eventLog {
	if size <= 0 {
		size = DefaultEventLogSize
	}
	return &eventLog{
		events: make([]types.Event, 0, size),
		size:   size,
	}
}

func (l *eventLog) append(events ...types.Event) {
	l.events = append(l.events, events...)
	if over := len(l.events) - l.size; over > 0 {
		// shift in place so the backing array stays bounded
		n := copy(l.events, l.events[over:])
		l.events = l.events[:n]
	}
}

// since returns the logged events with a seq greater than seq. complete is
// false when events between seq and the oldest logged event were dropped.
// head is the seq of the state the log belongs to.
func (l *eventLog) since(seq, head uint64) (events []types.Event, complete bool) {
	if seq >= head {
		return nil, true
	}
	if len(l.events) == 0 {
		return nil, false
	}
	if l.events[0].Seq > seq+1 {
		return append([]types.Event(nil), l.events...), false
	}
	for i, e := range l.events {
		if e.Seq > seq {
			return append([]types.Event(nil), l.events[i:]...), true
		}
	}
	return nil, true
}
