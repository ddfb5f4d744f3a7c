// Package eventlog keeps a bounded in-memory window of status-change
// events. It backs the activity feed: command handlers publish into it on
// every successful transition, and the feed query reads the most recent
// entries back out. Older events fall off the window; the log is a derived
// record, not durable state.
package eventlog

import (
	"context"
	"sync"

	"orderdesk/internal/core/ports"
)

// DefaultCapacity is the event window size when none is configured.
const DefaultCapacity = 100

// Log is a fixed-capacity ring of status-change events, safe for
// concurrent use. It implements both ports.StatusChangePublisher (append)
// and ports.ActivityLog (read back, most recent first).
type Log struct {
	mu       sync.RWMutex
	events   []ports.StatusChangedEvent
	capacity int
}

// NewLog creates an event log holding at most capacity events.
// Non-positive capacities fall back to DefaultCapacity.
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{
		events:   make([]ports.StatusChangedEvent, 0, capacity),
		capacity: capacity,
	}
}

// PublishStatusChanged appends an event, evicting the oldest entry when the
// window is full. It never fails.
func (l *Log) PublishStatusChanged(_ context.Context, event ports.StatusChangedEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.events) == l.capacity {
		copy(l.events, l.events[1:])
		l.events[len(l.events)-1] = event
		return nil
	}
	l.events = append(l.events, event)
	return nil
}

// Recent returns up to limit events, most recent first.
func (l *Log) Recent(_ context.Context, limit int) ([]ports.StatusChangedEvent, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if limit > len(l.events) {
		limit = len(l.events)
	}
	recent := make([]ports.StatusChangedEvent, limit)
	for i := 0; i < limit; i++ {
		recent[i] = l.events[len(l.events)-1-i]
	}
	return recent, nil
}

// Len returns the number of retained events.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events)
}
