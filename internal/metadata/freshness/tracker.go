// Package freshness discards responses from requests that a newer request in
// the same session has superseded.
package freshness

import (
	"context"
	"sync"
)

// Tracker issues sequence numbers per session key. Sequence numbers are unique
// across all sessions so a number is never reused after a session is released.
type Tracker struct {
	mu       sync.Mutex
	next     uint64
	sessions map[string]*inflight
}

type inflight struct {
	seq    uint64
	cancel context.CancelFunc
}

func NewTracker() *Tracker {
	return &Tracker{sessions: make(map[string]*inflight)}
}

// Begin registers a new request for session and cancels the context of the
// request it supersedes. The returned context must be used for the request.
func (t *Tracker) Begin(ctx context.Context, session string) (context.Context, uint64) {
	reqCtx, cancel := context.WithCancel(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()

	t.next++
	seq := t.next
	if prev, ok := t.sessions[session]; ok {
		prev.cancel()
	}
	t.sessions[session] = &inflight{seq: seq, cancel: cancel}
	return reqCtx, seq
}

// Commit reports whether seq is still the latest request for session. The
// latest request is released on commit; superseded ones were released by Begin.
func (t *Tracker) Commit(session string, seq uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	current, ok := t.sessions[session]
	if !ok || current.seq != seq {
		return false
	}
	current.cancel()
	delete(t.sessions, session)
	return true
}

// Pending returns the number of sessions with a request in flight.
func (t *Tracker) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sessions)
}
