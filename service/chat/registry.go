package chat

import (
	"sync"
)

// Registry is the presence map: participant id -> live connection. It is an
// injected, process-local object; nothing survives a restart, so presence is
// only correct once every client has re-announced on (re)connect.
type Registry struct {
	mu            sync.RWMutex
	byParticipant map[string]*Conn
}

func NewRegistry() *Registry {
	return &Registry{byParticipant: make(map[string]*Conn)}
}

// Announce binds participantID to c, silently replacing any prior
// connection for that participant (last writer wins). The replaced
// connection is not notified or closed; its own disconnect path cleans up.
func (r *Registry) Announce(participantID string, c *Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byParticipant[participantID] = c
}

// Resolve looks up the live connection for a participant.
func (r *Registry) Resolve(participantID string) (*Conn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byParticipant[participantID]
	return c, ok
}

// Forget removes whichever entry points at exactly this connection. A
// disconnect only knows the connection, not the participant, so the map is
// scanned; the first match is removed and the scan stops.
//
// A stale entry (participant already re-announced on a new connection) is
// left alone because it no longer points at c.
func (r *Registry) Forget(c *Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for pid, cur := range r.byParticipant {
		if cur == c {
			delete(r.byParticipant, pid)
			return
		}
	}
}

// Len reports how many participants are currently announced.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byParticipant)
}
