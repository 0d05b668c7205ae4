package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/samber/lo"
)

// Conn is the outbound side of a client connection.
type Conn interface {
	ID() string
	// Send queues msg without blocking.
	Send(msg []byte) error
	Close() error
}

// Registry maps each open connection to the match it is attached to and
// fans messages out to a match's connections. Match id 0 means unattached.
type Registry struct {
	mu    sync.RWMutex
	conns map[Conn]int
	log   *slog.Logger
}

func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{conns: make(map[Conn]int), log: log}
}

// Register adds a freshly opened connection, attached to nothing.
func (r *Registry) Register(c Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conns[c]; !ok {
		r.conns[c] = 0
	}
}

// Attach binds c to matchID, replacing any previous binding.
func (r *Registry) Attach(c Conn, matchID int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[c] = matchID
}

// Detach unbinds c from its match but keeps it registered.
func (r *Registry) Detach(c Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conns[c]; ok {
		r.conns[c] = 0
	}
}

// Unregister forgets c entirely and returns the match it was attached to.
func (r *Registry) Unregister(c Conn) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	matchID := r.conns[c]
	delete(r.conns, c)
	return matchID
}

// MatchOf returns the match c is attached to, 0 if none.
func (r *Registry) MatchOf(c Conn) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.conns[c]
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// Broadcast delivers msg to every connection attached to matchID, skipping
// sender unless includeSender is set. It returns the number of connections
// that accepted the message.
func (r *Registry) Broadcast(matchID int, msg ServerMessage, includeSender bool, sender Conn) int {
	if matchID == 0 {
		return 0
	}
	data, err := json.Marshal(msg)
	if err != nil {
		r.log.Error("Failed to marshal broadcast", "match", matchID, "error", err)
		return 0
	}
	r.mu.RLock()
	targets := lo.Keys(lo.PickBy(r.conns, func(c Conn, id int) bool {
		return id == matchID && (includeSender || c != sender)
	}))
	r.mu.RUnlock()

	delivered := 0
	for _, c := range targets {
		if err := c.Send(data); err != nil {
			r.log.Debug("Dropped broadcast", "match", matchID, "conn", c.ID(), "error", err)
			continue
		}
		delivered++
	}
	return delivered
}

// SendTo delivers msg to a single connection.
func (r *Registry) SendTo(c Conn, msg ServerMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return c.Send(data)
}

// CloseAll closes every registered connection.
func (r *Registry) CloseAll() {
	r.mu.RLock()
	conns := lo.Keys(r.conns)
	r.mu.RUnlock()
	for _, c := range conns {
		_ = c.Close()
	}
}
