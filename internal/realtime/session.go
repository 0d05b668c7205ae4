package realtime

import (
	"log/slog"
	"sync"

	"github.com/ecra2001/chess-old/internal/chess"
)

// MatchSession holds the live engine of one match. mu serializes every
// mutation of the match and the broadcasts that follow it.
type MatchSession struct {
	ID int

	mu   sync.Mutex
	game *chess.Game

	// roster holds the connection ids in the match; guarded by Sessions.mu.
	roster map[string]struct{}
}

// Sessions owns the live MatchSessions. A session exists while at least one
// connection is in its roster.
type Sessions struct {
	mu      sync.Mutex
	byMatch map[int]*MatchSession
	log     *slog.Logger
}

func NewSessions(log *slog.Logger) *Sessions {
	return &Sessions{byMatch: make(map[int]*MatchSession), log: log}
}

// Join adds connID to the roster of matchID, creating the session if needed.
// A new session has no engine yet; the caller loads it under the session lock.
func (s *Sessions) Join(matchID int, connID string) *MatchSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byMatch[matchID]
	if !ok {
		sess = &MatchSession{ID: matchID, roster: make(map[string]struct{})}
		s.byMatch[matchID] = sess
		s.log.Debug("Match session opened", "match", matchID)
	}
	sess.roster[connID] = struct{}{}
	return sess
}

func (s *Sessions) Get(matchID int) (*MatchSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byMatch[matchID]
	return sess, ok
}

// Part removes connID from the roster of matchID and drops the session once
// nobody is left.
func (s *Sessions) Part(matchID int, connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byMatch[matchID]
	if !ok {
		return
	}
	delete(sess.roster, connID)
	if len(sess.roster) == 0 {
		delete(s.byMatch, matchID)
		s.log.Debug("Match session closed", "match", matchID)
	}
}

// Len is the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byMatch)
}
