package realtime

import (
	"github.com/ecra2001/chess-old/internal/chess"
	"github.com/ecra2001/chess-old/internal/store"
)

// Role is how a connection takes part in a match.
type Role int

const (
	RoleObserver Role = iota
	RoleWhite
	RoleBlack
)

func (r Role) String() string {
	switch r {
	case RoleWhite:
		return "player (white)"
	case RoleBlack:
		return "player (black)"
	default:
		return "observer"
	}
}

// roleOf derives username's role from the match seats.
func roleOf(m store.Match, username string) Role {
	color, ok := m.SeatOf(username)
	switch {
	case !ok:
		return RoleObserver
	case color == chess.White:
		return RoleWhite
	default:
		return RoleBlack
	}
}

// opponentName names the player seated opposite color, falling back to the
// color itself when the seat is empty.
func opponentName(m store.Match, color chess.Color) string {
	if name := m.Seat(color.Opposite()); name != "" {
		return name
	}
	return color.Opposite().String()
}
